package kvstore

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dannesh12/urban-slot-finder/pkg/telemetry"
)

type traced struct {
	next   Store
	driver string
}

// WithTracing opens a client span around every store call except Ping
func WithTracing(next Store, driver string) Store {
	return &traced{next: next, driver: driver}
}

func (t *traced) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, "kvstore."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("kv.driver", t.driver),
			attribute.String("kv.key", key),
		),
	)
}

func (t *traced) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := t.start(ctx, "get", key)
	b, err := t.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("kv.hit", err == nil))
	if errors.Is(err, ErrNotFound) {
		// a miss is an expected outcome, not a failed call
		telemetry.EndSpan(span, nil)
	} else {
		telemetry.EndSpan(span, err)
	}
	return b, err
}

func (t *traced) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := t.start(ctx, "set", key)
	span.SetAttributes(attribute.Int("kv.size", len(value)))
	err := t.next.Set(ctx, key, value)
	telemetry.EndSpan(span, err)
	return err
}

func (t *traced) Delete(ctx context.Context, key string) error {
	ctx, span := t.start(ctx, "delete", key)
	err := t.next.Delete(ctx, key)
	telemetry.EndSpan(span, err)
	return err
}

func (t *traced) Ping(ctx context.Context) error {
	return t.next.Ping(ctx)
}
