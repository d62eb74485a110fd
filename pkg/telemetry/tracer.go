// Package telemetry configures OpenTelemetry tracing. With tracing disabled
// every helper still works against the no-op global provider.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const defaultServiceName = "urban-slot-finder"

// Config selects the exporter and describes this process
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Variant is the app flavour (parking or earning), attached to every span
	Variant       string
	CollectorAddr string
	SampleRatio   float64
}

// Telemetry is the process-wide tracer
type Telemetry struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

var (
	mu      sync.RWMutex
	current *Telemetry
)

// Init installs the tracer. A disabled config installs a no-op tracer and
// never dials the collector.
func Init(ctx context.Context, cfg *Config) (*Telemetry, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.ServiceName
	if name == "" {
		name = defaultServiceName
	}

	t := &Telemetry{tracer: otel.Tracer(name)}
	if cfg.Enabled {
		provider, err := newProvider(ctx, cfg, name)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(provider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		t = &Telemetry{provider: provider, tracer: provider.Tracer(name)}
	}

	mu.Lock()
	current = t
	mu.Unlock()
	return t, nil
}

func newProvider(ctx context.Context, cfg *Config, name string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.CollectorAddr),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
		attribute.String("app.variant", cfg.Variant),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	), nil
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Shutdown flushes pending spans
func Shutdown(ctx context.Context) error {
	mu.RLock()
	t := current
	mu.RUnlock()
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

func tracer() trace.Tracer {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return otel.Tracer(defaultServiceName)
	}
	return current.tracer
}

// StartSpan starts an internal span on the process tracer
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, opts...)
}

// EndSpan marks the span failed when err is non-nil, then ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// TraceID returns the hex trace id carried by ctx, or ""
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
