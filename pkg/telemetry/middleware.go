package telemetry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader echoes the trace id back to the caller
const TraceIDHeader = "X-Trace-ID"

// TracingMiddleware continues any incoming trace and wraps the request in a
// server span named after the matched route.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	tr := otel.Tracer(serviceName + "/http")

	return func(c *gin.Context) {
		req := c.Request
		ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tr.Start(ctx, req.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethod(req.Method),
				semconv.HTTPRoute(route),
				semconv.UserAgentOriginal(req.UserAgent()),
				semconv.ClientAddress(c.ClientIP()),
			),
		)
		defer span.End()

		if id := TraceID(ctx); id != "" {
			c.Header(TraceIDHeader, id)
		}
		c.Request = req.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPStatusCode(status))
		if err := c.Errors.Last(); err != nil {
			span.RecordError(err)
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
