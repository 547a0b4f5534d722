package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appctx "storeops/internal/core/context"
)

var tracer = otel.Tracer("storeops/http")

// Trace middleware adds request tracing context.
// Trace and request IDs are taken from the incoming headers or generated,
// echoed on the response and forwarded to the backend by the client.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		tc := appctx.NewTraceContext(
			c.GetHeader(appctx.HeaderTraceID),
			c.GetHeader(appctx.HeaderRequestID),
		)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("storeops.trace_id", tc.TraceID),
				attribute.String("storeops.request_id", tc.RequestID),
			),
		)
		defer span.End()

		ctx = appctx.WithTrace(ctx, tc)
		c.Request = c.Request.WithContext(ctx)

		c.Set("trace_id", tc.TraceID)
		c.Set("request_id", tc.RequestID)

		c.Header(appctx.HeaderRequestID, tc.RequestID)
		c.Header(appctx.HeaderTraceID, tc.TraceID)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, c.Errors.String())
		}
	}
}
