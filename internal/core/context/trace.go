package context

import (
	"context"

	"github.com/google/uuid"
)

// Header names shared by the console API and the backend client.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// TraceContext contains request tracing information.
type TraceContext struct {
	TraceID   string
	RequestID string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// NewTraceContext builds a TraceContext, generating any ID that is empty.
func NewTraceContext(traceID, requestID string) *TraceContext {
	if traceID == "" {
		traceID = uuid.New().String()
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &TraceContext{TraceID: traceID, RequestID: requestID}
}

// OutgoingHeaders returns trace headers to propagate on calls to the backend.
func OutgoingHeaders(ctx context.Context) map[string]string {
	t := GetTrace(ctx)
	if t == nil {
		return nil
	}
	return map[string]string{
		HeaderTraceID:   t.TraceID,
		HeaderRequestID: t.RequestID,
	}
}
