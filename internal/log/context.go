package log

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

type requestIDKey struct{}

// WithRequestID stores the request id that For attaches to log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// For returns base scoped to the request carried by ctx: request_id when
// set, and dd.trace_id / dd.span_id when a Datadog span is active.
func For(ctx context.Context, base *zap.Logger, extra ...zap.Field) *zap.Logger {
	fields := make([]zap.Field, 0, len(extra)+3)
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if sp, ok := tracer.SpanFromContext(ctx); ok {
		sc := sp.Context()
		fields = append(fields,
			zap.String("dd.trace_id", strconv.FormatUint(sc.TraceID(), 10)),
			zap.String("dd.span_id", strconv.FormatUint(sc.SpanID(), 10)),
		)
	}
	return base.With(append(fields, extra...)...)
}
