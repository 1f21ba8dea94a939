package logger

import (
	"context"

	"go.uber.org/zap"
)

// Field names shared across components.
const (
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldGraphID   = "graph_id"
	FieldTextID    = "text_id"
	FieldError     = "error"
	FieldCount     = "count"
	FieldFile      = "file"
	FieldAddress   = "address"
)

type contextKey string

const requestIDKey contextKey = "logger_request_id"

// WithRequestID stores a request ID in ctx for FromContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns base with the request ID from ctx attached, if there is one.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if id := RequestID(ctx); id != "" {
		return base.With(FieldRequestID, id)
	}
	return base
}
