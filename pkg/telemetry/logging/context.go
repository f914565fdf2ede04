package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// extractContextFields returns the log attributes carried by ctx.
func extractContextFields(ctx context.Context) []slog.Attr {
	if requestID := GetRequestID(ctx); requestID != "" {
		return []slog.Attr{slog.String(string(RequestIDKey), requestID)}
	}
	return nil
}
