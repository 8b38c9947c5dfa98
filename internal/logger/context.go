package logger

import "context"

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stores the request id in the context for downstream log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in the context, or "" when the
// request never passed through the request-id middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
