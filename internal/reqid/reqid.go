// Package reqid attaches a request ID to a context so events published
// during one request can be correlated.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// NewContext returns ctx carrying a fresh random ID.
func NewContext(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithID(ctx, id), id
}

// WithID returns ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from ctx.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

// Ensure returns ctx unchanged if it already carries an ID, or a context
// with a fresh one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	return NewContext(ctx)
}
