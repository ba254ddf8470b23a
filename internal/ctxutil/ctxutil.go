// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// OwnerKey is the context key for the authenticated user ID.
type OwnerKey struct{}

// RequestIDKey is the context key for the request correlation ID.
type RequestIDKey struct{}

// WithOwnerID returns a context with the authenticated user ID embedded.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, OwnerKey{}, ownerID)
}

// OwnerFromContext returns the user ID from context, or empty string if not set.
func OwnerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(OwnerKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID, or empty string if not set.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey{}).(string); ok {
		return v
	}
	return ""
}
