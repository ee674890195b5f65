package graph

import "context"

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID attaches the authenticated user id to the request context.
func WithUserID(ctx context.Context, userId uint) context.Context {
	return context.WithValue(ctx, userIDKey, userId)
}

// UserID returns 0 for anonymous requests.
func UserID(ctx context.Context) uint {
	id, _ := ctx.Value(userIDKey).(uint)
	return id
}
