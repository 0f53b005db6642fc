package auth

import "context"

type contextKey string

const userIDContextKey contextKey = "auth-user-id"

// ContextWithUserID returns a child context carrying the authenticated
// user's ID.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts the authenticated user's ID, if any.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
