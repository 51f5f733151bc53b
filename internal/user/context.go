package user

import "context"

type contextKey struct{}

// ContextWithID stores the authenticated user's id in ctx.
func ContextWithID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

func IDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKey{}).(string)
	return userID, ok && userID != ""
}
