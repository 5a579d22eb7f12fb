package internal

import "context"

type ctxKey string

const ContextUsernameKey ctxKey = "username"

// UsernameFromContext returns the logged-in username carried by the portal
// loop, or "" before authentication.
func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if username, ok := ctx.Value(ContextUsernameKey).(string); ok {
		return username
	}
	return ""
}

func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextUsernameKey, username)
}
