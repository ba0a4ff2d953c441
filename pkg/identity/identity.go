package identity

import "context"

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the authenticated caller of the current request. It lives in
// the request context only, never in package-level state.
type Identity struct {
	UserID   string
	Username string
}

func WithContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	return id, ok && id != nil
}
