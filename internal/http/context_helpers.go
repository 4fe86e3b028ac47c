package httpx

import (
	"context"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
)

// sessionKey is the context key for the authenticated session. An unexported
// struct type avoids collisions with keys from other packages.
type sessionKey struct{}

// SetSessionInContext returns a context carrying the session.
func SetSessionInContext(ctx context.Context, sess domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// GetSessionFromContext returns the session stored by the auth middleware,
// if any.
func GetSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	return sess, ok
}
