package session

import (
	"context"

	"flightdeck.io/console/internal/authz"
)

// Session is the authenticated identity for one interactive context. It
// exists iff the operator has logged in and not logged out; it is destroyed
// whole, never field by field.
type Session struct {
	UserID       int64
	Email        string
	Username     string
	Role         authz.Role
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether s carries both a token and a valid role.
// Anything less is treated as "no session".
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != "" && s.Role.Valid()
}

type sessionContextKey struct{}

// ContextWithSession attaches the restored session to the request context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext extracts the session previously attached by the route guard.
func FromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	v, ok := ctx.Value(sessionContextKey{}).(*Session)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// RoleFromContext returns the role of the context session, or the zero Role
// when no session is attached. The zero Role denies everywhere in authz.
func RoleFromContext(ctx context.Context) authz.Role {
	if sess, ok := FromContext(ctx); ok {
		return sess.Role
	}
	return ""
}

// TokenFromContext returns the bearer token of the context session.
func TokenFromContext(ctx context.Context) (string, bool) {
	sess, ok := FromContext(ctx)
	if !ok || sess.AccessToken == "" {
		return "", false
	}
	return sess.AccessToken, true
}
