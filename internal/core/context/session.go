// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Session is the console identity for one request: who is acting and for which store.
// It is built once by the auth middleware and passed explicitly to domain services.
type Session struct {
	SessionID string
	UserID    string
	UserName  string
	StoreID   string
	StoreKind string // own, franchise, ...
	Roles     []string

	// Token is forwarded to the inventory backend as a bearer credential.
	Token string
}

// HasRole checks if the session carries a specific role.
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type sessionContextKey struct{}

// WithSession adds Session to context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// GetSession returns Session from context.
func GetSession(ctx context.Context) *Session {
	if v, ok := ctx.Value(sessionContextKey{}).(*Session); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if s := GetSession(ctx); s != nil {
		return s.UserID
	}
	return ""
}

// GetStoreID returns the active store ID from context or empty string.
func GetStoreID(ctx context.Context) string {
	if s := GetSession(ctx); s != nil {
		return s.StoreID
	}
	return ""
}
