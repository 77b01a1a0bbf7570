package session

import (
	"context"

	"github.com/parkd-dev/parkd/internal/roles"
)

// Keys under which the host store keeps the session identity
const (
	UsernameKey = "username"
	RoleKey     = "role"
)

// Session is the identity a navigation is evaluated against. It is owned by
// the login and logout flows; navigation code only reads it.
type Session struct {
	Username string     `json:"username,omitempty"`
	Role     roles.Role `json:"role,omitempty"`
}

// Anonymous is the empty session
var Anonymous = Session{}

// Authenticated reports whether a username is present
func (s Session) Authenticated() bool {
	return s.Username != ""
}

// Store is a host provided string key/value store
type Store interface {
	Get(key string) string
}

// MapStore is an in-memory Store
type MapStore map[string]string

// Get returns the value for key or the empty string
func (m MapStore) Get(key string) string {
	return m[key]
}

// FromStore reads a session out of a key/value store. A role value that is
// not a known role reads as no role.
func FromStore(store Store) Session {
	if store == nil {
		return Anonymous
	}
	role, err := roles.Parse(store.Get(RoleKey))
	if err != nil {
		role = roles.None
	}
	return Session{
		Username: store.Get(UsernameKey),
		Role:     role,
	}
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session carried by ctx, or Anonymous
func FromContext(ctx context.Context) Session {
	s, ok := ctx.Value(contextKey{}).(Session)
	if !ok {
		return Anonymous
	}
	return s
}
