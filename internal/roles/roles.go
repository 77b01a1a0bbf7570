package roles

import (
	"errors"
	"fmt"
)

// Role is the coarse access class attached to a session and to protected routes
type Role string

const (
	// None is the zero value: no role present
	None  Role = ""
	Admin Role = "admin"
	User  Role = "user"
)

// ErrInvalidRole is returned when a string does not name a known role
var ErrInvalidRole = errors.New("invalid role")

// All returns every known role in declaration order
func All() []Role {
	return []Role{Admin, User}
}

// Parse converts a raw value into a Role. Matching is exact; the empty
// string parses to None.
func Parse(value string) (Role, error) {
	switch value {
	case "":
		return None, nil
	case string(Admin):
		return Admin, nil
	case string(User):
		return User, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	for _, known := range All() {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// HomePath is the landing page for a freshly logged in session of this role
func (r Role) HomePath() string {
	switch r {
	case Admin:
		return "/admin/dashboard"
	case User:
		return "/user/dashboard"
	case None:
		return "/login"
	}
	return "/login"
}
