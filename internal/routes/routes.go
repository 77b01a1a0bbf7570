package routes

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/roles"
)

// LoginPath is the fallback target for every refused navigation
const LoginPath = "/login"

var (
	ErrDuplicatePath   = errors.New("duplicate route path")
	ErrInvalidRoute    = errors.New("invalid route")
	ErrUnknownRedirect = errors.New("redirect target not in table")
)

// Access is the requirement a session must meet to enter a route.
// A zero Role means any authenticated session is accepted.
type Access struct {
	Role roles.Role `json:"role,omitempty" yaml:"role"`
}

// Descriptor associates a path with a page and an optional access requirement.
// A descriptor with RedirectTo set is an alias and has no page.
type Descriptor struct {
	Path       string   `json:"path" validate:"required,startswith=/,excludesall=:*?"`
	Page       pages.ID `json:"page,omitempty" validate:"required_without=RedirectTo,excluded_with=RedirectTo"`
	Access     *Access  `json:"access,omitempty"`
	RedirectTo string   `json:"redirect_to,omitempty" validate:"omitempty,startswith=/"`
	Lazy       bool     `json:"lazy,omitempty"`
}

// Protected reports whether the route carries an access requirement
func (d Descriptor) Protected() bool {
	return d.Access != nil
}

// RequiredRole returns the role the route demands, or roles.None
func (d Descriptor) RequiredRole() roles.Role {
	if d.Access == nil {
		return roles.None
	}
	return d.Access.Role
}

// IsRedirect reports whether the descriptor is an alias for another path
func (d Descriptor) IsRedirect() bool {
	return d.RedirectTo != ""
}

// clone returns a copy of d that shares no memory with the original
func (d Descriptor) clone() Descriptor {
	if d.Access != nil {
		access := *d.Access
		d.Access = &access
	}
	return d
}

var validate = validator.New()

// Validate checks a single descriptor in isolation
func Validate(d Descriptor) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidRoute, d.Path, err)
	}
	if d.Access != nil && d.Access.Role != roles.None && !d.Access.Role.Valid() {
		return fmt.Errorf("%w %q: %w: %q", ErrInvalidRoute, d.Path, roles.ErrInvalidRole, d.Access.Role)
	}
	if d.IsRedirect() && (d.Access != nil || d.Lazy) {
		return fmt.Errorf("%w %q: redirect routes carry no access requirement or page", ErrInvalidRoute, d.Path)
	}
	return nil
}

// Table is an ordered, immutable set of routes matched by exact path
type Table struct {
	routes []Descriptor
	index  map[string]int
}

// New builds a table from descriptors in the given order
func New(descs ...Descriptor) (*Table, error) {
	t := &Table{
		routes: make([]Descriptor, 0, len(descs)),
		index:  make(map[string]int, len(descs)),
	}

	for _, d := range descs {
		if err := Validate(d); err != nil {
			return nil, err
		}
		if _, exists := t.index[d.Path]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, d.Path)
		}
		t.index[d.Path] = len(t.routes)
		t.routes = append(t.routes, d.clone())
	}

	for _, d := range t.routes {
		if !d.IsRedirect() {
			continue
		}
		if _, ok := t.index[d.RedirectTo]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownRedirect, d.Path, d.RedirectTo)
		}
	}

	return t, nil
}

// Lookup returns the descriptor registered for exactly path
func (t *Table) Lookup(path string) (Descriptor, bool) {
	i, ok := t.index[path]
	if !ok {
		return Descriptor{}, false
	}
	return t.routes[i].clone(), true
}

// All returns a copy of the descriptors in declaration order
func (t *Table) All() []Descriptor {
	out := make([]Descriptor, len(t.routes))
	for i, d := range t.routes {
		out[i] = d.clone()
	}
	return out
}

// Protected returns the descriptors that carry an access requirement
func (t *Table) Protected() []Descriptor {
	var out []Descriptor
	for _, d := range t.routes {
		if d.Protected() {
			out = append(out, d.clone())
		}
	}
	return out
}

// Len returns the number of routes
func (t *Table) Len() int {
	return len(t.routes)
}
