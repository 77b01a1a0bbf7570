// Package guard decides whether a navigation may proceed.
//
// Decide is pure: it reads the target's access requirement and the session
// passed in, and never touches any store. A missing login and a wrong role
// both send the caller to the login page; there is no separate forbidden
// outcome.
package guard

import (
	"github.com/parkd-dev/parkd/internal/roles"
	"github.com/parkd-dev/parkd/internal/routes"
	"github.com/parkd-dev/parkd/internal/session"
)

// Action is the outcome kind of a decision
type Action int

const (
	Continue Action = iota
	Redirect
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Decision is the result of evaluating a navigation attempt
type Decision struct {
	Action Action
	// Path is set only for Redirect
	Path string
}

// Allowed reports whether the navigation proceeds to its target
func (d Decision) Allowed() bool {
	return d.Action == Continue
}

func proceed() Decision {
	return Decision{Action: Continue}
}

func redirectTo(path string) Decision {
	return Decision{Action: Redirect, Path: path}
}

// Decide evaluates a navigation from current to target for the given session.
// current is part of the navigation signature but does not influence the result.
func Decide(target, current routes.Descriptor, s session.Session) Decision {
	_ = current

	if !target.Protected() {
		return proceed()
	}
	if !s.Authenticated() {
		return redirectTo(routes.LoginPath)
	}
	if role := target.RequiredRole(); role != roles.None && role != s.Role {
		return redirectTo(routes.LoginPath)
	}
	return proceed()
}
