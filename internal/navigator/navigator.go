package navigator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/parkd-dev/parkd/internal/guard"
	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/routes"
	"github.com/parkd-dev/parkd/internal/session"
)

const maxHops = 4

var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Record describes one guard evaluation
type Record struct {
	Target   string
	From     string
	Session  session.Session
	Decision guard.Decision
}

// Recorder receives every guard decision the navigator makes
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Outcome is where a navigation ended up
type Outcome struct {
	Path       string     `json:"path"`
	Page       pages.Page `json:"page"`
	Redirected bool       `json:"redirected"`
	// Trail lists every path visited, starting with the requested one
	Trail      []string   `json:"trail"`
}

// Navigator resolves navigation requests against a route table
type Navigator struct {
	table    *routes.Table
	pages    *pages.Registry
	recorder Recorder
	logger   zerolog.Logger
}

// Option customizes a Navigator
type Option func(*Navigator)

// WithRecorder reports each decision to r
func WithRecorder(r Recorder) Option {
	return func(n *Navigator) {
		n.recorder = r
	}
}

// WithLogger sets the navigator logger
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// New creates a navigator. Every page referenced by the table must be
// registered in reg.
func New(table *routes.Table, reg *pages.Registry, opts ...Option) *Navigator {
	n := &Navigator{
		table:  table,
		pages:  reg,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Table returns the route table the navigator matches against
func (n *Navigator) Table() *routes.Table {
	return n.table
}

// Navigate moves from one path to another with the given session. Redirect
// aliases and guard redirects are followed until a page is reached.
func (n *Navigator) Navigate(ctx context.Context, to, from string, s session.Session) (Outcome, error) {
	current, _ := n.table.Lookup(from)
	outcome := Outcome{}
	path := to

	for hop := 0; ; hop++ {
		if hop >= maxHops {
			return outcome, fmt.Errorf("%w: %v", ErrTooManyRedirects, outcome.Trail)
		}
		outcome.Trail = append(outcome.Trail, path)

		target, ok := n.table.Lookup(path)
		if !ok {
			return outcome, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
		}

		if target.IsRedirect() {
			outcome.Redirected = true
			path = target.RedirectTo
			continue
		}

		decision := guard.Decide(target, current, s)
		n.record(ctx, Record{Target: target.Path, From: current.Path, Session: s, Decision: decision})

		if !decision.Allowed() {
			n.logger.Debug().
				Str("target", target.Path).
				Str("from", current.Path).
				Str("username", s.Username).
				Str("role", s.Role.String()).
				Str("redirect", decision.Path).
				Msg("Navigation redirected")
			outcome.Redirected = true
			path = decision.Path
			continue
		}

		page, err := n.pages.Resolve(target.Page)
		if err != nil {
			return outcome, fmt.Errorf("failed to resolve page for %s: %w", target.Path, err)
		}

		outcome.Path = target.Path
		outcome.Page = page
		return outcome, nil
	}
}

func (n *Navigator) record(ctx context.Context, rec Record) {
	if n.recorder == nil {
		return
	}
	if err := n.recorder.Record(ctx, rec); err != nil {
		n.logger.Warn().Err(err).Str("target", rec.Target).Msg("Failed to record navigation decision")
	}
}

// RegisterPages fills reg with a static page for every page route in table,
// deferring construction for lazy routes.
func RegisterPages(reg *pages.Registry, table *routes.Table) error {
	for _, d := range table.All() {
		if d.IsRedirect() {
			continue
		}
		section := "public"
		if d.Protected() {
			section = d.RequiredRole().String()
			if section == "" {
				section = "account"
			}
		}

		factory := pages.Static(d.Page, section)
		var err error
		if d.Lazy {
			err = reg.RegisterLazy(d.Page, factory)
		} else {
			err = reg.Register(d.Page, factory)
		}
		if err != nil && !errors.Is(err, pages.ErrDuplicatePage) {
			return err
		}
	}
	return nil
}
