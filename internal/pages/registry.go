package pages

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrUnknownPage   = errors.New("unknown page")
	ErrDuplicatePage = errors.New("page already registered")
)

type entry struct {
	once    sync.Once
	factory Factory
	page    Page
	err     error
	lazy    bool
	built   atomic.Bool
}

func (e *entry) resolve() (Page, error) {
	e.once.Do(func() {
		e.page, e.err = e.factory()
		e.built.Store(true)
	})
	return e.page, e.err
}

// Registry maps page ids to their factories. Eager pages are built on
// registration, lazy ones on first Resolve.
type Registry struct {
	mu      sync.RWMutex
	entries map[ID]*entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ID]*entry)}
}

// Register adds a page and builds it immediately
func (r *Registry) Register(id ID, factory Factory) error {
	e, err := r.add(id, factory, false)
	if err != nil {
		return err
	}
	if _, err := e.resolve(); err != nil {
		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()
		return fmt.Errorf("failed to build page %s: %w", id, err)
	}
	return nil
}

// RegisterLazy adds a page whose factory runs on the first Resolve
func (r *Registry) RegisterLazy(id ID, factory Factory) error {
	_, err := r.add(id, factory, true)
	return err
}

func (r *Registry) add(id ID, factory Factory, lazy bool) (*entry, error) {
	if factory == nil {
		return nil, fmt.Errorf("nil factory for page %s", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePage, id)
	}
	e := &entry{factory: factory, lazy: lazy}
	r.entries[id] = e
	return e, nil
}

// Resolve returns the page for id, building a lazy page exactly once
func (r *Registry) Resolve(id ID) (Page, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}
	return e.resolve()
}

// Resolved reports whether the page for id has been built
func (r *Registry) Resolved(id ID) bool {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	return ok && e.built.Load()
}

// Lazy reports whether id was registered with deferred construction
func (r *Registry) Lazy(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return ok && e.lazy
}
