package provider

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps extension IDs to factories. The zero value is not usable; use NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds f. It panics when f is nil, its ID is blank or contains '/',
// or the ID is already taken: all of these are programming errors surfaced at
// init time.
func (r *Registry) Register(f Factory) {
	if f == nil {
		panic("provider: Register factory is nil")
	}
	id := f.ID()
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		panic(fmt.Sprintf("provider: invalid factory ID %q", id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[id]; dup {
		panic(fmt.Sprintf("provider: Register called twice for %q", id))
	}
	r.factories[id] = f
}

// Factories returns all registered factories sorted by ID.
func (r *Registry) Factories() []Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Factory, 0, len(r.factories))
	for _, f := range r.factories {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Factory) int { return strings.Compare(a.ID(), b.ID()) })
	return out
}

var defaultRegistry = NewRegistry()

// Register adds f to the default registry. Extensions call it from init.
func Register(f Factory) { defaultRegistry.Register(f) }

// Factories lists the default registry sorted by ID.
func Factories() []Factory { return defaultRegistry.Factories() }
