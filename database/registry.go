package database

import (
	"fmt"
	"sync"
)

// Registry holds named data sources in registration order.
type Registry struct {
	mu      sync.RWMutex
	sources []*Source
	lookup  map[string]*Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{lookup: make(map[string]*Source)}
}

// Register adds a source. Source names must be unique.
func (r *Registry) Register(s *Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lookup[s.Name()]; exists {
		return fmt.Errorf("data source %s already registered", s.Name())
	}
	r.sources = append(r.sources, s)
	r.lookup[s.Name()] = s
	return nil
}

// Get returns the source with the given name, or nil.
func (r *Registry) Get(name string) *Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup[name]
}

// Sources returns all registered sources in registration order.
func (r *Registry) Sources() []*Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Source, len(r.sources))
	copy(out, r.sources)
	return out
}
