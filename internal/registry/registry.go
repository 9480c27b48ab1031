// Package registry provides a keyed registry for named definitions such as
// characteristics, buffs and built-in scenarios.
//
// Registries are plain values constructed by their owner and passed to the
// components that need them, so tests can build isolated fixtures.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores definitions of type T under unique string IDs.
// It is safe for concurrent use.
type Registry[T any] struct {
	kind  string
	items map[string]T
	mu    sync.RWMutex
}

// Info contains metadata about a registered definition.
type Info struct {
	ID    string
	Title string
}

// New creates an empty registry. Kind names the stored definitions in
// panic and error messages (e.g., "characteristic").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

// Register adds a definition to the registry.
// Panics if a definition with the same ID is already registered.
func (r *Registry[T]) Register(id string, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", r.kind, id))
	}

	r.items[id] = item
}

// Get returns the definition registered under id.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok
}

// Lookup returns the definition registered under id.
// Returns an error if the ID is not registered.
func (r *Registry[T]) Lookup(id string) (T, error) {
	item, ok := r.Get(id)
	if !ok {
		return item, fmt.Errorf("registry: unknown %s %q", r.kind, id)
	}
	return item, nil
}

// Exists checks if a definition with the given ID is registered.
func (r *Registry[T]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}

// IDs returns every registered ID, sorted.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.items))
	for id := range r.items {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// List returns information about all registered definitions, sorted by ID.
// The title callback extracts a display name from each definition.
func (r *Registry[T]) List(title func(T) string) []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.items))
	for id, item := range r.items {
		result = append(result, Info{
			ID:    id,
			Title: title(item),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Len returns the number of registered definitions.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
