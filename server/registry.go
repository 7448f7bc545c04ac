package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/skison/dijkstramap"
)

// Registry errors.
var (
	errMapExists   = errors.New("server: map already exists")
	errMapNotFound = errors.New("server: map not found")
)

// entry pairs one hosted map with the mutex that serializes access to it.
// Handlers lock the entry, not the registry, so requests against different
// maps run concurrently.
type entry struct {
	mu sync.Mutex
	m  *dijkstramap.Map
}

// registry is the set of named maps the server hosts.
type registry struct {
	mu   sync.RWMutex
	maps map[string]*entry
}

func newRegistry() *registry {
	return &registry{maps: make(map[string]*entry)}
}

// create registers m under name.
func (r *registry) create(name string, m *dijkstramap.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.maps[name]; ok {
		return fmt.Errorf("%w: %s", errMapExists, name)
	}
	r.maps[name] = &entry{m: m}

	return nil
}

// get returns the entry for name. Callers hold entry.mu around any use
// of entry.m.
func (r *registry) get(name string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.maps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errMapNotFound, name)
	}

	return e, nil
}

// remove drops name from the registry. In-flight requests holding the
// entry finish against the orphaned map.
func (r *registry) remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.maps[name]; !ok {
		return fmt.Errorf("%w: %s", errMapNotFound, name)
	}
	delete(r.maps, name)

	return nil
}

// names lists the registered map names in lexicographic order.
func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.maps))
	for name := range r.maps {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
