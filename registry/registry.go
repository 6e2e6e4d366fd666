// Package registry maps system names to factories so matches can be assembled by name
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/tanks/engine"
)

// SystemFactory creates a System bound to a World
type SystemFactory func(w *engine.World) engine.System

var (
	systemsMu sync.RWMutex
	systems   = make(map[string]SystemFactory)
)

// RegisterSystem adds or replaces a system factory by name
func RegisterSystem(name string, factory SystemFactory) {
	systemsMu.Lock()
	defer systemsMu.Unlock()
	systems[name] = factory
}

// GetSystem retrieves a system factory by name
func GetSystem(name string) (SystemFactory, bool) {
	systemsMu.RLock()
	defer systemsMu.RUnlock()
	f, ok := systems[name]
	return f, ok
}

// SystemNames returns all registered system names, sorted
func SystemNames() []string {
	systemsMu.RLock()
	defer systemsMu.RUnlock()
	names := make([]string, 0, len(systems))
	for name := range systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instantiates the named systems against w and adds them to it
// Fails before adding anything if a name is unknown
func Build(w *engine.World, names ...string) ([]engine.System, error) {
	systemsMu.RLock()
	factories := make([]SystemFactory, 0, len(names))
	for _, name := range names {
		f, ok := systems[name]
		if !ok {
			systemsMu.RUnlock()
			return nil, fmt.Errorf("registry: unknown system %q", name)
		}
		factories = append(factories, f)
	}
	systemsMu.RUnlock()

	built := make([]engine.System, 0, len(factories))
	for _, f := range factories {
		s := f(w)
		w.AddSystem(s)
		built = append(built, s)
	}
	return built, nil
}
