package engine

import (
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/core"
)

// World contains all entities, their components in typed stores, resources and systems
// Entities live in a generation-tagged arena: a deleted slot is reused with a bumped
// generation so stale handles never resolve to the new occupant
type World struct {
	mu sync.RWMutex

	// Entity arena
	generations []uint32      // Current generation per slot, slot 0 unused
	free        []uint32      // Recycled slots
	pending     []core.Entity // Deletions deferred to Flush
	pendingSet  map[core.Entity]struct{}

	stores map[reflect.Type]AnyStore

	// Global ResourceStore
	Resources *ResourceStore

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		generations: make([]uint32, 1, 64),
		pendingSet:  make(map[core.Entity]struct{}),
		stores:      make(map[reflect.Type]AnyStore),
		Resources:   NewResourceStore(),
		systems:     make([]System, 0),
	}
}

// CreateEntity reserves a new entity handle, visible immediately
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		return core.NewEntity(idx, w.generations[idx])
	}

	idx := uint32(len(w.generations))
	w.generations = append(w.generations, 1)
	return core.NewEntity(idx, 1)
}

// IsAlive reports whether the handle refers to a live entity
// Entities marked for deletion stay alive until the next Flush
func (w *World) IsAlive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isAliveLocked(e)
}

func (w *World) isAliveLocked(e core.Entity) bool {
	idx := e.Index()
	if e == core.NoEntity || int(idx) >= len(w.generations) {
		return false
	}
	return w.generations[idx] == e.Generation()
}

// IsPendingDelete reports whether the entity has been marked for deletion this tick
func (w *World) IsPendingDelete(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.pendingSet[e]
	return ok
}

// Delete marks the entity for removal at the next Flush
// Deleting a stale or already pending handle is a no-op
func (w *World) Delete(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isAliveLocked(e) {
		return
	}
	if _, ok := w.pendingSet[e]; ok {
		return
	}
	w.pendingSet[e] = struct{}{}
	w.pending = append(w.pending, e)
}

// Flush applies pending deletions: components are removed from every store,
// slot generations are bumped and slots returned to the free list
// Returns the number of entities removed
func (w *World) Flush() int {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return 0
	}
	batch := w.pending
	w.pending = nil
	w.pendingSet = make(map[core.Entity]struct{})

	stores := make([]AnyStore, 0, len(w.stores))
	for _, s := range w.stores {
		stores = append(stores, s)
	}

	for _, e := range batch {
		idx := e.Index()
		w.generations[idx]++
		if w.generations[idx] == 0 {
			// Wrapped: skip the reserved zero generation
			w.generations[idx] = 1
		}
		w.free = append(w.free, idx)
	}
	w.mu.Unlock()

	for _, s := range stores {
		s.RemoveBatch(batch)
	}

	log.Trace().Int("count", len(batch)).Msg("Flushed deleted entities")
	return len(batch)
}

// EntityCount returns the number of live entities, including pending deletions
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.generations) - 1 - len(w.free)
}

// Clear removes all entities and components, resources and systems are kept
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for idx := 1; idx < len(w.generations); idx++ {
		w.generations[idx]++
		if w.generations[idx] == 0 {
			w.generations[idx] = 1
		}
	}
	w.free = w.free[:0]
	for idx := len(w.generations) - 1; idx >= 1; idx-- {
		w.free = append(w.free, uint32(idx))
	}
	w.pending = nil
	w.pendingSet = make(map[core.Entity]struct{})
	for _, s := range w.stores {
		s.Clear()
	}
}

// AddSystem adds a system to the world, ordered by priority
// Equal priorities keep registration order
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Insertion sort, stable for equal priorities
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i-1].Priority() <= w.systems[i].Priority() {
			break
		}
		w.systems[i-1], w.systems[i] = w.systems[i], w.systems[i-1]
	}
}

// Systems returns a copy of all registered systems in execution order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Tick runs every system once in priority order, then applies deferred deletions
func (w *World) Tick(dt float64) {
	w.RunSafe(func() {
		w.TickLocked(dt)
	})
}

// TickLocked runs a tick assuming the caller already holds the update lock
func (w *World) TickLocked(dt float64) {
	systems := w.Systems()
	for _, system := range systems {
		system.Update(w, dt)
	}
	w.Flush()
}
