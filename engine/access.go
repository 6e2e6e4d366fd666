package engine

import "reflect"

// GetStore returns the store for component type T, registering it on first use
func GetStore[T any](w *World) *Store[T] {
	t := reflect.TypeFor[T]()

	w.mu.RLock()
	s, ok := w.stores[t]
	w.mu.RUnlock()
	if ok {
		return s.(*Store[T])
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock
	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	store := NewStore[T]()
	w.stores[t] = store
	return store
}

// Read returns a read-only view over component storage T
func Read[T any](w *World) View[T] {
	return GetStore[T](w)
}

// Write returns the mutable component storage T
// Systems run sequentially, so a writer holds the storage for its whole invocation
func Write[T any](w *World) *Store[T] {
	return GetStore[T](w)
}
