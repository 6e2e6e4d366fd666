package engine

import (
	"reflect"
	"sync"
)

// ResourceStore is a thread-safe container for global game resources
// It allows systems to access shared data (Terrain, ActivePlayer, Dimensions)
// without coupling to the match that created them
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces a resource keyed by its static type
// Pointer types are recommended so writers can mutate in place
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.resources[reflect.TypeFor[T]()] = resource
}

// GetResource retrieves a resource of type T from the store
// Returns the zero value of T and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	val, ok := rs.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
// Used for resources a match always installs before systems run
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		panic("Required resource not found: " + reflect.TypeFor[T]().String())
	}
	return res
}

// SetResource installs a singleton resource of type T in the world
func SetResource[T any](w *World, res *T) {
	AddResource[*T](w.Resources, res)
}

// ReadResource returns a copy of resource T
func ReadResource[T any](w *World) T {
	return *MustGetResource[*T](w.Resources)
}

// WriteResource returns resource T for in-place mutation
func WriteResource[T any](w *World) *T {
	return MustGetResource[*T](w.Resources)
}

// LookupResource returns resource T if it has been installed
func LookupResource[T any](w *World) (*T, bool) {
	return GetResource[*T](w.Resources)
}
