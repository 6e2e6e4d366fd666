package engine

import (
	"sort"

	"github.com/lixenwraith/tanks/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection
// The query optimizes by starting with the smallest store and filtering through larger ones
type QueryBuilder struct {
	world    *World
	stores   []AnyStore
	without  []AnyStore
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder for finding entities with specific component combinations
//
// Example:
//
//	tanks := world.Query().
//	    With(engine.Read[component.Tank](world)).
//	    With(engine.Read[component.Position](world)).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]AnyStore, 0, 4),
	}
}

// With adds a component store to the query filter
// Panics if called after Execute()
func (qb *QueryBuilder) With(store any) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, asAnyStore(store))
	return qb
}

// Without excludes entities present in the store
func (qb *QueryBuilder) Without(store any) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.without = append(qb.without, asAnyStore(store))
	return qb
}

// Execute runs the query and returns entities present in all With stores and no Without store
// Results follow the insertion order of the smallest store; repeated calls return the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	// Stable so equal-size stores keep the order they were added in
	sort.SliceStable(qb.stores, func(i, j int) bool {
		return qb.stores[i].Count() < qb.stores[j].Count()
	})

	candidates := qb.stores[0].All()
	for i := 1; i < len(qb.stores) && len(candidates) > 0; i++ {
		store := qb.stores[i]
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
	}

	if len(qb.without) > 0 {
		filtered := candidates[:0]
	next:
		for _, e := range candidates {
			for _, s := range qb.without {
				if s.Has(e) {
					continue next
				}
			}
			filtered = append(filtered, e)
		}
		candidates = filtered
	}

	qb.results = candidates
	return qb.results
}

func asAnyStore(store any) AnyStore {
	s, ok := store.(AnyStore)
	if !ok {
		panic("query filter is not a component store")
	}
	return s
}
