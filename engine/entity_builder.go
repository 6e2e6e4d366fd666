package engine

import "github.com/lixenwraith/tanks/core"

// EntityBuilder provides a fluent, type-safe interface for constructing entities with components
// The entity handle is reserved upfront; components land in their stores as With is called
//
// Example:
//
//	shell := engine.With(engine.With(world.NewEntity(),
//	    engine.Write[component.Projectile](world), component.Projectile{}),
//	    engine.Write[component.Mass](world), component.Mass{Value: 75}).
//	    Build()
type EntityBuilder struct {
	world  *World
	entity core.Entity
	built  bool
}

// NewEntity creates a new EntityBuilder with a reserved entity handle
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.CreateEntity(),
	}
}

// With adds a component of type T to the entity being built
// Panics if called after Build()
func With[T any](eb *EntityBuilder, store *Store[T], component T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	store.Set(eb.entity, component)
	return eb
}

// Entity returns the reserved handle without finalizing the builder
func (eb *EntityBuilder) Entity() core.Entity {
	return eb.entity
}

// Build finalizes entity construction and returns the entity handle
func (eb *EntityBuilder) Build() core.Entity {
	eb.built = true
	return eb.entity
}
