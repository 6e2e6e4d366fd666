package system

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/status"
)

// counter returns the registry metric for key, or a detached counter when the world has no registry
func counter(w *engine.World, key string) *atomic.Int64 {
	if reg, ok := engine.LookupResource[status.Registry](w); ok {
		return reg.Ints.Get(key)
	}
	return new(atomic.Int64)
}

// gauge is counter for float metrics
func gauge(w *engine.World, key string) *status.Float {
	if reg, ok := engine.LookupResource[status.Registry](w); ok {
		return reg.Floats.Get(key)
	}
	return new(status.Float)
}

// emit pushes a game event if the world carries a queue
func emit(w *engine.World, t event.EventType, payload any) {
	if q, ok := engine.LookupResource[event.EventQueue](w); ok {
		q.Emit(t, payload)
	}
}

// rules returns the match rules, falling back to defaults
func rules(w *engine.World) engine.Rules {
	if r, ok := engine.LookupResource[engine.Rules](w); ok {
		return *r
	}
	return engine.DefaultRules()
}

// missingComponent reports an entity lacking a component a system expected
func missingComponent(e core.Entity, name string) error {
	return fmt.Errorf("%v: missing %s component", e, name)
}
