// Package manifest registers the stock simulation systems with the registry
package manifest

import (
	"sync"

	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/registry"
	"github.com/lixenwraith/tanks/system"
)

// SimulationSystems is the per-match system set, excluding the turn machine,
// AI controllers and the draw system which the match wires itself
var SimulationSystems = []string{
	"predraw-terrain",
	"predraw-tank",
	"predraw-projectile",
	"predraw-explosion",
	"collision",
	"inertia",
	"gravity",
	"explosion",
	"firing",
	"tank-control",
}

var once sync.Once

// RegisterSystems registers all system factories with the registry
// Safe to call more than once
func RegisterSystems() {
	once.Do(func() {
		registry.RegisterSystem("predraw-terrain", func(*engine.World) engine.System {
			return system.NewTerrainPreDrawSystem()
		})
		registry.RegisterSystem("predraw-tank", func(*engine.World) engine.System {
			return system.NewTankPreDrawSystem()
		})
		registry.RegisterSystem("predraw-projectile", func(*engine.World) engine.System {
			return system.NewProjectilePreDrawSystem()
		})
		registry.RegisterSystem("predraw-explosion", func(*engine.World) engine.System {
			return system.NewExplosionPreDrawSystem()
		})
		registry.RegisterSystem("collision", func(w *engine.World) engine.System {
			return system.NewCollisionSystem(w)
		})
		registry.RegisterSystem("inertia", func(*engine.World) engine.System {
			return system.NewInertiaSystem()
		})
		registry.RegisterSystem("gravity", func(*engine.World) engine.System {
			return system.NewGravitySystem()
		})
		registry.RegisterSystem("explosion", func(w *engine.World) engine.System {
			return system.NewExplosionSystem(w)
		})
		registry.RegisterSystem("firing", func(w *engine.World) engine.System {
			return system.NewFiringSystem(w)
		})
		registry.RegisterSystem("tank-control", func(*engine.World) engine.System {
			return system.NewTankControlSystem()
		})
	})
}
