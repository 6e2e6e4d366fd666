package system

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/status"
	"github.com/lixenwraith/tanks/terrain"
)

// CollisionSystem retires projectiles that leave the world or hit terrain
// Bounds are checked first so terrain is only sampled inside its domain
type CollisionSystem struct {
	engine.SystemBase

	statExplosions *atomic.Int64
	statLost       *atomic.Int64
}

func NewCollisionSystem(w *engine.World) *CollisionSystem {
	return &CollisionSystem{
		SystemBase:     engine.NewSystemBase("collision", parameter.PriorityCollision),
		statExplosions: counter(w, status.KeyExplosions),
		statLost:       counter(w, status.KeyLost),
	}
}

func (s *CollisionSystem) Update(w *engine.World, dt float64) {
	dim := engine.ReadResource[engine.Dimensions](w)
	ground, hasTerrain := engine.LookupResource[terrain.Terrain](w)

	projectiles := engine.Read[component.ProjectileComponent](w)
	positions := engine.Read[component.PositionComponent](w)

	for _, e := range w.Query().With(projectiles).With(positions).Execute() {
		if w.IsPendingDelete(e) {
			continue
		}
		pos, _ := positions.Get(e)
		x, y := pos.Point.X(), pos.Point.Y()

		if !dim.InBounds(x, y) {
			w.Delete(e)
			s.statLost.Add(1)
			emit(w, event.EventProjectileLost, event.ProjectileLostPayload{X: x, Y: y})
			log.Debug().Stringer("entity", e).Float64("x", x).Float64("y", y).Msg("Projectile out of bounds")
			continue
		}

		if hasTerrain && ground.Height(x) > y {
			w.Delete(e)
			spawnExplosion(w, pos)
			s.statExplosions.Add(1)
			emit(w, event.EventExplosionSpawned, event.ExplosionSpawnedPayload{X: x, Y: y})
			log.Debug().Stringer("entity", e).Float64("x", x).Float64("y", y).Msg("Projectile hit terrain")
		}
	}
}

// spawnExplosion creates an explosion entity at the impact point
func spawnExplosion(w *engine.World, at component.PositionComponent) core.Entity {
	r := rules(w)
	eb := w.NewEntity()
	engine.With(eb, engine.Write[component.PositionComponent](w), component.PositionComponent{
		Point: at.Point,
		Scale: r.ExplosionScale,
	})
	engine.With(eb, engine.Write[component.ExplosionComponent](w), component.ExplosionComponent{
		TimeRemaining: r.ExplosionDuration,
	})
	engine.With(eb, engine.Write[component.DrawableComponent](w), component.DrawableComponent{
		Drawable: component.ExplosionDrawable{Locals: component.Locals{Color: component.ColorExplosion}},
	})
	return eb.Build()
}
