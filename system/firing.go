package system

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/control"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/status"
)

// FiringSystem turns the active player's fire command into a projectile
// Several fire signals queued before a drain collapse into one shot;
// signals from any other player are dropped
type FiringSystem struct {
	engine.SystemBase

	statShots *atomic.Int64
}

func NewFiringSystem(w *engine.World) *FiringSystem {
	return &FiringSystem{
		SystemBase: engine.NewSystemBase("firing", parameter.PriorityFiring),
		statShots:  counter(w, status.KeyShots),
	}
}

func (s *FiringSystem) Update(w *engine.World, dt float64) {
	board, ok := engine.LookupResource[control.Board](w)
	if !ok {
		return
	}
	active := engine.WriteResource[engine.ActivePlayer](w)
	roster := engine.WriteResource[engine.Roster](w)

	for _, c := range board.All() {
		n := c.TakeFire()
		if n == 0 {
			continue
		}
		if !active.Is(c.Player()) {
			log.Debug().Int("player", c.Player()).Msg("Discarded fire from inactive player")
			continue
		}
		if n > 1 {
			log.Debug().Int("player", c.Player()).Int("signals", n).Msg("Collapsed fire signals")
		}

		player, ok := roster.Lookup(c.Player())
		if !ok || !w.IsAlive(player.Tank) {
			continue
		}
		if _, err := s.fire(w, player); err != nil {
			log.Warn().Err(err).Int("player", player.Number).Msg("Fire skipped")
		}
	}
}

func (s *FiringSystem) fire(w *engine.World, player engine.Player) (core.Entity, error) {
	tank, ok := engine.Read[component.TankComponent](w).Get(player.Tank)
	if !ok {
		return core.NoEntity, missingComponent(player.Tank, "tank")
	}
	pos, ok := engine.Read[component.PositionComponent](w).Get(player.Tank)
	if !ok {
		return core.NoEntity, missingComponent(player.Tank, "position")
	}

	e := SpawnProjectile(w, pos, tank)

	s.statShots.Add(1)
	emit(w, event.EventProjectileFired, event.ProjectileFiredPayload{
		Player: player.Number,
		X:      pos.Point.X(),
		Y:      pos.Point.Y(),
		Angle:  tank.BarrelOrient,
		Power:  tank.PowerLevel,
	})
	log.Info().
		Int("player", player.Number).
		Float64("angle", core.Degrees(tank.BarrelOrient)).
		Float64("power", tank.PowerLevel).
		Msg("Fired")
	return e, nil
}

// SpawnProjectile creates a shell at the tank's position with the tank's launch velocity
func SpawnProjectile(w *engine.World, at component.PositionComponent, tank component.TankComponent) core.Entity {
	r := rules(w)
	eb := w.NewEntity()
	engine.With(eb, engine.Write[component.ProjectileComponent](w), component.ProjectileComponent{})
	engine.With(eb, engine.Write[component.DrawableComponent](w), component.DrawableComponent{
		Drawable: component.ProjectileDrawable{Locals: component.Locals{Color: component.ColorProjectile}},
	})
	engine.With(eb, engine.Write[component.PositionComponent](w), component.PositionComponent{
		Point:  at.Point,
		Orient: tank.BarrelOrient,
		Scale:  r.ProjectileScale,
	})
	engine.With(eb, engine.Write[component.VelocityComponent](w), component.VelocityComponent{
		Linear: r.Ballistics.LaunchVelocity(tank.BarrelOrient, tank.PowerLevel),
	})
	engine.With(eb, engine.Write[component.MassComponent](w), component.MassComponent{
		Value: r.Ballistics.Mass,
	})
	return eb.Build()
}
