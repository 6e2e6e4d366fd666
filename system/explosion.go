package system

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/status"
)

// damageArea is one explosion's contribution for the current tick
type damageArea struct {
	center mgl64.Vec2
	radius float64
	damage float64
}

// ExplosionSystem ages explosions and applies area damage to tanks
// An explosion expiring this tick only deals damage for the part of dt before expiry
type ExplosionSystem struct {
	engine.SystemBase

	areas []damageArea

	statDestroyed *atomic.Int64
	statDamage    *status.Float
}

func NewExplosionSystem(w *engine.World) *ExplosionSystem {
	return &ExplosionSystem{
		SystemBase:    engine.NewSystemBase("explosion", parameter.PriorityExplosion),
		areas:         make([]damageArea, 0, 4),
		statDestroyed: counter(w, status.KeyDestroyed),
		statDamage:    gauge(w, status.KeyDamage),
	}
}

func (s *ExplosionSystem) Update(w *engine.World, dt float64) {
	r := rules(w)
	explosions := engine.Write[component.ExplosionComponent](w)
	positions := engine.Read[component.PositionComponent](w)

	s.areas = s.areas[:0]
	for _, e := range w.Query().With(explosions).With(positions).Execute() {
		if w.IsPendingDelete(e) {
			continue
		}
		var ex component.ExplosionComponent
		explosions.Update(e, func(c *component.ExplosionComponent) {
			c.TimeElapsed += dt
			c.TimeRemaining -= dt
			ex = *c
		})
		log.Trace().
			Stringer("entity", e).
			Float64("elapsed", ex.TimeElapsed).
			Float64("remaining", ex.TimeRemaining).
			Msg("Explosion aging")

		window := dt
		if ex.TimeRemaining <= 0 {
			w.Delete(e)
			window += ex.TimeRemaining
		}
		if window <= 0 {
			continue
		}
		pos, _ := positions.Get(e)
		s.areas = append(s.areas, damageArea{
			center: pos.Point,
			radius: ex.Radius(r.ExplosionMaxRadius, r.ExplosionPeriod),
			damage: window * r.DamageRate,
		})
	}
	if len(s.areas) == 0 {
		return
	}

	tanks := engine.Write[component.TankComponent](w)
	roster, _ := engine.LookupResource[engine.Roster](w)

	for _, e := range w.Query().With(tanks).With(positions).Execute() {
		if w.IsPendingDelete(e) {
			continue
		}
		pos, _ := positions.Get(e)
		for _, area := range s.areas {
			if pos.Point.Sub(area.center).Len() > area.radius+pos.Scale {
				continue
			}

			var health float64
			tanks.Update(e, func(t *component.TankComponent) {
				t.Health -= area.damage
				health = t.Health
			})
			s.statDamage.Add(area.damage)

			player := 0
			if roster != nil {
				if p, ok := roster.Owner(e); ok {
					player = p.Number
				}
			}
			emit(w, event.EventTankDamaged, event.TankDamagedPayload{
				Player: player,
				Damage: area.damage,
				Health: health,
			})
			log.Debug().Int("player", player).Float64("health", health).Msg("Tank damaged")

			if health <= 0 {
				w.Delete(e)
				s.statDestroyed.Add(1)
				emit(w, event.EventTankDestroyed, event.TankDestroyedPayload{Player: player})
				log.Info().Int("player", player).Msg("Tank destroyed")
				break
			}
		}
	}
}
