package system

import (
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/control"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
)

// TankControlSystem folds queued aim and power commands into held directions
// and applies them to the active player's tank once per tick
// Inactive players keep their held state; it takes effect when their turn comes
type TankControlSystem struct {
	engine.SystemBase

	held map[int]*control.Held
}

func NewTankControlSystem() *TankControlSystem {
	return &TankControlSystem{
		SystemBase: engine.NewSystemBase("tank-control", parameter.PriorityTankControl),
		held:       make(map[int]*control.Held),
	}
}

// Held returns the current held directions for a player
func (s *TankControlSystem) Held(player int) control.Held {
	if h, ok := s.held[player]; ok {
		return *h
	}
	return control.Held{}
}

func (s *TankControlSystem) Update(w *engine.World, dt float64) {
	board, ok := engine.LookupResource[control.Board](w)
	if !ok {
		return
	}
	r := rules(w)
	active := engine.WriteResource[engine.ActivePlayer](w)
	roster := engine.WriteResource[engine.Roster](w)
	tanks := engine.Write[component.TankComponent](w)

	for _, c := range board.All() {
		h, ok := s.held[c.Player()]
		if !ok {
			h = &control.Held{}
			s.held[c.Player()] = h
		}
		for _, cmd := range c.DrainAdjustments() {
			h.Apply(cmd)
			log.Debug().Int("player", c.Player()).Stringer("command", cmd).Msg("Control")
		}

		if (h.Angle == 0 && h.Power == 0) || !active.Is(c.Player()) {
			continue
		}
		player, ok := roster.Lookup(c.Player())
		if !ok || !w.IsAlive(player.Tank) {
			continue
		}
		tanks.Update(player.Tank, func(t *component.TankComponent) {
			t.BarrelOrient = core.NormalizeAngle(t.BarrelOrient + float64(h.Angle)*r.AngleStep)
			t.PowerLevel = core.Clamp(t.PowerLevel+float64(h.Power)*r.PowerStep, 0, 1)
		})
	}
}
