package system

import (
	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
)

// InertiaSystem integrates position and orientation from velocity
type InertiaSystem struct {
	engine.SystemBase
}

func NewInertiaSystem() *InertiaSystem {
	return &InertiaSystem{SystemBase: engine.NewSystemBase("inertia", parameter.PriorityInertia)}
}

func (s *InertiaSystem) Update(w *engine.World, dt float64) {
	velocities := engine.Read[component.VelocityComponent](w)
	positions := engine.Write[component.PositionComponent](w)

	for _, e := range w.Query().With(velocities).With(positions).Execute() {
		v, _ := velocities.Get(e)
		positions.Update(e, func(p *component.PositionComponent) {
			p.Point = p.Point.Add(v.Linear.Mul(dt))
			p.Orient = core.NormalizeAngle(p.Orient + v.Angular*dt)
		})
	}
}
