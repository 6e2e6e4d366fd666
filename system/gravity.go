package system

import (
	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
)

// GravitySystem accelerates every massive body downward
// velocity.y += mass * gravity * dt
type GravitySystem struct {
	engine.SystemBase
}

func NewGravitySystem() *GravitySystem {
	return &GravitySystem{SystemBase: engine.NewSystemBase("gravity", parameter.PriorityGravity)}
}

func (s *GravitySystem) Update(w *engine.World, dt float64) {
	g := rules(w).Ballistics.Gravity
	masses := engine.Read[component.MassComponent](w)
	velocities := engine.Write[component.VelocityComponent](w)

	for _, e := range w.Query().With(masses).With(velocities).Execute() {
		m, _ := masses.Get(e)
		velocities.Update(e, func(v *component.VelocityComponent) {
			v.Linear[1] += m.Value * g * dt
		})
	}
}
