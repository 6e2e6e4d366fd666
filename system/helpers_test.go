package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/control"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/status"
	"github.com/lixenwraith/tanks/terrain"
)

const testDT = 1.0 / 60

// newTestWorld builds a 1000x500 world over flat ground at groundY
func newTestWorld(t *testing.T, groundY float64) *engine.World {
	t.Helper()
	hmap := make([]float64, 1000)
	for i := range hmap {
		hmap[i] = groundY
	}
	ground, err := terrain.New(hmap, 500)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}

	w := engine.NewWorld()
	engine.SetResource(w, &engine.Dimensions{Width: 1000, Height: 500})
	engine.SetResource(w, ground)
	engine.SetResource(w, &engine.ActivePlayer{})
	engine.SetResource(w, &engine.Roster{})
	engine.SetResource(w, &engine.TurnInfo{})
	rules := engine.DefaultRules()
	engine.SetResource(w, &rules)
	engine.SetResource(w, control.NewBoard())
	engine.SetResource(w, event.NewEventQueue())
	engine.SetResource(w, status.NewRegistry())
	return w
}

// addTank places a tank for player number at (x, y) and registers the player
func addTank(w *engine.World, number int, x, y float64) engine.Player {
	eb := w.NewEntity()
	engine.With(eb, engine.Write[component.TankComponent](w), component.TankComponent{
		PowerLevel: 0.5,
		Health:     100,
	})
	engine.With(eb, engine.Write[component.PositionComponent](w), component.PositionComponent{
		Point: mgl64.Vec2{x, y},
		Scale: 20,
	})
	engine.With(eb, engine.Write[component.VelocityComponent](w), component.VelocityComponent{})
	engine.With(eb, engine.Write[component.DrawableComponent](w), component.DrawableComponent{
		Drawable: component.TankDrawable{},
	})
	p := engine.Player{Number: number, Tank: eb.Build()}

	roster := engine.WriteResource[engine.Roster](w)
	roster.Players = append(roster.Players, p)
	engine.WriteResource[control.Board](w).Register(number)
	return p
}

func setTank(w *engine.World, e core.Entity, angle, power float64) {
	engine.Write[component.TankComponent](w).Update(e, func(t *component.TankComponent) {
		t.BarrelOrient = angle
		t.PowerLevel = power
	})
}

func tankOf(t *testing.T, w *engine.World, e core.Entity) component.TankComponent {
	t.Helper()
	tank, ok := engine.Read[component.TankComponent](w).Get(e)
	if !ok {
		t.Fatalf("tank %v missing", e)
	}
	return tank
}

func controlsOf(w *engine.World, number int) *control.Controls {
	c, _ := engine.WriteResource[control.Board](w).Get(number)
	return c
}

func drainEvents(w *engine.World) []event.GameEvent {
	return engine.WriteResource[event.EventQueue](w).Consume()
}

func countEvents(events []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func addSimulation(w *engine.World) *GameStateSystem {
	gs := NewGameStateSystem(w)
	w.AddSystem(NewCollisionSystem(w))
	w.AddSystem(NewInertiaSystem())
	w.AddSystem(NewGravitySystem())
	w.AddSystem(NewExplosionSystem(w))
	w.AddSystem(gs)
	w.AddSystem(NewFiringSystem(w))
	w.AddSystem(NewTankControlSystem())
	return gs
}

func p2v(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}
}
