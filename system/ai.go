package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/control"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
)

// AIState is a phase of an AI player's turn
type AIState int

const (
	AIWaitForTurn AIState = iota
	AISelectTarget
	AIAlignToTarget
	AIFire
)

func (s AIState) String() string {
	switch s {
	case AIWaitForTurn:
		return "wait_for_turn"
	case AISelectTarget:
		return "select_target"
	case AIAlignToTarget:
		return "align_to_target"
	case AIFire:
		return "fire"
	}
	return "unknown"
}

// AIController plays one player's turns through the same command queue a human uses
// Aim converges one held step per tick by greedy search over power and angle
type AIController struct {
	engine.SystemBase

	player   engine.Player
	controls *control.Controls

	state      AIState
	target     mgl64.Vec2 // Snapshot taken at selection
	alignTicks int
	swinging   bool // Walking the barrel to the preferred angle before the search

	// fired blocks re-arming until the turn machine has released this player
	fired bool
}

// NewAIController binds a controller to a player and that player's queue
func NewAIController(player engine.Player, controls *control.Controls) *AIController {
	return &AIController{
		SystemBase: engine.NewSystemBase("ai", parameter.PriorityAI),
		player:     player,
		controls:   controls,
		state:      AIWaitForTurn,
	}
}

// State returns the current phase
func (a *AIController) State() AIState {
	return a.state
}

// Target returns the snapshot aim point
func (a *AIController) Target() mgl64.Vec2 {
	return a.target
}

func (a *AIController) Update(w *engine.World, dt float64) {
	active := engine.WriteResource[engine.ActivePlayer](w)
	myTurn := active.Is(a.player.Number) && w.IsAlive(a.player.Tank)

	switch a.state {
	case AIWaitForTurn:
		if a.fired {
			if !active.Is(a.player.Number) {
				a.fired = false
			}
			return
		}
		if myTurn {
			a.setState(AISelectTarget)
		}

	case AISelectTarget:
		if !myTurn {
			a.abort()
			return
		}
		target, ok := a.selectTarget(w)
		if !ok {
			log.Debug().Int("player", a.player.Number).Msg("No target, firing blind")
			a.setState(AIFire)
			return
		}
		a.target = target
		a.alignTicks = 0
		a.swinging = true
		a.setState(AIAlignToTarget)

	case AIAlignToTarget:
		if !myTurn {
			a.abort()
			return
		}
		a.alignTicks++
		if a.alignTicks > rules(w).AIMaxAlignTicks {
			log.Debug().Int("player", a.player.Number).Int("ticks", a.alignTicks).Msg("Alignment budget spent")
			a.stopAll()
			a.setState(AIFire)
			return
		}
		if a.align(w) {
			a.stopAll()
			a.setState(AIFire)
		}

	case AIFire:
		if myTurn {
			a.controls.Fire()
			a.fired = true
		} else {
			log.Debug().Int("player", a.player.Number).Msg("Turn lost before firing")
		}
		a.setState(AIWaitForTurn)
	}
}

func (a *AIController) setState(next AIState) {
	log.Debug().Int("player", a.player.Number).Stringer("state", next).Msg("AI")
	a.state = next
}

func (a *AIController) abort() {
	a.stopAll()
	a.setState(AIWaitForTurn)
}

func (a *AIController) stopAll() {
	a.controls.AngleStop()
	a.controls.PowerStop()
}

// selectTarget returns the position of the first live enemy tank
func (a *AIController) selectTarget(w *engine.World) (mgl64.Vec2, bool) {
	tanks := engine.Read[component.TankComponent](w)
	positions := engine.Read[component.PositionComponent](w)

	for _, e := range w.Query().With(tanks).With(positions).Execute() {
		if e == a.player.Tank || w.IsPendingDelete(e) {
			continue
		}
		pos, _ := positions.Get(e)
		log.Debug().Int("player", a.player.Number).Stringer("target", e).
			Float64("x", pos.Point.X()).Float64("y", pos.Point.Y()).Msg("Target selected")
		return pos.Point, true
	}
	return mgl64.Vec2{}, false
}

// align issues one tick of aim corrections and reports convergence
// Convergence is only reported for a descending shot
func (a *AIController) align(w *engine.World) bool {
	tank, ok := engine.Read[component.TankComponent](w).Get(a.player.Tank)
	if !ok {
		log.Warn().Err(missingComponent(a.player.Tank, "tank")).Msg("AI align skipped")
		return true
	}
	pos, ok := engine.Read[component.PositionComponent](w).Get(a.player.Tank)
	if !ok {
		log.Warn().Err(missingComponent(a.player.Tank, "position")).Msg("AI align skipped")
		return true
	}

	r := rules(w)
	d := a.target.Sub(pos.Point)
	dx, dy := d.X(), d.Y()
	if dx == 0 {
		dx = math.SmallestNonzeroFloat64
	}
	theta, power := tank.BarrelOrient, tank.PowerLevel
	side := math.Copysign(1, dx)
	preferred := side * core.Radians(parameter.AIPreferredAngleDeg)
	minAngle := core.Radians(parameter.AIMinAngleDeg)

	// Every sequence opens on the preferred lob; this also reverses a barrel
	// leaning away from the target or standing vertical
	if a.swinging || !aimable(theta, side, minAngle) {
		a.swinging = !a.walkAngle(theta, preferred, r.AngleStep)
		a.controls.PowerStop()
		return false
	}

	yEnd, peaked := r.Ballistics.LandingHeight(dx, power, theta)

	switch {
	case math.IsNaN(yEnd) || yEnd < parameter.AISanityDepth:
		// Falls far short: reach further
		a.raisePower(power)
		a.walkAngle(theta, preferred, r.AngleStep)
		return false

	case !peaked:
		// Still climbing over the target: steepen the lob, then slow it
		if math.Abs(theta)-r.AngleStep >= minAngle {
			a.walkAngle(theta, side*minAngle, r.AngleStep)
			a.controls.PowerStop()
		} else {
			a.controls.AngleStop()
			a.lowerPower(power)
		}
		return false
	}

	return a.climb(r, dx, dy, theta, power, math.Abs(yEnd-dy), side, minAngle)
}

// climb holds the single power or angle step that most reduces the predicted miss
// Only one axis moves per tick so the prediction matches the next tick's state
func (a *AIController) climb(r engine.Rules, dx, dy, theta, power, miss, side, minAngle float64) bool {
	steps := [...]struct {
		power float64
		angle float64
		send  func()
	}{
		{r.PowerStep, 0, a.controls.PowerIncrease},
		{-r.PowerStep, 0, a.controls.PowerDecrease},
		{0, r.AngleStep, a.controls.AngleIncrease},
		{0, -r.AngleStep, a.controls.AngleDecrease},
	}

	best := -1
	for i, s := range steps {
		if s.power > 0 && power >= 1 || s.power < 0 && power <= 0 {
			continue
		}
		th := theta + s.angle
		if !aimable(th, side, minAngle) {
			continue
		}
		y, pk := r.Ballistics.LandingHeight(dx, core.Clamp(power+s.power, 0, 1), th)
		if m := math.Abs(y - dy); pk && m < miss {
			best, miss = i, m
		}
	}

	if best < 0 {
		a.stopAll()
		log.Trace().Int("player", a.player.Number).Float64("miss", miss).Msg("AI aligned")
		return true
	}
	if steps[best].power != 0 {
		a.controls.AngleStop()
	} else {
		a.controls.PowerStop()
	}
	steps[best].send()
	log.Trace().Int("player", a.player.Number).Float64("miss", miss).Int("step", best).Msg("AI align")
	return false
}

func (a *AIController) raisePower(power float64) {
	if power < 1 {
		a.controls.PowerIncrease()
	} else {
		a.controls.PowerStop()
	}
}

func (a *AIController) lowerPower(power float64) {
	if power > 0 {
		a.controls.PowerDecrease()
	} else {
		a.controls.PowerStop()
	}
}

// walkAngle holds the angle command that moves theta toward goal
// and reports whether theta is already within half a step of it
func (a *AIController) walkAngle(theta, goal, step float64) bool {
	switch {
	case math.Abs(goal-theta) < step/2:
		a.controls.AngleStop()
		return true
	case goal > theta:
		a.controls.AngleIncrease()
	default:
		a.controls.AngleDecrease()
	}
	return false
}

// aimable reports whether a barrel at theta leans toward side by at least
// minAngle and stays minAngle above horizontal
func aimable(theta, side, minAngle float64) bool {
	lean := theta * side
	return lean >= minAngle && lean <= math.Pi/2-minAngle
}
