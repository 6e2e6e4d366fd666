package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/physics"
)

// Dimensions is the world size in world units, immutable after setup
type Dimensions struct {
	Width  float64
	Height float64
}

// WorldToClip maps world coordinates (origin bottom-left) to clip space [-1, 1]
func (d Dimensions) WorldToClip() mgl32.Mat4 {
	return mgl32.Translate3D(-1, -1, 0).Mul4(
		mgl32.Scale3D(float32(2/d.Width), float32(2/d.Height), 1))
}

// InBounds reports whether a point lies inside the playable area
// There is no ceiling: shells may leave through the top and fall back
func (d Dimensions) InBounds(x, y float64) bool {
	return x >= 0 && x <= d.Width && y >= 0
}

// Player is a roster entry
// Tank is a weak reference; check World.IsAlive before use
type Player struct {
	Number int
	Tank   core.Entity
}

// ActivePlayer holds the single player currently allowed to fire
type ActivePlayer struct {
	player Player
	set    bool
}

// Get returns the active player, if any
func (a *ActivePlayer) Get() (Player, bool) {
	return a.player, a.set
}

// Set makes p the active player
func (a *ActivePlayer) Set(p Player) {
	a.player = p
	a.set = true
}

// Clear releases the active slot
func (a *ActivePlayer) Clear() {
	a.player = Player{}
	a.set = false
}

// Is reports whether the given player number is active
func (a *ActivePlayer) Is(number int) bool {
	return a.set && a.player.Number == number
}

// Roster lists every player of the match in creation order
// Entries persist after their tank is destroyed
type Roster struct {
	Players []Player
}

// Remaining returns players whose tank is still alive
func (r *Roster) Remaining(w *World) []Player {
	out := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		if w.IsAlive(p.Tank) {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds a player by number
func (r *Roster) Lookup(number int) (Player, bool) {
	for _, p := range r.Players {
		if p.Number == number {
			return p, true
		}
	}
	return Player{}, false
}

// Owner returns the player a tank belongs to
func (r *Roster) Owner(tank core.Entity) (Player, bool) {
	for _, p := range r.Players {
		if p.Tank == tank {
			return p, true
		}
	}
	return Player{}, false
}

// Rules are the tunable gameplay constants of a match
type Rules struct {
	Ballistics physics.Ballistics

	TankScale       float64
	ProjectileScale float64
	ExplosionScale  float64

	ExplosionDuration  float64
	ExplosionMaxRadius float64
	ExplosionPeriod    float64
	DamageRate         float64

	AngleStep float64 // Radians per tick while held
	PowerStep float64 // Per tick while held

	AIMaxAlignTicks int
}

// DefaultRules returns the stock gameplay constants
func DefaultRules() Rules {
	return Rules{
		Ballistics:         physics.DefaultBallistics(),
		TankScale:          parameter.TankScale,
		ProjectileScale:    parameter.ProjectileScale,
		ExplosionScale:     parameter.ExplosionScale,
		ExplosionDuration:  parameter.ExplosionDuration,
		ExplosionMaxRadius: parameter.ExplosionMaxRadius,
		ExplosionPeriod:    parameter.ExplosionRadiusPeriod,
		DamageRate:         parameter.ExplosionDamageRate,
		AngleStep:          parameter.AngleStep,
		PowerStep:          parameter.PowerStep,
		AIMaxAlignTicks:    parameter.AIMaxAlignTicks,
	}
}

// GameState is a phase of the turn machine
type GameState int

const (
	StateCalculateNextPlayer GameState = iota
	StateTankFiring
	StateProjectilesTravelling
	StateProjectilesImpacting
	StateGameOver
)

var stateNames = [...]string{
	StateCalculateNextPlayer:   "calculate_next_player",
	StateTankFiring:            "tank_firing",
	StateProjectilesTravelling: "projectiles_travelling",
	StateProjectilesImpacting:  "projectiles_impacting",
	StateGameOver:              "game_over",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// TurnInfo mirrors the turn machine for readers outside it (HUD, reports)
type TurnInfo struct {
	State GameState
	Turn  int
}
