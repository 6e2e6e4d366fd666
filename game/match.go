// Package game assembles matches: world resources, roster and the system schedule
package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/config"
	"github.com/lixenwraith/tanks/control"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/manifest"
	"github.com/lixenwraith/tanks/registry"
	"github.com/lixenwraith/tanks/render"
	"github.com/lixenwraith/tanks/status"
	"github.com/lixenwraith/tanks/system"
	"github.com/lixenwraith/tanks/terrain"
)

// Option customizes match assembly
type Option func(*options)

type options struct {
	rng  *rand.Rand
	seed int64

	renderCtx context.Context
	pool      *render.Pool
}

// WithRand supplies the generator for terrain and roster placement
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed overrides sim.seed; ignored when WithRand is given
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRenderPool attaches a draw system submitting frames to pool
// ctx bounds how long a tick waits for a free frame
func WithRenderPool(ctx context.Context, pool *render.Pool) Option {
	return func(o *options) {
		o.renderCtx = ctx
		o.pool = pool
	}
}

// Match is one assembled game
// Tick, Quit and the accessors are safe to call from one driving goroutine;
// the control queues may be fed from any goroutine
type Match struct {
	world   *engine.World
	cfg     *config.Config
	seed    int64
	players []engine.Player
	humans  int

	state *system.GameStateSystem
	draw  *render.DrawSystem
	ai    []*system.AIController

	board   *control.Board
	events  *event.EventQueue
	metrics *status.Registry

	statTicks *atomic.Int64
}

// NewMatch builds a world ready to tick from cfg
// The first players.humans players take input through Controls, the rest are AI
func NewMatch(cfg *config.Config, opts ...Option) (*Match, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{seed: cfg.Sim.Seed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		if o.seed == 0 {
			o.seed = time.Now().UnixNano()
		}
		o.rng = rand.New(rand.NewSource(o.seed))
	} else {
		o.seed = 0
	}

	w := engine.NewWorld()
	m := &Match{
		world:  w,
		cfg:    cfg,
		seed:   o.seed,
		humans: cfg.Players.Humans,
	}

	// 0. Status registry and event queue, installed first so systems cache their metrics
	m.metrics = status.NewRegistry()
	m.events = event.NewEventQueue()
	m.statTicks = m.metrics.Ints.Get(status.KeyTicks)
	engine.SetResource(w, m.metrics)
	engine.SetResource(w, m.events)

	// 1. Dimensions and rules
	engine.SetResource(w, &engine.Dimensions{
		Width:  float64(cfg.World.Width),
		Height: float64(cfg.World.Height),
	})
	rules := cfg.Rules()
	engine.SetResource(w, &rules)

	// 2. Terrain
	ground, err := terrain.Generate(cfg.World.Width, cfg.World.Height, cfg.World.TerrainPoints, o.rng)
	if err != nil {
		return nil, fmt.Errorf("game: terrain: %w", err)
	}
	engine.SetResource(w, ground)

	// 3. Turn state and controls
	engine.SetResource(w, &engine.ActivePlayer{})
	engine.SetResource(w, &engine.Roster{})
	engine.SetResource(w, &engine.TurnInfo{State: engine.StateCalculateNextPlayer})
	m.board = control.NewBoard()
	engine.SetResource(w, m.board)

	// 4. Terrain drawable
	eb := w.NewEntity()
	engine.With(eb, engine.Write[component.DrawableComponent](w), component.DrawableComponent{
		Drawable: component.TerrainDrawable{Locals: component.Locals{Color: component.ColorTerrain}},
	})
	eb.Build()

	// 5. Roster
	m.players, err = CreatePlayers(w, cfg.Players.Count, o.rng)
	if err != nil {
		return nil, err
	}

	// 6. Systems
	manifest.RegisterSystems()
	if _, err := registry.Build(w, manifest.SimulationSystems...); err != nil {
		return nil, err
	}
	m.state = system.NewGameStateSystem(w)
	w.AddSystem(m.state)

	if o.pool != nil {
		ctx := o.renderCtx
		if ctx == nil {
			ctx = context.Background()
		}
		m.draw = render.NewDrawSystem(ctx, w, o.pool)
		w.AddSystem(m.draw)
	}

	for _, p := range m.players[m.humans:] {
		ai := system.NewAIController(p, m.board.Register(p.Number))
		m.ai = append(m.ai, ai)
		w.AddSystem(ai)
	}

	log.Info().
		Int64("seed", m.seed).
		Int("players", len(m.players)).
		Int("humans", m.humans).
		Int("systems", len(w.Systems())).
		Msg("Match assembled")
	return m, nil
}

// World exposes the underlying world, mainly for tests and tools
func (m *Match) World() *engine.World {
	return m.world
}

// Config returns the configuration the match was built from
func (m *Match) Config() *config.Config {
	return m.cfg
}

// Seed returns the RNG seed, 0 when the generator came from WithRand
func (m *Match) Seed() int64 {
	return m.seed
}

// Players returns the roster in creation order
func (m *Match) Players() []engine.Player {
	out := make([]engine.Player, len(m.players))
	copy(out, m.players)
	return out
}

// IsHuman reports whether a player number takes keyboard input
func (m *Match) IsHuman(number int) bool {
	return number >= 1 && number <= m.humans
}

// Controls returns a player's command queue
func (m *Match) Controls(number int) (*control.Controls, bool) {
	return m.board.Get(number)
}

// AI returns the controllers driving computer players
func (m *Match) AI() []*system.AIController {
	return m.ai
}

// Tick advances the match by dt simulation seconds
func (m *Match) Tick(dt float64) {
	m.world.Tick(dt)
	m.statTicks.Add(1)
}

// Clock returns a fixed-rate driver for the match honoring sim.tickRate and sim.maxDelta
func (m *Match) Clock(provider engine.TimeProvider) *engine.Clock {
	c := engine.NewClock(m.world, provider, m.cfg.Sim.TickRate, m.cfg.Sim.MaxDelta)
	c.OnTick = func(float64) {
		m.statTicks.Add(1)
	}
	return c
}

// Ticks returns the number of ticks run so far
func (m *Match) Ticks() int64 {
	return m.statTicks.Load()
}

// Outcome delivers the terminal result exactly once
func (m *Match) Outcome() <-chan engine.Outcome {
	return m.state.Outcome()
}

// Result returns the terminal result once the match is over
func (m *Match) Result() (o engine.Outcome, ok bool) {
	m.world.RunSafe(func() {
		o, ok = m.state.Result()
	})
	return o, ok
}

// Over reports whether the match has reached GameOver
func (m *Match) Over() bool {
	_, ok := m.Result()
	return ok
}

// Quit ends the match with a Quit outcome unless it has already ended
func (m *Match) Quit() {
	m.world.RunSafe(func() {
		m.state.Quit(m.world)
	})
}

// State returns the current phase and turn number
func (m *Match) State() (state engine.GameState, turn int) {
	m.world.RunSafe(func() {
		state, turn = m.state.State(), m.state.Turn()
	})
	return state, turn
}

// ActivePlayer returns the player allowed to fire, if any
func (m *Match) ActivePlayer() (p engine.Player, ok bool) {
	m.world.RunSafe(func() {
		p, ok = engine.WriteResource[engine.ActivePlayer](m.world).Get()
	})
	return p, ok
}

// Events drains the game events emitted since the previous call
func (m *Match) Events() []event.GameEvent {
	return m.events.Consume()
}

// Metrics returns the match telemetry registry
func (m *Match) Metrics() *status.Registry {
	return m.metrics
}

// SetBanner shows a HUD message when a renderer is attached
func (m *Match) SetBanner(text string) {
	if m.draw == nil {
		return
	}
	m.world.RunSafe(func() {
		m.draw.SetBanner(text)
	})
}

// Rendering reports whether frames still reach a renderer
func (m *Match) Rendering() bool {
	return m.draw != nil && !m.draw.Idle()
}
