package render

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/status"
	"github.com/lixenwraith/tanks/terrain"
)

// DrawSystem snapshots drawables into pool frames
// It runs first in the tick, so it presents the transforms the pre-draw systems wrote last tick
type DrawSystem struct {
	engine.SystemBase

	ctx    context.Context
	pool   *Pool
	seq    uint64
	gone   bool
	banner string

	statFrames *atomic.Int64
}

// NewDrawSystem creates the draw system; ctx bounds how long a tick may wait for a free frame
func NewDrawSystem(ctx context.Context, w *engine.World, pool *Pool) *DrawSystem {
	frames := new(atomic.Int64)
	if reg, ok := engine.LookupResource[status.Registry](w); ok {
		frames = reg.Ints.Get(status.KeyRendererFrames)
	}
	return &DrawSystem{
		SystemBase: engine.NewSystemBase("draw", parameter.PriorityDraw),
		ctx:        ctx,
		pool:       pool,
		statFrames: frames,
	}
}

// SetBanner sets the HUD message line; call from the goroutine that ticks the world
func (s *DrawSystem) SetBanner(text string) {
	s.banner = text
}

// Idle reports whether the renderer is gone and the system stopped drawing
func (s *DrawSystem) Idle() bool {
	return s.gone
}

func (s *DrawSystem) Update(w *engine.World, dt float64) {
	if s.gone {
		return
	}

	f, err := s.pool.Acquire(s.ctx)
	if err != nil {
		s.stop(err)
		return
	}

	s.seq++
	f.Seq = s.seq
	s.fill(w, f)

	if err := s.pool.Submit(s.ctx, f); err != nil {
		s.stop(err)
		return
	}
	s.statFrames.Add(1)
}

func (s *DrawSystem) stop(err error) {
	s.gone = true
	log.Warn().Err(err).Uint64("frames", s.seq).Msg("Renderer unavailable, simulation continues without drawing")
}

func (s *DrawSystem) fill(w *engine.World, f *Frame) {
	dims := engine.ReadResource[engine.Dimensions](w)
	f.Width = dims.Width
	f.Height = dims.Height
	if ground, ok := engine.LookupResource[terrain.Terrain](w); ok {
		f.Terrain = ground.Heightmap
	}

	drawables := engine.Read[component.DrawableComponent](w)
	for _, e := range drawables.All() {
		if d, ok := drawables.Get(e); ok && d.Drawable != nil {
			f.Drawables = append(f.Drawables, d.Drawable)
		}
	}
	sort.SliceStable(f.Drawables, func(i, j int) bool {
		return layer(f.Drawables[i]) < layer(f.Drawables[j])
	})

	f.HUD.Banner = s.banner
	if info, ok := engine.LookupResource[engine.TurnInfo](w); ok {
		f.HUD.Turn = info.Turn
		f.HUD.State = info.State
	}
	if active, ok := engine.LookupResource[engine.ActivePlayer](w); ok {
		if p, set := active.Get(); set {
			f.HUD.Active = p.Number
		}
	}

	roster, ok := engine.LookupResource[engine.Roster](w)
	if !ok {
		return
	}
	tanks := engine.Read[component.TankComponent](w)
	for _, p := range roster.Players {
		ps := PlayerStatus{
			Number: p.Number,
			Color:  component.PlayerColor(p.Number),
		}
		if tank, ok := tanks.Get(p.Tank); ok && w.IsAlive(p.Tank) {
			ps.Alive = true
			ps.Health = tank.Health
			ps.Angle = core.Degrees(tank.BarrelOrient)
			ps.Power = tank.PowerLevel
		}
		f.HUD.Players = append(f.HUD.Players, ps)
	}
}
