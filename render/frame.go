package render

import (
	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/engine"
)

// PlayerStatus is one HUD roster line
type PlayerStatus struct {
	Number int
	Alive  bool
	Health float64
	Angle  float64 // Degrees, clockwise from vertical
	Power  float64
	Color  [3]float32
}

// HUD is the textual overlay of a frame
type HUD struct {
	Turn    int
	State   engine.GameState
	Active  int // 0 while no player holds the turn
	Players []PlayerStatus
	Banner  string
}

// Frame is one render command buffer
// Frames are recycled through a Pool; renderers must not retain them after Render returns
type Frame struct {
	Seq       uint64
	Width     float64 // World units
	Height    float64
	Terrain   []float64 // Shared with the terrain resource, read-only
	Drawables []component.Drawable
	HUD       HUD
}

// NewFrame allocates an empty frame
func NewFrame() *Frame {
	return &Frame{
		Drawables: make([]component.Drawable, 0, 16),
		HUD: HUD{
			Players: make([]PlayerStatus, 0, 4),
		},
	}
}

// Reset empties the frame keeping its allocations
func (f *Frame) Reset() {
	f.Seq = 0
	f.Terrain = nil
	f.Drawables = f.Drawables[:0]
	f.HUD.Players = f.HUD.Players[:0]
	f.HUD.Turn = 0
	f.HUD.State = 0
	f.HUD.Active = 0
	f.HUD.Banner = ""
}

// layer orders drawables back to front
func layer(d component.Drawable) int {
	switch d.(type) {
	case component.TerrainDrawable:
		return 0
	case component.TankDrawable:
		return 1
	case component.ProjectileDrawable:
		return 2
	case component.ExplosionDrawable:
		return 3
	}
	return 4
}
