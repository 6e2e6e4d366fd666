package component

import "github.com/go-gl/mathgl/mgl32"

// Locals is the per-shape render payload: model-to-clip transform and RGB color
type Locals struct {
	Transform mgl32.Mat4
	Color     [3]float32
}

// Drawable is a closed set of render payloads, one per visual entity kind
// Renderers switch over the concrete types
type Drawable interface {
	drawable()
}

// TankDrawable draws hull and barrel separately so the barrel can rotate
type TankDrawable struct {
	Body   Locals
	Barrel Locals
}

// ProjectileDrawable is a single shell
type ProjectileDrawable struct {
	Locals Locals
}

// ExplosionDrawable is a disc scaled to the current radius
type ExplosionDrawable struct {
	Locals Locals
}

// TerrainDrawable carries the terrain color; the height field comes from the terrain resource
type TerrainDrawable struct {
	Locals Locals
}

func (TankDrawable) drawable()       {}
func (ProjectileDrawable) drawable() {}
func (ExplosionDrawable) drawable()  {}
func (TerrainDrawable) drawable()    {}

// DrawableComponent attaches a render payload to an entity
type DrawableComponent struct {
	Drawable Drawable
}

// Palette colors
var (
	ColorRed        = [3]float32{1, 0, 0}
	ColorBlue       = [3]float32{0, 0, 1}
	ColorYellow     = [3]float32{1, 1, 0}
	ColorPurple     = [3]float32{0.5, 0, 0.5}
	ColorProjectile = [3]float32{1, 1, 1}
	ColorExplosion  = [3]float32{1, 0.5, 0}
	ColorTerrain    = [3]float32{0.2, 0.6, 0.2}
)

// PlayerColors cycle across the roster
var PlayerColors = [...][3]float32{ColorRed, ColorBlue, ColorYellow, ColorPurple}

// PlayerColor returns the color for a 1-based player number
func PlayerColor(number int) [3]float32 {
	if number < 1 {
		number = 1
	}
	return PlayerColors[(number-1)%len(PlayerColors)]
}
