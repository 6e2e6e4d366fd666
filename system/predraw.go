package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
)

// modelToClip composes world-to-clip with translate * rotate * uniform scale
// rot is counter-clockwise in radians
func modelToClip(worldToClip mgl32.Mat4, at mgl64.Vec2, rot, scale float64) mgl32.Mat4 {
	return worldToClip.
		Mul4(mgl32.Translate3D(float32(at.X()), float32(at.Y()), 0)).
		Mul4(mgl32.HomogRotate3DZ(float32(rot))).
		Mul4(mgl32.Scale3D(float32(scale), float32(scale), 1))
}

// TankPreDrawSystem refreshes hull and barrel transforms
// Barrel angles are clockwise from vertical, so they rotate by their negation
type TankPreDrawSystem struct {
	engine.SystemBase
}

func NewTankPreDrawSystem() *TankPreDrawSystem {
	return &TankPreDrawSystem{SystemBase: engine.NewSystemBase("predraw-tank", parameter.PriorityPreDraw)}
}

func (s *TankPreDrawSystem) Update(w *engine.World, dt float64) {
	clip := engine.ReadResource[engine.Dimensions](w).WorldToClip()
	tanks := engine.Read[component.TankComponent](w)
	positions := engine.Read[component.PositionComponent](w)
	drawables := engine.Write[component.DrawableComponent](w)

	for _, e := range w.Query().With(tanks).With(positions).With(drawables).Execute() {
		tank, _ := tanks.Get(e)
		pos, _ := positions.Get(e)
		drawables.Update(e, func(d *component.DrawableComponent) {
			td, ok := d.Drawable.(component.TankDrawable)
			if !ok {
				return
			}
			td.Body.Transform = modelToClip(clip, pos.Point, pos.Orient, pos.Scale)
			td.Barrel.Transform = modelToClip(clip, pos.Point, -tank.BarrelOrient, pos.Scale)
			d.Drawable = td
		})
	}
}

// ProjectilePreDrawSystem orients shells along their velocity
type ProjectilePreDrawSystem struct {
	engine.SystemBase
}

func NewProjectilePreDrawSystem() *ProjectilePreDrawSystem {
	return &ProjectilePreDrawSystem{SystemBase: engine.NewSystemBase("predraw-projectile", parameter.PriorityPreDraw)}
}

func (s *ProjectilePreDrawSystem) Update(w *engine.World, dt float64) {
	clip := engine.ReadResource[engine.Dimensions](w).WorldToClip()
	projectiles := engine.Read[component.ProjectileComponent](w)
	positions := engine.Read[component.PositionComponent](w)
	velocities := engine.Read[component.VelocityComponent](w)
	drawables := engine.Write[component.DrawableComponent](w)

	for _, e := range w.Query().With(projectiles).With(positions).With(drawables).Execute() {
		pos, _ := positions.Get(e)
		rot := -pos.Orient
		if v, ok := velocities.Get(e); ok && v.Linear.Len() > 0 {
			rot = -math.Atan2(v.Linear.X(), v.Linear.Y())
		}
		drawables.Update(e, func(d *component.DrawableComponent) {
			pd, ok := d.Drawable.(component.ProjectileDrawable)
			if !ok {
				return
			}
			pd.Locals.Transform = modelToClip(clip, pos.Point, rot, pos.Scale)
			d.Drawable = pd
		})
	}
}

// ExplosionPreDrawSystem scales the explosion disc
type ExplosionPreDrawSystem struct {
	engine.SystemBase
}

func NewExplosionPreDrawSystem() *ExplosionPreDrawSystem {
	return &ExplosionPreDrawSystem{SystemBase: engine.NewSystemBase("predraw-explosion", parameter.PriorityPreDraw)}
}

func (s *ExplosionPreDrawSystem) Update(w *engine.World, dt float64) {
	clip := engine.ReadResource[engine.Dimensions](w).WorldToClip()
	explosions := engine.Read[component.ExplosionComponent](w)
	positions := engine.Read[component.PositionComponent](w)
	drawables := engine.Write[component.DrawableComponent](w)

	for _, e := range w.Query().With(explosions).With(positions).With(drawables).Execute() {
		pos, _ := positions.Get(e)
		drawables.Update(e, func(d *component.DrawableComponent) {
			ed, ok := d.Drawable.(component.ExplosionDrawable)
			if !ok {
				return
			}
			ed.Locals.Transform = modelToClip(clip, pos.Point, 0, pos.Scale)
			d.Drawable = ed
		})
	}
}

// TerrainPreDrawSystem maps the terrain drawable straight to clip space; heights are already world units
type TerrainPreDrawSystem struct {
	engine.SystemBase
}

func NewTerrainPreDrawSystem() *TerrainPreDrawSystem {
	return &TerrainPreDrawSystem{SystemBase: engine.NewSystemBase("predraw-terrain", parameter.PriorityPreDraw)}
}

func (s *TerrainPreDrawSystem) Update(w *engine.World, dt float64) {
	clip := engine.ReadResource[engine.Dimensions](w).WorldToClip()
	drawables := engine.Write[component.DrawableComponent](w)

	for _, e := range drawables.All() {
		drawables.Update(e, func(d *component.DrawableComponent) {
			td, ok := d.Drawable.(component.TerrainDrawable)
			if !ok {
				return
			}
			td.Locals.Transform = clip
			d.Drawable = td
		})
	}
}
