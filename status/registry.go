// Package status is the match telemetry facade: counters and gauges updated by systems
package status

import "sync/atomic"

// Metric keys
const (
	KeyTicks          = "engine.ticks"
	KeyShots          = "fire.shots"
	KeyExplosions     = "explosion.spawned"
	KeyLost           = "projectile.lost"
	KeyDestroyed      = "tank.destroyed"
	KeyTurn           = "turn.number"
	KeyDamage         = "tank.damage"
	KeyState          = "game.state"
	KeyRendererFrames = "render.frames"
)

// Registry is the central metrics facade
// Systems cache pointers during construction; updates write directly to atomics
type Registry struct {
	Ints   *Group[atomic.Int64]
	Floats *Group[Float]
	Labels *Group[Label]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewGroup[atomic.Int64](),
		Floats: NewGroup[Float](),
		Labels: NewGroup[Label](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Labels.Count()
}

// Snapshot copies every integer metric into a plain map
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	return out
}
