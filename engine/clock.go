package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock drives a world at a fixed tick rate with measured dt
// dt is the wall time since the previous tick, capped at maxDelta so a stall
// (debugger, suspended terminal) cannot launch projectiles through terrain
type Clock struct {
	world    *World
	provider TimeProvider
	interval time.Duration
	maxDelta float64

	last  time.Time
	ticks uint64

	// OnTick runs after every tick outside the world lock
	OnTick func(dt float64)
}

// NewClock creates a clock ticking tickRate times per second
func NewClock(world *World, provider TimeProvider, tickRate int, maxDelta float64) *Clock {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &Clock{
		world:    world,
		provider: provider,
		interval: time.Second / time.Duration(tickRate),
		maxDelta: maxDelta,
		last:     provider.Now(),
	}
}

// Interval returns the target duration between ticks
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Ticks returns the number of ticks run so far
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Step measures dt since the previous step and runs one world tick
// Returns the dt used
func (c *Clock) Step() float64 {
	now := c.provider.Now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		log.Debug().Float64("dt", dt).Float64("max", c.maxDelta).Msg("Clamped tick delta")
		dt = c.maxDelta
	}

	c.world.Tick(dt)
	c.ticks++
	if c.OnTick != nil {
		c.OnTick(dt)
	}
	return dt
}

// Run steps the world on a ticker until ctx is cancelled or stop returns true
func (c *Clock) Run(ctx context.Context, stop func() bool) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.last = c.provider.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Step()
			if stop != nil && stop() {
				return
			}
		}
	}
}
