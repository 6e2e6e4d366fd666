package component

import "math"

// ExplosionComponent tracks an explosion's age; radius follows a sine ramp of elapsed time
type ExplosionComponent struct {
	TimeElapsed   float64
	TimeRemaining float64
}

// Radius returns the damage radius for the current age
// Elapsed seconds divided by period are read as degrees
func (e ExplosionComponent) Radius(maxRadius, period float64) float64 {
	return maxRadius * math.Sin(e.TimeElapsed/period*math.Pi/180)
}
