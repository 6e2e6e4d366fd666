// Package physics holds the closed-form projectile model shared by firing and AI aiming
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tanks/parameter"
)

// Ballistics describes launch speed and the constant downward acceleration
// Angles are measured from vertical: 0 fires straight up, positive leans right
type Ballistics struct {
	PowerMin   float64
	PowerScale float64
	Gravity    float64
	Mass       float64
}

// DefaultBallistics returns the stock constants
func DefaultBallistics() Ballistics {
	return Ballistics{
		PowerMin:   parameter.PowerMin,
		PowerScale: parameter.PowerScale,
		Gravity:    parameter.Gravity,
		Mass:       parameter.ProjectileMass,
	}
}

// Speed returns the muzzle speed for a power level in [0, 1]
func (b Ballistics) Speed(power float64) float64 {
	return b.PowerMin + b.PowerScale*power
}

// Acceleration is the vertical acceleration of a body of the configured mass
func (b Ballistics) Acceleration() float64 {
	return b.Mass * b.Gravity
}

// LaunchVelocity returns the initial velocity for a barrel angle and power level
func (b Ballistics) LaunchVelocity(angle, power float64) mgl64.Vec2 {
	s := b.Speed(power)
	return mgl64.Vec2{s * math.Sin(angle), s * math.Cos(angle)}
}

// LandingHeight predicts the height, relative to the muzzle, at which a shot
// crosses horizontal displacement dx
// peaked reports whether the shot is already descending at that point
// A barrel with no horizontal component never reaches dx; the result is -Inf, not peaked
func (b Ballistics) LandingHeight(dx, power, angle float64) (yEnd float64, peaked bool) {
	v := b.Speed(power)
	vx := v * math.Sin(angle)
	if math.Abs(vx) < 1e-9 {
		return math.Inf(-1), false
	}
	t := dx / vx
	g := b.Acceleration()
	yEnd = 0.5*g*t*t + v*t*math.Cos(angle)
	vyEnd := g*t + v*math.Cos(angle)
	return yEnd, vyEnd < 0
}

// Apex returns the peak height above the muzzle
func (b Ballistics) Apex(power, angle float64) float64 {
	vy := b.Speed(power) * math.Cos(angle)
	g := b.Acceleration()
	if vy <= 0 || g >= 0 {
		return 0
	}
	return -vy * vy / (2 * g)
}
