package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/tanks/core"
)

func TestLaunchVelocityStraightUp(t *testing.T) {
	b := DefaultBallistics()
	v := b.LaunchVelocity(0, 0.5)

	if math.Abs(v.X()) > 1e-12 {
		t.Errorf("Expected vx=0, got %f", v.X())
	}
	if math.Abs(v.Y()-200) > 1e-12 {
		t.Errorf("Expected vy=200, got %f", v.Y())
	}
}

func TestLaunchVelocityLeansWithAngle(t *testing.T) {
	b := DefaultBallistics()

	right := b.LaunchVelocity(core.Radians(30), 1)
	left := b.LaunchVelocity(core.Radians(-30), 1)

	if right.X() <= 0 {
		t.Errorf("Expected positive vx for positive angle, got %f", right.X())
	}
	if left.X() >= 0 {
		t.Errorf("Expected negative vx for negative angle, got %f", left.X())
	}
	if math.Abs(right.Len()-250) > 1e-9 {
		t.Errorf("Expected speed 250 at full power, got %f", right.Len())
	}
}

func TestLandingHeightMatchesIntegration(t *testing.T) {
	b := DefaultBallistics()
	angle := core.Radians(40)
	power := 0.6
	dx := 600.0

	yEnd, peaked := b.LandingHeight(dx, power, angle)

	// Fine Euler integration of the same trajectory
	vel := b.LaunchVelocity(angle, power)
	x, y := 0.0, 0.0
	vx, vy := vel.X(), vel.Y()
	const dt = 1e-5
	for x < dx {
		vy += b.Acceleration() * dt
		x += vx * dt
		y += vy * dt
	}

	if math.Abs(y-yEnd) > 0.5 {
		t.Errorf("Expected integrated height near %f, got %f", yEnd, y)
	}
	if peaked != (vy < 0) {
		t.Errorf("Expected peaked=%v, got %v", vy < 0, peaked)
	}
}

func TestLandingHeightPeakedFlag(t *testing.T) {
	b := DefaultBallistics()
	angle := core.Radians(45)

	// Half range at 45 degrees and power 0 is v^2 / (2 * 73.5)
	half := 150.0 * 150.0 / (2 * 73.5)

	if _, peaked := b.LandingHeight(half*0.5, 0, angle); peaked {
		t.Errorf("Expected rising shot before apex")
	}
	if _, peaked := b.LandingHeight(half*1.5, 0, angle); !peaked {
		t.Errorf("Expected descending shot past apex")
	}
}

func TestLandingHeightVerticalBarrel(t *testing.T) {
	b := DefaultBallistics()
	y, peaked := b.LandingHeight(100, 0.5, 0)

	if !math.IsInf(y, -1) {
		t.Errorf("Expected -Inf for vertical barrel, got %f", y)
	}
	if peaked {
		t.Errorf("Expected not peaked for vertical barrel")
	}
}

func TestApex(t *testing.T) {
	b := DefaultBallistics()
	got := b.Apex(0.5, 0)
	want := 200.0 * 200.0 / (2 * 73.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected apex %f, got %f", want, got)
	}
}
