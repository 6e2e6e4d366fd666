package component

import "github.com/go-gl/mathgl/mgl64"

// PositionComponent places an entity in world space
// Y grows upward from the bottom of the world
type PositionComponent struct {
	Point  mgl64.Vec2
	Orient float64 // Radians
	Scale  float64
}

// VelocityComponent is consumed by inertia integration
type VelocityComponent struct {
	Linear  mgl64.Vec2
	Angular float64 // Radians per second
}

// MassComponent opts an entity into gravity
type MassComponent struct {
	Value float64
}
