package component

// TankComponent is a player's tank
type TankComponent struct {
	BarrelOrient float64 // Radians from vertical, positive leans right
	PowerLevel   float64 // Clamped to [0, 1]
	Health       float64
}

// ProjectileComponent marks an entity as a shell in flight
type ProjectileComponent struct{}
