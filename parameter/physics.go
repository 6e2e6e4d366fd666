package parameter

import "math"

// Ballistics
const (
	// Gravity is the downward acceleration per unit mass
	Gravity = -0.98

	// PowerMin is the muzzle speed at power level 0
	PowerMin = 150.0

	// PowerScale is the additional muzzle speed at power level 1
	PowerScale = 100.0

	// ProjectileMass multiplies Gravity; all massive bodies fall at the same rate
	ProjectileMass = 75.0
)

// Entity scales (world units)
const (
	TankScale       = 20.0
	ProjectileScale = 6.0
	ExplosionScale  = 50.0
)

// Tank
const (
	TankHealth       = 100.0
	TankPowerDefault = 0.5

	// TankBarrelSpread bounds the random initial barrel angle, degrees either side of vertical
	TankBarrelSpread = 45.0

	// AngleStepDeg is the barrel change per tick while an angle command is held
	AngleStepDeg = 0.5

	// PowerStep is the power change per tick while a power command is held
	PowerStep = 0.05
)

// Explosion
const (
	// ExplosionDuration is the lifetime of an explosion in simulation time units
	ExplosionDuration = 5.0

	// ExplosionMaxRadius scales the sinusoidal radius curve
	ExplosionMaxRadius = 75.0

	// ExplosionRadiusPeriod divides elapsed time before it is read as degrees
	ExplosionRadiusPeriod = 10.0

	// ExplosionDamageRate is health removed per unit of damage-window time
	ExplosionDamageRate = 10.0
)

// AI
const (
	// AISanityDepth rejects landing predictions this far below the muzzle
	AISanityDepth = -1.0e4

	// AIPreferredAngleDeg is the lob the AI swings to before searching, and leans toward when range is short
	AIPreferredAngleDeg = 45.0

	// AIMinAngleDeg keeps the AI barrel this far off both vertical and horizontal
	AIMinAngleDeg = 1.0

	// AIMaxAlignTicks bounds one alignment sequence before the AI fires anyway
	AIMaxAlignTicks = 900
)

// AngleStep is AngleStepDeg in radians
var AngleStep = AngleStepDeg * math.Pi / 180
