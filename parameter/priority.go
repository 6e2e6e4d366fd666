package parameter

// System Execution Priorities (lower runs first, ties run in registration order)
const (
	PriorityDraw        = 10 // Hands the previous tick's drawables to the renderer
	PriorityPreDraw     = 15
	PriorityCollision   = 20 // Before inertia, so a fresh spawn is tested where it was created
	PriorityInertia     = 30
	PriorityGravity     = 35
	PriorityExplosion   = 35 // Same slot as gravity, registered after it
	PriorityGameState   = 50
	PriorityFiring      = 60
	PriorityTankControl = 61
	PriorityAI          = 70 // Commands issued here are drained next tick
)
