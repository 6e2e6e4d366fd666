package event

// EventType represents the type of game event
type EventType int

const (
	// EventTurnStarted fires when a player becomes active
	// Trigger: GameStateSystem | Payload: TurnStartedPayload
	EventTurnStarted EventType = iota

	// EventProjectileFired fires when a shell is spawned
	// Trigger: FiringSystem | Payload: ProjectileFiredPayload
	EventProjectileFired

	// EventProjectileLost fires when a shell leaves the world without impact
	// Trigger: CollisionSystem | Payload: ProjectileLostPayload
	EventProjectileLost

	// EventExplosionSpawned fires when a shell hits terrain
	// Trigger: CollisionSystem | Payload: ExplosionSpawnedPayload
	EventExplosionSpawned

	// EventTankDamaged fires when an explosion removes health
	// Trigger: ExplosionSystem | Payload: TankDamagedPayload
	EventTankDamaged

	// EventTankDestroyed fires when a tank's health reaches zero
	// Trigger: ExplosionSystem | Payload: TankDestroyedPayload
	EventTankDestroyed

	// EventGameOver fires once with the match outcome
	// Trigger: GameStateSystem | Payload: GameOverPayload
	EventGameOver
)

var typeNames = [...]string{
	EventTurnStarted:      "turn_started",
	EventProjectileFired:  "projectile_fired",
	EventProjectileLost:   "projectile_lost",
	EventExplosionSpawned: "explosion_spawned",
	EventTankDamaged:      "tank_damaged",
	EventTankDestroyed:    "tank_destroyed",
	EventGameOver:         "game_over",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// GameEvent is a typed message with an event-specific payload
type GameEvent struct {
	Type    EventType
	Payload any
}
