package event

// TurnStartedPayload names the player now allowed to fire
type TurnStartedPayload struct {
	Player int
	Turn   int
}

// ProjectileFiredPayload describes a spawned shell
type ProjectileFiredPayload struct {
	Player int
	X, Y   float64
	Angle  float64
	Power  float64
}

// ProjectileLostPayload is a shell removed out of bounds
type ProjectileLostPayload struct {
	X, Y float64
}

// ExplosionSpawnedPayload is a terrain impact
type ExplosionSpawnedPayload struct {
	X, Y float64
}

// TankDamagedPayload reports health after a damage tick
type TankDamagedPayload struct {
	Player int
	Damage float64
	Health float64
}

// TankDestroyedPayload names the player who lost their tank
type TankDestroyedPayload struct {
	Player int
}

// OutcomeKind distinguishes terminal match results
type OutcomeKind int

const (
	OutcomePlayerWon OutcomeKind = iota
	OutcomeDraw
	OutcomeQuit
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePlayerWon:
		return "player_won"
	case OutcomeDraw:
		return "draw"
	case OutcomeQuit:
		return "quit"
	}
	return "unknown"
}

// GameOverPayload carries the match outcome
type GameOverPayload struct {
	Kind   OutcomeKind
	Player int // Winner for OutcomePlayerWon
	Turn   int
}
