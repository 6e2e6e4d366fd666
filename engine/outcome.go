package engine

import (
	"fmt"

	"github.com/lixenwraith/tanks/event"
)

// Outcome is the terminal result of a match
type Outcome struct {
	Kind   event.OutcomeKind
	Player int // Winner, only for OutcomePlayerWon
	Turn   int
}

// PlayerWon builds a win outcome
func PlayerWon(player, turn int) Outcome {
	return Outcome{Kind: event.OutcomePlayerWon, Player: player, Turn: turn}
}

// Draw builds a draw outcome
func Draw(turn int) Outcome {
	return Outcome{Kind: event.OutcomeDraw, Turn: turn}
}

// Quit builds the externally triggered outcome
func Quit(turn int) Outcome {
	return Outcome{Kind: event.OutcomeQuit, Turn: turn}
}

func (o Outcome) String() string {
	switch o.Kind {
	case event.OutcomePlayerWon:
		return fmt.Sprintf("player %d won on turn %d", o.Player, o.Turn)
	case event.OutcomeDraw:
		return fmt.Sprintf("draw on turn %d", o.Turn)
	case event.OutcomeQuit:
		return fmt.Sprintf("quit on turn %d", o.Turn)
	}
	return "unknown outcome"
}

// Payload converts the outcome to its game-over event payload
func (o Outcome) Payload() event.GameOverPayload {
	return event.GameOverPayload(o)
}
