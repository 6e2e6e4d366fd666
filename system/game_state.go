package system

import (
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/status"
)

// GameStateSystem is the turn machine
//
//	CalculateNextPlayer -> TankFiring -> ProjectilesTravelling -> ProjectilesImpacting -> CalculateNextPlayer
//	CalculateNextPlayer -> GameOver
//
// Each cycle captures the remaining roster in descending player order and hands out
// one turn per live player; the next player is only chosen once every projectile
// and explosion of the previous turn has resolved
type GameStateSystem struct {
	engine.SystemBase

	state   engine.GameState
	turn    int
	queue   []engine.Player
	current int // Player number handed the turn, kept after ActivePlayer is cleared
	outcome chan engine.Outcome
	result  *engine.Outcome

	statTurn  *atomic.Int64
	statState *status.Label
}

func NewGameStateSystem(w *engine.World) *GameStateSystem {
	s := &GameStateSystem{
		SystemBase: engine.NewSystemBase("game-state", parameter.PriorityGameState),
		state:      engine.StateCalculateNextPlayer,
		outcome:    make(chan engine.Outcome, 1),
		statTurn:   counter(w, status.KeyTurn),
		statState:  new(status.Label),
	}
	if reg, ok := engine.LookupResource[status.Registry](w); ok {
		s.statState = reg.Labels.Get(status.KeyState)
	}
	s.statState.Store(s.state.String())
	return s
}

// State returns the current phase
func (s *GameStateSystem) State() engine.GameState {
	return s.state
}

// Turn returns the number of started turn cycles
func (s *GameStateSystem) Turn() int {
	return s.turn
}

// Outcome delivers the terminal result exactly once
func (s *GameStateSystem) Outcome() <-chan engine.Outcome {
	return s.outcome
}

// Result returns the terminal result once the match is over
func (s *GameStateSystem) Result() (engine.Outcome, bool) {
	if s.result == nil {
		return engine.Outcome{}, false
	}
	return *s.result, true
}

// Quit ends the match with a Quit outcome unless it is already over
// Caller must hold the world update lock
func (s *GameStateSystem) Quit(w *engine.World) {
	if s.state == engine.StateGameOver {
		return
	}
	s.finish(w, engine.Quit(s.turn))
}

func (s *GameStateSystem) Update(w *engine.World, dt float64) {
	switch s.state {
	case engine.StateCalculateNextPlayer:
		s.calculateNextPlayer(w)

	case engine.StateTankFiring:
		active := engine.WriteResource[engine.ActivePlayer](w)
		if engine.Read[component.ProjectileComponent](w).Count() > 0 {
			active.Clear()
			s.transition(w, engine.StateProjectilesTravelling)
			return
		}
		if p, ok := active.Get(); !ok || !w.IsAlive(p.Tank) {
			log.Warn().Int("player", s.current).Bool("cleared", !ok).Msg("Active player lost before firing")
			active.Clear()
			s.transition(w, engine.StateCalculateNextPlayer)
		}

	case engine.StateProjectilesTravelling:
		if engine.Read[component.ProjectileComponent](w).Count() == 0 {
			s.transition(w, engine.StateProjectilesImpacting)
		}

	case engine.StateProjectilesImpacting:
		if engine.Read[component.ExplosionComponent](w).Count() == 0 {
			s.transition(w, engine.StateCalculateNextPlayer)
		}

	case engine.StateGameOver:
	}
}

func (s *GameStateSystem) calculateNextPlayer(w *engine.World) {
	roster := engine.WriteResource[engine.Roster](w)
	remaining := roster.Remaining(w)

	switch len(remaining) {
	case 0:
		s.finish(w, engine.Draw(s.turn))
		return
	case 1:
		s.finish(w, engine.PlayerWon(remaining[0].Number, s.turn))
		return
	}

	if len(s.queue) == 0 {
		s.queue = append(s.queue[:0], remaining...)
		sort.Slice(s.queue, func(i, j int) bool {
			return s.queue[i].Number > s.queue[j].Number
		})
		s.turn++
		s.statTurn.Store(int64(s.turn))
		log.Debug().Int("turn", s.turn).Int("players", len(s.queue)).Msg("Turn cycle started")
	}

	alive := make(map[int]bool, len(remaining))
	for _, p := range remaining {
		alive[p.Number] = true
	}

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if !alive[next.Number] {
			log.Debug().Int("player", next.Number).Msg("Skipped destroyed player")
			continue
		}

		engine.WriteResource[engine.ActivePlayer](w).Set(next)
		s.current = next.Number
		s.transition(w, engine.StateTankFiring)
		emit(w, event.EventTurnStarted, event.TurnStartedPayload{Player: next.Number, Turn: s.turn})
		log.Info().Int("player", next.Number).Int("turn", s.turn).Msg("Turn started")
		return
	}

	// Queue drained by dead entries; refilled next tick
	log.Warn().Int("turn", s.turn).Int("remaining", len(remaining)).Msg("No next player in turn queue")
}

func (s *GameStateSystem) transition(w *engine.World, next engine.GameState) {
	log.Debug().Stringer("from", s.state).Stringer("state", next).Msg("Game state")
	s.state = next
	s.statState.Store(next.String())
	if info, ok := engine.LookupResource[engine.TurnInfo](w); ok {
		info.State = next
		info.Turn = s.turn
	}
}

func (s *GameStateSystem) finish(w *engine.World, o engine.Outcome) {
	s.transition(w, engine.StateGameOver)
	engine.WriteResource[engine.ActivePlayer](w).Clear()
	s.queue = nil
	s.result = &o

	select {
	case s.outcome <- o:
	default:
	}
	emit(w, event.EventGameOver, o.Payload())
	log.Info().Stringer("outcome", o).Msg("Game over")
}
