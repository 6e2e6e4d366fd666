// Package report runs headless AI matches and summarizes their outcomes
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/tanks/config"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/game"
	"github.com/lixenwraith/tanks/status"
)

// OutcomeTimeout marks a run cut off by the tick budget
const OutcomeTimeout = "timeout"

// Run is the summary of one headless match
type Run struct {
	Index      int     `msgpack:"index"`
	Seed       int64   `msgpack:"seed"`
	Players    int     `msgpack:"players"`
	Outcome    string  `msgpack:"outcome"`
	Winner     int     `msgpack:"winner,omitempty"`
	Turns      int     `msgpack:"turns"`
	Ticks      int64   `msgpack:"ticks"`
	Shots      int64   `msgpack:"shots"`
	Explosions int64   `msgpack:"explosions"`
	Lost       int64   `msgpack:"lost"`
	Destroyed  int64   `msgpack:"destroyed"`
	Damage     float64 `msgpack:"damage"`
}

// Summary aggregates a batch of runs
type Summary struct {
	Runs      []Run       `msgpack:"runs"`
	Wins      map[int]int `msgpack:"wins"`
	Draws     int         `msgpack:"draws"`
	Timeouts  int         `msgpack:"timeouts"`
	MeanTurns float64     `msgpack:"meanTurns"`
	MeanShots float64     `msgpack:"meanShots"`
}

// Play runs one AI-only match with a fixed step until it ends or maxTicks elapse
// Human seats in cfg are ignored
func Play(cfg *config.Config, index int, seed int64, maxTicks int) (Run, error) {
	c := *cfg
	c.Players.Humans = 0

	m, err := game.NewMatch(&c, game.WithSeed(seed))
	if err != nil {
		return Run{}, err
	}

	dt := 1 / float64(c.Sim.TickRate)
	run := Run{
		Index:   index,
		Seed:    m.Seed(),
		Players: c.Players.Count,
		Outcome: OutcomeTimeout,
	}

	for i := 0; i < maxTicks; i++ {
		m.Tick(dt)
		for _, ev := range m.Events() {
			if ev.Type != event.EventGameOver {
				continue
			}
			payload := ev.Payload.(event.GameOverPayload)
			run.Outcome = payload.Kind.String()
			if payload.Kind == event.OutcomePlayerWon {
				run.Winner = payload.Player
			}
		}
		if m.Over() {
			break
		}
	}

	_, run.Turns = m.State()
	stats := m.Metrics()
	run.Ticks = m.Ticks()
	run.Shots = stats.Ints.Get(status.KeyShots).Load()
	run.Explosions = stats.Ints.Get(status.KeyExplosions).Load()
	run.Lost = stats.Ints.Get(status.KeyLost).Load()
	run.Destroyed = stats.Ints.Get(status.KeyDestroyed).Load()
	run.Damage = stats.Floats.Get(status.KeyDamage).Load()

	log.Info().
		Int("run", index).
		Int64("seed", run.Seed).
		Str("outcome", run.Outcome).
		Int("winner", run.Winner).
		Int("turn", run.Turns).
		Int64("ticks", run.Ticks).
		Msg("Run finished")
	return run, nil
}

// Summarize aggregates runs
func Summarize(runs []Run) Summary {
	s := Summary{Runs: runs, Wins: make(map[int]int)}
	if len(runs) == 0 {
		return s
	}
	var turns, shots int
	for _, r := range runs {
		switch r.Outcome {
		case event.OutcomePlayerWon.String():
			s.Wins[r.Winner]++
		case event.OutcomeDraw.String():
			s.Draws++
		case OutcomeTimeout:
			s.Timeouts++
		}
		turns += r.Turns
		shots += int(r.Shots)
	}
	s.MeanTurns = float64(turns) / float64(len(runs))
	s.MeanShots = float64(shots) / float64(len(runs))
	return s
}

// Encode writes the summary as msgpack
func Encode(w io.Writer, s Summary) error {
	if err := msgpack.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

// Decode reads a summary written by Encode
func Decode(r io.Reader) (Summary, error) {
	var s Summary
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, fmt.Errorf("report: decode: %w", err)
	}
	return s, nil
}

// Text renders a human-readable table of the runs and their aggregate
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-12s %-10s %-6s %-6s %-7s %-6s\n", "run", "seed", "outcome", "winner", "turns", "ticks", "shots")
	for _, r := range s.Runs {
		winner := "-"
		if r.Winner > 0 {
			winner = fmt.Sprintf("%d", r.Winner)
		}
		fmt.Fprintf(&b, "%-4d %-12d %-10s %-6s %-6d %-7d %-6d\n",
			r.Index, r.Seed, r.Outcome, winner, r.Turns, r.Ticks, r.Shots)
	}

	players := make([]int, 0, len(s.Wins))
	for p := range s.Wins {
		players = append(players, p)
	}
	sort.Ints(players)
	wins := make([]string, 0, len(players))
	for _, p := range players {
		wins = append(wins, fmt.Sprintf("p%d=%d", p, s.Wins[p]))
	}

	fmt.Fprintf(&b, "\nruns %d  wins [%s]  draws %d  timeouts %d  mean turns %.2f  mean shots %.2f\n",
		len(s.Runs), strings.Join(wins, " "), s.Draws, s.Timeouts, s.MeanTurns, s.MeanShots)
	return b.String()
}
