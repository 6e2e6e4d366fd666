package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/tanks/event"
)

// Cue is a sound effect triggered by a game event
type Cue int

const (
	CueFire Cue = iota
	CueExplosion
	CueDestroyed
	CueVictory
	CueDraw
	cueCount
)

var cueNames = [...]string{
	CueFire:      "fire",
	CueExplosion: "explosion",
	CueDestroyed: "destroyed",
	CueVictory:   "victory",
	CueDraw:      "draw",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Note frequencies
const (
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
)

// CueFor maps a game event to its sound, if it has one
// Quit ends the match silently
func CueFor(ev event.GameEvent) (Cue, bool) {
	switch ev.Type {
	case event.EventProjectileFired:
		return CueFire, true
	case event.EventExplosionSpawned:
		return CueExplosion, true
	case event.EventTankDestroyed:
		return CueDestroyed, true
	case event.EventGameOver:
		p, ok := ev.Payload.(event.GameOverPayload)
		if !ok {
			return 0, false
		}
		switch p.Kind {
		case event.OutcomePlayerWon:
			return CueVictory, true
		case event.OutcomeDraw:
			return CueDraw, true
		}
	}
	return 0, false
}

// Streamer builds a finite streamer for a cue
// seed varies noise between blasts
func Streamer(sr beep.SampleRate, c Cue, seed int64) beep.Streamer {
	switch c {
	case CueFire:
		return beep.Take(sr.N(120*time.Millisecond),
			NewChirpGenerator(sr, 220, 880, 120*time.Millisecond))
	case CueExplosion:
		return beep.Take(sr.N(600*time.Millisecond),
			NewBlastGenerator(sr, 70, 6, seed))
	case CueDestroyed:
		return beep.Seq(
			beep.Take(sr.N(400*time.Millisecond), NewBlastGenerator(sr, 50, 3, seed)),
			beep.Take(sr.N(600*time.Millisecond), NewChirpGenerator(sr, 400, 60, 600*time.Millisecond)),
		)
	case CueVictory:
		return melody(sr, []float64{noteC5, noteE5, noteG5}, []time.Duration{150, 150, 400})
	case CueDraw:
		return melody(sr, []float64{noteG4, noteE4, noteC4}, []time.Duration{200, 200, 500})
	}
	return nil
}

// melody plays quiet sine notes back to back; durations are milliseconds
func melody(sr beep.SampleRate, freqs []float64, durations []time.Duration) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for i, f := range freqs {
		tone, err := generators.SineTone(sr, f)
		if err != nil {
			continue
		}
		notes = append(notes, beep.Take(sr.N(durations[i]*time.Millisecond), tone))
	}
	return &effects.Gain{Streamer: beep.Seq(notes...), Gain: -0.8}
}
