// Package audio synthesizes game sound effects with beep
// Every operation is a no-op until Initialize succeeds, so matches run without a sound device
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/event"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays cues through a single mixer on the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	seed        int64
	played      [cueCount]int
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		seed:  time.Now().UnixNano(),
	}
}

// Initialize opens the speaker; calling it again is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Enabled reports whether cues reach the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Played returns how many times a cue was started
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return sm.played[c]
}

// Play starts a cue
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c < 0 || c >= cueCount {
		return
	}

	sm.seed++
	s := Streamer(sampleRate, c, sm.seed)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[c]++
}

// PlayFire plays the shot chirp
func (sm *SoundManager) PlayFire() {
	sm.Play(CueFire)
}

// PlayExplosion plays the impact blast
func (sm *SoundManager) PlayExplosion() {
	sm.Play(CueExplosion)
}

// PlayDestroyed plays the tank wreck sound
func (sm *SoundManager) PlayDestroyed() {
	sm.Play(CueDestroyed)
}

// PlayGameOver plays the victory or draw jingle
func (sm *SoundManager) PlayGameOver(kind event.OutcomeKind) {
	switch kind {
	case event.OutcomePlayerWon:
		sm.Play(CueVictory)
	case event.OutcomeDraw:
		sm.Play(CueDraw)
	}
}

// HandleEvent plays the cue for a game event, if any
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	c, ok := CueFor(ev)
	if !ok {
		return
	}
	log.Trace().Stringer("cue", c).Stringer("event", ev.Type).Msg("Sound cue")
	sm.Play(c)
}
