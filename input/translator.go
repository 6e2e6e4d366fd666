// Package input turns terminal key events into tank commands
// Terminals report presses and auto-repeats but never releases, so a held
// direction is released once no repeat has arrived within the hold window
package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/control"
)

// axis tracks one held direction; dir is -1, 0 or +1
type axis struct {
	dir  int
	last time.Time
}

// Translator forwards key intents to one player's controls
type Translator struct {
	keys     *KeyTable
	window   time.Duration
	controls *control.Controls

	angle axis
	power axis
}

// NewTranslator creates a translator releasing held keys after window
func NewTranslator(keys *KeyTable, window time.Duration) *Translator {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Translator{keys: keys, window: window}
}

// Attach binds the translator to a player's controls, dropping held state
// Called again with the new controls when a match restarts
func (t *Translator) Attach(c *control.Controls) {
	t.controls = c
	t.angle = axis{}
	t.power = axis{}
}

// HandleEvent translates a tcell event; non-key events yield IntentNone
func (t *Translator) HandleEvent(ev tcell.Event, now time.Time) Intent {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return IntentNone
	}
	return t.HandleKey(key.Key(), key.Rune(), now)
}

// HandleKey applies a key press and returns its intent
// System intents are only reported; tank intents are also sent to the attached controls
func (t *Translator) HandleKey(key tcell.Key, r rune, now time.Time) Intent {
	intent := t.keys.Lookup(key, r)
	if intent == IntentNone || intent.System() || t.controls == nil {
		return intent
	}

	switch intent {
	case IntentFire:
		t.controls.Fire()
	case IntentAngleLeft:
		t.press(&t.angle, -1, now, control.AngleDecrease, control.AngleIncrease)
	case IntentAngleRight:
		t.press(&t.angle, 1, now, control.AngleDecrease, control.AngleIncrease)
	case IntentPowerUp:
		t.press(&t.power, 1, now, control.PowerDecrease, control.PowerIncrease)
	case IntentPowerDown:
		t.press(&t.power, -1, now, control.PowerDecrease, control.PowerIncrease)
	}
	log.Trace().Stringer("intent", intent).Int("player", t.controls.Player()).Msg("Key intent")
	return intent
}

// press starts or refreshes a held direction; repeats of the same direction only refresh
func (t *Translator) press(a *axis, dir int, now time.Time, down, up control.Command) {
	a.last = now
	if a.dir == dir {
		return
	}
	a.dir = dir
	if dir < 0 {
		t.controls.Send(down)
	} else {
		t.controls.Send(up)
	}
}

// Tick releases directions whose last repeat is older than the hold window
func (t *Translator) Tick(now time.Time) {
	if t.controls == nil {
		return
	}
	if t.expired(&t.angle, now) {
		t.controls.AngleStop()
	}
	if t.expired(&t.power, now) {
		t.controls.PowerStop()
	}
}

func (t *Translator) expired(a *axis, now time.Time) bool {
	if a.dir == 0 || now.Sub(a.last) <= t.window {
		return false
	}
	a.dir = 0
	return true
}

// Holding reports the held angle and power directions
func (t *Translator) Holding() (angle, power int) {
	return t.angle.dir, t.power.dir
}
