package input

import "github.com/gdamore/tcell/v2"

// Intent is the semantic meaning of a key press
type Intent uint8

const (
	IntentNone Intent = iota

	// System-level intents, returned to the caller
	IntentQuit    // q, Esc, Ctrl+C
	IntentRestart // r
	IntentMute    // m

	// Tank intents, forwarded to the active player's controls
	IntentFire       // Space, Enter
	IntentAngleLeft  // Left arrow, h
	IntentAngleRight // Right arrow, l
	IntentPowerUp    // Up arrow, k
	IntentPowerDown  // Down arrow, j
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentRestart:    "restart",
	IntentMute:       "mute",
	IntentFire:       "fire",
	IntentAngleLeft:  "angle_left",
	IntentAngleRight: "angle_right",
	IntentPowerUp:    "power_up",
	IntentPowerDown:  "power_down",
}

func (i Intent) String() string {
	if int(i) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[i]
}

// System reports whether the intent is handled by the caller rather than a tank
func (i Intent) System() bool {
	return i == IntentQuit || i == IntentRestart || i == IntentMute
}

// KeyTable maps keys to intents
type KeyTable struct {
	SpecialKeys map[tcell.Key]Intent
	Runes       map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyEnter:  IntentFire,
			tcell.KeyLeft:   IntentAngleLeft,
			tcell.KeyRight:  IntentAngleRight,
			tcell.KeyUp:     IntentPowerUp,
			tcell.KeyDown:   IntentPowerDown,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			'r': IntentRestart,
			'm': IntentMute,
			' ': IntentFire,
			'h': IntentAngleLeft,
			'l': IntentAngleRight,
			'k': IntentPowerUp,
			'j': IntentPowerDown,
		},
	}
}

// Lookup resolves a key event to an intent
func (kt *KeyTable) Lookup(key tcell.Key, r rune) Intent {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.SpecialKeys[key]
}
