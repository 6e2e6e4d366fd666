package input

import (
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tanks/control"
)

const window = 150 * time.Millisecond

func newAttached() (*Translator, *control.Controls) {
	c := control.NewControls(1)
	tr := NewTranslator(nil, window)
	tr.Attach(c)
	return tr, c
}

func TestKeyTableLookup(t *testing.T) {
	kt := DefaultKeyTable()
	tests := []struct {
		key  tcell.Key
		r    rune
		want Intent
	}{
		{tcell.KeyLeft, 0, IntentAngleLeft},
		{tcell.KeyRight, 0, IntentAngleRight},
		{tcell.KeyUp, 0, IntentPowerUp},
		{tcell.KeyDown, 0, IntentPowerDown},
		{tcell.KeyEscape, 0, IntentQuit},
		{tcell.KeyEnter, 0, IntentFire},
		{tcell.KeyRune, ' ', IntentFire},
		{tcell.KeyRune, 'q', IntentQuit},
		{tcell.KeyRune, 'r', IntentRestart},
		{tcell.KeyRune, 'x', IntentNone},
		{tcell.KeyF1, 0, IntentNone},
	}
	for _, tt := range tests {
		if got := kt.Lookup(tt.key, tt.r); got != tt.want {
			t.Errorf("Lookup(%v, %q): expected %v, got %v", tt.key, tt.r, tt.want, got)
		}
	}
}

func TestTranslatorFire(t *testing.T) {
	tr, c := newAttached()
	now := time.Unix(0, 0)

	if got := tr.HandleKey(tcell.KeyRune, ' ', now); got != IntentFire {
		t.Errorf("Expected IntentFire, got %v", got)
	}
	tr.HandleKey(tcell.KeyEnter, 0, now)
	if got := c.TakeFire(); got != 2 {
		t.Errorf("Expected 2 fire signals, got %d", got)
	}
}

func TestTranslatorHoldAndRelease(t *testing.T) {
	tr, c := newAttached()
	start := time.Unix(0, 0)

	// Auto-repeat every 30ms for 300ms produces one increase
	for ms := 0; ms <= 300; ms += 30 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		tr.HandleKey(tcell.KeyRight, 0, now)
		tr.Tick(now)
	}
	if got := c.DrainAdjustments(); !reflect.DeepEqual(got, []control.Command{control.AngleIncrease}) {
		t.Fatalf("Expected a single AngleIncrease while held, got %v", got)
	}
	if angle, _ := tr.Holding(); angle != 1 {
		t.Errorf("Expected angle held right, got %d", angle)
	}

	// Last repeat at 300ms; still within the window at 450ms
	tr.Tick(start.Add(450 * time.Millisecond))
	if got := c.Pending(); got != 0 {
		t.Errorf("Expected no stop inside the hold window, got %d pending", got)
	}

	tr.Tick(start.Add(451 * time.Millisecond))
	if got := c.DrainAdjustments(); !reflect.DeepEqual(got, []control.Command{control.AngleStop}) {
		t.Errorf("Expected AngleStop after the hold window, got %v", got)
	}

	tr.Tick(start.Add(time.Second))
	if got := c.Pending(); got != 0 {
		t.Errorf("Expected a single stop, got %d pending", got)
	}
}

func TestTranslatorDirectionSwitch(t *testing.T) {
	tr, c := newAttached()
	now := time.Unix(0, 0)

	tr.HandleKey(tcell.KeyUp, 0, now)
	tr.HandleKey(tcell.KeyDown, 0, now.Add(10*time.Millisecond))
	tr.HandleKey(tcell.KeyLeft, 0, now.Add(20*time.Millisecond))

	want := []control.Command{control.PowerIncrease, control.PowerDecrease, control.AngleDecrease}
	if got := c.DrainAdjustments(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if angle, power := tr.Holding(); angle != -1 || power != -1 {
		t.Errorf("Expected (-1, -1) held, got (%d, %d)", angle, power)
	}
}

func TestTranslatorSystemIntents(t *testing.T) {
	tr, c := newAttached()
	now := time.Unix(0, 0)

	if got := tr.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), now); got != IntentQuit {
		t.Errorf("Expected IntentQuit, got %v", got)
	}
	if got := tr.HandleKey(tcell.KeyRune, 'r', now); got != IntentRestart {
		t.Errorf("Expected IntentRestart, got %v", got)
	}
	if got := tr.HandleEvent(tcell.NewEventResize(80, 24), now); got != IntentNone {
		t.Errorf("Expected IntentNone for resize, got %v", got)
	}
	if got := c.Pending(); got != 0 {
		t.Errorf("Expected system intents not forwarded, got %d pending", got)
	}
}

func TestTranslatorDetached(t *testing.T) {
	tr := NewTranslator(nil, window)
	now := time.Unix(0, 0)

	if got := tr.HandleKey(tcell.KeyLeft, 0, now); got != IntentAngleLeft {
		t.Errorf("Expected intent reported without controls, got %v", got)
	}
	tr.Tick(now.Add(time.Second))

	// Reattaching drops held state from the previous match
	c := control.NewControls(2)
	tr.Attach(c)
	if angle, power := tr.Holding(); angle != 0 || power != 0 {
		t.Errorf("Expected nothing held after attach, got (%d, %d)", angle, power)
	}
}
