package engine

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/tanks/core"
)

func TestResourceAccess(t *testing.T) {
	w := NewWorld()
	SetResource(w, &Dimensions{Width: 1000, Height: 500})

	dim := ReadResource[Dimensions](w)
	if dim.Width != 1000 || dim.Height != 500 {
		t.Errorf("Expected 1000x500, got %vx%v", dim.Width, dim.Height)
	}

	// Read returns a copy
	dim.Width = 1
	if ReadResource[Dimensions](w).Width != 1000 {
		t.Errorf("Expected ReadResource to return a copy")
	}

	WriteResource[Dimensions](w).Width = 800
	if ReadResource[Dimensions](w).Width != 800 {
		t.Errorf("Expected write to persist")
	}

	if _, ok := LookupResource[Roster](w); ok {
		t.Errorf("Expected missing roster")
	}
}

func TestMissingResourcePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for missing resource")
		}
	}()
	WriteResource[ActivePlayer](NewWorld())
}

func TestActivePlayer(t *testing.T) {
	var a ActivePlayer
	if _, ok := a.Get(); ok {
		t.Errorf("Expected no active player initially")
	}
	a.Set(Player{Number: 2, Tank: core.NewEntity(3, 1)})
	if p, ok := a.Get(); !ok || p.Number != 2 {
		t.Errorf("Expected player 2 active, got %v (ok=%v)", p, ok)
	}
	if !a.Is(2) || a.Is(1) {
		t.Errorf("Unexpected Is results")
	}
	a.Clear()
	if a.Is(2) {
		t.Errorf("Expected cleared active player")
	}
}

func TestRosterRemaining(t *testing.T) {
	w := NewWorld()
	t1, t2, t3 := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	r := &Roster{Players: []Player{{1, t1}, {2, t2}, {3, t3}}}

	w.Delete(t2)
	if got := len(r.Remaining(w)); got != 3 {
		t.Errorf("Expected pending delete to still count, got %d", got)
	}
	w.Flush()

	rem := r.Remaining(w)
	if len(rem) != 2 || rem[0].Number != 1 || rem[1].Number != 3 {
		t.Errorf("Expected players 1 and 3, got %v", rem)
	}
	if p, ok := r.Owner(t3); !ok || p.Number != 3 {
		t.Errorf("Expected tank owner 3, got %v", p)
	}
	if _, ok := r.Lookup(9); ok {
		t.Errorf("Expected no player 9")
	}
}

func TestWorldToClip(t *testing.T) {
	d := Dimensions{Width: 1000, Height: 500}
	m := d.WorldToClip()

	check := func(x, y, wx, wy float32) {
		v := m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
		if math.Abs(float64(v.X()-wx)) > 1e-5 || math.Abs(float64(v.Y()-wy)) > 1e-5 {
			t.Errorf("(%v,%v): expected (%v,%v), got (%v,%v)", x, y, wx, wy, v.X(), v.Y())
		}
	}
	check(0, 0, -1, -1)
	check(1000, 500, 1, 1)
	check(500, 250, 0, 0)
}

func TestInBounds(t *testing.T) {
	d := Dimensions{Width: 100, Height: 50}
	if d.InBounds(-5, 10) || d.InBounds(101, 10) || d.InBounds(50, -1) {
		t.Errorf("Expected out of bounds")
	}
	if !d.InBounds(0, 0) || !d.InBounds(100, 1000) {
		t.Errorf("Expected in bounds, including above the top")
	}
}

func TestOutcomeString(t *testing.T) {
	if got := PlayerWon(1, 4).String(); got != "player 1 won on turn 4" {
		t.Errorf("Unexpected %q", got)
	}
	if got := Draw(2).Payload(); got.Turn != 2 {
		t.Errorf("Expected turn 2 in payload, got %d", got.Turn)
	}
}

func TestClockClampsDelta(t *testing.T) {
	w := NewWorld()
	var dts []float64
	w.AddSystem(NewSystemFunc("probe", 1, func(_ *World, dt float64) { dts = append(dts, dt) }))

	start := time.Unix(0, 0)
	mock := NewMockTimeProvider(start)
	c := NewClock(w, mock, 60, 0.1)

	mock.Advance(16 * time.Millisecond)
	c.Step()
	mock.Advance(2 * time.Second)
	c.Step()

	if len(dts) != 2 {
		t.Fatalf("Expected 2 ticks, got %d", len(dts))
	}
	if math.Abs(dts[0]-0.016) > 1e-9 {
		t.Errorf("Expected dt 0.016, got %f", dts[0])
	}
	if dts[1] != 0.1 {
		t.Errorf("Expected clamped dt 0.1, got %f", dts[1])
	}
	if c.Ticks() != 2 {
		t.Errorf("Expected 2 ticks counted, got %d", c.Ticks())
	}
	if c.Interval() != time.Second/60 {
		t.Errorf("Unexpected interval %v", c.Interval())
	}
}
