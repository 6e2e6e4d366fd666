package engine

import (
	"strings"
	"testing"

	"github.com/lixenwraith/tanks/core"
)

type MockComponent struct {
	Value int
}

type OtherComponent struct {
	Tag string
}

func TestCreateEntityUnique(t *testing.T) {
	w := NewWorld()
	seen := make(map[core.Entity]bool)
	for i := 0; i < 100; i++ {
		e := w.CreateEntity()
		if e == core.NoEntity {
			t.Fatalf("Expected valid entity, got NoEntity")
		}
		if seen[e] {
			t.Fatalf("Duplicate entity %v", e)
		}
		seen[e] = true
	}
	if w.EntityCount() != 100 {
		t.Errorf("Expected 100 entities, got %d", w.EntityCount())
	}
}

func TestDeleteIsDeferredUntilFlush(t *testing.T) {
	w := NewWorld()
	store := Write[MockComponent](w)
	e := w.CreateEntity()
	store.Set(e, MockComponent{Value: 7})

	w.Delete(e)

	if !w.IsAlive(e) {
		t.Errorf("Expected entity alive before flush")
	}
	if !w.IsPendingDelete(e) {
		t.Errorf("Expected entity pending delete")
	}
	if !store.Has(e) {
		t.Errorf("Expected component present before flush")
	}

	if n := w.Flush(); n != 1 {
		t.Errorf("Expected 1 flushed, got %d", n)
	}
	if w.IsAlive(e) {
		t.Errorf("Expected entity dead after flush")
	}
	if store.Has(e) {
		t.Errorf("Expected component removed after flush")
	}
}

func TestDeleteTwiceIsNoop(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Delete(e)
	w.Delete(e)
	if n := w.Flush(); n != 1 {
		t.Errorf("Expected 1 flushed, got %d", n)
	}
	w.Delete(e)
	if n := w.Flush(); n != 0 {
		t.Errorf("Expected stale delete to be ignored, got %d", n)
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.Delete(old)
	w.Flush()

	fresh := w.CreateEntity()
	if fresh.Index() != old.Index() {
		t.Fatalf("Expected slot %d reused, got %d", old.Index(), fresh.Index())
	}
	if fresh.Generation() == old.Generation() {
		t.Errorf("Expected new generation on reuse")
	}
	if w.IsAlive(old) {
		t.Errorf("Expected stale handle to stay dead after slot reuse")
	}
	if !w.IsAlive(fresh) {
		t.Errorf("Expected fresh handle alive")
	}

	Write[MockComponent](w).Set(fresh, MockComponent{Value: 1})
	if _, ok := Read[MockComponent](w).Get(old); ok {
		t.Errorf("Expected stale handle not to resolve component of new occupant")
	}
}

func TestNoEntityNeverAlive(t *testing.T) {
	w := NewWorld()
	if w.IsAlive(core.NoEntity) {
		t.Errorf("Expected NoEntity dead")
	}
	if w.IsAlive(core.NewEntity(50, 1)) {
		t.Errorf("Expected unissued handle dead")
	}
}

func TestFlushRemovesFromAllStores(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	keep := w.CreateEntity()
	Write[MockComponent](w).Set(e, MockComponent{Value: 1})
	Write[OtherComponent](w).Set(e, OtherComponent{Tag: "x"})
	Write[MockComponent](w).Set(keep, MockComponent{Value: 2})

	w.Delete(e)
	w.Flush()

	if Read[MockComponent](w).Count() != 1 {
		t.Errorf("Expected 1 mock component, got %d", Read[MockComponent](w).Count())
	}
	if Read[OtherComponent](w).Count() != 0 {
		t.Errorf("Expected 0 other components, got %d", Read[OtherComponent](w).Count())
	}
}

func TestClear(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	Write[MockComponent](w).Set(e, MockComponent{})
	w.Clear()

	if w.IsAlive(e) {
		t.Errorf("Expected entity dead after clear")
	}
	if w.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", w.EntityCount())
	}
	if Read[MockComponent](w).Count() != 0 {
		t.Errorf("Expected empty store after clear")
	}
	if n := w.CreateEntity(); !w.IsAlive(n) {
		t.Errorf("Expected new entity alive after clear")
	}
}

func TestSchedulerPriorityOrder(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(newRecordingSystem("ai", 70, &log))
	w.AddSystem(newRecordingSystem("collision", 20, &log))
	w.AddSystem(newRecordingSystem("gravity", 35, &log))
	w.AddSystem(newRecordingSystem("explosion", 35, &log))
	w.AddSystem(newRecordingSystem("draw", 10, &log))
	w.AddSystem(newRecordingSystem("inertia", 30, &log))

	w.Tick(0.016)

	got := strings.Join(log, ",")
	want := "draw,collision,inertia,gravity,explosion,ai"
	if got != want {
		t.Errorf("Expected order %s, got %s", want, got)
	}
}

func TestDeletionVisibleOnlyAfterTick(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	Write[MockComponent](w).Set(e, MockComponent{Value: 1})

	var log []string
	var seenByLater bool
	deleter := newRecordingSystem("deleter", 1, &log)
	deleter.fn = func(w *World, _ float64) { w.Delete(e) }
	observer := newRecordingSystem("observer", 2, &log)
	observer.fn = func(w *World, _ float64) {
		seenByLater = Read[MockComponent](w).Has(e) && w.IsAlive(e)
	}
	w.AddSystem(deleter)
	w.AddSystem(observer)

	w.Tick(1)

	if !seenByLater {
		t.Errorf("Expected later system in same tick to still see entity")
	}
	if w.IsAlive(e) {
		t.Errorf("Expected entity removed after tick")
	}
}

func TestSystemFunc(t *testing.T) {
	w := NewWorld()
	var got float64
	w.AddSystem(NewSystemFunc("fn", 5, func(_ *World, dt float64) { got = dt }))
	w.Tick(0.25)
	if got != 0.25 {
		t.Errorf("Expected dt 0.25, got %f", got)
	}
	if s := w.Systems()[0]; s.Name() != "fn" || s.Priority() != 5 {
		t.Errorf("Unexpected system identity %s/%d", s.Name(), s.Priority())
	}
}
