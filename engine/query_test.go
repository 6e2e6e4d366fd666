package engine

import (
	"testing"

	"github.com/lixenwraith/tanks/core"
)

func TestQueryBuilder(t *testing.T) {
	w := NewWorld()
	mocks := Write[MockComponent](w)
	others := Write[OtherComponent](w)

	e1 := w.CreateEntity()
	mocks.Set(e1, MockComponent{Value: 1})
	others.Set(e1, OtherComponent{Tag: "a"})

	e2 := w.CreateEntity()
	mocks.Set(e2, MockComponent{Value: 2})

	e3 := w.CreateEntity()
	others.Set(e3, OtherComponent{Tag: "b"})

	results := w.Query().With(mocks).With(others).Execute()
	if len(results) != 1 || results[0] != e1 {
		t.Errorf("Expected [%v], got %v", e1, results)
	}

	if got := w.Query().With(Read[MockComponent](w)).Execute(); len(got) != 2 {
		t.Errorf("Expected 2 results, got %d", len(got))
	}

	if got := w.Query().Execute(); len(got) != 0 {
		t.Errorf("Expected 0 results for empty query, got %d", len(got))
	}

	without := w.Query().With(mocks).Without(others).Execute()
	if len(without) != 1 || without[0] != e2 {
		t.Errorf("Expected [%v], got %v", e2, without)
	}
}

func TestQueryCachesResult(t *testing.T) {
	w := NewWorld()
	mocks := Write[MockComponent](w)
	mocks.Set(w.CreateEntity(), MockComponent{})

	q := w.Query().With(mocks)
	first := q.Execute()
	mocks.Set(w.CreateEntity(), MockComponent{})
	second := q.Execute()

	if len(first) != 1 || len(second) != 1 {
		t.Errorf("Expected cached result of 1, got %d then %d", len(first), len(second))
	}
}

func TestQueryBuilder_Panic(t *testing.T) {
	w := NewWorld()
	q := w.Query()
	q.Execute()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic when modifying executed query")
		}
	}()
	q.With(Write[MockComponent](w))
}

func TestQueryRejectsNonStore(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for non-store filter")
		}
	}()
	NewWorld().Query().With(42)
}

func TestEntityBuilder(t *testing.T) {
	w := NewWorld()
	mocks := Write[MockComponent](w)
	others := Write[OtherComponent](w)

	eb := w.NewEntity()
	With(eb, mocks, MockComponent{Value: 9})
	With(eb, others, OtherComponent{Tag: "z"})
	e := eb.Build()

	if v, ok := mocks.Get(e); !ok || v.Value != 9 {
		t.Errorf("Expected mock value 9, got %v (ok=%v)", v, ok)
	}
	if !others.Has(e) {
		t.Errorf("Expected other component")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic adding to built entity")
		}
	}()
	With(eb, mocks, MockComponent{})
}

func TestStoreUpdateAndOrder(t *testing.T) {
	s := NewStore[MockComponent]()
	w := NewWorld()
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	s.Set(a, MockComponent{Value: 1})
	s.Set(b, MockComponent{Value: 2})
	s.Set(c, MockComponent{Value: 3})

	if !s.Update(b, func(m *MockComponent) { m.Value *= 10 }) {
		t.Fatalf("Expected update to find entity")
	}
	if v, _ := s.Get(b); v.Value != 20 {
		t.Errorf("Expected 20, got %d", v.Value)
	}
	if s.Update(w.CreateEntity(), func(*MockComponent) {}) {
		t.Errorf("Expected update on absent entity to report false")
	}

	s.RemoveBatch([]core.Entity{a})
	all := s.All()
	if len(all) != 2 || all[0] != b || all[1] != c {
		t.Errorf("Expected stable order [b c], got %v", all)
	}

	s.Remove(c)
	if s.Count() != 1 {
		t.Errorf("Expected 1 after remove, got %d", s.Count())
	}
}
