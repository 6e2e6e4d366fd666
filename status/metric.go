package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Float is a float64 gauge updated without locks; the zero value reads 0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Add adds delta and returns the new total
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		sum := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(sum)) {
			return sum
		}
	}
}

// Label holds a short string such as the current game state
type Label struct {
	v atomic.Value
}

func (l *Label) Load() string {
	s, _ := l.v.Load().(string)
	return s
}

func (l *Label) Store(s string) {
	l.v.Store(s)
}

// Group is a keyed family of metrics of one kind
// Systems fetch their pointers once at construction and update them directly
type Group[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int32
}

// NewGroup creates an empty group
func NewGroup[T any]() *Group[T] {
	return &Group[T]{}
}

// Get returns the metric for key, creating it on first use
func (g *Group[T]) Get(key string) *T {
	if v, ok := g.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := g.items.LoadOrStore(key, new(T))
	if !loaded {
		g.count.Add(1)
	}
	return v.(*T)
}

// Has reports whether key has been created
func (g *Group[T]) Has(key string) bool {
	_, ok := g.items.Load(key)
	return ok
}

// Range visits every metric in key order
func (g *Group[T]) Range(fn func(key string, m *T)) {
	var keys []string
	g.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	for _, k := range keys {
		v, _ := g.items.Load(k)
		fn(k, v.(*T))
	}
}

// Count returns the number of metrics in the group
func (g *Group[T]) Count() int {
	return int(g.count.Load())
}
