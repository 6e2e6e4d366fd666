package engine

// System is a unit of per-tick behavior
// The world runs systems sequentially in ascending Priority order
type System interface {
	// Name identifies the system in logs
	Name() string
	// Priority orders execution, lower runs first
	Priority() int
	// Update advances the system by dt simulation seconds
	Update(w *World, dt float64)
}

// SystemBase provides the name and priority half of System
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	name     string
	priority int
}

// NewSystemBase initializes the embedded identity
func NewSystemBase(name string, priority int) SystemBase {
	return SystemBase{name: name, priority: priority}
}

func (b SystemBase) Name() string {
	return b.name
}

func (b SystemBase) Priority() int {
	return b.priority
}

// SystemFunc adapts a function to the System interface
type SystemFunc struct {
	SystemBase
	Fn func(w *World, dt float64)
}

// NewSystemFunc wraps fn as a named system
func NewSystemFunc(name string, priority int, fn func(w *World, dt float64)) *SystemFunc {
	return &SystemFunc{SystemBase: NewSystemBase(name, priority), Fn: fn}
}

func (s *SystemFunc) Update(w *World, dt float64) {
	s.Fn(w, dt)
}
