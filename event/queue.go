package event

import (
	"sync"

	"github.com/lixenwraith/tanks/parameter"
)

// EventQueue is a bounded FIFO of game events, installed as a world resource
// Systems push during the tick and the driving loop drains between ticks; both
// sides may run on different goroutines. A full queue drops its oldest event
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	start   int
	count   int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, evicting the oldest when full
func (eq *EventQueue) Push(ev GameEvent) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.count == parameter.EventQueueSize {
		eq.ring[eq.start] = GameEvent{}
		eq.start = (eq.start + 1) & parameter.EventBufferMask
		eq.count--
		eq.dropped++
	}
	eq.ring[(eq.start+eq.count)&parameter.EventBufferMask] = ev
	eq.count++
}

// Emit is Push with the type and payload spelled out
func (eq *EventQueue) Emit(t EventType, payload any) {
	eq.Push(GameEvent{Type: t, Payload: payload})
}

// Consume removes and returns every pending event in FIFO order, nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.count == 0 {
		return nil
	}
	out := make([]GameEvent, eq.count)
	for i := range out {
		idx := (eq.start + i) & parameter.EventBufferMask
		out[i] = eq.ring[idx]
		eq.ring[idx] = GameEvent{}
	}
	eq.start = (eq.start + eq.count) & parameter.EventBufferMask
	eq.count = 0
	return out
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.count
}

// Dropped returns how many events were evicted unread
func (eq *EventQueue) Dropped() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.dropped
}
