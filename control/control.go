// Package control holds per-player command queues fed by input translators and AI
package control

import (
	"sort"
	"sync"
)

// Command is a discrete control message for one player's tank
type Command int

const (
	Fire Command = iota
	AngleIncrease
	AngleDecrease
	AngleStop
	PowerIncrease
	PowerDecrease
	PowerStop
)

var commandNames = [...]string{
	Fire:          "fire",
	AngleIncrease: "angle_increase",
	AngleDecrease: "angle_decrease",
	AngleStop:     "angle_stop",
	PowerIncrease: "power_increase",
	PowerDecrease: "power_decrease",
	PowerStop:     "power_stop",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Controls is one player's command queue
// Safe for a producer goroutine (input) and the simulation consumer
// Fire and adjustment commands are queued separately so the firing system and
// the tank control system can each drain their own half
type Controls struct {
	mu          sync.Mutex
	player      int
	fires       int
	adjustments []Command
}

// NewControls creates an empty queue for a player
func NewControls(player int) *Controls {
	return &Controls{player: player}
}

// Player returns the player number the queue belongs to
func (c *Controls) Player() int {
	return c.player
}

// Send enqueues any command
func (c *Controls) Send(cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cmd == Fire {
		c.fires++
		return
	}
	c.adjustments = append(c.adjustments, cmd)
}

func (c *Controls) Fire()          { c.Send(Fire) }
func (c *Controls) AngleIncrease() { c.Send(AngleIncrease) }
func (c *Controls) AngleDecrease() { c.Send(AngleDecrease) }
func (c *Controls) AngleStop()     { c.Send(AngleStop) }
func (c *Controls) PowerIncrease() { c.Send(PowerIncrease) }
func (c *Controls) PowerDecrease() { c.Send(PowerDecrease) }
func (c *Controls) PowerStop()     { c.Send(PowerStop) }

// TakeFire drains queued fire signals and returns how many there were
func (c *Controls) TakeFire() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.fires
	c.fires = 0
	return n
}

// DrainAdjustments returns queued aim and power commands in arrival order
func (c *Controls) DrainAdjustments() []Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.adjustments) == 0 {
		return nil
	}
	out := c.adjustments
	c.adjustments = nil
	return out
}

// Pending reports queued command count, fires included
func (c *Controls) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fires + len(c.adjustments)
}

// Held is the currently held adjustment direction: -1, 0 or +1
type Held struct {
	Angle int
	Power int
}

// Apply folds one adjustment command into the held state
func (h *Held) Apply(cmd Command) {
	switch cmd {
	case AngleIncrease:
		h.Angle = 1
	case AngleDecrease:
		h.Angle = -1
	case AngleStop:
		h.Angle = 0
	case PowerIncrease:
		h.Power = 1
	case PowerDecrease:
		h.Power = -1
	case PowerStop:
		h.Power = 0
	}
}

// Board indexes every player's Controls, installed as a world resource
type Board struct {
	mu       sync.RWMutex
	controls map[int]*Controls
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{controls: make(map[int]*Controls)}
}

// Register returns the queue for a player, creating it on first use
func (b *Board) Register(player int) *Controls {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.controls[player]; ok {
		return c
	}
	c := NewControls(player)
	b.controls[player] = c
	return c
}

// Get returns a player's queue
func (b *Board) Get(player int) (*Controls, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.controls[player]
	return c, ok
}

// All returns every queue ordered by player number
func (b *Board) All() []*Controls {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Controls, 0, len(b.controls))
	for _, c := range b.controls {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].player < out[j].player })
	return out
}
