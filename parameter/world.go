package parameter

import "time"

// World defaults
const (
	DefaultWorldWidth    = 1000
	DefaultWorldHeight   = 500
	DefaultTerrainPoints = 10
	DefaultPlayerCount   = 4
	DefaultHumanPlayers  = 1

	// MaxWorldWidth keeps heightmap indices in 16-bit range
	MaxWorldWidth = 65535
	MinWorldWidth = 3
)

// Terrain generation bands, fractions of world height
const (
	TerrainControlMin = 0.3
	TerrainControlMax = 0.7
	TerrainClampMin   = 0.2
	TerrainClampMax   = 0.8
)

// Game loop
const (
	// DefaultTickRate is the simulation frequency in Hz
	DefaultTickRate = 60

	// DefaultMaxDelta caps a single tick's dt in seconds after a stall
	DefaultMaxDelta = 0.1

	// DefaultRenderBuffers is the size of the frame pool shared with the renderer
	DefaultRenderBuffers = 2

	// InputHoldWindow releases a held key when the terminal stops repeating it
	InputHoldWindow = 150 * time.Millisecond
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
