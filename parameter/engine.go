package parameter

import "time"

// Game Loop & Engine Timing
const (
	// GameUpdateInterval is the simulation tick interval (~60 ticks per second)
	GameUpdateInterval = 16 * time.Millisecond

	// MaxTickDelta caps a single tick delta after a stall so entities do not tunnel past despawn boundaries
	MaxTickDelta = 100 * time.Millisecond
)

// Lane Limits
const (
	// LaneInitialCapacity is the pre-allocated entity slice capacity per class
	LaneInitialCapacity = 64
)
