package parameter

import "time"

// Player Health & Scoring
const (
	// PlayerMaxHealth caps health restored by heals
	PlayerMaxHealth = 3

	// HitDamage is the health lost per hazard hit
	HitDamage = 1

	// PassScore is the score awarded for each hazard cleared without a hit
	PassScore = 1
)

// Player Movement
const (
	// PlayerX is the fixed horizontal player coordinate
	PlayerX = 0.0

	// JumpHeight is the vertical offset while airborne, enough to clear HitRadius
	JumpHeight = 1.5

	// JumpDuration is how long a jump keeps the player airborne
	JumpDuration = 600 * time.Millisecond
)

// Abilities
const (
	// DilationDuration is how long a triggered dilation field stays active
	DilationDuration = 3 * time.Second

	// BoostMultiplier is the global speed multiplier applied while boost is active
	BoostMultiplier = 1.75

	// BoostDuration is the initial duration when boost is activated
	BoostDuration = 2 * time.Second
)
