package world

import (
	"math"
	"time"
)

// Boost is a duration-based global speed multiplier
// Duration tracking keeps it deterministic under fixed tick deltas
type Boost struct {
	active     bool
	multiplier float64
	remaining  time.Duration
	total      time.Duration
}

// NewBoost creates an inactive boost
func NewBoost() *Boost {
	return &Boost{multiplier: 1}
}

// Activate starts the boost, overwriting any running one
// Invalid multipliers (nonpositive, NaN, Inf) and nonpositive durations are ignored
func (b *Boost) Activate(multiplier float64, d time.Duration) {
	if d <= 0 || multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return
	}
	b.active = true
	b.multiplier = multiplier
	b.remaining = d
	b.total = d
}

// Extend adds to a running boost; inactive boosts are not restarted
func (b *Boost) Extend(d time.Duration) {
	if !b.active || d <= 0 {
		return
	}
	b.remaining += d
	if b.remaining > b.total {
		b.total = b.remaining
	}
}

// Deactivate ends the boost immediately
func (b *Boost) Deactivate() {
	b.active = false
	b.remaining = 0
	b.multiplier = 1
}

// Advance decrements the remaining duration and expires the boost
func (b *Boost) Advance(dt time.Duration) {
	if !b.active {
		return
	}
	b.remaining -= dt
	if b.remaining <= 0 {
		b.Deactivate()
	}
}

// Active reports whether the boost is running
func (b *Boost) Active() bool {
	return b != nil && b.active
}

// Progress returns remaining/total in [0,1] for HUD display
func (b *Boost) Progress() float64 {
	if !b.Active() || b.total <= 0 {
		return 0
	}
	return float64(b.remaining) / float64(b.total)
}

// CurrentMultiplier returns the boost multiplier while active, 1 otherwise
func (b *Boost) CurrentMultiplier() float64 {
	if !b.Active() {
		return 1
	}
	return b.multiplier
}
