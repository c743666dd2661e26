package world

import (
	"math"
	"time"
)

// DilationField is a circular zone that slows entities inside it while active
// Owned by the player; Center follows the player through MoveTo
type DilationField struct {
	Center Point
	Radius float64
	Factor float64

	active bool

	// Set by ActivateFor; Advance only counts down timed activations
	timed     bool
	remaining time.Duration
}

// NewDilationField creates an inactive field; factor is clamped to [0,1]
func NewDilationField(center Point, radius, factor float64) *DilationField {
	return &DilationField{
		Center: center,
		Radius: math.Abs(radius),
		Factor: clampFactor(factor),
	}
}

// Activate enables the field until Deactivate
func (f *DilationField) Activate() {
	f.active = true
	f.timed = false
	f.remaining = 0
}

// ActivateFor enables the field for the given duration, overwriting any running timer
func (f *DilationField) ActivateFor(d time.Duration) {
	if d <= 0 {
		return
	}
	f.active = true
	f.timed = true
	f.remaining = d
}

// Deactivate disables the field
func (f *DilationField) Deactivate() {
	f.active = false
	f.timed = false
	f.remaining = 0
}

// Toggle deactivates an active field, otherwise activates it for d
// A nonpositive d activates it until the next Deactivate
func (f *DilationField) Toggle(d time.Duration) {
	switch {
	case f.active:
		f.Deactivate()
	case d > 0:
		f.ActivateFor(d)
	default:
		f.Activate()
	}
}

// Advance counts down a timed activation
func (f *DilationField) Advance(dt time.Duration) {
	if !f.active || !f.timed {
		return
	}
	f.remaining -= dt
	if f.remaining <= 0 {
		f.Deactivate()
	}
}

// Remaining returns time left on a timed activation
func (f *DilationField) Remaining() time.Duration {
	return f.remaining
}

// MoveTo recenters the field
func (f *DilationField) MoveTo(center Point) {
	f.Center = center
}

// IsActive reports whether the field currently slows entities
func (f *DilationField) IsActive() bool {
	return f != nil && f.active
}

// Contains reports whether p lies within the field radius, regardless of activation
func (f *DilationField) Contains(p Point) bool {
	if f == nil {
		return false
	}
	return f.Center.Dist(p) <= f.Radius
}

// SlowFactorAt returns the speed factor for p: Factor inside an active field, 1 elsewhere
func (f *DilationField) SlowFactorAt(p Point) float64 {
	if !f.IsActive() || !f.Contains(p) {
		return 1
	}
	return f.Factor
}

func clampFactor(v float64) float64 {
	if math.IsNaN(v) || v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
