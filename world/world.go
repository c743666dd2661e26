// Package world holds the environmental state shared read-only by lane entities:
// orientation, the player-owned time-dilation field and global speed boosts.
// Owners mutate these between ticks; the lane only queries them.
package world

import "math"

// Point is a world coordinate; lane entities only move along X
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// OrientationProvider reports whether world orientation is flipped
type OrientationProvider interface {
	IsFlipped() bool
}

// FieldProvider is the spatial query surface of a time-dilation field
type FieldProvider interface {
	IsActive() bool
	Contains(p Point) bool
	SlowFactorAt(p Point) float64
}

// SpeedSource supplies a transient global speed multiplier
type SpeedSource interface {
	CurrentMultiplier() float64
}

// Neutral is the no-effect environment substituted for absent providers
type Neutral struct{}

func (Neutral) IsFlipped() bool { return false }
func (Neutral) IsActive() bool { return false }
func (Neutral) Contains(Point) bool { return false }
func (Neutral) SlowFactorAt(Point) float64 { return 1 }
func (Neutral) CurrentMultiplier() float64 { return 1 }

var (
	_ OrientationProvider = Neutral{}
	_ FieldProvider       = Neutral{}
	_ SpeedSource         = Neutral{}
)

// SanitizeMultiplier maps NaN, Inf and negative multipliers to a usable value
// NaN and Inf are treated as absent (1), negatives clamp to 0 so speed is never negative
func SanitizeMultiplier(m float64) float64 {
	switch {
	case math.IsNaN(m), math.IsInf(m, 0):
		return 1
	case m < 0:
		return 0
	}
	return m
}
