package world

import "math"

// Orientation tracks the world's vertical orientation as a continuous angle in degrees
// The world counts as flipped while the angle is within tolerance of 180°
type Orientation struct {
	angle     float64
	tolerance float64
}

// NewOrientation creates an upright orientation with the given flip tolerance in degrees
func NewOrientation(toleranceDeg float64) *Orientation {
	return &Orientation{tolerance: math.Abs(toleranceDeg)}
}

// SetAngle sets the orientation angle, normalized to [0,360)
func (o *Orientation) SetAngle(deg float64) {
	o.angle = normalizeDegrees(deg)
}

// Angle returns the normalized orientation angle
func (o *Orientation) Angle() float64 {
	return o.angle
}

// Flip rotates the world by 180°
func (o *Orientation) Flip() {
	o.SetAngle(o.angle + 180)
}

// IsFlipped reports whether the angle is within tolerance of 180°
func (o *Orientation) IsFlipped() bool {
	if o == nil {
		return false
	}
	return math.Abs(o.angle-180) <= o.tolerance
}

func normalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
