// Package entity implements the moving lane entities: the shared Mover with its speed
// composition, the Hazard pass/hit state machine and the Collectible reward logic.
package entity

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/event"
	"github.com/lixenwraith/chronodash/parameter"
	"github.com/lixenwraith/chronodash/world"
)

// DefaultSlowFactor is the slowdown factor used when a field does not supply one
const DefaultSlowFactor = parameter.DilationSlowFactor

// ErrInvalidEntity is returned when an entity is constructed from malformed values
var ErrInvalidEntity = errors.New("invalid entity")

// Healer restores player health
type Healer interface {
	Heal(amount int)
}

// Bounds are the orientation-dependent despawn boundaries; Flipped lies left of Normal
type Bounds struct {
	Normal  float64
	Flipped float64
}

// For returns the active boundary for the orientation
func (b Bounds) For(flipped bool) float64 {
	if flipped {
		return b.Flipped
	}
	return b.Normal
}

// Frame is the environment snapshot every entity reads during one tick
// Captured once by the lane before any entity updates, never mutated mid-tick
type Frame struct {
	Number int64
	DT     time.Duration

	Player     world.Point
	LaneY      float64
	Flipped    bool
	Multiplier float64 // global speed multiplier, 1 = neutral

	Field world.FieldProvider // nil = no field

	HitRadius    float64
	PickupRadius float64
	Bounds       Bounds

	Healer Healer        // nil = heal requested through Events
	Events event.Emitter // nil = events dropped
}

// NewFrame returns a frame with neutral environment for the given step
func NewFrame(number int64, dt time.Duration) Frame {
	return Frame{Number: number, DT: dt, Multiplier: 1}
}

func (f *Frame) emit(et event.EventType, payload any) {
	if f.Events == nil {
		return
	}
	f.Events.Emit(event.GameEvent{Type: et, Payload: payload, Frame: f.Number})
}

// overlaps reports axis-aligned overlap of a lane coordinate with the player
func (f *Frame) overlaps(x, radius float64) bool {
	return math.Abs(x-f.Player.X) <= radius && math.Abs(f.LaneY-f.Player.Y) <= radius
}

// Mover owns position and the speed composition shared by all lane entities
// Entities always travel toward negative X
type Mover struct {
	id    core.Entity
	class core.Class

	position float64
	previous float64

	baseSpeed  float64
	multiplier float64
	slowed     bool
	slowFactor float64

	// speed is derived; recompute is the only writer
	speed      float64
	recomputes int

	destroyed bool
	cause     event.DespawnCause
}

func newMover(id core.Entity, class core.Class, x, baseSpeed float64) (Mover, error) {
	if !(baseSpeed > 0) || math.IsInf(baseSpeed, 0) {
		return Mover{}, fmt.Errorf("%w: %s base speed must be positive, got %v", ErrInvalidEntity, class, baseSpeed)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Mover{}, fmt.Errorf("%w: %s position must be finite, got %v", ErrInvalidEntity, class, x)
	}
	m := Mover{
		id:         id,
		class:      class,
		position:   x,
		previous:   x,
		baseSpeed:  baseSpeed,
		multiplier: 1,
		slowFactor: DefaultSlowFactor,
	}
	m.recompute()
	return m, nil
}

func (m *Mover) ID() core.Entity { return m.id }
func (m *Mover) Class() core.Class { return m.class }
func (m *Mover) Position() float64 { return m.position }
func (m *Mover) Previous() float64 { return m.previous }
func (m *Mover) BaseSpeed() float64 { return m.baseSpeed }
func (m *Mover) Multiplier() float64 { return m.multiplier }
func (m *Mover) Speed() float64 { return m.speed }
func (m *Mover) Destroyed() bool { return m.destroyed }
func (m *Mover) Cause() event.DespawnCause { return m.cause }

// Slowdown returns whether dilation slowdown is applied and its factor
func (m *Mover) Slowdown() (bool, float64) {
	return m.slowed, m.slowFactor
}

// SetSpeedMultiplier applies a global multiplier; NaN/Inf count as absent, negatives clamp to 0
func (m *Mover) SetSpeedMultiplier(mult float64) {
	mult = world.SanitizeMultiplier(mult)
	if mult == m.multiplier {
		return
	}
	m.multiplier = mult
	m.recompute()
}

// SetSlowdown enables or disables dilation slowdown; factor is clamped to [0,1]
func (m *Mover) SetSlowdown(active bool, factor float64) {
	if math.IsNaN(factor) || factor > 1 {
		factor = 1
	} else if factor < 0 {
		factor = 0
	}
	m.slowed = active
	m.slowFactor = factor
	m.recompute()
}

// Tick records the previous position and moves by one step
func (m *Mover) Tick(dt time.Duration) {
	if m.destroyed {
		return
	}
	m.previous = m.position
	m.advance(dt)
}

func (m *Mover) advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	m.position -= m.speed * dt.Seconds()
}

func (m *Mover) recompute() {
	factor := 1.0
	if m.slowed {
		factor = m.slowFactor
	}
	speed := m.baseSpeed * factor * m.multiplier
	if !(speed > 0) {
		speed = 0
	}
	m.speed = speed
	m.recomputes++
}

// resolveDilation corrects slowdown state only when the desired state differs from the current one
func (m *Mover) resolveDilation(f *Frame) {
	want := false
	factor := m.slowFactor
	if f.Field != nil && f.Field.IsActive() {
		p := world.Point{X: m.position, Y: f.LaneY}
		if f.Field.Contains(p) {
			want = true
			factor = f.Field.SlowFactorAt(p)
		}
	}

	if want == m.slowed && (!want || factor == m.slowFactor) {
		return
	}
	m.SetSlowdown(want, factor)
}

func (m *Mover) pastBoundary(f *Frame) bool {
	return m.position < f.Bounds.For(f.Flipped)
}

func (m *Mover) destroy(cause event.DespawnCause) bool {
	if m.destroyed {
		return false
	}
	m.destroyed = true
	m.cause = cause
	return true
}

// begin runs the shared first half of an update: previous position, dilation, speed, movement
func (m *Mover) begin(f *Frame) {
	m.previous = m.position
	m.resolveDilation(f)
	m.SetSpeedMultiplier(f.Multiplier)
	m.advance(f.DT)
}
