package entity

import (
	"fmt"

	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/event"
)

// HazardState is the scoring state of a hazard
type HazardState uint8

const (
	HazardActive HazardState = iota
	HazardPassed
	HazardHit
	HazardDestroyed
)

func (s HazardState) String() string {
	switch s {
	case HazardActive:
		return "active"
	case HazardPassed:
		return "passed"
	case HazardHit:
		return "hit"
	case HazardDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Hazard is a lane entity the player must clear
// passed and hit only ever go false→true; a hit hazard never reports a pass
type Hazard struct {
	Mover
	Species core.Species

	passed bool
	hit    bool
}

// NewHazard creates an active hazard at x
func NewHazard(id core.Entity, species core.Species, x, baseSpeed float64) (*Hazard, error) {
	if species >= core.SpeciesCount {
		return nil, fmt.Errorf("%w: unknown hazard species %d", ErrInvalidEntity, species)
	}
	m, err := newMover(id, core.ClassHazard, x, baseSpeed)
	if err != nil {
		return nil, err
	}
	return &Hazard{Mover: m, Species: species}, nil
}

// State returns the current state; Destroyed dominates, then Hit, then Passed
func (h *Hazard) State() HazardState {
	switch {
	case h.destroyed:
		return HazardDestroyed
	case h.hit:
		return HazardHit
	case h.passed:
		return HazardPassed
	}
	return HazardActive
}

// HasPassed reports whether a pass event was emitted
func (h *Hazard) HasPassed() bool { return h.passed }

// PlayerHit reports whether the hazard struck the player
func (h *Hazard) PlayerHit() bool { return h.hit }

// Update runs one tick: movement, hit, pass, then despawn
func (h *Hazard) Update(f *Frame) {
	if h.destroyed {
		return
	}
	h.begin(f)

	if f.overlaps(h.position, f.HitRadius) {
		h.Overlap(f)
	}
	h.checkPass(f)

	if h.pastBoundary(f) {
		h.destroy(event.DespawnBoundary)
	}
}

// Overlap marks the hazard as having hit the player and emits the hit event once
// Exposed for collaborators that detect overlap themselves; returns false if ignored
func (h *Hazard) Overlap(f *Frame) bool {
	if h.destroyed || h.hit {
		return false
	}
	h.hit = true
	f.emit(event.EventHazardHit, &event.HazardHitPayload{
		Entity:   h.id,
		Species:  h.Species,
		Position: h.position,
	})
	return true
}

// checkPass fires on a leftward crossing of the player's current X
func (h *Hazard) checkPass(f *Frame) {
	if h.passed || h.hit {
		return
	}
	if !(h.previous > f.Player.X && h.position <= f.Player.X) {
		return
	}
	h.passed = true
	f.emit(event.EventHazardPassed, &event.HazardPassedPayload{
		Entity:   h.id,
		Species:  h.Species,
		Position: h.position,
	})
}
