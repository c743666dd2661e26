package event

import (
	"github.com/lixenwraith/chronodash/core"
)

// EntitySpawnedPayload describes a newly spawned entity
type EntitySpawnedPayload struct {
	Entity   core.Entity
	Class    core.Class
	Species  core.Species // ClassHazard
	Rarity   core.Rarity  // ClassCollectible
	Position float64
}

// HazardPassedPayload identifies the hazard that was cleared
type HazardPassedPayload struct {
	Entity   core.Entity
	Species  core.Species
	Position float64
}

// HazardHitPayload identifies the hazard that struck the player
type HazardHitPayload struct {
	Entity   core.Entity
	Species  core.Species
	Position float64
}

// CollectedPayload carries the reward of a picked up collectible
type CollectedPayload struct {
	Entity core.Entity
	Kind   core.Rarity
	Score  int
	Heals  bool
}

// HealRequestPayload asks for health restoration
type HealRequestPayload struct {
	Amount int
}

// DespawnCause records why an entity left the lane
type DespawnCause uint8

const (
	DespawnBoundary DespawnCause = iota
	DespawnPickup
)

// EntityDespawnedPayload describes a destroyed entity
type EntityDespawnedPayload struct {
	Entity   core.Entity
	Class    core.Class
	Cause    DespawnCause
	Position float64
	Flipped  bool
	RunID    string
}
