package event

// EventType represents the type of lane event
type EventType int

const (
	// EventNone is the zero value and never emitted
	EventNone EventType = iota

	// EventEntitySpawned signals a new lane entity
	// Trigger: Lane.SpawnHazard, Lane.SpawnCollectible
	// Consumer: renderers, logging | Payload: *EntitySpawnedPayload
	EventEntitySpawned

	// EventHazardPassed signals a hazard crossed the player leftward without hitting
	// Fired at most once per hazard, never after EventHazardHit for the same hazard
	// Trigger: Hazard update | Consumer: score.Tracker, audio | Payload: *HazardPassedPayload
	EventHazardPassed

	// EventHazardHit signals the first overlap of a hazard with the player
	// Trigger: Hazard update, Hazard.Overlap | Consumer: score.Tracker, audio | Payload: *HazardHitPayload
	EventHazardHit

	// EventCollected signals a collectible was picked up
	// Fired exactly once per collectible
	// Trigger: Collectible.Pickup | Consumer: score.Tracker, audio | Payload: *CollectedPayload
	EventCollected

	// EventHealRequest asks the health system to restore health
	// Trigger: Rare collectible pickup without a direct Healer | Consumer: score.Tracker | Payload: *HealRequestPayload
	EventHealRequest

	// EventEntityDespawned signals an entity left the lane past the despawn boundary
	// Trigger: Lane tick | Consumer: renderers, logging | Payload: *EntityDespawnedPayload
	EventEntityDespawned

	// Sentinel for array sizing
	EventTypeCount
)

// GameEvent represents a single lane event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
