package parameter

// Entity Speeds (world units per second)
const (
	// HazardBaseSpeed is the leftward travel speed of hazards before modifiers
	HazardBaseSpeed = 4.0

	// CollectibleBaseSpeed is the leftward travel speed of collectibles before modifiers
	CollectibleBaseSpeed = 4.0
)

// Time Dilation
const (
	// DilationSlowFactor is the speed factor applied to entities inside an active dilation field
	DilationSlowFactor = 0.5

	// DilationRadius is the default radius of the player-owned dilation field
	DilationRadius = 3.0
)

// Orientation
const (
	// OrientationToleranceDegrees is the distance from 180° within which the world counts as flipped
	OrientationToleranceDegrees = 1.0
)

// Lane Geometry
const (
	// LaneY is the vertical coordinate all lane entities travel on
	LaneY = 0.0

	// SpawnX is the spawn coordinate under normal orientation
	SpawnX = 20.0

	// BoundaryNormal despawns entities left of it under normal orientation
	BoundaryNormal = -10.0

	// BoundaryFlipped despawns entities left of it under flipped orientation (further than normal)
	BoundaryFlipped = -20.0

	// HitRadius is the axis-aligned half extent used for hazard-player overlap
	HitRadius = 0.5

	// PickupRadius is the axis-aligned half extent used for collectible-player overlap
	PickupRadius = 0.75
)
