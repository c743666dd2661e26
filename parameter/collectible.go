package parameter

import "time"

// Collectible Score Table
const (
	ScoreCommon   = 10
	ScoreUncommon = 20
	ScoreRare     = 50

	// RareHealAmount is the health restored by collecting a rare collectible
	RareHealAmount = 1
)

// Spawner
const (
	// SpawnInterval is the time between demo spawner emissions
	SpawnInterval = 900 * time.Millisecond

	// SpawnCollectibleChance is the probability a spawn produces a collectible instead of a hazard
	SpawnCollectibleChance = 0.35

	// Rarity weights, relative
	SpawnWeightCommon   = 70
	SpawnWeightUncommon = 25
	SpawnWeightRare     = 5
)
