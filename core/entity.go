package core

// Entity identifies a lane entity for its whole lifetime; IDs are never reused
type Entity uint64

// Class identifies what a collision partner is
type Class uint8

const (
	ClassPlayer Class = iota
	ClassHazard
	ClassCollectible
)

func (c Class) String() string {
	switch c {
	case ClassPlayer:
		return "player"
	case ClassHazard:
		return "hazard"
	case ClassCollectible:
		return "collectible"
	}
	return "unknown"
}

// Species is the cosmetic variant of a hazard; it drives presentation only
type Species uint8

const (
	SpeciesSpike Species = iota
	SpeciesSaw
	SpeciesDrone
	SpeciesCrate
	// Future species here
	SpeciesCount // Sentinel for array sizing
)

var speciesNames = [SpeciesCount]string{
	SpeciesSpike: "spike",
	SpeciesSaw:   "saw",
	SpeciesDrone: "drone",
	SpeciesCrate: "crate",
}

func (s Species) String() string {
	if s >= SpeciesCount {
		return "unknown"
	}
	return speciesNames[s]
}

// Rarity classifies a collectible; it determines score and heal reward
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityCount // Sentinel for array sizing
)

var rarityNames = [RarityCount]string{
	RarityCommon:   "common",
	RarityUncommon: "uncommon",
	RarityRare:     "rare",
}

func (r Rarity) String() string {
	if r >= RarityCount {
		return "unknown"
	}
	return rarityNames[r]
}
