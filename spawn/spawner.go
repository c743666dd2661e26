// Package spawn feeds a lane with hazards and collectibles at a fixed cadence.
package spawn

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/lane"
)

// Spawner emits one entity at the lane's spawn point every interval
// Seeded so a run is reproducible for a given seed and tick sequence
type Spawner struct {
	lane *lane.Lane
	rng  *rand.Rand

	interval time.Duration
	elapsed  time.Duration

	collectibleChance float64
	weights           [core.RarityCount]int
	totalWeight       int
}

// New creates a spawner for l
func New(l *lane.Lane, cfg config.SpawnConfig, seed uint64) *Spawner {
	s := &Spawner{
		lane:              l,
		rng:               rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		interval:          cfg.Interval,
		collectibleChance: cfg.CollectibleChance,
	}
	s.weights[core.RarityCommon] = cfg.WeightCommon
	s.weights[core.RarityUncommon] = cfg.WeightUncommon
	s.weights[core.RarityRare] = cfg.WeightRare
	for _, w := range s.weights {
		s.totalWeight += w
	}
	return s
}

// Advance accumulates time and spawns once per elapsed interval
// Returns the number of entities spawned
func (s *Spawner) Advance(dt time.Duration) (int, error) {
	if s.interval <= 0 {
		return 0, nil
	}
	s.elapsed += dt

	n := 0
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval
		if err := s.spawnOne(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Spawner) spawnOne() error {
	x := s.lane.SpawnPoint()
	if s.totalWeight > 0 && s.rng.Float64() < s.collectibleChance {
		_, err := s.lane.SpawnCollectible(s.pickRarity(), x)
		return err
	}
	_, err := s.lane.SpawnHazard(core.Species(s.rng.IntN(int(core.SpeciesCount))), x)
	return err
}

func (s *Spawner) pickRarity() core.Rarity {
	roll := s.rng.IntN(s.totalWeight)
	for r, w := range s.weights {
		if roll < w {
			return core.Rarity(r)
		}
		roll -= w
	}
	return core.RarityCommon
}
