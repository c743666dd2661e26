package entity

import (
	"fmt"

	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/event"
)

// Collectible is a lane entity that rewards the player on pickup
// Score and heal are derived from kind and recomputed whenever kind changes
type Collectible struct {
	Mover

	kind  core.Rarity
	score int
	heals bool
	table config.ScoreConfig
}

// NewCollectible creates a collectible of the given rarity at x
func NewCollectible(id core.Entity, kind core.Rarity, x, baseSpeed float64, table config.ScoreConfig) (*Collectible, error) {
	m, err := newMover(id, core.ClassCollectible, x, baseSpeed)
	if err != nil {
		return nil, err
	}
	c := &Collectible{Mover: m, table: table}
	if err := c.SetKind(kind); err != nil {
		return nil, err
	}
	return c, nil
}

// SetKind changes the rarity and recomputes the reward
func (c *Collectible) SetKind(kind core.Rarity) error {
	if kind >= core.RarityCount {
		return fmt.Errorf("%w: unknown collectible kind %d", ErrInvalidEntity, kind)
	}
	c.kind = kind
	c.score = c.table.ScoreFor(kind)
	c.heals = kind == core.RarityRare
	return nil
}

func (c *Collectible) Kind() core.Rarity { return c.kind }

// ScoreValue returns the score awarded on pickup
func (c *Collectible) ScoreValue() int { return c.score }

// HealsOnCollect reports whether pickup restores health
func (c *Collectible) HealsOnCollect() bool { return c.heals }

// Update runs one tick: movement, pickup, then despawn
func (c *Collectible) Update(f *Frame) {
	if c.destroyed {
		return
	}
	c.begin(f)

	if f.overlaps(c.position, f.PickupRadius) && c.Pickup(f) {
		return
	}
	if c.pastBoundary(f) {
		c.destroy(event.DespawnBoundary)
	}
}

// Pickup rewards the player and destroys the collectible
// Destruction is marked before any event fires, so re-entrant or repeated calls are no-ops
func (c *Collectible) Pickup(f *Frame) bool {
	if !c.destroy(event.DespawnPickup) {
		return false
	}

	if c.heals && c.table.RareHeal > 0 {
		if f.Healer != nil {
			f.Healer.Heal(c.table.RareHeal)
		} else {
			f.emit(event.EventHealRequest, &event.HealRequestPayload{Amount: c.table.RareHeal})
		}
	}

	f.emit(event.EventCollected, &event.CollectedPayload{
		Entity: c.id,
		Kind:   c.kind,
		Score:  c.score,
		Heals:  c.heals,
	})
	return true
}
