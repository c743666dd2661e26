// Package score is the scoring and health sink for lane events.
package score

import (
	"sync/atomic"

	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/event"
	"github.com/lixenwraith/chronodash/status"
)

// Tracker accumulates score and player health from lane events
// Implements event.Handler and entity.Healer
type Tracker struct {
	passReward int
	hitDamage  int
	maxHealth  int

	score  int64
	health int
	streak int

	// Cached metric pointers
	statScore  *atomic.Int64
	statHealth *atomic.Int64
	statStreak *atomic.Int64
	statDead   *atomic.Bool
}

// NewTracker creates a tracker at full health
func NewTracker(cfg config.Config, reg *status.Registry) *Tracker {
	if reg == nil {
		reg = status.NewRegistry()
	}
	t := &Tracker{
		passReward: cfg.Score.PassReward,
		hitDamage:  cfg.Player.HitDamage,
		maxHealth:  cfg.Player.MaxHealth,
		health:     cfg.Player.MaxHealth,

		statScore:  reg.Counters.Get("score.total"),
		statHealth: reg.Counters.Get("score.health"),
		statStreak: reg.Counters.Get("score.streak"),
		statDead:   reg.Flags.Get("score.dead"),
	}
	t.publish()
	return t
}

func (t *Tracker) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventHazardPassed,
		event.EventHazardHit,
		event.EventCollected,
		event.EventHealRequest,
	}
}

func (t *Tracker) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventHazardPassed:
		t.score += int64(t.passReward)
		t.streak++
	case event.EventHazardHit:
		t.damage(t.hitDamage)
		t.streak = 0
	case event.EventCollected:
		if payload, ok := ev.Payload.(*event.CollectedPayload); ok {
			t.score += int64(payload.Score)
		}
	case event.EventHealRequest:
		if payload, ok := ev.Payload.(*event.HealRequestPayload); ok {
			t.Heal(payload.Amount)
		}
	}
	t.publish()
}

// Heal restores health up to the maximum; dead players stay dead
func (t *Tracker) Heal(amount int) {
	if amount <= 0 || t.Dead() {
		return
	}
	t.health = min(t.health+amount, t.maxHealth)
	t.publish()
}

func (t *Tracker) damage(amount int) {
	if amount <= 0 {
		return
	}
	t.health = max(t.health-amount, 0)
}

// Reset restores full health and clears score
func (t *Tracker) Reset() {
	t.score = 0
	t.streak = 0
	t.health = t.maxHealth
	t.publish()
}

func (t *Tracker) Score() int64 { return t.score }
func (t *Tracker) Health() int { return t.health }

// Streak counts consecutive passes since the last hit
func (t *Tracker) Streak() int { return t.streak }

// Dead reports whether health is exhausted
func (t *Tracker) Dead() bool { return t.health <= 0 }

func (t *Tracker) publish() {
	t.statScore.Store(t.score)
	t.statHealth.Store(int64(t.health))
	t.statStreak.Store(int64(t.streak))
	t.statDead.Store(t.Dead())
}
