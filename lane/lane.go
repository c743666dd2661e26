// Package lane is the simulation root: it owns the lane's entities, reads the environment
// once per tick and drives every entity update in a fixed order.
package lane

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/entity"
	"github.com/lixenwraith/chronodash/event"
	"github.com/lixenwraith/chronodash/parameter"
	"github.com/lixenwraith/chronodash/status"
	"github.com/lixenwraith/chronodash/world"
)

// ErrUnknownEntity is returned for IDs that are not live in the lane
var ErrUnknownEntity = errors.New("unknown entity")

// Options carries the lane's collaborators; every field is optional
// Absent providers fall back to the neutral environment
type Options struct {
	Player      PlayerPositionProvider    // nil = fixed at config player X on the lane
	Orientation world.OrientationProvider // nil = never flipped
	Field       world.FieldProvider       // nil = the player's own field if it has one, else none
	Speed       world.SpeedSource         // nil = multiplier 1
	Healer      entity.Healer             // nil = heal via EventHealRequest
	Events      event.Emitter             // nil = events dropped
	Status      *status.Registry          // nil = private registry
	Logger      *slog.Logger              // nil = discard
}

// Lane simulates one lane of hazards and collectibles
// Not safe for concurrent use; the status registry is the only concurrently readable state
// Event handlers may spawn or Clear from inside Tick; both take effect after compaction
type Lane struct {
	cfg   config.Config
	runID uuid.UUID
	log   *slog.Logger

	player      PlayerPositionProvider
	orientation world.OrientationProvider
	field       world.FieldProvider
	speed       world.SpeedSource
	healer      entity.Healer
	events      event.Emitter

	nextID core.Entity
	frame  int64

	hazards      []*entity.Hazard
	collectibles []*entity.Collectible

	// Handlers run inside Tick; their spawns and Clear calls land here and apply once the tick ends
	ticking             bool
	clearPending        bool
	pendingHazards      []*entity.Hazard
	pendingCollectibles []*entity.Collectible

	status *status.Registry
	stats  laneStats
}

type laneStats struct {
	frame       *atomic.Int64
	entities    *atomic.Int64
	passed      *atomic.Int64
	hits        *atomic.Int64
	collected   *atomic.Int64
	despawned   *atomic.Int64
	multiplier  *status.Gauge
	flipped     *atomic.Bool
	fieldActive *atomic.Bool
	lastEvent   *status.Label
}

// New validates cfg and creates an empty lane
func New(cfg config.Config, opts Options) (*Lane, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lane: %w", err)
	}

	l := &Lane{
		cfg:          cfg,
		runID:        uuid.New(),
		log:          opts.Logger,
		player:       opts.Player,
		orientation:  opts.Orientation,
		field:        opts.Field,
		speed:        opts.Speed,
		healer:       opts.Healer,
		status:       opts.Status,
		hazards:      make([]*entity.Hazard, 0, parameter.LaneInitialCapacity),
		collectibles: make([]*entity.Collectible, 0, parameter.LaneInitialCapacity),
	}

	if l.log == nil {
		l.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l.log = l.log.With("run", l.runID.String())

	if l.player == nil {
		l.player = fixedPlayer{world.Point{X: cfg.Player.X, Y: cfg.Lane.Y}}
	}
	if l.orientation == nil {
		l.orientation = world.Neutral{}
	}
	if l.field == nil {
		if owner, ok := l.player.(FieldOwner); ok && owner.Field() != nil {
			l.field = owner.Field()
		}
	}
	if l.speed == nil {
		l.speed = world.Neutral{}
	}
	if l.status == nil {
		l.status = status.NewRegistry()
	}

	l.stats = laneStats{
		frame:       l.status.Counters.Get("lane.frame"),
		entities:    l.status.Counters.Get("lane.entities"),
		passed:      l.status.Counters.Get("lane.passed"),
		hits:        l.status.Counters.Get("lane.hits"),
		collected:   l.status.Counters.Get("lane.collected"),
		despawned:   l.status.Counters.Get("lane.despawned"),
		multiplier:  l.status.Gauges.Get("lane.multiplier"),
		flipped:     l.status.Flags.Get("lane.flipped"),
		fieldActive: l.status.Flags.Get("lane.field_active"),
		lastEvent:   l.status.Labels.Get("lane.last_event"),
	}
	l.stats.multiplier.Set(1)

	l.events = &observedEmitter{lane: l, next: opts.Events}

	l.log.Info("lane created",
		"hazard_speed", cfg.Hazard.BaseSpeed,
		"collectible_speed", cfg.Collectible.BaseSpeed,
		"boundary_normal", cfg.Lane.BoundaryNormal,
		"boundary_flipped", cfg.Lane.BoundaryFlipped,
	)
	return l, nil
}

// RunID identifies this lane instance in logs and despawn payloads
func (l *Lane) RunID() string { return l.runID.String() }

// Config returns the lane's configuration
func (l *Lane) Config() config.Config { return l.cfg }

// Status returns the metrics registry the lane publishes to
func (l *Lane) Status() *status.Registry { return l.status }

// Frame returns the number of completed ticks
func (l *Lane) Frame() int64 { return l.frame }

// Len returns the number of live entities
func (l *Lane) Len() int {
	n := len(l.pendingHazards) + len(l.pendingCollectibles)
	if !l.clearPending {
		n += len(l.hazards) + len(l.collectibles)
	}
	return n
}

// Hazards returns a snapshot of live hazards
func (l *Lane) Hazards() []*entity.Hazard { return l.liveHazards() }

// Collectibles returns a snapshot of live collectibles
func (l *Lane) Collectibles() []*entity.Collectible { return l.liveCollectibles() }

// Player returns the position the lane measures crossings against
func (l *Lane) Player() world.Point { return l.player.PlayerPosition() }

// Flipped reports the current orientation
func (l *Lane) Flipped() bool { return l.orientation.IsFlipped() }

// Field returns the dilation field the lane queries, nil if none
func (l *Lane) Field() world.FieldProvider { return l.field }

// Bounds returns the despawn boundaries
func (l *Lane) Bounds() entity.Bounds {
	return entity.Bounds{Normal: l.cfg.Lane.BoundaryNormal, Flipped: l.cfg.Lane.BoundaryFlipped}
}

// SpawnPoint returns the spawn X for the current orientation
// Flipped spawns shift left by the same distance the despawn boundary does
func (l *Lane) SpawnPoint() float64 {
	if l.orientation.IsFlipped() {
		return l.cfg.Lane.SpawnX - (l.cfg.Lane.BoundaryNormal - l.cfg.Lane.BoundaryFlipped)
	}
	return l.cfg.Lane.SpawnX
}

// SpawnHazard adds a hazard at x
func (l *Lane) SpawnHazard(species core.Species, x float64) (*entity.Hazard, error) {
	h, err := entity.NewHazard(l.nextID+1, species, x, l.cfg.BaseSpeed(core.ClassHazard))
	if err != nil {
		return nil, err
	}
	l.nextID++
	if l.ticking {
		l.pendingHazards = append(l.pendingHazards, h)
	} else {
		l.hazards = append(l.hazards, h)
	}
	l.stats.entities.Store(int64(l.Len()))

	l.events.Emit(event.GameEvent{
		Type:    event.EventEntitySpawned,
		Payload: &event.EntitySpawnedPayload{Entity: h.ID(), Class: core.ClassHazard, Species: species, Position: x},
		Frame:   l.frame,
	})
	return h, nil
}

// SpawnCollectible adds a collectible of the given rarity at x
func (l *Lane) SpawnCollectible(kind core.Rarity, x float64) (*entity.Collectible, error) {
	c, err := entity.NewCollectible(l.nextID+1, kind, x, l.cfg.BaseSpeed(core.ClassCollectible), l.cfg.Score)
	if err != nil {
		return nil, err
	}
	l.nextID++
	if l.ticking {
		l.pendingCollectibles = append(l.pendingCollectibles, c)
	} else {
		l.collectibles = append(l.collectibles, c)
	}
	l.stats.entities.Store(int64(l.Len()))

	l.events.Emit(event.GameEvent{
		Type:    event.EventEntitySpawned,
		Payload: &event.EntitySpawnedPayload{Entity: c.ID(), Class: core.ClassCollectible, Rarity: kind, Position: x},
		Frame:   l.frame,
	})
	return c, nil
}

// Tick advances the lane by one frame
// Environment is read once up front; each entity then moves, resolves hit/pass/pickup and despawn
// dt is applied as given; callers bound it so one step stays within the overlap window
func (l *Lane) Tick(dt time.Duration) {
	if l.ticking {
		l.log.Warn("nested tick ignored", "frame", l.frame)
		return
	}
	l.ticking = true
	l.frame++
	f := l.snapshot(dt)

	// A Clear from a handler stops the remaining updates; cleared entities get no despawn events
	for _, h := range l.hazards {
		if l.clearPending {
			break
		}
		h.Update(&f)
	}
	for _, c := range l.collectibles {
		if l.clearPending {
			break
		}
		c.Update(&f)
	}
	if !l.clearPending {
		l.hazards = compact(l, l.hazards, f.Flipped)
	}
	if !l.clearPending {
		l.collectibles = compact(l, l.collectibles, f.Flipped)
	}

	l.ticking = false
	l.settle()

	l.stats.frame.Store(l.frame)
	l.stats.entities.Store(int64(l.Len()))
	l.stats.multiplier.Set(f.Multiplier)
	l.stats.flipped.Store(f.Flipped)
	l.stats.fieldActive.Store(f.Field != nil && f.Field.IsActive())
}

// ReportOverlap applies an overlap detected by an external collaborator
// Hazards register a hit, collectibles are picked up; redundant reports are ignored
func (l *Lane) ReportOverlap(id core.Entity) (bool, error) {
	f := l.snapshot(0)
	for _, h := range l.liveHazards() {
		if h.ID() == id {
			return h.Overlap(&f), nil
		}
	}
	for _, c := range l.liveCollectibles() {
		if c.ID() == id {
			return c.Pickup(&f), nil
		}
	}
	return false, fmt.Errorf("%w: %d", ErrUnknownEntity, id)
}

// Clear destroys every entity without events
// Called from a handler during Tick, it drops earlier pending spawns and applies when the tick ends
func (l *Lane) Clear() {
	if l.ticking {
		l.clearPending = true
		l.pendingHazards = dropAll(l.pendingHazards)
		l.pendingCollectibles = dropAll(l.pendingCollectibles)
		return
	}
	l.hazards = dropAll(l.hazards)
	l.collectibles = dropAll(l.collectibles)
	l.stats.entities.Store(0)
}

// settle applies what handlers requested during the tick that just ended
func (l *Lane) settle() {
	if l.clearPending {
		l.clearPending = false
		l.hazards = dropAll(l.hazards)
		l.collectibles = dropAll(l.collectibles)
	}
	l.hazards = append(l.hazards, l.pendingHazards...)
	l.collectibles = append(l.collectibles, l.pendingCollectibles...)
	l.pendingHazards = dropAll(l.pendingHazards)
	l.pendingCollectibles = dropAll(l.pendingCollectibles)
}

// liveHazards copies what callers can see: pending spawns included, a pending Clear applied
func (l *Lane) liveHazards() []*entity.Hazard {
	if l.clearPending {
		return slices.Clone(l.pendingHazards)
	}
	return slices.Concat(l.hazards, l.pendingHazards)
}

func (l *Lane) liveCollectibles() []*entity.Collectible {
	if l.clearPending {
		return slices.Clone(l.pendingCollectibles)
	}
	return slices.Concat(l.collectibles, l.pendingCollectibles)
}

func dropAll[E any](list []E) []E {
	clear(list)
	return list[:0]
}

func (l *Lane) snapshot(dt time.Duration) entity.Frame {
	f := entity.NewFrame(l.frame, dt)
	f.Player = l.player.PlayerPosition()
	f.LaneY = l.cfg.Lane.Y
	f.Flipped = l.orientation.IsFlipped()
	f.Multiplier = world.SanitizeMultiplier(l.speed.CurrentMultiplier())
	f.Field = l.field
	f.HitRadius = l.cfg.Lane.HitRadius
	f.PickupRadius = l.cfg.Lane.PickupRadius
	f.Bounds = l.Bounds()
	f.Healer = l.healer
	f.Events = l.events
	return f
}

// lifecycle is the subset of entity behavior compaction needs
type lifecycle interface {
	ID() core.Entity
	Class() core.Class
	Position() float64
	Destroyed() bool
	Cause() event.DespawnCause
}

// compact removes destroyed entities in place and announces each removal once
func compact[E lifecycle](l *Lane, list []E, flipped bool) []E {
	kept := list[:0]
	for _, e := range list {
		if !e.Destroyed() {
			kept = append(kept, e)
			continue
		}
		l.events.Emit(event.GameEvent{
			Type: event.EventEntityDespawned,
			Payload: &event.EntityDespawnedPayload{
				Entity:   e.ID(),
				Class:    e.Class(),
				Cause:    e.Cause(),
				Position: e.Position(),
				Flipped:  flipped,
				RunID:    l.runID.String(),
			},
			Frame: l.frame,
		})
	}
	clear(list[len(kept):])
	return kept
}

type fixedPlayer struct {
	pos world.Point
}

func (p fixedPlayer) PlayerPosition() world.Point { return p.pos }

// observedEmitter updates lane metrics and logs before forwarding to the caller's emitter
type observedEmitter struct {
	lane *Lane
	next event.Emitter
}

func (o *observedEmitter) Emit(ev event.GameEvent) {
	s := &o.lane.stats
	switch ev.Type {
	case event.EventHazardPassed:
		s.passed.Add(1)
	case event.EventHazardHit:
		s.hits.Add(1)
	case event.EventCollected:
		s.collected.Add(1)
	case event.EventEntityDespawned:
		s.despawned.Add(1)
	}
	s.lastEvent.Set(ev.Type.String())

	if o.lane.log.Enabled(context.Background(), slog.LevelDebug) {
		o.lane.log.Debug("lane event", "type", ev.Type.String(), "frame", ev.Frame, "payload", ev.Payload)
	}

	if o.next != nil {
		o.next.Emit(ev)
	}
}
