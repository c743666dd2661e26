package lane

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/entity"
	"github.com/lixenwraith/chronodash/event"
	"github.com/lixenwraith/chronodash/status"
	"github.com/lixenwraith/chronodash/world"
)

func newTestLane(t *testing.T, opts Options) (*Lane, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	if opts.Events == nil {
		opts.Events = rec
	}
	l, err := New(config.Default(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, rec
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"nonpositive base speed", func(c *config.Config) { c.Hazard.BaseSpeed = 0 }},
		{"boundary ordering", func(c *config.Config) { c.Lane.BoundaryFlipped = c.Lane.BoundaryNormal + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			l, err := New(cfg, Options{})
			if l != nil || !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("got lane %v err %v, want ErrInvalidConfig", l, err)
			}
		})
	}
}

func TestLane_NeutralEnvironment(t *testing.T) {
	l, _ := newTestLane(t, Options{})
	h, err := l.SpawnHazard(core.SpeciesSaw, 10)
	if err != nil {
		t.Fatal(err)
	}

	l.Tick(time.Second)

	if h.Position() != 6 {
		t.Errorf("position with no collaborators: got %v, want 6", h.Position())
	}
	if l.Flipped() || l.Field() != nil {
		t.Error("absent collaborators should be neutral")
	}
	if _, err := uuid.Parse(l.RunID()); err != nil {
		t.Errorf("RunID is not a uuid: %v", err)
	}
}

func TestLane_PassScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Hazard.BaseSpeed = 2

	rec := &event.Recorder{}
	router := event.NewRouter()
	router.Subscribe(event.EventHazardPassed, rec.Emit)

	l, err := New(cfg, Options{Events: router})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.SpawnHazard(core.SpeciesSpike, 1); err != nil {
		t.Fatal(err)
	}

	l.Tick(time.Second)
	l.Tick(time.Second)

	if len(rec.Events) != 1 {
		t.Fatalf("pass events: got %d, want 1", len(rec.Events))
	}
	if rec.Events[0].Frame != 1 {
		t.Errorf("pass frame: got %d, want 1", rec.Events[0].Frame)
	}
	if got := l.Status().Counters.Get("lane.passed").Load(); got != 1 {
		t.Errorf("lane.passed metric: got %d, want 1", got)
	}
}

func TestLane_DespawnRemovesEntities(t *testing.T) {
	orientation := world.NewOrientation(1)
	l, rec := newTestLane(t, Options{Orientation: orientation})

	// Both start left of the player, so no pass or hit interferes
	if _, err := l.SpawnHazard(core.SpeciesCrate, -9.9); err != nil {
		t.Fatal(err)
	}
	if _, err := l.SpawnCollectible(core.RarityCommon, -19.9); err != nil {
		t.Fatal(err)
	}

	orientation.Flip()
	l.Tick(100 * time.Millisecond) // -10.3 and -20.3 under flipped boundary -20

	if l.Len() != 1 {
		t.Fatalf("live entities: got %d, want 1", l.Len())
	}
	if len(l.Hazards()) != 1 {
		t.Error("hazard inside the flipped boundary should survive")
	}
	if rec.Count(event.EventEntityDespawned) != 1 {
		t.Errorf("despawn events: got %d, want 1", rec.Count(event.EventEntityDespawned))
	}

	orientation.Flip()
	l.Tick(100 * time.Millisecond)
	if l.Len() != 0 {
		t.Errorf("hazard past the normal boundary should despawn, %d live", l.Len())
	}

	var last *event.EntityDespawnedPayload
	for _, ev := range rec.Events {
		if p, ok := ev.Payload.(*event.EntityDespawnedPayload); ok {
			last = p
		}
	}
	if last == nil || last.Class != core.ClassHazard || last.Cause != event.DespawnBoundary || last.Flipped {
		t.Errorf("last despawn payload: %+v", last)
	}
	if last != nil && last.RunID != l.RunID() {
		t.Errorf("despawn RunID: got %q, want %q", last.RunID, l.RunID())
	}
}

func TestLane_SpawnPointFollowsOrientation(t *testing.T) {
	orientation := world.NewOrientation(1)
	l, _ := newTestLane(t, Options{Orientation: orientation})

	if got := l.SpawnPoint(); got != 20 {
		t.Errorf("normal spawn: got %v, want 20", got)
	}
	orientation.SetAngle(180)
	if got := l.SpawnPoint(); got != 10 {
		t.Errorf("flipped spawn: got %v, want 10", got)
	}
}

func TestLane_PlayerFieldSlowsEntities(t *testing.T) {
	player := NewPlayer(config.Default())
	player.Field().Activate()
	player.Jump() // keep the hazard from hitting

	l, _ := newTestLane(t, Options{Player: player})
	if l.Field() == nil {
		t.Fatal("lane should adopt the player's field")
	}

	h, _ := l.SpawnHazard(core.SpeciesDrone, 2)
	l.Tick(250 * time.Millisecond)

	if h.Speed() != 2 {
		t.Errorf("speed inside field: got %v, want 2", h.Speed())
	}
	if h.Position() != 1.5 {
		t.Errorf("position: got %v, want 1.5", h.Position())
	}
}

func TestLane_BoostMultiplier(t *testing.T) {
	boost := world.NewBoost()
	l, _ := newTestLane(t, Options{Speed: boost})
	h, _ := l.SpawnHazard(core.SpeciesSpike, 15)

	boost.Activate(2, time.Second)
	l.Tick(time.Second)
	if h.Speed() != 8 || h.Position() != 7 {
		t.Errorf("boosted: speed %v position %v, want 8/7", h.Speed(), h.Position())
	}

	boost.Advance(time.Second)
	l.Tick(time.Second)
	if h.Speed() != 4 {
		t.Errorf("after boost: speed %v, want 4", h.Speed())
	}
	if got := l.Status().Gauges.Get("lane.multiplier").Value(); got != 1 {
		t.Errorf("lane.multiplier metric: got %v, want 1", got)
	}
}

func TestLane_HitAndCollectThroughTick(t *testing.T) {
	reg := status.NewRegistry()
	l, rec := newTestLane(t, Options{Status: reg})

	if _, err := l.SpawnHazard(core.SpeciesSaw, 0.2); err != nil {
		t.Fatal(err)
	}
	if _, err := l.SpawnCollectible(core.RarityRare, 0.4); err != nil {
		t.Fatal(err)
	}

	l.Tick(50 * time.Millisecond)

	if rec.Count(event.EventHazardHit) != 1 || rec.Count(event.EventHazardPassed) != 0 {
		t.Errorf("hazard events: hit %d pass %d", rec.Count(event.EventHazardHit), rec.Count(event.EventHazardPassed))
	}
	if rec.Count(event.EventCollected) != 1 || rec.Count(event.EventHealRequest) != 1 {
		t.Errorf("collect %d heal %d, want 1/1", rec.Count(event.EventCollected), rec.Count(event.EventHealRequest))
	}
	if len(l.Collectibles()) != 0 {
		t.Error("picked up collectible should be removed at end of tick")
	}
	if len(l.Hazards()) != 1 {
		t.Error("hit hazard keeps travelling until despawn")
	}
	if reg.Counters.Get("lane.hits").Load() != 1 || reg.Counters.Get("lane.collected").Load() != 1 {
		t.Error("metrics not published to the shared registry")
	}
}

func TestLane_ReportOverlap(t *testing.T) {
	l, rec := newTestLane(t, Options{})
	h, _ := l.SpawnHazard(core.SpeciesSpike, 8)
	c, _ := l.SpawnCollectible(core.RarityUncommon, 9)

	if ok, err := l.ReportOverlap(h.ID()); !ok || err != nil {
		t.Errorf("hazard overlap: %v %v", ok, err)
	}
	if ok, _ := l.ReportOverlap(h.ID()); ok {
		t.Error("repeated hazard overlap should be ignored")
	}
	if ok, err := l.ReportOverlap(c.ID()); !ok || err != nil {
		t.Errorf("collectible overlap: %v %v", ok, err)
	}
	if ok, _ := l.ReportOverlap(c.ID()); ok {
		t.Error("repeated pickup should be ignored")
	}
	if _, err := l.ReportOverlap(999); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("unknown id: got %v", err)
	}

	if rec.Count(event.EventHazardHit) != 1 || rec.Count(event.EventCollected) != 1 {
		t.Errorf("events: hit %d collect %d", rec.Count(event.EventHazardHit), rec.Count(event.EventCollected))
	}

	l.Tick(0)
	if len(l.Collectibles()) != 0 {
		t.Error("collectible picked up by report should be compacted")
	}
}

func TestLane_SpawnErrorsDoNotConsumeIDs(t *testing.T) {
	l, _ := newTestLane(t, Options{})
	if _, err := l.SpawnHazard(core.SpeciesCount, 5); err == nil {
		t.Fatal("unknown species should fail")
	}
	if _, err := l.SpawnCollectible(core.RarityCount, 5); err == nil {
		t.Fatal("unknown rarity should fail")
	}
	h, err := l.SpawnHazard(core.SpeciesSpike, 5)
	if err != nil {
		t.Fatal(err)
	}
	if h.ID() != 1 {
		t.Errorf("first valid entity id: got %d, want 1", h.ID())
	}
	if l.Len() != 1 {
		t.Errorf("live entities: got %d, want 1", l.Len())
	}
}

func TestLane_Clear(t *testing.T) {
	l, rec := newTestLane(t, Options{})
	l.SpawnHazard(core.SpeciesSpike, 5)
	l.SpawnCollectible(core.RarityCommon, 6)
	rec.Reset()

	l.Clear()
	if l.Len() != 0 || len(rec.Events) != 0 {
		t.Errorf("clear: %d live, %d events", l.Len(), len(rec.Events))
	}
}

func TestPlayer_JumpAndLand(t *testing.T) {
	p := NewPlayer(config.Default())
	if !p.Jump() {
		t.Fatal("grounded player should jump")
	}
	if p.Jump() {
		t.Error("airborne player should not jump again")
	}
	if p.PlayerPosition().Y != 1.5 || p.Field().Center.Y != 1.5 {
		t.Errorf("airborne position %v field center %v", p.PlayerPosition(), p.Field().Center)
	}

	p.Advance(700 * time.Millisecond)
	if p.Airborne() || p.PlayerPosition().Y != 0 {
		t.Errorf("after landing: airborne %v y %v", p.Airborne(), p.PlayerPosition().Y)
	}

	p.MoveTo(3)
	if p.Field().Center.X != 3 {
		t.Errorf("field should follow player, center %v", p.Field().Center)
	}
}

// newRoutedLane builds a lane whose events go through a router the test can subscribe to
func newRoutedLane(t *testing.T) (*Lane, *event.Router, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	router := event.NewRouter()
	for et := event.EventEntitySpawned; et < event.EventTypeCount; et++ {
		router.Subscribe(et, rec.Emit)
	}
	l, err := New(config.Default(), Options{Events: router})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, router, rec
}

func TestLane_SpawnFromDespawnHandlerSurvives(t *testing.T) {
	l, router, rec := newRoutedLane(t)
	router.Subscribe(event.EventEntityDespawned, func(event.GameEvent) {
		if _, err := l.SpawnHazard(core.SpeciesCrate, 5); err != nil {
			t.Errorf("spawn from handler: %v", err)
		}
	})

	if _, err := l.SpawnHazard(core.SpeciesSpike, -9.9); err != nil {
		t.Fatal(err)
	}
	l.Tick(100 * time.Millisecond) // -9.9 -> -10.3, past the normal boundary

	if got := rec.Count(event.EventEntityDespawned); got != 1 {
		t.Fatalf("despawn events: got %d, want 1", got)
	}
	if l.Len() != 1 {
		t.Fatalf("live entities after tick: got %d, want 1", l.Len())
	}
	h := l.Hazards()[0]
	if h.ID() != 2 || h.Position() != 5 {
		t.Errorf("respawned hazard: id %d at %v, want id 2 at 5", h.ID(), h.Position())
	}

	l.Tick(100 * time.Millisecond)
	if h.Position() >= 5 {
		t.Errorf("respawned hazard should move on the next tick, at %v", h.Position())
	}
}

func TestLane_SpawnFromHitHandlerJoinsNextTick(t *testing.T) {
	l, router, _ := newRoutedLane(t)
	var spawned *entity.Hazard
	router.Subscribe(event.EventHazardHit, func(event.GameEvent) {
		spawned, _ = l.SpawnHazard(core.SpeciesDrone, 8)
		if l.Len() != 2 {
			t.Errorf("Len inside handler: got %d, want 2", l.Len())
		}
	})

	l.SpawnHazard(core.SpeciesSaw, 0.2)
	l.Tick(50 * time.Millisecond)

	if spawned == nil || spawned.Position() != 8 {
		t.Fatal("hazard spawned during the tick must not move until the next tick")
	}
	if l.Len() != 2 {
		t.Errorf("live entities: got %d, want 2", l.Len())
	}
}

func TestLane_ClearFromHitHandler(t *testing.T) {
	l, router, rec := newRoutedLane(t)
	router.Subscribe(event.EventHazardHit, func(event.GameEvent) {
		l.Clear()
	})

	l.SpawnHazard(core.SpeciesSaw, 0.2)
	l.SpawnHazard(core.SpeciesSpike, 3)
	l.SpawnCollectible(core.RarityCommon, -9.9)
	rec.Reset()

	l.Tick(100 * time.Millisecond)

	if l.Len() != 0 || len(l.Hazards()) != 0 || len(l.Collectibles()) != 0 {
		t.Errorf("lane after clear: %d live", l.Len())
	}
	if got := rec.Count(event.EventEntityDespawned); got != 0 {
		t.Errorf("cleared entities must not emit despawn events, got %d", got)
	}
	if got := l.Status().Counters.Get("lane.entities").Load(); got != 0 {
		t.Errorf("lane.entities metric: got %d, want 0", got)
	}

	l.Tick(100 * time.Millisecond)
	if l.Frame() != 2 {
		t.Errorf("frame: got %d, want 2", l.Frame())
	}
}

func TestLane_ClearThenSpawnFromHandler(t *testing.T) {
	l, router, _ := newRoutedLane(t)
	router.Subscribe(event.EventHazardHit, func(event.GameEvent) {
		l.SpawnHazard(core.SpeciesCrate, 7) // dropped by the Clear below
		l.Clear()
		l.SpawnCollectible(core.RarityRare, 9)
	})

	l.SpawnHazard(core.SpeciesSaw, 0.2)
	l.Tick(50 * time.Millisecond)

	if len(l.Hazards()) != 0 {
		t.Errorf("hazards: got %d, want 0", len(l.Hazards()))
	}
	cs := l.Collectibles()
	if len(cs) != 1 || cs[0].Kind() != core.RarityRare {
		t.Fatalf("collectibles after clear+spawn: %d", len(cs))
	}
	if _, err := l.ReportOverlap(cs[0].ID()); err != nil {
		t.Errorf("entity spawned after clear should be addressable: %v", err)
	}
}

func TestLane_NestedTickIgnored(t *testing.T) {
	l, router, _ := newRoutedLane(t)
	router.Subscribe(event.EventHazardHit, func(event.GameEvent) {
		l.Tick(time.Second)
	})

	h, _ := l.SpawnHazard(core.SpeciesSaw, 0.2)
	l.Tick(50 * time.Millisecond)

	if l.Frame() != 1 {
		t.Errorf("frame: got %d, want 1", l.Frame())
	}
	if want := 0.2 - 4*0.05; h.Position() != want {
		t.Errorf("position: got %v, want %v", h.Position(), want)
	}
}

func TestLane_LongestBoostedStepCannotSkipPlayer(t *testing.T) {
	cfg := config.Default()
	step := cfg.Hazard.BaseSpeed * cfg.Boost.Multiplier * cfg.Lane.MaxTickDelta.Seconds()

	for i := 0; i <= 10; i++ {
		boost := world.NewBoost()
		boost.Activate(cfg.Boost.Multiplier, time.Minute)
		l, err := New(cfg, Options{Speed: boost})
		if err != nil {
			t.Fatal(err)
		}

		x := cfg.Player.X + cfg.Lane.HitRadius + step*float64(i)/10
		h, _ := l.SpawnHazard(core.SpeciesSpike, x)
		for h.Position() >= cfg.Player.X-cfg.Lane.HitRadius {
			l.Tick(cfg.Lane.MaxTickDelta)
		}
		if !h.PlayerHit() {
			t.Errorf("hazard from x=%.3f skipped the player", x)
		}
	}
}
