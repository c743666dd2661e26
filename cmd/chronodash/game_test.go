package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chronodash/audio"
	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/parameter"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(100, 12)
	t.Cleanup(screen.Fini)

	g, err := newGame(config.Default(), screen, nil, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestHandleKey_Quit(t *testing.T) {
	g := newTestGame(t)
	if g.handleKey(runeKey('q')) {
		t.Error("q should quit")
	}
	if g.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if !g.handleKey(runeKey('x')) {
		t.Error("unbound key should not quit")
	}
}

func TestHandleKey_ControlsProviders(t *testing.T) {
	g := newTestGame(t)

	g.handleKey(runeKey(' '))
	if !g.player.Field().IsActive() {
		t.Error("space should activate the field")
	}
	g.handleKey(runeKey(' '))
	if g.player.Field().IsActive() {
		t.Error("second space should deactivate the field")
	}

	g.handleKey(runeKey('g'))
	if !g.lane.Flipped() {
		t.Error("g should flip the lane")
	}
	g.handleKey(runeKey('g'))
	if g.lane.Flipped() {
		t.Error("second g should restore orientation")
	}

	g.handleKey(runeKey('b'))
	if got := g.boost.CurrentMultiplier(); got != g.cfg.Boost.Multiplier {
		t.Errorf("boost multiplier: got %v, want %v", got, g.cfg.Boost.Multiplier)
	}

	g.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if !g.player.Airborne() {
		t.Error("up should jump")
	}
}

func TestStep_ClampsDelta(t *testing.T) {
	g := newTestGame(t)
	h, err := g.lane.SpawnHazard(core.SpeciesSpike, 15)
	if err != nil {
		t.Fatal(err)
	}

	g.step(time.Hour)

	want := 15 - g.cfg.Hazard.BaseSpeed*g.cfg.Lane.MaxTickDelta.Seconds()
	if got := h.Position(); got != want {
		t.Errorf("position after clamped step: got %v, want %v", got, want)
	}
}

func TestStep_BoostSpeedsLane(t *testing.T) {
	g := newTestGame(t)
	h, _ := g.lane.SpawnHazard(core.SpeciesSaw, 15)
	g.handleKey(runeKey('b'))

	g.step(50 * time.Millisecond)

	want := g.cfg.Hazard.BaseSpeed * g.cfg.Boost.Multiplier
	if got := h.Speed(); got != want {
		t.Errorf("boosted speed: got %v, want %v", got, want)
	}
}

func TestStep_DeadFreezesUntilRestart(t *testing.T) {
	g := newTestGame(t)
	for range g.cfg.Player.MaxHealth {
		h, _ := g.lane.SpawnHazard(core.SpeciesDrone, g.cfg.Player.X)
		if _, err := g.lane.ReportOverlap(h.ID()); err != nil {
			t.Fatal(err)
		}
	}
	if !g.tracker.Dead() {
		t.Fatalf("expected dead after %d hits, health %d", g.cfg.Player.MaxHealth, g.tracker.Health())
	}

	frame := g.lane.Frame()
	g.step(parameter.GameUpdateInterval)
	if g.lane.Frame() != frame {
		t.Error("lane should not tick while dead")
	}

	g.handleKey(runeKey('r'))
	if g.tracker.Dead() || g.lane.Len() != 0 {
		t.Errorf("restart: dead=%v len=%d", g.tracker.Dead(), g.lane.Len())
	}
	g.step(parameter.GameUpdateInterval)
	if g.lane.Frame() != frame+1 {
		t.Error("lane should tick after restart")
	}
}

func TestGame_DrawAfterStep(t *testing.T) {
	g := newTestGame(t)
	g.step(parameter.GameUpdateInterval)
	g.view.Draw(g.lane)

	r, _, _, _ := g.screen.GetContent(g.view.Column(g.cfg.Player.X), g.view.Row())
	if r != parameter.PlayerRune {
		t.Errorf("player glyph: got %q", r)
	}
}

func TestHandleKey_MuteToggle(t *testing.T) {
	g := newTestGame(t)
	g.handleKey(runeKey('m')) // no cue player wired
	if g.reg.Flags.Get("audio.muted").Load() {
		t.Error("mute without a cue player should be a no-op")
	}

	g.cues = audio.NewCuePlayer(nil)
	g.handleKey(runeKey('m'))
	g.step(parameter.GameUpdateInterval)
	if !g.cues.Muted() || !g.reg.Flags.Get("audio.muted").Load() {
		t.Error("m should mute cues and publish it")
	}
	g.handleKey(runeKey('m'))
	if g.cues.Muted() {
		t.Error("second m should unmute")
	}
}

func TestStep_PublishesAbilityMetrics(t *testing.T) {
	g := newTestGame(t)
	g.handleKey(runeKey('b'))
	g.handleKey(runeKey(' '))
	g.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))

	g.step(parameter.GameUpdateInterval)

	if !g.reg.Flags.Get("boost.active").Load() || !g.reg.Flags.Get("player.airborne").Load() {
		t.Error("boost and jump state not published")
	}
	if got := g.reg.Gauges.Get("boost.progress").Value(); got <= 0 || got >= 1 {
		t.Errorf("boost.progress: got %v, want (0,1)", got)
	}
	if got := g.reg.Gauges.Get("field.remaining").Value(); got <= 0 {
		t.Errorf("field.remaining: got %v, want > 0", got)
	}
}

func TestGame_EventCounts(t *testing.T) {
	g := newTestGame(t)
	h, _ := g.lane.SpawnHazard(core.SpeciesSpike, g.cfg.Player.X)
	g.lane.ReportOverlap(h.ID())

	counts := map[string]int64{}
	attrs := g.eventCounts()
	for i := 0; i+1 < len(attrs); i += 2 {
		counts[attrs[i].(string)] = attrs[i+1].(int64)
	}
	if counts["EventEntitySpawned"] != 1 || counts["EventHazardHit"] != 1 {
		t.Errorf("event totals: %v", counts)
	}
}
