package main

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chronodash/audio"
	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/event"
	"github.com/lixenwraith/chronodash/lane"
	"github.com/lixenwraith/chronodash/render"
	"github.com/lixenwraith/chronodash/score"
	"github.com/lixenwraith/chronodash/spawn"
	"github.com/lixenwraith/chronodash/status"
	"github.com/lixenwraith/chronodash/world"
)

// Game owns one lane and everything that drives it
type Game struct {
	cfg    config.Config
	log    *slog.Logger
	screen tcell.Screen
	router *event.Router
	reg    *status.Registry

	lane        *lane.Lane
	player      *lane.Player
	orientation *world.Orientation
	boost       *world.Boost
	spawner     *spawn.Spawner
	tracker     *score.Tracker
	view        *render.LaneView
	cues        *audio.CuePlayer

	stats abilityStats
}

// abilityStats mirrors player-side timers into the registry for the HUD
type abilityStats struct {
	airborne       *atomic.Bool
	boostActive    *atomic.Bool
	boostProgress  *status.Gauge
	fieldRemaining *status.Gauge
	muted          *atomic.Bool
}

// newGame wires the lane, its providers and handlers; cues may be nil
func newGame(cfg config.Config, screen tcell.Screen, cues *audio.CuePlayer, seed uint64, logger *slog.Logger) (*Game, error) {
	reg := status.NewRegistry()
	router := event.NewRouter()
	tracker := score.NewTracker(cfg, reg)
	router.Register(tracker)
	if cues != nil {
		router.Register(cues)
	}

	g := &Game{
		cfg:         cfg,
		log:         logger,
		screen:      screen,
		router:      router,
		reg:         reg,
		player:      lane.NewPlayer(cfg),
		orientation: world.NewOrientation(cfg.Orientation.ToleranceDegrees),
		boost:       world.NewBoost(),
		tracker:     tracker,
		cues:        cues,
	}

	l, err := lane.New(cfg, lane.Options{
		Player:      g.player,
		Orientation: g.orientation,
		Speed:       g.boost,
		Healer:      tracker,
		Events:      router,
		Status:      reg,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	g.lane = l
	g.spawner = spawn.New(l, cfg.Spawn, seed)
	g.view = render.NewLaneView(screen, l)
	g.stats = abilityStats{
		airborne:       reg.Flags.Get("player.airborne"),
		boostActive:    reg.Flags.Get("boost.active"),
		boostProgress:  reg.Gauges.Get("boost.progress"),
		fieldRemaining: reg.Gauges.Get("field.remaining"),
		muted:          reg.Flags.Get("audio.muted"),
	}
	g.publish()
	return g, nil
}

// step advances one frame; dt is clamped so a stalled terminal cannot teleport entities
func (g *Game) step(dt time.Duration) {
	if dt > g.cfg.Lane.MaxTickDelta {
		dt = g.cfg.Lane.MaxTickDelta
	}
	if g.tracker.Dead() {
		return
	}

	g.player.Advance(dt)
	g.boost.Advance(dt)
	if _, err := g.spawner.Advance(dt); err != nil {
		g.log.Warn("spawn failed", "error", err)
	}
	g.lane.Tick(dt)
	g.publish()
}

// publish copies player, boost, field and audio state into the registry
func (g *Game) publish() {
	g.stats.airborne.Store(g.player.Airborne())
	g.stats.boostActive.Store(g.boost.Active())
	g.stats.boostProgress.Set(g.boost.Progress())
	g.stats.fieldRemaining.Set(g.player.Field().Remaining().Seconds())
	g.stats.muted.Store(g.cues != nil && g.cues.Muted())
}

// eventCounts returns per-type totals from the router as slog attributes
func (g *Game) eventCounts() []any {
	var attrs []any
	for et := event.EventEntitySpawned; et < event.EventTypeCount; et++ {
		attrs = append(attrs, et.String(), g.router.Emitted(et))
	}
	return attrs
}

// handleKey applies one key press; returns false when the game should exit
func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		g.player.Jump()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		g.player.Field().Toggle(g.cfg.Dilation.Duration)
	case 'g':
		g.orientation.Flip()
		g.log.Debug("orientation flipped", "angle", g.orientation.Angle())
	case 'b':
		if g.boost.Active() {
			g.boost.Extend(g.cfg.Boost.Duration)
		} else {
			g.boost.Activate(g.cfg.Boost.Multiplier, g.cfg.Boost.Duration)
		}
	case 'k':
		g.player.Jump()
	case 'm':
		if g.cues != nil {
			g.cues.SetMuted(!g.cues.Muted())
		}
	case 'r':
		if g.tracker.Dead() {
			g.restart()
		}
	}
	return true
}

// restart clears the lane and restores full health
func (g *Game) restart() {
	g.lane.Clear()
	g.tracker.Reset()
	g.boost.Deactivate()
	g.player.Field().Deactivate()
	g.publish()
	g.log.Info("run restarted", "run", g.lane.RunID())
}

// run drives the lane from a fixed ticker until quit
func (g *Game) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	goSafe(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}

		case now := <-ticker.C:
			g.step(now.Sub(last))
			last = now
			g.view.Draw(g.lane)
		}
	}
}
