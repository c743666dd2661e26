// Command chronodash runs a single side-scrolling lane in the terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chronodash/audio"
	"github.com/lixenwraith/chronodash/config"
	"github.com/lixenwraith/chronodash/parameter"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file; defaults when empty")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/chronodash.log")
	seedFlag   = flag.Uint64("seed", 0, "Spawner seed; 0 picks one from the clock")
	muteFlag   = flag.Bool("mute", false, "Start with audio cues muted; m toggles")
	tickFlag   = flag.Duration("tick", parameter.GameUpdateInterval, "Frame interval")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			handleCrash(r)
		}
	}()

	flag.Parse()

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	cues := audio.NewCuePlayer(logger)
	cues.SetMuted(*muteFlag)
	if err := cues.Init(); err != nil {
		logger.Warn("audio unavailable, continuing without cues", "error", err)
	}
	defer cues.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	crashScreen = screen
	defer screen.Fini()

	game, err := newGame(cfg, screen, cues, seed, logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	logger.Info("chronodash started", "run", game.lane.RunID(), "seed", seed, "tick", *tickFlag)
	game.run(*tickFlag)
	logger.Info("chronodash stopped",
		"frames", game.lane.Frame(),
		"score", game.tracker.Score(),
		"peak_speed", game.reg.Gauges.Get("lane.multiplier").Peak(),
	)
	logger.Info("event totals", game.eventCounts()...)
}
