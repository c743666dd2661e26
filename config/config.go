// Package config defines the static configuration record of a lane and loads it from TOML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/chronodash/core"
	"github.com/lixenwraith/chronodash/parameter"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the static configuration record supplied at lane construction
type Config struct {
	Hazard      MotionConfig      `toml:"hazard"`
	Collectible MotionConfig      `toml:"collectible"`
	Dilation    DilationConfig    `toml:"dilation"`
	Orientation OrientationConfig `toml:"orientation"`
	Lane        LaneConfig        `toml:"lane"`
	Score       ScoreConfig       `toml:"score"`
	Player      PlayerConfig      `toml:"player"`
	Boost       BoostConfig       `toml:"boost"`
	Spawn       SpawnConfig       `toml:"spawn"`
}

type MotionConfig struct {
	BaseSpeed float64 `toml:"base_speed"`
}

type DilationConfig struct {
	SlowFactor float64       `toml:"slow_factor"`
	Radius     float64       `toml:"radius"`
	Duration   time.Duration `toml:"duration"`
}

type OrientationConfig struct {
	ToleranceDegrees float64 `toml:"tolerance_degrees"`
}

// LaneConfig holds lane geometry; BoundaryFlipped must lie left of BoundaryNormal
// MaxTickDelta is the largest step a driver may pass to Tick
type LaneConfig struct {
	Y               float64       `toml:"y"`
	SpawnX          float64       `toml:"spawn_x"`
	BoundaryNormal  float64       `toml:"boundary_normal"`
	BoundaryFlipped float64       `toml:"boundary_flipped"`
	HitRadius       float64       `toml:"hit_radius"`
	PickupRadius    float64       `toml:"pickup_radius"`
	MaxTickDelta    time.Duration `toml:"max_tick_delta"`
}

type ScoreConfig struct {
	Common     int `toml:"common"`
	Uncommon   int `toml:"uncommon"`
	Rare       int `toml:"rare"`
	RareHeal   int `toml:"rare_heal"`
	PassReward int `toml:"pass_reward"`
}

type PlayerConfig struct {
	X            float64       `toml:"x"`
	MaxHealth    int           `toml:"max_health"`
	HitDamage    int           `toml:"hit_damage"`
	JumpHeight   float64       `toml:"jump_height"`
	JumpDuration time.Duration `toml:"jump_duration"`
}

type BoostConfig struct {
	Multiplier float64       `toml:"multiplier"`
	Duration   time.Duration `toml:"duration"`
}

type SpawnConfig struct {
	Interval          time.Duration `toml:"interval"`
	CollectibleChance float64       `toml:"collectible_chance"`
	WeightCommon      int           `toml:"weight_common"`
	WeightUncommon    int           `toml:"weight_uncommon"`
	WeightRare        int           `toml:"weight_rare"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Hazard:      MotionConfig{BaseSpeed: parameter.HazardBaseSpeed},
		Collectible: MotionConfig{BaseSpeed: parameter.CollectibleBaseSpeed},
		Dilation: DilationConfig{
			SlowFactor: parameter.DilationSlowFactor,
			Radius:     parameter.DilationRadius,
			Duration:   parameter.DilationDuration,
		},
		Orientation: OrientationConfig{ToleranceDegrees: parameter.OrientationToleranceDegrees},
		Lane: LaneConfig{
			Y:               parameter.LaneY,
			SpawnX:          parameter.SpawnX,
			BoundaryNormal:  parameter.BoundaryNormal,
			BoundaryFlipped: parameter.BoundaryFlipped,
			HitRadius:       parameter.HitRadius,
			PickupRadius:    parameter.PickupRadius,
			MaxTickDelta:    parameter.MaxTickDelta,
		},
		Score: ScoreConfig{
			Common:     parameter.ScoreCommon,
			Uncommon:   parameter.ScoreUncommon,
			Rare:       parameter.ScoreRare,
			RareHeal:   parameter.RareHealAmount,
			PassReward: parameter.PassScore,
		},
		Player: PlayerConfig{
			X:            parameter.PlayerX,
			MaxHealth:    parameter.PlayerMaxHealth,
			HitDamage:    parameter.HitDamage,
			JumpHeight:   parameter.JumpHeight,
			JumpDuration: parameter.JumpDuration,
		},
		Boost: BoostConfig{
			Multiplier: parameter.BoostMultiplier,
			Duration:   parameter.BoostDuration,
		},
		Spawn: SpawnConfig{
			Interval:          parameter.SpawnInterval,
			CollectibleChance: parameter.SpawnCollectibleChance,
			WeightCommon:      parameter.SpawnWeightCommon,
			WeightUncommon:    parameter.SpawnWeightUncommon,
			WeightRare:        parameter.SpawnWeightRare,
		},
	}
}

// Load reads and validates a TOML config file; keys absent from the file keep their defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result
// Unknown keys are rejected so typos do not silently fall back to defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every fatal configuration problem, each wrapping ErrInvalidConfig
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if !positive(c.Hazard.BaseSpeed) {
		fail("hazard.base_speed must be positive, got %v", c.Hazard.BaseSpeed)
	}
	if !positive(c.Collectible.BaseSpeed) {
		fail("collectible.base_speed must be positive, got %v", c.Collectible.BaseSpeed)
	}
	if !(c.Dilation.SlowFactor > 0 && c.Dilation.SlowFactor <= 1) {
		fail("dilation.slow_factor must be in (0,1], got %v", c.Dilation.SlowFactor)
	}
	if !positive(c.Dilation.Radius) {
		fail("dilation.radius must be positive, got %v", c.Dilation.Radius)
	}
	if !(c.Orientation.ToleranceDegrees >= 0 && c.Orientation.ToleranceDegrees < 180) {
		fail("orientation.tolerance_degrees must be in [0,180), got %v", c.Orientation.ToleranceDegrees)
	}
	if !(c.Lane.BoundaryNormal > c.Lane.BoundaryFlipped) {
		fail("lane.boundary_normal (%v) must be greater than lane.boundary_flipped (%v)",
			c.Lane.BoundaryNormal, c.Lane.BoundaryFlipped)
	}
	if !(c.Lane.SpawnX > c.Lane.BoundaryNormal) {
		fail("lane.spawn_x (%v) must be greater than lane.boundary_normal (%v)", c.Lane.SpawnX, c.Lane.BoundaryNormal)
	}
	if !positive(c.Lane.HitRadius) {
		fail("lane.hit_radius must be positive, got %v", c.Lane.HitRadius)
	}
	if !positive(c.Lane.PickupRadius) {
		fail("lane.pickup_radius must be positive, got %v", c.Lane.PickupRadius)
	}
	if c.Score.Common < 0 || c.Score.Uncommon < 0 || c.Score.Rare < 0 || c.Score.RareHeal < 0 || c.Score.PassReward < 0 {
		fail("score values must not be negative")
	}
	if c.Player.MaxHealth <= 0 {
		fail("player.max_health must be positive, got %d", c.Player.MaxHealth)
	}
	if c.Player.HitDamage < 0 {
		fail("player.hit_damage must not be negative, got %d", c.Player.HitDamage)
	}
	if !positive(c.Boost.Multiplier) {
		fail("boost.multiplier must be positive, got %v", c.Boost.Multiplier)
	}
	if c.Lane.MaxTickDelta <= 0 {
		fail("lane.max_tick_delta must be positive, got %v", c.Lane.MaxTickDelta)
	}

	// Overlap is tested at the post-move position only, so the longest boosted step
	// must not carry an entity across the whole overlap window
	boost := max(c.Boost.Multiplier, 1)
	for _, w := range []struct {
		class  core.Class
		radius float64
	}{
		{core.ClassHazard, c.Lane.HitRadius},
		{core.ClassCollectible, c.Lane.PickupRadius},
	} {
		speed := c.BaseSpeed(w.class)
		if !positive(speed) || !positive(w.radius) || c.Lane.MaxTickDelta <= 0 {
			continue
		}
		if step := speed * boost * c.Lane.MaxTickDelta.Seconds(); step > 2*w.radius {
			fail("%s.base_speed %v with boost %v moves %.3g per %v step, wider than the overlap window %.3g",
				w.class, speed, boost, step, c.Lane.MaxTickDelta, 2*w.radius)
		}
	}
	if c.Spawn.CollectibleChance < 0 || c.Spawn.CollectibleChance > 1 {
		fail("spawn.collectible_chance must be in [0,1], got %v", c.Spawn.CollectibleChance)
	}
	if c.Spawn.WeightCommon < 0 || c.Spawn.WeightUncommon < 0 || c.Spawn.WeightRare < 0 ||
		c.Spawn.WeightCommon+c.Spawn.WeightUncommon+c.Spawn.WeightRare == 0 {
		fail("spawn weights must be non-negative with a positive sum")
	}

	return errors.Join(errs...)
}

// ScoreFor returns the configured score of a rarity
func (c ScoreConfig) ScoreFor(r core.Rarity) int {
	switch r {
	case core.RarityUncommon:
		return c.Uncommon
	case core.RarityRare:
		return c.Rare
	}
	return c.Common
}

// BaseSpeed returns the configured base speed for an entity class
func (c Config) BaseSpeed(class core.Class) float64 {
	if class == core.ClassCollectible {
		return c.Collectible.BaseSpeed
	}
	return c.Hazard.BaseSpeed
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
