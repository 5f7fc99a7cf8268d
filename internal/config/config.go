// Package config provides YAML-based configuration loading and difficulty
// presets for LaserGrid.
package config

import (
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

// LaserGridConfig contains all tunables of the game.
type LaserGridConfig struct {
	Tracer    TracerConfig    `yaml:"tracer"`
	Splitter  SplitterConfig  `yaml:"splitter"`
	Receiver  ReceiverConfig  `yaml:"receiver"`
	Placement PlacementConfig `yaml:"placement"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Display   DisplayConfig   `yaml:"display"`
}

// TracerConfig limits beam tracing.
type TracerConfig struct {
	MaxReflections int     `yaml:"max_reflections"`
	MaxDistance    float64 `yaml:"max_distance"`
	Epsilon        float64 `yaml:"epsilon"`
	MaxBeams       int     `yaml:"max_beams"` // traces per tick, splitter children included
}

// SplitterConfig defines where child beams start.
type SplitterConfig struct {
	SpawnOffset float64 `yaml:"spawn_offset"`
}

// ReceiverConfig holds the default hit time for receivers that set none.
// HitTimeScale multiplies every hit time, level-specific ones included.
type ReceiverConfig struct {
	RequiredHitTime time.Duration `yaml:"required_hit_time"`
	HitTimeScale    float64       `yaml:"hit_time_scale"`
}

// PlacementConfig defines the player's build area and stock.
type PlacementConfig struct {
	Bounds        BoundsConfig   `yaml:"bounds"`
	Inventory     core.Inventory `yaml:"inventory"`   // used by levels without an inventory
	ExtraItems    int            `yaml:"extra_items"` // added to every level inventory
	ErrorCooldown time.Duration  `yaml:"error_cooldown"`
}

// BoundsConfig is the exclusive placement region used by levels that set none.
type BoundsConfig struct {
	MinX int `yaml:"min_x"`
	MaxX int `yaml:"max_x"`
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y"`
}

// MirrorConfig defines mirror rotation.
type MirrorConfig struct {
	RotateSteps   int     `yaml:"rotate_steps"`   // 45 degree steps per rotation
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per second for the sweep animation
}

// DisplayConfig defines terminal rendering.
type DisplayConfig struct {
	CellWidth     int           `yaml:"cell_width"`
	ShakeDuration time.Duration `yaml:"shake_duration"`
}

// Settings converts the config into simulation limits.
func (c LaserGridConfig) Settings() core.Settings {
	return core.Settings{
		MaxReflections:  c.Tracer.MaxReflections,
		MaxDistance:     c.Tracer.MaxDistance,
		Epsilon:         c.Tracer.Epsilon,
		SpawnOffset:     c.Splitter.SpawnOffset,
		RequiredHitTime: c.scaleHitTime(c.Receiver.RequiredHitTime),
		MaxBeams:        c.Tracer.MaxBeams,
		RotateSteps:     c.Mirror.RotateSteps,
	}
}

// Bounds returns the default placement bounds.
func (c LaserGridConfig) Bounds() core.Bounds {
	b := c.Placement.Bounds
	return core.Bounds{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY}
}

// PrepareSetup applies the configured defaults to a level setup. Bounds and
// inventory fill in when the level leaves them empty.
func (c LaserGridConfig) PrepareSetup(setup core.Setup) core.Setup {
	if setup.Bounds == (core.Bounds{}) {
		setup.Bounds = c.Bounds()
	}
	if setup.Inventory.Total() == 0 {
		setup.Inventory = c.Placement.Inventory
	}
	setup.Inventory = setup.Inventory.Add(c.Placement.ExtraItems)

	receivers := make([]core.ReceiverSpec, len(setup.Receivers))
	for i, r := range setup.Receivers {
		r.HitTime = c.scaleHitTime(r.HitTime)
		receivers[i] = r
	}
	setup.Receivers = receivers
	return setup
}

func (c LaserGridConfig) scaleHitTime(d time.Duration) time.Duration {
	if c.Receiver.HitTimeScale <= 0 {
		return d
	}
	return time.Duration(float64(d) * c.Receiver.HitTimeScale)
}
