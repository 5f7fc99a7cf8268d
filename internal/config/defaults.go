package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

//go:embed defaults/lasergrid.yaml
var defaultLaserGridYAML []byte

// DefaultLaserGridConfig returns the default LaserGrid configuration.
func DefaultLaserGridConfig() LaserGridConfig {
	s := core.DefaultSettings()
	b := core.DefaultBounds()
	return LaserGridConfig{
		Tracer: TracerConfig{
			MaxReflections: s.MaxReflections,
			MaxDistance:    s.MaxDistance,
			Epsilon:        s.Epsilon,
			MaxBeams:       s.MaxBeams,
		},
		Splitter: SplitterConfig{
			SpawnOffset: s.SpawnOffset,
		},
		Receiver: ReceiverConfig{
			RequiredHitTime: s.RequiredHitTime,
			HitTimeScale:    1,
		},
		Placement: PlacementConfig{
			Bounds:        BoundsConfig{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY},
			Inventory:     core.Inventory{Mirrors: 3, Splitters: 3, SplittersRGB: 3},
			ErrorCooldown: time.Second,
		},
		Mirror: MirrorConfig{
			RotateSteps:   s.RotateSteps,
			RotationSpeed: 360,
		},
		Display: DisplayConfig{
			CellWidth:     3,
			ShakeDuration: 300 * time.Millisecond,
		},
	}
}
