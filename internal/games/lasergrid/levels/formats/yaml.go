// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Hint      string            `yaml:"hint,omitempty"`
	Bounds    *YAMLBounds       `yaml:"bounds,omitempty"`
	Emitters  []YAMLEmitter     `yaml:"emitters"`
	Receivers []YAMLReceiver    `yaml:"receivers"`
	Mirrors   []YAMLMirror      `yaml:"mirrors,omitempty"`
	Splitters []YAMLSplitter    `yaml:"splitters,omitempty"`
	Blockers  []YAMLCell        `yaml:"blockers,omitempty"`
	Walls     []YAMLCell        `yaml:"walls,omitempty"`
	Inventory core.Inventory    `yaml:"inventory"`
	Solution  []string          `yaml:"solution,omitempty"` // "kind@x,y[:orientation]"
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLBounds is the exclusive placement region.
type YAMLBounds struct {
	MinX int `yaml:"min_x"`
	MaxX int `yaml:"max_x"`
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y"`
}

// YAMLCell is a bare grid position.
type YAMLCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLEmitter is a laser source. Either Dir (up/right/down/left) or Angle
// (degrees, 0 = right, 90 = up) sets the direction.
type YAMLEmitter struct {
	ID    string   `yaml:"id,omitempty"`
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Dir   string   `yaml:"dir,omitempty"`
	Angle *float64 `yaml:"angle,omitempty"`
	Color string   `yaml:"color"`
}

// YAMLReceiver is a target with one or two required colors.
type YAMLReceiver struct {
	ID      string        `yaml:"id,omitempty"`
	X       int           `yaml:"x"`
	Y       int           `yaml:"y"`
	Colors  []string      `yaml:"colors"`
	HitTime time.Duration `yaml:"hit_time,omitempty"`
}

// YAMLMirror is a mirror that ships with the level.
type YAMLMirror struct {
	X           int  `yaml:"x"`
	Y           int  `yaml:"y"`
	Orientation int  `yaml:"orientation"`
	Fixed       bool `yaml:"fixed,omitempty"`
}

// YAMLSplitter is a splitter that ships with the level.
type YAMLSplitter struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Mode string `yaml:"mode,omitempty"` // primary (default) or match
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Hint     string
	Setup    core.Setup
	Solution []core.Placement
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	// Bounds stay zero when omitted so the caller can apply its own default.
	setup := core.Setup{Inventory: yl.Inventory}
	if yl.Bounds != nil {
		setup.Bounds = core.Bounds{MinX: yl.Bounds.MinX, MaxX: yl.Bounds.MaxX, MinY: yl.Bounds.MinY, MaxY: yl.Bounds.MaxY}
	}

	for i, e := range yl.Emitters {
		dir, err := parseDirection(e)
		if err != nil {
			return Level{}, fmt.Errorf("emitter %d: %w", i+1, err)
		}
		color, ok := core.ParseColor(e.Color)
		if !ok {
			return Level{}, fmt.Errorf("emitter %d: unknown color %q", i+1, e.Color)
		}
		setup.Emitters = append(setup.Emitters, core.EmitterSpec{
			ID:    e.ID,
			Cell:  core.C(e.X, e.Y),
			Dir:   dir,
			Color: color,
		})
	}

	for i, r := range yl.Receivers {
		colors := make([]core.Color, 0, len(r.Colors))
		for _, s := range r.Colors {
			c, ok := core.ParseColor(s)
			if !ok {
				return Level{}, fmt.Errorf("receiver %d: unknown color %q", i+1, s)
			}
			colors = append(colors, c)
		}
		setup.Receivers = append(setup.Receivers, core.ReceiverSpec{
			ID:      r.ID,
			Cell:    core.C(r.X, r.Y),
			Colors:  colors,
			HitTime: r.HitTime,
		})
	}

	for _, m := range yl.Mirrors {
		setup.Mirrors = append(setup.Mirrors, core.MirrorSpec{
			Cell:        core.C(m.X, m.Y),
			Orientation: m.Orientation,
			Fixed:       m.Fixed,
		})
	}

	for i, s := range yl.Splitters {
		mode, err := parseMode(s.Mode)
		if err != nil {
			return Level{}, fmt.Errorf("splitter %d: %w", i+1, err)
		}
		setup.Splitters = append(setup.Splitters, core.SplitterSpec{Cell: core.C(s.X, s.Y), Mode: mode})
	}

	for _, c := range yl.Blockers {
		setup.Blockers = append(setup.Blockers, core.C(c.X, c.Y))
	}
	for _, c := range yl.Walls {
		setup.Walls = append(setup.Walls, core.C(c.X, c.Y))
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Hint:     yl.Hint,
		Setup:    setup,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for _, s := range yl.Solution {
		p, err := core.ParsePlacement(s)
		if err != nil {
			return Level{}, fmt.Errorf("solution: %w", err)
		}
		level.Solution = append(level.Solution, p)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func parseDirection(e YAMLEmitter) (core.Vec2, error) {
	if e.Angle != nil {
		return core.FromDegrees(*e.Angle), nil
	}
	d, ok := core.ParseDir(e.Dir)
	if !ok {
		return core.Vec2{}, fmt.Errorf("unknown direction %q", e.Dir)
	}
	return d.Vec(), nil
}

func parseMode(s string) (core.SplitterMode, error) {
	switch s {
	case "", "primary", "plain":
		return core.SplitPrimary, nil
	case "match", "rgb":
		return core.SplitMatch, nil
	default:
		return core.SplitPrimary, fmt.Errorf("unknown splitter mode %q", s)
	}
}
