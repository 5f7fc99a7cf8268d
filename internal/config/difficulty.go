package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScaling describes how a preset bends the base config.
type presetScaling struct {
	hitTime    float64 // receiver hit time multiplier
	extraItems int     // added to every inventory slot
	cooldown   float64 // error cooldown multiplier
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {hitTime: 0.5, extraItems: 1, cooldown: 1},
	DifficultyNormal: {hitTime: 1, cooldown: 1},
	DifficultyHard:   {hitTime: 1.5, cooldown: 2},
}

// ParseDifficulty parses a preset name. An empty name means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	if _, ok := presets[p]; !ok {
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplyLaserGridPreset modifies the config based on a difficulty preset.
// Unknown presets leave the config unchanged.
func ApplyLaserGridPreset(cfg *LaserGridConfig, preset DifficultyPreset) {
	sc, ok := presets[preset]
	if !ok {
		return
	}
	if cfg.Receiver.HitTimeScale <= 0 {
		cfg.Receiver.HitTimeScale = 1
	}
	cfg.Receiver.HitTimeScale *= sc.hitTime
	cfg.Placement.ErrorCooldown = scaleDuration(cfg.Placement.ErrorCooldown, sc.cooldown)
	cfg.Placement.ExtraItems += sc.extraItems
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
