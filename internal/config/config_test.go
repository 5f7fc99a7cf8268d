package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultLaserGridYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultLaserGridConfig() {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", cfg, DefaultLaserGridConfig())
	}
	if cfg.Settings() != core.DefaultSettings() {
		t.Errorf("Settings() = %+v, want %+v", cfg.Settings(), core.DefaultSettings())
	}
	if cfg.Bounds() != core.DefaultBounds() {
		t.Errorf("Bounds() = %+v", cfg.Bounds())
	}
}

func TestLoadLaserGridCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "tracer:\n  max_reflections: 9\nreceiver:\n  required_hit_time: 1500ms\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLaserGrid(path)
	if err != nil {
		t.Fatalf("LoadLaserGrid failed: %v", err)
	}
	if cfg.Tracer.MaxReflections != 9 {
		t.Errorf("max_reflections = %d, want 9", cfg.Tracer.MaxReflections)
	}
	if cfg.Receiver.RequiredHitTime != 1500*time.Millisecond {
		t.Errorf("required_hit_time = %v", cfg.Receiver.RequiredHitTime)
	}
	// Keys not in the file keep their defaults
	if cfg.Splitter.SpawnOffset != 0.5 || cfg.Display.CellWidth != 3 {
		t.Errorf("partial file lost defaults: %+v", cfg)
	}
}

func TestLoadLaserGridErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"syntax", "tracer: [unclosed"},
		{"negative reflections", "tracer:\n  max_reflections: -1\n"},
		{"empty bounds", "placement:\n  bounds: {min_x: 3, max_x: 3, min_y: 0, max_y: 4}\n"},
		{"narrow cells", "display:\n  cell_width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadLaserGrid(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadLaserGrid(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyLaserGridPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		hitTime  time.Duration
		extra    int
		cooldown time.Duration
	}{
		{DifficultyEasy, 1500 * time.Millisecond, 1, time.Second},
		{DifficultyNormal, 3 * time.Second, 0, time.Second},
		{DifficultyHard, 4500 * time.Millisecond, 0, 2 * time.Second},
		{"bogus", 3 * time.Second, 0, time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultLaserGridConfig()
			ApplyLaserGridPreset(&cfg, tt.preset)

			if got := cfg.Settings().RequiredHitTime; got != tt.hitTime {
				t.Errorf("hit time = %v, want %v", got, tt.hitTime)
			}
			if cfg.Placement.ExtraItems != tt.extra {
				t.Errorf("extra items = %d, want %d", cfg.Placement.ExtraItems, tt.extra)
			}
			if cfg.Placement.ErrorCooldown != tt.cooldown {
				t.Errorf("cooldown = %v, want %v", cfg.Placement.ErrorCooldown, tt.cooldown)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{"fixed", DifficultyNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestPrepareSetup(t *testing.T) {
	cfg := DefaultLaserGridConfig()
	ApplyLaserGridPreset(&cfg, DifficultyEasy)

	setup := core.Setup{
		Receivers: []core.ReceiverSpec{
			{ID: "a", HitTime: 2 * time.Second},
			{ID: "b"},
		},
	}
	got := cfg.PrepareSetup(setup)

	if got.Bounds != core.DefaultBounds() {
		t.Errorf("bounds = %+v", got.Bounds)
	}
	if want := (core.Inventory{Mirrors: 4, Splitters: 4, SplittersRGB: 4}); got.Inventory != want {
		t.Errorf("inventory = %v, want %v", got.Inventory, want)
	}
	if got.Receivers[0].HitTime != time.Second {
		t.Errorf("level hit time = %v, want 1s", got.Receivers[0].HitTime)
	}
	// Zero stays zero so the simulation default applies
	if got.Receivers[1].HitTime != 0 {
		t.Errorf("unset hit time = %v, want 0", got.Receivers[1].HitTime)
	}
	if setup.Receivers[0].HitTime != 2*time.Second {
		t.Error("PrepareSetup must not modify the caller's receivers")
	}

	// A level with its own stock keeps it
	own := cfg.PrepareSetup(core.Setup{Inventory: core.Inventory{Mirrors: 1}})
	if want := (core.Inventory{Mirrors: 2, Splitters: 1, SplittersRGB: 1}); own.Inventory != want {
		t.Errorf("inventory = %v, want %v", own.Inventory, want)
	}
}
