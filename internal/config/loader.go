package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadLaserGrid loads the LaserGrid configuration.
// Search order: customPath -> ~/.lasergrid/configs/lasergrid.yaml -> ./configs/lasergrid.yaml -> embedded default
// Files may be partial; missing keys keep their default values.
func LoadLaserGrid(customPath string) (LaserGridConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultLaserGridConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultLaserGridConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("lasergrid.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "lasergrid.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultLaserGridYAML)
	if err != nil {
		return DefaultLaserGridConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (LaserGridConfig, error) {
	cfg := DefaultLaserGridConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c LaserGridConfig) validate() error {
	switch {
	case c.Tracer.MaxReflections < 0:
		return fmt.Errorf("tracer.max_reflections must not be negative")
	case c.Tracer.MaxDistance <= 0:
		return fmt.Errorf("tracer.max_distance must be positive")
	case c.Tracer.MaxBeams <= 0:
		return fmt.Errorf("tracer.max_beams must be positive")
	case c.Splitter.SpawnOffset <= 0:
		return fmt.Errorf("splitter.spawn_offset must be positive")
	case c.Receiver.RequiredHitTime < 0:
		return fmt.Errorf("receiver.required_hit_time must not be negative")
	case !c.Bounds().Valid():
		return fmt.Errorf("placement.bounds enclose no cells")
	case c.Display.CellWidth < 1:
		return fmt.Errorf("display.cell_width must be at least 1")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lasergrid", "configs", filename)
}
