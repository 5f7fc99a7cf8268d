// Package levels provides level loading functionality for LaserGrid.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/levels/formats"
)

//go:embed data/*.yaml
var bundledFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Hint     string
	Setup    core.Setup
	Solution []core.Placement
	Metadata map[string]string
	FilePath string
}

// NewSim creates a simulation of this level.
func (l *Level) NewSim(opts ...core.Option) (*core.Sim, error) {
	return core.NewSim(l.Setup, opts...)
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
	dir  string
}

// NewLoader creates a level loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root), dir: "."}
}

// Bundled returns a loader over the levels compiled into the binary.
func Bundled() *Loader {
	return &Loader{Root: "bundled", fsys: bundledFS, dir: "data"}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parseLevel(data, path.Join(l.Root, p))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadPath loads a level file from an arbitrary path on disk.
func LoadPath(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parseLevel(data, p)
}

// Catalog returns the bundled levels plus those in extraDir (if set).
// A user level replaces a bundled level with the same ID.
func Catalog(extraDir string) ([]Level, error) {
	bundled, err := Bundled().LoadAll()
	if err != nil {
		return nil, err
	}
	if extraDir == "" {
		return bundled, nil
	}

	extra, err := NewLoader(expandHome(extraDir)).LoadAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Level, len(bundled)+len(extra))
	for _, lvl := range bundled {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range extra {
		byID[lvl.ID] = lvl
	}

	out := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	sortLevels(out)
	return out, nil
}

// Find returns the level with the given ID from a catalog.
func Find(catalog []Level, id string) (Level, bool) {
	for _, lvl := range catalog {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return Level{}, false
}

func parseLevel(data []byte, p string) (Level, error) {
	ext := strings.ToLower(filepath.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if err := core.Validate(parsed.Setup); err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Hint:     parsed.Hint,
		Setup:    parsed.Setup,
		Solution: parsed.Solution,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
