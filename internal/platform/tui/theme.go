package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lasergrid/internal/core"
)

// Theme contains the configurable visual styles of the terminal UI.
type Theme struct {
	// Screen palette, one style per platform color
	Palette map[core.Color]lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuItemCleared lipgloss.Style
	MenuDescription lipgloss.Style
	HUDControls     lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:     lipgloss.NewStyle(),
			core.ColorRed:         fg("1"),
			core.ColorGreen:       fg("2"),
			core.ColorYellow:      fg("3"),
			core.ColorBlue:        fg("4"),
			core.ColorMagenta:     fg("5"),
			core.ColorCyan:        fg("6"),
			core.ColorWhite:       fg("7"),
			core.ColorBrightWhite: fg("15").Bold(true),
			core.ColorOrange:      fg("208"),
			core.ColorGray:        fg("245"),
			core.ColorDarkGray:    fg("238"),
		},

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuItemLocked:  fg("240"),
		MenuItemCleared: fg("46"),
		MenuDescription: fg("245"),
		HUDControls:     fg("245"),
	}
}

// NeonTheme returns a saturated theme for dark terminals.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Palette[core.ColorRed] = fg("196").Bold(true)
	theme.Palette[core.ColorGreen] = fg("118").Bold(true)
	theme.Palette[core.ColorBlue] = fg("33").Bold(true)
	theme.Palette[core.ColorCyan] = fg("87")
	theme.Palette[core.ColorYellow] = fg("227")
	theme.MenuTitle = fg("199").Bold(true)
	return theme
}

// MonochromeTheme returns a grayscale theme. Beam colors are still told
// apart by the receiver panel letters.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	for c := range theme.Palette {
		theme.Palette[c] = fg("250")
	}
	theme.Palette[core.ColorDefault] = lipgloss.NewStyle()
	theme.Palette[core.ColorBrightWhite] = fg("255").Bold(true)
	theme.Palette[core.ColorGray] = fg("245")
	theme.Palette[core.ColorDarkGray] = fg("238")
	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true)
	theme.MenuItemCleared = fg("250")
	return theme
}

var themes = map[string]func() Theme{
	"default":    DefaultTheme,
	"neon":       NeonTheme,
	"monochrome": MonochromeTheme,
}

// ThemeNames lists the selectable themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme selects a theme by name. Empty selects the default.
func SetTheme(name string) error {
	if name == "" {
		name = "default"
	}
	build, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
	}
	theme = build()
	return nil
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return theme
}
