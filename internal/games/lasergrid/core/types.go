// Package core provides the beam-routing simulation for LaserGrid.
// This package is UI-agnostic and deterministic: every tick recomputes all
// beams from the emitters outward.
package core

import "strings"

// Dir represents one of the four cardinal sides of a cell.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Sides lists the cardinal sides in the order splitters emit from them.
var Sides = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vec returns the unit vector pointing out of this side.
func (d Dir) Vec() Vec2 {
	dx, dy := d.Delta()
	return V(float64(dx), float64(dy))
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// Arrow returns a glyph pointing in this direction.
func (d Dir) Arrow() rune {
	switch d {
	case DirUp:
		return '^'
	case DirRight:
		return '>'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	default:
		return '?'
	}
}

// ParseDir converts a name or single letter to a Dir.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(s) {
	case "up", "u", "north", "n":
		return DirUp, true
	case "right", "r", "east", "e":
		return DirRight, true
	case "down", "d", "south", "s":
		return DirDown, true
	case "left", "l", "west", "w":
		return DirLeft, true
	default:
		return DirUp, false
	}
}

// Kind identifies what occupies a cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindMirror
	KindSplitter
	KindSplitterRGB
	KindEmitter
	KindReceiver
	KindBlocker
	KindWall
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMirror:
		return "mirror"
	case KindSplitter:
		return "splitter"
	case KindSplitterRGB:
		return "splitter_rgb"
	case KindEmitter:
		return "emitter"
	case KindReceiver:
		return "receiver"
	case KindBlocker:
		return "blocker"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Placeable reports whether the player can place items of this kind.
func (k Kind) Placeable() bool {
	return k == KindMirror || k == KindSplitter || k == KindSplitterRGB
}

// PlaceableKinds returns the item kinds backed by inventory, in display order.
func PlaceableKinds() []Kind {
	return []Kind{KindMirror, KindSplitter, KindSplitterRGB}
}

// ParseKind converts a name to a placeable Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mirror", "m":
		return KindMirror, true
	case "splitter", "s":
		return KindSplitter, true
	case "splitter_rgb", "splitter-rgb", "rgb", "x":
		return KindSplitterRGB, true
	default:
		return KindNone, false
	}
}
