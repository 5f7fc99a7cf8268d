package core

import (
	"fmt"
	"math"
)

// Cell represents an integer coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
// A cell covers the unit square [X, X+1) x [Y, Y+1) in world space.
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Cell one step in the given direction.
func (c Cell) Step(d Dir) Cell {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Center returns the world-space center of the cell.
func (c Cell) Center() Vec2 {
	return Vec2{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}

// Less orders cells row-major, used for deterministic iteration.
func (c Cell) Less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// CellAt maps a world-space point to the cell containing it.
func CellAt(p Vec2) Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Bounds is a rectangular placement region with exclusive edges:
// a cell is inside when MinX < X < MaxX and MinY < Y < MaxY.
type Bounds struct {
	MinX int
	MaxX int
	MinY int
	MaxY int
}

// DefaultBounds returns the standard placement region x in (-8, 12), y in (-3, 8).
func DefaultBounds() Bounds {
	return Bounds{MinX: -8, MaxX: 12, MinY: -3, MaxY: 8}
}

// Contains reports whether the cell lies strictly inside the bounds.
func (b Bounds) Contains(c Cell) bool {
	return c.X > b.MinX && c.X < b.MaxX && c.Y > b.MinY && c.Y < b.MaxY
}

// Width returns the number of columns inside the bounds.
func (b Bounds) Width() int {
	return max(0, b.MaxX-b.MinX-1)
}

// Height returns the number of rows inside the bounds.
func (b Bounds) Height() int {
	return max(0, b.MaxY-b.MinY-1)
}

// Valid reports whether the bounds enclose at least one cell.
func (b Bounds) Valid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// TopLeft returns the first interior cell.
func (b Bounds) TopLeft() Cell {
	return Cell{X: b.MinX + 1, Y: b.MinY + 1}
}

// Clamp returns the interior cell nearest to c.
func (b Bounds) Clamp(c Cell) Cell {
	return Cell{
		X: min(max(c.X, b.MinX+1), b.MaxX-1),
		Y: min(max(c.Y, b.MinY+1), b.MaxY-1),
	}
}

// Expand returns bounds grown to include c as an interior cell.
func (b Bounds) Expand(c Cell) Bounds {
	if c.X <= b.MinX {
		b.MinX = c.X - 1
	}
	if c.X >= b.MaxX {
		b.MaxX = c.X + 1
	}
	if c.Y <= b.MinY {
		b.MinY = c.Y - 1
	}
	if c.Y >= b.MaxY {
		b.MaxY = c.Y + 1
	}
	return b
}
