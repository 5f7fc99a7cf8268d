package core

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Hit describes where a ray struck an item.
type Hit struct {
	Item     Item
	Point    Vec2
	Normal   Vec2
	Distance float64
}

// Board is the occupancy index: at most one item per cell, plus a separate
// set of wall tiles and the cells the player placed items on.
type Board struct {
	bounds Bounds
	items  map[Cell]Item
	walls  mapset.Set[Cell]
	placed mapset.Set[Cell]
}

// NewBoard creates an empty board.
func NewBoard(bounds Bounds) *Board {
	return &Board{
		bounds: bounds,
		items:  make(map[Cell]Item),
		walls:  mapset.New[Cell](),
		placed: mapset.New[Cell](),
	}
}

// Bounds returns the placement region.
func (b *Board) Bounds() Bounds { return b.bounds }

// At returns whatever occupies the cell, walls included.
func (b *Board) At(c Cell) (Item, bool) {
	if it, ok := b.items[c]; ok {
		return it, true
	}
	if b.walls.Has(c) {
		return wall{cell: c}, true
	}
	return nil, false
}

// KindAt returns the kind occupying the cell, or KindNone.
func (b *Board) KindAt(c Cell) Kind {
	if it, ok := b.At(c); ok {
		return it.Kind()
	}
	return KindNone
}

// IsWall reports whether a wall tile is drawn on the cell.
func (b *Board) IsWall(c Cell) bool { return b.walls.Has(c) }

// IsPlaced reports whether the item on the cell was placed by the player.
func (b *Board) IsPlaced(c Cell) bool { return b.placed.Has(c) }

// Len returns the number of items, walls excluded.
func (b *Board) Len() int { return len(b.items) }

// PlacedCount returns the number of player-placed items.
func (b *Board) PlacedCount() int { return b.placed.Size() }

// Items returns all items sorted row-major by cell.
func (b *Board) Items() []Item {
	out := make([]Item, 0, len(b.items))
	for _, it := range b.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Cell().Less(out[j].Cell())
	})
	return out
}

// PlacedCells returns the player-placed cells sorted row-major.
func (b *Board) PlacedCells() []Cell {
	return sortedCells(b.placed)
}

// Walls returns the wall cells sorted row-major.
func (b *Board) Walls() []Cell {
	return sortedCells(b.walls)
}

func sortedCells(s mapset.Set[Cell]) []Cell {
	out := make([]Cell, 0, s.Size())
	s.Each(func(c Cell) { out = append(out, c) })
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (b *Board) put(it Item, placed bool) {
	b.items[it.Cell()] = it
	if placed {
		b.placed.Put(it.Cell())
	}
}

func (b *Board) remove(c Cell) (Item, bool) {
	it, ok := b.items[c]
	if !ok {
		return nil, false
	}
	delete(b.items, c)
	b.placed.Remove(c)
	return it, true
}

func (b *Board) addWall(c Cell) {
	b.walls.Put(c)
}

// Raycast walks the grid cells along the ray (Amanatides-Woo traversal) and
// returns the first item struck within maxDist.
func (b *Board) Raycast(origin, dir Vec2, maxDist float64) (Hit, bool) {
	dir = dir.Normalize()
	if dir.Len() == 0 || maxDist <= 0 {
		return Hit{}, false
	}

	cell := CellAt(origin)
	stepX, tMaxX, tDeltaX := ddaAxis(origin.X, dir.X, cell.X)
	stepY, tMaxY, tDeltaY := ddaAxis(origin.Y, dir.Y, cell.Y)

	t := 0.0
	for t <= maxDist {
		if it, ok := b.At(cell); ok {
			if d, n, hit := it.intersect(origin, dir); hit && d <= maxDist {
				return Hit{
					Item:     it,
					Point:    origin.Add(dir.Scale(d)),
					Normal:   n,
					Distance: d,
				}, true
			}
		}
		if tMaxX < tMaxY {
			cell.X += stepX
			t = tMaxX
			tMaxX += tDeltaX
		} else {
			cell.Y += stepY
			t = tMaxY
			tMaxY += tDeltaY
		}
	}
	return Hit{}, false
}

// ddaAxis returns the step direction, the distance to the first cell
// boundary and the distance between boundaries along one axis.
func ddaAxis(o, d float64, c int) (step int, tMax, tDelta float64) {
	switch {
	case d > 0:
		return 1, (float64(c+1) - o) / d, 1 / d
	case d < 0:
		return -1, (o - float64(c)) / -d, -1 / d
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}
