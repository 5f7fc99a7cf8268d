package core

import (
	"fmt"
	"math"
	"strings"
)

// beamSampleStep is the spacing of samples taken along a beam segment.
const beamSampleStep = 0.25

// BeamMark is what passes through a single cell.
type BeamMark struct {
	Colors     ColorSet
	Horizontal bool
	Vertical   bool
}

// Glyph returns a line glyph for the beam direction(s) through the cell.
func (m BeamMark) Glyph() rune {
	switch {
	case m.Horizontal && m.Vertical:
		return '+'
	case m.Vertical:
		return '|'
	default:
		return '-'
	}
}

// Color returns the single color in the cell, or ColorWhite when mixed.
func (m BeamMark) Color() Color {
	colors := SortedColors(m.Colors)
	if len(colors) == 1 {
		return colors[0]
	}
	return ColorWhite
}

// BeamCells rasterizes traces into the cells of area they pass through.
func BeamCells(traces []Trace, area Bounds) map[Cell]*BeamMark {
	marks := make(map[Cell]*BeamMark)
	for _, tr := range traces {
		for i := 1; i < len(tr.Points); i++ {
			p0, p1 := tr.Points[i-1], tr.Points[i]
			seg := p1.Sub(p0)
			horizontal := math.Abs(seg.X) >= math.Abs(seg.Y)
			n := int(math.Ceil(seg.Len() / beamSampleStep))
			for k := 0; k <= n; k++ {
				p := p0
				if n > 0 {
					p = p0.Add(seg.Scale(float64(k) / float64(n)))
				}
				c := CellAt(p)
				if !area.Contains(c) {
					continue
				}
				m, ok := marks[c]
				if !ok {
					m = &BeamMark{Colors: NewColorSet()}
					marks[c] = m
				}
				m.Colors.Put(tr.Color)
				if horizontal {
					m.Horizontal = true
				} else {
					m.Vertical = true
				}
			}
		}
	}
	return marks
}

// Extent returns the bounds grown to include every item and wall.
func (b *Board) Extent() Bounds {
	ext := b.bounds
	for c := range b.items {
		ext = ext.Expand(c)
	}
	b.walls.Each(func(c Cell) {
		ext = ext.Expand(c)
	})
	return ext
}

// ItemGlyph returns the ASCII glyph of an item.
//
// Format:
//   - mirrors: - / | \
//   - splitters: S (plain), X (match)
//   - emitters: arrow in the beam direction
//   - receivers: O idle, @ active
//   - blockers and walls: #
func ItemGlyph(it Item) rune {
	switch v := it.(type) {
	case *Mirror:
		return v.Glyph()
	case *Splitter:
		if v.Mode() == SplitMatch {
			return 'X'
		}
		return 'S'
	case *Emitter:
		return dirArrow(v.Dir)
	case *Receiver:
		if v.Activated() {
			return '@'
		}
		return 'O'
	default:
		return '#'
	}
}

func dirArrow(d Vec2) rune {
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X >= 0 {
			return DirRight.Arrow()
		}
		return DirLeft.Arrow()
	}
	if d.Y > 0 {
		return DirDown.Arrow()
	}
	return DirUp.Arrow()
}

// RenderASCII creates an ASCII representation of the current simulation
// state, used by the check command and in tests.
//
// Format:
//   - Items as in ItemGlyph, empty cells '.'
//   - Beams as lowercase color letters (w/r/g/b), '*' where colors cross
//   - Receiver summary below the grid
func RenderASCII(s *Sim) string {
	var sb strings.Builder
	ext := s.board.Extent()
	marks := BeamCells(s.traces, ext)

	sb.WriteString(fmt.Sprintf("Tick: %d | Receivers: %d/%d | Inventory: %s | Won: %t\n",
		s.tick, s.activated, len(s.receivers), s.inventory, s.won))

	for y := ext.MinY + 1; y < ext.MaxY; y++ {
		for x := ext.MinX + 1; x < ext.MaxX; x++ {
			c := C(x, y)
			if it, ok := s.board.At(c); ok {
				sb.WriteRune(ItemGlyph(it))
				continue
			}
			if m, ok := marks[c]; ok {
				if m.Colors.Size() > 1 {
					sb.WriteRune('*')
				} else {
					sb.WriteRune(m.Color().LowerChar())
				}
				continue
			}
			sb.WriteRune('.')
		}
		sb.WriteString("\n")
	}

	for _, r := range s.receivers {
		sb.WriteString(fmt.Sprintf("%s %s need=%s seen=%s %s\n",
			r.ID, r.Cell(), ColorsString(r.required), ColorsString(r.seen), r.Status()))
	}
	return sb.String()
}
