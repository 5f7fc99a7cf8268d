package core

import "math"

// Collider half-sizes in world units. Interactive entities sit inside their
// cell so a beam spawned on a cell edge starts outside them.
const (
	interactiveHalf = 0.4
	solidHalf       = 0.5
	mirrorHalfLen   = 0.5
	hitEpsilon      = 1e-9
)

// MirrorSteps is the number of discrete mirror orientations (45 degrees each).
const MirrorSteps = 8

// DefaultMirrorOrientation is the orientation of freshly placed mirrors ('/').
const DefaultMirrorOrientation = 1

// Item is anything that occupies a cell and can stop or redirect a beam.
type Item interface {
	Kind() Kind
	Cell() Cell
	// intersect returns the distance along the ray to the item's surface and
	// the surface normal facing the ray.
	intersect(origin, dir Vec2) (t float64, normal Vec2, ok bool)
}

// Mirror reflects beams. Orientation is in 45 degree steps: 0 '-', 1 '/', 2 '|', 3 '\'.
type Mirror struct {
	cell        Cell
	Orientation int
	Fixed       bool // level mirrors that cannot be rotated
}

// NewMirror creates a mirror at the given cell.
func NewMirror(c Cell, orientation int) *Mirror {
	return &Mirror{cell: c, Orientation: normalizeOrientation(orientation)}
}

func (m *Mirror) Kind() Kind { return KindMirror }
func (m *Mirror) Cell() Cell { return m.cell }

// mirrorAxes holds the unit line direction of each orientation.
var mirrorAxes = func() [MirrorSteps]Vec2 {
	h := math.Sqrt2 / 2
	return [MirrorSteps]Vec2{
		{1, 0}, {h, -h}, {0, -1}, {-h, -h},
		{-1, 0}, {-h, h}, {0, 1}, {h, h},
	}
}()

// Axis returns the unit direction along the mirror surface.
func (m *Mirror) Axis() Vec2 {
	return mirrorAxes[normalizeOrientation(m.Orientation)]
}

// Normal returns one of the two unit normals of the mirror surface.
func (m *Mirror) Normal() Vec2 {
	u := m.Axis()
	return Vec2{X: -u.Y, Y: u.X}
}

// Degrees returns the orientation as an angle.
func (m *Mirror) Degrees() float64 {
	return float64(normalizeOrientation(m.Orientation)) * 45
}

// Rotate advances the orientation by steps and returns the new value.
func (m *Mirror) Rotate(steps int) int {
	m.Orientation = normalizeOrientation(m.Orientation + steps)
	return m.Orientation
}

// Glyph returns the ASCII glyph for the mirror line.
func (m *Mirror) Glyph() rune {
	return MirrorGlyph(m.Orientation)
}

// MirrorGlyph returns the ASCII glyph for a mirror orientation.
func MirrorGlyph(orientation int) rune {
	switch normalizeOrientation(orientation) % 4 {
	case 0:
		return '-'
	case 1:
		return '/'
	case 2:
		return '|'
	default:
		return '\\'
	}
}

func (m *Mirror) intersect(origin, dir Vec2) (float64, Vec2, bool) {
	u := m.Axis()
	denom := dir.Cross(u)
	if math.Abs(denom) < hitEpsilon {
		return 0, Vec2{}, false // edge-on
	}
	w := m.cell.Center().Sub(origin)
	t := w.Cross(u) / denom
	s := w.Cross(dir) / denom
	if t <= hitEpsilon || math.Abs(s) > mirrorHalfLen+hitEpsilon {
		return 0, Vec2{}, false
	}
	n := m.Normal()
	if dir.Dot(n) > 0 {
		n = n.Scale(-1)
	}
	return t, n, true
}

func normalizeOrientation(o int) int {
	o %= MirrorSteps
	if o < 0 {
		o += MirrorSteps
	}
	return o
}

// Emitter is a fixed laser source that starts a beam every tick.
type Emitter struct {
	ID    string
	cell  Cell
	Dir   Vec2
	Color Color
}

// NewEmitter creates an emitter. The direction is normalized.
func NewEmitter(id string, c Cell, dir Vec2, color Color) *Emitter {
	return &Emitter{ID: id, cell: c, Dir: dir.Snap(), Color: color}
}

func (e *Emitter) Kind() Kind { return KindEmitter }
func (e *Emitter) Cell() Cell { return e.cell }

func (e *Emitter) intersect(origin, dir Vec2) (float64, Vec2, bool) {
	return intersectBox(e.cell.Center(), interactiveHalf, origin, dir, false)
}

// Blocker is a solid obstacle that stops beams and rejects placement.
type Blocker struct {
	cell Cell
}

// NewBlocker creates a blocker at the given cell.
func NewBlocker(c Cell) *Blocker {
	return &Blocker{cell: c}
}

func (b *Blocker) Kind() Kind { return KindBlocker }
func (b *Blocker) Cell() Cell { return b.cell }

func (b *Blocker) intersect(origin, dir Vec2) (float64, Vec2, bool) {
	return intersectBox(b.cell.Center(), solidHalf, origin, dir, true)
}

// wall is a drawn tile; it is kept in a separate index on the board.
type wall struct {
	cell Cell
}

func (w wall) Kind() Kind { return KindWall }
func (w wall) Cell() Cell { return w.cell }

func (w wall) intersect(origin, dir Vec2) (float64, Vec2, bool) {
	return intersectBox(w.cell.Center(), solidHalf, origin, dir, true)
}

// intersectBox intersects a ray with an axis-aligned square using the slab
// method. A ray starting on the square's boundary and pointing into it hits
// at distance zero. A ray that only touches an edge or a corner misses.
// Solid squares also stop a ray that starts inside them; interactive ones
// let it leave, so beams spawned inside their own cell never hit it.
func intersectBox(center Vec2, half float64, origin, dir Vec2, solid bool) (float64, Vec2, bool) {
	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	var normal Vec2

	axes := [2]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, center.X - half, center.X + half},
		{origin.Y, dir.Y, center.Y - half, center.Y + half},
	}
	for i, a := range axes {
		if a.d == 0 {
			if a.o <= a.lo || a.o >= a.hi {
				return 0, Vec2{}, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			if i == 0 {
				normal = Vec2{X: -math.Copysign(1, a.d)}
			} else {
				normal = Vec2{Y: -math.Copysign(1, a.d)}
			}
		}
		tExit = math.Min(tExit, t2)
	}

	if tExit <= hitEpsilon || tExit-tEnter <= hitEpsilon {
		return 0, Vec2{}, false
	}
	if tEnter < -hitEpsilon {
		if !solid {
			return 0, Vec2{}, false
		}
		return 0, dir.Scale(-1), true
	}
	return math.Max(tEnter, 0), normal, true
}
