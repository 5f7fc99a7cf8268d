package core

import "math"

// sideDotThreshold excludes the struck side from a splitter's outputs.
const sideDotThreshold = 0.9

// SplitterMode selects how a splitter colors its child beams.
type SplitterMode uint8

const (
	// SplitPrimary accepts only white and emits red, green and blue.
	SplitPrimary SplitterMode = iota
	// SplitMatch accepts any color and emits copies of it.
	SplitMatch
)

// String returns the string representation of a splitter mode.
func (m SplitterMode) String() string {
	switch m {
	case SplitPrimary:
		return "primary"
	case SplitMatch:
		return "match"
	default:
		return "unknown"
	}
}

// BeamSource identifies who emitted a beam.
type BeamSource struct {
	Emitter  string // set for emitter beams
	Splitter *Cell  // set for splitter children
}

// String returns a short description of the source.
func (s BeamSource) String() string {
	if s.Splitter != nil {
		return "splitter" + s.Splitter.String()
	}
	return "emitter:" + s.Emitter
}

// Beam is a ray to be traced this tick.
type Beam struct {
	Origin      Vec2
	Dir         Vec2
	Color       Color
	Source      BeamSource
	Reflections int
}

// Splitter spawns child beams from its non-incident sides while a qualifying
// beam keeps arriving.
type Splitter struct {
	cell     Cell
	mode     SplitterMode
	hasSplit bool
	children []Beam
	tint     Color
	incoming Dir
}

// NewSplitter creates a splitter at the given cell.
func NewSplitter(c Cell, mode SplitterMode) *Splitter {
	return &Splitter{cell: c, mode: mode}
}

// Kind returns KindSplitter or KindSplitterRGB depending on the mode.
func (s *Splitter) Kind() Kind {
	if s.mode == SplitMatch {
		return KindSplitterRGB
	}
	return KindSplitter
}

func (s *Splitter) Cell() Cell         { return s.cell }
func (s *Splitter) Mode() SplitterMode { return s.mode }

// Active reports whether the splitter currently holds a split set.
func (s *Splitter) Active() bool { return s.hasSplit }

// Tint returns the last qualifying incoming color, or ColorNone when idle.
func (s *Splitter) Tint() Color { return s.tint }

// Incoming returns the side struck by the current contact.
func (s *Splitter) Incoming() Dir { return s.incoming }

// Children returns a copy of the currently emitted child beams.
func (s *Splitter) Children() []Beam {
	out := make([]Beam, len(s.children))
	copy(out, s.children)
	return out
}

// Accepts reports whether a beam of color c triggers this splitter.
func (s *Splitter) Accepts(c Color) bool {
	switch s.mode {
	case SplitPrimary:
		return c == ColorWhite
	case SplitMatch:
		return c != ColorNone
	default:
		return false
	}
}

// OnHit activates the splitter for a qualifying beam. It returns the spawned
// children and true only on the first hit of a contact; later hits during the
// same contact are ignored.
func (s *Splitter) OnHit(hitPoint, incomingDir Vec2, color Color, spawnOffset float64) ([]Beam, bool) {
	if s.hasSplit || !s.Accepts(color) {
		return nil, false
	}

	struck := HitSide(hitPoint.Sub(s.cell.Center()), incomingDir)
	center := s.cell.Center()
	source := s.cell

	children := make([]Beam, 0, 3)
	for _, side := range Sides {
		if side.Vec().Dot(struck.Vec()) > sideDotThreshold {
			continue
		}
		c := color
		if s.mode == SplitPrimary {
			c = Primaries()[len(children)%3]
		}
		children = append(children, Beam{
			Origin: center.Add(side.Vec().Scale(spawnOffset)),
			Dir:    side.Vec(),
			Color:  c,
			Source: BeamSource{Splitter: &source},
		})
	}

	s.hasSplit = true
	s.children = children
	s.tint = color
	s.incoming = struck
	return s.Children(), true
}

// OnLostContact destroys all child beams and resets the splitter.
// It returns the beams that were torn down.
func (s *Splitter) OnLostContact() []Beam {
	destroyed := s.children
	s.children = nil
	s.hasSplit = false
	s.tint = ColorNone
	return destroyed
}

func (s *Splitter) intersect(origin, dir Vec2) (float64, Vec2, bool) {
	return intersectBox(s.cell.Center(), interactiveHalf, origin, dir, false)
}

// HitSide returns the side of a cell struck at the given local offset from
// its center. The dominant axis wins; a hit dead on the center falls back to
// the side facing the incoming beam.
func HitSide(local, incomingDir Vec2) Dir {
	if math.Abs(local.X) < hitEpsilon && math.Abs(local.Y) < hitEpsilon {
		return sideFacing(incomingDir)
	}
	if math.Abs(local.X) > math.Abs(local.Y) {
		if local.X > 0 {
			return DirRight
		}
		return DirLeft
	}
	if local.Y > 0 {
		return DirDown
	}
	return DirUp
}

// sideFacing returns the side a beam travelling along dir enters through.
func sideFacing(dir Vec2) Dir {
	best := DirUp
	bestDot := math.Inf(-1)
	for _, side := range Sides {
		if d := side.Vec().Dot(dir.Scale(-1)); d > bestDot {
			best, bestDot = side, d
		}
	}
	return best
}
