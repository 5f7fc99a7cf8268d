package core

// Terminal describes how a traced beam ended.
type Terminal uint8

const (
	TerminalMiss            Terminal = iota // ran out of distance
	TerminalReceiver                        // landed on a receiver
	TerminalSplitter                        // landed on a splitter that accepts its color
	TerminalObstacle                        // stopped by anything else
	TerminalReflectionLimit                 // hit a mirror with no reflections left
)

// String returns the string representation of a terminal.
func (t Terminal) String() string {
	switch t {
	case TerminalMiss:
		return "miss"
	case TerminalReceiver:
		return "receiver"
	case TerminalSplitter:
		return "splitter"
	case TerminalObstacle:
		return "obstacle"
	case TerminalReflectionLimit:
		return "reflection_limit"
	default:
		return "unknown"
	}
}

// Trace is the path of one beam for one tick.
type Trace struct {
	Color       Color
	Source      BeamSource
	Points      []Vec2 // origin, every reflection point, end point
	Terminal    Terminal
	Hit         Item // item at the end of the path, nil on a miss
	HitPoint    Vec2
	Dir         Vec2 // direction of the final segment
	Reflections int
}

// End returns the last point of the path.
func (t Trace) End() Vec2 {
	if len(t.Points) == 0 {
		return Vec2{}
	}
	return t.Points[len(t.Points)-1]
}

// Length returns the total length of the path.
func (t Trace) Length() float64 {
	total := 0.0
	for i := 1; i < len(t.Points); i++ {
		total += t.Points[i].Sub(t.Points[i-1]).Len()
	}
	return total
}

// Trace casts a beam through the board, reflecting off mirrors until it
// lands on something else, misses, or runs out of reflections.
// It has no side effects; the simulation acts on the terminal.
func (b *Board) Trace(beam Beam, s Settings) Trace {
	origin := beam.Origin
	dir := beam.Dir.Snap()
	refl := beam.Reflections

	tr := Trace{
		Color:       beam.Color,
		Source:      beam.Source,
		Points:      []Vec2{origin},
		Reflections: refl,
	}

	for {
		hit, ok := b.Raycast(origin, dir, s.MaxDistance)
		tr.Dir = dir
		if !ok {
			tr.Points = append(tr.Points, origin.Add(dir.Scale(s.MaxDistance)))
			tr.Terminal = TerminalMiss
			tr.Hit = nil
			return tr
		}

		tr.Points = append(tr.Points, hit.Point)
		tr.Hit = hit.Item
		tr.HitPoint = hit.Point

		switch it := hit.Item.(type) {
		case *Mirror:
			if refl >= s.MaxReflections {
				tr.Terminal = TerminalReflectionLimit
				return tr
			}
			dir = dir.Reflect(hit.Normal).Snap()
			origin = hit.Point.Add(dir.Scale(s.Epsilon))
			refl++
			tr.Reflections = refl
		case *Splitter:
			if it.Accepts(beam.Color) {
				tr.Terminal = TerminalSplitter
			} else {
				tr.Terminal = TerminalObstacle
			}
			return tr
		case *Receiver:
			tr.Terminal = TerminalReceiver
			return tr
		default:
			tr.Terminal = TerminalObstacle
			return tr
		}
	}
}
