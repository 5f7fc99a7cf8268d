package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Placement is a single player move, as recorded in level solutions.
type Placement struct {
	Cell        Cell
	Kind        Kind
	Orientation int // mirrors only
}

// String returns the placement in "kind@x,y[:orientation]" form.
func (p Placement) String() string {
	s := fmt.Sprintf("%s@%d,%d", p.Kind, p.Cell.X, p.Cell.Y)
	if p.Kind == KindMirror {
		s += ":" + strconv.Itoa(p.Orientation)
	}
	return s
}

// ParsePlacement parses "kind@x,y" or "mirror@x,y:orientation".
func ParsePlacement(s string) (Placement, error) {
	kindPart, rest, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		return Placement{}, fmt.Errorf("placement %q: expected kind@x,y", s)
	}
	kind, ok := ParseKind(kindPart)
	if !ok {
		return Placement{}, fmt.Errorf("placement %q: unknown kind %q", s, kindPart)
	}

	p := Placement{Kind: kind, Orientation: DefaultMirrorOrientation}
	coords, orient, hasOrient := strings.Cut(rest, ":")
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return Placement{}, fmt.Errorf("placement %q: expected x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Placement{}, fmt.Errorf("placement %q: bad x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Placement{}, fmt.Errorf("placement %q: bad y: %w", s, err)
	}
	p.Cell = C(x, y)

	if hasOrient {
		if kind != KindMirror {
			return Placement{}, fmt.Errorf("placement %q: only mirrors have an orientation", s)
		}
		o, err := strconv.Atoi(strings.TrimSpace(orient))
		if err != nil {
			return Placement{}, fmt.Errorf("placement %q: bad orientation: %w", s, err)
		}
		p.Orientation = normalizeOrientation(o)
	}
	return p, nil
}

// Place puts an item of kind k on cell c, taking it from the inventory.
// Mirrors start at DefaultMirrorOrientation.
func (s *Sim) Place(c Cell, k Kind) error {
	return s.PlaceOriented(c, k, DefaultMirrorOrientation)
}

// PlaceOriented is Place with an explicit mirror orientation.
func (s *Sim) PlaceOriented(c Cell, k Kind, orientation int) error {
	if err := s.checkPlace(c, k); err != nil {
		return s.reject("place", c, k, err)
	}

	s.inventory.take(k)
	var it Item
	switch k {
	case KindMirror:
		it = NewMirror(c, orientation)
	case KindSplitter:
		it = NewSplitter(c, SplitPrimary)
	case KindSplitterRGB:
		it = NewSplitter(c, SplitMatch)
	}
	s.board.put(it, true)

	s.logger.Debug("item placed", "kind", k, "cell", c)
	s.emit(ItemPlaced{Cell: c, Kind: k})
	s.emitInventory()
	return nil
}

// Apply performs a recorded placement.
func (s *Sim) Apply(p Placement) error {
	return s.PlaceOriented(p.Cell, p.Kind, p.Orientation)
}

// TryPlace is Place reporting only success.
func (s *Sim) TryPlace(c Cell, k Kind) bool {
	return s.Place(c, k) == nil
}

// CanPlace reports whether Place would succeed, without side effects.
func (s *Sim) CanPlace(c Cell, k Kind) error {
	return s.checkPlace(c, k)
}

func (s *Sim) checkPlace(c Cell, k Kind) error {
	if !k.Placeable() {
		return ErrNotPlaceable
	}
	if !s.board.Bounds().Contains(c) {
		return ErrOutOfBounds
	}
	switch s.board.KindAt(c) {
	case KindNone:
	case KindBlocker, KindWall:
		return ErrCellBlocked
	default:
		return ErrCellOccupied
	}
	if s.inventory.Count(k) <= 0 {
		return ErrInventoryExhausted
	}
	return nil
}

// Remove takes a player-placed item off cell c and returns it to the
// inventory. Level geometry cannot be removed.
func (s *Sim) Remove(c Cell) error {
	if !s.board.IsPlaced(c) {
		kind := s.board.KindAt(c)
		s.logger.Warn("selected item was not placed by the player", "cell", c, "kind", kind)
		return s.reject("remove", c, kind, ErrNothingToRemove)
	}

	it, _ := s.board.remove(c)
	s.inventory.give(it.Kind())
	if sp, ok := it.(*Splitter); ok && sp.Active() {
		s.retract(sp)
	}

	s.logger.Debug("item removed", "kind", it.Kind(), "cell", c)
	s.emit(ItemRemoved{Cell: c, Kind: it.Kind()})
	s.emitInventory()
	return nil
}

// TryRemove is Remove reporting only success.
func (s *Sim) TryRemove(c Cell) bool {
	return s.Remove(c) == nil
}

// Rotate turns the mirror on cell c by Settings.RotateSteps.
func (s *Sim) Rotate(c Cell) error {
	it, ok := s.board.At(c)
	if !ok {
		return s.reject("rotate", c, KindNone, ErrNotRotatable)
	}
	m, isMirror := it.(*Mirror)
	if !isMirror || m.Fixed {
		return s.reject("rotate", c, it.Kind(), ErrNotRotatable)
	}

	from := m.Orientation
	to := m.Rotate(s.settings.RotateSteps)
	s.logger.Debug("mirror rotated", "cell", c, "from", from, "to", to)
	s.emit(MirrorRotated{Cell: c, From: from, Orientation: to})
	return nil
}

func (s *Sim) reject(op string, c Cell, k Kind, err error) error {
	s.logger.Debug("placement rejected", "op", op, "cell", c, "reason", ReasonCode(err))
	s.emit(InvalidPlacement{
		Cell:     c,
		Kind:     k,
		Reason:   err,
		Feedback: errors.Is(err, ErrCellBlocked),
	})
	return &PlacementError{Op: op, Cell: c, Kind: k, Err: err}
}

func (s *Sim) emitInventory() {
	s.emit(InventoryChanged{
		Placed:       s.board.PlacedCount(),
		Mirrors:      s.inventory.Mirrors,
		Splitters:    s.inventory.Splitters,
		SplittersRGB: s.inventory.SplittersRGB,
	})
}
