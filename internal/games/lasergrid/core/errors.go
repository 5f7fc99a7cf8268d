package core

import (
	"errors"
	"fmt"
)

// Placement failures. All are recoverable.
var (
	ErrOutOfBounds        = errors.New("cell is outside the grid")
	ErrCellOccupied       = errors.New("cell already holds an item")
	ErrCellBlocked        = errors.New("cell is blocked")
	ErrInventoryExhausted = errors.New("no items of this kind left")
	ErrNotPlaceable       = errors.New("kind cannot be placed")
	ErrNothingToRemove    = errors.New("selected item was not placed by the player")
	ErrNotRotatable       = errors.New("item cannot be rotated")
)

// PlacementError records a failed placement, removal or rotation.
type PlacementError struct {
	Op   string // "place", "remove" or "rotate"
	Cell Cell
	Kind Kind
	Err  error
}

func (e *PlacementError) Error() string {
	if e.Kind == KindNone {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Cell, e.Err)
	}
	return fmt.Sprintf("%s %s at %s: %v", e.Op, e.Kind, e.Cell, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// ReasonCode maps a placement error to a stable code string.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOutOfBounds):
		return "OUT_OF_BOUNDS"
	case errors.Is(err, ErrCellOccupied):
		return "CELL_OCCUPIED"
	case errors.Is(err, ErrCellBlocked):
		return "CELL_BLOCKED"
	case errors.Is(err, ErrInventoryExhausted):
		return "INVENTORY_EXHAUSTED"
	case errors.Is(err, ErrNotPlaceable):
		return "NOT_PLACEABLE"
	case errors.Is(err, ErrNothingToRemove):
		return "NOTHING_TO_REMOVE"
	case errors.Is(err, ErrNotRotatable):
		return "NOT_ROTATABLE"
	default:
		return "UNKNOWN"
	}
}

// ValidationError contains details about a level validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
