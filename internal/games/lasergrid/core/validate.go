package core

import (
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// normalizeSetup fills defaults without touching the caller's slices.
func normalizeSetup(setup Setup) Setup {
	if setup.Bounds == (Bounds{}) {
		setup.Bounds = DefaultBounds()
	}

	emitters := make([]EmitterSpec, len(setup.Emitters))
	copy(emitters, setup.Emitters)
	for i := range emitters {
		if emitters[i].ID == "" {
			emitters[i].ID = fmt.Sprintf("e%d", i+1)
		}
	}
	setup.Emitters = emitters

	receivers := make([]ReceiverSpec, len(setup.Receivers))
	copy(receivers, setup.Receivers)
	for i := range receivers {
		if receivers[i].ID == "" {
			receivers[i].ID = fmt.Sprintf("r%d", i+1)
		}
	}
	setup.Receivers = receivers
	return setup
}

// validateLayout checks that a setup can be built at all.
func validateLayout(setup Setup) error {
	if !setup.Bounds.Valid() {
		return ValidationError{
			Code:    "BAD_BOUNDS",
			Message: fmt.Sprintf("bounds %+v enclose no cells", setup.Bounds),
		}
	}

	cells := mapset.New[Cell]()
	claim := func(c Cell, what string) error {
		if cells.Has(c) {
			return ValidationError{
				Code:    "DUPLICATE_CELL",
				Message: fmt.Sprintf("%s at %s overlaps another entity", what, c),
			}
		}
		cells.Put(c)
		return nil
	}

	ids := mapset.New[string]()
	for _, e := range setup.Emitters {
		if ids.Has(e.ID) {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("emitter id %q used twice", e.ID)}
		}
		ids.Put(e.ID)
		if e.Dir.Len() == 0 {
			return ValidationError{Code: "BAD_DIRECTION", Message: fmt.Sprintf("emitter %s has no direction", e.ID)}
		}
		if e.Color == ColorNone {
			return ValidationError{Code: "BAD_EMITTER_COLOR", Message: fmt.Sprintf("emitter %s has no color", e.ID)}
		}
		if err := claim(e.Cell, "emitter "+e.ID); err != nil {
			return err
		}
	}

	ids = mapset.New[string]()
	for _, r := range setup.Receivers {
		if ids.Has(r.ID) {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("receiver id %q used twice", r.ID)}
		}
		ids.Put(r.ID)
		if err := validateReceiverColors(r); err != nil {
			return err
		}
		if err := claim(r.Cell, "receiver "+r.ID); err != nil {
			return err
		}
	}

	for _, m := range setup.Mirrors {
		if err := claim(m.Cell, "mirror"); err != nil {
			return err
		}
	}
	for _, sp := range setup.Splitters {
		if err := claim(sp.Cell, "splitter"); err != nil {
			return err
		}
	}
	for _, c := range setup.Blockers {
		if err := claim(c, "blocker"); err != nil {
			return err
		}
	}
	for _, c := range setup.Walls {
		if err := claim(c, "wall"); err != nil {
			return err
		}
	}
	return nil
}

func validateReceiverColors(r ReceiverSpec) error {
	set := NewColorSet()
	for _, c := range r.Colors {
		if c == ColorNone {
			return ValidationError{
				Code:    "BAD_RECEIVER_COLORS",
				Message: fmt.Sprintf("receiver %s has an unset color", r.ID),
			}
		}
		set.Put(c)
	}
	if set.Size() < 1 || set.Size() > 2 || set.Size() != len(r.Colors) {
		return ValidationError{
			Code:    "BAD_RECEIVER_COLORS",
			Message: fmt.Sprintf("receiver %s needs one or two distinct colors, got %d", r.ID, len(r.Colors)),
		}
	}
	return nil
}

// Validate performs full validation of a level setup.
// Checks:
//   - At least one emitter and one receiver
//   - Receiver colors, emitter directions, unique cells and IDs
func Validate(setup Setup) error {
	setup = normalizeSetup(setup)
	if len(setup.Emitters) == 0 {
		return ValidationError{Code: "NO_EMITTERS", Message: "level has no emitters"}
	}
	if len(setup.Receivers) == 0 {
		return ValidationError{Code: "NO_RECEIVERS", Message: "level has no receivers"}
	}
	return validateLayout(setup)
}

// ValidateSolution applies the placements to a fresh simulation and runs it
// with a fixed dt until it wins or maxTicks pass.
func ValidateSolution(setup Setup, solution []Placement, settings Settings, maxTicks int, dt time.Duration) (int, error) {
	if err := Validate(setup); err != nil {
		return 0, err
	}
	sim, err := NewSim(setup, WithSettings(settings))
	if err != nil {
		return 0, err
	}
	for i, p := range solution {
		if err := sim.Apply(p); err != nil {
			return 0, ValidationError{
				Code:    "BAD_SOLUTION",
				Message: fmt.Sprintf("step %d (%s): %v", i+1, p, err),
			}
		}
	}

	ticks, won := sim.RunUntilWon(maxTicks, dt)
	if !won {
		return ticks, ValidationError{
			Code:    "NOT_SOLVABLE",
			Message: fmt.Sprintf("not won after %d ticks, %d of %d receivers active", ticks, sim.ActivatedCount(), len(sim.Receivers())),
		}
	}
	return ticks, nil
}
