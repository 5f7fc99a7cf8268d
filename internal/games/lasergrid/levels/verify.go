package levels

import (
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

// Verification runs at a fixed step so results do not depend on the frame rate.
const (
	VerifyStep  = 100 * time.Millisecond
	VerifyTicks = 600
)

// Verify plays the level's recorded solution and reports the tick it was won.
// A level that is already won with no items placed is rejected too.
func Verify(l Level, settings core.Settings) (int, error) {
	if len(l.Solution) == 0 {
		return 0, core.ValidationError{Code: "BAD_SOLUTION", Message: "level " + l.ID + " has no recorded solution"}
	}
	if _, err := core.ValidateSolution(l.Setup, nil, settings, VerifyTicks, VerifyStep); err == nil {
		return 0, core.ValidationError{Code: "ALREADY_SOLVED", Message: "level " + l.ID + " is won without any placement"}
	}
	return core.ValidateSolution(l.Setup, l.Solution, settings, VerifyTicks, VerifyStep)
}
