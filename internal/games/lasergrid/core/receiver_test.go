package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

func feed(r *core.Receiver, dt time.Duration, colors ...core.Color) core.Transition {
	r.BeginTick()
	for _, c := range colors {
		r.Accumulate(c)
	}
	return r.Evaluate(dt)
}

func TestReceiverExactMatch(t *testing.T) {
	red, green, blue := core.ColorRed, core.ColorGreen, core.ColorBlue

	t.Run("activates after hit time", func(t *testing.T) {
		r := core.NewReceiver("r", core.C(0, 0), []core.Color{red, blue}, 3*time.Second)
		for tick := 1; tick <= 2; tick++ {
			if tr := feed(r, time.Second, red, blue); tr != core.TransitionNone {
				t.Fatalf("tick %d: unexpected transition %v", tick, tr)
			}
			if r.Status() != core.StatusCharging {
				t.Errorf("tick %d: status = %v, want charging", tick, r.Status())
			}
		}
		if tr := feed(r, time.Second, red, blue); tr != core.TransitionActivated {
			t.Fatalf("tick 3: transition = %v, want activated", tr)
		}
		if !r.Activated() || r.Status() != core.StatusActive {
			t.Error("receiver should be active")
		}
		if tr := feed(r, time.Second, blue, red, red); tr != core.TransitionNone {
			t.Errorf("staying active must not re-trigger, got %v", tr)
		}
	})

	t.Run("extra color never activates", func(t *testing.T) {
		r := core.NewReceiver("r", core.C(0, 0), []core.Color{red, blue}, 3*time.Second)
		for tick := 1; tick <= 10; tick++ {
			if tr := feed(r, time.Second, red, blue, green); tr != core.TransitionNone {
				t.Fatalf("tick %d: transition %v", tick, tr)
			}
		}
		if r.Activated() {
			t.Error("superset must not activate")
		}
		if r.Status() != core.StatusHazard {
			t.Errorf("status = %v, want hazard", r.Status())
		}
	})

	t.Run("missing color resets timer", func(t *testing.T) {
		r := core.NewReceiver("r", core.C(0, 0), []core.Color{red, blue}, 3*time.Second)
		feed(r, time.Second, red, blue)
		feed(r, time.Second, red, blue)
		feed(r, time.Second, red)
		if r.Status() != core.StatusPartial {
			t.Errorf("status = %v, want partial", r.Status())
		}
		if r.Progress() != 0 {
			t.Errorf("progress = %v, want 0 after reset", r.Progress())
		}
		feed(r, time.Second, red, blue)
		if tr := feed(r, time.Second, red, blue); tr != core.TransitionNone {
			t.Fatalf("activated too early after reset: %v", tr)
		}
		if tr := feed(r, time.Second, red, blue); tr != core.TransitionActivated {
			t.Errorf("transition = %v, want activated", tr)
		}
	})

	t.Run("deactivates immediately", func(t *testing.T) {
		r := core.NewReceiver("r", core.C(0, 0), []core.Color{core.ColorWhite}, time.Second)
		if tr := feed(r, time.Second, core.ColorWhite); tr != core.TransitionActivated {
			t.Fatalf("transition = %v, want activated", tr)
		}
		if tr := feed(r, time.Second); tr != core.TransitionDeactivated {
			t.Errorf("transition = %v, want deactivated", tr)
		}
		if r.Status() != core.StatusIdle || r.Progress() != 0 {
			t.Errorf("status %v progress %v after losing the beam", r.Status(), r.Progress())
		}
	})
}

func TestReceiverDuplicateBeamsCountOnce(t *testing.T) {
	r := core.NewReceiver("r", core.C(0, 0), []core.Color{core.ColorRed}, time.Second)
	feed(r, 0, core.ColorRed, core.ColorRed, core.ColorRed)

	if got := r.Seen(); len(got) != 1 {
		t.Errorf("seen = %v, want one color", got)
	}
	if !r.Matches() {
		t.Error("three red beams should still match {red}")
	}
}
