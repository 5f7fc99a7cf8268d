package core_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

// recombineSetup has a {white} and a {red, green} receiver fed by one white
// emitter through a match splitter and a plain splitter.
func recombineSetup() core.Setup {
	return core.Setup{
		Bounds:   core.DefaultBounds(),
		Emitters: []core.EmitterSpec{emitterRight(-7, 2, core.ColorWhite)},
		Receivers: []core.ReceiverSpec{
			{ID: "white", Cell: core.C(-3, -2), Colors: []core.Color{core.ColorWhite}},
			{ID: "yellow", Cell: core.C(5, -1), Colors: []core.Color{core.ColorRed, core.ColorGreen}},
		},
		Inventory: core.Inventory{Mirrors: 2, Splitters: 1, SplittersRGB: 1},
	}
}

func solveRecombine(t *testing.T, sim *core.Sim) {
	t.Helper()
	moves := []core.Placement{
		{Cell: core.C(-3, 2), Kind: core.KindSplitterRGB},
		{Cell: core.C(1, 2), Kind: core.KindSplitter},
		{Cell: core.C(1, -1), Kind: core.KindMirror, Orientation: 1},
		{Cell: core.C(5, 2), Kind: core.KindMirror, Orientation: 1},
	}
	for _, m := range moves {
		if err := sim.Apply(m); err != nil {
			t.Fatalf("Apply(%v) failed: %v", m, err)
		}
	}
}

func TestWinFiresOnce(t *testing.T) {
	sim := newSim(t, recombineSetup())
	solveRecombine(t, sim)

	wins := 0
	activated := map[string]int{}
	defer sim.Hub().Subscribe(func(e core.Event) {
		switch ev := e.(type) {
		case core.Won:
			wins++
		case core.ReceiverActivated:
			activated[ev.ID]++
		}
	})()

	var wonAt int
	for i := 0; i < 10; i++ {
		res := sim.Step(time.Second)
		if res.Won && wonAt == 0 {
			wonAt = res.Tick
		}
	}

	if wins != 1 {
		t.Errorf("Won fired %d times, want 1", wins)
	}
	if wonAt != 3 {
		t.Errorf("won at tick %d, want 3", wonAt)
	}
	if activated["white"] != 1 || activated["yellow"] != 1 {
		t.Errorf("activations = %v", activated)
	}
	if sim.ActivatedCount() != 2 {
		t.Errorf("activated count = %d, want 2", sim.ActivatedCount())
	}

	yellow, _ := sim.Receiver("yellow")
	if got := core.ColorsString(core.NewColorSet(yellow.Seen()...)); got != "red+green" {
		t.Errorf("yellow receiver saw %s", got)
	}
}

func TestWinLatchSurvivesDeactivation(t *testing.T) {
	sim := newSim(t, recombineSetup())
	solveRecombine(t, sim)
	sim.RunUntilWon(10, time.Second)

	if err := sim.Remove(core.C(5, 2)); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	res := sim.Step(time.Second)

	deactivated := false
	for _, e := range res.Events {
		if ev, ok := e.(core.ReceiverDeactivated); ok && ev.ID == "yellow" {
			deactivated = true
		}
		if _, ok := e.(core.Won); ok {
			t.Error("Won must not fire again")
		}
	}
	if !deactivated {
		t.Error("expected yellow receiver to deactivate")
	}
	if !res.Won || sim.ActivatedCount() != 1 {
		t.Errorf("won=%v activated=%d, want latched win and 1 active", res.Won, sim.ActivatedCount())
	}
}

func TestRemovingMirrorRetractsDownstreamSplitter(t *testing.T) {
	sim := newSim(t, core.Setup{
		Bounds:    wideBounds,
		Emitters:  []core.EmitterSpec{emitterRight(0, 0, core.ColorWhite)},
		Splitters: []core.SplitterSpec{{Cell: core.C(3, -3), Mode: core.SplitPrimary}},
		Inventory: core.Inventory{Mirrors: 1},
	})
	if err := sim.Place(core.C(3, 0), core.KindMirror); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	res := sim.Step(time.Second)
	splitters := sim.Splitters()
	if len(splitters) != 1 || !splitters[0].Active() {
		t.Fatal("splitter should be active while fed by the mirror")
	}
	if splitters[0].Incoming() != core.DirDown {
		t.Errorf("struck side = %v, want down", splitters[0].Incoming())
	}
	if len(res.Traces) != 4 {
		t.Errorf("traces = %d, want emitter + 3 children", len(res.Traces))
	}

	if err := sim.Remove(core.C(3, 0)); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	res = sim.Step(time.Second)

	var retracted []core.SplitterRetracted
	for _, e := range res.Events {
		if ev, ok := e.(core.SplitterRetracted); ok {
			retracted = append(retracted, ev)
		}
	}
	if len(retracted) != 1 || retracted[0].Cell != core.C(3, -3) || retracted[0].Destroyed != 3 {
		t.Errorf("retractions = %+v, want one with 3 destroyed", retracted)
	}
	if splitters[0].Active() || len(splitters[0].Children()) != 0 {
		t.Error("splitter should be idle without children")
	}
	if len(res.Traces) != 1 {
		t.Errorf("traces = %d, want only the emitter beam", len(res.Traces))
	}
}

func TestRemovingSplitterTearsDownImmediately(t *testing.T) {
	sim := newSim(t, core.Setup{
		Bounds:    wideBounds,
		Emitters:  []core.EmitterSpec{emitterRight(0, 0, core.ColorWhite)},
		Inventory: core.Inventory{Splitters: 1},
	})
	sim.TryPlace(core.C(4, 0), core.KindSplitter)
	sim.Step(time.Second)

	var retracted int
	defer sim.Hub().Subscribe(func(e core.Event) {
		if _, ok := e.(core.SplitterRetracted); ok {
			retracted++
		}
	})()

	if !sim.TryRemove(core.C(4, 0)) {
		t.Fatal("TryRemove failed")
	}
	if retracted != 1 {
		t.Errorf("retractions on removal = %d, want 1", retracted)
	}
}

func TestLevelWithoutReceiversNeverWins(t *testing.T) {
	sim := newSim(t, core.Setup{
		Bounds:   wideBounds,
		Emitters: []core.EmitterSpec{emitterRight(0, 0, core.ColorWhite)},
	})
	if _, won := sim.RunUntilWon(20, time.Second); won {
		t.Error("a level with no receivers must not be won")
	}
}

func loopSetup() core.Setup {
	// A's down child reaches B from below and B's down child reaches A from
	// below through the two mirrors, so each splitter feeds the other.
	return core.Setup{
		Bounds:   wideBounds,
		Emitters: []core.EmitterSpec{emitterRight(0, 0, core.ColorRed)},
		Splitters: []core.SplitterSpec{
			{Cell: core.C(3, 0), Mode: core.SplitMatch},
			{Cell: core.C(6, 0), Mode: core.SplitMatch},
		},
		Mirrors: []core.MirrorSpec{
			{Cell: core.C(3, 3), Orientation: 3},
			{Cell: core.C(6, 3), Orientation: 1},
		},
		Inventory: core.Inventory{Mirrors: 1},
	}
}

func TestSplitterLoopStaysBounded(t *testing.T) {
	sim := newSim(t, loopSetup())

	res := sim.Step(time.Second)
	if len(res.Traces) != 7 {
		t.Errorf("traced %d beams, want emitter + 2x3 children", len(res.Traces))
	}
	for _, sp := range sim.Splitters() {
		if !sp.Active() {
			t.Errorf("splitter %v should be active", sp.Cell())
		}
	}
}

func TestSplitterLoopNeedsEmitter(t *testing.T) {
	sim := newSim(t, loopSetup())
	sim.Step(time.Second)

	// A vertical mirror throws the emitter beam back into the emitter.
	if err := sim.PlaceOriented(core.C(1, 0), core.KindMirror, 2); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	res := sim.Step(time.Second)

	if len(res.Traces) != 1 || res.Traces[0].Terminal != core.TerminalObstacle {
		t.Errorf("expected a single blocked emitter beam, got %d traces", len(res.Traces))
	}
	for _, sp := range sim.Splitters() {
		if sp.Active() {
			t.Errorf("splitter %v kept itself alive", sp.Cell())
		}
	}
}

func TestResetRestoresLevel(t *testing.T) {
	sim := newSim(t, recombineSetup())
	solveRecombine(t, sim)
	sim.RunUntilWon(10, time.Second)

	sim.Reset()
	if sim.Won() || sim.Tick() != 0 || sim.ActivatedCount() != 0 {
		t.Error("counters not reset")
	}
	if sim.Board().PlacedCount() != 0 {
		t.Errorf("placed = %d, want 0", sim.Board().PlacedCount())
	}
	if sim.Inventory() != recombineSetup().Inventory {
		t.Errorf("inventory = %v, want %v", sim.Inventory(), recombineSetup().Inventory)
	}
}

func TestRenderASCII(t *testing.T) {
	sim := newSim(t, recombineSetup())
	solveRecombine(t, sim)
	sim.Step(time.Second)

	out := core.RenderASCII(sim)
	for _, want := range []string{"Tick: 1", "X", "S", "/", ">", "yellow (5,-1) need=red+green seen=red+green charging"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header + 10 rows + 2 receivers
	if len(lines) != 13 {
		t.Errorf("render has %d lines, want 13:\n%s", len(lines), out)
	}
}

func TestNewSimRejectsBadLayout(t *testing.T) {
	tests := []struct {
		name  string
		setup core.Setup
		code  string
	}{
		{
			name: "overlap",
			setup: core.Setup{
				Emitters:  []core.EmitterSpec{emitterRight(0, 0, core.ColorWhite)},
				Receivers: []core.ReceiverSpec{{Cell: core.C(0, 0), Colors: []core.Color{core.ColorRed}}},
			},
			code: "DUPLICATE_CELL",
		},
		{
			name: "three colors",
			setup: core.Setup{
				Receivers: []core.ReceiverSpec{{Cell: core.C(1, 1), Colors: core.Primaries()}},
			},
			code: "BAD_RECEIVER_COLORS",
		},
		{
			name: "no direction",
			setup: core.Setup{
				Emitters: []core.EmitterSpec{{Cell: core.C(1, 1), Color: core.ColorWhite}},
			},
			code: "BAD_DIRECTION",
		},
		{
			name: "duplicate id",
			setup: core.Setup{
				Receivers: []core.ReceiverSpec{
					{ID: "a", Cell: core.C(1, 1), Colors: []core.Color{core.ColorRed}},
					{ID: "a", Cell: core.C(2, 1), Colors: []core.Color{core.ColorRed}},
				},
			},
			code: "DUPLICATE_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.NewSim(tt.setup)
			var ve core.ValidationError
			if !errors.As(err, &ve) || ve.Code != tt.code {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateSolution(t *testing.T) {
	moves := []core.Placement{
		{Cell: core.C(-3, 2), Kind: core.KindSplitterRGB},
		{Cell: core.C(1, 2), Kind: core.KindSplitter},
		{Cell: core.C(1, -1), Kind: core.KindMirror, Orientation: 1},
		{Cell: core.C(5, 2), Kind: core.KindMirror, Orientation: 1},
	}
	settings := core.DefaultSettings()

	if _, err := core.ValidateSolution(recombineSetup(), moves, settings, 10, time.Second); err != nil {
		t.Errorf("solution rejected: %v", err)
	}

	_, err := core.ValidateSolution(recombineSetup(), moves[:3], settings, 10, time.Second)
	var ve core.ValidationError
	if !errors.As(err, &ve) || ve.Code != "NOT_SOLVABLE" {
		t.Errorf("partial solution err = %v, want NOT_SOLVABLE", err)
	}

	bad := append([]core.Placement{{Cell: core.C(99, 0), Kind: core.KindMirror}}, moves...)
	_, err = core.ValidateSolution(recombineSetup(), bad, settings, 10, time.Second)
	if !errors.As(err, &ve) || ve.Code != "BAD_SOLUTION" {
		t.Errorf("out-of-bounds move err = %v, want BAD_SOLUTION", err)
	}

	if err := core.Validate(core.Setup{}); !errors.As(err, &ve) || ve.Code != "NO_EMITTERS" {
		t.Errorf("empty setup err = %v, want NO_EMITTERS", err)
	}
}
