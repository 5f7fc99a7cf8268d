package core_test

import (
	"testing"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

func sideOf(v core.Vec2) core.Dir {
	for _, d := range core.Sides {
		if d.Vec().ApproxEqual(v, 1e-9) {
			return d
		}
	}
	return core.Dir(255)
}

func TestSplitterRejectsNonWhite(t *testing.T) {
	sp := core.NewSplitter(core.C(0, 0), core.SplitPrimary)

	for _, c := range []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue} {
		children, ok := sp.OnHit(core.V(0.1, 0.5), core.V(1, 0), c, 0.5)
		if ok || len(children) != 0 {
			t.Errorf("%s: expected no children, got %d", c, len(children))
		}
		if sp.Active() {
			t.Errorf("%s: splitter should stay inactive", c)
		}
	}
}

func TestSplitterStruckOnDownSide(t *testing.T) {
	sp := core.NewSplitter(core.C(0, 0), core.SplitPrimary)

	// A beam travelling up lands on the bottom face.
	children, ok := sp.OnHit(core.V(0.5, 0.9), core.V(0, -1), core.ColorWhite, 0.5)
	if !ok {
		t.Fatal("expected the splitter to activate")
	}
	if sp.Incoming() != core.DirDown {
		t.Errorf("struck side = %v, want down", sp.Incoming())
	}
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}

	sides := map[core.Dir]core.Color{}
	colors := map[core.Color]bool{}
	for _, b := range children {
		sides[sideOf(b.Dir)] = b.Color
		colors[b.Color] = true
		if b.Reflections != 0 {
			t.Errorf("child starts with %d reflections", b.Reflections)
		}
		if b.Source.Splitter == nil || *b.Source.Splitter != core.C(0, 0) {
			t.Errorf("child source = %v, want splitter(0,0)", b.Source)
		}
	}

	for _, want := range []core.Dir{core.DirUp, core.DirLeft, core.DirRight} {
		if _, ok := sides[want]; !ok {
			t.Errorf("missing child on side %v", want)
		}
	}
	if _, ok := sides[core.DirDown]; ok {
		t.Error("struck side must not emit")
	}
	for _, c := range core.Primaries() {
		if !colors[c] {
			t.Errorf("missing primary %v among children", c)
		}
	}

	up := children[0]
	if !up.Origin.ApproxEqual(core.V(0.5, 0), 1e-9) {
		t.Errorf("up child origin = %v, want (0.5,0)", up.Origin)
	}
}

func TestSplitterIdempotentWithinContact(t *testing.T) {
	sp := core.NewSplitter(core.C(2, 2), core.SplitPrimary)

	if _, ok := sp.OnHit(core.V(2.1, 2.5), core.V(1, 0), core.ColorWhite, 0.5); !ok {
		t.Fatal("first hit should split")
	}
	first := sp.Children()

	if children, ok := sp.OnHit(core.V(2.5, 2.1), core.V(0, 1), core.ColorWhite, 0.5); ok || children != nil {
		t.Error("second hit in the same contact should be ignored")
	}
	if got := sp.Children(); len(got) != len(first) || got[0] != first[0] {
		t.Errorf("children changed during contact: %v -> %v", first, got)
	}

	destroyed := sp.OnLostContact()
	if len(destroyed) != 3 {
		t.Errorf("destroyed %d children, want 3", len(destroyed))
	}
	if sp.Active() || len(sp.Children()) != 0 || sp.Tint() != core.ColorNone {
		t.Error("splitter not reset after losing contact")
	}

	if _, ok := sp.OnHit(core.V(2.5, 2.1), core.V(0, 1), core.ColorWhite, 0.5); !ok {
		t.Error("a new contact should split again")
	}
}

func TestMatchSplitterClonesColor(t *testing.T) {
	sp := core.NewSplitter(core.C(0, 0), core.SplitMatch)
	if sp.Kind() != core.KindSplitterRGB {
		t.Errorf("kind = %v, want splitter_rgb", sp.Kind())
	}

	children, ok := sp.OnHit(core.V(0.9, 0.5), core.V(-1, 0), core.ColorGreen, 0.5)
	if !ok {
		t.Fatal("match splitter should accept green")
	}
	if sp.Tint() != core.ColorGreen {
		t.Errorf("tint = %v, want green", sp.Tint())
	}
	for _, b := range children {
		if b.Color != core.ColorGreen {
			t.Errorf("child color = %v, want green", b.Color)
		}
		if sideOf(b.Dir) == core.DirRight {
			t.Error("struck right side must not emit")
		}
	}
}

func TestHitSide(t *testing.T) {
	tests := []struct {
		name     string
		local    core.Vec2
		incoming core.Vec2
		want     core.Dir
	}{
		{"left face", core.V(-0.4, 0.1), core.V(1, 0), core.DirLeft},
		{"top face", core.V(0.2, -0.4), core.V(0, 1), core.DirUp},
		{"bottom face", core.V(0, 0.4), core.V(0, -1), core.DirDown},
		{"right face", core.V(0.4, 0), core.V(-1, 0), core.DirRight},
		{"center falls back to incoming", core.V(0, 0), core.V(0, 1), core.DirUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.HitSide(tt.local, tt.incoming); got != tt.want {
				t.Errorf("HitSide = %v, want %v", got, tt.want)
			}
		})
	}
}
