package lasergrid

import (
	"strings"
	"testing"
	"time"

	platformcore "github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

func newTestGame(t *testing.T, level string) *Game {
	t.Helper()
	SetStartLevel(level)
	t.Cleanup(func() { SetStartLevel("") })

	g := New()
	g.Reset(platformcore.DefaultConfig())
	if g.loadErr != nil {
		t.Fatalf("Reset failed: %v", g.loadErr)
	}
	if lvl, _ := g.Level(); lvl.ID != level {
		t.Fatalf("started on %q, want %q", lvl.ID, level)
	}
	return g
}

func press(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func idle(g *Game, n int) {
	for range n {
		g.Step(platformcore.NewInputFrame())
	}
}

func TestGameInit(t *testing.T) {
	g := New()
	g.Reset(platformcore.DefaultConfig())

	if g.ID() != GameID {
		t.Errorf("ID = %q, want %q", g.ID(), GameID)
	}
	if g.sim == nil {
		t.Fatal("no simulation after Reset")
	}
	if g.tool != ToolMirror {
		t.Errorf("tool = %v, want Mirror", g.tool)
	}
	if !g.sim.Board().Bounds().Contains(g.cursor) {
		t.Errorf("cursor %v outside the build area", g.cursor)
	}
	if st := g.State(); st.Level != "lvl01" || st.Won || st.Ticks != 0 {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestClearReportedOnce(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.cursor = core.C(5, 2)
	g.Step(press(platformcore.ActionConfirm))

	clears := 0
	var last *platformcore.LevelClear
	for range 200 {
		res := g.Step(platformcore.NewInputFrame())
		if res.Cleared != nil {
			clears++
			last = res.Cleared
		}
	}

	if clears != 1 {
		t.Fatalf("cleared %d times, want 1", clears)
	}
	if last.LevelID != "lvl01" || last.ItemsPlaced != 1 {
		t.Errorf("unexpected clear %+v", last)
	}
	if last.Elapsed < 3*time.Second {
		t.Errorf("cleared after %v, before the hit time", last.Elapsed)
	}
	if !g.State().Won {
		t.Error("state should stay won")
	}
}

func TestNextLevelAfterWin(t *testing.T) {
	g := newTestGame(t, "lvl01")

	g.Step(press(platformcore.ActionNext))
	if lvl, _ := g.Level(); lvl.ID != "lvl01" {
		t.Fatalf("Next before the win moved to %s", lvl.ID)
	}

	g.cursor = core.C(5, 2)
	g.Step(press(platformcore.ActionConfirm))
	idle(g, 120)
	if !g.won {
		t.Fatal("level not won")
	}

	g.Step(press(platformcore.ActionNext))
	if lvl, _ := g.Level(); lvl.ID != "lvl02" {
		t.Errorf("level = %s, want lvl02", lvl.ID)
	}
	if g.won || g.ticks != 0 || g.inventory.Placed != 0 {
		t.Error("next level should start fresh")
	}
}

func TestRotationIgnoredWhileTurning(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.cursor = core.C(0, 0)
	g.Step(press(platformcore.ActionConfirm))

	orientation := func() int {
		it, ok := g.sim.Board().At(g.cursor)
		if !ok {
			t.Fatal("mirror missing")
		}
		return it.(*core.Mirror).Orientation
	}

	g.Step(press(platformcore.ActionRotate))
	if got := orientation(); got != 3 {
		t.Fatalf("orientation = %d, want 3", got)
	}

	g.Step(press(platformcore.ActionRotate))
	if got := orientation(); got != 3 {
		t.Errorf("rotation during the sweep changed orientation to %d", got)
	}

	idle(g, 12)
	g.Step(press(platformcore.ActionRotate))
	if got := orientation(); got != 5 {
		t.Errorf("orientation = %d, want 5", got)
	}
}

func TestBlockedPlacementShakesWithCooldown(t *testing.T) {
	g := newTestGame(t, "lvl04")
	g.cursor = core.C(0, 5)

	g.Step(press(platformcore.ActionConfirm))
	if g.shake == nil {
		t.Fatal("placing on a blocker should shake the board")
	}
	if g.status == "" {
		t.Error("expected a status message")
	}

	idle(g, 12)
	if g.shake != nil {
		t.Fatal("shake should be over")
	}

	g.Step(press(platformcore.ActionConfirm))
	if g.shake != nil {
		t.Error("second shake inside the cooldown")
	}

	idle(g, 30)
	g.Step(press(platformcore.ActionConfirm))
	if g.shake == nil {
		t.Error("shake should fire again after the cooldown")
	}
}

func TestOccupiedPlacementDoesNotShake(t *testing.T) {
	g := newTestGame(t, "lvl04")
	g.cursor = core.C(-2, 5)
	g.Step(press(platformcore.ActionConfirm))
	g.Step(press(platformcore.ActionConfirm))

	if g.shake != nil {
		t.Error("an occupied cell should not shake")
	}
	if g.inventory.Mirrors != 2 {
		t.Errorf("mirrors left = %d, want 2", g.inventory.Mirrors)
	}
}

func TestClickPlacesAtCell(t *testing.T) {
	g := newTestGame(t, "lvl01")
	target := core.C(5, 2)
	x, y := g.layout.screenPos(target)

	in := platformcore.NewInputFrame()
	in.SetClick(x+1, y)
	g.Step(in)

	if g.cursor != target {
		t.Errorf("cursor = %v, want %v", g.cursor, target)
	}
	if k := g.sim.Board().KindAt(target); k != core.KindMirror {
		t.Errorf("kind at %v = %v, want mirror", target, k)
	}
}

func TestDeleteToolRestoresInventory(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.Step(press(platformcore.ActionConfirm))
	if g.inventory.Mirrors != 0 {
		t.Fatalf("mirrors = %d after placing, want 0", g.inventory.Mirrors)
	}

	g.Step(press(platformcore.ActionSelectDelete, platformcore.ActionConfirm))
	if g.tool != ToolDelete {
		t.Errorf("tool = %v, want Delete", g.tool)
	}
	if g.inventory.Mirrors != 1 || g.inventory.Placed != 0 {
		t.Errorf("inventory = %+v, want the mirror back", g.inventory)
	}
}

func TestSimultaneousToolSelection(t *testing.T) {
	tests := []struct {
		name    string
		actions []platformcore.Action
		want    Tool
	}{
		{"mirror and splitter", []platformcore.Action{platformcore.ActionSelectSplitter, platformcore.ActionSelectMirror}, ToolSplitter},
		{"splitter and rgb", []platformcore.Action{platformcore.ActionSelectSplitterRGB, platformcore.ActionSelectSplitter}, ToolSplitterRGB},
		{"all four", []platformcore.Action{
			platformcore.ActionSelectDelete, platformcore.ActionSelectMirror,
			platformcore.ActionSelectSplitterRGB, platformcore.ActionSelectSplitter,
		}, ToolDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 20 {
				g := newTestGame(t, "lvl01")
				g.Step(press(tt.actions...))
				if g.tool != tt.want {
					t.Fatalf("tool = %v, want %v", g.tool, tt.want)
				}
			}
		})
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, "lvl01")
	for range 50 {
		g.Step(press(platformcore.ActionLeft, platformcore.ActionUp))
	}
	ext := g.layout.ext
	if g.cursor != ext.TopLeft() {
		t.Errorf("cursor = %v, want %v", g.cursor, ext.TopLeft())
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.Step(press(platformcore.ActionPause))
	idle(g, 10)
	if g.ticks != 0 {
		t.Errorf("ticks = %d while paused", g.ticks)
	}
	g.Step(press(platformcore.ActionPause))
	if g.ticks != 1 {
		t.Errorf("ticks = %d after resuming, want 1", g.ticks)
	}
}

func TestRenderShowsBoard(t *testing.T) {
	g := newTestGame(t, "lvl01")
	scr := platformcore.NewScreen(100, 30)
	g.Render(scr)

	out := scr.String()
	for _, want := range []string{"LaserGrid", "First Light", "Receivers", "target"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "lvl01")
	g.Resize(40, 10)
	scr := platformcore.NewScreen(40, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("expected the too-small overlay")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		items   int
		elapsed time.Duration
		want    int
	}{
		{0, 0, 1000},
		{1, 3 * time.Second, 870},
		{20, time.Minute, 100},
	}
	for _, tt := range tests {
		if got := Score(tt.items, tt.elapsed); got != tt.want {
			t.Errorf("Score(%d, %v) = %d, want %d", tt.items, tt.elapsed, got, tt.want)
		}
	}
}
