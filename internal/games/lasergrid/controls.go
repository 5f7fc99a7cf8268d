package lasergrid

import (
	"errors"
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	platformcore "github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

// Tool is what the cursor does on confirm.
type Tool int

const (
	ToolMirror Tool = iota
	ToolSplitter
	ToolSplitterRGB
	ToolDelete
)

// Tools lists the tool bar in key order (1-4).
var Tools = []Tool{ToolMirror, ToolSplitter, ToolSplitterRGB, ToolDelete}

func (t Tool) String() string {
	switch t {
	case ToolMirror:
		return "Mirror"
	case ToolSplitter:
		return "Splitter"
	case ToolSplitterRGB:
		return "RGB Splitter"
	default:
		return "Delete"
	}
}

// Kind returns the item kind the tool places, or KindNone for Delete.
func (t Tool) Kind() core.Kind {
	switch t {
	case ToolMirror:
		return core.KindMirror
	case ToolSplitter:
		return core.KindSplitter
	case ToolSplitterRGB:
		return core.KindSplitterRGB
	default:
		return core.KindNone
	}
}

// toolActions is checked in order; the last selected tool in a frame wins.
var toolActions = []struct {
	action platformcore.Action
	tool   Tool
}{
	{platformcore.ActionSelectMirror, ToolMirror},
	{platformcore.ActionSelectSplitter, ToolSplitter},
	{platformcore.ActionSelectSplitterRGB, ToolSplitterRGB},
	{platformcore.ActionSelectDelete, ToolDelete},
}

// handleInput applies one frame of player intents to the simulation.
func (g *Game) handleInput(in platformcore.InputFrame) {
	for _, ta := range toolActions {
		if in.Has(ta.action) {
			g.tool = ta.tool
		}
	}

	dx, dy := 0, 0
	if in.Has(platformcore.ActionUp) {
		dy--
	}
	if in.Has(platformcore.ActionDown) {
		dy++
	}
	if in.Has(platformcore.ActionLeft) {
		dx--
	}
	if in.Has(platformcore.ActionRight) {
		dx++
	}
	if dx != 0 || dy != 0 {
		g.cursor = g.layout.ext.Clamp(g.cursor.Add(dx, dy))
	}

	if in.Click != nil {
		if c, ok := g.layout.cellAt(in.Click.X-g.shakeOffset(), in.Click.Y); ok {
			g.cursor = c
			g.useTool()
		}
	}
	if in.Has(platformcore.ActionConfirm) {
		g.useTool()
	}
	if in.Has(platformcore.ActionDelete) {
		g.sim.Remove(g.cursor) //nolint:errcheck // reported through the hub
	}
	if in.Has(platformcore.ActionRotate) {
		g.rotateAt(g.cursor)
	}
}

// useTool places the selected item or removes the one under the cursor.
// Failures come back as InvalidPlacement events.
func (g *Game) useTool() {
	if g.tool == ToolDelete {
		g.sim.Remove(g.cursor) //nolint:errcheck // reported through the hub
		return
	}
	g.sim.Place(g.cursor, g.tool.Kind()) //nolint:errcheck // reported through the hub
}

// rotateAt turns the mirror at c unless it is still turning.
func (g *Game) rotateAt(c core.Cell) {
	if _, busy := g.rotations[c]; busy {
		g.setStatus("That mirror is still turning", platformcore.ColorYellow)
		return
	}

	it, ok := g.sim.Board().At(c)
	m, isMirror := it.(*core.Mirror)
	if !ok || !isMirror {
		g.sim.Rotate(c) //nolint:errcheck // reported through the hub
		return
	}

	from := m.Degrees()
	if err := g.sim.Rotate(c); err != nil {
		return
	}
	to := from + float64(g.sim.Settings().RotateSteps)*45

	speed := g.cfg.Mirror.RotationSpeed
	if speed <= 0 {
		return
	}
	duration := math.Abs(to-from) / speed
	g.rotations[c] = &rotation{
		tween: gween.New(float32(from), float32(to), float32(duration), ease.OutCubic),
		angle: float32(from),
	}
}

func describeRejection(e core.InvalidPlacement) string {
	switch {
	case errors.Is(e.Reason, core.ErrOutOfBounds):
		return fmt.Sprintf("%s is outside the build area", e.Cell)
	case errors.Is(e.Reason, core.ErrCellBlocked):
		return fmt.Sprintf("%s is blocked", e.Cell)
	case errors.Is(e.Reason, core.ErrCellOccupied):
		return fmt.Sprintf("%s is already taken", e.Cell)
	case errors.Is(e.Reason, core.ErrInventoryExhausted):
		return fmt.Sprintf("No %s left", e.Kind)
	case errors.Is(e.Reason, core.ErrNothingToRemove):
		return "Selected item was not placed by you"
	case errors.Is(e.Reason, core.ErrNotRotatable):
		return "Only movable mirrors can rotate"
	default:
		return e.Reason.Error()
	}
}
