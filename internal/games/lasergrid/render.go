package lasergrid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

// layout maps board cells to screen positions.
type layout struct {
	ext      core.Bounds // drawn region, interior cells only
	cellW    int
	boxX     int
	boxY     int
	boardW   int // box size including the border
	boardH   int
	panelX   int
	tooSmall bool
}

func computeLayout(ext core.Bounds, cellW, w, h int) layout {
	if cellW < 1 {
		cellW = 1
	}
	l := layout{ext: ext, cellW: cellW}
	l.boardW = ext.Width()*cellW + 2
	l.boardH = ext.Height() + 2

	total := l.boardW + 1 + panelWidth
	if total > w || hudHeight+l.boardH+1 > h {
		l.tooSmall = true
	}
	l.boxX = max(0, (w-total)/2)
	l.boxY = hudHeight
	l.panelX = l.boxX + l.boardW + 1
	return l
}

// screenPos returns the left column and row of a cell.
func (l layout) screenPos(c core.Cell) (int, int) {
	x := l.boxX + 1 + (c.X-l.ext.MinX-1)*l.cellW
	y := l.boxY + 1 + (c.Y - l.ext.MinY - 1)
	return x, y
}

// cellAt maps a screen position back to a board cell.
func (l layout) cellAt(x, y int) (core.Cell, bool) {
	if l.tooSmall {
		return core.Cell{}, false
	}
	col := x - l.boxX - 1
	row := y - l.boxY - 1
	if col < 0 || row < 0 {
		return core.Cell{}, false
	}
	cx := col / l.cellW
	if cx >= l.ext.Width() || row >= l.ext.Height() {
		return core.Cell{}, false
	}
	return core.C(l.ext.MinX+1+cx, l.ext.MinY+1+row), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.renderHUD(dst)
		g.renderOverlay(dst, "Level failed to load", g.loadErr.Error())
		return
	}
	if g.sim == nil {
		return
	}

	g.renderHUD(dst)
	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderPanel(dst)
	g.renderStatus(dst)

	switch {
	case g.finished:
		g.renderOverlay(dst, "All levels cleared!", "Press Esc for the menu")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the title line and the tool bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " LaserGrid"
	if lvl, ok := g.Level(); ok {
		hud += fmt.Sprintf(" | Level %d/%d: %s | Placed: %d | Time: %.1fs",
			g.index+1, len(g.catalog), lvl.Name, g.inventory.Placed, g.elapsed.Seconds())
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	x := 1
	for i, tool := range Tools {
		label := fmt.Sprintf("[%d] %s", i+1, tool)
		if k := tool.Kind(); k != core.KindNone {
			label += fmt.Sprintf(" x%d", g.stock(k))
		}
		color := platformcore.ColorGray
		if tool == g.tool {
			color = platformcore.ColorYellow
		}
		dst.DrawTextWithColor(x, 2, label, color)
		x += utf8.RuneCountInString(label) + 3
	}
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

func (g *Game) stock(k core.Kind) int {
	switch k {
	case core.KindMirror:
		return g.inventory.Mirrors
	case core.KindSplitter:
		return g.inventory.Splitters
	case core.KindSplitterRGB:
		return g.inventory.SplittersRGB
	default:
		return 0
	}
}

// renderBoard draws the grid, beams, items and the cursor.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	l := g.layout
	shift := g.shakeOffset()
	frame := platformcore.ColorGray
	if g.won {
		frame = platformcore.ColorGreen
	} else if g.shakeAmp > 0 {
		frame = platformcore.ColorRed
	}
	dst.DrawBox(platformcore.NewRect(l.boxX+shift, l.boxY, l.boardW, l.boardH), frame)

	board := g.sim.Board()
	bounds := board.Bounds()
	beams := core.BeamCells(g.sim.Traces(), l.ext)
	mid := l.cellW / 2

	for y := l.ext.MinY + 1; y < l.ext.MaxY; y++ {
		for x := l.ext.MinX + 1; x < l.ext.MaxX; x++ {
			c := core.C(x, y)
			sx, sy := l.screenPos(c)
			sx += shift

			if it, ok := board.At(c); ok {
				r, color := g.itemLook(it)
				dst.SetWithColor(sx+mid, sy, r, color)
			} else if m, ok := beams[c]; ok {
				drawBeam(dst, sx, sy, l.cellW, m)
			} else if bounds.Contains(c) {
				dst.SetWithColor(sx+mid, sy, '·', platformcore.ColorDarkGray)
			}

			if c == g.cursor {
				if l.cellW >= 3 {
					dst.SetWithColor(sx, sy, '[', platformcore.ColorYellow)
					dst.SetWithColor(sx+l.cellW-1, sy, ']', platformcore.ColorYellow)
				} else {
					cell := dst.GetCell(sx+mid, sy)
					dst.SetWithColor(sx+mid, sy, cell.Rune, platformcore.ColorYellow)
				}
			}
		}
	}
}

func drawBeam(dst *platformcore.Screen, sx, sy, cellW int, m *core.BeamMark) {
	color := beamColor(m.Color())
	mid := cellW / 2
	if m.Horizontal {
		dst.DrawHLine(sx, sy, cellW, '─', color)
	}
	switch {
	case m.Horizontal && m.Vertical:
		dst.SetWithColor(sx+mid, sy, '┼', color)
	case m.Vertical:
		dst.SetWithColor(sx+mid, sy, '│', color)
	}
}

// itemLook returns the glyph and color of a board item.
func (g *Game) itemLook(it core.Item) (rune, platformcore.Color) {
	board := g.sim.Board()
	switch v := it.(type) {
	case *core.Mirror:
		r := core.MirrorGlyph(g.displayOrientation(v))
		switch {
		case v.Fixed:
			return r, platformcore.ColorGray
		case board.IsPlaced(v.Cell()):
			return r, platformcore.ColorCyan
		default:
			return r, platformcore.ColorWhite
		}
	case *core.Splitter:
		if v.Active() {
			return core.ItemGlyph(v), beamColor(v.Tint())
		}
		return core.ItemGlyph(v), platformcore.ColorWhite
	case *core.Emitter:
		return core.ItemGlyph(v), beamColor(v.Color)
	case *core.Receiver:
		return core.ItemGlyph(v), statusColor(v.Status())
	case *core.Blocker:
		return '#', platformcore.ColorOrange
	default:
		return '█', platformcore.ColorDarkGray
	}
}

func beamColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorWhite:
		return platformcore.ColorBrightWhite
	default:
		return platformcore.ColorGray
	}
}

func statusColor(s core.ReceiverStatus) platformcore.Color {
	switch s {
	case core.StatusPartial:
		return platformcore.ColorYellow
	case core.StatusCharging:
		return platformcore.ColorCyan
	case core.StatusActive:
		return platformcore.ColorGreen
	case core.StatusHazard:
		return platformcore.ColorRed
	default:
		return platformcore.ColorGray
	}
}

// renderPanel draws receivers, recent events and the key help.
func (g *Game) renderPanel(dst *platformcore.Screen) {
	x, y := g.layout.panelX, g.layout.boxY

	dst.DrawTextWithColor(x, y, "Receivers", platformcore.ColorCyan)
	y++
	for _, r := range g.sim.Receivers() {
		need := make([]string, 0, 2)
		for _, c := range r.Required() {
			need = append(need, string(c.Char()))
		}
		line := fmt.Sprintf("%-8.8s %-3s %s %s", r.ID, strings.Join(need, ""), progressBar(r.Progress(), 10), r.Status())
		dst.DrawTextWithColor(x, y, line, statusColor(r.Status()))
		y++
	}

	y++
	dst.DrawTextWithColor(x, y, "Events", platformcore.ColorCyan)
	y++
	for _, e := range g.events {
		dst.DrawTextWithColor(x, y, truncate(e, panelWidth), platformcore.ColorGray)
		y++
	}

	help := []string{
		"Arrows/WASD move   Space place",
		"E rotate   X delete   1-4 tool",
		"R restart  P pause  Esc menu",
	}
	hy := g.layout.boxY + g.layout.boardH - len(help)
	if hy <= y {
		hy = y + 1
	}
	for i, line := range help {
		dst.DrawTextWithColor(x, hy+i, line, platformcore.ColorDarkGray)
	}
}

func (g *Game) renderStatus(dst *platformcore.Screen) {
	if g.status == "" {
		return
	}
	y := g.layout.boxY + g.layout.boardH
	dst.DrawTextWithColor(g.layout.boxX+1, y, g.status, g.statusColor)
}

func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	w = min(w, dst.Width())
	h := 5
	box := platformcore.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, truncate(line1, w-2), platformcore.ColorBrightWhite)
	dst.DrawTextCenteredWithColor(box.Y+3, truncate(line2, w-2), platformcore.ColorGray)
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	filled = platformcore.Clamp(filled, 0, width)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
