package lasergrid

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

// rotation animates a mirror sweep from its old angle to the new one.
type rotation struct {
	tween *gween.Tween
	angle float32
}

// displayOrientation is the orientation to draw for a mirror, following
// its rotation tween while one runs.
func (g *Game) displayOrientation(m *core.Mirror) int {
	if r, ok := g.rotations[m.Cell()]; ok {
		return int(math.Round(float64(r.angle) / 45))
	}
	return m.Orientation
}

// startShake starts the error shake unless the cooldown is still running.
func (g *Game) startShake() {
	if g.cooldown > 0 {
		return
	}
	g.shake = gween.New(1, 0, float32(g.cfg.Display.ShakeDuration.Seconds()), ease.OutQuad)
	g.shakeAmp = 1
	g.cooldown = g.cfg.Placement.ErrorCooldown
}

// shakeOffset is the horizontal board displacement of the current tick.
func (g *Game) shakeOffset() int {
	mag := int(math.Round(float64(g.shakeAmp) * 2))
	if g.ticks%2 == 1 {
		return -mag
	}
	return mag
}

// animate advances tweens and timers by dt.
func (g *Game) animate(dt time.Duration) {
	secs := float32(dt.Seconds())

	for c, r := range g.rotations {
		angle, done := r.tween.Update(secs)
		r.angle = angle
		if done {
			delete(g.rotations, c)
		}
	}

	if g.shake != nil {
		amp, done := g.shake.Update(secs)
		g.shakeAmp = amp
		if done {
			g.shake = nil
			g.shakeAmp = 0
		}
	}

	g.cooldown = max(0, g.cooldown-dt)
	if g.statusLeft > 0 {
		g.statusLeft -= dt
		if g.statusLeft <= 0 {
			g.status = ""
		}
	}
}
