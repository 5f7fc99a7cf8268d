// Package lasergrid provides the LaserGrid beam puzzle for the terminal
// platform. It wraps the simulation in core with a cursor, a tool bar and
// presentational animation.
package lasergrid

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"

	"github.com/vovakirdan/lasergrid/internal/config"
	platformcore "github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/levels"
	"github.com/vovakirdan/lasergrid/internal/registry"
)

// GameID is the registry ID of the game.
const GameID = "lasergrid"

const (
	hudHeight   = 4
	panelWidth  = 36
	logLines    = 5
	statusShown = 4 * time.Second
)

// Package-level variables for configuration
var (
	configPath       string
	difficultyPreset string
	startLevel       string
	levelsDir        string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the level the next Reset starts from. Empty means the first.
func SetStartLevel(id string) {
	startLevel = id
}

// SetLevelsDir adds a directory of user levels to the bundled ones.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetLogger sets the logger handed to every simulation.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Catalog returns the playable levels in order.
func Catalog() ([]levels.Level, error) {
	return levels.Catalog(levelsDir)
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for LaserGrid.
type Game struct {
	cfg     config.LaserGridConfig
	catalog []levels.Level
	index   int
	start   string // level the next Reset starts from, overrides SetStartLevel
	loadErr error

	sim         *core.Sim
	unsubscribe func()
	inventory   core.InventoryChanged

	cursor core.Cell
	tool   Tool

	screenW, screenH int
	dt               time.Duration
	layout           layout

	ticks    int
	elapsed  time.Duration
	won      bool
	reported bool
	paused   bool
	finished bool // every level of the catalog cleared in this run

	status      string
	statusColor platformcore.Color
	statusLeft  time.Duration
	events      []string

	rotations map[core.Cell]*rotation
	shake     *gween.Tween
	shakeAmp  float32
	cooldown  time.Duration
}

// New creates a new LaserGrid game.
func New() *Game {
	return &Game{
		cfg:       config.DefaultLaserGridConfig(),
		rotations: make(map[core.Cell]*rotation),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "LaserGrid"
}

// Reset loads the config and the level catalog and starts the selected level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.dt = cfg.TickDuration()
	g.finished = false
	g.loadErr = nil

	c, err := config.LoadLaserGrid(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}
	preset, err := config.ParseDifficulty(difficultyPreset)
	if err != nil {
		logger.Warn("ignoring difficulty", "err", err)
	}
	config.ApplyLaserGridPreset(&c, preset)
	g.cfg = c

	g.catalog, err = Catalog()
	if err == nil && len(g.catalog) == 0 {
		err = fmt.Errorf("no levels found")
	}
	if err != nil {
		g.loadErr = err
		g.sim = nil
		return
	}

	want := startLevel
	if g.start != "" {
		want = g.start
	}
	g.index = 0
	for i, lvl := range g.catalog {
		if lvl.ID == want {
			g.index = i
		}
	}

	g.loadLevel()
}

// StartAt makes the next Reset of this game start from level id.
func (g *Game) StartAt(id string) {
	g.start = id
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.sim != nil {
		g.layout = computeLayout(g.sim.Board().Extent(), g.cfg.Display.CellWidth, w, h)
	}
}

// loadLevel starts the level at the current index from scratch.
func (g *Game) loadLevel() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}

	lvl := g.catalog[g.index]
	setup := g.cfg.PrepareSetup(lvl.Setup)
	sim, err := core.NewSim(setup,
		core.WithLogger(logger.With("level", lvl.ID)),
		core.WithSettings(g.cfg.Settings()),
	)
	if err != nil {
		g.loadErr = fmt.Errorf("level %s: %w", lvl.ID, err)
		g.sim = nil
		return
	}
	g.loadErr = nil
	g.sim = sim
	g.unsubscribe = sim.Hub().Subscribe(g.onEvent)

	inv := sim.Inventory()
	g.inventory = core.InventoryChanged{
		Mirrors:      inv.Mirrors,
		Splitters:    inv.Splitters,
		SplittersRGB: inv.SplittersRGB,
	}

	bounds := sim.Board().Bounds()
	g.cursor = core.C(bounds.MinX+1+bounds.Width()/2, bounds.MinY+1+bounds.Height()/2)
	g.tool = ToolMirror
	g.ticks = 0
	g.elapsed = 0
	g.won = false
	g.reported = false
	g.paused = false
	g.events = nil
	clear(g.rotations)
	g.shake = nil
	g.shakeAmp = 0
	g.cooldown = 0
	g.layout = computeLayout(sim.Board().Extent(), g.cfg.Display.CellWidth, g.screenW, g.screenH)

	g.setStatus(lvl.Hint, platformcore.ColorGray)
}

// Level returns the level being played.
func (g *Game) Level() (levels.Level, bool) {
	if g.index < 0 || g.index >= len(g.catalog) {
		return levels.Level{}, false
	}
	return g.catalog[g.index], true
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}

	if g.sim == nil || g.finished {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		g.loadLevel()
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionNext) && g.won {
		g.next()
		return platformcore.StepResult{State: g.State()}
	}

	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)

	g.sim.Step(g.dt)
	g.ticks++
	g.elapsed += g.dt
	g.animate(g.dt)

	result := platformcore.StepResult{State: g.State()}
	if g.won && !g.reported {
		g.reported = true
		result.Cleared = g.clear()
	}
	return result
}

// next moves to the following level, or finishes the run after the last one.
func (g *Game) next() {
	if g.index+1 >= len(g.catalog) {
		g.finished = true
		return
	}
	g.index++
	g.loadLevel()
}

func (g *Game) clear() *platformcore.LevelClear {
	lvl, _ := g.Level()
	items := g.sim.Board().PlacedCount()
	return &platformcore.LevelClear{
		LevelID:     lvl.ID,
		Ticks:       g.ticks,
		ItemsPlaced: items,
		Elapsed:     g.elapsed,
		Score:       Score(items, g.elapsed),
	}
}

// Score rates a clear: fewer items and less time score higher.
func Score(items int, elapsed time.Duration) int {
	return max(100, 1000-100*items-10*int(elapsed.Seconds()))
}

// onEvent receives every simulation event through the hub.
func (g *Game) onEvent(e core.Event) {
	g.events = append(g.events, e.String())
	if len(g.events) > logLines {
		g.events = g.events[len(g.events)-logLines:]
	}

	switch e := e.(type) {
	case core.InventoryChanged:
		g.inventory = e
	case core.InvalidPlacement:
		g.setStatus(describeRejection(e), platformcore.ColorRed)
		if e.Feedback {
			g.startShake()
		}
	case core.ItemRemoved:
		delete(g.rotations, e.Cell)
	case core.ReceiverActivated:
		g.setStatus(fmt.Sprintf("Receiver %s is lit", e.ID), platformcore.ColorGreen)
	case core.ReceiverDeactivated:
		g.setStatus(fmt.Sprintf("Receiver %s went dark", e.ID), platformcore.ColorYellow)
	case core.Won:
		g.won = true
		g.setStatus("Level cleared! N: next level  R: replay", platformcore.ColorGreen)
	}
}

func (g *Game) setStatus(msg string, c platformcore.Color) {
	g.status = msg
	g.statusColor = c
	g.statusLeft = statusShown
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Placed: g.inventory.Placed,
		Ticks:  g.ticks,
		Won:    g.won,
		Paused: g.paused,
	}
	if lvl, ok := g.Level(); ok {
		st.Level = lvl.ID
	}
	return st
}
