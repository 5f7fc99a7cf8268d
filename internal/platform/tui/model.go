package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/registry"
	"github.com/vovakirdan/lasergrid/internal/spectate"
	"github.com/vovakirdan/lasergrid/internal/storage"
)

// publishEvery is how many ticks pass between spectator frames.
const publishEvery = 3

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	player    string
	hub       *spectate.Hub
	sessionID string
	owner     *spectatorSessions

	lastClear  *core.LevelClear
	quitting   bool
	backToMenu bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer sets the name clears are recorded under.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		if name != "" {
			m.player = name
		}
	}
}

// spectatorSessions records the hub sessions opened for one connection so
// they can be ended together when it drops.
type spectatorSessions struct {
	hub *spectate.Hub
	mu  sync.Mutex
	ids []string
}

func newSpectatorSessions(hub *spectate.Hub) *spectatorSessions {
	if hub == nil {
		return nil
	}
	return &spectatorSessions{hub: hub}
}

func (s *spectatorSessions) add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
}

// endAll ends every recorded session. Sessions already ended are skipped by the hub.
func (s *spectatorSessions) endAll() {
	s.mu.Lock()
	ids := s.ids
	s.ids = nil
	s.mu.Unlock()

	for _, id := range ids {
		s.hub.End(id)
	}
}

// withSpectatorSessions publishes to the tracker's hub and records the
// opened session in it.
func withSpectatorSessions(t *spectatorSessions) ModelOption {
	return func(m *Model) {
		if t != nil {
			m.hub = t.hub
			m.owner = t
		}
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     defaultPlayer(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.hub != nil {
		m.sessionID = m.hub.Open(m.player)
		if m.owner != nil {
			m.owner.add(m.sessionID)
		}
	}
	return m
}

func defaultPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.SetClick(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyScreen()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.endSession()
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.endSession()
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Cleared != nil {
		m.lastClear = result.Cleared
		m.saveClear(*result.Cleared)
	}

	if m.hub != nil && (m.gameState.Ticks%publishEvery == 0 || result.Cleared != nil) {
		m.publish()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveClear records a cleared level. Best-effort: the game continues regardless.
func (m *Model) saveClear(c core.LevelClear) {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveScore(c.LevelID, c.Score)
	//nolint:errcheck // Best-effort save
	m.store.RecordClear(storage.Clear{
		LevelID:     c.LevelID,
		Player:      m.player,
		Ticks:       c.Ticks,
		ItemsPlaced: c.ItemsPlaced,
	})
}

func (m *Model) publish() {
	m.game.Render(m.screen)
	m.hub.Publish(spectate.Frame{
		Session: m.sessionID,
		Level:   m.gameState.Level,
		Ticks:   m.gameState.Ticks,
		Placed:  m.gameState.Placed,
		Won:     m.gameState.Won,
		Screen:  m.screen.String(),
	})
}

func (m *Model) endSession() {
	if m.hub != nil && m.sessionID != "" {
		m.hub.End(m.sessionID)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".lasergrid", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.Level, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// copyScreen puts the current board as plain text on the system clipboard.
func (m *Model) copyScreen() {
	m.game.Render(m.screen)
	//nolint:errcheck // No clipboard on headless hosts
	clipboard.WriteAll(m.screen.String())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastClear returns the most recent level clear of this run, if any.
func (m Model) LastClear() *core.LevelClear {
	return m.lastClear
}

// Run starts the Bubble Tea program with the given game.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks place items
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
