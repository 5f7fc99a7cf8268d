package core

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
)

// Settings are the tunable limits of the simulation.
type Settings struct {
	MaxReflections  int           // mirror bounces per beam
	MaxDistance     float64       // length of one segment
	Epsilon         float64       // offset applied after a reflection
	SpawnOffset     float64       // distance from splitter center to child origin
	RequiredHitTime time.Duration // default receiver hit time
	MaxBeams        int           // traces per tick
	RotateSteps     int           // 45 degree steps per rotation
}

// DefaultSettings returns the standard limits.
func DefaultSettings() Settings {
	return Settings{
		MaxReflections:  5,
		MaxDistance:     100,
		Epsilon:         0.01,
		SpawnOffset:     0.5,
		RequiredHitTime: 3 * time.Second,
		MaxBeams:        64,
		RotateSteps:     2,
	}
}

// withDefaults fills zero fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.MaxReflections <= 0 {
		s.MaxReflections = d.MaxReflections
	}
	if s.MaxDistance <= 0 {
		s.MaxDistance = d.MaxDistance
	}
	if s.Epsilon <= 0 {
		s.Epsilon = d.Epsilon
	}
	if s.SpawnOffset <= 0 {
		s.SpawnOffset = d.SpawnOffset
	}
	if s.RequiredHitTime <= 0 {
		s.RequiredHitTime = d.RequiredHitTime
	}
	if s.MaxBeams <= 0 {
		s.MaxBeams = d.MaxBeams
	}
	if s.RotateSteps == 0 {
		s.RotateSteps = d.RotateSteps
	}
	return s
}

// EmitterSpec configures an emitter at level load.
type EmitterSpec struct {
	ID    string
	Cell  Cell
	Dir   Vec2
	Color Color
}

// ReceiverSpec configures a receiver at level load.
// A zero HitTime uses Settings.RequiredHitTime.
type ReceiverSpec struct {
	ID      string
	Cell    Cell
	Colors  []Color
	HitTime time.Duration
}

// MirrorSpec is a mirror that belongs to the level.
type MirrorSpec struct {
	Cell        Cell
	Orientation int
	Fixed       bool
}

// SplitterSpec is a splitter that belongs to the level.
type SplitterSpec struct {
	Cell Cell
	Mode SplitterMode
}

// Setup is everything needed to start a level.
type Setup struct {
	Bounds    Bounds
	Emitters  []EmitterSpec
	Receivers []ReceiverSpec
	Mirrors   []MirrorSpec
	Splitters []SplitterSpec
	Blockers  []Cell
	Walls     []Cell
	Inventory Inventory
}

// StepResult contains the results of a single simulation tick.
type StepResult struct {
	Tick   int
	Traces []Trace
	Events []Event // everything emitted since the previous step
	Won    bool
}

// Option configures a Sim.
type Option func(*Sim)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSettings overrides the limits. Zero fields keep their defaults.
func WithSettings(settings Settings) Option {
	return func(s *Sim) {
		s.settings = settings.withDefaults()
	}
}

// WithHub publishes events to an existing hub.
func WithHub(h *Hub) Option {
	return func(s *Sim) {
		if h != nil {
			s.hub = h
		}
	}
}

// Sim is the beam-routing simulation of one level.
type Sim struct {
	setup    Setup
	settings Settings
	logger   *log.Logger
	hub      *Hub

	board     *Board
	emitters  []*Emitter
	receivers []*Receiver
	inventory Inventory

	tick      int
	activated int
	won       bool
	traces    []Trace
	pending   []Event
}

// NewSim builds a simulation from a level setup.
func NewSim(setup Setup, opts ...Option) (*Sim, error) {
	s := &Sim{
		settings: DefaultSettings(),
		logger:   log.New(io.Discard),
		hub:      NewHub(),
	}
	for _, opt := range opts {
		opt(s)
	}

	setup = normalizeSetup(setup)
	if err := validateLayout(setup); err != nil {
		return nil, err
	}
	s.setup = setup
	s.build()
	return s, nil
}

// build populates the board from the setup.
func (s *Sim) build() {
	setup := s.setup
	s.board = NewBoard(setup.Bounds)
	s.emitters = s.emitters[:0]
	s.receivers = s.receivers[:0]

	for _, e := range setup.Emitters {
		em := NewEmitter(e.ID, e.Cell, e.Dir, e.Color)
		s.emitters = append(s.emitters, em)
		s.board.put(em, false)
	}
	for _, r := range setup.Receivers {
		hit := r.HitTime
		if hit <= 0 {
			hit = s.settings.RequiredHitTime
		}
		rc := NewReceiver(r.ID, r.Cell, r.Colors, hit)
		s.receivers = append(s.receivers, rc)
		s.board.put(rc, false)
	}
	for _, m := range setup.Mirrors {
		mirror := NewMirror(m.Cell, m.Orientation)
		mirror.Fixed = m.Fixed
		s.board.put(mirror, false)
	}
	for _, sp := range setup.Splitters {
		s.board.put(NewSplitter(sp.Cell, sp.Mode), false)
	}
	for _, c := range setup.Blockers {
		s.board.put(NewBlocker(c), false)
	}
	for _, c := range setup.Walls {
		s.board.addWall(c)
	}

	s.inventory = setup.Inventory
	s.tick = 0
	s.activated = 0
	s.won = false
	s.traces = nil
	s.pending = nil
}

// Reset restores the level to its initial state. Subscribers are kept.
func (s *Sim) Reset() {
	s.build()
}

func (s *Sim) Board() *Board          { return s.board }
func (s *Sim) Settings() Settings     { return s.settings }
func (s *Sim) Hub() *Hub              { return s.hub }
func (s *Sim) Logger() *log.Logger    { return s.logger }
func (s *Sim) Inventory() Inventory   { return s.inventory }
func (s *Sim) Tick() int              { return s.tick }
func (s *Sim) Won() bool              { return s.won }
func (s *Sim) ActivatedCount() int    { return s.activated }
func (s *Sim) Emitters() []*Emitter   { return s.emitters }
func (s *Sim) Receivers() []*Receiver { return s.receivers }

// Traces returns the beam paths of the last tick.
func (s *Sim) Traces() []Trace { return s.traces }

// Splitters returns every splitter on the board sorted by cell.
func (s *Sim) Splitters() []*Splitter {
	var out []*Splitter
	for _, it := range s.board.Items() {
		if sp, ok := it.(*Splitter); ok {
			out = append(out, sp)
		}
	}
	return out
}

// Receiver looks a receiver up by ID.
func (s *Sim) Receiver(id string) (*Receiver, bool) {
	for _, r := range s.receivers {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Step advances the simulation by one tick of duration dt.
func (s *Sim) Step(dt time.Duration) StepResult {
	s.tick++
	for _, r := range s.receivers {
		r.BeginTick()
	}

	queue := make([]Beam, 0, len(s.emitters))
	for _, e := range s.emitters {
		queue = append(queue, Beam{
			Origin: e.cell.Center().Add(e.Dir.Scale(solidHalf)),
			Dir:    e.Dir,
			Color:  e.Color,
			Source: BeamSource{Emitter: e.ID},
		})
	}

	touched := mapset.New[Cell]()
	traces := make([]Trace, 0, len(queue))
	for len(queue) > 0 && len(traces) < s.settings.MaxBeams {
		beam := queue[0]
		queue = queue[1:]

		tr := s.board.Trace(beam, s.settings)
		traces = append(traces, tr)

		switch tr.Terminal {
		case TerminalReceiver:
			tr.Hit.(*Receiver).Accumulate(tr.Color)
		case TerminalSplitter:
			sp := tr.Hit.(*Splitter)
			if children, ok := sp.OnHit(tr.HitPoint, tr.Dir, tr.Color, s.settings.SpawnOffset); ok {
				s.logger.Debug("splitter activated", "cell", sp.Cell(), "color", tr.Color, "children", len(children))
				s.emit(SplitterActivated{Cell: sp.Cell(), Color: tr.Color, Children: len(children)})
			}
			if !touched.Has(sp.Cell()) {
				touched.Put(sp.Cell())
				queue = append(queue, sp.Children()...)
			}
		}
	}
	s.traces = traces

	// Contact decisions need every beam of this tick.
	for _, sp := range s.Splitters() {
		if sp.Active() && !touched.Has(sp.Cell()) {
			s.retract(sp)
		}
	}

	for _, r := range s.receivers {
		switch r.Evaluate(dt) {
		case TransitionActivated:
			s.activated++
			s.emit(ReceiverActivated{ID: r.ID})
		case TransitionDeactivated:
			s.activated--
			s.emit(ReceiverDeactivated{ID: r.ID})
		}
	}

	if !s.won && len(s.receivers) > 0 && s.activated == len(s.receivers) {
		s.won = true
		s.logger.Info("level won", "tick", s.tick)
		s.emit(Won{Tick: s.tick})
	}

	events := s.pending
	s.pending = nil
	return StepResult{
		Tick:   s.tick,
		Traces: traces,
		Events: events,
		Won:    s.won,
	}
}

// RunUntilWon steps with a fixed dt until the level is won or maxTicks pass.
func (s *Sim) RunUntilWon(maxTicks int, dt time.Duration) (ticks int, won bool) {
	for i := 0; i < maxTicks; i++ {
		if s.Step(dt).Won {
			return s.tick, true
		}
	}
	return s.tick, s.won
}

func (s *Sim) retract(sp *Splitter) {
	destroyed := sp.OnLostContact()
	s.logger.Debug("splitter retracted", "cell", sp.Cell(), "destroyed", len(destroyed))
	s.emit(SplitterRetracted{Cell: sp.Cell(), Destroyed: len(destroyed)})
}

func (s *Sim) emit(e Event) {
	s.pending = append(s.pending, e)
	s.hub.Publish(e)
}
