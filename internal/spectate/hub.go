// Package spectate lets others watch running games over a websocket.
// Games publish rendered frames to a Hub; a Server streams them to watchers.
package spectate

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// watcherBuffer is how many frames a slow watcher may lag before frames drop.
const watcherBuffer = 8

// Frame is one published snapshot of a running game.
type Frame struct {
	Session string `json:"session"`
	Player  string `json:"player"`
	Level   string `json:"level"`
	Ticks   int    `json:"ticks"`
	Placed  int    `json:"placed"`
	Won     bool   `json:"won"`
	Screen  string `json:"screen,omitempty"`
	Ended   bool   `json:"ended,omitempty"`
}

// SessionInfo describes a watchable session.
type SessionInfo struct {
	ID       string    `json:"id"`
	Player   string    `json:"player"`
	Level    string    `json:"level"`
	Ticks    int       `json:"ticks"`
	Won      bool      `json:"won"`
	Started  time.Time `json:"started"`
	Watchers int       `json:"watchers"`
}

type session struct {
	info     SessionInfo
	last     *Frame
	watchers map[chan Frame]struct{}
}

// Hub fans frames out from games to watchers. Safe for concurrent use.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

// Open registers a new session for player and returns its ID.
func (h *Hub) Open(player string) string {
	id := uuid.NewString()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[id] = &session{
		info:     SessionInfo{ID: id, Player: player, Started: time.Now()},
		watchers: make(map[chan Frame]struct{}),
	}
	return id
}

// Publish sends a frame to every watcher of f.Session.
// Watchers that fall behind miss frames instead of blocking the game.
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[f.Session]
	if !ok {
		return
	}
	f.Player = s.info.Player
	s.info.Level = f.Level
	s.info.Ticks = f.Ticks
	s.info.Won = f.Won
	s.last = &f

	for ch := range s.watchers {
		select {
		case ch <- f:
		default:
		}
	}
}

// End closes a session and tells its watchers.
func (h *Hub) End(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return
	}
	delete(h.sessions, id)

	final := Frame{Session: id, Player: s.info.Player, Level: s.info.Level, Ticks: s.info.Ticks, Won: s.info.Won, Ended: true}
	for ch := range s.watchers {
		select {
		case ch <- final:
		default:
		}
		close(ch)
		delete(s.watchers, ch)
	}
}

// Sessions lists open sessions, oldest first.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]SessionInfo, 0, len(h.sessions))
	for _, s := range h.sessions {
		info := s.info
		info.Watchers = len(s.watchers)
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

// Subscribe returns a channel of frames for session id, primed with the
// latest frame. The channel closes when the session ends or cancel is called.
func (h *Hub) Subscribe(id string) (<-chan Frame, func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return nil, func() {}, false
	}

	ch := make(chan Frame, watcherBuffer)
	if s.last != nil {
		ch <- *s.last
	}
	s.watchers[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := s.watchers[ch]; ok {
				delete(s.watchers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel, true
}
