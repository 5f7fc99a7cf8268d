package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/spectate"
)

func startSpectatedGame(t *testing.T, hub *spectate.Hub) SessionModel {
	t.Helper()
	m := NewSessionModel(nil, core.DefaultConfig(), "ada", SSHServerConfig{Spectators: hub})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.gameModel == nil {
		t.Fatal("selecting a level should start a game")
	}
	if n := len(hub.Sessions()); n != 1 {
		t.Fatalf("hub has %d sessions, want 1", n)
	}
	return m
}

func TestDroppedConnectionEndsSpectatorSession(t *testing.T) {
	hub := spectate.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := startSpectatedGame(t, hub)
	closeOnDone(ctx, m)

	frames, stop, ok := hub.Subscribe(hub.Sessions()[0].ID)
	if !ok {
		t.Fatal("Subscribe failed")
	}
	defer stop()

	// The connection drops while playing; no quit key reaches the model.
	cancel()

	sawEnded := false
	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case f, open := <-frames:
			if !open {
				done = true
			} else if f.Ended {
				sawEnded = true
			}
		case <-timeout:
			t.Fatal("watcher channel not closed after the connection dropped")
		}
	}

	if !sawEnded {
		t.Error("watcher did not receive the ended frame")
	}
	if n := len(hub.Sessions()); n != 0 {
		t.Errorf("hub still lists %d sessions", n)
	}
}

func TestSessionCloseAfterBackToMenu(t *testing.T) {
	hub := spectate.NewHub()
	m := startSpectatedGame(t, hub)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.gameModel != nil {
		t.Fatal("esc should return to the menu")
	}
	if n := len(hub.Sessions()); n != 0 {
		t.Fatalf("hub has %d sessions after leaving the game, want 0", n)
	}

	// Ending again on disconnect is harmless.
	m.Close()
	if n := len(hub.Sessions()); n != 0 {
		t.Errorf("hub has %d sessions, want 0", n)
	}
}
