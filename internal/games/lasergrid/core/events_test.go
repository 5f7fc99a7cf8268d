package core_test

import (
	"testing"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
)

func TestHubSubscribeUnsubscribe(t *testing.T) {
	hub := core.NewHub()

	var first, second []string
	unsubFirst := hub.Subscribe(func(e core.Event) { first = append(first, e.String()) })
	unsubSecond := hub.Subscribe(func(e core.Event) { second = append(second, e.String()) })
	if hub.Len() != 2 {
		t.Fatalf("Len = %d, want 2", hub.Len())
	}

	hub.Publish(core.Won{Tick: 4})
	unsubFirst()
	unsubFirst()
	hub.Publish(core.ReceiverActivated{ID: "r1"})
	unsubSecond()
	hub.Publish(core.ReceiverDeactivated{ID: "r1"})

	if len(first) != 1 || first[0] != "won at tick 4" {
		t.Errorf("first listener got %v", first)
	}
	if len(second) != 2 || second[1] != "receiver r1 activated" {
		t.Errorf("second listener got %v", second)
	}
	if hub.Len() != 0 {
		t.Errorf("Len = %d after unsubscribing, want 0", hub.Len())
	}
}

func TestHubListenerMayUnsubscribeItself(t *testing.T) {
	hub := core.NewHub()
	calls := 0
	var unsubscribe func()
	unsubscribe = hub.Subscribe(func(core.Event) {
		calls++
		unsubscribe()
	})

	hub.Publish(core.Won{})
	hub.Publish(core.Won{})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestReasonCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{core.ErrOutOfBounds, "OUT_OF_BOUNDS"},
		{&core.PlacementError{Op: "place", Err: core.ErrInventoryExhausted}, "INVENTORY_EXHAUSTED"},
		{&core.PlacementError{Op: "remove", Err: core.ErrNothingToRemove}, "NOTHING_TO_REMOVE"},
		{&core.PlacementError{Op: "rotate", Err: core.ErrNotRotatable}, "NOT_ROTATABLE"},
	}
	for _, tt := range tests {
		if got := core.ReasonCode(tt.err); got != tt.want {
			t.Errorf("ReasonCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
