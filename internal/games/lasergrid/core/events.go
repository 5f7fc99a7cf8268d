package core

import (
	"fmt"
	"sort"
	"sync"
)

// Event is a notification produced by the simulation.
type Event interface {
	fmt.Stringer
	event()
}

// ReceiverActivated fires when a receiver's exact match has been held long enough.
type ReceiverActivated struct{ ID string }

// ReceiverDeactivated fires when an activated receiver loses its match.
type ReceiverDeactivated struct{ ID string }

// Won fires once when every receiver is active at the same time.
type Won struct{ Tick int }

// InvalidPlacement reports a rejected placement, removal or rotation.
type InvalidPlacement struct {
	Cell     Cell
	Kind     Kind
	Reason   error
	Feedback bool // the player tried to build on a blocked cell
}

// InventoryChanged reports the counts after every placement or removal.
type InventoryChanged struct {
	Placed       int
	Mirrors      int
	Splitters    int
	SplittersRGB int
}

// ItemPlaced fires after a successful placement.
type ItemPlaced struct {
	Cell Cell
	Kind Kind
}

// ItemRemoved fires after a successful removal.
type ItemRemoved struct {
	Cell Cell
	Kind Kind
}

// MirrorRotated fires after a mirror turns.
type MirrorRotated struct {
	Cell        Cell
	From        int
	Orientation int
}

// SplitterActivated fires when a splitter spawns its children.
type SplitterActivated struct {
	Cell     Cell
	Color    Color
	Children int
}

// SplitterRetracted fires when a splitter loses contact and destroys its children.
type SplitterRetracted struct {
	Cell      Cell
	Destroyed int
}

func (ReceiverActivated) event()   {}
func (ReceiverDeactivated) event() {}
func (Won) event()                 {}
func (InvalidPlacement) event()    {}
func (InventoryChanged) event()    {}
func (ItemPlaced) event()          {}
func (ItemRemoved) event()         {}
func (MirrorRotated) event()       {}
func (SplitterActivated) event()   {}
func (SplitterRetracted) event()   {}

func (e ReceiverActivated) String() string   { return "receiver " + e.ID + " activated" }
func (e ReceiverDeactivated) String() string { return "receiver " + e.ID + " deactivated" }
func (e Won) String() string                 { return fmt.Sprintf("won at tick %d", e.Tick) }

func (e InvalidPlacement) String() string {
	return fmt.Sprintf("invalid %s at %s: %s", e.Kind, e.Cell, ReasonCode(e.Reason))
}

func (e InventoryChanged) String() string {
	return fmt.Sprintf("inventory placed=%d M%d S%d X%d", e.Placed, e.Mirrors, e.Splitters, e.SplittersRGB)
}

func (e ItemPlaced) String() string  { return fmt.Sprintf("%s placed at %s", e.Kind, e.Cell) }
func (e ItemRemoved) String() string { return fmt.Sprintf("%s removed from %s", e.Kind, e.Cell) }

func (e MirrorRotated) String() string {
	return fmt.Sprintf("mirror at %s rotated %d -> %d", e.Cell, e.From, e.Orientation)
}

func (e SplitterActivated) String() string {
	return fmt.Sprintf("splitter at %s split %s into %d", e.Cell, e.Color, e.Children)
}

func (e SplitterRetracted) String() string {
	return fmt.Sprintf("splitter at %s retracted %d", e.Cell, e.Destroyed)
}

// Hub fans events out to subscribers. It is safe for concurrent use.
type Hub struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Event)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{listeners: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that unregisters it.
// Calling the returned function more than once is harmless.
func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Publish delivers e to every subscriber in subscription order.
// Listeners run outside the lock and may unsubscribe themselves.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.listeners[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
