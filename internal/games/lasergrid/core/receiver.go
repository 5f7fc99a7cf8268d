package core

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// ReceiverStatus describes what a receiver saw on the last tick.
type ReceiverStatus uint8

const (
	StatusIdle     ReceiverStatus = iota // no beam
	StatusPartial                        // some required colors, nothing else
	StatusCharging                       // exact match, timer running
	StatusActive                         // activated
	StatusHazard                         // a color outside the required set
)

// String returns the string representation of a status.
func (s ReceiverStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPartial:
		return "partial"
	case StatusCharging:
		return "charging"
	case StatusActive:
		return "active"
	case StatusHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Transition is the activation change produced by Evaluate.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionActivated
	TransitionDeactivated
)

// Receiver accumulates beam colors each tick and activates once the exact
// required set has been held for the required hit time.
type Receiver struct {
	ID       string
	cell     Cell
	required ColorSet
	hitTime  time.Duration

	seen      ColorSet
	timer     time.Duration
	activated bool
	status    ReceiverStatus
}

// NewReceiver creates a receiver requiring exactly the given colors.
func NewReceiver(id string, c Cell, required []Color, hitTime time.Duration) *Receiver {
	return &Receiver{
		ID:       id,
		cell:     c,
		required: mapset.Of(required...),
		hitTime:  hitTime,
		seen:     mapset.New[Color](),
	}
}

func (r *Receiver) Kind() Kind { return KindReceiver }
func (r *Receiver) Cell() Cell { return r.cell }

// Required returns the required colors in canonical order.
func (r *Receiver) Required() []Color { return SortedColors(r.required) }

// Seen returns the distinct colors accumulated on the current (or last) tick.
func (r *Receiver) Seen() []Color { return SortedColors(r.seen) }

// HitTime returns how long an exact match must be held.
func (r *Receiver) HitTime() time.Duration { return r.hitTime }

// Activated reports whether the receiver is currently activated.
func (r *Receiver) Activated() bool { return r.activated }

// Status returns the status computed by the last Evaluate.
func (r *Receiver) Status() ReceiverStatus { return r.status }

// Progress returns the charge fraction in [0, 1].
func (r *Receiver) Progress() float64 {
	if r.activated || r.hitTime <= 0 {
		if r.activated {
			return 1
		}
		return 0
	}
	return min(1, float64(r.timer)/float64(r.hitTime))
}

// BeginTick clears the colors seen on the previous tick. Call it before the
// first Accumulate of every tick.
func (r *Receiver) BeginTick() {
	r.seen.Clear()
}

// Accumulate registers a beam of color c landing on the receiver this tick.
func (r *Receiver) Accumulate(c Color) {
	if c == ColorNone {
		return
	}
	r.seen.Put(c)
}

// Matches reports whether the colors seen this tick equal the required set.
func (r *Receiver) Matches() bool {
	if r.seen.Size() != r.required.Size() {
		return false
	}
	match := true
	r.seen.Each(func(c Color) {
		if !r.required.Has(c) {
			match = false
		}
	})
	return match
}

// Evaluate closes the tick: an exact match advances the timer by dt, anything
// else resets it immediately.
func (r *Receiver) Evaluate(dt time.Duration) Transition {
	r.status = r.classify()

	if r.Matches() {
		r.timer += dt
		if !r.activated && r.timer >= r.hitTime {
			r.activated = true
			r.status = StatusActive
			return TransitionActivated
		}
		if r.activated {
			r.status = StatusActive
		}
		return TransitionNone
	}

	r.timer = 0
	if r.activated {
		r.activated = false
		return TransitionDeactivated
	}
	return TransitionNone
}

func (r *Receiver) classify() ReceiverStatus {
	if r.seen.Size() == 0 {
		return StatusIdle
	}
	hazard := false
	r.seen.Each(func(c Color) {
		if !r.required.Has(c) {
			hazard = true
		}
	})
	switch {
	case hazard:
		return StatusHazard
	case r.seen.Size() < r.required.Size():
		return StatusPartial
	default:
		return StatusCharging
	}
}

func (r *Receiver) intersect(origin, dir Vec2) (float64, Vec2, bool) {
	return intersectBox(r.cell.Center(), interactiveHalf, origin, dir, false)
}
