package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move cursor up
	ActionDown           // move cursor down
	ActionLeft           // move cursor left
	ActionRight          // move cursor right
	ActionConfirm        // use the selected tool on the cursor cell
	ActionDelete         // remove the player item under the cursor
	ActionRotate         // rotate the mirror under the cursor
	ActionSelectMirror
	ActionSelectSplitter
	ActionSelectSplitterRGB
	ActionSelectDelete
	ActionBack    // leave the level
	ActionRestart // restart the level
	ActionNext    // advance to the next level after a clear
	ActionQuit
	ActionPause
)

var actionNames = map[Action]string{
	ActionNone:              "None",
	ActionUp:                "Up",
	ActionDown:              "Down",
	ActionLeft:              "Left",
	ActionRight:             "Right",
	ActionConfirm:           "Confirm",
	ActionDelete:            "Delete",
	ActionRotate:            "Rotate",
	ActionSelectMirror:      "SelectMirror",
	ActionSelectSplitter:    "SelectSplitter",
	ActionSelectSplitterRGB: "SelectSplitterRGB",
	ActionSelectDelete:      "SelectDelete",
	ActionBack:              "Back",
	ActionRestart:           "Restart",
	ActionNext:              "Next",
	ActionQuit:              "Quit",
	ActionPause:             "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "Unknown"
}

// Point is a screen position in character cells.
type Point struct {
	X, Y int
}

// InputFrame is the input collected during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
	// Click is the screen cell of a primary mouse press, if any.
	Click *Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetClick records a mouse press at screen position (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Point{X: x, Y: y}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether nothing was pressed this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Click == nil
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Click = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Click != nil {
		p := *f.Click
		clone.Click = &p
	}
	return clone
}
