package core

import "fmt"

// Inventory holds how many items of each placeable kind the player has left.
type Inventory struct {
	Mirrors      int `yaml:"mirrors"`
	Splitters    int `yaml:"splitters"`
	SplittersRGB int `yaml:"splitters_rgb"`
}

// Count returns the remaining count for a kind.
func (inv Inventory) Count(k Kind) int {
	switch k {
	case KindMirror:
		return inv.Mirrors
	case KindSplitter:
		return inv.Splitters
	case KindSplitterRGB:
		return inv.SplittersRGB
	default:
		return 0
	}
}

// Total returns the sum of all counts.
func (inv Inventory) Total() int {
	return inv.Mirrors + inv.Splitters + inv.SplittersRGB
}

// Add returns the inventory with n more of every kind.
func (inv Inventory) Add(n int) Inventory {
	return Inventory{
		Mirrors:      inv.Mirrors + n,
		Splitters:    inv.Splitters + n,
		SplittersRGB: inv.SplittersRGB + n,
	}
}

// String returns a compact summary like "M2 S1 X0".
func (inv Inventory) String() string {
	return fmt.Sprintf("M%d S%d X%d", inv.Mirrors, inv.Splitters, inv.SplittersRGB)
}

func (inv *Inventory) slot(k Kind) *int {
	switch k {
	case KindMirror:
		return &inv.Mirrors
	case KindSplitter:
		return &inv.Splitters
	case KindSplitterRGB:
		return &inv.SplittersRGB
	default:
		return nil
	}
}

// take decrements the count for k. It fails when nothing is left.
func (inv *Inventory) take(k Kind) bool {
	n := inv.slot(k)
	if n == nil || *n <= 0 {
		return false
	}
	*n--
	return true
}

// give returns one item of kind k.
func (inv *Inventory) give(k Kind) {
	if n := inv.slot(k); n != nil {
		*n++
	}
}
