package core

import (
	"fmt"
	"math"
)

// snapEpsilon is the magnitude below which a direction component is treated as zero.
const snapEpsilon = 1e-9

// Vec2 is a point or direction in world space.
// One world unit equals one cell; Y grows downward like Cell.
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// String returns a string representation of the vector.
func (v Vec2) String() string {
	return fmt.Sprintf("(%.3g,%.3g)", v.X, v.Y)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Reflect mirrors v about a surface with unit normal n: v - 2(v·n)n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Snap zeroes components that are within rounding error of zero and
// renormalizes, so axis-aligned beams stay exactly axis-aligned.
func (v Vec2) Snap() Vec2 {
	if math.Abs(v.X) < snapEpsilon {
		v.X = 0
	}
	if math.Abs(v.Y) < snapEpsilon {
		v.Y = 0
	}
	return v.Normalize()
}

// ApproxEqual reports whether v and o differ by less than eps on each axis.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}

// FromDegrees returns the unit vector for an angle measured counter-clockwise
// from +X as seen on screen (so 90 points up).
func FromDegrees(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{X: math.Cos(rad), Y: -math.Sin(rad)}.Snap()
}
