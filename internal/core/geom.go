// Package core provides the integer geometry shared by the grid, the widget
// runtime and the game widgets. It has no external dependencies.
package core

import "fmt"

// Vec is a 2D integer vector. X grows to the right, Y grows downward.
type Vec struct {
	X, Y int
}

// V is a convenience constructor for Vec.
func V(x, y int) Vec {
	return Vec{X: x, Y: y}
}

// Cardinal directions.
var (
	Up    = Vec{X: 0, Y: -1}
	Down  = Vec{X: 0, Y: 1}
	Left  = Vec{X: -1, Y: 0}
	Right = Vec{X: 1, Y: 0}
)

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// String returns a string representation of the vector.
func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// Edges are inclusive: Right is Pos.X+Size.X-1.
//
// A rectangle that is being dragged may carry a non-positive size; call
// Normalized before iterating over it.
type Rect struct {
	Pos  Vec
	Size Vec
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{Pos: V(x, y), Size: V(w, h)}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() int {
	return r.Pos.X
}

// Right returns the x-coordinate of the right edge (inclusive).
func (r Rect) Right() int {
	return r.Pos.X + r.Size.X - 1
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() int {
	return r.Pos.Y
}

// Bottom returns the y-coordinate of the bottom edge (inclusive).
func (r Rect) Bottom() int {
	return r.Pos.Y + r.Size.Y - 1
}

// Width returns the horizontal size.
func (r Rect) Width() int {
	return r.Size.X
}

// Height returns the vertical size.
func (r Rect) Height() int {
	return r.Size.Y
}

// BottomRight returns the bottom-right corner (inclusive).
func (r Rect) BottomRight() Vec {
	return V(r.Right(), r.Bottom())
}

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Vec {
	return V(r.Left(), r.Bottom())
}

// TopRight returns the top-right corner.
func (r Rect) TopRight() Vec {
	return V(r.Right(), r.Top())
}

// Contains returns true if p lies inside the rectangle, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Grow expands the rectangle by n cells on every side. A negative n shrinks it.
func (r Rect) Grow(n int) Rect {
	return Rect{
		Pos:  r.Pos.Sub(V(n, n)),
		Size: r.Size.Add(V(2*n, 2*n)),
	}
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Vec) Rect {
	return Rect{Pos: r.Pos.Add(d), Size: r.Size}
}

// Normalized flips axes with a non-positive size so the result starts at its
// minimum corner and has a strictly positive size. For a drag selection the
// result spans both the anchor cell and the cell under the cursor.
func (r Rect) Normalized() Rect {
	if r.Size.X > 0 && r.Size.Y > 0 {
		return r
	}
	n := r
	if r.Size.X <= 0 {
		left, right := r.Right(), r.Left()
		n.Pos.X = left
		n.Size.X = right - left + 1
	}
	if r.Size.Y <= 0 {
		top, bottom := r.Bottom(), r.Top()
		n.Pos.Y = top
		n.Size.Y = bottom - top + 1
	}
	return n
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
