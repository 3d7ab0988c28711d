// Package core provides the shared vocabulary of the game: geometry, the
// character screen buffer, directions and runtime configuration.
// It has no dependency on the terminal layer so game logic stays testable.
package core

// Rect is an integer rectangle on the character screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Vec is a point in maze space, measured in pixels of the logical maze
// (cell size comes from the difficulty profile).
type Vec struct {
	X, Y float64
}

// Box is an axis-aligned box centered on a point with half extent R.
type Box struct {
	Center Vec
	R      float64
}

// MinX returns the left edge.
func (b Box) MinX() float64 { return b.Center.X - b.R }

// MaxX returns the right edge.
func (b Box) MaxX() float64 { return b.Center.X + b.R }

// MinY returns the top edge.
func (b Box) MinY() float64 { return b.Center.Y - b.R }

// MaxY returns the bottom edge.
func (b Box) MaxY() float64 { return b.Center.Y + b.R }

// CrossesVertical reports whether the segment x=x0, y in [y0,y1] passes
// through the interior of the box. Touching an edge does not count.
func (b Box) CrossesVertical(x0, y0, y1 float64) bool {
	return b.MinX() < x0 && x0 < b.MaxX() && b.MinY() < y1 && y0 < b.MaxY()
}

// CrossesHorizontal reports whether the segment y=y0, x in [x0,x1] passes
// through the interior of the box.
func (b Box) CrossesHorizontal(y0, x0, x1 float64) bool {
	return b.MinY() < y0 && y0 < b.MaxY() && b.MinX() < x1 && x0 < b.MaxX()
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

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
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
