package game

import (
	"math"

	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/maze"
)

// playerRadiusRatio is the player's half extent relative to the cell size.
const playerRadiusRatio = 0.3

// wallHit describes the first wall segment a box crosses.
type wallHit struct {
	vertical bool
	line     float64
}

// findWall returns a wall segment crossed by b, if any. Walls are
// zero-thickness segments on the grid lines; the outer border is always walled.
func findWall(m *maze.Maze, cs float64, b core.Box) (wallHit, bool) {
	rows, cols := m.Rows(), m.Cols()
	r0 := core.Clamp(int(math.Floor(b.MinY()/cs)), 0, rows-1)
	r1 := core.Clamp(int(math.Floor(b.MaxY()/cs)), 0, rows-1)
	c0 := core.Clamp(int(math.Floor(b.MinX()/cs)), 0, cols-1)
	c1 := core.Clamp(int(math.Floor(b.MaxX()/cs)), 0, cols-1)

	for c := c0; c <= c1+1; c++ {
		x := float64(c) * cs
		for r := r0; r <= r1; r++ {
			walled := c == 0 || c == cols || m.HasWall(r, c-1, core.DirRight)
			if walled && b.CrossesVertical(x, float64(r)*cs, float64(r+1)*cs) {
				return wallHit{vertical: true, line: x}, true
			}
		}
	}
	for r := r0; r <= r1+1; r++ {
		y := float64(r) * cs
		for c := c0; c <= c1; c++ {
			walled := r == 0 || r == rows || m.HasWall(r-1, c, core.DirDown)
			if walled && b.CrossesHorizontal(y, float64(c)*cs, float64(c+1)*cs) {
				return wallHit{vertical: false, line: y}, true
			}
		}
	}
	return wallHit{}, false
}

// moveBox advances the player by (dx, dy), one axis at a time in small
// sub-steps so it can never tunnel through a wall. A blocked axis is
// clamped against the wall and stops for the rest of the move.
// It reports whether any wall was touched.
func moveBox(m *maze.Maze, cs float64, b core.Box, dx, dy float64) (core.Box, bool) {
	maxStep := b.R / 2
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxStep))
	if steps == 0 {
		return b, false
	}
	sx, sy := dx/float64(steps), dy/float64(steps)

	hit := false
	for i := 0; i < steps; i++ {
		if sx != 0 {
			var blocked bool
			b, blocked = stepAxis(m, cs, b, sx, true)
			if blocked {
				hit = true
				sx = 0
			}
		}
		if sy != 0 {
			var blocked bool
			b, blocked = stepAxis(m, cs, b, sy, false)
			if blocked {
				hit = true
				sy = 0
			}
		}
		if sx == 0 && sy == 0 {
			break
		}
	}
	return b, hit
}

func stepAxis(m *maze.Maze, cs float64, b core.Box, d float64, horizontal bool) (core.Box, bool) {
	next := b
	if horizontal {
		next.Center.X += d
	} else {
		next.Center.Y += d
	}
	w, found := findWall(m, cs, next)
	if !found {
		return next, false
	}

	// A wall across the direction of travel: slide up to touch it.
	if w.vertical == horizontal {
		clamped := b
		offset := b.R
		if d > 0 {
			offset = -b.R
		}
		if horizontal {
			clamped.Center.X = w.line + offset
		} else {
			clamped.Center.Y = w.line + offset
		}
		if _, still := findWall(m, cs, clamped); !still {
			return clamped, true
		}
	}
	return b, true
}
