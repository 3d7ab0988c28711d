// Package maze builds seeded perfect mazes and answers topology queries
// about them. A maze is a spanning tree over the grid: every cell is
// reachable from every other cell along exactly one path.
package maze

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/rng"
)

// DefaultEventDensity is the share of cells sampled as event cells.
const DefaultEventDensity = 0.05

// Pos is a grid coordinate.
type Pos struct {
	Row int
	Col int
}

// String returns the cell identifier used for event bookkeeping.
func (p Pos) String() string {
	return fmt.Sprintf("%d-%d", p.Row, p.Col)
}

// Step returns the neighboring position in the given direction.
func (p Pos) Step(d core.Direction) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the grid distance between two positions.
func Manhattan(a, b Pos) int {
	return core.Abs(a.Row-b.Row) + core.Abs(a.Col-b.Col)
}

// Walls holds the four wall flags of a cell. True means the wall blocks movement.
type Walls struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// Has reports whether the wall on side d is present.
func (w Walls) Has(d core.Direction) bool {
	switch d {
	case core.DirUp:
		return w.Top
	case core.DirRight:
		return w.Right
	case core.DirDown:
		return w.Bottom
	case core.DirLeft:
		return w.Left
	}
	return true
}

func (w *Walls) clear(d core.Direction) {
	switch d {
	case core.DirUp:
		w.Top = false
	case core.DirRight:
		w.Right = false
	case core.DirDown:
		w.Bottom = false
	case core.DirLeft:
		w.Left = false
	}
}

// Cell is one grid unit of the maze.
type Cell struct {
	Row     int
	Col     int
	Walls   Walls
	Visited bool
	// Event marks a cell that asks a question the first time it is entered.
	Event bool
	// Consumed is set once the event has fired.
	Consumed bool
}

// Pos returns the cell's coordinate.
func (c Cell) Pos() Pos {
	return Pos{Row: c.Row, Col: c.Col}
}

// Maze is an immutable grid of cells, except for event consumption.
type Maze struct {
	rows    int
	cols    int
	seed    int64
	density float64
	grid    [][]Cell
}

type options struct {
	density float64
}

// Option configures maze generation.
type Option func(*options)

// WithEventDensity sets the event cell density P. Values are clamped to [0, 1].
func WithEventDensity(p float64) Option {
	return func(o *options) {
		o.density = core.ClampF(p, 0, 1)
	}
}

// Generate builds a maze using randomized depth-first backtracking from (0,0),
// then samples event cells with the same generator. Dimensions below 1 are
// raised to 1. The result depends only on (rows, cols, seed, density).
func Generate(rows, cols int, seed int64, opts ...Option) *Maze {
	o := options{density: DefaultEventDensity}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Maze{
		rows:    max(1, rows),
		cols:    max(1, cols),
		seed:    seed,
		density: o.density,
	}
	m.grid = make([][]Cell, m.rows)
	for r := range m.grid {
		m.grid[r] = make([]Cell, m.cols)
		for c := range m.grid[r] {
			m.grid[r][c] = Cell{
				Row:   r,
				Col:   c,
				Walls: Walls{Top: true, Right: true, Bottom: true, Left: true},
			}
		}
	}

	gen := rng.New(seed)
	m.carve(gen)
	m.placeEvents(gen)
	return m
}

func (m *Maze) carve(gen *rng.Random) {
	start := &m.grid[0][0]
	start.Visited = true
	stack := []Pos{{0, 0}}

	var candidates [4]core.Direction
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		n := 0
		for _, d := range core.Directions {
			next := cur.Step(d)
			if m.InBounds(next.Row, next.Col) && !m.grid[next.Row][next.Col].Visited {
				candidates[n] = d
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[gen.Intn(n)]
		next := cur.Step(d)
		m.openWall(cur, d)
		m.grid[next.Row][next.Col].Visited = true
		stack = append(stack, next)
	}
}

// openWall removes the shared wall on both sides.
func (m *Maze) openWall(from Pos, d core.Direction) {
	to := from.Step(d)
	m.grid[from.Row][from.Col].Walls.clear(d)
	m.grid[to.Row][to.Col].Walls.clear(d.Opposite())
}

func (m *Maze) placeEvents(gen *rng.Random) {
	draws := int(math.Floor(float64(m.rows*m.cols) * m.density))
	start, goal := m.Start(), m.Goal()
	for i := 0; i < draws; i++ {
		p := Pos{Row: gen.Intn(m.rows), Col: gen.Intn(m.cols)}
		if p == start || p == goal {
			continue
		}
		m.grid[p.Row][p.Col].Event = true
	}
}

// Rows returns the number of rows.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Maze) Cols() int { return m.cols }

// Seed returns the seed the maze was generated from.
func (m *Maze) Seed() int64 { return m.seed }

// Start returns the entry cell, always (0,0).
func (m *Maze) Start() Pos { return Pos{0, 0} }

// Goal returns the exit cell, always the bottom-right corner.
func (m *Maze) Goal() Pos { return Pos{m.rows - 1, m.cols - 1} }

// InBounds reports whether (row, col) lies on the grid.
func (m *Maze) InBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Cell returns a copy of the cell at (row, col).
// Out-of-bounds lookups return a fully walled cell.
func (m *Maze) Cell(row, col int) Cell {
	if !m.InBounds(row, col) {
		return Cell{Row: row, Col: col, Walls: Walls{true, true, true, true}}
	}
	return m.grid[row][col]
}

// HasWall reports whether the side d of (row, col) is walled.
func (m *Maze) HasWall(row, col int, d core.Direction) bool {
	if !m.InBounds(row, col) {
		return true
	}
	return m.grid[row][col].Walls.Has(d)
}

// Neighbors returns the cells reachable from (row, col) in one step.
func (m *Maze) Neighbors(row, col int) []Pos {
	if !m.InBounds(row, col) {
		return nil
	}
	var out []Pos
	for _, d := range core.Directions {
		if m.grid[row][col].Walls.Has(d) {
			continue
		}
		next := Pos{row, col}.Step(d)
		if m.InBounds(next.Row, next.Col) {
			out = append(out, next)
		}
	}
	return out
}

// RemovedWalls counts open passages between adjacent cells.
// For a generated maze this is always rows*cols-1.
func (m *Maze) RemovedWalls() int {
	n := 0
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			w := m.grid[r][c].Walls
			if c+1 < m.cols && !w.Right {
				n++
			}
			if r+1 < m.rows && !w.Bottom {
				n++
			}
		}
	}
	return n
}

// Reachable returns how many cells can be reached from the given position.
func (m *Maze) Reachable(from Pos) int {
	if !m.InBounds(from.Row, from.Col) {
		return 0
	}
	seen := make(map[Pos]bool, m.rows*m.cols)
	seen[from] = true
	queue := []Pos{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range m.Neighbors(cur.Row, cur.Col) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

// EventCells lists event cells in row-major order, consumed ones included.
func (m *Maze) EventCells() []Pos {
	var out []Pos
	for r := range m.grid {
		for c := range m.grid[r] {
			if m.grid[r][c].Event {
				out = append(out, Pos{r, c})
			}
		}
	}
	return out
}

// ConsumeEvent marks the event at (row, col) as used. It returns true only
// the first time an unconsumed event cell is consumed.
func (m *Maze) ConsumeEvent(row, col int) bool {
	if !m.InBounds(row, col) {
		return false
	}
	cell := &m.grid[row][col]
	if !cell.Event || cell.Consumed {
		return false
	}
	cell.Consumed = true
	return true
}

// String renders the maze as ASCII art. S marks the start, G the goal,
// ? a pending event cell and . a consumed one.
func (m *Maze) String() string {
	var sb strings.Builder

	sb.WriteString("+" + strings.Repeat("---+", m.cols) + "\n")
	for r := 0; r < m.rows; r++ {
		sb.WriteString("|")
		for c := 0; c < m.cols; c++ {
			cell := m.grid[r][c]
			sb.WriteString(" " + string(m.marker(cell)) + " ")
			if cell.Walls.Right {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n+")
		for c := 0; c < m.cols; c++ {
			if m.grid[r][c].Walls.Bottom {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Maze) marker(c Cell) rune {
	switch {
	case c.Pos() == m.Start():
		return 'S'
	case c.Pos() == m.Goal():
		return 'G'
	case c.Event && c.Consumed:
		return '.'
	case c.Event:
		return '?'
	}
	return ' '
}
