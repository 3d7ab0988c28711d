package maze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/qmaze/internal/core"
)

func TestGenerateSpanningTree(t *testing.T) {
	tests := []struct {
		rows, cols int
		seed       int64
	}{
		{1, 1, 0},
		{1, 8, 3},
		{8, 1, 3},
		{2, 2, 42},
		{15, 15, 42},
		{20, 20, 1700000000000},
		{25, 25, -17},
		{7, 13, 99},
	}

	for _, tc := range tests {
		m := Generate(tc.rows, tc.cols, tc.seed)
		total := tc.rows * tc.cols

		assert.Equal(t, total-1, m.RemovedWalls(), "%dx%d seed %d", tc.rows, tc.cols, tc.seed)
		assert.Equal(t, total, m.Reachable(m.Start()), "%dx%d seed %d", tc.rows, tc.cols, tc.seed)
	}
}

func TestWallsSymmetric(t *testing.T) {
	m := Generate(12, 9, 5)
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			for _, d := range core.Directions {
				next := Pos{r, c}.Step(d)
				if !m.InBounds(next.Row, next.Col) {
					assert.True(t, m.HasWall(r, c, d), "border wall missing at %v %v", Pos{r, c}, d)
					continue
				}
				assert.Equal(t, m.HasWall(r, c, d), m.HasWall(next.Row, next.Col, d.Opposite()),
					"asymmetric wall between %v and %v", Pos{r, c}, next)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(15, 15, 42)
	b := Generate(15, 15, 42)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.EventCells(), b.EventCells())

	c := Generate(15, 15, 43)
	assert.NotEqual(t, a.String(), c.String(), "different seeds should differ")
}

func TestGenerateFixture(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "maze_15x15_seed42.golden"))
	require.NoError(t, err)

	m := Generate(15, 15, 42)
	assert.Equal(t, string(want), m.String())
	assert.Equal(t, []Pos{
		{0, 3}, {0, 5}, {1, 0}, {2, 14}, {4, 0}, {4, 11},
		{5, 7}, {9, 2}, {12, 4}, {12, 14}, {13, 11},
	}, m.EventCells())
	assert.Equal(t, Pos{14, 14}, m.Goal())
}

func TestSmallFixture(t *testing.T) {
	want := "" +
		"+---+---+---+---+\n" +
		"| S     |       |\n" +
		"+---+   +   +   +\n" +
		"|   |       |   |\n" +
		"+   +---+---+   +\n" +
		"|             G |\n" +
		"+---+---+---+---+\n"
	assert.Equal(t, want, Generate(3, 4, 7).String())
}

func TestEventCellsNeverAtStartOrGoal(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		m := Generate(4, 4, seed, WithEventDensity(1))
		for _, p := range m.EventCells() {
			require.NotEqual(t, m.Start(), p, "seed %d", seed)
			require.NotEqual(t, m.Goal(), p, "seed %d", seed)
		}
	}
}

func TestEventDensity(t *testing.T) {
	m := Generate(20, 20, 42)
	// floor(400*0.05) = 20 draws; duplicates and exclusions may lower the count.
	assert.LessOrEqual(t, len(m.EventCells()), 20)

	none := Generate(20, 20, 42, WithEventDensity(0))
	assert.Empty(t, none.EventCells())

	clamped := Generate(20, 20, 42, WithEventDensity(-3))
	assert.Empty(t, clamped.EventCells())
}

func TestSingleCell(t *testing.T) {
	m := Generate(0, -2, 9)
	require.Equal(t, 1, m.Rows())
	require.Equal(t, 1, m.Cols())

	assert.Equal(t, m.Start(), m.Goal())
	assert.Equal(t, 0, m.RemovedWalls())
	assert.Empty(t, m.EventCells())
	assert.Empty(t, m.Neighbors(0, 0))
	assert.Equal(t, "+---+\n| S |\n+---+\n", m.String())
}

func TestConsumeEvent(t *testing.T) {
	m := Generate(15, 15, 42)
	p := m.EventCells()[0]

	assert.True(t, m.ConsumeEvent(p.Row, p.Col))
	assert.False(t, m.ConsumeEvent(p.Row, p.Col), "second consume must be a no-op")
	assert.True(t, m.Cell(p.Row, p.Col).Consumed)
	assert.Contains(t, m.EventCells(), p, "consumed cells stay listed")

	assert.False(t, m.ConsumeEvent(0, 0), "start is never an event")
	assert.False(t, m.ConsumeEvent(-1, 4))
}

func TestNeighborsFollowOpenWalls(t *testing.T) {
	m := Generate(3, 4, 7)

	assert.Equal(t, []Pos{{0, 1}}, m.Neighbors(0, 0))
	assert.ElementsMatch(t, []Pos{{0, 0}, {1, 1}}, m.Neighbors(0, 1))
	assert.Nil(t, m.Neighbors(5, 5))
}

func TestOutOfBoundsCell(t *testing.T) {
	m := Generate(3, 3, 1)
	c := m.Cell(10, 10)
	assert.True(t, c.Walls.Top && c.Walls.Right && c.Walls.Bottom && c.Walls.Left)
	assert.True(t, m.HasWall(-1, 0, core.DirDown))
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 28, Manhattan(Pos{0, 0}, Pos{14, 14}))
	assert.Equal(t, 3, Manhattan(Pos{2, 5}, Pos{1, 3}))
	assert.Equal(t, "4-11", Pos{4, 11}.String())
}
