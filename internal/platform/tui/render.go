package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/game"
	"github.com/vovakirdan/qmaze/internal/maze"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:        lipgloss.NewStyle(),
	core.ColorWall:           lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	core.ColorFloor:          lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
	core.ColorPlayer:         lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorPlayerShielded: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorEvent:          lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorEventUsed:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorStart:          lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorGoal:           lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorText:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorWarn:           lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorGood:           lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBad:            lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Each maze cell is drawn as a 4x2 block of characters, walls included,
// the same layout as Maze.String.
const (
	glyphW = 4
	glyphH = 2
)

// mazeSize returns the maze's size in characters.
func mazeSize(m *maze.Maze) (w, h int) {
	return m.Cols()*glyphW + 1, m.Rows()*glyphH + 1
}

// mazeGlyph returns the character at (gx, gy) of the rendered maze.
func mazeGlyph(m *maze.Maze, gx, gy int) (rune, core.Color) {
	w, h := mazeSize(m)
	if gx < 0 || gy < 0 || gx >= w || gy >= h {
		return ' ', core.ColorDefault
	}
	onV, onH := gx%glyphW == 0, gy%glyphH == 0
	col, row := gx/glyphW, gy/glyphH

	switch {
	case onV && onH:
		return '+', core.ColorWall
	case onH:
		if row == 0 || row == m.Rows() || m.HasWall(row-1, col, core.DirDown) {
			return '-', core.ColorWall
		}
		return ' ', core.ColorDefault
	case onV:
		if col == 0 || col == m.Cols() || m.HasWall(row, col-1, core.DirRight) {
			return '|', core.ColorWall
		}
		return ' ', core.ColorDefault
	}

	if gx%glyphW != glyphW/2 {
		return ' ', core.ColorDefault
	}
	c := m.Cell(row, col)
	switch {
	case c.Pos() == m.Start():
		return 'S', core.ColorStart
	case c.Pos() == m.Goal():
		return 'G', core.ColorGoal
	case c.Event && c.Consumed:
		return '.', core.ColorEventUsed
	case c.Event:
		return '?', core.ColorEvent
	}
	return ' ', core.ColorDefault
}

// playerGlyph converts the player's pixel position to maze characters.
func playerGlyph(b core.Box, cellSize float64) (gx, gy int) {
	gx = int(math.Round(b.Center.X / cellSize * glyphW))
	gy = int(math.Round(b.Center.Y / cellSize * glyphH))
	// Keep the marker off the wall lines.
	if gx%glyphW == 0 {
		gx++
	}
	if gy%glyphH == 0 {
		gy++
	}
	return gx, gy
}

// camera returns the top-left maze character shown in a view of size
// (vw, vh) so that (fx, fy) stays centered where the maze allows.
func camera(fx, fy, mw, mh, vw, vh int) (x, y int) {
	x = core.Clamp(fx-vw/2, 0, max(mw-vw, 0))
	y = core.Clamp(fy-vh/2, 0, max(mh-vh, 0))
	return x, y
}

// drawMaze renders the session's maze into area, following the player.
func drawMaze(s *core.Screen, sess *game.Session, area core.Rect) {
	m := sess.Maze()
	if m == nil {
		return
	}
	mw, mh := mazeSize(m)
	px, py := playerGlyph(sess.Player(), sess.Profile().CellSize)
	ox, oy := camera(px, py, mw, mh, area.W, area.H)

	// Center small mazes in the view.
	padX := max((area.W-mw)/2, 0)
	padY := max((area.H-mh)/2, 0)

	for y := 0; y < area.H; y++ {
		for x := 0; x < area.W; x++ {
			r, c := mazeGlyph(m, ox+x-padX, oy+y-padY)
			s.SetColored(area.X+x, area.Y+y, r, c)
		}
	}

	pc := core.ColorPlayer
	if sess.Invulnerable() {
		pc = core.ColorPlayerShielded
	}
	s.SetColored(area.X+px-ox+padX, area.Y+py-oy+padY, '@', pc)
}

// drawHUD renders the status line at row y.
func drawHUD(s *core.Screen, y int, snap game.Snapshot) {
	hearts := strings.Repeat("♥", snap.Lives) + strings.Repeat("♡", max(snap.MaxLives-snap.Lives, 0))
	s.DrawText(1, y, hearts, core.ColorBad)

	status := fmt.Sprintf("Score %d   Time %s   Next ? %s",
		snap.Score, clock(snap.Remaining), clock(snap.UntilQuestion))
	s.DrawText(snap.MaxLives+3, y, status, core.ColorText)

	if snap.Invulnerable {
		s.DrawText(s.Width()-10, y, "SHIELDED", core.ColorPlayerShielded)
	}
}

// clock formats a duration as m:ss, rounding up.
func clock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
