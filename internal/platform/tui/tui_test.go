package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/qmaze/internal/config"
	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/game"
	"github.com/vovakirdan/qmaze/internal/maze"
	"github.com/vovakirdan/qmaze/internal/questions"
	"github.com/vovakirdan/qmaze/internal/remote"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("w"), core.ActionUp},
		{runes("s"), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect},
		{runes("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runes("b"), core.ActionBack},
		{runes("q"), core.ActionQuit},
		{runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, km.MapKey(tt.msg), tt.msg.String())
	}
}

func TestOptionKey(t *testing.T) {
	i, ok := optionKey(runes("3"))
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = optionKey(runes("5"))
	assert.False(t, ok)
	_, ok = optionKey(runes("0"))
	assert.False(t, ok)
}

func TestKeyTrackerHoldWindow(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	kt := newKeyTracker()
	kt.press(core.ActionUp, t0)
	kt.press(core.ActionPause, t0)
	kt.press(core.ActionNone, t0)

	snap := kt.snapshot(t0.Add(100 * time.Millisecond))
	assert.True(t, snap.Directions.Up)
	assert.False(t, snap.Directions.Down)
	assert.True(t, snap.Pause)
	assert.False(t, snap.Select)

	snap = kt.snapshot(t0.Add(repeatWindow))
	assert.True(t, snap.Directions.Up, "first press bridges the auto-repeat delay")
	assert.False(t, snap.Pause, "buttons use the short window")

	snap = kt.snapshot(t0.Add(firstHoldWindow))
	assert.False(t, snap.Directions.Up, "released after the hold window")

	kt.press(core.ActionRight, t0)
	kt.release()
	assert.False(t, kt.snapshot(t0).Directions.Right)
}

func TestKeyTrackerAutoRepeat(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	kt := newKeyTracker()

	// A typical terminal waits 400 ms before repeating, then repeats every 33 ms.
	kt.press(core.ActionRight, t0)
	for at := 50 * time.Millisecond; at < 400*time.Millisecond; at += 50 * time.Millisecond {
		assert.True(t, kt.snapshot(t0.Add(at)).Directions.Right, "held at %v", at)
	}
	for at := 400 * time.Millisecond; at <= 500*time.Millisecond; at += 33 * time.Millisecond {
		kt.press(core.ActionRight, t0.Add(at))
		assert.True(t, kt.snapshot(t0.Add(at+10*time.Millisecond)).Directions.Right)
	}

	last := 499 * time.Millisecond
	assert.True(t, kt.snapshot(t0.Add(last+repeatWindow-time.Millisecond)).Directions.Right)
	assert.False(t, kt.snapshot(t0.Add(last+repeatWindow)).Directions.Right, "released once repeats stop")

	kt.press(core.ActionPause, t0)
	kt.press(core.ActionPause, t0.Add(200*time.Millisecond))
	assert.True(t, kt.snapshot(t0.Add(250*time.Millisecond)).Pause)
}

func TestFrameDelta(t *testing.T) {
	t0 := time.Unix(100, 0)
	assert.Zero(t, frameDelta(time.Time{}, t0))
	assert.Zero(t, frameDelta(t0, t0.Add(-time.Second)))
	assert.Equal(t, 16*time.Millisecond, frameDelta(t0, t0.Add(16*time.Millisecond)))
	assert.Equal(t, maxFrame, frameDelta(t0, t0.Add(3*time.Second)))
}

func TestMazeGlyphsMatchASCII(t *testing.T) {
	m := maze.Generate(6, 9, 42, maze.WithEventDensity(0.2))
	m.ConsumeEvent(m.EventCells()[0].Row, m.EventCells()[0].Col)

	w, h := mazeSize(m)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _ := mazeGlyph(m, x, y)
			sb.WriteRune(r)
		}
		sb.WriteRune('\n')
	}
	assert.Equal(t, m.String(), sb.String())

	r, c := mazeGlyph(m, -1, 0)
	assert.Equal(t, ' ', r)
	assert.Equal(t, core.ColorDefault, c)
}

func TestPlayerGlyph(t *testing.T) {
	gx, gy := playerGlyph(core.Box{Center: core.Vec{X: 25, Y: 25}, R: 15}, 50)
	assert.Equal(t, 2, gx)
	assert.Equal(t, 1, gy)

	// On a grid line the marker is nudged into the corridor.
	gx, gy = playerGlyph(core.Box{Center: core.Vec{X: 50, Y: 50}, R: 15}, 50)
	assert.Equal(t, 5, gx)
	assert.Equal(t, 3, gy)
}

func TestCamera(t *testing.T) {
	tests := []struct {
		name           string
		fx, fy, mw, mh int
		vw, vh         int
		wantX, wantY   int
	}{
		{"centered", 100, 40, 200, 80, 80, 20, 60, 30},
		{"top left clamp", 3, 2, 200, 80, 80, 20, 0, 0},
		{"bottom right clamp", 199, 79, 200, 80, 80, 20, 120, 60},
		{"maze smaller than view", 10, 5, 41, 21, 80, 24, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := camera(tt.fx, tt.fy, tt.mw, tt.mh, tt.vw, tt.vh)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestClock(t *testing.T) {
	assert.Equal(t, "4:30", clock(270*time.Second))
	assert.Equal(t, "0:01", clock(200*time.Millisecond))
	assert.Equal(t, "0:00", clock(0))
}

// Model flow tests

type stubLoader struct{ bank *questions.Bank }

func (l stubLoader) Load(context.Context) (*questions.Bank, error) { return l.bank, nil }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

type harness struct {
	t     *testing.T
	clock *fakeClock
	m     Model
}

func newHarness(t *testing.T, p config.Profile, stream *remote.Stream) *harness {
	t.Helper()
	profiles, err := config.NewProfiles(map[config.Difficulty]config.Profile{config.DifficultyMedium: p})
	require.NoError(t, err)

	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	bank := &questions.Bank{Questions: []questions.Question{
		{ID: "q1", Text: "Two plus two?", Options: []string{"4", "3", "5", "22"}, Correct: 0},
	}}
	m := NewModel(Deps{
		Profiles:  profiles,
		Questions: stubLoader{bank: bank},
		Remote:    stream,
		Logger:    log.New(io.Discard),
		Now:       clk.now,
	}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 1, PlayerName: "Ada"})
	return &harness{t: t, clock: clk, m: m}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	require.True(h.t, ok)
	h.m = m
	return cmd
}

// start picks the first menu entry and completes loading.
func (h *harness) start() {
	h.t.Helper()
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(h.t, screenLoading, h.m.screen)
	require.NotNil(h.t, cmd)
	h.send(cmd())
	require.Equal(h.t, screenPlaying, h.m.screen)
}

func (h *harness) tick(dt time.Duration) tea.Cmd {
	h.clock.t = h.clock.t.Add(dt)
	return h.send(TickMsg(h.clock.t))
}

func corridorProfile(cols int) config.Profile {
	p, _ := config.DefaultProfiles().Lookup(config.DifficultyMedium)
	p.MazeRows, p.MazeCols = 1, cols
	p.EventDensity = 0
	p.QuestionInterval = 1000
	return p
}

func TestModelPlaysToGoal(t *testing.T) {
	h := newHarness(t, corridorProfile(2), nil)
	h.start()
	assert.Equal(t, "Ada", h.m.menu.PlayerName())

	var cmd tea.Cmd
	for i := 0; i < 40 && h.m.screen == screenPlaying; i++ {
		h.send(tea.KeyMsg{Type: tea.KeyRight})
		cmd = h.tick(50 * time.Millisecond)
	}

	require.Equal(t, screenResults, h.m.screen)
	out, ok := h.m.session.Outcome()
	require.True(t, ok)
	assert.Equal(t, game.ResultWin, out.Result)
	assert.Equal(t, "Ada", out.PlayerName)
	assert.Equal(t, "medium", out.Difficulty)

	require.NotNil(t, cmd, "results submit the outcome")
	h.send(cmd())
	assert.True(t, h.m.saved)
	assert.NoError(t, h.m.saveErr)
	assert.Contains(t, h.m.View(), "MAZE COMPLETE!")

	h.send(runes("b"))
	assert.Equal(t, screenMenu, h.m.screen)
}

func TestModelQuestionRound(t *testing.T) {
	p := corridorProfile(3)
	p.QuestionInterval = 0.5
	h := newHarness(t, p, nil)
	h.start()

	for i := 0; i < 20 && h.m.round == nil; i++ {
		h.tick(50 * time.Millisecond)
	}
	require.NotNil(t, h.m.round)
	assert.Equal(t, game.PhaseQuestionActive, h.m.session.Phase())
	assert.Contains(t, h.m.View(), "Two plus two?")

	h.send(runes("1"))
	require.True(t, h.m.round.Answered())

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(50 * time.Millisecond)

	assert.Nil(t, h.m.round, "enter skips the feedback")
	assert.Equal(t, game.PhasePlaying, h.m.session.Phase())
	answers := h.m.session.Answers()
	require.Len(t, answers, 1)
	assert.True(t, answers[0].Correct)
	assert.Equal(t, 3, h.m.session.Lives())
}

func TestModelQuestionKeyNavigation(t *testing.T) {
	p := corridorProfile(3)
	p.QuestionInterval = 0.5
	h := newHarness(t, p, nil)
	h.start()

	for i := 0; i < 20 && h.m.round == nil; i++ {
		h.send(tea.KeyMsg{Type: tea.KeyDown})
		h.tick(50 * time.Millisecond)
	}
	require.NotNil(t, h.m.round)
	h.tick(50 * time.Millisecond)
	assert.Equal(t, 0, h.m.round.Selected(), "a key held before the question does not scroll")

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, h.m.round.Selected())
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, h.m.round.Selected(), "auto-repeat is throttled")

	for range 5 {
		h.tick(50 * time.Millisecond)
	}
	assert.Equal(t, 1, h.m.round.Selected(), "one tap moves once")
	h.send(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, h.m.round.Selected())
}

func TestModelPauseAndAbandon(t *testing.T) {
	h := newHarness(t, corridorProfile(3), nil)
	h.start()
	h.tick(50 * time.Millisecond)

	h.send(runes("p"))
	h.tick(50 * time.Millisecond)
	require.Equal(t, game.PhasePaused, h.m.session.Phase())
	assert.Contains(t, h.m.View(), "PAUSED")

	elapsed := h.m.session.Elapsed()
	h.tick(time.Second)
	assert.Equal(t, elapsed, h.m.session.Elapsed())

	h.send(runes("b"))
	assert.Equal(t, screenMenu, h.m.screen)
}

func TestModelRemoteController(t *testing.T) {
	stream := remote.NewStream(8)
	h := newHarness(t, corridorProfile(2), stream)
	h.start()

	for i := 0; i < 40 && h.m.screen == screenPlaying; i++ {
		stream.Send(remote.DirectionEvent(core.DirectionalState{Right: true}))
		h.tick(50 * time.Millisecond)
	}

	require.Equal(t, screenResults, h.m.screen)
	out, _ := h.m.session.Outcome()
	assert.Equal(t, game.ResultWin, out.Result)
}

func TestModelHistoryWithoutStore(t *testing.T) {
	h := newHarness(t, corridorProfile(2), nil)
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, screenHistory, h.m.screen)
	assert.Contains(t, h.m.View(), "No sessions recorded yet.")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, h.m.screen)
}

func TestModelQuit(t *testing.T) {
	h := newHarness(t, corridorProfile(2), nil)
	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.m.View())
}
