package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/input"
)

// KeyMap defines the key bindings used during play.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Pause  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Pause, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a semantic action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Select):
		return core.ActionSelect
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	}
	return core.ActionNone
}

// optionKey returns the option index for the number keys 1-4.
func optionKey(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '4' {
		return int(s[0] - '1'), true
	}
	return 0, false
}

// Terminals only report presses and auto-repeats, never releases, so a
// key counts as held for a window after its last press event. Auto-repeat
// starts after a delay of 250 to 500 ms, so a direction's first press is
// held long enough to bridge that gap; once repeats arrive the window
// shrinks to repeatWindow.
const (
	firstHoldWindow = 500 * time.Millisecond
	repeatWindow    = 150 * time.Millisecond
)

// keyTracker turns press events into a polled held-key snapshot.
type keyTracker struct {
	last      map[core.Action]time.Time
	repeating map[core.Action]bool
}

func newKeyTracker() *keyTracker {
	return &keyTracker{
		last:      make(map[core.Action]time.Time),
		repeating: make(map[core.Action]bool),
	}
}

func (t *keyTracker) press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	t.repeating[a] = t.held(a, now)
	t.last[a] = now
}

// window is the hold window for a. Buttons always use repeatWindow so a
// quick second tap still reads as a fresh press.
func (t *keyTracker) window(a core.Action) time.Duration {
	if _, ok := a.Direction(); ok && !t.repeating[a] {
		return firstHoldWindow
	}
	return repeatWindow
}

func (t *keyTracker) held(a core.Action, now time.Time) bool {
	at, ok := t.last[a]
	return ok && now.Sub(at) < t.window(a)
}

// snapshot reports what the keyboard holds at now.
func (t *keyTracker) snapshot(now time.Time) input.KeyboardSnapshot {
	var snap input.KeyboardSnapshot
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if d, ok := a.Direction(); ok {
			snap.Directions.Set(d, t.held(a, now))
		}
	}
	snap.Select = t.held(core.ActionSelect, now)
	snap.Pause = t.held(core.ActionPause, now)
	return snap
}

// release forgets every held key.
func (t *keyTracker) release() {
	clear(t.last)
	clear(t.repeating)
}
