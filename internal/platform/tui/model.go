package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/qmaze/internal/config"
	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/game"
	"github.com/vovakirdan/qmaze/internal/input"
	"github.com/vovakirdan/qmaze/internal/questions"
	"github.com/vovakirdan/qmaze/internal/remote"
	"github.com/vovakirdan/qmaze/internal/storage"
)

// noticeDuration is how long a play notice stays on the HUD.
const noticeDuration = 2 * time.Second

type screenID int

const (
	screenMenu screenID = iota
	screenLoading
	screenPlaying
	screenResults
	screenHistory
	screenError
)

// Deps are the collaborators shared by every session the model runs.
type Deps struct {
	Profiles  *config.Profiles
	Questions game.Loader
	Store     *storage.Store // nil disables persistence
	Remote    *remote.Stream // nil when no controller is attached
	Logger    *log.Logger
	Now       func() time.Time
}

// loadedMsg reports the end of a session's loading phase.
type loadedMsg struct {
	session *game.Session
	err     error
}

// savedMsg reports the end of an outcome submission.
type savedMsg struct {
	session *game.Session
	err     error
}

// Model is the top-level Bubble Tea model: menu, play, results, history.
type Model struct {
	deps   Deps
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	now    func() time.Time

	screen  screenID
	menu    MenuModel
	history HistoryModel

	difficulty config.Difficulty
	session    *game.Session
	input      *input.State
	tracker    *keyTracker
	round      *questions.Round
	lastTick   time.Time
	buffer     *core.Screen

	loadErr  error
	saved    bool
	saveErr  error
	quitting bool
}

// NewModel creates the model in the menu.
func NewModel(deps Deps, cfg core.RuntimeConfig) Model {
	if deps.Profiles == nil {
		deps.Profiles = config.DefaultProfiles()
	}
	if deps.Questions == nil {
		deps.Questions = questions.Loader{Logger: deps.Logger}
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	m := Model{
		deps:    deps,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		now:     deps.Now,
		input:   input.New(input.WithClock(deps.Now)),
		tracker: newKeyTracker(),
		buffer:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
	}
	m.menu = NewMenuModel(deps.Profiles, cfg.PlayerName, config.Difficulty(cfg.Difficulty), cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("qmaze")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case loadedMsg:
		return m.handleLoaded(msg)

	case savedMsg:
		if msg.session == m.session {
			m.saved, m.saveErr = true, msg.err
		}
		return m, nil

	case TickMsg:
		if m.screen != screenPlaying {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.buffer.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.menu, _ = m.menu.Update(msg)
	if m.screen == screenHistory {
		m.history, _ = m.history.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenPlaying:
		return m.handlePlayKey(msg)
	case screenResults:
		return m.handleResultsKey(msg)
	case screenHistory:
		return m.updateHistory(msg)
	case screenError:
		m.screen = screenMenu
		return m, nil
	}
	// Loading: only quitting is possible.
	if m.keys.MapKey(msg) == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	it, ok := m.menu.take()
	if !ok {
		return m, cmd
	}
	switch it.choice {
	case choiceQuit:
		m.quitting = true
		return m, tea.Quit
	case choiceHistory:
		return m.openHistory()
	case choicePlay:
		return m.startSession(it.difficulty)
	}
	return m, cmd
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	var store HistoryStore
	if m.deps.Store != nil {
		store = m.deps.Store
	}
	var diffs []string
	for _, k := range m.deps.Profiles.Keys() {
		diffs = append(diffs, string(k))
	}
	m.history = NewHistoryModel(store, diffs, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenHistory
	return m, nil
}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		m.screen = screenMenu
	}
	return m, cmd
}

// startSession creates a session for the difficulty and begins loading it.
func (m Model) startSession(d config.Difficulty) (tea.Model, tea.Cmd) {
	profile := m.deps.Profiles.Profile(string(d))
	seed := m.config.Seed
	if seed == 0 {
		seed = m.now().UnixMilli()
	}

	m.difficulty = d
	m.session = game.New(profile,
		game.WithPlayer(m.menu.PlayerName()),
		game.WithDifficulty(string(d)),
		game.WithSeed(seed),
		game.WithLogger(m.deps.Logger),
	)
	m.round = nil
	m.loadErr = nil
	m.saved, m.saveErr = false, nil
	m.screen = screenLoading

	return m, loadCmd(m.session, m.deps.Questions)
}

// loadCmd runs the session's loading phase off the UI loop.
func loadCmd(s *game.Session, loader game.Loader) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{session: s, err: s.Start(context.Background(), loader)}
	}
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.session {
		return m, nil
	}
	if msg.err != nil {
		m.loadErr = msg.err
		m.screen = screenError
		return m, nil
	}

	m.screen = screenPlaying
	m.input.Reset()
	m.tracker.release()
	m.lastTick = time.Time{}
	return m, tickCmd(m.config.TickRate)
}

// handlePlayKey records key presses for the next tick.
func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.round != nil {
		if i, ok := optionKey(msg); ok {
			m.round.Pick(i)
			return m, nil
		}
		// Option navigation follows key events; the round's cooldown
		// throttles auto-repeat.
		switch m.keys.MapKey(msg) {
		case core.ActionUp:
			m.round.Move(-1)
			return m, nil
		case core.ActionDown:
			m.round.Move(1)
			return m, nil
		}
	}

	a := m.keys.MapKey(msg)
	switch a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.session.Phase() == game.PhasePaused {
			m.deps.Logger.Info("session abandoned", "session", m.session.ID())
			m.screen = screenMenu
			return m, nil
		}
	}
	m.tracker.press(a, m.now())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.now()
	dt := frameDelta(m.lastTick, now)
	m.lastTick = now

	if m.deps.Remote != nil {
		if evts := m.deps.Remote.Drain(); len(evts) > 0 {
			m.input.ApplyRemote(evts...)
		}
	}
	m.input.UpdateFromKeyboard(m.tracker.snapshot(now))

	if m.round == nil {
		if pr := m.session.Prompt(); pr != nil {
			m.round = questions.NewRound(pr.Question, pr.TimeLimit)
			// Movement keys still held must not scroll the options.
			m.tracker.release()
			m.input.Reset()
		}
	}
	if m.round != nil {
		m.tickRound(dt)
	} else {
		m.session.Tick(dt, m.input)
	}
	m.input.EndFrame()

	if m.session.Phase() == game.PhaseEnded && m.round == nil {
		m.screen = screenResults
		return m, m.submit()
	}
	return m, tickCmd(m.config.TickRate)
}

// tickRound drives the open question and hands the answer back.
func (m *Model) tickRound(dt time.Duration) {
	r := m.round
	if !r.Answered() {
		dirs := m.input.Directions()
		switch {
		case dirs.Up && !dirs.Down:
			r.Move(-1)
		case dirs.Down && !dirs.Up:
			r.Move(1)
		}
		if m.input.SelectPressed() {
			r.Confirm()
		}
	} else if m.input.SelectPressed() {
		r.SkipFeedback()
	}

	r.Tick(dt)
	if !r.Done() {
		return
	}

	ans, _ := r.Answer()
	if err := m.session.Resolve(ans); err != nil {
		m.deps.Logger.Warn("could not resolve question", "err", err)
	}
	m.round = nil
	m.input.Reset()
}

// submit stores the outcome in the background.
func (m Model) submit() tea.Cmd {
	out, ok := m.session.Outcome()
	if !ok {
		return nil
	}
	var sink game.Sink
	if m.deps.Store != nil {
		sink = m.deps.Store
	}
	s, logger := m.session, m.deps.Logger
	return func() tea.Msg {
		return savedMsg{session: s, err: game.Submit(context.Background(), sink, out, logger)}
	}
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "r" || msg.String() == "enter":
		return m.startSession(m.difficulty)
	case msg.String() == "h":
		return m.openHistory()
	}
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack, core.ActionPause:
		m.screen = screenMenu
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenMenu:
		return m.menu.View()
	case screenHistory:
		return m.history.View()
	case screenLoading:
		return m.centered(dimStyle.Render("Loading questions..."))
	case screenError:
		return m.centered(panelStyle.Render(
			badStyle.Render("Could not start the session") + "\n\n" +
				m.loadErr.Error() + "\n\n" +
				dimStyle.Render("Press any key to return to the menu")))
	case screenResults:
		return m.centered(m.resultsView())
	}
	return m.playView()
}

func (m Model) centered(s string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, s)
}

// playView renders the maze, the HUD, and any overlay.
func (m Model) playView() string {
	snap := m.session.Snapshot()
	if m.round != nil {
		hud := core.NewScreen(m.config.ScreenW, 1)
		drawHUD(hud, 0, snap)
		return RenderScreen(hud) + "\n" +
			lipgloss.Place(m.config.ScreenW, max(m.config.ScreenH-1, 0), lipgloss.Center, lipgloss.Center,
				questionView(m.round, min(m.config.ScreenW-4, 70)))
	}

	s := m.buffer
	s.Clear()
	w, h := s.Width(), s.Height()
	drawMaze(s, m.session, core.NewRect(0, 0, w, max(h-2, 0)))
	drawHUD(s, h-2, snap)

	if notices := m.session.Notices(); len(notices) > 0 {
		last := notices[len(notices)-1]
		if snap.Elapsed-last.At < noticeDuration {
			s.DrawTextCentered(h-3, " "+last.Message+" ", core.ColorWarn)
		}
	}
	if snap.Phase == game.PhasePaused {
		box := core.NewRect(w/2-12, h/2-2, 24, 5)
		s.DrawBox(box, core.ColorText)
		s.DrawTextCentered(h/2-1, "PAUSED", core.ColorWarn)
		s.DrawTextCentered(h/2, "p: resume  b: menu", core.ColorText)
	}

	return RenderScreen(s) + "\n" + dimStyle.Render(m.help.View(m.keys))
}

func (m Model) resultsView() string {
	out, _ := m.session.Outcome()
	snap := m.session.Snapshot()

	var b strings.Builder
	if out.Result == game.ResultWin {
		b.WriteString(goodStyle.Render("MAZE COMPLETE!"))
	} else {
		b.WriteString(badStyle.Render("GAME OVER"))
	}
	b.WriteString("\n\n")

	reason := map[game.EndReason]string{
		game.EndGoal:           "Reached the goal",
		game.EndTimeout:        "Ran out of time",
		game.EndLivesExhausted: "Ran out of lives",
	}[out.Reason]
	fmt.Fprintf(&b, "%s\n\n", reason)
	fmt.Fprintf(&b, "Player      %s\n", out.PlayerName)
	fmt.Fprintf(&b, "Difficulty  %s\n", out.Difficulty)
	fmt.Fprintf(&b, "Score       %d", out.Score)
	if snap.Bonus > 0 {
		fmt.Fprintf(&b, "  (bonus %d)", snap.Bonus)
	}
	fmt.Fprintf(&b, "\nTime        %d:%02d\n", out.TimeTaken/60, out.TimeTaken%60)
	fmt.Fprintf(&b, "Answers     %d/%d correct\n", out.Correct(), len(out.Answers))
	fmt.Fprintf(&b, "Events      %d found\n", m.session.VisitedEvents())
	fmt.Fprintf(&b, "Seed        %d\n\n", out.Seed)

	switch {
	case m.deps.Store == nil:
		b.WriteString(dimStyle.Render("History disabled"))
	case !m.saved:
		b.WriteString(dimStyle.Render("Saving..."))
	case m.saveErr != nil:
		b.WriteString(warnStyle.Render("Could not save: " + m.saveErr.Error()))
	default:
		b.WriteString(dimStyle.Render("Saved to history"))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r: play again  h: history  b: menu  q: quit"))

	return panelStyle.Render(b.String())
}

// Run starts the Bubble Tea program with the given dependencies.
func Run(deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(deps, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
