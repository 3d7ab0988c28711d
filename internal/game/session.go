// Package game implements the maze-trivia session: a tick-driven state
// machine over a generated maze with timers, lives, invulnerability,
// progress scoring and question interruptions.
//
// The session never blocks. When a question is due it parks in
// PhaseQuestionActive holding a Prompt; the caller runs the question and
// hands the answer back through Resolve.
package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/qmaze/internal/config"
	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/maze"
	"github.com/vovakirdan/qmaze/internal/questions"
)

var (
	// ErrNotLoading is returned by Start on a session that already started.
	ErrNotLoading = errors.New("game: session is not loading")
	// ErrNoPrompt is returned by Resolve when no question is pending.
	ErrNoPrompt = errors.New("game: no question pending")
)

// Loader fetches the question bank before play begins.
type Loader interface {
	Load(ctx context.Context) (*questions.Bank, error)
}

// Input is what the session reads each tick.
type Input interface {
	VelocityX(maxSpeed float64) float64
	VelocityY(maxSpeed float64) float64
	PausePressed() bool
}

// Prompt is a pending question.
type Prompt struct {
	Reason    Reason
	Question  questions.Question
	TimeLimit time.Duration
}

// Notice is a non-fatal message raised during play.
type Notice struct {
	At      time.Duration
	Message string
}

// Session is one play-through. Create a new one to play again.
type Session struct {
	id         uuid.UUID
	playerName string
	difficulty string
	seed       int64
	profile    config.Profile
	logger     *log.Logger
	now        func() time.Time

	phase   Phase
	loadErr error

	maze   *maze.Maze
	deck   *questions.Deck
	server questions.ServerConfig

	player core.Box

	lives int
	score int
	bonus int

	elapsed           time.Duration
	sinceQuestion     time.Duration
	invulnerableUntil time.Duration
	wallReadyAt       time.Duration

	bestDistance int
	maxDistance  int
	visited      map[string]bool

	prompt  *Prompt
	answers []questions.Answer
	notices []Notice
	outcome *Outcome
}

// Option configures a Session.
type Option func(*Session)

// WithPlayer sets the player name recorded in the outcome.
func WithPlayer(name string) Option {
	return func(s *Session) { s.playerName = name }
}

// WithDifficulty sets the difficulty key recorded in the outcome.
func WithDifficulty(key string) Option {
	return func(s *Session) { s.difficulty = key }
}

// WithSeed fixes the maze and question order. Without it the seed is
// derived from the current time.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the wall clock used to stamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session in PhaseLoading.
func New(profile config.Profile, opts ...Option) *Session {
	s := &Session{
		id:         uuid.New(),
		playerName: "Runner",
		difficulty: string(config.DifficultyMedium),
		seed:       time.Now().UnixMilli(),
		profile:    profile,
		logger:     log.Default(),
		now:        time.Now,
		phase:      PhaseLoading,
		visited:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the question bank and builds the maze. A load failure is
// fatal: the session stays in PhaseLoading and every later Start returns
// the same error.
func (s *Session) Start(ctx context.Context, loader Loader) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	if s.phase != PhaseLoading {
		return ErrNotLoading
	}

	bank, err := loader.Load(ctx)
	if err == nil && bank == nil {
		err = questions.ErrEmptyBank
	}
	if err != nil {
		s.loadErr = fmt.Errorf("game: load questions: %w", err)
		s.logger.Error("session failed to load", "session", s.id, "err", err)
		return s.loadErr
	}

	p := s.profile
	s.maze = maze.Generate(p.MazeRows, p.MazeCols, s.seed, maze.WithEventDensity(p.EventDensity))
	s.deck = questions.NewDeck(bank.Questions, s.seed)
	s.server = bank.Server

	cs := p.CellSize
	s.player = core.Box{
		Center: core.Vec{X: cs / 2, Y: cs / 2},
		R:      cs * playerRadiusRatio,
	}
	s.lives = p.Lives
	s.maxDistance = maze.Manhattan(s.maze.Start(), s.maze.Goal())
	s.bestDistance = s.maxDistance

	s.setPhase(PhasePlaying)
	s.logger.Info("session started",
		"session", s.id,
		"player", s.playerName,
		"difficulty", s.difficulty,
		"seed", s.seed,
		"maze", fmt.Sprintf("%dx%d", s.maze.Rows(), s.maze.Cols()),
		"questions", s.deck.Len(),
		"events", len(s.maze.EventCells()))
	return nil
}

// Tick advances the simulation by dt. A pause press toggles the pause
// first; nothing else happens outside PhasePlaying.
func (s *Session) Tick(dt time.Duration, in Input) {
	if in != nil && in.PausePressed() {
		s.TogglePause()
	}
	if s.phase != PhasePlaying || dt <= 0 {
		return
	}

	p := s.profile
	s.elapsed += dt
	s.sinceQuestion += dt

	if s.elapsed >= p.TotalTimeLimit() {
		s.elapsed = p.TotalTimeLimit()
		s.end(ResultLoss, EndTimeout)
		return
	}
	if s.sinceQuestion >= p.Interval() {
		if s.trigger(ReasonTime) {
			return
		}
	}

	var vx, vy float64
	if in != nil {
		vx = in.VelocityX(p.PlayerSpeed)
		vy = in.VelocityY(p.PlayerSpeed)
	}
	secs := dt.Seconds()
	var touched bool
	s.player, touched = moveBox(s.maze, p.CellSize, s.player, vx*secs, vy*secs)

	suspended := false
	if touched && s.wallArmed() {
		s.wallReadyAt = s.elapsed + p.WallCooldown()
		suspended = s.trigger(ReasonWall)
	}

	cell := s.Cell()
	if !suspended && s.maze.ConsumeEvent(cell.Row, cell.Col) {
		s.visited[cell.String()] = true
		suspended = s.trigger(ReasonZone)
	}

	s.updateProgress(cell)

	if !suspended && cell == s.maze.Goal() {
		s.applyCompletionBonus()
		s.end(ResultWin, EndGoal)
	}
}

// wallArmed reports whether a wall touch may raise a question now.
func (s *Session) wallArmed() bool {
	return !s.Invulnerable() && s.elapsed >= s.wallReadyAt
}

// trigger raises a question and reports whether play is suspended.
// The interval timer restarts whatever the reason. With no question
// available play continues and a notice is recorded.
func (s *Session) trigger(reason Reason) bool {
	s.sinceQuestion = 0

	q, err := s.deck.Next()
	if err != nil {
		s.notify("No question available, keep going!")
		s.logger.Warn("question skipped", "reason", reason, "err", err)
		return false
	}

	s.prompt = &Prompt{
		Reason:    reason,
		Question:  q,
		TimeLimit: questions.TimeLimit(q, s.server, s.profile.TimeModifier()),
	}
	s.setPhase(PhaseQuestionActive)
	s.logger.Info("question triggered", "reason", reason, "question", q.ID, "elapsed", s.elapsed)
	return true
}

// Resolve answers the pending question. A wrong answer costs a life and
// may end the session; either way an invulnerability window starts.
func (s *Session) Resolve(ans questions.Answer) error {
	if s.phase != PhaseQuestionActive || s.prompt == nil {
		return ErrNoPrompt
	}

	ans.QuestionID = s.prompt.Question.ID
	s.answers = append(s.answers, ans)
	s.prompt = nil
	s.invulnerableUntil = s.elapsed + s.profile.Invulnerability()

	s.logger.Debug("question resolved", "question", ans.QuestionID, "correct", ans.Correct, "selected", ans.Selected)

	if !ans.Correct {
		s.lives--
		if s.lives <= 0 {
			s.lives = 0
			s.end(ResultLoss, EndLivesExhausted)
			return nil
		}
	}
	s.setPhase(PhasePlaying)
	return nil
}

// TogglePause switches between playing and paused. It reports whether
// the phase changed; pausing is not possible during a question or after
// the end.
func (s *Session) TogglePause() bool {
	switch s.phase {
	case PhasePlaying:
		s.setPhase(PhasePaused)
		return true
	case PhasePaused:
		s.setPhase(PhasePlaying)
		return true
	}
	return false
}

// updateProgress rewards a new closest approach to the goal.
func (s *Session) updateProgress(cell maze.Pos) {
	d := maze.Manhattan(cell, s.maze.Goal())
	if d >= s.bestDistance {
		return
	}
	s.bestDistance = d

	progress := 1.0
	if s.maxDistance > 0 {
		progress = 1 - float64(d)/float64(s.maxDistance)
	}
	p := s.profile
	pts := int(math.Floor(progress * float64(p.MaxProgressPoints) * p.ScoreMultiplier))
	s.score = max(s.score, pts)
}

func (s *Session) applyCompletionBonus() {
	p := s.profile
	left := max(p.TotalTimeLimit()-s.elapsed, 0).Seconds()

	bonus := int(math.Floor(float64(p.CompletionBonus) * p.ScoreMultiplier))
	bonus += int(math.Floor(left * float64(p.PointsPerSecondLeft) * p.ScoreMultiplier))
	bonus += int(math.Floor(float64(s.lives) * float64(p.PointsPerLifeLeft) * p.ScoreMultiplier))

	s.bonus = bonus
	s.score += bonus
}

func (s *Session) end(result Result, reason EndReason) {
	s.prompt = nil
	s.setPhase(PhaseEnded)
	s.outcome = &Outcome{
		SessionID:  s.id,
		PlayerName: s.playerName,
		Difficulty: s.difficulty,
		Seed:       s.seed,
		Score:      s.score,
		TimeTaken:  int(s.elapsed / time.Second),
		Result:     result,
		Reason:     reason,
		Answers:    append([]questions.Answer(nil), s.answers...),
		EndedAt:    s.now(),
	}
	s.logger.Info("session ended",
		"session", s.id,
		"result", result,
		"reason", reason,
		"score", s.score,
		"time", s.outcome.TimeTaken)
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.logger.Debug("phase", "from", s.phase, "to", p)
	s.phase = p
}

func (s *Session) notify(msg string) {
	s.notices = append(s.notices, Notice{At: s.elapsed, Message: msg})
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Profile returns the difficulty profile.
func (s *Session) Profile() config.Profile { return s.profile }

// Seed returns the maze seed.
func (s *Session) Seed() int64 { return s.seed }

// Maze returns the maze, or nil before Start succeeds.
func (s *Session) Maze() *maze.Maze { return s.maze }

// Player returns the player's box in maze pixels.
func (s *Session) Player() core.Box { return s.player }

// Cell returns the grid cell under the player's center.
func (s *Session) Cell() maze.Pos {
	if s.maze == nil {
		return maze.Pos{}
	}
	cs := s.profile.CellSize
	return maze.Pos{
		Row: core.Clamp(int(math.Floor(s.player.Center.Y/cs)), 0, s.maze.Rows()-1),
		Col: core.Clamp(int(math.Floor(s.player.Center.X/cs)), 0, s.maze.Cols()-1),
	}
}

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Elapsed returns the simulated play time.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// SinceQuestion returns the time since the last question was raised.
func (s *Session) SinceQuestion() time.Duration { return s.sinceQuestion }

// Invulnerable reports whether wall touches are currently ignored.
func (s *Session) Invulnerable() bool { return s.elapsed < s.invulnerableUntil }

// Prompt returns the pending question, or nil.
func (s *Session) Prompt() *Prompt { return s.prompt }

// Answers returns the answers given so far.
func (s *Session) Answers() []questions.Answer {
	return append([]questions.Answer(nil), s.answers...)
}

// Notices returns the notices raised so far.
func (s *Session) Notices() []Notice {
	return append([]Notice(nil), s.notices...)
}

// VisitedEvents returns how many event cells were consumed.
func (s *Session) VisitedEvents() int { return len(s.visited) }

// Outcome returns the final record once the session has ended.
func (s *Session) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}
