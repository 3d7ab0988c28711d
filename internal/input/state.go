// Package input merges a polled keyboard and a push-based remote controller
// into one directional state with ramped speed and momentary buttons.
//
// Both producers and the consumer run on the game tick, so State is not
// safe for concurrent use. Remote events cross goroutines through
// remote.Stream and are applied on the tick.
package input

import (
	"time"

	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/remote"
)

// Source identifies which adapter last wrote the directional state.
type Source int

const (
	SourceKeyboard Source = iota
	SourceRemote
)

func (s Source) String() string {
	if s == SourceRemote {
		return "remote"
	}
	return "keyboard"
}

// Config holds the arbitration and ramp parameters.
type Config struct {
	// MinSpeed is the speed on the first instant a direction is active.
	MinSpeed float64
	// RampDuration is how long it takes to reach full speed.
	RampDuration time.Duration
	// DirectionTimeout clears remote directions that stop refreshing.
	DirectionTimeout time.Duration
	// RemoteRecency suppresses the keyboard after a remote event.
	RemoteRecency time.Duration
	// ButtonPulse bounds how long a button press stays visible.
	ButtonPulse time.Duration
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MinSpeed:         50,
		RampDuration:     100 * time.Millisecond,
		DirectionTimeout: 80 * time.Millisecond,
		RemoteRecency:    500 * time.Millisecond,
		ButtonPulse:      50 * time.Millisecond,
	}
}

// KeyboardSnapshot is the instantaneous held state reported by a keyboard poll.
type KeyboardSnapshot struct {
	Directions core.DirectionalState
	Select     bool
	Pause      bool
}

// Option configures a State.
type Option func(*State)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) Option {
	return func(s *State) {
		s.cfg = cfg
	}
}

// State is the unified input state read by the game each tick.
type State struct {
	cfg Config
	now func() time.Time

	dirs      core.DirectionalState
	started   [4]time.Time // activation time per direction, zero when inactive
	refreshed [4]time.Time // last remote refresh per direction

	source     Source
	lastRemote time.Time

	selectAt time.Time
	pauseAt  time.Time

	selectHeld bool
	pauseHeld  bool
}

// New creates an empty input state.
func New(opts ...Option) *State {
	s := &State{
		cfg: DefaultConfig(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateFromKeyboard applies a keyboard poll. It is ignored while a remote
// event arrived within RemoteRecency. Select and pause fire on the key-down edge.
func (s *State) UpdateFromKeyboard(snap KeyboardSnapshot) {
	now := s.now()

	selectEdge := snap.Select && !s.selectHeld
	pauseEdge := snap.Pause && !s.pauseHeld
	s.selectHeld = snap.Select
	s.pauseHeld = snap.Pause

	if !s.lastRemote.IsZero() && now.Sub(s.lastRemote) <= s.cfg.RemoteRecency {
		return
	}

	s.source = SourceKeyboard
	s.applyDirections(snap.Directions, now, false)
	if selectEdge {
		s.selectAt = now
	}
	if pauseEdge {
		s.pauseAt = now
	}
}

// ApplyRemote applies controller events in order. A direction event
// replaces the whole directional state; button events raise a pulse.
// Invalid events are ignored.
func (s *State) ApplyRemote(events ...remote.Event) {
	if len(events) == 0 {
		return
	}
	now := s.now()
	s.source = SourceRemote
	s.lastRemote = now

	for _, evt := range events {
		if evt.Validate() != nil {
			continue
		}
		switch evt.Type {
		case remote.TypeDirection:
			s.applyDirections(*evt.State, now, true)
		case remote.TypeButton:
			switch evt.Key {
			case remote.ButtonSelect:
				s.selectAt = now
			case remote.ButtonPause:
				s.pauseAt = now
			}
		}
	}
}

func (s *State) applyDirections(next core.DirectionalState, now time.Time, refresh bool) {
	for _, d := range core.Directions {
		on := next.Get(d)
		switch {
		case on && !s.dirs.Get(d):
			s.started[d] = now
		case !on && s.dirs.Get(d):
			s.started[d] = time.Time{}
		}
		if on && refresh {
			s.refreshed[d] = now
		}
	}
	s.dirs = next
}

// expireStale clears remote directions that were not refreshed in time.
func (s *State) expireStale(now time.Time) {
	if s.source != SourceRemote {
		return
	}
	for _, d := range core.Directions {
		if s.dirs.Get(d) && now.Sub(s.refreshed[d]) > s.cfg.DirectionTimeout {
			s.dirs.Set(d, false)
			s.started[d] = time.Time{}
			s.refreshed[d] = time.Time{}
		}
	}
}

// speed returns the ramped speed for an active direction.
func (s *State) speed(d core.Direction, now time.Time, maxSpeed float64) float64 {
	minSpeed := min(s.cfg.MinSpeed, maxSpeed)
	start := s.started[d]
	if start.IsZero() {
		return minSpeed
	}
	elapsed := now.Sub(start)
	if s.cfg.RampDuration <= 0 || elapsed >= s.cfg.RampDuration {
		return maxSpeed
	}
	progress := float64(elapsed) / float64(s.cfg.RampDuration)
	return minSpeed + (maxSpeed-minSpeed)*progress
}

// axis resolves a pair of opposite directions to a signed speed.
func (s *State) axis(neg, pos core.Direction, maxSpeed float64) float64 {
	now := s.now()
	s.expireStale(now)

	n, p := s.dirs.Get(neg), s.dirs.Get(pos)
	switch {
	case n && !p:
		return -s.speed(neg, now, maxSpeed)
	case p && !n:
		return s.speed(pos, now, maxSpeed)
	}
	return 0
}

// VelocityX returns the horizontal velocity; negative is left.
func (s *State) VelocityX(maxSpeed float64) float64 {
	return s.axis(core.DirLeft, core.DirRight, maxSpeed)
}

// VelocityY returns the vertical velocity; negative is up.
func (s *State) VelocityY(maxSpeed float64) float64 {
	return s.axis(core.DirUp, core.DirDown, maxSpeed)
}

func (s *State) pulse(at time.Time) bool {
	return !at.IsZero() && s.now().Sub(at) <= s.cfg.ButtonPulse
}

// SelectPressed reports a select press in the current frame.
func (s *State) SelectPressed() bool {
	return s.pulse(s.selectAt)
}

// PausePressed reports a pause press in the current frame.
func (s *State) PausePressed() bool {
	return s.pulse(s.pauseAt)
}

// EndFrame clears button pulses once the tick has consumed them.
func (s *State) EndFrame() {
	s.selectAt = time.Time{}
	s.pauseAt = time.Time{}
}

// Directions returns the current directional state. Stale remote
// directions are cleared first.
func (s *State) Directions() core.DirectionalState {
	s.expireStale(s.now())
	return s.dirs
}

// Source returns the adapter that last wrote the state.
func (s *State) Source() Source {
	return s.source
}

// Reset clears directions and buttons. Held-key tracking is kept so a key
// still down after a reset does not fire a fresh edge.
func (s *State) Reset() {
	s.dirs = core.DirectionalState{}
	s.started = [4]time.Time{}
	s.refreshed = [4]time.Time{}
	s.selectAt = time.Time{}
	s.pauseAt = time.Time{}
}
