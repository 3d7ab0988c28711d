package game

import (
	"time"

	"github.com/vovakirdan/qmaze/internal/maze"
)

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	Phase         Phase
	Lives         int
	MaxLives      int
	Score         int
	Bonus         int
	Elapsed       time.Duration
	Remaining     time.Duration
	UntilQuestion time.Duration
	Invulnerable  bool
	Cell          maze.Pos
	BestDistance  int
	Prompt        *Prompt
	Notice        string
	Answered      int
	Correct       int
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	p := s.profile
	snap := Snapshot{
		Phase:         s.phase,
		Lives:         s.lives,
		MaxLives:      p.Lives,
		Score:         s.score,
		Bonus:         s.bonus,
		Elapsed:       s.elapsed,
		Remaining:     max(p.TotalTimeLimit()-s.elapsed, 0),
		UntilQuestion: max(p.Interval()-s.sinceQuestion, 0),
		Invulnerable:  s.Invulnerable(),
		Cell:          s.Cell(),
		BestDistance:  s.bestDistance,
		Answered:      len(s.answers),
	}
	if s.prompt != nil {
		pr := *s.prompt
		snap.Prompt = &pr
	}
	if n := len(s.notices); n > 0 {
		snap.Notice = s.notices[n-1].Message
	}
	for _, a := range s.answers {
		if a.Correct {
			snap.Correct++
		}
	}
	return snap
}
