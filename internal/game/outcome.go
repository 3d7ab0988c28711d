package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/qmaze/internal/questions"
)

// Outcome is the record handed to persistence when a session ends.
type Outcome struct {
	SessionID  uuid.UUID
	PlayerName string
	Difficulty string
	Seed       int64
	Score      int
	// TimeTaken is the play time in whole seconds.
	TimeTaken int
	Result    Result
	Reason    EndReason
	Answers   []questions.Answer
	EndedAt   time.Time
}

// Correct counts correctly answered questions.
func (o Outcome) Correct() int {
	n := 0
	for _, a := range o.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Sink stores outcomes.
type Sink interface {
	SaveOutcome(ctx context.Context, o Outcome) error
}

// Submit hands the outcome to sink. Failures are logged and returned for
// display, but never change the outcome itself. A nil sink is a no-op.
func Submit(ctx context.Context, sink Sink, o Outcome, logger *log.Logger) error {
	if sink == nil {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}
	if err := sink.SaveOutcome(ctx, o); err != nil {
		logger.Warn("failed to save outcome", "session", o.SessionID, "err", err)
		return err
	}
	logger.Debug("outcome saved", "session", o.SessionID, "score", o.Score)
	return nil
}
