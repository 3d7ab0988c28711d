// Package questions loads question banks and runs the timed multiple-choice
// round shown when gameplay is interrupted.
package questions

import (
	"errors"
	"fmt"
	"time"
)

// OptionCount is the number of answers every question offers.
const OptionCount = 4

// DefaultTimeLimit applies when neither the question nor the bank sets one.
const DefaultTimeLimit = 10 * time.Second

// ErrEmptyBank is returned when no question is available.
var ErrEmptyBank = errors.New("questions: bank is empty")

// Question is one multiple-choice question.
type Question struct {
	ID       string   `yaml:"id"`
	Text     string   `yaml:"text"`
	Options  []string `yaml:"options"`
	Correct  int      `yaml:"correct"`
	Category string   `yaml:"category,omitempty"`
	// TimeLimit in seconds; zero defers to the bank default.
	TimeLimit float64 `yaml:"time_limit,omitempty"`
}

// Validate checks the question shape.
func (q Question) Validate() error {
	switch {
	case q.ID == "":
		return errors.New("questions: question without id")
	case q.Text == "":
		return fmt.Errorf("questions: question %s: empty text", q.ID)
	case len(q.Options) != OptionCount:
		return fmt.Errorf("questions: question %s: want %d options, got %d", q.ID, OptionCount, len(q.Options))
	case q.Correct < 0 || q.Correct >= OptionCount:
		return fmt.Errorf("questions: question %s: correct index %d out of range", q.ID, q.Correct)
	case q.TimeLimit < 0:
		return fmt.Errorf("questions: question %s: negative time limit", q.ID)
	}
	return nil
}

// IsCorrect reports whether index is the right answer. -1 (timeout) never is.
func (q Question) IsCorrect(index int) bool {
	return index >= 0 && index == q.Correct
}

// ServerConfig holds bank-wide defaults.
type ServerConfig struct {
	// QuestionTimeLimit in seconds; zero means DefaultTimeLimit.
	QuestionTimeLimit float64 `yaml:"question_time_limit"`
}

// TimeLimit resolves a question's answer window. The per-question limit
// wins over the server default, which wins over DefaultTimeLimit. The
// difficulty modifier is added last and the result is at least one second.
func TimeLimit(q Question, server ServerConfig, modifier time.Duration) time.Duration {
	var limit time.Duration
	switch {
	case q.TimeLimit > 0:
		limit = time.Duration(q.TimeLimit * float64(time.Second))
	case server.QuestionTimeLimit > 0:
		limit = time.Duration(server.QuestionTimeLimit * float64(time.Second))
	default:
		limit = DefaultTimeLimit
	}
	return max(limit+modifier, time.Second)
}

// Answer records how one question was answered.
type Answer struct {
	QuestionID string
	// Selected is the chosen option, or -1 when time ran out.
	Selected  int
	Correct   bool
	TimeTaken time.Duration
}

// TimedOut reports whether the question expired unanswered.
func (a Answer) TimedOut() bool {
	return a.Selected < 0
}
