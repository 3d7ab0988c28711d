package questions

import "time"

const (
	// NavigationCooldown throttles repeated option moves from a held direction.
	NavigationCooldown = 200 * time.Millisecond
	// FeedbackDuration is how long the verdict stays on screen.
	FeedbackDuration = 2 * time.Second
)

// Round is one question being asked: a countdown, a highlighted option,
// and after answering a short feedback period.
type Round struct {
	question Question
	limit    time.Duration
	elapsed  time.Duration

	selected int
	lastMove time.Duration
	moved    bool

	answered bool
	answer   Answer
	feedback time.Duration
}

// NewRound starts a round with the given answer window.
func NewRound(q Question, limit time.Duration) *Round {
	return &Round{question: q, limit: limit}
}

// Question returns the question being asked.
func (r *Round) Question() Question { return r.question }

// Selected returns the highlighted option.
func (r *Round) Selected() int { return r.selected }

// Limit returns the answer window.
func (r *Round) Limit() time.Duration { return r.limit }

// Remaining returns the time left to answer.
func (r *Round) Remaining() time.Duration {
	if r.answered {
		return max(r.limit-r.answer.TimeTaken, 0)
	}
	return max(r.limit-r.elapsed, 0)
}

// RemainingSeconds returns the countdown as whole seconds, rounded up.
func (r *Round) RemainingSeconds() int {
	rem := r.Remaining()
	return int((rem + time.Second - 1) / time.Second)
}

// Tick advances the countdown or the feedback period. Running out of
// time answers with index -1.
func (r *Round) Tick(dt time.Duration) {
	if r.answered {
		r.feedback += dt
		return
	}
	r.elapsed += dt
	if r.elapsed >= r.limit {
		r.elapsed = r.limit
		r.submit(-1)
	}
}

// Move shifts the highlight by delta, wrapping around. Moves closer than
// NavigationCooldown to the previous one are ignored.
func (r *Round) Move(delta int) bool {
	if r.answered || delta == 0 {
		return false
	}
	if r.moved && r.elapsed-r.lastMove < NavigationCooldown {
		return false
	}
	r.selected = ((r.selected+delta)%OptionCount + OptionCount) % OptionCount
	r.lastMove = r.elapsed
	r.moved = true
	return true
}

// Pick answers with the given option directly.
func (r *Round) Pick(index int) bool {
	if r.answered || index < 0 || index >= OptionCount {
		return false
	}
	r.selected = index
	r.submit(index)
	return true
}

// Confirm answers with the highlighted option.
func (r *Round) Confirm() bool {
	return r.Pick(r.selected)
}

func (r *Round) submit(index int) {
	r.answered = true
	r.answer = Answer{
		QuestionID: r.question.ID,
		Selected:   index,
		Correct:    r.question.IsCorrect(index),
		TimeTaken:  r.elapsed,
	}
}

// Answered reports whether an answer (or timeout) was recorded.
func (r *Round) Answered() bool { return r.answered }

// Answer returns the recorded answer.
func (r *Round) Answer() (Answer, bool) {
	return r.answer, r.answered
}

// Done reports whether the feedback period is over and play can resume.
func (r *Round) Done() bool {
	return r.answered && r.feedback >= FeedbackDuration
}

// SkipFeedback ends the feedback period early.
func (r *Round) SkipFeedback() {
	if r.answered {
		r.feedback = FeedbackDuration
	}
}
