package questions

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestion() Question {
	return Question{
		ID:      "q1",
		Text:    "2 + 2?",
		Options: []string{"3", "4", "5", "22"},
		Correct: 1,
	}
}

func TestDefaultBankIsValid(t *testing.T) {
	b := DefaultBank()
	require.NotEmpty(t, b.Questions)
	assert.Equal(t, 12.0, b.Server.QuestionTimeLimit)
	assert.Equal(t, []string{"science", "geography", "math", "history"}, b.Categories())
}

func TestParseBankRejectsBadQuestions(t *testing.T) {
	tests := map[string]string{
		"three options": `questions: [{id: a, text: t, options: [x, y, z], correct: 0}]`,
		"bad index":     `questions: [{id: a, text: t, options: [w, x, y, z], correct: 4}]`,
		"no id":         `questions: [{text: t, options: [w, x, y, z], correct: 0}]`,
		"duplicate": `questions:
  - {id: a, text: t, options: [w, x, y, z], correct: 0}
  - {id: a, text: u, options: [w, x, y, z], correct: 1}`,
		"negative default": `server: {question_time_limit: -1}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBank([]byte(doc))
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "questions: "), err.Error())
		})
	}
}

func TestTimeLimitPriority(t *testing.T) {
	q := sampleQuestion()

	assert.Equal(t, DefaultTimeLimit, TimeLimit(q, ServerConfig{}, 0))
	assert.Equal(t, 15*time.Second, TimeLimit(q, ServerConfig{QuestionTimeLimit: 15}, 0))

	q.TimeLimit = 6
	assert.Equal(t, 6*time.Second, TimeLimit(q, ServerConfig{QuestionTimeLimit: 15}, 0))
	assert.Equal(t, 8*time.Second, TimeLimit(q, ServerConfig{}, 2*time.Second))
	assert.Equal(t, 4*time.Second, TimeLimit(q, ServerConfig{}, -2*time.Second))

	q.TimeLimit = 1
	assert.Equal(t, time.Second, TimeLimit(q, ServerConfig{}, -2*time.Second), "never below one second")
}

func TestLoaderEmbeddedAndFilter(t *testing.T) {
	logger := log.New(io.Discard)

	b, err := Loader{Logger: logger}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, b.Questions, 20)

	b, err = Loader{Category: "MATH", Logger: logger}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, b.Questions, 5)
	for _, q := range b.Questions {
		assert.Equal(t, "math", q.Category)
	}

	b, err = Loader{Category: "sports", Logger: logger}.Load(context.Background())
	require.NoError(t, err, "an empty bank is not a load failure")
	assert.Empty(t, b.Questions)
}

func TestLoaderFileErrors(t *testing.T) {
	logger := log.New(io.Discard)

	_, err := Loader{Path: filepath.Join(t.TempDir(), "none.yaml"), Logger: logger}.Load(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("questions: {"), 0o644))
	_, err = Loader{Path: bad, Logger: logger}.Load(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Loader{Logger: logger}.Load(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	doc := `server:
  question_time_limit: 20
questions:
  - {id: a, text: t, options: [w, x, y, z], correct: 3, time_limit: 5}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	b, err := Loader{Path: path, Logger: log.New(io.Discard)}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, b.Questions, 1)
	assert.Equal(t, 20.0, b.Server.QuestionTimeLimit)
	assert.Equal(t, 5.0, b.Questions[0].TimeLimit)
}

func TestDeckDealsEveryQuestionOncePerCycle(t *testing.T) {
	qs := DefaultBank().Questions
	d := NewDeck(qs, 42)

	seen := make(map[string]int)
	for i := 0; i < len(qs); i++ {
		q, err := d.Next()
		require.NoError(t, err)
		seen[q.ID]++
	}
	assert.Len(t, seen, len(qs))

	_, err := d.Next()
	assert.NoError(t, err, "deck reshuffles after a full cycle")
}

func TestDeckDeterministic(t *testing.T) {
	qs := DefaultBank().Questions
	a, b := NewDeck(qs, 7), NewDeck(qs, 7)
	for i := 0; i < 30; i++ {
		qa, _ := a.Next()
		qb, _ := b.Next()
		require.Equal(t, qa.ID, qb.ID, "draw %d", i)
	}
}

func TestEmptyDeck(t *testing.T) {
	d := NewDeck(nil, 1)
	_, err := d.Next()
	assert.True(t, errors.Is(err, ErrEmptyBank))
	assert.Zero(t, d.Len())
}

func TestRoundTimeout(t *testing.T) {
	r := NewRound(sampleQuestion(), 3*time.Second)
	assert.Equal(t, 3, r.RemainingSeconds())

	r.Tick(2500 * time.Millisecond)
	assert.Equal(t, 1, r.RemainingSeconds())
	assert.False(t, r.Answered())

	r.Tick(time.Second)
	ans, ok := r.Answer()
	require.True(t, ok)
	assert.Equal(t, -1, ans.Selected)
	assert.False(t, ans.Correct)
	assert.True(t, ans.TimedOut())
	assert.Equal(t, 3*time.Second, ans.TimeTaken)
}

func TestRoundPickAndFeedback(t *testing.T) {
	r := NewRound(sampleQuestion(), 10*time.Second)
	r.Tick(1500 * time.Millisecond)

	require.True(t, r.Pick(1))
	assert.False(t, r.Pick(2), "only one answer per round")

	ans, _ := r.Answer()
	assert.Equal(t, Answer{QuestionID: "q1", Selected: 1, Correct: true, TimeTaken: 1500 * time.Millisecond}, ans)

	assert.False(t, r.Done())
	r.Tick(FeedbackDuration - time.Millisecond)
	assert.False(t, r.Done())
	r.Tick(time.Millisecond)
	assert.True(t, r.Done())
}

func TestRoundNavigation(t *testing.T) {
	r := NewRound(sampleQuestion(), 10*time.Second)

	assert.True(t, r.Move(-1))
	assert.Equal(t, 3, r.Selected(), "wraps to the last option")

	assert.False(t, r.Move(1), "cooldown blocks rapid repeats")
	r.Tick(NavigationCooldown)
	assert.True(t, r.Move(1))
	assert.Equal(t, 0, r.Selected())

	r.Tick(NavigationCooldown)
	r.Move(1)
	require.True(t, r.Confirm())
	ans, _ := r.Answer()
	assert.Equal(t, 1, ans.Selected)
	assert.True(t, ans.Correct)

	r.SkipFeedback()
	assert.True(t, r.Done())
}

func TestRoundPickOutOfRange(t *testing.T) {
	r := NewRound(sampleQuestion(), time.Second)
	assert.False(t, r.Pick(4))
	assert.False(t, r.Pick(-1))
	assert.False(t, r.Answered())
}
