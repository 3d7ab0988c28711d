// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/qmaze/internal/game"
	"github.com/vovakirdan/qmaze/internal/questions"
)

// Store manages the SQLite database connection for session history.
// It implements game.Sink.
type Store struct {
	db *sql.DB
}

var _ game.Sink = (*Store)(nil)

// SessionRecord is one stored play-through.
type SessionRecord struct {
	ID         uuid.UUID
	PlayerName string
	Difficulty string
	Seed       int64
	Score      int
	TimeTaken  int // seconds
	Result     game.Result
	Reason     game.EndReason
	Answered   int
	Correct    int
	EndedAt    time.Time
}

// Accuracy returns the share of correct answers in [0, 1].
func (r SessionRecord) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player_name TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			time_taken INTEGER NOT NULL,
			result TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			answered INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(difficulty, score DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at DESC);

		CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			selected INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			time_taken_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOutcome records a finished session and its answers atomically.
// Saving the same session twice is an error.
func (s *Store) SaveOutcome(ctx context.Context, o game.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions
		 (session_id, player_name, difficulty, seed, score, time_taken, result, end_reason, answered, correct, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.SessionID.String(),
		o.PlayerName,
		o.Difficulty,
		o.Seed,
		o.Score,
		o.TimeTaken,
		string(o.Result),
		string(o.Reason),
		len(o.Answers),
		o.Correct(),
		o.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	for i, a := range o.Answers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO answers (session_id, seq, question_id, selected, correct, time_taken_ms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			o.SessionID.String(), i, a.QuestionID, a.Selected, a.Correct, a.TimeTaken.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save answer %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return nil
}

const sessionColumns = `session_id, player_name, difficulty, seed, score, time_taken,
	result, end_reason, answered, correct, ended_at`

// RecentSessions returns the most recently finished sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY ended_at DESC, id DESC LIMIT ?`,
		limit)
}

// TopScores returns the best sessions for a difficulty, highest score first.
// An empty difficulty ranks all sessions together.
func (s *Store) TopScores(ctx context.Context, difficulty string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if difficulty == "" {
		return s.querySessions(ctx,
			`SELECT `+sessionColumns+` FROM sessions ORDER BY score DESC, ended_at ASC LIMIT ?`,
			limit)
	}
	return s.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE difficulty = ? ORDER BY score DESC, ended_at ASC LIMIT ?`,
		difficulty, limit)
}

// Session looks up one session by id. Returns nil if it does not exist.
func (s *Store) Session(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	recs, err := s.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		id.String())
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (s *Store) querySessions(ctx context.Context, query string, args ...any) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var id, result, reason string
		var endedAt int64
		if err := rows.Scan(
			&id,
			&r.PlayerName,
			&r.Difficulty,
			&r.Seed,
			&r.Score,
			&r.TimeTaken,
			&result,
			&reason,
			&r.Answered,
			&r.Correct,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("storage: bad session id %q: %w", id, err)
		}
		r.Result = game.Result(result)
		r.Reason = game.EndReason(reason)
		r.EndedAt = time.UnixMilli(endedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SessionAnswers returns the answers of a session in the order given.
func (s *Store) SessionAnswers(ctx context.Context, id uuid.UUID) ([]questions.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, selected, correct, time_taken_ms
		 FROM answers
		 WHERE session_id = ?
		 ORDER BY seq`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query answers: %w", err)
	}
	defer rows.Close()

	var answers []questions.Answer
	for rows.Next() {
		var a questions.Answer
		var ms int64
		if err := rows.Scan(&a.QuestionID, &a.Selected, &a.Correct, &ms); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.TimeTaken = time.Duration(ms) * time.Millisecond
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return answers, nil
}

// HighScore returns the highest score for the given difficulty.
// Returns 0 if no sessions exist.
func (s *Store) HighScore(ctx context.Context, difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM sessions WHERE difficulty = ?",
		difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearSessions deletes all stored sessions and answers.
func (s *Store) ClearSessions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM answers"); err != nil {
		return fmt.Errorf("storage: cannot clear answers: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
