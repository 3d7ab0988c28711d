// Package config provides YAML-based difficulty profiles and environment
// overrides for qmaze.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Difficulty names a profile.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ErrUnknownDifficulty is returned when a difficulty key has no profile.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Profile is the immutable tuning bundle for one difficulty.
// Times are in seconds unless the field name says otherwise.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"` // hex, used by the menu

	Lives                int     `yaml:"lives"`
	TotalTime            float64 `yaml:"total_time"`
	QuestionInterval     float64 `yaml:"question_interval"`
	QuestionTimeModifier float64 `yaml:"question_time_modifier"`

	MazeRows     int     `yaml:"maze_rows"`
	MazeCols     int     `yaml:"maze_cols"`
	CellSize     float64 `yaml:"cell_size"`
	PlayerSpeed  float64 `yaml:"player_speed"`
	EventDensity float64 `yaml:"event_density"`

	ScoreMultiplier     float64 `yaml:"score_multiplier"`
	CompletionBonus     int     `yaml:"completion_bonus"`
	PointsPerSecondLeft int     `yaml:"points_per_second_left"`
	PointsPerLifeLeft   int     `yaml:"points_per_life_left"`
	MaxProgressPoints   int     `yaml:"max_progress_points"`

	InvulnerabilityMs int `yaml:"invulnerability_ms"`
	WallCooldownMs    int `yaml:"wall_cooldown_ms"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// TotalTimeLimit returns the session time limit.
func (p Profile) TotalTimeLimit() time.Duration { return seconds(p.TotalTime) }

// Interval returns the time between timed questions.
func (p Profile) Interval() time.Duration { return seconds(p.QuestionInterval) }

// TimeModifier returns the adjustment applied to each question's time limit.
func (p Profile) TimeModifier() time.Duration { return seconds(p.QuestionTimeModifier) }

// Invulnerability returns the post-answer grace window.
func (p Profile) Invulnerability() time.Duration {
	return time.Duration(p.InvulnerabilityMs) * time.Millisecond
}

// WallCooldown returns the minimum gap between two wall-triggered questions.
func (p Profile) WallCooldown() time.Duration {
	return time.Duration(p.WallCooldownMs) * time.Millisecond
}

// Validate checks that the profile can drive a session.
func (p Profile) Validate() error {
	switch {
	case p.Lives < 1:
		return fmt.Errorf("lives must be at least 1, got %d", p.Lives)
	case p.TotalTime <= 0:
		return fmt.Errorf("total_time must be positive, got %v", p.TotalTime)
	case p.QuestionInterval <= 0:
		return fmt.Errorf("question_interval must be positive, got %v", p.QuestionInterval)
	case p.MazeRows < 1 || p.MazeCols < 1:
		return fmt.Errorf("maze size must be at least 1x1, got %dx%d", p.MazeRows, p.MazeCols)
	case p.CellSize <= 0:
		return fmt.Errorf("cell_size must be positive, got %v", p.CellSize)
	case p.PlayerSpeed <= 0:
		return fmt.Errorf("player_speed must be positive, got %v", p.PlayerSpeed)
	case p.EventDensity < 0 || p.EventDensity > 1:
		return fmt.Errorf("event_density must be in [0,1], got %v", p.EventDensity)
	case p.ScoreMultiplier < 0:
		return fmt.Errorf("score_multiplier must not be negative, got %v", p.ScoreMultiplier)
	case p.InvulnerabilityMs < 0 || p.WallCooldownMs < 0:
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// ProfileFile is the on-disk layout of difficulty.yaml.
type ProfileFile struct {
	Difficulties map[Difficulty]Profile `yaml:"difficulties"`
}
