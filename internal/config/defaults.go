package config

import (
	_ "embed"
)

//go:embed defaults/difficulty.yaml
var defaultDifficultyYAML []byte

// DefaultYAML returns the embedded difficulty.yaml.
func DefaultYAML() []byte {
	return defaultDifficultyYAML
}

// DefaultProfiles returns the built-in profile set.
func DefaultProfiles() *Profiles {
	p, _ := NewProfiles(defaultProfiles())
	return p
}

func defaultProfiles() map[Difficulty]Profile {
	base := Profile{
		CellSize:          50,
		PlayerSpeed:       100,
		EventDensity:      0.05,
		MaxProgressPoints: 800,
		InvulnerabilityMs: 1000,
		WallCooldownMs:    500,
	}

	easy := base
	easy.Name = "Easy"
	easy.Description = "More time, more lives, smaller maze."
	easy.Color = "#27ae60"
	easy.Lives = 4
	easy.TotalTime = 420
	easy.QuestionInterval = 20
	easy.QuestionTimeModifier = 2
	easy.MazeRows, easy.MazeCols = 15, 15
	easy.ScoreMultiplier = 0.5
	easy.CompletionBonus = 150
	easy.PointsPerSecondLeft = 1
	easy.PointsPerLifeLeft = 100

	medium := base
	medium.Name = "Medium"
	medium.Description = "A balance between challenge and fun."
	medium.Color = "#f39c12"
	medium.Lives = 3
	medium.TotalTime = 270
	medium.QuestionInterval = 18
	medium.MazeRows, medium.MazeCols = 20, 20
	medium.ScoreMultiplier = 1.0
	medium.CompletionBonus = 200
	medium.PointsPerSecondLeft = 2
	medium.PointsPerLifeLeft = 150

	hard := base
	hard.Name = "Hard"
	hard.Description = "Less time, fewer lives, bigger maze."
	hard.Color = "#c0392b"
	hard.Lives = 2
	hard.TotalTime = 240
	hard.QuestionInterval = 15
	hard.QuestionTimeModifier = -2
	hard.MazeRows, hard.MazeCols = 25, 25
	hard.ScoreMultiplier = 1.5
	hard.CompletionBonus = 300
	hard.PointsPerSecondLeft = 3
	hard.PointsPerLifeLeft = 250

	return map[Difficulty]Profile{
		DifficultyEasy:   easy,
		DifficultyMedium: medium,
		DifficultyHard:   hard,
	}
}
