package core

// RuntimeConfig contains the per-run settings passed down from the CLI.
// It replaces any process-wide settings object: every component receives
// what it needs explicitly.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // Maze seed; 0 means derive from the clock
	PlayerName string // Name recorded with the session outcome
	Difficulty string // Difficulty profile key
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0,
		PlayerName: "Runner",
		Difficulty: "medium",
	}
}
