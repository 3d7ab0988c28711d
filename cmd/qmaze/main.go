// qmaze is a terminal maze-trivia game: steer through a seeded maze,
// answer questions when you hit walls or event cells, reach the goal.
//
// Usage:
//
//	qmaze play [difficulty]  - Play in this terminal
//	qmaze serve              - Start SSH server for remote play
//	qmaze scores [level]     - Show high scores
//	qmaze history            - Show recent sessions
//	qmaze maze               - Print a maze for a seed
//	qmaze difficulties       - List difficulty profiles
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set maze seed for reproducible games
//	--db <path>         - Set database path (default: ~/.qmaze/qmaze.db)
//	--config <path>     - Difficulty profiles YAML
//	--questions <path>  - Question bank YAML
//	--category <name>   - Only ask questions from this category
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/qmaze/internal/config"
	"github.com/vovakirdan/qmaze/internal/questions"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagQuestions string
	flagCategory  string
	flagPlayer    string
	flagDebug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qmaze",
	Short: "Quiz Maze - a maze-trivia game for your terminal",
	Long: `Quiz Maze drops you at the top-left corner of a generated maze.
Reach the bottom-right corner before the clock runs out. Touching a wall,
stepping on a ? cell, or simply waiting too long raises a multiple-choice
question; wrong answers cost a life.

Settings can also come from the environment or a .env file:
  QMAZE_PLAYER, QMAZE_DB, QMAZE_SSH_ADDR, QMAZE_QUESTIONS

Examples:
  qmaze play
  qmaze play hard --seed 42
  qmaze serve --ssh :2222
  qmaze scores medium
  qmaze maze --rows 10 --cols 20 --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Maze seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath(), "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to difficulty profiles YAML")
	rootCmd.PersistentFlags().StringVar(&flagQuestions, "questions", "", "Path to question bank YAML (default: built-in bank)")
	rootCmd.PersistentFlags().StringVar(&flagCategory, "category", "", "Only use questions from this category")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "Runner", "Player name recorded with results")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mazeCmd)
	rootCmd.AddCommand(difficultiesCmd)
}

// applyEnv lets QMAZE_* variables fill flags the user did not set.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("read .env: %w", err)
	}

	set := func(name string, target *string, value string) {
		if f := cmd.Flag(name); f != nil && !f.Changed {
			*target = config.Or(value, *target)
		}
	}
	set("player", &flagPlayer, env.Player)
	set("db", &flagDBPath, env.DBPath)
	set("questions", &flagQuestions, env.Questions)
	set("ssh", &flagSSHAddr, env.SSHAddr)
	return nil
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadProfiles reads the difficulty profiles, exiting on a bad --config.
func loadProfiles(logger *log.Logger) *config.Profiles {
	profiles, err := config.LoadProfiles(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading difficulty profiles: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("profiles loaded", "keys", profiles.Keys())
	return profiles
}

// questionLoader builds the question source from the flags.
func questionLoader(logger *log.Logger) questions.Loader {
	return questions.Loader{
		Path:     flagQuestions,
		Category: flagCategory,
		Logger:   logger,
	}
}
