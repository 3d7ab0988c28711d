package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/qmaze/internal/config"
	"github.com/vovakirdan/qmaze/internal/core"
	"github.com/vovakirdan/qmaze/internal/platform/tui"
	"github.com/vovakirdan/qmaze/internal/remote"
	"github.com/vovakirdan/qmaze/internal/storage"
)

var (
	flagLogFile    string
	flagController string
)

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Play in this terminal",
	Long: `Open the title menu and play. The optional difficulty preselects
easy, medium or hard (or any key from --config).

Controls:
  Arrows/WASD  - Move (hold to keep moving)
  Enter        - Confirm answer / skip feedback
  1-4          - Answer directly
  P/Esc        - Pause
  B            - Back to menu (while paused)
  Q/Ctrl+C     - Quit

Controller:
  --controller reads JSON lines from a file or FIFO, one event per line:
    {"type":"direction","state":{"up":false,"down":false,"left":false,"right":true}}
    {"type":"button","key":"select"}

Examples:
  qmaze play
  qmaze play easy --player Ada
  qmaze play hard --seed 42 --category science
  qmaze play --controller /tmp/pad.fifo`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", config.DefaultLogPath(), "Where to write logs while the game owns the terminal")
	playCmd.Flags().StringVar(&flagController, "controller", "", "Read remote controller events from this file or FIFO")
}

func runPlay(_ *cobra.Command, args []string) {
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "qmaze")

	profiles := loadProfiles(logger)
	difficulty := config.DifficultyMedium
	if len(args) == 1 {
		d, perr := profiles.ParseDifficulty(args[0])
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, using medium\n", perr)
		}
		difficulty = d
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		PlayerName: flagPlayer,
		Difficulty: string(difficulty),
	}

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	deps := tui.Deps{
		Profiles:  profiles,
		Questions: questionLoader(logger),
		Store:     store,
		Logger:    logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagController != "" {
		stream := remote.NewStream(64)
		defer stream.Close()
		deps.Remote = stream
		go func() {
			if ferr := remote.FollowFile(ctx, flagController, stream, logger); ferr != nil {
				logger.Error("controller feed stopped", "path", flagController, "err", ferr)
			}
		}()
	}

	runErr := tui.Run(deps, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
