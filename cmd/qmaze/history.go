package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/qmaze/internal/platform/tui"
	"github.com/vovakirdan/qmaze/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Long: `Browse stored sessions with accuracy and outcome. In a terminal this
opens an interactive table; --plain (or a pipe) prints a list instead.

Examples:
  qmaze history
  qmaze history --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to print with --plain")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a plain list instead of the interactive table")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height, _ := term.GetSize(fd)
		profiles := loadProfiles(newLogger(os.Stderr, "qmaze"))
		var diffs []string
		for _, k := range profiles.Keys() {
			diffs = append(diffs, string(k))
		}
		if err := tui.RunHistory(store, diffs, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	records, err := store.RecentSessions(context.Background(), flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-8s  %-22s  %-7s  %-5s  %s\n", "Date", "Player", "Level", "Result", "Score", "Time", "Acc")
	for _, r := range records {
		fmt.Printf("  %-16s  %-12s  %-8s  %-22s  %-7d  %-5s  %3.0f%%\n",
			r.EndedAt.Format("2006-01-02 15:04"),
			r.PlayerName,
			r.Difficulty,
			fmt.Sprintf("%s (%s)", r.Result, r.Reason),
			r.Score,
			fmt.Sprintf("%d:%02d", r.TimeTaken/60, r.TimeTaken%60),
			r.Accuracy()*100,
		)
	}
}
