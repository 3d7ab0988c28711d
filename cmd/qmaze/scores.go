package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qmaze/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the top scores, for one difficulty or across all of them.

Examples:
  qmaze scores
  qmaze scores hard --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	difficulty := ""
	if len(args) == 1 {
		difficulty = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	records, err := store.TopScores(ctx, difficulty, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'qmaze play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-12s  %-8s  %-6s  %s\n", "Rank", "Score", "Player", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-7s  %-12s  %-8s  %-6s  %s\n", "----", "-----", "------", "-----", "------", "----")

	for i, r := range records {
		fmt.Printf("  %-4d  %-7d  %-12s  %-8s  %-6s  %s\n",
			i+1, r.Score, r.PlayerName, r.Difficulty, r.Result, r.EndedAt.Format("2006-01-02 15:04"))
	}

	if difficulty != "" {
		fmt.Println()
		if best, err := store.HighScore(ctx, difficulty); err == nil {
			fmt.Printf("Best: %d\n", best)
		}
	}
}
