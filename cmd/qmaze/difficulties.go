package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty profiles",
	Long:  `Shows the difficulty profiles in effect, after --config and the search path.`,
	Run:   runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) {
	profiles := loadProfiles(newLogger(os.Stderr, "qmaze"))

	fmt.Println("Difficulty profiles:")
	fmt.Println()
	fmt.Printf("  %-8s  %-7s  %-5s  %-6s  %-8s  %-7s  %s\n", "Key", "Maze", "Lives", "Time", "Interval", "Q time", "Score x")
	fmt.Printf("  %-8s  %-7s  %-5s  %-6s  %-8s  %-7s  %s\n", "---", "----", "-----", "----", "--------", "------", "-------")

	for _, k := range profiles.Keys() {
		p, _ := profiles.Lookup(k)
		fmt.Printf("  %-8s  %-7s  %-5d  %-6s  %-8s  %-7s  %.1f\n",
			k,
			fmt.Sprintf("%dx%d", p.MazeRows, p.MazeCols),
			p.Lives,
			p.TotalTimeLimit(),
			p.Interval(),
			fmt.Sprintf("%+.0fs", p.QuestionTimeModifier),
			p.ScoreMultiplier,
		)
		if p.Description != "" {
			fmt.Printf("  %-8s  %s\n", "", p.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run 'qmaze play <key>' to play.")
}
