package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/qmaze/internal/maze"
)

var (
	flagMazeRows    int
	flagMazeCols    int
	flagMazeDensity float64
)

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print the maze for a seed",
	Long: `Generate a maze and print it as ASCII art, with its event cells.
The same rows, cols, seed and density always give the same maze.

Examples:
  qmaze maze --seed 42
  qmaze maze --rows 10 --cols 30 --seed 7 --density 0.1`,
	Args: cobra.NoArgs,
	Run:  runMaze,
}

func init() {
	mazeCmd.Flags().IntVar(&flagMazeRows, "rows", 15, "Maze rows")
	mazeCmd.Flags().IntVar(&flagMazeCols, "cols", 15, "Maze columns")
	mazeCmd.Flags().Float64Var(&flagMazeDensity, "density", maze.DefaultEventDensity, "Event cell density in [0,1]")
}

func runMaze(_ *cobra.Command, _ []string) {
	m := maze.Generate(flagMazeRows, flagMazeCols, flagSeed, maze.WithEventDensity(flagMazeDensity))

	fmt.Printf("Maze %dx%d, seed %d\n\n", m.Rows(), m.Cols(), m.Seed())
	fmt.Print(m.String())

	events := m.EventCells()
	fmt.Printf("\n%d event cells", len(events))
	if len(events) > 0 {
		fmt.Print(":")
		for _, p := range events {
			fmt.Printf(" %s", p)
		}
	}
	fmt.Println()
}
