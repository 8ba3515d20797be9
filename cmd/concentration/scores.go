package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-concentration/internal/games/concentration"
	"github.com/vovakirdan/tui-concentration/internal/platform/tui"
	"github.com/vovakirdan/tui-concentration/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show result history",
	Long: `Display the fastest completed boards and overall statistics.

Examples:
  concentration scores
  concentration scores --limit 20
  concentration scores -i          # browse recent and fastest games`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, concentration.GameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
			os.Exit(1)
		}
		return
	}

	stats, err := store.Stats(concentration.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	fastest, err := store.FastestCompletions(concentration.GameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Fastest boards - Concentration")
	fmt.Println()

	if len(fastest) == 0 {
		fmt.Println("No completed boards yet.")
		fmt.Println()
		fmt.Println("Run 'concentration play' to set the first time!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Time", "Flips", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "----", "-----", "----")
	for i, r := range fastest {
		fmt.Printf("  %-4d  %-8s  %-6d  %s\n", i+1, r.Duration.Round(100*time.Millisecond), r.Flips,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Played: %d  Completed: %d  Best: %s  Average: %s\n",
		stats.Played, stats.Completed,
		stats.Fastest.Round(100*time.Millisecond), stats.Average.Round(100*time.Millisecond))
}
