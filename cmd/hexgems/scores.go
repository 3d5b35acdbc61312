package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexgems/internal/platform/tui"
	"github.com/vovakirdan/hexgems/internal/registry"
	"github.com/vovakirdan/hexgems/internal/storage"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a variant, or a summary of every
variant when none is given.

Examples:
  hexgems scores
  hexgems scores hexgems_flower
  hexgems scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q, run 'hexgems list' to see available variants", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, gameID)
		return err
	}

	if gameID == "" {
		return printSummary(store)
	}
	return printTopScores(store, gameID)
}

func printSummary(store *storage.Store) error {
	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %s\n", "Variant", "Games", "Best", "Average", "Chain")
	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %s\n", "-------", "-----", "----", "-------", "-----")

	for _, g := range registry.List() {
		stats, err := store.GetGameStats(g.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %-18s  %-6d  %-8d  %-8.0f  x%d\n",
			g.ID, stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestChain)
	}
	return nil
}

func printTopScores(store *storage.Store, gameID string) error {
	info, _ := registry.Info(gameID)

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hexgems play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %s\n", "Rank", "Score", "Moves", "Chain", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  x%-4d  %s\n",
			i+1, e.Score, e.Moves, e.BestChain, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}
