package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonsums/internal/games/t2048"
	"github.com/vovakirdan/neonsums/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores for a mode and grid size. Variants are
named <mode>_<size>, for example fun_4x4 or classic_6x6.

Examples:
  neonsums scores fun_4x4
  neonsums scores classic_5x5 --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

// findVariant looks a variant up by its score key.
func findVariant(key string) (t2048.Variant, bool) {
	for _, v := range t2048.Variants() {
		if v.ScoreKey() == key {
			return v, true
		}
	}
	return t2048.Variant{}, false
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	variant, ok := findVariant(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q, expected e.g. fun_4x4 or classic_5x5", gameID)
	}

	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", variant.Name())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'neonsums play %s --size %d' to set the first high score!\n", variant.Mode, int(variant.Size))
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Max Tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "--------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-8d  %s\n", i+1, entry.Score, entry.MaxTile, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Best tile: %d  Games: %d  Average: %.0f\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
