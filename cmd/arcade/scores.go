package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 runs for the specified game, or a summary of
every game when no game is given.

Use --run to show a single run by its ID, and --clear to delete a game's
history together with its best score.

Examples:
  arcade scores
  arcade scores breakout
  arcade scores --run 3f2c9a1e-8d4b-4c1a-9f7e-2b6d5a0c1e44
  arcade scores snake --clear
  arcade scores snake --db ./scores.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var (
	flagClear bool
	flagRunID string
)

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the game's runs and best score")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show the run with this ID")
}

func runScores(_ *cobra.Command, args []string) error {
	if flagClear && len(args) == 0 {
		return fmt.Errorf("--clear needs a game")
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagRunID != "" {
		return printRun(store, flagRunID)
	}
	if len(args) == 0 {
		return printAllStats(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", gameID)
		return nil
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %-16s  %s\n", "Rank", "Score", "Level", "Result", "Date", "Run")
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %-16s  %s\n", "----", "-----", "-----", "------", "----", "---")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5s  %-8s  %-16s  %s\n",
			i+1, entry.Score, levelText(entry.Level), orDash(entry.Outcome), dateStr, orDash(entry.RunID))
	}

	// Best is the persisted cell; databases from before it existed only have history
	fmt.Println()
	best := storage.NewHighScoreCell(store, gameID, nil).Load()
	if best > 0 {
		fmt.Printf("Best: %d\n", best)
	} else if high, hsErr := store.HighScore(gameID); hsErr == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	games := registry.List()
	fmt.Println("Arcade Stats")
	fmt.Println()
	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %s\n", "Game", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %s\n", "----", "----", "----", "-------", "-----------")
	for _, g := range games {
		best := storage.NewHighScoreCell(store, g.ID, nil).Load()
		st, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-18s  %-6d  %-8d  %-8s  %s\n", g.ID, 0, best, "-", "never")
			continue
		}
		best = max(best, st.HighScore)
		fmt.Printf("  %-18s  %-6d  %-8d  %-8.1f  %s\n",
			g.ID, st.GamesCount, best, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}
	fmt.Printf("Run %s\n", run.RunID)
	fmt.Println()
	fmt.Printf("  Game:   %s\n", run.GameID)
	fmt.Printf("  Score:  %d\n", run.Score)
	fmt.Printf("  Level:  %s\n", levelText(run.Level))
	fmt.Printf("  Result: %s\n", orDash(run.Outcome))
	fmt.Printf("  Date:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func levelText(level int) string {
	if level <= 0 {
		return "-"
	}
	return strconv.Itoa(level)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
