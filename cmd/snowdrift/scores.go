package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowdrift/internal/campaign"
	"github.com/vovakirdan/snowdrift/internal/games/snowdrift"
	"github.com/vovakirdan/snowdrift/internal/registry"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [world]",
	Short: "Show solved levels and best solutions",
	Long: `Without arguments, display progress for every world.
With a world ID, display the fewest moves recorded for each solved level.

Examples:
  snowdrift scores
  snowdrift scores world2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	e, err := setupStore()
	if err != nil {
		return err
	}
	defer e.close()

	if len(args) == 0 {
		return e.printAllProgress()
	}

	world, ok := findWorld(args[0])
	if !ok {
		return fmt.Errorf("unknown world %q (run 'snowdrift list' to see available worlds)", args[0])
	}
	return e.printWorldScores(world)
}

func findWorld(id string) (campaign.World, bool) {
	return campaign.NewCatalog(snowdrift.Worlds(), nil).World(id)
}

func (e *env) printAllProgress() error {
	stats, err := e.store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("Progress")
	fmt.Println()
	fmt.Printf("  %-8s  %-7s  %-11s  %s\n", "World", "Solved", "Completions", "Last played")
	fmt.Printf("  %-8s  %-7s  %-11s  %s\n", "-----", "------", "-----------", "-----------")

	for _, info := range registry.List() {
		world, _ := findWorld(info.ID)
		solved, completions, last := 0, int64(0), "-"
		if s, ok := stats[info.ID]; ok {
			solved = int(s.Levels)
			completions = int64(s.Completions)
			if !s.LastPlayed.IsZero() {
				last = s.LastPlayed.Format("2006-01-02 15:04")
			}
		}
		fmt.Printf("  %-8s  %-7s  %-11d  %s\n", info.ID,
			fmt.Sprintf("%d/%d", solved, len(world.Levels)), completions, last)
	}

	all, err := e.store.AllCompletedLevels()
	if err != nil {
		return fmt.Errorf("retrieving progress: %w", err)
	}
	fmt.Println()
	fmt.Printf("Tokens: %d\n", len(all))
	return nil
}

func (e *env) printWorldScores(world campaign.World) error {
	best, err := e.store.BestPerLevel(world.ID)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("Best Solutions - %s\n", world.Title)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Println()
		fmt.Printf("Play 'snowdrift play %s' to solve the first one!\n", world.ID)
		return nil
	}

	fmt.Printf("  %-8s  %-24s  %-5s  %s\n", "Level", "Title", "Moves", "Date")
	fmt.Printf("  %-8s  %-24s  %-5s  %s\n", "-----", "-----", "-----", "----")

	for _, entry := range best {
		title := entry.LevelID
		if i := world.Index(entry.LevelID); i >= 0 {
			title = world.Levels[i].Level.Title
		}
		fmt.Printf("  %-8s  %-24s  %-5d  %s\n", entry.LevelID, title, entry.Moves,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := e.store.GetGameStats(world.ID)
	if err != nil {
		logger.Warn("could not read stats", "world", world.ID, "err", err)
		return nil
	}
	fmt.Println()
	fmt.Printf("Solved %d/%d levels in %d completions\n", stats.Levels, len(world.Levels), stats.Completions)
	return nil
}
