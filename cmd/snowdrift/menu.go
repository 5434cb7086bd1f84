package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowdrift/internal/games/snowdrift"
	"github.com/vovakirdan/snowdrift/internal/platform/tui"
	"github.com/vovakirdan/snowdrift/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start snowdrift with a world picker menu",
	Long: `Start snowdrift in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a world, then pick
Continue or a specific level. Leaving a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best solutions
  Esc          - Back
  Q            - Quit

Examples:
  snowdrift menu
  snowdrift menu --db ./snowdrift.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e := setup()
	defer e.close()

	cfg := e.runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(e.store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(e.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		var selection *tui.LevelSelection
		for _, w := range snowdrift.Worlds() {
			if w.ID == menuResult.GameID {
				selection, err = tui.RunLevelSelector(w, e.store, cfg)
				if err != nil {
					return err
				}
			}
		}
		if selection == nil {
			continue // Back to menu
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return err
		}
		if g, ok := game.(*snowdrift.Game); ok {
			g.StartAt(selection.Level)
		}

		if err := tui.Run(game, e.store, cfg, logger); err != nil {
			return err
		}
	}
}
