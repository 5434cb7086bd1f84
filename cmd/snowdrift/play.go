package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowdrift/internal/games/snowdrift"
	"github.com/vovakirdan/snowdrift/internal/platform/tui"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels"
	"github.com/vovakirdan/snowdrift/internal/registry"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play <world|file|level>",
	Short: "Play a world or a single level",
	Long: `Start playing a world, a level file, or a level saved with
'snowdrift levels import'. Names are tried in that order, then the user
level directory is searched.

A world resumes at its first unsolved level unless --level is given.

Controls:
  Arrows/WASD/hjkl  - Move
  Z/U/Backspace     - Undo
  R                 - Restart level
  Enter/Space       - Next level once solved
  Esc/B             - Leave a portal level, or quit a finished world
  P                 - Pause
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  snowdrift play world1
  snowdrift play world2 --level 3
  snowdrift play ./levels/mine.yaml
  snowdrift play my-saved-level`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Level of the world to start on (1-based)")
}

func runPlay(_ *cobra.Command, args []string) error {
	e := setup()
	defer e.close()

	game, err := e.findGame(args[0])
	if err != nil {
		return err
	}

	if err := tui.Run(game, e.store, e.runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// findGame resolves a play argument to a world or a single-level game.
func (e *env) findGame(name string) (registry.Game, error) {
	if registry.Exists(name) {
		if flagStartLevel > 0 {
			snowdrift.SetStartLevel(flagStartLevel)
		}
		return registry.Create(name)
	}

	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		lvl, err := levels.LoadPath(name)
		if err != nil {
			return nil, err
		}
		return snowdrift.NewSingle(lvl.ID, lvl.Puzzle), nil
	}

	if e.store != nil {
		stored, err := e.store.GetLevel(name)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return snowdrift.NewSingle(name, stored.Level), nil
		}
	}

	if e.loader != nil {
		if lvl, err := e.loader.LoadByID(name); err == nil {
			return snowdrift.NewSingle(lvl.ID, lvl.Puzzle), nil
		}
	}

	return nil, fmt.Errorf("unknown world or level %q (run 'snowdrift list' or 'snowdrift levels list')", name)
}
