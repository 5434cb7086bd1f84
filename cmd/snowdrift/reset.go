package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [world]",
	Short: "Forget solved levels",
	Long: `Clear recorded completions for one world, or for every world when
no world is given. Tokens are earned again by solving levels.

Examples:
  snowdrift reset world1
  snowdrift reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

func runReset(_ *cobra.Command, args []string) error {
	var worldID string
	if len(args) == 1 {
		worldID = args[0]
		if _, ok := findWorld(worldID); !ok {
			return fmt.Errorf("unknown world %q (run 'snowdrift list' to see available worlds)", worldID)
		}
	}

	e, err := setupStore()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.store.ClearProgress(worldID); err != nil {
		return err
	}

	if worldID == "" {
		fmt.Println("All progress cleared.")
	} else {
		fmt.Printf("Progress cleared for %s.\n", worldID)
	}
	return nil
}
