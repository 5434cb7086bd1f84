package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowdrift/internal/games/snowdrift"
	"github.com/vovakirdan/snowdrift/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all worlds",
	Long:  `Shows the worlds shipped with snowdrift and how many levels each has.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No worlds available.")
		return
	}

	counts := make(map[string]int)
	for _, w := range snowdrift.Worlds() {
		counts[w.ID] = len(w.Levels)
	}

	fmt.Println("Available worlds:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, g.ID, counts[g.ID], g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'snowdrift play <id>' to play a world.")
}
