// snowdrift is a terminal puzzle game: push presents through snow and
// over ice onto their receptacles, and travel between worlds by portal.
//
// Usage:
//
//	snowdrift list                - List worlds
//	snowdrift play <world|level>  - Play a world, a level file or a saved level
//	snowdrift menu                - Pick worlds interactively
//	snowdrift serve               - Start SSH server for remote play
//	snowdrift scores [world]      - Show best solutions
//	snowdrift levels <command>    - Manage user levels
//	snowdrift reset [world]       - Forget completed levels
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config)
//	--db <path>      - Set database path (default: ~/.snowdrift/snowdrift.db)
//	--config <path>  - Use a custom config file
//	--levels <dir>   - Directory of user level files
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snowdrift",
	Short: "Snowdrift - a snowy box-pushing puzzle for your terminal",
	Long: `Snowdrift is a terminal puzzle game. Push every present onto a
receptacle to solve a level. Crates block, ice keeps things sliding and
portals lead to other levels once you have earned enough tokens.

Available commands:
  list     - Show all worlds
  play     - Play a world, a level file or a saved level
  menu     - Interactive world picker menu
  serve    - Start SSH server for remote play
  scores   - View best solutions
  levels   - Import, export and validate user levels
  reset    - Forget completed levels

Examples:
  snowdrift list
  snowdrift play world1
  snowdrift play ./my-level.yaml
  snowdrift menu
  snowdrift serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snowdrift/snowdrift.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of user level files (default: from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(resetCmd)
}
