package main

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowdrift/internal/campaign"
	"github.com/vovakirdan/snowdrift/internal/games/snowdrift"
	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels/formats"
)

var (
	flagImportName    string
	flagImportCreator string
	flagImportForce   bool
	flagExportOutput  string

	flagNewWidth  int
	flagNewHeight int
	flagNewTitle  string
	flagNewForce  bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Manage saved and custom levels",
	Long: `Manage the level repository stored in the progress database and
the user level directory (see --levels).

Saved levels can be played with 'snowdrift play <name>' and used as
portal destinations.`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved levels and level files",
	Args:  cobra.NoArgs,
	RunE:  runLevelsList,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a level",
	Long: `Print a level by name. Built-in levels, saved levels and the user
level directory are searched in that order. Levels the character layout
can express are printed as text, others as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runLevelsShow,
}

var levelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save a level file into the repository",
	Long: `Save a level file (.yaml, .yml or .txt) into the level repository.

Examples:
  snowdrift levels import ./mine.yaml
  snowdrift levels import ./mine.txt --name igloo --creator santa`,
	Args: cobra.ExactArgs(1),
	RunE: runLevelsImport,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a saved level as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsExport,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Check level files for errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLevelsValidate,
}

var levelsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a saved level",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsDelete,
}

var levelsNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Save an empty level to start from",
	Long: `Save an all-snow level of the given size into the repository.
Export it, draw walls and presents into the layout, then import it back.

Examples:
  snowdrift levels new igloo --width 12 --height 8
  snowdrift levels export igloo -o igloo.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runLevelsNew,
}

func init() {
	levelsImportCmd.Flags().StringVar(&flagImportName, "name", "", "Name to save the level under (default: the level ID)")
	levelsImportCmd.Flags().StringVar(&flagImportCreator, "creator", "", "Level creator (default: the file's creator)")
	levelsImportCmd.Flags().BoolVarP(&flagImportForce, "force", "f", false, "Replace an existing level with the same name")
	levelsExportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default: stdout)")
	levelsNewCmd.Flags().IntVar(&flagNewWidth, "width", 10, "Level width in cells")
	levelsNewCmd.Flags().IntVar(&flagNewHeight, "height", 6, "Level height in cells")
	levelsNewCmd.Flags().StringVar(&flagNewTitle, "title", "", "Level title (default: the name)")
	levelsNewCmd.Flags().BoolVarP(&flagNewForce, "force", "f", false, "Replace an existing level with the same name")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsShowCmd)
	levelsCmd.AddCommand(levelsImportCmd)
	levelsCmd.AddCommand(levelsExportCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsDeleteCmd)
	levelsCmd.AddCommand(levelsNewCmd)
}

func runLevelsList(_ *cobra.Command, _ []string) error {
	e := setup()
	defer e.close()

	if e.store != nil {
		saved, err := e.store.ListLevels()
		if err != nil {
			return err
		}
		fmt.Println("Saved levels:")
		fmt.Println()
		if len(saved) == 0 {
			fmt.Println("  (none)")
		} else {
			fmt.Printf("  %-16s  %-24s  %-12s  %s\n", "Name", "Title", "Creator", "Updated")
			fmt.Printf("  %-16s  %-24s  %-12s  %s\n", "----", "-----", "-------", "-------")
			for _, info := range saved {
				fmt.Printf("  %-16s  %-24s  %-12s  %s\n", info.Name, info.Title, info.Creator,
					info.UpdatedAt.Format("2006-01-02 15:04"))
			}
		}
		fmt.Println()
	}

	if e.loader == nil {
		return nil
	}
	files, err := e.loader.LoadAll()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	fmt.Printf("Level files in %s:\n", e.loader.Root)
	fmt.Println()
	if len(files) == 0 {
		fmt.Println("  (none)")
		return nil
	}
	fmt.Printf("  %-16s  %-24s  %s\n", "ID", "Title", "Path")
	fmt.Printf("  %-16s  %-24s  %s\n", "--", "-----", "----")
	for _, lvl := range files {
		fmt.Printf("  %-16s  %-24s  %s\n", lvl.ID, lvl.Title(), lvl.FilePath)
	}
	return nil
}

func runLevelsShow(_ *cobra.Command, args []string) error {
	e := setup()
	defer e.close()

	name := args[0]
	lvl, err := campaign.NewCatalog(snowdrift.Worlds(), e.resolver()).Resolve(name)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%dx%d, %d presents, %d receptacles)\n", lvl.Title, lvl.W, lvl.H,
		lvl.Count(puzzle.KindPresent), lvl.Count(puzzle.KindReceptacle))
	fmt.Println()

	text, err := lvl.Text()
	if err == nil {
		fmt.Println(text)
		return nil
	}
	if !errors.Is(err, puzzle.ErrNotTextual) {
		return err
	}

	data, err := formats.EncodeYAML(name, "", lvl)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runLevelsImport(_ *cobra.Command, args []string) error {
	e, err := setupStore()
	if err != nil {
		return err
	}
	defer e.close()

	lvl, err := levels.LoadPath(args[0])
	if err != nil {
		return err
	}

	name := flagImportName
	if name == "" {
		name = lvl.ID
	}
	creator := flagImportCreator
	if creator == "" {
		creator = lvl.Creator
	}

	exists, err := e.store.ContainsLevel(name)
	if err != nil {
		return err
	}
	if exists && !flagImportForce {
		return fmt.Errorf("level %q already exists (use --force to replace it)", name)
	}

	if err := e.store.SaveLevel(name, creator, lvl.Puzzle); err != nil {
		return err
	}
	logger.Debug("level saved", "name", name, "creator", creator, "file", args[0])
	fmt.Printf("Saved %q as %s\n", lvl.Title(), name)
	return nil
}

func runLevelsExport(_ *cobra.Command, args []string) error {
	e, err := setupStore()
	if err != nil {
		return err
	}
	defer e.close()

	stored, err := e.store.GetLevel(args[0])
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("no saved level named %q", args[0])
	}

	data, err := formats.EncodeYAML(stored.Name, stored.Creator, stored.Level)
	if err != nil {
		return err
	}

	if flagExportOutput == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(flagExportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagExportOutput, err)
	}
	fmt.Printf("Wrote %s\n", flagExportOutput)
	return nil
}

func runLevelsValidate(_ *cobra.Command, args []string) error {
	failed := 0

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			if _, err := levels.LoadPath(p); err != nil {
				fmt.Printf("FAIL  %s: %v\n", p, err)
				failed++
				continue
			}
			fmt.Printf("ok    %s\n", p)
			continue
		}

		problems, err := levels.NewLoader(p).Validate()
		if err != nil {
			return err
		}
		for _, file := range slices.Sorted(maps.Keys(problems)) {
			fmt.Printf("FAIL  %s: %v\n", filepath.Join(p, file), problems[file])
		}
		failed += len(problems)
		if len(problems) == 0 {
			fmt.Printf("ok    %s\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d invalid level file(s)", failed)
	}
	return nil
}

func runLevelsDelete(_ *cobra.Command, args []string) error {
	e, err := setupStore()
	if err != nil {
		return err
	}
	defer e.close()

	deleted, err := e.store.DeleteLevel(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no saved level named %q", args[0])
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runLevelsNew(_ *cobra.Command, args []string) error {
	e, err := setupStore()
	if err != nil {
		return err
	}
	defer e.close()

	title := flagNewTitle
	if title == "" {
		title = args[0]
	}
	if err := e.newLevel(args[0], title, flagNewWidth, flagNewHeight, flagNewForce); err != nil {
		return err
	}
	fmt.Printf("Saved empty %dx%d level %s\n", flagNewWidth, flagNewHeight, args[0])
	return nil
}

// newLevel saves a blank w×h level under name.
func (e *env) newLevel(name, title string, w, h int, force bool) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid size %dx%d", w, h)
	}

	exists, err := e.store.ContainsLevel(name)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("level %q already exists (use --force to replace it)", name)
	}

	return e.store.SaveLevel(name, "", puzzle.NewBlank(title, w, h))
}
