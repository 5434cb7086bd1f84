// Package levels provides level loading for snowdrift: single level files
// on disk and the world packs embedded in the binary.
// This package depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels/formats"
)

// Level represents a loaded level definition.
type Level struct {
	ID       string
	Creator  string
	Puzzle   *puzzle.Level
	FilePath string
}

// Title returns the level title.
func (l Level) Title() string {
	if l.Puzzle == nil {
		return ""
	}
	return l.Puzzle.Title
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an fs.FS, rooted at its top.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{Root: ".", fsys: fsys}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
// Files that fail to parse are skipped; use Validate to see why.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := l.walk(func(p string) error {
		level, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// Validate parses every level file and returns the parse error of each
// file that failed, keyed by path.
func (l *Loader) Validate() (map[string]error, error) {
	failures := make(map[string]error)
	err := l.walk(func(p string) error {
		if _, err := l.LoadFile(p); err != nil {
			failures[p] = err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	return failures, nil
}

// LoadFile loads a single level file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(p, data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Creator:  parsed.Creator,
		Puzzle:   parsed.Puzzle,
		FilePath: path.Join(l.Root, p),
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// Resolve returns the puzzle of the level with the given ID, so a
// directory of level files can serve portal destinations.
func (l *Loader) Resolve(id string) (*puzzle.Level, error) {
	lvl, err := l.LoadByID(id)
	if err != nil {
		return nil, err
	}
	return lvl.Puzzle, nil
}

// LoadPath loads one level file given by an OS path.
func LoadPath(p string) (Level, error) {
	return NewLoader(filepath.Dir(p)).LoadFile(filepath.Base(p))
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// walk calls fn for every level file under the root.
func (l *Loader) walk(fn func(p string) error) error {
	return fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == packFile {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}
		return fn(p)
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(p string, data []byte) (formats.Level, error) {
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt":
		return formats.ParseText(p, data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
