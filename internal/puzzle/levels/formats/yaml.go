// Package formats provides the level file parsers and encoders.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string       `yaml:"id"`
	Title    string       `yaml:"title"`
	Creator  string       `yaml:"creator,omitempty"`
	Layout   string       `yaml:"layout"`
	Entities []YAMLEntity `yaml:"entities,omitempty"`
}

// YAMLEntity is an entity the layout cannot express, such as a portal or a
// tree, or any entity that shares its cell.
type YAMLEntity struct {
	Kind   string `yaml:"kind"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Tokens int    `yaml:"tokens,omitempty"`
	Dest   string `yaml:"dest,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID      string
	Creator string
	Puzzle  *puzzle.Level
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, errors.New("missing id")
	}
	if strings.ContainsAny(yl.Title, "\r\n") {
		return Level{}, fmt.Errorf("level %s: title must be a single line", yl.ID)
	}

	base, err := puzzle.FromString(yl.Title + "\n" + yl.Layout)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: layout: %w", yl.ID, err)
	}

	entities := base.Entities
	for i, ye := range yl.Entities {
		kind, ok := puzzle.ParseKind(ye.Kind)
		if !ok {
			return Level{}, fmt.Errorf("level %s: entity %d: unknown kind %q", yl.ID, i, ye.Kind)
		}
		entities = append(entities, puzzle.Entity{
			Kind:   kind,
			X:      ye.X,
			Y:      ye.Y,
			Tokens: ye.Tokens,
			Dest:   ye.Dest,
		})
	}

	lvl, err := puzzle.New(base.Title, base.W, base.H, base.Tiles, entities)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	return Level{
		ID:      yl.ID,
		Creator: yl.Creator,
		Puzzle:  lvl,
	}, nil
}

// EncodeYAML writes lvl as a YAML level file that ParseYAML reads back into
// an identical level. The leading entities the layout can carry go into the
// layout and the rest are listed explicitly.
func EncodeYAML(id, creator string, lvl *puzzle.Level) ([]byte, error) {
	if id == "" {
		return nil, errors.New("missing id")
	}
	if strings.ContainsAny(lvl.Title, "\r\n") {
		return nil, fmt.Errorf("level %s: title must be a single line", id)
	}

	layout, n, err := splitLayout(lvl)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", id, err)
	}

	yl := YAMLLevel{
		ID:      id,
		Title:   lvl.Title,
		Creator: creator,
		Layout:  layout,
	}
	for _, e := range lvl.Entities[n:] {
		yl.Entities = append(yl.Entities, YAMLEntity{
			Kind:   e.Kind.String(),
			X:      e.X,
			Y:      e.Y,
			Tokens: e.Tokens,
			Dest:   e.Dest,
		})
	}

	return yaml.Marshal(&yl)
}

// splitLayout finds the longest prefix of entities that the textual layout
// reproduces and returns the layout rows with that prefix drawn in.
func splitLayout(lvl *puzzle.Level) (layout string, n int, err error) {
	probe := &puzzle.Level{W: lvl.W, H: lvl.H, Tiles: lvl.Tiles}
	best := ""
	for n = 0; n <= len(lvl.Entities); n++ {
		probe.Entities = lvl.Entities[:n]
		text, err := probe.Text()
		if err != nil {
			if n == 0 {
				return "", 0, err
			}
			break
		}
		best = text
	}
	// The probe has an empty title, so the text starts with the row break.
	return strings.TrimPrefix(best, "\n"), n - 1, nil
}

// ParseText parses a level in the raw textual format. The ID is the file
// name without its extension.
func ParseText(path string, data []byte) (Level, error) {
	lvl, err := puzzle.FromString(string(data))
	if err != nil {
		return Level{}, err
	}
	base := filepath.Base(path)
	return Level{
		ID:     strings.TrimSuffix(base, filepath.Ext(base)),
		Puzzle: lvl,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}
