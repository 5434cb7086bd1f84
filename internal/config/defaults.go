package config

import (
	_ "embed"
)

//go:embed defaults/snowdrift.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration, used when no YAML
// can be read at all.
func DefaultConfig() Config {
	return Config{
		Play: PlayConfig{
			HistoryLimit: 0,
			TickRate:     30,
		},
		Levels: LevelsConfig{
			Dir: "~/.snowdrift/levels",
		},
		Theme: ThemeConfig{
			Wall:         Glyph{Text: "██", Color: "gray"},
			Snow:         Glyph{Text: "  ", Color: "default"},
			Ice:          Glyph{Text: "░░", Color: "bright_cyan"},
			Player:       Glyph{Text: "☃ ", Color: "bright_white"},
			Crate:        Glyph{Text: "▣ ", Color: "orange"},
			Present:      Glyph{Text: "✚ ", Color: "bright_red"},
			Receptacle:   Glyph{Text: "◌ ", Color: "yellow"},
			Delivered:    Glyph{Text: "✚ ", Color: "bright_green"},
			Portal:       Glyph{Text: "◎ ", Color: "bright_magenta"},
			PortalLocked: Glyph{Text: "◎ ", Color: "magenta"},
			Tree:         Glyph{Text: "♣ ", Color: "green"},
			Stump:        Glyph{Text: "▪ ", Color: "yellow"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
