// Package config provides YAML-based configuration loading for snowdrift:
// play settings, the user level directory and the board theme.
package config

import (
	"unicode/utf8"

	"github.com/vovakirdan/snowdrift/internal/core"
)

// Config contains all snowdrift configuration.
type Config struct {
	Play   PlayConfig   `yaml:"play"`
	Levels LevelsConfig `yaml:"levels"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// PlayConfig defines gameplay parameters.
type PlayConfig struct {
	HistoryLimit int `yaml:"history_limit"` // undo snapshots per level, 0 = unbounded
	TickRate     int `yaml:"tick_rate"`     // ticks per second
}

// LevelsConfig locates user level files on disk.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// Glyph is how one board element is drawn: up to two runes and a color
// name (see core.ParseColor).
type Glyph struct {
	Text  string `yaml:"text"`
	Color string `yaml:"color"`
}

// ThemeConfig maps board elements to glyphs.
type ThemeConfig struct {
	Wall         Glyph `yaml:"wall"`
	Snow         Glyph `yaml:"snow"`
	Ice          Glyph `yaml:"ice"`
	Player       Glyph `yaml:"player"`
	Crate        Glyph `yaml:"crate"`
	Present      Glyph `yaml:"present"`
	Receptacle   Glyph `yaml:"receptacle"`
	Delivered    Glyph `yaml:"delivered"` // present on a receptacle
	Portal       Glyph `yaml:"portal"`
	PortalLocked Glyph `yaml:"portal_locked"`
	Tree         Glyph `yaml:"tree"`
	Stump        Glyph `yaml:"stump"`
}

// Cell returns the glyph as a two-column screen cell: its runes padded
// with spaces, and its color.
func (g Glyph) Cell() ([2]rune, core.Color) {
	out := [2]rune{' ', ' '}
	i := 0
	for _, r := range g.Text {
		if i == len(out) {
			break
		}
		out[i] = r
		i++
	}
	c, _ := core.ParseColor(g.Color)
	return out, c
}

const (
	minTickRate = 1
	maxTickRate = 120
)

// Validate replaces out-of-range values with defaults.
func (c *Config) Validate() {
	def := DefaultConfig()

	if c.Play.TickRate == 0 {
		c.Play.TickRate = def.Play.TickRate
	}
	c.Play.TickRate = core.Clamp(c.Play.TickRate, minTickRate, maxTickRate)
	if c.Play.HistoryLimit < 0 {
		c.Play.HistoryLimit = 0
	}

	t, d := &c.Theme, def.Theme
	for _, pair := range []struct{ got, def *Glyph }{
		{&t.Wall, &d.Wall},
		{&t.Snow, &d.Snow},
		{&t.Ice, &d.Ice},
		{&t.Player, &d.Player},
		{&t.Crate, &d.Crate},
		{&t.Present, &d.Present},
		{&t.Receptacle, &d.Receptacle},
		{&t.Delivered, &d.Delivered},
		{&t.Portal, &d.Portal},
		{&t.PortalLocked, &d.PortalLocked},
		{&t.Tree, &d.Tree},
		{&t.Stump, &d.Stump},
	} {
		if pair.got.Text == "" || utf8.RuneCountInString(pair.got.Text) > 2 {
			pair.got.Text = pair.def.Text
		}
		if _, ok := core.ParseColor(pair.got.Color); !ok {
			pair.got.Color = pair.def.Color
		}
	}
}
