// Package campaign drives play across levels: it turns per-tick input
// into moves on a level instance, and tracks completions, tokens and
// portal travel between levels.
package campaign

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels"
)

// ErrUnknownLevel is returned by a Resolver that has no level for an ID.
var ErrUnknownLevel = errors.New("unknown level")

// Entry is one level of a world.
type Entry struct {
	ID    string
	Level *puzzle.Level
}

// World is an ordered sequence of levels played one after another.
type World struct {
	ID     string
	Title  string
	Levels []Entry
}

// WorldFromPack builds a world from a loaded level pack.
func WorldFromPack(p levels.Pack) World {
	w := World{ID: p.ID, Title: p.Title, Levels: make([]Entry, len(p.Levels))}
	for i, lvl := range p.Levels {
		w.Levels[i] = Entry{ID: lvl.ID, Level: lvl.Puzzle}
	}
	return w
}

// Index returns the position of the level with the given ID, or -1.
func (w World) Index(id string) int {
	for i, e := range w.Levels {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Resolver looks up a level by ID, typically a portal destination.
type Resolver interface {
	Resolve(id string) (*puzzle.Level, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(id string) (*puzzle.Level, error)

// Resolve calls f(id).
func (f ResolverFunc) Resolve(id string) (*puzzle.Level, error) { return f(id) }

// Catalog resolves levels across a set of worlds, then an optional
// fallback such as the user's saved levels.
type Catalog struct {
	worlds   []World
	fallback Resolver
}

// NewCatalog creates a catalog. fallback may be nil.
func NewCatalog(worlds []World, fallback Resolver) *Catalog {
	return &Catalog{worlds: worlds, fallback: fallback}
}

// Worlds returns the catalog's worlds in order.
func (c *Catalog) Worlds() []World { return c.worlds }

// World returns the world with the given ID.
func (c *Catalog) World(id string) (World, bool) {
	for _, w := range c.worlds {
		if w.ID == id {
			return w, true
		}
	}
	return World{}, false
}

// Resolve implements Resolver.
func (c *Catalog) Resolve(id string) (*puzzle.Level, error) {
	for _, w := range c.worlds {
		if i := w.Index(id); i >= 0 {
			return w.Levels[i].Level, nil
		}
	}
	if c.fallback != nil {
		lvl, err := c.fallback.Resolve(id)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", id, err)
		}
		return lvl, nil
	}
	return nil, fmt.Errorf("resolve %s: %w", id, ErrUnknownLevel)
}
