package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLevel is returned when a textual level cannot be parsed.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrNotTextual is returned when a level holds entities the textual
	// format cannot express.
	ErrNotTextual = errors.New("level not expressible as text")

	// ErrOutOfBounds is returned when a level is built with entities or
	// tiles that do not fit its dimensions.
	ErrOutOfBounds = errors.New("out of bounds")
)

// Level is the immutable template of a puzzle: geometry, terrain and the
// initial entity placement. Play happens on a LevelInstance.
type Level struct {
	Title    string
	W        int
	H        int
	Tiles    []Tile   // row-major, len W*H
	Entities []Entity // initial placement, insertion order is canonical
}

// New builds a level from explicit parts, checking the grid invariants.
// The slices are copied.
func New(title string, w, h int, tiles []Tile, entities []Entity) (*Level, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("puzzle: dimensions %dx%d: %w", w, h, ErrOutOfBounds)
	}
	if len(tiles) != w*h {
		return nil, fmt.Errorf("puzzle: %d tiles for %dx%d grid: %w", len(tiles), w, h, ErrOutOfBounds)
	}
	l := &Level{
		Title:    title,
		W:        w,
		H:        h,
		Tiles:    append([]Tile(nil), tiles...),
		Entities: append([]Entity(nil), entities...),
	}
	for _, e := range l.Entities {
		if !l.InBounds(e.X, e.Y) {
			return nil, fmt.Errorf("puzzle: %s at (%d,%d) outside %dx%d grid: %w",
				e.Kind, e.X, e.Y, w, h, ErrOutOfBounds)
		}
	}
	return l, nil
}

// NewBlank returns an all-snow level with no entities.
func NewBlank(title string, w, h int) *Level {
	return &Level{
		Title: title,
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
	}
}

// FromString parses the textual level format: a title line followed by
// equal-length rows. A single trailing newline and CR line endings are
// tolerated.
func FromString(s string) (*Level, error) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("puzzle: no level content: %w", ErrInvalidLevel)
	}

	title, rows := lines[0], lines[1:]
	w, h := len(rows[0]), len(rows)
	if w == 0 {
		return nil, fmt.Errorf("puzzle: empty first row: %w", ErrInvalidLevel)
	}
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("puzzle: row %d has length %d, want %d: %w", i, len(row), w, ErrInvalidLevel)
		}
	}

	l := &Level{
		Title: title,
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
	}
	for y, row := range rows {
		for x := 0; x < w; x++ {
			tile, kind, hasEntity, ok := decodeCell(row[x])
			if !ok {
				return nil, fmt.Errorf("puzzle: forbidden character %q at (%d,%d): %w", row[x], x, y, ErrInvalidLevel)
			}
			l.Tiles[y*w+x] = tile
			if hasEntity {
				l.Entities = append(l.Entities, Entity{Kind: kind, X: x, Y: y})
			}
		}
	}
	return l, nil
}

func decodeCell(c byte) (tile Tile, kind Kind, hasEntity, ok bool) {
	switch c {
	case '#':
		return TileWall, 0, false, true
	case ' ':
		return TileSnow, 0, false, true
	case '/':
		return TileIce, 0, false, true
	}
	tile = TileSnow
	if c >= 'A' && c <= 'Z' {
		tile = TileIce
		c += 'a' - 'A'
	}
	switch c {
	case 'p':
		return tile, KindPlayer, true, true
	case 't':
		return tile, KindReceptacle, true, true
	case 'b':
		return tile, KindPresent, true, true
	case 'c':
		return tile, KindCrate, true, true
	}
	return 0, 0, false, false
}

var entityChars = map[Kind]byte{
	KindPlayer:     'p',
	KindReceptacle: 't',
	KindPresent:    'b',
	KindCrate:      'c',
}

// Text serializes the level back into the textual format accepted by
// FromString. It fails with ErrNotTextual when an entity has no character,
// shares a cell, sits on a wall, or the entity order is not row-major.
func (l *Level) Text() (string, error) {
	grid := make([]byte, len(l.Tiles))
	for i, t := range l.Tiles {
		switch t {
		case TileWall:
			grid[i] = '#'
		case TileIce:
			grid[i] = '/'
		default:
			grid[i] = ' '
		}
	}

	last := -1
	for _, e := range l.Entities {
		c, ok := entityChars[e.Kind]
		if !ok {
			return "", fmt.Errorf("puzzle: %s at (%d,%d): %w", e.Kind, e.X, e.Y, ErrNotTextual)
		}
		idx := e.Y*l.W + e.X
		if idx <= last {
			return "", fmt.Errorf("puzzle: %s at (%d,%d) stacked or out of order: %w", e.Kind, e.X, e.Y, ErrNotTextual)
		}
		last = idx
		switch l.Tiles[idx] {
		case TileWall:
			return "", fmt.Errorf("puzzle: %s on wall at (%d,%d): %w", e.Kind, e.X, e.Y, ErrNotTextual)
		case TileIce:
			c -= 'a' - 'A'
		}
		grid[idx] = c
	}

	var sb strings.Builder
	sb.Grow(len(l.Title) + len(grid) + l.H + 1)
	sb.WriteString(l.Title)
	for y := 0; y < l.H; y++ {
		sb.WriteByte('\n')
		sb.Write(grid[y*l.W : (y+1)*l.W])
	}
	return sb.String(), nil
}

// InBounds reports whether (x, y) lies on the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.W && y >= 0 && y < l.H
}

// TileAt returns the tile at (x, y). It panics when the coordinate is
// outside the grid, since callers are expected to check InBounds first.
func (l *Level) TileAt(x, y int) Tile {
	if !l.InBounds(x, y) {
		panic(fmt.Sprintf("puzzle: tile (%d,%d) outside %dx%d grid", x, y, l.W, l.H))
	}
	return l.Tiles[y*l.W+x]
}

// Clone returns a deep copy of the level.
func (l *Level) Clone() *Level {
	c := *l
	c.Tiles = append([]Tile(nil), l.Tiles...)
	c.Entities = append([]Entity(nil), l.Entities...)
	return &c
}

// Victorious evaluates the victory condition against the initial placement.
func (l *Level) Victorious() bool {
	return Victorious(l.Entities)
}

// Count returns how many initial entities have the given kind.
func (l *Level) Count(k Kind) int {
	n := 0
	for _, e := range l.Entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Instance starts a play session on the level.
func (l *Level) Instance(opts ...InstanceOption) *LevelInstance {
	inst := &LevelInstance{
		level:    l,
		entities: append([]Entity(nil), l.Entities...),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}
