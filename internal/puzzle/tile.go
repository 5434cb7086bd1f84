// Package puzzle implements the level state machine for Snowdrift: the
// static level model, move resolution with push chains and ice momentum,
// undo history and the victory test.
// It has no UI dependencies and every operation is deterministic.
package puzzle

// Tile is the immutable terrain classification of a single grid cell.
type Tile uint8

const (
	TileSnow Tile = iota
	TileIce
	TileWall
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileSnow:
		return "Snow"
	case TileIce:
		return "Ice"
	case TileWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Dir is one of the four grid directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the unit offset for the direction. Y grows downward.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Pos is a grid coordinate.
type Pos struct {
	X int
	Y int
}

// Step returns the position one cell away in direction d.
func (p Pos) Step(d Dir) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}
