package puzzle

import "fmt"

// Kind tags the variant of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindCrate
	KindPresent
	KindReceptacle
	KindPortal
	KindTree
	KindTreeStump
)

var kindNames = map[Kind]string{
	KindPlayer:     "player",
	KindCrate:      "crate",
	KindPresent:    "present",
	KindReceptacle: "receptacle",
	KindPortal:     "portal",
	KindTree:       "tree",
	KindTreeStump:  "stump",
}

// String returns the lowercase kind name used in level files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// CanMove reports whether entities of this kind are displaced by moves.
func (k Kind) CanMove() bool {
	switch k {
	case KindPlayer, KindCrate, KindPresent:
		return true
	default:
		return false
	}
}

// PlayerAllowed reports whether a player may share a cell with this kind
// without pushing it. Trees block like walls.
func (k Kind) PlayerAllowed() bool {
	switch k {
	case KindReceptacle, KindPortal, KindTreeStump:
		return true
	default:
		return false
	}
}

// BoxesAllowed reports whether a pushed crate or present may share a cell
// with this kind.
func (k Kind) BoxesAllowed() bool {
	return k == KindReceptacle
}

// Entity is a positioned game object. Tokens and Dest are only meaningful
// for portals: the token cost to enter and the destination level ID.
type Entity struct {
	Kind   Kind
	X      int
	Y      int
	Tokens int
	Dest   string
}

// Pos returns the entity's grid position.
func (e Entity) Pos() Pos {
	return Pos{X: e.X, Y: e.Y}
}

// At reports whether the entity occupies p.
func (e Entity) At(p Pos) bool {
	return e.X == p.X && e.Y == p.Y
}

// Portal is a convenience constructor for portal entities.
func Portal(x, y, tokens int, dest string) Entity {
	return Entity{Kind: KindPortal, X: x, Y: y, Tokens: tokens, Dest: dest}
}

// Victorious reports whether every receptacle in entities has a present on
// the same cell. A set with no receptacles is never victorious.
func Victorious(entities []Entity) bool {
	receptacles := 0
	for _, r := range entities {
		if r.Kind != KindReceptacle {
			continue
		}
		receptacles++
		covered := false
		for _, p := range entities {
			if p.Kind == KindPresent && p.X == r.X && p.Y == r.Y {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return receptacles > 0
}
