package puzzle

import (
	"errors"
	"testing"
)

func TestFromStringRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"title only", "Lonely"},
		{"title with trailing newline", "Lonely\n"},
		{"ragged rows", "Ragged\n###\n#p\n###"},
		{"forbidden character", "Bad\n#x#"},
		{"empty first row", "Blank\n\n"},
		{"non ascii", "Snowman\n#☃#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := FromString(tc.input)
			if err == nil {
				t.Fatalf("FromString(%q) = %+v, want error", tc.input, l)
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
		})
	}
}

func TestFromStringCells(t *testing.T) {
	l, err := FromString("Legend\n# /pP\ntTbBcC")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}

	if l.Title != "Legend" {
		t.Errorf("Title = %q, want Legend", l.Title)
	}
	if l.W != 6 || l.H != 2 {
		t.Fatalf("dims = %dx%d, want 6x2", l.W, l.H)
	}

	wantTiles := []Tile{
		TileWall, TileSnow, TileIce, TileSnow, TileIce, TileSnow,
		TileSnow, TileIce, TileSnow, TileIce, TileSnow, TileIce,
	}
	for i, want := range wantTiles {
		if l.Tiles[i] != want {
			t.Errorf("tile %d = %s, want %s", i, l.Tiles[i], want)
		}
	}

	wantEntities := []Entity{
		{Kind: KindPlayer, X: 3, Y: 0},
		{Kind: KindPlayer, X: 4, Y: 0},
		{Kind: KindReceptacle, X: 0, Y: 1},
		{Kind: KindReceptacle, X: 1, Y: 1},
		{Kind: KindPresent, X: 2, Y: 1},
		{Kind: KindPresent, X: 3, Y: 1},
		{Kind: KindCrate, X: 4, Y: 1},
		{Kind: KindCrate, X: 5, Y: 1},
	}
	if len(l.Entities) != len(wantEntities) {
		t.Fatalf("got %d entities, want %d", len(l.Entities), len(wantEntities))
	}
	for i, want := range wantEntities {
		if l.Entities[i] != want {
			t.Errorf("entity %d = %+v, want %+v", i, l.Entities[i], want)
		}
	}
}

func TestFromStringToleratesLineEndings(t *testing.T) {
	l, err := FromString("Windows\r\n#p#\r\n# #\r\n")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	if l.W != 3 || l.H != 2 {
		t.Errorf("dims = %dx%d, want 3x2", l.W, l.H)
	}
}

func TestFromStringTrailingNewline(t *testing.T) {
	l, err := FromString("T\n p \n")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	out, err := l.Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if out != "T\n p " {
		t.Errorf("Text() = %q, want %q", out, "T\n p ")
	}

	if _, err := FromString("T\n p \n\n"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("second trailing newline: err = %v, want ErrInvalidLevel", err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	inputs := []string{
		"Tiny\np",
		"First Steps\n#######\n#p b t#\n#######",
		"Slide\n#########\n#p//B//t#\n#/#####/#\n#C  T  c#\n#########",
		"Open Field\n   \n t \n   ",
	}

	for _, in := range inputs {
		l, err := FromString(in)
		if err != nil {
			t.Fatalf("FromString(%q) failed: %v", in, err)
		}
		out, err := l.Text()
		if err != nil {
			t.Fatalf("Text() failed for %q: %v", in, err)
		}
		if out != in {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", out, in)
		}
	}
}

func TestTextRejectsInexpressibleLevels(t *testing.T) {
	tiles := make([]Tile, 4)

	tests := []struct {
		name     string
		tiles    []Tile
		entities []Entity
	}{
		{"portal", tiles, []Entity{Portal(0, 0, 1, "elsewhere")}},
		{"tree", tiles, []Entity{{Kind: KindTree, X: 1, Y: 0}}},
		{"stacked", tiles, []Entity{{Kind: KindReceptacle, X: 0, Y: 0}, {Kind: KindPresent, X: 0, Y: 0}}},
		{"out of order", tiles, []Entity{{Kind: KindPlayer, X: 1, Y: 1}, {Kind: KindPresent, X: 0, Y: 0}}},
		{"on wall", []Tile{TileWall, TileSnow, TileSnow, TileSnow}, []Entity{{Kind: KindCrate, X: 0, Y: 0}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New("Odd", 2, 2, tc.tiles, tc.entities)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if _, err := l.Text(); !errors.Is(err, ErrNotTextual) {
				t.Errorf("Text() error = %v, want ErrNotTextual", err)
			}
		})
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New("Short", 2, 2, make([]Tile, 3), nil); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("short tiles: error = %v, want ErrOutOfBounds", err)
	}
	if _, err := New("Stray", 2, 2, make([]Tile, 4), []Entity{{Kind: KindCrate, X: 2, Y: 0}}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("stray entity: error = %v, want ErrOutOfBounds", err)
	}
	if _, err := New("Flat", 0, 3, nil, nil); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("zero width: error = %v, want ErrOutOfBounds", err)
	}
}

func TestNewBlank(t *testing.T) {
	l := NewBlank("Canvas", 4, 3)
	if len(l.Tiles) != 12 {
		t.Fatalf("got %d tiles, want 12", len(l.Tiles))
	}
	for i, tile := range l.Tiles {
		if tile != TileSnow {
			t.Errorf("tile %d = %s, want Snow", i, tile)
		}
	}
	if len(l.Entities) != 0 {
		t.Errorf("blank level has %d entities", len(l.Entities))
	}
}

func TestTileAtPanicsOutOfBounds(t *testing.T) {
	l := NewBlank("Edge", 2, 2)
	defer func() {
		if recover() == nil {
			t.Error("TileAt(2, 0) did not panic")
		}
	}()
	l.TileAt(2, 0)
}

func TestCloneIsDeep(t *testing.T) {
	l, err := FromString("Clone\npbt")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	c := l.Clone()
	c.Tiles[0] = TileWall
	c.Entities[0].X = 2

	if l.Tiles[0] != TileSnow || l.Entities[0].X != 0 {
		t.Error("mutating the clone changed the original")
	}
}

func TestVictorious(t *testing.T) {
	tests := []struct {
		name     string
		entities []Entity
		want     bool
	}{
		{
			name:     "no entities",
			entities: nil,
			want:     false,
		},
		{
			name: "presents without receptacles",
			entities: []Entity{
				{Kind: KindPresent, X: 1, Y: 1},
				{Kind: KindPresent, X: 2, Y: 1},
			},
			want: false,
		},
		{
			name: "present adjacent to receptacle",
			entities: []Entity{
				{Kind: KindReceptacle, X: 1, Y: 1},
				{Kind: KindPresent, X: 2, Y: 1},
			},
			want: false,
		},
		{
			name: "present on receptacle",
			entities: []Entity{
				{Kind: KindReceptacle, X: 1, Y: 1},
				{Kind: KindPresent, X: 1, Y: 1},
			},
			want: true,
		},
		{
			name: "crate does not count",
			entities: []Entity{
				{Kind: KindReceptacle, X: 1, Y: 1},
				{Kind: KindCrate, X: 1, Y: 1},
			},
			want: false,
		},
		{
			name: "one of two covered",
			entities: []Entity{
				{Kind: KindReceptacle, X: 0, Y: 0},
				{Kind: KindReceptacle, X: 3, Y: 0},
				{Kind: KindPresent, X: 0, Y: 0},
				{Kind: KindPresent, X: 2, Y: 0},
			},
			want: false,
		},
		{
			name: "spare presents",
			entities: []Entity{
				{Kind: KindPresent, X: 5, Y: 5},
				{Kind: KindReceptacle, X: 0, Y: 0},
				{Kind: KindPresent, X: 0, Y: 0},
			},
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Victorious(tc.entities); got != tc.want {
				t.Errorf("Victorious() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKindCapabilities(t *testing.T) {
	tests := []struct {
		kind                 Kind
		canMove, player, box bool
	}{
		{KindPlayer, true, false, false},
		{KindCrate, true, false, false},
		{KindPresent, true, false, false},
		{KindReceptacle, false, true, true},
		{KindPortal, false, true, false},
		{KindTree, false, false, false},
		{KindTreeStump, false, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.CanMove(); got != tc.canMove {
				t.Errorf("CanMove() = %v, want %v", got, tc.canMove)
			}
			if got := tc.kind.PlayerAllowed(); got != tc.player {
				t.Errorf("PlayerAllowed() = %v, want %v", got, tc.player)
			}
			if got := tc.kind.BoxesAllowed(); got != tc.box {
				t.Errorf("BoxesAllowed() = %v, want %v", got, tc.box)
			}
			back, ok := ParseKind(tc.kind.String())
			if !ok || back != tc.kind {
				t.Errorf("ParseKind(%q) = %v, %v", tc.kind.String(), back, ok)
			}
		})
	}
}
