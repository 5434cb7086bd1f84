package puzzle

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, text string) *Level {
	t.Helper()
	l, err := FromString(text)
	if err != nil {
		t.Fatalf("FromString(%q) failed: %v", text, err)
	}
	return l
}

func mustBuild(t *testing.T, text string, extra ...Entity) *Level {
	t.Helper()
	base := mustParse(t, text)
	l, err := New(base.Title, base.W, base.H, base.Tiles, append(base.Entities, extra...))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l
}

// positionsOf returns the positions of every entity of kind k, in order.
func positionsOf(li *LevelInstance, k Kind) []Pos {
	var out []Pos
	for _, e := range li.Entities() {
		if e.Kind == k {
			out = append(out, e.Pos())
		}
	}
	return out
}

func TestPushChainMovesFarEndFirst(t *testing.T) {
	li := mustParse(t, "Chain\n pc  ").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}

	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{2, 0}}) {
		t.Errorf("player at %v, want [(2,0)]", got)
	}
	if got := positionsOf(li, KindCrate); !reflect.DeepEqual(got, []Pos{{3, 0}}) {
		t.Errorf("crate at %v, want [(3,0)]", got)
	}
	if li.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, want 1", li.HistoryLen())
	}
}

func TestLongPushChain(t *testing.T) {
	li := mustParse(t, "Train\npcbc ").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}
	want := []Entity{
		{Kind: KindPlayer, X: 1, Y: 0},
		{Kind: KindCrate, X: 2, Y: 0},
		{Kind: KindPresent, X: 3, Y: 0},
		{Kind: KindCrate, X: 4, Y: 0},
	}
	if got := li.Entities(); !reflect.DeepEqual(got, want) {
		t.Errorf("entities = %+v, want %+v", got, want)
	}

	if li.TryMove(DirRight) {
		t.Error("chain against the grid edge moved")
	}
}

func TestRejectedMoveIsNoOp(t *testing.T) {
	tests := []struct {
		name  string
		level *Level
		dir   Dir
	}{
		{"wall behind crate", mustParse(t, "Blocked\n#pc#"), DirRight},
		{"wall ahead", mustParse(t, "Boxed\n#p#"), DirLeft},
		{"grid edge", mustParse(t, "Edge\np "), DirLeft},
		{"two boxes against wall", mustParse(t, "Stuck\npbc#"), DirRight},
		{"tree ahead", mustBuild(t, "Grove\np  ", Entity{Kind: KindTree, X: 1, Y: 0}), DirRight},
		{"crate into tree", mustBuild(t, "Grove\npc  ", Entity{Kind: KindTree, X: 2, Y: 0}), DirRight},
		{"present onto stump", mustBuild(t, "Stump\npb  ", Entity{Kind: KindTreeStump, X: 2, Y: 0}), DirRight},
		{"crate onto portal", mustBuild(t, "Gate\npc  ", Portal(2, 0, 0, "beyond")), DirRight},
		{"no players", mustParse(t, "Empty\n bt "), DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			li := tc.level.Instance()
			before := li.Entities()

			if li.TryMove(tc.dir) {
				t.Fatalf("TryMove(%s) = true, want false", tc.dir)
			}
			if got := li.Entities(); !reflect.DeepEqual(got, before) {
				t.Errorf("entities changed: got %+v, want %+v", got, before)
			}
			if li.HistoryLen() != 0 {
				t.Errorf("HistoryLen() = %d, want 0", li.HistoryLen())
			}
		})
	}
}

func TestPlayerWalksOverAllowedEntities(t *testing.T) {
	tests := []struct {
		name  string
		level *Level
	}{
		{"receptacle", mustParse(t, "Goal\npt ")},
		{"portal", mustBuild(t, "Gate\np  ", Portal(1, 0, 9, "far"))},
		{"stump", mustBuild(t, "Stump\np  ", Entity{Kind: KindTreeStump, X: 1, Y: 0})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			li := tc.level.Instance()
			if !li.TryMove(DirRight) {
				t.Fatal("TryMove(Right) = false, want true")
			}
			if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{1, 0}}) {
				t.Errorf("player at %v, want [(1,0)]", got)
			}
			if len(li.EntitiesAt(1, 0)) != 2 {
				t.Errorf("expected player to share (1,0), got %+v", li.EntitiesAt(1, 0))
			}
		})
	}
}

func TestBoxesEnterReceptacles(t *testing.T) {
	li := mustParse(t, "Deliver\npct bt").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}
	if got := li.EntitiesAt(2, 0); len(got) != 2 {
		t.Errorf("crate should share the receptacle, got %+v", got)
	}
	if li.Victorious() {
		t.Error("crate on receptacle must not count as victory")
	}
}

func TestIceMomentumSlidesUntilSnow(t *testing.T) {
	li := mustParse(t, "Rink\np// #").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{3, 0}}) {
		t.Errorf("player at %v, want [(3,0)]", got)
	}
	if li.HistoryLen() != 1 {
		t.Errorf("a slide is one move, HistoryLen() = %d", li.HistoryLen())
	}
}

func TestIceMomentumStopsAtWall(t *testing.T) {
	li := mustParse(t, "Rink\n#p///#").Instance()

	li.TryMove(DirRight)
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{4, 0}}) {
		t.Errorf("player at %v, want [(4,0)]", got)
	}

	// Already on ice against the wall: nothing can move.
	if li.TryMove(DirRight) {
		t.Error("TryMove(Right) against wall = true, want false")
	}
}

func TestIceMomentumStopsAtGridEdge(t *testing.T) {
	li := mustParse(t, "Open Ice\np///").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{3, 0}}) {
		t.Errorf("player at %v, want [(3,0)]", got)
	}
}

func TestSlidingPresentReachesReceptacle(t *testing.T) {
	li := mustParse(t, "Curling\npB/t#").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}

	if got := positionsOf(li, KindPresent); !reflect.DeepEqual(got, []Pos{{3, 0}}) {
		t.Errorf("present at %v, want [(3,0)]", got)
	}
	// The player slides behind the present and stops against it.
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{2, 0}}) {
		t.Errorf("player at %v, want [(2,0)]", got)
	}
	if !li.Victorious() {
		t.Error("Victorious() = false, want true")
	}
}

func TestSlidingEntityPushesObstruction(t *testing.T) {
	li := mustParse(t, "Billiards\npB/c  #").Instance()

	li.TryMove(DirRight)

	// The present slides into the crate and shoves it onto snow, then the
	// player sliding behind shoves the whole line once more.
	if got := positionsOf(li, KindCrate); !reflect.DeepEqual(got, []Pos{{5, 0}}) {
		t.Errorf("crate at %v, want [(5,0)]", got)
	}
	if got := positionsOf(li, KindPresent); !reflect.DeepEqual(got, []Pos{{4, 0}}) {
		t.Errorf("present at %v, want [(4,0)]", got)
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{3, 0}}) {
		t.Errorf("player at %v, want [(3,0)]", got)
	}
}

func TestEachEntityMovesOncePerStep(t *testing.T) {
	li := mustParse(t, "Twins\npp  ").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) = false, want true")
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{1, 0}, {2, 0}}) {
		t.Errorf("players at %v, want [(1,0) (2,0)]", got)
	}

	// The pushed player is not moved again into the wall.
	li = mustParse(t, "Wall\npp #").Instance()
	if !li.TryMove(DirRight) {
		t.Fatal("TryMove(Right) against the wall = false, want true")
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{1, 0}, {2, 0}}) {
		t.Errorf("players at %v, want [(1,0) (2,0)]", got)
	}
	if li.TryMove(DirRight) {
		t.Error("second TryMove(Right) = true, want false")
	}
}

func TestIndependentPlayers(t *testing.T) {
	li := mustParse(t, "Pair\np #\np  ").Instance()

	if !li.TryMove(DirRight) {
		t.Fatal("first move rejected")
	}
	// The top player is now against the wall, the bottom one can still go.
	if !li.TryMove(DirRight) {
		t.Fatal("second move rejected")
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{1, 0}, {2, 1}}) {
		t.Errorf("players at %v, want [(1,0) (2,1)]", got)
	}
}

func TestUndoRestoresEachStep(t *testing.T) {
	li := mustParse(t, "Walk\n#####\n#p b#\n#/ t#\n#####").Instance()
	initial := li.Entities()

	moves := []Dir{DirRight, DirDown, DirUp, DirRight, DirLeft, DirDown}
	var snapshots [][]Entity
	for _, d := range moves {
		before := li.Entities()
		if li.TryMove(d) {
			snapshots = append(snapshots, before)
		}
	}
	if len(snapshots) == 0 {
		t.Fatal("no move succeeded")
	}
	if li.HistoryLen() != len(snapshots) {
		t.Fatalf("HistoryLen() = %d, want %d", li.HistoryLen(), len(snapshots))
	}

	for i := len(snapshots) - 1; i >= 0; i-- {
		if !li.Undo() {
			t.Fatalf("Undo() #%d = false", len(snapshots)-i)
		}
		if got := li.Entities(); !reflect.DeepEqual(got, snapshots[i]) {
			t.Fatalf("after undo got %+v, want %+v", got, snapshots[i])
		}
	}

	if got := li.Entities(); !reflect.DeepEqual(got, initial) {
		t.Errorf("entities = %+v, want initial %+v", got, initial)
	}
	if li.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0", li.HistoryLen())
	}
	if li.Undo() {
		t.Error("Undo() on empty history = true")
	}
}

func TestUndoAfterSlide(t *testing.T) {
	li := mustParse(t, "Rink\np// #").Instance()
	li.TryMove(DirRight)

	if !li.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{0, 0}}) {
		t.Errorf("player at %v, want [(0,0)]", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	li := mustParse(t, "Corridor\np    ").Instance(WithHistoryLimit(2))

	for i := 0; i < 4; i++ {
		if !li.TryMove(DirRight) {
			t.Fatalf("move %d rejected", i)
		}
	}
	if li.HistoryLen() != 2 {
		t.Fatalf("HistoryLen() = %d, want 2", li.HistoryLen())
	}

	li.Undo()
	li.Undo()
	if got := positionsOf(li, KindPlayer); !reflect.DeepEqual(got, []Pos{{2, 0}}) {
		t.Errorf("player at %v, want [(2,0)]", got)
	}
	if li.Undo() {
		t.Error("Undo() past the limit = true")
	}
}

func TestMovesCountedPastHistoryLimit(t *testing.T) {
	li := mustParse(t, "Corridor\np    t").Instance(WithHistoryLimit(2))

	for i := 0; i < 4; i++ {
		if !li.TryMove(DirRight) {
			t.Fatalf("move %d rejected", i)
		}
	}
	if li.Moves() != 4 {
		t.Errorf("Moves() = %d, want 4", li.Moves())
	}

	li.Undo()
	if li.Moves() != 3 {
		t.Errorf("Moves() after undo = %d, want 3", li.Moves())
	}
	li.TryMove(DirUp)
	if li.Moves() != 3 {
		t.Errorf("Moves() after rejected move = %d, want 3", li.Moves())
	}

	li.Reset()
	if li.Moves() != 0 {
		t.Errorf("Moves() after reset = %d, want 0", li.Moves())
	}
}

func TestResetRestoresInitialPlacement(t *testing.T) {
	level := mustParse(t, "Reset\npb t")
	li := level.Instance()
	li.TryMove(DirRight)
	li.TryMove(DirRight)

	li.Reset()
	if got := li.Entities(); !reflect.DeepEqual(got, level.Entities) {
		t.Errorf("entities = %+v, want %+v", got, level.Entities)
	}
	if li.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0", li.HistoryLen())
	}
}

func TestInstanceDoesNotMutateLevel(t *testing.T) {
	level := mustParse(t, "Template\npb t")
	want := level.Clone()

	li := level.Instance()
	li.TryMove(DirRight)
	li.TryMove(DirRight)

	if !reflect.DeepEqual(level, want) {
		t.Errorf("level changed during play: %+v", level)
	}
}

func TestSolveByPushing(t *testing.T) {
	li := mustParse(t, "First Steps\n#######\n#p b t#\n#######").Instance()

	for i := 0; i < 3; i++ {
		if li.Victorious() {
			t.Fatalf("victorious too early after %d moves", i)
		}
		li.TryMove(DirRight)
	}
	if !li.Victorious() {
		t.Errorf("Victorious() = false, entities %+v", li.Entities())
	}
	if li.Moves() != 3 {
		t.Errorf("Moves() = %d, want 3", li.Moves())
	}
}

func TestPortalTrigger(t *testing.T) {
	level := mustBuild(t, "Gate\np  ", Portal(1, 0, 2, "world2"))
	li := level.Instance()

	if _, ok := li.PortalTrigger(5); ok {
		t.Error("portal triggered before the player reached it")
	}

	li.TryMove(DirRight)
	before := li.Entities()

	if _, ok := li.PortalTrigger(1); ok {
		t.Error("portal triggered with too few tokens")
	}
	dest, ok := li.PortalTrigger(2)
	if !ok || dest != "world2" {
		t.Errorf("PortalTrigger(2) = %q, %v, want world2, true", dest, ok)
	}
	if got := li.Entities(); !reflect.DeepEqual(got, before) {
		t.Error("PortalTrigger mutated the instance")
	}

	p, ok := li.TriggeredPortal(2)
	if !ok || p.Pos() != (Pos{1, 0}) || p.Dest != "world2" {
		t.Errorf("TriggeredPortal(2) = %+v, %v", p, ok)
	}
}
