package snowdrift

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/snowdrift/internal/core"
	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/registry"
)

func newGame(t *testing.T, id string) *Game {
	t.Helper()
	rg, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	g := rg.(*Game)
	g.Reset(core.DefaultConfig())
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	var res core.StepResult
	for _, a := range actions {
		in := core.NewInputFrame()
		in.Set(a)
		res = g.Step(in)
	}
	return res
}

func TestWorldsRegistered(t *testing.T) {
	var ids []string
	for _, info := range registry.List() {
		ids = append(ids, info.ID)
	}
	want := []string{"world1", "world2", "world3", "hub"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("registered games = %v, want %v", ids, want)
	}

	if len(Worlds()) != len(want) {
		t.Errorf("Worlds() returned %d worlds", len(Worlds()))
	}
}

func TestCompleteLevelEmitsEvent(t *testing.T) {
	g := newGame(t, "world1")

	press(g, core.ActionRight, core.ActionRight, core.ActionRight)
	if s := g.Snapshot(); s.State != StateSolved || s.Moves != 3 {
		t.Fatalf("after solving: state %s, moves %d", s.State, s.Moves)
	}

	// Moves are ignored once solved.
	press(g, core.ActionLeft)
	if g.Snapshot().Moves != 3 {
		t.Error("solved level accepted a move")
	}

	res := press(g, core.ActionConfirm)
	want := []core.Event{{Kind: core.EventLevelComplete, GameID: "world1", LevelID: "w1-01", Moves: 3}}
	if !reflect.DeepEqual(res.Events, want) {
		t.Errorf("events = %+v, want %+v", res.Events, want)
	}
	if res.State.Score != 1 {
		t.Errorf("score = %d, want 1", res.State.Score)
	}

	s := g.Snapshot()
	if s.Level != "w1-02" || s.Index != 2 || s.Moves != 0 {
		t.Errorf("after confirm: level %s index %d moves %d", s.Level, s.Index, s.Moves)
	}
}

func TestUndoAndRestart(t *testing.T) {
	g := newGame(t, "world1")

	press(g, core.ActionRight, core.ActionRight)
	press(g, core.ActionUndo)
	if g.Snapshot().Moves != 1 {
		t.Errorf("moves after undo = %d, want 1", g.Snapshot().Moves)
	}

	press(g, core.ActionRestart)
	s := g.Snapshot()
	start := g.Session().World().Levels[0].Level.Entities
	if s.Moves != 0 || !reflect.DeepEqual(s.Entities, start) {
		t.Errorf("restart did not restore the level: %+v", s)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newGame(t, "world1")

	press(g, core.ActionPause, core.ActionRight)
	if s := g.Snapshot(); s.State != StatePaused || s.Moves != 0 {
		t.Errorf("paused game moved: %+v", s)
	}

	press(g, core.ActionPause, core.ActionRight)
	if s := g.Snapshot(); s.State != StatePlaying || s.Moves != 1 {
		t.Errorf("resumed game did not move: %+v", s)
	}
}

func TestLoadProgressResumes(t *testing.T) {
	g := newGame(t, "world1")
	g.LoadProgress([]string{"w1-01", "w1-02"})

	s := g.Snapshot()
	if s.Level != "w1-03" || s.Tokens != 2 {
		t.Errorf("resumed at %s with %d tokens, want w1-03 with 2", s.Level, s.Tokens)
	}
}

func TestStartLevel(t *testing.T) {
	SetStartLevel(4)
	g := newGame(t, "world1")
	if lvl := g.Snapshot().Level; lvl != "w1-04" {
		t.Errorf("started at %s, want w1-04", lvl)
	}

	// The selection is used once.
	g2 := newGame(t, "world1")
	if lvl := g2.Snapshot().Level; lvl != "w1-01" {
		t.Errorf("second game started at %s, want w1-01", lvl)
	}
}

func TestHubPortals(t *testing.T) {
	g := newGame(t, "hub")

	// The attic portal below the start costs two tokens.
	res := press(g, core.ActionDown)
	if len(res.Events) != 0 || g.Snapshot().Level != "hub" {
		t.Fatalf("locked portal was taken: %+v", res.Events)
	}

	g.LoadProgress([]string{"w1-01", "w1-02"})
	res = press(g, core.ActionDown)
	want := []core.Event{{Kind: core.EventTravel, GameID: "hub", LevelID: "hub-attic"}}
	if !reflect.DeepEqual(res.Events, want) {
		t.Fatalf("events = %+v, want %+v", res.Events, want)
	}
	if s := g.Snapshot(); s.Level != "hub-attic" || !s.Travelled {
		t.Errorf("after travel: %+v", s)
	}

	// Back leaves a travelled-to level for the hub.
	press(g, core.ActionBack)
	if s := g.Snapshot(); s.Level != "hub" || s.Travelled {
		t.Errorf("after back: %+v", s)
	}
}

func TestSingleLevelGame(t *testing.T) {
	lvl, err := puzzle.FromString("Tiny\n#####\n#pbt#\n#####")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	g := NewSingle("tiny", lvl)
	g.Reset(core.DefaultConfig())

	press(g, core.ActionRight)
	res := press(g, core.ActionConfirm)
	if !res.State.GameOver || g.Snapshot().State != StateWorldComplete {
		t.Errorf("single level not finished: %+v", g.Snapshot())
	}
	if len(res.Events) != 1 || res.Events[0].LevelID != "tiny" {
		t.Errorf("events = %+v", res.Events)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, "world1")
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Snowfield") {
		t.Errorf("title row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Moves: 0") {
		t.Errorf("status row = %q", screen.Row(1))
	}

	out := screen.String()
	for _, glyph := range []string{"☃", "✚", "◌", "██"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("screen is missing %q:\n%s", glyph, out)
		}
	}

	// The present is drawn delivered once it sits on the receptacle.
	press(g, core.ActionRight, core.ActionRight, core.ActionRight)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Solved!") {
		t.Error("solved overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	rg, _ := registry.Create("world1")
	g := rg.(*Game)
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 6
	g.Reset(cfg)

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Errorf("small window not detected: %+v", g.Snapshot())
	}

	screen := core.NewScreen(20, 6)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("screen = %q", screen.String())
	}
}

func TestResizeKeepsState(t *testing.T) {
	g := newGame(t, "world1")
	press(g, core.ActionRight)

	g.Resize(20, 6)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state after shrinking = %s", g.Snapshot().State)
	}

	g.Resize(80, 24)
	if s := g.Snapshot(); s.State != StatePlaying || s.Moves != 1 {
		t.Errorf("state after growing = %+v", s)
	}
}
