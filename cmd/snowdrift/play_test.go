package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels"
	"github.com/vovakirdan/snowdrift/internal/storage"
)

const introYAML = `id: intro
title: Intro
layout: |-
  #####
  #pbt#
  #####
`

func testEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	levelDir := filepath.Join(dir, "levels")
	if err := os.MkdirAll(levelDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return &env{store: store, loader: levels.NewLoader(levelDir)}
}

func TestFindGame(t *testing.T) {
	e := testEnv(t)

	file := filepath.Join(t.TempDir(), "intro.yaml")
	if err := os.WriteFile(file, []byte(introYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(e.loader.Root, "gate.yaml"),
		[]byte("id: gate\ntitle: Gate\nlayout: |-\n  ####\n  #pb#\n  #t #\n  ####\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	saved, err := puzzle.FromString("Saved\n#####\n#ptb#\n#####")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.store.SaveLevel("igloo", "santa", saved); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	tests := []struct {
		arg       string
		wantID    string
		wantTitle string
	}{
		{"world1", "world1", "Snowfield"},
		{file, "intro", "Intro"},
		{"igloo", "igloo", "Saved"},
		{"gate", "gate", "Gate"},
	}

	for _, tc := range tests {
		t.Run(tc.wantID, func(t *testing.T) {
			game, err := e.findGame(tc.arg)
			if err != nil {
				t.Fatalf("findGame(%q) failed: %v", tc.arg, err)
			}
			if game.ID() != tc.wantID {
				t.Errorf("ID() = %q, want %q", game.ID(), tc.wantID)
			}
			if game.Title() != tc.wantTitle {
				t.Errorf("Title() = %q, want %q", game.Title(), tc.wantTitle)
			}
		})
	}

	if _, err := e.findGame("nowhere"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestResolverOrder(t *testing.T) {
	e := testEnv(t)

	fromFile := "id: shared\ntitle: From File\nlayout: |-\n  ###\n  #p#\n  ###\n"
	if err := os.WriteFile(filepath.Join(e.loader.Root, "shared.yaml"), []byte(fromFile), 0o644); err != nil {
		t.Fatal(err)
	}

	r := e.resolver()
	lvl, err := r.Resolve("shared")
	if err != nil || lvl.Title != "From File" {
		t.Fatalf("Resolve(shared) = %v, %v", lvl, err)
	}

	saved, _ := puzzle.FromString("From Store\n###\n#p#\n###")
	if err := e.store.SaveLevel("shared", "", saved); err != nil {
		t.Fatal(err)
	}
	lvl, err = r.Resolve("shared")
	if err != nil || lvl.Title != "From Store" {
		t.Errorf("saved level should win: %v, %v", lvl, err)
	}

	if _, err := r.Resolve("missing"); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestFindWorld(t *testing.T) {
	w, ok := findWorld("world2")
	if !ok || len(w.Levels) != 4 {
		t.Errorf("findWorld(world2) = %+v, %v", w, ok)
	}
	if _, ok := findWorld("world9"); ok {
		t.Error("findWorld(world9) should fail")
	}
}

func TestNewLevel(t *testing.T) {
	e := testEnv(t)

	if err := e.newLevel("canvas", "Canvas", 6, 4, false); err != nil {
		t.Fatalf("newLevel() failed: %v", err)
	}

	stored, err := e.store.GetLevel("canvas")
	if err != nil || stored == nil {
		t.Fatalf("GetLevel(canvas) = %v, %v", stored, err)
	}
	lvl := stored.Level
	if lvl.Title != "Canvas" || lvl.W != 6 || lvl.H != 4 || len(lvl.Entities) != 0 {
		t.Errorf("stored level = %q %dx%d with %d entities", lvl.Title, lvl.W, lvl.H, len(lvl.Entities))
	}
	for i, tile := range lvl.Tiles {
		if tile != puzzle.TileSnow {
			t.Fatalf("tile %d = %s, want snow", i, tile)
		}
	}

	if err := e.newLevel("canvas", "Again", 3, 3, false); err == nil {
		t.Error("expected error when the name is taken")
	}
	if err := e.newLevel("canvas", "Again", 3, 3, true); err != nil {
		t.Errorf("newLevel() with force failed: %v", err)
	}
	if err := e.newLevel("flat", "Flat", 0, 3, false); err == nil {
		t.Error("expected error for zero width")
	}
}
