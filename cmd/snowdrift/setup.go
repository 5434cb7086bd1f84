package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/snowdrift/internal/campaign"
	"github.com/vovakirdan/snowdrift/internal/config"
	"github.com/vovakirdan/snowdrift/internal/core"
	"github.com/vovakirdan/snowdrift/internal/games/snowdrift"
	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels"
	"github.com/vovakirdan/snowdrift/internal/storage"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "snowdrift"})

// env is what most commands need: configuration, the progress store and
// the user level directory.
type env struct {
	cfg    config.Config
	store  *storage.Store // nil when the database could not be opened
	loader *levels.Loader
}

// setup loads configuration, opens the store and wires level lookup into
// the game package. Storage failures are warnings, the game still works.
func setup() *env {
	cfg := loadConfig()
	e := &env{cfg: cfg}

	if dir := config.ExpandHome(cfg.Levels.Dir); dir != "" {
		e.loader = levels.NewLoader(dir)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database", "err", err)
	} else {
		e.store = store
	}

	snowdrift.SetResolver(e.resolver())

	return e
}

// loadConfig loads configuration, applies flag overrides and hands the
// theme to the game package.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("using default configuration", "err", err)
		cfg = config.DefaultConfig()
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}

	snowdrift.SetTheme(cfg.Theme)
	snowdrift.SetLogger(logger)
	return cfg
}

// setupStore is setup for commands that only manage stored data and
// cannot work without the database.
func setupStore() (*env, error) {
	e := setup()
	if e.store == nil {
		return nil, fmt.Errorf("no progress database at %s", flagDBPath)
	}
	return e, nil
}

// resolver looks up portal destinations in saved levels, then in the
// user level directory.
func (e *env) resolver() campaign.Resolver {
	return campaign.ResolverFunc(func(id string) (*puzzle.Level, error) {
		if e.store != nil {
			lvl, err := e.store.Resolve(id)
			if err == nil {
				return lvl, nil
			}
			if !errors.Is(err, storage.ErrLevelNotFound) {
				return nil, err
			}
		}
		if e.loader != nil {
			if _, err := os.Stat(e.loader.Root); !errors.Is(err, fs.ErrNotExist) {
				return e.loader.Resolve(id)
			}
		}
		return nil, campaign.ErrUnknownLevel
	})
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
}

// runtimeConfig sizes the game to the terminal.
func (e *env) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	cfg.TickRate = e.cfg.Play.TickRate
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.HistoryLimit = e.cfg.Play.HistoryLimit
	return cfg
}
