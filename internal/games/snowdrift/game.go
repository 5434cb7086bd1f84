// Package snowdrift adapts the snow and presents puzzle worlds to the
// game platform. Every world is registered as its own game.
package snowdrift

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snowdrift/internal/campaign"
	"github.com/vovakirdan/snowdrift/internal/config"
	"github.com/vovakirdan/snowdrift/internal/core"
	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels"
	"github.com/vovakirdan/snowdrift/internal/registry"
)

// Package-level settings shared by every world, set by the platform
// before games are created.
var (
	builtin  []campaign.World
	fallback campaign.Resolver
	theme    = config.DefaultConfig().Theme
	logger   = log.New(io.Discard)

	selectedStartLevel int
)

func init() {
	packs, err := levels.Builtin()
	if err != nil {
		panic(fmt.Sprintf("snowdrift: builtin levels: %v", err))
	}
	for _, p := range packs {
		w := campaign.WorldFromPack(p)
		builtin = append(builtin, w)
		registry.Register(registry.GameInfo{ID: w.ID, Title: w.Title, Order: p.Order}, func() registry.Game {
			return New(w)
		})
	}
}

// Worlds returns the builtin worlds in menu order.
func Worlds() []campaign.World {
	return append([]campaign.World(nil), builtin...)
}

// SetResolver sets where portal destinations outside the builtin worlds
// are looked up, typically the level repository. nil disables them.
func SetResolver(r campaign.Resolver) {
	fallback = r
}

// SetTheme sets the glyphs used to draw the board.
func SetTheme(t config.ThemeConfig) {
	theme = t
}

// SetLogger sets the logger handed to play sessions.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// SetStartLevel selects the level (1-based) the next game starts on.
// 0 means the first level not yet completed.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// Game implements registry.Game for one world.
type Game struct {
	world    campaign.World
	session  *campaign.Session
	resolver campaign.Resolver

	historyLimit int
	startLevel   int
	completed    []string
	tick         uint64

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	notice   string // short message shown under the board
}

// New creates a game that plays through world.
func New(world campaign.World) *Game {
	return &Game{world: world}
}

// NewSingle creates a one-level game, used to play a level file or a
// saved level directly.
func NewSingle(id string, lvl *puzzle.Level) *Game {
	return New(campaign.World{
		ID:     id,
		Title:  lvl.Title,
		Levels: []campaign.Entry{{ID: id, Level: lvl}},
	})
}

// StartAt selects the level (1-based) the next Reset starts on, like
// SetStartLevel but for this game only.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.world.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.world.Title }

// Reset starts the world over, keeping any loaded progress.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.historyLimit = cfg.HistoryLimit
	g.paused = false
	g.notice = ""

	if selectedStartLevel > 0 {
		g.startLevel = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}

	g.resolver = campaign.NewCatalog(builtin, fallback)
	g.newSession()
	g.checkScreenSize()
}

// LoadProgress restarts the session with the given levels already
// completed. Play resumes at the first incomplete level.
func (g *Game) LoadProgress(completed []string) {
	g.completed = append([]string(nil), completed...)
	g.newSession()
}

func (g *Game) newSession() {
	if g.resolver == nil {
		g.resolver = campaign.NewCatalog(builtin, fallback)
	}
	s, err := campaign.NewSession(g.world, g.resolver, g.completed,
		campaign.WithLogger(logger),
		campaign.WithInstanceOptions(puzzle.WithHistoryLimit(g.historyLimit)),
	)
	if err != nil {
		// Only an empty world fails, and worlds are validated when loaded.
		panic(err)
	}
	if g.startLevel > 0 {
		if err := s.Select(g.startLevel - 1); err != nil {
			logger.Warn("ignoring start level", "world", g.world.ID, "err", err)
		}
	}
	g.session = s
}

// Resize updates the screen dimensions, keeping play state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen can hold the current level.
func (g *Game) checkScreenSize() {
	inst := g.session.Player().Instance()
	minW := max(inst.W()*cellWidth, minScreenW)
	minH := inst.H() + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	out := g.session.Step(toInput(in))

	var events []core.Event
	switch out.Kind {
	case campaign.OutcomeComplete:
		events = append(events, core.Event{
			Kind:    core.EventLevelComplete,
			GameID:  g.world.ID,
			LevelID: out.LevelID,
			Moves:   out.Moves,
		})
		g.notice = fmt.Sprintf("%s solved in %d moves", out.LevelID, out.Moves)
	case campaign.OutcomeTravel:
		events = append(events, core.Event{
			Kind:    core.EventTravel,
			GameID:  g.world.ID,
			LevelID: out.Dest,
		})
		g.notice = ""
	case campaign.OutcomeBail:
		if g.session.Travelled() || g.session.Finished() {
			g.session.Replay()
			g.notice = ""
		}
	}

	if out.Kind != campaign.OutcomeNone {
		g.checkScreenSize()
	}

	return core.StepResult{State: g.State(), Events: events}
}

// toInput converts platform actions to one tick of puzzle input.
func toInput(in core.InputFrame) campaign.Input {
	var out campaign.Input
	switch {
	case in.Has(core.ActionUp):
		out = campaign.Move(puzzle.DirUp)
	case in.Has(core.ActionDown):
		out = campaign.Move(puzzle.DirDown)
	case in.Has(core.ActionLeft):
		out = campaign.Move(puzzle.DirLeft)
	case in.Has(core.ActionRight):
		out = campaign.Move(puzzle.DirRight)
	}
	out.Undo = in.Has(core.ActionUndo)
	out.Restart = in.Has(core.ActionRestart)
	out.Confirm = in.Has(core.ActionConfirm)
	out.Back = in.Has(core.ActionBack)
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Tokens(),
		GameOver: g.session.Finished(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Session exposes the play session, for tests and tools.
func (g *Game) Session() *campaign.Session { return g.session }

// Controls returns the key help shown under the board.
func (g *Game) Controls() string {
	return "←↑↓→ move  z undo  r restart  enter next  esc back  q quit"
}
