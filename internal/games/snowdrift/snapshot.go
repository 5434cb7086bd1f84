package snowdrift

import "github.com/vovakirdan/snowdrift/internal/puzzle"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying       GameStateType = "playing"
	StateSolved        GameStateType = "solved"
	StateWorldComplete GameStateType = "world_complete"
	StatePaused        GameStateType = "paused"
	StatePausedSmall   GameStateType = "paused_small_window"
)

// Snapshot captures the game state for tests and replay checks.
type Snapshot struct {
	Tick      uint64
	World     string
	Level     string // ID of the level being played
	Index     int    // Position in the world (1-indexed)
	Travelled bool
	Moves     int
	Tokens    int
	Entities  []puzzle.Entity
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	p := g.session.Player()
	inst := p.Instance()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.session.Finished():
		state = StateWorldComplete
	case inst.Victorious():
		state = StateSolved
	}

	return Snapshot{
		Tick:      g.tick,
		World:     g.world.ID,
		Level:     p.LevelID(),
		Index:     g.session.Index() + 1,
		Travelled: g.session.Travelled(),
		Moves:     inst.Moves(),
		Tokens:    g.session.Tokens(),
		Entities:  inst.Entities(),
		State:     state,
	}
}
