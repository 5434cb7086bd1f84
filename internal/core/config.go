package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW      int // Screen width in characters
	ScreenH      int // Screen height in characters
	TickRate     int // Simulation ticks per second
	HistoryLimit int // Undo snapshots kept per level, 0 for unbounded
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Levels completed
	GameOver bool // The whole world has been completed
	Paused   bool
}

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventLevelComplete is emitted once when a solved level is confirmed.
	EventLevelComplete EventKind = iota + 1
	// EventTravel is emitted when a portal moves play to another level.
	EventTravel
)

// Event is something the platform may want to persist or display.
type Event struct {
	Kind    EventKind
	GameID  string
	LevelID string
	Moves   int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
