package campaign

import "github.com/vovakirdan/snowdrift/internal/puzzle"

// Input is the input of one tick. Every field fires once per discrete
// key press.
type Input struct {
	Dir     *puzzle.Dir
	Undo    bool
	Restart bool
	Confirm bool
	Back    bool
}

// Move returns an input that only moves in d.
func Move(d puzzle.Dir) Input {
	return Input{Dir: &d}
}

// OutcomeKind classifies what a tick of play produced.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	// OutcomeComplete means a solved level was confirmed.
	OutcomeComplete
	// OutcomeTravel means a player stands on a portal it can afford.
	OutcomeTravel
	// OutcomeBail means the player asked to leave the level.
	OutcomeBail
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeComplete:
		return "complete"
	case OutcomeTravel:
		return "travel"
	case OutcomeBail:
		return "bail"
	default:
		return "none"
	}
}

// Outcome is the result of one Player.Step.
type Outcome struct {
	Kind    OutcomeKind
	LevelID string // OutcomeComplete
	Moves   int    // OutcomeComplete
	Dest    string     // OutcomeTravel
	At      puzzle.Pos // OutcomeTravel, the portal cell
}

// Player drives a single level instance.
type Player struct {
	id   string
	inst *puzzle.LevelInstance
}

// NewPlayer starts play on lvl, recorded under id.
func NewPlayer(id string, lvl *puzzle.Level, opts ...puzzle.InstanceOption) *Player {
	return &Player{id: id, inst: lvl.Instance(opts...)}
}

// LevelID returns the ID of the level being played.
func (p *Player) LevelID() string { return p.id }

// Instance returns the live level state, for rendering.
func (p *Player) Instance() *puzzle.LevelInstance { return p.inst }

// Step applies one tick of input. A solved level ignores moves until it
// is confirmed. tokens gates which portals may be taken.
func (p *Player) Step(in Input, tokens int) Outcome {
	if !p.inst.Victorious() {
		if in.Dir != nil {
			p.inst.TryMove(*in.Dir)
		}
		if in.Undo {
			p.inst.Undo()
		}
		if in.Restart {
			p.inst.Reset()
		}
	}

	switch {
	case in.Confirm && p.inst.Victorious():
		return Outcome{Kind: OutcomeComplete, LevelID: p.id, Moves: p.inst.Moves()}
	case in.Back:
		return Outcome{Kind: OutcomeBail}
	}

	if portal, ok := p.inst.TriggeredPortal(tokens); ok {
		return Outcome{Kind: OutcomeTravel, Dest: portal.Dest, At: portal.Pos()}
	}
	return Outcome{}
}
