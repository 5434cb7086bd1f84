package campaign

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/snowdrift/internal/puzzle"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for travel and progress messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInstanceOptions passes options to every level instance the session
// starts.
func WithInstanceOptions(opts ...puzzle.InstanceOption) Option {
	return func(s *Session) {
		s.instOpts = append(s.instOpts, opts...)
	}
}

// Session plays through a world. The completed-level set is the token
// count that unlocks portals.
type Session struct {
	world     World
	resolver  Resolver
	completed map[string]bool

	index     int
	travelled bool
	finished  bool
	player    *Player

	// A portal whose destination failed to resolve is not retried while
	// a player keeps standing on it.
	blocked   bool
	blockedAt puzzle.Pos
	blockedTo string

	instOpts []puzzle.InstanceOption
	logger   *log.Logger
}

// NewSession starts a session on world. completed preloads progress and
// play begins at the first level not in it.
func NewSession(world World, resolver Resolver, completed []string, opts ...Option) (*Session, error) {
	if len(world.Levels) == 0 {
		return nil, fmt.Errorf("campaign: world %q has no levels", world.ID)
	}

	s := &Session{
		world:     world,
		resolver:  resolver,
		completed: make(map[string]bool, len(completed)),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, id := range completed {
		s.completed[id] = true
	}

	start := 0
	for i, e := range world.Levels {
		if !s.completed[e.ID] {
			start = i
			break
		}
	}
	s.enter(start)
	return s, nil
}

// Step applies one tick of input and acts on the outcome.
func (s *Session) Step(in Input) Outcome {
	if s.finished {
		if in.Back {
			return Outcome{Kind: OutcomeBail}
		}
		return Outcome{}
	}

	out := s.player.Step(in, s.Tokens())
	if out.Kind == OutcomeTravel && s.blocked && out.At == s.blockedAt && out.Dest == s.blockedTo {
		return Outcome{}
	}
	s.blocked = false

	switch out.Kind {
	case OutcomeComplete:
		s.completed[out.LevelID] = true
		s.logger.Debug("level complete", "world", s.world.ID, "level", out.LevelID, "moves", out.Moves)
		switch {
		case s.travelled:
			s.enter(0)
		case s.index+1 < len(s.world.Levels):
			s.enter(s.index + 1)
		default:
			s.finished = true
		}

	case OutcomeTravel:
		lvl, err := s.resolveDest(out.Dest)
		if err != nil {
			s.logger.Warn("portal destination unavailable", "dest", out.Dest, "err", err)
			s.blocked, s.blockedAt, s.blockedTo = true, out.At, out.Dest
			return Outcome{}
		}
		s.logger.Debug("travel", "from", s.player.LevelID(), "to", out.Dest)
		s.player = NewPlayer(out.Dest, lvl, s.instOpts...)
		s.travelled = true
	}
	return out
}

func (s *Session) resolveDest(id string) (*puzzle.Level, error) {
	if s.resolver == nil {
		return nil, ErrUnknownLevel
	}
	return s.resolver.Resolve(id)
}

// Select jumps to the i-th level of the world.
func (s *Session) Select(i int) error {
	if i < 0 || i >= len(s.world.Levels) {
		return fmt.Errorf("campaign: level %d out of range 1..%d", i+1, len(s.world.Levels))
	}
	s.enter(i)
	return nil
}

// Replay restarts the world from its first level, keeping progress.
func (s *Session) Replay() {
	s.enter(0)
}

func (s *Session) enter(i int) {
	e := s.world.Levels[i]
	s.index = i
	s.travelled = false
	s.finished = false
	s.blocked = false
	s.player = NewPlayer(e.ID, e.Level, s.instOpts...)
}

// World returns the world being played.
func (s *Session) World() World { return s.world }

// Player returns the driver of the current level.
func (s *Session) Player() *Player { return s.player }

// Index returns the world position of the current level. After travel it
// is the position of the level the travel started from.
func (s *Session) Index() int { return s.index }

// Travelled reports whether the current level was reached by a portal.
func (s *Session) Travelled() bool { return s.travelled }

// Finished reports whether the last level of the world was completed.
func (s *Session) Finished() bool { return s.finished }

// Tokens returns the number of distinct completed levels.
func (s *Session) Tokens() int { return len(s.completed) }

// IsCompleted reports whether the level has been completed.
func (s *Session) IsCompleted(id string) bool { return s.completed[id] }

// Completed returns the completed level IDs in sorted order.
func (s *Session) Completed() []string {
	ids := make([]string, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
