package puzzle

// InstanceOption configures a LevelInstance.
type InstanceOption func(*LevelInstance)

// WithHistoryLimit caps the undo history at n snapshots, dropping the
// oldest first. Zero or negative means unbounded.
func WithHistoryLimit(n int) InstanceOption {
	return func(li *LevelInstance) {
		if n > 0 {
			li.historyLimit = n
		}
	}
}

// momentum is a pending slide: an entity that landed on ice at pos while
// travelling in dir.
type momentum struct {
	pos Pos
	dir Dir
}

// LevelInstance is the mutable play state of a level. It is not safe for
// concurrent use; a single driver owns it.
type LevelInstance struct {
	level    *Level
	entities []Entity
	history  [][]Entity
	moves    int

	historyLimit int

	// Scratch state for one TryMove call.
	momentum []momentum
	moved    []bool
}

// Level returns the template the instance was created from.
func (li *LevelInstance) Level() *Level { return li.level }

// W returns the grid width.
func (li *LevelInstance) W() int { return li.level.W }

// H returns the grid height.
func (li *LevelInstance) H() int { return li.level.H }

// TileAt returns the tile at (x, y); see Level.TileAt.
func (li *LevelInstance) TileAt(x, y int) Tile { return li.level.TileAt(x, y) }

// Entities returns a copy of the current entity list.
func (li *LevelInstance) Entities() []Entity {
	return append([]Entity(nil), li.entities...)
}

// EntitiesAt returns the entities at (x, y) in canonical order.
func (li *LevelInstance) EntitiesAt(x, y int) []Entity {
	var out []Entity
	for _, e := range li.entities {
		if e.X == x && e.Y == y {
			out = append(out, e)
		}
	}
	return out
}

// HistoryLen returns the number of undoable snapshots.
func (li *LevelInstance) HistoryLen() int { return len(li.history) }

// Moves returns the number of successful moves that have not been undone.
// Moves dropped from a capped history still count.
func (li *LevelInstance) Moves() int { return li.moves }

// Victorious reports whether the current placement solves the level.
func (li *LevelInstance) Victorious() bool {
	return Victorious(li.entities)
}

// TryMove moves every player that can go one step in dir, pushing chains
// of movable entities ahead of them, then lets anything that landed on ice
// keep sliding until it stops. It reports whether anything moved; when it
// returns false the state and history are untouched.
func (li *LevelInstance) TryMove(dir Dir) bool {
	li.momentum = li.momentum[:0]

	var players []int
	for i, e := range li.entities {
		if e.Kind == KindPlayer && li.acceptMove(dir, e.Pos()) {
			players = append(players, i)
		}
	}
	if len(players) == 0 {
		return false
	}

	li.pushHistory()

	li.beginPass()
	for _, i := range players {
		if li.moved[i] {
			continue
		}
		li.applyMove(dir, li.entities[i].Pos())
	}

	// Every slide runs in dir and only advances, so a slide can never be
	// longer than the grid.
	maxPasses := max(li.level.W, li.level.H) + 1
	for pass := 0; len(li.momentum) > 0 && pass < maxPasses; pass++ {
		pending := append([]momentum(nil), li.momentum...)
		li.momentum = li.momentum[:0]
		li.beginPass()
		for _, m := range pending {
			if li.acceptMove(m.dir, m.pos) {
				li.applyMove(m.dir, m.pos)
			}
		}
	}
	li.momentum = li.momentum[:0]

	li.moves++
	return true
}

// Undo restores the state before the last successful move.
func (li *LevelInstance) Undo() bool {
	if len(li.history) == 0 {
		return false
	}
	last := len(li.history) - 1
	li.entities = li.history[last]
	li.history[last] = nil
	li.history = li.history[:last]
	li.moves--
	return true
}

// Reset restores the initial placement and clears the history.
func (li *LevelInstance) Reset() {
	li.entities = append(li.entities[:0], li.level.Entities...)
	li.history = nil
	li.moves = 0
	li.momentum = li.momentum[:0]
}

// PortalTrigger reports the destination of the first portal that shares
// a cell with a player and costs at most tokens. It does not change state.
func (li *LevelInstance) PortalTrigger(tokens int) (dest string, ok bool) {
	p, ok := li.TriggeredPortal(tokens)
	return p.Dest, ok
}

// TriggeredPortal is PortalTrigger returning the whole portal entity.
func (li *LevelInstance) TriggeredPortal(tokens int) (Entity, bool) {
	for _, p := range li.entities {
		if p.Kind != KindPlayer {
			continue
		}
		for _, e := range li.entities {
			if e.Kind == KindPortal && e.X == p.X && e.Y == p.Y && e.Tokens <= tokens {
				return e, true
			}
		}
	}
	return Entity{}, false
}

func (li *LevelInstance) pushHistory() {
	li.history = append(li.history, append([]Entity(nil), li.entities...))
	if li.historyLimit > 0 && len(li.history) > li.historyLimit {
		drop := len(li.history) - li.historyLimit
		copy(li.history, li.history[drop:])
		for i := len(li.history) - drop; i < len(li.history); i++ {
			li.history[i] = nil
		}
		li.history = li.history[:li.historyLimit]
	}
}

// beginPass clears the per-pass moved markers.
func (li *LevelInstance) beginPass() {
	if cap(li.moved) < len(li.entities) {
		li.moved = make([]bool, len(li.entities))
		return
	}
	li.moved = li.moved[:len(li.entities)]
	clear(li.moved)
}

// acceptMove reports whether whatever stands at pos can be moved one step
// in dir, pushing any movable obstruction further along.
func (li *LevelInstance) acceptMove(dir Dir, pos Pos) bool {
	cand := pos.Step(dir)
	if !li.level.InBounds(cand.X, cand.Y) || li.level.TileAt(cand.X, cand.Y) == TileWall {
		return false
	}

	for _, e := range li.entities {
		if !e.At(pos) || !e.Kind.CanMove() {
			continue
		}

		allowed := Kind.BoxesAllowed
		if e.Kind == KindPlayer {
			allowed = Kind.PlayerAllowed
		}
		blocked := false
		for _, o := range li.entities {
			if !o.At(cand) || allowed(o.Kind) {
				continue
			}
			if !o.Kind.CanMove() {
				return false
			}
			blocked = true
		}
		if !blocked {
			return true
		}
		return li.acceptMove(dir, cand)
	}

	return true
}

// applyMove moves everything movable at pos one step in dir. The far end
// of a chain moves first so nothing is overwritten. An entity moves at most
// once per pass, so a player pushed by another player is not applied again
// when its own turn comes.
func (li *LevelInstance) applyMove(dir Dir, pos Pos) {
	cand := pos.Step(dir)
	if li.hasPending(cand) {
		li.applyMove(dir, cand)
	}

	for i := range li.entities {
		e := &li.entities[i]
		if li.moved[i] || !e.At(pos) || !e.Kind.CanMove() {
			continue
		}
		e.X, e.Y = cand.X, cand.Y
		li.moved[i] = true
		if li.level.TileAt(cand.X, cand.Y) == TileIce {
			li.momentum = append(li.momentum, momentum{pos: cand, dir: dir})
		}
	}
}

// hasPending reports whether a movable entity that has not moved in the
// current pass stands at p.
func (li *LevelInstance) hasPending(p Pos) bool {
	for i, e := range li.entities {
		if !li.moved[i] && e.At(p) && e.Kind.CanMove() {
			return true
		}
	}
	return false
}
