package snowdrift

import (
	"fmt"

	"github.com/vovakirdan/snowdrift/internal/config"
	"github.com/vovakirdan/snowdrift/internal/core"
	"github.com/vovakirdan/snowdrift/internal/puzzle"
)

const (
	cellWidth    = 2  // Screen columns per board cell
	hudHeight    = 3  // Title, status and a blank line
	footerHeight = 3  // Blank line, notice and controls
	minScreenW   = 40 // Room for the HUD text
)

// Entity draw order when several share a cell, highest first.
var drawPriority = map[puzzle.Kind]int{
	puzzle.KindPlayer:     7,
	puzzle.KindPresent:    6,
	puzzle.KindCrate:      5,
	puzzle.KindTree:       4,
	puzzle.KindTreeStump:  3,
	puzzle.KindPortal:     2,
	puzzle.KindReceptacle: 1,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	inst := g.session.Player().Instance()
	boardW := inst.W() * cellWidth
	boardX := max((g.screenW-boardW)/2, 0)
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, inst, boardX, boardY)
	g.renderFooter(dst, inst, boardY+inst.H()+1)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the world, level and progress lines.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	p := s.Player()

	var where string
	switch {
	case s.Travelled():
		where = fmt.Sprintf("%s  (portal)", p.Instance().Level().Title)
	default:
		where = fmt.Sprintf("%d/%d  %s", s.Index()+1, len(s.World().Levels), p.Instance().Level().Title)
	}
	dst.DrawTextCenteredColored(0, fmt.Sprintf("%s  ·  %s", s.World().Title, where), core.ColorBrightWhite)

	status := fmt.Sprintf("Moves: %d   Tokens: %d", p.Instance().Moves(), s.Tokens())
	if s.IsCompleted(p.LevelID()) {
		status += "   ✓"
	}
	dst.DrawTextCentered(1, status)
}

// renderBoard draws tiles and the topmost entity of every cell.
func (g *Game) renderBoard(dst *core.Screen, inst *puzzle.LevelInstance, boardX, boardY int) {
	top := topEntities(inst)
	tokens := g.session.Tokens()

	for y := range inst.H() {
		for x := range inst.W() {
			glyph := tileGlyph(inst.TileAt(x, y))
			if e, ok := top[puzzle.Pos{X: x, Y: y}]; ok {
				glyph = entityGlyph(e, inst, tokens)
			}
			runes, color := glyph.Cell()
			px := boardX + x*cellWidth
			for i, r := range runes {
				dst.SetColored(px+i, boardY+y, r, color)
			}
		}
	}
}

// renderFooter draws the status overlay and the control line.
func (g *Game) renderFooter(dst *core.Screen, inst *puzzle.LevelInstance, y int) {
	switch {
	case g.paused:
		dst.DrawTextCenteredColored(y, "PAUSED  (p to resume)", core.ColorBrightYellow)
	case g.session.Finished():
		dst.DrawTextCenteredColored(y, "World complete!  esc to play again", core.ColorBrightGreen)
	case inst.Victorious():
		dst.DrawTextCenteredColored(y, "Solved!  Press enter to continue", core.ColorBrightGreen)
	case g.notice != "":
		dst.DrawTextCentered(y, g.notice)
	}

	dst.DrawTextCenteredColored(g.screenH-1, g.Controls(), core.ColorGray)
}

// topEntities picks the entity drawn in every occupied cell.
func topEntities(inst *puzzle.LevelInstance) map[puzzle.Pos]puzzle.Entity {
	top := make(map[puzzle.Pos]puzzle.Entity)
	for _, e := range inst.Entities() {
		cur, ok := top[e.Pos()]
		if !ok || drawPriority[e.Kind] > drawPriority[cur.Kind] {
			top[e.Pos()] = e
		}
	}
	return top
}

func tileGlyph(t puzzle.Tile) config.Glyph {
	switch t {
	case puzzle.TileWall:
		return theme.Wall
	case puzzle.TileIce:
		return theme.Ice
	default:
		return theme.Snow
	}
}

func entityGlyph(e puzzle.Entity, inst *puzzle.LevelInstance, tokens int) config.Glyph {
	switch e.Kind {
	case puzzle.KindPlayer:
		return theme.Player
	case puzzle.KindCrate:
		return theme.Crate
	case puzzle.KindPresent:
		for _, o := range inst.EntitiesAt(e.X, e.Y) {
			if o.Kind == puzzle.KindReceptacle {
				return theme.Delivered
			}
		}
		return theme.Present
	case puzzle.KindReceptacle:
		return theme.Receptacle
	case puzzle.KindPortal:
		if e.Tokens > tokens {
			return theme.PortalLocked
		}
		return theme.Portal
	case puzzle.KindTree:
		return theme.Tree
	case puzzle.KindTreeStump:
		return theme.Stump
	}
	return theme.Snow
}
