package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snowdrift/internal/campaign"
	"github.com/vovakirdan/snowdrift/internal/core"
	"github.com/vovakirdan/snowdrift/internal/storage"
)

// LevelSelection holds the user's choice from the level menu.
type LevelSelection struct {
	Level int // 0 = continue at the first unsolved level, 1..n = specific level
}

// levelRow is one line of the level menu.
type levelRow struct {
	title string
	best  int // 0 when unsolved
}

// LevelSelectModel lets users continue a world or pick a level in it.
type LevelSelectModel struct {
	world     string
	rows      []levelRow
	cursor    int // 0 = Continue, i = level i
	width     int
	height    int
	keyMapper *KeyMapper
	selection LevelSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewLevelSelectModel creates a level menu for world, marking the levels
// solved in store.
func NewLevelSelectModel(world campaign.World, store *storage.Store, width, height int) LevelSelectModel {
	m := LevelSelectModel{
		world:     world.Title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for _, e := range world.Levels {
		row := levelRow{title: e.Level.Title}
		if store != nil {
			if best, ok, err := store.BestMoves(world.ID, e.ID); err == nil && ok {
				row.best = best
			}
		}
		m.rows = append(m.rows, row)
	}
	return m
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.rows) {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.cursor}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.world), m.width))
	b.WriteString("\n\n")

	cursor := func(i int) string {
		if i == m.cursor {
			return "> "
		}
		return "  "
	}

	b.WriteString(centerText(fmt.Sprintf("%-28s", cursor(0)+"Continue"), m.width))
	b.WriteString("\n")

	for i, row := range m.rows {
		best := ""
		if row.best > 0 {
			best = fmt.Sprintf("✓ %d moves", row.best)
		}
		line := fmt.Sprintf("%s%2d. %-14s %s", cursor(i+1), i+1, row.title, best)
		b.WriteString(centerText(fmt.Sprintf("%-28s", line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level menu for world. A nil selection means
// the user backed out or quit.
func RunLevelSelector(world campaign.World, store *storage.Store, cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(
		NewLevelSelectModel(world, store, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
