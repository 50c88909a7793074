package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neonsums/internal/config"
	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/engine"
	"github.com/vovakirdan/neonsums/internal/games/t2048"
	"github.com/vovakirdan/neonsums/internal/registry"
	"github.com/vovakirdan/neonsums/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	menuActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the mode and grid size picker.
// Up/Down picks the mode, Left/Right the grid size.
type MenuModel struct {
	modeCursor     int
	sizeCursor     int
	best           map[string]int // score key -> best score
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *t2048.Variant // Set when user selects a variant
	openScoreboard bool           // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The initial selection follows
// the configured defaults.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, defaults config.GameConfig) MenuModel {
	m := MenuModel{
		best:      make(map[string]int),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	for i, mode := range t2048.Modes {
		if string(mode) == defaults.Mode {
			m.modeCursor = i
		}
	}
	for i, size := range engine.SupportedSizes {
		if int(size) == defaults.GridSize {
			m.sizeCursor = i
		}
	}

	if store != nil {
		for _, v := range t2048.Variants() {
			if best, err := store.HighScore(v.ScoreKey()); err == nil {
				m.best[v.ScoreKey()] = best
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.modeCursor = core.Wrap(m.modeCursor-1, len(t2048.Modes))

	case MenuActionDown:
		m.modeCursor = core.Wrap(m.modeCursor+1, len(t2048.Modes))

	case MenuActionLeft:
		m.sizeCursor = core.Wrap(m.sizeCursor-1, len(engine.SupportedSizes))

	case MenuActionRight:
		m.sizeCursor = core.Wrap(m.sizeCursor+1, len(engine.SupportedSizes))

	case MenuActionSelect:
		v := m.current()
		m.selected = &v
		return m, tea.Quit // Exit menu to start game

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m MenuModel) current() t2048.Variant {
	return t2048.Variant{
		Mode: t2048.Modes[m.modeCursor],
		Size: engine.SupportedSizes[m.sizeCursor],
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("N E O N   S U M S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select mode and grid size", m.width))
	b.WriteString("\n\n")

	for i, mode := range t2048.Modes {
		cursor := "  "
		style := menuDim
		if i == m.modeCursor {
			cursor = "> "
			style = menuActive
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, t2048.ModeName(mode), t2048.ModeDescription(mode))
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	sizes := make([]string, len(engine.SupportedSizes))
	for i, size := range engine.SupportedSizes {
		if i == m.sizeCursor {
			sizes[i] = menuActive.Render("[" + size.String() + "]")
		} else {
			sizes[i] = menuDim.Render(" " + size.String() + " ")
		}
	}
	b.WriteString(centerText("Grid: "+strings.Join(sizes, "  "), m.width))
	b.WriteString("\n\n")

	v := m.current()
	b.WriteString(centerText(fmt.Sprintf("%s  Best: %d", v.Name(), m.best[v.ScoreKey()]), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Mode  |  Left/Right: Size  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDim.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected variant, or nil if none selected.
func (m MenuModel) Selected() *t2048.Variant {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// NewGame creates the game for a variant on top of the configured defaults.
func NewGame(v t2048.Variant, defaults config.GameConfig) (registry.Game, error) {
	opts := registry.Options{Game: defaults}
	opts.Game.Mode = string(v.Mode)
	opts.Game.GridSize = int(v.Size)
	return registry.Create(string(v.Mode), opts)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Variant         t2048.Variant
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, defaults config.GameConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg, defaults)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.Selected() == nil {
		result.Quit = true
		return result, nil
	}

	result.Variant = *m.Selected()
	return result, nil
}
