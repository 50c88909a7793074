package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/registry"
	"github.com/vovakirdan/neonsums/internal/storage"
)

// resizer is implemented by games that can adapt to a new screen size
// without starting over.
type resizer interface {
	Resize(w, h int)
}

// adviceMsg carries an advisor answer back into the update loop.
type adviceMsg struct {
	resp advisor.Response
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	advisor    advisor.Advisor
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	best       int
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil advisor answers every request with the fallback values.
func NewModel(game registry.Game, store *storage.Store, adv advisor.Advisor, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if adv == nil {
		adv = advisor.NewFallback(nil, 0, nil)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		advisor:    adv,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.loadBestScore()
	return m
}

// loadBestScore reads the stored best score for the game's variant.
func (m *Model) loadBestScore() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ScoreKey())
	if err != nil {
		return
	}
	m.setBest(best)
}

func (m *Model) setBest(score int) {
	m.best = max(m.best, score)
	if g, ok := m.game.(registry.BestScoreAware); ok {
		g.SetBestScore(m.best)
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case adviceMsg:
		if g, ok := m.game.(registry.Advisable); ok {
			g.DeliverAdvice(msg.resp)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.endRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game from the game over and pause screens
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.endRun()
		m.backToMenu = true
		return m, tea.Quit
	}

	// The game ignores restart while paused
	if action == core.ActionRestart && !m.gameState.Paused {
		m.endRun()
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if g, ok := m.game.(resizer); ok {
		g.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	if m.gameState.GameOver {
		m.endRun()
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	cmds = append(cmds, m.adviceCmds()...)
	return m, tea.Batch(cmds...)
}

// endRun saves the current game unless it was already saved. A run ends
// on game over, restart, quit or a return to the menu.
func (m *Model) endRun() {
	if m.scoreSaved {
		return
	}
	m.saveScore()
	m.scoreSaved = true
}

func (m *Model) saveScore() {
	if m.gameState.Score <= 0 {
		return
	}
	if m.store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.game.ScoreKey(), m.gameState.Score, m.gameState.MaxTile)
	}
	m.setBest(m.gameState.Score)
}

// adviceCmds drains the game's pending advisor requests into commands that
// answer them off the update loop.
func (m Model) adviceCmds() []tea.Cmd {
	g, ok := m.game.(registry.Advisable)
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	for {
		req, ok := g.TakeAdviceRequest()
		if !ok {
			return cmds
		}
		cmds = append(cmds, adviceCmd(m.advisor, req))
	}
}

func adviceCmd(a advisor.Advisor, req advisor.Request) tea.Cmd {
	return func() tea.Msg {
		return adviceMsg{resp: advisor.Answer(context.Background(), a, req)}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".neonsums", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ScoreKey(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Best returns the best score known for the game's variant.
func (m Model) Best() int {
	return m.best
}

// Run starts the Bubble Tea program with the given model.
// Returns true if the user asked to go back to the menu, false if quitting.
func Run(game registry.Game, store *storage.Store, adv advisor.Advisor, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, store, adv, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
