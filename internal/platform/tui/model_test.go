package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/config"
	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/engine"
	"github.com/vovakirdan/neonsums/internal/games/t2048"
	"github.com/vovakirdan/neonsums/internal/storage"
)

// fakeGame records what the model does to it.
type fakeGame struct {
	state     core.GameState
	frames    []core.InputFrame
	requests  []advisor.Request
	delivered []advisor.Response
	resets    int
	resizedW  int
	best      int
}

func (g *fakeGame) ID() string { return "fun" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) ScoreKey() string { return "fun_4x4" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, _ int) { g.resizedW = w }
func (g *fakeGame) SetBestScore(score int) { g.best = score }
func (g *fakeGame) DeliverAdvice(r advisor.Response) { g.delivered = append(g.delivered, r) }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) TakeAdviceRequest() (advisor.Request, bool) {
	if len(g.requests) == 0 {
		return advisor.Request{}, false
	}
	req := g.requests[0]
	g.requests = g.requests[1:]
	return req, true
}

var modelCfg = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// update applies msg and returns the concrete model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func TestModelResetsOnCreate(t *testing.T) {
	g := &fakeGame{}
	NewModel(g, nil, nil, modelCfg)
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelKeysReachGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, modelCfg)

	m, _ = update(t, m, runeKey('x'))
	m, _ = update(t, m, TickMsg{})

	if len(g.frames) != 1 || !g.frames[0].Has(core.ActionRemoveTool) {
		t.Fatalf("frames = %+v, want one frame with remove", g.frames)
	}

	// The frame is cleared after each tick.
	update(t, m, TickMsg{})
	if !g.frames[1].Empty() {
		t.Error("second frame should be empty")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, nil, modelCfg)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, modelCfg)

	// Esc while playing goes to the game.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc while playing left the game")
	}

	g.state.Paused = true
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should return to menu")
	}
	if cmd == nil {
		t.Fatal("esc while paused returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc while paused should quit the program")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, modelCfg)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1 (resize must not restart)", g.resets)
	}
	if g.resizedW != 100 {
		t.Errorf("resized width = %d, want 100", g.resizedW)
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, nil, modelCfg)

	g.state = core.GameState{Score: 120, MaxTile: 64, GameOver: true}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	scores, err := store.TopScores("fun_4x4", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	if scores[0].Score != 120 || scores[0].MaxTile != 64 {
		t.Errorf("saved %+v, want score 120 max tile 64", scores[0])
	}
	if g.best != 120 || m.Best() != 120 {
		t.Errorf("best = %d/%d, want 120", g.best, m.Best())
	}

	// A new game over after a restart saves again.
	g.state = core.GameState{}
	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 40, MaxTile: 8, GameOver: true}
	update(t, m, TickMsg{})

	scores, _ = store.TopScores("fun_4x4", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d scores, want 2", len(scores))
	}
	if g.best != 120 {
		t.Errorf("best = %d, want 120 kept", g.best)
	}
}

func TestModelSavesAbandonedRun(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		quit bool
	}{
		{"restart", runeKey('r'), false},
		{"quit", runeKey('q'), true},
		{"back from pause", tea.KeyMsg{Type: tea.KeyEsc}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t)
			g := &fakeGame{state: core.GameState{Score: 504, MaxTile: 64}}
			if tt.name == "back from pause" {
				g.state.Paused = true
			}
			m := NewModel(g, store, nil, modelCfg)
			m, _ = update(t, m, TickMsg{})

			m, cmd := update(t, m, tt.key)
			if tt.quit {
				if cmd == nil {
					t.Fatal("key returned no command")
				}
				if _, ok := cmd().(tea.QuitMsg); !ok {
					t.Error("key should quit the program")
				}
			}

			stats, err := store.GetGameStats("fun_4x4")
			if err != nil {
				t.Fatalf("GetGameStats() failed: %v", err)
			}
			if stats.GamesCount != 1 || stats.HighScore != 504 {
				t.Errorf("stats = %d games best %d, want 1 game best 504", stats.GamesCount, stats.HighScore)
			}
			if g.best != 504 || m.Best() != 504 {
				t.Errorf("best = %d/%d, want 504", g.best, m.Best())
			}
		})
	}
}

func TestModelRestartAfterGameOverSavesOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{Score: 96, MaxTile: 16, GameOver: true}}
	m := NewModel(g, store, nil, modelCfg)

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	g.state = core.GameState{}
	m, _ = update(t, m, TickMsg{})

	scores, err := store.TopScores("fun_4x4", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}

	// The next game is saved when it is restarted too.
	g.state = core.GameState{Score: 20, MaxTile: 8}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	update(t, m, runeKey('r'))

	scores, _ = store.TopScores("fun_4x4", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d scores, want 2", len(scores))
	}
}

func TestModelRestartWhilePausedKeepsRun(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{Score: 60, MaxTile: 8, Paused: true}}
	m := NewModel(g, store, nil, modelCfg)
	m, _ = update(t, m, TickMsg{})
	update(t, m, runeKey('r'))

	scores, _ := store.TopScores("fun_4x4", 10)
	if len(scores) != 0 {
		t.Errorf("saved %d scores while paused, want 0", len(scores))
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, store, nil, modelCfg)
	update(t, m, TickMsg{})

	scores, _ := store.TopScores("fun_4x4", 10)
	if len(scores) != 0 {
		t.Errorf("saved %d scores for a zero score game", len(scores))
	}
}

func TestModelLoadsBestScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("fun_4x4", 300, 32); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	g := &fakeGame{}
	m := NewModel(g, store, nil, modelCfg)
	if g.best != 300 || m.Best() != 300 {
		t.Errorf("best = %d/%d, want 300", g.best, m.Best())
	}
}

func TestModelAnswersAdvice(t *testing.T) {
	g := &fakeGame{requests: []advisor.Request{
		{Kind: advisor.KindHint, Board: engine.Matrix{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{Kind: advisor.KindCommentary, Score: 10, Won: true},
	}}
	m := NewModel(g, nil, nil, modelCfg)

	m, cmd := update(t, m, TickMsg{})
	if len(g.requests) != 0 {
		t.Fatalf("%d requests left in queue", len(g.requests))
	}

	for _, msg := range collect(cmd) {
		if _, ok := msg.(adviceMsg); ok {
			m, _ = update(t, m, msg)
		}
	}

	if len(g.delivered) != 2 {
		t.Fatalf("delivered %d responses, want 2", len(g.delivered))
	}
	for _, resp := range g.delivered {
		switch resp.Kind {
		case advisor.KindHint:
			if resp.Hint != advisor.FallbackHint {
				t.Errorf("hint = %+v, want fallback from nil advisor", resp.Hint)
			}
		case advisor.KindCommentary:
			if resp.Commentary != advisor.FallbackWonComment {
				t.Errorf("commentary = %q, want %q", resp.Commentary, advisor.FallbackWonComment)
			}
		}
	}
}

func TestModelHintWithRealGame(t *testing.T) {
	game, err := NewGame(t2048.Variant{Mode: engine.ModeFun, Size: engine.Size4}, config.Default().Game)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	adv := advisor.FromConfig(config.Default().Advisor, nil)
	m := NewModel(game, nil, adv, modelCfg)

	m, _ = update(t, m, runeKey('h'))
	m, cmd := update(t, m, TickMsg{})

	for _, msg := range collect(cmd) {
		if _, ok := msg.(adviceMsg); ok {
			m, _ = update(t, m, msg)
		}
	}

	hint, ok := game.(*t2048.Game).Hint()
	if !ok {
		t.Fatal("no hint delivered")
	}
	if hint.Direction.Validate() != nil {
		t.Errorf("hint direction %v is invalid", hint.Direction)
	}
	if m.View() == "" {
		t.Error("View() is empty")
	}
}

func TestNewGame(t *testing.T) {
	for _, v := range t2048.Variants() {
		t.Run(v.Name(), func(t *testing.T) {
			g, err := NewGame(v, config.Default().Game)
			if err != nil {
				t.Fatalf("NewGame() failed: %v", err)
			}
			if g.ScoreKey() != v.ScoreKey() {
				t.Errorf("ScoreKey() = %q, want %q", g.ScoreKey(), v.ScoreKey())
			}
		})
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(nil, modelCfg, config.Default().Game)
	if v := m.current(); v.Mode != engine.ModeFun || v.Size != engine.Size4 {
		t.Fatalf("initial selection = %+v, want fun 4x4", v)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if sel.Mode != engine.ModeClassic || sel.Size != engine.Size5 {
		t.Errorf("Selected() = %+v, want classic 5x5", *sel)
	}
}

func TestMenuWraps(t *testing.T) {
	m := NewMenuModel(nil, modelCfg, config.Default().Game)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if v := m.current(); v.Size != engine.Size6 {
		t.Errorf("size after left = %v, want 6x6", v.Size)
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("fun_4x4", 512, 64); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	m := NewMenuModel(store, modelCfg, config.Default().Game)
	if m.best["fun_4x4"] != 512 {
		t.Errorf("best[fun_4x4] = %d, want 512", m.best["fun_4x4"])
	}
}
