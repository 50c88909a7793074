// Package t2048 implements the neonsums tile-merging game on top of the
// engine session, with classic and fun variants.
package t2048

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/config"
	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/engine"
	"github.com/vovakirdan/neonsums/internal/registry"
)

// Tool is the active power-up selection mode.
type Tool int

const (
	ToolNone Tool = iota
	ToolRemove
	ToolSwap
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolRemove:
		return "remove"
	case ToolSwap:
		return "swap"
	default:
		return "none"
	}
}

// Game wraps an engine session with presentation state.
type Game struct {
	mode    engine.Mode
	opts    config.GameConfig
	session *engine.Session
	tick    uint64

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	best     int

	// Power-up selection
	tool     Tool
	cursor   engine.Position
	selected engine.TileID

	// Advisor state. gen changes whenever the board changes so stale
	// hints can be dropped.
	gen         uint64
	hintGen     uint64
	hintWaiting bool
	hint        *advisor.Hint
	commentary  string
	message     string
	requests    []advisor.Request

	anim animation
}

func init() {
	registry.Register(string(engine.ModeFun), "Neon Sums (Fun)", func(opts registry.Options) registry.Game {
		return New(engine.ModeFun, opts)
	})
	registry.Register(string(engine.ModeClassic), "Neon Sums (Classic)", func(opts registry.Options) registry.Game {
		return New(engine.ModeClassic, opts)
	})
}

// New creates a game for the given mode. Invalid option values fall back
// to the defaults.
func New(mode engine.Mode, opts registry.Options) *Game {
	if mode.Validate() != nil {
		mode = engine.ModeFun
	}
	return &Game{
		mode: mode,
		opts: normalize(opts.Game),
	}
}

func normalize(g config.GameConfig) config.GameConfig {
	def := config.Default().Game
	if engine.GridSize(g.GridSize).Validate() != nil {
		g.GridSize = def.GridSize
	}
	if g.Spawn4Probability < 0 || g.Spawn4Probability > 1 {
		g.Spawn4Probability = def.Spawn4Probability
	}
	if g.WinTarget < 0 || g.WinTarget&(g.WinTarget-1) != 0 {
		g.WinTarget = def.WinTarget
	}
	if g.HistoryLimit < 0 {
		g.HistoryLimit = def.HistoryLimit
	}
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == engine.ModeClassic {
		return "Neon Sums (Classic)"
	}
	return "Neon Sums (Fun)"
}

// Size returns the configured grid size.
func (g *Game) Size() engine.GridSize {
	return engine.GridSize(g.opts.GridSize)
}

// ScoreKey returns the storage key, e.g. "fun_4x4".
func (g *Game) ScoreKey() string {
	return string(g.mode) + "_" + g.Size().String()
}

// Reset starts a new session seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	sc := g.opts.SessionConfig()
	sc.Mode = g.mode
	sc.Rand = rand.New(rand.NewSource(cfg.Seed))

	s, err := engine.NewSession(sc)
	if err != nil {
		// normalize keeps options valid; this only guards future fields.
		def := engine.DefaultSessionConfig()
		def.Mode = g.mode
		def.Rand = sc.Rand
		s, _ = engine.NewSession(def)
		g.opts.GridSize = int(def.Size)
	}
	g.session = s

	g.tick = 0
	g.paused = false
	g.clearTransient()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// restart begins a fresh board on the same session and RNG stream.
func (g *Game) restart() {
	//nolint:errcheck // spawner was validated by NewSession
	g.session.Reset()
	g.clearTransient()
}

func (g *Game) clearTransient() {
	g.tool = ToolNone
	g.selected = ""
	g.cursor = engine.Position{}
	g.hint = nil
	g.hintWaiting = false
	g.commentary = ""
	g.message = ""
	g.requests = nil
	g.anim.stop()
	g.gen++
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := minScreen(g.Size())
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// SetBestScore sets the best score shown in the HUD.
func (g *Game) SetBestScore(score int) {
	g.best = score
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.anim.advance()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionBack) && g.tool != ToolNone {
		g.setTool(ToolNone)
		g.message = ""
	}

	switch {
	case in.Has(core.ActionContinue):
		g.keepPlaying()
	case in.Has(core.ActionUndo):
		g.undo()
	case in.Has(core.ActionRemoveTool):
		g.toggleTool(ToolRemove)
	case in.Has(core.ActionSwapTool):
		g.toggleTool(ToolSwap)
	case in.Has(core.ActionHint):
		g.requestHint()
	}

	moved := false
	if dir, ok := direction(in); ok {
		if g.tool != ToolNone {
			g.moveCursor(dir)
		} else {
			moved = g.move(dir)
		}
	}

	if in.Has(core.ActionConfirm) && g.tool != ToolNone {
		g.applyTool()
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// direction extracts the first move action from a frame.
func direction(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// move slides the board and reacts to the new status.
func (g *Game) move(dir engine.Direction) bool {
	before := g.session.Tiles()
	out, err := g.session.Move(dir)
	if err != nil {
		if errors.Is(err, engine.ErrNotPlaying) && g.session.Status() == engine.StatusWon {
			g.message = "Press K to keep playing or R to restart"
		}
		return false
	}
	if !out.Moved {
		return false
	}

	g.boardChanged()
	g.anim.start(before, g.session.Tiles(), dir)

	switch out.Status {
	case engine.StatusWon:
		g.queueCommentary(true)
	case engine.StatusLost:
		g.queueCommentary(g.session.HasWon())
	}
	return true
}

func (g *Game) boardChanged() {
	g.gen++
	g.hint = nil
	g.message = ""
}

func (g *Game) keepPlaying() {
	if g.session.Continue() {
		g.commentary = ""
		g.message = "Keep going!"
	}
}

func (g *Game) undo() {
	ok, err := g.session.Undo()
	switch {
	case errors.Is(err, engine.ErrAssistsDisabled):
		g.message = "Undo is off in classic mode"
	case err != nil:
		g.message = err.Error()
	case !ok:
		g.message = "Nothing to undo"
	default:
		g.boardChanged()
		g.anim.stop()
		g.commentary = ""
		g.message = "Undone"
	}
}

func (g *Game) requestHint() {
	if !g.mode.AllowsAssists() {
		g.message = "Hints are off in classic mode"
		return
	}
	if g.session.Status() != engine.StatusPlaying || g.hintWaiting {
		return
	}
	g.hintWaiting = true
	g.hintGen = g.gen
	g.message = "Thinking..."
	g.requests = append(g.requests, advisor.Request{
		Kind:  advisor.KindHint,
		Board: g.session.Matrix(),
	})
}

func (g *Game) queueCommentary(won bool) {
	g.commentary = ""
	g.requests = append(g.requests, advisor.Request{
		Kind:  advisor.KindCommentary,
		Score: g.session.Score(),
		Won:   won,
	})
}

// TakeAdviceRequest pops the oldest pending advisor request.
func (g *Game) TakeAdviceRequest() (advisor.Request, bool) {
	if len(g.requests) == 0 {
		return advisor.Request{}, false
	}
	req := g.requests[0]
	g.requests = g.requests[1:]
	return req, true
}

// DeliverAdvice applies an advisor response. Hints for a board that has
// since changed are dropped.
func (g *Game) DeliverAdvice(resp advisor.Response) {
	switch resp.Kind {
	case advisor.KindHint:
		if !g.hintWaiting {
			return
		}
		g.hintWaiting = false
		if g.hintGen != g.gen {
			return
		}
		h := resp.Hint
		g.hint = &h
		g.message = ""
	case advisor.KindCommentary:
		if g.session.Status() != engine.StatusPlaying {
			g.commentary = resp.Commentary
		}
	}
}

// Hint returns the current hint, if any.
func (g *Game) Hint() (advisor.Hint, bool) {
	if g.hint == nil {
		return advisor.Hint{}, false
	}
	return *g.hint, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		MaxTile:  engine.MaxValue(g.session.Tiles()),
		GameOver: status == engine.StatusLost,
		Won:      status == engine.StatusWon,
		Paused:   g.paused || g.tooSmall,
	}
}
