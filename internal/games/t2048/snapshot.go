package t2048

import "github.com/vovakirdan/neonsums/internal/engine"

// GameStateType represents the current presentation state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      engine.Mode
	Size      engine.GridSize
	Score     int
	Best      int
	Board     engine.Matrix
	MaxTile   int
	UndoDepth int
	Tool      Tool
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.session.Status() == engine.StatusWon:
		state = StateWon
	case g.session.Status() == engine.StatusLost:
		state = StateGameOver
	}

	s := g.session.Snapshot()
	return Snapshot{
		Tick:      g.tick,
		Mode:      g.mode,
		Size:      s.Size,
		Score:     s.Score,
		Best:      max(g.best, s.Score),
		Board:     s.Matrix,
		MaxTile:   s.MaxTile,
		UndoDepth: s.UndoDepth,
		Tool:      g.tool,
		State:     state,
	}
}
