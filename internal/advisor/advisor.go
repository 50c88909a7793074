// Package advisor produces display-only move hints and end-of-game
// commentary from a read-only board matrix. Nothing it returns is ever
// applied to a session.
package advisor

import (
	"context"
	"errors"

	"github.com/vovakirdan/neonsums/internal/engine"
)

// ErrNoMoves is returned by advisors asked about a stuck board.
var ErrNoMoves = errors.New("advisor: no legal move")

// Hint is a suggested move with a short reason.
type Hint struct {
	Direction engine.Direction `json:"direction"`
	Reason    string           `json:"reason"`
	Fallback  bool             `json:"fallback,omitempty"`
}

// Advisor suggests moves and comments on finished games.
type Advisor interface {
	Hint(ctx context.Context, board engine.Matrix) (Hint, error)
	Commentary(ctx context.Context, score int, won bool) (string, error)
}

// Fallback responses used whenever an advisor fails or times out.
var (
	FallbackHint        = Hint{Direction: engine.DirUp, Reason: "AI is sleeping... try any move!", Fallback: true}
	FallbackWonComment  = "You are a legend!"
	FallbackLostComment = "Good effort, try again!"
)
