package advisor

import (
	"context"

	"github.com/vovakirdan/neonsums/internal/engine"
)

// Kind selects what a Request asks for.
type Kind int

const (
	KindHint Kind = iota
	KindCommentary
)

// Request is a queued question from a game to its advisor.
type Request struct {
	Kind  Kind
	Board engine.Matrix // hint requests
	Score int           // commentary requests
	Won   bool
}

// Response answers a Request.
type Response struct {
	Kind       Kind
	Hint       Hint
	Commentary string
}

// Answer runs req against a and substitutes the fallback values on error.
func Answer(ctx context.Context, a Advisor, req Request) Response {
	resp := Response{Kind: req.Kind}
	switch req.Kind {
	case KindHint:
		h, err := a.Hint(ctx, req.Board)
		if err != nil {
			h = FallbackHint
		}
		resp.Hint = h
	case KindCommentary:
		text, err := a.Commentary(ctx, req.Score, req.Won)
		if err != nil || text == "" {
			text = FallbackLostComment
			if req.Won {
				text = FallbackWonComment
			}
		}
		resp.Commentary = text
	}
	return resp
}
