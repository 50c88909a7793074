package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neonsums/internal/engine"
)

// DefaultTimeout bounds a single advisor request.
const DefaultTimeout = 5 * time.Second

// Fallback wraps an advisor so that every failure mode, including timeouts
// and panics, degrades to a fixed response. Its methods never return an error.
type Fallback struct {
	next    Advisor
	timeout time.Duration
	logger  *log.Logger
}

// NewFallback wraps next. A nil next always answers with the fallback values.
func NewFallback(next Advisor, timeout time.Duration, logger *log.Logger) *Fallback {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fallback{next: next, timeout: timeout, logger: logger}
}

type hintResult struct {
	hint Hint
	err  error
}

// Hint asks the wrapped advisor and validates the answer.
func (f *Fallback) Hint(ctx context.Context, board engine.Matrix) (Hint, error) {
	if f.next == nil {
		return FallbackHint, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	board = board.Clone()
	done := make(chan hintResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- hintResult{err: fmt.Errorf("advisor panic: %v", r)}
			}
		}()
		h, err := f.next.Hint(ctx, board)
		done <- hintResult{hint: h, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			f.logger.Warn("hint failed", "err", res.err)
			return FallbackHint, nil
		}
		if res.hint.Direction.Validate() != nil {
			f.logger.Warn("hint returned invalid direction", "direction", int(res.hint.Direction))
			return FallbackHint, nil
		}
		return res.hint, nil
	case <-ctx.Done():
		f.logger.Warn("hint timed out", "timeout", f.timeout)
		return FallbackHint, nil
	}
}

type commentResult struct {
	text string
	err  error
}

// Commentary asks the wrapped advisor for a closing line.
func (f *Fallback) Commentary(ctx context.Context, score int, won bool) (string, error) {
	fallback := FallbackLostComment
	if won {
		fallback = FallbackWonComment
	}
	if f.next == nil {
		return fallback, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan commentResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- commentResult{err: fmt.Errorf("advisor panic: %v", r)}
			}
		}()
		text, err := f.next.Commentary(ctx, score, won)
		done <- commentResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil || res.text == "" {
			f.logger.Warn("commentary failed", "err", res.err)
			return fallback, nil
		}
		return res.text, nil
	case <-ctx.Done():
		f.logger.Warn("commentary timed out", "timeout", f.timeout)
		return fallback, nil
	}
}
