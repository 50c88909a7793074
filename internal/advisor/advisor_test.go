package advisor

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neonsums/internal/config"
	"github.com/vovakirdan/neonsums/internal/engine"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestHeuristicHintPicksLegalMove(t *testing.T) {
	tests := []struct {
		name  string
		board engine.Matrix
		legal []engine.Direction
	}{
		{
			name: "only left or right merges",
			board: engine.Matrix{
				{2, 2, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			legal: []engine.Direction{engine.DirLeft, engine.DirRight, engine.DirDown},
		},
		{
			name: "only down moves",
			board: engine.Matrix{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{0, 0, 0, 0},
			},
			legal: []engine.Direction{engine.DirDown},
		},
	}

	h := NewHeuristic(2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint, err := h.Hint(context.Background(), tt.board)
			if err != nil {
				t.Fatalf("Hint() failed: %v", err)
			}
			ok := false
			for _, d := range tt.legal {
				if hint.Direction == d {
					ok = true
				}
			}
			if !ok {
				t.Errorf("Hint() = %v, want one of %v", hint.Direction, tt.legal)
			}
			if hint.Reason == "" {
				t.Error("Hint() returned empty reason")
			}
			if hint.Fallback {
				t.Error("Hint() marked as fallback")
			}
		})
	}
}

func TestHeuristicHintStuckBoard(t *testing.T) {
	stuck := engine.Matrix{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	_, err := NewHeuristic(1).Hint(context.Background(), stuck)
	if !errors.Is(err, ErrNoMoves) {
		t.Errorf("Hint(stuck) error = %v, want ErrNoMoves", err)
	}
}

func TestHeuristicHintFullBoards(t *testing.T) {
	tests := []struct {
		name  string
		board engine.Matrix
		want  []engine.Direction // nil means no move exists
	}{
		{
			name: "5x5 stuck",
			board: engine.Matrix{
				{2, 4, 2, 4, 2},
				{4, 2, 4, 2, 4},
				{2, 4, 2, 4, 2},
				{4, 2, 4, 2, 4},
				{2, 4, 2, 4, 2},
			},
		},
		{
			name:  "empty",
			board: engine.Matrix{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		},
		{
			name:  "single row pair",
			board: engine.Matrix{{2, 4, 2, 4}, {4, 2, 4, 2}, {2, 4, 8, 8}, {4, 2, 4, 2}},
			want:  []engine.Direction{engine.DirLeft, engine.DirRight},
		},
		{
			name:  "single column pair",
			board: engine.Matrix{{2, 4, 2, 4}, {4, 8, 4, 2}, {2, 8, 2, 4}, {4, 2, 4, 2}},
			want:  []engine.Direction{engine.DirUp, engine.DirDown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint, err := NewHeuristic(2).Hint(context.Background(), tt.board)
			if tt.want == nil {
				if !errors.Is(err, ErrNoMoves) {
					t.Errorf("Hint() error = %v, want ErrNoMoves", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Hint() failed: %v", err)
			}
			if !slices.Contains(tt.want, hint.Direction) {
				t.Errorf("Hint() = %s, want one of %v", hint.Direction, tt.want)
			}
		})
	}
}

func TestHeuristicHintDoesNotMutateBoard(t *testing.T) {
	b := engine.Matrix{
		{2, 2, 0, 0},
		{0, 4, 0, 4},
		{0, 0, 0, 0},
		{8, 0, 0, 0},
	}
	before := b.String()
	if _, err := NewHeuristic(3).Hint(context.Background(), b); err != nil {
		t.Fatalf("Hint() failed: %v", err)
	}
	if b.String() != before {
		t.Errorf("board changed:\n%s\nwant\n%s", b.String(), before)
	}
}

func TestHeuristicHintCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := engine.Matrix{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if _, err := NewHeuristic(2).Hint(ctx, b); !errors.Is(err, context.Canceled) {
		t.Errorf("Hint(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestCannedIsDeterministic(t *testing.T) {
	for _, won := range []bool{true, false} {
		for _, score := range []int{0, 1, 2, 1234} {
			a, b := Canned(score, won), Canned(score, won)
			if a != b {
				t.Errorf("Canned(%d, %v) not deterministic: %q vs %q", score, won, a, b)
			}
			if len(strings.Fields(a)) > 20 {
				t.Errorf("Canned(%d, %v) too long: %q", score, won, a)
			}
		}
	}
}

type stubAdvisor struct {
	hint    Hint
	comment string
	err     error
	delay   time.Duration
	panics  bool
}

func (s stubAdvisor) Hint(ctx context.Context, _ engine.Matrix) (Hint, error) {
	if s.panics {
		panic("boom")
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.hint, s.err
}

func (s stubAdvisor) Commentary(ctx context.Context, _ int, _ bool) (string, error) {
	if s.panics {
		panic("boom")
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.comment, s.err
}

func TestFallbackHint(t *testing.T) {
	b := engine.Matrix{{2, 0}, {0, 0}}
	good := Hint{Direction: engine.DirLeft, Reason: "fine"}

	tests := []struct {
		name string
		next Advisor
		want Hint
	}{
		{"nil advisor", nil, FallbackHint},
		{"success", stubAdvisor{hint: good}, good},
		{"error", stubAdvisor{err: errors.New("offline")}, FallbackHint},
		{"invalid direction", stubAdvisor{hint: Hint{Direction: engine.Direction(9)}}, FallbackHint},
		{"panic", stubAdvisor{panics: true}, FallbackHint},
		{"timeout", stubAdvisor{hint: good, delay: 200 * time.Millisecond}, FallbackHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFallback(tt.next, 20*time.Millisecond, quietLogger())
			got, err := f.Hint(context.Background(), b)
			if err != nil {
				t.Fatalf("Hint() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Hint() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFallbackCommentary(t *testing.T) {
	tests := []struct {
		name string
		next Advisor
		won  bool
		want string
	}{
		{"nil advisor won", nil, true, FallbackWonComment},
		{"nil advisor lost", nil, false, FallbackLostComment},
		{"success", stubAdvisor{comment: "nice"}, false, "nice"},
		{"empty text", stubAdvisor{}, true, FallbackWonComment},
		{"error", stubAdvisor{err: errors.New("offline")}, false, FallbackLostComment},
		{"panic", stubAdvisor{panics: true}, true, FallbackWonComment},
		{"timeout", stubAdvisor{comment: "late", delay: 200 * time.Millisecond}, false, FallbackLostComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFallback(tt.next, 20*time.Millisecond, quietLogger())
			got, err := f.Commentary(context.Background(), 100, tt.won)
			if err != nil {
				t.Fatalf("Commentary() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Commentary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFallbackWithHeuristic(t *testing.T) {
	f := NewFallback(NewHeuristic(2), time.Second, quietLogger())
	b := engine.Matrix{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	got, _ := f.Hint(context.Background(), b)
	if got.Fallback {
		t.Errorf("Hint() = %+v, want a real hint", got)
	}
}

func TestAnswer(t *testing.T) {
	b := engine.Matrix{{2, 2}, {0, 0}}
	tests := []struct {
		name string
		a    Advisor
		req  Request
		want Response
	}{
		{
			name: "hint",
			a:    stubAdvisor{hint: Hint{Direction: engine.DirRight, Reason: "ok"}},
			req:  Request{Kind: KindHint, Board: b},
			want: Response{Kind: KindHint, Hint: Hint{Direction: engine.DirRight, Reason: "ok"}},
		},
		{
			name: "hint error",
			a:    stubAdvisor{err: errors.New("down")},
			req:  Request{Kind: KindHint, Board: b},
			want: Response{Kind: KindHint, Hint: FallbackHint},
		},
		{
			name: "commentary",
			a:    stubAdvisor{comment: "wow"},
			req:  Request{Kind: KindCommentary, Score: 10},
			want: Response{Kind: KindCommentary, Commentary: "wow"},
		},
		{
			name: "commentary error won",
			a:    stubAdvisor{err: errors.New("down")},
			req:  Request{Kind: KindCommentary, Won: true},
			want: Response{Kind: KindCommentary, Commentary: FallbackWonComment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Answer(context.Background(), tt.a, tt.req); got != tt.want {
				t.Errorf("Answer() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	board := engine.Matrix{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	disabled := FromConfig(config.AdvisorConfig{Enabled: false}, quietLogger())
	h, err := disabled.Hint(context.Background(), board)
	if err != nil || h != FallbackHint {
		t.Errorf("disabled Hint() = %+v, %v; want fallback", h, err)
	}

	enabled := FromConfig(config.AdvisorConfig{Enabled: true, Timeout: time.Second, Depth: 1}, quietLogger())
	h, err = enabled.Hint(context.Background(), board)
	if err != nil {
		t.Fatalf("enabled Hint() error = %v", err)
	}
	if h.Fallback {
		t.Errorf("enabled Hint() = %+v, want a real hint", h)
	}
}
