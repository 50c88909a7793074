package advisor

import (
	"context"
	"fmt"
	"math"

	"github.com/vovakirdan/neonsums/internal/engine"
)

// DefaultDepth is the lookahead used when none is configured.
const DefaultDepth = 2

// Evaluation weights.
const (
	weightEmpty      = 2.7
	weightSmooth     = 0.1
	weightMonotonic  = 1.0
	weightCorner     = 3.0
	weightMergeScore = 0.01
)

// Heuristic is a local advisor that searches a few moves ahead without
// spawns and scores boards by open space, smoothness, monotonic rows and
// a cornered maximum.
type Heuristic struct {
	depth int
}

// NewHeuristic creates a heuristic advisor. depth < 1 uses DefaultDepth.
func NewHeuristic(depth int) *Heuristic {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Heuristic{depth: depth}
}

// Hint picks the direction with the best evaluated outcome.
func (h *Heuristic) Hint(ctx context.Context, board engine.Matrix) (Hint, error) {
	tiles, size, err := engine.FromMatrix(board, engine.NewCounter("hint"))
	if err != nil {
		return Hint{}, err
	}
	movable, err := engine.CanMove(tiles, size)
	if err != nil {
		return Hint{}, err
	}
	if !movable {
		return Hint{}, ErrNoMoves
	}

	best := Hint{}
	bestScore := math.Inf(-1)
	var bestRes engine.MoveResult
	found := false

	for _, dir := range engine.Directions {
		if err := ctx.Err(); err != nil {
			return Hint{}, err
		}
		res, err := engine.Resolve(tiles, dir, size)
		if err != nil {
			return Hint{}, err
		}
		if !res.Moved {
			continue
		}
		score := weightMergeScore*float64(res.ScoreIncrease) + h.search(ctx, res.Tiles, size, h.depth-1)
		if !found || score > bestScore {
			found = true
			bestScore = score
			bestRes = res
			best = Hint{Direction: dir}
		}
	}

	best.Reason = reason(best.Direction, bestRes, size)
	return best, nil
}

// search returns the best evaluation reachable within depth moves.
func (h *Heuristic) search(ctx context.Context, tiles []engine.Tile, size engine.GridSize, depth int) float64 {
	current := evaluate(tiles, size)
	if depth <= 0 || ctx.Err() != nil {
		return current
	}
	best := current
	for _, dir := range engine.Directions {
		res, err := engine.Resolve(tiles, dir, size)
		if err != nil || !res.Moved {
			continue
		}
		score := weightMergeScore*float64(res.ScoreIncrease) + h.search(ctx, res.Tiles, size, depth-1)
		if score > best {
			best = score
		}
	}
	return best
}

// evaluate scores a position; higher is better.
func evaluate(tiles []engine.Tile, size engine.GridSize) float64 {
	m, err := engine.ToMatrix(tiles, size)
	if err != nil {
		return math.Inf(-1)
	}
	n := int(size)

	empty := float64(m.Empty())
	smooth := 0.0
	mono := 0.0
	for r := range n {
		rowInc, rowDec := 0.0, 0.0
		colInc, colDec := 0.0, 0.0
		for c := range n {
			if c < n-1 {
				a, b := rank(m[r][c]), rank(m[r][c+1])
				if m[r][c] != 0 && m[r][c+1] != 0 {
					smooth -= math.Abs(a - b)
				}
				if a > b {
					rowDec += a - b
				} else {
					rowInc += b - a
				}

				// Column r read as a line.
				a, b = rank(m[c][r]), rank(m[c+1][r])
				if a > b {
					colDec += a - b
				} else {
					colInc += b - a
				}
			}
		}
		mono -= math.Min(rowInc, rowDec) + math.Min(colInc, colDec)
	}

	corner := 0.0
	maxVal := engine.MaxValue(tiles)
	for _, p := range []engine.Position{{Row: 0, Col: 0}, {Row: 0, Col: n - 1}, {Row: n - 1, Col: 0}, {Row: n - 1, Col: n - 1}} {
		if maxVal > 0 && m[p.Row][p.Col] == maxVal {
			corner = rank(maxVal)
			break
		}
	}

	return weightEmpty*empty + weightSmooth*smooth + weightMonotonic*mono + weightCorner*corner
}

func rank(v int) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(float64(v))
}

// reason builds a short explanation for the chosen move.
func reason(dir engine.Direction, res engine.MoveResult, size engine.GridSize) string {
	n := int(size)
	maxVal := engine.MaxValue(res.Tiles)
	cornered := false
	for _, t := range res.Tiles {
		if t.Value == maxVal && (t.Row == 0 || t.Row == n-1) && (t.Col == 0 || t.Col == n-1) {
			cornered = true
			break
		}
	}

	switch {
	case res.ScoreIncrease > 0 && cornered:
		return fmt.Sprintf("%s merges for %d and keeps %d in a corner.", dir, res.ScoreIncrease, maxVal)
	case res.ScoreIncrease > 0:
		return fmt.Sprintf("%s merges for %d points.", dir, res.ScoreIncrease)
	case cornered:
		return fmt.Sprintf("%s keeps your %d anchored in a corner.", dir, maxVal)
	default:
		return fmt.Sprintf("%s keeps the board open.", dir)
	}
}

// Commentary returns a one-line reaction to a finished game.
func (h *Heuristic) Commentary(ctx context.Context, score int, won bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Canned(score, won), nil
}

var (
	wonLines = []string{
		"Tiles bow before you. %d points of pure legend!",
		"You reached the summit with %d points. Epic!",
		"%d points and a crown made of twos. Glorious!",
	}
	lostLines = []string{
		"%d points. The grid won this round, but barely.",
		"%d points! Bold strategy. Try cornering next time.",
		"The tiles plotted against you. %d points is still respectable.",
	}
)

// Canned picks a commentary line deterministically from the score.
func Canned(score int, won bool) string {
	lines := lostLines
	if won {
		lines = wonLines
	}
	if score < 0 {
		score = -score
	}
	return fmt.Sprintf(lines[score%len(lines)], score)
}
