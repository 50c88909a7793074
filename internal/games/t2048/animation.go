package t2048

import "github.com/vovakirdan/neonsums/internal/engine"

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation is one tile travelling between cells during a slide.
type TileAnimation struct {
	ID       engine.TileID
	Value    int     // Value before the move
	FromRow  int     // Start cell
	FromCol  int     //
	ToRow    int     // End cell
	ToCol    int     //
	Progress float64 // 0.0 → 1.0
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

type animation struct {
	phase  AnimationPhase
	ticks  int
	slides []TileAnimation
}

// start builds slide animations by matching tile ids across a move.
// Tiles absorbed by a merge travel to the cell of the tile they merged into.
func (a *animation) start(before, after []engine.Tile, dir engine.Direction) {
	a.slides = a.slides[:0]

	for _, prev := range before {
		if next, ok := engine.Find(after, prev.ID); ok {
			a.slides = append(a.slides, TileAnimation{
				ID:      prev.ID,
				Value:   prev.Value,
				FromRow: prev.Row,
				FromCol: prev.Col,
				ToRow:   next.Row,
				ToCol:   next.Col,
			})
			continue
		}

		survivor, ok := mergeTarget(before, prev, dir)
		if !ok {
			continue
		}
		dest, ok := engine.Find(after, survivor.ID)
		if !ok {
			continue
		}
		a.slides = append(a.slides, TileAnimation{
			ID:      prev.ID,
			Value:   prev.Value,
			FromRow: prev.Row,
			FromCol: prev.Col,
			ToRow:   dest.Row,
			ToCol:   dest.Col,
		})
	}

	a.phase = PhaseSlide
	a.ticks = 0
}

// mergeTarget finds the tile an absorbed tile merged into: the nearest
// tile ahead of it in the move direction on the same line.
func mergeTarget(before []engine.Tile, absorbed engine.Tile, dir engine.Direction) (engine.Tile, bool) {
	var best engine.Tile
	found := false
	dist := 0

	for _, t := range before {
		if t.ID == absorbed.ID {
			continue
		}
		var d int
		switch dir {
		case engine.DirLeft:
			if t.Row != absorbed.Row || t.Col >= absorbed.Col {
				continue
			}
			d = absorbed.Col - t.Col
		case engine.DirRight:
			if t.Row != absorbed.Row || t.Col <= absorbed.Col {
				continue
			}
			d = t.Col - absorbed.Col
		case engine.DirUp:
			if t.Col != absorbed.Col || t.Row >= absorbed.Row {
				continue
			}
			d = absorbed.Row - t.Row
		case engine.DirDown:
			if t.Col != absorbed.Col || t.Row <= absorbed.Row {
				continue
			}
			d = t.Row - absorbed.Row
		default:
			continue
		}
		if !found || d < dist {
			best, dist, found = t, d, true
		}
	}
	return best, found
}

// advance moves the animation forward by one tick.
// Returns true if animation is still in progress.
func (a *animation) advance() bool {
	if a.phase == PhaseNone {
		return false
	}

	a.ticks++

	var duration int
	switch a.phase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		a.stop()
		return false
	}

	progress := min(float64(a.ticks)/float64(duration), 1.0)
	for i := range a.slides {
		a.slides[i].Progress = progress
	}

	if a.ticks >= duration {
		a.finish()
		return a.phase != PhaseNone
	}
	return true
}

// finish completes the current phase; a slide is followed by a pop.
func (a *animation) finish() {
	if a.phase == PhaseSlide {
		a.phase = PhasePop
		a.ticks = 0
		a.slides = a.slides[:0]
		return
	}
	a.stop()
}

func (a *animation) stop() {
	a.phase = PhaseNone
	a.ticks = 0
	a.slides = a.slides[:0]
}

func (a *animation) sliding() bool { return a.phase == PhaseSlide }
func (a *animation) popping() bool { return a.phase == PhasePop }

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current cell position during animation.
func (t *TileAnimation) interpolatePosition() (row, col float64) {
	p := easeOutQuad(t.Progress)
	row = float64(t.FromRow) + (float64(t.ToRow)-float64(t.FromRow))*p
	col = float64(t.FromCol) + (float64(t.ToCol)-float64(t.FromCol))*p
	return row, col
}
