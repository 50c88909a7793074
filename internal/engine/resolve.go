package engine

import (
	"fmt"
	"sort"
)

// MoveResult is the outcome of resolving one directional move.
type MoveResult struct {
	Tiles         []Tile
	ScoreIncrease int
	Moved         bool
}

// Resolve slides and merges every line of the board in the given direction.
// It never mutates its input, never spawns and never checks for a terminal
// state. Each tile merges at most once per call.
func Resolve(tiles []Tile, dir Direction, size GridSize) (MoveResult, error) {
	if err := size.Validate(); err != nil {
		return MoveResult{}, err
	}
	if err := dir.Validate(); err != nil {
		return MoveResult{}, err
	}

	// Work on an arena copy; lines hold arena indices.
	arena := make([]Tile, len(tiles))
	absorbed := make([]bool, len(tiles))
	lines := make([][]int, int(size))
	for i, t := range tiles {
		if !size.Contains(t.Position()) {
			return MoveResult{}, fmt.Errorf("%w: tile %s outside %s grid", ErrInvalidArgument, t, size)
		}
		t.IsNew = false
		t.IsMerged = false
		arena[i] = t

		line := t.Row
		if dir.vertical() {
			line = t.Col
		}
		lines[line] = append(lines[line], i)
	}

	var result MoveResult
	for _, line := range lines {
		score, moved := resolveLine(arena, absorbed, line, dir, size)
		result.ScoreIncrease += score
		result.Moved = result.Moved || moved
	}

	result.Tiles = make([]Tile, 0, len(arena))
	for i, t := range arena {
		if !absorbed[i] {
			result.Tiles = append(result.Tiles, t)
		}
	}
	return result, nil
}

// resolveLine walks one row or column, leading edge first.
func resolveLine(arena []Tile, absorbed []bool, line []int, dir Direction, size GridSize) (score int, moved bool) {
	if len(line) == 0 {
		return 0, false
	}

	sort.SliceStable(line, func(i, j int) bool {
		a, b := axis(arena[line[i]], dir), axis(arena[line[j]], dir)
		if dir.ascending() {
			return a < b
		}
		return a > b
	})

	target, step := 0, 1
	if !dir.ascending() {
		target, step = int(size)-1, -1
	}
	candidate := -1

	for _, idx := range line {
		tile := &arena[idx]

		if candidate >= 0 && arena[candidate].Value == tile.Value {
			merged := &arena[candidate]
			merged.Value *= 2
			merged.IsMerged = true
			score += merged.Value
			absorbed[idx] = true
			candidate = -1 // no chain merges
			moved = true
			continue
		}

		if axis(*tile, dir) != target {
			setAxis(tile, dir, target)
			moved = true
		}
		candidate = idx
		target += step
	}
	return score, moved
}

// axis returns the tile's coordinate along the movement axis.
func axis(t Tile, dir Direction) int {
	if dir.vertical() {
		return t.Row
	}
	return t.Col
}

func setAxis(t *Tile, dir Direction, pos int) {
	if dir.vertical() {
		t.Row = pos
	} else {
		t.Col = pos
	}
}

// CanMove reports whether any direction would change the board.
func CanMove(tiles []Tile, size GridSize) (bool, error) {
	for _, dir := range Directions {
		res, err := Resolve(tiles, dir, size)
		if err != nil {
			return false, err
		}
		if res.Moved {
			return true, nil
		}
	}
	return false, nil
}
