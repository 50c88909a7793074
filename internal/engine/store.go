package engine

import (
	"fmt"
	"slices"
)

// cloneTiles copies a tile list. Tile has no reference fields, so the copy
// is deep.
func cloneTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	return slices.Clone(tiles)
}

// occupancy maps each cell (row-major) to the index of the tile occupying
// it, or -1. It fails on tiles outside the grid.
func occupancy(tiles []Tile, size GridSize) ([]int, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	n := int(size)
	cells := make([]int, size.CellCount())
	for i := range cells {
		cells[i] = -1
	}
	for i, t := range tiles {
		if !size.Contains(t.Position()) {
			return nil, fmt.Errorf("%w: tile %s outside %s grid", ErrInvalidArgument, t, size)
		}
		cells[t.Row*n+t.Col] = i
	}
	return cells, nil
}

// EmptyCells returns the unoccupied positions in row-major order.
func EmptyCells(tiles []Tile, size GridSize) ([]Position, error) {
	cells, err := occupancy(tiles, size)
	if err != nil {
		return nil, err
	}
	var empty []Position
	for i, p := range size.Cells() {
		if cells[i] < 0 {
			empty = append(empty, p)
		}
	}
	return empty, nil
}

// Find returns the tile with the given id.
func Find(tiles []Tile, id TileID) (Tile, bool) {
	if i := indexOf(tiles, id); i >= 0 {
		return tiles[i], true
	}
	return Tile{}, false
}

// At returns the tile occupying p.
func At(tiles []Tile, p Position) (Tile, bool) {
	for _, t := range tiles {
		if t.Row == p.Row && t.Col == p.Col {
			return t, true
		}
	}
	return Tile{}, false
}

func indexOf(tiles []Tile, id TileID) int {
	return slices.IndexFunc(tiles, func(t Tile) bool { return t.ID == id })
}

// MaxValue returns the highest tile value, or 0 for an empty board.
func MaxValue(tiles []Tile) int {
	maxVal := 0
	for _, t := range tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// CheckInvariants verifies that tiles lie on the grid, no two tiles share
// a cell, identifiers are unique and every value is a power of two >= 2.
func CheckInvariants(tiles []Tile, size GridSize) error {
	if err := size.Validate(); err != nil {
		return err
	}
	seenCells := make(map[Position]TileID, len(tiles))
	seenIDs := make(map[TileID]struct{}, len(tiles))
	for _, t := range tiles {
		if !size.Contains(t.Position()) {
			return fmt.Errorf("engine: tile %s outside %s grid", t, size)
		}
		if other, ok := seenCells[t.Position()]; ok {
			return fmt.Errorf("engine: tiles %s and %s share cell (%d,%d)", other, t.ID, t.Row, t.Col)
		}
		seenCells[t.Position()] = t.ID
		if _, ok := seenIDs[t.ID]; ok {
			return fmt.Errorf("engine: duplicate tile id %s", t.ID)
		}
		seenIDs[t.ID] = struct{}{}
		if !isPowerOfTwo(t.Value) {
			return fmt.Errorf("engine: tile %s has value %d, not a power of two >= 2", t.ID, t.Value)
		}
	}
	return nil
}
