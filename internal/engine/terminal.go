package engine

// IsTerminal reports whether the board is stuck: every cell is occupied
// and no tile has an equal neighbour to its right or below. Checking those
// two directions covers every adjacent pair exactly once.
func IsTerminal(tiles []Tile, size GridSize) (bool, error) {
	cells, err := occupancy(tiles, size)
	if err != nil {
		return false, err
	}
	if len(tiles) < size.CellCount() {
		return false, nil
	}

	n := int(size)
	value := func(r, c int) int {
		idx := cells[r*n+c]
		if idx < 0 {
			return 0
		}
		return tiles[idx].Value
	}

	for r := range n {
		for c := range n {
			v := value(r, c)
			if v == 0 {
				// Duplicate positions left a hole; a hole always permits a move.
				return false, nil
			}
			if c < n-1 && value(r, c+1) == v {
				return false, nil
			}
			if r < n-1 && value(r+1, c) == v {
				return false, nil
			}
		}
	}
	return true, nil
}
