package engine

// Remove deletes the tile with the given id. A missing id returns the input
// unchanged.
func Remove(tiles []Tile, id TileID) []Tile {
	i := indexOf(tiles, id)
	if i < 0 {
		return tiles
	}
	next := make([]Tile, 0, len(tiles)-1)
	next = append(next, tiles[:i]...)
	return append(next, tiles[i+1:]...)
}

// Swap exchanges the positions of two tiles, keeping their ids and values.
// It is a no-op when either id is missing or both name the same tile.
func Swap(tiles []Tile, a, b TileID) []Tile {
	if a == b {
		return tiles
	}
	i, j := indexOf(tiles, a), indexOf(tiles, b)
	if i < 0 || j < 0 {
		return tiles
	}
	next := cloneTiles(tiles)
	next[i].Row, next[j].Row = next[j].Row, next[i].Row
	next[i].Col, next[j].Col = next[j].Col, next[i].Col
	return next
}
