package engine

import (
	"fmt"
	"math/rand"
)

// DefaultSpawn4Probability is the chance that a spawned tile is a 4.
const DefaultSpawn4Probability = 0.10

// Spawner places new tiles on random empty cells.
type Spawner struct {
	rng        *rand.Rand
	ids        IDSource
	spawn4Prob float64
}

// NewSpawner creates a spawner drawing cells and values from rng and
// identifiers from ids.
func NewSpawner(rng *rand.Rand, ids IDSource, spawn4Prob float64) (*Spawner, error) {
	if rng == nil || ids == nil {
		return nil, fmt.Errorf("%w: spawner needs a random source and an id source", ErrInvalidArgument)
	}
	if spawn4Prob < 0 || spawn4Prob > 1 {
		return nil, fmt.Errorf("%w: spawn4 probability %v", ErrInvalidArgument, spawn4Prob)
	}
	return &Spawner{rng: rng, ids: ids, spawn4Prob: spawn4Prob}, nil
}

// Spawn returns tiles plus one new tile on a uniformly chosen empty cell.
// A full board is returned unchanged.
func (s *Spawner) Spawn(tiles []Tile, size GridSize) ([]Tile, error) {
	next, _, err := s.spawn(tiles, size)
	return next, err
}

// spawn also reports the tile it placed, if any.
func (s *Spawner) spawn(tiles []Tile, size GridSize) ([]Tile, *Tile, error) {
	empty, err := EmptyCells(tiles, size)
	if err != nil {
		return nil, nil, err
	}
	if len(empty) == 0 {
		return tiles, nil, nil
	}

	cell := empty[s.rng.Intn(len(empty))]

	// 90% 2, 10% 4 by default
	value := 2
	if s.rng.Float64() < s.spawn4Prob {
		value = 4
	}

	tile := Tile{
		ID:    s.ids.NextID(),
		Value: value,
		Row:   cell.Row,
		Col:   cell.Col,
		IsNew: true,
	}
	next := make([]Tile, len(tiles), len(tiles)+1)
	copy(next, tiles)
	next = append(next, tile)
	return next, &tile, nil
}
