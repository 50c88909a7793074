package engine

import (
	"math/rand"
	"testing"
)

// board builds tiles from rows of values (0 = empty).
func board(t *testing.T, rows ...[]int) []Tile {
	t.Helper()
	tiles, _, err := FromMatrix(Matrix(rows), NewCounter("m"))
	if err != nil {
		t.Fatalf("FromMatrix() failed: %v", err)
	}
	return tiles
}

// values renders tiles as rows of values.
func values(t *testing.T, tiles []Tile, size GridSize) [][]int {
	t.Helper()
	m, err := ToMatrix(tiles, size)
	if err != nil {
		t.Fatalf("ToMatrix() failed: %v", err)
	}
	return m
}

func equalRows(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

// randomBoard fills roughly half the cells with small powers of two.
func randomBoard(rng *rand.Rand, size GridSize) []Tile {
	ids := NewCounter("r")
	var tiles []Tile
	for _, p := range size.Cells() {
		if rng.Intn(2) == 0 {
			continue
		}
		tiles = append(tiles, Tile{
			ID:    ids.NextID(),
			Value: 2 << rng.Intn(4),
			Row:   p.Row,
			Col:   p.Col,
		})
	}
	return tiles
}

// boardSum totals the tile values.
func boardSum(tiles []Tile) int {
	total := 0
	for _, t := range tiles {
		total += t.Value
	}
	return total
}

// entries returns the stored snapshots, oldest first.
func (h *History) entries() []Snapshot {
	out := make([]Snapshot, 0, h.n)
	for i := range h.n {
		out = append(out, h.buf[(h.start+i)%len(h.buf)])
	}
	return out
}

func newTestSession(t *testing.T, mode Mode, seed int64) *Session {
	t.Helper()
	cfg := DefaultSessionConfig()
	cfg.Mode = mode
	cfg.Rand = rand.New(rand.NewSource(seed))
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}
