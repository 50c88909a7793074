package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Matrix is a read-only value grid; 0 marks an empty cell. It is the only
// board view handed to advisory collaborators.
type Matrix [][]int

// ToMatrix renders tiles into a fresh matrix.
func ToMatrix(tiles []Tile, size GridSize) (Matrix, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	n := int(size)
	m := make(Matrix, n)
	for r := range m {
		m[r] = make([]int, n)
	}
	for _, t := range tiles {
		if !size.Contains(t.Position()) {
			return nil, fmt.Errorf("%w: tile %s outside %s grid", ErrInvalidArgument, t, size)
		}
		m[t.Row][t.Col] = t.Value
	}
	return m, nil
}

// FromMatrix builds tiles from a square matrix, drawing ids from ids.
func FromMatrix(m Matrix, ids IDSource) ([]Tile, GridSize, error) {
	size := GridSize(len(m))
	if err := size.Validate(); err != nil {
		return nil, 0, err
	}
	var tiles []Tile
	for r, row := range m {
		if len(row) != len(m) {
			return nil, 0, fmt.Errorf("%w: matrix row %d has %d cells, want %d", ErrInvalidArgument, r, len(row), len(m))
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if !isPowerOfTwo(v) {
				return nil, 0, fmt.Errorf("%w: cell (%d,%d) value %d", ErrInvalidArgument, r, c, v)
			}
			tiles = append(tiles, Tile{ID: ids.NextID(), Value: v, Row: r, Col: c})
		}
	}
	return tiles, size, nil
}

// Size returns the matrix edge length.
func (m Matrix) Size() GridSize {
	return GridSize(len(m))
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for r, row := range m {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Empty counts zero cells.
func (m Matrix) Empty() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

// String formats the matrix one row per line.
func (m Matrix) String() string {
	var sb strings.Builder
	for r, row := range m {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
