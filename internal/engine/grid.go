package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument marks programming errors: grid sizes outside the
// supported set, unknown directions, tiles placed outside the grid.
var ErrInvalidArgument = errors.New("engine: invalid argument")

// GridSize is the edge length of the square board.
type GridSize int

// Supported grid sizes.
const (
	Size4 GridSize = 4
	Size5 GridSize = 5
	Size6 GridSize = 6
)

// SupportedSizes lists the grid sizes a session may be created with.
var SupportedSizes = []GridSize{Size4, Size5, Size6}

// Validate returns ErrInvalidArgument for unsupported sizes.
func (s GridSize) Validate() error {
	switch s {
	case Size4, Size5, Size6:
		return nil
	}
	return fmt.Errorf("%w: grid size %d (want 4, 5 or 6)", ErrInvalidArgument, int(s))
}

// CellCount returns the number of cells on the board.
func (s GridSize) CellCount() int {
	return int(s) * int(s)
}

// Contains reports whether p lies on the board.
func (s GridSize) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < int(s) && p.Col >= 0 && p.Col < int(s)
}

// String returns the size as "NxN".
func (s GridSize) String() string {
	return fmt.Sprintf("%dx%d", int(s), int(s))
}

// Position addresses a cell.
type Position struct {
	Row int
	Col int
}

// Cells returns every position of the board in row-major order.
func (s GridSize) Cells() []Position {
	cells := make([]Position, 0, s.CellCount())
	for r := range int(s) {
		for c := range int(s) {
			cells = append(cells, Position{Row: r, Col: c})
		}
	}
	return cells
}

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all valid directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the upper-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Validate returns ErrInvalidArgument for unknown directions.
func (d Direction) Validate() error {
	if d < DirUp || d > DirRight {
		return fmt.Errorf("%w: direction %d", ErrInvalidArgument, int(d))
	}
	return nil
}

// vertical reports whether lines run along columns.
func (d Direction) vertical() bool {
	return d == DirUp || d == DirDown
}

// ascending reports whether cells fill from index 0 upward.
func (d Direction) ascending() bool {
	return d == DirLeft || d == DirUp
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return DirUp, nil
	case "DOWN":
		return DirDown, nil
	case "LEFT":
		return DirLeft, nil
	case "RIGHT":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidArgument, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
