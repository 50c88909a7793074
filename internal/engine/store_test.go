package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestEmptyCells(t *testing.T) {
	tiles := board(t,
		[]int{2, 0, 0, 4},
		[]int{2, 4, 8, 16},
		[]int{0, 2, 4, 8},
		[]int{2, 4, 8, 0},
	)

	got, err := EmptyCells(tiles, Size4)
	if err != nil {
		t.Fatalf("EmptyCells() failed: %v", err)
	}
	want := []Position{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 3, Col: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EmptyCells() = %v, want %v", got, want)
	}

	all, err := EmptyCells(nil, Size5)
	if err != nil {
		t.Fatalf("EmptyCells(nil) failed: %v", err)
	}
	if !reflect.DeepEqual(all, Size5.Cells()) {
		t.Errorf("EmptyCells(nil) = %v, want every cell", all)
	}

	outside := []Tile{{ID: "a", Value: 2, Row: 4, Col: 0}}
	if _, err := EmptyCells(outside, Size4); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EmptyCells(outside) error = %v, want ErrInvalidArgument", err)
	}
}
