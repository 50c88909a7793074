package engine

import (
	"reflect"
	"testing"
)

func powerupTiles() []Tile {
	return []Tile{
		{ID: "a", Value: 2, Row: 0, Col: 0},
		{ID: "b", Value: 8, Row: 1, Col: 2},
		{ID: "c", Value: 32, Row: 3, Col: 3},
	}
}

func TestRemove(t *testing.T) {
	tiles := powerupTiles()

	got := Remove(tiles, "b")
	want := []Tile{tiles[0], tiles[2]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Remove(b) = %v, want %v", got, want)
	}
	if len(tiles) != 3 {
		t.Errorf("Remove() mutated input length to %d", len(tiles))
	}

	if got := Remove(tiles, "missing"); !reflect.DeepEqual(got, tiles) {
		t.Errorf("Remove(missing) = %v, want unchanged", got)
	}
}

func TestSwap(t *testing.T) {
	tiles := powerupTiles()

	got := Swap(tiles, "a", "c")
	a, _ := Find(got, "a")
	c, _ := Find(got, "c")
	if a.Position() != (Position{Row: 3, Col: 3}) || a.Value != 2 {
		t.Errorf("Swap() a = %v, want 2 at (3,3)", a)
	}
	if c.Position() != (Position{Row: 0, Col: 0}) || c.Value != 32 {
		t.Errorf("Swap() c = %v, want 32 at (0,0)", c)
	}
	if !reflect.DeepEqual(tiles, powerupTiles()) {
		t.Error("Swap() mutated its input")
	}
}

func TestSwapNoOps(t *testing.T) {
	tiles := powerupTiles()
	tests := []struct {
		name string
		a, b TileID
	}{
		{"same tile", "a", "a"},
		{"first missing", "x", "b"},
		{"second missing", "b", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Swap(tiles, tt.a, tt.b); !reflect.DeepEqual(got, tiles) {
				t.Errorf("Swap(%s, %s) = %v, want unchanged", tt.a, tt.b, got)
			}
		})
	}
}

func TestSwapIsItsOwnInverse(t *testing.T) {
	tiles := powerupTiles()
	got := Swap(Swap(tiles, "a", "b"), "a", "b")
	if !reflect.DeepEqual(got, tiles) {
		t.Errorf("Swap(Swap(a, b)) = %v, want %v", got, tiles)
	}
}

func TestPowerUpsLeaveFlags(t *testing.T) {
	tiles := powerupTiles()
	for _, tile := range Swap(Remove(tiles, "c"), "a", "b") {
		if tile.IsNew || tile.IsMerged {
			t.Errorf("power-ups set flags on %v", tile)
		}
	}
}
