package t2048

import (
	"fmt"

	"github.com/vovakirdan/neonsums/internal/engine"
)

// Variant is a mode and grid size pairing offered by menus.
type Variant struct {
	Mode engine.Mode
	Size engine.GridSize
}

// Name returns a display name like "Fun 5x5".
func (v Variant) Name() string {
	return fmt.Sprintf("%s %s", ModeName(v.Mode), v.Size)
}

// ScoreKey returns the storage key for the variant.
func (v Variant) ScoreKey() string {
	return string(v.Mode) + "_" + v.Size.String()
}

// Modes lists the selectable modes in menu order.
var Modes = []engine.Mode{engine.ModeFun, engine.ModeClassic}

// Variants returns every mode and size combination, fun mode first.
func Variants() []Variant {
	out := make([]Variant, 0, len(Modes)*len(engine.SupportedSizes))
	for _, m := range Modes {
		for _, s := range engine.SupportedSizes {
			out = append(out, Variant{Mode: m, Size: s})
		}
	}
	return out
}

// ModeName returns the capitalised mode name.
func ModeName(m engine.Mode) string {
	switch m {
	case engine.ModeClassic:
		return "Classic"
	case engine.ModeFun:
		return "Fun"
	default:
		return string(m)
	}
}

// ModeDescription returns a one-line summary of a mode.
func ModeDescription(m engine.Mode) string {
	switch m {
	case engine.ModeClassic:
		return "Pure merging. No undo, no power-ups, no hints."
	case engine.ModeFun:
		return "Undo, remove and swap tiles, ask for hints."
	default:
		return ""
	}
}
