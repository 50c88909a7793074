package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neonsums/internal/core"
)

func TestRenderScreenDimensions(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(0, 0, "NEON", core.ColorBrightMagenta)
	s.SetCell(5, 1, core.Cell{Rune: '2', Color: core.ColorCyan, Attr: core.AttrBold})
	s.Style(core.NewRect(0, 2, 4, 1), core.ColorPink, core.AttrReverse)

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderScreen() has %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
}

func TestCellStyle(t *testing.T) {
	if !cellStyle(core.ColorCyan, core.AttrBold).GetBold() {
		t.Error("AttrBold did not produce a bold style")
	}
	if !cellStyle(core.ColorCyan, core.AttrReverse).GetReverse() {
		t.Error("AttrReverse did not produce a reverse style")
	}
	plain := cellStyle(core.ColorCyan, core.AttrNone)
	if plain.GetBold() || plain.GetReverse() {
		t.Error("AttrNone added attributes")
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorPurple; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}
