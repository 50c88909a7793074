package t2048

import (
	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/engine"
)

// Tool returns the active power-up tool.
func (g *Game) Tool() Tool {
	return g.tool
}

// Cursor returns the power-up cursor position.
func (g *Game) Cursor() engine.Position {
	return g.cursor
}

func (g *Game) toggleTool(t Tool) {
	if !g.mode.AllowsAssists() {
		g.message = "Power-ups are off in classic mode"
		return
	}
	if g.session.Status() != engine.StatusPlaying {
		return
	}
	if g.tool == t {
		g.setTool(ToolNone)
		g.message = ""
		return
	}
	g.setTool(t)
	switch t {
	case ToolRemove:
		g.message = "Remove: pick a tile, Enter to confirm"
	case ToolSwap:
		g.message = "Swap: pick the first tile"
	}
}

func (g *Game) setTool(t Tool) {
	g.tool = t
	g.selected = ""
}

func (g *Game) moveCursor(dir engine.Direction) {
	n := int(g.Size())
	switch dir {
	case engine.DirUp:
		g.cursor.Row = core.Wrap(g.cursor.Row-1, n)
	case engine.DirDown:
		g.cursor.Row = core.Wrap(g.cursor.Row+1, n)
	case engine.DirLeft:
		g.cursor.Col = core.Wrap(g.cursor.Col-1, n)
	case engine.DirRight:
		g.cursor.Col = core.Wrap(g.cursor.Col+1, n)
	}
}

// applyTool acts on the tile under the cursor.
func (g *Game) applyTool() {
	tile, ok := engine.At(g.session.Tiles(), g.cursor)
	if !ok {
		g.message = "No tile here"
		return
	}

	switch g.tool {
	case ToolRemove:
		removed, err := g.session.RemoveTile(tile.ID)
		if err != nil || !removed {
			return
		}
		g.setTool(ToolNone)
		g.boardChanged()
		g.anim.stop()
		g.message = "Tile removed"

	case ToolSwap:
		if g.selected == "" {
			g.selected = tile.ID
			g.message = "Swap: pick the second tile"
			return
		}
		if g.selected == tile.ID {
			g.selected = ""
			g.message = "Swap: pick the first tile"
			return
		}
		swapped, err := g.session.SwapTiles(g.selected, tile.ID)
		if err != nil || !swapped {
			return
		}
		g.setTool(ToolNone)
		g.boardChanged()
		g.anim.stop()
		g.message = "Tiles swapped"
	}
}
