package t2048

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3
	footerRows = 3
)

// boardDims returns the board size in characters.
func boardDims(size engine.GridSize) (w, h int) {
	n := int(size)
	return n*cellWidth + 1, n*cellHeight + 1
}

// minScreen returns the smallest screen that fits the board and HUD.
func minScreen(size engine.GridSize) (w, h int) {
	bw, bh := boardDims(size)
	return bw + 2, hudHeight + 1 + bh + footerRows
}

// tileColor maps a tile value to its neon color.
func tileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorCyan
	case 4:
		return core.ColorBrightCyan
	case 8:
		return core.ColorGreen
	case 16:
		return core.ColorBrightGreen
	case 32:
		return core.ColorYellow
	case 64:
		return core.ColorBrightYellow
	case 128:
		return core.ColorOrange
	case 256:
		return core.ColorRed
	case 512:
		return core.ColorBrightRed
	case 1024:
		return core.ColorPink
	case 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightWhite
	}
}

// formatValue fits a value into a cell interior.
func formatValue(v int) string {
	s := strconv.Itoa(v)
	if len(s) < cellWidth {
		return s
	}
	return strconv.Itoa(v/1024) + "k"
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardDims(g.Size())
	boardX := max(0, (g.screenW-boardW)/2)
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderSelection(dst, boardX, boardY)
	g.renderFooter(dst, boardX, boardY+boardH, boardW)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := minScreen(g.Size())
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorBrightRed)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, please resize", minW, minH), core.ColorGray)
}

// renderHUD draws the title, score and mode line.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "NEON SUMS"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightMagenta)

	s := g.session.Snapshot()
	dst.DrawTextColored(boardX, 1, fmt.Sprintf("Score: %d", s.Score), core.ColorBrightCyan)

	best := fmt.Sprintf("Best: %d", max(g.best, s.Score))
	dst.DrawTextColored(max(boardX, boardX+boardW-len(best)), 1, best, core.ColorBrightYellow)

	info := fmt.Sprintf("%s %s  Max: %d", ModeName(g.mode), s.Size, s.MaxTile)
	if g.mode.AllowsAssists() {
		info += fmt.Sprintf("  Undo: %d", s.UndoDepth)
	}
	dst.DrawTextColored(boardX+max(0, (boardW-len(info))/2), 2, info, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := int(g.Size())
	c := core.ColorPurple

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, c)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', c)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', c)
				}
			}
		}
	}
}

// cellOrigin returns the top-left interior character of a cell.
func cellOrigin(boardX, boardY int, row, col float64) (int, int) {
	x := boardX + int(math.Round(col*cellWidth)) + 1
	y := boardY + int(math.Round(row*cellHeight)) + 1
	return x, y
}

// renderTiles draws tiles at rest, or in flight while sliding.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	if g.anim.sliding() {
		for i := range g.anim.slides {
			a := &g.anim.slides[i]
			row, col := a.interpolatePosition()
			x, y := cellOrigin(boardX, boardY, row, col)
			drawTile(dst, x, y, a.Value, tileColor(a.Value), core.AttrNone)
		}
		return
	}

	for _, t := range g.session.Tiles() {
		attr := core.AttrNone
		switch {
		case t.IsNew && g.anim.popping():
			attr = core.AttrReverse
		case t.IsNew, t.IsMerged:
			attr = core.AttrBold
		}
		x, y := cellOrigin(boardX, boardY, float64(t.Row), float64(t.Col))
		drawTile(dst, x, y, t.Value, tileColor(t.Value), attr)
	}
}

// drawTile fills a cell interior with a centered value.
func drawTile(dst *core.Screen, x, y, value int, c core.Color, a core.Attr) {
	inner := cellWidth - 1
	dst.FillRect(core.NewRect(x, y, inner, cellHeight-1), core.Cell{Rune: ' ', Color: c, Attr: a})
	text := formatValue(value)
	pad := max(0, (inner-len(text)+1)/2)
	for i, r := range text {
		dst.SetCell(x+pad+i, y, core.Cell{Rune: r, Color: c, Attr: a})
	}
}

// renderSelection highlights the power-up cursor and the picked swap tile.
func (g *Game) renderSelection(dst *core.Screen, boardX, boardY int) {
	if g.tool == ToolNone {
		return
	}
	area := func(p engine.Position) core.Rect {
		x, y := cellOrigin(boardX, boardY, float64(p.Row), float64(p.Col))
		return core.NewRect(x, y, cellWidth-1, cellHeight-1)
	}

	if g.selected != "" {
		if t, ok := engine.Find(g.session.Tiles(), g.selected); ok {
			dst.Style(area(t.Position()), core.ColorBrightCyan, core.AttrReverse)
		}
	}

	cursorColor := core.ColorBrightYellow
	if g.tool == ToolRemove {
		cursorColor = core.ColorBrightRed
	}
	dst.Style(area(g.cursor), cursorColor, core.AttrReverse)
}

// renderFooter draws the hint or status message and the controls line.
func (g *Game) renderFooter(dst *core.Screen, boardX, y, boardW int) {
	line, color := g.statusLine()
	if line != "" {
		dst.DrawTextColored(boardX+max(0, (boardW-utf8.RuneCountInString(line))/2), y+1, line, color)
	}
	dst.DrawTextCentered(y+2, g.Controls(), core.ColorGray)
}

func (g *Game) statusLine() (string, core.Color) {
	if h, ok := g.Hint(); ok {
		return fmt.Sprintf("Hint: %s - %s", h.Direction, h.Reason), core.ColorBrightGreen
	}
	if g.message != "" {
		return g.message, core.ColorYellow
	}
	return "", core.ColorDefault
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightWhite, "PAUSED", "Press P to resume")
		return
	}

	comment := g.commentary
	if comment == "" {
		comment = "..."
	}

	switch g.session.Status() {
	case engine.StatusWon:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightMagenta,
			"YOU WIN!",
			fmt.Sprintf("Reached %d", g.session.WinTarget()),
			comment,
			"K: keep playing  R: restart")
	case engine.StatusLost:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score %d  Max tile %d", g.session.Score(), engine.MaxValue(g.session.Tiles())),
			comment,
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, c)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		color := core.ColorBrightWhite
		if i == 0 {
			color = c
		}
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the current mode and tool.
func (g *Game) Controls() string {
	switch {
	case g.tool != ToolNone:
		return "Arrows: Cursor  Enter: Pick  Esc: Cancel"
	case g.mode.AllowsAssists():
		return "Arrows/WASD Move  U Undo  X Remove  C Swap  H Hint  P Pause  R New  Q Quit"
	default:
		return "Arrows/WASD: Move | P: Pause | R: Restart | Q: Quit"
	}
}
