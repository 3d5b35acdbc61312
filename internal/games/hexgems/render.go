package hexgems

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/core"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// Board layout: the E-W axis runs up the screen so default gravity pulls
// gems down, rows run left to right and odd rows sit half a step higher.
const (
	cellCols  = 4 // screen columns per row (Y) step
	cellRows  = 2 // screen rows per E-W (X) step
	hudHeight = 2
)

type gemStyle struct {
	glyph rune
	color core.Color
}

var gemStyles = map[board.GemType]gemStyle{
	board.Ruby:     {'◆', core.ColorRed},
	board.Sapphire: {'●', core.ColorBlue},
	board.Emerald:  {'■', core.ColorGreen},
	board.Topaz:    {'▲', core.ColorYellow},
	board.Amethyst: {'♦', core.ColorMagenta},
	board.Pearl:    {'○', core.ColorWhite},
	board.Onyx:     {'▼', core.ColorCyan},
}

func styleOf(t board.GemType) gemStyle {
	if s, ok := gemStyles[t]; ok {
		return s
	}
	return gemStyle{'?', core.ColorDefault}
}

// boardSize returns the screen size of the board area.
func (g *Game) boardSize() (w, h int) {
	b := g.board.Shape().Bounds()
	w = cellCols*(b.Max.Y-b.Min.Y) + 3
	h = cellRows*(b.Max.X-b.Min.X) + 2
	return w, h
}

// cellPos returns the screen position of c relative to the board origin.
func (g *Game) cellPos(c hex.Coord) (x, y float64) {
	b := g.board.Shape().Bounds()
	x = float64(1 + cellCols*(c.Y-b.Min.Y))
	y = float64(cellRows*(b.Max.X-c.X) + 1 - (c.Y & 1))
	return x, y
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := g.boardSize()
	minW := max(w+2, 40)
	minH := h + hudHeight + 1
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + max((g.screenH-hudHeight-1-boardH)/2, 0)

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst)

	switch {
	case g.gameOver:
		g.renderGameOver(dst)
	case g.paused:
		dst.DrawTextCenteredColor(g.screenH/2, " PAUSED ", core.ColorBrightYellow)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and move counter.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorBrightCyan)

	moves := fmt.Sprintf("Moves: %d", g.moves)
	if left := g.MovesLeft(); left >= 0 {
		moves = fmt.Sprintf("Moves left: %d", left)
	}
	info := fmt.Sprintf("Score: %d   %s   Best chain: x%d", g.score, moves, g.bestChain)
	if g.lastChain > 1 {
		info += fmt.Sprintf("   Last: x%d +%d", g.lastChain, g.lastGain)
	}
	dst.DrawTextCentered(1, info)
}

// renderBoard draws empty cells, gems at their animated positions and the
// cursor.
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	put := func(x, y float64, r rune, color core.Color) {
		dst.SetCell(ox+int(math.Round(x)), oy+int(math.Round(y)), core.Cell{Rune: r, Color: color})
	}

	cells := g.board.Cells()
	for _, c := range cells {
		x, y := g.cellPos(c)
		if g.anim.flashing(c) {
			put(x, y, '✦', core.ColorBrightYellow)
			continue
		}
		put(x, y, '·', core.ColorGray)
	}

	for _, c := range cells {
		gem, ok := g.board.TryGet(c)
		if !ok {
			continue
		}
		style := styleOf(gem.Type)
		x, y := g.cellPos(c)
		if m, ok := g.anim.motionOf(gem); ok {
			fx, fy := g.cellPos(m.from)
			t := core.EaseOutQuad(m.progress(g.anim.now))
			x = core.Lerp(fx, x, t)
			y = core.Lerp(fy, y, t)
		}

		glyph := style.glyph
		if g.anim.spawning(gem) {
			glyph = '∙'
		}
		color := style.color
		if g.hasSelection && c == g.selected {
			color = color.Bright()
		}
		put(x, y, glyph, color)
	}

	if g.hasSelection {
		g.drawBrackets(dst, ox, oy, g.selected, core.ColorBrightYellow)
	}
	if !g.hasSelection || g.cursor != g.selected {
		g.drawBrackets(dst, ox, oy, g.cursor, core.ColorBrightWhite)
	}
}

func (g *Game) drawBrackets(dst *core.Screen, ox, oy int, c hex.Coord, color core.Color) {
	x, y := g.cellPos(c)
	cx, cy := ox+int(x), oy+int(y)
	dst.SetCell(cx-1, cy, core.Cell{Rune: '[', Color: color})
	dst.SetCell(cx+1, cy, core.Cell{Rune: ']', Color: color})
}

// renderFooter shows rule details on the last line.
func (g *Game) renderFooter(dst *core.Screen) {
	status := fmt.Sprintf("Gravity %s · %d gems · runs of %d",
		g.cfg.Rules.Gravity(), g.cfg.Gems.Types, g.finder.MinRun)
	if g.shuffles > 0 {
		status += fmt.Sprintf(" · reshuffled %d×", g.shuffles)
	}
	if g.Busy() {
		status += " · " + g.swaps.State().String()
	}
	dst.DrawTextCenteredColor(g.screenH-1, status, core.ColorGray)
}

// gameOverBox centers a box for n lines of text, kept on screen.
func (g *Game) gameOverBox(n int) core.Rect {
	w := min(28, g.screenW)
	h := min(n+2, g.screenH)
	x := core.Clamp((g.screenW-w)/2, 0, g.screenW-w)
	y := core.Clamp((g.screenH-h)/2, 0, g.screenH-h)
	return core.NewRect(x, y, w, h)
}

// renderGameOver draws the final score box.
func (g *Game) renderGameOver(dst *core.Screen) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", g.score),
		fmt.Sprintf("Best chain: x%d", g.bestChain),
		"R restart · Q quit",
	}
	box := g.gameOverBox(len(lines))
	for row := box.Y; row < box.Bottom(); row++ {
		for col := box.X; col < box.Right(); col++ {
			dst.Set(col, row, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightRed)
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightRed
		}
		dst.DrawTextCenteredColor(box.Y+1+i, line, color)
	}
}
