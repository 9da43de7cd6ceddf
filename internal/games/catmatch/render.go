package catmatch

import (
	"fmt"

	"github.com/vovakirdan/catmatch/internal/core"
)

const (
	cellWidth = 4 // Marker, glyph, marker, gap
	hudHeight = 3
	helpLine  = "arrows move  space select  h hint  p pause  r restart  q quit"
)

// MaxSymbolGlyphs is the number of symbols the renderer can tell apart.
const MaxSymbolGlyphs = 9

// glyphs and colors are indexed by Symbol.
var (
	glyphs = [MaxSymbolGlyphs]rune{'●', '■', '▲', '◆', '★', '♥', '♣', '♠', '✿'}
	colors = [MaxSymbolGlyphs]core.Color{
		core.ColorBrightRed,
		core.ColorBrightBlue,
		core.ColorBrightGreen,
		core.ColorBrightYellow,
		core.ColorOrange,
		core.ColorBrightMagenta,
		core.ColorBrightCyan,
		core.ColorWhite,
		core.ColorMagenta,
	}
)

// layoutSize returns the smallest screen that fits a size x size board.
func layoutSize(size int) (w, h int) {
	boardW := size*cellWidth + 2
	w = max(boardW, len(helpLine))
	h = hudHeight + size + 2 + 2
	return w, h
}

// Glyph returns the rune drawn for s.
func Glyph(s Symbol) rune {
	if s < 0 || int(s) >= len(glyphs) {
		return '·'
	}
	return glyphs[s]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.session.Grid().Size()
	board := core.Rect{W: size*cellWidth + 2, H: size + 2}
	board.X = (g.screenW - board.W) / 2
	board.Y = hudHeight

	g.renderHUD(dst, board)
	g.renderBoard(dst, board)

	footerY := board.Bottom() + 1
	if g.message != "" {
		dst.DrawTextColored((g.screenW-core.TextWidth(g.message))/2, board.Bottom(), g.message, core.ColorBrightRed)
	}
	dst.DrawTextColored((g.screenW-len(helpLine))/2, footerY, helpLine, core.ColorGray)

	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := layoutSize(g.cfg.Board.Size)
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws the title, score, countdown and move count.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	st := g.session.State()

	title := g.Title()
	dst.DrawTextColored((g.screenW-core.TextWidth(title))/2, 0, title, core.ColorBrightWhite)

	score := fmt.Sprintf("Score: %d", st.Score)
	dst.DrawText(board.X, 1, score)

	timer := fmt.Sprintf("Time %d:%02d", st.Remaining/60, st.Remaining%60)
	timerColor := core.ColorDefault
	if st.Remaining <= 10 {
		timerColor = core.ColorBrightRed
	}
	dst.DrawTextColored(board.Right()-core.TextWidth(timer), 1, timer, timerColor)

	moves := fmt.Sprintf("Moves: %d", st.Moves)
	dst.DrawTextColored((g.screenW-core.TextWidth(moves))/2, 2, moves, core.ColorGray)
}

// renderBoard draws the frame and every tile with its markers.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	dst.DrawBox(board, core.ColorGray)

	grid := g.session.Grid()
	sel := g.session.State().Selected
	cleared := make(map[Position]bool, len(g.highlight))
	for _, p := range g.highlight {
		cleared[p] = true
	}

	for r := 0; r < grid.Size(); r++ {
		for c := 0; c < grid.Size(); c++ {
			p := Position{Row: r, Col: c}
			x := board.X + 1 + c*cellWidth
			y := board.Y + 1 + r

			sym := grid.At(p)
			color := core.ColorGray
			if sym >= 0 && int(sym) < len(colors) {
				color = colors[sym]
			}
			dst.SetColored(x+1, y, Glyph(sym), color)

			left, right, markColor := g.markers(p, sel, cleared)
			if left != ' ' {
				dst.SetColored(x, y, left, markColor)
				dst.SetColored(x+2, y, right, markColor)
			}
		}
	}
}

// markers picks the bracket pair around a cell. The cursor wins over the
// selection, which wins over the hint and the cleared highlight.
func (g *Game) markers(p Position, sel *Position, cleared map[Position]bool) (rune, rune, core.Color) {
	switch {
	case p == g.cursor:
		if sel != nil && *sel == p {
			return '{', '}', core.ColorBrightYellow
		}
		return '[', ']', core.ColorBrightWhite
	case sel != nil && *sel == p:
		return '<', '>', core.ColorBrightYellow
	case g.hint != nil && (g.hint.A == p || g.hint.B == p):
		return '(', ')', core.ColorBrightGreen
	case cleared[p]:
		return '*', '*', core.ColorYellow
	default:
		return ' ', ' ', core.ColorDefault
	}
}

// renderOverlays draws pause and time-up messages on top of the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case !g.session.Active():
		g.drawOverlay(dst, board, "TIME UP", fmt.Sprintf("Score: %d", g.session.State().Score), "R to play again")
	case g.paused:
		g.drawOverlay(dst, board, "PAUSED", "P to resume")
	}
}

// drawOverlay draws a centered box with lines of text over the board.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, core.TextWidth(l))
	}
	box := board.Centered(w+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextColored(box.X+(box.W-core.TextWidth(l))/2, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
