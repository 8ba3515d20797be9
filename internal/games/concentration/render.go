package concentration

import (
	"fmt"

	"github.com/vovakirdan/tui-concentration/internal/core"
)

// Visual characters for rendering
const (
	CardBackChar    = '░'
	MatchedMarkChar = '╳'
)

// Card colors by state
const (
	colorBack     = core.ColorGray
	colorRevealed = core.ColorBrightBlue
	colorMatched  = core.ColorGray
	colorMark     = core.ColorBrightRed
	colorBorder   = core.ColorWhite
	colorCursor   = core.ColorYellow
	colorStatus   = core.ColorLavender
)

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

	g.renderHUD(dst)

	size := g.board.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			rect := g.layout.CellRect(row, col)
			if g.board.IsStatusCell(row, col) {
				g.renderStatus(dst, rect)
				continue
			}
			card, _ := g.board.Card(row, col)
			cursor := row == g.cursorRow && col == g.cursorCol
			renderCard(dst, rect, card, cursor)
		}
	}

	g.renderFooter(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.layout.Width(), g.layout.Height()+hudTop+hudBottom))
}

// renderHUD draws the title and session counters above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	y := g.layout.Origin.Y - hudTop
	x := g.layout.Origin.X + g.layout.Padding

	dst.DrawText(x, y, "CONCENTRATION")

	info := fmt.Sprintf("Time %.0fs  Flips %d", g.Now(), g.flips)
	infoX := g.layout.Origin.X + g.layout.Width() - g.layout.Padding - len(info)
	dst.DrawText(core.Max(x, infoX), y, info)
}

// renderFooter draws the help line or the end-of-game message below the board.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.layout.Origin.Y + g.layout.Height()
	x := g.layout.Origin.X + g.layout.Padding

	switch {
	case g.board.Complete():
		dst.DrawTextColored(x, y, fmt.Sprintf("All %d pairs found in %.1fs!  R restart  Q quit", g.board.TotalPairs(), g.Now()), core.ColorGreen)
	case g.paused:
		dst.DrawTextColored(x, y, "PAUSED  P resume  Q quit", core.ColorYellow)
	default:
		dst.DrawText(x, y, "Click or arrows+Enter to flip  P pause  Q quit")
	}
}

// renderStatus draws the matched/remaining counters in the status cell.
func (g *Game) renderStatus(dst *core.Screen, rect core.Rect) {
	_, cy := rect.Center()
	dst.DrawTextColored(rect.X, cy-1, fmt.Sprintf("Matched: %d", g.board.MatchedPairs()), colorStatus)
	dst.DrawTextColored(rect.X, cy, fmt.Sprintf("Remain: %d", g.board.RemainingPairs()), colorStatus)
}

// renderCard draws one card: its border, then its back or face.
func renderCard(dst *core.Screen, rect core.Rect, card Card, cursor bool) {
	border := colorBorder
	if card.State != Revealed {
		border = colorBack
	}
	if cursor {
		border = colorCursor
	}
	dst.DrawBox(rect, border)

	inner := core.NewRect(rect.X+1, rect.Y+1, rect.W-2, rect.H-2)
	switch card.State {
	case Hidden:
		dst.DrawRect(inner, CardBackChar, colorBack)
	case Revealed:
		DrawableFor(card.Shape).Draw(dst, inner, colorRevealed)
	case Matched:
		DrawableFor(card.Shape).Draw(dst, inner, colorMatched)
		_, cy := inner.Center()
		dst.SetColored(inner.X, cy, MatchedMarkChar, colorMark)
		dst.SetColored(inner.Right()-1, cy, MatchedMarkChar, colorMark)
	}
}
