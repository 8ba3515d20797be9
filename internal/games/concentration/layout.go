package concentration

import (
	"github.com/vovakirdan/tui-concentration/internal/config"
	"github.com/vovakirdan/tui-concentration/internal/core"
)

// Layout maps board positions to screen cells and back.
// Cards are CellW x CellH with Padding cells between them and around the edge.
type Layout struct {
	Origin  core.Point // Top-left corner of the board area
	Size    int        // Cards per row and column
	CellW   int
	CellH   int
	Padding int
}

// NewLayout builds a layout for a size x size board at the origin.
func NewLayout(size int, lc config.LayoutConfig) Layout {
	return Layout{
		Size:    size,
		CellW:   lc.CellWidth,
		CellH:   lc.CellHeight,
		Padding: lc.Padding,
	}
}

// Width returns the board width in screen cells.
func (l Layout) Width() int {
	return l.Size*(l.CellW+l.Padding) + l.Padding
}

// Height returns the board height in screen cells.
func (l Layout) Height() int {
	return l.Size*(l.CellH+l.Padding) + l.Padding
}

// CellRect returns the screen rectangle of the card at (row, col).
func (l Layout) CellRect(row, col int) core.Rect {
	return core.NewRect(
		l.Origin.X+l.Padding+col*(l.CellW+l.Padding),
		l.Origin.Y+l.Padding+row*(l.CellH+l.Padding),
		l.CellW,
		l.CellH,
	)
}

// CellAt converts a screen position to a board position by integer division
// against the cell pitch. The gap after a card belongs to that card.
// ok is false for positions outside the hit area that starts at the first
// card and spans Size pitches in each direction.
func (l Layout) CellAt(x, y int) (row, col int, ok bool) {
	pitchX, pitchY := l.CellW+l.Padding, l.CellH+l.Padding
	area := core.NewRect(l.Origin.X+l.Padding, l.Origin.Y+l.Padding, l.Size*pitchX, l.Size*pitchY)
	if !area.Contains(x, y) {
		return 0, 0, false
	}

	col = (x - area.X) / pitchX
	row = (y - area.Y) / pitchY
	return row, col, true
}
