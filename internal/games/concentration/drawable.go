package concentration

import (
	"strconv"

	"github.com/vovakirdan/tui-concentration/internal/core"
)

// Drawable renders one card face into a cell rectangle.
type Drawable interface {
	Draw(dst *core.Screen, cell core.Rect, color core.Color)
}

// glyph draws a single rune in the middle of the cell.
type glyph rune

func (g glyph) Draw(dst *core.Screen, cell core.Rect, color core.Color) {
	cx, cy := cell.Center()
	dst.SetColored(cx, cy, rune(g), color)
}

// numbered draws shapes past the named set as a 1-based number.
type numbered Shape

func (n numbered) Draw(dst *core.Screen, cell core.Rect, color core.Color) {
	text := "#" + strconv.Itoa(int(n)+1)
	cx, cy := cell.Center()
	dst.DrawTextColored(cx-len(text)/2, cy, text, color)
}

type blank struct{}

func (blank) Draw(*core.Screen, core.Rect, core.Color) {}

var drawables = map[Shape]Drawable{
	ShapeNone:            blank{},
	ShapeCircle:          glyph('○'),
	ShapeSquare:          glyph('□'),
	ShapeTriangle:        glyph('△'),
	ShapeRectangle:       glyph('▭'),
	ShapeEllipse:         glyph('⬭'),
	ShapeDiamond:         glyph('◇'),
	ShapeCircleFilled:    glyph('●'),
	ShapeSquareFilled:    glyph('■'),
	ShapeTriangleFilled:  glyph('▲'),
	ShapeRectangleFilled: glyph('▬'),
	ShapeEllipseFilled:   glyph('⬬'),
	ShapeDiamondFilled:   glyph('◆'),
}

// DrawableFor returns the renderer for a shape.
func DrawableFor(s Shape) Drawable {
	if d, ok := drawables[s]; ok {
		return d
	}
	if s < 0 {
		return blank{}
	}
	return numbered(s)
}
