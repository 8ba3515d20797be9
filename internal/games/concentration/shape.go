package concentration

import "strconv"

// Shape identifies the picture on a card. Two playable cards share each value.
type Shape int

// ShapeNone marks the status cell, which never takes part in a pair.
const ShapeNone Shape = -1

// Named shapes, outline variants first. Boards with more pairs than named
// shapes continue with plain numbered identifiers.
const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeRectangle
	ShapeEllipse
	ShapeDiamond
	ShapeCircleFilled
	ShapeSquareFilled
	ShapeTriangleFilled
	ShapeRectangleFilled
	ShapeEllipseFilled
	ShapeDiamondFilled

	namedShapes = iota
)

var shapeNames = [namedShapes]string{
	"circle",
	"square",
	"triangle",
	"rectangle",
	"ellipse",
	"diamond",
	"filled circle",
	"filled square",
	"filled triangle",
	"filled rectangle",
	"filled ellipse",
	"filled diamond",
}

// String returns a human-readable name for the shape.
func (s Shape) String() string {
	switch {
	case s == ShapeNone:
		return "none"
	case s >= 0 && s < namedShapes:
		return shapeNames[s]
	case s > 0:
		return "shape " + strconv.Itoa(int(s))
	default:
		return "unknown"
	}
}

// Named reports whether the shape has a dedicated glyph.
func (s Shape) Named() bool {
	return s >= 0 && s < namedShapes
}

// Filled reports whether the shape is drawn solid rather than as an outline.
func (s Shape) Filled() bool {
	return s >= ShapeCircleFilled && s < namedShapes
}
