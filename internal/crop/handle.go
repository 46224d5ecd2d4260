package crop

import (
	"math"

	"tricolor/pkg/geometry"
)

// Handle identifies the part of the crop rectangle a pointer interaction
// grabs: the body (move) or one of 8 resize handles.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTop
	HandleBottom
	HandleLeft
	HandleRight
)

// String returns the handle name for logging.
func (h Handle) String() string {
	switch h {
	case HandleNone:
		return "none"
	case HandleMove:
		return "move"
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	case HandleTop:
		return "top"
	case HandleBottom:
		return "bottom"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	}
	return "unknown"
}

// IsCorner returns true for the four corner handles.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight:
		return true
	}
	return false
}

// IsEdge returns true for the four edge-midpoint handles.
func (h Handle) IsEdge() bool {
	switch h {
	case HandleTop, HandleBottom, HandleLeft, HandleRight:
		return true
	}
	return false
}

// HandlePoints returns the 8 handle positions for a rectangle, keyed by
// handle. The rectangle may be in either coordinate space.
func HandlePoints(r geometry.Rect) map[Handle]geometry.Point2D {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	return map[Handle]geometry.Point2D{
		HandleTopLeft:     {X: r.X, Y: r.Y},
		HandleTopRight:    {X: r.Right(), Y: r.Y},
		HandleBottomLeft:  {X: r.X, Y: r.Bottom()},
		HandleBottomRight: {X: r.Right(), Y: r.Bottom()},
		HandleTop:         {X: cx, Y: r.Y},
		HandleBottom:      {X: cx, Y: r.Bottom()},
		HandleLeft:        {X: r.X, Y: cy},
		HandleRight:       {X: r.Right(), Y: cy},
	}
}

// hitOrder checks corners before edges so a corner wins where the two
// handle boxes overlap on a small rectangle.
var hitOrder = []Handle{
	HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
	HandleTop, HandleBottom, HandleLeft, HandleRight,
}

// HitTest returns the handle under point p for a crop rectangle, both given
// in display space. grab is the handle grab radius in display pixels, kept
// fixed regardless of zoom so handles stay easy to grab at any zoom level.
// Returns HandleMove for a hit inside the body, HandleNone for a miss.
func HitTest(displayRect geometry.Rect, p geometry.Point2D, grab float64) Handle {
	points := HandlePoints(displayRect)
	for _, h := range hitOrder {
		hp := points[h]
		if math.Abs(p.X-hp.X) <= grab && math.Abs(p.Y-hp.Y) <= grab {
			return h
		}
	}
	if displayRect.Contains(p) {
		return HandleMove
	}
	return HandleNone
}

// oppositeAnchor returns the point of the rectangle that stays fixed while
// the given handle is dragged: the diagonally opposite corner for corner
// handles, the opposite edge midpoint for edge handles.
func oppositeAnchor(h Handle, r geometry.Rect) geometry.Point2D {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	switch h {
	case HandleTopLeft:
		return geometry.Point2D{X: r.Right(), Y: r.Bottom()}
	case HandleTopRight:
		return geometry.Point2D{X: r.X, Y: r.Bottom()}
	case HandleBottomLeft:
		return geometry.Point2D{X: r.Right(), Y: r.Y}
	case HandleBottomRight:
		return geometry.Point2D{X: r.X, Y: r.Y}
	case HandleTop:
		return geometry.Point2D{X: cx, Y: r.Bottom()}
	case HandleBottom:
		return geometry.Point2D{X: cx, Y: r.Y}
	case HandleLeft:
		return geometry.Point2D{X: r.Right(), Y: cy}
	case HandleRight:
		return geometry.Point2D{X: r.X, Y: cy}
	}
	return geometry.Point2D{X: cx, Y: cy}
}
