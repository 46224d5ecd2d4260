package overlay

import (
	"tricolor/internal/crop"
	"tricolor/internal/grid"
	"tricolor/internal/viewport"
	"tricolor/pkg/geometry"
)

// HandleSizePx is the drawn size of a resize handle square, in display
// pixels, independent of zoom.
const HandleSizePx = 8.0

// Segment is an axis-aligned grid line piece in display space.
type Segment struct {
	A, B geometry.Point2D
}

// Plan is everything the canvas needs to paint one frame of overlays, in
// mandatory back-to-front order: base image (drawn by the canvas itself),
// dim surround, grid lines, crop frame, resize handles. Handles come last
// so they are topmost for hit-testing feedback.
type Plan struct {
	// DimRects covers the area outside the crop rectangle (crop mode only).
	DimRects []geometry.Rect
	// GridSegments are clipped grid lines in display space.
	GridSegments []Segment
	// CropFrame is the crop rectangle border in display space, nil outside
	// crop mode.
	CropFrame *geometry.Rect
	// Handles are the 8 resize handle squares in display space, present
	// only for a committed crop rectangle.
	Handles []geometry.Rect
}

// Coordinator selects, per repaint, which rectangle feeds the grid
// computation and in which space to draw: the visible content area in
// normal mode, the crop rectangle (with clipping) in crop mode. Both modes
// run through the same Plan path so they cannot diverge in behavior.
type Coordinator struct {
	cfg     *Config
	view    *viewport.Transform
	session *crop.Session
}

// NewCoordinator wires the coordinator to the shared config, the viewport
// transform, and the crop session. The config pointer is shared, never
// copied per consumer.
func NewCoordinator(cfg *Config, view *viewport.Transform, session *crop.Session) *Coordinator {
	return &Coordinator{cfg: cfg, view: view, session: session}
}

// Config returns the shared overlay configuration.
func (c *Coordinator) Config() *Config {
	return c.cfg
}

// Plan computes the overlay plan for a viewport of the given pixel size
// displaying content with the given content-space bounds.
func (c *Coordinator) Plan(viewW, viewH float64, contentBounds geometry.Rect) Plan {
	if c.session.Active() {
		return c.planCropMode(viewW, viewH)
	}
	return c.planNormalMode(viewW, viewH, contentBounds)
}

// planNormalMode draws the grid across the visible part of the content.
func (c *Coordinator) planNormalMode(viewW, viewH float64, contentBounds geometry.Rect) Plan {
	visible := c.view.VisibleContentRect(viewW, viewH)
	feed := visible
	if !contentBounds.Empty() {
		feed = visible.Intersect(contentBounds)
	}
	if feed.Empty() {
		return Plan{}
	}
	display := c.view.ToDisplayRect(feed)
	return Plan{GridSegments: c.gridSegments(display)}
}

// planCropMode draws the dimmed surround, the crop-local grid clipped to
// the crop rectangle, the frame, and the handles.
func (c *Coordinator) planCropMode(viewW, viewH float64) Plan {
	rect, defined := c.session.Rect()
	if !defined && c.session.State() != crop.StateDefining {
		return Plan{}
	}
	display := c.view.ToDisplayRect(rect)

	plan := Plan{
		DimRects:  dimRects(geometry.Rect{Width: viewW, Height: viewH}, display),
		CropFrame: &display,
	}
	if !defined {
		// Rubber-band in progress: frame only, no grid or handles yet.
		return plan
	}

	// No grid pixel may land outside the crop rectangle.
	for _, seg := range c.gridSegments(display) {
		if s, ok := clipSegment(seg, display); ok {
			plan.GridSegments = append(plan.GridSegments, s)
		}
	}
	for _, p := range crop.HandlePoints(display) {
		plan.Handles = append(plan.Handles, geometry.Rect{
			X:      p.X - HandleSizePx/2,
			Y:      p.Y - HandleSizePx/2,
			Width:  HandleSizePx,
			Height: HandleSizePx,
		})
	}
	return plan
}

// gridSegments expands the grid line positions for a display-space
// rectangle into four drawable segments spanning the rectangle.
func (c *Coordinator) gridSegments(display geometry.Rect) []Segment {
	lines, ok := grid.Compute(display, c.cfg.Style())
	if !ok {
		return nil
	}
	return []Segment{
		{A: geometry.Point2D{X: lines.Vertical[0], Y: display.Y}, B: geometry.Point2D{X: lines.Vertical[0], Y: display.Bottom()}},
		{A: geometry.Point2D{X: lines.Vertical[1], Y: display.Y}, B: geometry.Point2D{X: lines.Vertical[1], Y: display.Bottom()}},
		{A: geometry.Point2D{X: display.X, Y: lines.Horizontal[0]}, B: geometry.Point2D{X: display.Right(), Y: lines.Horizontal[0]}},
		{A: geometry.Point2D{X: display.X, Y: lines.Horizontal[1]}, B: geometry.Point2D{X: display.Right(), Y: lines.Horizontal[1]}},
	}
}

// clipSegment clips an axis-aligned segment to a rectangle. ok is false
// when nothing remains. Zero-length results are kept; renderers tolerate
// zero-length lines.
func clipSegment(s Segment, clip geometry.Rect) (Segment, bool) {
	if s.A.X == s.B.X { // vertical
		if s.A.X < clip.X || s.A.X > clip.Right() {
			return Segment{}, false
		}
		y1 := maxF(minF(s.A.Y, s.B.Y), clip.Y)
		y2 := minF(maxF(s.A.Y, s.B.Y), clip.Bottom())
		if y2 < y1 {
			return Segment{}, false
		}
		return Segment{A: geometry.Point2D{X: s.A.X, Y: y1}, B: geometry.Point2D{X: s.A.X, Y: y2}}, true
	}
	// horizontal
	if s.A.Y < clip.Y || s.A.Y > clip.Bottom() {
		return Segment{}, false
	}
	x1 := maxF(minF(s.A.X, s.B.X), clip.X)
	x2 := minF(maxF(s.A.X, s.B.X), clip.Right())
	if x2 < x1 {
		return Segment{}, false
	}
	return Segment{A: geometry.Point2D{X: x1, Y: s.A.Y}, B: geometry.Point2D{X: x2, Y: s.A.Y}}, true
}

// dimRects returns up to four rectangles covering the viewport area outside
// the crop rectangle.
func dimRects(view, cropRect geometry.Rect) []geometry.Rect {
	inner := view.Intersect(cropRect)
	if inner.Empty() {
		return []geometry.Rect{view}
	}
	var rects []geometry.Rect
	if inner.X > view.X {
		rects = append(rects, geometry.Rect{X: view.X, Y: view.Y, Width: inner.X - view.X, Height: view.Height})
	}
	if inner.Right() < view.Right() {
		rects = append(rects, geometry.Rect{X: inner.Right(), Y: view.Y, Width: view.Right() - inner.Right(), Height: view.Height})
	}
	if inner.Y > view.Y {
		rects = append(rects, geometry.Rect{X: inner.X, Y: view.Y, Width: inner.Width, Height: inner.Y - view.Y})
	}
	if inner.Bottom() < view.Bottom() {
		rects = append(rects, geometry.Rect{X: inner.X, Y: inner.Bottom(), Width: inner.Width, Height: view.Bottom() - inner.Bottom()})
	}
	return rects
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
