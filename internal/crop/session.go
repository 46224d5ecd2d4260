// Package crop owns the crop rectangle state machine: defining an initial
// rectangle from a drag gesture, moving it, resizing it via 8 handles, and
// keeping it inside the image bounds with an optional aspect-ratio
// constraint.
//
// The session rectangle is always stored in content space so it stays
// correct under zoom and pan; callers convert pointer positions from display
// space before calling into the session, and convert the rectangle back for
// rendering and hit-testing.
package crop

import (
	"math"

	"tricolor/pkg/geometry"
)

// State identifies where the session is in its lifecycle.
type State int

const (
	StateInactive State = iota
	StateActive
	StateDefining
	StateDragging
	StateResizing
)

// MinSize is the smallest crop dimension, in content units. Resizes that
// would drive a dimension below this are clamped, never inverted.
const MinSize = 1.0

// Ratio is an aspect-ratio constraint expressed as W:H.
// The zero value means free (unconstrained).
type Ratio struct {
	W, H int
}

// Free reports whether the ratio is unconstrained.
func (r Ratio) Free() bool {
	return r.W <= 0 || r.H <= 0
}

// Value returns width/height, or 0 for a free ratio.
func (r Ratio) Value() float64 {
	if r.Free() {
		return 0
	}
	return float64(r.W) / float64(r.H)
}

// Session is the crop-mode state machine. All rectangle and pointer
// coordinates are content space. A Session is driven from the single UI
// event thread and needs no locking.
type Session struct {
	state   State
	bounds  geometry.Rect // content bounds of the loaded image
	rect    geometry.Rect
	defined bool
	ratio   Ratio

	activeHandle Handle
	dragAnchor   geometry.Point2D // last pointer position during an interaction
	fixedPoint   geometry.Point2D // anchor opposite the dragged handle
	original     geometry.Rect    // rect at interaction start
}

// NewSession creates an inactive session with a free ratio and no rectangle.
// These are the documented defaults shared by startup and reset.
func NewSession() *Session {
	return &Session{state: StateInactive}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Active reports whether crop mode is entered.
func (s *Session) Active() bool {
	return s.state != StateInactive
}

// Rect returns the current crop rectangle in content space.
// ok is false while no rectangle is defined.
func (s *Session) Rect() (geometry.Rect, bool) {
	return s.rect, s.defined
}

// Ratio returns the current aspect-ratio constraint.
func (s *Session) Ratio() Ratio {
	return s.ratio
}

// ActiveHandle returns the handle of an in-progress interaction, or
// HandleNone between interactions.
func (s *Session) ActiveHandle() Handle {
	return s.activeHandle
}

// SetBounds sets the content bounds of the loaded image. A defined
// rectangle is clipped to the new bounds; if nothing remains it is cleared.
func (s *Session) SetBounds(bounds geometry.Rect) {
	s.bounds = bounds
	if !s.defined {
		return
	}
	s.rect = s.rect.Intersect(bounds)
	if s.rect.Width < MinSize || s.rect.Height < MinSize {
		s.rect = geometry.Rect{}
		s.defined = false
	}
}

// Bounds returns the current content bounds.
func (s *Session) Bounds() geometry.Rect {
	return s.bounds
}

// Enter transitions Inactive -> Active with no rectangle. Entering an
// already-active session restarts it, discarding any rectangle.
func (s *Session) Enter() {
	s.state = StateActive
	s.rect = geometry.Rect{}
	s.defined = false
	s.clearInteraction()
}

// Exit transitions any state to Inactive, clearing the rectangle and
// resetting the ratio constraint to free. No residual state survives a
// re-enter.
func (s *Session) Exit() {
	s.state = StateInactive
	s.rect = geometry.Rect{}
	s.defined = false
	s.ratio = Ratio{}
	s.clearInteraction()
}

// SetRatio sets or clears (zero Ratio) the aspect-ratio constraint.
// A defined rectangle is re-fitted: the top-left corner is kept, the
// non-fitting dimension shrinks, and the result is scaled down if the
// bounds cannot hold it at the constrained ratio.
func (s *Session) SetRatio(ratio Ratio) {
	s.ratio = ratio
	if ratio.Free() || !s.defined {
		return
	}
	s.rect = fitToRatio(s.rect, ratio.Value(), s.bounds)
}

// BeginDefine starts defining the initial rectangle from a drag gesture.
// Valid from Active (with or without a rectangle); a new definition
// replaces any previous rectangle.
func (s *Session) BeginDefine(p geometry.Point2D) {
	if s.state == StateInactive {
		return
	}
	s.state = StateDefining
	s.dragAnchor = s.bounds.ClampPoint(p)
	s.rect = geometry.Rect{X: s.dragAnchor.X, Y: s.dragAnchor.Y}
	s.defined = false
}

// Begin starts a move or resize interaction on the defined rectangle.
// HandleMove transitions to Dragging; any resize handle transitions to
// Resizing, recording the anchor point opposite the handle.
func (s *Session) Begin(handle Handle, p geometry.Point2D) {
	if s.state != StateActive || !s.defined || handle == HandleNone {
		return
	}
	s.activeHandle = handle
	s.dragAnchor = p
	s.original = s.rect
	if handle == HandleMove {
		s.state = StateDragging
	} else {
		s.state = StateResizing
		s.fixedPoint = oppositeAnchor(handle, s.rect)
	}
}

// Update advances the in-progress interaction to the new pointer position.
// No-op outside Defining/Dragging/Resizing.
func (s *Session) Update(p geometry.Point2D) {
	switch s.state {
	case StateDefining:
		s.updateDefine(p)
	case StateDragging:
		s.updateDrag(p)
	case StateResizing:
		s.updateResize(p)
	}
}

// EndInteraction commits the last valid intermediate rectangle and returns
// to Active. It is safe to call from any state, including after an
// interrupted drag: interruption commits, it does not roll back.
func (s *Session) EndInteraction() {
	switch s.state {
	case StateDefining:
		s.endDefine()
	case StateDragging, StateResizing:
		s.state = StateActive
	}
	s.clearInteraction()
}

func (s *Session) clearInteraction() {
	s.activeHandle = HandleNone
	s.dragAnchor = geometry.Point2D{}
	s.fixedPoint = geometry.Point2D{}
	s.original = geometry.Rect{}
}

func (s *Session) updateDefine(p geometry.Point2D) {
	s.rect = geometry.RectFromCorners(s.dragAnchor, s.bounds.ClampPoint(p))
}

func (s *Session) endDefine() {
	s.state = StateActive
	if s.rect.Width < MinSize || s.rect.Height < MinSize {
		// Crop against degenerate content stays degenerate.
		s.rect = geometry.Rect{}
		s.defined = false
		return
	}
	s.defined = true
	if !s.ratio.Free() {
		s.rect = fitToRatio(s.rect, s.ratio.Value(), s.bounds)
	}
}

// updateDrag translates the rectangle by the pointer delta, clamped so it
// stays inside the bounds. Translation only: the size never changes.
func (s *Session) updateDrag(p geometry.Point2D) {
	delta := p.Sub(s.dragAnchor)
	s.dragAnchor = p
	s.rect = s.rect.Translate(delta.X, delta.Y).ClampTranslation(s.bounds)
}

func (s *Session) updateResize(p geometry.Point2D) {
	mouse := s.bounds.ClampPoint(p)
	if s.activeHandle.IsCorner() {
		s.rect = s.resizeCorner(mouse)
	} else if s.activeHandle.IsEdge() {
		s.rect = s.resizeEdge(mouse)
	}
}

// resizeCorner recomputes the rectangle between the fixed opposite corner
// and the clamped pointer. Under a ratio constraint the rectangle is the
// largest constrained rectangle fitting inside that span, still anchored at
// the fixed corner.
func (s *Session) resizeCorner(mouse geometry.Point2D) geometry.Rect {
	fixed := s.fixedPoint

	var mx, my float64
	switch s.activeHandle {
	case HandleTopLeft:
		mx = math.Min(mouse.X, fixed.X-MinSize)
		my = math.Min(mouse.Y, fixed.Y-MinSize)
	case HandleTopRight:
		mx = math.Max(mouse.X, fixed.X+MinSize)
		my = math.Min(mouse.Y, fixed.Y-MinSize)
	case HandleBottomLeft:
		mx = math.Min(mouse.X, fixed.X-MinSize)
		my = math.Max(mouse.Y, fixed.Y+MinSize)
	case HandleBottomRight:
		mx = math.Max(mouse.X, fixed.X+MinSize)
		my = math.Max(mouse.Y, fixed.Y+MinSize)
	}

	width := math.Abs(mx - fixed.X)
	height := math.Abs(my - fixed.Y)

	if !s.ratio.Free() {
		target := s.ratio.Value()
		if width/target > height {
			width = height * target
		} else {
			height = width / target
		}
	}

	r := geometry.Rect{Width: width, Height: height}
	// Position relative to the fixed corner.
	if mx < fixed.X {
		r.X = fixed.X - width
	} else {
		r.X = fixed.X
	}
	if my < fixed.Y {
		r.Y = fixed.Y - height
	} else {
		r.Y = fixed.Y
	}
	return r
}

// resizeEdge moves the single edge under the handle. With a free ratio the
// other three edges stay put. With a constrained ratio the driven dimension
// sets the other, centered on the original rectangle's center, with the
// driven dimension capped so the centered result stays inside the bounds.
func (s *Session) resizeEdge(mouse geometry.Point2D) geometry.Rect {
	if s.ratio.Free() {
		return s.resizeEdgeFree(mouse)
	}
	return s.resizeEdgeRatio(mouse)
}

func (s *Session) resizeEdgeFree(mouse geometry.Point2D) geometry.Rect {
	left := s.rect.X
	top := s.rect.Y
	right := s.rect.Right()
	bottom := s.rect.Bottom()

	switch s.activeHandle {
	case HandleLeft:
		left = math.Min(mouse.X, right-MinSize)
	case HandleRight:
		right = math.Max(mouse.X, left+MinSize)
	case HandleTop:
		top = math.Min(mouse.Y, bottom-MinSize)
	case HandleBottom:
		bottom = math.Max(mouse.Y, top+MinSize)
	}
	return geometry.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (s *Session) resizeEdgeRatio(mouse geometry.Point2D) geometry.Rect {
	target := s.ratio.Value()
	center := s.original.Center()

	switch s.activeHandle {
	case HandleLeft, HandleRight:
		var width float64
		var fixedX float64
		if s.activeHandle == HandleLeft {
			fixedX = s.original.Right()
			width = fixedX - math.Min(mouse.X, fixedX-MinSize)
		} else {
			fixedX = s.original.X
			width = math.Max(mouse.X, fixedX+MinSize) - fixedX
		}
		// Cap so the height, centered on the original center, fits.
		maxH := 2 * math.Min(center.Y-s.bounds.Y, s.bounds.Bottom()-center.Y)
		width = math.Min(width, maxH*target)
		width = math.Max(width, math.Max(MinSize, MinSize*target))
		height := width / target
		x := fixedX
		if s.activeHandle == HandleLeft {
			x = fixedX - width
		}
		return geometry.Rect{X: x, Y: center.Y - height/2, Width: width, Height: height}

	case HandleTop, HandleBottom:
		var height float64
		var fixedY float64
		if s.activeHandle == HandleTop {
			fixedY = s.original.Bottom()
			height = fixedY - math.Min(mouse.Y, fixedY-MinSize)
		} else {
			fixedY = s.original.Y
			height = math.Max(mouse.Y, fixedY+MinSize) - fixedY
		}
		maxW := 2 * math.Min(center.X-s.bounds.X, s.bounds.Right()-center.X)
		height = math.Min(height, maxW/target)
		height = math.Max(height, math.Max(MinSize, MinSize/target))
		width := height * target
		y := fixedY
		if s.activeHandle == HandleTop {
			y = fixedY - height
		}
		return geometry.Rect{X: center.X - width/2, Y: y, Width: width, Height: height}
	}
	return s.rect
}

// fitToRatio returns rect adjusted to the target width/height ratio: the
// top-left corner is kept and the non-fitting dimension shrinks. If the
// result cannot fit inside bounds at its position it is moved, then scaled
// down uniformly, so the ratio is preserved exactly.
func fitToRatio(rect geometry.Rect, target float64, bounds geometry.Rect) geometry.Rect {
	width := rect.Width
	height := width / target
	if height > rect.Height {
		height = rect.Height
		width = height * target
	}
	r := geometry.Rect{X: rect.X, Y: rect.Y, Width: width, Height: height}

	if bounds.Empty() {
		return r
	}
	if scale := math.Min(bounds.Width/r.Width, bounds.Height/r.Height); scale < 1 {
		r.Width *= scale
		r.Height *= scale
	}
	return r.ClampTranslation(bounds)
}
