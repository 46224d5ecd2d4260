// Package viewer ties the viewport transform, the crop session, and the
// overlay coordinator into the single engine surface the host UI talks to.
//
// All methods are driven from the UI event thread, in event order; the
// engine never blocks and holds no locks. Every state mutation is followed
// by an invalidate callback so both render paths observe the new state
// before the next paint.
package viewer

import (
	"tricolor/internal/crop"
	"tricolor/internal/grid"
	"tricolor/internal/overlay"
	"tricolor/internal/viewport"
	"tricolor/pkg/geometry"
)

// HandleGrabPx is the handle grab radius in display pixels. It is fixed
// regardless of zoom so handles remain easy to grab at any zoom level.
const HandleGrabPx = 10.0

// Engine is the viewport overlay and crop interaction engine.
type Engine struct {
	view    *viewport.Transform
	session *crop.Session
	cfg     *overlay.Config
	coord   *overlay.Coordinator

	contentBounds geometry.Rect
	viewW, viewH  float64

	onInvalidate func()
}

// New creates an engine in its documented default state: identity
// transform, rule-of-thirds grid at width 4 / opacity 128, crop inactive.
func New() *Engine {
	view := viewport.New()
	session := crop.NewSession()
	cfg := overlay.NewConfig()
	return &Engine{
		view:    view,
		session: session,
		cfg:     cfg,
		coord:   overlay.NewCoordinator(cfg, view, session),
	}
}

// OnInvalidate registers the host repaint request callback.
func (e *Engine) OnInvalidate(fn func()) {
	e.onInvalidate = fn
}

func (e *Engine) invalidate() {
	if e.onInvalidate != nil {
		e.onInvalidate()
	}
}

// SetViewportSize informs the engine of the current viewport pixel size.
func (e *Engine) SetViewportSize(w, h float64) {
	e.viewW, e.viewH = w, h
	e.invalidate()
}

// SetContentBounds sets the content-space bounding rectangle of the loaded
// image. An empty rectangle means no content; crop interactions against it
// stay degenerate.
func (e *Engine) SetContentBounds(bounds geometry.Rect) {
	e.contentBounds = bounds
	e.session.SetBounds(bounds)
	e.invalidate()
}

// ContentBounds returns the current content bounds.
func (e *Engine) ContentBounds() geometry.Rect {
	return e.contentBounds
}

// Transform returns the viewport transform for coordinate conversion.
func (e *Engine) Transform() *viewport.Transform {
	return e.view
}

// Zoom returns the current zoom factor.
func (e *Engine) Zoom() float64 {
	return e.view.Zoom()
}

// SetZoom sets the zoom factor. Factors <= 0 are rejected as a no-op.
func (e *Engine) SetZoom(factor float64) bool {
	if !e.view.SetZoom(factor) {
		return false
	}
	e.invalidate()
	return true
}

// ZoomAt zooms by factor keeping the display-space anchor point fixed.
func (e *Engine) ZoomAt(factor float64, anchor geometry.Point2D) bool {
	if !e.view.ZoomAt(factor, anchor) {
		return false
	}
	e.invalidate()
	return true
}

// Pan translates the view by (dx, dy) display pixels.
func (e *Engine) Pan(dx, dy float64) {
	e.view.Pan(dx, dy)
	e.invalidate()
}

// OverlayConfig returns the single shared overlay configuration. Both the
// normal-mode and crop-mode render paths read this same instance.
func (e *Engine) OverlayConfig() *overlay.Config {
	return e.cfg
}

// SetGridStyle sets the grid style and requests a repaint.
func (e *Engine) SetGridStyle(style grid.Style) {
	e.cfg.SetStyle(style)
	e.invalidate()
}

// SetLineWidth sets the grid line width. Out-of-range values are rejected
// and the previous valid value kept.
func (e *Engine) SetLineWidth(px int) bool {
	if !e.cfg.SetLineWidth(px) {
		return false
	}
	e.invalidate()
	return true
}

// SetOpacity sets the grid line opacity (clamped to 0-255).
func (e *Engine) SetOpacity(opacity int) {
	e.cfg.SetOpacity(opacity)
	e.invalidate()
}

// EnterCropMode activates the crop session with no rectangle.
func (e *Engine) EnterCropMode() {
	e.session.Enter()
	e.invalidate()
}

// ExitCropMode deactivates the crop session, discarding the rectangle and
// resetting the ratio constraint to free.
func (e *Engine) ExitCropMode() {
	e.session.Exit()
	e.invalidate()
}

// CropActive reports whether crop mode is entered.
func (e *Engine) CropActive() bool {
	return e.session.Active()
}

// SetCropRatio sets the aspect-ratio constraint (w:h); w or h <= 0 means
// free. A defined rectangle is re-fitted immediately.
func (e *Engine) SetCropRatio(w, h int) {
	e.session.SetRatio(crop.Ratio{W: w, H: h})
	e.invalidate()
}

// CurrentCropRect returns the crop rectangle in content space; ok is false
// while none is defined.
func (e *Engine) CurrentCropRect() (geometry.Rect, bool) {
	return e.session.Rect()
}

// ConfirmCrop commits and returns the current crop rectangle, then exits
// crop mode. ok is false (and nothing changes) when no rectangle is
// defined.
func (e *Engine) ConfirmCrop() (geometry.Rect, bool) {
	rect, ok := e.session.Rect()
	if !ok {
		return geometry.Rect{}, false
	}
	e.session.Exit()
	e.invalidate()
	return rect, true
}

// PointerDown handles a pointer press at display coordinates. Returns true
// when the crop session consumed the event; otherwise the host may use it
// for panning.
func (e *Engine) PointerDown(p geometry.Point2D) bool {
	if !e.session.Active() {
		return false
	}
	content := e.view.ToContentPoint(p)
	if rect, ok := e.session.Rect(); ok {
		handle := crop.HitTest(e.view.ToDisplayRect(rect), p, HandleGrabPx)
		if handle == crop.HandleNone {
			return false
		}
		e.session.Begin(handle, content)
		e.invalidate()
		return true
	}
	e.session.BeginDefine(content)
	e.invalidate()
	return true
}

// PointerMove advances an in-progress define, drag, or resize.
func (e *Engine) PointerMove(p geometry.Point2D) bool {
	switch e.session.State() {
	case crop.StateDefining, crop.StateDragging, crop.StateResizing:
		e.session.Update(e.view.ToContentPoint(p))
		e.invalidate()
		return true
	}
	return false
}

// PointerUp ends an in-progress interaction, committing the last valid
// intermediate rectangle.
func (e *Engine) PointerUp(p geometry.Point2D) bool {
	switch e.session.State() {
	case crop.StateDefining, crop.StateDragging, crop.StateResizing:
		e.session.Update(e.view.ToContentPoint(p))
		e.session.EndInteraction()
		e.invalidate()
		return true
	}
	return false
}

// InterruptInteraction handles a lost pointer (focus loss, pointer released
// outside the window): the last valid intermediate state is committed, not
// rolled back.
func (e *Engine) InterruptInteraction() {
	e.session.EndInteraction()
	e.invalidate()
}

// Plan computes the overlay render plan for the current state.
func (e *Engine) Plan() overlay.Plan {
	return e.coord.Plan(e.viewW, e.viewH, e.contentBounds)
}

// HitTest returns the crop handle under a display-space point, for hover
// cursor feedback. HandleNone outside crop mode or with no rectangle.
func (e *Engine) HitTest(p geometry.Point2D) crop.Handle {
	rect, ok := e.session.Rect()
	if !e.session.Active() || !ok {
		return crop.HandleNone
	}
	return crop.HitTest(e.view.ToDisplayRect(rect), p, HandleGrabPx)
}

// Reset restores the engine to the documented defaults used at startup:
// identity transform, default overlay config, inactive crop session. A
// reset mid-drag first performs end-of-interaction cleanup; Reset is
// idempotent and never fails.
func (e *Engine) Reset() {
	e.session.EndInteraction()
	e.session.Exit()
	e.view.Reset()
	e.cfg.Reset()
	e.invalidate()
}
