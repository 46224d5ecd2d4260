// Package viewport maps between content space (image pixels) and display
// space (viewport pixels) for the image canvas.
package viewport

import (
	"tricolor/pkg/geometry"
)

// Transform holds the current zoom factor and pan offset.
// Content and display coordinates are related by
//
//	display = content*zoom + pan
//
// The zero pan / zoom 1 transform is the identity. Zoom is always > 0.
type Transform struct {
	zoom float64
	pan  geometry.Point2D
}

// New creates an identity transform (zoom 1, pan (0,0)).
// The same values are used by Reset, so startup and reset cannot drift.
func New() *Transform {
	return &Transform{zoom: 1.0}
}

// Zoom returns the current zoom factor.
func (t *Transform) Zoom() float64 {
	return t.zoom
}

// PanOffset returns the current pan offset in display pixels.
func (t *Transform) PanOffset() geometry.Point2D {
	return t.pan
}

// SetZoom sets the zoom factor, keeping the pan offset unchanged.
// A factor <= 0 is rejected as a no-op and false is returned; bounds policy
// beyond that is the caller's concern.
func (t *Transform) SetZoom(factor float64) bool {
	if factor <= 0 {
		return false
	}
	t.zoom = factor
	return true
}

// ZoomAt multiplies the zoom by factor while keeping the given display-space
// anchor point (typically the cursor) over the same content point.
// Returns false and leaves the transform unchanged if the resulting zoom
// would not be positive.
func (t *Transform) ZoomAt(factor float64, anchor geometry.Point2D) bool {
	newZoom := t.zoom * factor
	if newZoom <= 0 {
		return false
	}
	// The content point under the anchor must stay under the anchor:
	// anchor = c*z' + pan'  with  c = (anchor-pan)/z
	scale := newZoom / t.zoom
	t.pan = geometry.Point2D{
		X: anchor.X - (anchor.X-t.pan.X)*scale,
		Y: anchor.Y - (anchor.Y-t.pan.Y)*scale,
	}
	t.zoom = newZoom
	return true
}

// Pan translates the view by (dx, dy) display pixels.
func (t *Transform) Pan(dx, dy float64) {
	t.pan.X += dx
	t.pan.Y += dy
}

// SetPan sets the pan offset directly in display pixels.
func (t *Transform) SetPan(x, y float64) {
	t.pan = geometry.Point2D{X: x, Y: y}
}

// Reset restores the identity transform (zoom 1, pan (0,0)).
func (t *Transform) Reset() {
	*t = *New()
}

// ToDisplayPoint converts a content-space point to display space.
func (t *Transform) ToDisplayPoint(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*t.zoom + t.pan.X,
		Y: p.Y*t.zoom + t.pan.Y,
	}
}

// ToContentPoint converts a display-space point to content space.
func (t *Transform) ToContentPoint(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - t.pan.X) / t.zoom,
		Y: (p.Y - t.pan.Y) / t.zoom,
	}
}

// ToDisplayRect converts a content-space rectangle to display space.
func (t *Transform) ToDisplayRect(r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      r.X*t.zoom + t.pan.X,
		Y:      r.Y*t.zoom + t.pan.Y,
		Width:  r.Width * t.zoom,
		Height: r.Height * t.zoom,
	}
}

// ToContentRect converts a display-space rectangle to content space.
func (t *Transform) ToContentRect(r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      (r.X - t.pan.X) / t.zoom,
		Y:      (r.Y - t.pan.Y) / t.zoom,
		Width:  r.Width / t.zoom,
		Height: r.Height / t.zoom,
	}
}

// VisibleContentRect returns the content-space rectangle currently visible
// in a viewport of the given pixel size. Callers must recompute it after
// every zoom or pan change.
func (t *Transform) VisibleContentRect(viewW, viewH float64) geometry.Rect {
	return t.ToContentRect(geometry.Rect{Width: viewW, Height: viewH})
}
