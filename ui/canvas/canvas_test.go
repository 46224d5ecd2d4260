package canvas

import (
	"image"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"tricolor/internal/app"
	"tricolor/internal/render"
	"tricolor/internal/viewer"
	"tricolor/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

const tol = 1e-6

// Applying a crop rebases the plates to the origin, so the canvas must refit
// the view instead of keeping the old pan and zoom.
func TestCropAppliedRefitsView(t *testing.T) {
	_ = test.NewApp()

	state := app.NewState()
	state.Plates[render.ChannelRed] = image.NewGray(image.Rect(0, 0, 400, 300))

	engine := viewer.New()
	pc := NewPreviewCanvas(state, engine)
	pc.Resize(fyne.NewSize(200, 150))

	engine.SetContentBounds(state.ContentBounds())
	engine.SetZoom(2)
	engine.Pan(50, 40)

	if err := state.ApplyCrop(geometry.Rect{X: 100, Y: 100, Width: 200, Height: 150}); err != nil {
		t.Fatalf("ApplyCrop: %v", err)
	}

	// Content bounds now follow the rebased plates.
	if got := engine.ContentBounds(); got != (geometry.Rect{Width: 200, Height: 150}) {
		t.Fatalf("content bounds after crop = %v", got)
	}

	// The view was refit: 200x150 content in a 200x150 canvas with the fit
	// margin, centered.
	if !scalar.EqualWithinAbs(engine.Zoom(), 0.95, tol) {
		t.Errorf("zoom after crop = %v, want 0.95", engine.Zoom())
	}
	pan := engine.Transform().PanOffset()
	if !scalar.EqualWithinAbs(pan.X, 5, tol) || !scalar.EqualWithinAbs(pan.Y, 3.75, tol) {
		t.Errorf("pan after crop = %v, want (5, 3.75)", pan)
	}

	// The cropped material's origin sits where the fit put it, not under the
	// pre-crop transform.
	origin := engine.Transform().ToDisplayPoint(geometry.Point2D{})
	if !scalar.EqualWithinAbs(origin.X, pan.X, tol) || !scalar.EqualWithinAbs(origin.Y, pan.Y, tol) {
		t.Errorf("content origin displayed at %v", origin)
	}
}
