package panels

import (
	"image"
	"testing"

	"tricolor/internal/app"
	"tricolor/internal/render"
	"tricolor/internal/viewer"
	"tricolor/pkg/geometry"

	"fyne.io/fyne/v2/test"
)

// A failed apply must leave crop mode and the rectangle in place so the user
// can adjust and retry; only a successful apply exits.
func TestApplyCropFailureKeepsSession(t *testing.T) {
	_ = test.NewApp()

	state := app.NewState()
	state.Plates[render.ChannelRed] = image.NewGray(image.Rect(0, 0, 100, 80))

	engine := viewer.New()
	engine.SetViewportSize(200, 160)
	// Bounds wider than the plate, so a rectangle can be placed where the
	// plate has no pixels.
	engine.SetContentBounds(geometry.Rect{Width: 200, Height: 160})

	panel := NewCropPanel(state, engine)
	panel.enterCropMode()
	if !engine.CropActive() {
		t.Fatal("crop mode not entered")
	}

	engine.PointerDown(geometry.Point2D{X: 150, Y: 100})
	engine.PointerUp(geometry.Point2D{X: 190, Y: 140})

	panel.applyCrop()
	if !engine.CropActive() {
		t.Fatal("failed apply exited crop mode")
	}
	rect, ok := engine.CurrentCropRect()
	if !ok || rect != (geometry.Rect{X: 150, Y: 100, Width: 40, Height: 40}) {
		t.Fatalf("failed apply disturbed the rectangle: %v ok=%v", rect, ok)
	}

	// Drag the rectangle over the plate and retry.
	engine.PointerDown(geometry.Point2D{X: 170, Y: 120})
	engine.PointerUp(geometry.Point2D{X: 40, Y: 40})

	panel.applyCrop()
	if engine.CropActive() {
		t.Error("successful apply should exit crop mode")
	}
	b := state.Plates[render.ChannelRed].Bounds()
	if b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("plate after crop = %v, want 40x40", b)
	}
}

func TestApplyCropWithoutRect(t *testing.T) {
	_ = test.NewApp()

	state := app.NewState()
	state.Plates[render.ChannelRed] = image.NewGray(image.Rect(0, 0, 100, 80))

	engine := viewer.New()
	engine.SetViewportSize(100, 80)
	engine.SetContentBounds(state.ContentBounds())

	panel := NewCropPanel(state, engine)
	panel.enterCropMode()
	panel.applyCrop()

	if !engine.CropActive() {
		t.Error("apply with no rectangle should stay in crop mode")
	}
}
