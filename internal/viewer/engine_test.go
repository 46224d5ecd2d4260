package viewer

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"tricolor/internal/crop"
	"tricolor/internal/grid"
	"tricolor/pkg/geometry"
)

const tol = 1e-9

func newTestEngine() *Engine {
	e := New()
	e.SetViewportSize(1000, 800)
	e.SetContentBounds(geometry.Rect{Width: 1000, Height: 800})
	return e
}

func rectsEqual(a, b geometry.Rect) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Width, b.Width, tol) &&
		scalar.EqualWithinAbs(a.Height, b.Height, tol)
}

func TestDefaults(t *testing.T) {
	e := New()
	if e.Zoom() != 1.0 {
		t.Errorf("default zoom = %v", e.Zoom())
	}
	if e.CropActive() {
		t.Error("crop active by default")
	}
	cfg := e.OverlayConfig()
	if cfg.Style() != grid.StyleRuleOfThirds || cfg.LineWidth() != 4 || cfg.Opacity() != 128 {
		t.Errorf("default config: style=%v width=%d opacity=%d", cfg.Style(), cfg.LineWidth(), cfg.Opacity())
	}
}

func TestInvalidateFiresOnMutation(t *testing.T) {
	e := newTestEngine()
	count := 0
	e.OnInvalidate(func() { count++ })

	e.SetZoom(2)
	e.Pan(10, 10)
	e.SetGridStyle(grid.StyleGoldenRatio)
	e.EnterCropMode()
	if count != 4 {
		t.Errorf("invalidate fired %d times, want 4", count)
	}

	// A rejected mutation must not request a repaint.
	count = 0
	if e.SetZoom(0) {
		t.Error("SetZoom(0) accepted")
	}
	if e.SetLineWidth(15) {
		t.Error("SetLineWidth(15) accepted")
	}
	if count != 0 {
		t.Errorf("invalidate fired %d times for rejected mutations", count)
	}
}

func TestLineWidthRejectionKeepsValue(t *testing.T) {
	e := newTestEngine()
	if !e.SetLineWidth(7) {
		t.Fatal("SetLineWidth(7) rejected")
	}
	if e.SetLineWidth(15) {
		t.Error("SetLineWidth(15) accepted")
	}
	if e.OverlayConfig().LineWidth() != 7 {
		t.Errorf("line width = %d, want 7", e.OverlayConfig().LineWidth())
	}
}

func TestPointerEventsDefineRect(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()

	if !e.PointerDown(geometry.Point2D{X: 100, Y: 100}) {
		t.Fatal("press in empty crop mode should start defining")
	}
	e.PointerMove(geometry.Point2D{X: 500, Y: 400})
	e.PointerUp(geometry.Point2D{X: 500, Y: 400})

	rect, ok := e.CurrentCropRect()
	want := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	if !ok || !rectsEqual(rect, want) {
		t.Errorf("rect = %v ok=%v, want %v", rect, ok, want)
	}
}

func TestPointerEventsMapThroughTransform(t *testing.T) {
	e := newTestEngine()
	e.SetZoom(2)
	e.EnterCropMode()

	// Display (200,200)-(600,500) maps to content (100,100)-(300,250).
	e.PointerDown(geometry.Point2D{X: 200, Y: 200})
	e.PointerMove(geometry.Point2D{X: 600, Y: 500})
	e.PointerUp(geometry.Point2D{X: 600, Y: 500})

	rect, ok := e.CurrentCropRect()
	want := geometry.Rect{X: 100, Y: 100, Width: 200, Height: 150}
	if !ok || !rectsEqual(rect, want) {
		t.Errorf("content rect = %v ok=%v, want %v", rect, ok, want)
	}
}

func TestPointerDownOutsideRectIsUnconsumed(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerMove(geometry.Point2D{X: 300, Y: 300})
	e.PointerUp(geometry.Point2D{X: 300, Y: 300})

	// Far from the rect and every handle: the host pans instead.
	if e.PointerDown(geometry.Point2D{X: 800, Y: 700}) {
		t.Error("press outside the rect should not be consumed")
	}
	if rect, ok := e.CurrentCropRect(); !ok || !rectsEqual(rect, geometry.Rect{X: 100, Y: 100, Width: 200, Height: 200}) {
		t.Errorf("unconsumed press disturbed the rect: %v ok=%v", rect, ok)
	}
}

func TestPointerDownInactiveIsUnconsumed(t *testing.T) {
	e := newTestEngine()
	if e.PointerDown(geometry.Point2D{X: 100, Y: 100}) {
		t.Error("press outside crop mode should not be consumed")
	}
	if e.PointerMove(geometry.Point2D{X: 200, Y: 200}) {
		t.Error("move outside crop mode should not be consumed")
	}
}

func TestDragRectByBody(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerUp(geometry.Point2D{X: 300, Y: 300})

	if !e.PointerDown(geometry.Point2D{X: 200, Y: 200}) {
		t.Fatal("press on the body should start a drag")
	}
	e.PointerMove(geometry.Point2D{X: 250, Y: 220})
	e.PointerUp(geometry.Point2D{X: 250, Y: 220})

	rect, _ := e.CurrentCropRect()
	want := geometry.Rect{X: 150, Y: 120, Width: 200, Height: 200}
	if !rectsEqual(rect, want) {
		t.Errorf("rect = %v, want %v", rect, want)
	}
}

func TestResizeByCornerHandle(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerUp(geometry.Point2D{X: 500, Y: 400})

	if !e.PointerDown(geometry.Point2D{X: 500, Y: 400}) {
		t.Fatal("press on the bottom-right handle should start a resize")
	}
	e.PointerMove(geometry.Point2D{X: 600, Y: 500})
	e.PointerUp(geometry.Point2D{X: 600, Y: 500})

	rect, _ := e.CurrentCropRect()
	want := geometry.Rect{X: 100, Y: 100, Width: 500, Height: 400}
	if !rectsEqual(rect, want) {
		t.Errorf("rect = %v, want %v", rect, want)
	}
}

// Handle grab stays a fixed display-pixel radius, so at high zoom a press
// a few pixels away from the drawn handle still grabs it.
func TestHandleGrabIsDisplaySpace(t *testing.T) {
	e := newTestEngine()
	e.SetZoom(4)
	e.EnterCropMode()
	// Content rect (50,50)-(150,150), display (200,200)-(600,600).
	e.PointerDown(geometry.Point2D{X: 200, Y: 200})
	e.PointerUp(geometry.Point2D{X: 600, Y: 600})

	if got := e.HitTest(geometry.Point2D{X: 608, Y: 606}); got != crop.HandleBottomRight {
		t.Errorf("HitTest near the corner = %v, want bottom-right", got)
	}
	if got := e.HitTest(geometry.Point2D{X: 615, Y: 600}); got != crop.HandleNone {
		t.Errorf("HitTest past the grab radius = %v, want none", got)
	}
}

func TestRatioConstraintViaEngine(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 0, Y: 0})
	e.PointerUp(geometry.Point2D{X: 400, Y: 300})

	e.SetCropRatio(1, 1)
	rect, _ := e.CurrentCropRect()
	want := geometry.Rect{X: 0, Y: 0, Width: 300, Height: 300}
	if !rectsEqual(rect, want) {
		t.Errorf("rect after 1:1 = %v, want %v", rect, want)
	}

	e.SetCropRatio(0, 0)
	rect2, _ := e.CurrentCropRect()
	if !rectsEqual(rect2, rect) {
		t.Errorf("clearing the ratio moved the rect: %v", rect2)
	}
}

func TestConfirmCrop(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()

	if _, ok := e.ConfirmCrop(); ok {
		t.Error("confirm with no rect should fail")
	}
	if !e.CropActive() {
		t.Error("failed confirm should not exit crop mode")
	}

	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerUp(geometry.Point2D{X: 500, Y: 400})

	rect, ok := e.ConfirmCrop()
	want := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	if !ok || !rectsEqual(rect, want) {
		t.Errorf("confirmed rect = %v ok=%v, want %v", rect, ok, want)
	}
	if e.CropActive() {
		t.Error("confirm should exit crop mode")
	}
}

func TestExitClearsEverything(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()
	e.SetCropRatio(16, 9)
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerUp(geometry.Point2D{X: 500, Y: 400})

	e.ExitCropMode()
	e.EnterCropMode()
	if _, ok := e.CurrentCropRect(); ok {
		t.Error("rect survived exit and re-enter")
	}
}

func TestInterruptCommitsIntermediate(t *testing.T) {
	e := newTestEngine()
	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerUp(geometry.Point2D{X: 300, Y: 300})

	e.PointerDown(geometry.Point2D{X: 200, Y: 200})
	e.PointerMove(geometry.Point2D{X: 260, Y: 200})
	e.InterruptInteraction()

	rect, _ := e.CurrentCropRect()
	want := geometry.Rect{X: 160, Y: 100, Width: 200, Height: 200}
	if !rectsEqual(rect, want) {
		t.Errorf("rect = %v, want %v (commit, not rollback)", rect, want)
	}
}

func TestEmptyContentStaysDegenerate(t *testing.T) {
	e := New()
	e.SetViewportSize(1000, 800)
	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerMove(geometry.Point2D{X: 400, Y: 400})
	e.PointerUp(geometry.Point2D{X: 400, Y: 400})
	if _, ok := e.CurrentCropRect(); ok {
		t.Error("crop against empty content produced a rect")
	}
}

func TestPlanModeSwitch(t *testing.T) {
	e := newTestEngine()
	plan := e.Plan()
	if plan.CropFrame != nil || len(plan.GridSegments) != 4 {
		t.Errorf("normal plan: frame=%v segments=%d", plan.CropFrame, len(plan.GridSegments))
	}

	e.EnterCropMode()
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerUp(geometry.Point2D{X: 500, Y: 400})
	plan = e.Plan()
	if plan.CropFrame == nil || len(plan.Handles) != 8 || len(plan.DimRects) == 0 {
		t.Error("crop plan missing frame, handles, or dim surround")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	e := newTestEngine()
	e.SetZoom(3)
	e.Pan(100, 50)
	e.SetGridStyle(grid.StyleGoldenRatio)
	e.SetLineWidth(8)
	e.SetOpacity(255)
	e.EnterCropMode()
	e.SetCropRatio(4, 3)
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerMove(geometry.Point2D{X: 300, Y: 300})
	// Still mid-drag: Reset must end the interaction first.
	e.Reset()

	if e.Zoom() != 1.0 {
		t.Errorf("zoom = %v", e.Zoom())
	}
	if e.Transform().PanOffset() != (geometry.Point2D{}) {
		t.Errorf("pan = %v", e.Transform().PanOffset())
	}
	if e.CropActive() {
		t.Error("crop still active")
	}
	cfg := e.OverlayConfig()
	if cfg.Style() != grid.StyleRuleOfThirds || cfg.LineWidth() != 4 || cfg.Opacity() != 128 {
		t.Errorf("config not at defaults: style=%v width=%d opacity=%d", cfg.Style(), cfg.LineWidth(), cfg.Opacity())
	}

	// Idempotent.
	e.Reset()
	if e.Zoom() != 1.0 || e.CropActive() {
		t.Error("second reset changed state")
	}
}
