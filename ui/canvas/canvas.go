// Package canvas provides the preview canvas with pan, zoom, grid overlay,
// and crop interaction.
package canvas

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"tricolor/internal/app"
	"tricolor/internal/viewer"
	"tricolor/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// PreviewCanvas displays the channel composite with the overlay stack on
// top. All pointer events are offered to the engine first; unconsumed drags
// pan the view.
type PreviewCanvas struct {
	widget.BaseWidget

	state  *app.State
	engine *viewer.Engine

	raster *fynecanvas.Raster

	// Cached composite, rebuilt when the state changes.
	preview *image.RGBA

	// Interaction state
	dragging     bool
	dragConsumed bool
	lastDrag     fyne.Position

	onZoomChange func(zoom float64)
}

// NewPreviewCanvas creates a canvas bound to the application state and the
// interaction engine.
func NewPreviewCanvas(state *app.State, engine *viewer.Engine) *PreviewCanvas {
	pc := &PreviewCanvas{
		state:  state,
		engine: engine,
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels

	engine.OnInvalidate(func() {
		pc.raster.Refresh()
	})

	rebuild := func(interface{}) {
		pc.preview = nil
		engine.SetContentBounds(state.ContentBounds())
	}
	state.On(app.EventChannelLoaded, rebuild)
	state.On(app.EventDisplayChanged, rebuild)
	state.On(app.EventCropApplied, func(data interface{}) {
		rebuild(data)
		// Cropped plates rebase to the origin; refit so the remaining
		// material does not jump under the old pan and zoom.
		pc.FitToWindow()
	})

	pc.ExtendBaseWidget(pc)
	return pc
}

// Refresh re-renders the canvas.
func (pc *PreviewCanvas) Refresh() {
	pc.raster.Refresh()
	pc.BaseWidget.Refresh()
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PreviewCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// ZoomIn zooms in around the viewport center.
func (pc *PreviewCanvas) ZoomIn() {
	pc.zoomAtCenter(zoomStep)
}

// ZoomOut zooms out around the viewport center.
func (pc *PreviewCanvas) ZoomOut() {
	pc.zoomAtCenter(1 / zoomStep)
}

func (pc *PreviewCanvas) zoomAtCenter(factor float64) {
	size := pc.Size()
	pc.zoomAt(factor, geometry.Point2D{
		X: float64(size.Width) / 2,
		Y: float64(size.Height) / 2,
	})
}

func (pc *PreviewCanvas) zoomAt(factor float64, anchor geometry.Point2D) {
	target := pc.engine.Zoom() * factor
	if target < minZoom || target > maxZoom {
		return
	}
	if pc.engine.ZoomAt(factor, anchor) && pc.onZoomChange != nil {
		pc.onZoomChange(pc.engine.Zoom())
	}
}

// FitToWindow adjusts zoom and pan so the whole composite is visible.
func (pc *PreviewCanvas) FitToWindow() {
	bounds := pc.engine.ContentBounds()
	size := pc.Size()
	if bounds.Empty() || size.Width <= 0 || size.Height <= 0 {
		return
	}

	zoomX := float64(size.Width) / bounds.Width
	zoomY := float64(size.Height) / bounds.Height
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	zoom *= 0.95 // small margin
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}

	pc.engine.SetZoom(zoom)
	pc.engine.Transform().SetPan(
		(float64(size.Width)-bounds.Width*zoom)/2-bounds.X*zoom,
		(float64(size.Height)-bounds.Height*zoom)/2-bounds.Y*zoom,
	)
	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
	pc.Refresh()
}

// Scrolled zooms around the cursor with the mouse wheel.
func (pc *PreviewCanvas) Scrolled(ev *fyne.ScrollEvent) {
	anchor := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	if ev.Scrolled.DY > 0 {
		pc.zoomAt(zoomStep, anchor)
	} else if ev.Scrolled.DY < 0 {
		pc.zoomAt(1/zoomStep, anchor)
	}
}

// Dragged forwards drags to the crop engine; drags the engine does not
// consume pan the view.
func (pc *PreviewCanvas) Dragged(ev *fyne.DragEvent) {
	p := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	if !pc.dragging {
		pc.dragging = true
		pc.lastDrag = ev.Position
		// Offer the press at the drag origin, before this event's delta.
		start := geometry.Point2D{
			X: float64(ev.Position.X - ev.Dragged.DX),
			Y: float64(ev.Position.Y - ev.Dragged.DY),
		}
		pc.dragConsumed = pc.engine.PointerDown(start)
	}

	if pc.dragConsumed {
		pc.engine.PointerMove(p)
	} else {
		pc.engine.Pan(float64(ev.Position.X-pc.lastDrag.X), float64(ev.Position.Y-pc.lastDrag.Y))
	}
	pc.lastDrag = ev.Position
}

// DragEnd completes a crop interaction or pan.
func (pc *PreviewCanvas) DragEnd() {
	if pc.dragConsumed {
		pc.engine.PointerUp(geometry.Point2D{
			X: float64(pc.lastDrag.X),
			Y: float64(pc.lastDrag.Y),
		})
	}
	pc.dragging = false
	pc.dragConsumed = false
}

// draw is the raster drawing function: composite, then overlay plan in
// back-to-front order.
func (pc *PreviewCanvas) draw(w, h int) image.Image {
	pc.engine.SetViewportSize(float64(w), float64(h))

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	// Black opaque background
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}
	if w == 0 || h == 0 {
		return output
	}

	if pc.preview == nil {
		pc.preview = pc.state.Preview()
	}
	pc.drawComposite(output)

	plan := pc.engine.Plan()
	cfg := pc.engine.OverlayConfig()

	for _, r := range plan.DimRects {
		fillRect(output, r, dimColor)
	}
	lineColor := cfg.LineColor()
	for _, seg := range plan.GridSegments {
		drawSegment(output, seg, cfg.LineWidth(), lineColor, plan.CropFrame)
	}
	if plan.CropFrame != nil {
		drawDashedRect(output, *plan.CropFrame, frameColor)
	}
	for _, hr := range plan.Handles {
		fillRect(output, hr, handleColor)
		drawRectOutline(output, hr, handleBorderColor)
	}

	return output
}

// drawComposite scales the cached composite into the output at the current
// zoom and pan.
func (pc *PreviewCanvas) drawComposite(output *image.RGBA) {
	src := pc.preview
	if src == nil || src.Bounds().Empty() {
		return
	}

	srcBounds := src.Bounds()
	display := pc.engine.Transform().ToDisplayRect(geometry.Rect{
		X:      float64(srcBounds.Min.X),
		Y:      float64(srcBounds.Min.Y),
		Width:  float64(srcBounds.Dx()),
		Height: float64(srcBounds.Dy()),
	})
	dst := image.Rect(
		int(display.X), int(display.Y),
		int(display.Right()+0.5), int(display.Bottom()+0.5),
	)
	if dst.Empty() {
		return
	}

	scaler := xdraw.Scaler(xdraw.NearestNeighbor)
	if pc.engine.Zoom() < 1.0 {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(output, dst, src, srcBounds, xdraw.Over, nil)
}

// CreateRenderer implements fyne.Widget.
func (pc *PreviewCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &previewCanvasRenderer{canvas: pc}
}

type previewCanvasRenderer struct {
	canvas *PreviewCanvas
}

func (r *previewCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *previewCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *previewCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *previewCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *previewCanvasRenderer) Destroy() {}
