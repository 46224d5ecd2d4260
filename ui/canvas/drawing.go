package canvas

import (
	"image"
	"image/color"

	"tricolor/internal/overlay"
	"tricolor/pkg/colorutil"
	"tricolor/pkg/geometry"
)

var (
	// dimColor darkens the area outside the crop rectangle.
	dimColor = colorutil.WithAlpha(colorutil.Black, 160)
	// frameColor is the crop rectangle border.
	frameColor = colorutil.WithAlpha(colorutil.White, 230)
	// handleColor fills the resize handle squares.
	handleColor = colorutil.White
	// handleBorderColor outlines the handles against light content.
	handleBorderColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

const dashLength = 6

// fillRect alpha-blends a solid color over a rectangular region.
func fillRect(output *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1, y1, x2, y2 := clipToOutput(output, r)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			blendPixel(output, x, y, col)
		}
	}
}

// drawSegment draws an axis-aligned grid segment with the given pixel width,
// centered on the segment position. The segment endpoints are already
// clipped, but expanding to the line width can spill past a narrow crop
// rectangle, so the filled area is intersected with clip when given.
func drawSegment(output *image.RGBA, seg overlay.Segment, width int, col color.RGBA, clip *geometry.Rect) {
	if width < 1 {
		width = 1
	}
	half := float64(width) / 2

	var r geometry.Rect
	if seg.A.X == seg.B.X { // vertical
		r = geometry.Rect{
			X:      seg.A.X - half,
			Y:      minf(seg.A.Y, seg.B.Y),
			Width:  float64(width),
			Height: absf(seg.B.Y - seg.A.Y),
		}
	} else {
		r = geometry.Rect{
			X:      minf(seg.A.X, seg.B.X),
			Y:      seg.A.Y - half,
			Width:  absf(seg.B.X - seg.A.X),
			Height: float64(width),
		}
	}
	if clip != nil {
		r = r.Intersect(*clip)
	}
	fillRect(output, r, col)
}

// drawDashedRect draws a 1px dashed rectangle outline.
func drawDashedRect(output *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1 := int(r.X)
	y1 := int(r.Y)
	x2 := int(r.Right())
	y2 := int(r.Bottom())

	for x := x1; x <= x2; x++ {
		if dashOn(x - x1) {
			blendPixelClipped(output, x, y1, col)
			blendPixelClipped(output, x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if dashOn(y - y1) {
			blendPixelClipped(output, x1, y, col)
			blendPixelClipped(output, x2, y, col)
		}
	}
}

// drawRectOutline draws a solid 1px rectangle outline.
func drawRectOutline(output *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1 := int(r.X)
	y1 := int(r.Y)
	x2 := int(r.Right())
	y2 := int(r.Bottom())

	for x := x1; x <= x2; x++ {
		blendPixelClipped(output, x, y1, col)
		blendPixelClipped(output, x, y2, col)
	}
	for y := y1; y <= y2; y++ {
		blendPixelClipped(output, x1, y, col)
		blendPixelClipped(output, x2, y, col)
	}
}

func dashOn(offset int) bool {
	return (offset/dashLength)%2 == 0
}

func blendPixel(output *image.RGBA, x, y int, col color.RGBA) {
	if col.A == 255 {
		output.SetRGBA(x, y, col)
		return
	}
	dst := output.RGBAAt(x, y)
	output.SetRGBA(x, y, colorutil.Blend(dst, col, col.A))
}

func blendPixelClipped(output *image.RGBA, x, y int, col color.RGBA) {
	b := output.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	blendPixel(output, x, y, col)
}

func clipToOutput(output *image.RGBA, r geometry.Rect) (x1, y1, x2, y2 int) {
	b := output.Bounds()
	x1 = int(r.X)
	y1 = int(r.Y)
	x2 = int(r.Right() + 0.5)
	y2 = int(r.Bottom() + 0.5)
	if x1 < b.Min.X {
		x1 = b.Min.X
	}
	if y1 < b.Min.Y {
		y1 = b.Min.Y
	}
	if x2 > b.Max.X {
		x2 = b.Max.X
	}
	if y2 > b.Max.Y {
		y2 = b.Max.Y
	}
	return
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
