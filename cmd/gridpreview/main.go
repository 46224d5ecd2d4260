// Command gridpreview overlays a composition grid onto an image file and
// writes the result, for checking grid placement without the GUI.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"

	"tricolor/internal/crop"
	"tricolor/internal/grid"
	"tricolor/internal/overlay"
	"tricolor/internal/render"
	"tricolor/internal/viewport"
	"tricolor/pkg/colorutil"
	"tricolor/pkg/geometry"
)

func main() {
	inPath := flag.String("in", "", "Input image (PNG, JPEG, TIFF, or BMP)")
	outPath := flag.String("out", "grid_preview.png", "Output image path")
	styleName := flag.String("style", "thirds", "Grid style: thirds, golden, or none")
	lineWidth := flag.Int("width", overlay.DefaultLineWidth, "Grid line width in pixels (1-10)")
	opacity := flag.Int("opacity", overlay.DefaultOpacity, "Grid line opacity (0-255)")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: gridpreview -in <path> [-out preview.png] [-style thirds|golden|none] [-width 4] [-opacity 128]")
		os.Exit(1)
	}

	var style grid.Style
	switch *styleName {
	case "thirds":
		style = grid.StyleRuleOfThirds
	case "golden":
		style = grid.StyleGoldenRatio
	case "none":
		style = grid.StyleNone
	default:
		fmt.Fprintf(os.Stderr, "Unknown style %q\n", *styleName)
		os.Exit(1)
	}

	src, err := imaging.Open(*inPath, imaging.AutoOrientation(true))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	bounds := src.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	output := image.NewRGBA(bounds)
	draw.Draw(output, bounds, src, bounds.Min, draw.Src)

	cfg := overlay.NewConfig()
	cfg.SetStyle(style)
	if !cfg.SetLineWidth(*lineWidth) {
		fmt.Fprintf(os.Stderr, "Line width %d out of range [%d,%d], using %d\n",
			*lineWidth, overlay.MinLineWidth, overlay.MaxLineWidth, cfg.LineWidth())
	}
	cfg.SetOpacity(*opacity)

	contentBounds := geometry.Rect{
		X:      float64(bounds.Min.X),
		Y:      float64(bounds.Min.Y),
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}
	// Identity transform: display space == content space for the full image.
	coord := overlay.NewCoordinator(cfg, viewport.New(), crop.NewSession())
	plan := coord.Plan(contentBounds.Width, contentBounds.Height, contentBounds)

	lineColor := cfg.LineColor()
	half := float64(cfg.LineWidth()) / 2
	for _, seg := range plan.GridSegments {
		var r geometry.Rect
		if seg.A.X == seg.B.X {
			r = geometry.Rect{X: seg.A.X - half, Y: seg.A.Y, Width: float64(cfg.LineWidth()), Height: seg.B.Y - seg.A.Y}
		} else {
			r = geometry.Rect{X: seg.A.X, Y: seg.A.Y - half, Width: seg.B.X - seg.A.X, Height: float64(cfg.LineWidth())}
		}
		for y := int(r.Y); y < int(r.Bottom()+0.5); y++ {
			for x := int(r.X); x < int(r.Right()+0.5); x++ {
				if !image.Pt(x, y).In(bounds) {
					continue
				}
				output.SetRGBA(x, y, colorutil.Blend(output.RGBAAt(x, y), lineColor, lineColor.A))
			}
		}
	}

	if err := render.Save(output, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%s grid, width %d, opacity %d)\n",
		*outPath, style, cfg.LineWidth(), cfg.Opacity())
}
