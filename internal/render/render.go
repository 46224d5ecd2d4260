// Package render loads channel plates, composites them into preview images,
// and applies committed crops.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"tricolor/pkg/geometry"
)

// Channel indexes into the three color plates.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelGreen:
		return "Green"
	case ChannelBlue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// LoadChannel reads an image file and converts it to the grayscale plate
// used for one channel. EXIF orientation is honored.
func LoadChannel(path string) (*image.Gray, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load channel image %s: %w", path, err)
	}
	return toGray(imaging.Grayscale(img)), nil
}

// Combine merges up to three grayscale plates into a single RGB image. A nil
// plate contributes zero for its channel. The result spans the union of the
// plate bounds; plates smaller than the union read as zero outside their own
// bounds.
func Combine(plates [3]*image.Gray) *image.RGBA {
	bounds := unionBounds(plates)
	result := image.NewRGBA(bounds)
	if bounds.Empty() {
		return result
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			result.SetRGBA(x, y, color.RGBA{
				R: plateValue(plates[ChannelRed], x, y),
				G: plateValue(plates[ChannelGreen], x, y),
				B: plateValue(plates[ChannelBlue], x, y),
				A: 255,
			})
		}
	}
	return result
}

// Single renders one plate as a grayscale RGB image, for inspecting a
// channel in isolation.
func Single(plate *image.Gray) *image.RGBA {
	if plate == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	bounds := plate.Bounds()
	result := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := plate.GrayAt(x, y).Y
			result.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return result
}

// ApplyCrop crops every loaded plate to the given content-space rectangle.
// The rectangle is rounded to whole pixels and intersected with each plate's
// bounds; an error is returned when nothing remains.
func ApplyCrop(plates [3]*image.Gray, rect geometry.Rect) ([3]*image.Gray, error) {
	cropRect := image.Rect(
		int(rect.X+0.5), int(rect.Y+0.5),
		int(rect.Right()+0.5), int(rect.Bottom()+0.5),
	)
	if cropRect.Empty() {
		return plates, fmt.Errorf("invalid crop dimensions: %v", cropRect)
	}

	var out [3]*image.Gray
	for i, plate := range plates {
		if plate == nil {
			continue
		}
		r := cropRect.Intersect(plate.Bounds())
		if r.Empty() {
			return plates, fmt.Errorf("crop rectangle %v is outside channel %s bounds", cropRect, Channel(i))
		}
		out[i] = toGray(imaging.Crop(plate, r))
	}
	return out, nil
}

// Save encodes an image to the path, with the format inferred from the
// extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

func unionBounds(plates [3]*image.Gray) image.Rectangle {
	var bounds image.Rectangle
	for _, plate := range plates {
		if plate != nil {
			bounds = bounds.Union(plate.Bounds())
		}
	}
	return bounds
}

func plateValue(plate *image.Gray, x, y int) uint8 {
	if plate == nil || !image.Pt(x, y).In(plate.Bounds()) {
		return 0
	}
	return plate.GrayAt(x, y).Y
}
