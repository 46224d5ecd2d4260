// Package colorutil provides shared color utilities for the viewer.
package colorutil

import (
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Blend mixes src over dst with the given opacity (0 = dst, 255 = src).
func Blend(dst, src color.RGBA, opacity uint8) color.RGBA {
	a := float64(opacity) / 255.0
	inv := 1 - a
	return color.RGBA{
		R: uint8(float64(src.R)*a + float64(dst.R)*inv),
		G: uint8(float64(src.G)*a + float64(dst.G)*inv),
		B: uint8(float64(src.B)*a + float64(dst.B)*inv),
		A: 255,
	}
}
