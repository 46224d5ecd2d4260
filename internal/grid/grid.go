// Package grid computes composition-guide line positions for a rectangle.
//
// The computation is pure and coordinate-space agnostic: callers pass a
// rectangle in whatever space they intend to draw in (content or display)
// and receive line positions in that same space.
package grid

import (
	"tricolor/pkg/geometry"
)

// Style selects the composition-guide pattern.
type Style int

const (
	StyleNone Style = iota
	StyleRuleOfThirds
	StyleGoldenRatio
)

// Golden-ratio fractions: 1/phi^2 and 1/phi for phi = (1+sqrt(5))/2.
const (
	goldenLow  = 0.3819660112501051
	goldenHigh = 0.6180339887498949
)

// String returns a human-readable style name.
func (s Style) String() string {
	switch s {
	case StyleNone:
		return "None"
	case StyleRuleOfThirds:
		return "Rule of Thirds"
	case StyleGoldenRatio:
		return "Golden Ratio"
	}
	return "Unknown"
}

// Fractions returns the two fractional line positions along each axis.
// The pair always sums to 1. StyleNone has no fractions; ok is false.
func (s Style) Fractions() (lo, hi float64, ok bool) {
	switch s {
	case StyleRuleOfThirds:
		return 1.0 / 3.0, 2.0 / 3.0, true
	case StyleGoldenRatio:
		return goldenLow, goldenHigh, true
	}
	return 0, 0, false
}

// Lines holds the grid line positions for a rectangle: two vertical lines
// at the given x coordinates and two horizontal lines at the given y
// coordinates. For a zero-area rectangle the coordinates are coincident;
// renderers must tolerate drawing zero-length lines.
type Lines struct {
	Vertical   [2]float64
	Horizontal [2]float64
}

// Compute returns the grid line positions for rect in the given style.
// ok is false when style is StyleNone (nothing to draw).
func Compute(rect geometry.Rect, style Style) (Lines, bool) {
	lo, hi, ok := style.Fractions()
	if !ok {
		return Lines{}, false
	}
	return Lines{
		Vertical:   [2]float64{rect.X + lo*rect.Width, rect.X + hi*rect.Width},
		Horizontal: [2]float64{rect.Y + lo*rect.Height, rect.Y + hi*rect.Height},
	}, true
}
