// Package overlay decides what grid geometry to draw per repaint and holds
// the single shared overlay configuration consumed by both the full-preview
// and crop-mode render paths.
package overlay

import (
	"image/color"

	"tricolor/internal/grid"
	"tricolor/pkg/colorutil"
)

// Line width limits in pixels.
const (
	MinLineWidth = 1
	MaxLineWidth = 10
)

// Documented defaults, shared by startup and reset.
const (
	DefaultLineWidth = 4
	DefaultOpacity   = 128
	DefaultStyle     = grid.StyleRuleOfThirds
)

// Config holds the grid overlay appearance. Exactly one instance exists per
// viewer; both render paths hold the same pointer, so a mutation through
// either is visible to the other on the next repaint with no extra
// synchronization (all mutation happens on the UI event thread).
type Config struct {
	style     grid.Style
	lineWidth int
	color     color.RGBA
	opacity   uint8
}

// NewConfig returns a config with the documented defaults: rule-of-thirds,
// 4px white lines at opacity 128.
func NewConfig() *Config {
	return &Config{
		style:     DefaultStyle,
		lineWidth: DefaultLineWidth,
		color:     colorutil.White,
		opacity:   DefaultOpacity,
	}
}

// Style returns the current grid style.
func (c *Config) Style() grid.Style {
	return c.style
}

// SetStyle sets the grid style.
func (c *Config) SetStyle(style grid.Style) {
	c.style = style
}

// LineWidth returns the grid line width in pixels.
func (c *Config) LineWidth() int {
	return c.lineWidth
}

// SetLineWidth sets the grid line width. Values outside [1,10] are rejected
// and the previous valid value is kept; returns whether the value was
// accepted.
func (c *Config) SetLineWidth(px int) bool {
	if px < MinLineWidth || px > MaxLineWidth {
		return false
	}
	c.lineWidth = px
	return true
}

// Color returns the grid line color (alpha not yet applied).
func (c *Config) Color() color.RGBA {
	return c.color
}

// SetColor sets the grid line color.
func (c *Config) SetColor(col color.RGBA) {
	c.color = col
}

// Opacity returns the grid line opacity (0-255).
func (c *Config) Opacity() uint8 {
	return c.opacity
}

// SetOpacity sets the grid line opacity, clamped to 0-255.
func (c *Config) SetOpacity(opacity int) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 255 {
		opacity = 255
	}
	c.opacity = uint8(opacity)
}

// LineColor returns the line color with opacity applied to the alpha
// channel, ready for blended drawing.
func (c *Config) LineColor() color.RGBA {
	return colorutil.WithAlpha(c.color, c.opacity)
}

// Reset restores the documented defaults. Identical to the state produced
// by NewConfig, so startup and reset cannot drift.
func (c *Config) Reset() {
	*c = *NewConfig()
}
