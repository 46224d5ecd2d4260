package panels

import (
	"fmt"

	"tricolor/internal/grid"
	"tricolor/internal/overlay"
	"tricolor/internal/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var gridStyleNames = []string{"None", "Rule of Thirds", "Golden Ratio"}

// GridPanel controls the grid overlay: style, line width, and opacity. The
// same settings drive the grid in both the full preview and crop mode.
type GridPanel struct {
	engine    *viewer.Engine
	container fyne.CanvasObject

	styleSelect   *widget.Select
	widthLabel    *widget.Label
	decreaseWidth *widget.Button
	increaseWidth *widget.Button
	opacitySlider *widget.Slider
}

// NewGridPanel creates a new grid panel.
func NewGridPanel(engine *viewer.Engine) *GridPanel {
	gp := &GridPanel{
		engine: engine,
	}
	cfg := engine.OverlayConfig()

	gp.styleSelect = widget.NewSelect(gridStyleNames, func(selected string) {
		switch selected {
		case "None":
			engine.SetGridStyle(grid.StyleNone)
		case "Rule of Thirds":
			engine.SetGridStyle(grid.StyleRuleOfThirds)
		case "Golden Ratio":
			engine.SetGridStyle(grid.StyleGoldenRatio)
		}
	})

	gp.widthLabel = widget.NewLabel("")
	gp.decreaseWidth = widget.NewButton("-", func() {
		gp.adjustWidth(-1)
	})
	gp.increaseWidth = widget.NewButton("+", func() {
		gp.adjustWidth(+1)
	})

	gp.opacitySlider = widget.NewSlider(0, 255)
	gp.opacitySlider.Step = 1
	gp.opacitySlider.OnChanged = func(val float64) {
		engine.SetOpacity(int(val))
	}

	gp.container = container.NewVBox(
		widget.NewCard("Grid Style", "", gp.styleSelect),
		widget.NewCard("Line Width", "", container.NewHBox(
			gp.decreaseWidth, gp.widthLabel, gp.increaseWidth,
		)),
		widget.NewCard("Opacity", "", gp.opacitySlider),
	)

	gp.syncFromConfig(cfg)
	return gp
}

// Container returns the panel container.
func (gp *GridPanel) Container() fyne.CanvasObject {
	return gp.container
}

// Sync refreshes the controls from the current overlay settings, e.g. after
// a view reset.
func (gp *GridPanel) Sync() {
	gp.syncFromConfig(gp.engine.OverlayConfig())
}

func (gp *GridPanel) adjustWidth(delta int) {
	cfg := gp.engine.OverlayConfig()
	gp.engine.SetLineWidth(cfg.LineWidth() + delta)
	gp.syncFromConfig(cfg)
}

func (gp *GridPanel) syncFromConfig(cfg *overlay.Config) {
	switch cfg.Style() {
	case grid.StyleNone:
		gp.styleSelect.Selected = "None"
	case grid.StyleRuleOfThirds:
		gp.styleSelect.Selected = "Rule of Thirds"
	case grid.StyleGoldenRatio:
		gp.styleSelect.Selected = "Golden Ratio"
	}
	gp.styleSelect.Refresh()

	gp.widthLabel.SetText(fmt.Sprintf("%d px", cfg.LineWidth()))
	if cfg.LineWidth() <= overlay.MinLineWidth {
		gp.decreaseWidth.Disable()
	} else {
		gp.decreaseWidth.Enable()
	}
	if cfg.LineWidth() >= overlay.MaxLineWidth {
		gp.increaseWidth.Disable()
	} else {
		gp.increaseWidth.Enable()
	}

	gp.opacitySlider.SetValue(float64(cfg.Opacity()))
}
