// Package dialogs provides modal dialogs for the application.
package dialogs

import (
	"fmt"

	"tricolor/internal/grid"
	"tricolor/internal/overlay"
	"tricolor/internal/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// GridSettingsDialog edits the grid overlay settings in a modal dialog.
// Changes apply live; the dialog only needs dismissing.
type GridSettingsDialog struct {
	engine *viewer.Engine
	parent fyne.Window

	styleSelect   *widget.Select
	widthLabel    *widget.Label
	decreaseWidth *widget.Button
	increaseWidth *widget.Button
	opacitySlider *widget.Slider
}

// NewGridSettingsDialog creates the dialog bound to the engine's overlay
// configuration.
func NewGridSettingsDialog(engine *viewer.Engine, parent fyne.Window) *GridSettingsDialog {
	return &GridSettingsDialog{
		engine: engine,
		parent: parent,
	}
}

// Show displays the dialog.
func (d *GridSettingsDialog) Show() {
	cfg := d.engine.OverlayConfig()

	d.styleSelect = widget.NewSelect(
		[]string{"None", "Rule of Thirds", "Golden Ratio"},
		func(selected string) {
			switch selected {
			case "None":
				d.engine.SetGridStyle(grid.StyleNone)
			case "Rule of Thirds":
				d.engine.SetGridStyle(grid.StyleRuleOfThirds)
			case "Golden Ratio":
				d.engine.SetGridStyle(grid.StyleGoldenRatio)
			}
		},
	)
	switch cfg.Style() {
	case grid.StyleNone:
		d.styleSelect.Selected = "None"
	case grid.StyleRuleOfThirds:
		d.styleSelect.Selected = "Rule of Thirds"
	case grid.StyleGoldenRatio:
		d.styleSelect.Selected = "Golden Ratio"
	}

	d.widthLabel = widget.NewLabel("")
	d.decreaseWidth = widget.NewButton("-", func() {
		d.engine.SetLineWidth(cfg.LineWidth() - 1)
		d.syncWidth(cfg)
	})
	d.increaseWidth = widget.NewButton("+", func() {
		d.engine.SetLineWidth(cfg.LineWidth() + 1)
		d.syncWidth(cfg)
	})
	d.syncWidth(cfg)

	d.opacitySlider = widget.NewSlider(0, 255)
	d.opacitySlider.Step = 1
	d.opacitySlider.SetValue(float64(cfg.Opacity()))
	d.opacitySlider.OnChanged = func(val float64) {
		d.engine.SetOpacity(int(val))
	}

	content := container.NewVBox(
		widget.NewLabel("Style:"),
		d.styleSelect,
		widget.NewLabel("Line width:"),
		container.NewHBox(d.decreaseWidth, d.widthLabel, d.increaseWidth),
		widget.NewLabel("Opacity:"),
		d.opacitySlider,
	)

	dialog.ShowCustom("Grid Settings", "Close", content, d.parent)
}

func (d *GridSettingsDialog) syncWidth(cfg *overlay.Config) {
	d.widthLabel.SetText(fmt.Sprintf("%d px", cfg.LineWidth()))
	if cfg.LineWidth() <= overlay.MinLineWidth {
		d.decreaseWidth.Disable()
	} else {
		d.decreaseWidth.Enable()
	}
	if cfg.LineWidth() >= overlay.MaxLineWidth {
		d.increaseWidth.Disable()
	} else {
		d.increaseWidth.Enable()
	}
}
