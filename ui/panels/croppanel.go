package panels

import (
	"fmt"

	"tricolor/internal/app"
	"tricolor/internal/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// cropRatios maps the ratio selector entries to w:h constraints. Zero means
// unconstrained.
var cropRatios = []struct {
	name string
	w, h int
}{
	{"Free", 0, 0},
	{"1:1", 1, 1},
	{"4:3", 4, 3},
	{"16:9", 16, 9},
	{"3:2", 3, 2},
}

// CropPanel drives the crop workflow: enter crop mode, pick a ratio, apply
// or cancel.
type CropPanel struct {
	state     *app.State
	engine    *viewer.Engine
	container fyne.CanvasObject

	enterButton  *widget.Button
	applyButton  *widget.Button
	cancelButton *widget.Button
	ratioSelect  *widget.Select
	statusLabel  *widget.Label
}

// NewCropPanel creates a new crop panel.
func NewCropPanel(state *app.State, engine *viewer.Engine) *CropPanel {
	cp := &CropPanel{
		state:  state,
		engine: engine,
	}

	cp.statusLabel = widget.NewLabel("")
	cp.statusLabel.Wrapping = fyne.TextWrapWord

	ratioNames := make([]string, len(cropRatios))
	for i, r := range cropRatios {
		ratioNames[i] = r.name
	}
	cp.ratioSelect = widget.NewSelect(ratioNames, func(selected string) {
		for _, r := range cropRatios {
			if r.name == selected {
				engine.SetCropRatio(r.w, r.h)
				return
			}
		}
	})
	cp.ratioSelect.Selected = "Free"

	cp.enterButton = widget.NewButton("Enter Crop Mode", func() {
		cp.enterCropMode()
	})
	cp.applyButton = widget.NewButton("Apply Crop", func() {
		cp.applyCrop()
	})
	cp.cancelButton = widget.NewButton("Cancel", func() {
		cp.cancelCrop()
	})

	cp.container = container.NewVBox(
		widget.NewCard("Crop", "", container.NewVBox(
			cp.enterButton,
			widget.NewLabel("Aspect ratio:"),
			cp.ratioSelect,
			container.NewHBox(cp.applyButton, cp.cancelButton),
		)),
		cp.statusLabel,
	)

	state.On(app.EventViewReset, func(data interface{}) {
		cp.syncButtons()
		cp.ratioSelect.SetSelected("Free")
	})

	cp.syncButtons()
	return cp
}

// Container returns the panel container.
func (cp *CropPanel) Container() fyne.CanvasObject {
	return cp.container
}

func (cp *CropPanel) enterCropMode() {
	if !cp.state.HasContent() {
		cp.statusLabel.SetText("Load a channel image first")
		return
	}
	cp.engine.EnterCropMode()
	cp.statusLabel.SetText("Drag on the image to define the crop area")
	cp.syncButtons()
}

func (cp *CropPanel) applyCrop() {
	rect, ok := cp.engine.CurrentCropRect()
	if !ok {
		cp.statusLabel.SetText("No crop area defined")
		return
	}
	if err := cp.state.ApplyCrop(rect); err != nil {
		// Keep crop mode and the rectangle so the user can adjust and
		// retry.
		cp.statusLabel.SetText(fmt.Sprintf("Crop failed: %v", err))
		return
	}
	cp.engine.ExitCropMode()
	cp.statusLabel.SetText(fmt.Sprintf("Cropped to %.0fx%.0f", rect.Width, rect.Height))
	cp.ratioSelect.SetSelected("Free")
	cp.syncButtons()
}

func (cp *CropPanel) cancelCrop() {
	cp.engine.ExitCropMode()
	cp.statusLabel.SetText("")
	cp.ratioSelect.SetSelected("Free")
	cp.syncButtons()
}

func (cp *CropPanel) syncButtons() {
	if cp.engine.CropActive() {
		cp.enterButton.Disable()
		cp.applyButton.Enable()
		cp.cancelButton.Enable()
	} else {
		cp.enterButton.Enable()
		cp.applyButton.Disable()
		cp.cancelButton.Disable()
	}
}
