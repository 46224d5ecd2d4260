package panels

import (
	"fmt"
	"path/filepath"

	"tricolor/internal/app"
	"tricolor/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp"}

// ChannelsPanel loads the three channel plates and selects the display mode.
type ChannelsPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	channelLabels [3]*widget.Label
	modeSelect    *widget.RadioGroup
	statusLabel   *widget.Label
}

// NewChannelsPanel creates a new channels panel.
func NewChannelsPanel(state *app.State) *ChannelsPanel {
	cp := &ChannelsPanel{
		state: state,
	}

	cp.statusLabel = widget.NewLabel("")
	cp.statusLabel.Wrapping = fyne.TextWrapWord

	var loadButtons [3]*widget.Button
	for i := 0; i < 3; i++ {
		ch := render.Channel(i)
		cp.channelLabels[i] = widget.NewLabel("Not loaded")
		loadButtons[i] = widget.NewButton("Load "+ch.String()+"...", func() {
			cp.loadChannel(ch)
		})
	}

	cp.modeSelect = widget.NewRadioGroup(
		[]string{"Combined", "Red", "Green", "Blue"},
		func(selected string) {
			switch selected {
			case "Combined":
				state.ShowCombinedView()
			case "Red":
				state.ShowChannel(render.ChannelRed)
			case "Green":
				state.ShowChannel(render.ChannelGreen)
			case "Blue":
				state.ShowChannel(render.ChannelBlue)
			}
		},
	)
	cp.modeSelect.SetSelected("Combined")

	saveButton := widget.NewButton("Save Composite...", func() {
		cp.saveComposite()
	})

	cp.container = container.NewVBox(
		widget.NewCard("Channel Images", "", container.NewVBox(
			loadButtons[render.ChannelRed], cp.channelLabels[render.ChannelRed],
			loadButtons[render.ChannelGreen], cp.channelLabels[render.ChannelGreen],
			loadButtons[render.ChannelBlue], cp.channelLabels[render.ChannelBlue],
		)),
		widget.NewCard("Display", "", cp.modeSelect),
		widget.NewCard("Export", "", saveButton),
		cp.statusLabel,
	)

	state.On(app.EventChannelLoaded, func(data interface{}) {
		cp.updateChannelStatus()
	})
	state.On(app.EventDisplayChanged, func(data interface{}) {
		cp.syncModeSelection()
	})

	return cp
}

// SetWindow sets the parent window for file dialogs.
func (cp *ChannelsPanel) SetWindow(w fyne.Window) {
	cp.window = w
}

// Container returns the panel container.
func (cp *ChannelsPanel) Container() fyne.CanvasObject {
	return cp.container
}

func (cp *ChannelsPanel) loadChannel(ch render.Channel) {
	if cp.window == nil {
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := cp.state.LoadChannel(ch, path); err != nil {
			cp.statusLabel.SetText(fmt.Sprintf("Load failed: %v", err))
			return
		}
		cp.statusLabel.SetText(fmt.Sprintf("%s: %s", ch, filepath.Base(path)))
	}, cp.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}

func (cp *ChannelsPanel) saveComposite() {
	if cp.window == nil {
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := cp.state.SaveComposite(path); err != nil {
			cp.statusLabel.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		cp.statusLabel.SetText("Saved " + filepath.Base(path))
	}, cp.window)
	fd.SetFileName("composite.png")
	fd.Show()
}

func (cp *ChannelsPanel) updateChannelStatus() {
	for i := 0; i < 3; i++ {
		plate := cp.state.Plates[i]
		if plate == nil {
			cp.channelLabels[i].SetText("Not loaded")
			continue
		}
		b := plate.Bounds()
		cp.channelLabels[i].SetText(fmt.Sprintf("%s (%dx%d)",
			filepath.Base(cp.state.Paths[i]), b.Dx(), b.Dy()))
	}
}

func (cp *ChannelsPanel) syncModeSelection() {
	if cp.state.ShowCombined {
		cp.modeSelect.SetSelected("Combined")
		return
	}
	cp.modeSelect.SetSelected(cp.state.CurrentChannel.String())
}
