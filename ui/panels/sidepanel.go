// Package panels provides UI panels for the application.
package panels

import (
	"tricolor/internal/app"
	"tricolor/internal/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	channelsPanel *ChannelsPanel
	gridPanel     *GridPanel
	cropPanel     *CropPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, engine *viewer.Engine) *SidePanel {
	sp := &SidePanel{
		state: state,
	}

	sp.channelsPanel = NewChannelsPanel(state)
	sp.gridPanel = NewGridPanel(engine)
	sp.cropPanel = NewCropPanel(state, engine)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Channels", sp.channelsPanel.Container()),
		container.NewTabItem("Grid", sp.gridPanel.Container()),
		container.NewTabItem("Crop", sp.cropPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.channelsPanel.SetWindow(w)
}
