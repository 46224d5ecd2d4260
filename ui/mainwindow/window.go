// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"tricolor/internal/app"
	"tricolor/internal/render"
	"tricolor/internal/version"
	"tricolor/internal/viewer"
	"tricolor/ui/canvas"
	"tricolor/ui/dialogs"
	"tricolor/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyRedPath   = "lastRedImage"
	prefKeyGreenPath = "lastGreenImage"
	prefKeyBluePath  = "lastBlueImage"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	engine    *viewer.Engine
	reset     *app.ResetCoordinator
	canvas    *canvas.PreviewCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	zoomLabel *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, engine *viewer.Engine) *MainWindow {
	win := fyneApp.NewWindow("Tricolor")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		engine: engine,
		reset:  app.NewResetCoordinator(state, engine),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPreviewCanvas(mw.state, mw.engine)
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.engine)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")
	mw.zoomLabel = widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("Fit", mw.canvas.FitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
		widget.NewButton("Reset View", mw.onResetView),
		mw.zoomLabel,
	)

	canvasArea := container.NewBorder(toolbar, nil, nil, nil, mw.canvas)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Grid Settings...", mw.onGridSettings),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset View", mw.onResetView),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupKeys binds the channel display shortcuts: 1/2/3 select a single
// channel, A shows the combined composite.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '1':
			mw.state.ShowChannel(render.ChannelRed)
		case '2':
			mw.state.ShowChannel(render.ChannelGreen)
		case '3':
			mw.state.ShowChannel(render.ChannelBlue)
		case 'a', 'A':
			mw.state.ShowCombinedView()
		}
	})
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape && mw.engine.CropActive() {
			mw.engine.ExitCropMode()
			mw.updateStatus("Crop cancelled")
		}
	})
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Tricolor - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
	})

	mw.state.On(app.EventChannelLoaded, func(data interface{}) {
		if ch, ok := data.(render.Channel); ok {
			mw.updateStatus(ch.String() + " channel loaded")
			mw.app.Preferences().SetString(channelPrefKey(ch), mw.state.Paths[ch])
		}
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventDisplayChanged, func(data interface{}) {
		if mw.state.ShowCombined {
			mw.updateStatus("Combined view")
		} else {
			mw.updateStatus(mw.state.CurrentChannel.String() + " channel view")
		}
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventCropApplied, func(data interface{}) {
		mw.updateStatus("Crop applied")
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// RestoreLastImages reloads the channel images used in the previous session.
func (mw *MainWindow) RestoreLastImages() {
	for _, ch := range []render.Channel{render.ChannelRed, render.ChannelGreen, render.ChannelBlue} {
		path := mw.app.Preferences().String(channelPrefKey(ch))
		if path == "" {
			continue
		}
		if err := mw.state.LoadChannel(ch, path); err != nil {
			mw.updateStatus(fmt.Sprintf("Could not restore %s channel: %v", ch, err))
		}
	}
	mw.state.SetModified(false)
}

func channelPrefKey(ch render.Channel) string {
	switch ch {
	case render.ChannelGreen:
		return prefKeyGreenPath
	case render.ChannelBlue:
		return prefKeyBluePath
	}
	return prefKeyRedPath
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".tcproj"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".tcproj" {
			path += ".tcproj"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("session.tcproj")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onActualSize() {
	mw.engine.SetZoom(1.0)
	mw.zoomLabel.SetText("100%")
}

func (mw *MainWindow) onResetView() {
	mw.reset.Reset()
	mw.zoomLabel.SetText("100%")
	mw.updateStatus("View reset")
}

func (mw *MainWindow) onGridSettings() {
	dialogs.NewGridSettingsDialog(mw.engine, mw.Window).Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Tricolor",
		fmt.Sprintf("Tricolor v%s\n\n"+
			"A viewer for tri-color separation photographs.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
