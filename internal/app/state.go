// Package app provides application state, events, and session persistence.
package app

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"tricolor/internal/render"
	"tricolor/pkg/geometry"
)

// State holds the loaded channel plates and display settings.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool

	// Channel plates, indexed by render.Channel
	Plates [3]*image.Gray
	Paths  [3]string

	// Display mode
	ShowCombined   bool
	CurrentChannel render.Channel

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventChannelLoaded
	EventDisplayChanged
	EventCropApplied
	EventViewReset
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state showing the combined view.
func NewState() *State {
	return &State{
		ShowCombined:   true,
		CurrentChannel: render.ChannelRed,
		listeners:      make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadChannel loads an image file into the given channel plate.
func (s *State) LoadChannel(ch render.Channel, path string) error {
	plate, err := render.LoadChannel(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Plates[ch] = plate
	s.Paths[ch] = path
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventChannelLoaded, ch)
	return nil
}

// ShowCombinedView switches the preview to the combined RGB composite.
func (s *State) ShowCombinedView() {
	s.mu.Lock()
	s.ShowCombined = true
	s.mu.Unlock()
	s.Emit(EventDisplayChanged, nil)
}

// ShowChannel switches the preview to a single channel in grayscale.
func (s *State) ShowChannel(ch render.Channel) {
	s.mu.Lock()
	s.ShowCombined = false
	s.CurrentChannel = ch
	s.mu.Unlock()
	s.Emit(EventDisplayChanged, ch)
}

// Preview renders the current display mode into an RGB image.
func (s *State) Preview() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ShowCombined {
		return render.Combine(s.Plates)
	}
	return render.Single(s.Plates[s.CurrentChannel])
}

// ContentBounds returns the content-space bounding rectangle of the loaded
// plates: the union of their pixel bounds. Empty when nothing is loaded.
func (s *State) ContentBounds() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bounds image.Rectangle
	for _, plate := range s.Plates {
		if plate != nil {
			bounds = bounds.Union(plate.Bounds())
		}
	}
	return geometry.Rect{
		X:      float64(bounds.Min.X),
		Y:      float64(bounds.Min.Y),
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}
}

// HasContent reports whether at least one plate is loaded.
func (s *State) HasContent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, plate := range s.Plates {
		if plate != nil {
			return true
		}
	}
	return false
}

// ApplyCrop crops every loaded plate to the committed rectangle.
func (s *State) ApplyCrop(rect geometry.Rect) error {
	s.mu.Lock()
	plates, err := render.ApplyCrop(s.Plates, rect)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.Plates = plates
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventCropApplied, rect)
	return nil
}

// SaveComposite writes the current preview to an image file.
func (s *State) SaveComposite(path string) error {
	return render.Save(s.Preview(), path)
}

// ProjectFile represents the JSON structure of a saved session.
type ProjectFile struct {
	Version        int    `json:"version"`
	RedPath        string `json:"red_image,omitempty"`
	GreenPath      string `json:"green_image,omitempty"`
	BluePath       string `json:"blue_image,omitempty"`
	ShowCombined   bool   `json:"show_combined"`
	CurrentChannel int    `json:"current_channel"`
}

// LoadProject loads a session from the specified path, reloading the channel
// images it references.
func (s *State) LoadProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var proj ProjectFile
	if err := json.Unmarshal(data, &proj); err != nil {
		return fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	projectDir := filepath.Dir(path)
	for ch, rel := range map[render.Channel]string{
		render.ChannelRed:   proj.RedPath,
		render.ChannelGreen: proj.GreenPath,
		render.ChannelBlue:  proj.BluePath,
	} {
		if rel == "" {
			continue
		}
		if err := s.LoadChannel(ch, filepath.Join(projectDir, rel)); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.ShowCombined = proj.ShowCombined
	s.CurrentChannel = render.Channel(proj.CurrentChannel)
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject saves the session to the specified path. Channel image paths
// are stored relative to the project file.
func (s *State) SaveProject(path string) error {
	projectDir := filepath.Dir(path)

	s.mu.RLock()
	proj := ProjectFile{
		Version:        1,
		ShowCombined:   s.ShowCombined,
		CurrentChannel: int(s.CurrentChannel),
	}
	rel := func(p string) string {
		if p == "" {
			return ""
		}
		if r, err := filepath.Rel(projectDir, p); err == nil {
			return r
		}
		return p
	}
	proj.RedPath = rel(s.Paths[render.ChannelRed])
	proj.GreenPath = rel(s.Paths[render.ChannelGreen])
	proj.BluePath = rel(s.Paths[render.ChannelBlue])
	s.mu.RUnlock()

	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
