package app

import (
	"log"

	"tricolor/internal/render"
	"tricolor/internal/viewer"
)

// ResetCoordinator restores every adjustable viewing setting to the
// documented startup defaults in one operation: view transform, grid
// appearance, crop session, and display mode. Loaded channel plates are not
// touched.
type ResetCoordinator struct {
	state  *State
	engine *viewer.Engine
}

// NewResetCoordinator wires the coordinator to the state and the engine.
func NewResetCoordinator(state *State, engine *viewer.Engine) *ResetCoordinator {
	return &ResetCoordinator{state: state, engine: engine}
}

// Reset performs the full reset. It is idempotent, never fails, and is safe
// to invoke in any state, including mid-drag: an in-progress crop
// interaction is ended before the session is cleared, never left dangling.
func (r *ResetCoordinator) Reset() {
	r.engine.Reset()

	r.state.mu.Lock()
	r.state.ShowCombined = true
	r.state.CurrentChannel = render.ChannelRed
	r.state.mu.Unlock()

	log.Printf("View reset to defaults")
	r.state.Emit(EventDisplayChanged, nil)
	r.state.Emit(EventViewReset, nil)
}
