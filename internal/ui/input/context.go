package input

import (
	"moviespot/internal/ui/input/types"
	"moviespot/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// FocusedButton returns the button under focus, if any
func (c *ModelContext) FocusedButton() types.Button {
	switch c.State.Focus {
	case state.FocusSearchButton:
		return types.ButtonSearch
	case state.FocusLocationButton:
		return types.ButtonLocation
	default:
		return types.ButtonNone
	}
}

// HasMovie reports whether a record is on screen
func (c *ModelContext) HasMovie() bool {
	return c.State.Movie != nil
}
