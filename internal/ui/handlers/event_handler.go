package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/domain"
	"moviespot/internal/eventbus"
	"moviespot/internal/ui/state"
)

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}

const statusTTL = 4 * time.Second

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events and returns any necessary commands.
// Results are applied in arrival order, so of two overlapping searches the
// one that answers last is what stays on screen.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		h.state.StartSearch(e.RequestID)

	case eventbus.MovieFoundEvent:
		h.state.FinishSearch(e.RequestID)
		h.state.SetMovie(e.Movie)

	case eventbus.SearchFailedEvent:
		h.state.FinishSearch(e.RequestID)
		// The previous record, if any, stays on screen
		if n, ok := NoticeFor(e.Err); ok {
			h.state.PushNotice(n)
		}

	case eventbus.LocationStateChangedEvent:
		h.state.LocationState = e.To

	case eventbus.PermissionPromptEvent:
		h.state.PushConsent(state.ConsentRequest{RequestID: e.RequestID, Reply: e.Reply})

	case eventbus.LocationFixedEvent:
		h.state.SetCoordinates(e.Coordinates)

	case eventbus.LocationFailedEvent:
		if n, ok := NoticeFor(e.Err); ok {
			h.state.PushNotice(n)
			return nil
		}
		if errors.Is(e.Err, domain.ErrFixUnavailable) {
			log.Printf("Location fix unavailable: %v", e.Err)
			h.state.StatusMessage = "Could not read the current location"
			return clearStatusAfter(statusTTL)
		}

	case eventbus.ConfigLoadedEvent:
		if e.Created {
			h.state.StatusMessage = fmt.Sprintf("Created config at %s", e.Path)
			return clearStatusAfter(statusTTL)
		}
	}
	return nil
}

// NoticeFor maps a flow error to its modal notice. FixUnavailable has none.
func NoticeFor(err error) (state.Notice, bool) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return state.Notice{Title: "Warning", Message: "Please enter a valid title"}, true
	case errors.Is(err, domain.ErrNotFound):
		return state.Notice{Title: "Error", Message: "Movie not found"}, true
	case errors.Is(err, domain.ErrTransport):
		return state.Notice{Title: "Error", Message: "There was a problem with the search"}, true
	case errors.Is(err, domain.ErrPermissionDenied):
		return state.Notice{Title: "Location permission not granted", Message: "Please grant location permission"}, true
	}
	return state.Notice{}, false
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}
