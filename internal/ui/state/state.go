package state

import (
	"moviespot/internal/domain"
)

// Focus identifies the focused control
type Focus int

const (
	FocusInput Focus = iota
	FocusSearchButton
	FocusLocationButton
	focusCount
)

// Next returns the control after f, wrapping around
func (f Focus) Next() Focus {
	return (f + 1) % focusCount
}

// Prev returns the control before f, wrapping around
func (f Focus) Prev() Focus {
	return (f + focusCount - 1) % focusCount
}

// Notice is a blocking modal message
type Notice struct {
	Title   string
	Message string
}

// ConsentRequest is a pending permission prompt waiting for the user
type ConsentRequest struct {
	RequestID string
	Reply     chan<- domain.PermissionStatus
}

// AppState contains all the session state. Movie is only written by search
// results and Coordinates only by location results.
type AppState struct {
	Query       string
	Movie       *domain.MovieRecord
	Coordinates *domain.Coordinates

	LocationState    domain.LocationState
	SearchesInFlight map[string]bool // request id -> pending

	Focus Focus

	// Modals
	Notices  []Notice
	Consents []ConsentRequest

	// Popups shown when the pager is unavailable
	ShowInfo    bool
	InfoContent string

	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		LocationState:    domain.LocationIdle,
		SearchesInFlight: make(map[string]bool),
		Focus:            FocusInput,
	}
}

// SetMovie replaces the stored movie record
func (s *AppState) SetMovie(m domain.MovieRecord) {
	s.Movie = &m
}

// SetCoordinates replaces the stored fix
func (s *AppState) SetCoordinates(c domain.Coordinates) {
	s.Coordinates = &c
}

// Searching reports whether any lookup is pending
func (s *AppState) Searching() bool {
	return len(s.SearchesInFlight) > 0
}

// StartSearch marks a lookup as pending
func (s *AppState) StartSearch(requestID string) {
	s.SearchesInFlight[requestID] = true
}

// FinishSearch clears a pending lookup
func (s *AppState) FinishSearch(requestID string) {
	delete(s.SearchesInFlight, requestID)
}

// PushNotice queues a modal notice
func (s *AppState) PushNotice(n Notice) {
	s.Notices = append(s.Notices, n)
}

// CurrentNotice returns the notice on screen, if any
func (s *AppState) CurrentNotice() (Notice, bool) {
	if len(s.Notices) == 0 {
		return Notice{}, false
	}
	return s.Notices[0], true
}

// DismissNotice drops the notice on screen
func (s *AppState) DismissNotice() {
	if len(s.Notices) > 0 {
		s.Notices = s.Notices[1:]
	}
}

// PushConsent queues a permission prompt
func (s *AppState) PushConsent(c ConsentRequest) {
	s.Consents = append(s.Consents, c)
}

// CurrentConsent returns the prompt on screen, if any
func (s *AppState) CurrentConsent() (ConsentRequest, bool) {
	if len(s.Consents) == 0 {
		return ConsentRequest{}, false
	}
	return s.Consents[0], true
}

// AnswerConsent replies to the prompt on screen and drops it
func (s *AppState) AnswerConsent(status domain.PermissionStatus) bool {
	c, ok := s.CurrentConsent()
	if !ok {
		return false
	}
	s.Consents = s.Consents[1:]
	// Reply is buffered by the requester; never block the UI on it
	select {
	case c.Reply <- status:
	default:
	}
	return true
}

// DenyAllConsents answers every pending prompt with a denial
func (s *AppState) DenyAllConsents() {
	for s.AnswerConsent(domain.PermissionDenied) {
	}
}
