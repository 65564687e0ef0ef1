package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted        EventType = "SearchStarted"
	EventMovieFound           EventType = "MovieFound"
	EventSearchFailed         EventType = "SearchFailed"
	EventLocationStateChanged EventType = "LocationStateChanged"
	EventPermissionPrompt     EventType = "PermissionPrompt"
	EventLocationFixed        EventType = "LocationFixed"
	EventLocationFailed       EventType = "LocationFailed"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a lookup request leaves the client
type SearchStartedEvent struct {
	RequestID string
	Query     string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// MovieFoundEvent is emitted when a lookup succeeds
type MovieFoundEvent struct {
	RequestID string
	Movie     MovieRecord
}

func (e MovieFoundEvent) Type() EventType { return EventMovieFound }

// SearchFailedEvent is emitted when a search fails for any reason
type SearchFailedEvent struct {
	RequestID string
	Query     string
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// LocationStateChangedEvent is emitted on every location flow transition
type LocationStateChangedEvent struct {
	RequestID string
	From      LocationState
	To        LocationState
}

func (e LocationStateChangedEvent) Type() EventType { return EventLocationStateChanged }

// PermissionPromptEvent asks the user to answer a permission request.
// The answer must be sent on Reply exactly once.
type PermissionPromptEvent struct {
	RequestID string
	Reply     chan<- PermissionStatus
}

func (e PermissionPromptEvent) Type() EventType { return EventPermissionPrompt }

// LocationFixedEvent is emitted when a fix was obtained
type LocationFixedEvent struct {
	RequestID   string
	Coordinates Coordinates
}

func (e LocationFixedEvent) Type() EventType { return EventLocationFixed }

// LocationFailedEvent is emitted when permission was denied or no fix could be read
type LocationFailedEvent struct {
	RequestID string
	Err       error
}

func (e LocationFailedEvent) Type() EventType { return EventLocationFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Created bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
