package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal  Mode = iota // a button has focus
	ModeQuery               // the title input has focus
	ModeNotice              // a notice modal is open
	ModeConsent             // a permission prompt is open
)

func (m Mode) String() string {
	switch m {
	case ModeQuery:
		return "query"
	case ModeNotice:
		return "notice"
	case ModeConsent:
		return "consent"
	default:
		return "normal"
	}
}

// IsModal reports whether the mode blocks the rest of the screen
func (m Mode) IsModal() bool {
	return m == ModeNotice || m == ModeConsent
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	FocusedButton() Button
	HasMovie() bool
}

// Button names the two action buttons
type Button int

const (
	ButtonNone Button = iota
	ButtonSearch
	ButtonLocation
)

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
