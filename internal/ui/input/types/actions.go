package types

// Flow actions
type SearchAction struct{}

func (a SearchAction) Type() string { return "search" }

type LocateAction struct{}

func (a LocateAction) Type() string { return "locate" }

// Focus actions
type FocusAction struct {
	Direction string // "next", "prev", "input"
}

func (a FocusAction) Type() string { return "focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// CloseModalAction returns to the mode that was active before the modal
type CloseModalAction struct{}

func (a CloseModalAction) Type() string { return "close_modal" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// Modal actions
type DismissNoticeAction struct{}

func (a DismissNoticeAction) Type() string { return "dismiss_notice" }

type AnswerConsentAction struct {
	Granted bool
}

func (a AnswerConsentAction) Type() string { return "answer_consent" }

// View actions
type ShowDetailsAction struct{}

func (a ShowDetailsAction) Type() string { return "show_details" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type CloseInfoAction struct{}

func (a CloseInfoAction) Type() string { return "close_info" }

// Application actions
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
