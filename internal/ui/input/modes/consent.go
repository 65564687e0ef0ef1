package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/ui/input/types"
)

// ConsentMode asks whether the app may read the current location
type ConsentMode struct{}

func NewConsentMode() *ConsentMode {
	return &ConsentMode{}
}

func (m *ConsentMode) Name() string {
	return "consent"
}

func (m *ConsentMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConsentMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConsentMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "y", "Y":
		return []types.Action{
			types.AnswerConsentAction{Granted: true},
			types.CloseModalAction{},
		}, true
	case "n", "N", "esc":
		return []types.Action{
			types.AnswerConsentAction{Granted: false},
			types.CloseModalAction{},
		}, true
	}
	return nil, true
}
