package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/ui/input/types"
)

// QueryMode is active while the title input has focus. The text survives
// leaving and re-entering the mode.
type QueryMode struct {
	textInput *textinput.Model
}

func NewQueryMode(ti *textinput.Model) *QueryMode {
	return &QueryMode{textInput: ti}
}

func (m *QueryMode) Name() string {
	return "query"
}

func (m *QueryMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
	}
	return nil
}

func (m *QueryMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "enter":
		return []types.Action{types.SearchAction{}}, true
	case "tab", "down", "esc":
		return []types.Action{types.FocusAction{Direction: "next"}}, true
	case "shift+tab", "up":
		return []types.Action{types.FocusAction{Direction: "prev"}}, true
	case "ctrl+l":
		return []types.Action{types.LocateAction{}}, true
	case "ctrl+d":
		return []types.Action{types.ShowDetailsAction{}}, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}
