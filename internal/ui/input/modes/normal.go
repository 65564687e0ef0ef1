package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/ui/input/types"
)

// NormalMode is active while one of the buttons has focus
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true

	case "tab", "down", "j":
		return []types.Action{types.FocusAction{Direction: "next"}}, true
	case "shift+tab", "up", "k":
		return []types.Action{types.FocusAction{Direction: "prev"}}, true
	case "/", "i":
		return []types.Action{types.FocusAction{Direction: "input"}}, true

	case "enter", " ":
		switch ctx.FocusedButton() {
		case types.ButtonSearch:
			return []types.Action{types.SearchAction{}}, true
		case types.ButtonLocation:
			return []types.Action{types.LocateAction{}}, true
		}
		return nil, true

	case "s":
		return []types.Action{types.SearchAction{}}, true
	case "l", "ctrl+l":
		return []types.Action{types.LocateAction{}}, true
	case "d", "ctrl+d":
		if ctx.HasMovie() {
			return []types.Action{types.ShowDetailsAction{}}, true
		}
		return nil, true
	case "?":
		return []types.Action{types.ShowHelpAction{}}, true
	case "esc":
		return []types.Action{types.CloseInfoAction{}}, true
	}

	return nil, false
}
