package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/ui/input/types"
)

// NoticeMode blocks input until the notice is dismissed
type NoticeMode struct{}

func NewNoticeMode() *NoticeMode {
	return &NoticeMode{}
}

func (m *NoticeMode) Name() string {
	return "notice"
}

func (m *NoticeMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NoticeMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NoticeMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "enter", "esc", " ", "o", "O":
		return []types.Action{
			types.DismissNoticeAction{},
			types.CloseModalAction{},
		}, true
	}
	// Everything else is swallowed while the notice is up
	return nil, true
}
