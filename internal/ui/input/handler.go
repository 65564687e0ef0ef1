package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/ui/input/modes"
	"moviespot/internal/ui/input/types"
)

type Handler struct {
	currentMode  types.Mode
	previousMode types.Mode // restored when a modal closes
	modes        map[types.Mode]types.ModeHandler
	textInput    *textinput.Model
}

// New creates a handler whose title input starts focused
func New(placeholder string) *Handler {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Focus()

	h := &Handler{
		currentMode:  types.ModeQuery,
		previousMode: types.ModeQuery,
		textInput:    &ti,
		modes:        make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeQuery] = modes.NewQueryMode(h.textInput)
	h.modes[types.ModeNotice] = modes.NewNoticeMode()
	h.modes[types.ModeConsent] = modes.NewConsentMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && h.currentMode != types.ModeQuery {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			allActions = append(allActions, h.ChangeMode(a.Mode, ctx)...)
			if a.Mode == types.ModeQuery {
				cmd = textinput.Blink
			}
		case types.CloseModalAction:
			allActions = append(allActions, h.CloseModal(ctx)...)
			if h.currentMode == types.ModeQuery {
				cmd = textinput.Blink
			}
		default:
			allActions = append(allActions, action)
		}
	}

	// Unhandled keys in the query mode edit the title
	if h.currentMode == types.ModeQuery && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// ChangeMode switches modes, remembering the non-modal mode a modal covers
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}

	var actions []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		actions = append(actions, cur.Exit(ctx)...)
	}

	if mode.IsModal() && !h.currentMode.IsModal() {
		h.previousMode = h.currentMode
	}
	h.currentMode = mode

	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

// CloseModal returns to the mode that was active before the modal opened
func (h *Handler) CloseModal(ctx types.Context) []types.Action {
	if !h.currentMode.IsModal() {
		return nil
	}
	return h.ChangeMode(h.previousMode, ctx)
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the title input
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Value returns the current title text
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode == types.ModeQuery {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
