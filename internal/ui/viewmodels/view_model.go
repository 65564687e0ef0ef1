package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"moviespot/internal/config"
	"moviespot/internal/ui/state"
	"moviespot/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	ui        config.UISettings
	textInput *textinput.Model
	width     int
	height    int
	help      help.Model
	keys      help.KeyMap
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, ui config.UISettings, textInput *textinput.Model) *ViewModel {
	return &ViewModel{
		state:     appState,
		ui:        ui,
		textInput: textInput,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model and the bindings it shows
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	vs := views.ViewState{
		Width:         vm.width,
		Height:        vm.height,
		Focus:         vm.state.Focus,
		Movie:         vm.state.Movie,
		Coordinates:   vm.state.Coordinates,
		LocationState: vm.state.LocationState,
		Searching:     vm.state.Searching(),
		StatusMessage: vm.state.StatusMessage,
		ShowMap:       vm.ui.ShowMap,
		MapWidth:      vm.ui.MapWidth,
		MapHeight:     vm.ui.MapHeight,
		ShowInfo:      vm.state.ShowInfo,
		InfoContent:   vm.state.InfoContent,
		HelpModel:     vm.help,
		HelpKeys:      vm.keys,
	}
	if vm.textInput != nil {
		vs.TextInput = vm.textInput.View()
	}
	if _, ok := vm.state.CurrentConsent(); ok {
		vs.Consent = true
	}
	if n, ok := vm.state.CurrentNotice(); ok {
		vs.Notice = &n
	}
	return vs
}
