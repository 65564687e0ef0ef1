package ui

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/config"
	"moviespot/internal/domain"
	"moviespot/internal/ui/commands"
	"moviespot/internal/ui/handlers"
	"moviespot/internal/ui/input"
	inputtypes "moviespot/internal/ui/input/types"
	"moviespot/internal/ui/state"
	"moviespot/internal/ui/viewmodels"
	"moviespot/internal/ui/views"
)

// EnvE2E makes the view print a readiness marker for the pty test suite
const EnvE2E = "MOVIESPOT_E2E_TEST"

const readyMarker = "__READY__"

// Model represents the UI state
type Model struct {
	state *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	inPagerMode bool // tracks if we're currently in pager mode
	e2e         bool

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. The flows run with ctx so that quitting
// cancels lookups still in flight.
func NewModel(ctx context.Context, cfg *config.Config, searcher commands.Searcher, locator commands.Locator) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState()

	m := &Model{
		state:        appState,
		help:         help.New(),
		keys:         newKeyMap(),
		e2e:          os.Getenv(EnvE2E) == "1",
		renderer:     views.NewRenderer(),
		eventHandler: handlers.NewEventHandler(appState),
		cmdExecutor:  commands.NewExecutor(ctx, appState, searcher, locator),
		inputHandler: input.New("Movie title"),
		pager:        NewPagerOps(),
	}

	m.viewModel = viewmodels.NewViewModel(appState, cfg.UI, m.inputHandler.TextInput())
	m.viewModel.SetHelp(m.help, m.keys)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager != nil {
		m.pager.SetProgram(p)
	}
}

// State exposes the session state for tests and the app wiring
func (m *Model) State() *state.AppState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), textinput.Blink)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help, m.keys)
		return m, nil

	case tea.KeyMsg:
		// The info popup only shows when the pager could not run
		if m.state.ShowInfo {
			switch msg.String() {
			case "esc", "q", "enter":
				m.state.ShowInfo = false
				m.state.InfoContent = ""
				return m, nil
			}
		}

		m.syncModal()
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.syncModal()
		return m, tea.Batch(cmds...)

	default:
		// Cursor blink and friends go to the text input as well
		cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(cmd, m.inputHandler.Update(msg))
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	out := m.renderer.Render(m.viewModel.BuildViewState())
	if m.e2e {
		out += "\n" + readyMarker
	}
	return out
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.eventHandler.HandleEvent(msg.Event)
		m.syncModal()
		return cmd

	case commands.SearchDoneMsg, commands.LocateDoneMsg:
		// Outcomes arrive as events
		return nil

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return nil
		}
		return tick()

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v, falling back to popup", msg.err)
			m.state.InfoContent = popupContent(msg.content)
			m.state.ShowInfo = true
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return tick()

	case handlers.ClearStatusMsg:
		m.state.StatusMessage = ""
		return nil
	}
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.SearchAction:
		return m.cmdExecutor.ExecuteSearch(m.inputHandler.Value())

	case inputtypes.LocateAction:
		return m.cmdExecutor.ExecuteLocate()

	case inputtypes.UpdateTextAction:
		m.state.Query = a.Text

	case inputtypes.FocusAction:
		switch a.Direction {
		case "next":
			m.setFocus(m.state.Focus.Next())
		case "prev":
			m.setFocus(m.state.Focus.Prev())
		case "input":
			m.setFocus(state.FocusInput)
		}

	case inputtypes.DismissNoticeAction:
		m.state.DismissNotice()

	case inputtypes.AnswerConsentAction:
		status := domain.PermissionDenied
		if a.Granted {
			status = domain.PermissionGranted
		}
		m.state.AnswerConsent(status)

	case inputtypes.ShowDetailsAction:
		if m.state.Movie == nil {
			return nil
		}
		return m.showInPager(MovieDetails(*m.state.Movie))

	case inputtypes.ShowHelpAction:
		return m.showInPager(RenderHelpContent())

	case inputtypes.CloseInfoAction:
		m.state.ShowInfo = false
		m.state.InfoContent = ""

	case inputtypes.QuitAction:
		// Unblock any flow still waiting on the user
		m.state.DenyAllConsents()
		return tea.Quit
	}
	return nil
}

// setFocus moves focus and keeps the input mode in step with it
func (m *Model) setFocus(f state.Focus) {
	m.state.Focus = f
	ctx := &input.ModelContext{State: m.state}
	mode := inputtypes.ModeNormal
	if f == state.FocusInput {
		mode = inputtypes.ModeQuery
	}
	for _, a := range m.inputHandler.ChangeMode(mode, ctx) {
		m.processAction(a)
	}
}

// syncModal opens or closes the modal input mode to match pending notices and
// consent requests. A consent request always goes first since a flow is
// blocked on it.
func (m *Model) syncModal() {
	ctx := &input.ModelContext{State: m.state}
	current := m.inputHandler.CurrentMode()

	var want inputtypes.Mode
	switch {
	case len(m.state.Consents) > 0:
		want = inputtypes.ModeConsent
	case len(m.state.Notices) > 0:
		want = inputtypes.ModeNotice
	default:
		if current.IsModal() {
			m.inputHandler.CloseModal(ctx)
		}
		return
	}
	if current != want {
		m.inputHandler.ChangeMode(want, ctx)
	}
}

// showInPager runs ov over content, falling back to a popup without a program
func (m *Model) showInPager(content string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return pagerMsg{content: content, err: errNoProgram} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{content: content, err: err}
	}
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
