package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"moviespot/internal/domain"
	"moviespot/internal/ui/state"
)

const (
	ScreenTitle          = "Search Movie"
	SearchButtonLabel    = "Search Movie"
	LocationButtonLabel  = "View my current location"
	ConsentQuestion      = "Allow moviespot to access this device's location?"
	defaultTerminalWidth = 80
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	TextInput     string
	Focus         state.Focus
	Movie         *domain.MovieRecord
	Coordinates   *domain.Coordinates
	LocationState domain.LocationState
	Searching     bool
	StatusMessage string
	ShowMap       bool
	MapWidth      int
	MapHeight     int
	Notice        *state.Notice
	Consent       bool
	ShowInfo      bool
	InfoContent   string
	HelpModel     help.Model
	HelpKeys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	mapRender   *MapRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		mapRender:   NewMapRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(vs))
	content.WriteString("\n")

	inputStyle := r.styles.Input
	if vs.Focus == state.FocusInput {
		inputStyle = r.styles.InputFocused
	}
	content.WriteString(inputStyle.Render(vs.TextInput))
	content.WriteString("\n")
	content.WriteString(r.renderButtons(vs.Focus))
	content.WriteString("\n")

	if vs.Coordinates != nil {
		content.WriteString(r.renderLocationCard(vs))
		content.WriteString("\n")
	}

	if vs.Movie != nil {
		content.WriteString(r.renderMovieCard(*vs.Movie))
		content.WriteString("\n")
	}

	if status := r.renderStatus(vs); status != "" {
		content.WriteString("\n")
		content.WriteString(status)
	}

	helpText := ""
	if vs.HelpKeys != nil && !vs.ShowInfo && vs.Notice == nil && !vs.Consent {
		helpText = r.styles.Help.Render(vs.HelpModel.View(vs.HelpKeys))
	}

	// Push help to the bottom of the screen
	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := vs.Height - 2 // container padding
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main.MaxHeight(vs.Height)
	finalContent := mainStyle.Render(content.String())

	// Overlay popups, the consent prompt first since a flow is blocked on it
	switch {
	case vs.Consent:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderConsent(), vs.Height, vs.Width, r.styles.ConsentBox)
	case vs.Notice != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderNotice(*vs.Notice), vs.Height, vs.Width, r.styles.NoticeBox)
	case vs.ShowInfo && vs.InfoContent != "":
		return r.popupRender.RenderPopupOverlay(finalContent, vs.InfoContent, vs.Height, vs.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitleLine renders the title with right-aligned activity indicators
func (r *Renderer) renderTitleLine(vs ViewState) string {
	logo := r.styles.Title.Render(ScreenTitle)

	var indicators []string
	if vs.Searching {
		indicators = append(indicators, fmt.Sprintf("%s Searching…", spinnerFrame()))
	}
	if vs.LocationState.InFlight() {
		indicators = append(indicators, fmt.Sprintf("%s Locating", spinnerFrame()))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := r.styles.Dim.Render(strings.Join(indicators, " | "))
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = defaultTerminalWidth
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	// The title carries a bottom margin; put the indicators on its first line
	logoLines := strings.SplitN(logo, "\n", 2)
	logoLines[0] += strings.Repeat(" ", paddingWidth) + rightContent
	return strings.Join(logoLines, "\n")
}

func (r *Renderer) renderButtons(focus state.Focus) string {
	search := r.styles.Button
	if focus == state.FocusSearchButton {
		search = r.styles.ButtonFocused
	}
	locate := r.styles.Button
	if focus == state.FocusLocationButton {
		locate = r.styles.ButtonFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		search.Render(SearchButtonLabel),
		"  ",
		locate.Render(LocationButtonLabel),
	)
}

func (r *Renderer) renderLocationCard(vs ViewState) string {
	c := *vs.Coordinates
	var b strings.Builder
	b.WriteString(r.styles.CardTitle.Render("Your location"))
	b.WriteString("\n")
	if vs.ShowMap {
		b.WriteString(r.mapRender.Render(c, vs.MapWidth, vs.MapHeight))
	} else {
		b.WriteString(fmt.Sprintf("%.6f, %.6f\n", c.Latitude, c.Longitude))
		b.WriteString(r.styles.Link.Render(OpenStreetMapURL(c)))
	}
	return r.styles.Card.Render(b.String())
}

func (r *Renderer) renderMovieCard(m domain.MovieRecord) string {
	sep := r.styles.Separator.Render(strings.Repeat("─", 30))
	fields := []struct{ label, value string }{
		{"Year", m.Year},
		{"Genre", m.Genre},
		{"Director", m.Director},
		{"Awards", m.Awards},
	}

	var b strings.Builder
	b.WriteString(r.styles.CardTitle.Render(m.Title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(sep)
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s", r.styles.Label.Render(f.label+":"), f.value))
	}
	return r.styles.Card.Render(b.String())
}

func (r *Renderer) renderStatus(vs ViewState) string {
	var parts []string
	if vs.LocationState != domain.LocationIdle && vs.LocationState != domain.LocationFixed {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(LocationStateColor(vs.LocationState.String())))
		parts = append(parts, style.Render("Location: "+vs.LocationState.String()))
	}
	if vs.StatusMessage != "" {
		parts = append(parts, r.styles.StatusWarning.Render(vs.StatusMessage))
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) renderNotice(n state.Notice) string {
	var b strings.Builder
	b.WriteString(r.styles.Highlight.Render(n.Title))
	b.WriteString("\n\n")
	b.WriteString(n.Message)
	b.WriteString("\n\n")
	b.WriteString(r.styles.Dim.Render("[enter] OK"))
	return b.String()
}

func (r *Renderer) renderConsent() string {
	var b strings.Builder
	b.WriteString(r.styles.Highlight.Render("Location permission"))
	b.WriteString("\n\n")
	b.WriteString(ConsentQuestion)
	b.WriteString("\n\n")
	b.WriteString(r.styles.Dim.Render("[y] Allow   [n] Don't allow"))
	return b.String()
}

func spinnerFrame() string {
	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinner[int(time.Now().UnixMilli()/80)%len(spinner)]
}
