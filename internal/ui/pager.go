package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"moviespot/internal/domain"
	"moviespot/internal/ui/views"
)

var errNoProgram = errors.New("program not set")

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager hands the terminal to ov until the user closes it
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		fmt.Print("\x1b[2J\x1b[H")
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return root.Run()
}

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)
	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginTop(1)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type helpEntry struct{ key, desc string }

// RenderHelpContent generates the help text shown in the pager
func RenderHelpContent() string {
	sections := []struct {
		name    string
		entries []helpEntry
	}{
		{"Search", []helpEntry{
			{"enter", "Search the title in the input"},
			{"s", "Search (when a button has focus)"},
			{"ctrl+d, d", "Show full movie details"},
		}},
		{"Location", []helpEntry{
			{"ctrl+l, l", "View my current location"},
			{"y / n", "Allow or refuse location access"},
		}},
		{"Navigation", []helpEntry{
			{"tab, ↓", "Next control"},
			{"shift+tab, ↑", "Previous control"},
			{"/, i", "Back to the title input"},
			{"enter, esc", "Dismiss a notice"},
		}},
		{"Other", []helpEntry{
			{"?", "Show this help"},
			{"q", "Quit (outside the input)"},
			{"ctrl+c", "Quit"},
		}},
	}

	var help strings.Builder
	help.WriteString(helpTitleStyle.Render("moviespot Help"))
	help.WriteString("\n")
	for _, s := range sections {
		help.WriteString(helpSectionStyle.Render(s.name))
		help.WriteString("\n")
		for _, e := range s.entries {
			// pad before styling so escape codes do not count toward the width
			key := helpKeyStyle.Render(fmt.Sprintf("%-14s", e.key))
			help.WriteString(fmt.Sprintf("  %s %s\n", key, helpDescStyle.Render(e.desc)))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// MovieDetails builds the details page for a record, including the fields the
// card leaves out
func MovieDetails(m domain.MovieRecord) string {
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render(m.Title))
	b.WriteString("\n")

	fields := []struct{ label, value string }{
		{"Year", m.Year},
		{"Rated", m.Rated},
		{"Runtime", m.Runtime},
		{"Genre", m.Genre},
		{"Director", m.Director},
		{"Actors", m.Actors},
		{"Awards", m.Awards},
		{"IMDb rating", m.ImdbRating},
	}
	for _, f := range fields {
		if f.value == "" || f.value == "N/A" {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(f.label+":"), f.value))
	}
	if m.ImdbID != "" {
		b.WriteString(fmt.Sprintf("%s https://www.imdb.com/title/%s/\n", labelStyle.Render("IMDb:"), m.ImdbID))
	}
	if m.Poster != "" && m.Poster != "N/A" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Poster:"), m.Poster))
	}
	if m.Plot != "" && m.Plot != "N/A" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(72).Render(m.Plot))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Popup fallback content is plain; the info box has its own border
func popupContent(s string) string {
	return views.StripANSI(s)
}
