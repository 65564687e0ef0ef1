package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Label         lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Card          lipgloss.Style
	CardTitle     lipgloss.Style
	Separator     lipgloss.Style
	Link          lipgloss.Style
	MapBox        lipgloss.Style
	MapGrid       lipgloss.Style
	Marker        lipgloss.Style
	InfoBox       lipgloss.Style
	NoticeBox     lipgloss.Style
	ConsentBox    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:   lipgloss.NewStyle().Faint(true),
		Label: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			Width(40),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			Width(40),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")),
		ButtonFocused: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("99")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginTop(1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Link:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		MapBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		MapGrid: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		NoticeBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("203")),
		ConsentBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("214")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// LocationStateColor returns the color used for a location state label
func LocationStateColor(s string) string {
	switch s {
	case "Fixed", "Granted":
		return "78" // green
	case "Denied":
		return "203" // red
	case "Idle":
		return "241" // gray
	default:
		return "214" // yellow while in flight
	}
}
