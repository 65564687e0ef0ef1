package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of main content. The
// content around the popup stays visible but greyed out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	baseLines := strings.Split(mainContent, "\n")
	if width <= 0 {
		width = lipgloss.Width(mainContent)
	}
	if height <= 0 {
		height = len(baseLines)
	}

	popupLines := strings.Split(styledPopup, "\n")
	modalW := lipgloss.Width(styledPopup)
	modalH := len(popupLines)

	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	for len(baseLines) < y+modalH {
		baseLines = append(baseLines, "")
	}

	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		plain := ansiRE.ReplaceAllString(line, "")
		row := i - y
		if row < 0 || row >= modalH {
			out[i] = pr.grey(plain)
			continue
		}
		left := runewidth.FillRight(runewidth.Truncate(plain, x, ""), x)
		right := runewidth.TruncateLeft(plain, x+modalW, "")
		modal := popupLines[row]
		if pad := modalW - lipgloss.Width(modal); pad > 0 {
			modal += strings.Repeat(" ", pad)
		}
		out[i] = pr.grey(left) + modal + pr.grey(right)
	}
	return strings.Join(out, "\n")
}

func (pr *PopupRenderer) grey(s string) string {
	if s == "" {
		return ""
	}
	return pr.styles.Dim.Foreground(lipgloss.Color("245")).Render(s)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color and style codes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
