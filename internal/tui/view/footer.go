package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel is the bottom section: an optional prompt box above the
// status and help lines.
type FooterModel struct {
	InnerW      int
	FooterH     int
	StatusText  string
	HelpText    string
	PromptLines []string
	ShowPrompt  bool
	PromptFocus bool

	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style
	PromptFocusStyle lipgloss.Style
	VAlign           lipgloss.Position
	Bg               lipgloss.Color
}

// RenderFooterModel renders the footer bottom-aligned in its box.
func RenderFooterModel(f FooterModel) string {
	if f.FooterH <= 0 {
		return ""
	}

	rows := make([]string, 0, 3)
	if f.ShowPrompt {
		style := f.PromptStyle
		if f.PromptFocus {
			style = f.PromptFocusStyle
		}
		rows = append(rows, RenderPromptBox(f.InnerW, style, f.PromptLines))
	}
	rows = append(rows,
		singleLine(f.InnerW, f.StatusStyle, f.StatusText),
		singleLine(f.InnerW, f.HelpStyle, f.HelpText),
	)
	return PlaceBox(f.InnerW, f.FooterH, f.VAlign, strings.Join(rows, "\n"), f.Bg)
}

// singleLine renders text cut to one row of the given outer width.
func singleLine(width int, style lipgloss.Style, text string) string {
	inner := max(width-style.GetHorizontalFrameSize(), 0)
	if inner > 0 {
		text = ansi.Truncate(text, inner, "")
	}
	return style.Width(inner).Render(text)
}
