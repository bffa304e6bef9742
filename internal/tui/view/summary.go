// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryLineStyle indicates how a summary line should be styled.
type SummaryLineStyle int

const (
	SummaryLineBody SummaryLineStyle = iota
	SummaryLineMeta
	SummaryLineSection
	SummaryLineWarning
)

// SummaryLine is a display-ready line for the day summary modal.
type SummaryLine struct {
	Text  string
	Style SummaryLineStyle
}

// SummaryStyles groups styles for day summary rendering.
type SummaryStyles struct {
	BodyStyle         stringRenderer
	MetaStyle         stringRenderer
	SectionTitleStyle stringRenderer
	WarningStyle      stringRenderer
}

// RenderSummaryBody renders summary lines into a wrapped modal body.
func RenderSummaryBody(lines []SummaryLine, styles SummaryStyles, contentWidth int) string {
	if len(lines) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, wrapSummaryLine(line, styles, contentWidth)...)
	}
	return strings.Join(rendered, "\n")
}

// ModalContentWidth returns the content width for a modal body.
func ModalContentWidth(style lipgloss.Style, fallback int) int {
	width := style.GetWidth()
	if width <= 0 {
		return fallback
	}
	contentWidth := width - 4
	if contentWidth < 10 {
		return 10
	}
	return contentWidth
}

func wrapSummaryLine(line SummaryLine, styles SummaryStyles, width int) []string {
	switch line.Style {
	case SummaryLineSection:
		return wrapModalText(styles.SectionTitleStyle, line.Text, width)
	case SummaryLineMeta:
		return wrapModalText(styles.MetaStyle, line.Text, width)
	case SummaryLineWarning:
		return wrapModalText(styles.WarningStyle, line.Text, width)
	default:
		return wrapModalText(styles.BodyStyle, line.Text, width)
	}
}

func wrapModalText(style stringRenderer, text string, width int) []string {
	if width <= 0 {
		return []string{style.Render("")}
	}
	lines := WrapText(text, width)
	if len(lines) == 0 {
		return []string{style.Render("")}
	}

	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, style.Render(line))
	}
	return wrapped
}
