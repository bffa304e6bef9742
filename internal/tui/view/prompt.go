package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	promptMarker = "> "
	promptIndent = "  "
)

// Suggestion is a slash command shown under the prompt input.
type Suggestion struct {
	Name        string
	Description string
}

// PromptView is the prompt box content for one frame.
type PromptView struct {
	Input       string
	Cursor      string
	Suggestions []Suggestion // only shown while the prompt is focused
	MaxLines    int
}

// Lines wraps the input and suggestions to width. Output longer than
// MaxLines is cut and the last kept line ends with an ellipsis.
func (p PromptView) Lines(width int) []string {
	lines := indentLines(WrapText(p.Input+p.Cursor, width-len(promptMarker)), promptMarker)
	for _, s := range p.Suggestions {
		lines = append(lines, indentLines(WrapText(s.Name+" "+s.Description, width-len(promptIndent)), promptIndent)...)
	}
	if p.MaxLines <= 0 || len(lines) <= p.MaxLines {
		return lines
	}
	lines = lines[:p.MaxLines]
	lines[len(lines)-1] = ansi.Truncate(lines[len(lines)-1]+"...", width, "...")
	return lines
}

// WrapText breaks s into lines of at most width cells, preferring spaces
// and splitting words that do not fit on their own.
func WrapText(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{""}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

func indentLines(lines []string, first string) []string {
	rest := strings.Repeat(" ", lipgloss.Width(first))
	for i := range lines {
		if i == 0 {
			lines[i] = first + lines[i]
			continue
		}
		lines[i] = rest + strings.TrimLeft(lines[i], " ")
	}
	return lines
}

// RenderPromptBox draws lines inside style at the given outer width.
func RenderPromptBox(width int, style lipgloss.Style, lines []string) string {
	if len(lines) == 0 {
		lines = []string{""}
	}
	inner := max(width-style.GetHorizontalFrameSize(), 0)
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}
