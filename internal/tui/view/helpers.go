package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PlaceBox places content top-left or bottom-left in a w by h box whose
// empty cells carry the background color.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground makes content exactly height rows and pads short
// rows to width with bg. Rows already wider than width are left alone.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	src := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var row string
		if i < len(src) {
			row = src[i]
		}
		if gap := width - lipgloss.Width(row); gap > 0 {
			row += fill.Render(strings.Repeat(" ", gap))
		}
		out[i] = row
	}
	return strings.Join(out, "\n")
}
