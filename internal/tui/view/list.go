package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ListRow is one pre-formatted schedule row.
type ListRow struct {
	Text  string
	Style lipgloss.Style
}

// ListModel contains the rows of the schedule list and its viewport.
type ListModel struct {
	Width    int
	Height   int
	Rows     []ListRow
	Selected int
	Empty    string
}

// ListStyles groups styles for the schedule list.
type ListStyles struct {
	EmptyStyle lipgloss.Style
	Bg         lipgloss.Color
}

// ListOffset returns the first visible row so that selected stays in view.
func ListOffset(selected, total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	offset := selected - height/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-height {
		offset = total - height
	}
	return offset
}

// RenderList renders the visible window of rows, each padded to Width.
func RenderList(model ListModel, styles ListStyles) string {
	if model.Width <= 0 || model.Height <= 0 {
		return ""
	}
	if len(model.Rows) == 0 {
		return PlaceBox(model.Width, model.Height, lipgloss.Top, styles.EmptyStyle.Render(model.Empty), styles.Bg)
	}

	offset := ListOffset(model.Selected, len(model.Rows), model.Height)
	end := min(offset+model.Height, len(model.Rows))

	lines := make([]string, 0, model.Height)
	for _, row := range model.Rows[offset:end] {
		text := ansi.Truncate(row.Text, model.Width, "…")
		if w := ansi.StringWidth(text); w < model.Width {
			text += strings.Repeat(" ", model.Width-w)
		}
		lines = append(lines, row.Style.Render(text))
	}
	return PadLinesWithBackground(strings.Join(lines, "\n"), model.Width, model.Height, styles.Bg)
}
