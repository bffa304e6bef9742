package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Smallest modal box, in cells. Larger content grows the box.
const (
	overlayMinWidth  = 24
	overlayMinHeight = 5
)

// OverlayModel splices a modal box over the rendered screen. With a
// backdrop set, the screen behind an active box is redrawn in that style.
type OverlayModel struct {
	active   bool
	bgColor  lipgloss.Color
	backdrop *lipgloss.Style
}

// NewOverlayModel returns an inactive overlay.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// SetActive shows or hides the overlay.
func (o *OverlayModel) SetActive(active bool) {
	o.active = active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground sets the fill color of the box.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// SetBackdrop restyles the screen behind the box. The screen keeps its text
// and loses its own colors.
func (o *OverlayModel) SetBackdrop(style lipgloss.Style) {
	o.backdrop = &style
}

// rect is a box in screen cells.
type rect struct {
	x, y, w, h int
}

// center places a w x h box in the middle of an outerW x outerH area,
// shrinking it to fit.
func center(outerW, outerH, w, h int) rect {
	w, h = min(w, outerW), min(h, outerH)
	return rect{x: (outerW - w) / 2, y: (outerH - h) / 2, w: w, h: h}
}

// Render draws content in a centered box over base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	body := splitContent(content)
	box := center(width, height,
		max(blockWidth(body), overlayMinWidth),
		max(len(body), overlayMinHeight))

	screen := o.screenLines(base, width, height)
	for i, line := range o.panel(body, box.w, box.h) {
		row := box.y + i
		behind := screen[row]
		screen[row] = ansi.Cut(behind, 0, box.x) + line + ansi.Cut(behind, box.x+box.w, width)
	}
	return strings.Join(screen, "\n")
}

// screenLines pads or crops base to exactly height lines of width cells.
func (o OverlayModel) screenLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	for i, line := range lines {
		if o.backdrop != nil {
			line = ansi.Strip(line)
		}
		if w := lipgloss.Width(line); w > width {
			line = ansi.Cut(line, 0, width)
		} else if w < width {
			line += strings.Repeat(" ", width-w)
		}
		if o.backdrop != nil {
			line = o.backdrop.Render(line)
		}
		lines[i] = line
	}
	return lines
}

// panel renders the box: w x h cells of background with body centered.
func (o OverlayModel) panel(body []string, w, h int) []string {
	bg := o.bgSeq()
	out := make([]string, h)
	blank := bg + strings.Repeat(" ", w) + ansi.ResetStyle
	for i := range out {
		out[i] = blank
	}

	inner := center(w, h, blockWidth(body), len(body))
	for i := 0; i < inner.h; i++ {
		line := ansi.Truncate(body[i], inner.w, "")
		right := w - inner.x - lipgloss.Width(line)
		out[inner.y+i] = bg + strings.Repeat(" ", inner.x) +
			keepBackground(line, bg) +
			bg + strings.Repeat(" ", right) + ansi.ResetStyle
	}
	return out
}

func (o OverlayModel) bgSeq() string {
	if o.bgColor == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
}

// keepBackground re-applies bg after every reset inside line so styled
// spans do not punch holes in the box.
func keepBackground(line, bg string) string {
	if bg == "" || line == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bg)
	}
	return line
}

// splitContent splits modal content into lines without trailing blanks.
func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func blockWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
