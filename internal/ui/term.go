package ui

import (
	"os"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Color definitions for consistent styling across the UI.
var (
	// Current schedule: bold green so it stands out in lists
	colorCurrent = color.New(color.FgGreen, color.Bold)

	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Warnings: overlaps and conflicts
	colorWarning = color.New(color.FgRed)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// termHeight returns the terminal height, or a default if detection fails.
func termHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return 24
	}
	return height
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// categoryColor returns a 24-bit color for the category's hex value.
func categoryColor(c schedule.Category) *color.Color {
	rgb, err := colorful.Hex(c.Color())
	if err != nil {
		return color.New(color.FgBlue)
	}
	r, g, b := rgb.RGB255()
	return color.RGB(int(r), int(g), int(b))
}

// formatCategory formats text in the category's color.
func formatCategory(c schedule.Category, s string) string {
	return categoryColor(c).Sprint(s)
}

// formatCurrent formats text for the schedule in progress.
func formatCurrent(s string) string {
	return colorCurrent.Sprint(s)
}

// formatInsight formats text for insight/coaching output.
func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatWarning formats text for overlaps and conflicts.
func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
