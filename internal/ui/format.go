package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/summary"
)

// shortIDLength is how much of a schedule ID the CLI prints.
const shortIDLength = 8

// PrintOpts configures schedule printing behavior.
type PrintOpts struct {
	At            string // "HH:MM:SS" used to mark the current schedule
	CurrentID     string
	Lang          string // "en" or "ko"
	Verbose       bool   // Show full titles
	ShowIDs       bool
	MaxTitleWidth int // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// Base: "  ▶ HH:MM-HH:MM  💼 Personal  " plus "  1h30m  🔔" suffix
	overhead := 44
	if o.ShowIDs {
		overhead += shortIDLength + 3
	}
	available := termWidth() - overhead
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// ShortID returns the printable prefix of a schedule ID.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// PrintScheduleRow prints a single schedule row with consistent formatting.
func PrintScheduleRow(w io.Writer, s schedule.Schedule, opts PrintOpts, maxTitleWidth int) {
	marker := " "
	span := s.StartTime + "-" + s.EndTime
	if opts.CurrentID != "" && s.ID == opts.CurrentID {
		marker = formatCurrent("▶")
		span = formatCurrent(span)
	}

	category := formatCategory(s.Category, fmt.Sprintf("%s %-8s", s.Category.Icon(), s.Category.Name(opts.Lang)))
	title := truncate(s.Title, maxTitleWidth)
	title += strings.Repeat(" ", max(maxTitleWidth-ansi.StringWidth(title), 0))

	bell := " "
	if s.NotificationEnabled {
		bell = "🔔"
	}

	line := fmt.Sprintf("  %s %s  %s  %s  %6s  %s",
		marker, span, category, title, formatMuted(clock.FormatDuration(s.Duration())), bell)
	if opts.ShowIDs {
		line += "  " + formatMuted("#"+ShortID(s.ID))
	}
	fmt.Fprintln(w, strings.TrimRight(line, " "))
}

// PrintSchedules prints the schedules in time order.
func PrintSchedules(w io.Writer, schedules []schedule.Schedule, opts PrintOpts) {
	width := opts.CalcMaxTitleWidth(24)
	for _, s := range schedule.SortByTime(schedules) {
		PrintScheduleRow(w, s, opts, width)
	}
}

// PrintSummary prints per-category totals, busy and free time, and conflicts.
func PrintSummary(w io.Writer, sum *summary.DaySummary, lang string) {
	parts := make([]string, 0, len(sum.Totals))
	for _, t := range sum.Totals {
		parts = append(parts, formatCategory(t.Category,
			fmt.Sprintf("%s %s", t.Category.Name(lang), clock.FormatDuration(t.Minutes))))
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, strings.Join(parts, " | "))
	}
	fmt.Fprintf(w, "Busy: %s | Free: %s | Blocks: %d\n",
		formatStats(sum.FormatBusy()),
		formatStats(clock.FormatDuration(sum.FreeMinutes)),
		len(sum.Schedules))

	for _, c := range sum.Conflicts {
		fmt.Fprintln(w, formatWarning(fmt.Sprintf("Overlap: %q (%s-%s) and %q (%s-%s), %s",
			c.A.Title, c.A.StartTime, c.A.EndTime,
			c.B.Title, c.B.StartTime, c.B.EndTime,
			clock.FormatDuration(c.Minutes))))
	}
}

// ProgressBar renders how far through a schedule the clock is.
func ProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", formatStats(bar), formatStats(fmt.Sprintf("%d%%", int(progress*100))))
}

// truncate shortens s to width display columns, ending with "...".
func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "...")
}

// PrintInsightWrapped formats and prints insight text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	// Strip markdown code blocks
	text = stripMarkdownCodeBlocks(text)

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		// Detect and format special line types
		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasPrefix(trimmed, "!!"):
		// Reviewer marks overlaps with "!!"
		prefix = "  " + formatWarning("!!") + " "
		content = strings.TrimSpace(strings.TrimPrefix(trimmed, "!!"))
		contentWidth = width - 5
	}

	return prefix, content, contentWidth, isHeader
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	line := ""
	continuationPrefix := strings.Repeat(" ", ansi.StringWidth(prefix))
	isFirstLine := true

	for _, word := range words {
		switch {
		case line == "":
			line = word
		case ansi.StringWidth(line)+1+ansi.StringWidth(word) <= width:
			line += " " + word
		default:
			printLine(w, prefix, continuationPrefix, line, isFirstLine)
			isFirstLine = false
			line = word
		}
	}

	if line != "" {
		printLine(w, prefix, continuationPrefix, line, isFirstLine)
	}
}

func printLine(w io.Writer, prefix, continuationPrefix, line string, isFirstLine bool) {
	if isFirstLine {
		fmt.Fprintln(w, prefix+formatInsight(line))
	} else {
		fmt.Fprintln(w, continuationPrefix+formatInsight(line))
	}
}

// stripMarkdownCodeBlocks removes ```...``` fences from text.
func stripMarkdownCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			continue // Skip the fence line
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
