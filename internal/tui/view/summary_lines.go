package view

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/summary"
)

// BuildSummaryLines builds the lines of the day summary modal.
func BuildSummaryLines(sum *summary.DaySummary, lang string) []SummaryLine {
	lines := make([]SummaryLine, 0, 16)
	if sum == nil {
		return lines
	}

	if len(sum.Schedules) == 0 {
		lines = append(lines, SummaryLine{Text: "No schedules for today."})
		lines = append(lines, SummaryLine{
			Text:  "Free: " + clock.FormatDuration(sum.FreeMinutes),
			Style: SummaryLineMeta,
		})
		return lines
	}

	for _, t := range sum.Totals {
		text := fmt.Sprintf("%s %s: %s", t.Category.Icon(), t.Category.Name(lang), clock.FormatDuration(t.Minutes))
		if t.Blocks > 1 {
			text += fmt.Sprintf(" (%d blocks)", t.Blocks)
		}
		lines = append(lines, SummaryLine{Text: text})
	}
	lines = append(lines, SummaryLine{
		Text:  fmt.Sprintf("Busy: %s | Free: %s | Blocks: %d", sum.FormatBusy(), clock.FormatDuration(sum.FreeMinutes), len(sum.Schedules)),
		Style: SummaryLineMeta,
	})

	if len(sum.Conflicts) > 0 {
		lines = append(lines, SummaryLine{Text: ""})
		lines = append(lines, SummaryLine{Text: "OVERLAPS", Style: SummaryLineSection})
		for _, c := range sum.Conflicts {
			lines = append(lines, SummaryLine{
				Text: fmt.Sprintf("%s (%s-%s) and %s (%s-%s), %s",
					c.A.Title, c.A.StartTime, c.A.EndTime,
					c.B.Title, c.B.StartTime, c.B.EndTime,
					clock.FormatDuration(c.Minutes)),
				Style: SummaryLineWarning,
			})
		}
	}

	if len(sum.FreeSlots) > 0 {
		lines = append(lines, SummaryLine{Text: ""})
		lines = append(lines, SummaryLine{Text: "FREE", Style: SummaryLineSection})
		for _, slot := range sum.FreeSlots {
			lines = append(lines, SummaryLine{
				Text: fmt.Sprintf("%s-%s  %s", slot.Start, slot.End, clock.FormatDuration(slot.Minutes())),
			})
		}
	}

	if sum.Insight != "" {
		lines = append(lines, SummaryLine{Text: ""})
		lines = append(lines, SummaryLine{Text: "INSIGHT", Style: SummaryLineSection})
		for _, line := range strings.Split(sum.Insight, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lines = append(lines, SummaryLine{Text: line})
		}
	}

	return lines
}

// AgendaText renders schedules as plain text for the clipboard.
func AgendaText(schedules []schedule.Schedule, lang string) string {
	var b strings.Builder
	for _, s := range schedule.SortByTime(schedules) {
		fmt.Fprintf(&b, "%s-%s %s %s (%s)\n", s.StartTime, s.EndTime, s.Category.Icon(), s.Title, s.Category.Name(lang))
	}
	return b.String()
}
