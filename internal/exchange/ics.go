package exchange

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

const productID = "-//clockplan//clockplan//EN"

// exportICS writes one VEVENT per schedule on opts.Date. Schedules with
// notifications on carry a display alarm at the start time.
func exportICS(w io.Writer, schedules []schedule.Schedule, opts ExportOptions) error {
	date := opts.Date
	if date.IsZero() {
		date = opts.Now
	}
	loc := date.Location()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, s := range schedule.SortByTime(schedules) {
		start := day.Add(time.Duration(s.StartMinutes()) * time.Minute)
		end := day.Add(time.Duration(s.EndMinutes()) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%s-%s@clockplan", s.ID, day.Format("20060102")))
		event.SetDtStampTime(opts.Now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(s.Title)
		event.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(s.Category)))
		if s.Color != "" {
			event.SetProperty(ical.ComponentPropertyColor, s.Color)
		}

		if s.NotificationEnabled {
			alarm := event.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger("-PT0M")
			alarm.SetProperty(ical.ComponentPropertyDescription, s.Title)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// importICS reads VEVENTs as schedules on their local wall-clock times.
// Events spanning midnight, all-day events and events without a summary
// are skipped.
func importICS(data []byte, opts ImportOptions) (*ImportResult, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	result := &ImportResult{}
	for _, ev := range cal.Events() {
		summary := ""
		if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = strings.TrimSpace(p.Value)
		}
		if summary == "" {
			result.Skipped = append(result.Skipped, "event without summary")
			continue
		}

		if p := ev.GetProperty(ical.ComponentPropertyDtStart); p == nil || !strings.Contains(p.Value, "T") {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%q: all-day event", summary))
			continue
		}

		start, err := ev.GetStartAt()
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%q: %v", summary, err))
			continue
		}
		end, err := ev.GetEndAt()
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%q: %v", summary, err))
			continue
		}
		start, end = start.In(loc), end.In(loc)

		y1, m1, d1 := start.Date()
		y2, m2, d2 := end.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%q: spans midnight", summary))
			continue
		}

		in := schedule.Input{
			Title:               truncate(summary, schedule.MaxTitleLength),
			StartTime:           clock.MinutesToTime(start.Hour()*60 + start.Minute()),
			EndTime:             clock.MinutesToTime(end.Hour()*60 + end.Minute()),
			Category:            categoryOf(ev),
			NotificationEnabled: len(ev.Alarms()) > 0,
		}
		if err := schedule.ValidateInput(in); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%q: %v", summary, err))
			continue
		}
		result.Inputs = append(result.Inputs, in)
	}
	return result, nil
}

// categoryOf picks the first known category in CATEGORIES, defaulting to work.
func categoryOf(ev *ical.VEvent) schedule.Category {
	p := ev.GetProperty(ical.ComponentPropertyCategories)
	if p == nil {
		return schedule.CategoryWork
	}
	for _, part := range strings.Split(p.Value, ",") {
		if c, err := schedule.ParseCategory(part); err == nil {
			return c
		}
	}
	return schedule.CategoryWork
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
