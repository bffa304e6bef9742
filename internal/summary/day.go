// Package summary aggregates a day of schedules for the CLI and TUI.
package summary

import (
	"context"
	"fmt"
	"sort"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/llm"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/scheduler"
)

// CategoryTotal is the time booked under one category.
type CategoryTotal struct {
	Category schedule.Category
	Minutes  int
	Blocks   int
}

// DaySummary holds aggregated day data and optional insight.
type DaySummary struct {
	At          string // "HH:MM:SS" the summary was computed for
	Schedules   []schedule.Schedule
	Totals      []CategoryTotal // in category table order, zero totals omitted
	BusyMinutes int             // union of all schedules, overlaps counted once
	FreeMinutes int             // free time inside the day window
	FreeSlots   []scheduler.Slot
	Conflicts   []schedule.Conflict
	Current     *schedule.Schedule
	Next        *schedule.Schedule
	Insight     string
}

// Options configures the day window used for free time.
type Options struct {
	DayStart string
	DayEnd   string
}

// SummarizeDay builds summary data for schedules at the given time.
func SummarizeDay(schedules []schedule.Schedule, at string, opts Options) *DaySummary {
	sorted := schedule.SortByTime(schedules)
	sched := scheduler.New(opts.DayStart, opts.DayEnd)

	s := &DaySummary{
		At:          at,
		Schedules:   sorted,
		Totals:      categoryTotals(sorted),
		BusyMinutes: busyMinutes(sorted),
		FreeSlots:   sched.FreeSlots(sorted),
		FreeMinutes: sched.FreeMinutes(sorted),
		Conflicts:   schedule.Conflicts(schedules),
	}
	if cur, ok := schedule.Current(schedules, at); ok {
		s.Current = &cur
	}
	if next, ok := schedule.Next(schedules, at); ok {
		s.Next = &next
	}
	return s
}

// AddInsight asks the LLM to review the day.
func (s *DaySummary) AddInsight(ctx context.Context, client llm.Client, opts Options) error {
	if len(s.Schedules) == 0 {
		return nil
	}
	at := s.At
	if len(at) > 5 {
		at = at[:5]
	}
	insight, err := llm.NewReviewer(client).ReviewDay(ctx, s.Schedules, at, opts.DayStart, opts.DayEnd)
	if err != nil {
		return fmt.Errorf("reviewing day: %w", err)
	}
	s.Insight = insight
	return nil
}

func categoryTotals(schedules []schedule.Schedule) []CategoryTotal {
	byCat := make(map[schedule.Category]*CategoryTotal)
	for _, sc := range schedules {
		t, ok := byCat[sc.Category]
		if !ok {
			t = &CategoryTotal{Category: sc.Category}
			byCat[sc.Category] = t
		}
		t.Minutes += sc.Duration()
		t.Blocks++
	}

	order := make(map[schedule.Category]int)
	for i, info := range schedule.Categories() {
		order[info.ID] = i
	}
	totals := make([]CategoryTotal, 0, len(byCat))
	for _, t := range byCat {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		oi, iok := order[totals[i].Category]
		oj, jok := order[totals[j].Category]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// busyMinutes expects schedules sorted by start.
func busyMinutes(sorted []schedule.Schedule) int {
	total := 0
	cursor := 0
	for _, sc := range sorted {
		start := max(sc.StartMinutes(), cursor)
		if sc.EndMinutes() > start {
			total += sc.EndMinutes() - start
		}
		cursor = max(cursor, sc.EndMinutes())
	}
	return total
}

// FormatBusy renders busy time, e.g. "3h30m".
func (s *DaySummary) FormatBusy() string {
	return clock.FormatDuration(s.BusyMinutes)
}
