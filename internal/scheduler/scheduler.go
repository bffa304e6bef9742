// Package scheduler finds free time between schedules within the day window.
package scheduler

import (
	"time"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Step is the granularity suggested start times are rounded to.
const Step = 15

// Scheduler finds free slots inside [dayStart, dayEnd).
type Scheduler struct {
	dayStart string // "HH:MM"
	dayEnd   string // "HH:MM"
}

// New creates a new Scheduler with the given day window.
func New(dayStart, dayEnd string) *Scheduler {
	return &Scheduler{
		dayStart: dayStart,
		dayEnd:   dayEnd,
	}
}

// Slot is a free interval.
type Slot struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// Minutes returns the slot length.
func (s Slot) Minutes() int {
	return clock.DurationMinutes(s.Start, s.End)
}

// FreeSlots returns the gaps between schedules inside the day window,
// in time order. Overlapping schedules are merged.
func (s *Scheduler) FreeSlots(schedules []schedule.Schedule) []Slot {
	return s.freeSlotsFrom(clock.TimeToMinutes(s.dayStart), schedules)
}

func (s *Scheduler) freeSlotsFrom(from int, schedules []schedule.Schedule) []Slot {
	end := clock.TimeToMinutes(s.dayEnd)
	cursor := max(from, clock.TimeToMinutes(s.dayStart))

	var slots []Slot
	for _, sc := range schedule.SortByTime(schedules) {
		if sc.EndMinutes() <= cursor {
			continue
		}
		if sc.StartMinutes() >= end {
			break
		}
		if sc.StartMinutes() > cursor {
			slots = append(slots, Slot{
				Start: clock.MinutesToTime(cursor),
				End:   clock.MinutesToTime(sc.StartMinutes()),
			})
		}
		cursor = max(cursor, sc.EndMinutes())
	}
	if cursor < end {
		slots = append(slots, Slot{
			Start: clock.MinutesToTime(cursor),
			End:   clock.MinutesToTime(end),
		})
	}
	return slots
}

// FreeMinutes returns the total free time inside the day window.
func (s *Scheduler) FreeMinutes(schedules []schedule.Schedule) int {
	total := 0
	for _, slot := range s.FreeSlots(schedules) {
		total += slot.Minutes()
	}
	return total
}

// NextAvailableStart returns the earliest start, no earlier than now rounded
// up to the next 15 minutes, where a block of durationMinutes fits without
// overlapping any schedule. ok is false when nothing fits today.
func (s *Scheduler) NextAvailableStart(now time.Time, schedules []schedule.Schedule, durationMinutes int) (Slot, bool) {
	from := roundUpToStep(now)
	for _, slot := range s.freeSlotsFrom(from, schedules) {
		start := clock.TimeToMinutes(slot.Start)
		if start%Step != 0 {
			start += Step - start%Step
		}
		if start+durationMinutes <= clock.TimeToMinutes(slot.End) {
			return Slot{
				Start: clock.MinutesToTime(start),
				End:   clock.MinutesToTime(start + durationMinutes),
			}, true
		}
	}
	return Slot{}, false
}

// ValidateTimeSlot checks a proposed span against the day window.
// Returns an error message if invalid, empty string if valid.
func (s *Scheduler) ValidateTimeSlot(start, end string) string {
	startMin := clock.TimeToMinutes(start)
	endMin := clock.TimeToMinutes(end)

	if !clock.IsEndTimeValid(start, end) {
		return "start time must be before end time"
	}
	if startMin < clock.TimeToMinutes(s.dayStart) {
		return "start time is before day start"
	}
	if endMin > clock.TimeToMinutes(s.dayEnd) {
		return "end time is after day end"
	}
	return ""
}

// DayStart returns the configured day start time.
func (s *Scheduler) DayStart() string {
	return s.dayStart
}

// DayEnd returns the configured day end time.
func (s *Scheduler) DayEnd() string {
	return s.dayEnd
}

// roundUpToStep returns minutes since midnight of t, rounded up to the next
// 15-minute boundary.
func roundUpToStep(t time.Time) int {
	m := t.Hour()*60 + t.Minute()
	if m%Step == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return m
	}
	return (m/Step + 1) * Step
}
