package schedule

import (
	"cmp"
	"slices"

	"github.com/javiermolinar/clockplan/internal/clock"
)

// Current returns the first schedule, in collection order, whose
// [start, end) interval contains at. at may be "HH:MM" or "HH:MM:SS";
// seconds are ignored.
func Current(schedules []Schedule, at string) (Schedule, bool) {
	for _, s := range schedules {
		if s.Contains(at) {
			return s, true
		}
	}
	return Schedule{}, false
}

// HasOverlap reports whether candidate intersects any schedule in existing
// with a different ID. Touching intervals do not overlap.
func HasOverlap(candidate Schedule, existing []Schedule) bool {
	for _, s := range existing {
		if overlaps(candidate, s) {
			return true
		}
	}
	return false
}

// Overlapping returns the schedules in existing that HasOverlap would flag,
// in collection order.
func Overlapping(candidate Schedule, existing []Schedule) []Schedule {
	var out []Schedule
	for _, s := range existing {
		if overlaps(candidate, s) {
			out = append(out, s)
		}
	}
	return out
}

func overlaps(a, b Schedule) bool {
	if a.ID == b.ID {
		return false
	}
	return a.StartMinutes() < b.EndMinutes() && a.EndMinutes() > b.StartMinutes()
}

// SortByTime returns a copy ordered by start time.
// Schedules starting at the same minute keep their relative order.
func SortByTime(schedules []Schedule) []Schedule {
	sorted := slices.Clone(schedules)
	if sorted == nil {
		sorted = []Schedule{}
	}
	slices.SortStableFunc(sorted, func(a, b Schedule) int {
		return cmp.Compare(a.StartMinutes(), b.StartMinutes())
	})
	return sorted
}

// Next returns the earliest schedule starting after at.
// Ties resolve to the first in collection order.
func Next(schedules []Schedule, at string) (Schedule, bool) {
	now := clock.TimeToMinutes(at)
	var (
		next  Schedule
		found bool
	)
	for _, s := range schedules {
		start := s.StartMinutes()
		if start <= now {
			continue
		}
		if !found || start < next.StartMinutes() {
			next, found = s, true
		}
	}
	return next, found
}

// Progress returns how much of s has elapsed at the given time, in [0, 1].
func Progress(s Schedule, at string) float64 {
	d := s.Duration()
	if d == 0 {
		return 0
	}
	elapsed := clock.TimeToMinutes(at) - s.StartMinutes()
	return min(max(float64(elapsed)/float64(d), 0), 1)
}

// Remaining returns the minutes left in s at the given time.
func Remaining(s Schedule, at string) int {
	return min(max(s.EndMinutes()-clock.TimeToMinutes(at), 0), s.Duration())
}

// Conflict is a pair of overlapping schedules.
type Conflict struct {
	A, B    Schedule
	Minutes int
}

// Conflicts lists every overlapping pair, A before B in collection order.
func Conflicts(schedules []Schedule) []Conflict {
	var out []Conflict
	for i := range schedules {
		for j := i + 1; j < len(schedules); j++ {
			a, b := schedules[i], schedules[j]
			if !overlaps(a, b) {
				continue
			}
			out = append(out, Conflict{
				A:       a,
				B:       b,
				Minutes: clock.OverlapMinutes(a.StartTime, a.EndTime, b.StartTime, b.EndTime),
			})
		}
	}
	return out
}

// Find returns the schedule with the given ID.
func Find(schedules []Schedule, id string) (Schedule, bool) {
	for _, s := range schedules {
		if s.ID == id {
			return s, true
		}
	}
	return Schedule{}, false
}
