// Package clock converts between wall-clock strings, minutes past midnight
// and angles on a 24-hour dial.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is the length of the dial in minutes.
	MinutesPerDay = 24 * 60
	// DegreesPerMinute is how far the dial turns per minute.
	DegreesPerMinute = 360.0 / MinutesPerDay
	// AngleOffset anchors 00:00 at -90 degrees, the top of a y-down dial.
	AngleOffset = -90.0
)

// TimeToMinutes converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// Parsing is permissive: the value is not range-checked, seconds are
// ignored and a missing or non-numeric field counts as 0.
// Use IsValidTime to reject malformed input.
func TimeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 3)
	hours := atoi(parts[0])
	var mins int
	if len(parts) > 1 {
		mins = atoi(parts[1])
	}
	return hours*60 + mins
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// MinutesToTime converts minutes since midnight to "HH:MM".
// Values outside a day wrap around, so 1440 is "00:00" and -30 is "23:30".
func MinutesToTime(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MinutesToAngle returns the dial angle for a minute offset.
// The result is not normalized.
func MinutesToAngle(m float64) float64 {
	return m*DegreesPerMinute + AngleOffset
}

// TimeToAngle returns the dial angle in degrees for a time string.
// 00:00 is -90, 06:00 is 0, 12:00 is 90 and 18:00 is 180.
func TimeToAngle(t string) float64 {
	return MinutesToAngle(float64(TimeToMinutes(t)))
}

// AngleToTime returns the "HH:MM" a dial angle points at, rounded to the
// nearest minute. Any angle is accepted.
func AngleToTime(angle float64) string {
	normalized := math.Mod(math.Mod(angle-AngleOffset, 360)+360, 360)
	return MinutesToTime(int(math.Round(normalized / DegreesPerMinute)))
}

// IsValidTime reports whether t is strictly "HH:MM" with hours 00-23 and
// minutes 00-59.
func IsValidTime(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return false
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours < 24 && mins < 60
}

// IsEndTimeValid reports whether end is strictly after start on the same day.
func IsEndTimeValid(start, end string) bool {
	return TimeToMinutes(end) > TimeToMinutes(start)
}

// CurrentTime formats the wall clock as "HH:MM:SS".
// A nil now uses time.Now.
func CurrentTime(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return now().Format("15:04:05")
}

// DurationMinutes returns the length of start-end in minutes.
// Inverted ranges yield 0.
func DurationMinutes(start, end string) int {
	return max(TimeToMinutes(end)-TimeToMinutes(start), 0)
}

// OverlapMinutes calculates the overlapping minutes between two time ranges.
// Returns 0 if there is no overlap.
func OverlapMinutes(start1, end1, start2, end2 string) int {
	overlapStart := max(TimeToMinutes(start1), TimeToMinutes(start2))
	overlapEnd := min(TimeToMinutes(end1), TimeToMinutes(end2))
	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// FormatDuration renders minutes as "1h30m", "45m" or "2h".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
