// Package schedule defines the core domain types for clockplan and the
// queries that derive current, overlapping and ordered views of a day.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/javiermolinar/clockplan/internal/clock"
)

// MaxTitleLength is the longest title accepted, in characters.
const MaxTitleLength = 50

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrTitleTooLong      = fmt.Errorf("title cannot exceed %d characters", MaxTitleLength)
	ErrInvalidCategory   = errors.New("category must be one of work, personal, exercise, study, meeting")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Schedule is a titled, categorized block of time within a single day.
// JSON keys follow the on-disk record shape shared by every backend.
type Schedule struct {
	ID                  string   `json:"id" yaml:"id"`
	Title               string   `json:"title" yaml:"title"`
	StartTime           string   `json:"startTime" yaml:"startTime"` // "HH:MM"
	EndTime             string   `json:"endTime" yaml:"endTime"`     // "HH:MM"
	Category            Category `json:"category" yaml:"category"`
	Color               string   `json:"color" yaml:"color"`
	NotificationEnabled bool     `json:"notificationEnabled" yaml:"notificationEnabled"`
	NotificationID      string   `json:"notificationId,omitempty" yaml:"notificationId,omitempty"`
	CreatedAt           string   `json:"createdAt" yaml:"createdAt"` // RFC 3339
	UpdatedAt           string   `json:"updatedAt" yaml:"updatedAt"` // RFC 3339
}

// StartMinutes returns the start as minutes since midnight.
func (s Schedule) StartMinutes() int {
	return clock.TimeToMinutes(s.StartTime)
}

// EndMinutes returns the end as minutes since midnight.
func (s Schedule) EndMinutes() int {
	return clock.TimeToMinutes(s.EndTime)
}

// Duration returns the schedule length in minutes.
func (s Schedule) Duration() int {
	return clock.DurationMinutes(s.StartTime, s.EndTime)
}

// Contains reports whether at ("HH:MM" or "HH:MM:SS") falls in [start, end).
func (s Schedule) Contains(at string) bool {
	m := clock.TimeToMinutes(at)
	return m >= s.StartMinutes() && m < s.EndMinutes()
}

// Input holds the user-editable fields of a schedule.
type Input struct {
	Title               string
	StartTime           string
	EndTime             string
	Category            Category
	NotificationEnabled bool
}

// DefaultInput returns the values a new schedule form starts with.
func DefaultInput() Input {
	return Input{
		StartTime:           "09:00",
		EndTime:             "10:00",
		Category:            CategoryWork,
		NotificationEnabled: true,
	}
}

// Normalize trims the title.
func (in Input) Normalize() Input {
	in.Title = strings.TrimSpace(in.Title)
	return in
}

// ValidateInput checks title, times and category.
// The title is expected to be normalized.
func ValidateInput(in Input) error {
	if in.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if !clock.IsValidTime(in.StartTime) {
		return fmt.Errorf("start time: %w", ErrInvalidTimeFormat)
	}
	if !clock.IsValidTime(in.EndTime) {
		return fmt.Errorf("end time: %w", ErrInvalidTimeFormat)
	}
	if !clock.IsEndTimeValid(in.StartTime, in.EndTime) {
		return ErrEndBeforeStart
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Apply copies the input onto s. The color follows the category.
func (in Input) Apply(s Schedule) Schedule {
	s.Title = in.Title
	s.StartTime = in.StartTime
	s.EndTime = in.EndTime
	s.Category = in.Category
	s.Color = in.Category.Color()
	s.NotificationEnabled = in.NotificationEnabled
	return s
}

// InputOf extracts the editable fields of s.
func InputOf(s Schedule) Input {
	return Input{
		Title:               s.Title,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		Category:            s.Category,
		NotificationEnabled: s.NotificationEnabled,
	}
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title               *string
	StartTime           *string
	EndTime             *string
	Category            *Category
	NotificationEnabled *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.StartTime == nil && p.EndTime == nil &&
		p.Category == nil && p.NotificationEnabled == nil
}

// Merge overlays the non-nil fields of p onto in.
func (p Patch) Merge(in Input) Input {
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.StartTime != nil {
		in.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		in.EndTime = *p.EndTime
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.NotificationEnabled != nil {
		in.NotificationEnabled = *p.NotificationEnabled
	}
	return in
}
