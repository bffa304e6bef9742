package planner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

// ValidationError represents a single validation error for a proposed schedule.
type ValidationError struct {
	Index   int    // Index of the proposal in the input slice
	Field   string // "title", "category", "start_time", "end_time", "overlap"
	Message string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("Schedule %d: %s - %s", e.Index, e.Field, e.Message)
}

// ValidationResult contains the result of validating proposed schedules.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// FormatErrors returns the errors as feedback for the LLM.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "- %s\n", e.String())
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}

// Validator checks proposals against the rules a stored schedule must meet
// plus the day's existing schedules.
type Validator struct {
	at       string // "HH:MM"; proposals may not start before it. Empty disables the check.
	existing []schedule.Schedule
}

// NewValidator creates a new Validator.
func NewValidator(at string, existing []schedule.Schedule) *Validator {
	return &Validator{at: at, existing: existing}
}

// Validate checks each proposal's fields, then overlaps among the
// proposals and against existing schedules. Back-to-back is not an overlap.
func (v *Validator) Validate(inputs []schedule.Input) ValidationResult {
	result := ValidationResult{}

	type candidate struct {
		index int
		in    schedule.Input
	}
	var valid []candidate

	for i, in := range inputs {
		errs := v.validateFields(i, in)
		result.Errors = append(result.Errors, errs...)
		if len(errs) == 0 {
			valid = append(valid, candidate{index: i, in: in})
		}
	}

	for j := range valid {
		for i := 0; i < j; i++ {
			a, b := valid[i].in, valid[j].in
			if clock.OverlapMinutes(a.StartTime, a.EndTime, b.StartTime, b.EndTime) > 0 {
				result.Errors = append(result.Errors, ValidationError{
					Index: valid[j].index,
					Field: "overlap",
					Message: fmt.Sprintf("overlaps with proposed schedule '%s' (%s-%s)",
						a.Title, a.StartTime, a.EndTime),
				})
			}
		}
	}

	for _, c := range valid {
		probe := c.in.Apply(schedule.Schedule{})
		for _, existing := range schedule.Overlapping(probe, v.existing) {
			result.Errors = append(result.Errors, ValidationError{
				Index: c.index,
				Field: "overlap",
				Message: fmt.Sprintf("overlaps with existing schedule '%s' (%s-%s)",
					existing.Title, existing.StartTime, existing.EndTime),
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (v *Validator) validateFields(i int, in schedule.Input) []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Index: i, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case in.Title == "":
		add("title", "must not be empty")
	case utf8.RuneCountInString(in.Title) > schedule.MaxTitleLength:
		add("title", "must be at most %d characters", schedule.MaxTitleLength)
	}

	if !in.Category.Valid() {
		add("category", "'%s' is invalid (must be one of work, personal, exercise, study, meeting)", in.Category)
	}

	startOK := clock.IsValidTime(in.StartTime)
	endOK := clock.IsValidTime(in.EndTime)
	if !startOK {
		add("start_time", "'%s' is invalid (must be HH:MM format, 00:00-23:59)", in.StartTime)
	}
	if !endOK {
		add("end_time", "'%s' is invalid (must be HH:MM format, 00:00-23:59)", in.EndTime)
	}
	if startOK && endOK && !clock.IsEndTimeValid(in.StartTime, in.EndTime) {
		add("end_time", "end time '%s' must be after start time '%s'", in.EndTime, in.StartTime)
	}
	if startOK && v.at != "" && in.StartTime < v.at {
		add("start_time", "start time '%s' is in the past (now %s)", in.StartTime, v.at)
	}
	return errs
}
