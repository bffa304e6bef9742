package planner

import (
	"strings"
	"testing"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

func proposal(title, start, end string) schedule.Input {
	return schedule.Input{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Category:  schedule.CategoryWork,
	}
}

func hasField(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidator_Fields(t *testing.T) {
	v := NewValidator("", nil)

	tests := []struct {
		name      string
		in        schedule.Input
		wantValid bool
		wantField string
	}{
		{name: "valid", in: proposal("Write", "09:00", "10:00"), wantValid: true},
		{name: "one minute", in: proposal("Write", "09:00", "09:01"), wantValid: true},
		{name: "late night", in: proposal("Read", "22:00", "23:59"), wantValid: true},
		{name: "empty title", in: proposal("", "09:00", "10:00"), wantField: "title"},
		{name: "long title", in: proposal(strings.Repeat("x", 51), "09:00", "10:00"), wantField: "title"},
		{name: "bad start", in: proposal("Write", "9:00", "10:00"), wantField: "start_time"},
		{name: "bad end", in: proposal("Write", "09:00", "10"), wantField: "end_time"},
		{name: "hour 24", in: proposal("Write", "24:00", "24:30"), wantField: "start_time"},
		{name: "minute 60", in: proposal("Write", "09:60", "10:00"), wantField: "start_time"},
		{name: "end equals start", in: proposal("Write", "09:00", "09:00"), wantField: "end_time"},
		{name: "end before start", in: proposal("Write", "10:00", "09:00"), wantField: "end_time"},
		{
			name:      "bad category",
			in:        schedule.Input{Title: "Nap", StartTime: "13:00", EndTime: "13:30", Category: "sleep"},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate([]schedule.Input{tt.in})
			if result.Valid != tt.wantValid {
				t.Errorf("Validate() valid = %v, want %v (errors %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantField != "" && !hasField(result.Errors, tt.wantField) {
				t.Errorf("expected error on field %q, got %v", tt.wantField, result.Errors)
			}
		})
	}
}

func TestValidator_PastTime(t *testing.T) {
	v := NewValidator("10:30", nil)

	tests := []struct {
		start     string
		wantValid bool
	}{
		{start: "10:00", wantValid: false},
		{start: "10:30", wantValid: true},
		{start: "11:00", wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			result := v.Validate([]schedule.Input{proposal("Write", tt.start, "12:00")})
			if result.Valid != tt.wantValid {
				t.Errorf("Validate(%s) valid = %v, want %v", tt.start, result.Valid, tt.wantValid)
			}
		})
	}
}

func TestValidator_SelfOverlap(t *testing.T) {
	v := NewValidator("", nil)

	tests := []struct {
		name      string
		inputs    []schedule.Input
		wantValid bool
		wantIndex int
	}{
		{
			name:      "back to back",
			inputs:    []schedule.Input{proposal("A", "09:00", "10:00"), proposal("B", "10:00", "11:00")},
			wantValid: true,
		},
		{
			name:      "partial overlap",
			inputs:    []schedule.Input{proposal("A", "09:00", "10:00"), proposal("B", "09:30", "10:30")},
			wantIndex: 1,
		},
		{
			name:      "contained",
			inputs:    []schedule.Input{proposal("A", "09:00", "12:00"), proposal("B", "13:00", "14:00"), proposal("C", "10:00", "11:00")},
			wantIndex: 2,
		},
		{
			name:      "invalid proposals are not checked for overlap",
			inputs:    []schedule.Input{proposal("A", "09:00", "10:00"), proposal("", "09:00", "10:00")},
			wantIndex: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.inputs)
			if result.Valid != tt.wantValid {
				t.Fatalf("Validate() valid = %v, want %v (errors %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantValid {
				return
			}
			if len(result.Errors) != 1 {
				t.Fatalf("expected 1 error, got %v", result.Errors)
			}
			if result.Errors[0].Index != tt.wantIndex {
				t.Errorf("error index = %d, want %d", result.Errors[0].Index, tt.wantIndex)
			}
		})
	}
}

func TestValidator_ExistingOverlap(t *testing.T) {
	existing := []schedule.Schedule{
		{ID: "s1", Title: "Standup", StartTime: "09:00", EndTime: "09:30", Category: schedule.CategoryMeeting},
	}
	v := NewValidator("", existing)

	result := v.Validate([]schedule.Input{
		proposal("Write", "09:15", "10:00"),
		proposal("Review", "09:30", "10:30"),
	})
	if result.Valid {
		t.Fatal("expected overlap with existing schedule")
	}

	var overlapsExisting int
	for _, e := range result.Errors {
		if e.Field == "overlap" && strings.Contains(e.Message, "existing schedule 'Standup'") {
			overlapsExisting++
			if e.Index != 0 {
				t.Errorf("overlap reported on index %d, want 0", e.Index)
			}
		}
	}
	if overlapsExisting != 1 {
		t.Errorf("existing overlaps = %d, want 1 (errors %v)", overlapsExisting, result.Errors)
	}
}

func TestValidationResult_FormatErrors(t *testing.T) {
	if got := (ValidationResult{Valid: true}).FormatErrors(); got != "" {
		t.Errorf("FormatErrors() on valid result = %q", got)
	}

	r := ValidationResult{Errors: []ValidationError{
		{Index: 0, Field: "start_time", Message: "'9:00' is invalid"},
	}}
	got := r.FormatErrors()
	if !strings.Contains(got, "- Schedule 0: start_time - '9:00' is invalid\n") {
		t.Errorf("FormatErrors() = %q", got)
	}
	if !strings.HasSuffix(got, "respond again with valid JSON.") {
		t.Errorf("FormatErrors() missing retry instruction: %q", got)
	}
}
