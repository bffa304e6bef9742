// Package exchange moves schedules in and out of clockplan as JSON, YAML,
// iCalendar or an SVG drawing of the dial.
package exchange

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Format is an exchange file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
	FormatSVG  Format = "svg"
)

// ErrUnsupportedFormat is returned for unknown formats or formats that only
// work in one direction.
var ErrUnsupportedFormat = errors.New("unsupported format")

// DocumentVersion is written to JSON and YAML exports.
const DocumentVersion = 1

// Document is the JSON and YAML export shape.
type Document struct {
	Version    int                 `json:"version" yaml:"version"`
	ExportedAt string              `json:"exportedAt,omitempty" yaml:"exportedAt,omitempty"`
	Schedules  []schedule.Schedule `json:"schedules" yaml:"schedules"`
}

// ParseFormat accepts a format name, case-insensitively. "yml" and "ical"
// are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ics", "ical", "icalendar":
		return FormatICS, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// ExportOptions configures Export.
type ExportOptions struct {
	// Date the schedules are placed on for iCalendar. Defaults to today.
	Date time.Time
	// Now is stamped on documents and draws the hands on SVG.
	Now       time.Time
	CurrentID string
	Dark      bool
}

// ImportOptions configures Import.
type ImportOptions struct {
	// Location iCalendar times are converted to. Defaults to time.Local.
	Location *time.Location
}

// ImportResult holds the schedules read from a file.
type ImportResult struct {
	Inputs  []schedule.Input
	Skipped []string // human readable reasons for entries left out
}

func validateAll(inputs []schedule.Input) error {
	for i, in := range inputs {
		if err := schedule.ValidateInput(in); err != nil {
			return fmt.Errorf("schedule %d (%q): %w", i+1, in.Title, err)
		}
	}
	return nil
}

func inputsOf(schedules []schedule.Schedule) []schedule.Input {
	inputs := make([]schedule.Input, 0, len(schedules))
	for _, s := range schedules {
		inputs = append(inputs, schedule.InputOf(s).Normalize())
	}
	return inputs
}
