package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/clockplan/internal/dial"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Export writes schedules to w in format.
func Export(w io.Writer, format Format, schedules []schedule.Schedule, opts ExportOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	switch format {
	case FormatJSON:
		return exportJSON(w, schedules, opts)
	case FormatYAML:
		return exportYAML(w, schedules, opts)
	case FormatICS:
		return exportICS(w, schedules, opts)
	case FormatSVG:
		return dial.WriteSVG(w, schedules, dial.SVGOptions{
			Now:       opts.Now,
			CurrentID: opts.CurrentID,
			Dark:      opts.Dark,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func document(schedules []schedule.Schedule, opts ExportOptions) Document {
	if schedules == nil {
		schedules = []schedule.Schedule{}
	}
	return Document{
		Version:    DocumentVersion,
		ExportedAt: opts.Now.UTC().Format(time.RFC3339),
		Schedules:  schedules,
	}
}

func exportJSON(w io.Writer, schedules []schedule.Schedule, opts ExportOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document(schedules, opts)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func exportYAML(w io.Writer, schedules []schedule.Schedule, opts ExportOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document(schedules, opts)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
