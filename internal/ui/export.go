package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/exchange"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
		date   string
		dark   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export schedules as JSON, YAML, iCalendar or SVG",
		Long: `Write every schedule to a file or stdout.

The format is taken from --format, or from the --output extension.
iCalendar events are placed on --date (default today).`,
		Example: `  clockplan export --format=json
  clockplan export -o today.ics
  clockplan export -o dial.svg --dark`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			f, err := resolveFormat(format, output, exchange.FormatJSON)
			if err != nil {
				return err
			}

			now := a.now()
			opts := exchange.ExportOptions{Date: now, Now: now, Dark: dark}
			if date != "" {
				d, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
				}
				opts.Date = d
			}
			schedules := a.store.Schedules()
			if cur, ok := schedule.Current(schedules, clock.CurrentTime(a.now)); ok {
				opts.CurrentID = cur.ID
			}

			var w io.Writer = a.out
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() { _ = file.Close() }()
				w = file
			}

			if err := exchange.Export(w, f, schedules, opts); err != nil {
				return err
			}
			if w != a.out {
				fmt.Fprintf(a.out, "Exported %d schedules to %s\n", len(schedules), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json, yaml, ics or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&date, "date", "", "Date for iCalendar events (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&dark, "dark", false, "Dark SVG background")
	return cmd
}

// resolveFormat prefers an explicit format, then the file extension.
func resolveFormat(format, path string, fallback exchange.Format) (exchange.Format, error) {
	if format != "" {
		return exchange.ParseFormat(format)
	}
	if path != "" && path != "-" {
		return exchange.FormatFromPath(path)
	}
	return fallback, nil
}
