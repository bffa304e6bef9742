package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/dial"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

func (a *App) clockCmd() *cobra.Command {
	var (
		radius  int
		svgPath string
		noHands bool
		dark    bool
	)

	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Draw today's 24-hour dial",
		Long: `Draw today's schedules as arcs on a 24-hour dial, with 00:00 at
the top. The schedule in progress is shaded and the hands show the
current time.

Examples:
  clockplan clock
  clockplan clock --radius=14
  clockplan clock --svg=today.svg --dark`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			schedules := a.store.Schedules()
			now := a.now()
			currentID := ""
			if cur, ok := schedule.Current(schedules, clock.CurrentTime(a.now)); ok {
				currentID = cur.ID
			}

			if svgPath != "" {
				return writeSVGFile(svgPath, schedules, dial.SVGOptions{
					Now:       handsTime(now, noHands),
					CurrentID: currentID,
					Dark:      dark,
				})
			}

			if radius <= 0 {
				radius = fitRadius(termWidth(), termHeight())
			}
			grid := dial.Rasterize(schedules, dial.RasterOptions{
				Radius:    radius,
				Now:       handsTime(now, noHands),
				CurrentID: currentID,
			})
			fmt.Fprintln(a.out, grid.Render(dial.DefaultStyles()))
			a.printLegend(schedules, currentID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&radius, "radius", "r", 0, "Dial radius in rows (default fits the terminal)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Write the dial as SVG to this file instead")
	cmd.Flags().BoolVar(&noHands, "no-hands", false, "Do not draw the clock hands")
	cmd.Flags().BoolVar(&dark, "dark", false, "Dark SVG background")
	return cmd
}

// printLegend lists the schedules drawn on the dial in their colors.
func (a *App) printLegend(schedules []schedule.Schedule, currentID string) {
	for _, s := range schedule.SortByTime(schedules) {
		line := fmt.Sprintf("%c %s-%s %s", dial.GlyphArc, s.StartTime, s.EndTime, s.Title)
		if s.ID == currentID {
			line = fmt.Sprintf("%c %s-%s %s", dial.GlyphCurrent, s.StartTime, s.EndTime, s.Title)
		}
		fmt.Fprintln(a.out, formatCategory(s.Category, line))
	}
}

// fitRadius picks the largest radius whose grid fits the terminal, leaving
// room for the legend.
func fitRadius(width, height int) int {
	byHeight := (height - 8) / 2
	byWidth := (width - 1) / 4
	return min(max(min(byHeight, byWidth), 4), 20)
}

// handsTime returns the zero time when hands are turned off.
func handsTime(now time.Time, off bool) time.Time {
	if off {
		return time.Time{}
	}
	return now
}

func writeSVGFile(path string, schedules []schedule.Schedule, opts dial.SVGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := dial.WriteSVG(f, schedules, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing svg: %w", err)
	}
	return f.Close()
}
