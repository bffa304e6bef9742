package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/scheduler"
)

func (a *App) freeCmd() *cobra.Command {
	var fit int

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Show free time inside the day window",
		Long: `List the gaps between schedules inside the configured day window.

With --fit, print the earliest start from now, rounded up to 15
minutes, where a block of that many minutes fits.`,
		Example: `  clockplan free
  clockplan free --fit=90`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			sched := scheduler.New(a.config.Day.Start, a.config.Day.End)
			schedules := a.store.Schedules()

			if fit > 0 {
				slot, ok := sched.NextAvailableStart(a.now(), schedules, fit)
				if !ok {
					fmt.Fprintf(a.out, "No free %s slot left today.\n", clock.FormatDuration(fit))
					return nil
				}
				fmt.Fprintf(a.out, "Next free %s: %s-%s\n", clock.FormatDuration(fit), slot.Start, slot.End)
				return nil
			}

			slots := sched.FreeSlots(schedules)
			fmt.Fprintf(a.out, "Day window %s-%s\n", sched.DayStart(), sched.DayEnd())
			if len(slots) == 0 {
				fmt.Fprintln(a.out, "No free time.")
				return nil
			}
			for _, slot := range slots {
				fmt.Fprintf(a.out, "  %s-%s  %s\n", slot.Start, slot.End, formatMuted(clock.FormatDuration(slot.Minutes())))
			}
			fmt.Fprintf(a.out, "Free: %s\n", formatStats(clock.FormatDuration(sched.FreeMinutes(schedules))))
			return nil
		},
	}

	cmd.Flags().IntVar(&fit, "fit", 0, "Find the next start for a block of this many minutes")
	return cmd
}
