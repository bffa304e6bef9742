package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/llm"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/summary"
	"github.com/javiermolinar/clockplan/internal/tui/view"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func (a *App) showCmd() *cobra.Command {
	var (
		verbose bool
		noColor bool
		insight bool
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's schedules and totals",
		Long: `Display today's schedules, time per category, busy and free time,
and any overlaps.

Use --insight to ask the configured LLM for a short review of the day,
and --copy to put a plain-text agenda on the clipboard.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			schedules := a.store.Schedules()
			if len(schedules) == 0 {
				fmt.Fprintln(a.out, "No schedules for today.")
				return nil
			}

			now := a.now()
			at := clock.CurrentTime(a.now)
			opts := summary.Options{DayStart: a.config.Day.Start, DayEnd: a.config.Day.End}
			sum := summary.SummarizeDay(schedules, at, opts)

			fmt.Fprintf(a.out, "=== %s ===\n\n", formatHeader(now.Format("Monday, January 2, 2006")))

			printOpts := PrintOpts{
				At:      at,
				Lang:    a.config.UI.Language,
				Verbose: verbose,
			}
			if sum.Current != nil {
				printOpts.CurrentID = sum.Current.ID
			}
			PrintSchedules(a.out, sum.Schedules, printOpts)

			fmt.Fprintln(a.out)
			PrintSummary(a.out, sum, a.config.UI.Language)

			if insight {
				client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
				if err != nil {
					return fmt.Errorf("creating LLM client: %w", err)
				}
				fmt.Fprintln(a.out, formatMuted("\nReviewing..."))
				if err := sum.AddInsight(context.Background(), client, opts); err != nil {
					return fmt.Errorf("reviewing day: %w", err)
				}
				fmt.Fprintln(a.out)
				PrintInsightWrapped(a.out, sum.Insight, min(termWidth(), 100))
			}

			if copyOut {
				if err := copyToClipboard(view.AgendaText(sum.Schedules, a.config.UI.Language)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(a.out, formatMuted("Agenda copied to clipboard"))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the LLM to review the day")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the agenda to the clipboard")
	return cmd
}

func (a *App) nowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Show the schedule in progress and what is next",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			a.printNow(clock.CurrentTime(a.now), a.store.Schedules())
			return nil
		},
	}
}

// printNow prints the current-schedule card and the next schedule.
func (a *App) printNow(at string, schedules []schedule.Schedule) {
	lang := a.config.UI.Language
	fmt.Fprintf(a.out, "%s  %s\n\n", formatHeader("Now"), at[:5])

	if cur, ok := schedule.Current(schedules, at); ok {
		fmt.Fprintf(a.out, "%s %s\n", cur.Category.Icon(), formatCategory(cur.Category, formatHeader(cur.Title)))
		fmt.Fprintf(a.out, "  %s  →  %s   %s\n", cur.StartTime, cur.EndTime, formatMuted(cur.Category.Name(lang)))
		fmt.Fprintf(a.out, "  %s  %s left\n",
			ProgressBar(schedule.Progress(cur, at), 20),
			clock.FormatDuration(schedule.Remaining(cur, at)))
	} else {
		fmt.Fprintln(a.out, formatMuted(view.FreeTimeLabel(lang)))
	}

	if next, ok := schedule.Next(schedules, at); ok {
		wait := next.StartMinutes() - clock.TimeToMinutes(at)
		fmt.Fprintf(a.out, "\nNext: %s-%s %s %s %s\n",
			next.StartTime, next.EndTime, next.Category.Icon(), next.Title,
			formatMuted("in "+clock.FormatDuration(wait)))
	}
}
