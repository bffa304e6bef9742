package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List schedules with their ids",
		Long: `List every schedule in time order, with the id prefix used by
edit and delete.`,
		Example: `  clockplan list
  clockplan list --category=meeting`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			schedules := a.store.Schedules()
			if category != "" {
				cat, err := schedule.ParseCategory(category)
				if err != nil {
					return err
				}
				schedules = filterCategory(schedules, cat)
			}

			if len(schedules) == 0 {
				fmt.Fprintln(a.out, "No schedules found.")
				return nil
			}

			at := clock.CurrentTime(a.now)
			opts := PrintOpts{
				At:      at,
				Lang:    a.config.UI.Language,
				ShowIDs: true,
			}
			if cur, ok := schedule.Current(schedules, at); ok {
				opts.CurrentID = cur.ID
			}
			PrintSchedules(a.out, schedules, opts)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list this category")
	return cmd
}

func filterCategory(schedules []schedule.Schedule, cat schedule.Category) []schedule.Schedule {
	var out []schedule.Schedule
	for _, s := range schedules {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}
