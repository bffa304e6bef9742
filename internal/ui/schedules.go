package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/scheduler"
	"github.com/javiermolinar/clockplan/internal/store"
)

// ErrAmbiguousID is returned when an ID prefix matches several schedules.
var ErrAmbiguousID = errors.New("id prefix matches more than one schedule")

// errCancelled is returned when the user declines a confirmation.
var errCancelled = errors.New("cancelled")

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		end      string
		duration int
		category string
		noNotify bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a schedule for today",
		Long: `Add a titled block of time to today's clock.

With --duration and no --start, the block goes into the next free slot
after now, rounded up to 15 minutes.

Examples:
  clockplan add "Write report" --start=09:00 --end=11:00 --category=work
  clockplan add "Run" --duration=45 --category=exercise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			cat, err := schedule.ParseCategory(category)
			if err != nil {
				return err
			}
			in := schedule.Input{
				Title:               strings.Join(args, " "),
				StartTime:           start,
				EndTime:             end,
				Category:            cat,
				NotificationEnabled: !noNotify,
			}

			if err := a.fillSpan(&in, duration); err != nil {
				return err
			}

			ctx := context.Background()
			s, err := a.addSchedule(ctx, in, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Added %s %s-%s %s [%s]\n",
				formatMuted("#"+ShortID(s.ID)), s.StartTime, s.EndTime, s.Title, s.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Length in minutes instead of --end")
	cmd.Flags().StringVar(&category, "category", string(schedule.CategoryWork), "Category: work, personal, exercise, study or meeting")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Do not notify when the schedule starts")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Add even if it overlaps another schedule")

	return cmd
}

// fillSpan derives missing start or end times from a duration.
func (a *App) fillSpan(in *schedule.Input, duration int) error {
	switch {
	case duration < 0:
		return fmt.Errorf("duration must be positive")
	case duration == 0:
		if in.StartTime == "" || in.EndTime == "" {
			return fmt.Errorf("--start and --end are required without --duration")
		}
		return nil
	case in.EndTime != "":
		return fmt.Errorf("use either --end or --duration, not both")
	case in.StartTime != "":
		if !clock.IsValidTime(in.StartTime) {
			return fmt.Errorf("start time: %w", schedule.ErrInvalidTimeFormat)
		}
		endMin := clock.TimeToMinutes(in.StartTime) + duration
		if endMin > 23*60+59 {
			return fmt.Errorf("schedule would run past midnight")
		}
		in.EndTime = clock.MinutesToTime(endMin)
		return nil
	default:
		sched := scheduler.New(a.config.Day.Start, a.config.Day.End)
		slot, ok := sched.NextAvailableStart(a.now(), a.store.Schedules(), duration)
		if !ok {
			return fmt.Errorf("no free %s slot left today", clock.FormatDuration(duration))
		}
		in.StartTime, in.EndTime = slot.Start, slot.End
		return nil
	}
}

// addSchedule validates in, asks before adding an overlapping schedule and
// saves the collection.
func (a *App) addSchedule(ctx context.Context, in schedule.Input, force bool) (schedule.Schedule, error) {
	in = in.Normalize()
	if err := schedule.ValidateInput(in); err != nil {
		return schedule.Schedule{}, err
	}
	a.warnOutsideDay(in)
	if err := a.confirmOverlap(in.Apply(schedule.Schedule{}), a.store.Schedules(), force); err != nil {
		return schedule.Schedule{}, err
	}

	s, err := a.store.Add(ctx, in)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("adding schedule: %w", err)
	}
	if err := a.store.Save(ctx); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

// warnOutsideDay notes a span that leaves the configured day window.
// The schedule is still saved.
func (a *App) warnOutsideDay(in schedule.Input) {
	sched := scheduler.New(a.config.Day.Start, a.config.Day.End)
	if msg := sched.ValidateTimeSlot(in.StartTime, in.EndTime); msg != "" {
		fmt.Fprintf(a.out, "%s\n", formatWarning(fmt.Sprintf("Note: %s (day %s-%s)", msg, sched.DayStart(), sched.DayEnd())))
	}
}

// confirmOverlap lists the schedules candidate overlaps and asks whether to
// continue. force skips the question.
func (a *App) confirmOverlap(candidate schedule.Schedule, existing []schedule.Schedule, force bool) error {
	overlapping := schedule.Overlapping(candidate, existing)
	if len(overlapping) == 0 || force {
		return nil
	}
	fmt.Fprintln(a.out, formatWarning("This schedule overlaps:"))
	for _, s := range overlapping {
		fmt.Fprintf(a.out, "  %s-%s %s\n", s.StartTime, s.EndTime, s.Title)
	}
	if !a.promptYesNo("Continue anyway?") {
		return errCancelled
	}
	return nil
}

func (a *App) editCmd() *cobra.Command {
	var (
		title    string
		start    string
		end      string
		category string
		notify   string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change a schedule",
		Long: `Change the title, times, category or notification of a schedule.
Only the flags you pass are changed. The id may be any unique prefix.

Example:
  clockplan edit 3f2a --start=10:00 --end=11:30 --notify=off`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			current, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			var patch schedule.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("start") {
				patch.StartTime = &start
			}
			if flags.Changed("end") {
				patch.EndTime = &end
			}
			if flags.Changed("category") {
				cat, err := schedule.ParseCategory(category)
				if err != nil {
					return err
				}
				patch.Category = &cat
			}
			if flags.Changed("notify") {
				on, err := parseOnOff(notify)
				if err != nil {
					return err
				}
				patch.NotificationEnabled = &on
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to change")
			}

			updated, err := a.editSchedule(context.Background(), current, patch, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated %s %s-%s %s [%s]\n",
				formatMuted("#"+ShortID(updated.ID)), updated.StartTime, updated.EndTime, updated.Title, updated.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&notify, "notify", "", "Notification: on or off")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Save even if it overlaps another schedule")

	return cmd
}

// editSchedule applies patch after the overlap check and saves.
func (a *App) editSchedule(ctx context.Context, current schedule.Schedule, patch schedule.Patch, force bool) (schedule.Schedule, error) {
	in := patch.Merge(schedule.InputOf(current)).Normalize()
	if err := schedule.ValidateInput(in); err != nil {
		return schedule.Schedule{}, err
	}

	a.warnOutsideDay(in)

	others := make([]schedule.Schedule, 0, a.store.Len())
	for _, s := range a.store.Schedules() {
		if s.ID != current.ID {
			others = append(others, s)
		}
	}
	if err := a.confirmOverlap(in.Apply(current), others, force); err != nil {
		return schedule.Schedule{}, err
	}

	updated, err := a.store.Update(ctx, current.ID, patch)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("updating schedule: %w", err)
	}
	if err := a.store.Save(ctx); err != nil {
		return schedule.Schedule{}, err
	}
	return updated, nil
}

func (a *App) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a schedule",
		Long: `Delete a schedule and cancel its notification.
The id may be any unique prefix.

Example:
  clockplan delete 3f2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			s, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			if !yes && !a.promptYesNo(fmt.Sprintf("Delete %q (%s-%s)?", s.Title, s.StartTime, s.EndTime)) {
				return errCancelled
			}

			ctx := context.Background()
			if err := a.store.Delete(ctx, s.ID); err != nil {
				return fmt.Errorf("deleting schedule: %w", err)
			}
			if err := a.store.Save(ctx); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Deleted %s %s\n", formatMuted("#"+ShortID(s.ID)), s.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *App) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every schedule",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			n := a.store.Len()
			if n == 0 {
				fmt.Fprintln(a.out, "No schedules to clear.")
				return nil
			}
			if !yes && !a.promptYesNo(fmt.Sprintf("Delete all %d schedules?", n)) {
				return errCancelled
			}

			ctx := context.Background()
			a.store.ClearAll(ctx)
			if err := a.store.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Cleared %d schedules\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// resolveID finds the schedule whose ID is or starts with prefix.
func (a *App) resolveID(prefix string) (schedule.Schedule, error) {
	prefix = strings.TrimPrefix(strings.TrimSpace(prefix), "#")
	if prefix == "" {
		return schedule.Schedule{}, fmt.Errorf("%w: empty id", store.ErrNotFound)
	}
	if s, err := a.store.Get(prefix); err == nil {
		return s, nil
	}

	var matches []schedule.Schedule
	for _, s := range a.store.Schedules() {
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return schedule.Schedule{}, fmt.Errorf("%w: %s", store.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return schedule.Schedule{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

func parseOnOff(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", v)
	}
}
