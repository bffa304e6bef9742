package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/notify"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

func (a *App) notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run or manage the start-time notification daemon",
		Long: `The notification daemon sends a message when a schedule with
notifications enabled starts. It reloads the schedules periodically,
so changes made from the CLI or TUI are picked up.

Notifications only fire while the daemon runs. The CLI and the TUI
record which schedules notify but never send anything themselves.

Run it in the foreground with "notify run", or install it as a
per-user service:
  clockplan notify install
  clockplan notify start`,
	}

	cmd.AddCommand(a.notifyRunCmd())
	for _, action := range notify.ServiceActions {
		cmd.AddCommand(a.notifyControlCmd(action))
	}
	cmd.AddCommand(a.notifyStatusCmd())
	return cmd
}

// newDaemon builds a daemon reading the configured backend. The returned
// func closes the backend once the daemon is done.
func (a *App) newDaemon() (*notify.Daemon, func(), error) {
	if !a.config.Notifications.Enabled {
		return nil, nil, notify.ErrDisabled
	}
	backend, err := openBackend(a.config)
	if err != nil {
		return nil, nil, err
	}
	release := func() { closeBackend(backend) }

	sender, err := notify.NewSender(a.config.Notifications.Sender, os.Stdout, a.log)
	if err != nil {
		release()
		return nil, nil, err
	}
	interval, err := a.config.PollInterval()
	if err != nil {
		release()
		return nil, nil, err
	}
	notifier := notify.NewCronNotifier(sender,
		notify.WithLanguage(a.config.UI.Language),
		notify.WithLogger(a.log))
	return notify.NewDaemon(backend, notifier, a.log, interval), release, nil
}

// nextFires arms schedules on a silent notifier and reads when each one
// fires next, keyed by schedule ID.
func nextFires(ctx context.Context, schedules []schedule.Schedule) map[string]time.Time {
	n := notify.NewCronNotifier(notify.SenderFunc(func(context.Context, notify.Message) error { return nil }))
	armed := n.RescheduleAll(ctx, schedules)
	n.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		n.Stop(stopCtx)
	}()

	next := make(map[string]time.Time, len(armed))
	for scheduleID, notificationID := range armed {
		if at, ok := n.NextFire(notificationID); ok {
			next[scheduleID] = at
		}
	}
	return next
}

// serviceArgs are the arguments the service manager starts us with.
func serviceArgs() []string {
	return []string{"notify", "run"}
}

func (a *App) notifyRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the notification daemon in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			daemon, release, err := a.newDaemon()
			if err != nil {
				return err
			}
			defer release()

			if !service.Interactive() {
				svc, err := notify.NewService(daemon, serviceArgs())
				if err != nil {
					return err
				}
				return svc.Run()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintln(a.out, "Notification daemon running. Press Ctrl+C to stop.")
			daemon.Run(ctx)
			return nil
		},
	}
}

func (a *App) notifyControlCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: fmt.Sprintf("%s the notification service", action),
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := notify.NewService(nil, serviceArgs())
			if err != nil {
				return err
			}
			if err := notify.Control(svc, action); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Service %s: %s done\n", notify.ServiceName, action)
			return nil
		},
	}
}

func (a *App) notifyStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the service state and armed schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := notify.NewService(nil, serviceArgs())
			if err != nil {
				return err
			}
			state, err := notify.StatusText(svc)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Service %s: %s\n", notify.ServiceName, state)
			if state != "running" {
				fmt.Fprintln(a.out, formatMuted(`Nothing is sent until the daemon runs ("clockplan notify run").`))
			}
			if !a.config.Notifications.Enabled {
				fmt.Fprintln(a.out, formatWarning("Notifications are disabled in the config."))
			}

			if err := a.ensureStore(); err != nil {
				return err
			}
			var armed []schedule.Schedule
			for _, s := range a.store.Schedules() {
				if s.NotificationEnabled {
					armed = append(armed, s)
				}
			}
			if len(armed) == 0 {
				fmt.Fprintln(a.out, "No schedules with notifications.")
				return nil
			}
			a.printNotifying(cmd.Context(), armed)
			return nil
		},
	}
}

// printNotifying lists schedules with notifications and their next firing.
func (a *App) printNotifying(ctx context.Context, schedules []schedule.Schedule) {
	if ctx == nil {
		ctx = context.Background()
	}
	next := nextFires(ctx, schedules)
	fmt.Fprintf(a.out, "%d schedules notify at their start:\n", len(schedules))
	for _, s := range schedule.SortByTime(schedules) {
		when := "-"
		if at, ok := next[s.ID]; ok {
			when = at.Format("Mon 15:04")
		}
		fmt.Fprintf(a.out, "  %s  %s %s  next %s  %s\n",
			s.StartTime, s.Category.Icon(), s.Title, when, formatMuted(notify.NotificationID(s)))
	}
}
