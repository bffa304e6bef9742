// Package notify fires a message when a schedule starts.
//
// Each schedule with notifications enabled gets a daily cron entry at its
// start time. Notification IDs are derived from the schedule ID and start
// time, so an ID written by one process can be cancelled by another that
// re-armed the same collection.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

// ErrDisabled is returned when notifications are turned off in the config.
var ErrDisabled = errors.New("notifications are disabled")

const idPrefix = "notify-"

// Message is what a Sender delivers.
type Message struct {
	ScheduleID string
	Title      string
	Body       string
}

// MessageFor builds the start message for s in the given language.
func MessageFor(s schedule.Schedule, lang string) Message {
	name := s.Category.Name(lang)
	title := name + " starts"
	if lang == "ko" {
		title = name + " 일정 시작"
	}
	return Message{
		ScheduleID: s.ID,
		Title:      s.Category.Icon() + " " + title,
		Body:       fmt.Sprintf("%s\n%s - %s", s.Title, s.StartTime, s.EndTime),
	}
}

// Sender delivers a message to the user.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// NotificationID returns the ID used for s.
func NotificationID(s schedule.Schedule) string {
	return idPrefix + s.ID + "-" + strings.ReplaceAll(s.StartTime, ":", "")
}

// CronSpec returns the daily cron spec firing at start ("HH:MM").
func CronSpec(start string) (string, error) {
	if !clock.IsValidTime(start) {
		return "", fmt.Errorf("start time %q: %w", start, schedule.ErrInvalidTimeFormat)
	}
	m := clock.TimeToMinutes(start)
	return fmt.Sprintf("%d %d * * *", m%60, m/60), nil
}

// CronNotifier implements store.Notifier on top of robfig/cron.
type CronNotifier struct {
	mu      sync.Mutex
	cron    *cron.Cron
	sender  Sender
	enabled bool
	lang    string
	log     *zap.Logger
	entries map[string]cron.EntryID
	running bool
}

// Option configures a CronNotifier.
type Option func(*CronNotifier)

// WithEnabled turns arming on or off. Disabled notifiers return ErrDisabled.
func WithEnabled(enabled bool) Option {
	return func(n *CronNotifier) { n.enabled = enabled }
}

// WithLanguage sets the message language ("en" or "ko").
func WithLanguage(lang string) Option {
	return func(n *CronNotifier) { n.lang = lang }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *CronNotifier) { n.log = l }
}

// WithLocation sets the time zone cron evaluates specs in.
func WithLocation(loc *time.Location) Option {
	return func(n *CronNotifier) { n.cron = cron.New(cron.WithLocation(loc)) }
}

// NewCronNotifier creates a notifier. Entries only fire after Start.
func NewCronNotifier(sender Sender, opts ...Option) *CronNotifier {
	n := &CronNotifier{
		cron:    cron.New(),
		sender:  sender,
		enabled: true,
		lang:    "en",
		log:     zap.NewNop(),
		entries: make(map[string]cron.EntryID),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Schedule arms a daily entry at s.StartTime and returns its ID.
// Arming the same schedule twice replaces the earlier entry.
func (n *CronNotifier) Schedule(_ context.Context, s schedule.Schedule) (string, error) {
	if !n.enabled {
		return "", ErrDisabled
	}
	spec, err := CronSpec(s.StartTime)
	if err != nil {
		return "", err
	}

	id := NotificationID(s)
	msg := MessageFor(s, n.lang)

	n.mu.Lock()
	defer n.mu.Unlock()

	if prev, ok := n.entries[id]; ok {
		n.cron.Remove(prev)
	}
	entryID, err := n.cron.AddFunc(spec, func() { n.fire(msg) })
	if err != nil {
		return "", fmt.Errorf("adding cron entry: %w", err)
	}
	n.entries[id] = entryID
	n.log.Debug("notification armed", zap.String("id", id), zap.String("spec", spec))
	return id, nil
}

// Cancel removes the entry for id. Unknown IDs are ignored.
func (n *CronNotifier) Cancel(_ context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if entryID, ok := n.entries[id]; ok {
		n.cron.Remove(entryID)
		delete(n.entries, id)
		n.log.Debug("notification cancelled", zap.String("id", id))
	}
	return nil
}

// CancelAll removes every entry.
func (n *CronNotifier) CancelAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, entryID := range n.entries {
		n.cron.Remove(entryID)
		delete(n.entries, id)
	}
}

// RescheduleAll cancels every entry and re-arms the schedules that have
// notifications enabled. It returns the armed IDs keyed by schedule ID.
func (n *CronNotifier) RescheduleAll(ctx context.Context, schedules []schedule.Schedule) map[string]string {
	n.CancelAll()

	armed := make(map[string]string)
	for _, s := range schedules {
		if !s.NotificationEnabled {
			continue
		}
		id, err := n.Schedule(ctx, s)
		if err != nil {
			n.log.Warn("notification not scheduled", zap.String("schedule_id", s.ID), zap.Error(err))
			continue
		}
		armed[s.ID] = id
	}
	return armed
}

// NextFire returns when the entry for id fires next. It is only known once
// the notifier is running.
func (n *CronNotifier) NextFire(id string) (time.Time, bool) {
	n.mu.Lock()
	entryID, ok := n.entries[id]
	n.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	next := n.cron.Entry(entryID).Next
	return next, !next.IsZero()
}

// Len returns the number of armed entries.
func (n *CronNotifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// Start runs the cron scheduler in its own goroutine.
func (n *CronNotifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.running {
		return
	}
	n.cron.Start()
	n.running = true
}

// Stop halts the scheduler and waits for running jobs or ctx.
func (n *CronNotifier) Stop(ctx context.Context) {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false
	n.mu.Unlock()

	select {
	case <-n.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (n *CronNotifier) fire(msg Message) {
	if err := n.sender.Send(context.Background(), msg); err != nil {
		n.log.Error("send failed", zap.String("schedule_id", msg.ScheduleID), zap.Error(err))
		return
	}
	n.log.Info("notification sent", zap.String("schedule_id", msg.ScheduleID))
}
