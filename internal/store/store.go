// Package store owns the in-memory schedule collection and its persistence.
//
// Persistence is explicit: Load reads the collection from the backend and
// Save writes it back. Mutations only change memory; callers decide when to
// Save (after each mutation for the CLI and TUI).
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// ErrNotFound is returned when no schedule has the requested ID.
var ErrNotFound = errors.New("schedule not found")

// Backend persists the whole collection in insertion order.
type Backend interface {
	Load(ctx context.Context) ([]schedule.Schedule, error)
	Save(ctx context.Context, schedules []schedule.Schedule) error
}

// Notifier arms and cancels start-time notifications.
// Schedule returns an opaque notification ID.
type Notifier interface {
	Schedule(ctx context.Context, s schedule.Schedule) (string, error)
	Cancel(ctx context.Context, id string) error
}

// Store is the schedule repository used by the CLI and TUI.
type Store struct {
	mu        sync.RWMutex
	backend   Backend
	notifier  Notifier
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
	schedules []schedule.Schedule
	dirty     bool
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the notifier used for schedules with notifications on.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty Store on top of backend. Call Load to read it.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the backend's contents.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading schedules: %w", err)
	}
	s.mu.Lock()
	s.schedules = loaded
	s.dirty = false
	s.mu.Unlock()
	s.log.Debug("schedules loaded", zap.Int("count", len(loaded)))
	return nil
}

// Save writes the in-memory collection to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	snapshot := slices.Clone(s.schedules)
	s.mu.RUnlock()

	if err := s.backend.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("saving schedules: %w", err)
	}
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	s.log.Debug("schedules saved", zap.Int("count", len(snapshot)))
	return nil
}

// Dirty reports whether there are mutations not yet saved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Schedules returns a copy of the collection in insertion order.
func (s *Store) Schedules() []schedule.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.schedules)
}

// Len returns the number of schedules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schedules)
}

// Get returns the schedule with the given ID.
func (s *Store) Get(id string) (schedule.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.schedules[i], nil
	}
	return schedule.Schedule{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add validates in, assigns an ID and timestamps, arms a notification when
// enabled and appends the schedule.
func (s *Store) Add(ctx context.Context, in schedule.Input) (schedule.Schedule, error) {
	in = in.Normalize()
	if err := schedule.ValidateInput(in); err != nil {
		return schedule.Schedule{}, err
	}

	now := s.timestamp()
	sched := in.Apply(schedule.Schedule{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if sched.NotificationEnabled {
		sched.NotificationID = s.arm(ctx, sched)
	}

	s.mu.Lock()
	s.schedules = append(s.schedules, sched)
	s.dirty = true
	s.mu.Unlock()

	s.log.Info("schedule added",
		zap.String("id", sched.ID),
		zap.String("start", sched.StartTime),
		zap.String("end", sched.EndTime))
	return sched, nil
}

// Update applies a partial patch. The previous notification is cancelled
// and a new one armed if notifications remain enabled.
func (s *Store) Update(ctx context.Context, id string, patch schedule.Patch) (schedule.Schedule, error) {
	current, err := s.Get(id)
	if err != nil {
		return schedule.Schedule{}, err
	}

	in := patch.Merge(schedule.InputOf(current)).Normalize()
	if err := schedule.ValidateInput(in); err != nil {
		return schedule.Schedule{}, err
	}

	if current.NotificationID != "" {
		s.cancel(ctx, current.NotificationID)
	}

	updated := in.Apply(current)
	updated.UpdatedAt = s.timestamp()
	updated.NotificationID = ""
	if updated.NotificationEnabled {
		updated.NotificationID = s.arm(ctx, updated)
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		// deleted while the new notification was being armed
		if updated.NotificationID != "" {
			s.cancel(ctx, updated.NotificationID)
		}
		return schedule.Schedule{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.schedules[i] = updated
	s.dirty = true
	s.mu.Unlock()

	s.log.Info("schedule updated", zap.String("id", id))
	return updated, nil
}

// Delete removes a schedule and cancels its notification.
func (s *Store) Delete(ctx context.Context, id string) error {
	current, err := s.Get(id)
	if err != nil {
		return err
	}
	if current.NotificationID != "" {
		s.cancel(ctx, current.NotificationID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = slices.DeleteFunc(s.schedules, func(sc schedule.Schedule) bool {
		return sc.ID == id
	})
	s.dirty = true
	s.log.Info("schedule deleted", zap.String("id", id))
	return nil
}

// ClearAll removes every schedule and cancels their notifications.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	removed := s.schedules
	s.schedules = nil
	s.dirty = true
	s.mu.Unlock()

	for _, sc := range removed {
		if sc.NotificationID != "" {
			s.cancel(ctx, sc.NotificationID)
		}
	}
	s.log.Info("schedules cleared", zap.Int("count", len(removed)))
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.schedules, func(sc schedule.Schedule) bool {
		return sc.ID == id
	})
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// arm schedules a notification. Failures are logged and yield no ID so the
// mutation itself still succeeds.
func (s *Store) arm(ctx context.Context, sc schedule.Schedule) string {
	if s.notifier == nil {
		return ""
	}
	id, err := s.notifier.Schedule(ctx, sc)
	if err != nil {
		s.log.Warn("notification not scheduled", zap.String("id", sc.ID), zap.Error(err))
		return ""
	}
	return id
}

func (s *Store) cancel(ctx context.Context, notificationID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Cancel(ctx, notificationID); err != nil {
		s.log.Warn("notification not cancelled", zap.String("notification_id", notificationID), zap.Error(err))
	}
}
