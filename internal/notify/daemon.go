package notify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Loader reads the current schedule collection.
type Loader interface {
	Load(ctx context.Context) ([]schedule.Schedule, error)
}

// Daemon keeps a CronNotifier in sync with the persisted collection.
// It polls the backend and re-arms every notification when the collection
// changes.
type Daemon struct {
	loader      Loader
	notifier    *CronNotifier
	log         *zap.Logger
	interval    time.Duration
	fingerprint string
}

// NewDaemon creates a daemon polling loader every interval.
func NewDaemon(loader Loader, notifier *CronNotifier, log *zap.Logger, interval time.Duration) *Daemon {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Daemon{
		loader:   loader,
		notifier: notifier,
		log:      log,
		interval: interval,
	}
}

// Run arms notifications and keeps them current until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) {
	d.notifier.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.notifier.Stop(stopCtx)
	}()

	d.log.Info("notify daemon starting", zap.Duration("interval", d.interval))
	d.tick(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("notify daemon stopping")
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// tick reloads the collection and re-arms when it changed.
// It reports whether a re-arm happened.
func (d *Daemon) tick(ctx context.Context) bool {
	schedules, err := d.loader.Load(ctx)
	if err != nil {
		d.log.Error("loading schedules failed", zap.Error(err))
		return false
	}

	fp := Fingerprint(schedules)
	if fp == d.fingerprint {
		return false
	}

	armed := d.notifier.RescheduleAll(ctx, schedules)
	d.fingerprint = fp
	d.log.Info("notifications rescheduled",
		zap.Int("schedules", len(schedules)),
		zap.Int("armed", len(armed)))
	return true
}

// Fingerprint hashes the fields that affect notifications.
func Fingerprint(schedules []schedule.Schedule) string {
	h := sha256.New()
	for _, s := range schedules {
		enabled := "0"
		if s.NotificationEnabled {
			enabled = "1"
		}
		for _, field := range []string{s.ID, s.Title, s.StartTime, s.EndTime, string(s.Category), enabled} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
