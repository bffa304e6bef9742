package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

type recordingSender struct {
	sent []Message
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func sched(id, start, end string, notify bool) schedule.Schedule {
	return schedule.Schedule{
		ID:                  id,
		Title:               "Title " + id,
		StartTime:           start,
		EndTime:             end,
		Category:            schedule.CategoryWork,
		NotificationEnabled: notify,
	}
}

func TestCronSpec(t *testing.T) {
	tests := []struct {
		start   string
		want    string
		wantErr bool
	}{
		{start: "00:00", want: "0 0 * * *"},
		{start: "09:30", want: "30 9 * * *"},
		{start: "23:59", want: "59 23 * * *"},
		{start: "24:00", wantErr: true},
		{start: "9:30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := CronSpec(tt.start)
			if tt.wantErr {
				if !errors.Is(err, schedule.ErrInvalidTimeFormat) {
					t.Errorf("CronSpec(%q) error = %v, want ErrInvalidTimeFormat", tt.start, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CronSpec(%q) = %q, want %q", tt.start, got, tt.want)
			}
		})
	}
}

func TestMessageFor(t *testing.T) {
	s := sched("a", "09:00", "10:00", true)
	s.Title = "Standup"
	s.Category = schedule.CategoryMeeting

	en := MessageFor(s, "en")
	if en.Title != "🤝 Meeting starts" {
		t.Errorf("en title = %q", en.Title)
	}
	if en.Body != "Standup\n09:00 - 10:00" {
		t.Errorf("en body = %q", en.Body)
	}
	if en.ScheduleID != "a" {
		t.Errorf("schedule id = %q", en.ScheduleID)
	}

	ko := MessageFor(s, "ko")
	if ko.Title != "🤝 미팅 일정 시작" {
		t.Errorf("ko title = %q", ko.Title)
	}
}

func TestNotificationID(t *testing.T) {
	got := NotificationID(sched("abc", "07:05", "08:00", true))
	if got != "notify-abc-0705" {
		t.Errorf("NotificationID() = %q", got)
	}
}

func TestCronNotifier_ScheduleCancel(t *testing.T) {
	ctx := context.Background()
	n := NewCronNotifier(&recordingSender{})

	id, err := n.Schedule(ctx, sched("a", "09:00", "10:00", true))
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	if id != "notify-a-0900" {
		t.Errorf("id = %q", id)
	}

	if _, err := n.Schedule(ctx, sched("a", "09:00", "10:00", true)); err != nil {
		t.Fatalf("re-Schedule() error: %v", err)
	}
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after re-arming same schedule", n.Len())
	}

	if _, err := n.Schedule(ctx, sched("b", "9:00", "10:00", true)); err == nil {
		t.Error("expected error for malformed start")
	}

	if err := n.Cancel(ctx, id); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
	if err := n.Cancel(ctx, "unknown"); err != nil {
		t.Errorf("Cancel(unknown) error = %v, want nil", err)
	}
}

func TestCronNotifier_Disabled(t *testing.T) {
	n := NewCronNotifier(&recordingSender{}, WithEnabled(false))
	_, err := n.Schedule(context.Background(), sched("a", "09:00", "10:00", true))
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Schedule() error = %v, want ErrDisabled", err)
	}
}

func TestCronNotifier_RescheduleAll(t *testing.T) {
	ctx := context.Background()
	n := NewCronNotifier(&recordingSender{})
	_, _ = n.Schedule(ctx, sched("stale", "06:00", "07:00", true))

	armed := n.RescheduleAll(ctx, []schedule.Schedule{
		sched("a", "09:00", "10:00", true),
		sched("b", "11:00", "12:00", false),
		sched("c", "13:00", "14:00", true),
	})

	if len(armed) != 2 || armed["a"] != "notify-a-0900" || armed["c"] != "notify-c-1300" {
		t.Errorf("RescheduleAll() = %v", armed)
	}
	if n.Len() != 2 {
		t.Errorf("Len() = %d, want 2", n.Len())
	}
}

func TestCronNotifier_NextFire(t *testing.T) {
	ctx := context.Background()
	n := NewCronNotifier(&recordingSender{}, WithLocation(time.UTC))
	id, err := n.Schedule(ctx, sched("a", "09:30", "10:00", true))
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}

	n.Start()
	defer n.Stop(ctx)

	next, ok := n.NextFire(id)
	if !ok {
		t.Fatal("NextFire() not known after Start")
	}
	if next.Hour() != 9 || next.Minute() != 30 {
		t.Errorf("NextFire() = %v, want 09:30", next)
	}
	if _, ok := n.NextFire("unknown"); ok {
		t.Error("NextFire(unknown) reported a time")
	}
}

func TestCronNotifier_Fire(t *testing.T) {
	rec := &recordingSender{}
	n := NewCronNotifier(rec)
	n.fire(MessageFor(sched("a", "09:00", "10:00", true), "en"))

	if len(rec.sent) != 1 || rec.sent[0].ScheduleID != "a" {
		t.Errorf("sent = %+v", rec.sent)
	}
}

func TestTerminalSender(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	s := NewTerminalSender(&buf)
	err := s.Send(context.Background(), Message{Title: "Work starts", Body: "Focus\n09:00 - 10:00"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	want := "\aWork starts\n  Focus\n  09:00 - 10:00\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewSender(t *testing.T) {
	log := zap.NewNop()
	if s, err := NewSender("terminal", &bytes.Buffer{}, log); err != nil || s == nil {
		t.Errorf("terminal: %v", err)
	}
	if s, err := NewSender("log", nil, log); err != nil || s == nil {
		t.Errorf("log: %v", err)
	}
	if _, err := NewSender("pager", nil, log); err == nil || !strings.Contains(err.Error(), "pager") {
		t.Errorf("unknown sender error = %v", err)
	}
}

type staticLoader struct {
	schedules []schedule.Schedule
	err       error
}

func (l *staticLoader) Load(_ context.Context) ([]schedule.Schedule, error) {
	return l.schedules, l.err
}

func TestDaemon_Tick(t *testing.T) {
	ctx := context.Background()
	loader := &staticLoader{schedules: []schedule.Schedule{sched("a", "09:00", "10:00", true)}}
	n := NewCronNotifier(&recordingSender{})
	d := NewDaemon(loader, n, nil, time.Minute)

	if !d.tick(ctx) {
		t.Fatal("first tick should re-arm")
	}
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}

	if d.tick(ctx) {
		t.Error("unchanged collection should not re-arm")
	}

	loader.schedules = append(loader.schedules, sched("b", "11:00", "12:00", true))
	if !d.tick(ctx) {
		t.Error("changed collection should re-arm")
	}
	if n.Len() != 2 {
		t.Errorf("Len() = %d, want 2", n.Len())
	}

	loader.err = errors.New("disk gone")
	if d.tick(ctx) {
		t.Error("load failure should not re-arm")
	}
	if n.Len() != 2 {
		t.Errorf("load failure dropped entries: Len() = %d", n.Len())
	}
}

func TestDaemon_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := NewCronNotifier(&recordingSender{})
	d := NewDaemon(&staticLoader{}, n, nil, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestFingerprint(t *testing.T) {
	a := []schedule.Schedule{sched("a", "09:00", "10:00", true)}
	b := []schedule.Schedule{sched("a", "09:00", "10:00", false)}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("toggling notifications should change the fingerprint")
	}
	if Fingerprint(a) != Fingerprint([]schedule.Schedule{sched("a", "09:00", "10:00", true)}) {
		t.Error("fingerprint not deterministic")
	}
}
