package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/db"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/store"
)

type testApp struct {
	*App
	out     *bytes.Buffer
	backend *store.Memory
}

func newTestApp(t *testing.T, existing ...schedule.Schedule) *testApp {
	t.Helper()
	DisableColor()
	t.Cleanup(EnableColor)

	seq := 0
	backend := store.NewMemory(existing...)
	st := store.New(backend, store.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("id%04d-generated", seq)
	}))
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg := config.Default()
	cfg.Log.Level = "error"
	app := NewApp(st, cfg)
	app.SetClock(func() time.Time {
		return time.Date(2025, 1, 10, 10, 7, 0, 0, time.Local)
	})
	return &testApp{App: app, out: &bytes.Buffer{}, backend: backend}
}

// run executes args, answering prompts with input.
func (ta *testApp) run(t *testing.T, input string, args ...string) error {
	t.Helper()
	ta.out.Reset()
	ta.root = ta.newRootCmd()
	ta.SetOutput(ta.out, strings.NewReader(input))
	ta.SetArgs(args)
	return ta.Execute()
}

func existing(id, title, start, end string, cat schedule.Category) schedule.Schedule {
	return schedule.Schedule{
		ID:        id,
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Category:  cat,
		Color:     cat.Color(),
	}
}

func TestAddCmd(t *testing.T) {
	ta := newTestApp(t)

	if err := ta.run(t, "", "add", "Stand", "up", "--start=09:00", "--end=09:30", "--category=MEETING"); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if !strings.Contains(ta.out.String(), "Added #id0001-g 09:00-09:30 Stand up [meeting]") {
		t.Errorf("output = %q", ta.out.String())
	}
	if ta.store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ta.store.Len())
	}
	if ta.backend.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", ta.backend.Saves())
	}

	s := ta.store.Schedules()[0]
	if s.Category != schedule.CategoryMeeting || s.Color != schedule.CategoryMeeting.Color() {
		t.Errorf("schedule = %+v", s)
	}
	if !s.NotificationEnabled {
		t.Error("notifications should default to on")
	}
}

func TestAddCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "bad category", args: []string{"add", "x", "--start=09:00", "--end=10:00", "--category=sleep"}, wantErr: schedule.ErrInvalidCategory},
		{name: "bad time", args: []string{"add", "x", "--start=9:00", "--end=10:00"}, wantErr: schedule.ErrInvalidTimeFormat},
		{name: "inverted", args: []string{"add", "x", "--start=10:00", "--end=09:00"}, wantErr: schedule.ErrEndBeforeStart},
		{name: "empty title", args: []string{"add", "  ", "--start=09:00", "--end=10:00"}, wantErr: schedule.ErrEmptyTitle},
		{name: "missing end", args: []string{"add", "x", "--start=09:00"}},
		{name: "end and duration", args: []string{"add", "x", "--start=09:00", "--end=10:00", "--duration=30"}},
		{name: "past midnight", args: []string{"add", "x", "--start=23:30", "--duration=60"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			err := ta.run(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if ta.store.Len() != 0 {
				t.Errorf("Len() = %d, want 0", ta.store.Len())
			}
		})
	}
}

func TestAddCmd_Duration(t *testing.T) {
	ta := newTestApp(t, existing("a", "Busy", "10:00", "10:30", schedule.CategoryWork))

	if err := ta.run(t, "", "add", "Read", "--duration=30", "--category=study", "--force"); err != nil {
		t.Fatalf("add error: %v", err)
	}
	got := ta.store.Schedules()[1]
	if got.StartTime != "10:30" || got.EndTime != "11:00" {
		t.Errorf("span = %s-%s, want 10:30-11:00", got.StartTime, got.EndTime)
	}

	if err := ta.run(t, "", "add", "Run", "--start=18:00", "--duration=45"); err != nil {
		t.Fatalf("add error: %v", err)
	}
	got = ta.store.Schedules()[2]
	if got.EndTime != "18:45" {
		t.Errorf("end = %s, want 18:45", got.EndTime)
	}
}

func TestAddCmd_Overlap(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		args    []string
		wantLen int
	}{
		{name: "declined", input: "n\n", wantLen: 1},
		{name: "no answer", input: "", wantLen: 1},
		{name: "accepted", input: "y\n", wantLen: 2},
		{name: "forced", args: []string{"--force"}, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, existing("a", "Deep work", "09:00", "11:00", schedule.CategoryWork))
			args := append([]string{"add", "Call", "--start=10:00", "--end=10:30"}, tt.args...)
			if err := ta.run(t, tt.input, args...); err != nil {
				t.Fatalf("add error: %v", err)
			}
			if ta.store.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", ta.store.Len(), tt.wantLen)
			}
			if tt.wantLen == 1 && !strings.Contains(ta.out.String(), "Cancelled.") {
				t.Errorf("output = %q", ta.out.String())
			}
		})
	}
}

func TestAddCmd_BackToBackIsNotOverlap(t *testing.T) {
	ta := newTestApp(t, existing("a", "Deep work", "09:00", "10:00", schedule.CategoryWork))
	if err := ta.run(t, "", "add", "Next", "--start=10:00", "--end=11:00"); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if ta.store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ta.store.Len())
	}
	if strings.Contains(ta.out.String(), "overlaps") {
		t.Errorf("unexpected overlap prompt: %q", ta.out.String())
	}
}

func TestAddEditCmd_OutsideDayWindow(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantNote string
	}{
		{name: "inside", args: []string{"add", "Work", "--start=09:00", "--end=10:00"}},
		{name: "early", args: []string{"add", "Run", "--start=06:00", "--end=06:45"},
			wantNote: "Note: start time is before day start (day 07:00-23:00)"},
		{name: "late", args: []string{"add", "Show", "--start=22:30", "--end=23:30"},
			wantNote: "Note: end time is after day end (day 07:00-23:00)"},
		{name: "edit", args: []string{"edit", "abc", "--start=05:00", "--end=06:00"},
			wantNote: "Note: start time is before day start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, existing("abc123", "Deep work", "12:00", "13:00", schedule.CategoryWork))
			if err := ta.run(t, "", tt.args...); err != nil {
				t.Fatalf("%s error: %v", tt.args[0], err)
			}
			out := ta.out.String()
			if tt.wantNote == "" {
				if strings.Contains(out, "Note:") {
					t.Errorf("unexpected note: %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.wantNote) {
				t.Errorf("output = %q, want %q", out, tt.wantNote)
			}
			if tt.args[0] == "add" && ta.store.Len() != 2 {
				t.Errorf("schedule outside the day window was not saved")
			}
		})
	}
}

func TestEditCmd(t *testing.T) {
	ta := newTestApp(t,
		existing("abc123", "Deep work", "09:00", "10:00", schedule.CategoryWork),
		existing("xyz789", "Lunch", "12:00", "13:00", schedule.CategoryPersonal),
	)

	if err := ta.run(t, "", "edit", "abc", "--title=Focus", "--end=10:30", "--category=study", "--notify=on"); err != nil {
		t.Fatalf("edit error: %v", err)
	}
	s, _ := ta.store.Get("abc123")
	if s.Title != "Focus" || s.EndTime != "10:30" || s.Category != schedule.CategoryStudy || !s.NotificationEnabled {
		t.Errorf("schedule = %+v", s)
	}
	if s.StartTime != "09:00" {
		t.Errorf("start changed to %s", s.StartTime)
	}

	// Moving onto lunch needs confirmation.
	if err := ta.run(t, "n\n", "edit", "abc", "--start=12:30", "--end=13:30"); err != nil {
		t.Fatalf("edit error: %v", err)
	}
	s, _ = ta.store.Get("abc123")
	if s.StartTime != "09:00" {
		t.Errorf("declined edit applied: %+v", s)
	}

	if err := ta.run(t, "", "edit", "abc"); err == nil {
		t.Error("expected error for empty edit")
	}
	if err := ta.run(t, "", "edit", "abc", "--notify=maybe"); err == nil {
		t.Error("expected error for bad notify value")
	}
	if err := ta.run(t, "", "edit", "nope", "--title=x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAndClearCmd(t *testing.T) {
	ta := newTestApp(t,
		existing("abc123", "Deep work", "09:00", "10:00", schedule.CategoryWork),
		existing("abd456", "Review", "10:00", "11:00", schedule.CategoryWork),
		existing("xyz789", "Lunch", "12:00", "13:00", schedule.CategoryPersonal),
	)

	if err := ta.run(t, "", "delete", "ab", "-y"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("error = %v, want ErrAmbiguousID", err)
	}
	if err := ta.run(t, "n\n", "delete", "abd"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if ta.store.Len() != 3 {
		t.Errorf("declined delete removed a schedule")
	}
	if err := ta.run(t, "y\n", "delete", "#abd"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if ta.store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ta.store.Len())
	}

	if err := ta.run(t, "", "clear", "--yes"); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if ta.store.Len() != 0 {
		t.Errorf("Len() = %d after clear", ta.store.Len())
	}
	loaded, _ := ta.backend.Load(context.Background())
	if len(loaded) != 0 {
		t.Errorf("backend still holds %d schedules", len(loaded))
	}
}

func TestListAndNowCmd(t *testing.T) {
	ta := newTestApp(t,
		existing("lunch", "Lunch", "12:00", "13:00", schedule.CategoryPersonal),
		existing("focus", "Focus", "09:30", "11:00", schedule.CategoryWork),
	)

	if err := ta.run(t, "", "list"); err != nil {
		t.Fatalf("list error: %v", err)
	}
	out := ta.out.String()
	focus := strings.Index(out, "Focus")
	lunch := strings.Index(out, "Lunch")
	if focus < 0 || lunch < 0 || focus > lunch {
		t.Errorf("list not in time order: %q", out)
	}
	if !strings.Contains(out, "▶ 09:30-11:00") {
		t.Errorf("current schedule not marked: %q", out)
	}
	if !strings.Contains(out, "#focus") {
		t.Errorf("ids missing: %q", out)
	}

	if err := ta.run(t, "", "list", "--category=meeting"); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(ta.out.String(), "No schedules found.") {
		t.Errorf("output = %q", ta.out.String())
	}

	if err := ta.run(t, "", "now"); err != nil {
		t.Fatalf("now error: %v", err)
	}
	out = ta.out.String()
	for _, want := range []string{"Now  10:07", "Focus", "09:30  →  11:00", "53m left", "Next: 12:00-13:00", "in 1h53m"} {
		if !strings.Contains(out, want) {
			t.Errorf("now output missing %q:\n%s", want, out)
		}
	}
}

func TestNowCmd_FreeTime(t *testing.T) {
	ta := newTestApp(t)
	ta.config.UI.Language = "ko"
	if err := ta.run(t, "", "now"); err != nil {
		t.Fatalf("now error: %v", err)
	}
	if !strings.Contains(ta.out.String(), "자유 시간") {
		t.Errorf("output = %q", ta.out.String())
	}
}

func TestShowCmd(t *testing.T) {
	ta := newTestApp(t,
		existing("a", "Focus", "09:00", "11:00", schedule.CategoryWork),
		existing("b", "Sync", "10:30", "11:00", schedule.CategoryMeeting),
	)

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	if err := ta.run(t, "", "show", "--copy"); err != nil {
		t.Fatalf("show error: %v", err)
	}
	out := ta.out.String()
	for _, want := range []string{"Friday, January 10, 2025", "Work 2h", "Meeting 30m", "Busy: 2h", "Overlap:", "copied"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
	if copied != "09:00-11:00 💼 Focus (Work)\n10:30-11:00 🤝 Sync (Meeting)\n" {
		t.Errorf("copied = %q", copied)
	}
}

func TestFreeCmd(t *testing.T) {
	ta := newTestApp(t, existing("a", "Focus", "10:00", "12:00", schedule.CategoryWork))
	ta.config.Day.Start, ta.config.Day.End = "08:00", "18:00"

	if err := ta.run(t, "", "free"); err != nil {
		t.Fatalf("free error: %v", err)
	}
	out := ta.out.String()
	for _, want := range []string{"Day window 08:00-18:00", "08:00-10:00", "12:00-18:00", "Free: 8h"} {
		if !strings.Contains(out, want) {
			t.Errorf("free output missing %q:\n%s", want, out)
		}
	}

	if err := ta.run(t, "", "free", "--fit=90"); err != nil {
		t.Fatalf("free error: %v", err)
	}
	if !strings.Contains(ta.out.String(), "Next free 1h30m: 12:00-13:30") {
		t.Errorf("output = %q", ta.out.String())
	}
}

func TestExportImportCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.yaml")

	src := newTestApp(t,
		existing("a", "Focus", "09:00", "11:00", schedule.CategoryWork),
		existing("b", "Run", "18:00", "19:00", schedule.CategoryExercise),
	)
	if err := src.run(t, "", "export", "-o", path); err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(src.out.String(), "Exported 2 schedules") {
		t.Errorf("output = %q", src.out.String())
	}

	dst := newTestApp(t, existing("old", "Old", "07:00", "08:00", schedule.CategoryPersonal))
	if err := dst.run(t, "", "import", path); err != nil {
		t.Fatalf("import error: %v", err)
	}
	if dst.store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dst.store.Len())
	}

	if err := dst.run(t, "", "import", "--replace", "-y", path); err != nil {
		t.Fatalf("import error: %v", err)
	}
	got := dst.store.Schedules()
	if len(got) != 2 || got[0].Title != "Focus" || got[1].Category != schedule.CategoryExercise {
		t.Errorf("schedules = %+v", got)
	}
	if got[0].ID == "a" {
		t.Error("imported schedules should get new ids")
	}
}

func TestExportCmd_Stdout(t *testing.T) {
	ta := newTestApp(t, existing("a", "Focus", "09:00", "11:00", schedule.CategoryWork))
	if err := ta.run(t, "", "export", "--format=ics", "--date=2025-03-01"); err != nil {
		t.Fatalf("export error: %v", err)
	}
	out := ta.out.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "SUMMARY:Focus") {
		t.Errorf("output = %q", out)
	}
	if err := ta.run(t, "", "export", "--format=pdf"); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestClockCmd(t *testing.T) {
	ta := newTestApp(t, existing("a", "Focus", "09:00", "11:00", schedule.CategoryWork))
	if err := ta.run(t, "", "clock", "--radius=6"); err != nil {
		t.Fatalf("clock error: %v", err)
	}
	out := ta.out.String()
	if !strings.Contains(out, "▓ 09:00-11:00 Focus") {
		t.Errorf("legend missing current schedule:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "dial.svg")
	if err := ta.run(t, "", "clock", "--svg="+path); err != nil {
		t.Fatalf("clock error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("svg = %.40q", data)
	}
}

func TestImportSchedules_FromDatabase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")

	source, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source db: %v", err)
	}
	err = source.Save(ctx, []schedule.Schedule{
		existing("s1", "Gym", "07:00", "08:00", schedule.CategoryExercise),
		existing("s2", "Class", "19:00", "21:00", schedule.CategoryStudy),
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	_ = source.Close()

	ta := newTestApp(t)
	ta.config.Storage.DBPath = filepath.Join(dir, "dest.db")
	if err := ta.run(t, "", "import", sourcePath); err != nil {
		t.Fatalf("import error: %v", err)
	}
	got := ta.store.Schedules()
	if len(got) != 2 || got[0].Title != "Gym" || got[1].Title != "Class" {
		t.Errorf("schedules = %+v", got)
	}

	ta.config.Storage.DBPath = sourcePath
	if err := ta.run(t, "", "import", sourcePath); err == nil || !strings.Contains(err.Error(), "matches current database") {
		t.Errorf("error = %v", err)
	}
	if err := ta.run(t, "", "import", filepath.Join(dir, "missing.db")); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestImportSchedules_StopsOnInvalid(t *testing.T) {
	st := store.New(store.NewMemory())
	inputs := []schedule.Input{
		{Title: "ok", StartTime: "09:00", EndTime: "10:00", Category: schedule.CategoryWork},
		{Title: "bad", StartTime: "10:00", EndTime: "09:00", Category: schedule.CategoryWork},
		{Title: "never", StartTime: "11:00", EndTime: "12:00", Category: schedule.CategoryWork},
	}
	n, err := importSchedules(context.Background(), st, inputs)
	if !errors.Is(err, schedule.ErrEndBeforeStart) {
		t.Errorf("error = %v", err)
	}
	if n != 1 || st.Len() != 1 {
		t.Errorf("imported %d, Len() = %d", n, st.Len())
	}
}

func TestVersionCmd(t *testing.T) {
	ta := newTestApp(t)
	if err := ta.run(t, "", "version"); err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.HasPrefix(ta.out.String(), "clockplan dev") {
		t.Errorf("output = %q", ta.out.String())
	}
}
