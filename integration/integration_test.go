package integration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/clockplan/internal/db"
	"github.com/javiermolinar/clockplan/internal/exchange"
	"github.com/javiermolinar/clockplan/internal/jsonfile"
	"github.com/javiermolinar/clockplan/internal/schedule"
	"github.com/javiermolinar/clockplan/internal/store"
)

type backendFactory struct {
	name string
	open func(t *testing.T, path string) store.Backend
}

var backends = []backendFactory{
	{
		name: "sqlite",
		open: func(t *testing.T, path string) store.Backend {
			t.Helper()
			b, err := db.New(path + ".db")
			if err != nil {
				t.Fatalf("failed to open sqlite: %v", err)
			}
			return b
		},
	},
	{
		name: "json",
		open: func(t *testing.T, path string) store.Backend {
			return jsonfile.New(path + ".json")
		},
	},
}

// openStore opens a loaded store over a backend with automatic cleanup.
func openStore(t *testing.T, f backendFactory, path string) *store.Store {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC) }
	st := store.New(f.open(t, path), store.WithClock(clock))
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// addSchedule is a helper to add a schedule or fail the test.
func addSchedule(t *testing.T, st *store.Store, title, start, end string, cat schedule.Category) schedule.Schedule {
	t.Helper()
	s, err := st.Add(context.Background(), schedule.Input{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Category:  cat,
	})
	if err != nil {
		t.Fatalf("failed to add %q: %v", title, err)
	}
	return s
}

func TestPersistAndReload(t *testing.T) {
	for _, f := range backends {
		t.Run(f.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "schedules")

			st := openStore(t, f, path)
			standup := addSchedule(t, st, "Standup", "09:00", "09:30", schedule.CategoryMeeting)
			addSchedule(t, st, "Gym", "18:00", "19:00", schedule.CategoryExercise)
			if err := st.Save(ctx); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if st.Dirty() {
				t.Error("store still dirty after Save")
			}
			_ = st.Close()

			reopened := openStore(t, f, path)
			if reopened.Len() != 2 {
				t.Fatalf("Len() after reload = %d, want 2", reopened.Len())
			}
			got, err := reopened.Get(standup.ID)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", standup.ID, err)
			}
			if got.Title != "Standup" || got.StartTime != "09:00" || got.EndTime != "09:30" {
				t.Errorf("reloaded = %+v", got)
			}
			if got.Category != schedule.CategoryMeeting {
				t.Errorf("Category = %q, want meeting", got.Category)
			}
			if got.Color != schedule.CategoryMeeting.Color() {
				t.Errorf("Color = %q, want %q", got.Color, schedule.CategoryMeeting.Color())
			}
			if got.CreatedAt == "" || got.UpdatedAt == "" {
				t.Error("timestamps not persisted")
			}
		})
	}
}

func TestUpdateDeleteClearPersist(t *testing.T) {
	for _, f := range backends {
		t.Run(f.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "schedules")

			st := openStore(t, f, path)
			a := addSchedule(t, st, "Read", "07:00", "08:00", schedule.CategoryStudy)
			b := addSchedule(t, st, "Lunch", "12:00", "13:00", schedule.CategoryPersonal)
			c := addSchedule(t, st, "Review", "15:00", "16:00", schedule.CategoryWork)

			title := "Read papers"
			if _, err := st.Update(ctx, a.ID, schedule.Patch{Title: &title}); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if err := st.Delete(ctx, b.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if err := st.Save(ctx); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			_ = st.Close()

			reopened := openStore(t, f, path)
			if reopened.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", reopened.Len())
			}
			got, err := reopened.Get(a.ID)
			if err != nil || got.Title != "Read papers" {
				t.Errorf("updated schedule = %+v, %v", got, err)
			}
			if _, err := reopened.Get(b.ID); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("deleted schedule error = %v, want ErrNotFound", err)
			}
			if _, err := reopened.Get(c.ID); err != nil {
				t.Errorf("Get(%s) error = %v", c.ID, err)
			}

			reopened.ClearAll(ctx)
			if err := reopened.Save(ctx); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			_ = reopened.Close()

			empty := openStore(t, f, path)
			if empty.Len() != 0 {
				t.Errorf("Len() after clear = %d, want 0", empty.Len())
			}
		})
	}
}

func TestEngineOverStoredSchedules(t *testing.T) {
	st := openStore(t, backends[0], filepath.Join(t.TempDir(), "schedules"))
	addSchedule(t, st, "Sleep", "00:00", "07:00", schedule.CategoryPersonal)
	work := addSchedule(t, st, "Work", "09:00", "12:00", schedule.CategoryWork)
	addSchedule(t, st, "Call", "11:30", "12:30", schedule.CategoryMeeting)

	all := st.Schedules()
	tests := []struct {
		at      string
		current string
		next    string
	}{
		{at: "00:00:00", current: "Sleep", next: "Work"},
		{at: "07:00:00", current: "", next: "Work"},
		{at: "10:15:30", current: "Work", next: "Call"},
		{at: "11:45:00", current: "Work", next: ""},
		{at: "23:59:59", current: "", next: ""},
	}
	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			cur, ok := schedule.Current(all, tt.at)
			if got := titleIf(cur, ok); got != tt.current {
				t.Errorf("Current(%s) = %q, want %q", tt.at, got, tt.current)
			}
			next, ok := schedule.Next(all, tt.at)
			if got := titleIf(next, ok); got != tt.next {
				t.Errorf("Next(%s) = %q, want %q", tt.at, got, tt.next)
			}
		})
	}

	if !schedule.HasOverlap(work, all) {
		t.Error("Work should overlap Call")
	}
	if got := len(schedule.Conflicts(all)); got != 1 {
		t.Errorf("Conflicts() = %d, want 1", got)
	}
}

func titleIf(s schedule.Schedule, ok bool) string {
	if !ok {
		return ""
	}
	return s.Title
}

func TestExportImportIntoStore(t *testing.T) {
	formats := []exchange.Format{exchange.FormatJSON, exchange.FormatYAML, exchange.FormatICS}
	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			src := openStore(t, backends[1], filepath.Join(t.TempDir(), "src"))
			addSchedule(t, src, "Standup", "09:00", "09:15", schedule.CategoryMeeting)
			addSchedule(t, src, "Deep work", "09:30", "12:00", schedule.CategoryWork)

			var buf bytes.Buffer
			err := exchange.Export(&buf, format, src.Schedules(), exchange.ExportOptions{
				Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
				Now:  time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC),
			})
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			res, err := exchange.Import(&buf, format, exchange.ImportOptions{Location: time.UTC})
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if len(res.Inputs) != 2 {
				t.Fatalf("imported %d inputs, want 2 (skipped %v)", len(res.Inputs), res.Skipped)
			}

			dst := openStore(t, backends[0], filepath.Join(t.TempDir(), "dst"))
			for _, in := range res.Inputs {
				if _, err := dst.Add(ctx, in); err != nil {
					t.Fatalf("Add(%q) error = %v", in.Title, err)
				}
			}
			got := schedule.SortByTime(dst.Schedules())
			if got[0].Title != "Standup" || got[0].StartTime != "09:00" || got[0].EndTime != "09:15" {
				t.Errorf("first imported = %+v", got[0])
			}
			if got[1].Title != "Deep work" || got[1].StartTime != "09:30" || got[1].EndTime != "12:00" {
				t.Errorf("second imported = %+v", got[1])
			}
		})
	}
}
