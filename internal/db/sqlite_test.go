package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

func sample(id, title, start, end string, cat schedule.Category) schedule.Schedule {
	return schedule.Schedule{
		ID:        id,
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Category:  cat,
		Color:     cat.Color(),
		CreatedAt: "2024-03-15T08:00:00Z",
		UpdatedAt: "2024-03-15T08:00:00Z",
	}
}

func TestLoad_Empty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSaveLoad_PreservesInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	late := sample("b", "Dinner", "19:00", "20:00", schedule.CategoryPersonal)
	early := sample("a", "Run", "06:00", "07:00", schedule.CategoryExercise)
	early.NotificationEnabled = true
	early.NotificationID = "notify-a-0600"

	if err := repo.Save(ctx, []schedule.Schedule{late, early}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(got))
	}
	if got[0] != late {
		t.Errorf("first = %+v, want %+v", got[0], late)
	}
	if got[1] != early {
		t.Errorf("second = %+v, want %+v", got[1], early)
	}
}

func TestSave_ReplacesPreviousRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := []schedule.Schedule{
		sample("a", "A", "09:00", "10:00", schedule.CategoryWork),
		sample("b", "B", "10:00", "11:00", schedule.CategoryWork),
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := repo.Save(ctx, first[1:]); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row, got %d", n)
	}

	if err := repo.Save(ctx, nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("expected 0 rows, got %d", n)
	}
}

func TestSave_RejectsUnknownCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bad := sample("a", "A", "09:00", "10:00", schedule.Category("sleep"))
	if err := repo.Save(ctx, []schedule.Schedule{bad}); err == nil {
		t.Fatal("expected error for unknown category")
	}

	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("failed save should roll back, got %d rows", n)
	}
}

func TestSave_DuplicateIDRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	good := []schedule.Schedule{sample("a", "A", "09:00", "10:00", schedule.CategoryWork)}
	if err := repo.Save(ctx, good); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	dup := []schedule.Schedule{
		sample("x", "X", "09:00", "10:00", schedule.CategoryWork),
		sample("x", "X", "10:00", "11:00", schedule.CategoryWork),
	}
	if err := repo.Save(ctx, dup); err == nil {
		t.Fatal("expected error for duplicate id")
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected previous contents after rollback, got %+v", got)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "clockplan.db")
	repo, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_ = repo.Close()
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
