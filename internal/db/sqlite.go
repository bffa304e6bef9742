// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// SQLite implements store.Backend using SQLite.
// Rows carry a position column so the collection keeps insertion order.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite backend and runs migrations.
// The parent directory is created if missing.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Load returns every schedule in insertion order.
func (s *SQLite) Load(ctx context.Context) ([]schedule.Schedule, error) {
	query := `
		SELECT id, title, start_time, end_time, category, color,
		       notification_enabled, notification_id, created_at, updated_at
		FROM schedules
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	schedules := []schedule.Schedule{}
	for rows.Next() {
		var (
			sc             schedule.Schedule
			notificationID sql.NullString
		)

		err := rows.Scan(
			&sc.ID,
			&sc.Title,
			&sc.StartTime,
			&sc.EndTime,
			&sc.Category,
			&sc.Color,
			&sc.NotificationEnabled,
			&notificationID,
			&sc.CreatedAt,
			&sc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}

		if notificationID.Valid {
			sc.NotificationID = notificationID.String
		}

		schedules = append(schedules, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}

	return schedules, nil
}

// Save replaces the stored collection in a single transaction.
func (s *SQLite) Save(ctx context.Context, schedules []schedule.Schedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules`); err != nil {
		return fmt.Errorf("clearing schedules: %w", err)
	}

	query := `
		INSERT INTO schedules (
			id, position, title, start_time, end_time, category, color,
			notification_enabled, notification_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, sc := range schedules {
		_, err := stmt.ExecContext(ctx,
			sc.ID,
			i,
			sc.Title,
			sc.StartTime,
			sc.EndTime,
			sc.Category,
			sc.Color,
			sc.NotificationEnabled,
			nullString(sc.NotificationID),
			sc.CreatedAt,
			sc.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting schedule %q: %w", sc.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Count returns the number of stored schedules.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting schedules: %w", err)
	}
	return n, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
