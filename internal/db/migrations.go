package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			id                   TEXT PRIMARY KEY,
			position             INTEGER NOT NULL,
			title                TEXT NOT NULL,
			start_time           TEXT NOT NULL,
			end_time             TEXT NOT NULL,
			category             TEXT NOT NULL CHECK(category IN ('work', 'personal', 'exercise', 'study', 'meeting')),
			color                TEXT NOT NULL,
			notification_enabled INTEGER NOT NULL DEFAULT 0,
			notification_id      TEXT,
			created_at           TEXT NOT NULL,
			updated_at           TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_schedules_position ON schedules(position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedules table: %w", err)
	}

	return nil
}
