package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so it
// is safe to run against a database of any earlier version.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillDateDisplay(db); err != nil {
		return fmt.Errorf("backfilling date_display: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tags (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		color      TEXT NOT NULL DEFAULT '#9ca3af',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS todates (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		date         TEXT NOT NULL,
		date_display TEXT,
		comment      TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todates_date ON todates(date)`,

	`CREATE TABLE IF NOT EXISTS todate_tags (
		todate_id TEXT NOT NULL REFERENCES todates(id) ON DELETE CASCADE,
		tag_id    TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (todate_id, tag_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todate_tags_tag ON todate_tags(tag_id)`,

	`CREATE TABLE IF NOT EXISTS school_calendar (
		id              TEXT PRIMARY KEY CHECK(id = 'default'),
		reference_year  INTEGER NOT NULL,
		start_month     INTEGER NOT NULL DEFAULT 9 CHECK(start_month BETWEEN 1 AND 12),
		start_day       INTEGER NOT NULL DEFAULT 1 CHECK(start_day BETWEEN 1 AND 31),
		period_type     TEXT NOT NULL DEFAULT 'quarter'
		                CHECK(period_type IN ('quarter','trimester','semester')),
		repeated_grades TEXT NOT NULL DEFAULT '[]',
		gap_years       TEXT NOT NULL DEFAULT '[]',
		updated_at      TEXT NOT NULL
	)`,

	// Ranged todates.
	`ALTER TABLE todates ADD COLUMN end_date_display TEXT`,
	// Skipped grades.
	`ALTER TABLE school_calendar ADD COLUMN skipped_grades TEXT NOT NULL DEFAULT '[]'`,
}

// migrateBackfillDateDisplay gives todates stored before date_display
// existed a datetime value built from their canonical date.
func migrateBackfillDateDisplay(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), `UPDATE todates
		SET date_display = json_object('kind', 'datetime', 'iso', date)
		WHERE date_display IS NULL OR date_display = ''`)
	return err
}
