package storage

import "database/sql"

// migrateV001 creates the events table and its indexes. Every statement
// uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			date     TEXT NOT NULL,
			type     TEXT NOT NULL,
			route_to TEXT,
			body     TEXT NOT NULL,
			tags     TEXT,
			summary  TEXT,
			title    TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
