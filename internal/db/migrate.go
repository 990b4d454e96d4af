package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated because the list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_orders (
		id          TEXT PRIMARY KEY,
		wo_no       TEXT NOT NULL,
		reg         TEXT NOT NULL DEFAULT '',
		customer    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		pn          TEXT NOT NULL DEFAULT '',
		sn          TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_orders_wo_no ON work_orders(wo_no)`,

	`CREATE TABLE IF NOT EXISTS findings (
		id            TEXT PRIMARY KEY,
		work_order_id TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		finding_no    TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		action_given  TEXT NOT NULL DEFAULT '',
		image_url     TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'OPEN'
		              CHECK(status IN ('OPEN','IN_PROGRESS','ON_HOLD','CLOSED')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_findings_work_order ON findings(work_order_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_findings_wo_no ON findings(work_order_id, finding_no)`,

	`CREATE TABLE IF NOT EXISTS materials (
		id          TEXT PRIMARY KEY,
		finding_id  TEXT NOT NULL REFERENCES findings(id) ON DELETE CASCADE,
		part_number TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		qty         REAL NOT NULL DEFAULT 0,
		unit        TEXT NOT NULL DEFAULT '',
		available   INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_materials_finding ON materials(finding_id)`,

	// The performing log. Insert-only: no UPDATE or DELETE is ever issued
	// against this table. seq orders same-timestamp events by insertion.
	`CREATE TABLE IF NOT EXISTS manhour_events (
		seq           INTEGER PRIMARY KEY AUTOINCREMENT,
		id            TEXT NOT NULL UNIQUE,
		work_order_id TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		finding_id    TEXT NOT NULL REFERENCES findings(id) ON DELETE CASCADE,
		employee_id   TEXT NOT NULL,
		task_code     TEXT NOT NULL,
		action        TEXT NOT NULL CHECK(action IN ('START','STOP')),
		timestamp     TEXT NOT NULL,
		final_status  TEXT,
		duration_secs INTEGER,
		evidence      BLOB
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_finding ON manhour_events(finding_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_work_order ON manhour_events(work_order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON manhour_events(timestamp)`,
}
