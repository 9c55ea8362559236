package journal

import (
	"context"
	"fmt"
)

// SchemaVersion is the schema version Open migrates to
const SchemaVersion = 1

// migrate runs database migrations up to the current schema version
func (j *Journal) migrate(ctx context.Context) error {
	if _, err := j.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	err := j.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version < 1 {
		if err := j.migrateV1(ctx); err != nil {
			return err
		}
	}
	return nil
}

// migrateV1 creates the runs and moves tables
func (j *Journal) migrateV1(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			plan_file TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			scanned INTEGER NOT NULL DEFAULT 0,
			moved INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			errored INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

		CREATE TABLE IF NOT EXISTS moves (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			source TEXT NOT NULL,
			destination TEXT NOT NULL,
			status TEXT NOT NULL,
			method TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
		);

		INSERT INTO schema_version (version) VALUES (1);
	`

	if _, err := j.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v1 migration: %w", err)
	}
	return nil
}
