// Package journal records executed runs in a SQLite database so past moves
// can be listed later. It is informational only and is not an undo log.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/executor"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Mode names how a run was started
type Mode string

const (
	ModeOrganize Mode = "organize"
	ModeApply    Mode = "apply"
	ModeWatch    Mode = "watch"
)

// Run is one executed plan
type Run struct {
	ID         string              `json:"id"`
	Mode       Mode                `json:"mode"`
	Source     string              `json:"source,omitempty"`
	PlanFile   string              `json:"plan_file,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Stats      types.RunStatistics `json:"stats"`
}

// Move is the recorded outcome of one action of a run
type Move struct {
	RunID       string `json:"run_id"`
	Seq         int    `json:"seq"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	Method      string `json:"method"`
	Error       string `json:"error,omitempty"`
}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// Journal wraps the SQLite connection
type Journal struct {
	conn *sql.DB
	path string
}

// Open opens or creates the journal at path and migrates its schema
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to create journal directory").
			WithDetail("path", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to open journal").
			WithDetail("path", path)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to enable foreign keys").
			WithDetail("path", path)
	}

	j := &Journal{conn: conn, path: path}
	if err := j.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to run migrations").
			WithDetail("path", path)
	}
	return j, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.conn.Close()
}

// Path returns the database file location
func (j *Journal) Path() string {
	return j.path
}

// Record stores a run and the outcome of each of its actions in one
// transaction
func (j *Journal) Record(ctx context.Context, run Run, outcomes []executor.Outcome) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}

	tx, err := j.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrJournal, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, source, plan_file, started_at, finished_at, scanned, moved, skipped, errored)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Mode), run.Source, run.PlanFile,
		formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Stats.Scanned, run.Stats.Moved, run.Stats.Skipped, run.Stats.Errored)
	if err != nil {
		return errors.Wrap(err, errors.ErrJournal, "failed to record run").WithDetail("run_id", run.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO moves (run_id, seq, source, destination, status, method, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, errors.ErrJournal, "failed to prepare move insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, o := range outcomes {
		var msg string
		if o.Err != nil {
			msg = o.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i+1, o.Action.Source, o.Action.Destination,
			string(o.Status), string(o.Method), msg); err != nil {
			return errors.Wrap(err, errors.ErrJournal, "failed to record move").WithDetail("run_id", run.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrJournal, "failed to commit run").WithDetail("run_id", run.ID)
	}
	return nil
}

// Recent returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT ` + runColumns + `
		FROM runs
		ORDER BY started_at DESC, rowid DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to query runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to read runs")
	}
	return runs, nil
}

// Get returns the run with the given id
func (j *Journal) Get(ctx context.Context, runID string) (Run, bool, error) {
	row := j.conn.QueryRowContext(ctx, `
		SELECT ` + runColumns + `
		FROM runs
		WHERE id = ?
	`, runID)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	return r, true, nil
}

const runColumns = "id, mode, source, plan_file, started_at, finished_at, scanned, moved, skipped, errored"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r                 Run
		mode              string
		started, finished string
	)
	if err := s.Scan(&r.ID, &mode, &r.Source, &r.PlanFile, &started, &finished,
		&r.Stats.Scanned, &r.Stats.Moved, &r.Stats.Skipped, &r.Stats.Errored); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, errors.Wrap(err, errors.ErrJournal, "failed to read run")
	}
	r.Mode = Mode(mode)
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	return r, nil
}

// Moves returns the recorded moves of a run in execution order
func (j *Journal) Moves(ctx context.Context, runID string) ([]Move, error) {
	rows, err := j.conn.QueryContext(ctx, `
		SELECT run_id, seq, source, destination, status, method, error
		FROM moves
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to query moves").WithDetail("run_id", runID)
	}
	defer func() { _ = rows.Close() }()

	var moves []Move
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.RunID, &m.Seq, &m.Source, &m.Destination, &m.Status, &m.Method, &m.Error); err != nil {
			return nil, errors.Wrap(err, errors.ErrJournal, "failed to read move")
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrJournal, "failed to read moves")
	}
	return moves, nil
}

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
