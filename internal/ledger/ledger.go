// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records conversion runs in a SQLite database so that each
// run can report whether its outputs changed since the last time the same
// files were written.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/objwebgl/pkg/types"
)

const dbFile = "ledger.db"

// Ledger manages the run history database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at cfg.Dir/ledger.db and
// creates the schema if it does not exist.
func Open(cfg types.LedgerConfig) (*Ledger, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultLedgerDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outputs (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			pass TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			lines_read INTEGER NOT NULL,
			records INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			digest TEXT NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outputs_output ON outputs(output)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run and fills in the Status of each pass by comparing its
// digest with the most recent earlier record for the same output path. The
// returned record carries the new run ID.
func (l *Ledger) Record(ctx context.Context, startedAt time.Time, duration time.Duration, passes []types.PassResult) (types.RunRecord, error) {
	rec := types.RunRecord{
		StartedAt: startedAt.UTC(),
		Duration:  duration,
		Passes:    make([]types.PassResult, len(passes)),
	}
	copy(rec.Passes, passes)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return rec, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ns) VALUES (?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano), int64(duration),
	)
	if err != nil {
		return rec, fmt.Errorf("inserting run: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outputs (run_id, seq, pass, input, output, lines_read, records, skipped, bytes, digest, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return rec, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range rec.Passes {
		p := &rec.Passes[i]
		status, err := compareDigest(ctx, tx, rec.ID, p.Output, p.Digest)
		if err != nil {
			return rec, err
		}
		p.Status = status

		_, err = stmt.ExecContext(ctx,
			rec.ID, i, string(p.Pass), p.Input, p.Output,
			p.LinesRead, p.Records, p.Skipped, p.Bytes, p.Digest, string(p.Status),
		)
		if err != nil {
			return rec, fmt.Errorf("inserting output %s: %w", p.Output, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return rec, fmt.Errorf("committing run: %w", err)
	}
	return rec, nil
}

func compareDigest(ctx context.Context, tx *sql.Tx, runID int64, output, digest string) (types.OutputStatus, error) {
	var prev string
	err := tx.QueryRowContext(ctx,
		`SELECT digest FROM outputs WHERE output = ? AND run_id < ?
		 ORDER BY run_id DESC, seq DESC LIMIT 1`,
		output, runID,
	).Scan(&prev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return types.OutputNew, nil
	case err != nil:
		return "", fmt.Errorf("looking up previous digest for %s: %w", output, err)
	case prev == digest:
		return types.OutputUnchanged, nil
	default:
		return types.OutputChanged, nil
	}
}

// Runs returns up to limit runs, newest first. A limit of zero or less uses
// types.DefaultHistoryLimit.
func (l *Ledger) Runs(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = types.DefaultHistoryLimit
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ns FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var runs []types.RunRecord
	for rows.Next() {
		var (
			rec       types.RunRecord
			startedAt string
			duration  int64
		)
		if err := rows.Scan(&rec.ID, &startedAt, &duration); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		rec.Duration = time.Duration(duration)
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		passes, err := l.outputs(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Passes = passes
	}
	return runs, nil
}

func (l *Ledger) outputs(ctx context.Context, runID int64) ([]types.PassResult, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT pass, input, output, lines_read, records, skipped, bytes, digest, status
		 FROM outputs WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outputs for run %d: %w", runID, err)
	}
	defer rows.Close()

	var passes []types.PassResult
	for rows.Next() {
		var (
			p            types.PassResult
			pass, status string
		)
		if err := rows.Scan(&pass, &p.Input, &p.Output, &p.LinesRead, &p.Records,
			&p.Skipped, &p.Bytes, &p.Digest, &status); err != nil {
			return nil, fmt.Errorf("scanning output: %w", err)
		}
		p.Pass = types.Pass(pass)
		p.Status = types.OutputStatus(status)
		passes = append(passes, p)
	}
	return passes, rows.Err()
}
