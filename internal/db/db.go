// Package db archives completed analysis runs in SQLite so past sessions can
// be queried after the fact. The schema is managed by embedded migrations.
package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/telemetry.report/internal/telemetry"
)

type DB struct {
	*sql.DB
}

// Open connects to the archive database at path and brings the schema up to
// date.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// RecordRun stores one completed analysis: the run row, every parsed sample,
// and the three condition results. Returns the new run id.
func (db *DB) RecordRun(input string, opts telemetry.Options, a *telemetry.Analysis) (string, error) {
	runID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	method := sql.NullString{}
	if opts.Fill {
		method = sql.NullString{String: opts.Method.String(), Valid: true}
	}
	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, input, filled, method) VALUES (?, ?, ?, ?)`,
		runID, input, opts.Fill, method,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, channel, time, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range a.Records {
		value := sql.NullFloat64{}
		if rec.Value.Valid {
			value = sql.NullFloat64{Float64: rec.Value.Value, Valid: true}
		}
		if _, err := stmt.Exec(runID, rec.Channel, rec.Time, value); err != nil {
			return "", fmt.Errorf("insert sample: %w", err)
		}
	}

	for _, r := range a.Results {
		firstTime := sql.NullFloat64{}
		if r.Found {
			firstTime = sql.NullFloat64{Float64: r.FirstTime, Valid: true}
		}
		if _, err := tx.Exec(
			`INSERT INTO condition_results (run_id, condition, first_time) VALUES (?, ?, ?)`,
			runID, r.Condition.Name(), firstTime,
		); err != nil {
			return "", fmt.Errorf("insert condition result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit archive transaction: %w", err)
	}
	return runID, nil
}

// Run is one archived analysis run.
type Run struct {
	ID     string
	Input  string
	Filled bool
	Method string
}

// ListRuns returns archived runs, most recent first.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.Query(`SELECT run_id, input, filled, COALESCE(method, '') FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Input, &r.Filled, &r.Method); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the archived condition results for a run in their
// stored order. A NULL first_time round-trips as not found.
func (db *DB) RunResults(runID string) (map[string]sql.NullFloat64, error) {
	rows, err := db.Query(`SELECT condition, first_time FROM condition_results WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query condition results: %w", err)
	}
	defer rows.Close()

	results := make(map[string]sql.NullFloat64)
	for rows.Next() {
		var name string
		var firstTime sql.NullFloat64
		if err := rows.Scan(&name, &firstTime); err != nil {
			return nil, fmt.Errorf("scan condition result: %w", err)
		}
		results[name] = firstTime
	}
	return results, rows.Err()
}
