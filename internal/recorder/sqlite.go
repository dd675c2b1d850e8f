package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder keeps one row per run and one per series outcome.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the audit database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block a running fetch.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			succeeded   INTEGER NOT NULL,
			failed      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS series_results (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			series       TEXT NOT NULL,
			status       TEXT NOT NULL,
			error        TEXT,
			observations INTEGER,
			duration_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_run ON series_results(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSeries(res *SeriesResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO series_results
		(run_id, series, status, error, observations, duration_ms)
		VALUES (?,?,?,?,?,?)`,
		res.RunID, res.Series, res.Status, res.Error,
		res.Observations, res.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordRun(sum *RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, started_at, finished_at, succeeded, failed)
		VALUES (?,?,?,?,?)`,
		sum.RunID, sum.StartedAt.Unix(), sum.FinishedAt.Unix(),
		sum.Succeeded, sum.Failed,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
