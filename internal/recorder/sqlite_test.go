package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorderRoundtrip(t *testing.T) {
	t.Parallel()

	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer rec.Close()

	started := time.Now().Add(-time.Minute)
	require.NoError(t, rec.RecordSeries(&SeriesResult{
		RunID:        "run-1",
		Series:       "nfci",
		Status:       "ok",
		Observations: 1250,
		Duration:     340 * time.Millisecond,
	}))
	require.NoError(t, rec.RecordSeries(&SeriesResult{
		RunID:    "run-1",
		Series:   "pmi",
		Status:   "failed",
		Error:    "rate limited",
		Duration: 120 * time.Millisecond,
	}))
	require.NoError(t, rec.RecordRun(&RunSummary{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: time.Now(),
		Succeeded:  7,
		Failed:     1,
	}))

	var count int
	require.NoError(t, rec.db.QueryRow(
		`SELECT COUNT(*) FROM series_results WHERE run_id = ?`, "run-1").Scan(&count))
	require.Equal(t, 2, count)

	var status, errMsg string
	var durationMS int64
	require.NoError(t, rec.db.QueryRow(
		`SELECT status, error, duration_ms FROM series_results WHERE series = ?`, "pmi").
		Scan(&status, &errMsg, &durationMS))
	require.Equal(t, "failed", status)
	require.Equal(t, "rate limited", errMsg)
	require.EqualValues(t, 120, durationMS)

	var succeeded, failed int
	require.NoError(t, rec.db.QueryRow(
		`SELECT succeeded, failed FROM runs WHERE run_id = ?`, "run-1").
		Scan(&succeeded, &failed))
	require.Equal(t, 7, succeeded)
	require.Equal(t, 1, failed)
}

func TestSQLiteRecorderReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.db")

	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.RecordRun(&RunSummary{RunID: "run-1", StartedAt: time.Now(), FinishedAt: time.Now()}))
	require.NoError(t, rec.Close())

	// Reopening runs migrations idempotently and keeps old rows.
	rec, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	var count int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count))
	require.Equal(t, 1, count)
}
