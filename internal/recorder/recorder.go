package recorder

import "time"

// SeriesResult is the outcome of one indicator within a run.
type SeriesResult struct {
	RunID        string
	Series       string
	Status       string // "ok" or "failed"
	Error        string
	Observations int
	Duration     time.Duration
}

// RunSummary is the outcome of one whole fetch run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Failed     int
}

// Recorder persists fetch-run outcomes for operational inspection. The JSON
// documents remain the only store for series data.
type Recorder interface {
	RecordSeries(res *SeriesResult) error
	RecordRun(sum *RunSummary) error
	Close() error
}
