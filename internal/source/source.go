package source

import "context"

// Observation is the normalized shape returned by all series sources.
// Value is nil when the upstream has no data for that date.
type Observation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Request identifies one upstream time series to fetch.
type Request struct {
	SeriesID  string
	Start     string // YYYY-MM-DD, inclusive
	Frequency string // upstream frequency tag ("m", "w", "a"), empty for native
}

type Source interface {
	Name() string
	Observations(ctx context.Context, req Request) ([]Observation, error)
}

// Float returns a pointer to v, for building nullable observation values.
func Float(v float64) *float64 { return &v }
