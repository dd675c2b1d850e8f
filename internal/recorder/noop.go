package recorder

// NoopRecorder is used when no audit database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSeries(_ *SeriesResult) error { return nil }
func (n *NoopRecorder) RecordRun(_ *RunSummary) error      { return nil }
func (n *NoopRecorder) Close() error                       { return nil }
