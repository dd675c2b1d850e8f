// Package fetcher runs one collection pass: build every indicator document
// and replace its file. One indicator's failure never aborts the others.
package fetcher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"macrodash/internal/catalog"
	"macrodash/internal/indicator"
	"macrodash/internal/recorder"
	"macrodash/internal/source"
	"macrodash/internal/store"
)

// task binds an indicator builder to its output file.
type task struct {
	series string
	file   string
	build  func(ctx context.Context, asOf string) (*indicator.Document, error)
}

// Summary reports one run's outcome.
type Summary struct {
	RunID     string
	Succeeded []string
	Failed    []string
}

type Fetcher struct {
	builder *indicator.Builder
	store   *store.Store
	rec     recorder.Recorder
	log     *zap.Logger
	now     func() time.Time
}

func New(src source.Source, cat *catalog.Catalog, st *store.Store, rec recorder.Recorder, log *zap.Logger) *Fetcher {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		builder: indicator.NewBuilder(src, cat, log),
		store:   st,
		rec:     rec,
		log:     log,
		now:     time.Now,
	}
}

func (f *Fetcher) tasks() []task {
	return []task{
		{"m2", "m2.json", f.builder.BuildM2},
		{"fed_balance_sheet", "fed_balance_sheet.json", f.builder.BuildBalanceSheet},
		{"yield_curve", "yield_curve.json", f.builder.BuildYieldCurve},
		{"nfci", "nfci.json", f.builder.BuildNFCI},
		{"rates", "rates.json", f.builder.BuildRates},
		{"debt_gdp", "debt_gdp.json", f.builder.BuildDebtGDP},
		{"pmi", "pmi.json", f.builder.BuildPMI},
		{"unemployment", "unemployment.json", f.builder.BuildUnemployment},
	}
}

// Files lists every document filename a full run produces.
func Files() []string {
	return []string{
		"m2.json", "fed_balance_sheet.json", "yield_curve.json", "nfci.json",
		"rates.json", "debt_gdp.json", "pmi.json", "unemployment.json",
	}
}

// Run executes every task sequentially. Failures are logged, recorded and
// skipped; the previous file for a failed indicator stays untouched.
func (f *Fetcher) Run(ctx context.Context) Summary {
	started := f.now()
	sum := Summary{RunID: uuid.NewString()}
	asOf := started.Format("2006-01-02")

	f.log.Info("fetch run starting", zap.String("run_id", sum.RunID), zap.String("as_of", asOf))

	for _, t := range f.tasks() {
		taskStart := f.now()
		err := f.runTask(ctx, t, asOf, sum.RunID, taskStart)
		if err != nil {
			sum.Failed = append(sum.Failed, t.series)
			f.log.Error("indicator failed",
				zap.String("run_id", sum.RunID),
				zap.String("series", t.series),
				zap.Error(err))
			continue
		}
		sum.Succeeded = append(sum.Succeeded, t.series)
	}

	if err := f.rec.RecordRun(&recorder.RunSummary{
		RunID:      sum.RunID,
		StartedAt:  started,
		FinishedAt: f.now(),
		Succeeded:  len(sum.Succeeded),
		Failed:     len(sum.Failed),
	}); err != nil {
		f.log.Warn("record run failed", zap.Error(err))
	}

	f.log.Info("fetch run finished",
		zap.String("run_id", sum.RunID),
		zap.Int("succeeded", len(sum.Succeeded)),
		zap.Int("failed", len(sum.Failed)))
	return sum
}

func (f *Fetcher) runTask(ctx context.Context, t task, asOf, runID string, taskStart time.Time) error {
	record := func(status string, obsCount int, err error) {
		res := &recorder.SeriesResult{
			RunID:        runID,
			Series:       t.series,
			Status:       status,
			Observations: obsCount,
			Duration:     f.now().Sub(taskStart),
		}
		if err != nil {
			res.Error = err.Error()
		}
		if rerr := f.rec.RecordSeries(res); rerr != nil {
			f.log.Warn("record series failed", zap.String("series", t.series), zap.Error(rerr))
		}
	}

	doc, err := t.build(ctx, asOf)
	if err != nil {
		record("failed", 0, err)
		return err
	}
	if err := doc.Validate(); err != nil {
		record("failed", len(doc.Observations), err)
		return err
	}
	if err := f.store.Write(t.file, doc); err != nil {
		record("failed", len(doc.Observations), err)
		return err
	}
	record("ok", len(doc.Observations), nil)
	f.log.Info("indicator written",
		zap.String("series", t.series),
		zap.String("file", f.store.Path(t.file)),
		zap.Int("observations", len(doc.Observations)))
	return nil
}
