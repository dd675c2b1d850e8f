package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"macrodash/internal/catalog"
	"macrodash/internal/indicator"
	"macrodash/internal/recorder"
	"macrodash/internal/source"
	"macrodash/internal/store"
)

type fakeSource struct {
	series map[string][]source.Observation
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Observations(_ context.Context, req source.Request) ([]source.Observation, error) {
	obs, ok := f.series[req.SeriesID]
	if !ok {
		return nil, fmt.Errorf("unknown series %s", req.SeriesID)
	}
	return obs, nil
}

type memRecorder struct {
	series []*recorder.SeriesResult
	runs   []*recorder.RunSummary
}

func (m *memRecorder) RecordSeries(res *recorder.SeriesResult) error {
	m.series = append(m.series, res)
	return nil
}

func (m *memRecorder) RecordRun(sum *recorder.RunSummary) error {
	m.runs = append(m.runs, sum)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func monthly(start string, vals ...float64) []source.Observation {
	t0, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	out := make([]source.Observation, 0, len(vals))
	for i, v := range vals {
		out = append(out, source.Observation{
			Date:  t0.AddDate(0, i, 0).Format("2006-01-02"),
			Value: source.Float(v),
		})
	}
	return out
}

// testCatalog keeps every indicator to one or two small upstream series.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		M2: catalog.M2{
			Start: "2024-01-01", Frequency: "m",
			TotalSeries: "M2SL", TotalDivisor: 1000, GlobalMultiplier: 2,
			Countries: []catalog.Entry{{Key: "us", SeriesID: "M2SL", Name: "United States", Flag: "🇺🇸", Divisor: 1000}},
		},
		BalanceSheet: catalog.Single{SeriesID: "WALCL", Start: "2024-01-01", Frequency: "w"},
		YieldCurve: catalog.YieldCurve{
			Start: "2024-01-01",
			Maturities: []catalog.CurvePoint{
				{Label: "3M", SeriesID: "DGS3MO"},
				{Label: "2Y", SeriesID: "DGS2"},
				{Label: "10Y", SeriesID: "DGS10"},
			},
		},
		NFCI:         catalog.Single{SeriesID: "NFCI", Start: "2024-01-01", Frequency: "w"},
		Rates:        catalog.Panel{Start: "2024-01-01", Frequency: "m", Entries: []catalog.Entry{{Key: "us", SeriesID: "DFEDTARU", Name: "United States", Flag: "🇺🇸", Bank: "Fed"}}},
		DebtGDP:      catalog.Panel{Start: "2024-01-01", Frequency: "a", Entries: []catalog.Entry{{Key: "us", SeriesID: "USDEBT", Name: "United States", Flag: "🇺🇸"}}},
		PMI:          catalog.Panel{Start: "2024-01-01", Frequency: "m", Entries: []catalog.Entry{{Key: "us", SeriesID: "USCLI", Name: "United States", Flag: "🇺🇸"}}},
		Unemployment: catalog.Panel{Start: "2024-01-01", Frequency: "m", Entries: []catalog.Entry{{Key: "us", SeriesID: "UNRATE", Name: "United States", Flag: "🇺🇸"}}},
	}
}

func testSeries() map[string][]source.Observation {
	return map[string][]source.Observation{
		"M2SL":     monthly("2024-01-01", 20000, 20100, 20200),
		"WALCL":    monthly("2024-01-01", 7_000_000, 7_500_000, 7_600_000),
		"DGS3MO":   monthly("2024-01-01", 5.4, 5.4),
		"DGS2":     monthly("2024-01-01", 4.1, 4.05),
		"DGS10":    monthly("2024-01-01", 4.0, 4.1),
		"NFCI":     monthly("2024-01-01", -0.46, -0.23),
		"DFEDTARU": monthly("2024-01-01", 5.25, 5.5),
		"USDEBT":   monthly("2024-01-01", 120.4, 121.6),
		"USCLI":    monthly("2024-01-01", 99, 101.5),
		"UNRATE":   monthly("2024-01-01", 3.7, 3.9),
	}
}

func TestRunWritesAllFiles(t *testing.T) {
	t.Parallel()

	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	rec := &memRecorder{}

	f := New(&fakeSource{series: testSeries()}, testCatalog(), st, rec, nil)
	sum := f.Run(t.Context())

	require.NotEmpty(t, sum.RunID)
	require.Len(t, sum.Succeeded, 8)
	require.Empty(t, sum.Failed)

	for _, name := range Files() {
		data, err := os.ReadFile(st.Path(name))
		require.NoErrorf(t, err, "missing %s", name)

		var doc indicator.Document
		require.NoError(t, json.Unmarshal(data, &doc))
		require.NoError(t, doc.Validate())
	}

	// Every series outcome and the run itself are recorded.
	require.Len(t, rec.series, 8)
	for _, res := range rec.series {
		require.Equal(t, sum.RunID, res.RunID)
		require.Equal(t, "ok", res.Status)
		require.Positive(t, res.Observations)
	}
	require.Len(t, rec.runs, 1)
	require.Equal(t, 8, rec.runs[0].Succeeded)
	require.Equal(t, 0, rec.runs[0].Failed)
}

func TestRunKeepsPreviousFileOnFailure(t *testing.T) {
	t.Parallel()

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	// A document from an earlier run.
	stale := &indicator.Document{
		Series:       "nfci",
		Observations: monthly("2023-01-01", -0.5),
	}
	require.NoError(t, st.Write("nfci.json", stale))
	before, err := os.ReadFile(st.Path("nfci.json"))
	require.NoError(t, err)

	series := testSeries()
	delete(series, "NFCI")
	rec := &memRecorder{}

	f := New(&fakeSource{series: series}, testCatalog(), st, rec, nil)
	sum := f.Run(t.Context())

	require.Len(t, sum.Succeeded, 7)
	require.Equal(t, []string{"nfci"}, sum.Failed)

	// The broken indicator's file is untouched; the rest were replaced.
	after, err := os.ReadFile(st.Path("nfci.json"))
	require.NoError(t, err)
	require.Equal(t, before, after)
	_, err = os.Stat(st.Path("rates.json"))
	require.NoError(t, err)

	var failed *recorder.SeriesResult
	for _, res := range rec.series {
		if res.Series == "nfci" {
			failed = res
		}
	}
	require.NotNil(t, failed)
	require.Equal(t, "failed", failed.Status)
	require.NotEmpty(t, failed.Error)
	require.Equal(t, 1, rec.runs[0].Failed)
}

func TestRunWithNilRecorderAndLogger(t *testing.T) {
	t.Parallel()

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	f := New(&fakeSource{series: testSeries()}, testCatalog(), st, nil, nil)
	sum := f.Run(t.Context())
	require.Len(t, sum.Succeeded, 8)
}

func TestFiles(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		"m2.json", "fed_balance_sheet.json", "yield_curve.json", "nfci.json",
		"rates.json", "debt_gdp.json", "pmi.json", "unemployment.json",
	}, Files())
}
