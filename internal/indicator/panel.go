package indicator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"macrodash/internal/catalog"
	"macrodash/internal/source"
)

// panelSpec parameterizes the shared multi-country panel builder.
type panelSpec struct {
	series      string
	units       string
	places      int                   // value rounding
	transform   func(float64) float64 // applied before rounding, nil for identity
	dateLabel   func(string) string   // date-axis relabeling, nil for identity
	withDelta   bool                  // report change vs previous reading
	deltaPlaces int
}

// buildPanel fetches one series per country, aligns them on the union of
// their date axes and fills the gaps with nulls. A country whose fetch fails
// is skipped; the panel fails only when every country does.
func (b *Builder) buildPanel(ctx context.Context, asOf string, cat catalog.Panel, spec panelSpec) (*Document, error) {
	type fetched struct {
		entry catalog.Entry
		obs   []source.Observation
	}

	rows := make([]fetched, 0, len(cat.Entries))
	var sources []string
	for _, e := range cat.Entries {
		raw, err := b.src.Observations(ctx, source.Request{
			SeriesID:  e.SeriesID,
			Start:     cat.Start,
			Frequency: cat.Frequency,
		})
		if err != nil {
			b.log.Warn("panel series fetch failed",
				zap.String("panel", spec.series),
				zap.String("country", e.Key),
				zap.String("series_id", e.SeriesID),
				zap.Error(err))
			continue
		}
		obs := rescale(raw, spec.places, spec.transform)
		if spec.dateLabel != nil {
			obs = relabelDates(obs, spec.dateLabel)
		}
		rows = append(rows, fetched{entry: e, obs: obs})
		sources = append(sources, e.SeriesID)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no series available", spec.series)
	}

	seqs := make([][]source.Observation, len(rows))
	for i, r := range rows {
		seqs[i] = r.obs
	}
	dates := unionDates(seqs...)

	doc := &Document{
		Series: spec.series,
		Meta: Meta{
			LastUpdated:  asOf,
			SourceSeries: sources,
			Units:        spec.units,
		},
		Countries: make(map[string]*Country, len(rows)),
	}
	for i, r := range rows {
		aligned := alignTo(dates, r.obs)
		c := &Country{
			Name:         r.entry.Name,
			Flag:         r.entry.Flag,
			Bank:         r.entry.Bank,
			Current:      last(aligned),
			Observations: aligned,
		}
		if spec.withDelta {
			c.PrevChange = delta(r.obs, spec.deltaPlaces)
		}
		doc.Countries[r.entry.Key] = c
		// The first catalog entry is the panel's headline series.
		if i == 0 {
			doc.Observations = aligned
			doc.CurrentValue = c.Current
		}
	}
	return doc, nil
}

// relabelDates maps the date axis (e.g. to year labels) keeping the last
// value per label.
func relabelDates(obs []source.Observation, label func(string) string) []source.Observation {
	out := make([]source.Observation, 0, len(obs))
	for _, o := range obs {
		d := label(o.Date)
		if n := len(out); n > 0 && out[n-1].Date == d {
			out[n-1].Value = o.Value
			continue
		}
		out = append(out, source.Observation{Date: d, Value: o.Value})
	}
	return out
}

// BuildRates builds the central-bank policy rate panel.
func (b *Builder) BuildRates(ctx context.Context, asOf string) (*Document, error) {
	return b.buildPanel(ctx, asOf, b.cat.Rates, panelSpec{
		series:      "rates",
		units:       "percent",
		places:      2,
		withDelta:   true,
		deltaPlaces: 2,
	})
}

// BuildDebtGDP builds the government debt-to-GDP panel on a yearly axis.
func (b *Builder) BuildDebtGDP(ctx context.Context, asOf string) (*Document, error) {
	return b.buildPanel(ctx, asOf, b.cat.DebtGDP, panelSpec{
		series: "debt_gdp",
		units:  "pct_gdp",
		places: 0,
		dateLabel: func(d string) string {
			if len(d) >= 4 {
				return d[:4]
			}
			return d
		},
	})
}

// BuildPMI builds the PMI panel from OECD composite leading indicators,
// mapped from the CLI's 100-centered scale onto a 50-centered PMI-like one.
func (b *Builder) BuildPMI(ctx context.Context, asOf string) (*Document, error) {
	return b.buildPanel(ctx, asOf, b.cat.PMI, panelSpec{
		series: "pmi",
		units:  "index",
		places: 1,
		transform: func(v float64) float64 {
			p := (v-100)*5 + 50
			if p < 30 {
				return 30
			}
			if p > 65 {
				return 65
			}
			return p
		},
		withDelta:   true,
		deltaPlaces: 1,
	})
}

// BuildUnemployment builds the unemployment rate panel.
func (b *Builder) BuildUnemployment(ctx context.Context, asOf string) (*Document, error) {
	return b.buildPanel(ctx, asOf, b.cat.Unemployment, panelSpec{
		series:      "unemployment",
		units:       "percent",
		places:      1,
		withDelta:   true,
		deltaPlaces: 1,
	})
}
