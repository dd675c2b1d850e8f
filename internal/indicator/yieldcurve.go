package indicator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"macrodash/internal/source"
)

// Offsets into the daily history for the comparison curves, in trading days.
const (
	tradingDaysPerMonth = 22
	tradingDaysPerYear  = 252
)

func spreadStatus(s float64) string {
	switch {
	case s < -0.1:
		return "INVERTED"
	case s < 0.1:
		return "FLAT"
	default:
		return "NORMAL"
	}
}

// BuildYieldCurve builds the Treasury yield curve document: a snapshot of the
// curve now, one month ago and one year ago, the 2s10s and 3m10y spreads, and
// the daily 2s10s history as the primary observation series.
func (b *Builder) BuildYieldCurve(ctx context.Context, asOf string) (*Document, error) {
	cat := b.cat.YieldCurve

	curve := &Curve{}
	rateByLabel := make(map[string]float64, len(cat.Maturities))
	obsByLabel := make(map[string][]source.Observation, 2)
	var sources []string

	for _, m := range cat.Maturities {
		raw, err := b.src.Observations(ctx, source.Request{
			SeriesID: m.SeriesID,
			Start:    cat.Start,
		})
		if err != nil {
			b.log.Warn("yield curve maturity fetch failed",
				zap.String("maturity", m.Label),
				zap.String("series_id", m.SeriesID),
				zap.Error(err))
			continue
		}
		vals := nonNull(raw)
		if len(vals) == 0 {
			continue
		}
		sources = append(sources, m.SeriesID)
		if m.Label == "2Y" || m.Label == "10Y" || m.Label == "3M" {
			obsByLabel[m.Label] = raw
		}

		cur := vals[len(vals)-1]
		rateByLabel[m.Label] = cur
		curve.Maturities = append(curve.Maturities, m.Label)
		curve.Current = append(curve.Current, source.Float(cur))
		curve.OneMonthAgo = append(curve.OneMonthAgo, source.Float(vals[maxIdx(len(vals)-tradingDaysPerMonth)]))
		curve.OneYearAgo = append(curve.OneYearAgo, source.Float(vals[maxIdx(len(vals)-tradingDaysPerYear)]))
	}

	if len(curve.Maturities) == 0 {
		return nil, fmt.Errorf("no maturities available")
	}

	doc := &Document{
		Series: "yield_curve",
		Meta: Meta{
			LastUpdated:  lastDate(obsByLabel["10Y"], asOf),
			SourceSeries: sources,
			Units:        "percent",
		},
		Observations: spreadHistory(obsByLabel["10Y"], obsByLabel["2Y"]),
		Curve:        curve,
		Spreads: map[string]Spread{
			"2s10s": spreadOf(rateByLabel, "10Y", "2Y"),
			"3m10y": spreadOf(rateByLabel, "10Y", "3M"),
		},
	}
	return doc, nil
}

func maxIdx(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func spreadOf(rates map[string]float64, long, short string) Spread {
	lv, lok := rates[long]
	sv, sok := rates[short]
	if !lok || !sok {
		return Spread{}
	}
	v := round(lv-sv, 2)
	return Spread{Value: &v, Status: spreadStatus(v)}
}

// spreadHistory computes the daily long-short spread over the union of both
// date axes. Dates where either leg is missing come out null.
func spreadHistory(long, short []source.Observation) []source.Observation {
	if len(long) == 0 || len(short) == 0 {
		return []source.Observation{}
	}
	dates := unionDates(long, short)
	la := alignTo(dates, long)
	sa := alignTo(dates, short)
	out := make([]source.Observation, len(dates))
	for i, d := range dates {
		out[i] = source.Observation{Date: d}
		if la[i].Value != nil && sa[i].Value != nil {
			v := round(*la[i].Value-*sa[i].Value, 2)
			out[i].Value = &v
		}
	}
	return out
}
