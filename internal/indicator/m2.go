package indicator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"macrodash/internal/source"
)

// BuildM2 builds the global M2 document: a global total estimated from US M2
// plus per-country blocks with year-over-year change.
func (b *Builder) BuildM2(ctx context.Context, asOf string) (*Document, error) {
	cat := b.cat.M2

	raw, err := b.src.Observations(ctx, source.Request{
		SeriesID:  cat.TotalSeries,
		Start:     cat.Start,
		Frequency: cat.Frequency,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", cat.TotalSeries, err)
	}

	divisor := cat.TotalDivisor
	if divisor <= 0 {
		divisor = 1
	}
	total := rescale(raw, 1, func(v float64) float64 {
		return v / divisor * cat.GlobalMultiplier
	})

	doc := &Document{
		Series: "m2",
		Meta: Meta{
			LastUpdated:  asOf,
			SourceSeries: []string{cat.TotalSeries},
			Units:        "trillion_usd",
		},
		Observations: total,
		CurrentValue: last(total),
		YoYPct:       yoyPct(total, 12),
		Countries:    make(map[string]*Country, len(cat.Countries)),
	}

	for _, e := range cat.Countries {
		obs, err := b.src.Observations(ctx, source.Request{
			SeriesID:  e.SeriesID,
			Start:     cat.Start,
			Frequency: cat.Frequency,
		})
		if err != nil {
			b.log.Warn("m2 country fetch failed",
				zap.String("country", e.Key),
				zap.String("series_id", e.SeriesID),
				zap.Error(err))
			continue
		}
		scaled := rescale(obs, 2, e.Divide)
		doc.Countries[e.Key] = &Country{
			Name:         e.Name,
			Flag:         e.Flag,
			Current:      last(scaled),
			YoYPct:       yoyPct(scaled, 12),
			Observations: scaled,
		}
		doc.Meta.SourceSeries = append(doc.Meta.SourceSeries, e.SeriesID)
	}

	return doc, nil
}
