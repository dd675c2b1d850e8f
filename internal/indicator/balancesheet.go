package indicator

import (
	"context"
	"fmt"

	"macrodash/internal/source"
)

// BuildBalanceSheet builds the Fed balance sheet document (WALCL, millions of
// dollars) rescaled to trillions, with the week-over-week change.
func (b *Builder) BuildBalanceSheet(ctx context.Context, asOf string) (*Document, error) {
	cat := b.cat.BalanceSheet

	raw, err := b.src.Observations(ctx, source.Request{
		SeriesID:  cat.SeriesID,
		Start:     cat.Start,
		Frequency: cat.Frequency,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", cat.SeriesID, err)
	}

	obs := rescale(raw, 2, func(v float64) float64 { return v / 1_000_000 })

	return &Document{
		Series: "fed_balance_sheet",
		Meta: Meta{
			LastUpdated:  lastDate(obs, asOf),
			SourceSeries: []string{cat.SeriesID},
			Units:        "trillion_usd",
		},
		Observations: obs,
		CurrentValue: last(obs),
		WeeklyChange: delta(obs, 3),
	}, nil
}
