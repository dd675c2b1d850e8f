package indicator

import (
	"context"
	"fmt"

	"macrodash/internal/source"
)

// nfciStatus buckets the Chicago Fed NFCI reading. Negative readings mean
// looser-than-average financial conditions.
func nfciStatus(v float64) string {
	switch {
	case v < -0.3:
		return "loose"
	case v < 0:
		return "slightly_loose"
	case v < 0.3:
		return "slightly_tight"
	default:
		return "tight"
	}
}

// BuildNFCI builds the financial conditions document.
func (b *Builder) BuildNFCI(ctx context.Context, asOf string) (*Document, error) {
	cat := b.cat.NFCI

	raw, err := b.src.Observations(ctx, source.Request{
		SeriesID:  cat.SeriesID,
		Start:     cat.Start,
		Frequency: cat.Frequency,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", cat.SeriesID, err)
	}

	obs := rescale(raw, 2, nil)
	doc := &Document{
		Series: "nfci",
		Meta: Meta{
			LastUpdated:  lastDate(obs, asOf),
			SourceSeries: []string{cat.SeriesID},
			Units:        "index",
		},
		Observations: obs,
		CurrentValue: last(obs),
	}
	if doc.CurrentValue != nil {
		doc.Status = nfciStatus(*doc.CurrentValue)
	}
	return doc, nil
}
