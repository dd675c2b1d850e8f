package indicator

import (
	"fmt"

	"macrodash/internal/source"
)

// Meta carries provenance for one document.
type Meta struct {
	LastUpdated  string   `json:"last_updated"`
	SourceSeries []string `json:"source_series"`
	Units        string   `json:"units"`
}

// Country is one country's block inside a multi-country document.
type Country struct {
	Name         string               `json:"name"`
	Flag         string               `json:"flag"`
	Bank         string               `json:"bank,omitempty"`
	Current      *float64             `json:"current,omitempty"`
	PrevChange   *float64             `json:"prev_change,omitempty"`
	YoYPct       *float64             `json:"yoy_pct,omitempty"`
	Observations []source.Observation `json:"observations"`
}

// Curve is the yield-curve snapshot: rates per maturity now, one month ago
// and one year ago. Missing maturities hold nulls at the same index.
type Curve struct {
	Maturities  []string   `json:"maturities"`
	Current     []*float64 `json:"current"`
	OneMonthAgo []*float64 `json:"one_month_ago"`
	OneYearAgo  []*float64 `json:"one_year_ago"`
}

// Spread is a curve spread with its classification.
type Spread struct {
	Value  *float64 `json:"value"`
	Status string   `json:"status"` // NORMAL, FLAT or INVERTED
}

// Document is the fixed output shape consumed by the dashboard, one file per
// indicator. Observations is always present and date-ascending; the optional
// blocks depend on the indicator.
type Document struct {
	Series       string               `json:"series"`
	Meta         Meta                 `json:"meta"`
	Observations []source.Observation `json:"observations"`
	CurrentValue *float64             `json:"current_value,omitempty"`
	YoYPct       *float64             `json:"yoy_pct,omitempty"`
	WeeklyChange *float64             `json:"weekly_change,omitempty"`
	Status       string               `json:"status,omitempty"`
	Countries    map[string]*Country  `json:"countries,omitempty"`
	Curve        *Curve               `json:"curve,omitempty"`
	Spreads      map[string]Spread    `json:"spreads,omitempty"`
}

// Validate checks the document invariants: every observation sequence is
// strictly date-ascending with no duplicates.
func (d *Document) Validate() error {
	if d.Series == "" {
		return fmt.Errorf("series key is empty")
	}
	if err := validateObservations(d.Observations); err != nil {
		return fmt.Errorf("series %s: %w", d.Series, err)
	}
	for key, c := range d.Countries {
		if err := validateObservations(c.Observations); err != nil {
			return fmt.Errorf("series %s country %s: %w", d.Series, key, err)
		}
	}
	return nil
}

func validateObservations(obs []source.Observation) error {
	for i, o := range obs {
		if o.Date == "" {
			return fmt.Errorf("observation %d has no date", i)
		}
		if i > 0 && obs[i-1].Date >= o.Date {
			return fmt.Errorf("dates not strictly ascending at %q, %q", obs[i-1].Date, o.Date)
		}
	}
	return nil
}
