// Package indicator reshapes raw upstream observations into the dashboard's
// per-indicator JSON documents.
package indicator

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"macrodash/internal/catalog"
	"macrodash/internal/source"
)

// Builder builds every indicator document from a series source.
type Builder struct {
	src source.Source
	cat *catalog.Catalog
	log *zap.Logger
}

func NewBuilder(src source.Source, cat *catalog.Catalog, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{src: src, cat: cat, log: log}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// nonNull returns the non-null values in observation order, the way summary
// figures are computed: gaps never contribute to a headline number.
func nonNull(obs []source.Observation) []float64 {
	out := make([]float64, 0, len(obs))
	for _, o := range obs {
		if o.Value != nil {
			out = append(out, *o.Value)
		}
	}
	return out
}

// last returns the newest non-null value.
func last(obs []source.Observation) *float64 {
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].Value != nil {
			v := *obs[i].Value
			return &v
		}
	}
	return nil
}

// lastDate returns the date of the newest non-null observation, or fallback.
func lastDate(obs []source.Observation, fallback string) string {
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].Value != nil {
			return obs[i].Date
		}
	}
	return fallback
}

// delta is the difference between the two newest non-null values.
func delta(obs []source.Observation, places int) *float64 {
	vals := nonNull(obs)
	if len(vals) < 2 {
		return nil
	}
	d := round(vals[len(vals)-1]-vals[len(vals)-2], places)
	return &d
}

// yoyPct compares the newest non-null value against the one lag periods
// earlier, as a percentage. Nil when the history is too short.
func yoyPct(obs []source.Observation, lag int) *float64 {
	vals := nonNull(obs)
	if len(vals) <= lag {
		return nil
	}
	base := vals[len(vals)-1-lag]
	if base == 0 {
		return nil
	}
	v := round((vals[len(vals)-1]-base)/base*100, 1)
	return &v
}

// unionDates merges the date axes of several observation sequences, ascending.
func unionDates(seqs ...[]source.Observation) []string {
	set := make(map[string]struct{})
	for _, seq := range seqs {
		for _, o := range seq {
			set[o.Date] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// alignTo projects obs onto a shared date axis. Dates the sequence does not
// cover become null observations; the renderer draws them as gaps.
func alignTo(dates []string, obs []source.Observation) []source.Observation {
	byDate := make(map[string]*float64, len(obs))
	for _, o := range obs {
		byDate[o.Date] = o.Value
	}
	out := make([]source.Observation, len(dates))
	for i, d := range dates {
		out[i] = source.Observation{Date: d, Value: byDate[d]}
	}
	return out
}

// rescale applies f to every non-null value, rounding to places.
func rescale(obs []source.Observation, places int, f func(float64) float64) []source.Observation {
	out := make([]source.Observation, len(obs))
	for i, o := range obs {
		out[i] = source.Observation{Date: o.Date}
		if o.Value != nil {
			v := *o.Value
			if f != nil {
				v = f(v)
			}
			v = round(v, places)
			out[i].Value = &v
		}
	}
	return out
}
