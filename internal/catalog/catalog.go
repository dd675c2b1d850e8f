package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry maps one country to its upstream series.
type Entry struct {
	Key      string  `yaml:"key"`
	SeriesID string  `yaml:"series"`
	Name     string  `yaml:"name"`
	Flag     string  `yaml:"flag"`
	Bank     string  `yaml:"bank,omitempty"`    // central bank label, rates only
	Divisor  float64 `yaml:"divisor,omitempty"` // scale divisor, 0 means 1
}

// Panel describes a multi-country indicator built from one series per country.
type Panel struct {
	Start     string  `yaml:"start"`
	Frequency string  `yaml:"frequency"`
	Entries   []Entry `yaml:"entries"`
}

// Single describes an indicator built from exactly one upstream series.
type Single struct {
	SeriesID  string `yaml:"series"`
	Start     string `yaml:"start"`
	Frequency string `yaml:"frequency"`
}

// CurvePoint is one maturity on the yield curve.
type CurvePoint struct {
	Label    string `yaml:"label"`
	SeriesID string `yaml:"series"`
}

type M2 struct {
	Start            string  `yaml:"start"`
	Frequency        string  `yaml:"frequency"`
	TotalSeries      string  `yaml:"total_series"`
	TotalDivisor     float64 `yaml:"total_divisor"`
	GlobalMultiplier float64 `yaml:"global_multiplier"`
	Countries        []Entry `yaml:"countries"`
}

type YieldCurve struct {
	Start      string       `yaml:"start"`
	Maturities []CurvePoint `yaml:"maturities"`
}

// Catalog holds every upstream series-code table. The defaults cover the
// shipped dashboard; a YAML file can swap series ids, start dates or country
// labels without a rebuild.
type Catalog struct {
	M2           M2         `yaml:"m2"`
	BalanceSheet Single     `yaml:"fed_balance_sheet"`
	YieldCurve   YieldCurve `yaml:"yield_curve"`
	NFCI         Single     `yaml:"nfci"`
	Rates        Panel      `yaml:"rates"`
	DebtGDP      Panel      `yaml:"debt_gdp"`
	PMI          Panel      `yaml:"pmi"`
	Unemployment Panel      `yaml:"unemployment"`
}

// Default returns the built-in series tables.
func Default() *Catalog {
	return &Catalog{
		M2: M2{
			Start:            "2015-01-01",
			Frequency:        "m",
			TotalSeries:      "M2SL",
			TotalDivisor:     1000, // billions -> trillions
			GlobalMultiplier: 4.3,  // US share of global M2 is roughly 23%
			Countries: []Entry{
				{Key: "us", SeriesID: "M2SL", Name: "United States", Flag: "🇺🇸", Divisor: 1000},
				{Key: "eu", SeriesID: "MABMM301EZM189S", Name: "Euro Area", Flag: "🇪🇺"},
				{Key: "jp", SeriesID: "MABMM301JPM189S", Name: "Japan", Flag: "🇯🇵"},
				{Key: "kr", SeriesID: "MABMM301KRM189S", Name: "South Korea", Flag: "🇰🇷"},
			},
		},
		BalanceSheet: Single{SeriesID: "WALCL", Start: "2008-01-01", Frequency: "w"},
		YieldCurve: YieldCurve{
			Start: "2023-01-01",
			Maturities: []CurvePoint{
				{Label: "1M", SeriesID: "DGS1MO"},
				{Label: "3M", SeriesID: "DGS3MO"},
				{Label: "6M", SeriesID: "DGS6MO"},
				{Label: "1Y", SeriesID: "DGS1"},
				{Label: "2Y", SeriesID: "DGS2"},
				{Label: "3Y", SeriesID: "DGS3"},
				{Label: "5Y", SeriesID: "DGS5"},
				{Label: "7Y", SeriesID: "DGS7"},
				{Label: "10Y", SeriesID: "DGS10"},
				{Label: "20Y", SeriesID: "DGS20"},
				{Label: "30Y", SeriesID: "DGS30"},
			},
		},
		NFCI: Single{SeriesID: "NFCI", Start: "2000-01-01", Frequency: "w"},
		Rates: Panel{
			Start:     "2000-01-01",
			Frequency: "m",
			Entries: []Entry{
				{Key: "us", SeriesID: "DFEDTARU", Name: "United States", Flag: "🇺🇸", Bank: "Fed"},
				{Key: "kr", SeriesID: "IRSTCI01KRM156N", Name: "South Korea", Flag: "🇰🇷", Bank: "BOK"},
				{Key: "eu", SeriesID: "ECBMRRFR", Name: "Euro Area", Flag: "🇪🇺", Bank: "ECB"},
				{Key: "jp", SeriesID: "IRSTCI01JPM156N", Name: "Japan", Flag: "🇯🇵", Bank: "BOJ"},
				{Key: "cn", SeriesID: "INTDSRCNM193N", Name: "China", Flag: "🇨🇳", Bank: "PBoC"},
			},
		},
		DebtGDP: Panel{
			Start:     "2000-01-01",
			Frequency: "a",
			Entries: []Entry{
				{Key: "us", SeriesID: "GFDEGDQ188S", Name: "United States", Flag: "🇺🇸"},
				{Key: "jp", SeriesID: "GGGDTAJPA188N", Name: "Japan", Flag: "🇯🇵"},
				{Key: "eu", SeriesID: "GGGDTAEZA188N", Name: "Euro Area", Flag: "🇪🇺"},
				{Key: "kr", SeriesID: "GGGDTAKRA188N", Name: "South Korea", Flag: "🇰🇷"},
				{Key: "cn", SeriesID: "GGGDTACNA188N", Name: "China", Flag: "🇨🇳"},
			},
		},
		PMI: Panel{
			Start:     "2015-01-01",
			Frequency: "m",
			Entries: []Entry{
				{Key: "us", SeriesID: "USALOLITONOSTSAM", Name: "United States", Flag: "🇺🇸"},
				{Key: "jp", SeriesID: "JPNLOLITONOSTSAM", Name: "Japan", Flag: "🇯🇵"},
				{Key: "eu", SeriesID: "EA19LOLITONOSTSAM", Name: "Euro Area", Flag: "🇪🇺"},
				{Key: "kr", SeriesID: "KORLOLITONOSTSAM", Name: "South Korea", Flag: "🇰🇷"},
				{Key: "cn", SeriesID: "CHNLOLITONOSTSAM", Name: "China", Flag: "🇨🇳"},
			},
		},
		Unemployment: Panel{
			Start:     "2000-01-01",
			Frequency: "m",
			Entries: []Entry{
				{Key: "us", SeriesID: "UNRATE", Name: "United States", Flag: "🇺🇸"},
				{Key: "kr", SeriesID: "LRUN64TTKRM156S", Name: "South Korea", Flag: "🇰🇷"},
				{Key: "eu", SeriesID: "LRHUTTTTEZM156S", Name: "Euro Area", Flag: "🇪🇺"},
				{Key: "jp", SeriesID: "LRUN64TTJPM156S", Name: "Japan", Flag: "🇯🇵"},
				{Key: "cn", SeriesID: "LRUN64TTCNM156S", Name: "China", Flag: "🇨🇳"},
			},
		},
	}
}

// Load reads a YAML catalog from path over the defaults. An empty path or a
// missing file returns the defaults.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return cat, nil
}

// Divide applies the entry's scale divisor.
func (e Entry) Divide(v float64) float64 {
	if e.Divisor > 1 {
		return v / e.Divisor
	}
	return v
}
