package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cat := Default()

	require.Equal(t, "M2SL", cat.M2.TotalSeries)
	require.InEpsilon(t, 4.3, cat.M2.GlobalMultiplier, 0.0001)
	require.Equal(t, "WALCL", cat.BalanceSheet.SeriesID)
	require.Len(t, cat.YieldCurve.Maturities, 11)
	require.Equal(t, "1M", cat.YieldCurve.Maturities[0].Label)
	require.Equal(t, "30Y", cat.YieldCurve.Maturities[10].Label)
	require.Equal(t, "NFCI", cat.NFCI.SeriesID)
	require.Len(t, cat.Rates.Entries, 5)
	require.Len(t, cat.DebtGDP.Entries, 5)
	require.Equal(t, "a", cat.DebtGDP.Frequency)
	require.Len(t, cat.PMI.Entries, 5)
	require.Equal(t, "UNRATE", cat.Unemployment.Entries[0].SeriesID)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cat, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cat)

	cat, err = Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cat)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	overlay := `
nfci:
  series: NFCI
  start: "2010-01-01"
  frequency: w
m2:
  start: "2015-01-01"
  frequency: m
  total_series: M2SL
  total_divisor: 1000
  global_multiplier: 5.0
  countries:
    - key: us
      series: M2SL
      name: United States
      flag: "🇺🇸"
      divisor: 1000
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	// Overridden sections take the file's values.
	require.Equal(t, "2010-01-01", cat.NFCI.Start)
	require.InEpsilon(t, 5.0, cat.M2.GlobalMultiplier, 0.0001)
	require.Len(t, cat.M2.Countries, 1)

	// Untouched sections keep their defaults.
	require.Equal(t, "WALCL", cat.BalanceSheet.SeriesID)
	require.Len(t, cat.Rates.Entries, 5)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("m2: [not: a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEntryDivide(t *testing.T) {
	t.Parallel()

	require.InEpsilon(t, 2.0, Entry{Divisor: 1000}.Divide(2000), 0.0001)
	require.InEpsilon(t, 7.5, Entry{}.Divide(7.5), 0.0001)
}
