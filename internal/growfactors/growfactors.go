// Package growfactors holds the annual macro growth factors used to age
// filing-unit data and to index policy parameters.
//
// Each factor value is the ratio of the factor's level in a year to its level
// in the previous year.
package growfactors

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/taxcalc/internal/taxerr"
)

//go:embed growfactors.csv
var defaultTable []byte

// Names of the factors every table must carry.
var RequiredNames = []string{
	"ABOOK", "ACGNS", "ACPIM", "ACPIU", "ADIVS", "AINTS", "AIPD",
	"ASCHCI", "ASCHCL", "ASCHEI", "ASCHEL", "ASCHF", "ASOCSEC",
	"ATXPY", "AUCOMP", "AWAGE",
	"ABENOTHER", "ABENMCARE", "ABENMCAID", "ABENSSI", "ABENSNAP",
	"ABENWIC", "ABENHOUSING", "ABENTANF", "ABENVET", "APOPN",
}

// GrowFactors is an immutable table of factor values keyed by name and year.
type GrowFactors struct {
	firstYear int
	lastYear  int
	table     map[string][]float64
}

// New returns the embedded default growth factors.
func New() (*GrowFactors, error) {
	return Load(bytes.NewReader(defaultTable))
}

// Load parses a growth-factor CSV with a YEAR column and one column per factor.
func Load(r io.Reader) (*GrowFactors, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading growth factors: %w", err)
	}
	if len(rows) < 2 {
		return nil, taxerr.ParameterFile("", "growth factor table has no data rows")
	}
	header := rows[0]
	if strings.ToUpper(header[0]) != "YEAR" {
		return nil, taxerr.ParameterFile("", "first growth factor column must be YEAR, got %q", header[0])
	}

	gf := &GrowFactors{table: make(map[string][]float64, len(header)-1)}
	prevYear := 0
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, taxerr.ParameterFile("", "growth factor row %d has %d fields, expected %d", i+2, len(row), len(header))
		}
		year, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, taxerr.ParameterFile("", "growth factor row %d: bad year %q", i+2, row[0])
		}
		if i == 0 {
			gf.firstYear = year
		} else if year != prevYear+1 {
			return nil, taxerr.ParameterFile("", "growth factor years must be consecutive, %d follows %d", year, prevYear)
		}
		prevYear = year
		for j, name := range header[1:] {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, taxerr.ParameterFile(name, "growth factor %d: bad value %q", year, row[j+1])
			}
			gf.table[name] = append(gf.table[name], v)
		}
	}
	gf.lastYear = prevYear

	for _, name := range RequiredNames {
		if _, ok := gf.table[name]; !ok {
			return nil, taxerr.ParameterFile(name, "growth factor table is missing a required factor")
		}
	}
	return gf, nil
}

// FirstYear returns the first year in the table.
func (g *GrowFactors) FirstYear() int { return g.firstYear }

// LastYear returns the last year in the table.
func (g *GrowFactors) LastYear() int { return g.lastYear }

// Names returns the sorted factor names.
func (g *GrowFactors) Names() []string {
	names := make([]string, 0, len(g.table))
	for name := range g.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FactorValue returns the factor for name in year.
func (g *GrowFactors) FactorValue(name string, year int) (float64, error) {
	series, ok := g.table[name]
	if !ok {
		return 0, taxerr.ParameterFile(name, "unknown growth factor")
	}
	if year < g.firstYear || year > g.lastYear {
		return 0, taxerr.Year(year, "growth factor %s defined only for [%d, %d]", name, g.firstYear, g.lastYear)
	}
	return series[year-g.firstYear], nil
}

// Ratio returns the level of name in year to divided by its level in year
// from, i.e. the product of the factors for from+1 through to.
func (g *GrowFactors) Ratio(name string, from, to int) (float64, error) {
	if to < from {
		r, err := g.Ratio(name, to, from)
		if err != nil {
			return 0, err
		}
		return 1 / r, nil
	}
	ratio := 1.0
	for y := from + 1; y <= to; y++ {
		f, err := g.FactorValue(name, y)
		if err != nil {
			return 0, err
		}
		ratio *= f
	}
	return ratio, nil
}

// PriceInflationRates returns ACPIU-1 for each year in [first, last].
func (g *GrowFactors) PriceInflationRates(first, last int) ([]float64, error) {
	return g.rates("ACPIU", first, last)
}

// WageGrowthRates returns AWAGE-1 for each year in [first, last].
func (g *GrowFactors) WageGrowthRates(first, last int) ([]float64, error) {
	return g.rates("AWAGE", first, last)
}

func (g *GrowFactors) rates(name string, first, last int) ([]float64, error) {
	out := make([]float64, 0, last-first+1)
	for y := first; y <= last; y++ {
		f, err := g.FactorValue(name, y)
		if err != nil {
			return nil, err
		}
		out = append(out, f-1)
	}
	return out, nil
}

// WithDiffs returns a copy of g with diffs[name][year] added to the factor
// values. g itself is not modified.
func (g *GrowFactors) WithDiffs(diffs map[string]map[int]float64) (*GrowFactors, error) {
	out := &GrowFactors{firstYear: g.firstYear, lastYear: g.lastYear, table: make(map[string][]float64, len(g.table))}
	for name, series := range g.table {
		out.table[name] = append([]float64(nil), series...)
	}
	for name, byYear := range diffs {
		series, ok := out.table[name]
		if !ok {
			return nil, taxerr.Reform(name, 0, "growth difference names an unknown growth factor")
		}
		for year, diff := range byYear {
			if year < g.firstYear || year > g.lastYear {
				return nil, taxerr.Year(year, "growth difference for %s outside growth factor years", name)
			}
			series[year-g.firstYear] += diff
		}
	}
	return out, nil
}
