package growfactors

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/taxcalc/internal/taxerr"
)

func TestNewEmbedded(t *testing.T) {
	gf, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if gf.FirstYear() != 2011 || gf.LastYear() != 2029 {
		t.Errorf("New() years = [%d, %d], expected [2011, 2029]", gf.FirstYear(), gf.LastYear())
	}
	for _, name := range RequiredNames {
		for y := gf.FirstYear(); y <= gf.LastYear(); y++ {
			v, err := gf.FactorValue(name, y)
			if err != nil {
				t.Fatalf("FactorValue(%s, %d) error = %v", name, y, err)
			}
			if v <= 0 {
				t.Errorf("FactorValue(%s, %d) = %v, expected positive", name, y, v)
			}
		}
	}
}

func TestFactorValueErrors(t *testing.T) {
	gf, _ := New()
	if _, err := gf.FactorValue("NOPE", 2015); !errors.Is(err, taxerr.ErrInvalidParameterFile) {
		t.Errorf("FactorValue(NOPE) error = %v, expected ErrInvalidParameterFile", err)
	}
	if _, err := gf.FactorValue("AWAGE", 2040); !errors.Is(err, taxerr.ErrOutOfRangeYear) {
		t.Errorf("FactorValue(AWAGE, 2040) error = %v, expected ErrOutOfRangeYear", err)
	}
}

const smallTable = `YEAR,ABOOK,ACGNS,ACPIM,ACPIU,ADIVS,AINTS,AIPD,ASCHCI,ASCHCL,ASCHEI,ASCHEL,ASCHF,ASOCSEC,ATXPY,AUCOMP,AWAGE,ABENOTHER,ABENMCARE,ABENMCAID,ABENSSI,ABENSNAP,ABENWIC,ABENHOUSING,ABENTANF,ABENVET,APOPN
2013,1,1,1,1.02,1,1,1,1,1,1,1,1,1,1,1,1.04,1,1,1,1,1,1,1,1,1,1
2014,1,1,1,1.03,1,1,1,1,1,1,1,1,1,1,1,1.05,1,1,1,1,1,1,1,1,1,1
2015,1,1,1,1.01,1,1,1,1,1,1,1,1,1,1,1,1.02,1,1,1,1,1,1,1,1,1,1
`

func TestRatesAndRatio(t *testing.T) {
	gf, err := Load(strings.NewReader(smallTable))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rates, err := gf.PriceInflationRates(2013, 2015)
	if err != nil {
		t.Fatalf("PriceInflationRates() error = %v", err)
	}
	expected := []float64{0.02, 0.03, 0.01}
	for i := range expected {
		if math.Abs(rates[i]-expected[i]) > 1e-12 {
			t.Errorf("PriceInflationRates()[%d] = %v, expected %v", i, rates[i], expected[i])
		}
	}
	wages, _ := gf.WageGrowthRates(2014, 2015)
	if math.Abs(wages[0]-0.05) > 1e-12 || math.Abs(wages[1]-0.02) > 1e-12 {
		t.Errorf("WageGrowthRates() = %v", wages)
	}
	ratio, err := gf.Ratio("AWAGE", 2013, 2015)
	if err != nil {
		t.Fatalf("Ratio() error = %v", err)
	}
	if math.Abs(ratio-1.05*1.02) > 1e-12 {
		t.Errorf("Ratio(AWAGE, 2013, 2015) = %v, expected %v", ratio, 1.05*1.02)
	}
	back, _ := gf.Ratio("AWAGE", 2015, 2013)
	if math.Abs(back*ratio-1) > 1e-12 {
		t.Errorf("Ratio() backwards = %v, expected inverse of %v", back, ratio)
	}
}

func TestWithDiffsLeavesOriginal(t *testing.T) {
	gf, _ := Load(strings.NewReader(smallTable))
	adjusted, err := gf.WithDiffs(map[string]map[int]float64{"AWAGE": {2014: 0.01}})
	if err != nil {
		t.Fatalf("WithDiffs() error = %v", err)
	}
	orig, _ := gf.FactorValue("AWAGE", 2014)
	adj, _ := adjusted.FactorValue("AWAGE", 2014)
	if orig != 1.05 {
		t.Errorf("original AWAGE 2014 = %v, expected 1.05", orig)
	}
	if math.Abs(adj-1.06) > 1e-12 {
		t.Errorf("adjusted AWAGE 2014 = %v, expected 1.06", adj)
	}
	if _, err := gf.WithDiffs(map[string]map[int]float64{"AXYZ": {2014: 0.01}}); err == nil {
		t.Errorf("WithDiffs() with unknown factor expected error")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Header only", "YEAR,AWAGE\n"},
		{"Bad first column", "Y,AWAGE\n2013,1\n"},
		{"Missing required factor", "YEAR,AWAGE\n2013,1\n"},
		{"Gap in years", strings.Replace(smallTable, "2014,", "2016,", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Load() expected error")
			}
		})
	}
}
