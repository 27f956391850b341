package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/taxcalc/internal/consumption"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

func TestMarginalTaxRatesOnWages(t *testing.T) {
	tests := []struct {
		name     string
		opts     MTROptions
		payroll  float64
		income   float64
		combined float64
	}{
		{"Plain", MTROptions{}, 0.153, 0.12, 0.273},
		{"Negative step", MTROptions{Negative: true}, 0.153, 0.12, 0.273},
		{"Full compensation", MTROptions{WrtFullCompensation: true}, 0.153 / 1.0765, 0.12 / 1.0765, 0.273 / 1.0765},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCalc(t, 2018, nil, singleWageEarner(40000))
			mtr, err := c.MarginalTaxRates(records.E00200p, tt.opts)
			if err != nil {
				t.Fatalf("MarginalTaxRates() error = %v", err)
			}
			if !mathutil.WithinTolerance(mtr.Payroll[0], tt.payroll, 1e-6) {
				t.Errorf("payroll MTR = %v, expected %v", mtr.Payroll[0], tt.payroll)
			}
			if !mathutil.WithinTolerance(mtr.IncomeTax[0], tt.income, 1e-6) {
				t.Errorf("income MTR = %v, expected %v", mtr.IncomeTax[0], tt.income)
			}
			if !mathutil.WithinTolerance(mtr.Combined[0], tt.combined, 1e-6) {
				t.Errorf("combined MTR = %v, expected %v", mtr.Combined[0], tt.combined)
			}
		})
	}
}

func TestMarginalTaxRatesRestoresInputs(t *testing.T) {
	c := newCalc(t, 2018, nil, singleWageEarner(40000))
	if _, err := c.MarginalTaxRates(records.E00200p, MTROptions{}); err != nil {
		t.Fatalf("MarginalTaxRates() error = %v", err)
	}
	if got := c.Records().Col(records.E00200p)[0]; got != 40000 {
		t.Errorf("e00200p = %v after MTR, expected 40000", got)
	}
	if got := c.Records().Col(records.E00200)[0]; got != 40000 {
		t.Errorf("e00200 = %v after MTR, expected 40000", got)
	}
	if got := c.Records().Col(records.Iitax)[0]; !mathutil.WithinTolerance(got, 3169.50, 0.005) {
		t.Errorf("iitax = %v after MTR, expected baseline 3169.50", got)
	}
}

func TestMarginalTaxRatesSpouseWages(t *testing.T) {
	cols := map[string][]float64{
		"RECID":   {1, 2},
		"MARS":    {1, 2},
		"XTOT":    {1, 2},
		"e00200":  {40000, 100000},
		"e00200p": {40000, 60000},
		"e00200s": {0, 40000},
	}
	c := newCalc(t, 2018, nil, cols)
	mtr, err := c.MarginalTaxRates(records.E00200s, MTROptions{})
	if err != nil {
		t.Fatalf("MarginalTaxRates() error = %v", err)
	}
	if !math.IsNaN(mtr.Combined[0]) {
		t.Errorf("single filer spouse MTR = %v, expected NaN", mtr.Combined[0])
	}
	if !mathutil.WithinTolerance(mtr.IncomeTax[1], 0.12, 1e-6) {
		t.Errorf("joint filer spouse income MTR = %v, expected 0.12", mtr.IncomeTax[1])
	}
}

func TestMarginalTaxRatesInvalidVar(t *testing.T) {
	c := newCalc(t, 2018, nil, singleWageEarner(40000))
	_, err := c.MarginalTaxRates(records.E00200, MTROptions{})
	if !errors.Is(err, taxerr.ErrInvalidRecords) {
		t.Errorf("MarginalTaxRates(e00200) error = %v, expected %v", err, taxerr.ErrInvalidRecords)
	}
}

func TestMarginalTaxRatesConsumptionResponse(t *testing.T) {
	pol, err := policy.New(nil)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	cons, err := consumption.New()
	if err != nil {
		t.Fatalf("consumption.New() error = %v", err)
	}
	if err := cons.ImplementReform(paramstore.Reform{2018: {"MPC_e17500": 0.5}}); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}
	recs, err := records.FromColumns(nil, singleWageEarner(40000), records.Options{StartYear: 2018})
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}
	c, err := New(nil, pol, recs, Options{Consumption: cons})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	mtr, err := c.MarginalTaxRates(records.E00200p, MTROptions{})
	if err != nil {
		t.Fatalf("MarginalTaxRates() error = %v", err)
	}
	if !mathutil.WithinTolerance(mtr.IncomeTax[0], 0.12, 1e-6) {
		t.Errorf("income MTR = %v, expected 0.12 for a standard deduction filer", mtr.IncomeTax[0])
	}
	if got := recs.Col(records.E17500)[0]; got != 0 {
		t.Errorf("e17500 = %v after MTR, expected 0", got)
	}
}

func TestMarginalTaxRateBounds(t *testing.T) {
	cols := map[string][]float64{
		"RECID":   {1, 2, 3, 4, 5},
		"MARS":    {1, 2, 4, 1, 2},
		"XTOT":    {1, 4, 3, 1, 2},
		"n24":     {0, 2, 2, 0, 0},
		"EIC":     {0, 2, 2, 0, 0},
		"e00200":  {8000, 30000, 21000, 250000, 1200000},
		"e00200p": {8000, 30000, 21000, 250000, 1200000},
		"p23250":  {0, 0, 0, 10000, 300000},
	}
	for _, year := range []int{2013, 2018, 2026} {
		c := newCalc(t, year, nil, cols)
		mtr, err := c.MarginalTaxRates(records.E00200p, MTROptions{})
		if err != nil {
			t.Fatalf("MarginalTaxRates() error = %v", err)
		}
		for i, m := range mtr.Combined {
			if m < -1.0 || m > 1.5 {
				t.Errorf("%d record %d combined MTR = %v, expected within [-1, 1.5]", year, i, m)
			}
		}
	}
}
