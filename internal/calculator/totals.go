package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/iwvelando/taxcalc/internal/records"
)

// WeightedTotal returns the s006-weighted sum of v.
func (c *Calculator) WeightedTotal(v records.Var) float64 {
	return floats.Dot(c.records.Weights(), c.records.Col(v))
}

// WeightedCount returns the total weight of records for which keep is true.
func (c *Calculator) WeightedCount(keep func(i int) bool) float64 {
	total := 0.0
	for i, w := range c.records.Weights() {
		if keep(i) {
			total += w
		}
	}
	return total
}

// DiagnosticRow is one line of a diagnostic table.
type DiagnosticRow struct {
	Label  string
	Values []float64
}

// DiagnosticTable holds aggregate totals for successive years.
type DiagnosticTable struct {
	Years []int
	Rows  []DiagnosticRow
}

type diagnostic struct {
	label string
	value func(c *Calculator) float64
}

func total(v records.Var, scale float64) func(c *Calculator) float64 {
	return func(c *Calculator) float64 { return c.WeightedTotal(v) * scale }
}

func count(v records.Var, keep func(x float64) bool) func(c *Calculator) float64 {
	return func(c *Calculator) float64 {
		col := c.records.Col(v)
		return c.WeightedCount(func(i int) bool { return keep(col[i]) }) * 1e-6
	}
}

func positive(x float64) bool    { return x > 0 }
func nonPositive(x float64) bool { return x <= 0 }

var diagnostics = []diagnostic{
	{"Returns (#m)", func(c *Calculator) float64 { return floats.Sum(c.records.Weights()) * 1e-6 }},
	{"AGI ($b)", total(records.C00100, 1e-9)},
	{"Itemizers (#m)", count(records.C04470, positive)},
	{"Itemized Deduction ($b)", total(records.C04470, 1e-9)},
	{"Standard Deduction Filers (#m)", count(records.Standard, positive)},
	{"Standard Deduction ($b)", total(records.Standard, 1e-9)},
	{"Personal Exemption ($b)", total(records.C04600, 1e-9)},
	{"Taxable Income ($b)", total(records.C04800, 1e-9)},
	{"Regular Tax ($b)", total(records.Taxbc, 1e-9)},
	{"AMT Income ($b)", total(records.C62100, 1e-9)},
	{"AMT Liability ($b)", total(records.C09600, 1e-9)},
	{"AMT Filers (#m)", count(records.C09600, positive)},
	{"Tax before Credits ($b)", total(records.C05800, 1e-9)},
	{"Refundable Credits ($b)", total(records.Refund, 1e-9)},
	{"Nonrefundable Credits ($b)", total(records.C07100, 1e-9)},
	{"Other Taxes ($b)", total(records.Othertaxes, 1e-9)},
	{"Ind Income Tax ($b)", total(records.Iitax, 1e-9)},
	{"Payroll Taxes ($b)", total(records.Payrolltax, 1e-9)},
	{"Combined Liability ($b)", total(records.Combined, 1e-9)},
	{"With Income Tax <= 0 (#m)", count(records.Iitax, nonPositive)},
	{"With Combined Tax <= 0 (#m)", count(records.Combined, nonPositive)},
	{"Total Benefits Cost ($b)", total(records.BenefitCostTotal, 1e-9)},
	{"Total Benefits, Consumption Value ($b)", total(records.BenefitValueTotal, 1e-9)},
}

// Diagnostics returns a diagnostic table for numYears years starting at the
// current year. The calculator itself is not advanced.
func (c *Calculator) Diagnostics(numYears int) (DiagnosticTable, error) {
	if numYears < 1 {
		return DiagnosticTable{}, fmt.Errorf("diagnostic table needs at least one year, got %d", numYears)
	}
	if last := c.CurrentYear() + numYears - 1; last > c.policy.EndYear() {
		numYears = c.policy.EndYear() - c.CurrentYear() + 1
	}
	table := DiagnosticTable{Rows: make([]DiagnosticRow, len(diagnostics))}
	for j, d := range diagnostics {
		table.Rows[j] = DiagnosticRow{Label: d.label, Values: make([]float64, 0, numYears)}
	}
	work := c.Clone()
	for k := 0; k < numYears; k++ {
		if k > 0 {
			if err := work.IncrementYear(); err != nil {
				return DiagnosticTable{}, err
			}
		}
		if err := work.CalcAll(); err != nil {
			return DiagnosticTable{}, err
		}
		table.Years = append(table.Years, work.CurrentYear())
		for j, d := range diagnostics {
			table.Rows[j].Values = append(table.Rows[j].Values, d.value(work))
		}
	}
	return table, nil
}

// Row returns the row with the given label.
func (t DiagnosticTable) Row(label string) (DiagnosticRow, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return DiagnosticRow{}, false
}
