package tables

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// Row is one labeled line of a table.
type Row struct {
	Label  string
	Values []float64
}

// Table is a grid of weighted values with one row per group.
type Table struct {
	Grouping Grouping
	Columns  []string
	Rows     []Row
}

// Value returns the cell at the given row label and column.
func (t Table) Value(label, column string) (float64, bool) {
	col := -1
	for j, c := range t.Columns {
		if c == column {
			col = j
			break
		}
	}
	if col < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Label == label {
			return r.Values[col], true
		}
	}
	return 0, false
}

// gather returns w and x restricted to members.
func gather(members []int, w, x []float64) (gw, gx []float64) {
	gw, gx = make([]float64, len(members)), make([]float64, len(members))
	for k, i := range members {
		gw[k] = w[i]
		gx[k] = x[i]
	}
	return gw, gx
}

func weightedSum(members []int, w, x []float64) float64 {
	gw, gx := gather(members, w, x)
	return floats.Dot(gw, gx)
}

func weightedCount(members []int, w []float64, keep func(i int) bool) float64 {
	total := 0.0
	for _, i := range members {
		if keep(i) {
			total += w[i]
		}
	}
	return total
}

type distColumn struct {
	name  string
	sum   records.Var
	count bool
}

// Columns starting with num_returns_ and s006 are weighted counts of units
// with a positive value; the rest are weighted sums.
var distColumns = []distColumn{
	{name: "s006", sum: records.S006, count: true},
	{name: "c00100", sum: records.C00100},
	{name: "num_returns_StandardDed", sum: records.Standard, count: true},
	{name: "standard", sum: records.Standard},
	{name: "num_returns_ItemDed", sum: records.C04470, count: true},
	{name: "c04470", sum: records.C04470},
	{name: "c04600", sum: records.C04600},
	{name: "c04800", sum: records.C04800},
	{name: "taxbc", sum: records.Taxbc},
	{name: "c62100", sum: records.C62100},
	{name: "num_returns_AMT", sum: records.C09600, count: true},
	{name: "c09600", sum: records.C09600},
	{name: "c05800", sum: records.C05800},
	{name: "c07100", sum: records.C07100},
	{name: "othertaxes", sum: records.Othertaxes},
	{name: "refund", sum: records.Refund},
	{name: "iitax", sum: records.Iitax},
	{name: "payrolltax", sum: records.Payrolltax},
	{name: "combined", sum: records.Combined},
	{name: "benefit_cost_total", sum: records.BenefitCostTotal},
	{name: "benefit_value_total", sum: records.BenefitValueTotal},
	{name: "expanded_income", sum: records.ExpandedIncome},
	{name: "aftertax_income", sum: records.AftertaxIncome},
}

// DistColumns returns the distribution table column names.
func DistColumns() []string {
	out := make([]string, len(distColumns))
	for j, c := range distColumns {
		out[j] = c.name
	}
	return out
}

// Distribution returns weighted totals of the distribution columns for each
// group of r, grouped by expanded income.
func Distribution(r *records.Records, g Grouping) (Table, error) {
	groups, err := Groups(r, g, records.ExpandedIncome)
	if err != nil {
		return Table{}, err
	}
	w := r.Weights()
	t := Table{Grouping: g, Columns: DistColumns(), Rows: make([]Row, len(groups))}
	for k, grp := range groups {
		vals := make([]float64, len(distColumns))
		for j, c := range distColumns {
			col := r.Col(c.sum)
			switch {
			case c.count:
				vals[j] = weightedCount(grp.Members, w, func(i int) bool { return col[i] > 0 })
			default:
				vals[j] = weightedSum(grp.Members, w, col)
			}
		}
		t.Rows[k] = Row{Label: grp.Label, Values: vals}
	}
	return t, nil
}

// Averages returns t with every column except s006 divided by the row's
// s006 value. Rows with no weight are zero.
func (t Table) Averages() Table {
	out := Table{Grouping: t.Grouping, Columns: t.Columns, Rows: make([]Row, len(t.Rows))}
	wcol := -1
	for j, c := range t.Columns {
		if c == "s006" {
			wcol = j
		}
	}
	for k, r := range t.Rows {
		vals := append([]float64(nil), r.Values...)
		if wcol >= 0 {
			w := r.Values[wcol]
			for j := range vals {
				if j == wcol {
					continue
				}
				if w > 0 {
					vals[j] /= w
				} else {
					vals[j] = 0
				}
			}
		}
		out.Rows[k] = Row{Label: r.Label, Values: vals}
	}
	return out
}

// DiffColumns are the columns of a difference table.
var DiffColumns = []string{
	"count", "tax_cut", "perc_cut", "tax_inc", "perc_inc", "no_change",
	"mean", "tot_change", "share_of_change",
	"benefit_cost_total", "benefit_value_total", "pc_aftertaxinc",
}

// changeThreshold is the dollar change below which a unit's tax is
// considered unchanged.
const changeThreshold = 1.0

// Difference compares tax under reform with tax under baseline. Units are
// grouped by baseline expanded income; both record sets must hold the same
// units in the same order for the same year.
func Difference(baseline, reform *records.Records, g Grouping, tax records.Var) (Table, error) {
	if baseline.Len() != reform.Len() {
		return Table{}, fmt.Errorf("baseline has %d records, reform has %d", baseline.Len(), reform.Len())
	}
	if baseline.CurrentYear() != reform.CurrentYear() {
		return Table{}, fmt.Errorf("baseline year %d differs from reform year %d", baseline.CurrentYear(), reform.CurrentYear())
	}
	id1, id2 := baseline.Col(records.RECID), reform.Col(records.RECID)
	for i := range id1 {
		if id1[i] != id2[i] {
			return Table{}, fmt.Errorf("RECID mismatch at row %d: %v vs %v", i, id1[i], id2[i])
		}
	}
	groups, err := Groups(baseline, g, records.ExpandedIncome)
	if err != nil {
		return Table{}, err
	}

	w := baseline.Weights()
	diff := make([]float64, baseline.Len())
	floats.SubTo(diff, reform.Col(tax), baseline.Col(tax))
	benCost := make([]float64, len(diff))
	floats.SubTo(benCost, reform.Col(records.BenefitCostTotal), baseline.Col(records.BenefitCostTotal))
	benValue := make([]float64, len(diff))
	floats.SubTo(benValue, reform.Col(records.BenefitValueTotal), baseline.Col(records.BenefitValueTotal))
	ati1, ati2 := baseline.Col(records.AftertaxIncome), reform.Col(records.AftertaxIncome)

	totalChange := floats.Dot(w, diff)
	t := Table{Grouping: g, Columns: DiffColumns, Rows: make([]Row, len(groups))}
	for k, grp := range groups {
		count := weightedCount(grp.Members, w, func(int) bool { return true })
		cut := weightedCount(grp.Members, w, func(i int) bool { return diff[i] <= -changeThreshold })
		inc := weightedCount(grp.Members, w, func(i int) bool { return diff[i] >= changeThreshold })
		change := weightedSum(grp.Members, w, diff)
		vals := []float64{
			count,
			cut, percent(cut, count),
			inc, percent(inc, count),
			count - cut - inc,
			ratio(change, count),
			change,
			percent(change, totalChange),
			weightedSum(grp.Members, w, benCost),
			weightedSum(grp.Members, w, benValue),
			percentChange(weightedSum(grp.Members, w, ati2), weightedSum(grp.Members, w, ati1)),
		}
		t.Rows[k] = Row{Label: grp.Label, Values: vals}
	}
	return t, nil
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func percent(part, whole float64) float64 { return mathutil.CalculatePercentage(part, whole) }

// percentChange is zero when before is within a cent of zero.
func percentChange(after, before float64) float64 {
	if mathutil.IsZero(before) {
		return 0
	}
	return mathutil.CalculatePercentage(after-before, before)
}

// unscaled columns are rates, percentages or per-unit means.
var unscaled = map[string]bool{
	"perc_cut": true, "perc_inc": true, "mean": true,
	"share_of_change": true, "pc_aftertaxinc": true,
}

func isCount(column string) bool {
	switch column {
	case "s006", "count", "tax_cut", "tax_inc", "no_change":
		return true
	}
	return strings.HasPrefix(column, "num_returns_")
}

// Scaled returns t with weighted counts in millions and dollar totals in
// billions. Rates and means are unchanged.
func (t Table) Scaled() Table {
	out := Table{Grouping: t.Grouping, Columns: t.Columns, Rows: make([]Row, len(t.Rows))}
	for k, r := range t.Rows {
		vals := append([]float64(nil), r.Values...)
		for j, c := range t.Columns {
			switch {
			case unscaled[c]:
			case isCount(c):
				vals[j] *= 1e-6
			default:
				vals[j] *= 1e-9
			}
		}
		out.Rows[k] = Row{Label: r.Label, Values: vals}
	}
	return out
}
