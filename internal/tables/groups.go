// Package tables builds weighted distribution and difference tables from
// calculated records.
package tables

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

// Grouping selects how filing units are split into table rows.
type Grouping int

const (
	WeightedDeciles Grouping = iota
	StandardIncomeBins
	WebappIncomeBins
	MaritalStatus
)

var groupingNames = map[Grouping]string{
	WeightedDeciles:    "weighted_deciles",
	StandardIncomeBins: "standard_income_bins",
	WebappIncomeBins:   "webapp_income_bins",
	MaritalStatus:      "mars",
}

func (g Grouping) String() string { return groupingNames[g] }

// ParseGrouping returns the grouping with the given name.
func ParseGrouping(name string) (Grouping, error) {
	for g, n := range groupingNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown table grouping %q", name)
}

// AllLabel names the row that totals every filing unit.
const AllLabel = "ALL"

// StandardIncomeBins edges. A unit belongs to bin i when
// edges[i] < income <= edges[i+1].
var standardEdges = []float64{
	-constants.Unlimited, 9999.99, 19999.99, 29999.99, 39999.99, 49999.99,
	74999.99, 99999.99, 199999.99, 499999.99, 999999.99, constants.Unlimited,
}

var standardLabels = []string{
	"<$10K", "=$10-20K", "=$20-30K", "=$30-40K", "=$40-50K",
	"=$50-75K", "=$75-100K", "=$100-200K", "=$200-500K", "=$500-1000K", ">$1000K",
}

var webappEdges = []float64{
	-constants.Unlimited, -1e-9, 9999.99, 19999.99, 29999.99, 39999.99, 49999.99,
	74999.99, 99999.99, 199999.99, 499999.99, 999999.99, constants.Unlimited,
}

var webappLabels = []string{
	"<$0K", "=$0-10K", "=$10-20K", "=$20-30K", "=$30-40K", "=$40-50K",
	"=$50-75K", "=$75-100K", "=$100-200K", "=$200-500K", "=$500-1000K", ">$1000K",
}

var decileLabels = []string{
	"0-10", "10-20", "20-30", "30-40", "40-50",
	"50-60", "60-70", "70-80", "80-90", "90-100",
}

// topDecile splits the top decile by weighted population share.
var topDecile = []struct {
	label  string
	lo, hi float64
}{
	{"90-95", 0.90, 0.95},
	{"95-99", 0.95, 0.99},
	{"Top 1%", 0.99, 1.01},
}

var marsLabels = []string{"single", "joint", "separate", "head", "widow"}

// Group is a labeled set of record indices.
type Group struct {
	Label   string
	Members []int
}

// Groups splits r into rows by g using income as the income measure. The
// last group is always ALL.
func Groups(r *records.Records, g Grouping, income records.Var) ([]Group, error) {
	var groups []Group
	switch g {
	case WeightedDeciles:
		groups = deciles(r.Col(income), r.Weights())
	case StandardIncomeBins:
		groups = bins(r.Col(income), standardEdges, standardLabels)
	case WebappIncomeBins:
		groups = bins(r.Col(income), webappEdges, webappLabels)
	case MaritalStatus:
		groups = make([]Group, len(marsLabels))
		for i, l := range marsLabels {
			groups[i].Label = l
		}
		for i, m := range r.Col(records.MARS) {
			k := int(m) - 1
			if k < 0 || k >= len(groups) {
				return nil, fmt.Errorf("record %d has MARS %v", i, m)
			}
			groups[k].Members = append(groups[k].Members, i)
		}
	default:
		return nil, fmt.Errorf("unknown table grouping %d", g)
	}
	all := Group{Label: AllLabel, Members: make([]int, r.Len())}
	for i := range all.Members {
		all.Members[i] = i
	}
	return append(groups, all), nil
}

func bins(income, edges []float64, labels []string) []Group {
	groups := make([]Group, len(labels))
	for i, l := range labels {
		groups[i].Label = l
	}
	for i, x := range income {
		k := sort.SearchFloat64s(edges[1:], x)
		if k >= len(groups) {
			k = len(groups) - 1
		}
		groups[k].Members = append(groups[k].Members, i)
	}
	return groups
}

// deciles ranks units by income and assigns each to the decile containing
// the midpoint of its weight in the cumulative weight distribution. The
// top decile is followed by its 90-95, 95-99 and top 1% parts.
func deciles(income, weights []float64) []Group {
	n := len(income)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return income[order[a]] < income[order[b]] })

	sorted := make([]float64, n)
	for k, i := range order {
		sorted[k] = weights[i]
	}
	cum := make([]float64, n)
	if n > 0 {
		floats.CumSum(cum, sorted)
	}
	total := 0.0
	if n > 0 {
		total = cum[n-1]
	}

	groups := make([]Group, len(decileLabels)+len(topDecile))
	for i, l := range decileLabels {
		groups[i].Label = l
	}
	for j, t := range topDecile {
		groups[len(decileLabels)+j].Label = t.label
	}
	for k, i := range order {
		share := 0.0
		if total > 0 {
			share = (cum[k] - 0.5*sorted[k]) / total
		}
		d := min(int(share*10), 9)
		groups[d].Members = append(groups[d].Members, i)
		if d == 9 {
			for j, t := range topDecile {
				if share >= t.lo && share < t.hi {
					groups[len(decileLabels)+j].Members = append(groups[len(decileLabels)+j].Members, i)
				}
			}
		}
	}
	return groups
}
