package tables

import (
	"testing"

	"github.com/iwvelando/taxcalc/internal/calculator"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

func interestRecords(t *testing.T, mars, interest, weights []float64) *records.Records {
	t.Helper()
	ids := make([]float64, len(interest))
	for i := range ids {
		ids[i] = float64(i + 1)
	}
	cols := map[string][]float64{"RECID": ids, "MARS": mars, "e00300": interest}
	if weights != nil {
		cols["s006"] = weights
	}
	r, err := records.FromColumns(nil, cols, records.Options{StartYear: 2018})
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}
	return r
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func labelOf(groups []Group, i int, candidates []string) string {
	for _, g := range groups {
		for _, c := range candidates {
			if g.Label != c {
				continue
			}
			for _, m := range g.Members {
				if m == i {
					return g.Label
				}
			}
		}
	}
	return ""
}

func TestParseGrouping(t *testing.T) {
	for _, g := range []Grouping{WeightedDeciles, StandardIncomeBins, WebappIncomeBins, MaritalStatus} {
		got, err := ParseGrouping(g.String())
		if err != nil || got != g {
			t.Errorf("ParseGrouping(%q) = %v, %v, expected %v", g.String(), got, err, g)
		}
	}
	if _, err := ParseGrouping("quintiles"); err == nil {
		t.Errorf("ParseGrouping(quintiles) error = nil, expected error")
	}
}

func TestDeciles(t *testing.T) {
	// Incomes are given in reverse order to exercise the ranking.
	interest := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	r := interestRecords(t, repeat(1, 10), interest, nil)
	groups, err := Groups(r, WeightedDeciles, records.E00300)
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) != len(decileLabels)+len(topDecile)+1 {
		t.Fatalf("len(Groups()) = %d, expected %d", len(groups), len(decileLabels)+len(topDecile)+1)
	}
	for d := 0; d < 10; d++ {
		g := groups[d]
		if len(g.Members) != 1 {
			t.Errorf("decile %s has %d members, expected 1", g.Label, len(g.Members))
			continue
		}
		if got := interest[g.Members[0]]; got != float64(d+1) {
			t.Errorf("decile %s income = %v, expected %v", g.Label, got, d+1)
		}
	}
	if got := labelOf(groups, 0, []string{"90-95", "95-99", "Top 1%"}); got != "95-99" {
		t.Errorf("top unit split = %q, expected 95-99", got)
	}
	if all := groups[len(groups)-1]; all.Label != AllLabel || len(all.Members) != 10 {
		t.Errorf("last group = %s with %d members, expected ALL with 10", all.Label, len(all.Members))
	}
}

func TestDecilesUseWeights(t *testing.T) {
	r := interestRecords(t, repeat(1, 2), []float64{1, 2}, []float64{9, 1})
	groups, err := Groups(r, WeightedDeciles, records.E00300)
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if got := labelOf(groups, 0, decileLabels); got != "40-50" {
		t.Errorf("heavy unit decile = %q, expected 40-50", got)
	}
	if got := labelOf(groups, 1, decileLabels); got != "90-100" {
		t.Errorf("light unit decile = %q, expected 90-100", got)
	}
}

func TestIncomeBins(t *testing.T) {
	interest := []float64{-5, 0, 9999.99, 10000, 60000, 2e6}
	r := interestRecords(t, repeat(1, len(interest)), interest, nil)
	tests := []struct {
		name     string
		grouping Grouping
		labels   []string
		expected []string
	}{
		{"Standard", StandardIncomeBins, standardLabels, []string{"<$10K", "<$10K", "<$10K", "=$10-20K", "=$50-75K", ">$1000K"}},
		{"Webapp", WebappIncomeBins, webappLabels, []string{"<$0K", "=$0-10K", "=$0-10K", "=$10-20K", "=$50-75K", ">$1000K"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Groups(r, tt.grouping, records.E00300)
			if err != nil {
				t.Fatalf("Groups() error = %v", err)
			}
			for i, expected := range tt.expected {
				if got := labelOf(groups, i, tt.labels); got != expected {
					t.Errorf("income %v bin = %q, expected %q", interest[i], got, expected)
				}
			}
		})
	}
}

func TestMaritalStatusGroups(t *testing.T) {
	r := interestRecords(t, []float64{1, 2, 2, 4, 5}, repeat(0, 5), nil)
	groups, err := Groups(r, MaritalStatus, records.E00300)
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	expected := map[string]int{"single": 1, "joint": 2, "separate": 0, "head": 1, "widow": 1, AllLabel: 5}
	for _, g := range groups {
		if len(g.Members) != expected[g.Label] {
			t.Errorf("group %s has %d members, expected %d", g.Label, len(g.Members), expected[g.Label])
		}
	}
}

func calculated(t *testing.T, reform paramstore.Reform, cols map[string][]float64) *records.Records {
	t.Helper()
	pol, err := policy.New(nil)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	if err := pol.ImplementReform(reform); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}
	recs, err := records.FromColumns(nil, cols, records.Options{StartYear: 2018})
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}
	c, err := calculator.New(nil, pol, recs, calculator.Options{})
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}
	if err := c.CalcAll(); err != nil {
		t.Fatalf("CalcAll() error = %v", err)
	}
	return c.Records()
}

// sample has nine single wage earners and one high-income joint return.
func sample() map[string][]float64 {
	wages := []float64{10000, 20000, 30000, 40000, 50000, 60000, 70000, 80000, 90000, 2000000}
	cols := map[string][]float64{
		"RECID":   {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"MARS":    {1, 1, 1, 1, 1, 1, 1, 1, 1, 2},
		"XTOT":    {1, 1, 1, 1, 1, 1, 1, 1, 1, 2},
		"e00200":  wages,
		"e00200p": wages,
		"p23250":  {0, 0, 0, 0, 0, 0, 0, 0, 0, 500000},
		"s006":    repeat(100, 10),
	}
	return cols
}

func TestDistribution(t *testing.T) {
	r := calculated(t, nil, sample())
	table, err := Distribution(r, WeightedDeciles)
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	if got, _ := table.Value(AllLabel, "s006"); got != 1000 {
		t.Errorf("ALL s006 = %v, expected 1000", got)
	}
	sum := 0.0
	for _, row := range table.Rows[:10] {
		v, _ := table.Value(row.Label, "combined")
		sum += v
	}
	all, _ := table.Value(AllLabel, "combined")
	if !mathutil.WithinTolerance(sum, all, 1e-6) {
		t.Errorf("sum of decile combined = %v, expected ALL %v", sum, all)
	}
	if got, _ := table.Value(AllLabel, "num_returns_StandardDed"); got != 1000 {
		t.Errorf("ALL num_returns_StandardDed = %v, expected 1000", got)
	}
	if got, _ := table.Value("0-10", "payrolltax"); !mathutil.WithinTolerance(got, 100*0.153*10000, 1e-6) {
		t.Errorf("0-10 payrolltax = %v, expected %v", got, 100*0.153*10000)
	}
	avg := table.Averages()
	if got, _ := avg.Value("0-10", "payrolltax"); !mathutil.WithinTolerance(got, 0.153*10000, 1e-6) {
		t.Errorf("0-10 average payrolltax = %v, expected %v", got, 0.153*10000)
	}
	if got, _ := avg.Value("0-10", "s006"); got != 100 {
		t.Errorf("0-10 average s006 = %v, expected 100", got)
	}
	if _, ok := table.Value("0-10", "nonesuch"); ok {
		t.Errorf("Value() for unknown column ok = true, expected false")
	}
}

func TestDifferenceTopRate(t *testing.T) {
	base := calculated(t, nil, sample())
	reform := calculated(t, paramstore.Reform{2018: {"II_rt7": 0.40}}, sample())
	table, err := Difference(base, reform, WeightedDeciles, records.Iitax)
	if err != nil {
		t.Fatalf("Difference() error = %v", err)
	}
	for _, label := range decileLabels[:9] {
		if got, _ := table.Value(label, "tot_change"); got != 0 {
			t.Errorf("%s tot_change = %v, expected 0", label, got)
		}
		if got, _ := table.Value(label, "tax_inc"); got != 0 {
			t.Errorf("%s tax_inc = %v, expected 0", label, got)
		}
	}
	top, _ := table.Value("90-100", "tot_change")
	if top <= 0 {
		t.Fatalf("90-100 tot_change = %v, expected positive", top)
	}
	all, _ := table.Value(AllLabel, "tot_change")
	if all != top {
		t.Errorf("ALL tot_change = %v, expected %v", all, top)
	}
	tests := []struct {
		label, column string
		expected      float64
	}{
		{"90-100", "share_of_change", 100},
		{"90-100", "tax_inc", 100},
		{"90-100", "perc_inc", 100},
		{"90-100", "no_change", 0},
		{AllLabel, "no_change", 900},
		{AllLabel, "count", 1000},
		{"90-100", "mean", top / 100},
	}
	for _, tt := range tests {
		t.Run(tt.label+" "+tt.column, func(t *testing.T) {
			got, ok := table.Value(tt.label, tt.column)
			if !ok || !mathutil.WithinTolerance(got, tt.expected, 1e-9) {
				t.Errorf("Value(%s, %s) = %v, expected %v", tt.label, tt.column, got, tt.expected)
			}
		})
	}
	if got, _ := table.Value("90-100", "pc_aftertaxinc"); got >= 0 {
		t.Errorf("90-100 pc_aftertaxinc = %v, expected negative", got)
	}
}

func TestDifferenceMismatch(t *testing.T) {
	a := interestRecords(t, repeat(1, 2), []float64{1, 2}, nil)
	b := interestRecords(t, repeat(1, 3), []float64{1, 2, 3}, nil)
	if _, err := Difference(a, b, WeightedDeciles, records.Iitax); err == nil {
		t.Errorf("Difference() with different lengths error = nil, expected error")
	}
}

func TestScaled(t *testing.T) {
	table := Table{
		Columns: []string{"s006", "num_returns_AMT", "iitax", "mean", "perc_inc"},
		Rows:    []Row{{Label: AllLabel, Values: []float64{2e6, 5e5, 3e9, 120, 12.5}}},
	}
	got := table.Scaled().Rows[0].Values
	expected := []float64{2, 0.5, 3, 120, 12.5}
	for j := range expected {
		if !mathutil.WithinTolerance(got[j], expected[j], 1e-12) {
			t.Errorf("Scaled() %s = %v, expected %v", table.Columns[j], got[j], expected[j])
		}
	}
	if table.Rows[0].Values[0] != 2e6 {
		t.Errorf("Scaled() modified the original table")
	}
}
