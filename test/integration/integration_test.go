package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/reform"
	"github.com/iwvelando/taxcalc/internal/tables"
	"github.com/iwvelando/taxcalc/internal/taxio"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
	"github.com/iwvelando/taxcalc/pkg/testutil"
	"go.uber.org/zap"
)

const (
	samplePath = "../test_sample.csv"
	reformPath = "../test_reform.json"
	assumpPath = "../test_assump.json"
)

func scenario(t *testing.T, year int, reformFile, assumpFile string) taxio.Scenario {
	t.Helper()
	data, err := os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("reading sample: %v", err)
	}
	ref, err := reform.ReadParamObjects(reformFile, assumpFile)
	if err != nil {
		t.Fatalf("ReadParamObjects() error = %v", err)
	}
	return taxio.Scenario{Name: "test_sample.csv", Data: data, TaxYear: year, Reform: ref}
}

func calculate(t *testing.T, s taxio.Scenario) *taxio.Calculators {
	t.Helper()
	calcs, err := taxio.Build(zap.NewNop(), s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := calcs.Calculate(); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return calcs
}

// TestCurrentLawIdentity checks that without a reform the two scenarios agree
// unit by unit.
func TestCurrentLawIdentity(t *testing.T) {
	for _, year := range []int{2013, 2018, 2026, 2029} {
		calcs := calculate(t, scenario(t, year, "", ""))
		base := calcs.Baseline.Records()
		ref := calcs.Reform.Records()
		for _, v := range []records.Var{records.Iitax, records.Payrolltax, records.Combined, records.ExpandedIncome} {
			b, r := base.Col(v), ref.Col(v)
			for i := range b {
				if b[i] != r[i] {
					t.Errorf("%d %s[%d] baseline %v != reform %v", year, v.Name(), i, b[i], r[i])
				}
			}
		}
		diff, err := tables.Difference(base, ref, tables.WeightedDeciles, records.Iitax)
		if err != nil {
			t.Fatalf("Difference() error = %v", err)
		}
		if got, _ := diff.Value(tables.AllLabel, "tot_change"); got != 0 {
			t.Errorf("%d tot_change = %v, expected 0", year, got)
		}
	}
}

// TestTopRateReform checks that raising the top rates only raises taxes and
// that the increase lands on high-income units.
func TestTopRateReform(t *testing.T) {
	calcs := calculate(t, scenario(t, 2020, reformPath, ""))
	base, ref := calcs.Baseline.Records(), calcs.Reform.Records()

	iiBase, iiRef := base.Col(records.Iitax), ref.Col(records.Iitax)
	agi := base.Col(records.C00100)
	for i := range iiBase {
		change := iiRef[i] - iiBase[i]
		if change < -0.005 {
			t.Errorf("unit %d tax fell by %v", i, -change)
		}
		if agi[i] < 200000 && !mathutil.IsZero(change) {
			t.Errorf("unit %d with AGI %v had change %v", i, agi[i], change)
		}
	}
	if calcs.Reform.WeightedTotal(records.Iitax) <= calcs.Baseline.WeightedTotal(records.Iitax) {
		t.Errorf("reform revenue %v not above baseline %v",
			calcs.Reform.WeightedTotal(records.Iitax), calcs.Baseline.WeightedTotal(records.Iitax))
	}

	dist, err := tables.Distribution(ref, tables.StandardIncomeBins)
	if err != nil {
		t.Fatalf("Distribution() error = %v", err)
	}
	weights, _ := dist.Value(tables.AllLabel, "s006")
	if weights != 10200 {
		t.Errorf("ALL s006 = %v, expected 10200", weights)
	}
}

// TestBehavioralResponse checks that a substitution elasticity shrinks the
// revenue gain of a rate increase and leaves the baseline untouched.
func TestBehavioralResponse(t *testing.T) {
	static := calculate(t, scenario(t, 2020, reformPath, ""))
	dynamic := calculate(t, scenario(t, 2020, reformPath, assumpPath))

	staticGain := static.Reform.WeightedTotal(records.Iitax) - static.Baseline.WeightedTotal(records.Iitax)
	dynamicGain := dynamic.Reform.WeightedTotal(records.Iitax) - dynamic.Baseline.WeightedTotal(records.Iitax)
	if staticGain <= 0 || dynamicGain >= staticGain {
		t.Errorf("revenue gain static %v, dynamic %v; expected 0 < dynamic < static", staticGain, dynamicGain)
	}
	if static.Baseline.WeightedTotal(records.Iitax) != dynamic.Baseline.WeightedTotal(records.Iitax) {
		t.Errorf("baseline changed with assumptions")
	}
	if got := dynamic.Reform.Consumption().Scalar("BEN_snap_value"); got != 0.8 {
		t.Errorf("BEN_snap_value = %v, expected 0.8", got)
	}
	cost := dynamic.Reform.WeightedTotal(records.BenefitCostTotal)
	value := dynamic.Reform.WeightedTotal(records.BenefitValueTotal)
	if !mathutil.WithinTolerance(value, 0.8*cost, 0.01) {
		t.Errorf("benefit value %v, expected 0.8 * %v", value, cost)
	}
}

// TestDeterminismAndWeights checks that runs repeat exactly and that unit
// liabilities do not depend on the weights.
func TestDeterminismAndWeights(t *testing.T) {
	s := scenario(t, 2020, reformPath, "")
	first := calculate(t, s)
	second := calculate(t, s)
	a, b := first.Reform.Records().Col(records.Combined), second.Reform.Records().Col(records.Combined)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run 2 combined[%d] = %v, expected %v", i, b[i], a[i])
		}
	}

	doubled := first.Reform.Clone()
	w := doubled.Records().Col(records.S006)
	for i := range w {
		w[i] *= 2
	}
	if err := doubled.CalcAll(); err != nil {
		t.Fatalf("CalcAll() error = %v", err)
	}
	c := doubled.Records().Col(records.Combined)
	for i := range a {
		if a[i] != c[i] {
			t.Errorf("combined[%d] = %v with doubled weights, expected %v", i, c[i], a[i])
		}
	}
	if !mathutil.WithinTolerance(doubled.WeightedTotal(records.Combined), 2*first.Reform.WeightedTotal(records.Combined), 0.01) {
		t.Errorf("weighted total did not double")
	}
}

// TestTaxCalcIOFiles runs the file-based path and checks every output.
func TestTaxCalcIOFiles(t *testing.T) {
	dir := t.TempDir()
	tc, err := taxio.New(zap.NewNop(), taxio.Options{
		Input:    samplePath,
		TaxYear:  2020,
		Reform:   reformPath,
		Assump:   assumpPath,
		OutDir:   dir,
		Tables:   true,
		DumpDB:   true,
		DumpVars: "ALL",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := tc.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := tc.Analyze(context.Background()); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	stem := filepath.Join(dir, "test_sample-20-#-test_reform-test_assump")
	if tc.OutputStem() != stem {
		t.Errorf("OutputStem() = %s, expected %s", tc.OutputStem(), stem)
	}
	if lines := testutil.ReadLines(t, stem+".csv"); len(lines) != 13 {
		t.Errorf("minimal output has %d lines, expected 13", len(lines))
	}
	for _, ext := range []string{"-tab.text", ".db"} {
		if info, err := os.Stat(stem + ext); err != nil || info.Size() == 0 {
			t.Errorf("output %s missing or empty: %v", ext, err)
		}
	}
}
