package policy

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/iwvelando/taxcalc/internal/growfactors"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

func newPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestCurrentLawParams(t *testing.T) {
	p := newPolicy(t)
	if err := p.SetYear(2018); err != nil {
		t.Fatalf("SetYear() error = %v", err)
	}
	params, err := p.Params()
	if err != nil {
		t.Fatalf("Params() error = %v", err)
	}
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Standard deduction single", params.StandardDeduction.At(1), 12000},
		{"Standard deduction joint", params.StandardDeduction.At(2), 24000},
		{"Top rate", params.IIRates[6], 0.37},
		{"Second bracket head of household", params.IIBrackets[1].At(4), 51800},
		{"Capital gains first bracket joint", params.CGBrackets[0].At(2), 77200},
		{"Child tax credit", params.CTCAmount, 2000},
		{"Personal exemption", params.PersonalExemption, 0},
		{"EITC max two kids", params.EITCMax.At(2), 5716},
		{"EITC max many kids", params.EITCMax.At(5), 6431},
		{"Payroll cap", params.SSEarningsCap, 128400},
		{"SALT cap separate", params.IDAllTaxesCap.At(3), 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
			}
		})
	}
	if params.Year != 2018 {
		t.Errorf("Params().Year = %d, expected 2018", params.Year)
	}
	if !params.IDAmountCapSwitch[6] || !params.PTTopStacking || params.CGNoDiff {
		t.Errorf("boolean parameters not filled: %v %v %v", params.IDAmountCapSwitch, params.PTTopStacking, params.CGNoDiff)
	}
	if params.ACTCChildNum != 3 || params.EITCMaxAge != 64 {
		t.Errorf("integer parameters = %d/%d, expected 3/64", params.ACTCChildNum, params.EITCMaxAge)
	}
}

func TestIndexingUsesCPIOffset(t *testing.T) {
	p := newPolicy(t)
	gf, _ := growfactors.New()
	acpiu, err := gf.FactorValue("ACPIU", 2024)
	if err != nil {
		t.Fatal(err)
	}
	rate := acpiu - 1 - 0.0025
	expected := mathutil.RoundTo(14600*(1+rate), 0.01)
	std, _ := p.SelectEq("STD", 2025)
	if math.Abs(std[0]-expected) > 1e-6 {
		t.Errorf("STD 2025 single = %v, expected %v", std[0], expected)
	}

	awage, _ := gf.FactorValue("AWAGE", 2024)
	expectedCap := mathutil.RoundTo(168600*awage, 0.01)
	cap2025, _ := p.SelectEq("SS_Earnings_c", 2025)
	if math.Abs(cap2025[0]-expectedCap) > 1e-6 {
		t.Errorf("SS_Earnings_c 2025 = %v, expected wage-indexed %v", cap2025[0], expectedCap)
	}
}

func TestCPIOffsetReform(t *testing.T) {
	p := newPolicy(t)
	before, _ := p.SelectEq("STD", 2027)
	reform := paramstore.Reform{2025: {"CPI_offset": -0.005, "II_em": 1000.0}}
	if err := p.ImplementReform(reform); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}
	after, _ := p.SelectEq("STD", 2027)
	if !(after[0] < before[0]) {
		t.Errorf("STD 2027 after lower CPI offset = %v, expected below %v", after[0], before[0])
	}
	em, _ := p.SelectEq("II_em", 2025)
	if em[0] != 1000 {
		t.Errorf("II_em 2025 = %v, expected 1000", em[0])
	}
}

func TestFailedReformRestoresRates(t *testing.T) {
	p := newPolicy(t)
	before, _ := p.SelectEq("STD", 2027)
	err := p.ImplementReform(paramstore.Reform{2025: {"CPI_offset": -0.004, "II_rt1": 2.0}})
	if !errors.Is(err, taxerr.ErrInvalidReform) {
		t.Fatalf("ImplementReform() error = %v, expected ErrInvalidReform", err)
	}
	after, _ := p.SelectEq("STD", 2027)
	if after[0] != before[0] {
		t.Errorf("STD 2027 = %v after failed reform, expected %v", after[0], before[0])
	}
	off, _ := p.SelectEq("CPI_offset", 2026)
	if off[0] != -0.0025 {
		t.Errorf("CPI_offset 2026 = %v, expected -0.0025", off[0])
	}
}

func TestDeprecatedName(t *testing.T) {
	p := newPolicy(t)
	if err := p.ImplementReform(paramstore.Reform{2019: {"DependentCredit_c": 600.0}}); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}
	odc, _ := p.SelectEq("ODC_c", 2019)
	if odc[0] != 600 {
		t.Errorf("ODC_c 2019 = %v, expected 600", odc[0])
	}
	if !strings.Contains(p.WarningText(), "DependentCredit_c is deprecated") {
		t.Errorf("WarningText() = %q, expected deprecation warning", p.WarningText())
	}
}

func TestPopTheCap(t *testing.T) {
	p := newPolicy(t)
	if err := p.ImplementReform(paramstore.Reform{2016: {"SS_Earnings_c": 9e99}}); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}
	for year := 2016; year <= p.EndYear(); year++ {
		v, _ := p.SelectEq("SS_Earnings_c", year)
		if v[0] != 9e99 {
			t.Errorf("SS_Earnings_c %d = %v, expected 9e99", year, v[0])
		}
	}
}

func TestIndexedReformIndexesForward(t *testing.T) {
	p := newPolicy(t)
	sunset, _ := p.SelectEq("STD", 2026)
	if err := p.ImplementReform(paramstore.Reform{2019: {"STD": []float64{20000, 40000, 20000, 30000, 40000}}}); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}
	gf, _ := growfactors.New()
	expected := []float64{20000, 40000, 20000, 30000, 40000}
	for year := 2019; year <= p.EndYear(); year++ {
		if year > 2019 {
			acpiu, err := gf.FactorValue("ACPIU", year-1)
			if err != nil {
				t.Fatal(err)
			}
			rate := acpiu - 1 - 0.0025
			for j := range expected {
				expected[j] = mathutil.RoundTo(expected[j]*(1+rate), 0.01)
			}
		}
		got, _ := p.SelectEq("STD", year)
		for j := range got {
			if math.Abs(got[j]-expected[j]) > 1e-6 {
				t.Errorf("STD %d[%d] = %v, expected %v indexed from the reform", year, j, got[j], expected[j])
			}
		}
	}
	got, _ := p.SelectEq("STD", 2026)
	if got[0] == sunset[0] {
		t.Errorf("STD 2026 single = %v, expected the current-law value to be replaced", got[0])
	}
}

func TestARPAProvisions2021(t *testing.T) {
	tests := []struct {
		year            int
		childless       float64
		minAge, maxAge  int
		ctcNew, cdccCap float64
		refundable      bool
	}{
		{2020, 538, 25, 64, 0, 3000, false},
		{2021, 1502, 19, 200, 1000, 8000, true},
		{2022, 560, 25, 64, 0, 3000, false},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.year), func(t *testing.T) {
			p := newPolicy(t)
			if err := p.SetYear(tt.year); err != nil {
				t.Fatalf("SetYear() error = %v", err)
			}
			params, err := p.Params()
			if err != nil {
				t.Fatalf("Params() error = %v", err)
			}
			if got := params.EITCMax.At(0); got != tt.childless {
				t.Errorf("EITC_c 0kids = %v, expected %v", got, tt.childless)
			}
			if params.EITCMinAge != tt.minAge || params.EITCMaxAge != tt.maxAge {
				t.Errorf("EITC ages = %d..%d, expected %d..%d", params.EITCMinAge, params.EITCMaxAge, tt.minAge, tt.maxAge)
			}
			if params.CTCNewAmount != tt.ctcNew {
				t.Errorf("CTC_new_c = %v, expected %v", params.CTCNewAmount, tt.ctcNew)
			}
			if params.CDCCCap != tt.cdccCap {
				t.Errorf("CDCC_c = %v, expected %v", params.CDCCCap, tt.cdccCap)
			}
			if params.CTCRefundable != tt.refundable || params.CDCCRefundable != tt.refundable || params.CTCInclude17 != tt.refundable {
				t.Errorf("refundability switches = %v/%v/%v, expected %v", params.CTCRefundable, params.CDCCRefundable, params.CTCInclude17, tt.refundable)
			}
		})
	}
}

func TestKnownValuesThrough2024(t *testing.T) {
	p := newPolicy(t)
	if err := p.SetYear(2024); err != nil {
		t.Fatalf("SetYear() error = %v", err)
	}
	params, err := p.Params()
	if err != nil {
		t.Fatalf("Params() error = %v", err)
	}
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Standard deduction joint", params.StandardDeduction.At(2), 29200},
		{"Top bracket single", params.IIBrackets[5].At(1), 609350},
		{"Payroll cap", params.SSEarningsCap, 168600},
		{"EITC max three kids", params.EITCMax.At(3), 7830},
		{"Saver's credit first bracket joint", params.SaversCreditBrk[0].At(2), 46000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := newPolicy(t)
	c := p.Clone()
	if err := c.ImplementReform(paramstore.Reform{2018: {"II_rt7": 0.40}}); err != nil {
		t.Fatal(err)
	}
	v, _ := p.SelectEq("II_rt7", 2018)
	if v[0] != 0.37 {
		t.Errorf("original II_rt7 2018 = %v, expected 0.37", v[0])
	}
}

func TestMarsVecAt(t *testing.T) {
	v := MarsVec{1, 2, 3, 4, 5}
	tests := []struct {
		mars     int
		expected float64
	}{
		{1, 1}, {3, 3}, {5, 5},
	}
	for _, tt := range tests {
		if got := v.At(tt.mars); got != tt.expected {
			t.Errorf("MarsVec.At(%d) = %v, expected %v", tt.mars, got, tt.expected)
		}
	}
}

func TestVecAtOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		call func()
	}{
		{"MARS zero", func() { MarsVec{}.At(0) }},
		{"MARS six", func() { MarsVec{}.At(6) }},
		{"Negative EIC", func() { EicVec{}.At(-1) }},
		{"EIC four", func() { EicVec{}.At(4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.call()
		})
	}
	if got := (EicVec{1, 2, 3, 4}).At(3); got != 4 {
		t.Errorf("EicVec.At(3) = %v, expected 4", got)
	}
}
