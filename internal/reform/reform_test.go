package reform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/taxerr"
)

const policyReform = `{
  // raise the top rate and the standard deduction
  "policy": {
    "II_rt7": {"2020": 0.396},
    "_STD_single": {"2019": 13000, "2021": 14000},
    "II_em_cpi": {"2022": false},
  }
}`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(policyReform))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	pol := f.Section(Policy)
	tests := []struct {
		name     string
		year     int
		param    string
		expected any
	}{
		{"Top rate", 2020, "II_rt7", 0.396},
		{"Leading underscore stripped", 2019, "STD_single", 13000.0},
		{"Later year", 2021, "STD_single", 14000.0},
		{"Indexing flag", 2022, "II_em_cpi", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pol[tt.year][tt.param]
			if !ok || got != tt.expected {
				t.Errorf("policy[%d][%s] = %v, expected %v", tt.year, tt.param, got, tt.expected)
			}
		})
	}
	if len(f.Section(Behavior)) != 0 {
		t.Errorf("Section(behavior) = %v, expected empty", f.Section(Behavior))
	}
	if f.Empty() {
		t.Errorf("Empty() = true, expected false")
	}
}

func TestParseYearFirst(t *testing.T) {
	f, err := Parse([]byte(`{"policy": {"2018": {"_II_em": [4000]}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := f.Section(Policy)[2018]["II_em"]; !ok {
		t.Errorf("policy[2018] = %v, expected II_em", f.Section(Policy)[2018])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind error
	}{
		{"Malformed", `{"policy": `, taxerr.ErrInvalidParameterFile},
		{"Unknown section", `{"tax": {}}`, taxerr.ErrInvalidReform},
		{"Bad year", `{"policy": {"II_em": {"next": 1}}}`, taxerr.ErrInvalidReform},
		{"Not keyed by year", `{"policy": {"II_em": 1000}}`, taxerr.ErrInvalidReform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.kind) {
				t.Errorf("Parse() error = %v, expected %v", err, tt.kind)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestReadParamObjects(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.json", policyReform)
	more := writeFile(t, dir, "more.json", `{"policy": {"II_rt7": {"2020": 0.40}}}`)
	assump := writeFile(t, dir, "assump.json", `{
		"consumption": {"MPC_e17500": {"2018": 0.1}},
		"behavior": {"BE_sub": {"2018": 0.25}},
		"growdiff_response": {"AWAGE": {"2019": 0.01}}
	}`)

	set, err := ReadParamObjects(ref+"+"+more, assump)
	if err != nil {
		t.Fatalf("ReadParamObjects() error = %v", err)
	}
	if len(set.Policies) != 2 {
		t.Fatalf("len(Policies) = %d, expected 2", len(set.Policies))
	}
	if got := set.Policies[0][2020]["II_rt7"]; got != 0.396 {
		t.Errorf("first file II_rt7 = %v, expected 0.396", got)
	}
	if got := set.Policies[1][2020]["II_rt7"]; got != 0.40 {
		t.Errorf("second file II_rt7 = %v, expected 0.40", got)
	}
	if got := set.Section(GrowDiffResponse)[2019]["AWAGE"]; got != 0.01 {
		t.Errorf("growdiff_response AWAGE = %v, expected 0.01", got)
	}
	if len(set.Section(Policy)) != 0 {
		t.Errorf("Section(policy) = %v, expected empty", set.Section(Policy))
	}

	p, err := policy.New(nil)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	for _, r := range set.Policies {
		if err := p.ImplementReform(r); err != nil {
			t.Fatalf("ImplementReform() error = %v", err)
		}
	}
	if v, _ := p.SelectEq("II_rt7", 2020); v[0] != 0.40 {
		t.Errorf("II_rt7 2020 = %v, expected 0.40", v[0])
	}

	if _, err := ReadParamObjects(assump, ""); !errors.Is(err, taxerr.ErrInvalidReform) {
		t.Errorf("ReadParamObjects(assumption as reform) error = %v, expected %v", err, taxerr.ErrInvalidReform)
	}
	if _, err := ReadParamObjects("", ref); !errors.Is(err, taxerr.ErrInvalidReform) {
		t.Errorf("ReadParamObjects(reform as assumption) error = %v, expected %v", err, taxerr.ErrInvalidReform)
	}
	if _, err := ReadParamObjects(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Errorf("ReadParamObjects(missing) error = nil, expected error")
	}
	empty, err := ReadParamObjects("", "")
	if err != nil || !empty.Empty() {
		t.Errorf("ReadParamObjects(\"\", \"\") = %v, %v, expected empty", empty, err)
	}
}

// A later file that changes an indexed parameter in an earlier year replaces
// the values an earlier file set after that year.
func TestCompoundReformAppliesInOrder(t *testing.T) {
	dir := t.TempDir()
	late := writeFile(t, dir, "late.json", `{"policy": {"STD_single": {"2022": 15000}}}`)
	early := writeFile(t, dir, "early.json", `{"policy": {"STD_single": {"2019": 13000}}}`)

	set, err := ReadParamObjects(late+"+"+early, "")
	if err != nil {
		t.Fatalf("ReadParamObjects() error = %v", err)
	}
	compound, err := policy.New(nil)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	for _, r := range set.Policies {
		if err := compound.ImplementReform(r); err != nil {
			t.Fatalf("ImplementReform() error = %v", err)
		}
	}
	only, err := policy.New(nil)
	if err != nil {
		t.Fatalf("policy.New() error = %v", err)
	}
	if err := only.ImplementReform(set.Policies[1]); err != nil {
		t.Fatalf("ImplementReform() error = %v", err)
	}

	for year := 2019; year <= 2025; year++ {
		got, _ := compound.SelectEq("STD", year)
		expected, _ := only.SelectEq("STD", year)
		for j := range got {
			if got[j] != expected[j] {
				t.Errorf("STD %d[%d] = %v, expected %v", year, j, got[j], expected[j])
			}
		}
	}
	if v, _ := compound.SelectEq("STD", 2022); v[0] == 15000 {
		t.Errorf("STD 2022 single = 15000, expected the first file's value to be replaced")
	}
	if v, _ := compound.SelectEq("STD", 2019); v[0] != 13000 {
		t.Errorf("STD 2019 single = %v, expected 13000", v[0])
	}
}

func TestCombine(t *testing.T) {
	ref, err := Parse([]byte(`{"policy": {"II_em": {"2020": 1000}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	asm, err := Parse([]byte(`{"behavior": {"BE_sub": {"2020": 0.25}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name         string
		refs, asms   []File
		wantError    bool
		wantPolicies int
	}{
		{"Both", []File{ref}, []File{asm}, false, 1},
		{"Neither", nil, nil, false, 0},
		{"Nil files", []File{nil}, []File{nil}, false, 0},
		{"Two reforms", []File{ref, ref}, nil, false, 2},
		{"Assumption as reform", []File{asm}, nil, true, 0},
		{"Reform as assumption", nil, []File{ref}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Combine(tt.refs, tt.asms)
			if tt.wantError {
				if !errors.Is(err, taxerr.ErrInvalidReform) {
					t.Errorf("Combine() error = %v, expected %v", err, taxerr.ErrInvalidReform)
				}
				return
			}
			if err != nil {
				t.Fatalf("Combine() error = %v", err)
			}
			if len(got.Policies) != tt.wantPolicies {
				t.Errorf("Combine() has %d policies, expected %d", len(got.Policies), tt.wantPolicies)
			}
		})
	}
}
