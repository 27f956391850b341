// Package reform reads policy reform and economic assumption files.
//
// A file is an object with up to five sections: policy, consumption,
// behavior, growdiff_baseline and growdiff_response. Each section maps a
// parameter name to an object keyed by year:
//
//	{"policy": {"II_em": {"2020": 1000}, "STD_single": {"2019": 13000}}}
//
// Year-first sections ({"2020": {"II_em": 1000}}) and names with a leading
// underscore are also accepted. Files are read as Hjson, so comments and
// trailing commas are allowed.
package reform

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hjson/hjson-go/v4"

	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/taxerr"
)

// Section names.
const (
	Policy           = "policy"
	Consumption      = "consumption"
	Behavior         = "behavior"
	GrowDiffBaseline = "growdiff_baseline"
	GrowDiffResponse = "growdiff_response"
)

// Sections lists every section name in file order.
var Sections = []string{Policy, Consumption, Behavior, GrowDiffBaseline, GrowDiffResponse}

// assumptionSections may appear in an assumption file.
var assumptionSections = []string{Consumption, Behavior, GrowDiffBaseline, GrowDiffResponse}

// File holds the parsed sections of one or more files.
type File map[string]paramstore.Reform

// Section returns the named section, or an empty reform.
func (f File) Section(name string) paramstore.Reform {
	if r, ok := f[name]; ok {
		return r
	}
	return paramstore.Reform{}
}

// Empty reports whether no section has any change.
func (f File) Empty() bool {
	for _, r := range f {
		if len(r) > 0 {
			return false
		}
	}
	return true
}

// Parse parses the contents of a reform or assumption file.
func Parse(data []byte) (File, error) {
	var raw map[string]any
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, taxerr.ParameterFile("", "reform file is not valid JSON: %v", err)
	}
	out := make(File)
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !known(key, Sections) {
			return nil, taxerr.Reform(key, 0, "unknown top-level key; expected one of %s", strings.Join(Sections, ", "))
		}
		body, ok := raw[key].(map[string]any)
		if !ok {
			return nil, taxerr.Reform(key, 0, "section must be an object")
		}
		r, err := parseSection(body)
		if err != nil {
			return nil, fmt.Errorf("%s section: %w", key, err)
		}
		out[key] = r
	}
	return out, nil
}

func known(name string, set []string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

func parseYear(key, param string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, taxerr.Reform(param, 0, "year key %q is not an integer", key)
	}
	return year, nil
}

func parseSection(body map[string]any) (paramstore.Reform, error) {
	out := make(paramstore.Reform)
	set := func(year int, name string, v any) {
		if out[year] == nil {
			out[year] = make(map[string]any)
		}
		out[year][strings.TrimPrefix(name, "_")] = v
	}
	for key, v := range body {
		inner, ok := v.(map[string]any)
		if !ok {
			return nil, taxerr.Reform(key, 0, "expected an object keyed by year")
		}
		if year, err := strconv.Atoi(key); err == nil {
			for name, val := range inner {
				set(year, name, val)
			}
			continue
		}
		for ykey, val := range inner {
			year, err := parseYear(ykey, key)
			if err != nil {
				return nil, err
			}
			set(year, key, val)
		}
	}
	return out, nil
}

// Set is a policy reform read from one or more files, together with the
// assumption sections. Policies holds the policy section of each reform file
// in the order the files were named; each is implemented on top of the
// result of the ones before it.
type Set struct {
	Policies    []paramstore.Reform
	Assumptions File
}

// Section returns the named assumption section, or an empty reform.
func (s Set) Section(name string) paramstore.Reform {
	return s.Assumptions.Section(name)
}

// Empty reports whether the set changes nothing.
func (s Set) Empty() bool {
	for _, r := range s.Policies {
		if len(r) > 0 {
			return false
		}
	}
	return s.Assumptions.Empty()
}

// Read parses the file at path. Several files joined with "+" are returned
// one File each, in order.
func Read(path string) ([]File, error) {
	var out []File
	for _, p := range strings.Split(path, "+") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		f, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// Merge layers other on top of f.
func (f File) Merge(other File) {
	for section, r := range other {
		dst := f[section]
		if dst == nil {
			dst = make(paramstore.Reform)
			f[section] = dst
		}
		for year, changes := range r {
			if dst[year] == nil {
				dst[year] = make(map[string]any)
			}
			for name, v := range changes {
				dst[year][name] = v
			}
		}
	}
}

// ReadParamObjects reads the policy reform files and the assumption files
// named by the two paths. Either path may be empty.
func ReadParamObjects(reformPath, assumpPath string) (Set, error) {
	var refs, asms []File
	var err error
	if reformPath != "" {
		if refs, err = Read(reformPath); err != nil {
			return Set{}, err
		}
	}
	if assumpPath != "" {
		if asms, err = Read(assumpPath); err != nil {
			return Set{}, err
		}
	}
	return Combine(refs, asms)
}

// Combine checks that the reform files hold only a policy section and the
// assumption files none, and returns them as a Set. Assumption files are
// merged, later ones overriding earlier ones. Nil files are skipped.
func Combine(refs, asms []File) (Set, error) {
	out := Set{Assumptions: make(File)}
	for _, ref := range refs {
		for section := range ref {
			if section != Policy {
				return Set{}, taxerr.Reform(section, 0, "reform file may only contain a %s section", Policy)
			}
		}
		if ref != nil {
			out.Policies = append(out.Policies, ref.Section(Policy))
		}
	}
	for _, asm := range asms {
		for section := range asm {
			if !known(section, assumptionSections) {
				return Set{}, taxerr.Reform(section, 0, "assumption file may only contain %s", strings.Join(assumptionSections, ", "))
			}
		}
		out.Assumptions.Merge(asm)
	}
	return out, nil
}
