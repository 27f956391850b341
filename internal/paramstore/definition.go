// Package paramstore implements a time-indexed, typed, validated store of
// policy parameters. Values may be scalars or small vectors over a label axis
// (filing status, number of EITC children, itemized deduction type) and may be
// indexed year over year by a growth rate.
package paramstore

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

// ValueType is the declared type of a parameter's values.
type ValueType int

const (
	Real ValueType = iota
	Integer
	Boolean
)

func (t ValueType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	default:
		return "real"
	}
}

func parseValueType(s string) (ValueType, error) {
	switch s {
	case "real", "float":
		return Real, nil
	case "integer", "int":
		return Integer, nil
	case "boolean", "bool":
		return Boolean, nil
	}
	return Real, fmt.Errorf("unknown parameter type %q", s)
}

// Axis is a named, ordered set of labels that a vector parameter is indexed by.
type Axis struct {
	Name   string
	Labels []string
}

// Index returns the position of label on the axis or -1.
func (a *Axis) Index(label string) int {
	for i, l := range a.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Bound is one side of a range validator: a literal, the symbolic "default"
// (current-law value in the same year), or another parameter's name.
type Bound struct {
	Literal float64
	Ref     string
}

// RefDefault is the symbolic bound meaning the current-law value.
const RefDefault = "default"

// Validator is the range validator attached to a parameter.
type Validator struct {
	Min   Bound
	Max   Bound
	Level string
}

// Definition is the immutable current-law description of a parameter.
type Definition struct {
	Name           string
	Title          string
	Description    string
	Notes          string
	Section1       string
	Section2       string
	Type           ValueType
	Axis           *Axis
	Indexable      bool
	Indexed        bool
	WageIndexed    bool
	Precision      float64
	CompatibleData map[string]bool
	Validator      Validator

	entries map[int][]float64
}

// Width is the number of values per year (1 for scalars).
func (d *Definition) Width() int {
	if d.Axis == nil {
		return 1
	}
	return len(d.Axis.Labels)
}

// IsVector reports whether the parameter is indexed by a label axis.
func (d *Definition) IsVector() bool { return d.Axis != nil }

// ExplicitYears returns the sorted years with current-law entries.
func (d *Definition) ExplicitYears() []int {
	return sortedYears(d.entries)
}

func (d *Definition) precision() float64 {
	if d.Precision > 0 {
		return d.Precision
	}
	return constants.DollarPrecision
}

type rawRange struct {
	Min   any    `json:"min"`
	Max   any    `json:"max"`
	Level string `json:"level"`
}

type rawParam struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Notes          string           `json:"notes"`
	Section1       string           `json:"section_1"`
	Section2       string           `json:"section_2"`
	Type           string           `json:"type"`
	Indexable      bool             `json:"indexable"`
	Indexed        bool             `json:"indexed"`
	Precision      float64          `json:"precision"`
	CompatibleData map[string]bool  `json:"compatible_data"`
	Value          []map[string]any `json:"value"`
	Validators     struct {
		Range rawRange `json:"range"`
	} `json:"validators"`
}

type rawSchema struct {
	Labels map[string]struct {
		Validators struct {
			Choice struct {
				Choices []string `json:"choices"`
			} `json:"choice"`
		} `json:"validators"`
	} `json:"labels"`
}

// parseDefinitions decodes a current-law parameter file.
func parseDefinitions(data []byte) (map[string]*Axis, map[string]*Definition, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, taxerr.ParameterFile("", "malformed parameter JSON: %v", err)
	}

	axes := make(map[string]*Axis)
	if raw, ok := top["schema"]; ok {
		var schema rawSchema
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, nil, taxerr.ParameterFile("schema", "malformed schema: %v", err)
		}
		for name, lab := range schema.Labels {
			axes[name] = &Axis{Name: name, Labels: lab.Validators.Choice.Choices}
		}
	}

	defs := make(map[string]*Definition, len(top))
	for name, raw := range top {
		if name == "schema" {
			continue
		}
		var rp rawParam
		if err := json.Unmarshal(raw, &rp); err != nil {
			return nil, nil, taxerr.ParameterFile(name, "malformed parameter entry: %v", err)
		}
		def, err := buildDefinition(name, rp, axes)
		if err != nil {
			return nil, nil, err
		}
		defs[name] = def
	}
	return axes, defs, nil
}

func buildDefinition(name string, rp rawParam, axes map[string]*Axis) (*Definition, error) {
	vt, err := parseValueType(rp.Type)
	if err != nil {
		return nil, taxerr.ParameterFile(name, "%v", err)
	}
	def := &Definition{
		Name:           name,
		Title:          rp.Title,
		Description:    rp.Description,
		Notes:          rp.Notes,
		Section1:       rp.Section1,
		Section2:       rp.Section2,
		Type:           vt,
		Indexable:      rp.Indexable,
		Indexed:        rp.Indexed,
		Precision:      rp.Precision,
		CompatibleData: rp.CompatibleData,
		entries:        make(map[int][]float64),
	}
	if def.Indexed && !def.Indexable {
		return nil, taxerr.ParameterFile(name, "parameter is indexed but not indexable")
	}

	level := rp.Validators.Range.Level
	if level == "" {
		level = "error"
	}
	if level != "error" && level != "warn" {
		return nil, taxerr.ParameterFile(name, "validator level %q must be error or warn", level)
	}
	def.Validator.Level = level
	if def.Validator.Min, err = parseBound(rp.Validators.Range.Min, math.Inf(-1)); err != nil {
		return nil, taxerr.ParameterFile(name, "min bound: %v", err)
	}
	if def.Validator.Max, err = parseBound(rp.Validators.Range.Max, math.Inf(1)); err != nil {
		return nil, taxerr.ParameterFile(name, "max bound: %v", err)
	}

	if len(rp.Value) == 0 {
		return nil, taxerr.ParameterFile(name, "parameter has no values")
	}
	// Labelled entries are gathered per year and must cover the whole axis.
	partial := make(map[int]map[int]float64)
	for _, entry := range rp.Value {
		yearRaw, ok := entry["year"].(float64)
		if !ok {
			return nil, taxerr.ParameterFile(name, "value entry without numeric year")
		}
		year := int(yearRaw)
		val, err := toFloat(entry["value"], vt)
		if err != nil {
			return nil, taxerr.ParameterFile(name, "year %d: %v", year, err)
		}
		labelIdx := -1
		for key, v := range entry {
			if key == "year" || key == "value" {
				continue
			}
			axis, ok := axes[key]
			if !ok {
				return nil, taxerr.ParameterFile(name, "unknown label axis %q", key)
			}
			if def.Axis != nil && def.Axis != axis {
				return nil, taxerr.ParameterFile(name, "entries use more than one label axis")
			}
			def.Axis = axis
			label, _ := v.(string)
			if labelIdx = axis.Index(label); labelIdx < 0 {
				return nil, taxerr.ParameterFile(name, "unknown %s label %q", key, label)
			}
		}
		if labelIdx < 0 {
			if def.Axis != nil {
				return nil, taxerr.ParameterFile(name, "year %d: unlabelled entry for vector parameter", year)
			}
			def.entries[year] = []float64{val}
			continue
		}
		if partial[year] == nil {
			partial[year] = make(map[int]float64)
		}
		partial[year][labelIdx] = val
	}
	for year, byLabel := range partial {
		if _, dup := def.entries[year]; dup {
			return nil, taxerr.ParameterFile(name, "year %d mixes scalar and labelled entries", year)
		}
		vec := make([]float64, def.Width())
		for i := range vec {
			v, ok := byLabel[i]
			if !ok {
				return nil, taxerr.ParameterFile(name, "year %d is missing label %s", year, def.Axis.Labels[i])
			}
			vec[i] = v
		}
		def.entries[year] = vec
	}
	return def, nil
}

func parseBound(v any, unset float64) (Bound, error) {
	switch b := v.(type) {
	case nil:
		return Bound{Literal: unset}, nil
	case float64:
		return Bound{Literal: b}, nil
	case bool:
		return Bound{Literal: boolFloat(b)}, nil
	case string:
		return Bound{Ref: b}, nil
	}
	return Bound{}, fmt.Errorf("unsupported bound %v", v)
}

// toFloat converts a decoded value into the store's float representation,
// enforcing the declared type.
func toFloat(v any, vt ValueType) (float64, error) {
	switch x := v.(type) {
	case bool:
		if vt != Boolean {
			return 0, fmt.Errorf("boolean value %v for %s parameter", x, vt)
		}
		return boolFloat(x), nil
	case float64:
		return numeric(x, vt)
	case float32:
		return numeric(float64(x), vt)
	case int:
		return numeric(float64(x), vt)
	case int64:
		return numeric(float64(x), vt)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, err
		}
		return numeric(f, vt)
	}
	return 0, fmt.Errorf("value %v (%T) is not a %s", v, v, vt)
}

func numeric(f float64, vt ValueType) (float64, error) {
	if math.IsNaN(f) {
		return 0, fmt.Errorf("value is NaN")
	}
	switch vt {
	case Boolean:
		return 0, fmt.Errorf("numeric value %v for boolean parameter", f)
	case Integer:
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("value %v is not an integer", f)
		}
	}
	return f, nil
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func sortedYears[T any](m map[int]T) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
