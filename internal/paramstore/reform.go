package paramstore

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/iwvelando/taxcalc/internal/taxerr"
)

// Reform maps year to parameter name to new value. Values are scalars
// (float64, int, bool) or lists matching the parameter's label axis. Names may
// carry a "_cpi" suffix (indexing flag) or a "_<label>" suffix (one element of
// a vector parameter).
type Reform map[int]map[string]any

type updateKind int

const (
	updateValue updateKind = iota
	updateLabel
	updateIndexing
)

type update struct {
	kind  updateKind
	param string
	label int
	raw   string
	value any
}

// ImplementReform applies reform on top of the store's current state. Years
// before max(StartYear, CurrentYear) are rejected. All violations are
// reported together and on any error the store is left unchanged.
func (s *Store) ImplementReform(reform Reform) error {
	if len(reform) == 0 {
		return nil
	}
	years := sortedYears(reform)
	floor := s.opts.StartYear
	if s.currentYear > floor {
		floor = s.currentYear
	}
	for _, y := range years {
		if y < floor {
			return taxerr.Year(y, "%s reform year %d precedes %d", s.name, y, floor)
		}
		if y > s.opts.EndYear {
			return taxerr.Reform("", y, "%s reform year %d is after last year %d", s.name, y, s.opts.EndYear)
		}
	}

	work := s.st.clone()
	var errs []error
	var warns []string
	first := make(map[string]int)
	for _, year := range years {
		updates, uerrs, uwarns := s.desugar(year, reform[year])
		errs = append(errs, uerrs...)
		warns = append(warns, uwarns...)

		touched := make(map[string]bool)
		for _, u := range updates {
			if err := s.apply(work, year, u); err != nil {
				errs = append(errs, err)
				continue
			}
			if u.kind == updateIndexing || s.indexedParam(work, u.param) {
				dropLater(work, year, u)
			}
			touched[u.param] = true
			work.adjusted[u.param] = true
			if _, ok := first[u.param]; !ok {
				first[u.param] = year
			}
		}
		for name := range touched {
			work.values[name] = s.expand(s.defs[name], work.explicit[name], work.flags[name])
		}
	}
	verrs, vwarns := s.validate(work, first)
	errs = append(errs, verrs...)
	warns = append(warns, vwarns...)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.st = work
	s.warnings = append(s.warnings, warns...)
	return nil
}

// desugar resolves aliases and name suffixes. Updates are ordered so that a
// full value precedes label edits which precede indexing flags.
func (s *Store) desugar(year int, changes map[string]any) ([]update, []error, []string) {
	names := make([]string, 0, len(changes))
	for n := range changes {
		names = append(names, n)
	}
	sort.Strings(names)

	var out []update
	var errs []error
	var warns []string
	for _, raw := range names {
		u, ok := s.resolve(raw)
		if !ok {
			errs = append(errs, taxerr.Reform(raw, year, "unknown %s parameter", s.name))
			continue
		}
		if old, cur := s.aliasOf(raw); old != "" {
			warns = append(warns, fmt.Sprintf("WARNING: %d %s is deprecated; use %s", year, old, cur))
		}
		u.raw = raw
		u.value = changes[raw]
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].kind < out[j].kind })
	return out, errs, warns
}

func (s *Store) aliasOf(raw string) (string, string) {
	for old, cur := range s.opts.Aliases {
		if raw == old || strings.HasPrefix(raw, old+"_") {
			return old, cur
		}
	}
	return "", ""
}

func (s *Store) canonical(name string) string {
	if cur, ok := s.opts.Aliases[name]; ok {
		return cur
	}
	return name
}

func (s *Store) resolve(raw string) (update, bool) {
	if name := s.canonical(raw); s.defs[name] != nil {
		return update{kind: updateValue, param: name}, true
	}
	if base, ok := strings.CutSuffix(raw, "_cpi"); ok {
		if name := s.canonical(base); s.defs[name] != nil {
			return update{kind: updateIndexing, param: name}, true
		}
	}
	i := strings.LastIndex(raw, "_")
	if i <= 0 {
		return update{}, false
	}
	name := s.canonical(raw[:i])
	d := s.defs[name]
	if d == nil || d.Axis == nil {
		return update{}, false
	}
	idx := d.Axis.Index(raw[i+1:])
	if idx < 0 {
		return update{}, false
	}
	return update{kind: updateLabel, param: name, label: idx}, true
}

func (s *Store) apply(work *state, year int, u update) error {
	d := s.defs[u.param]
	switch u.kind {
	case updateIndexing:
		flag, ok := u.value.(bool)
		if !ok {
			return taxerr.Reform(u.raw, year, "indexing flag must be boolean, got %v", u.value)
		}
		if !d.Indexable {
			return taxerr.Reform(u.raw, year, "%s is not indexable", u.param)
		}
		work.flags[u.param][year] = flag
		return nil

	case updateLabel:
		val, err := toFloat(u.value, d.Type)
		if err != nil {
			return taxerr.Reform(u.raw, year, "%v", err)
		}
		cur, ok := work.explicit[u.param][year]
		if !ok {
			cur = work.values[u.param][year-s.opts.StartYear]
		}
		vec := append([]float64(nil), cur...)
		vec[u.label] = val
		work.explicit[u.param][year] = vec
		return nil
	}

	vec, err := s.coerce(d, u.value)
	if err != nil {
		return taxerr.Reform(u.raw, year, "%v", err)
	}
	work.explicit[u.param][year] = vec
	return nil
}

// indexedParam reports whether name is indexed by current law or switched on
// by an indexing flag.
func (s *Store) indexedParam(work *state, name string) bool {
	if s.defs[name].Indexed {
		return true
	}
	for _, on := range work.flags[name] {
		if on {
			return true
		}
	}
	return false
}

// dropLater removes the explicit values of u.param after year so that later
// years are indexed forward from the reform value. A label update only
// releases its own element; released elements are stored as NaN.
func dropLater(work *state, year int, u update) {
	ex := work.explicit[u.param]
	for _, y := range sortedYears(ex) {
		if y <= year {
			continue
		}
		if u.kind != updateLabel {
			delete(ex, y)
			continue
		}
		row := append([]float64(nil), ex[y]...)
		row[u.label] = math.NaN()
		if released(row) {
			delete(ex, y)
		} else {
			ex[y] = row
		}
	}
}

func released(row []float64) bool {
	for _, v := range row {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// coerce converts a reform value into a row of the parameter's width.
func (s *Store) coerce(d *Definition, v any) ([]float64, error) {
	var elems []any
	switch x := v.(type) {
	case []any:
		elems = x
	case []float64:
		for _, f := range x {
			elems = append(elems, f)
		}
	case []int:
		for _, n := range x {
			elems = append(elems, n)
		}
	case []bool:
		for _, b := range x {
			elems = append(elems, b)
		}
	default:
		if d.IsVector() {
			return nil, fmt.Errorf("wrong rank: %s expects %d values", d.Name, d.Width())
		}
		f, err := toFloat(v, d.Type)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
	// a single nested list is accepted for vector values
	if len(elems) == 1 {
		if inner, ok := elems[0].([]any); ok {
			elems = inner
		}
	}
	if len(elems) != d.Width() {
		return nil, fmt.Errorf("wrong rank: %s expects %d values, got %d", d.Name, d.Width(), len(elems))
	}
	out := make([]float64, len(elems))
	for i, e := range elems {
		f, err := toFloat(e, d.Type)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// validate checks each changed parameter, and every parameter whose bounds
// reference one, from the first reform year through the end year.
func (s *Store) validate(work *state, first map[string]int) ([]error, []string) {
	check := make(map[string]int, len(first))
	for name, y := range first {
		check[name] = y
	}
	for name, d := range s.defs {
		for _, ref := range []string{d.Validator.Min.Ref, d.Validator.Max.Ref} {
			y, ok := first[ref]
			if !ok {
				continue
			}
			if cur, seen := check[name]; !seen || y < cur {
				check[name] = y
			}
		}
	}
	names := make([]string, 0, len(check))
	for n := range check {
		names = append(names, n)
	}
	sort.Strings(names)

	var errs []error
	var warns []string
	for _, name := range names {
		d := s.defs[name]
		for y := check[name]; y <= s.opts.EndYear; y++ {
			msg := s.violation(d, work, y)
			if msg == "" {
				continue
			}
			if d.Validator.Level == "warn" {
				warns = append(warns, fmt.Sprintf("WARNING: %d %s", y, msg))
			} else {
				errs = append(errs, taxerr.Reform(name, y, "%s", msg))
			}
			break
		}
	}
	return errs, warns
}

func (s *Store) violation(d *Definition, work *state, year int) string {
	yi := year - s.opts.StartYear
	row := work.values[d.Name][yi]
	for i, v := range row {
		elem := d.Name
		if d.Axis != nil {
			elem = d.Name + "_" + d.Axis.Labels[i]
		}
		if lo := s.boundValue(d.Validator.Min, d, work, yi, i); v < lo {
			return fmt.Sprintf("%s value %s < min value %s%s", elem, formatValue(v), formatValue(lo), refNote(d.Validator.Min))
		}
		if hi := s.boundValue(d.Validator.Max, d, work, yi, i); v > hi {
			return fmt.Sprintf("%s value %s > max value %s%s", elem, formatValue(v), formatValue(hi), refNote(d.Validator.Max))
		}
	}
	return ""
}

func refNote(b Bound) string {
	if b.Ref == "" {
		return ""
	}
	return " for " + b.Ref
}
