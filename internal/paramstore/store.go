package paramstore

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// Options configures a Store.
type Options struct {
	StartYear int
	EndYear   int
	// PriceRates[i] is the rate that indexes values from StartYear+i to
	// StartYear+i+1.
	PriceRates []float64
	// WageRates is used instead of PriceRates for WageIndexed parameters.
	WageRates   []float64
	WageIndexed []string
	// Aliases maps deprecated reform names onto current parameter names.
	Aliases map[string]string
}

// Store holds the definitions and the reform-adjusted value history of a
// family of parameters.
type Store struct {
	name  string
	opts  Options
	axes  map[string]*Axis
	defs  map[string]*Definition
	names []string

	baseline    map[string][][]float64
	st          *state
	currentYear int
	warnings    []string
}

// state is everything a reform can change.
type state struct {
	explicit map[string]map[int][]float64
	flags    map[string]map[int]bool
	values   map[string][][]float64
	adjusted map[string]bool
}

// Load parses a current-law parameter file and expands every parameter over
// [opts.StartYear, opts.EndYear].
func Load(name string, data []byte, opts Options) (*Store, error) {
	if opts.EndYear < opts.StartYear {
		return nil, taxerr.ParameterFile("", "%s: end year %d before start year %d", name, opts.EndYear, opts.StartYear)
	}
	nyears := opts.EndYear - opts.StartYear + 1
	if opts.PriceRates == nil {
		opts.PriceRates = make([]float64, nyears)
	}
	if opts.WageRates == nil {
		opts.WageRates = make([]float64, nyears)
	}
	if len(opts.PriceRates) < nyears || len(opts.WageRates) < nyears {
		return nil, taxerr.ParameterFile("", "%s: indexing rates must cover %d years", name, nyears)
	}

	axes, defs, err := parseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s parameters: %w", name, err)
	}
	for _, wn := range opts.WageIndexed {
		if d, ok := defs[wn]; ok {
			d.WageIndexed = true
		}
	}

	s := &Store{
		name:        name,
		opts:        opts,
		axes:        axes,
		defs:        defs,
		currentYear: opts.StartYear,
	}
	for n, d := range defs {
		s.names = append(s.names, n)
		if _, ok := d.entries[opts.StartYear]; !ok {
			return nil, taxerr.ParameterFile(n, "no value for start year %d", opts.StartYear)
		}
		for y := range d.entries {
			if y < opts.StartYear || y > opts.EndYear {
				return nil, taxerr.ParameterFile(n, "value year %d outside [%d, %d]", y, opts.StartYear, opts.EndYear)
			}
		}
		if err := s.checkBoundRefs(d); err != nil {
			return nil, err
		}
	}
	sort.Strings(s.names)
	for old, cur := range opts.Aliases {
		if _, ok := defs[cur]; !ok {
			return nil, taxerr.ParameterFile(old, "alias targets unknown parameter %s", cur)
		}
	}

	s.st = s.freshState()
	s.baseline = s.st.values
	return s, nil
}

func (s *Store) checkBoundRefs(d *Definition) error {
	for _, b := range []Bound{d.Validator.Min, d.Validator.Max} {
		if b.Ref == "" || b.Ref == RefDefault {
			continue
		}
		ref, ok := s.defs[b.Ref]
		if !ok {
			return taxerr.ParameterFile(d.Name, "validator references unknown parameter %s", b.Ref)
		}
		if ref.Width() != 1 && ref.Width() != d.Width() {
			return taxerr.ParameterFile(d.Name, "validator reference %s has incompatible rank", b.Ref)
		}
	}
	return nil
}

func (s *Store) freshState() *state {
	st := &state{
		explicit: make(map[string]map[int][]float64, len(s.defs)),
		flags:    make(map[string]map[int]bool, len(s.defs)),
		values:   make(map[string][][]float64, len(s.defs)),
		adjusted: make(map[string]bool),
	}
	for n, d := range s.defs {
		ex := make(map[int][]float64, len(d.entries))
		for y, v := range d.entries {
			ex[y] = append([]float64(nil), v...)
		}
		st.explicit[n] = ex
		st.flags[n] = make(map[int]bool)
		st.values[n] = s.expand(d, ex, st.flags[n])
	}
	return st
}

func (st *state) clone() *state {
	out := &state{
		explicit: make(map[string]map[int][]float64, len(st.explicit)),
		flags:    make(map[string]map[int]bool, len(st.flags)),
		values:   make(map[string][][]float64, len(st.values)),
		adjusted: make(map[string]bool, len(st.adjusted)),
	}
	for n, ex := range st.explicit {
		m := make(map[int][]float64, len(ex))
		for y, v := range ex {
			m[y] = v
		}
		out.explicit[n] = m
	}
	for n, fl := range st.flags {
		m := make(map[int]bool, len(fl))
		for y, v := range fl {
			m[y] = v
		}
		out.flags[n] = m
	}
	for n, v := range st.values {
		out.values[n] = v
	}
	for n := range st.adjusted {
		out.adjusted[n] = true
	}
	return out
}

// expand derives the full value series of one parameter. Explicit entries are
// never modified; derived years and released (NaN) elements carry the
// previous value forward, indexed by the previous year's rate while the
// indexed flag is on.
func (s *Store) expand(d *Definition, explicit map[int][]float64, flags map[int]bool) [][]float64 {
	n := s.opts.EndYear - s.opts.StartYear + 1
	out := make([][]float64, n)
	indexed := d.Indexed
	for i := 0; i < n; i++ {
		year := s.opts.StartYear + i
		ex, ok := explicit[year]
		if i == 0 {
			out[i] = append([]float64(nil), ex...)
		} else {
			prev := out[i-1]
			cur := make([]float64, len(prev))
			rate := 0.0
			if indexed {
				rate = s.rate(d, year-1)
			}
			for j, pv := range prev {
				if ok && !math.IsNaN(ex[j]) {
					cur[j] = ex[j]
					continue
				}
				cur[j] = indexValue(pv, rate, indexed, d.precision())
			}
			out[i] = cur
		}
		if f, ok := flags[year]; ok {
			indexed = f
		}
	}
	return out
}

func indexValue(prev, rate float64, indexed bool, precision float64) float64 {
	if !indexed || prev >= constants.Unlimited || prev <= -constants.Unlimited {
		return prev
	}
	return mathutil.RoundTo(prev*(1+rate), precision)
}

func (s *Store) rate(d *Definition, year int) float64 {
	i := year - s.opts.StartYear
	if d.WageIndexed {
		return s.opts.WageRates[i]
	}
	return s.opts.PriceRates[i]
}

// SetIndexingRates replaces the price and wage rates and re-derives every
// non-explicit value, including the current-law baseline.
func (s *Store) SetIndexingRates(price, wage []float64) error {
	nyears := s.opts.EndYear - s.opts.StartYear + 1
	if price != nil {
		if len(price) < nyears {
			return taxerr.ParameterFile("", "price rates cover %d years, need %d", len(price), nyears)
		}
		s.opts.PriceRates = append([]float64(nil), price...)
	}
	if wage != nil {
		if len(wage) < nyears {
			return taxerr.ParameterFile("", "wage rates cover %d years, need %d", len(wage), nyears)
		}
		s.opts.WageRates = append([]float64(nil), wage...)
	}
	base := make(map[string][][]float64, len(s.defs))
	for n, d := range s.defs {
		base[n] = s.expand(d, d.entries, nil)
		s.st.values[n] = s.expand(d, s.st.explicit[n], s.st.flags[n])
	}
	s.baseline = base
	return nil
}

// Name returns the store's name, e.g. "policy".
func (s *Store) Name() string { return s.name }

// StartYear returns the first year of the store.
func (s *Store) StartYear() int { return s.opts.StartYear }

// EndYear returns the last year of the store.
func (s *Store) EndYear() int { return s.opts.EndYear }

// CurrentYear returns the year used by Value.
func (s *Store) CurrentYear() int { return s.currentYear }

// SetYear sets the current year.
func (s *Store) SetYear(year int) error {
	if year < s.opts.StartYear || year > s.opts.EndYear {
		return taxerr.Year(year, "%s parameters defined only for [%d, %d]", s.name, s.opts.StartYear, s.opts.EndYear)
	}
	s.currentYear = year
	return nil
}

// Items returns the sorted parameter names.
func (s *Store) Items() []string {
	return append([]string(nil), s.names...)
}

// Definition returns the definition for name, or nil.
func (s *Store) Definition(name string) *Definition {
	return s.defs[name]
}

// Has reports whether name is a parameter of the store.
func (s *Store) Has(name string) bool {
	_, ok := s.defs[name]
	return ok
}

// Value returns the current-year value of name. Unknown names are a
// programmer error and panic.
func (s *Store) Value(name string) []float64 {
	vals, ok := s.st.values[name]
	if !ok {
		panic(taxerr.ParameterFile(name, "unknown %s parameter", s.name))
	}
	return vals[s.currentYear-s.opts.StartYear]
}

// Scalar returns the first element of the current-year value of name.
func (s *Store) Scalar(name string) float64 {
	return s.Value(name)[0]
}

// SelectEq returns the value of name in year.
func (s *Store) SelectEq(name string, year int) ([]float64, error) {
	vals, ok := s.st.values[name]
	if !ok {
		return nil, taxerr.ParameterFile(name, "unknown %s parameter", s.name)
	}
	if year < s.opts.StartYear || year > s.opts.EndYear {
		return nil, taxerr.Year(year, "%s parameters defined only for [%d, %d]", s.name, s.opts.StartYear, s.opts.EndYear)
	}
	return append([]float64(nil), vals[year-s.opts.StartYear]...), nil
}

// Series returns the full expanded series of name, one row per year.
func (s *Store) Series(name string) [][]float64 {
	vals := s.st.values[name]
	out := make([][]float64, len(vals))
	for i, v := range vals {
		out[i] = append([]float64(nil), v...)
	}
	return out
}

// IndexedAt reports whether name is indexed from year to year+1.
func (s *Store) IndexedAt(name string, year int) bool {
	d := s.defs[name]
	if d == nil {
		return false
	}
	indexed := d.Indexed
	flags := s.st.flags[name]
	for _, y := range sortedYears(flags) {
		if y > year {
			break
		}
		indexed = flags[y]
	}
	return indexed
}

// InflationRates returns the price rates used for indexing.
func (s *Store) InflationRates() []float64 {
	return append([]float64(nil), s.opts.PriceRates...)
}

// WageGrowthRates returns the wage rates used for wage-indexed parameters.
func (s *Store) WageGrowthRates() []float64 {
	return append([]float64(nil), s.opts.WageRates...)
}

// Adjusted returns the sorted names changed by reforms since the last
// ClearState.
func (s *Store) Adjusted() []string {
	out := make([]string, 0, len(s.st.adjusted))
	for n := range s.st.adjusted {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Warnings returns the accumulated reform warnings.
func (s *Store) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// WarningText joins the accumulated warnings into one user-visible string.
func (s *Store) WarningText() string {
	return strings.Join(s.warnings, "\n")
}

// ClearState resets the store to current law at its start year.
func (s *Store) ClearState() {
	s.st = s.freshState()
	s.currentYear = s.opts.StartYear
	s.warnings = nil
}

// Clone returns a deep copy that shares only immutable definitions.
func (s *Store) Clone() *Store {
	out := *s
	out.opts.PriceRates = append([]float64(nil), s.opts.PriceRates...)
	out.opts.WageRates = append([]float64(nil), s.opts.WageRates...)
	out.st = s.st.clone()
	out.warnings = append([]string(nil), s.warnings...)
	return &out
}

func (s *Store) boundValue(b Bound, d *Definition, st *state, yi, elem int) float64 {
	switch b.Ref {
	case "":
		return b.Literal
	case RefDefault:
		return s.baseline[d.Name][yi][elem]
	}
	ref := st.values[b.Ref][yi]
	if len(ref) == 1 {
		return ref[0]
	}
	return ref[elem]
}

func formatValue(v float64) string {
	if v >= constants.Unlimited {
		return "9e99"
	}
	if math.Trunc(v) == v && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
