// Package records stores filing-unit data column by column and ages it from
// its data year to later years.
package records

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/growfactors"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// Var identifies a record variable.
type Var int

// VarInfo describes a record variable.
type VarInfo struct {
	Name    string
	Integer bool
	Input   bool
	// Growth names the growth factor used to age the variable. SCHC and SCHE
	// select between the income and loss factors by sign.
	Growth string
	Desc   string
}

// Name returns the variable's column name.
func (v Var) Name() string { return schema[v].Name }

// Info returns the variable's schema entry.
func (v Var) Info() VarInfo { return schema[v] }

func (v Var) String() string { return v.Name() }

var byName = func() map[string]Var {
	m := make(map[string]Var, NumVars)
	for i := Var(0); i < NumVars; i++ {
		m[schema[i].Name] = i
	}
	return m
}()

// Lookup returns the variable with the given column name.
func Lookup(name string) (Var, bool) {
	v, ok := byName[name]
	return v, ok
}

// MustLookup is Lookup for names known at compile time. Unknown names panic.
func MustLookup(name string) Var {
	v, ok := byName[name]
	if !ok {
		panic(taxerr.Records(name, "unknown record variable"))
	}
	return v
}

// InputVars returns all input variables in schema order.
func InputVars() []Var {
	out := make([]Var, 0, FirstCalculated)
	for v := Var(0); v < FirstCalculated; v++ {
		out = append(out, v)
	}
	return out
}

// CalculatedVars returns all calculated variables in schema order.
func CalculatedVars() []Var {
	out := make([]Var, 0, NumVars-FirstCalculated)
	for v := FirstCalculated; v < NumVars; v++ {
		out = append(out, v)
	}
	return out
}

// RequiredInputs must be present in every input table.
var RequiredInputs = []Var{RECID, MARS}

// Options configures record construction.
type Options struct {
	// StartYear is the data year of the sample.
	StartYear int
	// GrowFactors enables aging when non-nil.
	GrowFactors *growfactors.GrowFactors
	// Weights holds optional weight_<year> columns, row-aligned with the data.
	Weights map[int][]float64
}

// Records is a column store of filing units.
type Records struct {
	logger      *zap.Logger
	n           int
	dataYear    int
	currentYear int
	cols        [NumVars][]float64
	gf          *growfactors.GrowFactors
	weights     map[int][]float64
}

// FromColumns builds records from named input columns. Missing optional
// columns are zero, s006 defaults to one, and split earnings columns are
// reconciled with their filing-unit totals.
func FromColumns(logger *zap.Logger, columns map[string][]float64, opts Options) (*Records, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, v := range RequiredInputs {
		if _, ok := columns[v.Name()]; !ok {
			return nil, taxerr.Records(v.Name(), "required input column is missing")
		}
	}
	n := len(columns[RECID.Name()])
	r := &Records{
		logger:      logger,
		n:           n,
		dataYear:    opts.StartYear,
		currentYear: opts.StartYear,
		gf:          opts.GrowFactors,
		weights:     opts.Weights,
	}
	present := make(map[Var]bool, len(columns))
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		col := columns[name]
		v, ok := Lookup(name)
		if !ok {
			logger.Debug("ignoring unknown input column",
				zap.String("op", "records.FromColumns"),
				zap.String("column", name),
			)
			continue
		}
		if !schema[v].Input {
			return nil, taxerr.Records(name, "calculated variable supplied as input")
		}
		if len(col) != n {
			return nil, taxerr.Records(name, "column has %d rows, expected %d", len(col), n)
		}
		if schema[v].Integer {
			for i, x := range col {
				if x != math.Trunc(x) {
					return nil, taxerr.Records(name, "row %d: value %v is not an integer", i, x)
				}
			}
		}
		r.cols[v] = append([]float64(nil), col...)
		present[v] = true
	}
	for v := Var(0); v < NumVars; v++ {
		if r.cols[v] == nil {
			r.cols[v] = make([]float64, n)
		}
	}
	if !present[S006] {
		for i := range r.cols[S006] {
			r.cols[S006][i] = 1
		}
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	for _, s := range splits {
		if err := r.reconcile(s, present); err != nil {
			return nil, err
		}
	}
	for year, w := range r.weights {
		if len(w) != n {
			return nil, taxerr.Records(fmt.Sprintf("weight_%d", year), "weights table has %d rows, expected %d", len(w), n)
		}
	}
	if w, ok := r.weights[r.currentYear]; ok {
		copy(r.cols[S006], w)
	}
	logger.Debug("records constructed",
		zap.String("op", "records.FromColumns"),
		zap.Int("rows", n),
		zap.Int("dataYear", r.dataYear),
		zap.Bool("aging", r.gf != nil),
	)
	return r, nil
}

func (r *Records) validate() error {
	seen := make(map[float64]bool, r.n)
	for i, id := range r.cols[RECID] {
		if seen[id] {
			return taxerr.Records(RECID.Name(), "duplicate RECID %v", id)
		}
		seen[id] = true
		if m := r.cols[MARS][i]; m < constants.MarsSingle || m > constants.MarsWidow {
			return taxerr.Records(MARS.Name(), "RECID %v has MARS %v outside 1..5", id, m)
		}
		if e := r.cols[EIC][i]; e < 0 || e > 3 {
			return taxerr.Records(EIC.Name(), "RECID %v has EIC %v outside 0..3", id, e)
		}
		if r.cols[MARS][i] != constants.MarsJoint && (r.cols[E00200s][i] != 0 || r.cols[E00900s][i] != 0 || r.cols[E02100s][i] != 0) {
			return taxerr.Records("MARS", "RECID %v is not a joint return but has spouse income", id)
		}
	}
	return nil
}

type split struct{ total, p, s Var }

var splits = []split{
	{E00200, E00200p, E00200s},
	{E00900, E00900p, E00900s},
	{E02100, E02100p, E02100s},
}

// reconcile fills whichever side of total = p + s is missing and checks the
// identity when both are supplied.
func (r *Records) reconcile(sp split, present map[Var]bool) error {
	hasParts := present[sp.p] || present[sp.s]
	total, p, s := r.cols[sp.total], r.cols[sp.p], r.cols[sp.s]
	switch {
	case !hasParts:
		copy(p, total)
	case !present[sp.total]:
		for i := range total {
			total[i] = p[i] + s[i]
		}
	default:
		for i := range total {
			if !mathutil.WithinTolerance(total[i], p[i]+s[i], 1) {
				return taxerr.Records(sp.total.Name(), "RECID %v: %s differs from %s + %s",
					r.cols[RECID][i], sp.total.Name(), sp.p.Name(), sp.s.Name())
			}
		}
	}
	return nil
}

// Len returns the number of filing units.
func (r *Records) Len() int { return r.n }

// DataYear returns the year the sample represents.
func (r *Records) DataYear() int { return r.dataYear }

// CurrentYear returns the year the records are aged to.
func (r *Records) CurrentYear() int { return r.currentYear }

// Aging reports whether growth factors are attached.
func (r *Records) Aging() bool { return r.gf != nil }

// Col returns the live column for v.
func (r *Records) Col(v Var) []float64 {
	if v < 0 || v >= NumVars {
		panic(taxerr.Records(fmt.Sprint(int(v)), "unknown record variable"))
	}
	return r.cols[v]
}

// Column returns the live column with the given name.
func (r *Records) Column(name string) ([]float64, error) {
	v, ok := Lookup(name)
	if !ok {
		return nil, taxerr.Records(name, "unknown record variable")
	}
	return r.cols[v], nil
}

// Weights returns the live s006 column.
func (r *Records) Weights() []float64 { return r.cols[S006] }

// SetGrowFactors replaces the growth factors used by later IncrementYear
// calls.
func (r *Records) SetGrowFactors(gf *growfactors.GrowFactors) { r.gf = gf }

// GrowFactors returns the growth factors used for aging, or nil.
func (r *Records) GrowFactors() *growfactors.GrowFactors { return r.gf }

// ZeroOutCalculated resets every calculated column to zero.
func (r *Records) ZeroOutCalculated() {
	for v := FirstCalculated; v < NumVars; v++ {
		clear(r.cols[v])
	}
}

// IncrementYear advances the current year and, when growth factors are
// attached, ages every dollar input column and the weights.
func (r *Records) IncrementYear() error {
	next := r.currentYear + 1
	if r.gf != nil {
		if err := r.age(next); err != nil {
			return err
		}
	}
	if w, ok := r.weights[next]; ok {
		copy(r.cols[S006], w)
	}
	r.currentYear = next
	r.logger.Debug("records advanced",
		zap.String("op", "records.IncrementYear"),
		zap.Int("year", next),
	)
	return nil
}

func (r *Records) age(year int) error {
	factor := func(name string) (float64, error) {
		return r.gf.FactorValue(name, year)
	}
	cache := make(map[string]float64)
	get := func(name string) (float64, error) {
		if f, ok := cache[name]; ok {
			return f, nil
		}
		f, err := factor(name)
		if err != nil {
			return 0, err
		}
		cache[name] = f
		return f, nil
	}
	for v := Var(0); v < FirstCalculated; v++ {
		growth := schema[v].Growth
		if growth == "" {
			continue
		}
		col := r.cols[v]
		switch growth {
		case "SCHC", "SCHE":
			inc, err := get("A" + growth + "I")
			if err != nil {
				return err
			}
			loss, err := get("A" + growth + "L")
			if err != nil {
				return err
			}
			for i, x := range col {
				if x >= 0 {
					col[i] = x * inc
				} else {
					col[i] = x * loss
				}
			}
		default:
			f, err := get(growth)
			if err != nil {
				return err
			}
			for i := range col {
				col[i] *= f
			}
		}
	}
	if _, ok := r.weights[year]; !ok {
		pop, err := get("APOPN")
		if err != nil {
			return err
		}
		for i := range r.cols[S006] {
			r.cols[S006][i] *= pop
		}
	}
	return nil
}

// Snapshot is a saved copy of selected columns.
type Snapshot struct {
	vars []Var
	cols [][]float64
}

// Save copies the given columns, or every input column when vars is empty.
func (r *Records) Save(vars ...Var) Snapshot {
	if len(vars) == 0 {
		vars = InputVars()
	}
	s := Snapshot{vars: vars, cols: make([][]float64, len(vars))}
	for i, v := range vars {
		s.cols[i] = append([]float64(nil), r.cols[v]...)
	}
	return s
}

// Restore writes a snapshot back.
func (r *Records) Restore(s Snapshot) {
	for i, v := range s.vars {
		copy(r.cols[v], s.cols[i])
	}
}

// Clone returns a deep copy of the records.
func (r *Records) Clone() *Records {
	out := *r
	for v := Var(0); v < NumVars; v++ {
		out.cols[v] = append([]float64(nil), r.cols[v]...)
	}
	return &out
}
