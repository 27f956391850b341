// Package calculator ties a policy, a set of records and the optional
// consumption and growth modules together and runs the tax calculation.
package calculator

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/calcfunctions"
	"github.com/iwvelando/taxcalc/internal/consumption"
	"github.com/iwvelando/taxcalc/internal/growfactors"
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/taxerr"
)

// GrowModel adjusts growth factors as the calculator moves between years.
// Grow is called with the year being entered and returns the growth factors
// to use from that year on, or nil to keep the current ones.
type GrowModel interface {
	Grow(year int, c *Calculator) (*growfactors.GrowFactors, error)
}

// Options configures a Calculator.
type Options struct {
	// Consumption supplies MPCs and benefit values. Nil means no
	// consumption response and full benefit values.
	Consumption *consumption.Consumption
	GrowModel   GrowModel
	// Exact selects the statutory step functions over smoothed ones.
	Exact bool
}

// Calculator owns a policy and records. Callers must not modify either
// after handing them to New.
type Calculator struct {
	logger      *zap.Logger
	policy      *policy.Policy
	records     *records.Records
	consumption *consumption.Consumption
	growModel   GrowModel
	exact       bool
	calculated  bool
}

// New builds a calculator. Policy is moved forward to the records year when
// behind, and records are advanced to the policy year when behind.
func New(logger *zap.Logger, pol *policy.Policy, recs *records.Records, opts Options) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pol == nil || recs == nil {
		return nil, fmt.Errorf("calculator requires both policy and records")
	}
	c := &Calculator{
		logger:      logger,
		policy:      pol,
		records:     recs,
		consumption: opts.Consumption,
		growModel:   opts.GrowModel,
		exact:       opts.Exact,
	}
	if recs.CurrentYear() > pol.EndYear() {
		return nil, taxerr.Year(recs.CurrentYear(), "records year is after last policy year %d", pol.EndYear())
	}
	if recs.CurrentYear() > pol.CurrentYear() {
		if err := pol.SetYear(recs.CurrentYear()); err != nil {
			return nil, err
		}
	}
	for recs.CurrentYear() < pol.CurrentYear() {
		if err := recs.IncrementYear(); err != nil {
			return nil, fmt.Errorf("advancing records to %d: %w", pol.CurrentYear(), err)
		}
	}
	if c.consumption != nil {
		if err := c.consumption.SetYear(pol.CurrentYear()); err != nil {
			return nil, err
		}
	}
	logger.Debug("calculator created",
		zap.String("op", "calculator.New"),
		zap.Int("year", c.CurrentYear()),
		zap.Int("records", recs.Len()),
	)
	return c, nil
}

// Policy returns the calculator's policy.
func (c *Calculator) Policy() *policy.Policy { return c.policy }

// Records returns the calculator's records.
func (c *Calculator) Records() *records.Records { return c.records }

// Consumption returns the consumption module, or nil.
func (c *Calculator) Consumption() *consumption.Consumption { return c.consumption }

// CurrentYear returns the tax year being calculated.
func (c *Calculator) CurrentYear() int { return c.policy.CurrentYear() }

// DataYear returns the year of the input sample.
func (c *Calculator) DataYear() int { return c.records.DataYear() }

// Exact reports whether exact calculations are used.
func (c *Calculator) Exact() bool { return c.exact }

// Calculated reports whether the derived columns reflect the current inputs.
func (c *Calculator) Calculated() bool { return c.calculated }

// Clone returns a deep copy. The GrowModel is shared.
func (c *Calculator) Clone() *Calculator {
	out := *c
	out.policy = c.policy.Clone()
	out.records = c.records.Clone()
	if c.consumption != nil {
		out.consumption = c.consumption.Clone()
	}
	return &out
}

func (c *Calculator) options() calcfunctions.Options {
	opts := calcfunctions.DefaultOptions()
	opts.Exact = c.exact
	if c.consumption != nil {
		opts.Benefits = c.consumption.BenefitValues()
	}
	return opts
}

// CalcAll runs every pipeline stage for the current year. If any calculated
// value is not finite the derived columns are zeroed and a NumericOverflow
// error naming the first offending record is returned.
func (c *Calculator) CalcAll() error {
	params, err := c.policy.Params()
	if err != nil {
		return fmt.Errorf("policy parameters for %d: %w", c.CurrentYear(), err)
	}
	c.calculated = false
	calcfunctions.CalcAll(params, c.records, c.options())
	if err := c.checkFinite(); err != nil {
		c.records.ZeroOutCalculated()
		c.logger.Error("calculation produced non-finite values",
			zap.String("op", "calculator.CalcAll"),
			zap.Int("year", c.CurrentYear()),
			zap.Error(err),
		)
		return err
	}
	c.calculated = true
	return nil
}

func (c *Calculator) checkFinite() error {
	recid := c.records.Col(records.RECID)
	for _, v := range records.CalculatedVars() {
		for i, x := range c.records.Col(v) {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return taxerr.Overflow(v.Name(), c.CurrentYear(), "value %v for RECID %d", x, int64(recid[i]))
			}
		}
	}
	return nil
}

// IncrementYear moves the calculator to the next year, consulting the
// GrowModel first.
func (c *Calculator) IncrementYear() error {
	next := c.CurrentYear() + 1
	if next > c.policy.EndYear() {
		return taxerr.Year(next, "cannot advance past last policy year %d", c.policy.EndYear())
	}
	if c.growModel != nil {
		gf, err := c.growModel.Grow(next, c)
		if err != nil {
			return fmt.Errorf("grow model for %d: %w", next, err)
		}
		if gf != nil {
			if err := c.policy.SetGrowFactors(gf); err != nil {
				return err
			}
			if c.records.Aging() {
				c.records.SetGrowFactors(gf)
			}
		}
	}
	if err := c.records.IncrementYear(); err != nil {
		return fmt.Errorf("aging records to %d: %w", next, err)
	}
	if err := c.policy.SetYear(next); err != nil {
		return err
	}
	if c.consumption != nil {
		if err := c.consumption.SetYear(next); err != nil {
			return err
		}
	}
	c.calculated = false
	c.logger.Debug("calculator advanced",
		zap.String("op", "calculator.IncrementYear"),
		zap.Int("year", next),
	)
	return nil
}

// AdvanceToYear increments the calculator until year. Earlier years are an
// OutOfRangeYear error.
func (c *Calculator) AdvanceToYear(year int) error {
	if year < c.CurrentYear() {
		return taxerr.Year(year, "cannot move back from %d", c.CurrentYear())
	}
	if year > c.policy.EndYear() {
		return taxerr.Year(year, "cannot advance past last policy year %d", c.policy.EndYear())
	}
	for c.CurrentYear() < year {
		if err := c.IncrementYear(); err != nil {
			return err
		}
	}
	return nil
}

// Array returns a copy of the named column.
func (c *Calculator) Array(name string) ([]float64, error) {
	col, err := c.records.Column(name)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), col...), nil
}

// IncArray adds delta element-wise to the input column v. Derived columns
// are stale until the next CalcAll.
func (c *Calculator) IncArray(v records.Var, delta []float64) error {
	if v >= records.FirstCalculated {
		return taxerr.Records(v.Name(), "only input variables can be changed")
	}
	col := c.records.Col(v)
	if len(delta) != len(col) {
		return taxerr.Records(v.Name(), "delta has %d rows, records have %d", len(delta), len(col))
	}
	for i, d := range delta {
		col[i] += d
	}
	c.calculated = false
	return nil
}
