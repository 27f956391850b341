package calculator

import (
	"math"

	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/consumption"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

// MTRVars are the inputs an MTR can be computed with respect to.
var MTRVars = []records.Var{
	records.E00200p, records.E00200s, records.E00900p,
	records.E00300, records.E00400, records.E00600, records.E00650,
	records.E01400, records.E01700, records.E02000, records.E02400,
	records.P22250, records.P23250,
	records.E18500, records.E19200, records.E26270, records.E19800, records.E20100,
}

// companions are filing-unit totals that move with a split or component
// input.
var companions = map[records.Var]records.Var{
	records.E00200p: records.E00200,
	records.E00200s: records.E00200,
	records.E00900p: records.E00900,
	records.E00650:  records.E00600,
	records.E01700:  records.E01500,
}

// MTROptions selects how an MTR is computed.
type MTROptions struct {
	// WrtFullCompensation divides earnings MTRs by one plus the employer
	// payroll tax rate.
	WrtFullCompensation bool
	// Negative uses a negative finite difference.
	Negative bool
	// CalcAllAlreadyCalled skips the baseline CalcAll.
	CalcAllAlreadyCalled bool
}

// MTR holds per-record marginal tax rates.
type MTR struct {
	Payroll   []float64
	IncomeTax []float64
	Combined  []float64
}

// ValidMTRVar reports whether v can be used with MarginalTaxRates.
func ValidMTRVar(v records.Var) bool {
	for _, m := range MTRVars {
		if m == v {
			return true
		}
	}
	return false
}

// MarginalTaxRates computes payroll, income and combined MTRs with respect
// to v by finite difference. Inputs are restored and derived columns are
// recomputed at baseline before returning. The MTRs on e00200s are NaN for
// units that are not filing jointly.
func (c *Calculator) MarginalTaxRates(v records.Var, opts MTROptions) (MTR, error) {
	if !ValidMTRVar(v) {
		return MTR{}, taxerr.Records(v.Name(), "not a valid MTR variable")
	}
	if !opts.CalcAllAlreadyCalled || !c.calculated {
		if err := c.CalcAll(); err != nil {
			return MTR{}, err
		}
	}
	n := c.records.Len()
	basePayroll := append([]float64(nil), c.records.Col(records.Payrolltax)...)
	baseIncome := append([]float64(nil), c.records.Col(records.Iitax)...)
	level := append([]float64(nil), c.records.Col(v)...)

	h := constants.MTRFiniteDiff
	if opts.Negative {
		h = -h
	}
	saved := []records.Var{v}
	if comp, ok := companions[v]; ok {
		saved = append(saved, comp)
	}
	respond := c.consumption != nil && c.consumption.HasResponse()
	if respond {
		saved = append(saved, consumption.ResponseVars...)
	}
	snap := c.records.Save(saved...)

	bump := func(col []float64) {
		for i := range col {
			col[i] += h
		}
	}
	bump(c.records.Col(v))
	if comp, ok := companions[v]; ok {
		bump(c.records.Col(comp))
	}
	if respond {
		delta := make([]float64, n)
		for i := range delta {
			delta[i] = h
		}
		if err := c.consumption.Response(c.records, delta); err != nil {
			c.records.Restore(snap)
			return MTR{}, err
		}
	}
	if err := c.CalcAll(); err != nil {
		c.records.Restore(snap)
		return MTR{}, err
	}
	chgPayroll := append([]float64(nil), c.records.Col(records.Payrolltax)...)
	chgIncome := append([]float64(nil), c.records.Col(records.Iitax)...)

	c.records.Restore(snap)
	if err := c.CalcAll(); err != nil {
		return MTR{}, err
	}

	params, err := c.policy.Params()
	if err != nil {
		return MTR{}, err
	}
	earnings := v == records.E00200p || v == records.E00200s
	mars := c.records.Col(records.MARS)
	out := MTR{
		Payroll:   make([]float64, n),
		IncomeTax: make([]float64, n),
		Combined:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		adj := 0.0
		if opts.WrtFullCompensation && earnings {
			if level[i] < params.SSEarningsCap {
				adj = 0.5 * (params.FICASSRate + params.FICAMedRate)
			} else {
				adj = 0.5 * params.FICAMedRate
			}
		}
		denom := h * (1 + adj)
		dPayroll := chgPayroll[i] - basePayroll[i]
		dIncome := chgIncome[i] - baseIncome[i]
		out.Payroll[i] = dPayroll / denom
		out.IncomeTax[i] = dIncome / denom
		out.Combined[i] = (dPayroll + dIncome) / denom
		if v == records.E00200s && mars[i] != constants.MarsJoint {
			out.Payroll[i], out.IncomeTax[i], out.Combined[i] = math.NaN(), math.NaN(), math.NaN()
		}
	}
	c.logger.Debug("computed marginal tax rates",
		zap.String("op", "calculator.MarginalTaxRates"),
		zap.String("variable", v.Name()),
		zap.Int("year", c.CurrentYear()),
	)
	return out, nil
}
