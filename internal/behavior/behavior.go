// Package behavior applies partial-equilibrium behavioral responses to a
// reform: substitution and income effects on ordinary income or earnings,
// and a semi-elasticity response of long-term capital gains.
package behavior

import (
	_ "embed"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/calculator"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

//go:embed behavior.json
var defaults []byte

// maxMTR caps the marginal tax rates used in net-of-tax rate ratios.
const maxMTR = 0.99

// Behavior is the elasticity parameter store.
type Behavior struct {
	*paramstore.Store
	logger *zap.Logger
}

// New returns a Behavior with every elasticity zero.
func New(logger *zap.Logger) (*Behavior, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st, err := paramstore.Load("behavior", defaults, paramstore.Options{
		StartYear: constants.StartYear,
		EndYear:   constants.EndYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load behavior parameters: %w", err)
	}
	return &Behavior{Store: st, logger: logger}, nil
}

// Clone returns an independent copy.
func (b *Behavior) Clone() *Behavior {
	return &Behavior{Store: b.Store.Clone(), logger: b.logger}
}

// HasResponse reports whether any elasticity is nonzero in the current year.
func (b *Behavior) HasResponse() bool {
	return b.Scalar("BE_sub") != 0 || b.Scalar("BE_inc") != 0 || b.Scalar("BE_cg") != 0
}

// HasAnyResponse reports whether any elasticity is nonzero in any year.
func (b *Behavior) HasAnyResponse() bool {
	for _, name := range []string{"BE_sub", "BE_inc", "BE_cg"} {
		for _, row := range b.Series(name) {
			if row[0] != 0 {
				return true
			}
		}
	}
	return false
}

// Response returns a copy of reform whose income has been shifted by the
// behavioral response to moving from baseline to reform, recalculated. Both
// calculators must be at the same year and hold the same records. Neither
// argument is modified.
func (b *Behavior) Response(baseline, reform *calculator.Calculator) (*calculator.Calculator, error) {
	year := reform.CurrentYear()
	if baseline.CurrentYear() != year {
		return nil, taxerr.Year(year, "baseline year %d differs from reform year %d", baseline.CurrentYear(), year)
	}
	if baseline.Records().Len() != reform.Records().Len() {
		return nil, taxerr.Records("", "baseline has %d records, reform has %d", baseline.Records().Len(), reform.Records().Len())
	}
	if err := b.SetYear(year); err != nil {
		return nil, err
	}
	base := baseline.Clone()
	ref := reform.Clone()
	for _, c := range []*calculator.Calculator{base, ref} {
		if err := c.CalcAll(); err != nil {
			return nil, err
		}
	}

	sub, inc, cg := b.Scalar("BE_sub"), b.Scalar("BE_inc"), b.Scalar("BE_cg")
	wrtEarnings := b.Scalar("BE_subinc_wrt_earnings") != 0
	n := base.Records().Len()

	var siChange []float64
	if sub != 0 || inc != 0 {
		siChange = make([]float64, n)
		if sub != 0 {
			mtr1, mtr2, err := cappedMTRs(base, ref, records.E00200p, func(m calculator.MTR) []float64 { return m.Combined })
			if err != nil {
				return nil, err
			}
			scale := base.Records().Col(records.C04800)
			if wrtEarnings {
				scale = base.Records().Col(records.E00200)
			}
			for i := range siChange {
				pch := (1-mtr2[i])/(1-mtr1[i]) - 1
				siChange[i] += sub * pch * scale[i]
			}
		}
		if inc != 0 {
			if wrtEarnings {
				ati1 := base.Records().Col(records.AftertaxIncome)
				ati2 := ref.Records().Col(records.AftertaxIncome)
				wages := base.Records().Col(records.E00200)
				for i := range siChange {
					if ati1[i] > 0 {
						siChange[i] += inc * (ati2[i]/ati1[i] - 1) * wages[i]
					}
				}
			} else {
				comb1 := base.Records().Col(records.Combined)
				comb2 := ref.Records().Col(records.Combined)
				for i := range siChange {
					siChange[i] += inc * (comb1[i] - comb2[i])
				}
			}
		}
	}

	var ltcgChange []float64
	if cg != 0 {
		mtr1, mtr2, err := cappedMTRs(base, ref, records.P23250, func(m calculator.MTR) []float64 { return m.IncomeTax })
		if err != nil {
			return nil, err
		}
		ltcg := base.Records().Col(records.P23250)
		ltcgChange = make([]float64, n)
		for i := range ltcgChange {
			if ltcg[i] > 0 {
				ltcgChange[i] = ltcg[i]*math.Exp(cg*(mtr2[i]-mtr1[i])) - ltcg[i]
			}
		}
	}

	out := reform.Clone()
	if siChange != nil {
		var err error
		if wrtEarnings {
			err = updateEarnings(out, siChange)
		} else {
			err = updateOrdinaryIncome(out, ref, siChange)
		}
		if err != nil {
			return nil, err
		}
	}
	if ltcgChange != nil {
		if err := out.IncArray(records.P23250, ltcgChange); err != nil {
			return nil, err
		}
	}
	if err := out.CalcAll(); err != nil {
		return nil, err
	}
	b.logger.Debug("applied behavioral response",
		zap.String("op", "behavior.Response"),
		zap.Int("year", year),
		zap.Float64("BE_sub", sub),
		zap.Float64("BE_inc", inc),
		zap.Float64("BE_cg", cg),
	)
	return out, nil
}

// cappedMTRs returns the selected MTRs under baseline and reform, each
// capped at maxMTR.
func cappedMTRs(base, ref *calculator.Calculator, v records.Var, pick func(calculator.MTR) []float64) ([]float64, []float64, error) {
	m1, err := base.MarginalTaxRates(v, calculator.MTROptions{CalcAllAlreadyCalled: true})
	if err != nil {
		return nil, nil, fmt.Errorf("baseline %s MTR: %w", v.Name(), err)
	}
	m2, err := ref.MarginalTaxRates(v, calculator.MTROptions{CalcAllAlreadyCalled: true})
	if err != nil {
		return nil, nil, fmt.Errorf("reform %s MTR: %w", v.Name(), err)
	}
	r1, r2 := pick(m1), pick(m2)
	for i := range r1 {
		r1[i] = min(r1[i], maxMTR)
		r2[i] = min(r2[i], maxMTR)
	}
	return r1, r2, nil
}

// updateEarnings adds change to the taxpayer's wages.
func updateEarnings(c *calculator.Calculator, change []float64) error {
	if err := c.IncArray(records.E00200, change); err != nil {
		return err
	}
	return c.IncArray(records.E00200p, change)
}

// updateOrdinaryIncome splits a taxable income change across wages, other
// income and itemized deductions in proportion to their shares of AGI less
// itemized deductions. Units with non-positive AGI less itemized deductions
// do not respond. Shares come from calc, which must be calculated.
func updateOrdinaryIncome(c, calc *calculator.Calculator, change []float64) error {
	agi := calc.Records().Col(records.C00100)
	itemized := calc.Records().Col(records.C04470)
	std := calc.Records().Col(records.Standard)
	wages := calc.Records().Col(records.E00200)
	n := len(change)
	dWages, dOther, dItemized := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range change {
		ided := itemized[i]
		if ided < std[i] {
			ided = 0
		}
		base := agi[i] - ided
		if base <= 0 {
			continue
		}
		dWages[i] = change[i] * wages[i] / base
		dOther[i] = change[i] * (agi[i] - wages[i]) / base
		dItemized[i] = change[i] * ided / base
	}
	for _, u := range []struct {
		v     records.Var
		delta []float64
	}{
		{records.E00200, dWages},
		{records.E00200p, dWages},
		{records.E00300, dOther},
		{records.E19200, dItemized},
	} {
		if err := c.IncArray(u.v, u.delta); err != nil {
			return err
		}
	}
	return nil
}
