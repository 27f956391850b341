// Package consumption holds the marginal propensities to consume that shape
// MTR responses and the consumption values assigned to in-kind benefits.
package consumption

import (
	_ "embed"
	"fmt"

	"github.com/iwvelando/taxcalc/internal/calcfunctions"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

//go:embed consumption.json
var defaults []byte

// ResponseVars are the expense inputs that absorb part of an income change.
var ResponseVars = []records.Var{
	records.E17500,
	records.E18400,
	records.E19800,
	records.E20400,
}

// Consumption is the consumption parameter store.
type Consumption struct {
	*paramstore.Store
}

// New loads the default consumption parameters. Nothing in the store is
// indexed.
func New() (*Consumption, error) {
	st, err := paramstore.Load("consumption", defaults, paramstore.Options{
		StartYear: constants.StartYear,
		EndYear:   constants.EndYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load consumption parameters: %w", err)
	}
	if err := st.SetYear(constants.StartYear); err != nil {
		return nil, err
	}
	return &Consumption{Store: st}, nil
}

// Clone returns an independent copy.
func (c *Consumption) Clone() *Consumption {
	return &Consumption{Store: c.Store.Clone()}
}

func mpcName(v records.Var) string { return "MPC_" + v.Name() }

// MPC returns the current-year marginal propensity to consume for v, or
// zero when v is not a response variable.
func (c *Consumption) MPC(v records.Var) float64 {
	name := mpcName(v)
	if !c.Has(name) {
		return 0
	}
	return c.Scalar(name)
}

// HasResponse reports whether any MPC is nonzero in any year.
func (c *Consumption) HasResponse() bool {
	for _, v := range ResponseVars {
		for _, row := range c.Series(mpcName(v)) {
			if row[0] != 0 {
				return true
			}
		}
	}
	return false
}

// Response adds MPC times the per-record income change to each response
// variable.
func (c *Consumption) Response(r *records.Records, incomeChange []float64) error {
	if len(incomeChange) != r.Len() {
		return fmt.Errorf("income change has %d rows, records have %d", len(incomeChange), r.Len())
	}
	for _, v := range ResponseVars {
		mpc := c.MPC(v)
		if mpc == 0 {
			continue
		}
		col := r.Col(v)
		for i, d := range incomeChange {
			col[i] += mpc * d
		}
	}
	return nil
}

// BenefitValues returns the current-year consumption value of a dollar of
// each benefit program.
func (c *Consumption) BenefitValues() calcfunctions.BenefitValues {
	return calcfunctions.BenefitValues{
		Housing: c.Scalar("BEN_housing_value"),
		SNAP:    c.Scalar("BEN_snap_value"),
		TANF:    c.Scalar("BEN_tanf_value"),
		Vet:     c.Scalar("BEN_vet_value"),
		WIC:     c.Scalar("BEN_wic_value"),
		Mcare:   c.Scalar("BEN_mcare_value"),
		Mcaid:   c.Scalar("BEN_mcaid_value"),
		Other:   c.Scalar("BEN_other_value"),
	}
}
