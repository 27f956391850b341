// Package policy holds the federal income and payroll tax parameters under
// current law and applies reforms to them.
package policy

import (
	_ "embed"
	"fmt"

	"github.com/iwvelando/taxcalc/internal/growfactors"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

//go:embed policy_current_law.json
var currentLaw []byte

// WageIndexed names the parameters indexed by wage growth instead of prices.
var WageIndexed = []string{"SS_Earnings_c", "SS_Earnings_thd"}

// Aliases maps deprecated reform names to current parameter names.
var Aliases = map[string]string{
	"DependentCredit_c": "ODC_c",
}

const cpiOffset = "CPI_offset"

// Policy is the parameter store for tax law. Indexed parameters grow by
// ACPIU-1 plus CPI_offset of the prior year.
type Policy struct {
	*paramstore.Store
	gf *growfactors.GrowFactors
}

// New returns current-law policy over [constants.StartYear, constants.EndYear]
// indexed with gf. A nil gf uses the embedded growth factors.
func New(gf *growfactors.GrowFactors) (*Policy, error) {
	if gf == nil {
		var err error
		if gf, err = growfactors.New(); err != nil {
			return nil, err
		}
	}
	wage, err := gf.WageGrowthRates(constants.StartYear, constants.EndYear)
	if err != nil {
		return nil, fmt.Errorf("wage growth rates: %w", err)
	}
	store, err := paramstore.Load("policy", currentLaw, paramstore.Options{
		StartYear:   constants.StartYear,
		EndYear:     constants.EndYear,
		WageRates:   wage,
		WageIndexed: WageIndexed,
		Aliases:     Aliases,
	})
	if err != nil {
		return nil, err
	}
	p := &Policy{Store: store, gf: gf}
	if err := p.reindex(); err != nil {
		return nil, err
	}
	return p, nil
}

// priceRates returns ACPIU-1 plus the CPI offset in effect for each year.
func (p *Policy) priceRates() ([]float64, error) {
	rates, err := p.gf.PriceInflationRates(p.StartYear(), p.EndYear())
	if err != nil {
		return nil, fmt.Errorf("price inflation rates: %w", err)
	}
	for i, row := range p.Series(cpiOffset) {
		rates[i] += row[0]
	}
	return rates, nil
}

func (p *Policy) reindex() error {
	rates, err := p.priceRates()
	if err != nil {
		return err
	}
	return p.SetIndexingRates(rates, nil)
}

// ImplementReform applies a policy reform. CPI_offset changes are applied
// first so that the remaining changes are indexed with the new rates. On
// error the policy is unchanged.
func (p *Policy) ImplementReform(reform paramstore.Reform) error {
	offsets := make(paramstore.Reform)
	rest := make(paramstore.Reform)
	for year, changes := range reform {
		for name, v := range changes {
			target := offsets
			if name != cpiOffset {
				target = rest
			}
			if target[year] == nil {
				target[year] = make(map[string]any)
			}
			target[year][name] = v
		}
	}

	saved := p.Store.Clone()
	if len(offsets) > 0 {
		if err := p.Store.ImplementReform(offsets); err != nil {
			*p.Store = *saved
			return err
		}
		if err := p.reindex(); err != nil {
			*p.Store = *saved
			return err
		}
	}
	if err := p.Store.ImplementReform(rest); err != nil {
		*p.Store = *saved
		return err
	}
	return nil
}

// Clone returns an independent copy of the policy.
func (p *Policy) Clone() *Policy {
	return &Policy{Store: p.Store.Clone(), gf: p.gf}
}

// GrowFactors returns the growth factors used for indexing.
func (p *Policy) GrowFactors() *growfactors.GrowFactors { return p.gf }

// SetGrowFactors re-indexes the policy with gf, e.g. after growth
// differences are applied.
func (p *Policy) SetGrowFactors(gf *growfactors.GrowFactors) error {
	wage, err := gf.WageGrowthRates(p.StartYear(), p.EndYear())
	if err != nil {
		return fmt.Errorf("wage growth rates: %w", err)
	}
	old := p.gf
	p.gf = gf
	rates, err := p.priceRates()
	if err != nil {
		p.gf = old
		return err
	}
	if err := p.SetIndexingRates(rates, wage); err != nil {
		p.gf = old
		return err
	}
	return nil
}
