// Package calcfunctions implements the fixed sequence of stages that compute
// income tax, payroll tax, and income measures for every filing unit.
//
// Every stage reads policy and record columns and writes calculated columns.
// No stage reads a column written by a later stage, and no stage looks at
// another record.
package calcfunctions

import (
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
)

// BenefitValues is the consumption value of one dollar of each benefit.
type BenefitValues struct {
	Housing float64
	SNAP    float64
	TANF    float64
	Vet     float64
	WIC     float64
	Mcare   float64
	Mcaid   float64
	Other   float64
}

// FullBenefitValues values every benefit at its cost.
var FullBenefitValues = BenefitValues{1, 1, 1, 1, 1, 1, 1, 1}

// Options carries the non-policy inputs of a pipeline pass.
type Options struct {
	// Exact selects the stair-step rules printed on the tax forms instead of
	// smoothed phase-outs.
	Exact    bool
	Benefits BenefitValues
}

// DefaultOptions returns smoothed calculation with benefits valued at cost.
func DefaultOptions() Options {
	return Options{Benefits: FullBenefitValues}
}

// Stage is one step of the pipeline.
type Stage struct {
	Name string
	Run  func(p *policy.Params, r *records.Records, opts Options)
}

// Stages lists the pipeline in execution order.
var Stages = []Stage{
	{"FilingStatus", FilingStatus},
	{"Adjustments", Adjustments},
	{"CapGains", CapGains},
	{"SocSecTaxation", SocSecTaxation},
	{"AGI", AGI},
	{"ItemizedDeductions", ItemizedDeductions},
	{"StandardDeduction", StandardDeduction},
	{"PayrollTaxes", PayrollTaxes},
	{"AdditionalMedicareTax", AdditionalMedicareTax},
	{"PersonalExemptions", PersonalExemptions},
	{"TaxableIncome", TaxableIncome},
	{"QBIDeduction", QBIDeduction},
	{"RegularTax", RegularTax},
	{"CapGainsTax", CapGainsTax},
	{"AMT", AMT},
	{"NonrefundableCredits", NonrefundableCredits},
	{"AMTandCredits", AMTandCredits},
	{"RefundableCredits", RefundableCredits},
	{"LumpSumTax", LumpSumTax},
	{"IITax", IITax},
	{"ExpandedIncome", ExpandedIncome},
	{"AfterTaxIncome", AfterTaxIncome},
}

// CalcAll zeroes the calculated columns and runs every stage.
func CalcAll(p *policy.Params, r *records.Records, opts Options) {
	r.ZeroOutCalculated()
	for _, s := range Stages {
		s.Run(p, r, opts)
	}
}
