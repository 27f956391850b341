package calcfunctions

import (
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// LumpSumTax levies LST on each person in the filing unit, counting at least
// every adult. Dependent filers are not taxed.
func LumpSumTax(p *policy.Params, r *records.Records, _ Options) {
	dsi, num, xtot := r.Col(records.DSI), r.Col(records.Num), r.Col(records.XTOT)
	out := r.Col(records.LumpsumTax)
	for i := range out {
		out[i] = 0
		if p.LumpSumTax != 0 && dsi[i] != 1 {
			out[i] = p.LumpSumTax * max(num[i], xtot[i])
		}
	}
}

// IITax computes income tax liability after refundable credits and the
// combined income and payroll tax.
func IITax(_ *policy.Params, r *records.Records, _ Options) {
	c09200, refund := r.Col(records.C09200), r.Col(records.Refund)
	lumpsum, payrolltax := r.Col(records.LumpsumTax), r.Col(records.Payrolltax)
	iitax, combined := r.Col(records.Iitax), r.Col(records.Combined)
	for i := range iitax {
		iitax[i] = c09200[i] - refund[i] + lumpsum[i]
		combined[i] = iitax[i] + payrolltax[i]
	}
}

type benefit struct {
	col    []float64
	repeal bool
	value  float64
}

// ExpandedIncome totals the cost and consumption value of benefits, then
// computes expanded income as the income components in AGI before
// exclusions plus non-taxable income, the employer share of FICA, and the
// value of benefits.
func ExpandedIncome(p *policy.Params, r *records.Records, opts Options) {
	bv := opts.Benefits
	benefits := []benefit{
		{r.Col(records.HousingBen), p.BenHousingRepeal, bv.Housing},
		{r.Col(records.SSIBen), p.BenSSIRepeal, 1},
		{r.Col(records.SNAPBen), p.BenSNAPRepeal, bv.SNAP},
		{r.Col(records.TANFBen), p.BenTANFRepeal, bv.TANF},
		{r.Col(records.VetBen), p.BenVetRepeal, bv.Vet},
		{r.Col(records.WICBen), p.BenWICRepeal, bv.WIC},
		{r.Col(records.McareBen), p.BenMcareRepeal, bv.Mcare},
		{r.Col(records.McaidBen), p.BenMcaidRepeal, bv.Mcaid},
		{r.Col(records.OtherBen), p.BenOtherRepeal, bv.Other},
	}
	components := []records.Var{
		records.E00200, records.PenconP, records.PenconS,
		records.E00300, records.E00400, records.E00600, records.E00700, records.E00800,
		records.E00900, records.E01100, records.E01200, records.E01400, records.E01500,
		records.E02000, records.E02100, records.E02300, records.E02400,
		records.P22250, records.P23250, records.Cmbtp,
	}
	cols := make([][]float64, len(components))
	for j, v := range components {
		cols[j] = r.Col(v)
	}
	cost, value := r.Col(records.BenefitCostTotal), r.Col(records.BenefitValueTotal)
	ptaxWas, expanded := r.Col(records.PtaxWas), r.Col(records.ExpandedIncome)
	for i := range expanded {
		cost[i], value[i] = 0, 0
		for _, b := range benefits {
			kept := 1 - mathutil.Bool(b.repeal)
			cost[i] += kept * b.col[i]
			value[i] += kept * b.col[i] * b.value
		}
		total := 0.5*ptaxWas[i] + value[i]
		for _, c := range cols {
			total += c[i]
		}
		expanded[i] = total
	}
}

// AfterTaxIncome is expanded income less combined tax.
func AfterTaxIncome(_ *policy.Params, r *records.Records, _ Options) {
	expanded, combined := r.Col(records.ExpandedIncome), r.Col(records.Combined)
	out := r.Col(records.AftertaxIncome)
	for i := range out {
		out[i] = expanded[i] - combined[i]
	}
}
