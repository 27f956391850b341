package calcfunctions

import (
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// PayrollTaxes computes FICA on wages, adds the self-employment tax from
// Adjustments and any OASDI owed above the upper earnings threshold, and
// records the OASDI share.
func PayrollTaxes(p *policy.Params, r *records.Records, _ Options) {
	ptaxWas, extra := r.Col(records.PtaxWas), r.Col(records.ExtraPayrolltax)
	oasdi, payrolltax := r.Col(records.PtaxOASDI), r.Col(records.Payrolltax)
	setax := r.Col(records.Setax)
	for i := range ptaxWas {
		pt := computePayroll(p, unitEarnings(r, i))
		ptaxWas[i] = pt.wageTax()
		extra[i] = pt.extra
		oasdi[i] = pt.oasdi()
		payrolltax[i] = ptaxWas[i] + setax[i] + extra[i]
	}
}

// AdditionalMedicareTax computes the HI surtax on wages and self-employment
// income above the filing-status exclusion and adds it to payroll tax.
func AdditionalMedicareTax(p *policy.Params, r *records.Records, _ Options) {
	mars, e00200, sey := r.Col(records.MARS), r.Col(records.E00200), r.Col(records.Sey)
	amc, payrolltax := r.Col(records.PtaxAMC), r.Col(records.Payrolltax)
	frac := 1 - 0.5*(p.FICAMedRate+p.FICASSRate)
	for i := range mars {
		ec := p.AMEDTExclusion.At(int(mars[i]))
		netSey := mathutil.Pos(sey[i]) * frac
		unused := mathutil.Pos(ec - e00200[i])
		amc[i] = p.AMEDTRate * (mathutil.Pos(e00200[i]-ec) + mathutil.Pos(netSey-unused))
		payrolltax[i] += amc[i]
	}
}
