package calcfunctions

import (
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// passThrough is the business income used to split taxable income between
// the regular and pass-through rate schedules.
type passThrough struct {
	e00900, e26270, e02000, e00200 float64
}

func unitPassThrough(r *records.Records, i int) passThrough {
	return passThrough{
		e00900: r.Col(records.E00900)[i],
		e26270: r.Col(records.E26270)[i],
		e02000: r.Col(records.E02000)[i],
		e00200: r.Col(records.E00200)[i],
	}
}

// schXYZ returns the Schedule X, Y, or Z tax on taxable income, with the
// eligible pass-through share taxed on the pass-through schedule and stacked
// above or below the rest.
func schXYZ(p *policy.Params, taxable float64, mars int, pt passThrough) float64 {
	passive := p.PTEligibleRatePassive * (pt.e02000 - pt.e26270)
	activeGross := pt.e00900 + pt.e26270
	if activeGross > 0 && p.PTWagesActiveIncome {
		activeGross += pt.e00200
	}
	active := min(p.PTEligibleRateActive*activeGross, pt.e00900+pt.e26270)
	ptTaxinc := mathutil.Pos(passive + active)
	regTaxinc := 0.0
	if ptTaxinc >= taxable {
		ptTaxinc = taxable
	} else {
		regTaxinc = taxable - ptTaxinc
	}
	regBase, ptBase := ptTaxinc, 0.0
	if p.PTTopStacking {
		regBase, ptBase = 0, regTaxinc
	}
	var tax float64
	if regTaxinc > 0 {
		tax += scheduleTax(regTaxinc, mars, regBase, p.IIRates, p.IIBrackets)
	}
	if ptTaxinc > 0 {
		tax += scheduleTax(ptTaxinc, mars, ptBase, p.PTRates, p.PTBrackets)
	}
	return tax
}

// scheduleTax applies a seven-rate schedule to income stacked on top of base.
func scheduleTax(income float64, mars int, base float64, rates [7]float64, brackets [7]policy.MarsVec) float64 {
	var brk [6]float64
	for j := range brk {
		brk[j] = brackets[j].At(mars)
		if base > 0 {
			brk[j] = mathutil.Pos(brk[j] - base)
		}
	}
	tax := rates[0] * min(income, brk[0])
	for j := 1; j < len(brk); j++ {
		tax += rates[j] * min(brk[j]-brk[j-1], mathutil.Pos(income-brk[j-1]))
	}
	return tax + rates[6]*mathutil.Pos(income-brk[5])
}

// RegularTax computes the ordinary-schedule tax c05200 on taxable income.
func RegularTax(p *policy.Params, r *records.Records, _ Options) {
	mars, c04800, c05200 := r.Col(records.MARS), r.Col(records.C04800), r.Col(records.C05200)
	for i := range mars {
		c05200[i] = schXYZ(p, c04800[i], int(mars[i]), unitPassThrough(r, i))
	}
}

// CapGainsTax completes the qualified dividends and capital gain tax
// worksheet, taxing preferred income at the capital gains rates, and sets
// income tax before credits taxbc.
func CapGainsTax(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars, c04800          = r.Col(records.MARS), r.Col(records.C04800)
		c01000, c23650        = r.Col(records.C01000), r.Col(records.C23650)
		p23250, e01100        = r.Col(records.P23250), r.Col(records.E01100)
		e00650, e58990        = r.Col(records.E00650), r.Col(records.E58990)
		e24515, e24518        = r.Col(records.E24515), r.Col(records.E24518)
		c05200                = r.Col(records.C05200)
		dwks10, dwks13        = r.Col(records.Dwks10), r.Col(records.Dwks13)
		dwks14, dwks19        = r.Col(records.Dwks14), r.Col(records.Dwks19)
		c24580, c05700, taxbc = r.Col(records.C24580), r.Col(records.C05700), r.Col(records.Taxbc)
	)
	for i := range mars {
		m := int(mars[i])
		preferred := c01000[i] > 0 || c23650[i] > 0 || p23250[i] > 0 || e01100[i] > 0 || e00650[i] > 0
		if p.CGNoDiff {
			preferred = false
		}
		if !preferred {
			c24580[i] = c05200[i]
			dwks10[i] = mathutil.Pos(min(p23250[i], c23650[i])) + e01100[i]
			dwks13[i], dwks14[i], dwks19[i] = 0, 0, 0
		} else {
			w := gainsWorksheet(p, m, gainsInputs{
				taxable: c04800[i],
				qdiv:    e00650[i],
				invInt:  e58990[i],
				ltcg:    min(p23250[i], c23650[i]),
				cgDist:  e01100[i],
				unrecap: e24515[i],
				rate28:  e24518[i],
			}, unitPassThrough(r, i))
			c24580[i] = min(w.tax, c05200[i])
			dwks10[i], dwks13[i], dwks14[i], dwks19[i] = w.dwks10, w.dwks13, w.dwks14, w.dwks19
		}
		c05700[i] = 0
		taxbc[i] = c05700[i] + c24580[i]
	}
}

type gainsInputs struct {
	taxable, qdiv, invInt, ltcg, cgDist, unrecap, rate28 float64
}

type gainsResult struct {
	tax                            float64
	dwks10, dwks13, dwks14, dwks19 float64
}

func gainsWorksheet(p *policy.Params, mars int, in gainsInputs, pt passThrough) gainsResult {
	dwks1 := in.taxable
	dwks6 := mathutil.Pos(in.qdiv - mathutil.Pos(in.invInt))
	c24510 := in.cgDist
	if in.cgDist <= 0 {
		c24510 = mathutil.Pos(in.ltcg) + in.cgDist
	}
	dwks9 := mathutil.Pos(c24510 - min(0, in.invInt))
	dwks10 := dwks6 + dwks9
	dwks12 := min(dwks9, in.unrecap+in.rate28)
	dwks13 := dwks10 - dwks12
	dwks14 := mathutil.Pos(dwks1 - dwks13)
	dwks16 := min(p.CGBrackets[0].At(mars), dwks1)
	dwks17 := min(dwks14, dwks16)
	dwks18 := mathutil.Pos(dwks1 - dwks10)
	dwks19 := max(dwks17, dwks18)
	dwks20 := dwks16 - dwks17
	lowest := p.CGRates[0] * dwks20

	dwks21 := min(dwks1, dwks13)
	dwks22 := dwks20
	dwks23 := mathutil.Pos(dwks21 - dwks22)
	dwks25 := min(p.CGBrackets[1].At(mars), dwks1)
	dwks26 := dwks19 + dwks20
	dwks27 := mathutil.Pos(dwks25 - dwks26)
	dwks28 := min(dwks23, dwks27)
	dwks29 := p.CGRates[1] * dwks28
	dwks30 := dwks22 + dwks28
	dwks31 := dwks21 - dwks30
	dwks32 := p.CGRates[2] * dwks31
	highest := (p.CGRates[3] - p.CGRates[2]) * mathutil.Pos(dwks31-p.CGBrackets[2].At(mars))

	// unrecaptured section 1250 gain and 28% rate gain
	dwks33 := min(dwks9, in.unrecap)
	dwks36 := mathutil.Pos(dwks10 + dwks19 - dwks1)
	dwks37 := mathutil.Pos(dwks33 - dwks36)
	dwks38 := 0.25 * dwks37
	dwks40 := dwks1 - (dwks19 + dwks20 + dwks28 + dwks31 + dwks37)
	dwks41 := 0.28 * dwks40
	dwks42 := schXYZ(p, dwks19, mars, pt)

	return gainsResult{
		tax:    dwks29 + dwks32 + dwks38 + dwks41 + dwks42 + lowest + highest,
		dwks10: dwks10,
		dwks13: dwks13,
		dwks14: dwks14,
		dwks19: dwks19,
	}
}

// AMT computes alternative minimum taxable income c62100, the AMT owed above
// regular tax c09600, and tax before credits plus AMT c05800.
func AMT(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars, sep, dsi   = r.Col(records.MARS), r.Col(records.Sep), r.Col(records.DSI)
		f6251, ageHead   = r.Col(records.F6251), r.Col(records.AgeHead)
		earned, standard = r.Col(records.Earned), r.Col(records.Standard)
		c00100, e00700   = r.Col(records.C00100), r.Col(records.E00700)
		c04470, c17000   = r.Col(records.C04470), r.Col(records.C17000)
		c18300, c20800   = r.Col(records.C18300), r.Col(records.C20800)
		c21040, cmbtp    = r.Col(records.C21040), r.Col(records.Cmbtp)
		dwks10, dwks13   = r.Col(records.Dwks10), r.Col(records.Dwks13)
		dwks14, dwks19   = r.Col(records.Dwks14), r.Col(records.Dwks19)
		e24515, e62900   = r.Col(records.E24515), r.Col(records.E62900)
		e07300, taxbc    = r.Col(records.E07300), r.Col(records.Taxbc)
		c05700           = r.Col(records.C05700)
		c62100, c09600   = r.Col(records.C62100), r.Col(records.C09600)
		c05800           = r.Col(records.C05800)
	)
	for i := range mars {
		m := int(mars[i])
		amti := c00100[i] - e00700[i]
		if standard[i] == 0 {
			amti = c00100[i] - e00700[i] - c04470[i] +
				mathutil.Pos(min(c17000[i], 0.025*c00100[i])) +
				c18300[i] + c20800[i] - c21040[i]
		}
		amti += cmbtp[i]
		if m == constants.MarsSeparate {
			amti += mathutil.Pos(min(p.AMTExemption.At(m), p.AMTPhaseoutRate*(amti-p.AMTSeparateAddback)))
		}
		c62100[i] = amti

		exemption := mathutil.Pos(p.AMTExemption.At(m) - p.AMTPhaseoutRate*mathutil.Pos(amti-p.AMTExemptionPhaseoutStart.At(m)))
		if dsi[i] == 1 && ageHead[i] != 0 && int(ageHead[i]) < p.AMTChildAgeCap {
			exemption = min(exemption, earned[i]+p.AMTChildExemption)
		}
		base := mathutil.Pos(amti - exemption)
		brk := p.AMTBracket1 / sep[i]
		tentative := amtRateTax(p, base, brk)
		if dwks10[i] > 0 || dwks13[i] > 0 || dwks14[i] > 0 || dwks19[i] > 0 || e24515[i] > 0 {
			tentative = min(tentative, amtGainsTax(p, m, base, brk, dwks10[i], dwks13[i], dwks14[i], dwks19[i], e24515[i]))
		}

		foreign := e07300[i]
		if f6251[i] == 1 {
			foreign = e62900[i]
		}
		c09600[i] = mathutil.Pos(tentative - foreign - mathutil.Pos(taxbc[i]-e07300[i]-c05700[i]))
		c05800[i] = taxbc[i] + c09600[i]
	}
}

// amtRateTax applies the base AMT rate plus the additional rate above the
// bracket.
func amtRateTax(p *policy.Params, income, brk float64) float64 {
	return p.AMTRate1*income + p.AMTRate2*mathutil.Pos(income-brk)
}

// amtGainsTax completes Form 6251 Part III, taxing the preferred income in
// the AMT base at the AMT capital gains rates.
func amtGainsTax(p *policy.Params, mars int, line30, brk, dwks10, dwks13, dwks14, dwks19, e24515 float64) float64 {
	line37 := dwks13
	line38 := e24515
	line39 := min(line37+line38, dwks10)
	line40 := min(line30, line39)
	line41 := mathutil.Pos(line30 - line40)
	line42 := amtRateTax(p, line41, brk)

	line44 := dwks14
	line45 := mathutil.Pos(p.AMTCGBrackets[0].At(mars) - line44)
	line46 := min(line30, line37)
	line47 := min(line45, line46)
	cgtax1 := line47 * p.AMTCGRates[0]
	line48 := line46 - line47
	line52 := line45 + dwks19
	line53 := mathutil.Pos(p.AMTCGBrackets[1].At(mars) - line52)
	line54 := min(line48, line53)
	cgtax2 := line54 * p.AMTCGRates[1]
	line56 := line47 + line54

	var line57, linex2 float64
	if line41 != line56 {
		line57 = line46 - line56
		linex1 := min(line48, mathutil.Pos(p.AMTCGBrackets[2].At(mars)-line44-line45))
		linex2 = mathutil.Pos(line54 - linex1)
	}
	cgtax3 := line57 * p.AMTCGRates[2]
	cgtax4 := linex2 * p.AMTCGRates[3]

	var line59 float64
	if line38 > 0 {
		line59 = mathutil.Pos(line40 - line56 - line57 - linex2)
	}
	line60 := 0.25 * line59

	return line42 + cgtax1 + cgtax2 + cgtax3 + cgtax4 + line60
}
