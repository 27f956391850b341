package calcfunctions

import (
	"math"

	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// Positions in ID_AmountCap_Switch.
const (
	capMedical = iota
	capStateLocal
	capRealEstate
	capCasualty
	capMisc
	capInterest
	capCharity
)

// ItemizedDeductions caps the gross itemized expense amounts at a fraction
// of AGI and then computes Schedule A deductions, the overall limitation,
// and the itemized total c04470.
func ItemizedDeductions(p *policy.Params, r *records.Records, _ Options) {
	itemDedCap(p, r)
	itemDed(p, r)
}

func itemDedCap(p *policy.Params, r *records.Records) {
	type capped struct {
		sw      int
		in, out []float64
	}
	items := []capped{
		{capMedical, r.Col(records.E17500), r.Col(records.E17500Capped)},
		{capStateLocal, r.Col(records.E18400), r.Col(records.E18400Capped)},
		{capRealEstate, r.Col(records.E18500), r.Col(records.E18500Capped)},
		{capCasualty, r.Col(records.G20500), r.Col(records.G20500Capped)},
		{capMisc, r.Col(records.E20400), r.Col(records.E20400Capped)},
		{capInterest, r.Col(records.E19200), r.Col(records.E19200Capped)},
		{capCharity, r.Col(records.E19800), r.Col(records.E19800Capped)},
		{capCharity, r.Col(records.E20100), r.Col(records.E20100Capped)},
	}
	c00100 := r.Col(records.C00100)
	for i := range c00100 {
		limit := mathutil.Pos(p.IDAmountCapRate * c00100[i])
		gross := 0.0
		for _, it := range items {
			it.out[i] = it.in[i]
			if p.IDAmountCapSwitch[it.sw] {
				gross += it.in[i]
			}
		}
		over := gross - limit
		if over <= 0 || c00100[i] <= 0 || gross <= 0 {
			continue
		}
		scale := 1 - over/gross
		for _, it := range items {
			if p.IDAmountCapSwitch[it.sw] {
				it.out[i] = it.in[i] * scale
			}
		}
	}
}

func itemDed(p *policy.Params, r *records.Records) {
	var (
		mars, c00100       = r.Col(records.MARS), r.Col(records.C00100)
		ageHead, ageSpouse = r.Col(records.AgeHead), r.Col(records.AgeSpouse)
		e17500, e18400     = r.Col(records.E17500Capped), r.Col(records.E18400Capped)
		e18500, e19200     = r.Col(records.E18500Capped), r.Col(records.E19200Capped)
		e19800, e20100     = r.Col(records.E19800Capped), r.Col(records.E20100Capped)
		e20400, g20500     = r.Col(records.E20400Capped), r.Col(records.G20500Capped)
		c17000, c18300     = r.Col(records.C17000), r.Col(records.C18300)
		c19200, c19700     = r.Col(records.C19200), r.Col(records.C19700)
		c20500, c20800     = r.Col(records.C20500), r.Col(records.C20800)
		c21040, c21060     = r.Col(records.C21040), r.Col(records.C21060)
		c04470             = r.Col(records.C04470)
	)
	for i := range mars {
		m := int(mars[i])
		posagi := mathutil.Pos(c00100[i])

		// medical
		frt := p.IDMedicalFloor
		if ageHead[i] >= 65 || (m == constants.MarsJoint && ageSpouse[i] >= 65) {
			frt += p.IDMedicalFloorAgedAdd
		}
		c17000[i] = min(mathutil.Pos(e17500[i]-frt*posagi)*(1-p.IDMedicalHC), p.IDMedicalCap.At(m))

		// state and local taxes
		agiFloor := max(c00100[i], 0.0001)
		salt := min(mathutil.Pos(e18400[i])*(1-p.IDStateLocalTaxHC), p.IDStateLocalTaxCap.At(m))
		salt = min(salt, p.IDStateLocalTaxCapRate*agiFloor)
		realEstate := min(e18500[i]*(1-p.IDRealEstateHC), p.IDRealEstateCap.At(m))
		realEstate = min(realEstate, p.IDRealEstateCapRate*agiFloor)
		c18300[i] = min((salt+realEstate)*(1-p.IDAllTaxesHC), p.IDAllTaxesCap.At(m))

		// interest paid
		c19200[i] = min(e19200[i]*(1-p.IDInterestPaidHC), p.IDInterestPaidCap.At(m))

		// charity
		lim30 := min(p.IDCharityNonCashCeiling*posagi, e20100[i])
		charity := min(p.IDCharityCashCeiling*posagi, lim30+e19800[i])
		floor := max(p.IDCharityFloorRate*posagi, p.IDCharityFloor.At(m))
		c19700[i] = min(mathutil.Pos(charity-floor)*(1-p.IDCharityHC), p.IDCharityCap.At(m))

		// casualty
		c20500[i] = min(mathutil.Pos(g20500[i]-p.IDCasualtyFloor*posagi)*(1-p.IDCasualtyHC), p.IDCasualtyCap.At(m))

		// miscellaneous
		c20800[i] = min(mathutil.Pos(e20400[i]-p.IDMiscFloor*posagi)*(1-p.IDMiscHC), p.IDMiscCap.At(m))

		c21060[i] = c17000[i] + c18300[i] + c19200[i] + c19700[i] + c20500[i] + c20800[i]

		// overall limitation on high-income itemizers
		nonlimited := c17000[i] + c20500[i]
		start := p.IDPhaseoutStart.At(m)
		c21040[i] = 0
		if c21060[i] > nonlimited && c00100[i] > start {
			dedmin := p.IDPhaseoutMaxRate * (c21060[i] - nonlimited)
			dedpho := p.IDPhaseoutRate * mathutil.Pos(posagi-start)
			c21040[i] = min(dedmin, dedpho)
		}
		c04470[i] = min(c21060[i]-c21040[i], p.IDCap.At(m))
	}
}

// StandardDeduction computes the basic standard deduction, limited for
// dependent filers and zero for separate filers whose spouse itemizes, plus
// the additional amount for each aged or blind person.
func StandardDeduction(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars, dsi, midr    = r.Col(records.MARS), r.Col(records.DSI), r.Col(records.MIDR)
		earned             = r.Col(records.Earned)
		ageHead, ageSpouse = r.Col(records.AgeHead), r.Col(records.AgeSpouse)
		blindH, blindS     = r.Col(records.BlindHead), r.Col(records.BlindSpouse)
		standard           = r.Col(records.Standard)
	)
	for i := range mars {
		m := int(mars[i])
		basic := p.StandardDeduction.At(m)
		if dsi[i] == 1 {
			basic = min(basic, max(350+earned[i], p.StandardDeductionDep))
		}
		extra := blindH[i] + blindS[i]
		if ageHead[i] >= 65 {
			extra++
		}
		if m == constants.MarsJoint && ageSpouse[i] >= 65 {
			extra++
		}
		standard[i] = basic + extra*p.StandardDeductionAged.At(m)
		if m == constants.MarsSeparate && midr[i] == 1 {
			standard[i] = 0
		}
	}
}

// PersonalExemptions computes the exemption amount before (pre_c04600) and
// after (c04600) the high-income phase-out. Dependent filers get none.
func PersonalExemptions(p *policy.Params, r *records.Records, opts Options) {
	var (
		mars, sep, dsi = r.Col(records.MARS), r.Col(records.Sep), r.Col(records.DSI)
		xtot, nu18     = r.Col(records.XTOT), r.Col(records.Nu18)
		c00100         = r.Col(records.C00100)
		pre, c04600    = r.Col(records.PreC04600), r.Col(records.C04600)
	)
	for i := range mars {
		count := xtot[i]
		if p.NoExemptionUnder18 {
			count = mathutil.Pos(xtot[i] - nu18[i])
		}
		pre[i] = count * p.PersonalExemption
		if dsi[i] == 1 {
			pre[i] = 0
		}
		step := 2500 / sep[i]
		excess := c00100[i] - p.ExemptionPhaseoutStart.At(int(mars[i]))
		var reduction float64
		if opts.Exact {
			reduction = p.ExemptionPhaseoutRate * math.Ceil(mathutil.Pos(excess)/step)
		} else {
			reduction = p.ExemptionPhaseoutRate * excess / step
		}
		c04600[i] = mathutil.Pos(pre[i] * (1 - mathutil.Clamp(reduction, 0, 1)))
	}
}

// TaxableIncome chooses between itemizing and the standard deduction,
// zeroing the one not taken, and computes taxable income before the
// qualified business income deduction.
func TaxableIncome(_ *policy.Params, r *records.Records, _ Options) {
	c00100, c04600 := r.Col(records.C00100), r.Col(records.C04600)
	c04470, standard := r.Col(records.C04470), r.Col(records.Standard)
	c04800 := r.Col(records.C04800)
	for i := range c00100 {
		if c04470[i] > standard[i] {
			standard[i] = 0
		} else {
			c04470[i] = 0
		}
		c04800[i] = mathutil.Pos(c00100[i] - max(c04470[i], standard[i]) - c04600[i])
	}
}

// QBIDeduction computes the qualified business income deduction with its
// wage and property limits and the specified-service phase-out, then
// subtracts it from taxable income.
func QBIDeduction(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars           = r.Col(records.MARS)
		e00900, e26270 = r.Col(records.E00900), r.Col(records.E26270)
		e02100, e27200 = r.Col(records.E02100), r.Col(records.E27200)
		e00650, c01000 = r.Col(records.E00650), r.Col(records.C01000)
		sstb           = r.Col(records.PTSSTBIncome)
		w2, ubia       = r.Col(records.PTBincW2Wages), r.Col(records.PTUbiaProperty)
		qbided, c04800 = r.Col(records.Qbided), r.Col(records.C04800)
	)
	for i := range mars {
		preTaxinc := c04800[i]
		qbinc := mathutil.Pos(e00900[i] + e26270[i] + e02100[i] + e27200[i])
		qbided[i] = 0
		if qbinc > 0 && p.QBIDRate > 0 {
			m := int(mars[i])
			before := qbinc * p.QBIDRate
			lower := p.QBIDTaxincThd.At(m)
			gap := p.QBIDTaxincGap.At(m)
			upper := lower + gap
			wageCap := w2[i] * p.QBIDW2WagesRate
			altCap := w2[i]*p.QBIDAltW2WagesRate + ubia[i]*p.QBIDAltPropertyRate
			fullCap := max(wageCap, altCap)
			service := sstb[i] == 1
			switch {
			case preTaxinc <= lower:
				qbided[i] = before
			case service && preTaxinc >= upper:
				qbided[i] = 0
			case preTaxinc >= upper:
				qbided[i] = min(fullCap, before)
			default:
				prt := (preTaxinc - lower) / gap
				if service {
					before *= 1 - prt
					fullCap *= 1 - prt
				}
				qbided[i] = before - prt*mathutil.Pos(before-fullCap)
			}
			capGains := e00650[i] + c01000[i]
			qbided[i] = min(qbided[i], p.QBIDRate*mathutil.Pos(preTaxinc-capGains))
		}
		c04800[i] = mathutil.Pos(preTaxinc - qbided[i])
	}
}
