package calcfunctions

import (
	"math"

	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// NonrefundableCredits computes the tentative child and dependent care
// credit, child and other-dependent credits, and the education credits
// before any of them is limited by tax liability.
func NonrefundableCredits(p *policy.Params, r *records.Records, opts Options) {
	var (
		mars, num, xtot  = r.Col(records.MARS), r.Col(records.Num), r.Col(records.XTOT)
		n24, f2441       = r.Col(records.N24), r.Col(records.F2441)
		nu18             = r.Col(records.Nu18)
		ageHead          = r.Col(records.AgeHead)
		ageSpouse        = r.Col(records.AgeSpouse)
		c00100, e32800   = r.Col(records.C00100), r.Col(records.E32800)
		earnedP, earnedS = r.Col(records.EarnedP), r.Col(records.EarnedS)
		e87521, e87530   = r.Col(records.E87521), r.Col(records.E87530)
		c33200           = r.Col(records.C33200)
		prectc, preodc   = r.Col(records.Prectc), r.Col(records.Preodc)
		c87668, c87620   = r.Col(records.C87668), r.Col(records.C87620)
		c10960           = r.Col(records.C10960)
	)
	for i := range mars {
		m := int(mars[i])

		// child and dependent care
		expenses := mathutil.Pos(min(e32800[i], min(f2441[i], 2)*p.CDCCCap))
		spouseEarned := earnedP[i]
		if m == constants.MarsJoint {
			spouseEarned = earnedS[i]
		}
		qualified := mathutil.Pos(min(expenses, min(earnedP[i], spouseEarned)))
		steps := mathutil.Pos(c00100[i]-p.CDCCPhaseoutStart) / 2000
		if opts.Exact {
			steps = math.Ceil(steps)
		}
		rate := max(min(0.20, p.CDCCRate), p.CDCCRate-0.01*steps)
		if c00100[i] > p.CDCCPhaseoutStart2 {
			steps2 := (c00100[i] - p.CDCCPhaseoutStart2) / 2000
			if opts.Exact {
				steps2 = math.Ceil(steps2)
			}
			rate = mathutil.Pos(rate - 0.01*steps2)
		}
		c33200[i] = qualified * rate

		// child tax credit and credit for other dependents
		kids := ctcChildren(p, m, n24[i], nu18[i], ageHead[i], ageSpouse[i])
		line1 := p.CTCAmount * kids
		line2 := p.ODCAmount * mathutil.Pos(xtot[i]-kids-num[i])
		line3 := line1 + line2
		var reduction float64
		if ps := p.CTCPhaseoutStart.At(m); line3 > 0 && c00100[i] > ps {
			excess := c00100[i] - ps
			if opts.Exact {
				excess = math.Ceil(excess/1000) * 1000
			}
			reduction = p.CTCPhaseoutRate * excess
		}
		prectc[i], preodc[i] = 0, 0
		if line3 > 0 {
			allowed := mathutil.Pos(line3 - reduction)
			prectc[i] = allowed * line1 / line3
			preodc[i] = allowed * line2 / line3
		}

		// American opportunity credit, split into refundable and
		// nonrefundable parts
		c10960[i], c87668[i] = 0, 0
		if e87521[i] > 0 {
			ratio := educationRatio(mathutil.Pos(90000*num[i]-c00100[i]), 10000*num[i], opts.Exact)
			tentative := ratio * e87521[i]
			c10960[i] = 0.4 * tentative * (1 - p.CRAmOppRefundableHC)
			c87668[i] = 0.6 * tentative * (1 - p.CRAmOppNonRefundableHC)
		}

		// lifetime learning credit
		limit := p.ETCPhaseoutSingle * 1000
		if m == constants.MarsJoint {
			limit = p.ETCPhaseoutMarried * 1000
		}
		llc := 0.2 * min(e87530[i], p.LLCExpenseCap)
		c87620[i] = llc * educationRatio(mathutil.Pos(limit-c00100[i]), 10000*num[i], opts.Exact)
	}
}

// ctcChildren counts the children qualifying for the child tax credit. When
// 17-year-olds qualify they are the members under 18 who are neither n24
// children nor the filers themselves.
func ctcChildren(p *policy.Params, mars int, n24, nu18, ageHead, ageSpouse float64) float64 {
	if !p.CTCInclude17 {
		return n24
	}
	filers := 0.0
	if ageHead > 0 && ageHead < 18 {
		filers++
	}
	if mars == constants.MarsJoint && ageSpouse > 0 && ageSpouse < 18 {
		filers++
	}
	return n24 + mathutil.Pos(nu18-filers-n24)
}

// educationRatio is the allowed fraction of an education credit, rounded to
// three places on the form.
func educationRatio(room, width float64, exact bool) float64 {
	ratio := min(1, room/width)
	if exact {
		ratio = math.Round(ratio*1000) / 1000
	}
	return ratio
}

// AMTandCredits applies the nonrefundable credits in order, each limited to
// the liability left after the credits before it, then adds the net
// investment income tax and other taxes to give c09200.
func AMTandCredits(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars, c00100       = r.Col(records.MARS), r.Col(records.C00100)
		dsi, c05800        = r.Col(records.DSI), r.Col(records.C05800)
		ageHead, ageSpouse = r.Col(records.AgeHead), r.Col(records.AgeSpouse)
		penconP, penconS   = r.Col(records.PenconP), r.Col(records.PenconS)
		e03150, e03300     = r.Col(records.E03150), r.Col(records.E03300)
		e02400, c02500     = r.Col(records.E02400), r.Col(records.C02500)
		e01500, e01700     = r.Col(records.E01500), r.Col(records.E01700)
		e07300, e07240     = r.Col(records.E07300), r.Col(records.E07240)
		e07260, e07400     = r.Col(records.E07260), r.Col(records.E07400)
		e07600, e07200     = r.Col(records.E07600), r.Col(records.E07200)
		p08000             = r.Col(records.P08000)
		c33200             = r.Col(records.C33200)
		prectc, preodc     = r.Col(records.Prectc), r.Col(records.Preodc)
		c87668, c87620     = r.Col(records.C87668), r.Col(records.C87620)
		e00300, e00600     = r.Col(records.E00300), r.Col(records.E00600)
		c01000, e02000     = r.Col(records.C01000), r.Col(records.E02000)
		e26270             = r.Col(records.E26270)
		e09700, e09800     = r.Col(records.E09700), r.Col(records.E09800)
		e09900             = r.Col(records.E09900)
		c07300, c07180     = r.Col(records.C07300), r.Col(records.C07180)
		c07230, c07240     = r.Col(records.C07230), r.Col(records.C07240)
		c07220, odc        = r.Col(records.C07220), r.Col(records.ODC)
		c07260, c07400     = r.Col(records.C07260), r.Col(records.C07400)
		c07600, c07200     = r.Col(records.C07600), r.Col(records.C07200)
		c08000, c07100     = r.Col(records.C08000), r.Col(records.C07100)
		c08800, niit       = r.Col(records.C08800), r.Col(records.NIIT)
		othertaxes, c09200 = r.Col(records.Othertaxes), r.Col(records.C09200)
	)
	type credit struct {
		out       []float64
		tentative func(i int) float64
	}
	credits := []credit{
		{c07300, func(i int) float64 { return e07300[i] * (1 - p.CRForeignTaxHC) }},
		{c07180, func(i int) float64 {
			if p.CDCCRefundable {
				return 0
			}
			return c33200[i]
		}},
		{c07230, func(i int) float64 { return (c87620[i] + c87668[i]) * (1 - p.CREducationHC) }},
		{c07240, func(i int) float64 {
			// samples without contribution detail carry only the reported credit
			credit := e07240[i]
			m := int(mars[i])
			ira := e03150[i] + e03300[i]
			if penconP[i]+penconS[i]+ira > 0 {
				head, spouse := penconP[i]+ira, 0.0
				if m == constants.MarsJoint {
					head, spouse = penconP[i]+ira/2, penconS[i]+ira/2
				}
				credit = saversCredit(p, m, c00100[i], dsi[i] == 1, ageHead[i], ageSpouse[i], head, spouse)
			}
			return credit * (1 - p.CRRetirementSavingsHC)
		}},
		{c07220, func(i int) float64 { return prectc[i] }},
		{odc, func(i int) float64 { return preodc[i] }},
		{c07260, func(i int) float64 { return e07260[i] * (1 - p.CRResidentialEnergyHC) }},
		{c07400, func(i int) float64 { return e07400[i] * (1 - p.CRGeneralBusinessHC) }},
		{c07600, func(i int) float64 { return e07600[i] * (1 - p.CRMinimumTaxHC) }},
		{c07200, func(i int) float64 {
			// filers under 65 keep the reported disability credit
			credit := e07200[i]
			m := int(mars[i])
			if ageHead[i] >= 65 || (m == constants.MarsJoint && ageSpouse[i] >= 65) {
				nontaxable := mathutil.Pos(e02400[i]-c02500[i]) + mathutil.Pos(e01500[i]-e01700[i])
				credit = elderlyCredit(m, ageHead[i], ageSpouse[i], c00100[i], nontaxable)
			}
			return credit * (1 - p.CRSchRHC)
		}},
		{c08000, func(i int) float64 { return p08000[i] * (1 - p.CROtherCreditsHC) }},
	}
	for i := range mars {
		avail := mathutil.Pos(c05800[i])
		total := 0.0
		for _, c := range credits {
			c.out[i] = min(mathutil.Pos(c.tentative(i)), avail)
			avail -= c.out[i]
			total += c.out[i]
		}
		c07100[i] = total
		c08800[i] = mathutil.Pos(c05800[i] - c07100[i])

		nii := e00300[i] + e00600[i] + c01000[i] + e02000[i]
		if !p.NIITPTTaxed {
			nii -= e26270[i]
		}
		niit[i] = p.NIITRate * min(mathutil.Pos(nii), mathutil.Pos(c00100[i]-p.NIITThd.At(int(mars[i]))))
		othertaxes[i] = e09700[i] + e09800[i] + e09900[i] + niit[i]
		c09200[i] = c08800[i] + othertaxes[i]
	}
}

// saversCredit is the retirement savings contributions credit before the
// liability limit. Each spouse's contributions are capped separately.
func saversCredit(p *policy.Params, mars int, agi float64, dependent bool, ageHead, ageSpouse, head, spouse float64) float64 {
	if dependent {
		return 0
	}
	rate := 0.0
	for j, brk := range p.SaversCreditBrk {
		if agi <= brk.At(mars) {
			rate = p.SaversCreditRate[j]
			break
		}
	}
	adult := func(age float64) bool { return age == 0 || age >= 18 }
	total := 0.0
	if adult(ageHead) {
		total += min(mathutil.Pos(head), p.SaversCreditCap)
	}
	if mars == constants.MarsJoint && adult(ageSpouse) {
		total += min(mathutil.Pos(spouse), p.SaversCreditCap)
	}
	return rate * total
}

// elderlyCredit is the Schedule R credit for the elderly before the
// liability limit: 15% of the base amount left after nontaxable benefits and
// half of AGI over the filing-status threshold.
func elderlyCredit(mars int, ageHead, ageSpouse, agi, nontaxable float64) float64 {
	headOld := ageHead >= 65
	spouseOld := mars == constants.MarsJoint && ageSpouse >= 65
	if !headOld && !spouseOld {
		return 0
	}
	base, thd := 5000.0, 7500.0
	switch mars {
	case constants.MarsJoint:
		thd = 10000
		if headOld && spouseOld {
			base = 7500
		}
	case constants.MarsSeparate:
		base, thd = 3750, 5000
	}
	return 0.15 * mathutil.Pos(base-nontaxable-0.5*mathutil.Pos(agi-thd))
}

// RefundableCredits computes the earned income credit c59660, the
// additional child tax credit c11070, the refundable child tax credit
// supplement, the refundable care credit and the recovery rebate, and sums
// them with the refundable education credit into refund.
func RefundableCredits(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars, dsi, eic     = r.Col(records.MARS), r.Col(records.DSI), r.Col(records.EIC)
		num, n24, nu06     = r.Col(records.Num), r.Col(records.N24), r.Col(records.Nu06)
		nu18, c33200       = r.Col(records.Nu18), r.Col(records.C33200)
		ageHead, ageSpouse = r.Col(records.AgeHead), r.Col(records.AgeSpouse)
		earned, c00100     = r.Col(records.Earned), r.Col(records.C00100)
		e00300, e00400     = r.Col(records.E00300), r.Col(records.E00400)
		e00600, c01000     = r.Col(records.E00600), r.Col(records.C01000)
		e02000, e26270     = r.Col(records.E02000), r.Col(records.E26270)
		prectc, c07220     = r.Col(records.Prectc), r.Col(records.C07220)
		ptaxWas, c03260    = r.Col(records.PtaxWas), r.Col(records.C03260)
		e09800, e11200     = r.Col(records.E09800), r.Col(records.E11200)
		c10960             = r.Col(records.C10960)
		c59660, c11070     = r.Col(records.C59660), r.Col(records.C11070)
		rrc, refund        = r.Col(records.RRC), r.Col(records.Refund)
		ctcNew, cdccRefund = r.Col(records.CTCNew), r.Col(records.CDCCRefund)
	)
	ageEligible := func(age float64) bool {
		return age == 0 || (int(age) >= p.EITCMinAge && int(age) <= p.EITCMaxAge)
	}
	for i := range mars {
		m := int(mars[i])
		kids := int(eic[i])

		// earned income credit
		ps := p.EITCPhaseoutStart.At(kids)
		if m == constants.MarsJoint {
			ps += p.EITCPhaseoutMarriedAddon.At(kids)
		}
		eitc := eitcAmount(p.EITCBasicFrac, p.EITCRate.At(kids), earned[i], p.EITCMax.At(kids), ps, c00100[i], p.EITCPhaseoutRate.At(kids))
		if kids == 0 {
			eligible := ageEligible(ageHead[i])
			if m == constants.MarsJoint {
				eligible = eligible || ageEligible(ageSpouse[i])
			}
			if !eligible {
				eitc = 0
			}
		}
		if (m == constants.MarsSeparate && !p.EITCSepFilersEligible) || dsi[i] == 1 {
			eitc = 0
		}
		if eitc > 0 {
			invinc := e00400[i] + e00300[i] + e00600[i] + mathutil.Pos(c01000[i]) + mathutil.Pos(e02000[i]-e26270[i])
			if invinc > p.EITCInvestIncomeCap {
				eitc = mathutil.Pos(eitc - p.EITCExcessInvestIncomeRate*(invinc-p.EITCInvestIncomeCap))
			}
		}
		c59660[i] = eitc

		// additional child tax credit
		ctcKids := ctcChildren(p, m, n24[i], nu18[i], ageHead[i], ageSpouse[i])
		c11070[i] = 0
		switch {
		case p.CTCRefundable:
			c11070[i] = mathutil.Pos(prectc[i] - c07220[i])
		case ctcKids > 0:
			line5 := min(prectc[i]-c07220[i], p.ACTCCap*ctcKids)
			rate := p.ACTCRate
			if nu06[i] > 0 {
				rate += p.ACTCRateBonusUnder6
			}
			line8 := rate * mathutil.Pos(earned[i]-p.ACTCIncomeThd)
			switch {
			case int(ctcKids) < p.ACTCChildNum:
				if line8 > 0 {
					c11070[i] = min(line5, line8)
				}
			case line8 >= line5:
				c11070[i] = line5
			default:
				// families with more children may use payroll taxes paid
				ssTax := 0.5*ptaxWas[i] + c03260[i] + e09800[i]
				excess := mathutil.Pos(ssTax - (c59660[i] + e11200[i]))
				c11070[i] = min(line5, max(line8, excess))
			}
			c11070[i] = mathutil.Pos(c11070[i])
		}

		// refundable child tax credit supplement
		ctcNew[i] = 0
		if ctcKids > 0 && p.CTCNewAmount+p.CTCNewUnder6Bonus > 0 {
			agi := mathutil.Pos(c00100[i])
			gross := p.CTCNewAmount*ctcKids + p.CTCNewUnder6Bonus*min(nu06[i], ctcKids)
			ctcNew[i] = mathutil.Pos(gross - p.CTCNewPhaseoutRate*mathutil.Pos(agi-p.CTCNewPhaseoutStart.At(m)))
		}

		// refundable care credit
		cdccRefund[i] = 0
		if p.CDCCRefundable {
			cdccRefund[i] = c33200[i]
		}

		// recovery rebate
		rrc[i] = 0
		if dsi[i] != 1 {
			gross := p.RRCAmount*num[i] + p.RRCKidAmount*n24[i]
			rrc[i] = mathutil.Pos(gross - p.RRCPhaseoutRate*mathutil.Pos(c00100[i]-p.RRCPhaseoutStart.At(m)))
		}

		refund[i] = c59660[i] + c11070[i] + c10960[i] + ctcNew[i] + cdccRefund[i] + rrc[i]
	}
}

// eitcAmount phases the credit in with earnings and out with the larger of
// earnings and AGI above the phase-out start.
func eitcAmount(basicFrac, phaseinRate, earnings, maxAmount, phaseoutStart, agi, phaseoutRate float64) float64 {
	eitc := min(basicFrac*maxAmount+(1-basicFrac)*phaseinRate*earnings, maxAmount)
	if earnings > phaseoutStart || agi > phaseoutStart {
		reduced := mathutil.Pos(maxAmount - phaseoutRate*mathutil.Pos(max(earnings, agi)-phaseoutStart))
		eitc = min(eitc, reduced)
	}
	return eitc
}
