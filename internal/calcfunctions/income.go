package calcfunctions

import (
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/mathutil"
)

// FilingStatus sets the separate-filer divisor sep and the number of adults
// num.
func FilingStatus(_ *policy.Params, r *records.Records, _ Options) {
	mars := r.Col(records.MARS)
	sep, num := r.Col(records.Sep), r.Col(records.Num)
	for i, m := range mars {
		sep[i], num[i] = 1, 1
		switch int(m) {
		case constants.MarsSeparate:
			sep[i] = 2
		case constants.MarsJoint:
			num[i] = 2
		}
	}
}

// earnings holds one filing unit's per-person wage and self-employment
// income.
type earnings struct {
	wasP, wasS float64 // wages plus elective pension deferrals
	seyP, seyS float64
}

// payroll is the per-person payroll tax breakdown of one filing unit.
type payroll struct {
	ssWasP, ssWasS float64
	mcWasP, mcWasS float64
	setaxSSP       float64
	setaxSSS       float64
	setaxP         float64
	setaxS         float64
	extra          float64
}

func (p payroll) wageTax() float64 { return p.ssWasP + p.ssWasS + p.mcWasP + p.mcWasS }

func (p payroll) setax() float64 { return p.setaxP + p.setaxS }

func (p payroll) oasdi() float64 {
	return p.ssWasP + p.ssWasS + p.setaxSSP + p.setaxSSS + p.extra
}

// computePayroll applies FICA to wages and SECA to self-employment income.
// Taxable self-employment income is scaled by the employer-equivalent
// fraction and shares the OASDI maximum with the same person's wages.
func computePayroll(p *policy.Params, e earnings) payroll {
	ss, mc := p.FICASSRate, p.FICAMedRate
	txP := min(p.SSEarningsCap, e.wasP)
	txS := min(p.SSEarningsCap, e.wasS)
	out := payroll{
		ssWasP: ss * txP,
		ssWasS: ss * txS,
		mcWasP: mc * e.wasP,
		mcWasS: mc * e.wasS,
	}
	frac := 1 - 0.5*(ss+mc)
	netP := mathutil.Pos(e.seyP * frac)
	netS := mathutil.Pos(e.seyS * frac)
	out.setaxSSP = ss * min(netP, p.SSEarningsCap-txP)
	out.setaxSSS = ss * min(netS, p.SSEarningsCap-txS)
	out.setaxP = out.setaxSSP + mc*netP
	out.setaxS = out.setaxSSS + mc*netS

	// OASDI on earnings above the upper threshold
	frac = 1 - 0.5*ss
	extraP := mathutil.Pos(e.wasP + mathutil.Pos(e.seyP*frac) - p.SSEarningsThd)
	extraS := mathutil.Pos(e.wasS + mathutil.Pos(e.seyS*frac) - p.SSEarningsThd)
	out.extra = ss * (extraP + extraS)
	return out
}

func unitEarnings(r *records.Records, i int) earnings {
	return earnings{
		wasP: r.Col(records.E00200p)[i] + r.Col(records.PenconP)[i],
		wasS: r.Col(records.E00200s)[i] + r.Col(records.PenconS)[i],
		seyP: r.Col(records.E00900p)[i] + r.Col(records.E02100p)[i] + r.Col(records.K1bx14p)[i],
		seyS: r.Col(records.E00900s)[i] + r.Col(records.E02100s)[i] + r.Col(records.K1bx14s)[i],
	}
}

// Adjustments computes self-employment income and tax, the deduction for
// half of self-employment tax, earned income, and total above-the-line
// adjustments c02900.
func Adjustments(p *policy.Params, r *records.Records, _ Options) {
	var (
		e00200, e00200p, e00200s = r.Col(records.E00200), r.Col(records.E00200p), r.Col(records.E00200s)
		sey, setax, c03260       = r.Col(records.Sey), r.Col(records.Setax), r.Col(records.C03260)
		earned                   = r.Col(records.Earned)
		earnedP, earnedS         = r.Col(records.EarnedP), r.Col(records.EarnedS)
		c02900                   = r.Col(records.C02900)
	)
	type item struct {
		col []float64
		hc  float64
	}
	items := []item{
		{r.Col(records.E03210), p.ALDStudentLoanHC},
		{r.Col(records.E03270), p.ALDSelfEmpHealthInsHC},
		{r.Col(records.E03300), p.ALDKEOGHSEPHC},
		{r.Col(records.E03400), p.ALDEarlyWithdrawHC},
		{r.Col(records.E03500), p.ALDAlimonyPaidHC},
		{r.Col(records.E03220), p.ALDEducatorExpensesHC},
		{r.Col(records.E03230), p.ALDTuitionHC},
		{r.Col(records.E03240), p.ALDDomesticProductionHC},
		{r.Col(records.E03290), p.ALDHSADeductionHC},
		{r.Col(records.E03150), p.ALDIRAContributionsHC},
	}
	keep := 1 - p.ALDSelfEmploymentTaxHC
	for i := range e00200 {
		e := unitEarnings(r, i)
		pt := computePayroll(p, e)
		sey[i] = e.seyP + e.seyS
		setax[i] = pt.setax()
		c03260[i] = keep * 0.5 * setax[i]
		earned[i] = mathutil.Pos(e00200[i] + sey[i] - c03260[i])
		earnedP[i] = mathutil.Pos(e00200p[i] + e.seyP - keep*0.5*pt.setaxP)
		earnedS[i] = mathutil.Pos(e00200s[i] + e.seyS - keep*0.5*pt.setaxS)

		total := c03260[i]
		for _, it := range items {
			total += (1 - it.hc) * it.col[i]
		}
		c02900[i] = total
	}
}

// CapGains computes net capital gains allowed in AGI, the investment income
// exclusion, and the modified income measures ymod1 and ymod.
func CapGains(p *policy.Params, r *records.Records, _ Options) {
	var (
		mars, sep         = r.Col(records.MARS), r.Col(records.Sep)
		p22250, p23250    = r.Col(records.P22250), r.Col(records.P23250)
		e00200, e00300    = r.Col(records.E00200), r.Col(records.E00300)
		e00400, e00600    = r.Col(records.E00400), r.Col(records.E00600)
		e00650, e00700    = r.Col(records.E00650), r.Col(records.E00700)
		e00800, e00900    = r.Col(records.E00800), r.Col(records.E00900)
		e01100, e01200    = r.Col(records.E01100), r.Col(records.E01200)
		e01400, e01700    = r.Col(records.E01400), r.Col(records.E01700)
		e02000, e02100    = r.Col(records.E02000), r.Col(records.E02100)
		e02300, e02400    = r.Col(records.E02300), r.Col(records.E02400)
		e03210, e03230    = r.Col(records.E03210), r.Col(records.E03230)
		e03240, c02900    = r.Col(records.E03240), r.Col(records.C02900)
		c23650, c01000    = r.Col(records.C23650), r.Col(records.C01000)
		invincEc          = r.Col(records.InvincAGIEc)
		ymod1Col, ymodCol = r.Col(records.Ymod1), r.Col(records.Ymod)
	)
	for i := range mars {
		c23650[i] = p23250[i] + p22250[i]
		c01000[i] = max(-3000/sep[i], c23650[i])
		invinc := e00300[i] + e00600[i] + c01000[i] + e01100[i] + e01200[i]
		invincEc[i] = p.ALDInvIncExclusionRate * mathutil.Pos(invinc)

		ymod1 := e00200[i] + e00700[i] + (1-p.ALDAlimonyReceivedHC)*e00800[i] +
			e01400[i] + e01700[i] + invinc - invincEc[i] + e02100[i] + e02300[i] +
			max(e00900[i]+e02000[i], -p.ALDBusinessLossesCap.At(int(mars[i])))
		if p.CGNoDiff {
			// qualified dividends and long-term gains taxed as ordinary
			// income may be partly excluded instead
			pos := mathutil.Pos(e00650[i] + c01000[i])
			excl := min(p.CGExclusion, pos) + p.CGReinvestExclusionRate*mathutil.Pos(pos-p.CGExclusion)
			ymod1 = mathutil.Pos(ymod1 - excl)
			invincEc[i] += excl
		}
		ymod1Col[i] = ymod1
		ymodCol[i] = ymod1 + e00400[i] + 0.5*e02400[i] - c02900[i] +
			(1-p.ALDStudentLoanHC)*e03210[i] + e03230[i] + e03240[i]
	}
}

// SocSecTaxation computes taxable social security benefits c02500 with the
// two-threshold formula.
func SocSecTaxation(p *policy.Params, r *records.Records, _ Options) {
	mars, ymod := r.Col(records.MARS), r.Col(records.Ymod)
	e02400, c02500 := r.Col(records.E02400), r.Col(records.C02500)
	for i := range mars {
		m := int(mars[i])
		thd50, thd85 := p.SSThd50.At(m), p.SSThd85.At(m)
		switch {
		case ymod[i] < thd50:
			c02500[i] = 0
		case ymod[i] < thd85:
			c02500[i] = p.SSPercentage1 * min(ymod[i]-thd50, e02400[i])
		default:
			c02500[i] = min(
				p.SSPercentage2*(ymod[i]-thd85)+p.SSPercentage1*min(e02400[i], thd85-thd50),
				p.SSPercentage2*e02400[i],
			)
		}
	}
}

// AGI computes adjusted gross income c00100.
func AGI(_ *policy.Params, r *records.Records, _ Options) {
	ymod1, c02500 := r.Col(records.Ymod1), r.Col(records.C02500)
	c02900, c00100 := r.Col(records.C02900), r.Col(records.C00100)
	for i := range c00100 {
		c00100[i] = ymod1[i] + c02500[i] - c02900[i]
	}
}
