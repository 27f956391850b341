package records

// Record variables. Input variables come first and are followed by the
// variables written by the calculation pipeline.
const (
	RECID Var = iota
	MARS
	FLPDYR
	XTOT
	DSI
	EIC
	MIDR
	F2441
	F6251
	N24
	Nu06
	Nu18
	N21
	ElderlyDependents
	BlindHead
	BlindSpouse
	AgeHead
	AgeSpouse
	AGIBin
	PTSSTBIncome
	S006
	E00200
	E00200p
	E00200s
	PenconP
	PenconS
	E00300
	E00400
	E00600
	E00650
	E00700
	E00800
	E00900
	E00900p
	E00900s
	E01100
	E01200
	E01400
	E01500
	E01700
	E02000
	E02100
	E02100p
	E02100s
	E02300
	E02400
	E03150
	E03210
	E03220
	E03230
	E03240
	E03270
	E03290
	E03300
	E03400
	E03500
	E07200
	E07240
	E07260
	E07300
	E07400
	E07600
	E09700
	E09800
	E09900
	E11200
	E17500
	E18400
	E18500
	E19200
	E19800
	E20100
	E20400
	G20500
	E24515
	E24518
	E26270
	E27200
	E32800
	E58990
	E62900
	E87521
	E87530
	P08000
	P22250
	P23250
	K1bx14p
	K1bx14s
	Cmbtp
	PTBincW2Wages
	PTUbiaProperty
	HousingBen
	SSIBen
	SNAPBen
	TANFBen
	VetBen
	WICBen
	McareBen
	McaidBen
	OtherBen

	// calculated variables
	Sep
	Num
	Sey
	Earned
	EarnedP
	EarnedS
	PtaxWas
	Setax
	ExtraPayrolltax
	PtaxOASDI
	PtaxAMC
	Payrolltax
	C03260
	C02900
	C23650
	C01000
	InvincAGIEc
	Ymod1
	Ymod
	C02500
	C00100
	E17500Capped
	E18400Capped
	E18500Capped
	E19200Capped
	E19800Capped
	E20100Capped
	E20400Capped
	G20500Capped
	C17000
	C18300
	C19200
	C19700
	C20500
	C20800
	C21040
	C21060
	C04470
	Standard
	PreC04600
	C04600
	Qbided
	C04800
	C05200
	Dwks10
	Dwks13
	Dwks14
	Dwks19
	C24580
	C05700
	Taxbc
	C62100
	C09600
	C05800
	C33200
	Prectc
	Preodc
	C87668
	C87620
	C10960
	C07300
	C07180
	C07230
	C07240
	C07220
	ODC
	C07260
	C07400
	C07600
	C07200
	C08000
	C07100
	C08800
	NIIT
	Othertaxes
	C09200
	C59660
	C11070
	RRC
	CTCNew
	CDCCRefund
	Refund
	LumpsumTax
	Iitax
	Combined
	BenefitCostTotal
	BenefitValueTotal
	ExpandedIncome
	AftertaxIncome

	NumVars
)

// FirstCalculated is the first calculated variable.
const FirstCalculated = Sep

var schema = [NumVars]VarInfo{
	RECID: {Name: "RECID", Integer: true, Input: true, Growth: "", Desc: "Unique filing unit identifier"},
	MARS: {Name: "MARS", Integer: true, Input: true, Growth: "", Desc: "Filing status: 1 single, 2 joint, 3 separate, 4 head of household, 5 widow"},
	FLPDYR: {Name: "FLPDYR", Integer: true, Input: true, Growth: "", Desc: "Calendar year of the return"},
	XTOT: {Name: "XTOT", Integer: true, Input: true, Growth: "", Desc: "Total number of exemptions"},
	DSI: {Name: "DSI", Integer: true, Input: true, Growth: "", Desc: "1 if claimed as a dependent on another return"},
	EIC: {Name: "EIC", Integer: true, Input: true, Growth: "", Desc: "Number of EITC-qualifying children (0 to 3)"},
	MIDR: {Name: "MIDR", Integer: true, Input: true, Growth: "", Desc: "1 if separately filing spouse itemizes"},
	F2441: {Name: "f2441", Integer: true, Input: true, Growth: "", Desc: "Number of child/dependent-care qualifying persons"},
	F6251: {Name: "f6251", Integer: true, Input: true, Growth: "", Desc: "1 if Form 6251 (AMT) attached"},
	N24: {Name: "n24", Integer: true, Input: true, Growth: "", Desc: "Number of children eligible for the child tax credit"},
	Nu06: {Name: "nu06", Integer: true, Input: true, Growth: "", Desc: "Number of dependents under 6"},
	Nu18: {Name: "nu18", Integer: true, Input: true, Growth: "", Desc: "Number of people under 18"},
	N21: {Name: "n21", Integer: true, Input: true, Growth: "", Desc: "Number of people 21 or older"},
	ElderlyDependents: {Name: "elderly_dependents", Integer: true, Input: true, Growth: "", Desc: "Number of dependents 65 or older"},
	BlindHead: {Name: "blind_head", Integer: true, Input: true, Growth: "", Desc: "1 if taxpayer is blind"},
	BlindSpouse: {Name: "blind_spouse", Integer: true, Input: true, Growth: "", Desc: "1 if spouse is blind"},
	AgeHead: {Name: "age_head", Integer: true, Input: true, Growth: "", Desc: "Age of taxpayer in years"},
	AgeSpouse: {Name: "age_spouse", Integer: true, Input: true, Growth: "", Desc: "Age of spouse in years"},
	AGIBin: {Name: "agi_bin", Integer: true, Input: true, Growth: "", Desc: "Historical AGI category used in sampling"},
	PTSSTBIncome: {Name: "PT_SSTB_income", Integer: true, Input: true, Growth: "", Desc: "1 if pass-through income is from a specified service trade or business"},
	S006: {Name: "s006", Integer: false, Input: true, Growth: "", Desc: "Filing unit sampling weight"},
	E00200: {Name: "e00200", Integer: false, Input: true, Growth: "AWAGE", Desc: "Wages, salaries, and tips for filing unit net of pension contributions"},
	E00200p: {Name: "e00200p", Integer: false, Input: true, Growth: "AWAGE", Desc: "Wages, salaries, and tips for taxpayer"},
	E00200s: {Name: "e00200s", Integer: false, Input: true, Growth: "AWAGE", Desc: "Wages, salaries, and tips for spouse"},
	PenconP: {Name: "pencon_p", Integer: false, Input: true, Growth: "AWAGE", Desc: "Contributions to defined-contribution pension plans for taxpayer"},
	PenconS: {Name: "pencon_s", Integer: false, Input: true, Growth: "AWAGE", Desc: "Contributions to defined-contribution pension plans for spouse"},
	E00300: {Name: "e00300", Integer: false, Input: true, Growth: "AINTS", Desc: "Taxable interest income"},
	E00400: {Name: "e00400", Integer: false, Input: true, Growth: "AINTS", Desc: "Tax-exempt interest income"},
	E00600: {Name: "e00600", Integer: false, Input: true, Growth: "ADIVS", Desc: "Ordinary dividends included in AGI"},
	E00650: {Name: "e00650", Integer: false, Input: true, Growth: "ADIVS", Desc: "Qualified dividends included in ordinary dividends"},
	E00700: {Name: "e00700", Integer: false, Input: true, Growth: "ATXPY", Desc: "Taxable refunds of state and local income taxes"},
	E00800: {Name: "e00800", Integer: false, Input: true, Growth: "ATXPY", Desc: "Alimony received"},
	E00900: {Name: "e00900", Integer: false, Input: true, Growth: "SCHC", Desc: "Schedule C business net profit/loss for filing unit"},
	E00900p: {Name: "e00900p", Integer: false, Input: true, Growth: "SCHC", Desc: "Schedule C business net profit/loss for taxpayer"},
	E00900s: {Name: "e00900s", Integer: false, Input: true, Growth: "SCHC", Desc: "Schedule C business net profit/loss for spouse"},
	E01100: {Name: "e01100", Integer: false, Input: true, Growth: "ACGNS", Desc: "Capital gain distributions not reported on Schedule D"},
	E01200: {Name: "e01200", Integer: false, Input: true, Growth: "ACGNS", Desc: "Other net gain/loss from Form 4797"},
	E01400: {Name: "e01400", Integer: false, Input: true, Growth: "ATXPY", Desc: "Taxable IRA distributions"},
	E01500: {Name: "e01500", Integer: false, Input: true, Growth: "ATXPY", Desc: "Total pensions and annuities"},
	E01700: {Name: "e01700", Integer: false, Input: true, Growth: "ATXPY", Desc: "Taxable pensions and annuities"},
	E02000: {Name: "e02000", Integer: false, Input: true, Growth: "SCHE", Desc: "Schedule E total rental, royalty, partnership, S-corporation income/loss"},
	E02100: {Name: "e02100", Integer: false, Input: true, Growth: "ASCHF", Desc: "Farm net income/loss for filing unit"},
	E02100p: {Name: "e02100p", Integer: false, Input: true, Growth: "ASCHF", Desc: "Farm net income/loss for taxpayer"},
	E02100s: {Name: "e02100s", Integer: false, Input: true, Growth: "ASCHF", Desc: "Farm net income/loss for spouse"},
	E02300: {Name: "e02300", Integer: false, Input: true, Growth: "AUCOMP", Desc: "Unemployment insurance benefits"},
	E02400: {Name: "e02400", Integer: false, Input: true, Growth: "ASOCSEC", Desc: "Total social security (OASDI) benefits"},
	E03150: {Name: "e03150", Integer: false, Input: true, Growth: "ATXPY", Desc: "Total deductible IRA contributions"},
	E03210: {Name: "e03210", Integer: false, Input: true, Growth: "ATXPY", Desc: "Student loan interest"},
	E03220: {Name: "e03220", Integer: false, Input: true, Growth: "ATXPY", Desc: "Educator expenses"},
	E03230: {Name: "e03230", Integer: false, Input: true, Growth: "ATXPY", Desc: "Tuition and fees"},
	E03240: {Name: "e03240", Integer: false, Input: true, Growth: "ATXPY", Desc: "Domestic production activities"},
	E03270: {Name: "e03270", Integer: false, Input: true, Growth: "ACPIM", Desc: "Self-employed health insurance deduction"},
	E03290: {Name: "e03290", Integer: false, Input: true, Growth: "ACPIM", Desc: "Health savings account deduction"},
	E03300: {Name: "e03300", Integer: false, Input: true, Growth: "ATXPY", Desc: "Contributions to SEP, SIMPLE and qualified plans"},
	E03400: {Name: "e03400", Integer: false, Input: true, Growth: "ATXPY", Desc: "Penalty on early withdrawal of savings"},
	E03500: {Name: "e03500", Integer: false, Input: true, Growth: "ATXPY", Desc: "Alimony paid"},
	E07200: {Name: "e07200", Integer: false, Input: true, Growth: "ATXPY", Desc: "Credit for the elderly or disabled (Schedule R)"},
	E07240: {Name: "e07240", Integer: false, Input: true, Growth: "ATXPY", Desc: "Retirement savings contributions credit"},
	E07260: {Name: "e07260", Integer: false, Input: true, Growth: "ATXPY", Desc: "Residential energy credit"},
	E07300: {Name: "e07300", Integer: false, Input: true, Growth: "ABOOK", Desc: "Foreign tax credit"},
	E07400: {Name: "e07400", Integer: false, Input: true, Growth: "ABOOK", Desc: "General business credit"},
	E07600: {Name: "e07600", Integer: false, Input: true, Growth: "ABOOK", Desc: "Prior year minimum tax credit"},
	E09700: {Name: "e09700", Integer: false, Input: true, Growth: "ATXPY", Desc: "Recapture of investment credit"},
	E09800: {Name: "e09800", Integer: false, Input: true, Growth: "ATXPY", Desc: "Unreported payroll taxes"},
	E09900: {Name: "e09900", Integer: false, Input: true, Growth: "ATXPY", Desc: "Penalty tax on qualified retirement plans"},
	E11200: {Name: "e11200", Integer: false, Input: true, Growth: "ATXPY", Desc: "Excess payroll tax withheld"},
	E17500: {Name: "e17500", Integer: false, Input: true, Growth: "ACPIM", Desc: "Medical and dental expenses"},
	E18400: {Name: "e18400", Integer: false, Input: true, Growth: "ATXPY", Desc: "State and local income or sales taxes"},
	E18500: {Name: "e18500", Integer: false, Input: true, Growth: "ATXPY", Desc: "State and local real estate taxes"},
	E19200: {Name: "e19200", Integer: false, Input: true, Growth: "AIPD", Desc: "Interest paid"},
	E19800: {Name: "e19800", Integer: false, Input: true, Growth: "ATXPY", Desc: "Cash charitable contributions"},
	E20100: {Name: "e20100", Integer: false, Input: true, Growth: "ATXPY", Desc: "Non-cash charitable contributions"},
	E20400: {Name: "e20400", Integer: false, Input: true, Growth: "ATXPY", Desc: "Miscellaneous deductions subject to the floor"},
	G20500: {Name: "g20500", Integer: false, Input: true, Growth: "ATXPY", Desc: "Gross casualty or theft loss"},
	E24515: {Name: "e24515", Integer: false, Input: true, Growth: "ACGNS", Desc: "Unrecaptured section 1250 gain"},
	E24518: {Name: "e24518", Integer: false, Input: true, Growth: "ACGNS", Desc: "28% rate gain or loss"},
	E26270: {Name: "e26270", Integer: false, Input: true, Growth: "SCHE", Desc: "Partnership and S-corporation net income/loss"},
	E27200: {Name: "e27200", Integer: false, Input: true, Growth: "SCHE", Desc: "Farm rent net income/loss"},
	E32800: {Name: "e32800", Integer: false, Input: true, Growth: "ATXPY", Desc: "Child and dependent care expenses"},
	E58990: {Name: "e58990", Integer: false, Input: true, Growth: "ATXPY", Desc: "Investment income elected amount from Form 4952"},
	E62900: {Name: "e62900", Integer: false, Input: true, Growth: "ATXPY", Desc: "Alternative minimum tax foreign tax credit"},
	E87521: {Name: "e87521", Integer: false, Input: true, Growth: "ATXPY", Desc: "American opportunity credit base"},
	E87530: {Name: "e87530", Integer: false, Input: true, Growth: "ATXPY", Desc: "Adjusted qualified lifetime learning expenses"},
	P08000: {Name: "p08000", Integer: false, Input: true, Growth: "ATXPY", Desc: "Other tax credits"},
	P22250: {Name: "p22250", Integer: false, Input: true, Growth: "ACGNS", Desc: "Net short-term capital gain/loss"},
	P23250: {Name: "p23250", Integer: false, Input: true, Growth: "ACGNS", Desc: "Net long-term capital gain/loss"},
	K1bx14p: {Name: "k1bx14p", Integer: false, Input: true, Growth: "SCHE", Desc: "Partner self-employment earnings for taxpayer"},
	K1bx14s: {Name: "k1bx14s", Integer: false, Input: true, Growth: "SCHE", Desc: "Partner self-employment earnings for spouse"},
	Cmbtp: {Name: "cmbtp", Integer: false, Input: true, Growth: "ATXPY", Desc: "AMT adjustments and preferences not in AGI"},
	PTBincW2Wages: {Name: "PT_binc_w2_wages", Integer: false, Input: true, Growth: "ATXPY", Desc: "W-2 wages paid by the pass-through business"},
	PTUbiaProperty: {Name: "PT_ubia_property", Integer: false, Input: true, Growth: "ATXPY", Desc: "Unadjusted basis of qualified property of the pass-through business"},
	HousingBen: {Name: "housing_ben", Integer: false, Input: true, Growth: "ABENHOUSING", Desc: "Housing assistance benefits"},
	SSIBen: {Name: "ssi_ben", Integer: false, Input: true, Growth: "ABENSSI", Desc: "Supplemental Security Income benefits"},
	SNAPBen: {Name: "snap_ben", Integer: false, Input: true, Growth: "ABENSNAP", Desc: "SNAP benefits"},
	TANFBen: {Name: "tanf_ben", Integer: false, Input: true, Growth: "ABENTANF", Desc: "TANF benefits"},
	VetBen: {Name: "vet_ben", Integer: false, Input: true, Growth: "ABENVET", Desc: "Veterans benefits"},
	WICBen: {Name: "wic_ben", Integer: false, Input: true, Growth: "ABENWIC", Desc: "WIC benefits"},
	McareBen: {Name: "mcare_ben", Integer: false, Input: true, Growth: "ABENMCARE", Desc: "Medicare benefits"},
	McaidBen: {Name: "mcaid_ben", Integer: false, Input: true, Growth: "ABENMCAID", Desc: "Medicaid benefits"},
	OtherBen: {Name: "other_ben", Integer: false, Input: true, Growth: "ABENOTHER", Desc: "Other benefits"},
	Sep: {Name: "sep", Integer: true, Desc: "2 when married filing separately, else 1"},
	Num: {Name: "num", Integer: true, Desc: "2 when married filing jointly, else 1"},
	Sey: {Name: "sey", Integer: false, Desc: "Self-employment income"},
	Earned: {Name: "earned", Integer: false, Desc: "Earned income"},
	EarnedP: {Name: "earned_p", Integer: false, Desc: "Earned income of taxpayer"},
	EarnedS: {Name: "earned_s", Integer: false, Desc: "Earned income of spouse"},
	PtaxWas: {Name: "ptax_was", Integer: false, Desc: "Employee plus employer OASDI and HI tax on wages"},
	Setax: {Name: "setax", Integer: false, Desc: "Self-employment tax"},
	ExtraPayrolltax: {Name: "extra_payrolltax", Integer: false, Desc: "OASDI tax on earnings above SS_Earnings_thd"},
	PtaxOASDI: {Name: "ptax_oasdi", Integer: false, Desc: "OASDI payroll and self-employment tax"},
	PtaxAMC: {Name: "ptax_amc", Integer: false, Desc: "Additional Medicare tax"},
	Payrolltax: {Name: "payrolltax", Integer: false, Desc: "Total payroll and self-employment taxes"},
	C03260: {Name: "c03260", Integer: false, Desc: "Deductible part of self-employment tax"},
	C02900: {Name: "c02900", Integer: false, Desc: "Total above-the-line adjustments"},
	C23650: {Name: "c23650", Integer: false, Desc: "Net capital gains"},
	C01000: {Name: "c01000", Integer: false, Desc: "Capital gains included in AGI after the loss limit"},
	InvincAGIEc: {Name: "invinc_agi_ec", Integer: false, Desc: "Investment income excluded from AGI"},
	Ymod1: {Name: "ymod1", Integer: false, Desc: "AGI income before social security benefits and adjustments"},
	Ymod: {Name: "ymod", Integer: false, Desc: "Modified income used for social security benefit taxation"},
	C02500: {Name: "c02500", Integer: false, Desc: "Taxable social security benefits"},
	C00100: {Name: "c00100", Integer: false, Desc: "Adjusted gross income"},
	E17500Capped: {Name: "e17500_capped", Integer: false, Desc: "Medical expenses after the itemized amount cap"},
	E18400Capped: {Name: "e18400_capped", Integer: false, Desc: "State and local taxes after the itemized amount cap"},
	E18500Capped: {Name: "e18500_capped", Integer: false, Desc: "Real estate taxes after the itemized amount cap"},
	E19200Capped: {Name: "e19200_capped", Integer: false, Desc: "Interest paid after the itemized amount cap"},
	E19800Capped: {Name: "e19800_capped", Integer: false, Desc: "Cash charity after the itemized amount cap"},
	E20100Capped: {Name: "e20100_capped", Integer: false, Desc: "Non-cash charity after the itemized amount cap"},
	E20400Capped: {Name: "e20400_capped", Integer: false, Desc: "Miscellaneous deductions after the itemized amount cap"},
	G20500Capped: {Name: "g20500_capped", Integer: false, Desc: "Casualty loss after the itemized amount cap"},
	C17000: {Name: "c17000", Integer: false, Desc: "Medical expense deduction"},
	C18300: {Name: "c18300", Integer: false, Desc: "State and local tax deduction"},
	C19200: {Name: "c19200", Integer: false, Desc: "Interest deduction"},
	C19700: {Name: "c19700", Integer: false, Desc: "Charity deduction"},
	C20500: {Name: "c20500", Integer: false, Desc: "Casualty loss deduction"},
	C20800: {Name: "c20800", Integer: false, Desc: "Miscellaneous deduction"},
	C21040: {Name: "c21040", Integer: false, Desc: "Itemized deductions phased out"},
	C21060: {Name: "c21060", Integer: false, Desc: "Itemized deductions before phase-out"},
	C04470: {Name: "c04470", Integer: false, Desc: "Itemized deductions after phase-out; zero for non-itemizers"},
	Standard: {Name: "standard", Integer: false, Desc: "Standard deduction; zero for itemizers"},
	PreC04600: {Name: "pre_c04600", Integer: false, Desc: "Personal exemptions before phase-out"},
	C04600: {Name: "c04600", Integer: false, Desc: "Personal exemptions after phase-out"},
	Qbided: {Name: "qbided", Integer: false, Desc: "Qualified business income deduction"},
	C04800: {Name: "c04800", Integer: false, Desc: "Regular taxable income"},
	C05200: {Name: "c05200", Integer: false, Desc: "Tax on regular taxable income from the rate schedules"},
	Dwks10: {Name: "dwks10", Integer: false, Desc: "Qualified dividends and capital gains worksheet line 10"},
	Dwks13: {Name: "dwks13", Integer: false, Desc: "Qualified dividends and capital gains worksheet line 13"},
	Dwks14: {Name: "dwks14", Integer: false, Desc: "Qualified dividends and capital gains worksheet line 14"},
	Dwks19: {Name: "dwks19", Integer: false, Desc: "Qualified dividends and capital gains worksheet line 19"},
	C24580: {Name: "c24580", Integer: false, Desc: "Tax on taxable income with preferential capital gains rates"},
	C05700: {Name: "c05700", Integer: false, Desc: "Tax from lump-sum distributions"},
	Taxbc: {Name: "taxbc", Integer: false, Desc: "Regular tax before credits"},
	C62100: {Name: "c62100", Integer: false, Desc: "Alternative minimum taxable income"},
	C09600: {Name: "c09600", Integer: false, Desc: "Alternative minimum tax"},
	C05800: {Name: "c05800", Integer: false, Desc: "Total income tax before credits"},
	C33200: {Name: "c33200", Integer: false, Desc: "Child and dependent care credit before the liability limit"},
	Prectc: {Name: "prectc", Integer: false, Desc: "Child tax credit after phase-out before the liability limit"},
	Preodc: {Name: "preodc", Integer: false, Desc: "Other dependent credit after phase-out before the liability limit"},
	C87668: {Name: "c87668", Integer: false, Desc: "Nonrefundable American opportunity credit before the liability limit"},
	C87620: {Name: "c87620", Integer: false, Desc: "Lifetime learning credit before the liability limit"},
	C10960: {Name: "c10960", Integer: false, Desc: "Refundable American opportunity credit"},
	C07300: {Name: "c07300", Integer: false, Desc: "Foreign tax credit allowed"},
	C07180: {Name: "c07180", Integer: false, Desc: "Child and dependent care credit allowed"},
	C07230: {Name: "c07230", Integer: false, Desc: "Education credits allowed"},
	C07240: {Name: "c07240", Integer: false, Desc: "Retirement savings credit allowed"},
	C07220: {Name: "c07220", Integer: false, Desc: "Child tax credit allowed"},
	ODC: {Name: "odc", Integer: false, Desc: "Other dependent credit allowed"},
	C07260: {Name: "c07260", Integer: false, Desc: "Residential energy credit allowed"},
	C07400: {Name: "c07400", Integer: false, Desc: "General business credit allowed"},
	C07600: {Name: "c07600", Integer: false, Desc: "Prior year minimum tax credit allowed"},
	C07200: {Name: "c07200", Integer: false, Desc: "Elderly or disabled credit allowed"},
	C08000: {Name: "c08000", Integer: false, Desc: "Other credits allowed"},
	C07100: {Name: "c07100", Integer: false, Desc: "Total nonrefundable credits"},
	C08800: {Name: "c08800", Integer: false, Desc: "Income tax liability after nonrefundable credits"},
	NIIT: {Name: "niit", Integer: false, Desc: "Net investment income tax"},
	Othertaxes: {Name: "othertaxes", Integer: false, Desc: "Other taxes"},
	C09200: {Name: "c09200", Integer: false, Desc: "Income tax liability including other taxes"},
	C59660: {Name: "c59660", Integer: false, Desc: "Earned income tax credit"},
	C11070: {Name: "c11070", Integer: false, Desc: "Additional child tax credit"},
	RRC: {Name: "rrc", Integer: false, Desc: "Recovery rebate credit"},
	CTCNew: {Name: "ctc_new", Integer: false, Desc: "Refundable child tax credit supplement"},
	CDCCRefund: {Name: "cdcc_refund", Integer: false, Desc: "Refundable child and dependent care credit"},
	Refund: {Name: "refund", Integer: false, Desc: "Total refundable credits"},
	LumpsumTax: {Name: "lumpsum_tax", Integer: false, Desc: "Lump-sum tax"},
	Iitax: {Name: "iitax", Integer: false, Desc: "Individual income tax liability net of refundable credits"},
	Combined: {Name: "combined", Integer: false, Desc: "Sum of iitax and payrolltax"},
	BenefitCostTotal: {Name: "benefit_cost_total", Integer: false, Desc: "Government cost of all benefits received"},
	BenefitValueTotal: {Name: "benefit_value_total", Integer: false, Desc: "Consumption value of all benefits received"},
	ExpandedIncome: {Name: "expanded_income", Integer: false, Desc: "Broad income measure"},
	AftertaxIncome: {Name: "aftertax_income", Integer: false, Desc: "Expanded income less combined taxes"},
}
