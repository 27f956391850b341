package policy

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/iwvelando/taxcalc/internal/taxerr"
)

// MarsVec is a value per filing status, ordered single, joint, separate,
// head of household, widow.
type MarsVec [5]float64

// At returns the value for a MARS code in 1..5. Other codes are a
// programmer error, since records validation rejects them, and panic.
func (v MarsVec) At(mars int) float64 {
	if mars < 1 || mars > len(v) {
		panic(fmt.Sprintf("MARS %d outside 1..%d", mars, len(v)))
	}
	return v[mars-1]
}

// EicVec is a value per number of EITC-qualifying children, 0 through 3.
type EicVec [4]float64

// At returns the value for kids qualifying children in 0..3 and panics
// otherwise.
func (v EicVec) At(kids int) float64 {
	if kids < 0 || kids >= len(v) {
		panic(fmt.Sprintf("EIC %d outside 0..%d", kids, len(v)-1))
	}
	return v[kids]
}

// Params is the policy in effect for one year, typed for use by the
// calculation stages. Field tags name the parameter; a %d in the tag fills an
// array field from the numbered parameters starting at 1.
type Params struct {
	Year int

	// payroll
	FICASSRate             float64 `param:"FICA_ss_trt"`
	SSEarningsCap          float64 `param:"SS_Earnings_c"`
	SSEarningsThd          float64 `param:"SS_Earnings_thd"`
	FICAMedRate            float64 `param:"FICA_mc_trt"`
	AMEDTExclusion         MarsVec `param:"AMEDT_ec"`
	AMEDTRate              float64 `param:"AMEDT_rt"`
	ALDSelfEmploymentTaxHC float64 `param:"ALD_SelfEmploymentTax_hc"`

	// social security benefits
	SSThd50       MarsVec `param:"SS_thd50"`
	SSThd85       MarsVec `param:"SS_thd85"`
	SSPercentage1 float64 `param:"SS_percentage1"`
	SSPercentage2 float64 `param:"SS_percentage2"`

	// above-the-line deductions
	ALDStudentLoanHC        float64 `param:"ALD_StudentLoan_hc"`
	ALDSelfEmpHealthInsHC   float64 `param:"ALD_SelfEmp_HealthIns_hc"`
	ALDKEOGHSEPHC           float64 `param:"ALD_KEOGH_SEP_hc"`
	ALDEarlyWithdrawHC      float64 `param:"ALD_EarlyWithdraw_hc"`
	ALDAlimonyPaidHC        float64 `param:"ALD_AlimonyPaid_hc"`
	ALDAlimonyReceivedHC    float64 `param:"ALD_AlimonyReceived_hc"`
	ALDEducatorExpensesHC   float64 `param:"ALD_EducatorExpenses_hc"`
	ALDHSADeductionHC       float64 `param:"ALD_HSADeduction_hc"`
	ALDIRAContributionsHC   float64 `param:"ALD_IRAContributions_hc"`
	ALDDomesticProductionHC float64 `param:"ALD_DomesticProduction_hc"`
	ALDTuitionHC            float64 `param:"ALD_Tuition_hc"`
	ALDInvIncExclusionRate  float64 `param:"ALD_InvInc_ec_rt"`
	ALDBusinessLossesCap    MarsVec `param:"ALD_BusinessLosses_c"`

	// capital gains
	CGNoDiff                bool       `param:"CG_nodiff"`
	CGExclusion             float64    `param:"CG_ec"`
	CGReinvestExclusionRate float64    `param:"CG_reinvest_ec_rt"`
	CGRates                 [4]float64 `param:"CG_rt%d"`
	CGBrackets              [3]MarsVec `param:"CG_brk%d"`
	AMTCGRates              [4]float64 `param:"AMT_CG_rt%d"`
	AMTCGBrackets           [3]MarsVec `param:"AMT_CG_brk%d"`

	// net investment income tax
	NIITThd     MarsVec `param:"NIIT_thd"`
	NIITRate    float64 `param:"NIIT_rt"`
	NIITPTTaxed bool    `param:"NIIT_PT_taxed"`

	// personal exemptions
	PersonalExemption      float64 `param:"II_em"`
	ExemptionPhaseoutStart MarsVec `param:"II_em_ps"`
	ExemptionPhaseoutRate  float64 `param:"II_prt"`
	NoExemptionUnder18     bool    `param:"II_no_em_nu18"`

	// standard deduction
	StandardDeduction     MarsVec `param:"STD"`
	StandardDeductionAged MarsVec `param:"STD_Aged"`
	StandardDeductionDep  float64 `param:"STD_Dep"`

	// itemized deductions
	IDMedicalFloor          float64 `param:"ID_Medical_frt"`
	IDMedicalFloorAgedAdd   float64 `param:"ID_Medical_frt_add4aged"`
	IDMedicalHC             float64 `param:"ID_Medical_hc"`
	IDMedicalCap            MarsVec `param:"ID_Medical_c"`
	IDStateLocalTaxHC       float64 `param:"ID_StateLocalTax_hc"`
	IDStateLocalTaxCap      MarsVec `param:"ID_StateLocalTax_c"`
	IDStateLocalTaxCapRate  float64 `param:"ID_StateLocalTax_crt"`
	IDRealEstateHC          float64 `param:"ID_RealEstate_hc"`
	IDRealEstateCap         MarsVec `param:"ID_RealEstate_c"`
	IDRealEstateCapRate     float64 `param:"ID_RealEstate_crt"`
	IDAllTaxesHC            float64 `param:"ID_AllTaxes_hc"`
	IDAllTaxesCap           MarsVec `param:"ID_AllTaxes_c"`
	IDInterestPaidHC        float64 `param:"ID_InterestPaid_hc"`
	IDInterestPaidCap       MarsVec `param:"ID_InterestPaid_c"`
	IDCharityCashCeiling    float64 `param:"ID_Charity_crt_cash"`
	IDCharityNonCashCeiling float64 `param:"ID_Charity_crt_noncash"`
	IDCharityFloorRate      float64 `param:"ID_Charity_frt"`
	IDCharityFloor          MarsVec `param:"ID_Charity_f"`
	IDCharityHC             float64 `param:"ID_Charity_hc"`
	IDCharityCap            MarsVec `param:"ID_Charity_c"`
	IDCasualtyFloor         float64 `param:"ID_Casualty_frt"`
	IDCasualtyHC            float64 `param:"ID_Casualty_hc"`
	IDCasualtyCap           MarsVec `param:"ID_Casualty_c"`
	IDMiscFloor             float64 `param:"ID_Miscellaneous_frt"`
	IDMiscHC                float64 `param:"ID_Miscellaneous_hc"`
	IDMiscCap               MarsVec `param:"ID_Miscellaneous_c"`
	IDPhaseoutStart         MarsVec `param:"ID_ps"`
	IDPhaseoutRate          float64 `param:"ID_prt"`
	IDPhaseoutMaxRate       float64 `param:"ID_crt"`
	IDCap                   MarsVec `param:"ID_c"`
	IDAmountCapSwitch       [7]bool `param:"ID_AmountCap_Switch"`
	IDAmountCapRate         float64 `param:"ID_AmountCap_rt"`

	// rate schedules
	IIRates               [7]float64 `param:"II_rt%d"`
	IIBrackets            [7]MarsVec `param:"II_brk%d"`
	PTRates               [7]float64 `param:"PT_rt%d"`
	PTBrackets            [7]MarsVec `param:"PT_brk%d"`
	PTEligibleRateActive  float64    `param:"PT_EligibleRate_active"`
	PTEligibleRatePassive float64    `param:"PT_EligibleRate_passive"`
	PTWagesActiveIncome   bool       `param:"PT_wages_active_income"`
	PTTopStacking         bool       `param:"PT_top_stacking"`

	// qualified business income deduction
	QBIDRate            float64 `param:"PT_qbid_rt"`
	QBIDTaxincThd       MarsVec `param:"PT_qbid_taxinc_thd"`
	QBIDTaxincGap       MarsVec `param:"PT_qbid_taxinc_gap"`
	QBIDW2WagesRate     float64 `param:"PT_qbid_w2_wages_rt"`
	QBIDAltW2WagesRate  float64 `param:"PT_qbid_alt_w2_wages_rt"`
	QBIDAltPropertyRate float64 `param:"PT_qbid_alt_property_rt"`

	// alternative minimum tax
	AMTExemption              MarsVec `param:"AMT_em"`
	AMTExemptionPhaseoutStart MarsVec `param:"AMT_em_ps"`
	AMTSeparateAddback        float64 `param:"AMT_em_pe"`
	AMTPhaseoutRate           float64 `param:"AMT_prt"`
	AMTRate1                  float64 `param:"AMT_rt1"`
	AMTRate2                  float64 `param:"AMT_rt2"`
	AMTBracket1               float64 `param:"AMT_brk1"`
	AMTChildExemption         float64 `param:"AMT_child_em"`
	AMTChildAgeCap            int     `param:"AMT_child_em_c_age"`

	// child and dependent care
	CDCCCap           float64 `param:"CDCC_c"`
	CDCCPhaseoutStart  float64 `param:"CDCC_ps"`
	CDCCPhaseoutStart2 float64 `param:"CDCC_ps2"`
	CDCCRate           float64 `param:"CDCC_crt"`
	CDCCRefundable     bool    `param:"CDCC_refundable"`

	// child tax credit
	CTCAmount           float64 `param:"CTC_c"`
	CTCPhaseoutStart    MarsVec `param:"CTC_ps"`
	CTCPhaseoutRate     float64 `param:"CTC_prt"`
	ODCAmount           float64 `param:"ODC_c"`
	ACTCCap             float64 `param:"ACTC_c"`
	ACTCRate            float64 `param:"ACTC_rt"`
	ACTCRateBonusUnder6 float64 `param:"ACTC_rt_bonus_under6family"`
	ACTCIncomeThd       float64 `param:"ACTC_Income_thd"`
	ACTCChildNum        int     `param:"ACTC_ChildNum"`

	// refundable supplement in force for 2021
	CTCNewAmount        float64 `param:"CTC_new_c"`
	CTCNewUnder6Bonus   float64 `param:"CTC_new_c_under6_bonus"`
	CTCNewPhaseoutStart MarsVec `param:"CTC_new_ps"`
	CTCNewPhaseoutRate  float64 `param:"CTC_new_prt"`
	CTCInclude17        bool    `param:"CTC_include17"`
	CTCRefundable       bool    `param:"CTC_refundable"`

	// earned income tax credit
	EITCMax                    EicVec  `param:"EITC_c"`
	EITCRate                   EicVec  `param:"EITC_rt"`
	EITCPhaseoutRate           EicVec  `param:"EITC_prt"`
	EITCBasicFrac              float64 `param:"EITC_basic_frac"`
	EITCPhaseoutStart          EicVec  `param:"EITC_ps"`
	EITCPhaseoutMarriedAddon   EicVec  `param:"EITC_ps_MarriedJ"`
	EITCInvestIncomeCap        float64 `param:"EITC_InvestIncome_c"`
	EITCExcessInvestIncomeRate float64 `param:"EITC_excess_InvestIncome_rt"`
	EITCMinAge                 int     `param:"EITC_MinEligAge"`
	EITCMaxAge                 int     `param:"EITC_MaxEligAge"`
	EITCSepFilersEligible      bool    `param:"EITC_sep_filers_elig"`

	// education
	LLCExpenseCap      float64 `param:"LLC_Expense_c"`
	ETCPhaseoutSingle  float64 `param:"ETC_pe_Single"`
	ETCPhaseoutMarried float64 `param:"ETC_pe_Married"`

	// saver's credit
	SaversCreditCap  float64    `param:"RetirementSavingsCredit_c"`
	SaversCreditRate [3]float64 `param:"RetirementSavingsCredit_rt%d"`
	SaversCreditBrk  [3]MarsVec `param:"RetirementSavingsCredit_brk%d"`

	// credit haircuts
	CRRetirementSavingsHC  float64 `param:"CR_RetirementSavings_hc"`
	CRForeignTaxHC         float64 `param:"CR_ForeignTax_hc"`
	CRResidentialEnergyHC  float64 `param:"CR_ResidentialEnergy_hc"`
	CRGeneralBusinessHC    float64 `param:"CR_GeneralBusiness_hc"`
	CRMinimumTaxHC         float64 `param:"CR_MinimumTax_hc"`
	CRAmOppRefundableHC    float64 `param:"CR_AmOppRefundable_hc"`
	CRAmOppNonRefundableHC float64 `param:"CR_AmOppNonRefundable_hc"`
	CRSchRHC               float64 `param:"CR_SchR_hc"`
	CROtherCreditsHC       float64 `param:"CR_OtherCredits_hc"`
	CREducationHC          float64 `param:"CR_Education_hc"`

	// recovery rebate credit
	RRCAmount        float64 `param:"RRC_c"`
	RRCKidAmount     float64 `param:"RRC_c_kids"`
	RRCPhaseoutStart MarsVec `param:"RRC_ps"`
	RRCPhaseoutRate  float64 `param:"RRC_prt"`

	LumpSumTax float64 `param:"LST"`

	// benefit program repeal switches
	BenHousingRepeal bool `param:"BEN_housing_repeal"`
	BenSSIRepeal     bool `param:"BEN_ssi_repeal"`
	BenSNAPRepeal    bool `param:"BEN_snap_repeal"`
	BenTANFRepeal    bool `param:"BEN_tanf_repeal"`
	BenVetRepeal     bool `param:"BEN_vet_repeal"`
	BenWICRepeal     bool `param:"BEN_wic_repeal"`
	BenMcareRepeal   bool `param:"BEN_mcare_repeal"`
	BenMcaidRepeal   bool `param:"BEN_mcaid_repeal"`
	BenOtherRepeal   bool `param:"BEN_other_repeal"`

	CPIOffset float64 `param:"CPI_offset"`
}

// Source is the read side of a parameter store needed to fill a snapshot.
type Source interface {
	Has(name string) bool
	Value(name string) []float64
	CurrentYear() int
}

// Params returns the typed snapshot of policy in the current year.
func (p *Policy) Params() (*Params, error) {
	out := &Params{}
	if err := Fill(out, p.Store); err != nil {
		return nil, err
	}
	out.Year = p.CurrentYear()
	return out, nil
}

type fieldBinding struct {
	index int
	tag   string
}

var bindingCache sync.Map

func bindings(t reflect.Type) []fieldBinding {
	if b, ok := bindingCache.Load(t); ok {
		return b.([]fieldBinding)
	}
	var out []fieldBinding
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("param"); tag != "" {
			out = append(out, fieldBinding{index: i, tag: tag})
		}
	}
	bindingCache.Store(t, out)
	return out
}

// Fill sets every param-tagged field of the struct pointed to by dst from the
// current-year values of src.
func Fill(dst any, src Source) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("fill target must be a struct pointer, got %T", dst)
	}
	v = v.Elem()
	for _, b := range bindings(v.Type()) {
		field := v.Field(b.index)
		if !strings.Contains(b.tag, "%d") {
			if err := setField(field, b.tag, src); err != nil {
				return err
			}
			continue
		}
		if field.Kind() != reflect.Array {
			return taxerr.ParameterFile(b.tag, "numbered tag on non-array field")
		}
		for i := 0; i < field.Len(); i++ {
			if err := setField(field.Index(i), fmt.Sprintf(b.tag, i+1), src); err != nil {
				return err
			}
		}
	}
	return nil
}

func setField(field reflect.Value, name string, src Source) error {
	if !src.Has(name) {
		return taxerr.ParameterFile(name, "no such parameter")
	}
	vals := src.Value(name)
	switch field.Kind() {
	case reflect.Float64:
		field.SetFloat(vals[0])
	case reflect.Int:
		field.SetInt(int64(vals[0]))
	case reflect.Bool:
		field.SetBool(vals[0] != 0)
	case reflect.Array:
		if field.Len() != len(vals) {
			return taxerr.ParameterFile(name, "has %d values, field expects %d", len(vals), field.Len())
		}
		for i, x := range vals {
			elem := field.Index(i)
			switch elem.Kind() {
			case reflect.Float64:
				elem.SetFloat(x)
			case reflect.Bool:
				elem.SetBool(x != 0)
			default:
				return taxerr.ParameterFile(name, "unsupported element kind %s", elem.Kind())
			}
		}
	default:
		return taxerr.ParameterFile(name, "unsupported field kind %s", field.Kind())
	}
	return nil
}
