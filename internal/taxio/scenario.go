package taxio

import (
	"bytes"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/behavior"
	"github.com/iwvelando/taxcalc/internal/calculator"
	"github.com/iwvelando/taxcalc/internal/consumption"
	"github.com/iwvelando/taxcalc/internal/growdiff"
	"github.com/iwvelando/taxcalc/internal/growfactors"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/reform"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

// Scenario is the in-memory input of one analysis.
type Scenario struct {
	// Name is the input file name. cps.csv and puf.csv are aged from their
	// data year; any other sample is taken to be for TaxYear.
	Name string
	// Data is the CSV sample.
	Data []byte
	// Weights optionally replaces s006 in each year of an aged sample.
	Weights  map[int][]float64
	TaxYear  int
	Baseline reform.Set
	// Reform holds the policy reforms and the assumption sections.
	Reform reform.Set
	Exact  bool
}

// Calculators holds the baseline and reform calculators of a scenario.
type Calculators struct {
	Baseline *calculator.Calculator
	Reform   *calculator.Calculator
	Behavior *behavior.Behavior
	// Warnings are out-of-range parameter values that were accepted.
	Warnings []string

	logger  *zap.Logger
	taxYear int
}

// canonicalDataYear returns the data year of a canonical sample, or zero.
func canonicalDataYear(name string) int {
	switch filepath.Base(name) {
	case constants.CPSInputName:
		return constants.CPSDataYear
	case constants.PUFInputName:
		return constants.PUFDataYear
	}
	return 0
}

// Build applies the growth differences, policy reforms and assumptions of s
// and returns calculators advanced to the tax year.
func Build(logger *zap.Logger, s Scenario) (*Calculators, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := &Calculators{logger: logger, taxYear: s.TaxYear}

	gf, err := growfactors.New()
	if err != nil {
		return nil, err
	}
	gfBase, err := applyGrowDiff(gf, s.Reform.Section(reform.GrowDiffBaseline), reform.GrowDiffBaseline)
	if err != nil {
		return nil, err
	}
	gfRef, err := applyGrowDiff(gfBase, s.Reform.Section(reform.GrowDiffResponse), reform.GrowDiffResponse)
	if err != nil {
		return nil, err
	}

	basePol, err := out.policy(gfBase, s.Baseline.Policies, "baseline")
	if err != nil {
		return nil, err
	}
	refPol, err := out.policy(gfRef, s.Reform.Policies, "reform")
	if err != nil {
		return nil, err
	}

	cons, err := consumption.New()
	if err != nil {
		return nil, err
	}
	if err := cons.ImplementReform(s.Reform.Section(reform.Consumption)); err != nil {
		return nil, fmt.Errorf("%s: %w", reform.Consumption, err)
	}
	out.Behavior, err = behavior.New(logger)
	if err != nil {
		return nil, err
	}
	if err := out.Behavior.ImplementReform(s.Reform.Section(reform.Behavior)); err != nil {
		return nil, fmt.Errorf("%s: %w", reform.Behavior, err)
	}

	baseRecs, err := loadRecords(logger, s, gfBase)
	if err != nil {
		return nil, err
	}
	refRecs, err := loadRecords(logger, s, gfRef)
	if err != nil {
		return nil, err
	}

	copts := calculator.Options{Consumption: cons, Exact: s.Exact}
	if out.Baseline, err = calculator.New(logger, basePol, baseRecs, copts); err != nil {
		return nil, fmt.Errorf("baseline calculator: %w", err)
	}
	copts.Consumption = cons.Clone()
	if out.Reform, err = calculator.New(logger, refPol, refRecs, copts); err != nil {
		return nil, fmt.Errorf("reform calculator: %w", err)
	}
	if err := out.Baseline.AdvanceToYear(s.TaxYear); err != nil {
		return nil, err
	}
	if err := out.Reform.AdvanceToYear(s.TaxYear); err != nil {
		return nil, err
	}
	return out, nil
}

func applyGrowDiff(gf *growfactors.GrowFactors, changes paramstore.Reform, section string) (*growfactors.GrowFactors, error) {
	gd, err := growdiff.New()
	if err != nil {
		return nil, err
	}
	if err := gd.ImplementReform(changes); err != nil {
		return nil, fmt.Errorf("%s: %w", section, err)
	}
	return gd.ApplyTo(gf)
}

func (c *Calculators) policy(gf *growfactors.GrowFactors, reforms []paramstore.Reform, label string) (*policy.Policy, error) {
	pol, err := policy.New(gf)
	if err != nil {
		return nil, err
	}
	for i, changes := range reforms {
		if err := pol.ImplementReform(changes); err != nil {
			return nil, fmt.Errorf("%s policy file %d: %w", label, i+1, err)
		}
	}
	if text := pol.WarningText(); text != "" {
		c.logger.Warn("policy parameter warnings",
			zap.String("op", "taxio.Build"),
			zap.String("policy", label),
			zap.String("warnings", text),
		)
		for _, w := range pol.Warnings() {
			c.Warnings = append(c.Warnings, label+": "+w)
		}
	}
	return pol, nil
}

func loadRecords(logger *zap.Logger, s Scenario, gf *growfactors.GrowFactors) (*records.Records, error) {
	opts := records.Options{StartYear: s.TaxYear}
	if year := canonicalDataYear(s.Name); year != 0 {
		if s.TaxYear < year {
			return nil, taxerr.Year(s.TaxYear, "TAXYEAR is before the %s data year %d", filepath.Base(s.Name), year)
		}
		opts.StartYear = year
		opts.GrowFactors = gf
		opts.Weights = s.Weights
	}
	recs, err := records.Load(logger, bytes.NewReader(s.Data), opts)
	if err != nil {
		return nil, fmt.Errorf("reading INPUT %s: %w", s.Name, err)
	}
	return recs, nil
}

// Calculate computes both scenarios and, when elasticities are set for the
// tax year, replaces the reform calculator with its behavioral response.
func (c *Calculators) Calculate() error {
	if err := c.Baseline.CalcAll(); err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	if err := c.Reform.CalcAll(); err != nil {
		return fmt.Errorf("reform: %w", err)
	}
	if err := c.Behavior.SetYear(c.taxYear); err != nil {
		return err
	}
	if c.Behavior.HasResponse() {
		ref, err := c.Behavior.Response(c.Baseline, c.Reform)
		if err != nil {
			return fmt.Errorf("behavioral response: %w", err)
		}
		c.Reform = ref
	}
	return nil
}
