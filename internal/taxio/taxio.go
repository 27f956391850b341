// Package taxio runs a complete tc analysis: it reads an input sample and
// optional baseline, reform and assumption files, calculates baseline and
// reform liabilities for one tax year, and writes the requested outputs.
package taxio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/calculator"
	"github.com/iwvelando/taxcalc/internal/dumpdb"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/reform"
	"github.com/iwvelando/taxcalc/internal/tables"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/format"
	"github.com/iwvelando/taxcalc/pkg/output"
	"github.com/iwvelando/taxcalc/pkg/validation"
)

// AllVars is the --dumpvars keyword selecting every variable.
const AllVars = "ALL"

// DefaultDumpVars are written to the dump database when no list is given.
var DefaultDumpVars = []records.Var{
	records.Iitax, records.Payrolltax, records.LumpsumTax, records.Combined,
	records.C00100, records.C04800, records.Refund, records.Othertaxes,
	records.ExpandedIncome, records.AftertaxIncome,
	records.BenefitCostTotal, records.BenefitValueTotal,
}

// Options describes one run.
type Options struct {
	// Input is the path of the CSV sample.
	Input string
	// Weights optionally names a weights table for a canonical sample. When
	// empty, <input stem>_weights.csv next to the input is used if present.
	Weights  string
	TaxYear  int
	Baseline string
	Reform   string
	Assump   string
	Exact    bool
	OutDir   string
	DumpDB   bool
	// DumpVars is a whitespace or comma separated variable list, the name of
	// a file holding one, or ALL.
	DumpVars        string
	Tables          bool
	Graphs          bool
	OutputFormat    string
	DiagnosticYears int
	RunID           string
}

// TaxCalcIO holds the state of one run.
type TaxCalcIO struct {
	logger   *zap.Logger
	opts     Options
	runID    string
	stem     string
	dumpVars []records.Var
	calcs    *Calculators
}

// New validates opts and returns a TaxCalcIO ready for Init.
func New(logger *zap.Logger, opts Options) (*TaxCalcIO, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var errs []error
	if err := validation.ValidateInputName(opts.Input); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateTaxYear(opts.TaxYear); err != nil {
		errs = append(errs, taxerr.Year(opts.TaxYear, "%s", err.Error()))
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(opts.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if opts.DiagnosticYears <= 0 {
		opts.DiagnosticYears = constants.DefaultDiagnosticYears
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	for _, f := range []struct{ flag, path string }{
		{"--baseline", opts.Baseline}, {"--reform", opts.Reform}, {"--assump", opts.Assump},
	} {
		if err := validateParamPaths(f.flag, f.path); err != nil {
			errs = append(errs, err)
		}
	}
	dumpVars, err := parseDumpVars(opts.DumpVars)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	t := &TaxCalcIO{
		logger:   logger.With(zap.String("run_id", runID)),
		opts:     opts,
		runID:    runID,
		dumpVars: dumpVars,
	}
	t.stem = fmt.Sprintf("%s-%02d-%s-%s-%s",
		fileStem(opts.Input), opts.TaxYear%100,
		compoundStem(opts.Baseline), compoundStem(opts.Reform), compoundStem(opts.Assump))
	return t, nil
}

// RunID returns the run identifier.
func (t *TaxCalcIO) RunID() string { return t.runID }

// OutputStem returns the path of the output files without extension.
func (t *TaxCalcIO) OutputStem() string { return filepath.Join(t.opts.OutDir, t.stem) }

// Warnings returns the parameter validation warnings found by Init.
func (t *TaxCalcIO) Warnings() []string {
	if t.calcs == nil {
		return nil
	}
	return t.calcs.Warnings
}

// Baseline returns the baseline calculator after Init.
func (t *TaxCalcIO) Baseline() *calculator.Calculator { return t.calcs.Baseline }

// Reform returns the reform calculator after Init.
func (t *TaxCalcIO) Reform() *calculator.Calculator { return t.calcs.Reform }

func validateParamPaths(flag, paths string) error {
	if paths == "" {
		return nil
	}
	for _, p := range strings.Split(paths, "+") {
		if !strings.HasSuffix(p, ".json") {
			return fmt.Errorf("%s file %q does not end in .json", flag, p)
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s file %q could not be read: %w", flag, p, err)
		}
	}
	return nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// compoundStem names a "+"-joined list of files, or "#" when empty.
func compoundStem(paths string) string {
	if paths == "" {
		return "#"
	}
	parts := strings.Split(paths, "+")
	for i, p := range parts {
		parts[i] = fileStem(p)
	}
	return strings.Join(parts, "+")
}

// parseDumpVars reads a variable list. An existing file name is replaced by
// its contents.
func parseDumpVars(spec string) ([]records.Var, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultDumpVars, nil
	}
	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		data, err := os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("reading dumpvars file: %w", err)
		}
		spec = string(data)
	}
	names := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var out []records.Var
	seen := make(map[records.Var]bool)
	for _, name := range names {
		if name == AllVars {
			return append(records.InputVars(), records.CalculatedVars()...), nil
		}
		v, ok := records.Lookup(name)
		if !ok {
			return nil, taxerr.Records(name, "unknown dump variable")
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return DefaultDumpVars, nil
	}
	return out, nil
}

// Init reads every input and builds the baseline and reform calculators at
// the tax year.
func (t *TaxCalcIO) Init() error {
	baseFile, err := reform.ReadParamObjects(t.opts.Baseline, "")
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	refFile, err := reform.ReadParamObjects(t.opts.Reform, t.opts.Assump)
	if err != nil {
		return fmt.Errorf("reform: %w", err)
	}
	data, err := os.ReadFile(t.opts.Input)
	if err != nil {
		return fmt.Errorf("reading INPUT: %w", err)
	}
	s := Scenario{
		Name:     t.opts.Input,
		Data:     data,
		TaxYear:  t.opts.TaxYear,
		Baseline: baseFile,
		Reform:   refFile,
		Exact:    t.opts.Exact,
	}
	if canonicalDataYear(t.opts.Input) != 0 {
		if s.Weights, err = t.weights(); err != nil {
			return err
		}
	}
	if t.calcs, err = Build(t.logger, s); err != nil {
		return err
	}

	t.logger.Info("initialized",
		zap.String("op", "taxio.Init"),
		zap.String("input", t.opts.Input),
		zap.Int("tax_year", t.opts.TaxYear),
		zap.Int("records", t.calcs.Baseline.Records().Len()),
		zap.Bool("aging", t.calcs.Baseline.Records().Aging()),
	)
	return nil
}

func (t *TaxCalcIO) weights() (map[int][]float64, error) {
	path := t.opts.Weights
	if path == "" {
		path = filepath.Join(filepath.Dir(t.opts.Input), fileStem(t.opts.Input)+"_weights.csv")
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening weights: %w", err)
	}
	defer f.Close()
	return records.LoadWeights(f)
}

// Analyze calculates both scenarios, applies any behavioral response and
// writes the output files.
func (t *TaxCalcIO) Analyze(ctx context.Context) error {
	if t.calcs == nil {
		return errors.New("taxio: Init must be called before Analyze")
	}
	if err := t.calcs.Calculate(); err != nil {
		return err
	}

	if err := os.MkdirAll(t.opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := t.writeMinimal(); err != nil {
		return err
	}
	if t.opts.Tables {
		if err := t.writeTables(); err != nil {
			return err
		}
	}
	if t.opts.Graphs {
		t.logger.Warn("graph output is not available; --graphs ignored",
			zap.String("op", "taxio.Analyze"),
		)
	}
	if t.opts.DumpDB {
		if err := t.writeDumpDB(ctx); err != nil {
			return err
		}
	}

	t.logger.Info("analysis complete",
		zap.String("op", "taxio.Analyze"),
		zap.String("output", t.OutputStem()),
		zap.String("baseline_iitax", format.Currency(t.calcs.Baseline.WeightedTotal(records.Iitax))),
		zap.String("reform_iitax", format.Currency(t.calcs.Reform.WeightedTotal(records.Iitax))),
	)
	return nil
}

// MinimalColumns heads the minimal output file.
var MinimalColumns = []string{"RECID", "YEAR", "WEIGHT", "INCTAX", "LSTAX", "PAYTAX"}

func (t *TaxCalcIO) writeMinimal() error {
	path := t.OutputStem() + ".csv"
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteMinimal(f, t.calcs.Reform); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteMinimal writes one row per filing unit of c with its weight and
// income, lump-sum and payroll tax.
func WriteMinimal(w io.Writer, c *calculator.Calculator) error {
	r := c.Records()
	recid, s006 := r.Col(records.RECID), r.Col(records.S006)
	iitax, lst, ptax := r.Col(records.Iitax), r.Col(records.LumpsumTax), r.Col(records.Payrolltax)
	year := strconv.Itoa(c.CurrentYear())

	cw := csv.NewWriter(w)
	if err := cw.Write(MinimalColumns); err != nil {
		return err
	}
	money := func(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }
	for i := range recid {
		row := []string{
			strconv.Itoa(int(recid[i])), year, money(s006[i]),
			money(iitax[i]), money(lst[i]), money(ptax[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (t *TaxCalcIO) writeTables() error {
	year := t.opts.TaxYear
	dist, err := tables.Distribution(t.calcs.Reform.Records(), tables.WeightedDeciles)
	if err != nil {
		return err
	}
	diff, err := tables.Difference(t.calcs.Baseline.Records(), t.calcs.Reform.Records(), tables.WeightedDeciles, records.Iitax)
	if err != nil {
		return err
	}
	baseDiag, err := t.calcs.Baseline.Diagnostics(t.opts.DiagnosticYears)
	if err != nil {
		return fmt.Errorf("baseline diagnostics: %w", err)
	}
	refDiag, err := t.calcs.Reform.Diagnostics(t.opts.DiagnosticYears)
	if err != nil {
		return fmt.Errorf("reform diagnostics: %w", err)
	}

	path := t.OutputStem() + "-tab.text"
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	err = output.Write(f, t.opts.OutputFormat,
		output.FromTable(fmt.Sprintf("Reform distribution for %d ($b, #m)", year), dist.Scaled()),
		output.FromTable(fmt.Sprintf("Income tax change for %d ($b, #m)", year), diff.Scaled()),
		output.FromDiagnostics("Baseline diagnostics", baseDiag),
		output.FromDiagnostics("Reform diagnostics", refDiag),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func (t *TaxCalcIO) writeDumpDB(ctx context.Context) error {
	db, err := dumpdb.Create(t.logger, t.OutputStem()+".db")
	if err != nil {
		return err
	}
	defer db.Close()

	meta := dumpdb.Meta{
		RunID:     t.runID,
		TaxYear:   t.opts.TaxYear,
		Input:     t.opts.Input,
		Baseline:  t.opts.Baseline,
		Reform:    t.opts.Reform,
		Assump:    t.opts.Assump,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WriteMeta(ctx, meta); err != nil {
		return err
	}
	if err := db.WriteBase(ctx, t.calcs.Baseline.Records()); err != nil {
		return err
	}
	if err := db.WriteScenario(ctx, dumpdb.BaselineTable, t.calcs.Baseline.Records(), t.dumpVars); err != nil {
		return err
	}
	if err := db.WriteScenario(ctx, dumpdb.ReformTable, t.calcs.Reform.Records(), t.dumpVars); err != nil {
		return err
	}
	return db.Close()
}
