package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/config"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/taxio"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/datetime"
	"github.com/iwvelando/taxcalc/pkg/format"
)

// Version is set with -ldflags at build time.
var Version string

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown version)"
}

// loadConfig reads --config, falling back to tc.yaml in the working
// directory when it exists and to defaults otherwise.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			path = constants.DefaultConfigFile
		}
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func setup(cmd *cobra.Command) (*config.Configuration, *zap.Logger, error) {
	conf, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return conf, logger, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tc INPUT TAXYEAR",
		Short: "Federal individual income and payroll tax microsimulation.",
		Long: `Calculate baseline and reform tax liabilities for every filing unit in
INPUT for TAXYEAR. Output files are named
<input>-<yy>-<baseline>-<reform>-<assump> with # for an absent file.`,
		Version:       version(),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runAnalysis,
	}
	root.PersistentFlags().String("config", "", "path to configuration file (default "+constants.DefaultConfigFile+" if present)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	flags := root.Flags()
	flags.String("baseline", "", "baseline policy reform file(s), joined with +")
	flags.String("reform", "", "policy reform file(s), joined with +")
	flags.String("assump", "", "economic assumption file")
	flags.Bool("exact", false, "use exact (non-smoothed) calculations")
	flags.Bool("tables", false, "write distribution, difference and diagnostic tables")
	flags.Bool("graphs", false, "write graphs (not available)")
	flags.Bool("dumpdb", false, "write a SQLite database of baseline and reform variables")
	flags.String("dumpvars", "", "variables for --dumpdb: a list, a file holding one, or ALL")
	flags.String("outdir", "", "directory for output files")
	flags.String("output-format", "", "tables format override: pretty, csv")

	root.AddCommand(newParamsCmd(), newServeCmd())
	return root
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	conf, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	taxYear, err := datetime.ParseYear(args[1])
	if err != nil {
		return fmt.Errorf("TAXYEAR: %w", err)
	}

	flags := cmd.Flags()
	str := func(name, fallback string) string {
		if v, _ := flags.GetString(name); flags.Changed(name) || fallback == "" {
			return v
		}
		return fallback
	}
	boolean := func(name string, fallback bool) bool {
		if flags.Changed(name) {
			v, _ := flags.GetBool(name)
			return v
		}
		return fallback
	}
	baseline, _ := flags.GetString("baseline")
	reformPath, _ := flags.GetString("reform")
	assump, _ := flags.GetString("assump")
	graphs, _ := flags.GetBool("graphs")
	dumpdb, _ := flags.GetBool("dumpdb")

	opts := taxio.Options{
		Input:           args[0],
		TaxYear:         taxYear,
		Baseline:        baseline,
		Reform:          reformPath,
		Assump:          assump,
		Exact:           boolean("exact", conf.Run.Exact),
		OutDir:          str("outdir", conf.Run.OutputDir),
		DumpDB:          dumpdb,
		DumpVars:        str("dumpvars", conf.Run.DumpVars),
		Tables:          boolean("tables", conf.Run.Tables),
		Graphs:          graphs,
		OutputFormat:    str("output-format", conf.Output.Format),
		DiagnosticYears: conf.Run.DiagnosticYears,
	}

	tc, err := taxio.New(logger, opts)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("run_id", tc.RunID()))
	logger.Info("starting run",
		zap.String("op", "main"),
		zap.String("version", version()),
		zap.String("output", tc.OutputStem()),
	)
	if err := tc.Init(); err != nil {
		return err
	}
	for _, w := range tc.Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: "+w)
	}
	if err := tc.Analyze(cmd.Context()); err != nil {
		return err
	}

	base, ref := tc.Baseline(), tc.Reform()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s million weighted returns\n", tc.OutputStem(), format.Millions(base.WeightedCount(func(int) bool { return true })))
	for _, v := range []records.Var{records.Iitax, records.Payrolltax, records.Combined} {
		fmt.Fprintf(out, "  %-10s baseline $%sb  reform $%sb\n", v.Name(), format.Billions(base.WeightedTotal(v)), format.Billions(ref.WeightedTotal(v)))
	}
	return nil
}
