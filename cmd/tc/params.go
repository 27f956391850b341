package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/reform"
	"github.com/iwvelando/taxcalc/pkg/datetime"
	"github.com/iwvelando/taxcalc/pkg/validation"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params [YEAR]",
		Short: "Print policy parameter values for YEAR, or for every year, as YAML.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParams,
	}
	cmd.Flags().String("reform", "", "policy reform file(s) to apply, joined with +")
	cmd.Flags().StringSlice("names", nil, "parameters to print (default all)")
	return cmd
}

func runParams(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := paramstore.SpecOptions{Serializable: true, SortValues: true}
	if len(args) == 1 {
		year, err := datetime.ParseYear(args[0])
		if err != nil {
			return fmt.Errorf("YEAR: %w", err)
		}
		if err := validation.ValidateTaxYear(year); err != nil {
			return err
		}
		opts.Year = year
		opts.SortValues = false
	}

	pol, err := policy.New(nil)
	if err != nil {
		return err
	}
	reformPath, _ := cmd.Flags().GetString("reform")
	if reformPath != "" {
		set, err := reform.ReadParamObjects(reformPath, "")
		if err != nil {
			return err
		}
		for _, changes := range set.Policies {
			if err := pol.ImplementReform(changes); err != nil {
				return err
			}
		}
		if text := pol.WarningText(); text != "" {
			logger.Warn("policy parameter warnings",
				zap.String("op", "main.runParams"),
				zap.String("warnings", text),
			)
		}
	}

	names, _ := cmd.Flags().GetStringSlice("names")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return pol.WriteSpec(cmd.OutOrStdout(), opts, names...)
}
