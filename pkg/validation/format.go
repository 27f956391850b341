// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/datetime"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateTaxYear checks that a requested tax year is inside the policy year range.
func ValidateTaxYear(year int) error {
	if !datetime.InRange(year, constants.StartYear, constants.EndYear) {
		return fmt.Errorf("TAXYEAR %d must be in [%d, %d]", year, constants.StartYear, constants.EndYear)
	}
	return nil
}

// ValidateInputName checks that an input file name ends in .csv.
func ValidateInputName(name string) error {
	if len(name) < 5 || name[len(name)-4:] != ".csv" {
		return fmt.Errorf("INPUT file name %q does not end in .csv", name)
	}
	return nil
}
