// Package config defines the run configuration for the tc command and
// loads it from YAML with environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a tc run.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Run     RunConfig     `yaml:"run,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// RunConfig holds defaults for command-line flags. Flags given on the
// command line take precedence.
type RunConfig struct {
	OutputDir       string `yaml:"outputDir,omitempty"`
	DumpVars        string `yaml:"dumpVars,omitempty"`
	Exact           bool   `yaml:"exact,omitempty"`
	Tables          bool   `yaml:"tables,omitempty"`
	DiagnosticYears int    `yaml:"diagnosticYears,omitempty"`
}

var defaults = map[string]any{
	"logging.level":       "info",
	"logging.format":      "json",
	"logging.outputFile":  "",
	"output.format":       constants.OutputFormatPretty,
	"run.outputDir":       ".",
	"run.dumpVars":        "",
	"run.exact":           false,
	"run.tables":          false,
	"run.diagnosticYears": constants.DefaultDiagnosticYears,
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults. In both cases
// TC_<SECTION>_<KEY> environment variables override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration returns warnings for settings that will be ignored
// or replaced at run time.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch conf.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", conf.Logging.Level))
	}
	switch conf.Logging.Format {
	case "json", "console":
	default:
		warnings = append(warnings, fmt.Sprintf("logging.format %q is not one of json, console", conf.Logging.Format))
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		warnings = append(warnings, "output.format: "+err.Error())
	}
	if conf.Run.DiagnosticYears < 1 || conf.Run.DiagnosticYears > constants.NumYears {
		warnings = append(warnings, fmt.Sprintf("run.diagnosticYears %d outside [1, %d]; using %d",
			conf.Run.DiagnosticYears, constants.NumYears, constants.DefaultDiagnosticYears))
		conf.Run.DiagnosticYears = constants.DefaultDiagnosticYears
	}
	if conf.Run.OutputDir == "" {
		conf.Run.OutputDir = "."
	}

	return warnings
}
