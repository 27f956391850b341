// Package constants provides shared constants for the taxcalc application.
package constants

// Year range covered by the embedded current-law policy.
const (
	// StartYear is the first year with current-law parameter values.
	StartYear = 2013

	// EndYear is the last year for which parameters are expanded.
	EndYear = 2029

	// NumYears is the number of years in [StartYear, EndYear].
	NumYears = EndYear - StartYear + 1

	// GrowFactorsFirstYear is the first year in the embedded growth-factor table.
	GrowFactorsFirstYear = 2011
)

// Filing status (MARS) codes.
const (
	MarsSingle    = 1
	MarsJoint     = 2
	MarsSeparate  = 3
	MarsHead      = 4
	MarsWidow     = 5
	NumMarsValues = 5
)

// Numeric constants
const (
	// DollarPrecision is the rounding step used for indexed dollar amounts.
	DollarPrecision = 0.01

	// RatePrecision is the rounding step used for indexed rates.
	RatePrecision = 0.0001

	// Unlimited is the conventional stand-in for an unbounded threshold.
	Unlimited = 9e99

	// MTRFiniteDiff is the one-cent step used by the marginal tax rate calculation.
	MTRFiniteDiff = 0.01

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "tc.yaml"

	// EnvPrefix is the prefix for environment overrides of configuration keys.
	EnvPrefix = "TC"

	// DefaultDiagnosticYears is the number of years in a diagnostic table.
	DefaultDiagnosticYears = 10
)

// Input file names that mark a canonical sample which is aged with growth factors.
const (
	CPSInputName = "cps.csv"
	PUFInputName = "puf.csv"
)

// Data years of the canonical samples.
const (
	CPSDataYear = 2014
	PUFDataYear = 2011
)

// Server constants
const (
	// DefaultServerAddress is the default HTTP listen address for tc serve
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum multipart upload size (32 MB)
	DefaultMaxUploadSizeBytes int64 = 32 * 1024 * 1024

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "tc-server.yaml"
)
