// Package constants provides shared constants for the income-eligibility application.
package constants

// DateLayout is the format expected for dates of birth.
const DateLayout = "2006-01-02"

// Income and calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the mean Gregorian year length used to approximate age
	DaysPerYear = 365.2425

	// MinAge is the exclusive lower bound for a plausible age
	MinAge = 0

	// MaxAge is the exclusive upper bound for a plausible age
	MaxAge = 120

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100

	// MaxIncome is the largest annual income, and the largest single amount,
	// the measures accept. Every percent of an income up to this bound fits
	// in an int.
	MaxIncome = 1_000_000_000
)

// Income period constants, matching the values offered by the intake form.
const (
	// IncomePeriodMonthly marks an income amount that must be annualized
	IncomePeriodMonthly = "Monthly"

	// IncomePeriodAnnual marks an income amount that is already annual
	IncomePeriodAnnual = "Annual"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "INCOME"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Guideline table constants
const (
	// LimitTableSizes is the largest household size tabulated in limit tables
	LimitTableSizes = 8
)
