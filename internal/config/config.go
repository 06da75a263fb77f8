// Package config defines the data structures related to configuration and
// includes functions for loading the guideline tables and runtime options.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// ErrUnknownGuidelineYear is returned when no guideline table is configured
// for the requested year.
var ErrUnknownGuidelineYear = errors.New("unknown guideline year")

//go:embed guidelines.yaml
var defaultGuidelines []byte

// Configuration holds all configuration for income-eligibility.
type Configuration struct {
	Year       int                        `yaml:"year"`
	Guidelines map[string]GuidelineConfig `yaml:"guidelines"`
	Logging    LoggingConfig              `yaml:"logging,omitempty"`
	Output     OutputConfig               `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// GuidelineConfig holds the published tables for one guideline year.
type GuidelineConfig struct {
	Source string    `yaml:"source,omitempty"`
	FPL    FPLConfig `yaml:"fpl"`
	SMI    SMIConfig `yaml:"smi"`
	AMI    AMIConfig `yaml:"ami"`
}

// FPLConfig is the HHS poverty guideline.
type FPLConfig struct {
	Base      float64 `yaml:"base"`
	PerPerson float64 `yaml:"perPerson"`
}

// SMIConfig is the DSHS state median income chart.
type SMIConfig struct {
	Base               float64 `yaml:"base"`
	PerPerson          float64 `yaml:"perPerson"`
	LargeBase          float64 `yaml:"largeBase"`
	LargePerPerson     float64 `yaml:"largePerPerson"`
	LargeHouseholdFrom int     `yaml:"largeHouseholdFrom"`
}

// AMIConfig is the HUD income limits table for the service area.
type AMIConfig struct {
	Area               string  `yaml:"area,omitempty"`
	Median4            float64 `yaml:"median4"`
	Low80Median4       float64 `yaml:"low80Median4"`
	Anchor0            float64 `yaml:"anchor0"`
	Anchor0Low80       float64 `yaml:"anchor0Low80"`
	BandBase           float64 `yaml:"bandBase"`
	SmallGrowth        float64 `yaml:"smallGrowth"`
	LargeGrowth        float64 `yaml:"largeGrowth"`
	AnchorSize         int     `yaml:"anchorSize"`
	LargeHouseholdFrom int     `yaml:"largeHouseholdFrom"`
	RoundTo            float64 `yaml:"roundTo"`
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(defaultGuidelines)); err != nil {
		return nil, fmt.Errorf("error reading default guidelines, %s", err)
	}
	return v, nil
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there on top of the built-in guideline tables.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(configPath)
	if err := v.MergeInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r on top of the
// built-in guideline tables.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if err := v.MergeConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// LoadDefaults returns the built-in guideline tables with default logging
// and output options.
func LoadDefaults() (*Configuration, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Validate checks that the default year is configured and that every
// guideline table is usable.
func (c *Configuration) Validate() error {
	if len(c.Guidelines) == 0 {
		return fmt.Errorf("no guideline years configured")
	}

	for _, year := range c.Years() {
		if _, err := c.Guideline(year); err != nil {
			return err
		}
	}

	if _, err := c.Guideline(c.Year); err != nil {
		return fmt.Errorf("default year: %w", err)
	}
	return nil
}

// Years returns the configured guideline years in ascending order.
func (c *Configuration) Years() []int {
	years := make([]int, 0, len(c.Guidelines))
	for key := range c.Guidelines {
		if year, err := strconv.Atoi(key); err == nil {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// ResolveYear maps zero to the default guideline year.
func (c *Configuration) ResolveYear(year int) int {
	if year == 0 {
		return c.Year
	}
	return year
}

// Guideline returns the guideline tables for year, or for the default year
// when year is zero.
func (c *Configuration) Guideline(year int) (measures.Guidelines, error) {
	year = c.ResolveYear(year)

	gc, ok := c.Guidelines[strconv.Itoa(year)]
	if !ok {
		return measures.Guidelines{}, fmt.Errorf("%w: %d", ErrUnknownGuidelineYear, year)
	}
	return gc.ToGuidelines(year)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	years := c.Years()
	if len(years) != len(c.Guidelines) {
		warnings = append(warnings, "Guideline keys that are not years are ignored")
	}
	if len(years) > 0 && c.Year != years[len(years)-1] {
		warnings = append(warnings, fmt.Sprintf("Default guideline year %d is not the newest configured year (%d)",
			c.Year, years[len(years)-1]))
	}

	for _, year := range years {
		gc := c.Guidelines[strconv.Itoa(year)]
		if gc.Source == "" {
			warnings = append(warnings, fmt.Sprintf("Guideline year %d has no source recorded", year))
		}
		if gc.AMI.Area == "" {
			warnings = append(warnings, fmt.Sprintf("Guideline year %d has no AMI area recorded", year))
		}
	}

	return warnings
}
