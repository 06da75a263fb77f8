package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iwvelando/income-eligibility/internal/config"
	"github.com/iwvelando/income-eligibility/internal/screening"
	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/format"
)

func newGuidelinesCmd(root *rootOptions) *cobra.Command {
	var (
		year     int
		maxSize  int
		asJSON   bool
		showYAML bool
	)

	cmd := &cobra.Command{
		Use:   "guidelines",
		Short: "Print the configured guideline years and income limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("year") {
				fmt.Fprintf(out, "Configured guideline years: %v (default %d)\n\n", conf.Years(), conf.Year)
			}

			year = conf.ResolveYear(year)
			g, err := conf.Guideline(year)
			if err != nil {
				return err
			}
			if maxSize < 1 {
				maxSize = constants.LimitTableSizes
			}
			rows := screening.Limits(g, maxSize)

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printLimits(out, conf, year, rows)
			if showYAML {
				fmt.Fprintf(out, "\n")
				return config.WriteGuidelineYAML(out, year, conf.Guidelines[strconv.Itoa(year)])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "guideline year (defaults to the configured year)")
	cmd.Flags().IntVar(&maxSize, "max-size", constants.LimitTableSizes, "largest household size to tabulate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the limits as JSON")
	cmd.Flags().BoolVar(&showYAML, "yaml", false, "also print the year's tables as configuration YAML")
	return cmd
}

func printLimits(out io.Writer, conf *config.Configuration, year int, rows []screening.LimitRow) {
	gc := conf.Guidelines[strconv.Itoa(year)]
	fmt.Fprintf(out, "--- Guideline year %d ---\n", year)
	if gc.Source != "" {
		fmt.Fprintf(out, "Source: %s\n", gc.Source)
	}
	if gc.AMI.Area != "" {
		fmt.Fprintf(out, "Area:   %s\n", gc.AMI.Area)
	}
	fmt.Fprintf(out, "Size | 100%% FPL | 100%% SMI | 100%% AMI | 50%% AMI | 80%% AMI\n")
	fmt.Fprintf(out, "____ | ________ | ________ | ________ | _______ | _______\n")
	for _, r := range rows {
		fmt.Fprintf(out, "%d | %s | %s | %s | %s | %s\n",
			r.HouseholdSize,
			format.Currency(r.PovertyGuideline),
			format.Currency(r.StateMedianIncome),
			format.Currency(r.AreaMedianIncome),
			format.Currency(r.VeryLowIncomeLimit),
			format.Currency(r.LowIncomeLimit),
		)
	}
}
