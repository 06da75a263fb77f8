package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/income-eligibility/internal/screening"
	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/household"
	"github.com/iwvelando/income-eligibility/pkg/output"
)

type calcOptions struct {
	size         int
	income       string
	period       string
	rent         string
	children     string
	dateOfBirth  string
	age          int
	year         int
	outputFormat string
}

func newCalcCmd(root *rootOptions) *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Screen one household and print the report",
		Example: `  income-eligibility calc --size 1 --income 2500
  income-eligibility calc --size 3 --income 42000 --period annual --rent 1200 --children yes
  income-eligibility calc --size 2 --income '$3,100' --dob 1961-04-02 --output-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			input, err := opts.input(cmd)
			if err != nil {
				return err
			}

			// CLI override takes precedence over config
			outputFormat := conf.Output.Format
			if opts.outputFormat != "" {
				outputFormat = opts.outputFormat
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}

			report, err := screening.NewScreener(logger, conf).Screen(input)
			if err != nil {
				logger.Error("failed to screen household",
					zap.String("op", "main.calc"),
					zap.Error(err),
				)
				return err
			}

			return output.Render(cmd.OutOrStdout(), outputFormat, []screening.Report{report})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.size, "size", 0, "household size (required)")
	flags.StringVar(&opts.income, "income", "", "gross income for the period, e.g. \"$2,500\" (required)")
	flags.StringVar(&opts.period, "period", constants.IncomePeriodMonthly, "income period: monthly or annual")
	flags.StringVar(&opts.rent, "rent", "", "monthly rent; leave empty when unknown")
	flags.StringVar(&opts.children, "children", "", "minor children in the household: yes or no; leave empty when unknown")
	flags.StringVar(&opts.dateOfBirth, "dob", "", "client date of birth (YYYY-MM-DD)")
	flags.IntVar(&opts.age, "age", 0, "client age, used when no date of birth is given")
	flags.IntVar(&opts.year, "year", 0, "guideline year (defaults to the configured year)")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}

// input converts the flags into a screening form.
func (o *calcOptions) input(cmd *cobra.Command) (screening.Input, error) {
	in := screening.Input{
		HouseholdSize: o.size,
		IncomeAmount:  screening.Amount(o.income),
		IncomeType:    o.period,
		MonthlyRent:   screening.Amount(o.rent),
		DateOfBirth:   o.dateOfBirth,
		Year:          o.year,
	}

	switch strings.ToLower(strings.TrimSpace(o.children)) {
	case "":
	case "yes", "y", "true":
		in.HasChildren = household.Some(true)
	case "no", "n", "false":
		in.HasChildren = household.Some(false)
	default:
		return screening.Input{}, fmt.Errorf("invalid --children value %q: expected yes or no", o.children)
	}

	if cmd.Flags().Changed("age") {
		in.Age = household.Some(o.age)
	}
	return in, nil
}
