// Package output provides utilities for formatting and displaying screening reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/income-eligibility/internal/screening"
	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/format"
	"github.com/iwvelando/income-eligibility/pkg/household"
	"github.com/iwvelando/income-eligibility/pkg/validation"
)

const unknown = "unknown"

// Render writes the reports to w in the named output format.
func Render(w io.Writer, outputFormat string, reports []screening.Report) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, reports)
	case constants.OutputFormatJSON:
		return JSONFormat(w, reports)
	default:
		return PrettyFormat(w, reports)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, reports []screening.Report) error {
	p := message.NewPrinter(language.English)
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "--- Screening report %s ---\n", r.ID)
		fmt.Fprintf(w, "Guideline year | %d\n", r.Year)
		if r.Area != "" {
			fmt.Fprintf(w, "Area           | %s\n", r.Area)
		}
		_, _ = p.Fprintf(w, "Household size | %d\n", r.HouseholdSize)
		fmt.Fprintf(w, "Annual income  | %s\n", format.Currency(r.AnnualIncome))
		fmt.Fprintf(w, "Monthly income | %s\n", format.Currency(r.MonthlyIncome))
		fmt.Fprintf(w, "Monthly rent   | %s\n", optionalCurrency(r.MonthlyRent))
		fmt.Fprintf(w, "Children       | %s\n", optionalBool(r.HasChildren))
		fmt.Fprintf(w, "Age            | %s\n", optionalInt(r.Age))
		fmt.Fprintf(w, "Birth year     | %s\n", optionalInt(r.BirthYear))
		fmt.Fprintf(w, "FPL            | %s\n", format.Percent(r.Measures.FPL))
		fmt.Fprintf(w, "SMI            | %s\n", format.Percent(r.Measures.SMI))
		fmt.Fprintf(w, "AMI            | %s\n", format.Percent(r.Measures.AMI))

		fmt.Fprintf(w, "\nProgram | Result | Reason\n")
		fmt.Fprintf(w, "_______ | ______ | ______\n")
		for _, d := range r.Determinations {
			result := "no"
			switch {
			case d.Skipped:
				result = "skipped"
			case d.Eligible:
				result = "yes"
			}
			fmt.Fprintf(w, "%s | %s | %s\n", d.Program, result, d.Reason)
		}

		if len(r.Programs) == 0 {
			fmt.Fprintf(w, "\nNo program referrals\n")
			continue
		}
		fmt.Fprintf(w, "\nReferrals:\n")
		for _, program := range r.Programs {
			fmt.Fprintf(w, "  - %s\n", program)
		}
	}
	return nil
}

// CsvFormat outputs one comma-separated row per report.
func CsvFormat(w io.Writer, reports []screening.Report) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "year", "household size", "annual income", "monthly rent",
		"children", "age", "fpl", "smi", "ami", "programs",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range reports {
		rent := ""
		if v, ok := r.MonthlyRent.Get(); ok {
			rent = format.NumericCurrency(v)
		}
		children := ""
		if v, ok := r.HasChildren.Get(); ok {
			children = strconv.FormatBool(v)
		}
		age := ""
		if v, ok := r.Age.Get(); ok {
			age = strconv.Itoa(v)
		}
		row := []string{
			r.ID.String(),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.HouseholdSize),
			format.NumericCurrency(r.AnnualIncome),
			rent,
			children,
			age,
			strconv.Itoa(r.Measures.FPL),
			strconv.Itoa(r.Measures.SMI),
			strconv.Itoa(r.Measures.AMI),
			strings.Join(r.Programs, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the reports as an indented JSON array.
func JSONFormat(w io.Writer, reports []screening.Report) error {
	if reports == nil {
		reports = []screening.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func optionalCurrency(o household.Optional[decimal.Decimal]) string {
	if v, ok := o.Get(); ok {
		return format.Currency(v)
	}
	return unknown
}

func optionalBool(o household.Optional[bool]) string {
	if v, ok := o.Get(); ok {
		if v {
			return "yes"
		}
		return "no"
	}
	return unknown
}

func optionalInt(o household.Optional[int]) string {
	if v, ok := o.Get(); ok {
		return strconv.Itoa(v)
	}
	return unknown
}
