package household

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// ErrInvalidIncome is returned for an income or rent string that cannot be
// read as a non-negative amount. It wraps measures.ErrInvalidInput.
var ErrInvalidIncome = fmt.Errorf("%w: malformed amount", measures.ErrInvalidInput)

// Period is the period an income amount covers.
type Period string

const (
	Monthly Period = constants.IncomePeriodMonthly
	Annual  Period = constants.IncomePeriodAnnual
)

var (
	monthsPerYear = decimal.NewFromInt(constants.MonthsPerYear)
	maxAmount     = decimal.NewFromInt(constants.MaxIncome)

	// Plain decimal notation only; exponent forms such as "1e5" are rejected.
	amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// ParseIncomePeriod reads a period case-insensitively. An empty string is
// Monthly, the intake form's default.
func ParseIncomePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month":
		return Monthly, nil
	case "annual", "annually", "yearly", "year":
		return Annual, nil
	default:
		return "", fmt.Errorf("%w: unknown income period %q", measures.ErrInvalidInput, s)
	}
}

// NormalizeIncome returns the annual equivalent of amount.
func NormalizeIncome(amount decimal.Decimal, period Period) decimal.Decimal {
	if period == Monthly {
		return amount.Mul(monthsPerYear)
	}
	return amount
}

// ParseAmount reads a currency string such as "$2,500.00" into a
// non-negative amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidIncome)
	}

	if !amountPattern.MatchString(cleaned) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidIncome, s)
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidIncome, s)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidIncome, s)
	}
	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %q exceeds %s", ErrInvalidIncome, s, maxAmount)
	}
	return amount, nil
}

// ParseIncome reads an income string for the given period and returns the
// annual income.
func ParseIncome(s string, period Period) (decimal.Decimal, error) {
	amount, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	return NormalizeIncome(amount, period), nil
}

// ParseRent reads an optional monthly rent string. A blank string is absent
// rather than zero.
func ParseRent(s string) (Optional[decimal.Decimal], error) {
	if strings.TrimSpace(s) == "" {
		return None[decimal.Decimal](), nil
	}
	rent, err := ParseAmount(s)
	if err != nil {
		return None[decimal.Decimal](), err
	}
	return Some(rent), nil
}
