// Package measures computes the standardized income measures used to screen a
// household for benefit programs: the Federal Poverty Level percentage (FPL),
// the State Median Income percentage (SMI) and the Area Median Income
// percentage (AMI).
//
// All three are pure functions of annual income and household size under a
// given set of Guidelines. Percentages are whole numbers in percent units, so
// 50 means 50%.
package measures

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/constants"
)

var maxIncome = decimal.NewFromInt(constants.MaxIncome)

// ErrInvalidInput is returned for a household size below one or an income
// that is negative or above constants.MaxIncome.
var ErrInvalidInput = errors.New("invalid input")

// Measures holds the three computed income measures for a household.
type Measures struct {
	FPL int `json:"fpl"`
	SMI int `json:"smi"`
	AMI int `json:"ami"`
}

// Compute returns all three measures, or an error and no partial result.
func Compute(annualIncome decimal.Decimal, householdSize int, g Guidelines) (Measures, error) {
	if err := validateInput(annualIncome, householdSize); err != nil {
		return Measures{}, err
	}

	fpl, err := FPLPercent(annualIncome, householdSize, g.FPL)
	if err != nil {
		return Measures{}, err
	}
	smi, err := SMIPercent(annualIncome, householdSize, g.SMI)
	if err != nil {
		return Measures{}, err
	}
	ami, err := AMIPercent(annualIncome, householdSize, g.AMI)
	if err != nil {
		return Measures{}, err
	}

	return Measures{FPL: fpl, SMI: smi, AMI: ami}, nil
}

func validateInput(annualIncome decimal.Decimal, householdSize int) error {
	if householdSize < 1 {
		return fmt.Errorf("%w: household size must be at least 1, got %d", ErrInvalidInput, householdSize)
	}
	if annualIncome.IsNegative() {
		return fmt.Errorf("%w: annual income must not be negative, got %s", ErrInvalidInput, annualIncome)
	}
	if annualIncome.GreaterThan(maxIncome) {
		return fmt.Errorf("%w: annual income must not exceed %s, got %s", ErrInvalidInput, maxIncome, annualIncome)
	}
	return nil
}

func size(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
