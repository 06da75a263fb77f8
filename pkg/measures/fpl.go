package measures

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/mathutil"
)

// FPLPercent returns income as a percentage of the poverty guideline for the
// household size, always rounded up.
func FPLPercent(annualIncome decimal.Decimal, householdSize int, g FPLGuideline) (int, error) {
	if err := validateInput(annualIncome, householdSize); err != nil {
		return 0, err
	}
	return mathutil.CeilPercent(annualIncome, PovertyGuideline(householdSize, g)), nil
}

// PovertyGuideline returns the annual poverty guideline in dollars.
func PovertyGuideline(householdSize int, g FPLGuideline) decimal.Decimal {
	return size(householdSize).Mul(g.PerPerson).Add(g.Base)
}
