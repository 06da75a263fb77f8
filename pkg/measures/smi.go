package measures

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/mathutil"
)

// SMIPercent returns income as a percentage of the state median income for
// the household size, always rounded up.
func SMIPercent(annualIncome decimal.Decimal, householdSize int, g SMIGuideline) (int, error) {
	if err := validateInput(annualIncome, householdSize); err != nil {
		return 0, err
	}
	return mathutil.CeilPercent(annualIncome, StateMedianIncome(householdSize, g)), nil
}

// StateMedianIncome returns the annual state median income in dollars. Sizes
// below LargeHouseholdFrom (6 or fewer in the DSHS chart) use the per-person
// formula; LargeHouseholdFrom and above add a flat amount per extra person.
func StateMedianIncome(householdSize int, g SMIGuideline) decimal.Decimal {
	if householdSize < g.LargeHouseholdFrom {
		return size(householdSize).Mul(g.PerPerson).Add(g.Base)
	}
	extra := size(householdSize - g.LargeHouseholdFrom + 1)
	return g.LargeBase.Add(extra.Mul(g.LargePerPerson))
}
