package screening

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// LimitRow is the dollar threshold of each measure for one household size.
type LimitRow struct {
	HouseholdSize      int             `json:"householdSize"`
	PovertyGuideline   decimal.Decimal `json:"povertyGuideline"`
	StateMedianIncome  decimal.Decimal `json:"stateMedianIncome"`
	AreaMedianIncome   decimal.Decimal `json:"areaMedianIncome"`
	VeryLowIncomeLimit decimal.Decimal `json:"veryLowIncomeLimit"`
	LowIncomeLimit     decimal.Decimal `json:"lowIncomeLimit"`
}

// Limits tabulates the guideline incomes for household sizes 1 through maxSize.
func Limits(g measures.Guidelines, maxSize int) []LimitRow {
	rows := make([]LimitRow, 0, maxSize)
	for size := 1; size <= maxSize; size++ {
		rows = append(rows, LimitRow{
			HouseholdSize:      size,
			PovertyGuideline:   measures.PovertyGuideline(size, g.FPL),
			StateMedianIncome:  measures.StateMedianIncome(size, g.SMI),
			AreaMedianIncome:   measures.ReferenceIncome(size, g.AMI),
			VeryLowIncomeLimit: measures.VeryLowIncomeLimit(size, g.AMI),
			LowIncomeLimit:     measures.LowIncomeLimit(size, g.AMI),
		})
	}
	return rows
}
