package measures

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/mathutil"
)

// Fixed points of the HUD income limit methodology.
var (
	bandLow  = decimal.NewFromInt(71)
	bandHigh = decimal.NewFromInt(81)
	two      = decimal.NewFromInt(2)
)

const (
	// VeryLowIncomeCapPercent is reported when income exceeds the 50% limit
	// but the formula estimate still falls below 51%.
	VeryLowIncomeCapPercent = 51

	// LowIncomeCapPercent is reported when income exceeds the 80% limit but
	// the formula estimate still falls below 81%.
	LowIncomeCapPercent = 81
)

// AMIResult holds every intermediate value of the AMI pipeline.
type AMIResult struct {
	// Initial is the unrounded first estimate in percent.
	Initial decimal.Decimal `json:"initial"`
	// Adjusted is Initial, or the 70-80% band recomputation when Initial
	// falls in [71, 81].
	Adjusted decimal.Decimal `json:"adjusted"`
	// InBand reports whether the band recomputation was applied.
	InBand bool `json:"inBand"`
	// ReferenceIncome is the massaged 100% AMI income for the household size.
	ReferenceIncome decimal.Decimal `json:"referenceIncome"`
	// VeryLowIncomeLimit is the 50% income limit, ceiled to RoundTo.
	VeryLowIncomeLimit decimal.Decimal `json:"veryLowIncomeLimit"`
	// LowIncomeLimit is the 80% income limit, ceiled to RoundTo.
	LowIncomeLimit decimal.Decimal `json:"lowIncomeLimit"`
	// VeryLowIncomeCapped reports whether the 50% cap check fired.
	VeryLowIncomeCapped bool `json:"veryLowIncomeCapped"`
	// LowIncomeCapped reports whether the 80% cap check fired.
	LowIncomeCapped bool `json:"lowIncomeCapped"`
	// Percent is the final AMI percentage.
	Percent int `json:"percent"`
}

// AMIPercent returns income as a percentage of area median income for the
// household size, with the 50% and 80% caps applied.
func AMIPercent(annualIncome decimal.Decimal, householdSize int, g AMIGuideline) (int, error) {
	res, err := AMIBreakdown(annualIncome, householdSize, g)
	if err != nil {
		return 0, err
	}
	return res.Percent, nil
}

// AMIBreakdown runs the AMI pipeline and returns its intermediate values.
// The steps consume each other's results and must run in this order.
func AMIBreakdown(annualIncome decimal.Decimal, householdSize int, g AMIGuideline) (AMIResult, error) {
	if err := validateInput(annualIncome, householdSize); err != nil {
		return AMIResult{}, err
	}

	var res AMIResult

	res.ReferenceIncome = ReferenceIncome(householdSize, g)
	res.Initial = mathutil.Percent(annualIncome, res.ReferenceIncome)
	res.LowIncomeLimit = LowIncomeLimit(householdSize, g)

	res.Adjusted = res.Initial
	if mathutil.Within(res.Initial, bandLow, bandHigh) {
		res.InBand = true
		res.Adjusted = mathutil.Percent(annualIncome, bandIncome(householdSize, g))
	}

	res.VeryLowIncomeLimit = VeryLowIncomeLimit(householdSize, g)

	res.Percent = mathutil.RoundHalfUp(res.Adjusted)
	if annualIncome.GreaterThan(res.VeryLowIncomeLimit) && res.Adjusted.LessThan(decimal.NewFromInt(VeryLowIncomeCapPercent)) {
		res.VeryLowIncomeCapped = true
		res.Percent = VeryLowIncomeCapPercent
	}
	// The 80% check runs last and wins when both fire.
	if annualIncome.GreaterThan(res.LowIncomeLimit) && res.Adjusted.LessThan(decimal.NewFromInt(LowIncomeCapPercent)) {
		res.LowIncomeCapped = true
		res.Percent = LowIncomeCapPercent
	}

	return res, nil
}

// ReferenceIncome returns the massaged 100% AMI income for a household size.
// Households below LargeHouseholdFrom grow from the size-zero anchor by
// SmallGrowth of the four-person median per person; larger households grow
// from the four-person median by LargeGrowth per person beyond AnchorSize.
func ReferenceIncome(householdSize int, g AMIGuideline) decimal.Decimal {
	if householdSize < g.LargeHouseholdFrom {
		return g.Anchor0.Add(g.Median4.Mul(g.SmallGrowth).Mul(size(householdSize)))
	}
	return g.Median4.Add(g.Median4.Mul(g.LargeGrowth).Mul(size(householdSize - g.AnchorSize)))
}

// LowIncomeLimit returns the 80% income limit ceiled to RoundTo dollars.
func LowIncomeLimit(householdSize int, g AMIGuideline) decimal.Decimal {
	var limit decimal.Decimal
	if householdSize < g.LargeHouseholdFrom {
		limit = g.Anchor0Low80.Add(g.Low80Median4.Mul(size(householdSize).Mul(g.SmallGrowth)))
	} else {
		limit = g.Low80Median4.Add(g.Low80Median4.Mul(size(householdSize - g.AnchorSize)).Mul(g.LargeGrowth))
	}
	return mathutil.CeilToMultiple(limit, g.RoundTo)
}

// VeryLowIncomeLimit returns the 50% income limit: half the reference income
// ceiled to RoundTo dollars.
func VeryLowIncomeLimit(householdSize int, g AMIGuideline) decimal.Decimal {
	return mathutil.CeilToMultiple(ReferenceIncome(householdSize, g).Div(two), g.RoundTo)
}

// bandIncome is the denominator used for incomes whose first estimate falls
// in the 71-81% band. It is anchored at AnchorSize in both directions.
func bandIncome(householdSize int, g AMIGuideline) decimal.Decimal {
	growth := g.LargeGrowth
	if householdSize < g.LargeHouseholdFrom {
		growth = g.SmallGrowth
	}
	offset := size(householdSize - g.AnchorSize)
	return g.BandBase.Add(offset.Mul(g.BandBase).Mul(growth))
}
