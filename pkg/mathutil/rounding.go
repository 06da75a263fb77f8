// Package mathutil provides the rounding primitives shared by the income
// measures. Each rounding rule matches a distinct published table convention
// and they are intentionally kept separate.
package mathutil

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/constants"
)

var (
	hundred = decimal.NewFromInt(constants.PercentageMultiplier)
	maxInt  = decimal.NewFromInt(math.MaxInt)
	minInt  = decimal.NewFromInt(math.MinInt)
)

// Percent returns value / total expressed as a percentage. The multiplication
// happens before the division so exact ratios stay exact.
func Percent(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Mul(hundred).Div(total)
}

// CeilPercent returns value / total as a percentage rounded up to the next
// whole percent.
func CeilPercent(value, total decimal.Decimal) int {
	return toInt(Percent(value, total).Ceil())
}

// RoundHalfUp rounds to the nearest integer, halves away from zero.
func RoundHalfUp(val decimal.Decimal) int {
	return toInt(val.Round(0))
}

// toInt converts a whole decimal to an int, saturating at the int range
// instead of wrapping.
func toInt(val decimal.Decimal) int {
	if val.GreaterThan(maxInt) {
		return math.MaxInt
	}
	if val.LessThan(minInt) {
		return math.MinInt
	}
	return int(val.IntPart())
}

// CeilToMultiple emulates Excel's CEILING(val, multiple): the smallest multiple
// of multiple that is greater than or equal to val.
func CeilToMultiple(val, multiple decimal.Decimal) decimal.Decimal {
	if multiple.IsZero() {
		return val
	}
	return val.Div(multiple).Ceil().Mul(multiple)
}

// Ratio returns a / b, or zero when b is zero.
func Ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Within reports whether lo <= val <= hi.
func Within(val, lo, hi decimal.Decimal) bool {
	return val.GreaterThanOrEqual(lo) && val.LessThanOrEqual(hi)
}
