package measures

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FPLGuideline holds the HHS poverty guideline for one year: the guideline for
// a household of size n is n*PerPerson + Base.
type FPLGuideline struct {
	Base      decimal.Decimal
	PerPerson decimal.Decimal
}

// SMIGuideline holds the state median income chart for one year. Households
// smaller than LargeHouseholdFrom use Base + size*PerPerson; larger households
// use LargeBase + (size-LargeHouseholdFrom+1)*LargePerPerson.
type SMIGuideline struct {
	Base               decimal.Decimal
	PerPerson          decimal.Decimal
	LargeBase          decimal.Decimal
	LargePerPerson     decimal.Decimal
	LargeHouseholdFrom int
}

// AMIGuideline holds the HUD income limit inputs for one year and area.
//
// Median4 is the median family income for a household of four and
// Low80Median4 is the published 80% (low income) limit for four. Anchor0 and
// Anchor0Low80 are the extrapolated 100% and 80% incomes for a household of
// zero, from which smaller households grow by SmallGrowth of the four-person
// figure per person. Households of LargeHouseholdFrom or more grow from the
// four-person figure by LargeGrowth per additional person. BandBase anchors
// the recomputation for incomes whose first estimate lands in the 71-81% band.
type AMIGuideline struct {
	Median4            decimal.Decimal
	Low80Median4       decimal.Decimal
	Anchor0            decimal.Decimal
	Anchor0Low80       decimal.Decimal
	BandBase           decimal.Decimal
	SmallGrowth        decimal.Decimal
	LargeGrowth        decimal.Decimal
	AnchorSize         int
	LargeHouseholdFrom int
	RoundTo            decimal.Decimal
}

// Guidelines bundles every table needed to compute the measures for one
// guideline year.
type Guidelines struct {
	Year int
	FPL  FPLGuideline
	SMI  SMIGuideline
	AMI  AMIGuideline
}

// Validate checks that the guideline tables can produce finite, positive
// denominators.
func (g Guidelines) Validate() error {
	positive := []struct {
		name  string
		value decimal.Decimal
	}{
		{"fpl.base", g.FPL.Base},
		{"fpl.perPerson", g.FPL.PerPerson},
		{"smi.base", g.SMI.Base},
		{"smi.perPerson", g.SMI.PerPerson},
		{"smi.largeBase", g.SMI.LargeBase},
		{"ami.median4", g.AMI.Median4},
		{"ami.low80Median4", g.AMI.Low80Median4},
		{"ami.anchor0", g.AMI.Anchor0},
		{"ami.anchor0Low80", g.AMI.Anchor0Low80},
		{"ami.bandBase", g.AMI.BandBase},
		{"ami.roundTo", g.AMI.RoundTo},
	}
	for _, p := range positive {
		if !p.value.IsPositive() {
			return fmt.Errorf("guidelines %d: %s must be positive, got %s", g.Year, p.name, p.value)
		}
	}

	if g.SMI.LargePerPerson.IsNegative() {
		return fmt.Errorf("guidelines %d: smi.largePerPerson must not be negative", g.Year)
	}
	if g.SMI.LargeHouseholdFrom < 2 {
		return fmt.Errorf("guidelines %d: smi.largeHouseholdFrom must be at least 2, got %d", g.Year, g.SMI.LargeHouseholdFrom)
	}
	if g.AMI.SmallGrowth.IsNegative() || g.AMI.LargeGrowth.IsNegative() {
		return fmt.Errorf("guidelines %d: ami growth rates must not be negative", g.Year)
	}
	if g.AMI.AnchorSize < 1 {
		return fmt.Errorf("guidelines %d: ami.anchorSize must be at least 1, got %d", g.Year, g.AMI.AnchorSize)
	}
	// The band denominator shrinks by SmallGrowth per person below AnchorSize.
	if !decimal.NewFromInt(int64(g.AMI.AnchorSize - 1)).Mul(g.AMI.SmallGrowth).LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("guidelines %d: ami.smallGrowth too large for anchor size %d", g.Year, g.AMI.AnchorSize)
	}
	if g.AMI.LargeHouseholdFrom < 1 {
		return fmt.Errorf("guidelines %d: ami.largeHouseholdFrom must be at least 1, got %d", g.Year, g.AMI.LargeHouseholdFrom)
	}
	return nil
}
