// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// ToGuidelines converts a configured guideline year into the measures tables.
// Floats from YAML are converted through their shortest decimal
// representation, so 0.08 becomes exactly 0.08.
func (gc GuidelineConfig) ToGuidelines(year int) (measures.Guidelines, error) {
	g := measures.Guidelines{
		Year: year,
		FPL: measures.FPLGuideline{
			Base:      decimal.NewFromFloat(gc.FPL.Base),
			PerPerson: decimal.NewFromFloat(gc.FPL.PerPerson),
		},
		SMI: measures.SMIGuideline{
			Base:               decimal.NewFromFloat(gc.SMI.Base),
			PerPerson:          decimal.NewFromFloat(gc.SMI.PerPerson),
			LargeBase:          decimal.NewFromFloat(gc.SMI.LargeBase),
			LargePerPerson:     decimal.NewFromFloat(gc.SMI.LargePerPerson),
			LargeHouseholdFrom: gc.SMI.LargeHouseholdFrom,
		},
		AMI: measures.AMIGuideline{
			Median4:            decimal.NewFromFloat(gc.AMI.Median4),
			Low80Median4:       decimal.NewFromFloat(gc.AMI.Low80Median4),
			Anchor0:            decimal.NewFromFloat(gc.AMI.Anchor0),
			Anchor0Low80:       decimal.NewFromFloat(gc.AMI.Anchor0Low80),
			BandBase:           decimal.NewFromFloat(gc.AMI.BandBase),
			SmallGrowth:        decimal.NewFromFloat(gc.AMI.SmallGrowth),
			LargeGrowth:        decimal.NewFromFloat(gc.AMI.LargeGrowth),
			AnchorSize:         gc.AMI.AnchorSize,
			LargeHouseholdFrom: gc.AMI.LargeHouseholdFrom,
			RoundTo:            decimal.NewFromFloat(gc.AMI.RoundTo),
		},
	}

	if err := g.Validate(); err != nil {
		return measures.Guidelines{}, fmt.Errorf("invalid guideline configuration: %w", err)
	}
	return g, nil
}

// FromGuidelines converts measures tables back into their configuration form.
func FromGuidelines(g measures.Guidelines) GuidelineConfig {
	f := func(d decimal.Decimal) float64 { return d.InexactFloat64() }
	return GuidelineConfig{
		FPL: FPLConfig{
			Base:      f(g.FPL.Base),
			PerPerson: f(g.FPL.PerPerson),
		},
		SMI: SMIConfig{
			Base:               f(g.SMI.Base),
			PerPerson:          f(g.SMI.PerPerson),
			LargeBase:          f(g.SMI.LargeBase),
			LargePerPerson:     f(g.SMI.LargePerPerson),
			LargeHouseholdFrom: g.SMI.LargeHouseholdFrom,
		},
		AMI: AMIConfig{
			Median4:            f(g.AMI.Median4),
			Low80Median4:       f(g.AMI.Low80Median4),
			Anchor0:            f(g.AMI.Anchor0),
			Anchor0Low80:       f(g.AMI.Anchor0Low80),
			BandBase:           f(g.AMI.BandBase),
			SmallGrowth:        f(g.AMI.SmallGrowth),
			LargeGrowth:        f(g.AMI.LargeGrowth),
			AnchorSize:         g.AMI.AnchorSize,
			LargeHouseholdFrom: g.AMI.LargeHouseholdFrom,
			RoundTo:            f(g.AMI.RoundTo),
		},
	}
}
