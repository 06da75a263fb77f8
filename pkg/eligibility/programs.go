// Package eligibility screens a household's income measures against the
// income rules of the benefit programs 2-1-1 specialists refer to.
//
// Every threshold is in percent units: 138 means 138% of the poverty
// guideline, matching the integer percentages produced by package measures.
package eligibility

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/household"
	"github.com/iwvelando/income-eligibility/pkg/mathutil"
	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// Program names, as shown to specialists.
const (
	BasicFood              = "Washington Basic Food Program"
	AppleHealth            = "Apple Health"
	HousingStability       = "Housing Stability Project"
	LIHEAP                 = "Low Income Home Energy Assistance Program (LIHEAP)"
	PSEHelp                = "PSE HELP - PSE Customers Only"
	EmergencyLowIncomeAsst = "Emergency Low Income Assistance (ELIA) - SCL Customers Only"
)

// Program income limits in percent.
const (
	BasicFoodMaxFPL        = 200
	AppleHealthMaxFPL      = 138
	HousingStabilityMaxAMI = 50
	LIHEAPMaxFPL           = 150
	PSEHelpMaxAMI          = 80
	ELIAMaxSMI             = 70
)

// MinIncomeToRent is the lowest monthly income to rent ratio HSP accepts.
var MinIncomeToRent = decimal.RequireFromString("1.5")

// Facts are the household facts the program rules read besides the measures.
type Facts struct {
	AnnualIncome decimal.Decimal
	MonthlyRent  household.Optional[decimal.Decimal]
	HasChildren  household.Optional[bool]
}

// FactsFrom extracts the screening facts from a household.
func FactsFrom(h household.Household) Facts {
	return Facts{
		AnnualIncome: h.AnnualIncome(),
		MonthlyRent:  h.MonthlyRent(),
		HasChildren:  h.HasChildren(),
	}
}

// Determination is the outcome of one program rule. Skipped rules lacked an
// optional fact and are neither eligible nor failed.
type Determination struct {
	Program  string `json:"program"`
	Eligible bool   `json:"eligible"`
	Skipped  bool   `json:"skipped,omitempty"`
	Reason   string `json:"reason"`
}

// rule evaluates one program.
type rule struct {
	program string
	check   func(m measures.Measures, f Facts) Determination
}

// programs is the fixed priority order of the referral list.
var programs = []rule{
	{BasicFood, func(m measures.Measures, _ Facts) Determination {
		return atMost(BasicFood, "FPL", m.FPL, BasicFoodMaxFPL)
	}},
	{AppleHealth, func(m measures.Measures, _ Facts) Determination {
		return atMost(AppleHealth, "FPL", m.FPL, AppleHealthMaxFPL)
	}},
	{HousingStability, housingStability},
	{LIHEAP, func(m measures.Measures, _ Facts) Determination {
		return atMost(LIHEAP, "FPL", m.FPL, LIHEAPMaxFPL)
	}},
	{PSEHelp, func(m measures.Measures, _ Facts) Determination {
		return atMost(PSEHelp, "AMI", m.AMI, PSEHelpMaxAMI)
	}},
	{EmergencyLowIncomeAsst, func(m measures.Measures, _ Facts) Determination {
		return atMost(EmergencyLowIncomeAsst, "SMI", m.SMI, ELIAMaxSMI)
	}},
}

// Programs returns the program names in priority order.
func Programs() []string {
	names := make([]string, 0, len(programs))
	for _, p := range programs {
		names = append(names, p.program)
	}
	return names
}

// Evaluate returns the programs the household may be eligible for, in
// priority order.
func Evaluate(m measures.Measures, f Facts) []string {
	referrals := []string{}
	for _, d := range EvaluateDetailed(m, f) {
		if d.Eligible {
			referrals = append(referrals, d.Program)
		}
	}
	return referrals
}

// EvaluateDetailed returns one determination per program, in priority order.
func EvaluateDetailed(m measures.Measures, f Facts) []Determination {
	results := make([]Determination, 0, len(programs))
	for _, p := range programs {
		results = append(results, p.check(m, f))
	}
	return results
}

func atMost(program, measure string, value, limit int) Determination {
	if value > limit {
		return Determination{
			Program: program,
			Reason:  fmt.Sprintf("%s of %d%% is above %d%%", measure, value, limit),
		}
	}
	return Determination{
		Program:  program,
		Eligible: true,
		Reason:   fmt.Sprintf("%s of %d%% is at or below %d%%", measure, value, limit),
	}
}

// housingStability requires AMI at or below 50% and monthly income of at
// least one and a half times the rent. It is only scored when a positive rent
// is known.
func housingStability(m measures.Measures, f Facts) Determination {
	rent, ok := f.MonthlyRent.Get()
	if !ok || !rent.IsPositive() {
		return Determination{
			Program: HousingStability,
			Skipped: true,
			Reason:  "monthly rent not provided",
		}
	}

	if d := atMost(HousingStability, "AMI", m.AMI, HousingStabilityMaxAMI); !d.Eligible {
		return d
	}

	monthly := f.AnnualIncome.Div(decimal.NewFromInt(constants.MonthsPerYear))
	ratio := mathutil.Ratio(monthly, rent)
	if ratio.LessThan(MinIncomeToRent) {
		return Determination{
			Program: HousingStability,
			Reason:  fmt.Sprintf("income to rent ratio of %s is below %s", ratio.StringFixed(2), MinIncomeToRent),
		}
	}

	return Determination{
		Program:  HousingStability,
		Eligible: true,
		Reason:   fmt.Sprintf("AMI of %d%% and income to rent ratio of %s", m.AMI, ratio.StringFixed(2)),
	}
}
