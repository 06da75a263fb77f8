// Package screening turns an intake form into a screening report: the
// household's income measures and the programs it may be referred to.
package screening

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/income-eligibility/internal/config"
	"github.com/iwvelando/income-eligibility/pkg/datetime"
	"github.com/iwvelando/income-eligibility/pkg/eligibility"
	"github.com/iwvelando/income-eligibility/pkg/household"
	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// Input is the intake form as submitted by a specialist.
type Input struct {
	HouseholdSize int                      `json:"householdSize"`
	IncomeAmount  Amount                   `json:"incomeAmount"`
	IncomeType    string                   `json:"incomeType,omitempty"`
	HasChildren   household.Optional[bool] `json:"hasChildren"`
	MonthlyRent   Amount                   `json:"monthlyRent,omitempty"`
	DateOfBirth   string                   `json:"dateOfBirth,omitempty"`
	Age           household.Optional[int]  `json:"age"`
	Year          int                      `json:"year,omitempty"`
}

// Report is the result of screening one household.
type Report struct {
	ID             uuid.UUID                           `json:"id"`
	Year           int                                 `json:"year"`
	Source         string                              `json:"source,omitempty"`
	Area           string                              `json:"area,omitempty"`
	HouseholdSize  int                                 `json:"householdSize"`
	AnnualIncome   decimal.Decimal                     `json:"annualIncome"`
	MonthlyIncome  decimal.Decimal                     `json:"monthlyIncome"`
	HasChildren    household.Optional[bool]            `json:"hasChildren"`
	MonthlyRent    household.Optional[decimal.Decimal] `json:"monthlyRent"`
	Age            household.Optional[int]             `json:"age"`
	BirthYear      household.Optional[int]             `json:"birthYear"`
	Measures       measures.Measures                   `json:"measures"`
	Programs       []string                            `json:"programs"`
	Determinations []eligibility.Determination         `json:"determinations"`
}

// Screener screens households against the configured guideline years.
type Screener struct {
	logger *zap.Logger
	conf   *config.Configuration
	now    func() time.Time
}

// NewScreener returns a Screener over conf.
func NewScreener(logger *zap.Logger, conf *config.Configuration) *Screener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{
		logger: logger,
		conf:   conf,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to derive ages.
func (s *Screener) WithClock(now func() time.Time) *Screener {
	s.now = now
	return s
}

// Screen validates the form, builds the household and evaluates every
// program. Invalid input returns an error wrapping measures.ErrInvalidInput.
func (s *Screener) Screen(in Input) (Report, error) {
	year := s.conf.ResolveYear(in.Year)
	g, err := s.conf.Guideline(year)
	if err != nil {
		return Report{}, err
	}

	period, err := household.ParseIncomePeriod(in.IncomeType)
	if err != nil {
		return Report{}, err
	}
	income, err := household.ParseIncome(string(in.IncomeAmount), period)
	if err != nil {
		return Report{}, fmt.Errorf("income: %w", err)
	}
	rent, err := household.ParseRent(string(in.MonthlyRent))
	if err != nil {
		return Report{}, fmt.Errorf("monthly rent: %w", err)
	}

	opts := []household.Option{household.WithOptionalRent(rent)}
	if hasChildren, ok := in.HasChildren.Get(); ok {
		opts = append(opts, household.WithChildren(hasChildren))
	}
	if opt := s.ageOption(in); opt != nil {
		opts = append(opts, opt)
	}

	h, err := household.New(income, in.HouseholdSize, g, opts...)
	if err != nil {
		return Report{}, err
	}

	facts := eligibility.FactsFrom(h)
	gc := s.conf.Guidelines[strconv.Itoa(year)]
	report := Report{
		ID:             uuid.New(),
		Year:           year,
		Source:         gc.Source,
		Area:           gc.AMI.Area,
		HouseholdSize:  h.Size(),
		AnnualIncome:   h.AnnualIncome(),
		MonthlyIncome:  h.MonthlyIncome().Round(2),
		HasChildren:    h.HasChildren(),
		MonthlyRent:    h.MonthlyRent(),
		Age:            h.Age(),
		BirthYear:      h.BirthYear(),
		Measures:       h.Measures(),
		Programs:       eligibility.Evaluate(h.Measures(), facts),
		Determinations: eligibility.EvaluateDetailed(h.Measures(), facts),
	}

	s.logger.Debug("screened household",
		zap.String("op", "screening.Screen"),
		zap.String("id", report.ID.String()),
		zap.Int("year", year),
		zap.Int("householdSize", report.HouseholdSize),
		zap.Int("fpl", report.Measures.FPL),
		zap.Int("smi", report.Measures.SMI),
		zap.Int("ami", report.Measures.AMI),
		zap.Int("programs", len(report.Programs)),
	)
	return report, nil
}

// ageOption prefers a usable date of birth and falls back to a stated age.
func (s *Screener) ageOption(in Input) household.Option {
	now := s.now()
	if dob := strings.TrimSpace(in.DateOfBirth); dob != "" {
		if _, err := datetime.ParseDOB(dob); err != nil {
			s.logger.Debug("date of birth unparsable, age unknown",
				zap.String("op", "screening.Screen"),
				zap.Error(err),
			)
		} else if _, ok := datetime.AgeFromDOB(dob, now); ok {
			return household.WithDateOfBirth(dob, now)
		} else {
			s.logger.Debug("date of birth gives an implausible age, age unknown",
				zap.String("op", "screening.Screen"),
				zap.String("dateOfBirth", dob),
			)
		}
	}
	if age, ok := in.Age.Get(); ok {
		return household.WithAge(age, now)
	}
	return nil
}

// Measures computes the income measures for an annual income under the
// given guideline year.
func (s *Screener) Measures(annualIncome decimal.Decimal, householdSize, year int) (measures.Measures, error) {
	g, err := s.conf.Guideline(year)
	if err != nil {
		return measures.Measures{}, err
	}
	return ComputeMeasures(annualIncome, householdSize, g)
}

// Breakdown computes the income measures along with the AMI intermediates.
func (s *Screener) Breakdown(annualIncome decimal.Decimal, householdSize, year int) (measures.Measures, measures.AMIResult, error) {
	g, err := s.conf.Guideline(year)
	if err != nil {
		return measures.Measures{}, measures.AMIResult{}, err
	}
	m, err := ComputeMeasures(annualIncome, householdSize, g)
	if err != nil {
		return measures.Measures{}, measures.AMIResult{}, err
	}
	ami, err := measures.AMIBreakdown(annualIncome, householdSize, g.AMI)
	if err != nil {
		return measures.Measures{}, measures.AMIResult{}, err
	}
	return m, ami, nil
}

// ComputeMeasures returns the FPL, SMI and AMI percentages for an annual
// income and household size.
func ComputeMeasures(annualIncome decimal.Decimal, householdSize int, g measures.Guidelines) (measures.Measures, error) {
	return measures.Compute(annualIncome, householdSize, g)
}
