// Package household defines the household value object screened for benefit
// programs. A Household is built once from validated input, computes its
// income measures at construction and is read-only afterwards.
package household

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/pkg/datetime"
	"github.com/iwvelando/income-eligibility/pkg/measures"
)

// Household is an immutable set of household facts and their income measures.
type Household struct {
	annualIncome decimal.Decimal
	size         int
	hasChildren  Optional[bool]
	monthlyRent  Optional[decimal.Decimal]
	age          Optional[int]
	birthYear    Optional[int]
	measures     measures.Measures
}

// Option sets an optional household fact.
type Option func(*Household) error

// WithChildren records whether minor children live in the household.
func WithChildren(hasChildren bool) Option {
	return func(h *Household) error {
		h.hasChildren = Some(hasChildren)
		return nil
	}
}

// WithMonthlyRent records the monthly rent.
func WithMonthlyRent(rent decimal.Decimal) Option {
	return func(h *Household) error {
		if rent.IsNegative() {
			return fmt.Errorf("%w: monthly rent must not be negative, got %s", measures.ErrInvalidInput, rent)
		}
		h.monthlyRent = Some(rent)
		return nil
	}
}

// WithOptionalRent records the monthly rent when present.
func WithOptionalRent(rent Optional[decimal.Decimal]) Option {
	return func(h *Household) error {
		if r, ok := rent.Get(); ok {
			return WithMonthlyRent(r)(h)
		}
		return nil
	}
}

// WithDateOfBirth derives the client's age at now. An unparsable or
// implausible date leaves the age unknown.
func WithDateOfBirth(dob string, now time.Time) Option {
	return func(h *Household) error {
		if age, ok := datetime.AgeFromDOB(dob, now); ok {
			h.age = Some(age)
		}
		return nil
	}
}

// WithAge records the client's age and estimates their birth year. An
// implausible age leaves both unknown.
func WithAge(age int, now time.Time) Option {
	return func(h *Household) error {
		if year, ok := datetime.BirthYearFromAge(age, now); ok {
			h.age = Some(age)
			h.birthYear = Some(year)
		}
		return nil
	}
}

// New builds a Household from an annual income and household size and
// computes its measures under g. Monthly incomes must already be normalized
// with NormalizeIncome.
func New(annualIncome decimal.Decimal, size int, g measures.Guidelines, opts ...Option) (Household, error) {
	h := Household{
		annualIncome: annualIncome,
		size:         size,
	}

	m, err := measures.Compute(annualIncome, size, g)
	if err != nil {
		return Household{}, err
	}
	h.measures = m

	for _, opt := range opts {
		if err := opt(&h); err != nil {
			return Household{}, err
		}
	}
	return h, nil
}

// AnnualIncome returns the annualized income.
func (h Household) AnnualIncome() decimal.Decimal { return h.annualIncome }

// MonthlyIncome returns the annual income spread over twelve months.
func (h Household) MonthlyIncome() decimal.Decimal { return h.annualIncome.Div(monthsPerYear) }

// Size returns the number of people in the household.
func (h Household) Size() int { return h.size }

// HasChildren returns whether minor children are present, if known.
func (h Household) HasChildren() Optional[bool] { return h.hasChildren }

// MonthlyRent returns the monthly rent, if known.
func (h Household) MonthlyRent() Optional[decimal.Decimal] { return h.monthlyRent }

// Age returns the client's age, if known.
func (h Household) Age() Optional[int] { return h.age }

// BirthYear returns the client's estimated birth year, if an age was given.
func (h Household) BirthYear() Optional[int] { return h.birthYear }

// Measures returns the income measures computed at construction.
func (h Household) Measures() measures.Measures { return h.measures }
