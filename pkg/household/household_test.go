package household

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/income-eligibility/pkg/measures"
)

var evaluationDate = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func testGuidelines() measures.Guidelines {
	return measures.Guidelines{
		Year: 2022,
		FPL:  measures.FPLGuideline{Base: decimal.NewFromInt(8870), PerPerson: decimal.NewFromInt(4720)},
		SMI: measures.SMIGuideline{
			Base:               decimal.NewFromInt(38940),
			PerPerson:          decimal.NewFromInt(17304),
			LargeBase:          decimal.NewFromInt(142776),
			LargePerPerson:     decimal.NewFromInt(3240),
			LargeHouseholdFrom: 7,
		},
		AMI: measures.AMIGuideline{
			Median4:            decimal.NewFromInt(129400),
			Low80Median4:       decimal.NewFromInt(95300),
			Anchor0:            decimal.NewFromInt(77640),
			Anchor0Low80:       decimal.NewFromInt(57180),
			BandBase:           decimal.NewFromInt(113125),
			SmallGrowth:        decimal.RequireFromString("0.1"),
			LargeGrowth:        decimal.RequireFromString("0.08"),
			AnchorSize:         4,
			LargeHouseholdFrom: 5,
			RoundTo:            decimal.NewFromInt(50),
		},
	}
}

func TestParseIncome(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		period   Period
		expected string
		wantErr  bool
	}{
		{"Monthly with separators", "2,500", Monthly, "30000", false},
		{"Annual with dollar sign", "$30,000.00", Annual, "30000", false},
		{"Monthly cents", "1234.56", Monthly, "14814.72", false},
		{"Zero", "0", Annual, "0", false},
		{"Empty", "", Annual, "", true},
		{"Words", "lots", Monthly, "", true},
		{"Negative", "-100", Annual, "", true},
		{"At the ceiling", "1,000,000,000", Annual, "1000000000", false},
		{"Above the ceiling", "1,000,000,001", Annual, "", true},
		{"Exponent form", "1e5", Annual, "", true},
		{"Thirty digits", "123456789012345678901234567890", Annual, "", true},
		{"Trailing dot", "100.", Annual, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIncome(tt.input, tt.period)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIncome)
				assert.ErrorIs(t, err, measures.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestParseIncomePeriod(t *testing.T) {
	tests := []struct {
		input    string
		expected Period
		wantErr  bool
	}{
		{"Monthly", Monthly, false},
		{"annual", Annual, false},
		{"", Monthly, false},
		{"Yearly", Annual, false},
		{"weekly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIncomePeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, measures.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeIncomeAppliedOnce(t *testing.T) {
	annual := NormalizeIncome(decimal.NewFromInt(2500), Monthly)
	h, err := New(annual, 1, testGuidelines())
	require.NoError(t, err)

	assert.True(t, h.AnnualIncome().Equal(decimal.NewFromInt(30000)))
	assert.True(t, h.MonthlyIncome().Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, measures.Measures{FPL: 221, SMI: 54, AMI: 33}, h.Measures())
}

func TestParseRent(t *testing.T) {
	rent, err := ParseRent("  ")
	require.NoError(t, err)
	assert.False(t, rent.IsPresent())

	rent, err = ParseRent("1,200")
	require.NoError(t, err)
	v, ok := rent.Get()
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(1200)))

	_, err = ParseRent("abc")
	assert.ErrorIs(t, err, ErrInvalidIncome)
}

func TestNewRejectsOversizedMonthlyIncome(t *testing.T) {
	annual, err := ParseIncome("900,000,000", Monthly)
	require.NoError(t, err)

	_, err = New(annual, 1, testGuidelines())
	assert.ErrorIs(t, err, measures.ErrInvalidInput)
}

func TestNewOptionalFacts(t *testing.T) {
	h, err := New(decimal.NewFromInt(30000), 2, testGuidelines())
	require.NoError(t, err)
	assert.False(t, h.HasChildren().IsPresent())
	assert.False(t, h.MonthlyRent().IsPresent())
	assert.False(t, h.Age().IsPresent())
	assert.False(t, h.BirthYear().IsPresent())

	h, err = New(decimal.NewFromInt(30000), 2, testGuidelines(),
		WithChildren(true),
		WithMonthlyRent(decimal.NewFromInt(1000)),
		WithDateOfBirth("1990-06-15", evaluationDate),
	)
	require.NoError(t, err)
	assert.True(t, h.HasChildren().OrElse(false))
	assert.Equal(t, 35, h.Age().OrElse(0))
	assert.False(t, h.BirthYear().IsPresent())
	rent, ok := h.MonthlyRent().Get()
	require.True(t, ok)
	assert.True(t, rent.Equal(decimal.NewFromInt(1000)))
}

func TestNewAgeOptions(t *testing.T) {
	h, err := New(decimal.NewFromInt(30000), 1, testGuidelines(), WithAge(40, evaluationDate))
	require.NoError(t, err)
	assert.Equal(t, 40, h.Age().OrElse(0))
	assert.Equal(t, 1985, h.BirthYear().OrElse(0))

	h, err = New(decimal.NewFromInt(30000), 1, testGuidelines(), WithDateOfBirth("2099-01-01", evaluationDate))
	require.NoError(t, err, "an implausible date of birth is not an error")
	assert.False(t, h.Age().IsPresent())

	h, err = New(decimal.NewFromInt(30000), 1, testGuidelines(), WithAge(150, evaluationDate))
	require.NoError(t, err)
	assert.False(t, h.Age().IsPresent())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(decimal.NewFromInt(30000), 0, testGuidelines())
	assert.ErrorIs(t, err, measures.ErrInvalidInput)

	_, err = New(decimal.NewFromInt(-1), 1, testGuidelines())
	assert.ErrorIs(t, err, measures.ErrInvalidInput)

	_, err = New(decimal.NewFromInt(30000), 1, testGuidelines(), WithMonthlyRent(decimal.NewFromInt(-5)))
	assert.ErrorIs(t, err, measures.ErrInvalidInput)
}

func TestOptionalJSON(t *testing.T) {
	type payload struct {
		Rent Optional[int] `json:"rent"`
		Kids Optional[bool] `json:"kids"`
	}

	data, err := json.Marshal(payload{Rent: Some(900)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rent": 900, "kids": null}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"rent": null, "kids": false}`), &decoded))
	assert.False(t, decoded.Rent.IsPresent())
	kids, ok := decoded.Kids.Get()
	assert.True(t, ok)
	assert.False(t, kids)
}
