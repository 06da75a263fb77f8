package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iwvelando/income-eligibility/internal/screening"
	"github.com/iwvelando/income-eligibility/pkg/eligibility"
	"github.com/iwvelando/income-eligibility/pkg/household"
	"github.com/iwvelando/income-eligibility/pkg/measures"
)

var reportID = uuid.MustParse("6f1c1b8e-8f55-4c55-9d8e-0c7b5d0e2a11")

func sampleReport() screening.Report {
	m := measures.Measures{FPL: 177, SMI: 43, AMI: 26}
	facts := eligibility.Facts{
		AnnualIncome: decimal.NewFromInt(24000),
		MonthlyRent:  household.Some(decimal.NewFromInt(1000)),
	}
	return screening.Report{
		ID:             reportID,
		Year:           2022,
		Area:           "Seattle-Bellevue, WA HUD Metro FMR Area",
		HouseholdSize:  1,
		AnnualIncome:   decimal.NewFromInt(24000),
		MonthlyIncome:  decimal.NewFromInt(2000),
		MonthlyRent:    facts.MonthlyRent,
		Age:            household.Some(35),
		Measures:       m,
		Programs:       eligibility.Evaluate(m, facts),
		Determinations: eligibility.EvaluateDetailed(m, facts),
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, []screening.Report{sampleReport()}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Screening report " + reportID.String() + " ---",
		"Guideline year | 2022",
		"Area           | Seattle-Bellevue, WA HUD Metro FMR Area",
		"Annual income  | $24,000.00",
		"Monthly income | $2,000.00",
		"Monthly rent   | $1,000.00",
		"Children       | unknown",
		"Age            | 35",
		"Birth year     | unknown",
		"FPL            | 177%",
		"SMI            | 43%",
		"AMI            | 26%",
		"Program | Result | Reason",
		eligibility.AppleHealth + " | no | FPL of 177% is above 138%",
		eligibility.HousingStability + " | yes |",
		"Referrals:",
		"  - " + eligibility.BasicFood,
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat missing %q in:\n%s", want, output)
		}
	}
}

func TestPrettyFormatNoReferrals(t *testing.T) {
	m := measures.Measures{FPL: 900, SMI: 300, AMI: 250}
	r := screening.Report{
		ID:             reportID,
		Year:           2022,
		HouseholdSize:  1,
		AnnualIncome:   decimal.NewFromInt(120000),
		MonthlyIncome:  decimal.NewFromInt(10000),
		Measures:       m,
		Programs:       eligibility.Evaluate(m, eligibility.Facts{}),
		Determinations: eligibility.EvaluateDetailed(m, eligibility.Facts{}),
	}

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, []screening.Report{r}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "No program referrals") {
		t.Errorf("PrettyFormat should say there are no referrals:\n%s", output)
	}
	if !strings.Contains(output, eligibility.HousingStability+" | skipped | monthly rent not provided") {
		t.Errorf("PrettyFormat should show the skipped housing check:\n%s", output)
	}
	if strings.Contains(output, "Area ") {
		t.Errorf("PrettyFormat should omit an empty area:\n%s", output)
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, []screening.Report{sampleReport()}); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced unreadable CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header and one row, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][10] != "programs" {
		t.Errorf("Unexpected header %v", records[0])
	}

	row := records[1]
	expected := map[int]string{
		0: reportID.String(),
		1: "2022",
		2: "1",
		3: "24,000.00",
		4: "1,000.00",
		5: "",
		6: "35",
		7: "177",
		8: "43",
		9: "26",
	}
	for i, want := range expected {
		if row[i] != want {
			t.Errorf("Column %d = %q, expected %q", i, row[i], want)
		}
	}
	if !strings.HasPrefix(row[10], eligibility.BasicFood+"; "+eligibility.HousingStability) {
		t.Errorf("Unexpected programs column %q", row[10])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, []screening.Report{sampleReport()}); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat produced invalid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("Expected one report, got %d", len(decoded))
	}
	if decoded[0]["id"] != reportID.String() {
		t.Errorf("Unexpected id %v", decoded[0]["id"])
	}
	if decoded[0]["birthYear"] != nil {
		t.Errorf("Absent birth year should encode as null, got %v", decoded[0]["birthYear"])
	}
	m, ok := decoded[0]["measures"].(map[string]interface{})
	if !ok || m["fpl"] != float64(177) {
		t.Errorf("Unexpected measures %v", decoded[0]["measures"])
	}

	buf.Reset()
	if err := JSONFormat(&buf, nil); err != nil {
		t.Fatalf("JSONFormat(nil) error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("JSONFormat(nil) = %q, expected []", buf.String())
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		format    string
		prefix    string
		expectErr bool
	}{
		{"pretty", "--- Screening report", false},
		{"csv", "id,year", false},
		{"json", "[", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, tt.format, []screening.Report{sampleReport()})
			if tt.expectErr {
				if err == nil {
					t.Errorf("Render(%q) expected error", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render(%q) error = %v", tt.format, err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("Render(%q) output starts with %q", tt.format, buf.String()[:20])
			}
		})
	}
}
