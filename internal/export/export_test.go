package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/opptrack/internal/dashboard"
	"github.com/jimezsa/opptrack/internal/models"
)

var sampleRecords = []models.Opportunity{
	{
		ID:           "0f8d1c2e-aaaa-bbbb-cccc-000000000001",
		Title:        "Data Intern",
		Organization: "Acme Corp",
		Status:       models.StatusInProgress,
		Deadline:     "2026-05-01",
		Link:         "https://www.acme.org/jobs/1",
		Assessment:   &models.Assessment{Status: models.EligibilityGap, Summary: "Eligibility gaps detected", Gaps: []string{"GPA 3.20 < 3.50"}},
	},
}

func TestWriteRecordsJSONOmitsAssessment(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded[0]["title"] != "Data Intern" {
		t.Fatalf("decoded = %v", decoded[0])
	}
	if _, ok := decoded[0]["assessment"]; ok {
		t.Fatalf("assessment leaked into json")
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords, FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	header, row := rows[0], rows[1]
	if header[0] != "id" || header[1] != models.FieldTitle || header[len(header)-1] != "fit" {
		t.Fatalf("header = %v", header)
	}
	if row[len(row)-1] != "gap" || row[1] != "Data Intern" {
		t.Fatalf("row = %v", row)
	}
}

func TestWriteRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, sampleRecords, FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"0f8d1c2e", "Data Intern", "In Progress", "https://www.acme.org/jobs/1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0f8d1c2e-aaaa") {
		t.Fatalf("table should show short ids:\n%s", out)
	}
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}
	if buf.String() != "No opportunities.\n" {
		t.Fatalf("markdown = %q", buf.String())
	}
}

func TestParseFormatAndPath(t *testing.T) {
	if got, err := ParseFormat("Markdown"); err != nil || got != FormatMarkdown {
		t.Fatalf("ParseFormat(Markdown) = %q, %v", got, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("ParseFormat(xml) succeeded")
	}
	if got, ok := FormatForPath("out/records.JSON"); !ok || got != FormatJSON {
		t.Fatalf("FormatForPath() = %q, %v", got, ok)
	}
	if _, ok := FormatForPath("records.txt"); ok {
		t.Fatalf("FormatForPath(txt) matched")
	}
}

func TestWriteDashboardTable(t *testing.T) {
	now := time.Date(2026, time.April, 28, 0, 0, 0, 0, time.UTC)
	summary := dashboard.Build(sampleRecords, models.Profile{}, now, dashboard.DefaultLimits())

	var buf bytes.Buffer
	if err := WriteDashboard(&buf, summary, FormatTable); err != nil {
		t.Fatalf("WriteDashboard() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Total 1  Due soon 1", "Deadline radar", "2026-05-01 Due in 3 days", "GPA 3.20 < 3.50", "Next actions", "none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestWriteDashboardCSV(t *testing.T) {
	now := time.Date(2026, time.April, 28, 0, 0, 0, 0, time.UTC)
	summary := dashboard.Build(sampleRecords, models.Profile{}, now, dashboard.DefaultLimits())

	var buf bytes.Buffer
	if err := WriteDashboard(&buf, summary, FormatTSV); err != nil {
		t.Fatalf("WriteDashboard() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %v", lines)
	}
	if !strings.HasPrefix(lines[1], "watchlist\t") || !strings.HasPrefix(lines[2], "radar\t") {
		t.Fatalf("unexpected sections: %v", lines)
	}
}
