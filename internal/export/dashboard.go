package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/opptrack/internal/dashboard"
	"github.com/jimezsa/opptrack/internal/dateparse"
	"github.com/jimezsa/opptrack/internal/models"
)

// dashboardRow is one line of a dashboard section in the flat formats.
type dashboardRow struct {
	section string
	record  models.Opportunity
	detail  string
}

// WriteDashboard writes the dashboard summary. CSV and TSV flatten every
// section into section,id,title,organization,detail rows.
func WriteDashboard(w io.Writer, summary dashboard.Summary, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatCSV:
		return writeDashboardCSV(w, summary, ',')
	case FormatTSV:
		return writeDashboardCSV(w, summary, '\t')
	case FormatMarkdown:
		return writeDashboardMarkdown(w, summary)
	default:
		return writeDashboardTable(w, summary)
	}
}

func dashboardRows(summary dashboard.Summary) []dashboardRow {
	var rows []dashboardRow
	for _, action := range summary.NextActions {
		detail := action.Record.NextAction
		if action.HasDate {
			detail += " (" + dateparse.Format(action.Date) + ")"
		}
		rows = append(rows, dashboardRow{"next_action", action.Record, detail})
	}
	for _, record := range summary.Watchlist {
		rows = append(rows, dashboardRow{"watchlist", record, watchDetail(record)})
	}
	for _, entry := range summary.Radar {
		rows = append(rows, dashboardRow{"radar", entry.Record, dateparse.Format(entry.Deadline) + " " + entry.Label})
	}
	return rows
}

func watchDetail(record models.Opportunity) string {
	if record.Assessment == nil {
		return ""
	}
	detail := record.Assessment.Summary
	if len(record.Assessment.Gaps) > 0 {
		detail += ": " + strings.Join(record.Assessment.Gaps, "; ")
	}
	return detail
}

func writeDashboardCSV(w io.Writer, summary dashboard.Summary, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write([]string{"section", "id", "title", "organization", "detail"}); err != nil {
		return err
	}
	for _, row := range dashboardRows(summary) {
		if err := writer.Write([]string{row.section, row.record.ID, row.record.Title, row.record.Organization, row.detail}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeDashboardTable(w io.Writer, summary dashboard.Summary) error {
	c := summary.Counts
	fmt.Fprintf(w, "Total %d  Due soon %d  Overdue %d  High priority %d\n", c.Total, c.DueSoon, c.Overdue, c.HighPriority)

	sections := []struct {
		title   string
		section string
	}{
		{"Next actions", "next_action"},
		{"Eligibility watchlist", "watchlist"},
		{"Deadline radar", "radar"},
	}
	rows := dashboardRows(summary)
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s\n", s.title)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		count := 0
		for _, row := range rows {
			if row.section != s.section {
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", ShortID(row.record.ID), dash(row.record.Title), dash(row.record.Organization), row.detail)
			count++
		}
		if count == 0 {
			fmt.Fprintln(tw, "  none")
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeDashboardMarkdown(w io.Writer, summary dashboard.Summary) error {
	c := summary.Counts
	lines := []string{
		"## Dashboard",
		"",
		fmt.Sprintf("- Total: %d", c.Total),
		fmt.Sprintf("- Due soon: %d", c.DueSoon),
		fmt.Sprintf("- Overdue: %d", c.Overdue),
		fmt.Sprintf("- High priority: %d", c.HighPriority),
	}
	titles := map[string]string{
		"next_action": "Next actions",
		"watchlist":   "Eligibility watchlist",
		"radar":       "Deadline radar",
	}
	current := ""
	for _, row := range dashboardRows(summary) {
		if row.section != current {
			current = row.section
			lines = append(lines, "", "### "+titles[current], "")
		}
		lines = append(lines, fmt.Sprintf("- **%s** (%s): %s", safe(row.record.Title), safe(row.record.Organization), row.detail))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
