// Package export writes records and dashboard summaries as tables, CSV,
// TSV, JSON or Markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/opptrack/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

const shortIDLen = 8

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// ParseFormat accepts the format names shown in help text.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

// FormatForPath guesses a format from an output file extension.
func FormatForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, true
	case strings.HasSuffix(lower, ".tsv"):
		return FormatTSV, true
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return FormatMarkdown, true
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV, true
	}
	return "", false
}

// WriteRecords writes records in format. JSON output can be read back by
// the import command.
func WriteRecords(w io.Writer, records []models.Opportunity, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatCSV:
		return writeCSV(w, records, ',')
	case FormatTSV:
		return writeCSV(w, records, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, records)
	default:
		return writeTable(w, records, opts)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeCSV(w io.Writer, records []models.Opportunity, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(csvRow(record)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, records []models.Opportunity, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, record := range records {
		fmt.Fprintln(tw, strings.Join(tableRow(record, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, records []models.Opportunity) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No opportunities.")
		return err
	}
	for _, record := range records {
		linkLine := "  Link: -"
		if link := safe(record.Link); link != "" {
			linkLine = fmt.Sprintf("  Link: [Open listing](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(record.Title), safe(record.Organization)),
			fmt.Sprintf("  Status: %s", record.Status),
			linkLine,
		}
		optional := []struct{ label, value string }{
			{"Type", record.OpportunityType},
			{"Deadline", record.Deadline},
			{"Priority", record.Priority},
			{"Location", record.Location},
			{"Remote", record.Remote},
			{"Compensation", record.Compensation},
			{"Eligibility", record.Eligibility},
			{"Next action", joinNonEmpty(" on ", record.NextAction, record.NextActionDate)},
			{"Apply", record.ApplyLink},
		}
		for _, field := range optional {
			if value := safe(field.value); value != "" {
				lines = append(lines, fmt.Sprintf("  %s: %s", field.label, value))
			}
		}
		if record.Assessment != nil {
			lines = append(lines, fmt.Sprintf("  Fit: %s (%s)", record.Assessment.Summary, record.Assessment.Status))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	header := make([]string, 0, len(models.FieldNames)+2)
	header = append(header, "id")
	header = append(header, models.FieldNames...)
	return append(header, "fit")
}

func csvRow(record models.Opportunity) []string {
	fields := record.Fields()
	row := make([]string, 0, len(models.FieldNames)+2)
	row = append(row, record.ID)
	for _, name := range models.FieldNames {
		row = append(row, fields[name])
	}
	return append(row, fitStatus(record))
}

func fitStatus(record models.Opportunity) string {
	if record.Assessment == nil {
		return ""
	}
	return string(record.Assessment.Status)
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, value := range values {
		if value = safe(value); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, sep)
}

func dash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

// ShortID abbreviates a record id for display; any unique prefix is
// accepted wherever an id is expected.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func tableHeader() []string {
	return []string{
		"id",
		"title",
		"organization",
		"status",
		"deadline",
		"priority",
		"fit",
		"link",
	}
}

func tableRow(record models.Opportunity, output *termenv.Output, opts WriteOptions) []string {
	return []string{
		ShortID(record.ID),
		dash(record.Title),
		dash(record.Organization),
		string(record.Status),
		dash(record.Deadline),
		dash(record.Priority),
		dash(fitStatus(record)),
		displayLink(record.Link, output, opts),
	}
}

func displayLink(link string, output *termenv.Output, opts WriteOptions) string {
	const linkColor = "#87CEEB"

	link = safe(link)
	if link == "" {
		return "-"
	}
	display := link
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		display = shortURLLabel(link)
	}
	if opts.ColorEnabled && output != nil {
		display = output.String(display).Foreground(output.Color(linkColor)).String()
	}
	if opts.Hyperlinks {
		display = hyperlink(link, display)
	}
	return display
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
