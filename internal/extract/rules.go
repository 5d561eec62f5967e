package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/opptrack/internal/dateparse"
	"github.com/jimezsa/opptrack/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule derives one field from a page. Rules never fail: a rule that finds
// nothing returns "".
type Rule struct {
	Field   string
	Extract func(p *Page) string
}

// Rules is the ordered extraction table.
var Rules = []Rule{
	{models.FieldTitle, extractTitle},
	{models.FieldOrganization, extractOrganization},
	{models.FieldOrganizationVerified, extractOrganizationVerified},
	{models.FieldOpportunityType, extractOpportunityType},
	{models.FieldLocation, extractLocation},
	{models.FieldRemote, extractRemote},
	{models.FieldDeadline, extractDeadline},
	{models.FieldProgramDates, extractProgramDates},
	{models.FieldDuration, extractDuration},
	{models.FieldCompensation, extractCompensation},
	{models.FieldEligibility, extractEligibility},
	{models.FieldMaterials, extractMaterials},
	{models.FieldApplyLink, extractApplyLink},
	{models.FieldContactEmail, extractContactEmail},
	{models.FieldLink, extractLink},
	{models.FieldSource, extractSource},
}

// Extract runs every rule against raw HTML fetched from sourceURL. Fields a
// rule could not fill are present with an empty value.
func Extract(raw string, sourceURL string) models.Fields {
	return ExtractPage(NewPage(raw, sourceURL))
}

// ExtractPage runs the rule table against a prepared page.
func ExtractPage(p *Page) models.Fields {
	fields := make(models.Fields, len(Rules))
	for _, rule := range Rules {
		fields[rule.Field] = runRule(rule, p)
	}
	return fields
}

func runRule(rule Rule, p *Page) (value string) {
	defer func() {
		if recover() != nil {
			value = ""
		}
	}()
	return strings.TrimSpace(rule.Extract(p))
}

const monthNames = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	locationPattern     = regexp.MustCompile(`(?i)\b(?:based|located) in ([a-z][^.;:!?()\[\]]{1,40}?)(?:[.;:!?()]|\s+(?:and|with|where|for|to|from)\s|$)`)
	deadlinePattern     = regexp.MustCompile(`(?i)\b(?:deadline|apply by|due)\s*:?\s*(` + monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`)
	programDatesPattern = regexp.MustCompile(`(?i)\b(` + monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\s*(?:-|–|—|to|through|until)\s*` + monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`)
	weeksPattern        = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]*weeks?\b`)
	monthsPattern       = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]*months?\b`)
	amountPattern       = regexp.MustCompile(`(?i)(?:[$€£]\s?\d[\d,]*(?:\.\d{1,2})?\s?k?|\busd\s?\d[\d,]*(?:\.\d{1,2})?)(?:\s?(?:/|per\s)\s?(?:hour|hr|week|wk|month|mo|year|yr|annum))?`)
	eligibilityPattern  = regexp.MustCompile(`(?i)\beligib(?:ility|le)[^:.]{0,40}:\s*(.{3,240}?)(?:\.(?:\s|$)|$)`)
	emailPattern        = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	titleCaser = cases.Title(language.English, cases.NoLower)

	ogTypeLexicon = []struct {
		fragment string
		label    string
	}{
		{"intern", "Internship"},
		{"fellow", "Fellowship"},
		{"scholar", "Scholarship"},
		{"job", "Job"},
		{"event", "Event"},
		{"article", ""},
	}

	bodyTypeKeywords = []struct {
		keywords []string
		label    string
	}{
		{[]string{"internship"}, "Internship"},
		{[]string{"fellowship"}, "Fellowship"},
		{[]string{"scholarship", "grant"}, "Scholarship"},
		{[]string{"apprenticeship"}, "Apprenticeship"},
		{[]string{"bootcamp", "program"}, "Program"},
		{[]string{"competition", "challenge"}, "Competition"},
		{[]string{"conference", "summit"}, "Conference"},
		{[]string{"job", "opening", "position"}, "Job"},
	}

	materialChecks = []struct {
		keywords []string
		label    string
	}{
		{[]string{"resume", "résumé", "curriculum vitae"}, "Resume"},
		{[]string{"cover letter"}, "Cover letter"},
		{[]string{"transcript"}, "Transcript"},
		{[]string{"recommendation", "reference letter"}, "Letters of recommendation"},
	}
)

func extractTitle(p *Page) string {
	if title := p.MetaValue("og:title", "twitter:title"); title != "" {
		return title
	}
	return p.Title
}

func extractOrganization(p *Page) string {
	winner, ok := bestOrganization(p)
	if !ok {
		return ""
	}
	return winner.Name
}

// extractOrganizationVerified marks organizations that came from page
// content and agree with the site's domain.
func extractOrganizationVerified(p *Page) string {
	winner, ok := bestOrganization(p)
	if !ok || winner.Origin == "domain" {
		return ""
	}
	core := domainCore(p.Host())
	if core != "" && strings.Contains(strings.ToLower(winner.Name), core) {
		return "true"
	}
	return ""
}

func extractOpportunityType(p *Page) string {
	if ogType := strings.ToLower(p.MetaValue("og:type")); ogType != "" {
		for _, entry := range ogTypeLexicon {
			if strings.Contains(ogType, entry.fragment) {
				if entry.label != "" {
					return entry.label
				}
				break
			}
		}
	}
	for _, entry := range bodyTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(p.Lower, keyword) {
				return entry.label
			}
		}
	}
	return ""
}

func extractLocation(p *Page) string {
	if place := p.MetaValue("geo.placename", "og:locality", "job:location"); place != "" {
		return place
	}
	m := locationPattern.FindStringSubmatch(p.Text)
	if m == nil {
		return ""
	}
	return titleCaser.String(strings.TrimSpace(strings.TrimRight(m[1], ", ")))
}

func extractRemote(p *Page) string {
	switch {
	case strings.Contains(p.Lower, "remote"):
		return "Yes"
	case strings.Contains(p.Lower, "hybrid"):
		return "Hybrid"
	case strings.Contains(p.Lower, "on-site"), strings.Contains(p.Lower, "on site"):
		return "No"
	}
	return ""
}

// extractDeadline strips ordinal suffixes before parsing and renders the
// date as YYYY-MM-DD; an unparseable capture is returned without ordinals.
func extractDeadline(p *Page) string {
	m := deadlinePattern.FindStringSubmatch(p.Text)
	if m == nil {
		return ""
	}
	raw := dateparse.StripOrdinals(m[1])
	if day, ok := dateparse.Parse(raw); ok {
		return dateparse.Format(day)
	}
	return raw
}

func extractProgramDates(p *Page) string {
	m := programDatesPattern.FindStringSubmatch(p.Text)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(dateparse.StripOrdinals(m[1])), " ")
}

func extractDuration(p *Page) string {
	if m := weeksPattern.FindStringSubmatch(p.Text); m != nil {
		return plural(m[1], "week")
	}
	if m := monthsPattern.FindStringSubmatch(p.Text); m != nil {
		return plural(m[1], "month")
	}
	return ""
}

func plural(count string, unit string) string {
	count = strings.TrimLeft(count, "0")
	if count == "" {
		count = "0"
	}
	if count == "1" {
		return count + " " + unit
	}
	return count + " " + unit + "s"
}

func extractCompensation(p *Page) string {
	if m := amountPattern.FindString(p.Text); m != "" {
		return strings.Join(strings.Fields(m), " ")
	}
	switch {
	case strings.Contains(p.Lower, "unpaid"):
		return "Unpaid"
	case strings.Contains(p.Lower, "paid position"):
		return "Paid"
	}
	return ""
}

func extractEligibility(p *Page) string {
	if m := eligibilityPattern.FindStringSubmatch(p.Text); m != nil {
		return strings.TrimSpace(m[1])
	}
	switch {
	case strings.Contains(p.Lower, "high school"):
		return "High school students"
	case strings.Contains(p.Lower, "undergraduate"):
		return "Undergraduate students"
	case strings.Contains(p.Lower, "graduate"):
		return "Graduate students"
	}
	return ""
}

func extractMaterials(p *Page) string {
	var found []string
	for _, check := range materialChecks {
		for _, keyword := range check.keywords {
			if strings.Contains(p.Lower, keyword) {
				found = append(found, check.label)
				break
			}
		}
	}
	return strings.Join(found, ", ")
}

func extractApplyLink(p *Page) string {
	if p.Doc == nil {
		return ""
	}
	var link string
	p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		text := strings.ToLower(cleanText(s.Text()))
		if !strings.Contains(text, "apply") && !strings.Contains(strings.ToLower(href), "apply") {
			return true
		}
		if resolved := p.Resolve(href); resolved != "" {
			link = resolved
			return false
		}
		return true
	})
	return link
}

func extractContactEmail(p *Page) string {
	if m := emailPattern.FindString(p.Text); m != "" {
		return strings.TrimRight(m, ".")
	}
	if p.Doc == nil {
		return ""
	}
	href := p.Doc.Find("a[href^='mailto:']").First().AttrOr("href", "")
	address := strings.TrimPrefix(href, "mailto:")
	if cut := strings.Index(address, "?"); cut >= 0 {
		address = address[:cut]
	}
	return emailPattern.FindString(address)
}

func extractLink(p *Page) string {
	return models.NormalizeURL(p.SourceRaw)
}

func extractSource(p *Page) string {
	return p.Host()
}
