// Package eligibility compares an opportunity's stated requirements with the
// user's profile and explains the result as matches and gaps.
package eligibility

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jimezsa/opptrack/internal/models"
)

const (
	SummaryNoProfile      = "Add profile details for personalized checks"
	SummaryNoRequirements = "No eligibility requirements listed"
	SummaryStrong         = "Likely eligible"
	SummaryGaps           = "Eligibility gaps detected"
	SummaryReview         = "Needs manual review"
	SummaryPartial        = "Partially eligible — address gaps"

	detailStrong = "Your profile covers every requirement that could be detected."
	detailReview = "No requirement could be checked automatically; read the eligibility text."
)

var (
	undergraduatePattern = regexp.MustCompile(`undergraduate|bachelor`)
	graduatePattern      = regexp.MustCompile(`graduate|master|ph\.?d`)
	usCitizenPattern     = regexp.MustCompile(`(?:^|[^a-z])(?:u\.?s\.?|united states|american)\s+citizen`)
	usProfilePattern     = regexp.MustCompile(`(?:^|[^a-z])(?:u\.?s\.?a?|united states|american?)(?:[^a-z]|$)`)
	gpaRequiredPattern   = regexp.MustCompile(`gpa[^0-9]{0,20}?(\d+(?:\.\d+)?)`)
	numberPattern        = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

type educationRule struct {
	label     string
	mentioned func(text string) bool
	satisfied func(level string) bool
}

var educationRules = []educationRule{
	{
		label:     "high school",
		mentioned: func(text string) bool { return strings.Contains(text, "high school") },
		satisfied: func(level string) bool { return strings.Contains(level, "high school") },
	},
	{
		label:     "undergraduate",
		mentioned: undergraduatePattern.MatchString,
		satisfied: func(level string) bool {
			return undergraduatePattern.MatchString(level) || strings.Contains(level, "professional")
		},
	},
	{
		label:     "graduate",
		mentioned: graduatePattern.MatchString,
		satisfied: func(level string) bool {
			// An undergraduate level names no graduate standing.
			level = strings.ReplaceAll(level, "undergraduate", "")
			return graduatePattern.MatchString(level) || strings.Contains(level, "professional")
		},
	},
}

// Evaluate classifies how well profile fits opp. It is a pure function of
// opp.Eligibility, opp.Tags and profile.
func Evaluate(opp models.Opportunity, profile models.Profile) models.Assessment {
	if profile.IsEmpty() {
		return unknown(SummaryNoProfile)
	}
	requirement := strings.TrimSpace(opp.Eligibility)
	if requirement == "" {
		return unknown(SummaryNoRequirements)
	}

	text := strings.ToLower(requirement)
	var matches, gaps []string

	level := strings.ToLower(strings.TrimSpace(profile.EducationLevel))
	for _, rule := range educationRules {
		if !rule.mentioned(text) {
			continue
		}
		if level != "" && rule.satisfied(level) {
			matches = append(matches, fmt.Sprintf("Meets %s requirement", rule.label))
		} else {
			gaps = append(gaps, fmt.Sprintf("Requires %s standing (profile: %s)", rule.label, orUnspecified(profile.EducationLevel)))
		}
	}

	if strings.Contains(text, "citizen") || strings.Contains(text, "permanent resident") {
		if citizenshipMatches(text, profile.Citizenship) {
			matches = append(matches, fmt.Sprintf("Citizenship: %s", strings.TrimSpace(profile.Citizenship)))
		} else {
			gaps = append(gaps, fmt.Sprintf("Citizenship requirement may not be met (profile: %s)", orUnspecified(profile.Citizenship)))
		}
	}

	if match, gap, ok := compareGPA(text, profile.GPA); ok {
		if match != "" {
			matches = append(matches, match)
		} else {
			gaps = append(gaps, gap)
		}
	}

	known := ProfileKeywords(profile)
	for _, keyword := range DetectKeywords(text + " " + strings.ToLower(opp.Tags)) {
		if hasKeyword(known, keyword) {
			matches = append(matches, "Has "+keyword)
		} else {
			gaps = append(gaps, "Add experience or coursework in "+keyword)
		}
	}
	for _, tag := range opp.TagList() {
		if hasKeyword(known, tag) {
			matches = append(matches, "Has "+tag)
		}
	}

	matches = dedupe(matches)
	gaps = dedupe(gaps)

	assessment := models.Assessment{
		Status:  models.EligibilityStrong,
		Summary: SummaryStrong,
		Matches: matches,
		Gaps:    gaps,
	}
	if len(gaps) > 0 {
		assessment.Status = models.EligibilityGap
		assessment.Summary = SummaryGaps
	}
	if len(gaps) == 0 && len(matches) == 0 {
		assessment.Status = models.EligibilityReview
		assessment.Summary = SummaryReview
		assessment.Detail = detailReview
	}
	if len(gaps) > 0 && len(matches) > 0 {
		assessment.Status = models.EligibilityReview
		assessment.Summary = SummaryPartial
	}
	if assessment.Status == models.EligibilityStrong {
		assessment.Detail = detailStrong
	}
	return assessment
}

// Assess returns a copy of records with every assessment recomputed.
func Assess(records []models.Opportunity, profile models.Profile) []models.Opportunity {
	out := make([]models.Opportunity, len(records))
	for i, record := range records {
		assessment := Evaluate(record, profile)
		record.Assessment = &assessment
		out[i] = record
	}
	return out
}

func unknown(summary string) models.Assessment {
	return models.Assessment{
		Status:  models.EligibilityUnknown,
		Summary: summary,
		Matches: []string{},
		Gaps:    []string{},
	}
}

func citizenshipMatches(text string, citizenship string) bool {
	value := strings.ToLower(strings.TrimSpace(citizenship))
	if value == "" {
		return false
	}
	if containsWord(text, value) {
		return true
	}
	return usCitizenPattern.MatchString(text) && usProfilePattern.MatchString(value)
}

// containsWord reports whether value occurs in text with no letter or digit
// directly before or after it.
func containsWord(text string, value string) bool {
	pattern := regexp.MustCompile(`(?:^|[^a-z0-9])` + regexp.QuoteMeta(value) + `(?:[^a-z0-9]|$)`)
	return pattern.MatchString(text)
}

// compareGPA reports ok=false when the rule does not fire: no GPA mention,
// no profile GPA, or a value that is not a number.
func compareGPA(text string, gpa string) (match string, gap string, ok bool) {
	if !strings.Contains(text, "gpa") || strings.TrimSpace(gpa) == "" {
		return "", "", false
	}
	m := gpaRequiredPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	required, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", "", false
	}
	actual, err := strconv.ParseFloat(numberPattern.FindString(gpa), 64)
	if err != nil {
		return "", "", false
	}
	if actual >= required {
		return fmt.Sprintf("GPA %.2f >= %.2f", actual, required), "", true
	}
	return "", fmt.Sprintf("GPA %.2f < %.2f", actual, required), true
}

// ProfileKeywords builds the lower-cased keyword set from skills, courses,
// majors and resume highlights. Each token is also stored with everything
// but letters and digits removed, so "Node.js" matches "nodejs".
func ProfileKeywords(profile models.Profile) map[string]struct{} {
	set := map[string]struct{}{}
	for _, source := range []string{profile.Skills, profile.Courses, profile.Majors, profile.ResumeHighlights} {
		for _, token := range models.SplitList(source, ",\n") {
			set[token] = struct{}{}
			if compact := alphanumeric(token); compact != "" {
				set[compact] = struct{}{}
			}
		}
	}
	return set
}

func hasKeyword(set map[string]struct{}, keyword string) bool {
	if _, ok := set[keyword]; ok {
		return true
	}
	compact := alphanumeric(keyword)
	if compact == "" {
		return false
	}
	_, ok := set[compact]
	return ok
}

func alphanumeric(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, value)
}

func orUnspecified(value string) string {
	if value = strings.TrimSpace(value); value == "" {
		return "unspecified"
	}
	return value
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
