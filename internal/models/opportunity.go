package models

import (
	"fmt"
	"net/url"
	"strings"
)

// Status is the workflow stage of an opportunity.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusSubmitted  Status = "Submitted"
	StatusInterview  Status = "Interview"
	StatusOffer      Status = "Offer"
)

// Statuses lists the workflow stages in board order.
var Statuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusSubmitted,
	StatusInterview,
	StatusOffer,
}

// ParseStatus converts user input to a Status. Matching ignores case and
// treats dashes and underscores as spaces, so "in-progress" is accepted.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" {
		return StatusNotStarted, nil
	}
	for _, status := range Statuses {
		if strings.ToLower(string(status)) == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", value)
}

// IsOpen reports whether the opportunity still needs work.
func (s Status) IsOpen() bool {
	return s != StatusOffer
}

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Opportunity is one tracked internship, scholarship or job lead.
type Opportunity struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Organization         string `json:"organization"`
	OrganizationVerified bool   `json:"organizationVerified,omitempty"`
	OpportunityType      string `json:"opportunityType,omitempty"`
	Tags                 string `json:"tags,omitempty"`
	Location             string `json:"location,omitempty"`
	Remote               string `json:"remote,omitempty"`
	ProgramDates         string `json:"programDates,omitempty"`
	Duration             string `json:"duration,omitempty"`
	Compensation         string `json:"compensation,omitempty"`
	Eligibility          string `json:"eligibility,omitempty"`
	Materials            string `json:"materials,omitempty"`
	ContactEmail         string `json:"contactEmail,omitempty"`
	Source               string `json:"source,omitempty"`
	Notes                string `json:"notes,omitempty"`
	Link                 string `json:"link,omitempty"`
	ApplyLink            string `json:"applyLink,omitempty"`
	AddedOn              string `json:"addedOn,omitempty"`
	Deadline             string `json:"deadline,omitempty"`
	NextAction           string `json:"nextAction,omitempty"`
	NextActionDate       string `json:"nextActionDate,omitempty"`
	Status               Status `json:"status"`
	Priority             string `json:"priority,omitempty"`

	// Assessment is derived from Eligibility, Tags and the profile. It is
	// never persisted.
	Assessment *Assessment `json:"-"`
}

// IsHighPriority compares the free-text priority with "High".
func (o Opportunity) IsHighPriority() bool {
	return strings.EqualFold(strings.TrimSpace(o.Priority), PriorityHigh)
}

// TagList returns the comma-separated tags as a lower-cased set in input order.
func (o Opportunity) TagList() []string {
	return SplitList(o.Tags, ",")
}

// SplitList splits value on any of the separator characters, trims and
// lower-cases each token and drops empties and duplicates.
func SplitList(value string, separators string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// NormalizeURL returns an absolute http(s) URL for value, or "" when value
// cannot be one. A missing scheme defaults to https.
func NormalizeURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "//") {
		value = "https:" + value
	} else if !strings.Contains(value, "://") {
		value = "https://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	if parsed.Host == "" || strings.ContainsAny(parsed.Host, " \t") {
		return ""
	}
	parsed.Scheme = scheme
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}
