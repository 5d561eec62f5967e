package models

// EligibilityStatus classifies how well a profile fits an opportunity.
type EligibilityStatus string

const (
	EligibilityUnknown EligibilityStatus = "unknown"
	EligibilityStrong  EligibilityStatus = "strong"
	EligibilityGap     EligibilityStatus = "gap"
	EligibilityReview  EligibilityStatus = "review"
)

// Assessment is the derived eligibility judgment for one opportunity.
type Assessment struct {
	Status  EligibilityStatus `json:"status"`
	Summary string            `json:"summary"`
	Matches []string          `json:"matches"`
	Gaps    []string          `json:"gaps"`
	Detail  string            `json:"detail,omitempty"`
}

// NeedsAttention reports whether the assessment belongs on a watchlist.
func (a Assessment) NeedsAttention() bool {
	return a.Status == EligibilityGap || a.Status == EligibilityReview
}
