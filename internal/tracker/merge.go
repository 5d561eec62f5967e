package tracker

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jimezsa/opptrack/internal/models"
)

// MergeFields applies proposed values onto a form: a field keeps its
// current value when it is non-empty and takes the proposed value otherwise.
func MergeFields(current models.Fields, proposed models.Fields) models.Fields {
	out := make(models.Fields, len(current)+len(proposed))
	for name, value := range current {
		out[name] = value
	}
	for name := range proposed {
		if current.Get(name) != "" {
			continue
		}
		if value := proposed.Get(name); value != "" {
			out[name] = value
		}
	}
	return out
}

// ImportStats summarizes an import merge.
type ImportStats struct {
	TotalExisting int
	TotalInput    int
	InvalidInput  int
	Duplicates    int
	Added         int
	TotalOut      int
}

// Normalize lower-cases value and collapses its whitespace.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

// Key identifies a record by normalized title and organization.
func Key(record models.Opportunity) (string, bool) {
	title := Normalize(record.Title)
	organization := Normalize(record.Organization)
	if title == "" || organization == "" {
		return "", false
	}
	return title + keySeparator + organization, true
}

// MergeImported adds incoming records that are not already tracked.
// Existing records win collisions and are never dropped. Added records are
// placed ahead of existing ones in input order; colliding or missing ids
// are replaced with fresh ones.
func MergeImported(existing []models.Opportunity, incoming []models.Opportunity) ([]models.Opportunity, ImportStats) {
	stats := ImportStats{
		TotalExisting: len(existing),
		TotalInput:    len(incoming),
	}

	keys := make(map[string]struct{}, len(existing)+len(incoming))
	ids := make(map[string]struct{}, len(existing)+len(incoming))
	for _, record := range existing {
		ids[record.ID] = struct{}{}
		if key, ok := Key(record); ok {
			keys[key] = struct{}{}
		}
	}

	added := make([]models.Opportunity, 0, len(incoming))
	for _, record := range incoming {
		key, ok := Key(record)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			stats.Duplicates++
			continue
		}
		keys[key] = struct{}{}

		if _, taken := ids[record.ID]; record.ID == "" || taken {
			record.ID = uuid.NewString()
		}
		ids[record.ID] = struct{}{}
		if status, err := models.ParseStatus(string(record.Status)); err == nil {
			record.Status = status
		} else {
			record.Status = models.StatusNotStarted
		}
		record.Link = models.NormalizeURL(record.Link)
		record.ApplyLink = models.NormalizeURL(record.ApplyLink)
		record.Assessment = nil
		added = append(added, record)
	}

	stats.Added = len(added)
	out := make([]models.Opportunity, 0, len(added)+len(existing))
	out = append(out, added...)
	out = append(out, existing...)
	stats.TotalOut = len(out)
	return out, stats
}
