// Package dashboard derives the read-only summary views shown by the
// dashboard command from the current record list.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jimezsa/opptrack/internal/dateparse"
	"github.com/jimezsa/opptrack/internal/eligibility"
	"github.com/jimezsa/opptrack/internal/models"
)

const (
	DefaultLimit       = 6
	DefaultDueSoonDays = 7
)

// Limits bounds the list views. Zero values fall back to the defaults.
type Limits struct {
	NextActions int
	Watchlist   int
	Radar       int
	DueSoonDays int
}

// DefaultLimits returns the standard list sizes.
func DefaultLimits() Limits {
	return Limits{
		NextActions: DefaultLimit,
		Watchlist:   DefaultLimit,
		Radar:       DefaultLimit,
		DueSoonDays: DefaultDueSoonDays,
	}
}

func (l Limits) withDefaults() Limits {
	if l.NextActions <= 0 {
		l.NextActions = DefaultLimit
	}
	if l.Watchlist <= 0 {
		l.Watchlist = DefaultLimit
	}
	if l.Radar <= 0 {
		l.Radar = DefaultLimit
	}
	if l.DueSoonDays <= 0 {
		l.DueSoonDays = DefaultDueSoonDays
	}
	return l
}

type Counts struct {
	Total        int `json:"total"`
	DueSoon      int `json:"dueSoon"`
	Overdue      int `json:"overdue"`
	HighPriority int `json:"highPriority"`
}

// Action is a record with a pending next step.
type Action struct {
	Record  models.Opportunity `json:"record"`
	Date    time.Time          `json:"date,omitempty"`
	HasDate bool               `json:"hasDate"`
}

// RadarEntry is a record with a parseable deadline and its countdown label.
type RadarEntry struct {
	Record   models.Opportunity `json:"record"`
	Deadline time.Time          `json:"deadline"`
	DaysLeft int                `json:"daysLeft"`
	Label    string             `json:"label"`
}

type Summary struct {
	Today       time.Time            `json:"today"`
	Counts      Counts               `json:"counts"`
	NextActions []Action             `json:"nextActions"`
	Watchlist   []models.Opportunity `json:"watchlist"`
	Radar       []RadarEntry         `json:"radar"`
}

// Build computes every dashboard view. Records without an assessment are
// assessed against profile first; now only supplies the current day.
func Build(records []models.Opportunity, profile models.Profile, now time.Time, limits Limits) Summary {
	limits = limits.withDefaults()
	today := dateparse.Day(now)
	return Summary{
		Today:       today,
		Counts:      CountRecords(records, today, limits.DueSoonDays),
		NextActions: NextActions(records, limits.NextActions),
		Watchlist:   Watchlist(records, profile, limits.Watchlist),
		Radar:       Radar(records, today, limits.Radar),
	}
}

// CountRecords tallies the totals. Due soon covers deadlines from today
// through today+dueSoonDays inclusive; overdue is strictly before today.
// High priority only counts records that are still open.
func CountRecords(records []models.Opportunity, today time.Time, dueSoonDays int) Counts {
	counts := Counts{Total: len(records)}
	for _, record := range records {
		if deadline, ok := dateparse.Parse(record.Deadline); ok {
			days := dateparse.DaysBetween(today, deadline)
			switch {
			case days < 0:
				counts.Overdue++
			case days <= dueSoonDays:
				counts.DueSoon++
			}
		}
		if record.IsHighPriority() && record.Status.IsOpen() {
			counts.HighPriority++
		}
	}
	return counts
}

// NextActions lists records with a next action, earliest date first and
// undated actions last.
func NextActions(records []models.Opportunity, limit int) []Action {
	var actions []Action
	for _, record := range records {
		if strings.TrimSpace(record.NextAction) == "" {
			continue
		}
		date, ok := dateparse.Parse(record.NextActionDate)
		actions = append(actions, Action{Record: record, Date: date, HasDate: ok})
	}
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		return a.HasDate && a.Date.Before(b.Date)
	})
	return truncate(actions, limit)
}

// Watchlist lists records whose assessment is a gap or needs review.
func Watchlist(records []models.Opportunity, profile models.Profile, limit int) []models.Opportunity {
	var out []models.Opportunity
	for _, record := range records {
		assessment := record.Assessment
		if assessment == nil {
			computed := eligibility.Evaluate(record, profile)
			assessment = &computed
			record.Assessment = assessment
		}
		if assessment.NeedsAttention() {
			out = append(out, record)
		}
	}
	return truncate(out, limit)
}

// Radar lists records with a parseable deadline, soonest first.
func Radar(records []models.Opportunity, today time.Time, limit int) []RadarEntry {
	today = dateparse.Day(today)
	var entries []RadarEntry
	for _, record := range records {
		deadline, ok := dateparse.Parse(record.Deadline)
		if !ok {
			continue
		}
		days := dateparse.DaysBetween(today, deadline)
		entries = append(entries, RadarEntry{
			Record:   record,
			Deadline: deadline,
			DaysLeft: days,
			Label:    DeadlineLabel(days),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Deadline.Before(entries[j].Deadline)
	})
	return truncate(entries, limit)
}

// DeadlineLabel renders a day offset relative to today.
func DeadlineLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Overdue by %d %s", -days, dayUnit(-days))
	case days == 0:
		return "Due today"
	default:
		return fmt.Sprintf("Due in %d %s", days, dayUnit(days))
	}
}

func dayUnit(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
