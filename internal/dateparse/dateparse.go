// Package dateparse reads the loosely formatted dates users and web pages
// produce: ISO dates, US slash dates and month-name dates with ordinals.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	slashPattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	atSuffix       = regexp.MustCompile(`(?i)\s+at\s+.*$`)
	timeSuffix     = regexp.MustCompile(`(?i)\s+\d{1,2}(?::\d{2}){1,2}\s*(?:[ap]\.?m\.?)?(?:\s+[a-z]{2,5})?$|\s+\d{1,2}\s*[ap]\.?m\.?(?:\s+[a-z]{2,5})?$`)

	isoLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02",
		"2006-1-2",
		"2006/1/2",
	}

	textLayouts = []string{
		"January 2 2006",
		"Jan 2 2006",
		"2 January 2006",
		"2 Jan 2006",
		"Monday January 2 2006",
		"Mon Jan 2 2006",
	}
)

// StripOrdinals rewrites "1st", "22nd", "3rd" and "4th" to bare numbers.
func StripOrdinals(value string) string {
	return ordinalPattern.ReplaceAllString(value, "$1")
}

// Parse returns the calendar day value names, at midnight UTC. A trailing
// clock time or " at ..." clause is ignored. The second result is false
// when value is empty or not a recognised date.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	value = strings.TrimSpace(timeSuffix.ReplaceAllString(atSuffix.ReplaceAllString(value, ""), ""))
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return Day(ts), true
		}
	}

	if m := slashPattern.FindStringSubmatch(value); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return civil(year, month, day)
	}

	cleaned := StripOrdinals(value)
	cleaned = strings.NewReplacer(",", " ", ".", " ").Replace(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = titleWords(cleaned)
	for _, layout := range textLayouts {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return Day(ts), true
		}
	}
	// "Sept" is common on pages but unknown to the time package.
	if strings.Contains(cleaned, "Sept ") {
		return Parse(strings.Replace(cleaned, "Sept ", "Sep ", 1))
	}

	return time.Time{}, false
}

// Day truncates ts to midnight UTC of the same calendar day.
func Day(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b, counting calendar days.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Format renders a calendar day as YYYY-MM-DD.
func Format(ts time.Time) string {
	return ts.Format("2006-01-02")
}

func civil(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	ts := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if ts.Day() != day {
		return time.Time{}, false
	}
	return ts, true
}

func titleWords(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
