package eligibility

import "strings"

// Vocabulary is the closed list of requirement keywords the scorer looks
// for, in reporting order.
var Vocabulary = []string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", "rust",
	"sql", "matlab", "html", "css", "swift", "kotlin",
	// data, ml and cloud
	"machine learning", "deep learning", "data analysis", "data science",
	"statistics", "tensorflow", "pytorch", "aws", "azure", "gcp", "docker",
	"kubernetes", "excel", "tableau", "git", "linux",
	// academic subjects
	"computer science", "mathematics", "physics", "chemistry", "biology",
	"engineering", "economics", "psychology", "research",
	// business
	"finance", "accounting", "marketing", "sales", "communication",
	"leadership", "project management", "design",
}

// DetectKeywords returns the vocabulary words that appear in text as
// substrings, in vocabulary order. An occurrence that only sits inside a
// longer vocabulary word does not count, so "javascript" does not also
// report "java".
func DetectKeywords(text string) []string {
	text = strings.ToLower(text)
	var found []string
	for _, keyword := range Vocabulary {
		if occursOnItsOwn(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

func occursOnItsOwn(text string, keyword string) bool {
	for offset := 0; offset <= len(text); {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return false
		}
		start := offset + idx
		if !insideLongerKeyword(text, keyword, start) {
			return true
		}
		offset = start + 1
	}
	return false
}

// insideLongerKeyword reports whether the occurrence of keyword at start is
// part of an occurrence of a longer vocabulary word.
func insideLongerKeyword(text string, keyword string, start int) bool {
	end := start + len(keyword)
	for _, longer := range Vocabulary {
		if len(longer) <= len(keyword) {
			continue
		}
		at := strings.Index(longer, keyword)
		for at >= 0 {
			begin := start - at
			if begin >= 0 && begin+len(longer) <= len(text) && begin+len(longer) >= end &&
				text[begin:begin+len(longer)] == longer {
				return true
			}
			next := strings.Index(longer[at+1:], keyword)
			if next < 0 {
				break
			}
			at += next + 1
		}
	}
	return false
}
