package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxCandidateLen  = 80
	longCandidateLen = 45
)

var (
	orgMetaKeys = []string{
		"og:site_name",
		"application-name",
		"author",
		"publisher",
		"article:publisher",
		"twitter:site",
		"twitter:creator",
	}

	logoSelectors = "img[class*='logo'], img[id*='logo'], img[src*='logo'], " +
		"[class*='logo'][aria-label], [id*='logo'][aria-label], a[class*='brand'], " +
		"[class*='navbar-brand'], [itemprop='logo']"

	properNamePattern = regexp.MustCompile(`^[A-Z0-9][\w&.'’-]*(?:\s+(?:of|the|and|for|&|[A-Z0-9][\w&.'’-]*))*\s+[A-Z0-9][\w&.'’-]*$`)
	corporatePattern  = regexp.MustCompile(`(?i)\b(?:inc|llc|ltd|llp|corp|corporation|company|co|gmbh|plc|group|holdings|labs?|technologies|university|college|institute|foundation|association|society|academy|school|council|agency|fund|trust|center|centre)\b\.?`)
	noiseWords        = []string{"login", "log in", "sign in", "sign-in", "signin", "sign up", "auth", "sso", "portal", "career", "jobs", "job board", "recruiting", "talent", "apply"}
	separatorRunes    = "|•·–—»›:/\\~*"
	logoSuffix        = regexp.MustCompile(`(?i)\s+logo$`)
	secondLevelLabels = map[string]struct{}{
		"co": {}, "com": {}, "ac": {}, "edu": {}, "gov": {}, "org": {}, "net": {},
	}
)

// Candidate is one organization name proposal with its provenance and score.
type Candidate struct {
	Name   string
	Origin string
	Score  float64
}

// bestOrganization scores every candidate and returns the winner, falling
// back to the domain label when no candidate exists.
func bestOrganization(p *Page) (Candidate, bool) {
	candidates := organizationCandidates(p)
	core := domainCore(p.Host())
	if len(candidates) == 0 {
		fallback := domainFallback(core)
		return Candidate{Name: fallback, Origin: "domain"}, fallback != ""
	}

	best := -1
	for i := range candidates {
		candidates[i].Score = scoreCandidate(candidates[i].Name, core, p.Text)
		// Strictly greater keeps the first-seen candidate on ties.
		if best < 0 || candidates[i].Score > candidates[best].Score {
			best = i
		}
	}
	return candidates[best], true
}

func organizationCandidates(p *Page) []Candidate {
	var out []Candidate
	seen := map[string]struct{}{}
	add := func(raw string, origin string) {
		name := cleanCandidate(raw)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, Candidate{Name: name, Origin: origin})
	}

	for _, key := range orgMetaKeys {
		value := strings.TrimPrefix(p.Meta[key], "@")
		add(value, "meta:"+key)
	}

	for _, part := range titleOrganizationParts(p.Title) {
		add(part, "title")
	}

	if p.Doc != nil {
		p.Doc.Find(logoSelectors).Each(func(_ int, s *goquery.Selection) {
			for _, attr := range []string{"alt", "aria-label", "title"} {
				if value := s.AttrOr(attr, ""); value != "" {
					add(logoSuffix.ReplaceAllString(strings.TrimSpace(value), ""), "logo")
					return
				}
			}
		})
	}

	for _, block := range p.JSONLD {
		for _, name := range jsonLDNames(block) {
			add(name, "json-ld")
		}
	}

	add(domainFallback(domainCore(p.Host())), "domain")
	return out
}

// titleOrganizationParts splits "Org | Role" and "Role at Org" titles into
// candidates; every piece is offered and scoring picks the organization. A
// title with neither separator contributes nothing.
func titleOrganizationParts(title string) []string {
	if title == "" {
		return nil
	}
	var parts []string
	if strings.Contains(title, "|") {
		parts = append(parts, strings.Split(title, "|")...)
	}
	if idx := strings.Index(strings.ToLower(title), " at "); idx >= 0 {
		before := title[:idx]
		if cut := strings.LastIndex(before, "|"); cut >= 0 {
			before = before[cut+1:]
		}
		rest := title[idx+len(" at "):]
		if cut := strings.Index(rest, "|"); cut >= 0 {
			rest = rest[:cut]
		}
		parts = append(parts, before, rest)
	}
	return parts
}

// jsonLDNames walks structured data collecting name, publisher.name,
// publisher.organization.name and brand.name from every object.
func jsonLDNames(data any) []string {
	var names []string
	var walk func(any)
	walk = func(value any) {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				walk(item)
			}
		case map[string]any:
			names = appendNonEmpty(names,
				stringValue(v["name"]),
				stringValue(mapValue(v["publisher"], "name")),
				stringValue(mapValue(mapValue(v["publisher"], "organization"), "name")),
				stringValue(mapValue(v["brand"], "name")),
			)
			keys := make([]string, 0, len(v))
			for key := range v {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				switch child := v[key].(type) {
				case []any, map[string]any:
					walk(child)
				}
			}
		}
	}
	walk(data)
	return names
}

func appendNonEmpty(out []string, values ...string) []string {
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

func cleanCandidate(value string) string {
	value = cleanText(value)
	value = strings.TrimFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if strings.ContainsAny(value, separatorRunes) {
		value = strings.Map(func(r rune) rune {
			if strings.ContainsRune(separatorRunes, r) {
				return ' '
			}
			return r
		}, value)
		value = strings.Join(strings.Fields(value), " ")
	}
	if value == "" || len([]rune(value)) > maxCandidateLen {
		return ""
	}
	return value
}

func scoreCandidate(name string, core string, text string) float64 {
	lower := strings.ToLower(name)
	score := 0.0
	if core != "" && strings.Contains(lower, core) {
		score += 3
	}
	if properNamePattern.MatchString(name) {
		score += 2
	}
	if corporatePattern.MatchString(name) {
		score += 1.5
	}
	for _, noise := range noiseWords {
		if strings.Contains(lower, noise) {
			score -= 4
			break
		}
	}
	if containsWord(text, name) {
		score += 3
	}
	if len([]rune(name)) > longCandidateLen {
		score -= 2
	}
	return score
}

func containsWord(text string, word string) bool {
	if text == "" || word == "" {
		return false
	}
	pattern, err := regexp.Compile(`(?:^|[^\pL\pN])` + regexp.QuoteMeta(word) + `(?:[^\pL\pN]|$)`)
	if err != nil {
		return false
	}
	return pattern.MatchString(text)
}

// domainCore returns the registrable label of host: "acme" for
// careers.acme.org and for acme.co.uk.
func domainCore(host string) string {
	labels := strings.Split(strings.TrimPrefix(strings.ToLower(host), "www."), ".")
	if len(labels) < 2 {
		if len(labels) == 1 {
			return labels[0]
		}
		return ""
	}
	idx := len(labels) - 2
	if idx > 0 && len(labels[len(labels)-1]) == 2 {
		if _, ok := secondLevelLabels[labels[idx]]; ok {
			idx--
		}
	}
	return labels[idx]
}

func domainFallback(core string) string {
	if core == "" {
		return ""
	}
	runes := []rune(core)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
