package extract

import (
	"encoding/json"
	"fmt"
	stdhtml "html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a fetched document prepared for the extraction rules. Everything
// a rule needs is computed once so rules stay independent of each other.
type Page struct {
	Doc       *goquery.Document
	Source    *url.URL
	SourceRaw string
	Title     string
	Meta      map[string]string
	JSONLD    []any
	// Text is the visible body text with whitespace collapsed.
	Text string
	// Lower is Text lower-cased.
	Lower string
}

// NewPage parses raw HTML. A document that cannot be parsed yields a page
// with no content, so every rule degrades to "".
func NewPage(raw string, sourceURL string) *Page {
	page := &Page{
		SourceRaw: strings.TrimSpace(sourceURL),
		Meta:      map[string]string{},
	}
	if parsed, err := url.Parse(page.SourceRaw); err == nil && parsed.Host != "" {
		page.Source = parsed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return page
	}
	page.Doc = doc
	page.Title = cleanText(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(s.AttrOr("property", "")))
		if key == "" {
			key = strings.ToLower(strings.TrimSpace(s.AttrOr("name", "")))
		}
		if key == "" {
			key = strings.ToLower(strings.TrimSpace(s.AttrOr("itemprop", "")))
		}
		content := cleanText(s.AttrOr("content", ""))
		if key == "" || content == "" {
			return
		}
		if _, ok := page.Meta[key]; !ok {
			page.Meta[key] = content
		}
	})

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		data, err := decodeJSONLD(s.Text())
		if err != nil {
			return
		}
		page.JSONLD = append(page.JSONLD, data)
	})

	body := doc.Find("body").First()
	if body.Length() == 0 {
		body = doc.Selection
	}
	page.Text = visibleText(body)
	page.Lower = strings.ToLower(page.Text)

	return page
}

// MetaValue returns the first non-empty content among keys.
func (p *Page) MetaValue(keys ...string) string {
	for _, key := range keys {
		if value := p.Meta[strings.ToLower(key)]; value != "" {
			return value
		}
	}
	return ""
}

// Host returns the source hostname without a leading "www.".
func (p *Page) Host() string {
	if p.Source == nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(p.Source.Hostname()), "www.")
}

// Resolve turns href into an absolute URL against the source.
func (p *Page) Resolve(href string) string {
	return absoluteURL(p.SourceRaw, href)
}

var hiddenElements = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {}, "svg": {}, "head": {},
}

// visibleText joins the text nodes under sel with spaces, skipping
// non-rendered elements, so adjacent blocks never run words together.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		case html.ElementNode:
			if _, hidden := hiddenElements[n.Data]; hidden {
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return cleanText(strings.Join(parts, " "))
}

func cleanText(value string) string {
	value = stdhtml.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

func absoluteURL(base string, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Host == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func decodeJSONLD(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\u2028", "")
	raw = strings.ReplaceAll(raw, "\u2029", "")
	if raw == "" {
		return nil, fmt.Errorf("empty json-ld block")
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return cleanText(v)
			}
		case map[string]any:
			if name := stringValue(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}

func mapValue(value any, key string) any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
