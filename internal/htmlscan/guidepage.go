// Package htmlscan extracts guideline metadata from rendered implementation
// guide pages. Extraction is best-effort pattern matching: markup this
// package does not recognize leaves the default placeholder, never an error.
package htmlscan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxSections  = 10
	maxResources = 15
	maxLinks     = 10
)

// PageSummary is what could be extracted from one guide page.
type PageSummary struct {
	SourceURL   string   `json:"source_url"`
	Title       string   `json:"title"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Sections    []string `json:"sections"`
	Resources   []string `json:"resources"`
	Links       []Link   `json:"links"`
}

type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Version patterns in priority order: an explicit "Version:" label, a
// key/value form, then a bare vX.Y. The first pattern that matches anywhere
// wins, even if a later pattern would also match; this tie-break order is a
// deliberate contract.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Version[:\s]+([0-9]+\.[0-9]+(?:\.[0-9]+)?)`),
	regexp.MustCompile(`(?i)version["']?\s*[:=]\s*["']?([0-9]+\.[0-9]+(?:\.[0-9]+)?)`),
	regexp.MustCompile(`(?i)v([0-9]+\.[0-9]+(?:\.[0-9]+)?)`),
}

// FHIR reference patterns stay case-sensitive: resource type names are
// canonical CamelCase and lowercased lookalikes are noise.
var (
	typedRefPattern = regexp.MustCompile(`(StructureDefinition|ValueSet|CodeSystem|ConceptMap|ImplementationGuide)/([a-zA-Z0-9._-]+)`)
	looseRefPattern = regexp.MustCompile(`FHIR\s+([A-Z][a-zA-Z]+)\s*:?\s*([a-zA-Z0-9._-]+)?`)
)

var (
	sectionCleanPattern = regexp.MustCompile(`[^\w\s-]`)
	spacePattern        = regexp.MustCompile(`\s+`)
)

var linkKeywords = []string{"guide", "resource", "profile", "example", "download"}

// GuidePage extracts title, description, version, section headings, FHIR
// resource references, and relevant links from one guide page.
func GuidePage(html, sourceURL string) PageSummary {
	out := PageSummary{
		SourceURL: sourceURL,
		Title:     "Unknown Title",
		Version:   "Unknown Version",
		Sections:  []string{},
		Resources: []string{},
		Links:     []Link{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return out
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		out.Title = title
	}
	out.Description = metaDescription(doc)
	out.Version = matchVersion(html, out.Version)
	out.Sections = collectSections(doc)
	out.Resources = collectResources(html)
	out.Links = collectLinks(doc)

	return out
}

// metaDescription returns the content of the first meta tag named
// "description" (case-insensitive) that carries a non-empty content value.
func metaDescription(doc *goquery.Document) string {
	desc := ""
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr("name", ""), "description") {
			return true
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return true
		}
		desc = content
		return false
	})
	return desc
}

func matchVersion(html, def string) string {
	for _, pattern := range versionPatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			return m[1]
		}
	}
	return def
}

// collectSections gathers heading text from h1-h6 and from any element whose
// class contains "header", keeps cleaned candidates of reasonable length,
// and returns them deduplicated, sorted, and capped.
func collectSections(doc *goquery.Document) []string {
	seen := map[string]struct{}{}
	doc.Find(`h1, h2, h3, h4, h5, h6, [class*="header"]`).Each(func(_ int, s *goquery.Selection) {
		clean := sectionCleanPattern.ReplaceAllString(strings.TrimSpace(s.Text()), "")
		if len(clean) > 3 && len(clean) < 100 {
			seen[clean] = struct{}{}
		}
	})
	return sortedCapped(seen, maxSections)
}

func collectResources(html string) []string {
	seen := map[string]struct{}{}
	for _, m := range typedRefPattern.FindAllStringSubmatch(html, -1) {
		seen[m[1]+": "+m[2]] = struct{}{}
	}
	for _, m := range looseRefPattern.FindAllStringSubmatch(html, -1) {
		if m[2] != "" {
			seen[m[1]+": "+m[2]] = struct{}{}
		}
	}
	return sortedCapped(seen, maxResources)
}

// collectLinks keeps anchors whose collapsed text is short enough to be a
// label and mentions at least one guide-related keyword, in document order.
func collectLinks(doc *goquery.Document) []Link {
	links := []Link{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if len(links) >= maxLinks {
			return
		}
		text := collapseSpace(s.Text())
		if len(text) <= 3 || len(text) >= 50 {
			return
		}
		lower := strings.ToLower(text)
		for _, keyword := range linkKeywords {
			if strings.Contains(lower, keyword) {
				links = append(links, Link{URL: s.AttrOr("href", ""), Text: text})
				return
			}
		}
	})
	return links
}

func collapseSpace(s string) string {
	return spacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

func sortedCapped(set map[string]struct{}, limit int) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
