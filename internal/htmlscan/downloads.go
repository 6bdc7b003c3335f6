package htmlscan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DownloadsSummary lists the downloadable artifacts advertised on a guide's
// downloads page.
type DownloadsSummary struct {
	SourceURL string      `json:"source_url"`
	Files     []FileEntry `json:"files"`
	Formats   []string    `json:"formats"`
	Packages  []string    `json:"packages"`
}

type FileEntry struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Format      string `json:"format"`
}

var fileExtPattern = regexp.MustCompile(`(?i)\.(zip|tgz|tar\.gz|json|xml|xlsx)$`)

var bundlePathKeywords = []string{"package", "full", "validation", "definitions"}

var packagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)FHIR\s+(?:package|bundle|specification)`),
	regexp.MustCompile(`(?i)Implementation\s+Guide\s+(?:package|bundle)`),
	regexp.MustCompile(`(?i)NPM\s+package`),
	regexp.MustCompile(`(?i)Validation\s+pack`),
	regexp.MustCompile(`(?i)Full\s+specification`),
}

// DownloadsPage extracts file links and package mentions from a downloads
// page. File links are matched two ways, extension first and then path
// keyword, so an anchor matching both is listed twice; that mirrors how
// multiple hosting conventions advertise the same artifact.
func DownloadsPage(html, sourceURL string) DownloadsSummary {
	out := DownloadsSummary{
		SourceURL: sourceURL,
		Files:     []FileEntry{},
		Formats:   []string{},
		Packages:  []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return out
	}

	formats := map[string]struct{}{}
	addFile := func(href, text string) {
		desc := collapseSpace(text)
		if len(desc) <= 3 {
			return
		}
		format := formatFromURL(href)
		out.Files = append(out.Files, FileEntry{URL: href, Description: desc, Format: format})
		formats[format] = struct{}{}
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href := s.AttrOr("href", ""); fileExtPattern.MatchString(href) {
			addFile(href, s.Text())
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		lower := strings.ToLower(href)
		for _, keyword := range bundlePathKeywords {
			if strings.Contains(lower, keyword) {
				addFile(href, s.Text())
				return
			}
		}
	})

	out.Formats = make([]string, 0, len(formats))
	for format := range formats {
		out.Formats = append(out.Formats, format)
	}
	sort.Strings(out.Formats)

	for _, pattern := range packagePatterns {
		out.Packages = append(out.Packages, pattern.FindAllString(html, -1)...)
	}

	return out
}

// formatFromURL is the lowercased extension after the last dot, or "unknown"
// for extension-less URLs. Compound extensions keep only the last segment
// ("tar.gz" reports as "gz").
func formatFromURL(url string) string {
	idx := strings.LastIndex(url, ".")
	if idx < 0 || idx == len(url)-1 {
		return "unknown"
	}
	return strings.ToLower(url[idx+1:])
}
