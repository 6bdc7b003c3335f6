// Package output writes per-guideline result files: a JSON summary for
// machines and a markdown report for humans.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"smart_scout/internal/report"
)

// WriteGuidelineJSON writes the full exploration record as indented JSON.
func WriteGuidelineJSON(outDir string, g report.Guideline) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, g.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteGuidelineMarkdown writes a human-readable report. The excerpt, when
// present, is a markdown rendering of the fetched guide page.
func WriteGuidelineMarkdown(outDir string, g report.Guideline, excerpt string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.ToUpper(g.ID))

	fmt.Fprintf(&b, "Repository: %s\n\n", g.Repo.Description)
	writeAvailability(&b, g)

	switch {
	case g.DAK != nil:
		writeDAKSection(&b, g)
	case g.Page != nil:
		writePageSection(&b, g)
	default:
		b.WriteString("No guideline content could be fetched.\n")
	}

	if excerpt != "" {
		b.WriteString("\n## Page excerpt\n\n")
		b.WriteString(excerpt)
		if !strings.HasSuffix(excerpt, "\n") {
			b.WriteString("\n")
		}
	}

	path := filepath.Join(outDir, g.ID+".md")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func writeAvailability(b *strings.Builder, g report.Guideline) {
	if len(g.Availability) == 0 {
		return
	}
	names := make([]string, 0, len(g.Availability))
	for name := range g.Availability {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("## Endpoints\n\n")
	for _, name := range names {
		ep := g.Availability[name]
		mark := "unreachable"
		if ep.Accessible {
			mark = "ok"
		}
		fmt.Fprintf(b, "- %s (%s): %s\n", name, mark, ep.URL)
	}
	b.WriteString("\n")
}

func writeDAKSection(b *strings.Builder, g report.Guideline) {
	dak := g.DAK
	fmt.Fprintf(b, "## %s\n\n", dak.Title)
	fmt.Fprintf(b, "- Version: %s\n", dak.Version)
	fmt.Fprintf(b, "- Status: %s\n", dak.Status)
	if dak.Publisher != "" {
		fmt.Fprintf(b, "- Publisher: %s\n", dak.Publisher)
	}
	if g.DAKSource != "" {
		fmt.Fprintf(b, "- Source: %s\n", g.DAKSource)
	}
	if dak.Description != "" {
		fmt.Fprintf(b, "\n%s\n", dak.Description)
	}

	if len(dak.Resources) > 0 {
		b.WriteString("\n### Resources\n\n")
		for _, res := range dak.Resources {
			fmt.Fprintf(b, "- %s: %s", res.Type, res.ID)
			if res.Title != "" {
				fmt.Fprintf(b, " (%s)", res.Title)
			}
			b.WriteString("\n")
		}
	}
	if len(dak.Dependencies) > 0 {
		b.WriteString("\n### Dependencies\n\n")
		for _, dep := range dak.Dependencies {
			fmt.Fprintf(b, "- %s", dep.URI)
			if dep.Version != "" {
				fmt.Fprintf(b, " (%s)", dep.Version)
			}
			b.WriteString("\n")
		}
	}
}

func writePageSection(b *strings.Builder, g report.Guideline) {
	page := g.Page
	fmt.Fprintf(b, "## %s\n\n", page.Title)
	fmt.Fprintf(b, "- Version: %s\n", page.Version)
	fmt.Fprintf(b, "- Source: %s\n", page.SourceURL)
	if page.Description != "" {
		fmt.Fprintf(b, "\n%s\n", page.Description)
	}

	if len(page.Sections) > 0 {
		b.WriteString("\n### Sections\n\n")
		for _, section := range page.Sections {
			fmt.Fprintf(b, "- %s\n", section)
		}
	}
	if len(page.Resources) > 0 {
		b.WriteString("\n### FHIR resources\n\n")
		for _, res := range page.Resources {
			fmt.Fprintf(b, "- %s\n", res)
		}
	}
	if len(page.Links) > 0 {
		b.WriteString("\n### Links\n\n")
		for _, link := range page.Links {
			fmt.Fprintf(b, "- [%s](%s)\n", link.Text, link.URL)
		}
	}

	if g.Downloads != nil && len(g.Downloads.Files) > 0 {
		b.WriteString("\n### Downloads\n\n")
		for _, file := range g.Downloads.Files {
			fmt.Fprintf(b, "- %s (%s): %s\n", file.Description, file.Format, file.URL)
		}
		if len(g.Downloads.Formats) > 0 {
			fmt.Fprintf(b, "\nFormats: %s\n", strings.Join(g.Downloads.Formats, ", "))
		}
	}
}
