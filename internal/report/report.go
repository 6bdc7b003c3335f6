// Package report renders exploration results for the console. Everything
// writes to an io.Writer so the format is testable; nothing here is a
// machine-parseable contract.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"smart_scout/internal/guide"
	"smart_scout/internal/hosting"
	"smart_scout/internal/htmlscan"
)

// Guideline bundles everything one exploration produced for one identifier.
// Pointers are nil when that path yielded nothing.
type Guideline struct {
	ID           string                      `json:"id"`
	Repo         hosting.RepoSummary         `json:"repository"`
	Availability map[string]hosting.Endpoint `json:"availability"`
	DAK          *guide.Summary              `json:"dak,omitempty"`
	DAKSource    string                      `json:"dak_source,omitempty"`
	Page         *htmlscan.PageSummary       `json:"page,omitempty"`
	Downloads    *htmlscan.DownloadsSummary  `json:"downloads,omitempty"`
}

func WriteHeader(w io.Writer) {
	fmt.Fprintln(w, "WHO SMART Guidelines Explorer")
	fmt.Fprintln(w, strings.Repeat("=", 40))
}

func WriteFooter(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintln(w, "Exploration complete.")
}

func WriteGuideline(w io.Writer, g Guideline) {
	fmt.Fprintf(w, "\n--- %s Guideline ---\n", strings.ToUpper(g.ID))

	fmt.Fprintf(w, "Repository: %s\n", g.Repo.Description)
	if g.Repo.UpdatedAt != "" {
		fmt.Fprintf(w, "Last updated: %s\n", g.Repo.UpdatedAt)
	}

	writeAvailability(w, g.Availability)

	switch {
	case g.DAK != nil:
		writeDAK(w, g.DAK)
	case g.Page != nil:
		writePage(w, g.Page)
		if g.Downloads != nil {
			writeDownloads(w, g.Downloads)
		}
	default:
		fmt.Fprintln(w, "Could not access guideline content (JSON or HTML)")
		fmt.Fprintln(w, "Manual web browser access required")
	}
}

func writeAvailability(w io.Writer, availability map[string]hosting.Endpoint) {
	accessible := []string{}
	for name, ep := range availability {
		if ep.Accessible {
			accessible = append(accessible, name)
		}
	}
	if len(accessible) == 0 {
		return
	}
	sort.Strings(accessible)
	fmt.Fprintf(w, "Available endpoints: %s\n", strings.Join(accessible, ", "))
	for _, name := range accessible {
		fmt.Fprintf(w, "  - %s: %s\n", name, availability[name].URL)
	}
}

func writeDAK(w io.Writer, dak *guide.Summary) {
	fmt.Fprintf(w, "Title: %s\n", dak.Title)
	fmt.Fprintf(w, "Version: %s\n", dak.Version)
	fmt.Fprintf(w, "Status: %s\n", dak.Status)
	fmt.Fprintf(w, "Publisher: %s\n", dak.Publisher)

	if len(dak.Resources) > 0 {
		fmt.Fprintln(w, "Resources:")
		for _, res := range head(dak.Resources, 3) {
			fmt.Fprintf(w, "  - %s: %s\n", res.Type, res.Title)
		}
	}
	if len(dak.Dependencies) > 0 {
		fmt.Fprintln(w, "Dependencies:")
		for _, dep := range dak.Dependencies {
			fmt.Fprintf(w, "  - %s\n", dep.URI)
		}
	}
}

func writePage(w io.Writer, page *htmlscan.PageSummary) {
	fmt.Fprintf(w, "Title: %s\n", page.Title)
	fmt.Fprintf(w, "Version: %s\n", page.Version)
	fmt.Fprintf(w, "Source: %s\n", page.SourceURL)

	if page.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", page.Description)
	}
	if len(page.Sections) > 0 {
		fmt.Fprintln(w, "Key sections:")
		for _, section := range head(page.Sections, 5) {
			fmt.Fprintf(w, "  - %s\n", section)
		}
	}
	if len(page.Resources) > 0 {
		fmt.Fprintln(w, "FHIR resources found:")
		for _, res := range head(page.Resources, 5) {
			fmt.Fprintf(w, "  - %s\n", res)
		}
	}
	if len(page.Links) > 0 {
		fmt.Fprintln(w, "Useful links:")
		for _, link := range head(page.Links, 3) {
			fmt.Fprintf(w, "  - %s: %s\n", link.Text, link.URL)
		}
	}
}

func writeDownloads(w io.Writer, downloads *htmlscan.DownloadsSummary) {
	if len(downloads.Files) == 0 {
		return
	}
	fmt.Fprintln(w, "Available downloads:")
	for _, file := range head(downloads.Files, 5) {
		fmt.Fprintf(w, "  - %s (%s)\n", file.Description, file.Format)
	}
	if len(downloads.Formats) > 0 {
		fmt.Fprintf(w, "Available formats: %s\n", strings.Join(downloads.Formats, ", "))
	}
}

// FHIRDemo summarizes the demo-server interaction.
type FHIRDemo struct {
	Patients        int
	SamplePatientID string
	Observations    int
	Err             error
}

func WriteFHIRDemo(w io.Writer, demo FHIRDemo) {
	fmt.Fprintln(w, "\n--- FHIR Client Demo ---")
	if demo.Err != nil {
		fmt.Fprintf(w, "FHIR demo error: %v\n", demo.Err)
		return
	}
	fmt.Fprintf(w, "Found %d patients in demo server\n", demo.Patients)
	if demo.SamplePatientID != "" {
		fmt.Fprintf(w, "Sample patient ID: %s\n", demo.SamplePatientID)
		fmt.Fprintf(w, "Found %d observations for patient\n", demo.Observations)
	}
}

func head[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	return list
}
