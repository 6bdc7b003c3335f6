package resolve

import (
	"fmt"
	"strings"
)

// Kind selects which family of candidate URLs to build for a guideline.
type Kind string

const (
	KindGuideJSON Kind = "guide-json"
	KindGuideHTML Kind = "guide-html"
	KindDownloads Kind = "downloads"
)

// Hosts holds the base URLs of the known hosting locations. Zero values fall
// back to the public WHO hosting; tests point these at local servers.
type Hosts struct {
	Build     string // CI build site (auto-published per commit)
	Pages     string // static pages site (released builds)
	Canonical string // canonical publication site
	API       string // code-hosting API
	Repo      string // code-hosting web UI
}

const (
	defaultBuild     = "http://build.fhir.org"
	defaultPages     = "https://worldhealthorganization.github.io"
	defaultCanonical = "http://smart.who.int"
	defaultAPI       = "https://api.github.com"
	defaultRepo      = "https://github.com"
)

func DefaultHosts() Hosts {
	return Hosts{
		Build:     defaultBuild,
		Pages:     defaultPages,
		Canonical: defaultCanonical,
		API:       defaultAPI,
		Repo:      defaultRepo,
	}
}

func (h Hosts) withDefaults() Hosts {
	def := DefaultHosts()
	if h.Build == "" {
		h.Build = def.Build
	}
	if h.Pages == "" {
		h.Pages = def.Pages
	}
	if h.Canonical == "" {
		h.Canonical = def.Canonical
	}
	if h.API == "" {
		h.API = def.API
	}
	if h.Repo == "" {
		h.Repo = def.Repo
	}
	h.Build = strings.TrimRight(h.Build, "/")
	h.Pages = strings.TrimRight(h.Pages, "/")
	h.Canonical = strings.TrimRight(h.Canonical, "/")
	h.API = strings.TrimRight(h.API, "/")
	h.Repo = strings.TrimRight(h.Repo, "/")
	return h
}

// Candidates returns the candidate URLs for one guideline and kind, newest
// hosting convention first. The order is part of the contract: callers stop
// at the first URL that answers.
func Candidates(hosts Hosts, id string, kind Kind) []string {
	h := hosts.withDefaults()
	switch kind {
	case KindGuideJSON:
		return []string{
			fmt.Sprintf("%s/ig/WorldHealthOrganization/smart-%s/ImplementationGuide-smart-%s.json", h.Build, id, id),
			fmt.Sprintf("%s/ig/WorldHealthOrganization/smart-%s/ImplementationGuide.json", h.Build, id),
			fmt.Sprintf("%s/smart-%s/ImplementationGuide-smart-%s.json", h.Pages, id, id),
			fmt.Sprintf("%s/smart-%s/ImplementationGuide.json", h.Pages, id),
			fmt.Sprintf("%s/%s/ImplementationGuide/smart.who.int.%s.json", h.Canonical, id, id),
		}
	case KindGuideHTML:
		return []string{
			fmt.Sprintf("%s/ig/WorldHealthOrganization/smart-%s/", h.Build, id),
			fmt.Sprintf("%s/smart-%s/", h.Pages, id),
		}
	case KindDownloads:
		return []string{
			fmt.Sprintf("%s/ig/WorldHealthOrganization/smart-%s/downloads.html", h.Build, id),
			fmt.Sprintf("%s/smart-%s/downloads.html", h.Pages, id),
		}
	}
	return nil
}

// Endpoint is one probe target with its stable display name.
type Endpoint struct {
	Name string
	URL  string
}

// ProbeEndpoints returns the fixed availability-check targets for a
// guideline, in display order.
func ProbeEndpoints(hosts Hosts, id string) []Endpoint {
	h := hosts.withDefaults()
	return []Endpoint{
		{Name: "build_site", URL: fmt.Sprintf("%s/ig/WorldHealthOrganization/smart-%s/", h.Build, id)},
		{Name: "github_pages", URL: fmt.Sprintf("%s/smart-%s/", h.Pages, id)},
		{Name: "github_repo", URL: fmt.Sprintf("%s/WorldHealthOrganization/smart-%s", h.Repo, id)},
	}
}

// RepoAPIURL returns the code-hosting API URL for a guideline repository.
func RepoAPIURL(hosts Hosts, id string) string {
	h := hosts.withDefaults()
	return fmt.Sprintf("%s/repos/WorldHealthOrganization/smart-%s", h.API, id)
}
