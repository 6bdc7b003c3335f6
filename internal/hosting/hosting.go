// Package hosting answers two questions about a guideline's source
// repository: what the code-hosting API knows about it, and which of its
// known publication endpoints currently respond.
package hosting

import (
	"context"
	"encoding/json"
	"strconv"

	"smart_scout/internal/fetch"
	"smart_scout/internal/resolve"
)

// RepoSummary is the fixed field set mapped from one repository-metadata
// response.
type RepoSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	UpdatedAt   string   `json:"updated_at"`
	HTMLURL     string   `json:"html_url"`
	Topics      []string `json:"topics"`
	Language    string   `json:"language"`
	SizeKB      int      `json:"size_kb"`
}

// Endpoint records one availability check.
type Endpoint struct {
	URL        string `json:"url"`
	Status     string `json:"status"` // numeric status code, or "error"
	Accessible bool   `json:"accessible"`
}

const fallbackDescription = "Repository information not available"

// Lookup fetches repository metadata for a guideline. Any failure, remote or
// transport, degrades to a minimal fallback record; lookup never errors.
func Lookup(ctx context.Context, client *fetch.Client, hosts resolve.Hosts, id string) RepoSummary {
	out := client.Get(ctx, resolve.RepoAPIURL(hosts, id))
	if !out.Success() {
		return RepoSummary{Name: id, Description: fallbackDescription}
	}

	var doc map[string]any
	if err := json.Unmarshal(out.Body, &doc); err != nil {
		return RepoSummary{Name: id, Description: fallbackDescription}
	}

	return RepoSummary{
		Name:        stringField(doc, "name", ""),
		Description: stringField(doc, "description", "No description available"),
		UpdatedAt:   stringField(doc, "updated_at", ""),
		HTMLURL:     stringField(doc, "html_url", ""),
		Topics:      stringList(doc, "topics"),
		Language:    stringField(doc, "language", ""),
		SizeKB:      intField(doc, "size"),
	}
}

// Probe HEAD-checks each known endpoint for a guideline. Checks are
// independent: one endpoint failing never short-circuits the rest.
func Probe(ctx context.Context, client *fetch.Client, hosts resolve.Hosts, id string) map[string]Endpoint {
	availability := map[string]Endpoint{}
	for _, ep := range resolve.ProbeEndpoints(hosts, id) {
		out := client.Head(ctx, ep.URL)
		if out.Err != nil {
			availability[ep.Name] = Endpoint{URL: ep.URL, Status: "error"}
			continue
		}
		availability[ep.Name] = Endpoint{
			URL:        ep.URL,
			Status:     strconv.Itoa(out.Status),
			Accessible: out.Status == 200,
		}
	}
	return availability
}

func stringField(doc map[string]any, key, def string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return def
}

func stringList(doc map[string]any, key string) []string {
	raw, ok := doc[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intField(doc map[string]any, key string) int {
	if v, ok := doc[key].(float64); ok {
		return int(v)
	}
	return 0
}
