package guide

import (
	"encoding/json"
	"fmt"
)

// Summary is the normalized Digital Adaptation Kit view of one
// ImplementationGuide JSON document.
type Summary struct {
	Title        string       `json:"title"`
	Version      string       `json:"version"`
	Description  string       `json:"description"`
	Status       string       `json:"status"`
	Date         string       `json:"date"`
	Publisher    string       `json:"publisher"`
	Dependencies []Dependency `json:"dependencies"`
	Resources    []Resource   `json:"resources"`
}

type Dependency struct {
	URI     string `json:"uri"`
	Version string `json:"version"`
}

type Resource struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Parse decodes an ImplementationGuide JSON body into a generic document.
func Parse(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode implementation guide: %w", err)
	}
	return doc, nil
}

// Summarize extracts the DAK summary from a guide document. Missing keys fall
// back to placeholders, never errors. A nil or empty document yields nil: no
// guide, no summary.
func Summarize(doc map[string]any) *Summary {
	if len(doc) == 0 {
		return nil
	}

	out := &Summary{
		Title:        stringField(doc, "title", "Unknown Title"),
		Version:      stringField(doc, "version", "Unknown Version"),
		Description:  stringField(doc, "description", ""),
		Status:       stringField(doc, "status", "unknown"),
		Date:         stringField(doc, "date", ""),
		Publisher:    stringField(doc, "publisher", ""),
		Dependencies: []Dependency{},
		Resources:    []Resource{},
	}

	for _, item := range listField(doc, "dependsOn") {
		out.Dependencies = append(out.Dependencies, Dependency{
			URI:     stringField(item, "uri", ""),
			Version: stringField(item, "version", ""),
		})
	}

	for _, item := range listField(doc, "contained") {
		title := stringField(item, "title", "")
		if title == "" {
			title = stringField(item, "name", "")
		}
		out.Resources = append(out.Resources, Resource{
			Type:  stringField(item, "resourceType", "Unknown"),
			ID:    stringField(item, "id", ""),
			Title: title,
		})
	}

	return out
}

func stringField(doc map[string]any, key, def string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return def
}

func listField(doc map[string]any, key string) []map[string]any {
	raw, ok := doc[key].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}
