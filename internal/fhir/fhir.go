// Package fhir is a minimal read-only client for a FHIR R4 demo server. The
// rest of the program treats it as an optional collaborator: a nil *Client
// means no server, and every search degrades to an empty result.
package fhir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://r4.smarthealthit.org"

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Resource is a generic FHIR resource document.
type Resource map[string]any

func (r Resource) ID() string {
	if id, ok := r["id"].(string); ok {
		return id
	}
	return ""
}

type bundle struct {
	Entry []struct {
		Resource Resource `json:"resource"`
	} `json:"entry"`
}

// SearchPatients returns patients, optionally filtered by family name.
func (c *Client) SearchPatients(ctx context.Context, family string) ([]Resource, error) {
	params := url.Values{}
	if family != "" {
		params.Set("family", family)
	}
	return c.search(ctx, "Patient", params)
}

// SearchObservations returns observations for a patient reference
// ("Patient/{id}") in the given category.
func (c *Client) SearchObservations(ctx context.Context, patientRef, category string) ([]Resource, error) {
	params := url.Values{}
	params.Set("patient", patientRef)
	if category != "" {
		params.Set("category", category)
	}
	return c.search(ctx, "Observation", params)
}

func (c *Client) search(ctx context.Context, resourceType string, params url.Values) ([]Resource, error) {
	searchURL := c.base + "/" + resourceType
	if encoded := params.Encode(); encoded != "" {
		searchURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/fhir+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", resourceType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %s: http status %d", resourceType, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", resourceType, err)
	}

	var b bundle
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("decode %s bundle: %w", resourceType, err)
	}

	resources := make([]Resource, 0, len(b.Entry))
	for _, entry := range b.Entry {
		if entry.Resource != nil {
			resources = append(resources, entry.Resource)
		}
	}
	return resources, nil
}
