// Package oauth implements the authorization-code exchange for protected
// FHIR resources. The authorization code itself comes from an injected
// CodePrompter so the flow stays testable without interactive input.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CodePrompter obtains the authorization code after the user visits the
// authorization URL.
type CodePrompter interface {
	Code(authURL string) (string, error)
}

// PrompterFunc adapts a function to the CodePrompter interface.
type PrompterFunc func(authURL string) (string, error)

func (f PrompterFunc) Code(authURL string) (string, error) { return f(authURL) }

type Flow struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string

	HTTP *http.Client
}

const defaultScope = "patient/*.read"

func (f Flow) httpClient() *http.Client {
	if f.HTTP != nil {
		return f.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (f Flow) scope() string {
	if f.Scope == "" {
		return defaultScope
	}
	return f.Scope
}

// AuthCodeURL builds the authorization URL the user must visit.
func (f Flow) AuthCodeURL() string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", f.ClientID)
	params.Set("redirect_uri", f.RedirectURI)
	params.Set("scope", f.scope())
	return strings.TrimRight(f.BaseURL, "/") + "/oauth2/authorize?" + params.Encode()
}

// Exchange trades an authorization code for an access token. A non-200
// response or transport failure returns an error and no token; this is the
// one place a remote fault is surfaced to the user rather than degraded.
func (f Flow) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", f.ClientID)
	form.Set("client_secret", f.ClientSecret)
	form.Set("redirect_uri", f.RedirectURI)

	tokenURL := strings.TrimRight(f.BaseURL, "/") + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed: http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token response had no access_token")
	}
	return token.AccessToken, nil
}

// Run walks the full flow: build the authorization URL, ask the prompter for
// the code, exchange it.
func (f Flow) Run(ctx context.Context, prompter CodePrompter) (string, error) {
	if prompter == nil {
		return "", errors.New("code prompter is required")
	}
	code, err := prompter.Code(f.AuthCodeURL())
	if err != nil {
		return "", err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", errors.New("empty authorization code")
	}
	return f.Exchange(ctx, code)
}
