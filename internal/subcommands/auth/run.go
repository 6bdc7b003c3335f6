// Package auth implements the `auth` subcommand: run the OAuth2
// authorization-code flow against a SMART-on-FHIR server and print the
// resulting access token.
package auth

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"smart_scout/internal/config"
	"smart_scout/internal/fhir"
	"smart_scout/internal/oauth"
	"smart_scout/internal/tui"
)

func Run(args []string) error {
	fs := flag.NewFlagSet("auth", flag.ContinueOnError)
	baseURL := fs.String("url", fhir.DefaultBaseURL, "Authorization server base URL")
	clientID := fs.String("client-id", "", "OAuth2 client id")
	clientSecret := fs.String("client-secret", "", "OAuth2 client secret")
	redirectURI := fs.String("redirect-uri", "http://localhost:8080/callback", "Registered redirect URI")
	scope := fs.String("scope", "", "Requested scope (default patient/*.read)")
	configPath := fs.String("config", "", "YAML config with an oauth section")
	timeout := fs.Int("timeout", 30, "Exchange timeout seconds")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		applyConfig(cfg.OAuth, clientID, clientSecret, redirectURI, scope)
	}

	if *clientID == "" {
		return errors.New("auth: -client-id is required")
	}

	flow := oauth.Flow{
		BaseURL:      *baseURL,
		ClientID:     *clientID,
		ClientSecret: *clientSecret,
		RedirectURI:  *redirectURI,
		Scope:        *scope,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeout)*time.Second)
	defer cancel()

	token, err := flow.Run(ctx, oauth.PrompterFunc(tui.AuthCodePrompter))
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Println("Access token obtained:")
	fmt.Println(token)
	return nil
}

func applyConfig(cfg config.OAuth, clientID, clientSecret, redirectURI, scope *string) {
	if *clientID == "" && cfg.ClientID != "" {
		*clientID = cfg.ClientID
	}
	if *clientSecret == "" && cfg.ClientSecret != "" {
		*clientSecret = cfg.ClientSecret
	}
	if cfg.RedirectURI != "" {
		*redirectURI = cfg.RedirectURI
	}
	if *scope == "" && cfg.Scope != "" {
		*scope = cfg.Scope
	}
}
