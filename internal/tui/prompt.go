package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// AuthCodePrompter asks for the OAuth2 authorization code after printing the
// authorization URL for the user to visit.
func AuthCodePrompter(authURL string) (string, error) {
	fmt.Println("Visit the authorization URL and approve access:")
	fmt.Println("  " + authURL)

	var code string
	input := huh.NewInput().
		Title("Authorization code").
		Description("Paste the code from the redirect URL.").
		Value(&code)
	if err := input.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
