package markdown

import (
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

type Converter struct {
	md *htmltomd.Converter
}

func NewConverter() *Converter {
	conv := htmltomd.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return &Converter{md: conv}
}

// Excerpt converts page HTML to markdown and trims it to roughly maxRunes,
// cutting at the last paragraph break before the limit when one exists.
func (c *Converter) Excerpt(html string, maxRunes int) (string, error) {
	body, err := c.md.ConvertString(html)
	if err != nil {
		return "", err
	}
	body = strings.TrimSpace(body)
	if maxRunes <= 0 {
		return body, nil
	}

	runes := []rune(body)
	if len(runes) <= maxRunes {
		return body, nil
	}

	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, "\n\n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "\n", nil
}
