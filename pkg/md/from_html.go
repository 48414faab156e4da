package md

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	headRe    = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	scriptRe  = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// FromHTML converts an HTML document to markdown so it can go through the
// same pipeline as markdown input.
func FromHTML(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	// Metadata, scripts and comments carry no document content.
	html = headRe.ReplaceAllString(html, "")
	html = scriptRe.ReplaceAllString(html, "")
	html = commentRe.ReplaceAllString(html, "")

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown), nil
}
