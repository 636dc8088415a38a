package tui

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements that force a line break in the plain-text rendering.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true,
}

// StripHTML converts a product description fragment to plain text. It uses
// the golang.org/x/net/html tokenizer for safe parsing; block elements become
// line breaks and everything else is dropped.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// End of document or error
			return collapseLines(result.String())

		case html.TextToken:
			result.WriteString(string(tokenizer.Text()))

		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if blockTags[string(tn)] {
				result.WriteString("\n")
			}
		}
	}
}

// collapseLines trims each line, drops empty ones, and decodes the HTML
// entities storefront descriptions commonly carry.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	var clean []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			clean = append(clean, line)
		}
	}
	return entityReplacer.Replace(strings.Join(clean, "\n"))
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&mdash;", "—",
	"&ndash;", "–",
	"&hellip;", "…",
	"&copy;", "©",
	"&reg;", "®",
	"&trade;", "™",
)
