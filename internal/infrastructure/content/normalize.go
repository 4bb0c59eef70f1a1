package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	maxContentLength = 10000
	truncationMarker = "... [content truncated for length]"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace runs to single spaces, trims, and
// hard-truncates overlong bodies with a marker so prompts stay bounded.
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxContentLength {
		text = string(runes[:maxContentLength]) + truncationMarker
	}
	return text
}

// textOf renders the selection's text with a single space between text
// nodes, the way the extraction heuristics expect block boundaries to read.
func textOf(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return strings.Join(parts, " ")
}
