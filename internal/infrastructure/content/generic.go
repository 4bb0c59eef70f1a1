package content

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// substantialLength separates real paragraphs from navigation crumbs and
// bylines in the generic heuristics.
const substantialLength = 100

var contentSelectors = []string{
	".article-content", ".post-content", ".entry-content",
	".article-body", ".story-body", ".main-content",
	"#article-content", "#post-content", "#main-content",
	"main", `[role="main"]`,
}

// findByTitle locates a heading textually matching the title hint
// (case-insensitive containment either direction), then walks up to four
// ancestor levels looking for an article-ish container; failing that, it
// collects substantial sibling paragraphs after the heading.
func findByTitle(doc *goquery.Document, titleHint string) string {
	cleanTitle := strings.ToLower(strings.TrimSpace(titleHint))
	if cleanTitle == "" {
		return ""
	}

	var result string
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		headerText := strings.ToLower(strings.TrimSpace(header.Text()))
		if headerText == "" {
			return true
		}
		if !strings.Contains(headerText, cleanTitle) && !strings.Contains(cleanTitle, headerText) {
			return true
		}

		current := header.Parent()
		for level := 0; level < 4 && current.Length() > 0; level++ {
			name := goquery.NodeName(current)
			if (name == "article" || name == "div" || name == "section") &&
				(current.HasClass("article") || current.HasClass("content") || current.HasClass("post")) {
				result = Normalize(textOf(current))
				return false
			}
			current = current.Parent()
		}

		var parts []string
		header.NextAll().Filter("p, div").Each(func(_ int, sibling *goquery.Selection) {
			text := strings.TrimSpace(sibling.Text())
			if utf8.RuneCountInString(text) > substantialLength {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			result = Normalize(strings.Join(parts, " "))
			return false
		}
		return true
	})
	return result
}

// findMainContent tries the article element, then common content-container
// selectors.
func findMainContent(doc *goquery.Document) string {
	if article := doc.Find("article").First(); article.Length() > 0 {
		return Normalize(textOf(article))
	}
	for _, selector := range contentSelectors {
		if node := doc.Find(selector).First(); node.Length() > 0 {
			return Normalize(textOf(node))
		}
	}
	return ""
}

// extractByTextDensity keeps only substantial paragraphs; when a page has
// none it falls back to the whole body text.
func extractByTextDensity(doc *goquery.Document) string {
	paragraphs := doc.Find("p")
	if paragraphs.Length() == 0 {
		return Normalize(textOf(doc.Selection))
	}

	var parts []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) > substantialLength {
			parts = append(parts, text)
		}
	})
	if len(parts) > 0 {
		return Normalize(strings.Join(parts, " "))
	}
	return Normalize(textOf(doc.Find("body")))
}
