package parser

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"LeadProspector/internal/domain"
)

var (
	urlDateExpr    = regexp.MustCompile(`/(\d{4}-\d{2})/`)
	scriptDateExpr = regexp.MustCompile(`"date":"([^"]+)"`)
	embeddedExpr   = regexp.MustCompile(`(?s)"content":\s*(\{.+?\})(?:,\s*"children":|\s*\})`)
	trailingComma  = regexp.MustCompile(`,\s*\}`)
)

// Extractor pulls article stubs and pagination info out of listing pages.
// Three strategies run in order (cards, teaser cards, embedded JSON), merged
// with duplicate suppression by exact title.
type Extractor struct {
	baseURL    string
	listingURL string
	logger     *slog.Logger
}

// NewExtractor binds the extractor to the site's base URL (for resolving
// article hrefs) and the listing URL (for resolving pagination queries).
func NewExtractor(baseURL, listingURL string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		listingURL: listingURL,
		logger:     logger,
	}
}

// Extract returns every article stub found on one listing page. A stub with
// no resolvable title is discarded.
func (e *Extractor) Extract(doc *goquery.Document) []domain.Article {
	stubs := e.cardStubs(doc)

	seen := make(map[string]bool, len(stubs))
	for _, s := range stubs {
		seen[s.Title] = true
	}

	for _, s := range e.teaserStubs(doc) {
		if seen[s.Title] {
			continue
		}
		seen[s.Title] = true
		stubs = append(stubs, s)
	}

	for _, s := range e.embeddedStubs(doc) {
		if seen[s.Title] {
			continue
		}
		seen[s.Title] = true
		stubs = append(stubs, s)
	}

	return stubs
}

// cardStubs handles the main listing cards: title and url from the heading
// link, excerpt from the card body.
func (e *Extractor) cardStubs(doc *goquery.Document) []domain.Article {
	var stubs []domain.Article

	doc.Find("div.card").Each(func(_ int, card *goquery.Selection) {
		var stub domain.Article

		heading := card.Find("h2.card__heading, h3.card__heading").First()
		link := heading.Find("a").First()
		if link.Length() > 0 {
			stub.Title = strings.TrimSpace(link.Text())
			if href, ok := link.Attr("href"); ok {
				stub.URL = e.resolveArticleURL(href)
			}
		}

		if body := card.Find("div.card__body").First(); body.Length() > 0 {
			stub.Excerpt = strings.TrimSpace(body.Text())
		}

		if stub.Title == "" {
			return
		}

		e.resolveStubDate(doc, &stub)
		stubs = append(stubs, stub)
	})

	return stubs
}

// teaserStubs handles the compact teaser blocks; the heading sits inside the
// link rather than the other way around.
func (e *Extractor) teaserStubs(doc *goquery.Document) []domain.Article {
	var stubs []domain.Article

	doc.Find("div.teaser-card").Each(func(_ int, card *goquery.Selection) {
		var stub domain.Article

		heading := card.Find("h3.teaser-card__heading").First()
		if heading.Length() > 0 {
			link := heading.Closest("a")
			if link.Length() > 0 {
				stub.Title = strings.TrimSpace(heading.Text())
				if href, ok := link.Attr("href"); ok {
					stub.URL = e.resolveArticleURL(href)
				}
			}
		}

		if body := card.Find("div.teaser-card__body").First(); body.Length() > 0 {
			stub.Excerpt = strings.TrimSpace(body.Text())
		}

		if stub.Title == "" {
			return
		}

		e.resolveStubDate(doc, &stub)
		stubs = append(stubs, stub)
	})

	return stubs
}

type embeddedContent struct {
	Items []struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		URL     string `json:"url"`
		Date    string `json:"date"`
	} `json:"items"`
}

// embeddedStubs scans untyped inline script blocks for the listing's
// serialized "content" payload. The payload routinely carries trailing
// commas, which are stripped before parsing.
func (e *Extractor) embeddedStubs(doc *goquery.Document) []domain.Article {
	var stubs []domain.Article

	doc.Find("script:not([type])").Each(func(_ int, script *goquery.Selection) {
		text := script.Text()
		if !strings.Contains(text, `"content":`) || !strings.Contains(text, `"items":`) {
			return
		}

		match := embeddedExpr.FindStringSubmatch(text)
		if match == nil {
			return
		}

		raw := trailingComma.ReplaceAllString(match[1], "}")
		var content embeddedContent
		if err := json.Unmarshal([]byte(raw), &content); err != nil {
			e.logger.Debug("embedded listing payload unparseable", "error", err)
			return
		}

		for _, item := range content.Items {
			if item.Title == "" {
				continue
			}
			stub := domain.Article{
				Title:   item.Title,
				Excerpt: item.Summary,
				URL:     e.resolveArticleURL(item.URL),
			}
			if item.Date != "" {
				date := item.Date
				stub.Date = &date
			}
			stubs = append(stubs, stub)
		}
	})

	return stubs
}

// resolveStubDate fills the stub date: an explicit date from a script block
// mentioning the article's URL fragment wins; otherwise a coarse first-of-
// month date is derived from a YYYY-MM fragment in the URL path and flagged
// as estimated.
func (e *Extractor) resolveStubDate(doc *goquery.Document, stub *domain.Article) {
	if date := scriptDate(doc, stub.URL); date != "" {
		stub.Date = &date
		return
	}
	if match := urlDateExpr.FindStringSubmatch(stub.URL); match != nil {
		date := match[1] + "-01"
		stub.Date = &date
		stub.DateEstimated = true
	}
}

// scriptDate looks for a script block that names the article's URL-derived ID
// next to a "date" field.
func scriptDate(doc *goquery.Document, articleURL string) string {
	if articleURL == "" {
		return ""
	}
	parts := strings.Split(articleURL, "/")
	fragment := parts[len(parts)-1]
	if fragment == "" {
		return ""
	}

	var found string
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, fragment) || !strings.Contains(text, `"date":`) {
			return true
		}
		if match := scriptDateExpr.FindStringSubmatch(text); match != nil {
			found = match[1]
			return false
		}
		return true
	})
	return found
}

func (e *Extractor) resolveArticleURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return e.baseURL + href
	}
	return href
}
