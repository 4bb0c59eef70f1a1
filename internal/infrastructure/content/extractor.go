package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"LeadProspector/internal/ports"
)

// DocumentFetcher retrieves one page as a parsed document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Extractor produces cleaned full-text article bodies. It never returns an
// error: a failed fetch or parse degrades to a descriptive string so a batch
// of analyses is never derailed by one bad URL.
type Extractor struct {
	fetcher  DocumentFetcher
	registry *Registry
	logger   *slog.Logger
}

var _ ports.ContentSource = (*Extractor)(nil)

// NewExtractor wires the fetcher and the site-handler registry.
func NewExtractor(fetcher DocumentFetcher, registry *Registry, logger *slog.Logger) *Extractor {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fetcher: fetcher, registry: registry, logger: logger}
}

// Extract fetches pageURL and runs the site-specific handler when the host
// is recognized, else the generic cascade: title-hint match, known content
// containers, then text-density extraction.
func (e *Extractor) Extract(ctx context.Context, pageURL, titleHint string) string {
	doc, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		e.logger.Warn("content extraction degraded", "url", pageURL, "error", err)
		return fmt.Sprintf("Error extracting content: %v", err)
	}

	// Chrome, boilerplate, and trackers poison every heuristic below.
	doc.Find("script, style, header, nav, footer, aside, form").Remove()

	var host string
	if parsed, err := url.Parse(pageURL); err == nil {
		host = parsed.Host
	}

	if handler, ok := e.registry.Resolve(host); ok {
		return handler.Extract(doc, titleHint)
	}

	if titleHint != "" {
		if text := findByTitle(doc, titleHint); text != "" {
			return text
		}
	}

	if text := findMainContent(doc); text != "" {
		return text
	}

	return extractByTextDensity(doc)
}
