package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/ports"
)

// DefaultDelay is the politeness pause between successive listing-page
// fetches within one walk.
const DefaultDelay = time.Second

// DocumentFetcher retrieves one page as a parsed document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Walker drives the fetcher and extractor across listing pages until a date
// cutoff is reached or pagination ends. Each Walk starts a fresh crawl with
// no memory of prior calls.
type Walker struct {
	fetcher   DocumentFetcher
	extractor *Extractor
	delay     time.Duration
	logger    *slog.Logger
}

var _ ports.ListingSource = (*Walker)(nil)

// NewWalker wires the crawl loop; delay <= 0 uses DefaultDelay.
func NewWalker(fetcher DocumentFetcher, extractor *Extractor, delay time.Duration, logger *slog.Logger) *Walker {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{fetcher: fetcher, extractor: extractor, delay: delay, logger: logger}
}

// Walk accumulates stubs in page-then-in-page order. The first article dated
// strictly before the cutoff is still included, then the walk stops. A stub
// whose date cannot be resolved never triggers the cutoff. A fetch failure
// past the first page returns the partial result without error.
func (w *Walker) Walk(ctx context.Context, startURL string, cutoff time.Time) ([]domain.Article, error) {
	var collected []domain.Article
	currentURL := startURL
	pageCount := 1
	reachedCutoff := false

	for currentURL != "" && !reachedCutoff {
		doc, err := w.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			if pageCount == 1 {
				return nil, fmt.Errorf("fetch first listing page: %w", err)
			}
			w.logger.Warn("listing fetch failed, keeping partial walk",
				"page", pageCount, "error", err)
			break
		}

		stubs := w.extractor.Extract(doc)
		if len(stubs) == 0 {
			w.logger.Debug("no articles found", "page", pageCount)
			break
		}

		for _, stub := range stubs {
			collected = append(collected, stub)

			date, ok := stubDate(stub)
			if !ok {
				w.logger.Debug("article has no resolvable date", "title", stub.Title)
				continue
			}
			if date.Before(cutoff) {
				w.logger.Info("reached cutoff date",
					"page", pageCount, "article_date", date.Format("2006-01-02"))
				reachedCutoff = true
				break
			}
		}
		if reachedCutoff {
			break
		}

		pagination := w.extractor.Pagination(doc)
		if !pagination.HasNext || pagination.NextURL == "" {
			w.logger.Debug("no more pages", "page", pageCount)
			break
		}

		time.Sleep(w.delay)
		currentURL = pagination.NextURL
		pageCount++
	}

	w.logger.Debug("walk finished", "pages", pageCount, "articles", len(collected))
	return collected, nil
}

func stubDate(stub domain.Article) (time.Time, bool) {
	if stub.Date == nil {
		return time.Time{}, false
	}
	return ParseDate(*stub.Date)
}
