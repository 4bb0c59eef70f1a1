package ports

import (
	"context"
	"time"

	"LeadProspector/internal/domain"
)

// ListingSource walks the paginated listing and returns stubs newer than
// (and including) the first article dated before the cutoff.
type ListingSource interface {
	Walk(ctx context.Context, startURL string, cutoff time.Time) ([]domain.Article, error)
}

// ContentSource fetches and cleans the full-text body of an article URL.
// It never fails: extraction problems degrade to a descriptive string.
type ContentSource interface {
	Extract(ctx context.Context, pageURL, titleHint string) string
}

// Completer submits one text prompt to an LLM and returns the raw completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ArticleStore persists a whole article collection as one JSON document.
type ArticleStore interface {
	Load() ([]domain.Article, error)
	Save(articles []domain.Article) error
	Upsert(article domain.Article) error
	Remove(articleID string) (bool, error)
}

// CriteriaStore owns the scoring rubric. Load never fails hard: a missing
// or unreadable rubric reads as empty.
type CriteriaStore interface {
	Load() ([]domain.Criterion, error)
	Append(items []domain.Criterion) (int, error)
}

// Scheduler controls when survey runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
