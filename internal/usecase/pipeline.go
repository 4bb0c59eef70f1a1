package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/identity"
	"LeadProspector/internal/ports"
)

// PipelineDeps wires the driven adapters into the prospecting workflows.
type PipelineDeps struct {
	Listing   ports.ListingSource
	Content   ports.ContentSource
	Completer ports.Completer
	Prospects ports.ArticleStore
	Kept      ports.ArticleStore
	Criteria  ports.CriteriaStore
	Logger    *slog.Logger
}

// Pipeline exposes the prospecting operations: survey the listing, analyze
// single records, curate the kept collection, and grow the rubric.
type Pipeline struct {
	listing   ports.ListingSource
	prospects ports.ArticleStore
	kept      ports.ArticleStore
	reviewer  *Reviewer
	analyzer  *Analyzer
	generator *CriteriaGenerator
	logger    *slog.Logger
}

func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		listing:   deps.Listing,
		prospects: deps.Prospects,
		kept:      deps.Kept,
		reviewer:  NewReviewer(deps.Completer, deps.Criteria, logger.With("component", "reviewer")),
		analyzer:  NewAnalyzer(deps.Content, deps.Completer, deps.Criteria, logger.With("component", "analyzer")),
		generator: NewCriteriaGenerator(deps.Completer, deps.Criteria, logger.With("component", "criteria")),
		logger:    logger,
	}
}

// Survey walks the listing from startURL back to the cutoff date, assigns
// identities, scores the stubs in batches, and saves the scored set as the
// new prospects collection. Returns the number of prospects saved.
func (p *Pipeline) Survey(ctx context.Context, startURL string, cutoff time.Time) (int, error) {
	stubs, err := p.listing.Walk(ctx, startURL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("walk listing: %w", err)
	}

	reviewed := p.reviewer.Review(ctx, promote(stubs))
	if err := p.prospects.Save(reviewed); err != nil {
		return 0, fmt.Errorf("save prospects: %w", err)
	}

	p.logger.Info("survey complete", "scraped", len(stubs), "saved", len(reviewed))
	return len(reviewed), nil
}

// promote assigns stable identities and placeholder fields to raw stubs.
// The id is derived from the url, so re-surveying the same listing yields
// the same ids.
func promote(stubs []domain.Article) []domain.Article {
	promoted := make([]domain.Article, 0, len(stubs))
	for _, stub := range stubs {
		stub.ArticleID = identity.ForURL(stub.URL)
		if stub.Title == "" {
			stub.Title = "N/A"
		}
		if stub.Excerpt == "" {
			stub.Excerpt = "N/A"
		}
		promoted = append(promoted, stub)
	}
	return promoted
}

// Analyze deep-analyzes one prospect by id and stores the enriched record
// back into the prospects collection.
func (p *Pipeline) Analyze(ctx context.Context, articleID string) (domain.Article, error) {
	articles, err := p.prospects.Load()
	if err != nil {
		return domain.Article{}, fmt.Errorf("load prospects: %w", err)
	}

	for i := range articles {
		if articles[i].ArticleID != articleID {
			continue
		}
		analyzed := p.analyzer.Analyze(ctx, articles[i])
		articles[i] = analyzed
		if err := p.prospects.Save(articles); err != nil {
			return domain.Article{}, fmt.Errorf("save prospects: %w", err)
		}
		return analyzed, nil
	}

	return domain.Article{}, fmt.Errorf("article %s not found", articleID)
}

// AnalyzeAll enriches every prospect and saves the collection once.
func (p *Pipeline) AnalyzeAll(ctx context.Context) (int, error) {
	articles, err := p.prospects.Load()
	if err != nil {
		return 0, fmt.Errorf("load prospects: %w", err)
	}
	if len(articles) == 0 {
		return 0, nil
	}

	analyzed := p.analyzer.AnalyzeAll(ctx, articles)
	if err := p.prospects.Save(analyzed); err != nil {
		return 0, fmt.Errorf("save prospects: %w", err)
	}
	return len(analyzed), nil
}

// Keep upserts one article into the kept collection.
func (p *Pipeline) Keep(article domain.Article) error {
	return p.kept.Upsert(article)
}

// KeepAll upserts every given article, reporting how many succeeded.
func (p *Pipeline) KeepAll(articles []domain.Article) int {
	kept := 0
	for _, a := range articles {
		if err := p.kept.Upsert(a); err != nil {
			p.logger.Warn("keep failed", "articleID", a.ArticleID, "error", err)
			continue
		}
		kept++
	}
	return kept
}

// Remove deletes one article from the kept collection. Reports whether the
// article was present.
func (p *Pipeline) Remove(articleID string) (bool, error) {
	return p.kept.Remove(articleID)
}

// Prospects returns the current prospects collection.
func (p *Pipeline) Prospects() ([]domain.Article, error) {
	return p.prospects.Load()
}

// KeptArticles returns the current kept collection.
func (p *Pipeline) KeptArticles() ([]domain.Article, error) {
	return p.kept.Load()
}

// Counts summarizes both collections.
func (p *Pipeline) Counts() (domain.Counts, error) {
	prospects, err := p.prospects.Load()
	if err != nil {
		return domain.Counts{}, fmt.Errorf("load prospects: %w", err)
	}
	kept, err := p.kept.Load()
	if err != nil {
		return domain.Counts{}, fmt.Errorf("load kept: %w", err)
	}

	analyzed := 0
	for _, a := range prospects {
		if a.Analysis != nil {
			analyzed++
		}
	}
	return domain.Counts{Prospects: len(prospects), Analyzed: analyzed, Kept: len(kept)}, nil
}

// GenerateCriteria grows the rubric from curator feedback.
func (p *Pipeline) GenerateCriteria(ctx context.Context, feedback string) ([]domain.Criterion, error) {
	return p.generator.Generate(ctx, feedback)
}
