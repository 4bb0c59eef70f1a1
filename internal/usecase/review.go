package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/ports"
)

const maxBatchSize = 10

// Reviewer scores article stubs against the rubric in near-even batches so
// a single oversized prompt never blows the model's attention budget.
type Reviewer struct {
	completer ports.Completer
	criteria  ports.CriteriaStore
	logger    *slog.Logger
}

func NewReviewer(completer ports.Completer, criteria ports.CriteriaStore, logger *slog.Logger) *Reviewer {
	return &Reviewer{completer: completer, criteria: criteria, logger: logger}
}

// batchPlan computes the batch count and per-batch size. The sizing can
// leave the final batch short; downstream merging does not care.
func batchPlan(count int) (batches, size int) {
	if count <= maxBatchSize {
		return 1, count
	}
	batches = count/maxBatchSize + 1
	size = count/batches + 1
	return batches, size
}

// reviewItem is the shape the scorer is asked to return per article.
type reviewItem struct {
	ArticleID     string   `json:"articleID"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	URL           string   `json:"url"`
	Date          *string  `json:"date"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Compatibility looseInt `json:"compatibility"`
}

func (item reviewItem) toArticle() domain.Article {
	a := domain.Article{
		ArticleID: item.ArticleID,
		Title:     item.Title,
		Excerpt:   item.Excerpt,
		URL:       item.URL,
		Date:      item.Date,
		Company:   item.Company,
		Location:  item.Location,
	}
	if item.Compatibility.ok {
		a.Compatibility = item.Compatibility.value
	}
	return a
}

// Review scores the given articles. Every input article is represented in
// the output: a batch whose reply cannot be obtained or parsed degrades to
// unscored copies of its input rather than dropping records.
func (r *Reviewer) Review(ctx context.Context, articles []domain.Article) []domain.Article {
	if len(articles) == 0 {
		return []domain.Article{}
	}

	rubric := rubricBullets(r.criteria)
	batches, size := batchPlan(len(articles))
	r.logger.Info("reviewing articles", "count", len(articles), "batches", batches, "batch_size", size)

	results := make([]domain.Article, 0, len(articles))
	for start := 0; start < len(articles); start += size {
		end := min(start+size, len(articles))
		batch := articles[start:end]

		payload, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			results = append(results, fallbackRecords(batch)...)
			continue
		}

		prompt := fmt.Sprintf(reviewPromptTemplate, rubric, payload)
		reply, err := r.completer.Complete(ctx, prompt)
		if err != nil {
			r.logger.Warn("review batch call failed, keeping unscored records", "error", err)
			results = append(results, fallbackRecords(batch)...)
			continue
		}

		var items []reviewItem
		status := repairArray(reply, &items)
		if status == ParseFailed || len(items) == 0 {
			r.logger.Warn("review reply unparseable, keeping unscored records", "batch_start", start)
			results = append(results, fallbackRecords(batch)...)
			continue
		}
		if status == ParseRepaired {
			r.logger.Debug("review reply repaired", "batch_start", start)
		}

		for _, item := range items {
			results = append(results, item.toArticle())
		}
	}

	return results
}

// fallbackRecords synthesizes one unscored record per input so a failed
// batch never drops articles. Score, company, and location are zeroed;
// identity and the scraped fields survive.
func fallbackRecords(batch []domain.Article) []domain.Article {
	out := make([]domain.Article, len(batch))
	copy(out, batch)
	for i := range out {
		out[i].Compatibility = 0
		out[i].Company = ""
		out[i].Location = ""
	}
	return out
}
