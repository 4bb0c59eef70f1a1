package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/ports"
)

const analysisTimeLayout = "2006-01-02 15:04:05"

// Analyzer performs the deep single-article enrichment: pull the full page
// text, score it against the rubric, and merge the verdict into the record.
type Analyzer struct {
	content   ports.ContentSource
	completer ports.Completer
	criteria  ports.CriteriaStore
	logger    *slog.Logger
}

func NewAnalyzer(content ports.ContentSource, completer ports.Completer, criteria ports.CriteriaStore, logger *slog.Logger) *Analyzer {
	return &Analyzer{content: content, completer: completer, criteria: criteria, logger: logger}
}

// analysisReply is the shape the model is asked to return.
type analysisReply struct {
	Compatibility looseInt `json:"analysis_compatibility"`
	Explanation   string   `json:"analysis_explanation"`
	Company       string   `json:"analysis_company"`
	Location      string   `json:"analysis_location"`
	Contact       string   `json:"analysis_contact"`
	Summary       string   `json:"analysis_summary"`
	Error         string   `json:"error"`
}

// Analyze enriches one record. Title, excerpt, url, and date are never
// touched. The top-level compatibility score is overwritten only when the
// analysis supplies a usable number, company and location only when
// non-empty. Every attempt, failed or not, stamps a fresh analysis date
// and id and snapshots the pre-analysis score.
func (a *Analyzer) Analyze(ctx context.Context, article domain.Article) domain.Article {
	out := article
	stamp := time.Now().Format(analysisTimeLayout)
	id := uuid.New().String()

	body := a.content.Extract(ctx, article.URL, article.Title)
	prompt := fmt.Sprintf(analysisPromptTemplate, rubricBullets(a.criteria), body)

	reply, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("analysis call failed", "articleID", article.ArticleID, "error", err)
		out.Analysis = &domain.Analysis{
			Error:                 err.Error(),
			Date:                  stamp,
			ID:                    id,
			OriginalCompatibility: article.Compatibility,
		}
		return out
	}

	var parsed analysisReply
	status := repairObject(reply, &parsed)

	analysis := &domain.Analysis{
		Explanation:           parsed.Explanation,
		Company:               parsed.Company,
		Location:              parsed.Location,
		Contact:               parsed.Contact,
		Summary:               parsed.Summary,
		Date:                  stamp,
		ID:                    id,
		OriginalCompatibility: article.Compatibility,
		Error:                 parsed.Error,
	}

	if status == ParseFailed {
		a.logger.Warn("analysis reply unparseable", "articleID", article.ArticleID)
		analysis.Explanation = "Could not parse LLM response as JSON."
		analysis.Error = "Invalid JSON format in LLM response"
	} else if status == ParseRepaired {
		a.logger.Debug("analysis reply repaired", "articleID", article.ArticleID)
	}

	if parsed.Compatibility.ok {
		score := parsed.Compatibility.value
		analysis.Compatibility = &score
		out.Compatibility = score
	}
	if parsed.Company != "" {
		out.Company = parsed.Company
	}
	if parsed.Location != "" {
		out.Location = parsed.Location
	}

	out.Analysis = analysis
	return out
}

// AnalyzeAll enriches every record in order.
func (a *Analyzer) AnalyzeAll(ctx context.Context, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		out = append(out, a.Analyze(ctx, article))
	}
	return out
}
