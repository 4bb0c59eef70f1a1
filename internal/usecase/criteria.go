package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/ports"
)

// CriteriaGenerator turns curator feedback into new rubric entries.
type CriteriaGenerator struct {
	completer ports.Completer
	criteria  ports.CriteriaStore
	logger    *slog.Logger
}

func NewCriteriaGenerator(completer ports.Completer, criteria ports.CriteriaStore, logger *slog.Logger) *CriteriaGenerator {
	return &CriteriaGenerator{completer: completer, criteria: criteria, logger: logger}
}

var criterionSpanExpr = regexp.MustCompile(`(?s)\{[^{}]*"criteria"[^{}]*\}`)

// Generate asks the model for one or two new criteria matching the
// feedback, repairs bracketless replies, and persists the additions. The
// store deduplicates against the existing rubric; the return value is what
// the model generated, not what survived deduplication.
func (g *CriteriaGenerator) Generate(ctx context.Context, feedback string) ([]domain.Criterion, error) {
	prompt := fmt.Sprintf(criteriaPromptTemplate, rubricBullets(g.criteria), feedback)

	reply, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("criteria completion: %w", err)
	}

	generated := parseCriteriaReply(reply)
	if len(generated) == 0 {
		g.logger.Warn("criteria reply produced no usable entries")
		return nil, nil
	}

	added, err := g.criteria.Append(generated)
	if err != nil {
		return nil, fmt.Errorf("persist criteria: %w", err)
	}
	g.logger.Info("criteria generated", "generated", len(generated), "added", added)
	return generated, nil
}

// parseCriteriaReply recovers criterion objects from a reply that may be a
// clean array, a bare object, a comma run of objects missing its brackets,
// or JSON buried in prose.
func parseCriteriaReply(reply string) []domain.Criterion {
	s := scrubReply(reply)

	var criteria []domain.Criterion
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if json.Unmarshal([]byte(s), &criteria) == nil {
			return criteria
		}
		return nil
	}

	fixed := s
	if strings.HasPrefix(fixed, "{") && strings.HasSuffix(fixed, "}") {
		fixed = "[" + fixed + "]"
	} else if strings.Contains(fixed, "},") {
		if !strings.HasPrefix(fixed, "[") {
			fixed = "[" + fixed
		}
		if !strings.HasSuffix(fixed, "]") {
			fixed += "]"
		}
	}
	if json.Unmarshal([]byte(fixed), &criteria) == nil {
		return criteria
	}

	spans := criterionSpanExpr.FindAllString(s, -1)
	if len(spans) == 0 {
		return nil
	}
	if json.Unmarshal([]byte("["+strings.Join(spans, ",")+"]"), &criteria) == nil {
		return criteria
	}

	// Last resort: salvage whichever spans parse on their own.
	criteria = criteria[:0]
	for _, span := range spans {
		var c domain.Criterion
		if json.Unmarshal([]byte(span), &c) == nil && c.Criteria != "" {
			criteria = append(criteria, c)
		}
	}
	return criteria
}
