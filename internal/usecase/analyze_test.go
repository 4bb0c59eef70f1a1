package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadProspector/internal/domain"
)

type fakeContent struct {
	body     string
	lastURL  string
	lastHint string
}

func (f *fakeContent) Extract(_ context.Context, pageURL, titleHint string) string {
	f.lastURL = pageURL
	f.lastHint = titleHint
	return f.body
}

func sampleProspect() domain.Article {
	date := "2025-05-02"
	return domain.Article{
		ArticleID:     "8e2f1c3a-0000-5000-8000-000000000001",
		Title:         "Retailer plans 40 new locations",
		Excerpt:       "Expansion announced for the Southeast.",
		URL:           "https://chainstoreage.com/retailer-plans-40-new-locations",
		Date:          &date,
		Compatibility: 65,
	}
}

func TestAnalyzeMergesVerdict(t *testing.T) {
	t.Parallel()

	content := &fakeContent{body: "Full article body about the expansion."}
	completer := &fakeCompleter{replies: []string{`{
        "analysis_compatibility": 90,
        "analysis_explanation": "Strong match on new construction.",
        "analysis_company": "Retailer Inc",
        "analysis_location": "Atlanta, GA",
        "analysis_contact": "Jane Roe, VP Real Estate",
        "analysis_summary": "Forty new locations planned across the Southeast."
    }`}}
	a := NewAnalyzer(content, completer, &fakeCriteriaStore{}, testLogger())

	in := sampleProspect()
	out := a.Analyze(context.Background(), in)

	// Immutable fields survive.
	assert.Equal(t, in.ArticleID, out.ArticleID)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Excerpt, out.Excerpt)
	assert.Equal(t, in.URL, out.URL)
	assert.Equal(t, in.Date, out.Date)

	// Merged fields.
	assert.Equal(t, 90, out.Compatibility)
	assert.Equal(t, "Retailer Inc", out.Company)
	assert.Equal(t, "Atlanta, GA", out.Location)

	require.NotNil(t, out.Analysis)
	require.NotNil(t, out.Analysis.Compatibility)
	assert.Equal(t, 90, *out.Analysis.Compatibility)
	assert.Equal(t, 65, out.Analysis.OriginalCompatibility)
	assert.NotEmpty(t, out.Analysis.Date)
	assert.Len(t, out.Analysis.ID, 36)
	assert.Equal(t, "Jane Roe, VP Real Estate", out.Analysis.Contact)

	assert.Equal(t, in.URL, content.lastURL)
	assert.Equal(t, in.Title, content.lastHint)
}

func TestAnalyzeNumericStringScore(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{replies: []string{`{"analysis_compatibility": "72"}`}}
	a := NewAnalyzer(&fakeContent{body: "body"}, completer, &fakeCriteriaStore{}, testLogger())

	out := a.Analyze(context.Background(), sampleProspect())

	assert.Equal(t, 72, out.Compatibility)
}

func TestAnalyzeJunkScoreKeepsPrior(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{replies: []string{`{"analysis_compatibility": "very high", "analysis_company": ""}`}}
	a := NewAnalyzer(&fakeContent{body: "body"}, completer, &fakeCriteriaStore{}, testLogger())

	in := sampleProspect()
	in.Company = "Existing Co"
	out := a.Analyze(context.Background(), in)

	assert.Equal(t, 65, out.Compatibility, "prior score untouched by junk")
	assert.Equal(t, "Existing Co", out.Company, "empty company does not overwrite")
	require.NotNil(t, out.Analysis)
	assert.Nil(t, out.Analysis.Compatibility)
}

func TestAnalyzeUnparseableReply(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{replies: []string{"I cannot analyze this article."}}
	a := NewAnalyzer(&fakeContent{body: "body"}, completer, &fakeCriteriaStore{}, testLogger())

	in := sampleProspect()
	out := a.Analyze(context.Background(), in)

	assert.Equal(t, 65, out.Compatibility)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, "Invalid JSON format in LLM response", out.Analysis.Error)
	assert.NotEmpty(t, out.Analysis.Date)
	assert.Len(t, out.Analysis.ID, 36)
	assert.Equal(t, 65, out.Analysis.OriginalCompatibility)
}

func TestAnalyzeCompleterError(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{errs: []error{fmt.Errorf("model overloaded")}}
	a := NewAnalyzer(&fakeContent{body: "body"}, completer, &fakeCriteriaStore{}, testLogger())

	in := sampleProspect()
	out := a.Analyze(context.Background(), in)

	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, 65, out.Compatibility)
	require.NotNil(t, out.Analysis)
	assert.Contains(t, out.Analysis.Error, "model overloaded")
	assert.NotEmpty(t, out.Analysis.Date)
	assert.NotEmpty(t, out.Analysis.ID)
}

func TestAnalyzePromptCarriesContentAndRubric(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{replies: []string{`{}`}}
	criteria := &fakeCriteriaStore{criteria: []domain.Criterion{{Criteria: "Remodeling programs"}}}
	a := NewAnalyzer(&fakeContent{body: "Unique body text marker."}, completer, criteria, testLogger())

	a.Analyze(context.Background(), sampleProspect())

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "* Remodeling programs")
	assert.Contains(t, completer.prompts[0], "Unique body text marker.")
}

func TestAnalyzeAllOrder(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{replies: []string{
		`{"analysis_compatibility": 11}`,
		`{"analysis_compatibility": 22}`,
	}}
	a := NewAnalyzer(&fakeContent{body: "body"}, completer, &fakeCriteriaStore{}, testLogger())

	first := sampleProspect()
	second := sampleProspect()
	second.ArticleID = "other"

	out := a.AnalyzeAll(context.Background(), []domain.Article{first, second})

	require.Len(t, out, 2)
	assert.Equal(t, 11, out[0].Compatibility)
	assert.Equal(t, 22, out[1].Compatibility)
	assert.Equal(t, "other", out[1].ArticleID)
}
