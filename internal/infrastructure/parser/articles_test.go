package parser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingFixture = `
<html><body>
<div class="card">
  <h2 class="card__heading"><a href="/2025-04/retailer-expands-fleet">Retailer expands fleet</a></h2>
  <div class="card__body">The retailer will open 40 stores this year.</div>
</div>
<div class="card">
  <h3 class="card__heading"><a href="/news/grocer-remodel">Grocer plans remodel</a></h3>
  <div class="card__body">A chainwide remodel program.</div>
</div>
<div class="card">
  <h2 class="card__heading"><span>no link here</span></h2>
</div>
<div class="teaser-card">
  <a href="/news/teaser-item"><h3 class="teaser-card__heading">Teaser item</h3></a>
  <div class="teaser-card__body">Teaser excerpt.</div>
</div>
<div class="teaser-card">
  <a href="/news/duplicate"><h3 class="teaser-card__heading">Retailer expands fleet</h3></a>
  <div class="teaser-card__body">Duplicate of the first card.</div>
</div>
<script>var detail = {"id":"grocer-remodel","date":"2025-04-24T00:00:00"};</script>
<script>window.__listing__ = {"page": {"content": {"items": [{"title": "Embedded story", "summary": "Found in a script block.", "url": "/news/embedded-story", "date": "2025-04-20T00:00:00",}]}, "children": []}};</script>
</body></html>`

func fixtureDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractMergesStrategies(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("https://chainstoreage.com", "https://chainstoreage.com/news", nil)
	stubs := extractor.Extract(fixtureDoc(t, listingFixture))

	require.Len(t, stubs, 4)

	titles := make([]string, 0, len(stubs))
	for _, s := range stubs {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Retailer expands fleet",
		"Grocer plans remodel",
		"Teaser item",
		"Embedded story",
	}, titles)
}

func TestExtractCardWithEstimatedDate(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("https://chainstoreage.com", "https://chainstoreage.com/news", nil)
	stubs := extractor.Extract(fixtureDoc(t, listingFixture))
	require.NotEmpty(t, stubs)

	card := stubs[0]
	assert.Equal(t, "https://chainstoreage.com/2025-04/retailer-expands-fleet", card.URL)
	assert.Equal(t, "The retailer will open 40 stores this year.", card.Excerpt)
	require.NotNil(t, card.Date)
	assert.Equal(t, "2025-04-01", *card.Date)
	assert.True(t, card.DateEstimated)
}

func TestExtractCardWithScriptDate(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("https://chainstoreage.com", "https://chainstoreage.com/news", nil)
	stubs := extractor.Extract(fixtureDoc(t, listingFixture))
	require.Len(t, stubs, 4)

	remodel := stubs[1]
	assert.Equal(t, "https://chainstoreage.com/news/grocer-remodel", remodel.URL)
	require.NotNil(t, remodel.Date)
	assert.Equal(t, "2025-04-24T00:00:00", *remodel.Date)
	assert.False(t, remodel.DateEstimated)
}

func TestExtractTeaserWithoutDate(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("https://chainstoreage.com", "https://chainstoreage.com/news", nil)
	stubs := extractor.Extract(fixtureDoc(t, listingFixture))
	require.Len(t, stubs, 4)

	teaser := stubs[2]
	assert.Equal(t, "https://chainstoreage.com/news/teaser-item", teaser.URL)
	assert.Equal(t, "Teaser excerpt.", teaser.Excerpt)
	assert.Nil(t, teaser.Date)
}

func TestExtractEmbeddedJSONRepairsTrailingComma(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("https://chainstoreage.com", "https://chainstoreage.com/news", nil)
	stubs := extractor.Extract(fixtureDoc(t, listingFixture))
	require.Len(t, stubs, 4)

	embedded := stubs[3]
	assert.Equal(t, "https://chainstoreage.com/news/embedded-story", embedded.URL)
	assert.Equal(t, "Found in a script block.", embedded.Excerpt)
	require.NotNil(t, embedded.Date)
	assert.Equal(t, "2025-04-20T00:00:00", *embedded.Date)
}

func TestExtractEmptyPage(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("https://chainstoreage.com", "https://chainstoreage.com/news", nil)
	stubs := extractor.Extract(fixtureDoc(t, `<html><body><p>nothing</p></body></html>`))
	assert.Empty(t, stubs)
}
