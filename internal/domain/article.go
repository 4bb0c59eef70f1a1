package domain

// Article is the core record flowing through the prospecting pipeline.
// Before identity assignment it is a stub scraped from a listing page
// (empty ArticleID); once promoted, the title, excerpt, url, and date are
// immutable while scoring and analysis fields are updated in place.
type Article struct {
	ArticleID     string    `json:"articleID,omitempty"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	URL           string    `json:"url"`
	Date          *string   `json:"date"`
	DateEstimated bool      `json:"date_estimated,omitempty"`
	Company       string    `json:"company,omitempty"`
	Location      string    `json:"location,omitempty"`
	Compatibility int       `json:"compatibility"`
	Analysis      *Analysis `json:"analysis,omitempty"`
	IndexPos      int       `json:"index_pos,omitempty"`
}

// Analysis is the deep per-article enrichment attached by the analyzer.
// It augments a record, never replaces it.
type Analysis struct {
	Compatibility         *int   `json:"analysis_compatibility,omitempty"`
	Explanation           string `json:"analysis_explanation,omitempty"`
	Company               string `json:"analysis_company,omitempty"`
	Location              string `json:"analysis_location,omitempty"`
	Contact               string `json:"analysis_contact,omitempty"`
	Summary               string `json:"analysis_summary,omitempty"`
	Date                  string `json:"analysis_date"`
	ID                    string `json:"analysis_id"`
	OriginalCompatibility int    `json:"original_compatibility"`
	Error                 string `json:"error,omitempty"`
}

// Criterion is one natural-language rule of the scoring rubric.
type Criterion struct {
	Criteria string `json:"criteria"`
}

// Counts summarizes the prospect collections for display.
type Counts struct {
	Prospects int
	Analyzed  int
	Kept      int
}
