package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/ports"
)

// ArticleFile persists one article collection as a single JSON array on
// disk. All operations are whole-file load/save; there is no streaming and
// no locking, since each invocation is a single-actor batch job.
type ArticleFile struct {
	path   string
	logger *slog.Logger
}

var _ ports.ArticleStore = (*ArticleFile)(nil)

// NewArticleFile binds a store to its file path.
func NewArticleFile(path string, logger *slog.Logger) *ArticleFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleFile{path: path, logger: logger}
}

// Load reads the whole collection. A missing, empty, or undecodable file
// reads as an empty collection. Position markers are assigned on load.
func (f *ArticleFile) Load() ([]domain.Article, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Article{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	if strings.TrimSpace(string(raw)) == "" {
		return []domain.Article{}, nil
	}

	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		f.logger.Warn("article file undecodable, treating as empty", "path", f.path, "error", err)
		return []domain.Article{}, nil
	}

	for i := range articles {
		articles[i].IndexPos = i
	}
	return articles, nil
}

// Save writes the whole collection, creating parent directories as needed.
func (f *ArticleFile) Save(articles []domain.Article) error {
	if articles == nil {
		articles = []domain.Article{}
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(articles, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}

	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Upsert replaces the article matching by ID, or appends it.
func (f *ArticleFile) Upsert(article domain.Article) error {
	articles, err := f.Load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range articles {
		if articles[i].ArticleID == article.ArticleID {
			articles[i] = article
			replaced = true
			break
		}
	}
	if !replaced {
		articles = append(articles, article)
	}

	return f.Save(articles)
}

// Remove deletes the article with the given ID. The bool reports whether
// anything was removed.
func (f *ArticleFile) Remove(articleID string) (bool, error) {
	articles, err := f.Load()
	if err != nil {
		return false, err
	}

	kept := articles[:0]
	for _, a := range articles {
		if a.ArticleID != articleID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(articles) {
		return false, nil
	}

	if err := f.Save(kept); err != nil {
		return false, err
	}
	return true, nil
}
