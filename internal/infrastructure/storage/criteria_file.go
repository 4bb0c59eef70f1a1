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

// CriteriaFile persists the scoring rubric. A broken or absent rubric is
// never fatal: scoring proceeds with an empty criteria list.
type CriteriaFile struct {
	path   string
	logger *slog.Logger
}

var _ ports.CriteriaStore = (*CriteriaFile)(nil)

// NewCriteriaFile binds the store to its file path.
func NewCriteriaFile(path string, logger *slog.Logger) *CriteriaFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &CriteriaFile{path: path, logger: logger}
}

// Load reads the ordered rubric; any failure reads as an empty rubric.
func (f *CriteriaFile) Load() ([]domain.Criterion, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("criteria file unreadable, using empty rubric", "path", f.path, "error", err)
		}
		return []domain.Criterion{}, nil
	}

	if strings.TrimSpace(string(raw)) == "" {
		return []domain.Criterion{}, nil
	}

	var criteria []domain.Criterion
	if err := json.Unmarshal(raw, &criteria); err != nil {
		f.logger.Warn("criteria file undecodable, using empty rubric", "path", f.path, "error", err)
		return []domain.Criterion{}, nil
	}
	return criteria, nil
}

// Append adds criteria not already present by exact text and reports how
// many were new.
func (f *CriteriaFile) Append(items []domain.Criterion) (int, error) {
	existing, err := f.Load()
	if err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Criteria] = true
	}

	added := 0
	for _, item := range items {
		if item.Criteria == "" || known[item.Criteria] {
			continue
		}
		known[item.Criteria] = true
		existing = append(existing, item)
		added++
	}

	if added == 0 {
		return 0, nil
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create data dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(existing, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("marshal criteria: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", f.path, err)
	}
	return added, nil
}
