package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"LeadProspector/internal/config"
	"LeadProspector/internal/domain"
	"LeadProspector/internal/infrastructure/content"
	"LeadProspector/internal/infrastructure/fetch"
	"LeadProspector/internal/infrastructure/llm"
	"LeadProspector/internal/infrastructure/parser"
	"LeadProspector/internal/infrastructure/scheduler"
	"LeadProspector/internal/infrastructure/storage"
	"LeadProspector/internal/logging"
	"LeadProspector/internal/usecase"
)

const stopTimeout = 5 * time.Second

// Application wires configuration to adapters and exposes the runnable
// operations.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds the full adapter graph: one HTTP fetcher shared by the listing
// walker and the content extractor, the completion client, and the JSON
// file stores.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := fetch.NewClient(nil)

	extractor := parser.NewExtractor(cfg.Site.BaseURL, cfg.Site.ListingURL, baseLogger.With("component", "parser"))
	walker := parser.NewWalker(fetcher, extractor, cfg.Prospecting.Delay(), baseLogger.With("component", "walker"))

	registry := content.NewRegistry()
	registry.Register(content.ChainStoreAge{})
	contentSource := content.NewExtractor(fetcher, registry, baseLogger.With("component", "content"))

	storageLogger := baseLogger.With("component", "storage")
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Listing:   walker,
		Content:   contentSource,
		Completer: llm.NewClient(cfg.LLM),
		Prospects: storage.NewArticleFile(cfg.Storage.ProspectsFile, storageLogger),
		Kept:      storage.NewArticleFile(cfg.Storage.KeptFile, storageLogger),
		Criteria:  storage.NewCriteriaFile(cfg.Storage.CriteriaFile, storageLogger),
		Logger:    baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}
}

// RunSurvey performs one crawl-and-review pass. The cutoff is the configured
// number of days behind the current time in the scheduler timezone.
func (a *Application) RunSurvey(ctx context.Context) error {
	now := time.Now().In(a.cfg.Scheduler.Location())
	cutoff := now.AddDate(0, 0, -a.cfg.Prospecting.CutoffWindowDays)

	saved, err := a.pipeline.Survey(ctx, a.cfg.Site.ListingURL, cutoff)
	if err != nil {
		return err
	}
	a.logger.Info("survey run finished", "saved", saved, "cutoff", cutoff.Format("2006-01-02"))
	return nil
}

// RunScheduled runs surveys on the configured cron expression until the
// context is canceled.
func (a *Application) RunScheduled(ctx context.Context) error {
	sched := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())

	err := sched.Start(ctx, func(time.Time) {
		if err := a.RunSurvey(ctx); err != nil {
			a.logger.Error("scheduled survey failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression, "timezone", a.cfg.Scheduler.Timezone)
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Analyze deep-analyzes a single prospect by id.
func (a *Application) Analyze(ctx context.Context, articleID string) (domain.Article, error) {
	return a.pipeline.Analyze(ctx, articleID)
}

// AnalyzeAll deep-analyzes every prospect.
func (a *Application) AnalyzeAll(ctx context.Context) error {
	n, err := a.pipeline.AnalyzeAll(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("analysis run finished", "analyzed", n)
	return nil
}

// Counts summarizes the prospect and kept collections.
func (a *Application) Counts() (domain.Counts, error) {
	return a.pipeline.Counts()
}

// ExportKept writes the kept collection as CSV.
func (a *Application) ExportKept(w io.Writer) error {
	articles, err := a.pipeline.KeptArticles()
	if err != nil {
		return fmt.Errorf("load kept: %w", err)
	}
	return storage.ExportCSV(articles, w)
}

// GenerateCriteria grows the scoring rubric from curator feedback.
func (a *Application) GenerateCriteria(ctx context.Context, feedback string) ([]domain.Criterion, error) {
	return a.pipeline.GenerateCriteria(ctx, feedback)
}
