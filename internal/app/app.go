package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"NewsTagger/internal/config"
	"NewsTagger/internal/domain"
	"NewsTagger/internal/infrastructure/feed"
	"NewsTagger/internal/infrastructure/llm"
	"NewsTagger/internal/infrastructure/scheduler"
	"NewsTagger/internal/infrastructure/storage"
	"NewsTagger/internal/logging"
	"NewsTagger/internal/usecase"
)

// ErrCollectionRunning is returned when a collection run is requested while
// another one is still in flight.
var ErrCollectionRunning = errors.New("collection already running")

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB

	collector  *usecase.Collector
	analyzer   *usecase.Analyzer
	vocabulary *usecase.VocabularyManager
	intents    *usecase.IntentResolver
	search     *usecase.SearchExecutor
	articles   *storage.ArticleRepository
	schedule   *usecase.Scheduler

	collecting atomic.Bool
}

// New opens storage, ensures the schema, and assembles every use case.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	db, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := storage.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	articles := storage.NewArticleRepository(db)
	tags := storage.NewTagRepository(db)
	catalog := storage.NewCatalogRepository(db)

	generator := llm.NewGeminiClient(cfg.Gemini)
	fetcher := feed.NewFetcher(nil)

	collector := usecase.NewCollector(usecase.CollectorDeps{
		Fetcher:        fetcher,
		Articles:       articles,
		Sources:        cfg.FeedSources(),
		Logger:         baseLogger.With("component", "collector"),
		URLBatchSize:   cfg.Collector.URLBatchSize,
		MaxPerFeed:     cfg.Collector.MaxItemsPerFeed,
		SummaryMaxLen:  cfg.Collector.SummaryMaxLen,
		TargetLanguage: cfg.Analysis.TargetLanguage,
	})

	analyzer := usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Catalog:        catalog,
		Articles:       articles,
		Tags:           tags,
		Generator:      generator,
		Logger:         baseLogger.With("component", "analyzer"),
		TargetLanguage: cfg.Analysis.TargetLanguage,
		AssignedBy:     cfg.Analysis.AssignedBy,
	})

	vocabulary := usecase.NewVocabularyManager(usecase.VocabularyManagerDeps{
		Articles:  articles,
		Tags:      tags,
		BatchSize: cfg.Collector.URLBatchSize,
	})

	intents := usecase.NewIntentResolver(usecase.IntentResolverDeps{
		Generator: generator,
		Logger:    baseLogger.With("component", "intent"),
	})

	search := usecase.NewSearchExecutor(usecase.SearchExecutorDeps{
		Articles: articles,
		Tags:     tags,
		Logger:   baseLogger.With("component", "search"),
	})

	app := &Application{
		cfg:        cfg,
		logger:     baseLogger,
		db:         db,
		collector:  collector,
		analyzer:   analyzer,
		vocabulary: vocabulary,
		intents:    intents,
		search:     search,
		articles:   articles,
	}

	if cfg.Scheduler.Enabled {
		driver := scheduler.NewIntervalDriver(cfg.Scheduler.Interval.Std())
		app.schedule = usecase.NewScheduler(driver, app, baseLogger.With("component", "scheduler"))
	}

	return app, nil
}

// Collect runs one guarded collection pass. Only one run may be in flight at
// a time.
func (a *Application) Collect(ctx context.Context) (domain.CollectionStats, error) {
	if !a.collecting.CompareAndSwap(false, true) {
		return domain.CollectionStats{}, ErrCollectionRunning
	}
	defer a.collecting.Store(false)

	return a.collector.Collect(ctx)
}

// IsCollecting reports whether a collection run is currently in flight.
func (a *Application) IsCollecting() bool {
	return a.collecting.Load()
}

// AnalyzeAndTag analyzes a single stored article.
func (a *Application) AnalyzeAndTag(ctx context.Context, article domain.Article) (domain.AnalysisResult, error) {
	return a.analyzer.AnalyzeAndTag(ctx, article)
}

// Search resolves a free-text query against the current vocabulary and runs
// the staged search. A positive limit overrides the resolved intent's limit.
func (a *Application) Search(ctx context.Context, query string, limit int) (domain.SearchResult, error) {
	vocab, err := a.vocabulary.Build(ctx)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("build vocabulary: %w", err)
	}

	intent := a.intents.Resolve(ctx, query, vocab)
	if limit > 0 {
		intent.Limit = limit
	}

	return a.search.Execute(ctx, intent)
}

// CompleteCoverage runs the tagging completion loop. Zero-valued arguments
// fall back to the configured defaults.
func (a *Application) CompleteCoverage(ctx context.Context, maxRetries int, retryDelay time.Duration, targetCoverage int) (domain.CoverageReport, error) {
	if maxRetries <= 0 {
		maxRetries = a.cfg.Coverage.MaxRetries
	}
	if retryDelay <= 0 {
		retryDelay = a.cfg.Coverage.RetryDelay.Std()
	}
	if targetCoverage <= 0 {
		targetCoverage = a.cfg.Coverage.TargetCoverage
	}

	runner := usecase.NewCoverageRunner(usecase.CoverageRunnerDeps{
		Articles:       a.articles,
		Analyzer:       a.analyzer,
		Logger:         a.logger.With("component", "coverage"),
		MaxRetries:     maxRetries,
		RequestDelay:   a.cfg.Analysis.RequestDelay.Std(),
		RetryDelay:     retryDelay,
		TargetCoverage: targetCoverage,
	})

	return runner.Run(ctx)
}

// Run performs a single collection pass, or starts the periodic driver and
// blocks until the context is cancelled when scheduling is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.schedule == nil {
		stats, err := a.Collect(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("collection finished",
			"total", stats.TotalCollected,
			"new_articles", stats.NewArticles,
			"duplicates", stats.Duplicates,
			"errors", stats.Errors)
		return nil
	}

	if err := a.schedule.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return a.schedule.Stop(context.Background())
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
