package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

// articleAnalyzer is the slice of Analyzer the coverage loop needs.
type articleAnalyzer interface {
	AnalyzeAndTag(ctx context.Context, article domain.Article) (domain.AnalysisResult, error)
}

// CoverageRunnerDeps wires the completion loop.
type CoverageRunnerDeps struct {
	Articles ports.ArticleRepository
	Analyzer articleAnalyzer
	Logger   *slog.Logger

	MaxRetries     int
	RequestDelay   time.Duration
	RetryDelay     time.Duration
	TargetCoverage int

	// Sleep is replaceable for tests; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// CoverageRunner re-analyzes untagged articles in passes until every article
// carries at least one tag or the retry budget runs out.
type CoverageRunner struct {
	articles ports.ArticleRepository
	analyzer articleAnalyzer
	logger   *slog.Logger

	maxRetries   int
	requestDelay time.Duration
	retryDelay   time.Duration
	target       int
	sleep        func(time.Duration)
}

// NewCoverageRunner constructs the runner with sane defaults for unset knobs.
func NewCoverageRunner(deps CoverageRunnerDeps) *CoverageRunner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.MaxRetries <= 0 {
		deps.MaxRetries = 5
	}
	if deps.RequestDelay <= 0 {
		deps.RequestDelay = 1500 * time.Millisecond
	}
	if deps.RetryDelay <= 0 {
		deps.RetryDelay = 2 * time.Second
	}
	if deps.TargetCoverage <= 0 || deps.TargetCoverage > 100 {
		deps.TargetCoverage = 100
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	return &CoverageRunner{
		articles:     deps.Articles,
		analyzer:     deps.Analyzer,
		logger:       deps.Logger,
		maxRetries:   deps.MaxRetries,
		requestDelay: deps.RequestDelay,
		retryDelay:   deps.RetryDelay,
		target:       deps.TargetCoverage,
		sleep:        deps.Sleep,
	}
}

// Run executes completion passes until coverage reaches the target or the
// attempt budget is spent. Store errors abort the run; per-article analysis
// failures are counted and retried on the next pass.
func (r *CoverageRunner) Run(ctx context.Context) (domain.CoverageReport, error) {
	report := domain.CoverageReport{}

	for report.Attempts < r.maxRetries {
		untagged, err := r.measure(ctx, &report)
		if err != nil {
			return report, err
		}

		if report.Coverage >= r.target {
			report.Success = true
			return report, nil
		}

		report.Attempts++
		r.logger.Info("coverage pass",
			"attempt", report.Attempts,
			"coverage", report.Coverage,
			"untagged", len(untagged))

		failed := 0
		for _, article := range untagged {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if _, err := r.analyzer.AnalyzeAndTag(ctx, article); err != nil {
				failed++
				r.logger.Warn("coverage analysis failed",
					"article_id", article.ID,
					"error", err)
			}
			// Rate-limit spacing toward the analysis service.
			r.sleep(r.requestDelay)
		}

		if failed > 0 {
			r.sleep(r.retryDelay)
		}
	}

	if _, err := r.measure(ctx, &report); err != nil {
		return report, err
	}
	report.Success = report.Coverage >= r.target
	return report, nil
}

// measure refreshes the report's counts and returns the untagged set.
func (r *CoverageRunner) measure(ctx context.Context, report *domain.CoverageReport) ([]domain.Article, error) {
	total, err := r.articles.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	untagged, err := r.articles.ListUntagged(ctx)
	if err != nil {
		return nil, fmt.Errorf("list untagged articles: %w", err)
	}

	report.TotalArticles = total
	report.TaggedArticles = total - len(untagged)
	report.Untagged = untagged
	if total == 0 {
		report.Coverage = 100
	} else {
		report.Coverage = int(math.Round(float64(report.TaggedArticles) / float64(total) * 100))
	}
	return untagged, nil
}
