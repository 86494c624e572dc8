package usecase

import (
	"context"
	"log/slog"

	"NewsTagger/internal/batch"
	"NewsTagger/internal/domain"
	"NewsTagger/internal/infrastructure/feed"
	"NewsTagger/internal/ports"
)

// CollectorDeps wires the driven adapters into the collection use case.
type CollectorDeps struct {
	Fetcher        ports.FeedFetcher
	Articles       ports.ArticleRepository
	Sources        []domain.FeedSource
	Logger         *slog.Logger
	URLBatchSize   int
	MaxPerFeed     int
	SummaryMaxLen  int
	TargetLanguage string
}

// Collector fetches all registered feeds, normalizes their entries, and
// inserts only articles whose URL is not already stored.
type Collector struct {
	fetcher        ports.FeedFetcher
	articles       ports.ArticleRepository
	sources        []domain.FeedSource
	logger         *slog.Logger
	urlBatchSize   int
	maxPerFeed     int
	summaryMaxLen  int
	targetLanguage string
}

// NewCollector constructs the collection component.
func NewCollector(deps CollectorDeps) *Collector {
	if deps.URLBatchSize <= 0 {
		deps.URLBatchSize = batch.DefaultChunkSize
	}
	if deps.MaxPerFeed <= 0 {
		deps.MaxPerFeed = 10
	}
	if deps.SummaryMaxLen <= 0 {
		deps.SummaryMaxLen = 200
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Collector{
		fetcher:        deps.Fetcher,
		articles:       deps.Articles,
		sources:        deps.Sources,
		logger:         deps.Logger,
		urlBatchSize:   deps.URLBatchSize,
		maxPerFeed:     deps.MaxPerFeed,
		summaryMaxLen:  deps.SummaryMaxLen,
		targetLanguage: deps.TargetLanguage,
	}
}

// Collect runs one collection pass over every registered source. A failing
// source is logged and skipped; a failing insert increments Errors and the
// batch continues.
func (c *Collector) Collect(ctx context.Context) (domain.CollectionStats, error) {
	var stats domain.CollectionStats

	var candidates []domain.Article
	for _, source := range c.sources {
		items, err := c.fetcher.Fetch(ctx, source.URL)
		if err != nil {
			c.logger.Warn("feed fetch failed", "source", source.Name, "error", err)
			continue
		}

		if len(items) > c.maxPerFeed {
			items = items[:c.maxPerFeed]
		}

		for _, item := range items {
			article := c.normalize(item, source)
			if article.URL == "" {
				continue
			}
			candidates = append(candidates, article)
		}

		c.logger.Debug("source fetched", "source", source.Name, "items", len(items))
	}

	stats.TotalCollected = len(candidates)
	if len(candidates) == 0 {
		return stats, nil
	}

	urls := make([]string, 0, len(candidates))
	for _, article := range candidates {
		urls = append(urls, article.URL)
	}

	// The store rejects oversized IN lists, so membership is checked in
	// bounded chunks and unioned into one set.
	found, err := batch.InChunks(urls, c.urlBatchSize, func(chunk []string) ([]string, error) {
		return c.articles.ExistingURLs(ctx, chunk)
	})
	if err != nil {
		return stats, err
	}

	existing := make(map[string]bool, len(found))
	for _, url := range found {
		existing[url] = true
	}

	for _, article := range candidates {
		if existing[article.URL] {
			stats.Duplicates++
			continue
		}

		if err := c.articles.Insert(ctx, article); err != nil {
			c.logger.Warn("article insert failed", "url", article.URL, "error", err)
			stats.Errors++
			continue
		}

		existing[article.URL] = true
		stats.NewArticles++
	}

	c.logger.Info("collection finished",
		"collected", stats.TotalCollected,
		"new", stats.NewArticles,
		"duplicates", stats.Duplicates,
		"errors", stats.Errors)

	return stats, nil
}

func (c *Collector) normalize(item domain.FeedItem, source domain.FeedSource) domain.Article {
	title := feed.StripMarkup(item.Title)
	if title == "" {
		title = "No title"
	}

	cleaned := feed.StripMarkup(item.Summary)
	if cleaned == "" {
		cleaned = "No summary available"
	}
	summary := feed.TruncateSummary(cleaned, c.summaryMaxLen)

	return domain.Article{
		Title:           title,
		Summary:         summary,
		URL:             item.Link,
		SourceName:      source.Name,
		Category:        source.Category,
		Language:        source.Language,
		ImportanceScore: baselineImportance(title, cleaned, source, c.targetLanguage),
		PublishedAt:     item.PublishedAt,
	}
}
