package ports

import (
	"context"
	"time"

	"NewsTagger/internal/domain"
)

// FeedFetcher pulls raw entries from one feed URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.FeedItem, error)
}

// ArticleRepository persists articles and serves the corpus queries the
// pipeline needs. Callers are responsible for keeping IN-list arguments
// below the store's practical size ceiling.
type ArticleRepository interface {
	ExistingURLs(ctx context.Context, urls []string) ([]string, error)
	Insert(ctx context.Context, article domain.Article) error
	ApplyAnalysis(ctx context.Context, articleID string, importance float64, aiSummary string) error
	UpdateTitle(ctx context.Context, articleID, title string) error
	CountAll(ctx context.Context) (int, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListUntagged(ctx context.Context) ([]domain.Article, error)
	SearchByTags(ctx context.Context, tags []string, partial bool, filter domain.SearchFilter) ([]domain.Article, error)
	SearchByImportance(ctx context.Context, filter domain.SearchFilter) ([]domain.Article, error)
}

// TagRepository persists tag assignments. Rows are insert-only.
type TagRepository interface {
	Insert(ctx context.Context, tag domain.ArticleTag) error
	AssignmentsForArticles(ctx context.Context, articleIDs []string) ([]domain.TagAssignment, error)
	NamesForArticles(ctx context.Context, articleIDs []string) (map[string][]string, error)
}

// CatalogRepository reads the predefined-tag catalog.
type CatalogRepository interface {
	ListAll(ctx context.Context) ([]domain.CatalogTag, error)
	FindByName(ctx context.Context, name string) (*domain.CatalogTag, error)
}

// Generator is the external analysis service: one prompt in, free text out.
// No JSON-validity guarantee on the output.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CollectionDriver controls when collection runs execute.
type CollectionDriver interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
