package domain

import "time"

// Article is a core entity describing a collected news item. Created by the
// collector with a heuristic importance score; the analyzer later refines the
// score, fills AISummary, and may overwrite Title with a translation.
type Article struct {
	ID              string
	Title           string
	Summary         string
	URL             string
	SourceName      string
	Category        string
	Language        string
	ImportanceScore float64
	AISummary       string
	PublishedAt     time.Time
	CreatedAt       time.Time

	// Tags carries denormalized tag names when the article was loaded by a
	// search query; empty otherwise.
	Tags []string
}

// FeedSource describes a single registry entry from config.
type FeedSource struct {
	Name        string
	URL         string
	Category    string
	Language    string
	Reliability int
}

// FeedItem is one normalized entry pulled from an RSS or Atom feed.
type FeedItem struct {
	Title       string
	Link        string
	Summary     string
	PublishedAt time.Time
}

// CollectionStats reports the outcome of one collection run.
type CollectionStats struct {
	TotalCollected int
	NewArticles    int
	Duplicates     int
	Errors         int
}

// CatalogTag is a predefined tag with stable identity. Static reference data.
type CatalogTag struct {
	ID              string
	Name            string
	Category        TagCategory
	ParentGroup     string
	BaseReliability float64
}

// ArticleTag is one tag assignment. Rows are insert-only: re-analysis adds
// new rows rather than mutating existing ones.
type ArticleTag struct {
	ID              string
	ArticleID       string
	CatalogID       string
	Name            string
	Category        TagCategory
	ConfidenceScore float64
	AutoGenerated   bool
	AssignedBy      string
	CreatedAt       time.Time
}

// TagAssignment is the projection of an article_tags row the vocabulary
// manager aggregates over.
type TagAssignment struct {
	Name       string
	Confidence float64
}

// AnalyzedTag is a single tag proposed by the analysis service.
type AnalyzedTag struct {
	Name          string
	Confidence    float64
	Category      TagCategory
	AutoGenerated bool
}

// AnalysisResult is the outcome of analyzing one article. Fallback marks the
// deterministic path taken when the service response was unusable.
type AnalysisResult struct {
	TranslatedTitle string
	Summary         string
	Tags            []AnalyzedTag
	ImportanceScore float64
	Sentiment       string
	KeyPoints       []string
	Fallback        bool
}

// SearchIntent is a validated, transient search specification.
type SearchIntent struct {
	RequiredTags        []string
	PreferredTags       []string
	ExcludedTags        []string
	ImportanceThreshold float64
	Limit               int
	From                *time.Time
	To                  *time.Time
}

// SearchFilter narrows store-side search queries.
type SearchFilter struct {
	MinImportance float64
	From          *time.Time
	To            *time.Time
	Limit         int
}

// SearchStage labels which tier of the search waterfall produced results.
type SearchStage string

const (
	StageRequired   SearchStage = "required-tag match"
	StagePreferred  SearchStage = "preferred-tag match"
	StageImportance SearchStage = "importance-based"
)

// SearchResult bundles the articles, the intent that produced them, and
// per-article relevance scores.
type SearchResult struct {
	Articles      []Article
	Intent        SearchIntent
	Stage         SearchStage
	RequiredUsed  int
	PreferredUsed int
	Relevance     map[string]float64
	TotalCount    int
	Elapsed       time.Duration
}

// CoverageReport summarizes a coverage-completion run. Untagged lists the
// articles that still need manual follow-up.
type CoverageReport struct {
	Coverage       int
	TotalArticles  int
	TaggedArticles int
	Untagged       []Article
	Attempts       int
	Success        bool
}
