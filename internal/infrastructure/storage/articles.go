package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

var articleColumns = []string{
	"a.id", "a.title", "a.summary", "a.url", "a.source_name", "a.category",
	"a.language", "a.importance_score", "a.ai_summary", "a.published_at", "a.created_at",
}

// ArticleRepository persists and queries articles in Postgres.
type ArticleRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository wires a sql.DB implementation.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ExistingURLs returns the subset of urls already stored. Callers chunk the
// input; this method issues a single IN query.
func (r *ArticleRepository) ExistingURLs(ctx context.Context, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select("url").From("articles").Where(sq.Eq{"url": urls}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build url query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing urls: %w", err)
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		found = append(found, url)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return found, nil
}

// Insert stores a freshly collected article. Missing IDs and timestamps get
// generated here so callers stay free of persistence details.
func (r *ArticleRepository) Insert(ctx context.Context, article domain.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = article.CreatedAt
	}

	query, args, err := psql.Insert("articles").
		Columns("id", "title", "summary", "url", "source_name", "category",
			"language", "importance_score", "ai_summary", "published_at", "created_at").
		Values(article.ID, article.Title, article.Summary, article.URL, article.SourceName,
			article.Category, article.Language, article.ImportanceScore,
			nullIfEmpty(article.AISummary), article.PublishedAt, article.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	return nil
}

// ApplyAnalysis records the analyzer's refined importance and AI summary.
func (r *ArticleRepository) ApplyAnalysis(ctx context.Context, articleID string, importance float64, aiSummary string) error {
	query, args, err := psql.Update("articles").
		Set("importance_score", importance).
		Set("ai_summary", aiSummary).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("apply analysis: %w", err)
	}

	return nil
}

// UpdateTitle overwrites the stored title, used for translated titles.
func (r *ArticleRepository) UpdateTitle(ctx context.Context, articleID, title string) error {
	query, args, err := psql.Update("articles").
		Set("title", title).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build title update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update title: %w", err)
	}

	return nil
}

// CountAll returns the total article count.
func (r *ArticleRepository) CountAll(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("articles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}

	return count, nil
}

// ListIDs returns every article id; the vocabulary scan chunks over these.
func (r *ArticleRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("id").From("articles").OrderBy("created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build id query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query article ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return ids, nil
}

// ListUntagged returns articles with zero tag rows, newest first. Articles
// analyzed but left untagged by a crash are included, which is what lets the
// coverage loop re-target them.
func (r *ArticleRepository) ListUntagged(ctx context.Context) ([]domain.Article, error) {
	builder := psql.Select(articleColumns...).
		From("articles a").
		LeftJoin("article_tags t ON t.article_id = a.id").
		Where("t.id IS NULL").
		OrderBy("a.created_at DESC")

	return r.queryArticles(ctx, builder)
}

// SearchByTags selects articles carrying any of the given tags. Exact mode
// matches names verbatim; partial mode uses case-insensitive substrings.
func (r *ArticleRepository) SearchByTags(ctx context.Context, tags []string, partial bool, filter domain.SearchFilter) ([]domain.Article, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	return r.queryArticles(ctx, buildSearchByTags(tags, partial, filter))
}

// SearchByImportance selects analyzed articles above the importance floor.
func (r *ArticleRepository) SearchByImportance(ctx context.Context, filter domain.SearchFilter) ([]domain.Article, error) {
	return r.queryArticles(ctx, buildSearchByImportance(filter))
}

func buildSearchByTags(tags []string, partial bool, filter domain.SearchFilter) sq.SelectBuilder {
	builder := psql.Select(articleColumns...).
		Options("DISTINCT").
		From("articles a").
		Join("article_tags t ON t.article_id = a.id")

	if partial {
		or := make(sq.Or, 0, len(tags))
		for _, tag := range tags {
			or = append(or, sq.ILike{"t.tag_name": "%" + tag + "%"})
		}
		builder = builder.Where(or)
	} else {
		builder = builder.Where(sq.Eq{"t.tag_name": tags})
	}

	return applyFilter(builder, filter)
}

func buildSearchByImportance(filter domain.SearchFilter) sq.SelectBuilder {
	builder := psql.Select(articleColumns...).
		From("articles a").
		Where(sq.NotEq{"a.ai_summary": nil})

	return applyFilter(builder, filter)
}

func applyFilter(builder sq.SelectBuilder, filter domain.SearchFilter) sq.SelectBuilder {
	if filter.MinImportance > 0 {
		builder = builder.Where(sq.GtOrEq{"a.importance_score": filter.MinImportance})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"a.published_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"a.published_at": *filter.To})
	}

	builder = builder.OrderBy("a.importance_score DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	return builder
}

func (r *ArticleRepository) queryArticles(ctx context.Context, builder sq.SelectBuilder) ([]domain.Article, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var (
		article   domain.Article
		aiSummary sql.NullString
	)

	err := rows.Scan(&article.ID, &article.Title, &article.Summary, &article.URL,
		&article.SourceName, &article.Category, &article.Language,
		&article.ImportanceScore, &aiSummary, &article.PublishedAt, &article.CreatedAt)
	if err != nil {
		return domain.Article{}, fmt.Errorf("scan article: %w", err)
	}

	article.AISummary = aiSummary.String
	return article, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
