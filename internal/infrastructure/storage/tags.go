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

// TagRepository persists tag assignments. Rows are never updated in place;
// re-analysis adds new rows.
type TagRepository struct {
	db *sql.DB
}

var _ ports.TagRepository = (*TagRepository)(nil)

// NewTagRepository wires a sql.DB implementation.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Insert stores one assignment. A missing catalog reference is stored as
// NULL while the denormalized name and category remain populated.
func (r *TagRepository) Insert(ctx context.Context, tag domain.ArticleTag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("article_tags").
		Columns("id", "article_id", "tag_id", "tag_name", "category",
			"confidence_score", "is_auto_generated", "assigned_by", "created_at").
		Values(tag.ID, tag.ArticleID, nullIfEmpty(tag.CatalogID), tag.Name,
			string(tag.Category), tag.ConfidenceScore, tag.AutoGenerated,
			tag.AssignedBy, tag.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build tag insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert article tag: %w", err)
	}

	return nil
}

// AssignmentsForArticles returns the assignment rows for the given articles.
// Callers chunk the id list; this method issues a single IN query.
func (r *TagRepository) AssignmentsForArticles(ctx context.Context, articleIDs []string) ([]domain.TagAssignment, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select("tag_name", "confidence_score").
		From("article_tags").
		Where(sq.Eq{"article_id": articleIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build assignment query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.TagAssignment
	for rows.Next() {
		var a domain.TagAssignment
		if err := rows.Scan(&a.Name, &a.Confidence); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return assignments, nil
}

// NamesForArticles maps each article id to its tag names. Search results are
// bounded by the request limit, so the id list stays small.
func (r *TagRepository) NamesForArticles(ctx context.Context, articleIDs []string) (map[string][]string, error) {
	if len(articleIDs) == 0 {
		return map[string][]string{}, nil
	}

	query, args, err := psql.Select("article_id", "tag_name").
		From("article_tags").
		Where(sq.Eq{"article_id": articleIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build name query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tag names: %w", err)
	}
	defer rows.Close()

	names := make(map[string][]string)
	for rows.Next() {
		var articleID, name string
		if err := rows.Scan(&articleID, &name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names[articleID] = append(names[articleID], name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return names, nil
}
