package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

// CatalogRepository reads the predefined-tag catalog. The catalog is static
// reference data; only the seeding helper writes to it.
type CatalogRepository struct {
	db *sql.DB
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository wires a sql.DB implementation.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListAll returns every catalog tag, most reliable first.
func (r *CatalogRepository) ListAll(ctx context.Context) ([]domain.CatalogTag, error) {
	query, args, err := psql.Select("id", "tag_name", "category", "parent_group", "base_reliability").
		From("tag_catalog").
		OrderBy("base_reliability DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var tags []domain.CatalogTag
	for rows.Next() {
		var (
			tag      domain.CatalogTag
			category string
		)
		if err := rows.Scan(&tag.ID, &tag.Name, &category, &tag.ParentGroup, &tag.BaseReliability); err != nil {
			return nil, fmt.Errorf("scan catalog tag: %w", err)
		}
		tag.Category = domain.NormalizeTagCategory(category)
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return tags, nil
}

// FindByName resolves a catalog entry by exact name; nil when absent.
func (r *CatalogRepository) FindByName(ctx context.Context, name string) (*domain.CatalogTag, error) {
	query, args, err := psql.Select("id", "tag_name", "category", "parent_group", "base_reliability").
		From("tag_catalog").
		Where(sq.Eq{"tag_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog lookup: %w", err)
	}

	var (
		tag      domain.CatalogTag
		category string
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&tag.ID, &tag.Name, &category, &tag.ParentGroup, &tag.BaseReliability)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup catalog tag: %w", err)
	}

	tag.Category = domain.NormalizeTagCategory(category)
	return &tag, nil
}

func (r *CatalogRepository) seed(ctx context.Context, tag domain.CatalogTag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}

	query, args, err := psql.Insert("tag_catalog").
		Columns("id", "tag_name", "category", "parent_group", "base_reliability").
		Values(tag.ID, tag.Name, string(tag.Category), tag.ParentGroup, tag.BaseReliability).
		Suffix("ON CONFLICT (tag_name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build catalog seed: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	return nil
}
