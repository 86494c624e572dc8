package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsTagger/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Open connects to Postgres and verifies the connection. Store
// unreachability is the one failure this system does not mask.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL UNIQUE,
    source_name TEXT NOT NULL,
    category TEXT NOT NULL,
    language TEXT NOT NULL,
    importance_score NUMERIC(3,1) NOT NULL DEFAULT 5.0,
    ai_summary TEXT,
    published_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tag_catalog (
    id UUID PRIMARY KEY,
    tag_name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL,
    parent_group TEXT NOT NULL DEFAULT '',
    base_reliability NUMERIC(3,1) NOT NULL DEFAULT 5.0
);

CREATE TABLE IF NOT EXISTS article_tags (
    id UUID PRIMARY KEY,
    article_id UUID NOT NULL REFERENCES articles(id),
    tag_id UUID REFERENCES tag_catalog(id),
    tag_name TEXT NOT NULL,
    category TEXT NOT NULL,
    confidence_score NUMERIC(2,1) NOT NULL,
    is_auto_generated BOOLEAN NOT NULL DEFAULT FALSE,
    assigned_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_article_tags_article ON article_tags(article_id);
CREATE INDEX IF NOT EXISTS idx_article_tags_name ON article_tags(tag_name);
`

// EnsureSchema creates the tables when absent and seeds the predefined-tag
// catalog. Existing catalog rows are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	catalog := NewCatalogRepository(db)
	for _, tag := range domain.SeedCatalog() {
		if err := catalog.seed(ctx, tag); err != nil {
			return fmt.Errorf("seed catalog tag %s: %w", tag.Name, err)
		}
	}

	return nil
}
