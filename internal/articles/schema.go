package articles

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the articles table and its supporting indexes when they
// do not exist yet. Hosts embedding the module against a managed database can
// skip this and run their own migrations instead.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*Article)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("articles: create table: %w", err)
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_slug_unique ON articles(slug)",
		"CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)",
		"CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at)",
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("articles: create index: %w", err)
		}
	}
	return nil
}
