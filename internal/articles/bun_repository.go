package articles

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/lukaszreszke93/posts/article"
	"github.com/lukaszreszke93/posts/domain"
)

// BunArticleRepository persists articles through the generic bun repository.
type BunArticleRepository struct {
	repo repository.Repository[*Article]
}

// NewBunArticleRepository constructs a repository without caching.
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache constructs a repository with optional caching.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunArticleRepository {
	base := article.NewArticleRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunArticleRepository{repo: wrapped}
}

func (r *BunArticleRepository) Create(ctx context.Context, record *Article) (*Article, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunArticleRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return result, nil
}

// List pushes status, author, and visibility filters into SQL. Tag matching
// happens after the scan: tags live in a jsonb column and a portable
// containment predicate across sqlite and postgres is not worth the dialect
// branching for corpus-sized tables.
func (r *BunArticleRepository) List(ctx context.Context, opts ListOptions) ([]*Article, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.deleted_at IS NULL")
			if opts.Status != "" {
				q = q.Where("?TableAlias.status = ?", string(opts.Status))
			}
			if opts.Author != "" {
				q = q.Where("lower(?TableAlias.author) = lower(?)", opts.Author)
			}
			if opts.PublishedOnly {
				q = q.Where("(?TableAlias.status = ? OR (?TableAlias.status = ? AND ?TableAlias.publish_at <= ?))",
					string(domain.StatusPublished), string(domain.StatusScheduled), opts.Now)
			}
			return q.OrderExpr("?TableAlias.created_at DESC, ?TableAlias.slug ASC")
		}),
	}
	if opts.Tag == "" && (opts.Limit > 0 || opts.Offset > 0) {
		criteria = append(criteria, repository.SelectPaginate(opts.Limit, opts.Offset))
	}

	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	if opts.Tag == "" {
		return records, nil
	}

	filtered := make([]*Article, 0, len(records))
	for _, record := range records {
		if hasTag(record.Tags, opts.Tag) {
			filtered = append(filtered, record)
		}
	}
	return paginate(filtered, opts.Limit, opts.Offset), nil
}

func (r *BunArticleRepository) Update(ctx context.Context, record *Article) (*Article, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

func (r *BunArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Article{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: "article",
			Key:      key,
		}
	}
	return fmt.Errorf("article repository error: %w", err)
}

func wrapWithCache(base repository.Repository[*Article], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[*Article] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
