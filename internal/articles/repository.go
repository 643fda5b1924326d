package articles

import (
	"context"

	"github.com/google/uuid"
)

// ArticleRepository abstracts storage operations for article entities.
type ArticleRepository interface {
	Create(ctx context.Context, record *Article) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context, opts ListOptions) ([]*Article, error)
	Update(ctx context.Context, record *Article) (*Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
