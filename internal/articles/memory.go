package articles

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryArticleRepository is an in-memory implementation for scaffolding and tests.
type MemoryArticleRepository struct {
	mu        sync.RWMutex
	articles  map[uuid.UUID]*Article
	slugIndex map[string]uuid.UUID
}

// NewMemoryArticleRepository creates an empty in-memory article repository.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{
		articles:  make(map[uuid.UUID]*Article),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied article.
func (m *MemoryArticleRepository) Create(_ context.Context, record *Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneArticle(record)
	m.articles[copied.ID] = copied
	m.slugIndex[strings.ToLower(copied.Slug)] = copied.ID
	return cloneArticle(copied), nil
}

// GetByID retrieves an article by identifier.
func (m *MemoryArticleRepository) GetByID(_ context.Context, id uuid.UUID) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.articles[id]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: id.String()}
	}
	return cloneArticle(rec), nil
}

// GetBySlug retrieves an article by slug, returning NotFoundError when absent.
func (m *MemoryArticleRepository) GetBySlug(_ context.Context, slug string) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[strings.ToLower(slug)]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: slug}
	}
	return cloneArticle(m.articles[id]), nil
}

// List returns articles matching the supplied options, newest first.
func (m *MemoryArticleRepository) List(_ context.Context, opts ListOptions) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Article, 0, len(m.articles))
	for _, rec := range m.articles {
		if !opts.matches(rec) {
			continue
		}
		out = append(out, cloneArticle(rec))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Slug < out[j].Slug
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return paginate(out, opts.Limit, opts.Offset), nil
}

// Update replaces the stored article.
func (m *MemoryArticleRepository) Update(_ context.Context, record *Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.articles[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: record.ID.String()}
	}
	if !strings.EqualFold(existing.Slug, record.Slug) {
		delete(m.slugIndex, strings.ToLower(existing.Slug))
	}

	copied := cloneArticle(record)
	m.articles[copied.ID] = copied
	m.slugIndex[strings.ToLower(copied.Slug)] = copied.ID
	return cloneArticle(copied), nil
}

// Delete removes the article permanently.
func (m *MemoryArticleRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.articles[id]
	if !ok {
		return &NotFoundError{Resource: "article", Key: id.String()}
	}
	delete(m.slugIndex, strings.ToLower(rec.Slug))
	delete(m.articles, id)
	return nil
}

func paginate(records []*Article, limit, offset int) []*Article {
	if offset > 0 {
		if offset >= len(records) {
			return []*Article{}
		}
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func cloneArticle(src *Article) *Article {
	if src == nil {
		return nil
	}

	copied := *src
	if len(src.Tags) > 0 {
		copied.Tags = append([]string(nil), src.Tags...)
	}
	if src.Metadata != nil {
		copied.Metadata = make(map[string]any, len(src.Metadata))
		for key, value := range src.Metadata {
			copied.Metadata[key] = value
		}
	}
	return &copied
}
