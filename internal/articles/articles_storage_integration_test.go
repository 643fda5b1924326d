package articles_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/lukaszreszke93/posts/article"
	"github.com/lukaszreszke93/posts/domain"
	"github.com/lukaszreszke93/posts/internal/articles"
	"github.com/lukaszreszke93/posts/pkg/testsupport"
)

func TestArticleService_WithBunStorageAndCache(t *testing.T) {
	ctx := context.Background()

	bunDB := newArticleDB(t, "articles_cache_test")

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := articles.NewBunArticleRepositoryWithCache(bunDB, cacheService, keySerializer)
	svc := articles.NewService(repo)

	created, err := svc.Create(ctx, articles.CreateArticleRequest{
		Title:  "Vanilla Rails is plenty",
		Author: "Jorge Manrubia",
		Body:   "A long argument for boring architectures.",
		Tags:   []string{"rails", "design"},
		Status: domain.StatusPublished,
		Metadata: map[string]any{
			"title":   "Vanilla Rails is plenty",
			"publish": true,
		},
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if created.Slug != "vanilla-rails-is-plenty" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}

	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("cached get: %v", err)
	}

	bySlug, err := svc.GetBySlug(ctx, "vanilla-rails-is-plenty")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("slug lookup returned %s, want %s", bySlug.ID, created.ID)
	}
}

func TestBunArticleRepository_ListFilters(t *testing.T) {
	ctx := context.Background()

	bunDB := newArticleDB(t, "articles_list_test")

	repo := articles.NewBunArticleRepository(bunDB)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	svc := articles.NewService(repo, articles.WithClock(func() time.Time { return now }))

	seed := []articles.CreateArticleRequest{
		{
			Title:  "Published essay",
			Author: "dhh",
			Body:   "Live body.",
			Tags:   []string{"writing"},
			Status: domain.StatusPublished,
		},
		{
			Title: "Rough draft",
			Body:  "Not ready.",
		},
		{
			Title:     "Queued for next week",
			Body:      "Future body.",
			Status:    domain.StatusScheduled,
			PublishAt: timePtr(now.Add(7 * 24 * time.Hour)),
		},
	}
	for _, req := range seed {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("seed %q: %v", req.Title, err)
		}
	}

	visible, err := svc.List(ctx, articles.ListOptions{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(visible) != 1 || visible[0].Slug != "published-essay" {
		t.Fatalf("unexpected published set: %#v", slugsOf(visible))
	}

	byAuthor, err := svc.List(ctx, articles.ListOptions{Author: "DHH"})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 1 {
		t.Fatalf("expected one article by dhh, got %d", len(byAuthor))
	}

	tagged, err := svc.List(ctx, articles.ListOptions{Tag: "writing"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Slug != "published-essay" {
		t.Fatalf("unexpected tagged set: %#v", slugsOf(tagged))
	}
}

func TestBunArticleRepository_SoftDeleteLifecycle(t *testing.T) {
	ctx := context.Background()

	bunDB := newArticleDB(t, "articles_delete_test")

	repo := articles.NewBunArticleRepository(bunDB)
	svc := articles.NewService(repo)

	created, err := svc.Create(ctx, articles.CreateArticleRequest{
		Title: "Disposable note",
		Body:  "Body.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, articles.DeleteArticleRequest{ID: created.ID}); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	remaining, err := svc.List(ctx, articles.ListOptions{})
	if err != nil {
		t.Fatalf("list after soft delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("soft-deleted article still listed: %#v", slugsOf(remaining))
	}

	if err := svc.Delete(ctx, articles.DeleteArticleRequest{ID: created.ID, HardDelete: true}); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	_, err = svc.Get(ctx, created.ID)
	var notFound *article.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found after hard delete, got %v", err)
	}
}

func newArticleDB(t *testing.T, name string) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewNamedSQLiteMemoryDB(name)
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := articles.EnsureSchema(context.Background(), bunDB); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return bunDB
}

func timePtr(value time.Time) *time.Time {
	return &value
}

func slugsOf(records []*articles.Article) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Slug)
	}
	return out
}
