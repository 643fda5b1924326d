package markdowncmd

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/lukaszreszke93/posts/internal/articles"
	"github.com/lukaszreszke93/posts/internal/markdown"
)

func newMarkdownFixture(t *testing.T) (*markdown.Service, articles.Service) {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := articles.NewService(
		articles.NewMemoryArticleRepository(),
		articles.WithClock(func() time.Time { return now }),
	)

	svc, err := markdown.NewService(markdown.Config{
		BasePath:  "testdata",
		Pattern:   "*.md",
		Recursive: true,
	}, nil, markdown.WithArticles(store))
	if err != nil {
		t.Fatalf("markdown.NewService: %v", err)
	}
	return svc, store
}

func TestImportDirectoryHandler(t *testing.T) {
	svc, store := newMarkdownFixture(t)
	handler := NewImportDirectoryHandler(svc, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	stored, err := store.List(context.Background(), articles.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) == 0 {
		t.Fatal("expected imported articles")
	}
}

func TestImportDirectoryHandlerRequiresDirectory(t *testing.T) {
	svc, _ := newMarkdownFixture(t)
	handler := NewImportDirectoryHandler(svc, nil, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestImportDirectoryHandlerFeatureGate(t *testing.T) {
	svc, _ := newMarkdownFixture(t)
	handler := NewImportDirectoryHandler(svc, nil, FeatureGates{
		Markdown: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "."})
	if !errors.Is(err, ErrMarkdownFeatureDisabled) {
		t.Fatalf("expected ErrMarkdownFeatureDisabled, got %v", err)
	}
}

func TestSyncDirectoryHandlerDeletesOrphans(t *testing.T) {
	svc, store := newMarkdownFixture(t)

	orphan, err := store.Create(context.Background(), articles.CreateArticleRequest{
		Title: "Gone from disk",
		Body:  "body",
	})
	if err != nil {
		t.Fatalf("seed orphan: %v", err)
	}

	handler := NewSyncDirectoryHandler(svc, nil, FeatureGates{})
	if err := handler.Execute(context.Background(), SyncDirectoryCommand{
		Directory:      ".",
		DeleteOrphaned: true,
	}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := store.Get(context.Background(), orphan.ID); err == nil {
		t.Fatal("expected orphan removed")
	}
}
