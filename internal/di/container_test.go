package di_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lukaszreszke93/posts/internal/articles"
	markdowncmd "github.com/lukaszreszke93/posts/internal/commands/markdown"
	"github.com/lukaszreszke93/posts/internal/di"
	"github.com/lukaszreszke93/posts/internal/publisher"
	"github.com/lukaszreszke93/posts/internal/runtimeconfig"
)

func TestNewContainerDefaultsToMemoryRepository(t *testing.T) {
	ctx := context.Background()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = ""
	cfg.Storage.DSN = ""

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if c.BunDB() != nil {
		t.Fatal("expected no database without a storage driver")
	}
	if c.MarkdownService() != nil {
		t.Fatal("expected markdown service to stay nil when disabled")
	}

	created, err := c.ArticleService().Create(ctx, articles.CreateArticleRequest{
		Title: "Memory backed",
		Body:  "Body.",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if created.Slug != "memory-backed" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}

	if _, err := c.PublisherService().Build(ctx, publisher.BuildOptions{}); !errors.Is(err, publisher.ErrServiceDisabled) {
		t.Fatalf("expected disabled publisher, got %v", err)
	}
}

func TestNewContainerOpensSQLiteStorage(t *testing.T) {
	ctx := context.Background()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.DSN = "file:di_container_test?mode=memory&cache=shared&_fk=1"

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if c.BunDB() == nil {
		t.Fatal("expected container to own a database")
	}

	created, err := c.ArticleService().Create(ctx, articles.CreateArticleRequest{
		Title: "Stored in sqlite",
		Body:  "Body.",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	fetched, err := c.ArticleService().GetBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("fetched %s, want %s", fetched.ID, created.ID)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Publisher.Enabled = true
	cfg.Publisher.OutputDir = "   "

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrPublisherOutputDirRequired) {
		t.Fatalf("expected output dir validation error, got %v", err)
	}
}

func TestContainerMarkdownImportCommand(t *testing.T) {
	ctx := context.Background()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = ""
	cfg.Storage.DSN = ""
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = filepath.Join("testdata", "content")

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	handler := c.ImportDirectoryHandler()
	if err := handler.Execute(ctx, markdowncmd.ImportDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("import: %v", err)
	}

	imported, err := c.ArticleService().GetBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("get imported article: %v", err)
	}
	if imported.Author != "Lukasz Reszke" {
		t.Fatalf("unexpected author %q", imported.Author)
	}
	if imported.Excerpt == "" {
		t.Fatal("expected teaser excerpt to be stored")
	}
}

func TestContainerMarkdownCommandGate(t *testing.T) {
	ctx := context.Background()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = ""
	cfg.Storage.DSN = ""

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	handler := c.ImportDirectoryHandler()
	err = handler.Execute(ctx, markdowncmd.ImportDirectoryCommand{Directory: "."})
	if !errors.Is(err, markdowncmd.ErrMarkdownFeatureDisabled) {
		t.Fatalf("expected feature gate error, got %v", err)
	}
}

func TestContainerPublisherWritesOutput(t *testing.T) {
	ctx := context.Background()

	outputDir := t.TempDir()

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = ""
	cfg.Storage.DSN = ""
	cfg.Publisher.Enabled = true
	cfg.Publisher.OutputDir = outputDir
	cfg.Site.Title = "Field Notes"
	cfg.Site.BaseURL = "https://example.com"

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, err := c.ArticleService().Create(ctx, articles.CreateArticleRequest{
		Title:  "Build target",
		Body:   "Body.",
		Status: "published",
	}); err != nil {
		t.Fatalf("create article: %v", err)
	}

	result, err := c.PublisherService().Build(ctx, publisher.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.ArticlesBuilt != 1 {
		t.Fatalf("expected one article built, got %d", result.ArticlesBuilt)
	}
	if result.FilesWritten == 0 {
		t.Fatal("expected files to be written")
	}
}
