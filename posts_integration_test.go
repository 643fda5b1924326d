package posts_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	posts "github.com/lukaszreszke93/posts"
	"github.com/lukaszreszke93/posts/domain"
	"github.com/lukaszreszke93/posts/internal/publisher"
)

func newTestModule(t *testing.T, mutate func(*posts.Config)) *posts.Module {
	t.Helper()

	cfg := posts.DefaultConfig()
	cfg.Storage.Driver = ""
	cfg.Storage.DSN = ""
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = filepath.Join("testdata", "site")
	cfg.Commands.Enabled = true
	if mutate != nil {
		mutate(&cfg)
	}

	module, err := posts.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModule_ImportPublishBuildPipeline(t *testing.T) {
	ctx := context.Background()
	outputDir := t.TempDir()

	module := newTestModule(t, func(cfg *posts.Config) {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.DSN = "file:posts_module_test?mode=memory&cache=shared&_fk=1"
		cfg.Publisher.Enabled = true
		cfg.Publisher.OutputDir = outputDir
		cfg.Site.Title = "Field Notes"
		cfg.Site.BaseURL = "https://posts.example.com"
	})

	commands := module.Commands()
	if commands == nil {
		t.Fatal("expected command handlers when commands are enabled")
	}

	if err := commands.SyncDirectory.Execute(ctx, posts.SyncDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("sync directory: %v", err)
	}

	published, err := module.Articles().GetBySlug(ctx, "announcing-posts")
	if err != nil {
		t.Fatalf("get published article: %v", err)
	}
	if published.Status != domain.StatusPublished {
		t.Fatalf("expected published status, got %s", published.Status)
	}
	if !strings.Contains(published.BodyHTML, "<p>") {
		t.Fatal("expected rendered body HTML to be stored")
	}
	if published.Excerpt == "" {
		t.Fatal("expected teaser excerpt to be stored")
	}
	if len(published.Tags) != 2 || published.Tags[0] != "announcements" {
		t.Fatalf("unexpected tags %v", published.Tags)
	}

	draft, err := module.Articles().GetBySlug(ctx, "unfinished-thought")
	if err != nil {
		t.Fatalf("get draft article: %v", err)
	}
	if draft.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %s", draft.Status)
	}

	if err := commands.BuildSite.Execute(ctx, posts.BuildSiteCommand{}); err != nil {
		t.Fatalf("build site: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "announcing-posts", "index.html"))
	if err != nil {
		t.Fatalf("read built page: %v", err)
	}
	if !strings.Contains(string(page), "Announcing the posts engine") {
		t.Fatal("built page missing article title")
	}

	if _, err := os.Stat(filepath.Join(outputDir, "unfinished-thought", "index.html")); !os.IsNotExist(err) {
		t.Fatal("draft should not be published to the site")
	}
}

func TestModule_ReimportIsIdempotent(t *testing.T) {
	ctx := context.Background()

	module := newTestModule(t, nil)

	markdownSvc := module.Markdown()
	if markdownSvc == nil {
		t.Fatal("expected markdown service")
	}

	first, err := markdownSvc.ImportDirectory(ctx, ".", posts.ImportOptions{})
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if len(first.CreatedArticleIDs) != 2 {
		t.Fatalf("expected two created articles, got %d", len(first.CreatedArticleIDs))
	}

	second, err := markdownSvc.ImportDirectory(ctx, ".", posts.ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(second.CreatedArticleIDs) != 0 || len(second.UpdatedArticleIDs) != 0 {
		t.Fatalf("expected unchanged reimport, created=%d updated=%d",
			len(second.CreatedArticleIDs), len(second.UpdatedArticleIDs))
	}
	if len(second.SkippedArticleIDs) != 2 {
		t.Fatalf("expected two skipped articles, got %d", len(second.SkippedArticleIDs))
	}
}

func TestModule_PublishLifecycleCommands(t *testing.T) {
	ctx := context.Background()

	module := newTestModule(t, nil)
	commands := module.Commands()

	if err := commands.SyncDirectory.Execute(ctx, posts.SyncDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	draft, err := module.Articles().GetBySlug(ctx, "unfinished-thought")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}

	if err := commands.PublishArticle.Execute(ctx, posts.PublishArticleCommand{ArticleID: draft.ID}); err != nil {
		t.Fatalf("publish command: %v", err)
	}

	promoted, err := module.Articles().Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("get promoted: %v", err)
	}
	if promoted.Status != domain.StatusPublished {
		t.Fatalf("expected published after command, got %s", promoted.Status)
	}
	if promoted.PublishedAt == nil {
		t.Fatal("expected published_at to be stamped")
	}

	if err := commands.UnpublishArticle.Execute(ctx, posts.UnpublishArticleCommand{ArticleID: draft.ID}); err != nil {
		t.Fatalf("unpublish command: %v", err)
	}

	demoted, err := module.Articles().Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("get demoted: %v", err)
	}
	if demoted.Status != domain.StatusDraft {
		t.Fatalf("expected draft after unpublish, got %s", demoted.Status)
	}
}

func TestModule_PublisherDisabledByDefault(t *testing.T) {
	ctx := context.Background()

	module := newTestModule(t, nil)

	if _, err := module.Publisher().Build(ctx, posts.BuildOptions{}); !errors.Is(err, publisher.ErrServiceDisabled) {
		t.Fatalf("expected disabled publisher, got %v", err)
	}
}

func TestModule_CommandsNilWhenDisabled(t *testing.T) {
	module := newTestModule(t, func(cfg *posts.Config) {
		cfg.Commands.Enabled = false
	})

	if module.Commands() != nil {
		t.Fatal("expected nil command set when the feature is disabled")
	}
}
