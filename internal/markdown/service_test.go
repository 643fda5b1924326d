package markdown

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	svc, err := NewService(Config{
		BasePath:  filepath.Join("testdata", "corpus"),
		Pattern:   "*.md",
		Recursive: recursive,
	}, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "vanilla-rails.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.Title != "Vanilla Rails is plenty" {
		t.Fatalf("unexpected title %q", doc.FrontMatter.Title)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatal("expected BodyHTML to be populated")
	}
	if !doc.HasExcerpt() {
		t.Fatal("expected teaser excerpt")
	}
	if len(doc.ExcerptHTML) == 0 {
		t.Fatal("expected ExcerptHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatal("expected checksum to be populated")
	}
	if !strings.Contains(string(doc.BodyHTML), `<code class="language-ruby">`) {
		t.Fatalf("expected fenced code block rendered, got %s", doc.BodyHTML)
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	// Results come back in path order.
	if docs[0].FilePath != "drafts/rough-idea.md" || docs[1].FilePath != "vanilla-rails.md" {
		t.Fatalf("unexpected paths: %s, %s", docs[0].FilePath, docs[1].FilePath)
	}
	for _, doc := range docs {
		if len(doc.BodyHTML) == 0 {
			t.Fatalf("expected rendered body for %s", doc.FilePath)
		}
	}
}

func TestServiceLoadDirectoryNonRecursive(t *testing.T) {
	svc := newTestService(t, false)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].FilePath != "vanilla-rails.md" {
		t.Fatalf("expected vanilla-rails.md, got %s", docs[0].FilePath)
	}
}

func TestServiceRenderHonoursOverrides(t *testing.T) {
	svc := newTestService(t, true)

	html, err := svc.Render(context.Background(), []byte("<b>raw</b>\n"), interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(html), "<b>raw</b>") {
		t.Fatalf("expected safe mode to suppress raw HTML, got %s", html)
	}
}

func TestServiceImportWithoutArticlesFails(t *testing.T) {
	svc := newTestService(t, true)

	if _, err := svc.ImportDirectory(context.Background(), ".", interfaces.ImportOptions{}); err != ErrArticleServiceRequired {
		t.Fatalf("expected ErrArticleServiceRequired, got %v", err)
	}
}
