package publisher

import (
	"strings"
	"testing"
	"time"
)

func TestArticleOutputPath(t *testing.T) {
	cases := map[string]string{
		"vanilla-rails": "vanilla-rails/index.html",
		"/padded/":      "padded/index.html",
		"":              "index.html",
	}
	for slug, want := range cases {
		if got := articleOutputPath(slug); got != want {
			t.Fatalf("articleOutputPath(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestArticleRoute(t *testing.T) {
	if got := articleRoute("vanilla-rails"); got != "/vanilla-rails/" {
		t.Fatalf("unexpected route %q", got)
	}
	if got := articleRoute(""); got != "/" {
		t.Fatalf("unexpected root route %q", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	if got := absoluteURL("https://example.dev/", "/post/"); got != "https://example.dev/post/" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := absoluteURL("", "post"); got != "http://localhost/post" {
		t.Fatalf("expected localhost fallback, got %q", got)
	}
}

func TestBuildSitemapDeduplicatesAndSorts(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	entries := []sitemapEntry{
		{Location: "/b/", LastMod: now},
		{Location: "/a/"},
		{Location: "/b/", LastMod: now},
	}

	sitemap := buildSitemap("https://example.dev", entries, now)
	if strings.Count(sitemap, "https://example.dev/b/") != 1 {
		t.Fatalf("expected deduplicated locations, got %s", sitemap)
	}
	aIdx := strings.Index(sitemap, "https://example.dev/a/")
	bIdx := strings.Index(sitemap, "https://example.dev/b/")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Fatalf("expected sorted locations, got %s", sitemap)
	}
	if !strings.Contains(sitemap, "<lastmod>2025-07-01T00:00:00Z</lastmod>") {
		t.Fatalf("expected fallback lastmod, got %s", sitemap)
	}
}

func TestBuildRobots(t *testing.T) {
	robots := buildRobots("https://example.dev", true)
	if !strings.Contains(robots, "User-agent: *") {
		t.Fatalf("unexpected robots %q", robots)
	}
	if !strings.Contains(robots, "Sitemap: https://example.dev/sitemap.xml") {
		t.Fatalf("expected sitemap line, got %q", robots)
	}

	bare := buildRobots("https://example.dev", false)
	if strings.Contains(bare, "Sitemap:") {
		t.Fatalf("expected no sitemap line, got %q", bare)
	}
}
