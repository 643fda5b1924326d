package publisher

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lukaszreszke93/posts/internal/articles"
)

func feedArticle(title, slug string, publishedAt time.Time) *articles.Article {
	at := publishedAt
	return &articles.Article{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(slug)),
		Slug:        slug,
		Title:       title,
		Excerpt:     "Teaser for " + title,
		PublishedAt: &at,
		UpdatedAt:   at,
	}
}

func TestBuildFeedItemsNewestFirstAndCapped(t *testing.T) {
	site := SiteMetadata{BaseURL: "https://example.dev"}
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	records := []*articles.Article{
		feedArticle("Oldest", "oldest", now.AddDate(0, -2, 0)),
		feedArticle("Newest", "newest", now),
		feedArticle("Middle", "middle", now.AddDate(0, -1, 0)),
	}

	items := buildFeedItems(site, records, 2, now)
	if len(items) != 2 {
		t.Fatalf("expected cap at 2 items, got %d", len(items))
	}
	if items[0].Title != "Newest" || items[1].Title != "Middle" {
		t.Fatalf("expected newest first, got %s then %s", items[0].Title, items[1].Title)
	}
	if items[0].Link != "https://example.dev/newest/" {
		t.Fatalf("unexpected link %s", items[0].Link)
	}
	if items[0].Summary != "Teaser for Newest" {
		t.Fatalf("expected teaser summary, got %q", items[0].Summary)
	}
}

func TestBuildRSSFeedEscapesContent(t *testing.T) {
	site := SiteMetadata{BaseURL: "https://example.dev", Title: "Essays & Notes"}
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	items := buildFeedItems(site, []*articles.Article{
		feedArticle("Ampersands & angle <brackets>", "escaping", now),
	}, 0, now)

	feed := buildRSSFeed(site, items, now)
	if !strings.Contains(feed, "Essays &amp; Notes") {
		t.Fatalf("expected escaped site title, got %s", feed)
	}
	if !strings.Contains(feed, "Ampersands &amp; angle &lt;brackets&gt;") {
		t.Fatalf("expected escaped item title, got %s", feed)
	}
	if strings.Contains(feed, "<brackets>") {
		t.Fatal("raw angle brackets must not leak into the feed")
	}
}

func TestBuildAtomFeedTimestamps(t *testing.T) {
	site := SiteMetadata{BaseURL: "https://example.dev", Title: "Essays", Author: "The Team"}
	published := time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	items := buildFeedItems(site, []*articles.Article{
		feedArticle("Dated entry", "dated", published),
	}, 0, now)

	atom := buildAtomFeed(site, items, now)
	if !strings.Contains(atom, "<published>2025-05-20T09:30:00Z</published>") {
		t.Fatalf("expected RFC3339 published timestamp, got %s", atom)
	}
	if !strings.Contains(atom, "<name>The Team</name>") {
		t.Fatalf("expected feed author, got %s", atom)
	}
}
