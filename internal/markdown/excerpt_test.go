package markdown

import (
	"strings"
	"testing"
)

func TestSplitExcerpt(t *testing.T) {
	body := []byte("Intro paragraph.\n\n<!-- more -->\n\nThe rest of the essay.\n")

	excerpt, remainder := SplitExcerpt(body)
	if string(excerpt) != "Intro paragraph." {
		t.Fatalf("unexpected excerpt %q", excerpt)
	}
	if strings.Contains(string(remainder), "<!--") {
		t.Fatalf("expected marker removed, got %q", remainder)
	}
	if !strings.HasPrefix(string(remainder), "Intro paragraph.") {
		t.Fatalf("expected body to keep intro, got %q", remainder)
	}
	if !strings.Contains(string(remainder), "The rest of the essay.") {
		t.Fatalf("expected body to keep remainder, got %q", remainder)
	}
}

func TestSplitExcerptToleratesMarkerWhitespace(t *testing.T) {
	body := []byte("Teaser.\n\n<!--   more   -->\nRest.\n")
	excerpt, _ := SplitExcerpt(body)
	if string(excerpt) != "Teaser." {
		t.Fatalf("unexpected excerpt %q", excerpt)
	}
}

func TestSplitExcerptWithoutMarker(t *testing.T) {
	body := []byte("No marker anywhere.\n")
	excerpt, remainder := SplitExcerpt(body)
	if excerpt != nil {
		t.Fatalf("expected nil excerpt, got %q", excerpt)
	}
	if string(remainder) != string(body) {
		t.Fatalf("expected body unchanged, got %q", remainder)
	}
}

func TestSplitExcerptMarkerAtStart(t *testing.T) {
	body := []byte("<!-- more -->\nEverything after.\n")
	excerpt, remainder := SplitExcerpt(body)
	if excerpt != nil {
		t.Fatalf("expected empty excerpt for leading marker, got %q", excerpt)
	}
	if strings.Contains(string(remainder), "more") {
		t.Fatalf("expected marker removed, got %q", remainder)
	}
	if !strings.Contains(string(remainder), "Everything after.") {
		t.Fatalf("expected content preserved, got %q", remainder)
	}
}

func TestSplitExcerptOnlyFirstMarkerCounts(t *testing.T) {
	body := []byte("One.\n<!-- more -->\nTwo.\n<!-- more -->\nThree.\n")
	excerpt, remainder := SplitExcerpt(body)
	if string(excerpt) != "One." {
		t.Fatalf("unexpected excerpt %q", excerpt)
	}
	// The second marker stays in place; authors get a single cut point.
	if !strings.Contains(string(remainder), "<!-- more -->") {
		t.Fatalf("expected later markers untouched, got %q", remainder)
	}
}
