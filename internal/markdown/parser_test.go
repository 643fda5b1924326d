package markdown

import (
	"strings"
	"testing"

	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

func TestGoldmarkParserRendersGFM(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected table rendering, got %s", out)
	}
	if !strings.Contains(out, "<del>gone</del>") {
		t.Fatalf("expected strikethrough rendering, got %s", out)
	}
}

func TestGoldmarkParserFencedCodeBlock(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("```ruby\nclass Foo; end\n```\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, `<code class="language-ruby">`) {
		t.Fatalf("expected language class on code block, got %s", out)
	}
	if !strings.Contains(out, "class Foo; end") {
		t.Fatalf("expected code content preserved, got %s", out)
	}
}

func TestGoldmarkParserRawHTMLModes(t *testing.T) {
	source := []byte("before\n\n<iframe src=\"https://example.com\"></iframe>\n\nafter\n")

	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	html, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), "<iframe") {
		t.Fatalf("expected raw HTML passthrough by default, got %s", html)
	}

	safe, err := parser.ParseWithOptions(source, interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(safe), "<iframe") {
		t.Fatalf("expected raw HTML suppressed in safe mode, got %s", safe)
	}
}

func TestGoldmarkParserHardWraps(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{HardWraps: true})

	html, err := parser.Parse([]byte("line one\nline two\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), "<br") {
		t.Fatalf("expected hard line break, got %s", html)
	}
}

func TestCollectExtensionsIgnoresUnknownNames(t *testing.T) {
	exts := collectExtensions([]string{"gfm", "made-up", "GFM", " footnote "})
	if len(exts) != 2 {
		t.Fatalf("expected gfm and footnote, got %d extenders", len(exts))
	}
}
