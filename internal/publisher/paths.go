package publisher

import (
	"path"
	"strings"
)

// articleOutputPath maps an article slug onto its file location within the
// output directory. Every article gets a directory with an index.html so the
// published site serves clean URLs without server rewrites.
func articleOutputPath(slug string) string {
	clean := strings.Trim(strings.TrimSpace(slug), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// articleRoute returns the URL path for an article slug.
func articleRoute(slug string) string {
	clean := strings.Trim(strings.TrimSpace(slug), "/")
	if clean == "" {
		return "/"
	}
	return "/" + clean + "/"
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}
