package markdown

import (
	"bytes"
	"regexp"
)

// excerptMarker matches the inline teaser marker authors place in a body to
// cut the list-page preview: an HTML comment containing the word "more",
// tolerating internal whitespace.
var excerptMarker = regexp.MustCompile(`<!--\s*more\s*-->`)

// SplitExcerpt divides the Markdown body at the teaser marker. It returns the
// excerpt (content before the marker) and the full body with the marker line
// removed. When no marker is present the excerpt is nil and the body comes
// back unchanged. A marker at the very start yields an empty excerpt, which
// callers treat the same as no marker.
func SplitExcerpt(body []byte) (excerpt []byte, remainder []byte) {
	loc := excerptMarker.FindIndex(body)
	if loc == nil {
		return nil, body
	}

	excerpt = bytes.TrimSpace(body[:loc[0]])

	cleaned := make([]byte, 0, len(body)-(loc[1]-loc[0]))
	cleaned = append(cleaned, body[:loc[0]]...)
	after := body[loc[1]:]
	// Drop the newline that trailed the marker so the body does not grow a
	// blank line where the marker used to sit.
	after = bytes.TrimPrefix(after, []byte("\r\n"))
	after = bytes.TrimPrefix(after, []byte("\n"))
	cleaned = append(bytes.TrimRight(cleaned, " \t"), after...)

	if len(excerpt) == 0 {
		return nil, cleaned
	}
	return excerpt, cleaned
}
