package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

// timestampLayouts lists accepted created_at formats, tried in order. The
// corpus carries Ruby-style timestamps like "2015-06-29 10:16:41 +0200" which
// are not core YAML timestamps, so the envelope keeps the field as a string
// and parses it here.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm, err := envelopeToFrontMatter(meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}
	return fm, body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. The teaser marker is split out of the
// body here so every downstream consumer sees the same excerpt. HTML fields
// are intentionally left empty so callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("markdown document %s: %w", path, err)
	}

	excerpt, body := SplitExcerpt(body)

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		Excerpt:      excerpt,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Description string         `yaml:"description"`
	Author      string         `yaml:"author"`
	Tags        []string       `yaml:"tags"`
	CreatedAt   string         `yaml:"created_at"`
	Publish     bool           `yaml:"publish"`
	Newsletter  string         `yaml:"newsletter"`
	Image       string         `yaml:"image"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) (interfaces.FrontMatter, error) {
	createdAt, err := parseTimestamp(env.CreatedAt)
	if err != nil {
		return interfaces.FrontMatter{}, fmt.Errorf("parse frontmatter created_at: %w", err)
	}

	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.CreatedAt != "" {
		raw["created_at"] = env.CreatedAt
	}
	if env.Newsletter != "" {
		raw["newsletter"] = env.Newsletter
	}
	if env.Image != "" {
		raw["image"] = env.Image
	}
	raw["publish"] = env.Publish

	return interfaces.FrontMatter{
		Title:       env.Title,
		Slug:        env.Slug,
		Description: env.Description,
		Author:      env.Author,
		Tags:        append([]string(nil), env.Tags...),
		CreatedAt:   createdAt,
		Publish:     env.Publish,
		Newsletter:  env.Newsletter,
		Image:       env.Image,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
