package article

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/lukaszreszke93/posts/domain"
)

// Article is the canonical record for a corpus entry. Markdown stays the
// source of truth for the body; rendered HTML is persisted alongside it so
// readers and the publisher never re-render on the hot path.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Title       string    `bun:"title,notnull" json:"title"`
	Author      string    `bun:"author" json:"author,omitempty"`
	Description *string   `bun:"description" json:"description,omitempty"`
	// Excerpt carries the Markdown preceding the teaser marker; empty when the
	// source document had none.
	Excerpt     string         `bun:"excerpt" json:"excerpt,omitempty"`
	Body        string         `bun:"body,notnull" json:"body"`
	ExcerptHTML string         `bun:"excerpt_html" json:"excerpt_html,omitempty"`
	BodyHTML    string         `bun:"body_html" json:"body_html,omitempty"`
	Tags        []string       `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Status      domain.Status  `bun:"status,notnull,default:'draft'" json:"status"`
	Newsletter  *string        `bun:"newsletter" json:"newsletter,omitempty"`
	Image       *string        `bun:"image" json:"image,omitempty"`
	SourcePath  string         `bun:"source_path" json:"source_path,omitempty"`
	Checksum    string         `bun:"checksum" json:"checksum,omitempty"`
	Metadata    map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	PublishAt   *time.Time     `bun:"publish_at,nullzero" json:"publish_at,omitempty"`
	PublishedAt *time.Time     `bun:"published_at,nullzero" json:"published_at,omitempty"`
	DeletedAt   *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Published reports whether the article is visible to readers at the supplied
// instant, honouring scheduled publish times.
func (a *Article) Published(now time.Time) bool {
	if a == nil || a.DeletedAt != nil {
		return false
	}
	switch a.Status {
	case domain.StatusPublished:
		return true
	case domain.StatusScheduled:
		return a.PublishAt != nil && !a.PublishAt.After(now)
	default:
		return false
	}
}

// Teaser returns the excerpt Markdown when present, falling back to the full
// body so list views always have something to show.
func (a *Article) Teaser() string {
	if a == nil {
		return ""
	}
	if a.Excerpt != "" {
		return a.Excerpt
	}
	return a.Body
}
