package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across documents so hosts can share a
// single parser instance without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file workflows for the article corpus: loading
// Markdown documents from disk, converting them into HTML, and synchronising
// them with the article store.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) error
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
	Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error)
}

// Document represents a Markdown article file with parsed metadata and
// content. The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath    string
	FrontMatter FrontMatter
	// Body is the full Markdown body with the teaser marker removed.
	Body []byte
	// Excerpt holds the Markdown preceding the teaser marker, empty when the
	// document carries no marker.
	Excerpt      []byte
	BodyHTML     []byte
	ExcerptHTML  []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so sync
	// workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// HasExcerpt reports whether the document carried a teaser marker.
func (d *Document) HasExcerpt() bool {
	return d != nil && len(d.Excerpt) > 0
}

// FrontMatter models the metadata block preceding an article body. The typed
// fields cover the canonical corpus schema; Custom keeps template- or
// domain-specific values, and Raw holds the merged view of both.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Description string         `yaml:"description" json:"description"`
	Author      string         `yaml:"author" json:"author"`
	Tags        []string       `yaml:"tags" json:"tags"`
	CreatedAt   time.Time      `yaml:"created_at" json:"created_at"`
	Publish     bool           `yaml:"publish" json:"publish"`
	Newsletter  string         `yaml:"newsletter" json:"newsletter"`
	Image       string         `yaml:"image" json:"image"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how Markdown documents are converted into stored
// articles.
type ImportOptions struct {
	// AuthorFallback is applied when a document omits the author field.
	AuthorFallback string
	DryRun         bool
}

// SyncOptions extends ImportOptions to handle delete semantics for repeated
// synchronisation runs.
type SyncOptions struct {
	ImportOptions
	DeleteOrphaned bool
}

// ImportResult reports the outcome of a single import operation, exposing
// counts and IDs so callers can audit behaviour or trigger follow-up actions.
type ImportResult struct {
	CreatedArticleIDs []uuid.UUID
	UpdatedArticleIDs []uuid.UUID
	SkippedArticleIDs []uuid.UUID
	Errors            []error
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
