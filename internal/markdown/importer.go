package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lukaszreszke93/posts/article"
	"github.com/lukaszreszke93/posts/domain"
	"github.com/lukaszreszke93/posts/internal/articles"
	"github.com/lukaszreszke93/posts/internal/logging"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

var (
	ErrArticleServiceRequired = errors.New("markdown importer: article service is required")
	ErrTitleMissing           = errors.New("markdown importer: frontmatter title is required")
)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Articles articles.Service
	Logger   interfaces.Logger
}

// Importer turns parsed markdown documents into stored articles.
type Importer struct {
	articles articles.Service
	logger   interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		articles: cfg.Articles,
		logger:   logger,
	}
}

// ImportDocument imports a single markdown document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.articles == nil {
		return nil, ErrArticleServiceRequired
	}
	acc := newImportAccumulator()
	if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports a batch of documents. Two documents resolving to the
// same slug is an authoring mistake and fails the batch before any writes.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.articles == nil {
		return nil, ErrArticleServiceRequired
	}
	if err := rejectDuplicateSlugs(docs); err != nil {
		return nil, err
	}

	acc := newImportAccumulator()
	for _, doc := range sortDocuments(docs) {
		if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
			acc.addError(fmt.Errorf("%s: %w", doc.FilePath, err))
		}
	}
	return acc.result(), firstError(acc.errors)
}

// SyncDocuments imports all provided documents and optionally deletes stored
// articles whose source files disappeared.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.articles == nil {
		return nil, ErrArticleServiceRequired
	}
	if err := rejectDuplicateSlugs(docs); err != nil {
		return nil, err
	}

	acc := newSyncAccumulator()
	imported := newImportAccumulator()
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range sortDocuments(docs) {
		slug, err := documentSlug(doc)
		if err == nil {
			seen[slug] = struct{}{}
		}
		if err := i.applyDocument(ctx, doc, opts.ImportOptions, imported); err != nil {
			imported.addError(fmt.Errorf("%s: %w", doc.FilePath, err))
		}
	}
	acc.merge(imported.result())

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, seen, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (i *Importer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}
	if strings.TrimSpace(doc.FrontMatter.Title) == "" {
		return ErrTitleMissing
	}

	slug, err := documentSlug(doc)
	if err != nil {
		return err
	}

	author := strings.TrimSpace(doc.FrontMatter.Author)
	if author == "" {
		author = opts.AuthorFallback
	}

	checksum := hex.EncodeToString(doc.Checksum)
	status, publishAt := documentLifecycle(doc)

	existing, lookupErr := i.articles.GetBySlug(ctx, slug)
	if lookupErr != nil && !article.IsNotFound(lookupErr) {
		return fmt.Errorf("markdown importer: article lookup %s: %w", slug, lookupErr)
	}

	if existing == nil {
		if opts.DryRun {
			acc.skip(uuid.Nil)
			return nil
		}

		req := articles.CreateArticleRequest{
			Slug:        slug,
			Title:       doc.FrontMatter.Title,
			Author:      author,
			Description: optionalString(doc.FrontMatter.Description),
			Excerpt:     string(doc.Excerpt),
			Body:        string(doc.Body),
			ExcerptHTML: string(doc.ExcerptHTML),
			BodyHTML:    string(doc.BodyHTML),
			Tags:        doc.FrontMatter.Tags,
			Status:      status,
			Newsletter:  optionalString(doc.FrontMatter.Newsletter),
			Image:       optionalString(doc.FrontMatter.Image),
			SourcePath:  doc.FilePath,
			Checksum:    checksum,
			Metadata:    doc.FrontMatter.Raw,
			CreatedAt:   documentCreatedAt(doc),
			PublishAt:   publishAt,
		}

		record, createErr := i.articles.Create(ctx, req)
		if createErr != nil {
			return fmt.Errorf("markdown importer: create article %s: %w", slug, createErr)
		}
		i.logger.Debug("article imported", "slug", slug, "path", doc.FilePath)
		acc.created(record.ID)
		return nil
	}

	if existing.Checksum == checksum {
		acc.skip(existing.ID)
		return nil
	}

	if opts.DryRun {
		acc.skip(existing.ID)
		return nil
	}

	req := articles.UpdateArticleRequest{
		ID:          existing.ID,
		Title:       doc.FrontMatter.Title,
		Author:      author,
		Description: optionalString(doc.FrontMatter.Description),
		Excerpt:     string(doc.Excerpt),
		Body:        string(doc.Body),
		ExcerptHTML: string(doc.ExcerptHTML),
		BodyHTML:    string(doc.BodyHTML),
		Tags:        doc.FrontMatter.Tags,
		Status:      status,
		Newsletter:  optionalString(doc.FrontMatter.Newsletter),
		Image:       optionalString(doc.FrontMatter.Image),
		SourcePath:  doc.FilePath,
		Checksum:    checksum,
		Metadata:    doc.FrontMatter.Raw,
		PublishAt:   publishAt,
	}

	updated, updateErr := i.articles.Update(ctx, req)
	if updateErr != nil {
		return fmt.Errorf("markdown importer: update article %s: %w", slug, updateErr)
	}
	i.logger.Debug("article refreshed", "slug", slug, "path", doc.FilePath)
	acc.updated(updated.ID)
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	stored, err := i.articles.List(ctx, articles.ListOptions{})
	if err != nil {
		return fmt.Errorf("markdown importer: list articles: %w", err)
	}

	for _, record := range stored {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.articles.Delete(ctx, articles.DeleteArticleRequest{ID: record.ID, HardDelete: true}); err != nil {
			return fmt.Errorf("markdown importer: delete article %s: %w", record.Slug, err)
		}
		i.logger.Info("orphaned article removed", "slug", record.Slug)
		acc.deleted++
	}

	return nil
}

// documentSlug resolves the slug for a document from the front matter slug,
// falling back to the normalised title.
func documentSlug(doc *interfaces.Document) (string, error) {
	if doc == nil {
		return "", errors.New("markdown importer: nil document")
	}
	candidate := strings.TrimSpace(doc.FrontMatter.Slug)
	if candidate == "" {
		candidate = strings.TrimSpace(doc.FrontMatter.Title)
	}
	if candidate == "" {
		return "", article.ErrSlugRequired
	}
	normalized, err := article.NormalizeSlug(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %s", article.ErrSlugInvalid, candidate)
	}
	return normalized, nil
}

// documentLifecycle maps the publish flag onto a store status. A publish:true
// document whose created_at sits in the future rides through as published with
// that time so the store can schedule it.
func documentLifecycle(doc *interfaces.Document) (domain.Status, *time.Time) {
	if !doc.FrontMatter.Publish {
		return domain.StatusDraft, nil
	}
	if doc.FrontMatter.CreatedAt.IsZero() {
		return domain.StatusPublished, nil
	}
	at := doc.FrontMatter.CreatedAt
	return domain.StatusPublished, &at
}

func documentCreatedAt(doc *interfaces.Document) *time.Time {
	if doc.FrontMatter.CreatedAt.IsZero() {
		return nil
	}
	at := doc.FrontMatter.CreatedAt
	return &at
}

func rejectDuplicateSlugs(docs []*interfaces.Document) error {
	seen := map[string]string{}
	for _, doc := range docs {
		slug, err := documentSlug(doc)
		if err != nil {
			continue
		}
		if other, ok := seen[slug]; ok {
			return fmt.Errorf("%w: %s (%s and %s)", article.ErrDuplicateSlugInBatch, slug, other, doc.FilePath)
		}
		seen[slug] = doc.FilePath
	}
	return nil
}

func sortDocuments(docs []*interfaces.Document) []*interfaces.Document {
	sorted := append([]*interfaces.Document(nil), docs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i] == nil || sorted[j] == nil {
			return false
		}
		return sorted[i].FilePath < sorted[j].FilePath
	})
	return sorted
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type importAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id uuid.UUID) {
	if id != uuid.Nil {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id uuid.UUID) {
	if id != uuid.Nil {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

func (a *importAccumulator) skip(id uuid.UUID) {
	if id != uuid.Nil {
		a.skippedIDs = append(a.skippedIDs, id)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedArticleIDs: a.createdIDs,
		UpdatedArticleIDs: a.updatedIDs,
		SkippedArticleIDs: a.skippedIDs,
		Errors:            a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedArticleIDs)
	s.updated += len(res.UpdatedArticleIDs)
	s.skipped += len(res.SkippedArticleIDs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Deleted: s.deleted,
		Skipped: s.skipped,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
