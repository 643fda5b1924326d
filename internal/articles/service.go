package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lukaszreszke93/posts/article"
	"github.com/lukaszreszke93/posts/domain"
	"github.com/lukaszreszke93/posts/internal/identity"
	"github.com/lukaszreszke93/posts/internal/logging"
	"github.com/lukaszreszke93/posts/internal/validation"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

// Service exposes article store use-cases.
type Service interface {
	Create(ctx context.Context, req CreateArticleRequest) (*Article, error)
	Update(ctx context.Context, req UpdateArticleRequest) (*Article, error)
	Get(ctx context.Context, id uuid.UUID) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context, opts ListOptions) ([]*Article, error)
	Publish(ctx context.Context, req PublishArticleRequest) (*Article, error)
	Unpublish(ctx context.Context, req UnpublishArticleRequest) (*Article, error)
	Schedule(ctx context.Context, req ScheduleArticleRequest) (*Article, error)
	Delete(ctx context.Context, req DeleteArticleRequest) error
}

// CreateArticleRequest captures the information required to store an article.
type CreateArticleRequest struct {
	Slug        string
	Title       string
	Author      string
	Description *string
	Excerpt     string
	Body        string
	ExcerptHTML string
	BodyHTML    string
	Tags        []string
	Status      domain.Status
	Newsletter  *string
	Image       *string
	SourcePath  string
	Checksum    string
	Metadata    map[string]any
	CreatedAt   *time.Time
	PublishAt   *time.Time
}

// UpdateArticleRequest captures the mutable fields for an existing article.
type UpdateArticleRequest struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Description *string
	Excerpt     string
	Body        string
	ExcerptHTML string
	BodyHTML    string
	Tags        []string
	Status      domain.Status
	Newsletter  *string
	Image       *string
	SourcePath  string
	Checksum    string
	Metadata    map[string]any
	PublishAt   *time.Time
}

// PublishArticleRequest makes an article visible to readers.
type PublishArticleRequest struct {
	ID          uuid.UUID
	PublishedAt *time.Time
}

// UnpublishArticleRequest reverts an article to draft.
type UnpublishArticleRequest struct {
	ID uuid.UUID
}

// ScheduleArticleRequest queues an article for future publication.
type ScheduleArticleRequest struct {
	ID        uuid.UUID
	PublishAt time.Time
}

// DeleteArticleRequest removes an article. Soft deletion keeps the row with a
// deletion timestamp so imports can still detect the slug.
type DeleteArticleRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// frontMatterSchema is the structural contract for stored metadata: the
// metadata block must parse and carry a non-empty title. All other corpus
// fields are optional and extra keys pass through untouched.
var frontMatterSchema = map[string]any{
	"type":     "object",
	"required": []any{"title"},
	"properties": map[string]any{
		"title":      map[string]any{"type": "string", "minLength": 1},
		"created_at": map[string]any{"type": "string"},
		"publish":    map[string]any{"type": "boolean"},
		"author":     map[string]any{"type": "string"},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"newsletter": map[string]any{"type": "string"},
		"image":      map[string]any{"type": "string"},
	},
	"additionalProperties": true,
}

// IDGenerator derives the identifier for a new article from its slug.
type IDGenerator func(slug string) uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides deterministic slug-based identifiers.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   ArticleRepository
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs the article service over the supplied repository.
func NewService(repo ArticleRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     identity.ArticleUUID,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	slug, err := s.resolveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, article.ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, article.ErrBodyRequired
	}
	if err := validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	now := s.now()
	status, publishAt, publishedAt, err := resolveStatus(req.Status, req.PublishAt, now)
	if err != nil {
		return nil, err
	}

	if existing, lookupErr := s.repo.GetBySlug(ctx, slug); lookupErr == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", article.ErrSlugExists, slug)
	} else if lookupErr != nil && !article.IsNotFound(lookupErr) {
		return nil, fmt.Errorf("articles: slug lookup %s: %w", slug, lookupErr)
	}

	createdAt := now
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		createdAt = *req.CreatedAt
	}

	record := &Article{
		ID:          s.id(slug),
		Slug:        slug,
		Title:       title,
		Author:      strings.TrimSpace(req.Author),
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		ExcerptHTML: req.ExcerptHTML,
		BodyHTML:    req.BodyHTML,
		Tags:        append([]string(nil), req.Tags...),
		Status:      status,
		Newsletter:  req.Newsletter,
		Image:       req.Image,
		SourcePath:  req.SourcePath,
		Checksum:    req.Checksum,
		Metadata:    req.Metadata,
		PublishAt:   publishAt,
		PublishedAt: publishedAt,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("articles: create %s: %w", slug, err)
	}
	s.logger.Debug("article created", "slug", created.Slug, "status", string(created.Status))
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateArticleRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, article.ErrIDRequired
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, article.ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, article.ErrBodyRequired
	}
	if err := validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := existing.Status
	publishAt := existing.PublishAt
	publishedAt := existing.PublishedAt
	if req.Status != "" {
		status, publishAt, publishedAt, err = resolveStatus(req.Status, req.PublishAt, now)
		if err != nil {
			return nil, err
		}
		if status == domain.StatusPublished && existing.PublishedAt != nil {
			publishedAt = existing.PublishedAt
		}
	}

	existing.Title = title
	existing.Author = strings.TrimSpace(req.Author)
	existing.Description = req.Description
	existing.Excerpt = req.Excerpt
	existing.Body = req.Body
	existing.ExcerptHTML = req.ExcerptHTML
	existing.BodyHTML = req.BodyHTML
	existing.Tags = append([]string(nil), req.Tags...)
	existing.Status = status
	existing.Newsletter = req.Newsletter
	existing.Image = req.Image
	if req.SourcePath != "" {
		existing.SourcePath = req.SourcePath
	}
	if req.Checksum != "" {
		existing.Checksum = req.Checksum
	}
	if req.Metadata != nil {
		existing.Metadata = req.Metadata
	}
	existing.PublishAt = publishAt
	existing.PublishedAt = publishedAt
	existing.UpdatedAt = now

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("articles: update %s: %w", existing.Slug, err)
	}
	s.logger.Debug("article updated", "slug", updated.Slug, "status", string(updated.Status))
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Article, error) {
	if id == uuid.Nil {
		return nil, article.ErrIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, article.ErrSlugRequired
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Article, error) {
	return s.repo.List(ctx, opts.normalized(s.now))
}

func (s *service) Publish(ctx context.Context, req PublishArticleRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, article.ErrIDRequired
	}
	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.StatusPublished {
		return nil, article.ErrAlreadyPublished
	}

	publishedAt := s.now()
	if req.PublishedAt != nil && !req.PublishedAt.IsZero() {
		publishedAt = *req.PublishedAt
	}

	record.Status = domain.StatusPublished
	record.PublishedAt = &publishedAt
	record.PublishAt = nil
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("articles: publish %s: %w", record.Slug, err)
	}
	s.logger.Info("article published", "slug", updated.Slug)
	return updated, nil
}

func (s *service) Unpublish(ctx context.Context, req UnpublishArticleRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, article.ErrIDRequired
	}
	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if record.Status != domain.StatusPublished && record.Status != domain.StatusScheduled {
		return nil, article.ErrNotPublished
	}

	record.Status = domain.StatusDraft
	record.PublishedAt = nil
	record.PublishAt = nil
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("articles: unpublish %s: %w", record.Slug, err)
	}
	s.logger.Info("article unpublished", "slug", updated.Slug)
	return updated, nil
}

func (s *service) Schedule(ctx context.Context, req ScheduleArticleRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, article.ErrIDRequired
	}
	if req.PublishAt.IsZero() {
		return nil, article.ErrPublishTimeRequired
	}
	now := s.now()
	if !req.PublishAt.After(now) {
		return nil, article.ErrPublishTimeInPast
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	publishAt := req.PublishAt
	record.Status = domain.StatusScheduled
	record.PublishAt = &publishAt
	record.PublishedAt = nil
	record.UpdatedAt = now

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("articles: schedule %s: %w", record.Slug, err)
	}
	s.logger.Info("article scheduled", "slug", updated.Slug, "publish_at", publishAt)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, req DeleteArticleRequest) error {
	if req.ID == uuid.Nil {
		return article.ErrIDRequired
	}
	if req.HardDelete {
		if err := s.repo.Delete(ctx, req.ID); err != nil {
			return err
		}
		s.logger.Info("article deleted", "id", req.ID.String())
		return nil
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	now := s.now()
	record.DeletedAt = &now
	record.UpdatedAt = now
	if _, err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("articles: soft delete %s: %w", record.Slug, err)
	}
	s.logger.Info("article soft deleted", "slug", record.Slug)
	return nil
}

func (s *service) resolveSlug(raw, title string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		candidate = strings.TrimSpace(title)
	}
	if candidate == "" {
		return "", article.ErrSlugRequired
	}
	normalized, err := article.NormalizeSlug(candidate)
	if err != nil || !article.IsValidSlug(normalized) {
		return "", fmt.Errorf("%w: %s", article.ErrSlugInvalid, candidate)
	}
	return normalized, nil
}

// resolveStatus maps a requested status plus optional publish time onto a
// consistent lifecycle triple. A published request with a future publish time
// degrades to scheduled rather than going live early.
func resolveStatus(requested domain.Status, publishAt *time.Time, now time.Time) (domain.Status, *time.Time, *time.Time, error) {
	status := requested
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.Valid() {
		return "", nil, nil, fmt.Errorf("%w: %s", article.ErrStatusInvalid, requested)
	}

	switch status {
	case domain.StatusPublished:
		if publishAt != nil && publishAt.After(now) {
			at := *publishAt
			return domain.StatusScheduled, &at, nil, nil
		}
		publishedAt := now
		if publishAt != nil && !publishAt.IsZero() {
			publishedAt = *publishAt
		}
		return domain.StatusPublished, nil, &publishedAt, nil
	case domain.StatusScheduled:
		if publishAt == nil || publishAt.IsZero() {
			return "", nil, nil, article.ErrPublishTimeRequired
		}
		at := *publishAt
		return domain.StatusScheduled, &at, nil, nil
	default:
		return status, nil, nil, nil
	}
}

func validateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}
	if err := validation.ValidatePayload(frontMatterSchema, metadata); err != nil {
		var payloadErr *validation.PayloadValidationError
		if errors.As(err, &payloadErr) {
			return fmt.Errorf("%w: %s", article.ErrFrontMatterInvalid, payloadErr.Error())
		}
		return fmt.Errorf("%w: %v", article.ErrMetadataInvalid, err)
	}
	return nil
}
