package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lukaszreszke93/posts/internal/articles"
	"github.com/lukaszreszke93/posts/internal/logging"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the publisher feature is disabled.
	ErrServiceDisabled = errors.New("publisher: service disabled")

	errArticlesRequired = errors.New("publisher: article service is required")
	errWriterRequired   = errors.New("publisher: site writer is required")
)

// Service describes the static site publisher contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the publisher.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	SiteAuthor      string
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool
	FeedLimit       int
}

// BuildOptions narrows the scope of a publisher run.
type BuildOptions struct {
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	ArticlesBuilt int
	FilesWritten  int
	Duration      time.Duration
	DryRun        bool
	Errors        []error
}

// Dependencies lists the services required by the publisher.
type Dependencies struct {
	Articles articles.Service
	Renderer TemplateRenderer
	Writer   SiteWriter
	Logger   interfaces.Logger
}

// ServiceOption configures the publisher at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used for visibility cut-offs and build stamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewService wires a publisher with the provided configuration and dependencies.
// When no renderer is supplied the built-in HTML templates are used.
func NewService(cfg Config, deps Dependencies, opts ...ServiceOption) (Service, error) {
	if deps.Articles == nil {
		return nil, errArticlesRequired
	}
	if deps.Writer == nil {
		return nil, errWriterRequired
	}
	if deps.Renderer == nil {
		renderer, err := NewHTMLRenderer()
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}

	svc := &service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	now := s.now()

	visible, err := s.deps.Articles.List(ctx, articles.ListOptions{
		PublishedOnly: true,
		Now:           now,
	})
	if err != nil {
		return nil, fmt.Errorf("publisher: list articles: %w", err)
	}

	result := &BuildResult{DryRun: opts.DryRun}
	site := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     s.cfg.BaseURL,
		Author:      s.cfg.SiteAuthor,
	}

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.deps.Writer.Clean(ctx); err != nil {
			return nil, err
		}
	}

	routes := make(map[string]string, len(visible))
	sitemapEntries := make([]sitemapEntry, 0, len(visible)+1)
	sitemapEntries = append(sitemapEntries, sitemapEntry{Location: "/", LastMod: now})

	for _, record := range visible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		route := articleRoute(record.Slug)
		routes[record.Slug] = route
		sitemapEntries = append(sitemapEntries, sitemapEntry{
			Location: route,
			LastMod:  record.UpdatedAt,
		})

		html, renderErr := s.deps.Renderer.RenderArticle(ArticleContext{
			Site:        site,
			Article:     record,
			Route:       route,
			GeneratedAt: now,
		})
		if renderErr != nil {
			result.Errors = append(result.Errors, renderErr)
			continue
		}

		if !opts.DryRun {
			if err := s.deps.Writer.WriteFile(ctx, articleOutputPath(record.Slug), html); err != nil {
				return result, err
			}
			result.FilesWritten++
		}
		result.ArticlesBuilt++
		s.deps.Logger.Debug("article page built", "slug", record.Slug)
	}

	indexHTML, err := s.deps.Renderer.RenderIndex(IndexContext{
		Site:        site,
		Articles:    visible,
		Routes:      routes,
		GeneratedAt: now,
	})
	if err != nil {
		result.Errors = append(result.Errors, err)
	} else if !opts.DryRun {
		if err := s.deps.Writer.WriteFile(ctx, "index.html", indexHTML); err != nil {
			return result, err
		}
		result.FilesWritten++
	}

	if s.cfg.GenerateFeed {
		items := buildFeedItems(site, visible, s.cfg.FeedLimit, now)
		if !opts.DryRun {
			if err := s.deps.Writer.WriteFile(ctx, "feed.xml", []byte(buildRSSFeed(site, items, now))); err != nil {
				return result, err
			}
			result.FilesWritten++
			if err := s.deps.Writer.WriteFile(ctx, "feed.atom.xml", []byte(buildAtomFeed(site, items, now))); err != nil {
				return result, err
			}
			result.FilesWritten++
		}
	}

	if s.cfg.GenerateSitemap && !opts.DryRun {
		if err := s.deps.Writer.WriteFile(ctx, "sitemap.xml", []byte(buildSitemap(s.cfg.BaseURL, sitemapEntries, now))); err != nil {
			return result, err
		}
		result.FilesWritten++
	}

	if s.cfg.GenerateRobots && !opts.DryRun {
		robots := buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)
		if err := s.deps.Writer.WriteFile(ctx, "robots.txt", []byte(robots)); err != nil {
			return result, err
		}
		result.FilesWritten++
	}

	result.Duration = time.Since(start)
	s.deps.Logger.Info("site build finished",
		"articles", result.ArticlesBuilt,
		"files", result.FilesWritten,
		"dry_run", result.DryRun,
	)
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	return s.deps.Writer.Clean(ctx)
}
