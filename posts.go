package posts

import (
	"github.com/lukaszreszke93/posts/internal/articles"
	articlescmd "github.com/lukaszreszke93/posts/internal/commands/articles"
	markdowncmd "github.com/lukaszreszke93/posts/internal/commands/markdown"
	publishercmd "github.com/lukaszreszke93/posts/internal/commands/publisher"
	"github.com/lukaszreszke93/posts/internal/di"
	"github.com/lukaszreszke93/posts/internal/publisher"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

// ArticleService exports the article store contract for consumers of the
// posts package.
type ArticleService = articles.Service

// ArticleRepository exports the repository contract backing the article store.
type ArticleRepository = articles.ArticleRepository

// ListOptions exports the article listing filters.
type ListOptions = articles.ListOptions

// CreateArticleRequest exports the article creation payload.
type CreateArticleRequest = articles.CreateArticleRequest

// UpdateArticleRequest exports the article update payload.
type UpdateArticleRequest = articles.UpdateArticleRequest

// PublishArticleRequest exports the publish payload.
type PublishArticleRequest = articles.PublishArticleRequest

// ScheduleArticleRequest exports the schedule payload.
type ScheduleArticleRequest = articles.ScheduleArticleRequest

// MarkdownService exports the markdown workflow contract.
type MarkdownService = interfaces.MarkdownService

// Document exports the parsed markdown document shape.
type Document = interfaces.Document

// FrontMatter exports the typed front matter shape.
type FrontMatter = interfaces.FrontMatter

// ImportOptions exports the markdown import options.
type ImportOptions = interfaces.ImportOptions

// SyncOptions exports the markdown sync options.
type SyncOptions = interfaces.SyncOptions

// ImportResult exports the markdown import report.
type ImportResult = interfaces.ImportResult

// SyncResult exports the markdown sync report.
type SyncResult = interfaces.SyncResult

// Command message aliases so hosts can dispatch without importing internal
// packages.
type (
	ImportDirectoryCommand  = markdowncmd.ImportDirectoryCommand
	SyncDirectoryCommand    = markdowncmd.SyncDirectoryCommand
	PublishArticleCommand   = articlescmd.PublishArticleCommand
	UnpublishArticleCommand = articlescmd.UnpublishArticleCommand
	ScheduleArticleCommand  = articlescmd.ScheduleArticleCommand
	BuildSiteCommand        = publishercmd.BuildSiteCommand
)

// PublisherService exports the static publisher contract.
type PublisherService = publisher.Service

// BuildOptions exports the publisher build options.
type BuildOptions = publisher.BuildOptions

// BuildResult exports the publisher build report.
type BuildResult = publisher.BuildResult

// Commands groups the command handlers exposed by the module. It is only
// populated when the commands feature is enabled.
type Commands struct {
	ImportDirectory  *markdowncmd.ImportDirectoryHandler
	SyncDirectory    *markdowncmd.SyncDirectoryHandler
	PublishArticle   *articlescmd.PublishArticleHandler
	UnpublishArticle *articlescmd.UnpublishArticleHandler
	ScheduleArticle  *articlescmd.ScheduleArticleHandler
	BuildSite        *publishercmd.BuildSiteHandler
}

// Module represents the top level posts runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a posts module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Articles returns the configured article service.
func (m *Module) Articles() ArticleService {
	return m.container.ArticleService()
}

// Markdown returns the markdown service when configured, nil otherwise.
func (m *Module) Markdown() MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Publisher returns the configured publisher service. When the publisher
// feature is disabled every operation fails with publisher.ErrServiceDisabled.
func (m *Module) Publisher() PublisherService {
	return m.container.PublisherService()
}

// Commands returns the command handler set, nil when the commands feature is
// disabled.
func (m *Module) Commands() *Commands {
	if m == nil || m.container == nil || !m.container.Config.Commands.Enabled {
		return nil
	}
	return &Commands{
		ImportDirectory:  m.container.ImportDirectoryHandler(),
		SyncDirectory:    m.container.SyncDirectoryHandler(),
		PublishArticle:   m.container.PublishArticleHandler(),
		UnpublishArticle: m.container.UnpublishArticleHandler(),
		ScheduleArticle:  m.container.ScheduleArticleHandler(),
		BuildSite:        m.container.BuildSiteHandler(),
	}
}

// Close releases container-owned resources such as the database handle.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
