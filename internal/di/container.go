package di

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/lukaszreszke93/posts/internal/articles"
	"github.com/lukaszreszke93/posts/internal/commands"
	articlescmd "github.com/lukaszreszke93/posts/internal/commands/articles"
	markdowncmd "github.com/lukaszreszke93/posts/internal/commands/markdown"
	publishercmd "github.com/lukaszreszke93/posts/internal/commands/publisher"
	"github.com/lukaszreszke93/posts/internal/logging"
	"github.com/lukaszreszke93/posts/internal/logging/gologger"
	"github.com/lukaszreszke93/posts/internal/markdown"
	"github.com/lukaszreszke93/posts/internal/publisher"
	"github.com/lukaszreszke93/posts/internal/runtimeconfig"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
	"github.com/lukaszreszke93/posts/pkg/storage"
)

// Container wires module dependencies. Without a database binding it falls
// back to in-memory repositories so embedded and test setups work out of the
// box.
type Container struct {
	Config runtimeconfig.Config

	bunDB  *bun.DB
	ownsDB bool

	loggerProvider interfaces.LoggerProvider

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	articleRepo articles.ArticleRepository
	articleSvc  articles.Service

	markdownSvc  interfaces.MarkdownService
	siteWriter   publisher.SiteWriter
	publisherSvc publisher.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds an externally managed database. The container will not
// close it and assumes the host ran its own migrations.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the default logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithArticleRepository overrides the default article repository binding.
func WithArticleRepository(repo articles.ArticleRepository) Option {
	return func(c *Container) {
		c.articleRepo = repo
	}
}

// WithArticleService overrides the default article service binding.
func WithArticleService(svc articles.Service) Option {
	return func(c *Container) {
		c.articleSvc = svc
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithSiteWriter overrides the writer used for static builds.
func WithSiteWriter(writer publisher.SiteWriter) Option {
	return func(c *Container) {
		c.siteWriter = writer
	}
}

// WithPublisherService overrides the default publisher service binding.
func WithPublisherService(svc publisher.Service) Option {
	return func(c *Container) {
		c.publisherSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureRepositories()

	if c.articleSvc == nil {
		c.articleSvc = articles.NewService(
			c.articleRepo,
			articles.WithLogger(logging.ArticlesLogger(c.loggerProvider)),
		)
	}

	if err := c.configureMarkdown(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configurePublisher(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	if c.Config.Logging.Provider != "gologger" {
		// "noop" keeps the provider nil; ModuleLogger falls back to no-op.
		return nil
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || c.articleRepo != nil {
		return nil
	}
	driver := c.Config.Storage.Driver
	if driver == "" {
		return nil
	}

	db, err := storage.Open(storage.Config{
		Driver: driver,
		DSN:    c.Config.Storage.DSN,
	})
	if err != nil {
		return err
	}
	if err := articles.EnsureSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return err
	}

	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureRepositories() {
	if c.articleRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.articleRepo = articles.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.articleRepo = articles.NewMemoryArticleRepository()
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil || !c.Config.Markdown.Enabled {
		return nil
	}

	svc, err := markdown.NewService(
		markdown.Config{
			BasePath:  c.Config.Markdown.ContentDir,
			Pattern:   c.Config.Markdown.Pattern,
			Recursive: c.Config.Markdown.Recursive,
			Parser: interfaces.ParseOptions{
				Extensions: c.Config.Markdown.Parser.Extensions,
				Sanitize:   c.Config.Markdown.Parser.Sanitize,
				HardWraps:  c.Config.Markdown.Parser.HardWraps,
				SafeMode:   c.Config.Markdown.Parser.SafeMode,
			},
		},
		nil,
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
		markdown.WithArticles(c.articleSvc),
	)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configurePublisher() error {
	if c.publisherSvc != nil {
		return nil
	}
	if !c.Config.Publisher.Enabled {
		c.publisherSvc = publisher.NewDisabledService()
		return nil
	}

	writer := c.siteWriter
	if writer == nil {
		created, err := publisher.NewDirWriter(c.Config.Publisher.OutputDir)
		if err != nil {
			return err
		}
		writer = created
	}

	svc, err := publisher.NewService(
		publisher.Config{
			OutputDir:       c.Config.Publisher.OutputDir,
			BaseURL:         c.Config.Site.BaseURL,
			SiteTitle:       c.Config.Site.Title,
			SiteDescription: c.Config.Site.Description,
			SiteAuthor:      c.Config.Site.Author,
			CleanBuild:      c.Config.Publisher.CleanBuild,
			GenerateSitemap: c.Config.Publisher.GenerateSitemap,
			GenerateRobots:  c.Config.Publisher.GenerateRobots,
			GenerateFeed:    c.Config.Publisher.GenerateFeed,
			FeedLimit:       c.Config.Publisher.FeedLimit,
		},
		publisher.Dependencies{
			Articles: c.articleSvc,
			Writer:   writer,
			Logger:   logging.PublisherLogger(c.loggerProvider),
		},
	)
	if err != nil {
		return err
	}
	c.publisherSvc = svc
	return nil
}

// Close releases resources owned by the container. Databases supplied via
// WithBunDB stay open.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	return err
}

// BunDB exposes the configured database handle, nil when running in memory.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// LoggerProvider exposes the configured logger provider, nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ArticleRepository exposes the configured article repository.
func (c *Container) ArticleRepository() articles.ArticleRepository {
	return c.articleRepo
}

// ArticleService returns the configured article service.
func (c *Container) ArticleService() articles.Service {
	return c.articleSvc
}

// MarkdownService returns the configured markdown service, nil when the
// markdown feature is disabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// PublisherService returns the configured publisher service.
func (c *Container) PublisherService() publisher.Service {
	return c.publisherSvc
}

// ImportDirectoryHandler builds the command handler for directory imports.
func (c *Container) ImportDirectoryHandler() *markdowncmd.ImportDirectoryHandler {
	return markdowncmd.NewImportDirectoryHandler(
		c.markdownSvc,
		logging.MarkdownLogger(c.loggerProvider),
		c.markdownGates(),
		commandOptions[markdowncmd.ImportDirectoryCommand](c.Config.Commands)...,
	)
}

// SyncDirectoryHandler builds the command handler for directory syncs.
func (c *Container) SyncDirectoryHandler() *markdowncmd.SyncDirectoryHandler {
	return markdowncmd.NewSyncDirectoryHandler(
		c.markdownSvc,
		logging.MarkdownLogger(c.loggerProvider),
		c.markdownGates(),
		commandOptions[markdowncmd.SyncDirectoryCommand](c.Config.Commands)...,
	)
}

// PublishArticleHandler builds the command handler for publishing articles.
func (c *Container) PublishArticleHandler() *articlescmd.PublishArticleHandler {
	return articlescmd.NewPublishArticleHandler(
		c.articleSvc,
		logging.ArticlesLogger(c.loggerProvider),
		commandOptions[articlescmd.PublishArticleCommand](c.Config.Commands)...,
	)
}

// UnpublishArticleHandler builds the command handler for unpublishing articles.
func (c *Container) UnpublishArticleHandler() *articlescmd.UnpublishArticleHandler {
	return articlescmd.NewUnpublishArticleHandler(
		c.articleSvc,
		logging.ArticlesLogger(c.loggerProvider),
		commandOptions[articlescmd.UnpublishArticleCommand](c.Config.Commands)...,
	)
}

// ScheduleArticleHandler builds the command handler for scheduling articles.
func (c *Container) ScheduleArticleHandler() *articlescmd.ScheduleArticleHandler {
	return articlescmd.NewScheduleArticleHandler(
		c.articleSvc,
		logging.ArticlesLogger(c.loggerProvider),
		commandOptions[articlescmd.ScheduleArticleCommand](c.Config.Commands)...,
	)
}

// BuildSiteHandler builds the command handler for static site builds.
func (c *Container) BuildSiteHandler() *publishercmd.BuildSiteHandler {
	return publishercmd.NewBuildSiteHandler(
		c.publisherSvc,
		logging.PublisherLogger(c.loggerProvider),
		commandOptions[publishercmd.BuildSiteCommand](c.Config.Commands)...,
	)
}

func (c *Container) markdownGates() markdowncmd.FeatureGates {
	return markdowncmd.FeatureGates{
		Markdown: func() bool {
			return c.Config.Markdown.Enabled && c.markdownSvc != nil
		},
	}
}

func commandOptions[T command.Message](cfg runtimeconfig.CommandsConfig) []commands.HandlerOption[T] {
	if cfg.Timeout <= 0 {
		return nil
	}
	return []commands.HandlerOption[T]{
		commands.WithTimeout[T](cfg.Timeout),
	}
}
