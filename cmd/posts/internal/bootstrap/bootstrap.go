package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	posts "github.com/lukaszreszke93/posts"
	"github.com/lukaszreszke93/posts/internal/di"
	"github.com/lukaszreszke93/posts/internal/logging"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

// Environment variable names honoured by the CLI bootstraps.
const (
	EnvStorageDriver = "POSTS_STORAGE_DRIVER"
	EnvStorageDSN    = "POSTS_STORAGE_DSN"
	EnvSiteTitle     = "POSTS_SITE_TITLE"
	EnvSiteBaseURL   = "POSTS_SITE_BASE_URL"
	EnvSiteAuthor    = "POSTS_SITE_AUTHOR"
	EnvLogLevel      = "POSTS_LOG_LEVEL"
	EnvLogFormat     = "POSTS_LOG_FORMAT"
)

// Options captures configuration for posts CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	OutputDir      string
	EnablePublish  bool
	LoggerProvider interfaces.LoggerProvider
	// Getenv defaults to os.Getenv; tests inject their own environment.
	Getenv func(string) string
}

// Module wraps the posts module with the handles CLI commands need.
type Module struct {
	Module   *posts.Module
	Commands *posts.Commands
	Logger   interfaces.Logger
}

// BuildModule constructs a posts module configured for CLI operations. A .env
// file in the working directory is loaded first; explicit environment
// variables win over it.
func BuildModule(opts Options) (*Module, error) {
	_ = godotenv.Load()

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := posts.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Commands.Enabled = true

	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	if opts.EnablePublish {
		cfg.Publisher.Enabled = true
		if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
			cfg.Publisher.OutputDir = trimmed
		}
	}

	applyEnv(&cfg, getenv)

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := posts.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise posts module: %w", err)
	}

	commands := module.Commands()
	if commands == nil {
		return nil, fmt.Errorf("command handlers not configured; ensure Commands.Enabled is set")
	}

	return &Module{
		Module:   module,
		Commands: commands,
		Logger:   logging.ModuleLogger(module.Container().LoggerProvider(), "posts.cli"),
	}, nil
}

func applyEnv(cfg *posts.Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvStorageDriver)); v != "" {
		cfg.Storage.Driver = v
	}
	if v := strings.TrimSpace(getenv(EnvStorageDSN)); v != "" {
		cfg.Storage.DSN = v
	}
	if v := strings.TrimSpace(getenv(EnvSiteTitle)); v != "" {
		cfg.Site.Title = v
	}
	if v := strings.TrimSpace(getenv(EnvSiteBaseURL)); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvSiteAuthor)); v != "" {
		cfg.Site.Author = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		cfg.Features.Logger = true
		cfg.Logging.Format = v
	}
}
