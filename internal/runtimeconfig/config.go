package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMarkdownContentDirRequired guards against markdown runs without a source tree.
var ErrMarkdownContentDirRequired = errors.New("posts config: markdown content directory is required when markdown is enabled")

// ErrPublisherOutputDirRequired guards against publisher runs without a destination.
var ErrPublisherOutputDirRequired = errors.New("posts config: publisher output directory is required when the publisher is enabled")
var ErrStorageDriverUnknown = errors.New("posts config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("posts config: storage dsn is required")
var ErrLoggingProviderRequired = errors.New("posts config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("posts config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("posts config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("posts config: logging format is invalid")
var ErrFeedLimitInvalid = errors.New("posts config: feed item limit must be zero or positive")

// Config aggregates feature flags and adapter bindings for the posts module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Site      SiteConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Features  Features
	Commands  CommandsConfig
	Markdown  MarkdownConfig
	Publisher PublisherConfig
	Logging   LoggingConfig
}

// SiteConfig carries corpus-wide metadata surfaced in feeds and templates.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// StorageConfig selects the backing database for the article store.
type StorageConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	DSN    string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles cross-cutting module behaviour. Feature-specific toggles
// live on their own config blocks (Markdown.Enabled, Publisher.Enabled).
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// MarkdownConfig captures filesystem and parser behaviour for article ingestion.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// PublisherConfig captures behaviour for the static publisher.
type PublisherConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool
	FeedLimit       int
}

// DefaultConfig returns opinionated defaults for an embedded corpus engine.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title: "Posts",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{},
		Commands: CommandsConfig{},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Publisher: PublisherConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			GenerateSitemap: true,
			GenerateRobots:  false,
			GenerateFeed:    true,
			FeedLimit:       0,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Markdown.Enabled {
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Publisher.Enabled {
		if strings.TrimSpace(cfg.Publisher.OutputDir) == "" {
			return ErrPublisherOutputDirRequired
		}
	}
	if cfg.Publisher.FeedLimit < 0 {
		return ErrFeedLimitInvalid
	}
	if driver := normalizeDriver(cfg.Storage.Driver); driver != "" {
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeDriver(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
