package posts_test

import (
	"errors"
	"testing"

	posts "github.com/lukaszreszke93/posts"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := posts.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigValidateMarkdownRequiresContentDir(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = "  "

	if err := cfg.Validate(); !errors.Is(err, posts.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}
}

func TestConfigValidatePublisherRequiresOutputDir(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Publisher.Enabled = true
	cfg.Publisher.OutputDir = ""

	if err := cfg.Validate(); !errors.Is(err, posts.ErrPublisherOutputDirRequired) {
		t.Fatalf("expected ErrPublisherOutputDirRequired, got %v", err)
	}
}

func TestConfigValidateStorageDriverUnknown(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Storage.Driver = "mysql"

	if err := cfg.Validate(); !errors.Is(err, posts.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestConfigValidateStorageRequiresDSN(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Storage.DSN = ""

	if err := cfg.Validate(); !errors.Is(err, posts.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidateFeedLimit(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Publisher.FeedLimit = -1

	if err := cfg.Validate(); !errors.Is(err, posts.ErrFeedLimitInvalid) {
		t.Fatalf("expected ErrFeedLimitInvalid, got %v", err)
	}
}

func TestConfigValidateLoggingLevel(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); !errors.Is(err, posts.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := posts.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "zap"

	if err := cfg.Validate(); !errors.Is(err, posts.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}
