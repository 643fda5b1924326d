package publishercmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/lukaszreszke93/posts/internal/commands"
	"github.com/lukaszreszke93/posts/internal/logging"
	"github.com/lukaszreszke93/posts/internal/publisher"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

const buildSiteMessageType = "posts.publisher.build"

var _ command.Commander[BuildSiteCommand] = (*BuildSiteHandler)(nil)

// BuildSiteCommand triggers a full static site build.
type BuildSiteCommand struct {
	// DryRun renders and counts pages without writing any files.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate implements command.Message; builds carry no required fields.
func (BuildSiteCommand) Validate() error { return nil }

// BuildSiteHandler runs static builds via the publisher service.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided publisher service.
func NewBuildSiteHandler(service publisher.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		result, err := service.Build(ctx, publisher.BuildOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"articles_built": result.ArticlesBuilt,
				"files_written":  result.FilesWritten,
				"error_count":    len(result.Errors),
				"dry_run":        msg.DryRun,
			}).Info("publisher.command.build.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("publisher.build"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].Execute.
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
