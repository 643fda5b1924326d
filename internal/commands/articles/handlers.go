package articlescmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/lukaszreszke93/posts/internal/articles"
	"github.com/lukaszreszke93/posts/internal/commands"
	"github.com/lukaszreszke93/posts/pkg/interfaces"
)

var (
	_ command.Commander[PublishArticleCommand]   = (*PublishArticleHandler)(nil)
	_ command.Commander[UnpublishArticleCommand] = (*UnpublishArticleHandler)(nil)
	_ command.Commander[ScheduleArticleCommand]  = (*ScheduleArticleHandler)(nil)
)

// PublishArticleHandler publishes articles via the article service using the
// shared command handler foundation.
type PublishArticleHandler struct {
	inner *commands.Handler[PublishArticleCommand]
}

// NewPublishArticleHandler constructs a handler wired to the provided article service.
func NewPublishArticleHandler(service articles.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishArticleCommand]) *PublishArticleHandler {
	exec := func(ctx context.Context, msg PublishArticleCommand) error {
		_, err := service.Publish(ctx, articles.PublishArticleRequest{
			ID:          msg.ArticleID,
			PublishedAt: msg.PublishedAt,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishArticleCommand]{
		commands.WithLogger[PublishArticleCommand](logger),
		commands.WithOperation[PublishArticleCommand]("articles.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishArticleCommand].Execute.
func (h *PublishArticleHandler) Execute(ctx context.Context, msg PublishArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnpublishArticleHandler reverts articles to draft via the article service.
type UnpublishArticleHandler struct {
	inner *commands.Handler[UnpublishArticleCommand]
}

// NewUnpublishArticleHandler constructs a handler wired to the provided article service.
func NewUnpublishArticleHandler(service articles.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UnpublishArticleCommand]) *UnpublishArticleHandler {
	exec := func(ctx context.Context, msg UnpublishArticleCommand) error {
		_, err := service.Unpublish(ctx, articles.UnpublishArticleRequest{ID: msg.ArticleID})
		return err
	}

	handlerOpts := []commands.HandlerOption[UnpublishArticleCommand]{
		commands.WithLogger[UnpublishArticleCommand](logger),
		commands.WithOperation[UnpublishArticleCommand]("articles.unpublish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnpublishArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnpublishArticleCommand].Execute.
func (h *UnpublishArticleHandler) Execute(ctx context.Context, msg UnpublishArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ScheduleArticleHandler queues articles for future publication.
type ScheduleArticleHandler struct {
	inner *commands.Handler[ScheduleArticleCommand]
}

// NewScheduleArticleHandler constructs a handler wired to the provided article service.
func NewScheduleArticleHandler(service articles.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ScheduleArticleCommand]) *ScheduleArticleHandler {
	exec := func(ctx context.Context, msg ScheduleArticleCommand) error {
		_, err := service.Schedule(ctx, articles.ScheduleArticleRequest{
			ID:        msg.ArticleID,
			PublishAt: msg.PublishAt,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ScheduleArticleCommand]{
		commands.WithLogger[ScheduleArticleCommand](logger),
		commands.WithOperation[ScheduleArticleCommand]("articles.schedule"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ScheduleArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ScheduleArticleCommand].Execute.
func (h *ScheduleArticleHandler) Execute(ctx context.Context, msg ScheduleArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}
