package articlescmd

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	publishArticleMessageType   = "posts.articles.publish"
	unpublishArticleMessageType = "posts.articles.unpublish"
	scheduleArticleMessageType  = "posts.articles.schedule"
)

// PublishArticleCommand requests publication of a stored article.
type PublishArticleCommand struct {
	ArticleID   uuid.UUID  `json:"article_id"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Type implements command.Message.
func (PublishArticleCommand) Type() string { return publishArticleMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PublishArticleCommand) Validate() error {
	errs := validation.Errors{}
	if m.ArticleID == uuid.Nil {
		errs["article_id"] = validation.NewError("posts.articles.publish.article_id_required", "article_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnpublishArticleCommand reverts a published or scheduled article to draft.
type UnpublishArticleCommand struct {
	ArticleID uuid.UUID `json:"article_id"`
}

// Type implements command.Message.
func (UnpublishArticleCommand) Type() string { return unpublishArticleMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UnpublishArticleCommand) Validate() error {
	errs := validation.Errors{}
	if m.ArticleID == uuid.Nil {
		errs["article_id"] = validation.NewError("posts.articles.unpublish.article_id_required", "article_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScheduleArticleCommand queues an article for future publication.
type ScheduleArticleCommand struct {
	ArticleID uuid.UUID `json:"article_id"`
	PublishAt time.Time `json:"publish_at"`
}

// Type implements command.Message.
func (ScheduleArticleCommand) Type() string { return scheduleArticleMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m ScheduleArticleCommand) Validate() error {
	errs := validation.Errors{}
	if m.ArticleID == uuid.Nil {
		errs["article_id"] = validation.NewError("posts.articles.schedule.article_id_required", "article_id is required")
	}
	if m.PublishAt.IsZero() {
		errs["publish_at"] = validation.NewError("posts.articles.schedule.publish_at_required", "publish_at is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
