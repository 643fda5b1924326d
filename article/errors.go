package article

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired        = errors.New("article: title is required")
	ErrSlugRequired         = errors.New("article: slug is required")
	ErrSlugInvalid          = errors.New("article: slug contains invalid characters")
	ErrSlugExists           = errors.New("article: slug already exists")
	ErrBodyRequired         = errors.New("article: body is required")
	ErrStatusInvalid        = errors.New("article: status is invalid")
	ErrIDRequired           = errors.New("article: id required")
	ErrAlreadyPublished     = errors.New("article: already published")
	ErrNotPublished         = errors.New("article: not published")
	ErrPublishTimeRequired  = errors.New("article: publish time is required for scheduling")
	ErrPublishTimeInPast    = errors.New("article: publish time must be in the future")
	ErrFrontMatterInvalid   = errors.New("article: front matter validation failed")
	ErrMetadataInvalid      = errors.New("article: metadata invalid")
	ErrDuplicateSlugInBatch = errors.New("article: duplicate slug within import batch")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
