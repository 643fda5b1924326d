package articles

import (
	"strings"
	"time"

	"github.com/lukaszreszke93/posts/domain"
)

// ListOptions narrows List results. The zero value lists every live article
// ordered newest-first by creation time.
type ListOptions struct {
	// Status filters on a single lifecycle state when set.
	Status domain.Status
	// Tag keeps articles carrying the tag (exact match, case-insensitive).
	Tag string
	// Author keeps articles by the given author (case-insensitive).
	Author string
	// PublishedOnly keeps articles visible to readers at Now, honouring
	// scheduled publish times.
	PublishedOnly bool
	// Now anchors PublishedOnly checks; the service fills it from its clock
	// when unset.
	Now    time.Time
	Limit  int
	Offset int
}

func (o ListOptions) normalized(now func() time.Time) ListOptions {
	o.Tag = strings.TrimSpace(o.Tag)
	o.Author = strings.TrimSpace(o.Author)
	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.PublishedOnly && o.Now.IsZero() && now != nil {
		o.Now = now()
	}
	return o
}

// matches applies the in-process filters shared by the memory repository and
// the bun repository's tag refinement.
func (o ListOptions) matches(a *Article) bool {
	if a == nil || a.DeletedAt != nil {
		return false
	}
	if o.Status != "" && a.Status != o.Status {
		return false
	}
	if o.Author != "" && !strings.EqualFold(a.Author, o.Author) {
		return false
	}
	if o.PublishedOnly && !a.Published(o.Now) {
		return false
	}
	if o.Tag != "" && !hasTag(a.Tags, o.Tag) {
		return false
	}
	return true
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(strings.TrimSpace(tag), want) {
			return true
		}
	}
	return false
}
