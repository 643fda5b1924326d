package domain

// Status represents lifecycle states for corpus articles
type Status string

const (
	// StatusDraft indicates an article still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies articles available to readers
	StatusPublished Status = "published"
	// StatusScheduled marks articles with a future publish time configured
	StatusScheduled Status = "scheduled"
	// StatusArchived marks articles retained for history but no longer listed
	StatusArchived Status = "archived"
)

// Valid reports whether the status is one of the recognised lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled, StatusArchived:
		return true
	default:
		return false
	}
}
