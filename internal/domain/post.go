package domain

import "time"

// Platform is the closed set of social networks a post can target.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

// ParsePlatform maps a stored platform string to its Platform value.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformFacebook, PlatformInstagram, PlatformLinkedIn:
		return Platform(s), true
	}
	return "", false
}

type PostStatus string

const (
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
	StatusFailed    PostStatus = "failed"
)

// ScheduledPost is a queued post waiting to be published. Status only ever
// moves scheduled -> published or scheduled -> failed.
type ScheduledPost struct {
	ID            int64
	UserID        string
	Platform      Platform
	AccountID     string // page id for Facebook, account id for Instagram/LinkedIn
	Content       string
	Images        []string // source URLs, fetched at publish time
	ScheduledTime time.Time
	Status        PostStatus
	ExternalID    string
	ErrorMessage  string
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// IsDue reports whether the post's scheduled time has passed. Times are
// compared in UTC.
func (p *ScheduledPost) IsDue(now time.Time) bool {
	return !p.ScheduledTime.After(now.UTC())
}

// PublishResult is the outcome of a single publish attempt.
type PublishResult struct {
	Success    bool
	ExternalID string
	Error      string
}
