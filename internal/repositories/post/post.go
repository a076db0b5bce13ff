package post

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
)

var (
	ErrNotFound = errors.New("scheduled post not found")

	// ErrAlreadyFinalized is returned by MarkPublished/MarkFailed when the
	// post is no longer in scheduled status, so the caller's attempt was a
	// no-op. This is what closes the duplicate-publish window between
	// overlapping ticks.
	ErrAlreadyFinalized = errors.New("scheduled post already finalized")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create inserts a new post in scheduled status and returns its id.
	Create(ctx context.Context, post domain.ScheduledPost) (int64, error)

	// GetByID returns a single post by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.ScheduledPost, error)

	// ListByStatus returns all posts currently in the given status.
	ListByStatus(ctx context.Context, status domain.PostStatus) ([]*domain.ScheduledPost, error)

	// MarkPublished transitions the post to published, recording the
	// platform-assigned id. The update only applies while the post is still
	// scheduled; otherwise ErrAlreadyFinalized is returned.
	MarkPublished(ctx context.Context, id int64, externalID string, publishedAt time.Time) error

	// MarkFailed transitions the post to failed with the given reason, under
	// the same conditional-write guard as MarkPublished.
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
}
