package scheduler

import "context"

// Client drives the publication of due scheduled posts.
type Client interface {
	// SchedulePublishing starts the recurring publish job. It returns after
	// the job is registered; ticks run until ctx is cancelled.
	SchedulePublishing(ctx context.Context) error

	// ProcessDuePosts runs a single tick: fetch scheduled posts, filter due
	// ones, and dispatch each to its platform publisher.
	ProcessDuePosts(ctx context.Context)
}
