package publisher

import (
	"context"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
)

// Publisher turns a due scheduled post into a live post on one platform.
// Publish never returns an error: every outcome is resolved to a
// PublishResult, and the publisher records the terminal status on the post
// row itself before returning.
type Publisher interface {
	Platform() domain.Platform
	Publish(ctx context.Context, post *domain.ScheduledPost) domain.PublishResult
}

// Registry maps each supported platform to its publisher.
type Registry struct {
	publishers map[domain.Platform]Publisher
}

func NewRegistry(pubs ...Publisher) *Registry {
	r := &Registry{publishers: make(map[domain.Platform]Publisher, len(pubs))}
	for _, p := range pubs {
		r.publishers[p.Platform()] = p
	}
	return r
}

// For returns the publisher for the given platform, if one is registered.
func (r *Registry) For(platform domain.Platform) (Publisher, bool) {
	p, ok := r.publishers[platform]
	return p, ok
}
