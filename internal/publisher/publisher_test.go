package publisher

import (
	"context"
	"testing"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	platform domain.Platform
}

func (f *fakePublisher) Platform() domain.Platform { return f.platform }

func (f *fakePublisher) Publish(context.Context, *domain.ScheduledPost) domain.PublishResult {
	return domain.PublishResult{}
}

func TestRegistry(t *testing.T) {
	fb := &fakePublisher{platform: domain.PlatformFacebook}
	ig := &fakePublisher{platform: domain.PlatformInstagram}
	r := NewRegistry(fb, ig)

	got, ok := r.For(domain.PlatformFacebook)
	require.True(t, ok)
	assert.Same(t, fb, got)

	got, ok = r.For(domain.PlatformInstagram)
	require.True(t, ok)
	assert.Same(t, ig, got)

	_, ok = r.For(domain.PlatformLinkedIn)
	assert.False(t, ok)

	_, ok = r.For(domain.Platform("myspace"))
	assert.False(t, ok)
}
