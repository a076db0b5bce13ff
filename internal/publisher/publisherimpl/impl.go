package publisherimpl

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/publisher"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("publishers",
	fx.Provide(
		NewFacebook,
		NewInstagram,
		NewLinkedIn,
		func(fb *FacebookImpl, ig *InstagramImpl, li *LinkedInImpl) *publisher.Registry {
			return publisher.NewRegistry(fb, ig, li)
		},
	),
)

// finalizer performs the one terminal status write every publisher does.
type finalizer struct {
	posts  post.Repository
	logger logger.Logger
}

func (f *finalizer) succeed(ctx context.Context, p *domain.ScheduledPost, externalID string) domain.PublishResult {
	if err := f.posts.MarkPublished(ctx, p.ID, externalID, time.Now().UTC()); err != nil {
		f.logger.Error("Failed to record published status", "post_id", p.ID, "external_id", externalID, "error", err)
	}
	return domain.PublishResult{Success: true, ExternalID: externalID}
}

func (f *finalizer) fail(ctx context.Context, p *domain.ScheduledPost, cause error) domain.PublishResult {
	f.logger.Error("Publish failed", "post_id", p.ID, "platform", p.Platform, "error", cause)
	if err := f.posts.MarkFailed(ctx, p.ID, cause.Error()); err != nil {
		f.logger.Error("Failed to record failed status", "post_id", p.ID, "error", err)
	}
	return domain.PublishResult{Success: false, Error: cause.Error()}
}

// idResponse is the minimal body shape shared by Graph and LinkedIn create calls.
type idResponse struct {
	ID string `json:"id"`
}

// graphError is the error envelope returned by the Facebook and Instagram
// Graph APIs.
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func graphErrorMessage(body []byte, status string) string {
	var ge graphError
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Message != "" {
		return ge.Error.Message
	}
	return status
}
