package publisherimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/media"
	"github.com/orgball2608/social-post-scheduler/internal/publisher"
	"github.com/orgball2608/social-post-scheduler/internal/ratelimit"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/facebookpage"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"go.uber.org/fx"
)

type FacebookOpts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Posts   post.Repository
	Pages   facebookpage.Repository
	Fetcher media.Fetcher
	Limiter ratelimit.Limiter
	Client  *http.Client
}

// FacebookImpl publishes page posts through the Graph API. The feed post is
// created with published=false and scheduled_publish_time, so Facebook itself
// makes the post visible at the scheduled moment; this service only initiates
// the platform-side schedule.
type FacebookImpl struct {
	finalizer
	cfg     *config.Config
	pages   facebookpage.Repository
	fetcher media.Fetcher
	limiter ratelimit.Limiter
	client  *http.Client
	logger  logger.Logger
}

func NewFacebook(opts FacebookOpts) *FacebookImpl {
	log := opts.Logger.WithComponent("FacebookPublisher")
	return &FacebookImpl{
		finalizer: finalizer{posts: opts.Posts, logger: log},
		cfg:       opts.Config,
		pages:     opts.Pages,
		fetcher:   opts.Fetcher,
		limiter:   opts.Limiter,
		client:    opts.Client,
		logger:    log,
	}
}

var _ publisher.Publisher = (*FacebookImpl)(nil)

func (p *FacebookImpl) Platform() domain.Platform { return domain.PlatformFacebook }

func (p *FacebookImpl) Publish(ctx context.Context, sp *domain.ScheduledPost) domain.PublishResult {
	p.logger.Info("Publishing facebook post", "post_id", sp.ID, "page_id", sp.AccountID)

	page, err := p.pages.GetByPageID(ctx, sp.AccountID, sp.UserID)
	if err != nil {
		return p.fail(ctx, sp, fmt.Errorf("facebook page lookup: %w", err))
	}

	// A broken image never sinks the whole post: the failed upload is
	// skipped and the feed post carries whatever images made it.
	var mediaIDs []string
	for _, imageURL := range sp.Images {
		mediaID, err := p.uploadPhoto(ctx, page, imageURL)
		if err != nil {
			p.logger.Warn("Skipping image after upload failure", "post_id", sp.ID, "url", imageURL, "error", err)
			continue
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	externalID, err := p.createScheduledFeedPost(ctx, page, sp, mediaIDs)
	if err != nil {
		return p.fail(ctx, sp, err)
	}

	return p.succeed(ctx, sp, externalID)
}

func (p *FacebookImpl) uploadPhoto(ctx context.Context, page *domain.FacebookPage, imageURL string) (string, error) {
	data, err := p.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("source", "image")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := form.WriteField("access_token", page.AccessToken); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	if err := p.limiter.Wait(ctx, page.PageID); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/%s/photos", p.cfg.Facebook.GraphURL, p.cfg.Facebook.APIVersion, page.PageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("facebook photo upload: %s", graphErrorMessage(body, resp.Status))
	}

	var out idResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("facebook photo upload returned no media id")
	}
	return out.ID, nil
}

type attachedMedia struct {
	MediaFBID string `json:"media_fbid"`
}

type feedPostRequest struct {
	Message              string          `json:"message"`
	Published            bool            `json:"published"`
	ScheduledPublishTime int64           `json:"scheduled_publish_time"`
	AccessToken          string          `json:"access_token"`
	AttachedMedia        []attachedMedia `json:"attached_media,omitempty"`
}

func (p *FacebookImpl) createScheduledFeedPost(ctx context.Context, page *domain.FacebookPage, sp *domain.ScheduledPost, mediaIDs []string) (string, error) {
	payload := feedPostRequest{
		Message:              sp.Content,
		Published:            false,
		ScheduledPublishTime: sp.ScheduledTime.UTC().Unix(),
		AccessToken:          page.AccessToken,
	}
	for _, id := range mediaIDs {
		payload.AttachedMedia = append(payload.AttachedMedia, attachedMedia{MediaFBID: id})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	if err := p.limiter.Wait(ctx, page.PageID); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/%s/feed", p.cfg.Facebook.GraphURL, p.cfg.Facebook.APIVersion, page.PageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("facebook feed post: %s", graphErrorMessage(body, resp.Status))
	}

	var out idResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("facebook feed post returned no post id")
	}
	return out.ID, nil
}
