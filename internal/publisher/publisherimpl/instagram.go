package publisherimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/publisher"
	"github.com/orgball2608/social-post-scheduler/internal/ratelimit"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/instagramaccount"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"go.uber.org/fx"
)

type InstagramOpts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Posts    post.Repository
	Accounts instagramaccount.Repository
	Limiter  ratelimit.Limiter
	Client   *http.Client
}

// InstagramImpl publishes through the Graph container protocol: create a
// media container, then publish it by creation id. Both phases run
// synchronously when the post comes due; Instagram offers no platform-side
// delayed publish here.
type InstagramImpl struct {
	finalizer
	cfg      *config.Config
	accounts instagramaccount.Repository
	limiter  ratelimit.Limiter
	client   *http.Client
	logger   logger.Logger
}

func NewInstagram(opts InstagramOpts) *InstagramImpl {
	log := opts.Logger.WithComponent("InstagramPublisher")
	return &InstagramImpl{
		finalizer: finalizer{posts: opts.Posts, logger: log},
		cfg:       opts.Config,
		accounts:  opts.Accounts,
		limiter:   opts.Limiter,
		client:    opts.Client,
		logger:    log,
	}
}

var _ publisher.Publisher = (*InstagramImpl)(nil)

func (p *InstagramImpl) Platform() domain.Platform { return domain.PlatformInstagram }

func (p *InstagramImpl) Publish(ctx context.Context, sp *domain.ScheduledPost) domain.PublishResult {
	p.logger.Info("Publishing instagram post", "post_id", sp.ID, "account_id", sp.AccountID)

	account, err := p.accounts.GetByAccountID(ctx, sp.AccountID, sp.UserID)
	if err != nil {
		return p.fail(ctx, sp, fmt.Errorf("instagram account lookup: %w", err))
	}

	// Instagram requires an image; posts scheduled without one fall back to
	// the configured default.
	imageURL := p.cfg.Instagram.DefaultImage
	if len(sp.Images) > 0 {
		imageURL = sp.Images[0]
	}

	containerID, err := p.createMediaContainer(ctx, account, imageURL, sp.Content)
	if err != nil {
		return p.fail(ctx, sp, err)
	}
	p.logger.Info("Media container created", "post_id", sp.ID, "container_id", containerID)

	externalID, err := p.publishMediaContainer(ctx, account, containerID)
	if err != nil {
		return p.fail(ctx, sp, err)
	}

	return p.succeed(ctx, sp, externalID)
}

type mediaContainerRequest struct {
	ImageURL    string `json:"image_url"`
	Caption     string `json:"caption"`
	AccessToken string `json:"access_token"`
}

func (p *InstagramImpl) createMediaContainer(ctx context.Context, account *domain.InstagramAccount, imageURL, caption string) (string, error) {
	payload := mediaContainerRequest{
		ImageURL:    imageURL,
		Caption:     caption,
		AccessToken: account.PageAccessToken,
	}

	endpoint := fmt.Sprintf("%s/%s/%s/media", p.cfg.Instagram.GraphURL, p.cfg.Instagram.APIVersion, account.AccountID)
	id, err := p.postGraph(ctx, account.AccountID, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("instagram media container: %w", err)
	}
	return id, nil
}

type mediaPublishRequest struct {
	CreationID  string `json:"creation_id"`
	AccessToken string `json:"access_token"`
}

func (p *InstagramImpl) publishMediaContainer(ctx context.Context, account *domain.InstagramAccount, containerID string) (string, error) {
	payload := mediaPublishRequest{
		CreationID:  containerID,
		AccessToken: account.PageAccessToken,
	}

	endpoint := fmt.Sprintf("%s/%s/%s/media_publish", p.cfg.Instagram.GraphURL, p.cfg.Instagram.APIVersion, account.AccountID)
	id, err := p.postGraph(ctx, account.AccountID, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("instagram media publish: %w", err)
	}
	return id, nil
}

func (p *InstagramImpl) postGraph(ctx context.Context, accountID, endpoint string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	if err := p.limiter.Wait(ctx, accountID); err != nil {
		return "", err
	}

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
		return "", fmt.Errorf("%s", graphErrorMessage(body, resp.Status))
	}

	var out idResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("response carried no id")
	}
	return out.ID, nil
}
