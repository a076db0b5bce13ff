package publisherimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/media"
	"github.com/orgball2608/social-post-scheduler/internal/publisher"
	"github.com/orgball2608/social-post-scheduler/internal/ratelimit"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/linkedinaccount"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"go.uber.org/fx"
)

const (
	feedShareImageRecipe = "urn:li:digitalmediaRecipe:feedshare-image"
	uploadMechanismKey   = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"
	shareContentKey      = "com.linkedin.ugc.ShareContent"
	memberVisibilityKey  = "com.linkedin.ugc.MemberNetworkVisibility"
	restliProtocolHeader = "X-Restli-Protocol-Version"
	restliProtocolV2     = "2.0.0"
)

type LinkedInOpts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Posts    post.Repository
	Accounts linkedinaccount.Repository
	Fetcher  media.Fetcher
	Limiter  ratelimit.Limiter
	Client   *http.Client
}

// LinkedInImpl publishes UGC posts. Each image goes through the
// register-then-upload asset handshake before the final share references it.
type LinkedInImpl struct {
	finalizer
	cfg      *config.Config
	accounts linkedinaccount.Repository
	fetcher  media.Fetcher
	limiter  ratelimit.Limiter
	client   *http.Client
	logger   logger.Logger
}

func NewLinkedIn(opts LinkedInOpts) *LinkedInImpl {
	log := opts.Logger.WithComponent("LinkedInPublisher")
	return &LinkedInImpl{
		finalizer: finalizer{posts: opts.Posts, logger: log},
		cfg:       opts.Config,
		accounts:  opts.Accounts,
		fetcher:   opts.Fetcher,
		limiter:   opts.Limiter,
		client:    opts.Client,
		logger:    log,
	}
}

var _ publisher.Publisher = (*LinkedInImpl)(nil)

func (p *LinkedInImpl) Platform() domain.Platform { return domain.PlatformLinkedIn }

func (p *LinkedInImpl) Publish(ctx context.Context, sp *domain.ScheduledPost) domain.PublishResult {
	p.logger.Info("Publishing linkedin post", "post_id", sp.ID, "account_id", sp.AccountID)

	account, err := p.accounts.GetByAccountID(ctx, sp.AccountID, sp.UserID)
	if err != nil {
		return p.fail(ctx, sp, fmt.Errorf("linkedin account lookup: %w", err))
	}

	// Per-image tolerance mirrors the facebook publisher: a failed asset
	// upload is skipped, not fatal.
	var assets []string
	for _, imageURL := range sp.Images {
		asset, err := p.uploadImageAsset(ctx, account, sp.AccountID, imageURL)
		if err != nil {
			p.logger.Warn("Skipping image after upload failure", "post_id", sp.ID, "url", imageURL, "error", err)
			continue
		}
		assets = append(assets, asset)
	}

	externalID, err := p.createUGCPost(ctx, account, sp, assets)
	if err != nil {
		return p.fail(ctx, sp, err)
	}

	return p.succeed(ctx, sp, externalID)
}

type registerUploadRequest struct {
	RegisterUploadRequest registerUploadBody `json:"registerUploadRequest"`
}

type registerUploadBody struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type registerUploadResponse struct {
	Value struct {
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
		Asset string `json:"asset"`
	} `json:"value"`
}

func (p *LinkedInImpl) uploadImageAsset(ctx context.Context, account *domain.LinkedInAccount, personID, imageURL string) (string, error) {
	data, err := p.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}

	uploadURL, asset, err := p.registerUpload(ctx, account, personID)
	if err != nil {
		return "", err
	}

	if err := p.limiter.Wait(ctx, personID); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// LinkedIn acknowledges a stored asset with 201 and nothing else.
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("linkedin asset upload returned status %d", resp.StatusCode)
	}

	return asset, nil
}

func (p *LinkedInImpl) registerUpload(ctx context.Context, account *domain.LinkedInAccount, personID string) (uploadURL, asset string, err error) {
	payload := registerUploadRequest{
		RegisterUploadRequest: registerUploadBody{
			Recipes: []string{feedShareImageRecipe},
			Owner:   "urn:li:person:" + personID,
			ServiceRelationships: []serviceRelationship{
				{RelationshipType: "OWNER", Identifier: "urn:li:userGeneratedContent"},
			},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	if err := p.limiter.Wait(ctx, personID); err != nil {
		return "", "", err
	}

	endpoint := fmt.Sprintf("%s/%s/assets?action=registerUpload", p.cfg.LinkedIn.APIURL, p.cfg.LinkedIn.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(restliProtocolHeader, restliProtocolV2)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", "", fmt.Errorf("linkedin register upload returned status %d", resp.StatusCode)
	}

	var out registerUploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", "", err
	}
	mechanism, ok := out.Value.UploadMechanism[uploadMechanismKey]
	if !ok || mechanism.UploadURL == "" || out.Value.Asset == "" {
		return "", "", fmt.Errorf("linkedin register upload response missing upload mechanism")
	}

	return mechanism.UploadURL, out.Value.Asset, nil
}

type textValue struct {
	Text string `json:"text"`
}

type shareMedia struct {
	Status      string    `json:"status"`
	Description textValue `json:"description"`
	Media       string    `json:"media"`
	Title       textValue `json:"title"`
}

type shareContent struct {
	ShareCommentary    textValue    `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []shareMedia `json:"media,omitempty"`
}

type ugcPostRequest struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

func (p *LinkedInImpl) createUGCPost(ctx context.Context, account *domain.LinkedInAccount, sp *domain.ScheduledPost, assets []string) (string, error) {
	content := shareContent{
		ShareCommentary:    textValue{Text: sp.Content},
		ShareMediaCategory: "NONE",
	}
	if len(assets) > 0 {
		content.ShareMediaCategory = "IMAGE"
		for _, asset := range assets {
			content.Media = append(content.Media, shareMedia{
				Status:      "READY",
				Description: textValue{Text: "Image"},
				Media:       asset,
				Title:       textValue{Text: "Image"},
			})
		}
	}

	payload := ugcPostRequest{
		Author:          "urn:li:person:" + sp.AccountID,
		LifecycleState:  "PUBLISHED",
		SpecificContent: map[string]shareContent{shareContentKey: content},
		Visibility:      map[string]string{memberVisibilityKey: "PUBLIC"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	if err := p.limiter.Wait(ctx, sp.AccountID); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/ugcPosts", p.cfg.LinkedIn.APIURL, p.cfg.LinkedIn.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(restliProtocolHeader, restliProtocolV2)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("linkedin ugc post returned status %d", resp.StatusCode)
	}

	var out idResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("linkedin ugc post returned no post id")
	}
	return out.ID, nil
}
