package publisherimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	mock_linkedinaccount "github.com/orgball2608/social-post-scheduler/internal/repositories/linkedinaccount/mocks"
	mock_post "github.com/orgball2608/social-post-scheduler/internal/repositories/post/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func newLinkedInForTest(t *testing.T, serverURL string, posts *mock_post.MockRepository, accounts *mock_linkedinaccount.MockRepository) *LinkedInImpl {
	t.Helper()
	log := testLogger()
	return &LinkedInImpl{
		finalizer: finalizer{posts: posts, logger: log},
		cfg:       testConfig(serverURL),
		accounts:  accounts,
		fetcher:   staticFetcher([]byte("jpeg")),
		limiter:   noopLimiter{},
		client:    http.DefaultClient,
		logger:    log,
	}
}

func linkedinTestPost(images ...string) *domain.ScheduledPost {
	return &domain.ScheduledPost{
		ID:            13,
		UserID:        "user-1",
		Platform:      domain.PlatformLinkedIn,
		AccountID:     "person-1",
		Content:       "a professional update",
		Images:        images,
		ScheduledTime: time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC),
		Status:        domain.StatusScheduled,
	}
}

func registerUploadBodyFor(uploadURL, asset string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"value": map[string]any{
			"uploadMechanism": map[string]any{
				uploadMechanismKey: map[string]string{"uploadUrl": uploadURL},
			},
			"asset": asset,
		},
	})
	return raw
}

func TestLinkedInPublish(t *testing.T) {
	account := &domain.LinkedInAccount{AccountID: "person-1", UserID: "user-1", AccessToken: "li-token", IsConnected: true}

	t.Run("uploads asset and creates image share", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var ugcReq ugcPostRequest
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/v2/assets", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "registerUpload", r.URL.Query().Get("action"))
			assert.Equal(t, restliProtocolV2, r.Header.Get(restliProtocolHeader))
			assert.Equal(t, "Bearer li-token", r.Header.Get("Authorization"))

			var reg registerUploadRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
			assert.Equal(t, "urn:li:person:person-1", reg.RegisterUploadRequest.Owner)
			assert.Equal(t, []string{feedShareImageRecipe}, reg.RegisterUploadRequest.Recipes)

			w.Write(registerUploadBodyFor(srv.URL+"/upload", "urn:li:digitalmediaAsset:abc"))
		})
		mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
		})
		mux.HandleFunc("/v2/ugcPosts", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ugcReq))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(idResponse{ID: "urn:li:share:123"})
		})

		posts := mock_post.NewMockRepository(ctrl)
		accounts := mock_linkedinaccount.NewMockRepository(ctrl)

		accounts.EXPECT().GetByAccountID(gomock.Any(), "person-1", "user-1").Return(account, nil)
		posts.EXPECT().MarkPublished(gomock.Any(), int64(13), "urn:li:share:123", gomock.Any()).Return(nil)

		pub := newLinkedInForTest(t, srv.URL, posts, accounts)
		result := pub.Publish(context.Background(), linkedinTestPost("https://img/one.jpg"))

		assert.True(t, result.Success)
		assert.Equal(t, "urn:li:share:123", result.ExternalID)
		assert.Equal(t, "urn:li:person:person-1", ugcReq.Author)
		assert.Equal(t, "PUBLISHED", ugcReq.LifecycleState)

		content := ugcReq.SpecificContent[shareContentKey]
		assert.Equal(t, "a professional update", content.ShareCommentary.Text)
		assert.Equal(t, "IMAGE", content.ShareMediaCategory)
		require.Len(t, content.Media, 1)
		assert.Equal(t, "urn:li:digitalmediaAsset:abc", content.Media[0].Media)
		assert.Equal(t, "PUBLIC", ugcReq.Visibility[memberVisibilityKey])
	})

	t.Run("failed asset upload degrades to a text share", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var ugcReq ugcPostRequest
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/v2/assets", func(w http.ResponseWriter, r *http.Request) {
			w.Write(registerUploadBodyFor(srv.URL+"/upload", "urn:li:digitalmediaAsset:abc"))
		})
		mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		mux.HandleFunc("/v2/ugcPosts", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ugcReq))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(idResponse{ID: "urn:li:share:124"})
		})

		posts := mock_post.NewMockRepository(ctrl)
		accounts := mock_linkedinaccount.NewMockRepository(ctrl)

		accounts.EXPECT().GetByAccountID(gomock.Any(), "person-1", "user-1").Return(account, nil)
		posts.EXPECT().MarkPublished(gomock.Any(), int64(13), "urn:li:share:124", gomock.Any()).Return(nil)

		pub := newLinkedInForTest(t, srv.URL, posts, accounts)
		result := pub.Publish(context.Background(), linkedinTestPost("https://img/one.jpg"))

		assert.True(t, result.Success)
		content := ugcReq.SpecificContent[shareContentKey]
		assert.Equal(t, "NONE", content.ShareMediaCategory)
		assert.Empty(t, content.Media)
	})

	t.Run("non-201 from ugcPosts marks the post failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Invalid access token","status":401}`)
		}))
		defer srv.Close()

		posts := mock_post.NewMockRepository(ctrl)
		accounts := mock_linkedinaccount.NewMockRepository(ctrl)

		accounts.EXPECT().GetByAccountID(gomock.Any(), "person-1", "user-1").Return(account, nil)
		posts.EXPECT().MarkFailed(gomock.Any(), int64(13), gomock.Any()).Return(nil)

		pub := newLinkedInForTest(t, srv.URL, posts, accounts)
		result := pub.Publish(context.Background(), linkedinTestPost())

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "status 401")
	})
}
