package publisherimpl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/facebookpage"
	mock_facebookpage "github.com/orgball2608/social-post-scheduler/internal/repositories/facebookpage/mocks"
	mock_post "github.com/orgball2608/social-post-scheduler/internal/repositories/post/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func newFacebookForTest(t *testing.T, serverURL string, posts *mock_post.MockRepository, pages *mock_facebookpage.MockRepository, fetch fetcherFunc) *FacebookImpl {
	t.Helper()
	log := testLogger()
	return &FacebookImpl{
		finalizer: finalizer{posts: posts, logger: log},
		cfg:       testConfig(serverURL),
		pages:     pages,
		fetcher:   fetch,
		limiter:   noopLimiter{},
		client:    http.DefaultClient,
		logger:    log,
	}
}

func facebookTestPost(images ...string) *domain.ScheduledPost {
	return &domain.ScheduledPost{
		ID:            42,
		UserID:        "user-1",
		Platform:      domain.PlatformFacebook,
		AccountID:     "page-1",
		Content:       "hello from the scheduler",
		Images:        images,
		ScheduledTime: time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC),
		Status:        domain.StatusScheduled,
	}
}

func TestFacebookPublish(t *testing.T) {
	page := &domain.FacebookPage{PageID: "page-1", UserID: "user-1", AccessToken: "page-token", IsConnected: true}

	t.Run("skips broken image and attaches the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var feedBody feedPostRequest
		photoUploads := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/photos"):
				photoUploads++
				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "page-token", r.FormValue("access_token"))
				_, _, err := r.FormFile("source")
				assert.NoError(t, err)
				json.NewEncoder(w).Encode(idResponse{ID: "media-1"})
			case strings.HasSuffix(r.URL.Path, "/feed"):
				require.NoError(t, json.NewDecoder(r.Body).Decode(&feedBody))
				json.NewEncoder(w).Encode(idResponse{ID: "post-99"})
			default:
				t.Fatalf("unexpected request to %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		posts := mock_post.NewMockRepository(ctrl)
		pages := mock_facebookpage.NewMockRepository(ctrl)
		sp := facebookTestPost("https://img/ok.jpg", "https://img/broken.jpg")

		pages.EXPECT().GetByPageID(gomock.Any(), "page-1", "user-1").Return(page, nil)
		posts.EXPECT().MarkPublished(gomock.Any(), int64(42), "post-99", gomock.Any()).Return(nil)

		pub := newFacebookForTest(t, srv.URL, posts, pages, failingFetcher("https://img/broken.jpg", []byte("jpeg")))
		result := pub.Publish(context.Background(), sp)

		assert.True(t, result.Success)
		assert.Equal(t, "post-99", result.ExternalID)
		assert.Equal(t, 1, photoUploads)
		require.Len(t, feedBody.AttachedMedia, 1)
		assert.Equal(t, "media-1", feedBody.AttachedMedia[0].MediaFBID)
		assert.False(t, feedBody.Published)
		assert.Equal(t, sp.ScheduledTime.Unix(), feedBody.ScheduledPublishTime)
		assert.Equal(t, sp.Content, feedBody.Message)
	})

	t.Run("text-only post omits attached_media", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var rawFeed map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.True(t, strings.HasSuffix(r.URL.Path, "/feed"), "only the feed endpoint should be hit")
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &rawFeed))
			json.NewEncoder(w).Encode(idResponse{ID: "post-100"})
		}))
		defer srv.Close()

		posts := mock_post.NewMockRepository(ctrl)
		pages := mock_facebookpage.NewMockRepository(ctrl)

		pages.EXPECT().GetByPageID(gomock.Any(), "page-1", "user-1").Return(page, nil)
		posts.EXPECT().MarkPublished(gomock.Any(), int64(42), "post-100", gomock.Any()).Return(nil)

		pub := newFacebookForTest(t, srv.URL, posts, pages, staticFetcher([]byte("jpeg")))
		result := pub.Publish(context.Background(), facebookTestPost())

		assert.True(t, result.Success)
		assert.NotContains(t, rawFeed, "attached_media")
	})

	t.Run("graph error on feed post marks the post failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"message":"Invalid scheduled publish time","type":"OAuthException","code":100}}`)
		}))
		defer srv.Close()

		posts := mock_post.NewMockRepository(ctrl)
		pages := mock_facebookpage.NewMockRepository(ctrl)

		pages.EXPECT().GetByPageID(gomock.Any(), "page-1", "user-1").Return(page, nil)
		posts.EXPECT().MarkFailed(gomock.Any(), int64(42), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, msg string) error {
				assert.Contains(t, msg, "Invalid scheduled publish time")
				return nil
			})

		pub := newFacebookForTest(t, srv.URL, posts, pages, staticFetcher([]byte("jpeg")))
		result := pub.Publish(context.Background(), facebookTestPost())

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "Invalid scheduled publish time")
	})

	t.Run("missing page connection fails without touching the API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("unexpected request to %s", r.URL.Path)
		}))
		defer srv.Close()

		posts := mock_post.NewMockRepository(ctrl)
		pages := mock_facebookpage.NewMockRepository(ctrl)

		pages.EXPECT().GetByPageID(gomock.Any(), "page-1", "user-1").Return(nil, facebookpage.ErrNotFound)
		posts.EXPECT().MarkFailed(gomock.Any(), int64(42), gomock.Any()).Return(nil)

		pub := newFacebookForTest(t, srv.URL, posts, pages, staticFetcher([]byte("jpeg")))
		result := pub.Publish(context.Background(), facebookTestPost("https://img/ok.jpg"))

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "facebook page lookup")
	})
}
