package publisherimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	mock_post "github.com/orgball2608/social-post-scheduler/internal/repositories/post/mocks"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestFinalizer(t *testing.T) {
	sp := &domain.ScheduledPost{
		ID:            21,
		Platform:      domain.PlatformFacebook,
		Status:        domain.StatusScheduled,
		ScheduledTime: time.Now().UTC().Add(-time.Minute),
	}

	t.Run("succeed records the external id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		posts := mock_post.NewMockRepository(ctrl)
		posts.EXPECT().MarkPublished(gomock.Any(), int64(21), "ext-1", gomock.Any()).Return(nil)

		f := finalizer{posts: posts, logger: testLogger()}
		result := f.succeed(context.Background(), sp, "ext-1")

		assert.True(t, result.Success)
		assert.Equal(t, "ext-1", result.ExternalID)
	})

	t.Run("succeed tolerates a lost finalize race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// Another tick already finalized the row. The publish did happen, so
		// the result is still a success; the write is just a no-op.
		posts := mock_post.NewMockRepository(ctrl)
		posts.EXPECT().MarkPublished(gomock.Any(), int64(21), "ext-1", gomock.Any()).Return(post.ErrAlreadyFinalized)

		f := finalizer{posts: posts, logger: testLogger()}
		result := f.succeed(context.Background(), sp, "ext-1")

		assert.True(t, result.Success)
	})

	t.Run("fail records the reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		posts := mock_post.NewMockRepository(ctrl)
		posts.EXPECT().MarkFailed(gomock.Any(), int64(21), "token expired").Return(nil)

		f := finalizer{posts: posts, logger: testLogger()}
		result := f.fail(context.Background(), sp, errors.New("token expired"))

		assert.False(t, result.Success)
		assert.Equal(t, "token expired", result.Error)
	})
}

func TestGraphErrorMessage(t *testing.T) {
	body := []byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`)
	assert.Equal(t, "Invalid OAuth access token", graphErrorMessage(body, "400 Bad Request"))

	assert.Equal(t, "500 Internal Server Error", graphErrorMessage([]byte("<html>"), "500 Internal Server Error"))
	assert.Equal(t, "400 Bad Request", graphErrorMessage([]byte(`{}`), "400 Bad Request"))
}
