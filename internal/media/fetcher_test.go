package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"github.com/orgball2608/social-post-scheduler/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFetcherForTest() *HTTPFetcher {
	f := NewHTTPFetcher(http.DefaultClient, logger.New(logger.Opts{Env: "test"}))
	f.retryCfg = retry.Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      1.5,
	}
	return f
}

func TestFetch(t *testing.T) {
	t.Run("retries transient failures and returns the body", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte("image-bytes"))
		}))
		defer srv.Close()

		data, err := newFetcherForTest().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newFetcherForTest().Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch image")
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("rejects oversized images", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, maxImageBytes+1))
		}))
		defer srv.Close()

		_, err := newFetcherForTest().Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})
}
