package publisherimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/social-post-scheduler/pkg/config"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(logger.Opts{Env: "test"})
}

// testConfig points every platform base URL at the given test server.
func testConfig(serverURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Facebook.APIVersion = "v19.0"
	cfg.Facebook.GraphURL = serverURL
	cfg.Instagram.APIVersion = "v12.0"
	cfg.Instagram.GraphURL = serverURL
	cfg.Instagram.DefaultImage = "https://example.com/default.jpg"
	cfg.LinkedIn.APIVersion = "v2"
	cfg.LinkedIn.APIURL = serverURL
	return cfg
}

type fetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

func staticFetcher(data []byte) fetcherFunc {
	return func(context.Context, string) ([]byte, error) {
		return data, nil
	}
}

func failingFetcher(badURL string, data []byte) fetcherFunc {
	return func(_ context.Context, url string) ([]byte, error) {
		if url == badURL {
			return nil, fmt.Errorf("fetch image: connection refused")
		}
		return data, nil
	}
}

type noopLimiter struct{}

func (noopLimiter) Wait(context.Context, string) error { return nil }
