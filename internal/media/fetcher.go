package media

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"github.com/orgball2608/social-post-scheduler/pkg/retry"
)

// Image downloads are capped so a misbehaving source cannot exhaust memory.
const maxImageBytes = 20 << 20

// Fetcher downloads image bytes from a source URL at publish time.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type HTTPFetcher struct {
	client   *http.Client
	logger   logger.Logger
	retryCfg retry.Config
}

func NewHTTPFetcher(client *http.Client, log logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:   client,
		logger:   log.WithComponent("MediaFetcher"),
		retryCfg: retry.DefaultConfig(),
	}
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Fetch downloads the image, retrying transient failures with backoff.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte

	err := retry.Do(ctx, f.logger, "fetch image", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("failed to fetch image: %s", resp.Status)
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
		if err != nil {
			return err
		}
		if len(data) > maxImageBytes {
			return fmt.Errorf("image at %s exceeds %d bytes", url, maxImageBytes)
		}
		return nil
	}, f.retryCfg)
	if err != nil {
		return nil, err
	}

	return data, nil
}
