package github

import (
	"context"
	"io"
	"net/http"

	"github.com/devscaffold/scafsync/internal/port"
)

// Fetcher fetches raw blobs by URL.
type Fetcher struct {
	client *Client
}

// Ensure Fetcher implements port.BlobFetcher
var _ port.BlobFetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads one blob. Transfers are binary-safe: the body is
// returned unmodified whatever the content type. A network-layer failure
// returns a non-nil error and no status; any received response, success or
// not, returns its status for the caller to classify.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.blobClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return data, resp.StatusCode, nil
}
