package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/devscaffold/scafsync/internal/domain"
	"github.com/devscaffold/scafsync/internal/fetch"
	"github.com/devscaffold/scafsync/internal/port"
)

// Lister lists repository subtrees via the git trees API.
type Lister struct {
	client  *Client
	retrier *fetch.Retrier
}

// Ensure Lister implements port.RepoLister
var _ port.RepoLister = (*Lister)(nil)

// NewLister creates a Lister. The listing request is retried with the
// given budget but never deadline-guarded; the API client's own timeout
// bounds each attempt.
func NewLister(client *Client, tryLimits int) *Lister {
	if tryLimits < 1 {
		tryLimits = 3
	}
	return &Lister{
		client:  client,
		retrier: fetch.NewRetrier(tryLimits, nil),
	}
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []treeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// List fetches the recursive tree of coord.Ref in one call and filters it
// to the files strictly under coord.Dir. Directories are not returned;
// they are reconstructed from file paths downstream. Blob URLs are built
// against the listing's commit SHA so a listing and its fetches always see
// the same revision.
func (l *Lister) List(ctx context.Context, coord domain.RepoCoordinate) (*domain.Listing, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		l.client.apiBase, coord.Owner, coord.Repo, coord.Ref)

	body, err := l.retrier.Do(ctx, url, func(ctx context.Context) ([]byte, int, error) {
		req, err := l.client.newAPIRequest("GET", url)
		if err != nil {
			return nil, 0, err
		}
		resp, err := l.client.apiClient.Do(req.WithContext(ctx))
		if err != nil {
			return nil, 0, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, 0, err
		}
		return data, resp.StatusCode, nil
	})
	if err != nil {
		return nil, err
	}

	var tree treeResponse
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse tree listing: %w", err)
	}
	if tree.Truncated {
		return nil, domain.ErrTruncatedListing
	}

	prefix := ""
	if coord.Dir != "" {
		prefix = strings.Trim(coord.Dir, "/") + "/"
	}

	listing := &domain.Listing{Revision: tree.SHA}
	for _, entry := range tree.Tree {
		if entry.Type == "tree" {
			continue
		}
		if prefix != "" && !strings.HasPrefix(entry.Path, prefix) {
			continue
		}
		listing.Items = append(listing.Items, domain.RemoteItem{
			Path: strings.TrimPrefix(entry.Path, prefix),
			URL: fmt.Sprintf("%s/%s/%s/%s/%s",
				l.client.rawBase, coord.Owner, coord.Repo, tree.SHA, entry.Path),
		})
	}

	return listing, nil
}
