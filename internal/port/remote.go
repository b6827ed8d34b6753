package port

import (
	"context"

	"github.com/devscaffold/scafsync/internal/domain"
)

// RepoLister lists all files under a repository subdirectory in one
// recursive call.
type RepoLister interface {
	// List resolves the coordinate to a revision and the files under it.
	// Paths in the result are relative to coord.Dir and use forward
	// slashes.
	List(ctx context.Context, coord domain.RepoCoordinate) (*domain.Listing, error)
}

// BlobFetcher fetches one remote blob by URL.
type BlobFetcher interface {
	// Fetch returns the response body and status code. A network-layer
	// failure returns a non-nil error and no status; a response with any
	// status (success or not) returns err == nil and lets the caller
	// classify the code.
	Fetch(ctx context.Context, url string) (data []byte, status int, err error)
}
