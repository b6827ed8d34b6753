package domain

import "time"

// RepoCoordinate identifies a subtree of a remote repository.
type RepoCoordinate struct {
	Owner string
	Repo  string
	Ref   string
	Dir   string
}

// String returns the coordinate in owner/repo@ref:dir form
func (c RepoCoordinate) String() string {
	s := c.Owner + "/" + c.Repo + "@" + c.Ref
	if c.Dir != "" {
		s += ":" + c.Dir
	}
	return s
}

// RemoteItem is one fetchable file discovered by a listing. Path is
// relative to the listed subdirectory and uses forward slashes; URL is the
// content-addressed location of the blob.
type RemoteItem struct {
	Path string
	URL  string
}

// Listing is the result of one recursive remote listing: the files under
// the requested subdirectory plus the commit revision they were resolved
// against.
type Listing struct {
	Revision string
	Items    []RemoteItem
}

// LedgerEntry records one successfully materialized file.
type LedgerEntry struct {
	ID        int64
	Path      string
	Revision  string
	Size      int64
	FetchedAt time.Time
}
