package port

import (
	"time"

	"github.com/devscaffold/scafsync/internal/domain"
)

// LedgerRepository persists records of successfully materialized files so
// later runs against the same revision can skip work already done.
type LedgerRepository interface {
	// Get returns the entry for a path at a revision, or nil if absent.
	Get(path, revision string) (*domain.LedgerEntry, error)

	// Record inserts or replaces the entry for its path and revision.
	Record(entry *domain.LedgerEntry) error

	// Prune deletes entries older than the given age and returns the
	// number removed.
	Prune(olderThan time.Duration) (int, error)
}
