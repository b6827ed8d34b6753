package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/devscaffold/scafsync/internal/domain"
)

// Get returns the ledger entry for a path at a revision, or nil if none
// has been recorded.
func (s *Store) Get(path, revision string) (*domain.LedgerEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, path, revision, size, fetched_at
		 FROM fetched_files WHERE path = ? AND revision = ?`,
		path, revision,
	)

	var entry domain.LedgerEntry
	err := row.Scan(&entry.ID, &entry.Path, &entry.Revision, &entry.Size, &entry.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return &entry, nil
}

// Record inserts or replaces the entry for its path and revision
func (s *Store) Record(entry *domain.LedgerEntry) error {
	if entry == nil {
		return fmt.Errorf("ledger entry cannot be nil")
	}

	_, err := s.db.Exec(
		`INSERT INTO fetched_files (path, revision, size, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path, revision) DO UPDATE SET
			size = excluded.size,
			fetched_at = excluded.fetched_at`,
		entry.Path, entry.Revision, entry.Size, entry.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

// Prune deletes entries older than the given age
func (s *Store) Prune(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.Exec(
		`DELETE FROM fetched_files WHERE fetched_at < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune ledger: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}
