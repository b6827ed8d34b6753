package fetch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/devscaffold/scafsync/internal/domain"
	"github.com/devscaffold/scafsync/internal/port"
	"go.uber.org/zap"
)

// Config contains materializer configuration
type Config struct {
	Concurrency int
	TryLimits   int
	Timeout     time.Duration
	Force       bool
}

// DefaultConfig returns default materializer configuration
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 3,
		TryLimits:   3,
	}
}

// Materializer fetches the files of a remote listing and writes them under
// a local destination, with bounded concurrency and per-fetch retry.
type Materializer struct {
	config  *Config
	lister  port.RepoLister
	fetcher port.BlobFetcher
	fs      port.FileSystem
	ledger  port.LedgerRepository
	logger  *zap.Logger
	retrier *Retrier
	limiter *Limiter
}

// New creates a Materializer. The ledger is optional; pass nil to fetch
// unconditionally.
func New(
	cfg *Config,
	lister port.RepoLister,
	fetcher port.BlobFetcher,
	fs port.FileSystem,
	ledger port.LedgerRepository,
	logger *zap.Logger,
) *Materializer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 3
	}
	if cfg.TryLimits < 1 {
		cfg.TryLimits = 3
	}

	return &Materializer{
		config:  cfg,
		lister:  lister,
		fetcher: fetcher,
		fs:      fs,
		ledger:  ledger,
		logger:  logger,
		retrier: NewRetrier(cfg.TryLimits, nil),
		limiter: NewLimiter(cfg.Concurrency),
	}
}

// FetchAndWriteAll lists the files under coord and materializes every one
// of them under the destination. It fails with the first fetch that
// exhausts its retry budget; files already written by then are left on
// disk, so a failed run leaves the destination in an indeterminate partial
// state.
func (m *Materializer) FetchAndWriteAll(ctx context.Context, coord domain.RepoCoordinate) error {
	_, err := m.run(ctx, coord)
	return err
}

// FetchAndBuildTree materializes like FetchAndWriteAll and additionally
// returns a tree description of what was written: the children of an
// implicit root named after the destination directory. The tree is built
// in a sequential pass over the completed paths after the concurrent phase
// finishes, so its shape never depends on completion order.
func (m *Materializer) FetchAndBuildTree(ctx context.Context, coord domain.RepoCoordinate) ([]*domain.TreeNode, error) {
	completed, err := m.run(ctx, coord)
	if err != nil {
		return nil, err
	}
	root := domain.BuildTree(m.fs.DisplayName(), completed)
	return root.Children, nil
}

// run drives the concurrent fetch phase and returns the destination-
// relative paths (local separators) of every materialized file.
func (m *Materializer) run(ctx context.Context, coord domain.RepoCoordinate) ([]string, error) {
	start := time.Now()

	listing, err := m.lister.List(ctx, coord)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", coord, err)
	}

	m.logger.Info("starting materialization",
		zap.String("source", coord.String()),
		zap.String("revision", listing.Revision),
		zap.Int("files", len(listing.Items)),
		zap.Int("concurrency", m.config.Concurrency),
		zap.Int("try_limits", m.config.TryLimits))

	// Indexed by listing position: every slot is filled on a successful
	// run, so the sequential tree fold sees listing order no matter which
	// fetches finished first.
	completed := make([]string, len(listing.Items))

	err = m.limiter.Run(ctx, len(listing.Items), func(ctx context.Context, i int) error {
		item := listing.Items[i]
		relPath := filepath.FromSlash(item.Path)

		if m.skippable(item, listing.Revision, relPath) {
			m.logger.Debug("already materialized, skipping",
				zap.String("path", item.Path),
				zap.String("revision", listing.Revision))
			completed[i] = relPath
			return nil
		}

		if err := m.fetchOne(ctx, item, listing.Revision, relPath); err != nil {
			m.logger.Error("fetch failed",
				zap.String("path", item.Path),
				zap.Error(err))
			return err
		}

		completed[i] = relPath
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("materialization completed",
		zap.Int("files", len(completed)),
		zap.Duration("duration", time.Since(start)))

	return completed, nil
}

// skippable reports whether a file was already materialized at this
// revision and is still on disk.
func (m *Materializer) skippable(item domain.RemoteItem, revision, relPath string) bool {
	if m.ledger == nil || m.config.Force {
		return false
	}
	entry, err := m.ledger.Get(item.Path, revision)
	if err != nil {
		m.logger.Warn("ledger lookup failed",
			zap.String("path", item.Path),
			zap.Error(err))
		return false
	}
	return entry != nil && m.fs.FileExists(m.fs.DestPath(relPath))
}

// fetchOne performs one logical fetch: the full retry sequence under a
// single optional deadline, then the write and the ledger record.
func (m *Materializer) fetchOne(ctx context.Context, item domain.RemoteItem, revision, relPath string) error {
	attempt := func(ctx context.Context) ([]byte, int, error) {
		return m.fetcher.Fetch(ctx, item.URL)
	}

	data, err := WithDeadline(ctx, m.config.Timeout, func(ctx context.Context) ([]byte, error) {
		return m.retrier.Do(ctx, item.URL, attempt)
	})
	if err != nil {
		return err
	}

	destPath := m.fs.DestPath(relPath)
	if err := m.fs.EnsureDir(destPath); err != nil {
		return fmt.Errorf("failed to create parent dir for %s: %w", relPath, err)
	}
	written, err := m.fs.WriteFile(destPath, data)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}

	m.logger.Debug("file materialized",
		zap.String("path", item.Path),
		zap.Int64("size", written))

	if m.ledger != nil {
		if err := m.ledger.Record(&domain.LedgerEntry{
			Path:      item.Path,
			Revision:  revision,
			Size:      written,
			FetchedAt: time.Now(),
		}); err != nil {
			// The file is on disk; a ledger miss only costs a re-fetch.
			m.logger.Warn("failed to record ledger entry",
				zap.String("path", item.Path),
				zap.Error(err))
		}
	}

	return nil
}
