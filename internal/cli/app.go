package cli

import (
	"fmt"
	"path/filepath"

	"github.com/devscaffold/scafsync/internal/adapter/filesystem"
	"github.com/devscaffold/scafsync/internal/adapter/github"
	"github.com/devscaffold/scafsync/internal/adapter/sqlite"
	"github.com/devscaffold/scafsync/internal/config"
	"github.com/devscaffold/scafsync/internal/domain"
	"github.com/devscaffold/scafsync/internal/fetch"
	"github.com/devscaffold/scafsync/internal/logger"
	"github.com/devscaffold/scafsync/internal/port"
)

// app wires configuration and adapters into a ready-to-run materializer.
type app struct {
	cfg          *config.Config
	coord        domain.RepoCoordinate
	materializer *fetch.Materializer
	store        *sqlite.Store
}

// fetchOverrides holds command-line overrides for the fetch section.
type fetchOverrides struct {
	force       bool
	concurrency int
	tryLimits   int
}

// newApp loads configuration, initializes logging, and assembles the
// adapters the way the daemon-style services do: config, logger, sinks,
// remote client, then the service on top.
func newApp(dest string, overrides fetchOverrides) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	fsManager, err := filesystem.NewManager(dest)
	if err != nil {
		return nil, err
	}

	var store *sqlite.Store
	var ledger port.LedgerRepository
	if cfg.Ledger.Enabled {
		ledgerPath := cfg.Ledger.Path
		if ledgerPath == "" {
			ledgerPath = filepath.Join(dest, ".scafsync.db")
		}
		store, err = sqlite.Open(ledgerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open ledger: %w", err)
		}
		ledger = store
	}

	client := github.NewClient(&github.ClientConfig{
		APIBase: cfg.Source.APIBase,
		RawBase: cfg.Source.RawBase,
		Token:   cfg.Source.Token,
	})

	fetchCfg := &fetch.Config{
		Concurrency: cfg.Fetch.Concurrency,
		TryLimits:   cfg.Fetch.TryLimits,
		Timeout:     cfg.Fetch.GetTimeout(),
		Force:       cfg.Fetch.Force || overrides.force,
	}
	if overrides.concurrency > 0 {
		fetchCfg.Concurrency = overrides.concurrency
	}
	if overrides.tryLimits > 0 {
		fetchCfg.TryLimits = overrides.tryLimits
	}

	materializer := fetch.New(
		fetchCfg,
		github.NewLister(client, fetchCfg.TryLimits),
		github.NewFetcher(client),
		fsManager,
		ledger,
		zapLogger,
	)

	return &app{
		cfg: cfg,
		coord: domain.RepoCoordinate{
			Owner: cfg.Source.Owner,
			Repo:  cfg.Source.Repo,
			Ref:   cfg.Source.Ref,
			Dir:   cfg.Source.Dir,
		},
		materializer: materializer,
		store:        store,
	}, nil
}

// close releases the app's resources
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	logger.Sync()
}
