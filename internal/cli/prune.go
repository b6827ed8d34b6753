package cli

import (
	"fmt"
	"time"

	"github.com/devscaffold/scafsync/internal/adapter/sqlite"
	"github.com/devscaffold/scafsync/internal/config"
	"github.com/spf13/cobra"
)

var pruneMaxAge time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old entries from the materialization ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if !cfg.Ledger.Enabled || cfg.Ledger.Path == "" {
			return fmt.Errorf("ledger is not enabled or has no path configured")
		}

		store, err := sqlite.Open(cfg.Ledger.Path)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer store.Close()

		pruned, err := store.Prune(pruneMaxAge)
		if err != nil {
			return err
		}

		fmt.Printf("Pruned %d ledger entries older than %s\n", pruned, pruneMaxAge)
		return nil
	},
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneMaxAge, "max-age", 30*24*time.Hour, "delete entries older than this age")
	rootCmd.AddCommand(pruneCmd)
}
