package cli

import (
	"github.com/spf13/cobra"
)

var (
	buildVersion string

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "scafsync",
	Short: "Fetch project scaffolds and samples from remote repositories",
	Long: `scafsync downloads a sample or scaffold subtree from a remote
repository into a local destination directory, with bounded concurrency,
per-fetch retry, and a ledger that lets re-runs skip files already
materialized at the same revision.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version string) error {
	buildVersion = version
	return rootCmd.Execute()
}
