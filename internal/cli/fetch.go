package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	fetchDest        string
	fetchForce       bool
	fetchConcurrency int
	fetchRetries     int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the configured scaffold into the destination directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(fetchDest, fetchOverrides{
			force:       fetchForce,
			concurrency: fetchConcurrency,
			tryLimits:   fetchRetries,
		})
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.materializer.FetchAndWriteAll(cmd.Context(), a.coord); err != nil {
			fmt.Fprintf(os.Stderr, "Download incomplete: %s may not be consistent.\n", fetchDest)
			return err
		}

		fmt.Printf("Fetched %s into %s\n", a.coord, fetchDest)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchDest, "dest", "d", ".", "destination directory")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "re-fetch files already recorded in the ledger")
	fetchCmd.Flags().IntVar(&fetchConcurrency, "concurrency", 0, "override fetch.concurrency")
	fetchCmd.Flags().IntVar(&fetchRetries, "retries", 0, "override fetch.try_limits")
	rootCmd.AddCommand(fetchCmd)
}
