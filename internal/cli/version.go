package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scafsync version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scafsync %s\n", buildVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
