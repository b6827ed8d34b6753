package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devscaffold/scafsync/internal/domain"
	"github.com/spf13/cobra"
)

var (
	treeDest  string
	treeForce bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Fetch the configured scaffold and print the materialized tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(treeDest, fetchOverrides{force: treeForce})
		if err != nil {
			return err
		}
		defer a.close()

		nodes, err := a.materializer.FetchAndBuildTree(cmd.Context(), a.coord)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Download incomplete: %s may not be consistent.\n", treeDest)
			return err
		}

		fmt.Println(a.coord.String())
		for _, node := range nodes {
			renderTree(os.Stdout, node, 1)
		}
		return nil
	},
}

// renderTree prints a node and its children with two-space indentation,
// directories suffixed with a slash.
func renderTree(w io.Writer, node *domain.TreeNode, depth int) {
	name := node.Name
	if node.IsDir() {
		name += "/"
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), name)
	for _, child := range node.Children {
		renderTree(w, child, depth+1)
	}
}

func init() {
	treeCmd.Flags().StringVarP(&treeDest, "dest", "d", ".", "destination directory")
	treeCmd.Flags().BoolVar(&treeForce, "force", false, "re-fetch files already recorded in the ledger")
	rootCmd.AddCommand(treeCmd)
}
