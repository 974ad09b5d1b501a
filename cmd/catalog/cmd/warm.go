package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(warmCmd)
}

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Walks the upstream listing pages and prints what was collected.",
	Run: func(cmd *cobra.Command, args []string) {
		catalog := newCatalog()
		catalog.Warm(cmd.Context())

		products, updatedAt := catalog.Snapshot()
		fmt.Printf("collected %d products at %s\n", len(products), updatedAt.Format("15:04:05"))
		renderProducts(products)
	},
}
