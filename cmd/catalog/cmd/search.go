package cmd

import (
	"os"
	"strings"
	"yachtdrop-backend/lib/scrapers/nautic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchPage int

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page to print")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Warms the catalog, then prints the products matching the query.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog := newCatalog()
		catalog.Warm(cmd.Context())
		renderProducts(catalog.Search(strings.Join(args, " "), searchPage))
	},
}

func renderProducts(products []nautic.Product) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Id", "Name", "Price", "Currency", "Url"})

	for _, p := range products {
		t.AppendRow(table.Row{p.Id, p.Name, p.Price, p.Currency, p.ProductUrl})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
