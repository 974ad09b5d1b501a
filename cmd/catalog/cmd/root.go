package cmd

import (
	"fmt"
	"os"
	"time"
	"yachtdrop-backend/lib/scrapers/nautic"

	"github.com/spf13/cobra"
)

var baseUrl string
var timeoutSeconds int

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "catalog is a CLI for warming and inspecting the product catalog.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&baseUrl, "base-url", "",
		"override the upstream storefront url",
	)
	rootCmd.PersistentFlags().IntVar(
		&timeoutSeconds, "timeout", 15,
		"per-request timeout in seconds",
	)
}

func newCatalog() *nautic.Catalog {
	client, err := nautic.NewClient(nautic.ClientOptions{
		BaseUrl: baseUrl,
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	return nautic.NewCatalog(client, nautic.CatalogOptions{})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
