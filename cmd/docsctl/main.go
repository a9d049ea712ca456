// Package main provides docsctl, a command-line client for a company's
// document library on the remote API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "docsctl",
	Short:         "Browse and organise a company's document library",
	Long:          "docsctl lists folders, files and reports of a company and manages folders and file placement through the remote document API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	apiURL    string
	companyID string
	apiToken  string
	jsonOut   bool
	verbose   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default $API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&companyID, "company", "", "Company id (default $DOCSCTL_COMPANY)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (default $DOCSCTL_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print JSON instead of a table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log backend requests to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
