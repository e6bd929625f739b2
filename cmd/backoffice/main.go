// Package main provides the entry point for the construction company
// back-office API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Construction company back-office API",
	Long:  "HTTP API for the marketing site: job applications with CV upload, project analysis lead capture and the admin dashboard.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
