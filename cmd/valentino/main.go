// Package main provides the entry point for the Valentino poem service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "valentino",
	Short: "Valentino poem generator service",
	Long:  "Valentino generates short personalized valentine poems via a hosted LLM and encodes results into shareable URL tokens. No database, no accounts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
