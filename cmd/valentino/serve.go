package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/valentino/internal/config"
	"github.com/jonathan/valentino/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the poem generation, share, and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// The provider credential is the one required secret; its absence is a
	// hard startup failure rather than a silent degrade.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	fileCfg := config.Config{}
	if serveConfig != "" {
		loaded, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = *loaded
	}
	fileCfg = fileCfg.MergeWithDefaults(config.Config{Port: servePort})

	cfg := server.Config{
		Port:        fileCfg.Port,
		APIKey:      apiKey,
		Model:       fileCfg.Model,
		Temperature: fileCfg.Temperature,
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
