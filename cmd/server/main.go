package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/catalog"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/config"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/pkg/logger"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "restaurant",
	Short:         "Restaurant site API and menu tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")
	rootCmd.AddCommand(serveCmd, menuCmd, quoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the default logger
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	return cfg, log, nil
}

// loadCatalog reads the configured catalog artifact
func loadCatalog(ctx context.Context, cfg *config.Config) (*models.Catalog, error) {
	loader, err := catalog.NewLoader(cfg.Catalog.LoadTimeout)
	if err != nil {
		return nil, err
	}

	c, err := loader.Load(ctx, cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.Catalog.Path, err)
	}
	return c, nil
}
