// Package main provides the entry point for the community records service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algoreed/crs/pkg/config"
	"github.com/algoreed/crs/pkg/logger"
)

const serviceName = "crs"

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "crs",
		Short:         "Community records service for geography lookups and household registers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newTokenCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

// setup loads configuration and builds the logger shared by every command
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return cfg, log, nil
}
