package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/cache"
	"github.com/algoreed/crs/internal/database"
	"github.com/algoreed/crs/pkg/config"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a geography fixture from YAML",
		Long:  "Upserts provinces, districts, LLGs, villages, trust regions and trust villages by name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "geography.yaml", "Path to the YAML fixture")
	return cmd
}

func runSeed(cmd *cobra.Command, file string) error {
	ctx := cmd.Context()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	fixture, err := database.LoadFixture(file)
	if err != nil {
		return err
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := database.Seed(ctx, db, fixture)
	if err != nil {
		return err
	}

	log.Info("Geography seeded",
		zap.String("file", file),
		zap.Int("trust_regions", stats.TrustRegions),
		zap.Int("provinces", stats.Provinces),
		zap.Int("districts", stats.Districts),
		zap.Int("llgs", stats.LLGs),
		zap.Int("villages", stats.Villages),
		zap.Int("trust_villages", stats.TrustVillages))

	flushed, err := flushSharedCache(ctx, cfg)
	switch {
	case err != nil:
		log.Warn("Failed to flush lookup cache", zap.Error(err))
	case flushed:
		log.Info("Lookup cache flushed")
	default:
		log.Info("No shared lookup cache configured, running servers refresh lookups after CACHE_TTL",
			zap.Duration("ttl", cfg.CacheTTL))
	}
	return nil
}

// flushSharedCache clears lookups cached in Redis. The in-process cache belongs to
// the serve process and is not reachable from here.
func flushSharedCache(ctx context.Context, cfg *config.Config) (bool, error) {
	if cfg.RedisURL == "" {
		return false, nil
	}

	rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, serviceName)
	if err != nil {
		return false, err
	}
	defer rc.Close()

	if err := rc.Flush(ctx); err != nil {
		return false, err
	}
	return true, nil
}
