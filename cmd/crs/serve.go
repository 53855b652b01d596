package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/auth"
	"github.com/algoreed/crs/internal/benefit"
	"github.com/algoreed/crs/internal/cache"
	"github.com/algoreed/crs/internal/database"
	"github.com/algoreed/crs/internal/directory"
	"github.com/algoreed/crs/internal/geography"
	"github.com/algoreed/crs/internal/handler"
	"github.com/algoreed/crs/internal/household"
	"github.com/algoreed/crs/internal/land"
	"github.com/algoreed/crs/internal/middleware"
	"github.com/algoreed/crs/pkg/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	lookupCache, closeCache, err := newCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	// Initialize services
	lookup := geography.NewCachedLookup(geography.NewLookupService(db, log), lookupCache, cfg.CacheTTL, log)
	householdService := household.NewService(db, log)
	benefitService := benefit.NewService(db, log)
	landService := land.NewService(db, log)
	directoryService := directory.NewService(db, log)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	handlers := handler.Handlers{
		Geography:  handler.NewGeographyHandler(lookup, log),
		Households: handler.NewHouseholdHandler(householdService, log),
		Records:    handler.NewRecordsHandler(benefitService, landService, log),
		Directory:  handler.NewDirectoryHandler(directoryService, log),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	handler.RegisterRoutes(router, handlers, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// newCache picks Redis when REDIS_URL is set and the in-process cache otherwise
func newCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.Cache, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("Using in-memory lookup cache", zap.Duration("ttl", cfg.CacheTTL))
		return cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL), func() {}, nil
	}

	rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, serviceName)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Using redis lookup cache", zap.Duration("ttl", cfg.CacheTTL))
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn("Failed to close redis cache", zap.Error(err))
		}
	}, nil
}
