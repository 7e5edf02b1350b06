package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgie-shop/internal/catalog"
	"budgie-shop/internal/config"
	"budgie-shop/internal/database"
	"budgie-shop/internal/handler"
	"budgie-shop/internal/metrics"
	"budgie-shop/internal/repository"
	"budgie-shop/internal/router"
	"budgie-shop/internal/service"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting budgie-shop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to MongoDB. Failure is not fatal: the service keeps serving
	// the default catalogue and rejects writes until restarted.
	var (
		db          *mongo.Database
		productRepo repository.ProductRepository
		diagnostics repository.Diagnostics
	)
	if cfg.Database.Enabled() {
		db, err = database.Connect(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error().Err(err).Msg("database unavailable, continuing without persistence")
		} else {
			productRepo = repository.NewProductRepository(db, cfg.Database.ProductCollection, logger)
			diagnostics = repository.NewDiagnostics(db)
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, running without a database")
	}

	// Resolve the seed catalogue, trying S3 before the local file system
	var catalogLoader catalog.Loader = catalog.NewFileLoader(logger)
	if cfg.S3.Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			catalogLoader = catalog.NewFallbackLoader(s3Loader, catalogLoader, cfg.S3.Prefix, true, logger)
		}
	}
	catalogue := catalog.Resolve(ctx, catalogLoader, cfg.Catalog.File, logger)

	// Initialize metrics
	m := metrics.New()

	// Initialize services
	productService := service.NewProductService(productRepo, catalogue, m, logger)
	diagnosticsService := service.NewDiagnosticsService(diagnostics, service.EnvPresence{
		DatabaseURL:  cfg.Database.URL != "",
		DatabaseName: cfg.Database.Name != "",
	}, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	healthHandler := handler.NewHealthHandler(diagnosticsService, logger)

	// Initialize router
	mux := router.New(productHandler, healthHandler, m, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Bool("database", productRepo != nil).
			Int("catalogue_size", len(catalogue)).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		disconnect(db, logger)
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			disconnect(db, logger)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		disconnect(db, logger)
		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// disconnect closes the MongoDB client if one was opened.
func disconnect(db *mongo.Database, logger zerolog.Logger) {
	if db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		return
	}
	logger.Info().Msg("MongoDB connection closed")
}
