package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/handler"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
	"storefront-api/internal/router"
	"storefront-api/internal/service"
	"storefront-api/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	couponRepo := repository.NewCouponRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)

	// User images go to S3 when configured; uploads are refused otherwise.
	var images storage.ImageStore
	if cfg.S3.Enabled {
		images, err = storage.NewS3ImageStore(ctx, cfg.S3, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 image store, image uploads are disabled")
			images = storage.NewDisabledStore()
		}
	} else {
		images = storage.NewDisabledStore()
		logger.Info().Msg("S3 disabled, image uploads are disabled")
	}

	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewAuthenticator(verifier, userRepo)

	metrics := service.NewMetrics(prometheus.DefaultRegisterer)
	couponService := service.NewCouponService(couponRepo, userRepo, logger, service.WithMetrics(metrics))
	userService := service.NewUserService(userRepo, images, logger, service.WithMetrics(metrics))
	productService := service.NewProductService(productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)

	mux := router.New(router.Dependencies{
		Coupons:        handler.NewCouponHandler(couponService, logger),
		Users:          handler.NewUserHandler(userService, verifier, logger),
		Products:       handler.NewProductHandler(productService, logger),
		Categories:     handler.NewCategoryHandler(categoryService, logger),
		Authenticator:  authenticator,
		HTTPMetrics:    middleware.NewHTTPMetrics(prometheus.DefaultRegisterer),
		Gatherer:       prometheus.DefaultGatherer,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
