package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"clinic-admin-server/internal/config"
	"clinic-admin-server/internal/middleware"
	"clinic-admin-server/internal/mirror"
	"clinic-admin-server/internal/pricing"
	"clinic-admin-server/internal/routes"
	"clinic-admin-server/internal/store"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	catalog, err := pricing.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load service catalog")
	}

	cache, err := store.NewFileCache(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to open local cache")
	}

	// The remote mirror is strictly optional: without a DSN the server
	// runs local-first only.
	var m store.Mirror
	if cfg.Mirror.DSN != "" {
		gm, err := mirror.Connect(cfg.Mirror.DSN)
		if err != nil {
			logger.Warn().Err(err).Msg("remote mirror unavailable, continuing local-only")
		} else {
			m = gm
		}
	}

	s := store.New(cache, m, catalog, cfg.CacheNamespace, logger)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	if err := routes.SetupRoutes(router, s, cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to set up routes")
	}

	logger.Info().Str("port", cfg.Port).Msg("server running")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
