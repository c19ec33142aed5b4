package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/cache"
	"github.com/enzococca/pyarchinit-webapp/src/config"
	"github.com/enzococca/pyarchinit-webapp/src/db"
	"github.com/enzococca/pyarchinit-webapp/src/logging"
	"github.com/enzococca/pyarchinit-webapp/src/media"
	"github.com/enzococca/pyarchinit-webapp/src/routes"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/enzococca/pyarchinit-webapp/src/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database connection
	database, err := db.Connect(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("error during auto-migration")
	}

	// Media delivery
	resolver := media.NewResolver(media.ResolverConfig{
		StorageURL:    cfg.StorageServerURL,
		PublicBaseURL: cfg.PublicBaseURL,
		CDNEnabled:    cfg.CloudinaryEnabled,
		CDNCloudName:  cfg.CloudinaryCloudName,
	})
	storageClient := storage.NewClient(storage.Config{
		APIKey:           cfg.StorageAPIKey,
		ThumbnailTimeout: cfg.ThumbnailTimeout,
		FullTimeout:      cfg.FullTimeout,
	})
	thumbCache := cache.New[*storage.Payload](cfg.ThumbCacheSize, cfg.ThumbCacheTTL)
	fullCache := cache.New[*storage.Payload](cfg.FullCacheSize, cfg.FullCacheTTL)

	// Services setup
	siteService := services.NewSiteService(database)
	usService := services.NewUSService(database, cfg.GeometryTable)
	materialService := services.NewMaterialService(database)
	potteryService := services.NewPotteryService(database)
	router := routes.NewRouter(routes.RouterConfig{
		AuthEnabled:     cfg.AuthEnabled,
		SecretKey:       cfg.SecretKey,
		CORSOrigins:     cfg.AllowedOrigins(),
		AllowAllOrigins: cfg.AllowAllOrigins(),
	}, routes.Services{
		DB:        database,
		AppName:   cfg.AppName,
		Sites:     siteService,
		US:        usService,
		Materials: materialService,
		Pottery:   potteryService,
		Media:     services.NewMediaService(database, resolver, storageClient, thumbCache, fullCache),
		Export:    services.NewExportService(siteService, usService, materialService, potteryService),
		Users:     services.NewUserService(database, cfg.SecretKey, cfg.TokenTTL()),
	})

	srv := &http.Server{
		Addr:              cfg.ServerHost,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", cfg.ServerHost).
			Bool("auth", cfg.AuthEnabled).
			Bool("cdn", resolver.CDNEnabled()).
			Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("addr", cfg.ServerHost).Msg("error starting server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
