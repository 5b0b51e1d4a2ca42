package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/resourcehub/resource-api/internal/api"
	"github.com/resourcehub/resource-api/internal/core/service"
	"github.com/resourcehub/resource-api/internal/infrastructure/db/mongo"
	"github.com/resourcehub/resource-api/internal/infrastructure/db/redis"
	"github.com/resourcehub/resource-api/internal/infrastructure/queue"
	"github.com/resourcehub/resource-api/internal/pkg/config"
	"github.com/resourcehub/resource-api/pkg/logger"
)

// @title        Resource API
// @version      1.0
// @description  Role-based access control layer over a shared resource collection.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	resourceRepo := mongo.NewResourceRepository(db)
	auditRepo := mongo.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index bootstrap failed")
	}
	if err := resourceRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("resource index bootstrap failed")
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	revocations := redis.NewRevocationStore(rdb)
	authService := service.NewAuthService(userRepo, revocations, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	resourceService := service.NewResourceService(resourceRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		ResourceService: resourceService,
		JWTSecret:       cfg.JWTSecret,
		Logger:          log,
		Mongo:           db,
		Redis:           rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("resource api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
