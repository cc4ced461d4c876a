package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pokerface/networking-api/internal/api"
	"github.com/pokerface/networking-api/internal/core/service"
	"github.com/pokerface/networking-api/internal/infrastructure/config"
	mongodb "github.com/pokerface/networking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pokerface/networking-api/internal/infrastructure/db/redis"
	"github.com/pokerface/networking-api/internal/infrastructure/queue"
	"github.com/pokerface/networking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Notification pipeline ---
	notificationRepo := mongodb.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo, log)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, dispatcher, notificationService, cfg.JWTSecret, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates every collection's indexes up front; the partial
// unique index on pending reveal requests and the unique match-pair index
// are load-bearing for the protocol invariants.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewCardRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewRevealRequestRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewTableRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewMatchRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewNotificationRepository(db).EnsureIndexes(ctx)
}
