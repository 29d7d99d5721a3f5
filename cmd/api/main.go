package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmarket/farmarket-api/internal/api"
	"github.com/farmarket/farmarket-api/internal/core/ports"
	"github.com/farmarket/farmarket-api/internal/infrastructure/config"
	mongodb "github.com/farmarket/farmarket-api/internal/infrastructure/db/mongo"
	redisdb "github.com/farmarket/farmarket-api/internal/infrastructure/db/redis"
	"github.com/farmarket/farmarket-api/internal/infrastructure/storage"
	"github.com/farmarket/farmarket-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":      mongodb.NewUserRepository(db),
		"categories": mongodb.NewCategoryRepository(db),
		"products":   mongodb.NewProductRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("ensure indexes")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	// --- Media storage (optional) ---
	var media ports.MediaStorage
	s3Client, err := storage.New(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Folder:    cfg.Storage.Folder,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("storage init")
	}
	if s3Client != nil {
		media = s3Client
	} else {
		log.Warn().Msg("media storage disabled: no S3 endpoint or credentials configured")
	}

	e := api.NewRouter(api.RouterConfig{
		DB:        db,
		Redis:     rdb,
		Storage:   media,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
