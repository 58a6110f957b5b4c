package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/config"
	"github.com/hongminglow/labubu-portal/internal/remote"
	"github.com/hongminglow/labubu-portal/internal/server"
	"github.com/hongminglow/labubu-portal/internal/storage"
	"github.com/hongminglow/labubu-portal/internal/storage/memory"
	"github.com/hongminglow/labubu-portal/internal/storage/postgres"
	"github.com/hongminglow/labubu-portal/internal/storage/redis"
)

const purgeInterval = time.Hour

func main() {
	envErr := godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	if envErr != nil {
		logger.Info("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init session storage", zap.String("backend", cfg.SessionBackend), zap.Error(err))
	}
	defer closeKV()
	if !cfg.DurableSessions() {
		logger.Warn("sessions are kept in memory and will be lost on restart; set SESSION_BACKEND=postgres or redis to persist them")
	}

	srv := server.New(cfg, server.Deps{
		KV:      kv,
		Clients: remote.New(nil, cfg.Upstreams),
		Logger:  logger,
	})

	go func() {
		logger.Info("portal listening", zap.String("addr", cfg.HTTPAddress()), zap.String("session_backend", cfg.SessionBackend))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}

// openStorage connects the configured session backend and returns its closer.
func openStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.KV, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendPostgres:
		store, err := postgres.NewKVStore(ctx, cfg.DatabaseURL, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		go purgeLoop(ctx, store, logger)
		return store, store.Close, nil
	case config.BackendRedis:
		store, err := redis.NewStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}

// purgeLoop drops expired session rows until ctx is done.
func purgeLoop(ctx context.Context, store *postgres.Store, logger *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("purged expired sessions", zap.Int64("rows", n))
			}
		}
	}
}
