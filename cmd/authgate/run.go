package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tolgauslu/authgate"
	"github.com/tolgauslu/authgate/httpapi"
	"github.com/tolgauslu/authgate/userstore"
)

const version = "0.1.0"

func run() error {
	logger := newLogger(envString("LOG_LEVEL", "info"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := authgate.DefaultConfig()
	cfg.JWT.Secret = []byte(envString("JWT_SECRET", ""))
	cfg.JWT.AccessTTL = envDuration("ACCESS_TOKEN_TTL", cfg.JWT.AccessTTL)
	cfg.JWT.Issuer = envString("JWT_ISSUER", "")
	cfg.Refresh.TTL = envDuration("REFRESH_TOKEN_TTL", cfg.Refresh.TTL)
	cfg.Audit.Enabled = envBool("AUDIT_ENABLED", false)

	if len(cfg.JWT.Secret) == 0 {
		return errors.New("JWT_SECRET is required")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     envString("REDIS_ADDR", "localhost:6379"),
		Password: envString("REDIS_PASSWORD", ""),
	})
	defer redisClient.Close()

	users, pool, err := newUserStore(ctx, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	builder := authgate.New().
		WithConfig(cfg).
		WithRedis(redisClient).
		WithUserStore(users)
	if cfg.Audit.Enabled {
		builder = builder.WithAuditSink(authgate.NewJSONWriterSink(os.Stdout))
	}

	engine, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	api := httpapi.New(engine, version)

	srv := &http.Server{
		Addr:              envString("HTTP_ADDR", ":8080"),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server.start", "addr", srv.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("server.stop", "reason", "signal")
	case err := <-errCh:
		logger.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown.fail", "err", err)
		return err
	}

	logger.Info("server.stopped")
	return nil
}

// newUserStore picks the backing store: PostgreSQL when DATABASE_URL is set,
// in-memory otherwise. The returned pool is nil for the in-memory case.
func newUserStore(ctx context.Context, logger *slog.Logger) (authgate.UserStore, *pgxpool.Pool, error) {
	dsn := envString("DATABASE_URL", "")
	if dsn == "" {
		logger.Warn("user_store.memory", "reason", "DATABASE_URL not set")
		return userstore.NewMemory(), nil, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	store := userstore.NewPostgres(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("user_store.postgres")
	return store, pool, nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
