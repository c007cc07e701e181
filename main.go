package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogotex/entertext/internal/config"
	"github.com/gogotex/entertext/internal/database"
	"github.com/gogotex/entertext/internal/record/repository"
	"github.com/gogotex/entertext/internal/record/service"
	"github.com/gogotex/entertext/internal/server"
	"github.com/gogotex/entertext/pkg/logger"
	"github.com/gogotex/entertext/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: backend=%s namespace=%s table=%s rate_limit=%v",
		cfg.Store.Backend, cfg.Record.Namespace, cfg.Record.Table, cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to %s: %v", cfg.Store.Backend, err)
	}
	defer func() { _ = repo.Close() }()

	if err := repo.Init(ctx); err != nil {
		logger.Fatalf("schema initialization failed: %v", err)
	}
	logger.Infof("%s is ready: %s.%s", cfg.Store.Backend, cfg.Record.Namespace, cfg.Record.Table)

	svc := service.New(repo, uuid.MustParse(cfg.Record.ID))

	var rdb *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
		rdb, err = database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// /api falls back to the in-memory limiter and /ready reports redis down
			logger.Warnf("rate limiter: redis %s unavailable: %v", cfg.Redis.Addr(), err)
		}
		if rdb != nil {
			defer func() { _ = rdb.Close() }()
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.NewRouter(cfg, svc, repo, rdb),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on http://%s", cfg.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}
}
